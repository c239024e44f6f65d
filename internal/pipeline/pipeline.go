package pipeline

import (
	"context"
	"runtime"
	"sync"

	"github.com/AnyUserName/pbrforge/internal/derive"
	"github.com/AnyUserName/pbrforge/internal/diagnostics"
	"github.com/AnyUserName/pbrforge/internal/imageset"
	"github.com/AnyUserName/pbrforge/internal/material"
	"github.com/AnyUserName/pbrforge/internal/perr"
	"github.com/AnyUserName/pbrforge/internal/tessellate"
)

// Pipeline runs the seven-stage orchestration described by the component
// design: Init, Intake, Normalize, Tessellate, SharedHeight, Fanout, Seal.
type Pipeline struct {
	diag *diagnostics.Sink
}

// New creates a Pipeline. verbose mirrors the CLI's --verbose flag through
// to the diagnostics sink.
func New(verbose bool) *Pipeline {
	return &Pipeline{diag: diagnostics.New(verbose)}
}

// Run executes the full pipeline for req. A non-nil error is always one of
// InvalidRequest, UpstreamImageError, or Cancelled; every other failure
// degrades gracefully into a Result warning.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	p.diag.Verbosef("intake: requesting %dx%d bitmap for %q", req.Resolution.Width, req.Resolution.Height, req.Prompt)
	genCtx := ctx
	var cancel context.CancelFunc
	if req.GenerateTimeout > 0 {
		genCtx, cancel = context.WithTimeout(ctx, req.GenerateTimeout)
		defer cancel()
	}
	bitmap, err := req.Generator.Generate(genCtx, req.Prompt, req.Resolution.Width, req.Resolution.Height)
	if err != nil {
		return nil, &perr.UpstreamImageError{Cause: err}
	}

	// Normalize.
	diffuse, err := normalize(bitmap, req.Resolution)
	if err != nil {
		return nil, &perr.UpstreamImageError{Cause: err}
	}

	if isCancelled(ctx) {
		return &Result{Diffuse: diffuse, Cancelled: true, Warnings: p.diag.Drain()}, &perr.Cancelled{}
	}

	// Tessellate.
	var maxEdgeDelta float32
	if req.Seamless {
		tp := req.Tessellation
		if tp.BlendWidth == 0 {
			tp.BlendWidth = tessellate.DefaultBlendWidth(diffuse.Width, diffuse.Height)
		}
		tessellated, err := tessellate.Apply(diffuse, tp, func(msg string) { p.diag.Warn(msg) })
		if err != nil {
			return nil, err
		}
		diffuse = tessellated
		_, maxEdgeDelta = tessellate.ValidateTiling(diffuse)
	}

	if isCancelled(ctx) {
		return &Result{Diffuse: diffuse, Cancelled: true, MaxEdgeDelta: maxEdgeDelta, Warnings: p.diag.Drain()}, &perr.Cancelled{}
	}

	// SharedHeight.
	height, err := derive.ComputeSharedHeight(diffuse)
	if err != nil {
		p.diag.Warn("shared height computation failed: %v", err)
		height = nil
	}

	if isCancelled(ctx) {
		return &Result{Diffuse: diffuse, Cancelled: true, MaxEdgeDelta: maxEdgeDelta, Warnings: p.diag.Drain()}, &perr.Cancelled{}
	}

	// Fanout.
	maps := p.fanout(ctx, diffuse, height, req)

	res := &Result{
		Diffuse:      diffuse,
		Maps:         maps,
		MaxEdgeDelta: maxEdgeDelta,
		Cancelled:    isCancelled(ctx),
	}
	res.Warnings = p.diag.Drain()
	if res.Cancelled {
		return res, &perr.Cancelled{}
	}
	return res, nil
}

func validate(req Request) error {
	if req.Resolution.Width < imageset.MinDimension || req.Resolution.Height < imageset.MinDimension {
		return &perr.InvalidRequest{Reason: "resolution below minimum 16x16"}
	}
	if len(req.Kinds) == 0 {
		return &perr.InvalidRequest{Reason: "empty kinds"}
	}
	if req.Generator == nil {
		return &perr.InvalidRequest{Reason: "no AI collaborator configured"}
	}
	return nil
}

func isCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// fanout derives every requested, non-diffuse map concurrently, bounded to
// min(requested, NumCPU) workers, and reapplies tessellation only to the
// handful of derivations that can reintroduce a seam.
func (p *Pipeline) fanout(ctx context.Context, diffuse, height *imageset.Image, req Request) map[material.MapKind]*imageset.Image {
	var requested []derive.Deriver
	for _, d := range derive.All() {
		if req.Kinds[d.Kind()] {
			requested = append(requested, d)
		}
	}
	if len(requested) == 0 {
		return nil
	}

	workers := len(requested)
	if cores := runtime.NumCPU(); cores < workers {
		workers = cores
	}
	sem := make(chan struct{}, workers)

	results := make(map[material.MapKind]*imageset.Image, len(requested))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, d := range requested {
		if isCancelled(ctx) {
			break
		}
		wg.Add(1)
		go func(d derive.Deriver) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if isCancelled(ctx) {
				return
			}
			img, err := d.Derive(ctx, diffuse, height, req.MaterialClass, req.Derivation, func(msg string) { p.diag.Warn(msg) })
			if err != nil {
				p.diag.Warn("%v", &perr.DerivationError{Kind: d.Kind(), Cause: err})
				return
			}
			if req.Seamless && needsReapply(d.Kind(), req.Derivation) {
				tp := req.Tessellation
				if tp.BlendWidth == 0 {
					tp.BlendWidth = tessellate.DefaultBlendWidth(img.Width, img.Height)
				}
				reapplied, err := tessellate.Apply(img, tp, func(msg string) { p.diag.Warn(msg) })
				if err != nil {
					p.diag.Warn("%v", &perr.DerivationError{Kind: d.Kind(), Cause: err})
					return
				}
				img = reapplied
			}
			mu.Lock()
			results[d.Kind()] = img
			mu.Unlock()
		}(d)
	}
	wg.Wait()
	return results
}

// needsReapply reports whether a derivation's own construction (Sobel and
// pointwise ops on edge-replicated, already-seamless input) is not
// guaranteed seamless-preserving, per the C3 fast-path design note.
func needsReapply(kind material.MapKind, params derive.Params) bool {
	switch kind {
	case material.Roughness:
		return params.Roughness.Directional
	case material.Metallic:
		return params.Metallic.Threshold > 0
	default:
		return false
	}
}
