package pipeline

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"github.com/AnyUserName/pbrforge/internal/aiclient"
	"github.com/AnyUserName/pbrforge/internal/derive"
	"github.com/AnyUserName/pbrforge/internal/imageset"
	"github.com/AnyUserName/pbrforge/internal/material"
	"github.com/AnyUserName/pbrforge/internal/perr"
	"github.com/AnyUserName/pbrforge/internal/tessellate"
)

func baseRequest() Request {
	kinds := map[material.MapKind]bool{}
	for _, k := range material.AllCoreKinds() {
		kinds[k] = true
	}
	return Request{
		Prompt:        "brick wall, weathered",
		Resolution:    imageset.Resolution{Width: 64, Height: 64},
		MaterialClass: material.Brick,
		Kinds:         kinds,
		Tessellation:  tessellate.Params{Algorithm: tessellate.Offset},
		Derivation:    derive.DefaultParams(),
		Seamless:      true,
		Generator:     aiclient.Stub{},
	}
}

func TestRunProducesAllRequestedMaps(t *testing.T) {
	p := New(false)
	res, err := p.Run(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Diffuse == nil {
		t.Fatal("result missing diffuse master")
	}
	for _, k := range []material.MapKind{material.Normal, material.Roughness, material.Metallic, material.AO, material.Height} {
		if res.Maps[k] == nil {
			t.Errorf("missing derived map %v", k)
		}
	}
}

func TestRunDeterministic(t *testing.T) {
	req := baseRequest()
	p1 := New(false)
	res1, err := p1.Run(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	p2 := New(false)
	res2, err := p2.Run(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if len(res1.Diffuse.Data) != len(res2.Diffuse.Data) {
		t.Fatal("diffuse length mismatch across runs")
	}
	for i := range res1.Diffuse.Data {
		if res1.Diffuse.Data[i] != res2.Diffuse.Data[i] {
			t.Fatalf("diffuse mismatch at %d: %f vs %f", i, res1.Diffuse.Data[i], res2.Diffuse.Data[i])
		}
	}
	for k, m1 := range res1.Maps {
		m2 := res2.Maps[k]
		if m2 == nil {
			t.Fatalf("map %v missing on second run", k)
		}
		for i := range m1.Data {
			if m1.Data[i] != m2.Data[i] {
				t.Fatalf("map %v mismatch at %d: %f vs %f", k, i, m1.Data[i], m2.Data[i])
			}
		}
	}
}

func TestRunResultDimensionsMatchRequest(t *testing.T) {
	req := baseRequest()
	p := New(false)
	res, err := p.Run(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if res.Diffuse.Width != req.Resolution.Width || res.Diffuse.Height != req.Resolution.Height {
		t.Errorf("diffuse dims: got %dx%d, want %dx%d", res.Diffuse.Width, res.Diffuse.Height, req.Resolution.Width, req.Resolution.Height)
	}
	for k, img := range res.Maps {
		if img.Width != req.Resolution.Width || img.Height != req.Resolution.Height {
			t.Errorf("map %v dims: got %dx%d, want %dx%d", k, img.Width, img.Height, req.Resolution.Width, req.Resolution.Height)
		}
	}
}

func TestRunRejectsBelowMinimumResolution(t *testing.T) {
	req := baseRequest()
	req.Resolution = imageset.Resolution{Width: 8, Height: 8}
	p := New(false)
	if _, err := p.Run(context.Background(), req); err == nil {
		t.Fatal("expected InvalidRequest for resolution below 16x16")
	}
}

func TestRunRejectsEmptyKinds(t *testing.T) {
	req := baseRequest()
	req.Kinds = map[material.MapKind]bool{}
	p := New(false)
	if _, err := p.Run(context.Background(), req); err == nil {
		t.Fatal("expected InvalidRequest for empty kinds")
	}
}

func TestRunCancellationReturnsPartialResult(t *testing.T) {
	req := baseRequest()
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel before Run even starts intake
	p := New(false)
	res, err := p.Run(ctx, req)
	if err == nil {
		t.Fatal("expected a Cancelled error")
	}
	if res == nil || res.Diffuse == nil {
		t.Fatal("cancelled result should still carry the diffuse master")
	}
	if !res.Cancelled {
		t.Error("result should be marked cancelled")
	}
}

func TestRunSeamlessDiffuseIsSeamless(t *testing.T) {
	req := baseRequest()
	req.Seamless = true
	p := New(false)
	res, err := p.Run(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if res.MaxEdgeDelta > 1.0/255.0 {
		t.Errorf("seamless request produced max_edge_delta=%f, want <= 1/255", res.MaxEdgeDelta)
	}
}

func TestRunTimeoutPropagatesAsUpstreamImageError(t *testing.T) {
	req := baseRequest()
	req.Generator = slowGenerator{}
	req.GenerateTimeout = 5 * time.Millisecond
	p := New(false)
	_, err := p.Run(context.Background(), req)
	if err == nil {
		t.Fatal("expected an error when the AI collaborator exceeds the timeout")
	}
	var upstream *perr.UpstreamImageError
	if !errors.As(err, &upstream) {
		t.Errorf("expected an UpstreamImageError, got %T: %v", err, err)
	}
}

type slowGenerator struct{}

func (slowGenerator) Generate(ctx context.Context, _ string, _, _ int) (image.Image, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}
