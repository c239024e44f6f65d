package derive

import (
	"context"
	"math"

	"github.com/AnyUserName/pbrforge/internal/imageset"
	"github.com/AnyUserName/pbrforge/internal/kernel"
	"github.com/AnyUserName/pbrforge/internal/material"
)

type aoDeriver struct{}

func (aoDeriver) Kind() material.MapKind { return material.AO }

// Derive implements C9: cavity + global + gradient occlusion, combined
// with fixed weights (0.4, 0.3, 0.3), then material-class postprocessing
// and the min_ao floor.
func (aoDeriver) Derive(_ context.Context, diffuse, height *imageset.Image, class material.Class, params Params, warn func(string)) (*imageset.Image, error) {
	w, h := diffuse.Width, diffuse.Height

	if height == nil {
		if warn != nil {
			warn("no height plane available for AO, emitting neutral plane")
		}
		plane := make([]float32, w*h)
		seed := deterministicSeed(w, h, class)
		rng := newLCG(seed)
		for i := range plane {
			plane[i] = clamp01(0.9 + (rng.float32()*2-1)*0.01)
		}
		return imageset.FromPlanes(w, h, plane), nil
	}
	H := height.Plane(0)

	cavityScale := params.AO.CavityScale
	if cavityScale <= 0 {
		cavityScale = 4
	}
	globalScale := params.AO.GlobalScale
	if globalScale <= 0 {
		globalScale = 8
	}

	// Cavity AO.
	blurredH := kernel.GaussianBlur(H, w, h, cavityScale)
	cavity := make([]float32, w*h)
	for i := range H {
		c := blurredH[i] - H[i]
		if c < 0 {
			c = 0
		}
		cavity[i] = clamp01(1 - 10*c)
	}

	// Global AO: three passes of successive blur-and-blend.
	global := append([]float32(nil), H...)
	for i := 0; i < 3; i++ {
		sigma := globalScale * float32(math.Pow(2, float64(i)))
		blurred := kernel.GaussianBlur(global, w, h, sigma)
		for j := range global {
			global[j] = 0.5*global[j] + 0.5*blurred[j]
		}
	}
	for i := range global {
		global[i] = float32(math.Pow(float64(clamp01(global[i])), 1.5))
	}

	// Gradient AO.
	gx, gy := kernel.SobelXY(H, w, h)
	mag := make([]float32, w*h)
	var maxMag float32
	for i := range gx {
		m := float32(math.Sqrt(float64(gx[i]*gx[i] + gy[i]*gy[i])))
		mag[i] = m
		if m > maxMag {
			maxMag = m
		}
	}
	const eps = 1e-6
	gradSrc := make([]float32, w*h)
	for i, m := range mag {
		norm := m / (maxMag + eps)
		gradSrc[i] = 1 - 0.5*norm
	}
	gradient := kernel.GaussianBlur(gradSrc, w, h, 1.0)

	ao := make([]float32, w*h)
	for i := range ao {
		ao[i] = clamp01(0.4*cavity[i] + 0.3*global[i] + 0.3*gradient[i])
	}

	switch class {
	case material.Stone, material.Brick:
		for i := range ao {
			if ao[i] < 0.3 {
				ao[i] *= 0.8
			}
		}
	case material.Wood:
		softened := kernel.GaussianBlur1D(ao, w, h, 2.0, true)
		for i := range ao {
			ao[i] = 0.7*ao[i] + 0.3*softened[i]
		}
	case material.Fabric:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				weave := 0.05 * (float32(math.Sin(math.Pi*float64(x)/4)) + float32(math.Sin(math.Pi*float64(y)/4)))
				idx := y*w + x
				ao[idx] = clamp01(ao[idx] + weave)
			}
		}
	}

	minAO := params.AO.MinAO
	for i := range ao {
		ao[i] = clamp01(ao[i]*(1-minAO) + minAO)
	}

	return imageset.FromPlanes(w, h, ao), nil
}
