package derive

import (
	"context"

	"github.com/AnyUserName/pbrforge/internal/imageset"
	"github.com/AnyUserName/pbrforge/internal/kernel"
	"github.com/AnyUserName/pbrforge/internal/material"
)

type roughnessDeriver struct{}

func (roughnessDeriver) Kind() material.MapKind { return material.Roughness }

// Derive implements C6: luminance -> material-preset roughness with
// optional wood grain softening, metal directional streaks, and noise.
func (roughnessDeriver) Derive(_ context.Context, diffuse, _ *imageset.Image, class material.Class, params Params, warn func(string)) (*imageset.Image, error) {
	lum, err := imageset.ToGrayscaleLuminance(diffuse)
	if err != nil {
		return nil, err
	}
	w, h := diffuse.Width, diffuse.Height

	preset := material.RoughnessPresetFor(class)
	base, contrast, invert := preset.Base, preset.Contrast, preset.Invert
	if !params.Roughness.UseDefaults {
		base = params.Roughness.BaseValue
		invert = params.Roughness.Invert
	}

	sign := float32(1)
	if invert {
		sign = -1
	}
	rough := make([]float32, w*h)
	for i, l := range lum.Data {
		rough[i] = clamp01(base + contrast*(l-0.5)*sign)
	}

	if class == material.Wood {
		blurred := kernel.GaussianBlur1D(rough, w, h, 2.0, true)
		for i := range rough {
			rough[i] = 0.7*blurred[i] + 0.3*rough[i]
		}
	}

	if class == material.Metal {
		for i := range rough {
			if rough[i] < 0.15 {
				rough[i] = 0.15
			}
		}
		if params.Roughness.Directional {
			sigma := float32(minInt(w, h)) / 256
			rotated := kernel.Rotate(rough, w, h, params.Roughness.DirectionAngleDeg)
			blurred := kernel.GaussianBlur1D(rotated, w, h, sigma, true)
			back := kernel.Rotate(blurred, w, h, -params.Roughness.DirectionAngleDeg)
			for i := range rough {
				rough[i] = 0.5*back[i] + 0.5*rough[i]
			}
		}
	}

	// DefaultParams already sets Variation to the documented 0.02 default;
	// an explicit zero here means the caller wants no noise at all, which
	// the single-color boundary case (roughness == preset base) depends on.
	if variation := params.Roughness.Variation; variation != 0 {
		seed := deterministicSeed(w, h, class)
		rng := newLCG(seed)
		for i := range rough {
			noise := (rng.float32()*2 - 1) * variation
			rough[i] = clamp01(rough[i] + noise)
		}
	}

	_ = warn
	return imageset.FromPlanes(w, h, rough), nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func deterministicSeed(w, h int, class material.Class) uint64 {
	return uint64(w)*1000003 + uint64(h)*97 + uint64(class) + 1
}

// lcg is a tiny deterministic PRNG for reproducible per-pixel noise
// (property 6: fixing inputs must yield byte-identical output).
type lcg struct{ state uint64 }

func newLCG(seed uint64) *lcg { return &lcg{state: seed} }

func (l *lcg) float32() float32 {
	l.state = l.state*6364136223846793005 + 1442695040888963407
	return float32(l.state>>40) / float32(1<<24)
}
