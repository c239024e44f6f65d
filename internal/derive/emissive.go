package derive

import (
	"context"
	"sort"

	"github.com/AnyUserName/pbrforge/internal/imageset"
	"github.com/AnyUserName/pbrforge/internal/kernel"
	"github.com/AnyUserName/pbrforge/internal/material"
	"github.com/lucasb-eyer/go-colorful"
)

type emissiveDeriver struct{}

func (emissiveDeriver) Kind() material.MapKind { return material.Emissive }

// Derive implements the emissive supplement (SPEC_FULL §4.10): a
// bright-region mask above the 98th luminance percentile, blurred, then
// tinted per material class. Only reached when a request explicitly asks
// for material.Emissive.
func (emissiveDeriver) Derive(_ context.Context, diffuse, _ *imageset.Image, class material.Class, _ Params, _ func(string)) (*imageset.Image, error) {
	lum, err := imageset.ToGrayscaleLuminance(diffuse)
	if err != nil {
		return nil, err
	}
	w, h := diffuse.Width, diffuse.Height
	blurred := kernel.GaussianBlur(lum.Data, w, h, 1.5)

	threshold := percentile(blurred, 0.98)
	mask := make([]float32, w*h)
	for i, v := range blurred {
		if v > threshold {
			mask[i] = (v - threshold) / (1 - threshold + 1e-6)
		}
	}

	tint := emissiveTint(class)
	tr, tg, tb, _ := tint.RGBA()
	r := make([]float32, w*h)
	g := make([]float32, w*h)
	b := make([]float32, w*h)
	for i, m := range mask {
		r[i] = m * float32(tr) / 65535
		g[i] = m * float32(tg) / 65535
		b[i] = m * float32(tb) / 65535
	}
	return imageset.FromPlanes(w, h, r, g, b), nil
}

func percentile(data []float32, p float32) float32 {
	if len(data) == 0 {
		return 1
	}
	sorted := append([]float32(nil), data...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	idx := int(p * float32(len(sorted)-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// emissiveTint picks an HSV-defined glow colour per material class: a
// molten orange for metal, a violet for fabric, and a warm white for
// every other class.
func emissiveTint(class material.Class) colorful.Color {
	switch class {
	case material.Metal:
		return colorful.Hsv(30, 0.85, 1.0) // molten-metal orange
	case material.Fabric:
		return colorful.Hsv(280, 0.4, 1.0) // subtle neon violet
	default:
		return colorful.Hsv(50, 0.2, 1.0) // warm-white glow
	}
}
