package derive

import (
	"context"

	"github.com/AnyUserName/pbrforge/internal/imageset"
	"github.com/AnyUserName/pbrforge/internal/kernel"
	"github.com/AnyUserName/pbrforge/internal/material"
)

type metallicDeriver struct{}

func (metallicDeriver) Kind() material.MapKind { return material.Metallic }

// Derive implements C7. threshold == 0 skips detection entirely and emits
// a uniform plane, resolving the open question the source left
// inconsistent between threshold detection and material presets.
func (metallicDeriver) Derive(_ context.Context, diffuse, _ *imageset.Image, class material.Class, params Params, _ func(string)) (*imageset.Image, error) {
	w, h := diffuse.Width, diffuse.Height

	base := params.Metallic.BaseValue
	if params.Metallic.UseDefaults {
		base = material.MetallicBaseFor(class)
	}

	if params.Metallic.Threshold <= 0 {
		plane := make([]float32, w*h)
		for i := range plane {
			plane[i] = clamp01(base)
		}
		return imageset.FromPlanes(w, h, plane), nil
	}

	lum, err := imageset.ToGrayscaleLuminance(diffuse)
	if err != nil {
		return nil, err
	}
	mask := make([]float32, w*h)
	for i, l := range lum.Data {
		if l > params.Metallic.Threshold {
			mask[i] = 1
		}
	}
	mask = kernel.MorphOpen(mask, w, h)
	return imageset.FromPlanes(w, h, mask), nil
}
