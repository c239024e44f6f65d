package derive

import (
	"context"

	"github.com/AnyUserName/pbrforge/internal/imageset"
	"github.com/AnyUserName/pbrforge/internal/kernel"
	"github.com/AnyUserName/pbrforge/internal/material"
)

type heightDeriver struct{}

func (heightDeriver) Kind() material.MapKind { return material.Height }

// Derive implements C8: S-curve contrast adjustment and optional blur of
// the shared height plane. Bit depth is applied at encode time, not here;
// the returned Image always carries float32 samples in [0,1].
func (heightDeriver) Derive(_ context.Context, diffuse, height *imageset.Image, _ material.Class, params Params, warn func(string)) (*imageset.Image, error) {
	w, h := diffuse.Width, diffuse.Height
	var base []float32
	if height != nil {
		base = height.Plane(0)
	} else {
		lum, err := imageset.ToGrayscaleLuminance(diffuse)
		if err != nil {
			return nil, err
		}
		base = lum.Data
	}

	depthScale := params.Height.DepthScale
	if depthScale == 0 {
		depthScale = 1.0
	}
	adjusted := make([]float32, len(base))
	for i, v := range base {
		adjusted[i] = clamp01(0.5 + depthScale*(v-0.5))
	}

	if params.Height.BlurRadius > 0 {
		adjusted = kernel.GaussianBlur(adjusted, w, h, float32(params.Height.BlurRadius))
	}

	bitDepth := params.Height.BitDepth
	if bitDepth != 8 && bitDepth != 16 {
		if warn != nil {
			warn("height.bit_depth must be 8 or 16, defaulting to 8")
		}
	}

	return imageset.FromPlanes(w, h, adjusted), nil
}
