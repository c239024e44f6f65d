package derive

import (
	"context"
	"math"

	"github.com/AnyUserName/pbrforge/internal/imageset"
	"github.com/AnyUserName/pbrforge/internal/kernel"
	"github.com/AnyUserName/pbrforge/internal/material"
)

type normalDeriver struct{}

func (normalDeriver) Kind() material.MapKind { return material.Normal }

// Derive implements C5: height -> tangent-space normal via a single Sobel
// pass, RGB-encoded as [-1,1]^3 -> [0,1]^3.
func (normalDeriver) Derive(_ context.Context, diffuse, height *imageset.Image, _ material.Class, params Params, warn func(string)) (*imageset.Image, error) {
	strength := params.Normal.Strength
	if strength < 0.1 || strength > 5.0 {
		if strength <= 0 {
			strength = 1.0
		} else if strength < 0.1 {
			strength = 0.1
		} else {
			strength = 5.0
		}
		if warn != nil {
			warn("normal.strength clamped to [0.1, 5.0]")
		}
	}

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

	if params.Normal.BlurRadius > 0 {
		base = kernel.GaussianBlur(base, w, h, float32(params.Normal.BlurRadius))
	}

	gx, gy := kernel.SobelXY(base, w, h)

	r := make([]float32, w*h)
	g := make([]float32, w*h)
	b := make([]float32, w*h)
	sign := float32(1)
	if params.Normal.InvertHeight {
		sign = -1
	}
	for i := range gx {
		nx := -gx[i] * strength * sign
		ny := -gy[i] * strength * sign
		nz := float32(1)
		length := float32(math.Sqrt(float64(nx*nx + ny*ny + nz*nz)))
		if length == 0 {
			length = 1
		}
		nx, ny, nz = nx/length, ny/length, nz/length
		r[i] = (nx + 1) / 2
		g[i] = (ny + 1) / 2
		b[i] = (nz + 1) / 2
	}

	return imageset.FromPlanes(w, h, r, g, b), nil
}
