// Package tessellate implements the three seamless-tiling algorithms and
// the seam validator every derivation stage relies on to keep its output
// tileable.
package tessellate

import (
	"math"

	"github.com/AnyUserName/pbrforge/internal/imageset"
	"github.com/AnyUserName/pbrforge/internal/perr"
)

// Algorithm selects which seamless-tiling technique to run.
type Algorithm int

const (
	Offset Algorithm = iota
	Mirror
	Frequency
)

// Params configures a tessellation pass.
type Params struct {
	Algorithm   Algorithm
	BlendWidth  uint32
	CornerBlend bool
}

// DefaultBlendWidth implements the single default rule fixed in the data
// model: max(16, min(w,h)/32).
func DefaultBlendWidth(w, h int) uint32 {
	m := w
	if h < m {
		m = h
	}
	bw := m / 32
	if bw < 16 {
		bw = 16
	}
	return uint32(bw)
}

// clampBlendWidth lowers a blend width above min(w,h)/2 (at least 1) to
// that bound, raises one below 8 to 8, and reports whether it had to.
func clampBlendWidth(bw uint32, w, h int) (uint32, bool) {
	m := w
	if h < m {
		m = h
	}
	max := uint32(m / 2)
	if max < 1 {
		max = 1
	}
	if bw > max {
		return max, true
	}
	if bw < 8 {
		return 8, true
	}
	return bw, false
}

// smoothstep is the S-curve 3t^2 - 2t^3 (equivalently t^2(3-2t)) used by
// both the Offset and Mirror algorithms.
func smoothstep(t float32) float32 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}

// Apply runs the configured algorithm on img and returns a new, same-sized
// image. warn receives human-readable diagnostic messages for non-fatal
// parameter adjustments (blend_width clamping).
func Apply(img *imageset.Image, params Params, warn func(string)) (*imageset.Image, error) {
	if img.Width == 0 || img.Height == 0 {
		return nil, &perr.InvalidShape{Reason: "zero-area image"}
	}
	bw, clamped := clampBlendWidth(params.BlendWidth, img.Width, img.Height)
	if clamped && warn != nil {
		warn("blend_width out of range, clamped")
	}
	params.BlendWidth = bw

	switch params.Algorithm {
	case Mirror:
		return applyMirror(img, params)
	case Frequency:
		return applyFrequency(img, params)
	default:
		return applyOffset(img, params)
	}
}

// ValidateTiling implements validate_tiling: the maximum edge and 4-corner
// delta, measured in linear luminance, plus a pass/fail against the 8-bit
// tolerance of 1/255.
func ValidateTiling(img *imageset.Image) (isSeamless bool, maxEdgeDelta float32) {
	lum, err := luminancePlane(img)
	if err != nil {
		return false, 1
	}
	w, h := img.Width, img.Height

	var maxDelta float32
	for y := 0; y < h; y++ {
		d := abs32(lum[y*w+0] - lum[y*w+w-1])
		if d > maxDelta {
			maxDelta = d
		}
	}
	for x := 0; x < w; x++ {
		d := abs32(lum[0*w+x] - lum[(h-1)*w+x])
		if d > maxDelta {
			maxDelta = d
		}
	}
	corners := []float32{lum[0], lum[w-1], lum[(h-1)*w], lum[(h-1)*w+w-1]}
	for i := 0; i < len(corners); i++ {
		for j := i + 1; j < len(corners); j++ {
			d := abs32(corners[i] - corners[j])
			if d > maxDelta {
				maxDelta = d
			}
		}
	}

	const tolerance = float32(1.0 / 255.0)
	return maxDelta <= tolerance, maxDelta
}

func luminancePlane(img *imageset.Image) ([]float32, error) {
	if img.Channels >= 3 {
		lum, err := imageset.ToGrayscaleLuminance(img)
		if err != nil {
			return nil, err
		}
		return lum.Data, nil
	}
	return img.Plane(0), nil
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func floorDiv(v, d int) int {
	return int(math.Floor(float64(v) / float64(d)))
}
