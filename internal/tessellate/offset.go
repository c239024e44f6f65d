package tessellate

import (
	"github.com/AnyUserName/pbrforge/internal/imageset"
	"github.com/AnyUserName/pbrforge/internal/kernel"
)

// applyOffset implements the Offset algorithm: quadrant swap, S-curve
// cross-fade over the interior seam the swap creates, and a light Gaussian
// smoothing confined to that same band.
func applyOffset(img *imageset.Image, params Params) (*imageset.Image, error) {
	w, h := img.Width, img.Height
	mask := offsetBandMask(w, h, int(params.BlendWidth))
	sigma := float32(params.BlendWidth) / 6

	planes := make([][]float32, img.Channels)
	for c := 0; c < img.Channels; c++ {
		original := img.Plane(c)
		swapped := roll2D(original, w, h, w/2, h/2)

		blended := make([]float32, w*h)
		for i := range blended {
			m := mask[i]
			blended[i] = swapped[i]*(1-m) + original[i]*m
		}

		smoothed := kernel.GaussianBlur(blended, w, h, sigma)
		final := make([]float32, w*h)
		for i := range final {
			m := mask[i]
			final[i] = smoothed[i]*m + blended[i]*(1-m)
		}
		planes[c] = final
	}
	return imageset.FromPlanes(w, h, planes...), nil
}

// offsetBandMask peaks at 1 on the two interior lines x==w/2 and y==h/2 and
// falls to 0 over blendWidth/2 on either side, following the S-curve.
func offsetBandMask(w, h, blendWidth int) []float32 {
	half := blendWidth / 2
	if half < 1 {
		half = 1
	}
	cx, cy := w/2, h/2
	out := make([]float32, w*h)
	for y := 0; y < h; y++ {
		dy := abs(y - cy)
		var mY float32
		if dy < half {
			mY = smoothstep(1 - float32(dy)/float32(half))
		}
		for x := 0; x < w; x++ {
			dx := abs(x - cx)
			var mX float32
			if dx < half {
				mX = smoothstep(1 - float32(dx)/float32(half))
			}
			m := mX
			if mY > m {
				m = mY
			}
			out[y*w+x] = m
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// roll2D performs a toroidal shift by (dx, dy), the quadrant-swap step.
func roll2D(plane []float32, w, h, dx, dy int) []float32 {
	out := make([]float32, w*h)
	for y := 0; y < h; y++ {
		sy := ((y-dy)%h + h) % h
		for x := 0; x < w; x++ {
			sx := ((x-dx)%w + w) % w
			out[y*w+x] = plane[sy*w+sx]
		}
	}
	return out
}
