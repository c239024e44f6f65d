package tessellate

import (
	"github.com/AnyUserName/pbrforge/internal/imageset"
	"github.com/AnyUserName/pbrforge/internal/kernel"
)

// applyFrequency implements the Frequency algorithm: Hann window, FFT,
// soft radial high-pass, IFFT, with the DC term restored via a separate
// additive pass carrying the original mean. The Hann window forces the
// windowed signal to zero at every edge, which the DFT's periodic basis
// then wraps exactly — the source of the "exact by construction" guarantee.
func applyFrequency(img *imageset.Image, params Params) (*imageset.Image, error) {
	w, h := img.Width, img.Height
	window := kernel.HannWindow2D(w, h)
	r0 := 0.01 * float64(minInt(w, h))

	planes := make([][]float32, img.Channels)
	for c := 0; c < img.Channels; c++ {
		plane := img.Plane(c)

		var mean float64
		for _, v := range plane {
			mean += float64(v)
		}
		mean /= float64(len(plane))

		windowed := make([]float32, w*h)
		for i, v := range plane {
			windowed[i] = v * window[i]
		}

		spectrum, err := kernel.FFT2(windowed, w, h)
		if err != nil {
			return nil, err
		}
		kernel.RadialHighPass(spectrum, r0)
		recovered := kernel.IFFT2(spectrum)

		out := make([]float32, w*h)
		for i, v := range recovered {
			out[i] = v + float32(mean)
		}
		planes[c] = out
	}
	return imageset.FromPlanes(w, h, planes...), nil
}
