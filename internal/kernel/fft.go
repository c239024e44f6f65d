package kernel

import (
	"math"
	"math/cmplx"

	"github.com/AnyUserName/pbrforge/internal/perr"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Spectrum is a padded 2-D complex spectrum plus the original (unpadded)
// dimensions needed to crop after an inverse transform.
type Spectrum struct {
	W, H         int // padded, power-of-two dimensions
	OrigW, OrigH int
	Data         []complex128 // row-major, W*H
}

func nextPow2(v int) int {
	p := 1
	for p < v {
		p <<= 1
	}
	return p
}

// FFT2 computes the 2-D FFT of a real plane, zero-padding each dimension to
// the next power of two first, as the component design requires.
func FFT2(plane []float32, w, h int) (*Spectrum, error) {
	if w <= 0 || h <= 0 {
		return nil, &perr.InvalidShape{Reason: "fft2 on zero-area plane"}
	}
	pw, ph := nextPow2(w), nextPow2(h)
	data := make([]complex128, pw*ph)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			data[y*pw+x] = complex(float64(plane[y*w+x]), 0)
		}
	}

	rowFFT := fourier.NewCmplxFFT(pw)
	row := make([]complex128, pw)
	for y := 0; y < ph; y++ {
		copy(row, data[y*pw:(y+1)*pw])
		out := rowFFT.Coefficients(nil, row)
		copy(data[y*pw:(y+1)*pw], out)
	}

	colFFT := fourier.NewCmplxFFT(ph)
	col := make([]complex128, ph)
	for x := 0; x < pw; x++ {
		for y := 0; y < ph; y++ {
			col[y] = data[y*pw+x]
		}
		out := colFFT.Coefficients(nil, col)
		for y := 0; y < ph; y++ {
			data[y*pw+x] = out[y]
		}
	}

	return &Spectrum{W: pw, H: ph, OrigW: w, OrigH: h, Data: data}, nil
}

// IFFT2 inverts FFT2 and crops back to the original dimensions.
func IFFT2(s *Spectrum) []float32 {
	data := make([]complex128, len(s.Data))
	copy(data, s.Data)

	colFFT := fourier.NewCmplxFFT(s.H)
	col := make([]complex128, s.H)
	for x := 0; x < s.W; x++ {
		for y := 0; y < s.H; y++ {
			col[y] = data[y*s.W+x]
		}
		out := colFFT.Sequence(nil, col)
		for y := 0; y < s.H; y++ {
			data[y*s.W+x] = out[y] / complex(float64(s.H), 0)
		}
	}

	rowFFT := fourier.NewCmplxFFT(s.W)
	row := make([]complex128, s.W)
	for y := 0; y < s.H; y++ {
		copy(row, data[y*s.W:(y+1)*s.W])
		out := rowFFT.Sequence(nil, row)
		for x := 0; x < s.W; x++ {
			data[y*s.W+x] = out[x] / complex(float64(s.W), 0)
		}
	}

	out := make([]float32, s.OrigW*s.OrigH)
	for y := 0; y < s.OrigH; y++ {
		for x := 0; x < s.OrigW; x++ {
			out[y*s.OrigW+x] = float32(real(data[y*s.W+x]))
		}
	}
	return out
}

// HannWindow2D returns a separable w×h Hann window in [0,1].
func HannWindow2D(w, h int) []float32 {
	hx := make([]float64, w)
	for x := 0; x < w; x++ {
		if w == 1 {
			hx[x] = 1
			continue
		}
		hx[x] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(x)/float64(w-1))
	}
	hy := make([]float64, h)
	for y := 0; y < h; y++ {
		if h == 1 {
			hy[y] = 1
			continue
		}
		hy[y] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(y)/float64(h-1))
	}
	out := make([]float32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out[y*w+x] = float32(hx[x] * hy[y])
		}
	}
	return out
}

// RadialHighPass applies H(r) = 1 - exp(-(r/r0)^2), measuring r from the
// spectrum's DC corner (index 0,0) with toroidal wrap distance, matching
// the frequency-domain layout FFT2 produces.
func RadialHighPass(s *Spectrum, r0 float64) {
	if r0 <= 0 {
		r0 = 1
	}
	for y := 0; y < s.H; y++ {
		fy := float64(y)
		if fy > float64(s.H)/2 {
			fy -= float64(s.H)
		}
		for x := 0; x < s.W; x++ {
			fx := float64(x)
			if fx > float64(s.W)/2 {
				fx -= float64(s.W)
			}
			r := math.Hypot(fx, fy)
			mask := 1 - math.Exp(-(r/r0)*(r/r0))
			s.Data[y*s.W+x] *= complex(mask, 0)
		}
	}
}

// Energy returns the total squared magnitude of a spectrum, used by tests
// checking Parseval's-theorem energy preservation.
func Energy(s *Spectrum) float64 {
	var total float64
	for _, v := range s.Data {
		total += cmplx.Abs(v) * cmplx.Abs(v)
	}
	return total
}
