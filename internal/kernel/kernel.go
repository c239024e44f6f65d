// Package kernel implements the shared numeric primitives the tessellation
// engine and every derivation stage build on: separable Gaussian blur,
// Sobel gradients, bilinear rotation, and a generic rank filter — all with
// the edge-replication boundary policy the component design mandates.
package kernel

import "math"

// GaussianBlur separably blurs a w×h plane with the given sigma. Radius is
// ceil(3*sigma), and the boundary policy is edge-replication.
func GaussianBlur(plane []float32, w, h int, sigma float32) []float32 {
	if sigma <= 0 {
		out := make([]float32, len(plane))
		copy(out, plane)
		return out
	}
	kernel1D := gaussianKernel1D(sigma)
	tmp := convolveHorizontal(plane, w, h, kernel1D)
	return convolveVertical(tmp, w, h, kernel1D)
}

func gaussianKernel1D(sigma float32) []float32 {
	radius := int(math.Ceil(float64(sigma) * 3))
	if radius < 1 {
		radius = 1
	}
	size := 2*radius + 1
	k := make([]float32, size)
	var sum float32
	s2 := 2 * sigma * sigma
	for i := -radius; i <= radius; i++ {
		v := float32(math.Exp(-float64(i*i) / float64(s2)))
		k[i+radius] = v
		sum += v
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

func clampIdx(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func convolveHorizontal(plane []float32, w, h int, k []float32) []float32 {
	radius := len(k) / 2
	out := make([]float32, w*h)
	for y := 0; y < h; y++ {
		row := y * w
		for x := 0; x < w; x++ {
			var acc float32
			for i, kv := range k {
				sx := clampIdx(x+i-radius, 0, w-1)
				acc += plane[row+sx] * kv
			}
			out[row+x] = acc
		}
	}
	return out
}

func convolveVertical(plane []float32, w, h int, k []float32) []float32 {
	radius := len(k) / 2
	out := make([]float32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc float32
			for i, kv := range k {
				sy := clampIdx(y+i-radius, 0, h-1)
				acc += plane[sy*w+x] * kv
			}
			out[y*w+x] = acc
		}
	}
	return out
}

// GaussianBlur1D blurs only along one axis, used by the roughness
// derivation's grain-axis and directional-streak treatments.
func GaussianBlur1D(plane []float32, w, h int, sigma float32, horizontal bool) []float32 {
	if sigma <= 0 {
		out := make([]float32, len(plane))
		copy(out, plane)
		return out
	}
	k := gaussianKernel1D(sigma)
	if horizontal {
		return convolveHorizontal(plane, w, h, k)
	}
	return convolveVertical(plane, w, h, k)
}

// SobelXY computes horizontal and vertical gradients with edge-replicated
// boundaries.
func SobelXY(plane []float32, w, h int) (gx, gy []float32) {
	gx = make([]float32, w*h)
	gy = make([]float32, w*h)
	kx := [3][3]float32{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	ky := [3][3]float32{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sx, sy float32
			for j := -1; j <= 1; j++ {
				for i := -1; i <= 1; i++ {
					px := clampIdx(x+i, 0, w-1)
					py := clampIdx(y+j, 0, h-1)
					v := plane[py*w+px]
					sx += v * kx[j+1][i+1]
					sy += v * ky[j+1][i+1]
				}
			}
			gx[y*w+x] = sx
			gy[y*w+x] = sy
		}
	}
	return gx, gy
}

// Rotate resamples a plane by angle_deg around its center using bilinear
// interpolation and edge-replicated boundaries; output has the same shape
// as the input (reshape=false).
func Rotate(plane []float32, w, h int, angleDeg float32) []float32 {
	theta := float64(angleDeg) * math.Pi / 180
	cos, sin := math.Cos(theta), math.Sin(theta)
	cx, cy := float64(w-1)/2, float64(h-1)/2
	out := make([]float32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			// inverse rotation to find source sample location
			sx := cos*dx + sin*dy + cx
			sy := -sin*dx + cos*dy + cy
			out[y*w+x] = bilinear(plane, w, h, sx, sy)
		}
	}
	return out
}

func bilinear(plane []float32, w, h int, sx, sy float64) float32 {
	x0 := int(math.Floor(sx))
	y0 := int(math.Floor(sy))
	x1, y1 := x0+1, y0+1
	fx := float32(sx - float64(x0))
	fy := float32(sy - float64(y0))
	sample := func(xi, yi int) float32 {
		xi = clampIdx(xi, 0, w-1)
		yi = clampIdx(yi, 0, h-1)
		return plane[yi*w+xi]
	}
	v00, v10 := sample(x0, y0), sample(x1, y0)
	v01, v11 := sample(x0, y1), sample(x1, y1)
	top := v00 + (v10-v00)*fx
	bot := v01 + (v11-v01)*fx
	return top + (bot-top)*fy
}

// RankFilter applies a min ("erode") or max ("dilate") filter over a square
// window of the given radius, edge-replicated. It backs the metallic
// derivation's morphological open.
func RankFilter(plane []float32, w, h, radius int, dilate bool) []float32 {
	out := make([]float32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			best := plane[y*w+x]
			for j := -radius; j <= radius; j++ {
				for i := -radius; i <= radius; i++ {
					px := clampIdx(x+i, 0, w-1)
					py := clampIdx(y+j, 0, h-1)
					v := plane[py*w+px]
					if dilate {
						if v > best {
							best = v
						}
					} else if v < best {
						best = v
					}
				}
			}
			out[y*w+x] = best
		}
	}
	return out
}

// MorphOpen erodes then dilates by a single pixel, removing speckle from a
// binary (or near-binary) mask without shrinking larger regions.
func MorphOpen(plane []float32, w, h int) []float32 {
	eroded := RankFilter(plane, w, h, 1, false)
	return RankFilter(eroded, w, h, 1, true)
}
