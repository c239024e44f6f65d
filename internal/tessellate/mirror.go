package tessellate

import "github.com/AnyUserName/pbrforge/internal/imageset"

// applyMirror implements the Mirror algorithm: each edge band is eased
// toward the average of itself and its opposite edge, so both edges
// converge on an identical value at the boundary while the interior is
// left untouched.
func applyMirror(img *imageset.Image, params Params) (*imageset.Image, error) {
	w, h := img.Width, img.Height
	bw := int(params.BlendWidth)

	planes := make([][]float32, img.Channels)
	for c := 0; c < img.Channels; c++ {
		plane := append([]float32(nil), img.Plane(c)...)
		mirrorEdgesHorizontal(plane, w, h, bw)
		mirrorEdgesVertical(plane, w, h, bw)
		if params.CornerBlend {
			mirrorCorners(plane, w, h, bw)
		}
		planes[c] = plane
	}
	return imageset.FromPlanes(w, h, planes...), nil
}

func mirrorEdgesHorizontal(plane []float32, w, h, bw int) {
	for y := 0; y < h; y++ {
		row := y * w
		for x := 0; x < bw && x < w; x++ {
			mirrorX := w - 1 - x
			t := float32(x) / float32(bw)
			m := smoothstep(t)
			avg := 0.5 * (plane[row+x] + plane[row+mirrorX])
			newLeft := avg*(1-m) + plane[row+x]*m
			newRight := avg*(1-m) + plane[row+mirrorX]*m
			plane[row+x] = newLeft
			plane[row+mirrorX] = newRight
		}
	}
}

func mirrorEdgesVertical(plane []float32, w, h, bw int) {
	for x := 0; x < w; x++ {
		for y := 0; y < bw && y < h; y++ {
			mirrorY := h - 1 - y
			t := float32(y) / float32(bw)
			m := smoothstep(t)
			avg := 0.5 * (plane[y*w+x] + plane[mirrorY*w+x])
			newTop := avg*(1-m) + plane[y*w+x]*m
			newBottom := avg*(1-m) + plane[mirrorY*w+x]*m
			plane[y*w+x] = newTop
			plane[mirrorY*w+x] = newBottom
		}
	}
}

// mirrorCorners nudges the four corner blocks toward the mean of all four
// corner pixels so the 4-corner cross-delta stays within tolerance too.
func mirrorCorners(plane []float32, w, h, bw int) {
	corners := []int{0, w - 1, (h-1)*w + 0, (h-1)*w + (w - 1)}
	var mean float32
	for _, idx := range corners {
		mean += plane[idx]
	}
	mean /= float32(len(corners))

	blend := func(cx, cy, dx, dy int) {
		for j := 0; j < bw && j < h; j++ {
			y := cy + dy*j
			if y < 0 || y >= h {
				continue
			}
			for i := 0; i < bw && i < w; i++ {
				x := cx + dx*i
				if x < 0 || x >= w {
					continue
				}
				dist := i
				if j > dist {
					dist = j
				}
				t := float32(dist) / float32(bw)
				m := smoothstep(t)
				idx := y*w + x
				plane[idx] = mean*(1-m) + plane[idx]*m
			}
		}
	}
	blend(0, 0, 1, 1)
	blend(w-1, 0, -1, 1)
	blend(0, h-1, 1, -1)
	blend(w-1, h-1, -1, -1)
}
