package output

import (
	"image"

	"github.com/AnyUserName/pbrforge/internal/imageset"
)

// tilePreview renders a 2x2 tiled composite of the diffuse master, a quick
// visual seam check for the optional preview grid.
func tilePreview(diffuse *imageset.Image) image.Image {
	w, h := diffuse.Width, diffuse.Height
	src := diffuse.ToStdImage()
	out := image.NewNRGBA(image.Rect(0, 0, w*2, h*2))
	for ty := 0; ty < 2; ty++ {
		for tx := 0; tx < 2; tx++ {
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					out.Set(tx*w+x, ty*h+y, src.At(x, y))
				}
			}
		}
	}
	return out
}
