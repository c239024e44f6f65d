// Package imageset provides the planar float32 image buffer every kernel
// and derivation stage in this repository operates on, plus the handful of
// conversions (resize, luminance, uint8 round-trip) the rest of the
// pipeline builds on.
package imageset

import (
	"image"
	"image/color"
	"math"

	"github.com/AnyUserName/pbrforge/internal/perr"
	"github.com/disintegration/imaging"
)

// Image is a planar pixel buffer. Samples are float32 in [0,1]; Channels is
// one of {1,3,4}. len(Data) must equal Width*Height*Channels.
type Image struct {
	Width, Height int
	Channels      int
	Data          []float32
}

// Resolution is a target output size; both fields must be positive.
type Resolution struct {
	Width, Height int
}

// MinDimension is the smallest width or height the pipeline accepts.
const MinDimension = 16

// New allocates a zeroed image of the given shape.
func New(w, h, channels int) *Image {
	return &Image{Width: w, Height: h, Channels: channels, Data: make([]float32, w*h*channels)}
}

// Validate checks the shape invariant and rejects non-finite samples,
// matching the InvalidShape / NumericError contract in the component spec.
func (img *Image) Validate() error {
	if img.Width <= 0 || img.Height <= 0 || img.Channels <= 0 {
		return &perr.InvalidShape{Reason: "non-positive dimension"}
	}
	if len(img.Data) != img.Width*img.Height*img.Channels {
		return &perr.InvalidShape{Reason: "data length does not match width*height*channels"}
	}
	for _, v := range img.Data {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return &perr.NumericError{Reason: "non-finite sample"}
		}
	}
	return nil
}

// At returns the sample at (x, y, c) without bounds checks; callers in this
// package always operate within known-good loops.
func (img *Image) At(x, y, c int) float32 {
	return img.Data[(y*img.Width+x)*img.Channels+c]
}

// Set writes the sample at (x, y, c).
func (img *Image) Set(x, y, c int, v float32) {
	img.Data[(y*img.Width+x)*img.Channels+c] = v
}

// Plane extracts channel c as a standalone single-channel float32 slice,
// the shape kernel.go and tessellate.go operate on.
func (img *Image) Plane(c int) []float32 {
	out := make([]float32, img.Width*img.Height)
	for i := 0; i < img.Width*img.Height; i++ {
		out[i] = img.Data[i*img.Channels+c]
	}
	return out
}

// FromPlanes assembles an Image from one plane per channel.
func FromPlanes(w, h int, planes ...[]float32) *Image {
	channels := len(planes)
	img := New(w, h, channels)
	for c, p := range planes {
		for i := 0; i < w*h; i++ {
			img.Data[i*channels+c] = p[i]
		}
	}
	return img
}

// Clone returns a deep copy, used whenever a stage must mutate what would
// otherwise be a shared, frozen buffer.
func (img *Image) Clone() *Image {
	out := &Image{Width: img.Width, Height: img.Height, Channels: img.Channels}
	out.Data = make([]float32, len(img.Data))
	copy(out.Data, img.Data)
	return out
}

// FromStdImage converts a decoded image.Image (as returned by the AI
// collaborator) into an RGB float32 Image in [0,1].
func FromStdImage(src image.Image) *Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := New(w, h, 3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			i := (y*w + x) * 3
			out.Data[i+0] = float32(r) / 65535
			out.Data[i+1] = float32(g) / 65535
			out.Data[i+2] = float32(bl) / 65535
		}
	}
	return out
}

// ToStdImage renders the buffer back to a standard library image for
// encoding. Single-channel images become image.Gray; three/four-channel
// images become image.NRGBA.
func (img *Image) ToStdImage() image.Image {
	switch img.Channels {
	case 1:
		out := image.NewGray(image.Rect(0, 0, img.Width, img.Height))
		for y := 0; y < img.Height; y++ {
			for x := 0; x < img.Width; x++ {
				out.SetGray(x, y, color.Gray{Y: to8(img.At(x, y, 0))})
			}
		}
		return out
	default:
		out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
		for y := 0; y < img.Height; y++ {
			for x := 0; x < img.Width; x++ {
				a := uint8(255)
				if img.Channels == 4 {
					a = to8(img.At(x, y, 3))
				}
				out.SetNRGBA(x, y, color.NRGBA{
					R: to8(img.At(x, y, 0)),
					G: to8(img.At(x, y, 1)),
					B: to8(img.At(x, y, 2)),
					A: a,
				})
			}
		}
		return out
	}
}

// To16BitGray renders a single-channel image at 16-bit precision, the path
// the height map uses when DerivationParams.BitDepth == 16.
func (img *Image) To16BitGray() *image.Gray16 {
	out := image.NewGray16(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			v := clamp01(img.At(x, y, 0))
			out.SetGray16(x, y, color.Gray16{Y: uint16(v * 65535)})
		}
	}
	return out
}

func to8(v float32) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Resize implements the resize(image, w, h) primitive: Lanczos-3 for both
// up- and down-scaling, backed by disintegration/imaging. Fails only on a
// zero-area target.
func Resize(img *Image, w, h int) (*Image, error) {
	if w <= 0 || h <= 0 {
		return nil, &perr.InvalidShape{Reason: "zero-area resize target"}
	}
	if w == img.Width && h == img.Height {
		return img.Clone(), nil
	}
	resized := imaging.Resize(img.ToStdImage(), w, h, imaging.Lanczos)
	if img.Channels == 1 {
		out := New(w, h, 1)
		b := resized.Bounds()
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				r, _, _, _ := resized.At(b.Min.X+x, b.Min.Y+y).RGBA()
				out.Set(x, y, 0, float32(r)/65535)
			}
		}
		return out, nil
	}
	return FromStdImage(resized), nil
}

// ToGrayscaleLuminance implements to_grayscale_luminance: BT.601 weights,
// output float in [0,1], single channel.
func ToGrayscaleLuminance(rgb *Image) (*Image, error) {
	if rgb.Channels < 3 {
		return nil, &perr.InvalidShape{Reason: "to_grayscale_luminance requires an RGB image"}
	}
	out := New(rgb.Width, rgb.Height, 1)
	for i := 0; i < rgb.Width*rgb.Height; i++ {
		r := rgb.Data[i*rgb.Channels+0]
		g := rgb.Data[i*rgb.Channels+1]
		b := rgb.Data[i*rgb.Channels+2]
		out.Data[i] = 0.299*r + 0.587*g + 0.114*b
	}
	return out, nil
}
