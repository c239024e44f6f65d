// Package diffuse implements diffuse intake (C4): converting whatever
// bitmap the AI collaborator returned into the canonical diffuse master at
// the pipeline's target resolution.
package diffuse

import (
	"image"

	"github.com/AnyUserName/pbrforge/internal/imageset"
	"github.com/AnyUserName/pbrforge/internal/perr"

	// Registered so the AI collaborator is free to hand back any of these
	// container formats; image.Decode picks the right codec.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Intake converts an AI-provided bitmap to the canonical diffuse master:
// resampled (Lanczos-3) to the requested resolution. The collaborator may
// return any size; this is the only place that resizes to the pipeline's
// fixed working resolution.
func Intake(bitmap image.Image, target imageset.Resolution) (*imageset.Image, error) {
	if bitmap == nil {
		return nil, &perr.UpstreamImageError{Cause: errNilBitmap{}}
	}
	src := imageset.FromStdImage(bitmap)
	if target.Width <= 0 || target.Height <= 0 {
		return nil, &perr.InvalidShape{Reason: "non-positive target resolution"}
	}
	resized, err := imageset.Resize(src, target.Width, target.Height)
	if err != nil {
		return nil, err
	}
	return resized, nil
}

type errNilBitmap struct{}

func (errNilBitmap) Error() string { return "AI collaborator returned a nil bitmap" }
