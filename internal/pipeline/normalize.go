package pipeline

import (
	"image"

	"github.com/AnyUserName/pbrforge/internal/diffuse"
	"github.com/AnyUserName/pbrforge/internal/imageset"
)

// normalize wraps diffuse intake (C4) for the Normalize stage.
func normalize(bitmap image.Image, target imageset.Resolution) (*imageset.Image, error) {
	return diffuse.Intake(bitmap, target)
}
