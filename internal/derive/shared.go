package derive

import "github.com/AnyUserName/pbrforge/internal/imageset"

// ComputeSharedHeight builds the raw luminance height plane the
// orchestrator freezes once and shares between the normal, height, and AO
// derivations, per the SharedHeight pipeline stage.
func ComputeSharedHeight(diffuse *imageset.Image) (*imageset.Image, error) {
	return imageset.ToGrayscaleLuminance(diffuse)
}
