package derive

import (
	"context"

	"github.com/AnyUserName/pbrforge/internal/imageset"
	"github.com/AnyUserName/pbrforge/internal/material"
)

// Deriver is the capability interface the source's abstract base
// "texture processor" class is replaced with: one variant per map kind,
// dispatched by the orchestrator from a heterogeneous slice rather than
// through an inheritance hierarchy.
type Deriver interface {
	Kind() material.MapKind
	// Derive reads diffuse and (when non-nil) the shared height plane, both
	// frozen, read-only inputs, and returns a fresh image. warn logs a
	// non-fatal, clamped-parameter or degraded-input diagnostic.
	Derive(ctx context.Context, diffuse, height *imageset.Image, class material.Class, params Params, warn func(string)) (*imageset.Image, error)
}

// All returns one Deriver per mandated map kind, in a stable order, plus
// the emissive supplement. Diffuse itself has no Deriver: it is the
// pipeline's input, not a derived output.
func All() []Deriver {
	return []Deriver{
		normalDeriver{},
		roughnessDeriver{},
		metallicDeriver{},
		heightDeriver{},
		aoDeriver{},
		emissiveDeriver{},
	}
}
