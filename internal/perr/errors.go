// Package perr defines the error taxonomy shared by every stage of the
// texture pipeline. Numeric kernels clamp out-of-range parameters and log a
// warning instead of raising; only structural problems and the three fatal
// conditions listed here ever stop a run.
package perr

import (
	"fmt"

	"github.com/AnyUserName/pbrforge/internal/material"
)

// InvalidRequest signals a malformed PipelineRequest: bad resolution, empty
// kinds, an out-of-range parameter that cannot be clamped away. Fatal.
type InvalidRequest struct {
	Reason string
}

func (e *InvalidRequest) Error() string { return "invalid request: " + e.Reason }

// UpstreamImageError wraps a failure to obtain or decode the AI-provided
// diffuse bitmap. Fatal; the pipeline aborts before any map is produced.
type UpstreamImageError struct {
	Cause error
}

func (e *UpstreamImageError) Error() string { return "upstream image error: " + e.Cause.Error() }
func (e *UpstreamImageError) Unwrap() error { return e.Cause }

// InvalidShape signals that a kernel received a buffer whose dimensions
// don't match its stated width/height/channels, or a zero-area image.
type InvalidShape struct {
	Reason string
}

func (e *InvalidShape) Error() string { return "invalid shape: " + e.Reason }

// NumericError signals a kernel encountered a non-finite sample (NaN/Inf)
// in a buffer it was asked to treat as well-formed floating data.
type NumericError struct {
	Reason string
}

func (e *NumericError) Error() string { return "numeric error: " + e.Reason }

// DerivationError reports that a single map's derivation failed. Non-fatal:
// the orchestrator records it as a warning and omits the map.
type DerivationError struct {
	Kind  material.MapKind
	Cause error
}

func (e *DerivationError) Error() string {
	return fmt.Sprintf("derivation failed for %s: %v", e.Kind, e.Cause)
}
func (e *DerivationError) Unwrap() error { return e.Cause }

// Cancelled reports that cooperative cancellation was observed. The
// orchestrator returns a partial PipelineResult alongside this error.
type Cancelled struct{}

func (e *Cancelled) Error() string { return "cancelled" }
