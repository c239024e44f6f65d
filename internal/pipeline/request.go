// Package pipeline implements the orchestrator (C10): stage sequencing,
// the shared diffuse/height intermediates, and the parallel Fanout worker
// pool that derives every requested map.
package pipeline

import (
	"time"

	"github.com/AnyUserName/pbrforge/internal/aiclient"
	"github.com/AnyUserName/pbrforge/internal/derive"
	"github.com/AnyUserName/pbrforge/internal/imageset"
	"github.com/AnyUserName/pbrforge/internal/material"
	"github.com/AnyUserName/pbrforge/internal/tessellate"
)

// Request is the fully-resolved PipelineRequest the core consumes; the CLI
// and config loader are responsible for building one of these from flags
// or a config file.
type Request struct {
	Prompt        string
	Resolution    imageset.Resolution
	MaterialClass material.Class
	Kinds         map[material.MapKind]bool
	Tessellation  tessellate.Params
	Derivation    derive.Params
	Seamless      bool

	Generator       aiclient.Generator
	GenerateTimeout time.Duration
}

// Result is the PipelineResult: the diffuse master plus any subset of
// derived maps that completed, and the warnings accumulated along the way.
type Result struct {
	Diffuse      *imageset.Image
	Maps         map[material.MapKind]*imageset.Image
	Warnings     []string
	MaxEdgeDelta float32
	Cancelled    bool
}
