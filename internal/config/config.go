// Package config loads the nested key-value configuration document
// described by the external interfaces section into a Resolved value,
// which cmd/generate turns into a pipeline.Request, following the plain encoding/json load-then-resolve style used
// elsewhere in this codebase's ecosystem rather than a config framework.
package config

import (
	"encoding/json"
	"fmt"

	"github.com/AnyUserName/pbrforge/internal/derive"
	"github.com/AnyUserName/pbrforge/internal/imageset"
	"github.com/AnyUserName/pbrforge/internal/material"
	"github.com/AnyUserName/pbrforge/internal/tessellate"
)

// Document mirrors the recognized nested key-value structure. Load warns
// about unrecognized top-level keys; unrecognized nested keys are dropped
// without a warning, and no unrecognized key is kept.
type Document struct {
	Textures struct {
		Resolution struct {
			Width  int `json:"width"`
			Height int `json:"height"`
		} `json:"resolution"`
		Types    []string `json:"types"`
		Seamless bool     `json:"seamless"`
	} `json:"textures"`

	Material struct {
		BaseMaterial string `json:"base_material"`
		Properties   struct {
			RoughnessBase     *float32 `json:"roughness_base"`
			RoughnessVariation *float32 `json:"roughness_variation"`
			MetallicValue     *float32 `json:"metallic_value"`
			MetallicThreshold *float32 `json:"metallic_threshold"`
			NormalStrength    *float32 `json:"normal_strength"`
			AOMinValue        *float32 `json:"ao_min_value"`
			HeightDepthScale  *float32 `json:"height_depth_scale"`
			HeightBitDepth    *int     `json:"height_bit_depth"`
		} `json:"properties"`
	} `json:"material"`

	Tessellation struct {
		Method      string `json:"method"`
		BlendWidth  *int   `json:"blend_width"`
		CornerBlend bool   `json:"corner_blend"`
	} `json:"tessellation"`

	Generation struct {
		Model     string `json:"model"`
		APIKeyRef string `json:"api_key_ref"`
	} `json:"generation"`

	Output struct {
		Directory     string `json:"directory"`
		Prefix        string `json:"prefix"`
		CreatePreview bool   `json:"create_preview"`
	} `json:"output"`
}

// Resolved is a Document mapped onto the core's types, plus the warnings
// produced while mapping it. It carries neither the prompt nor the AI
// generator instance; the caller supplies those when building a request.
type Resolved struct {
	Resolution    imageset.Resolution
	MaterialClass material.Class
	Kinds         map[material.MapKind]bool
	Seamless      bool
	Tessellation  tessellate.Params
	Derivation    derive.Params
	OutputDir     string
	OutputPrefix  string
	CreatePreview bool
	Model         string
	APIKeyRef     string
	Warnings      []string
}

// Load parses raw JSON bytes into a Resolved configuration, warning about
// any top-level key it does not recognize.
func Load(raw []byte) (*Resolved, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	known := map[string]bool{
		"textures": true, "material": true, "tessellation": true,
		"generation": true, "output": true,
	}

	r := &Resolved{Derivation: derive.DefaultParams()}
	for key := range probe {
		if !known[key] {
			r.Warnings = append(r.Warnings, fmt.Sprintf("unrecognized config key %q ignored", key))
		}
	}

	r.Resolution = imageset.Resolution{
		Width:  doc.Textures.Resolution.Width,
		Height: doc.Textures.Resolution.Height,
	}
	r.Seamless = doc.Textures.Seamless
	r.Kinds = map[material.MapKind]bool{}
	if len(doc.Textures.Types) == 0 {
		for _, k := range material.AllCoreKinds() {
			r.Kinds[k] = true
		}
	} else {
		for _, t := range doc.Textures.Types {
			k, ok := material.ParseMapKind(t)
			if !ok {
				r.Warnings = append(r.Warnings, fmt.Sprintf("unrecognized texture type %q ignored", t))
				continue
			}
			r.Kinds[k] = true
		}
	}
	r.Kinds[material.Diffuse] = true

	r.MaterialClass = material.Parse(doc.Material.BaseMaterial)

	props := doc.Material.Properties
	if props.RoughnessBase != nil {
		r.Derivation.Roughness.BaseValue = *props.RoughnessBase
		r.Derivation.Roughness.UseDefaults = false
	}
	if props.RoughnessVariation != nil {
		r.Derivation.Roughness.Variation = *props.RoughnessVariation
	}
	if props.MetallicValue != nil {
		r.Derivation.Metallic.BaseValue = *props.MetallicValue
		r.Derivation.Metallic.UseDefaults = false
	}
	if props.MetallicThreshold != nil {
		r.Derivation.Metallic.Threshold = *props.MetallicThreshold
	}
	if props.NormalStrength != nil {
		r.Derivation.Normal.Strength = *props.NormalStrength
	} else {
		r.Derivation.Normal.Strength = 1.0
	}
	if props.AOMinValue != nil {
		r.Derivation.AO.MinAO = *props.AOMinValue
	} else {
		r.Derivation.AO.MinAO = 0.1
	}
	if props.HeightDepthScale != nil {
		r.Derivation.Height.DepthScale = *props.HeightDepthScale
	} else {
		r.Derivation.Height.DepthScale = 1.0
	}
	if props.HeightBitDepth != nil {
		r.Derivation.Height.BitDepth = *props.HeightBitDepth
	} else {
		r.Derivation.Height.BitDepth = 8
	}
	r.Derivation.AO.CavityScale = 4
	r.Derivation.AO.GlobalScale = 8
	r.Derivation.AO.Intensity = 1.0

	r.Tessellation = tessellate.Params{CornerBlend: doc.Tessellation.CornerBlend}
	switch doc.Tessellation.Method {
	case "mirror":
		r.Tessellation.Algorithm = tessellate.Mirror
	case "frequency":
		r.Tessellation.Algorithm = tessellate.Frequency
	default:
		r.Tessellation.Algorithm = tessellate.Offset
	}
	if doc.Tessellation.BlendWidth != nil {
		r.Tessellation.BlendWidth = uint32(*doc.Tessellation.BlendWidth)
	}

	r.OutputDir = doc.Output.Directory
	if r.OutputDir == "" {
		r.OutputDir = "./pbrforge_out"
	}
	r.OutputPrefix = doc.Output.Prefix
	if r.OutputPrefix == "" {
		r.OutputPrefix = "texture"
	}
	r.CreatePreview = doc.Output.CreatePreview
	r.Model = doc.Generation.Model
	r.APIKeyRef = doc.Generation.APIKeyRef

	return r, nil
}
