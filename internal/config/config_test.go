package config

import (
	"testing"

	"github.com/AnyUserName/pbrforge/internal/material"
)

func TestLoadBasicDocument(t *testing.T) {
	raw := []byte(`{
		"textures": {"resolution": {"width": 512, "height": 256}, "types": ["normal", "roughness"], "seamless": true},
		"material": {"base_material": "brick"},
		"tessellation": {"method": "mirror", "blend_width": 24},
		"output": {"directory": "./out", "prefix": "wall"}
	}`)
	r, err := Load(raw)
	if err != nil {
		t.Fatal(err)
	}
	if r.Resolution.Width != 512 || r.Resolution.Height != 256 {
		t.Errorf("resolution: got %+v", r.Resolution)
	}
	if !r.Seamless {
		t.Error("expected seamless=true")
	}
	if r.MaterialClass != material.Brick {
		t.Errorf("material class: got %v, want brick", r.MaterialClass)
	}
	if !r.Kinds[material.Diffuse] || !r.Kinds[material.Normal] || !r.Kinds[material.Roughness] {
		t.Errorf("kinds: got %+v", r.Kinds)
	}
	if r.Kinds[material.Metallic] {
		t.Error("metallic was not requested and should not be included")
	}
	if r.OutputDir != "./out" || r.OutputPrefix != "wall" {
		t.Errorf("output: dir=%q prefix=%q", r.OutputDir, r.OutputPrefix)
	}
}

func TestLoadWarnsOnUnrecognizedTopLevelKey(t *testing.T) {
	raw := []byte(`{"textures": {}, "bogus_section": {"x": 1}}`)
	r, err := Load(raw)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, w := range r.Warnings {
		if w == `unrecognized config key "bogus_section" ignored` {
			found = true
		}
	}
	if !found {
		t.Errorf("expected warning about unrecognized key, got %v", r.Warnings)
	}
}

func TestLoadDefaultsToAllCoreKindsWhenTypesEmpty(t *testing.T) {
	raw := []byte(`{"textures": {"resolution": {"width": 64, "height": 64}}}`)
	r, err := Load(raw)
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range material.AllCoreKinds() {
		if !r.Kinds[k] {
			t.Errorf("expected kind %v to be included by default", k)
		}
	}
}

func TestLoadPropertyOverrides(t *testing.T) {
	raw := []byte(`{
		"material": {"base_material": "metal", "properties": {"metallic_threshold": 0.6, "normal_strength": 2.5}}
	}`)
	r, err := Load(raw)
	if err != nil {
		t.Fatal(err)
	}
	if r.Derivation.Metallic.Threshold != 0.6 {
		t.Errorf("metallic threshold: got %f", r.Derivation.Metallic.Threshold)
	}
	if r.Derivation.Normal.Strength != 2.5 {
		t.Errorf("normal strength: got %f", r.Derivation.Normal.Strength)
	}
}
