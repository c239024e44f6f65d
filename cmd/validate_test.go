package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/AnyUserName/pbrforge/internal/manifest"
)

func TestValidateManifestDetectsMissingDiffuse(t *testing.T) {
	m := &manifest.Manifest{Version: manifest.SupportedManifestVersion, Maps: map[string]manifest.Map{}}
	errs := validateManifest(m, t.TempDir())
	found := false
	for _, e := range errs {
		if e == "manifest has no diffuse map, which every result must contain" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a missing-diffuse error, got %v", errs)
	}
}

func TestValidateManifestDetectsMissingFile(t *testing.T) {
	dir := t.TempDir()
	m := &manifest.Manifest{
		Version: manifest.SupportedManifestVersion,
		Maps: map[string]manifest.Map{
			"diffuse": {Kind: "diffuse", Width: 64, Height: 64, Path: "missing.png", Hash: "abc", Size: 100},
		},
	}
	errs := validateManifest(m, dir)
	if len(errs) == 0 {
		t.Fatal("expected an error for a missing file on disk")
	}
}

func TestValidateManifestPassesOnConsistentData(t *testing.T) {
	dir := t.TempDir()
	data := []byte("fake png bytes")
	if err := os.WriteFile(filepath.Join(dir, "tex_diffuse_64x64.png"), data, 0o644); err != nil {
		t.Fatal(err)
	}
	m := &manifest.Manifest{
		Version: manifest.SupportedManifestVersion,
		Maps: map[string]manifest.Map{
			"diffuse": {Kind: "diffuse", Width: 64, Height: 64, Path: "tex_diffuse_64x64.png", Hash: "abc", Size: int64(len(data))},
		},
		Stats: manifest.Stats{TotalMaps: 1, TotalOutputBytes: int64(len(data))},
	}
	errs := validateManifest(m, dir)
	if len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidateManifestDetectsSizeMismatch(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tex_diffuse_64x64.png"), []byte("short"), 0o644); err != nil {
		t.Fatal(err)
	}
	m := &manifest.Manifest{
		Version: manifest.SupportedManifestVersion,
		Maps: map[string]manifest.Map{
			"diffuse": {Kind: "diffuse", Width: 64, Height: 64, Path: "tex_diffuse_64x64.png", Hash: "abc", Size: 99999},
		},
	}
	errs := validateManifest(m, dir)
	if len(errs) == 0 {
		t.Fatal("expected a size-mismatch error")
	}
}

func TestFormatBytes(t *testing.T) {
	if formatBytes(500) != "500 B" {
		t.Errorf("formatBytes(500) = %q", formatBytes(500))
	}
	if formatBytes(2048) != "2.0 KB" {
		t.Errorf("formatBytes(2048) = %q", formatBytes(2048))
	}
	if formatBytes(5 << 20) != "5.0 MB" {
		t.Errorf("formatBytes(5<<20) = %q", formatBytes(5<<20))
	}
}
