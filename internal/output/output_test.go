package output

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/AnyUserName/pbrforge/internal/aiclient"
	"github.com/AnyUserName/pbrforge/internal/derive"
	"github.com/AnyUserName/pbrforge/internal/imageset"
	"github.com/AnyUserName/pbrforge/internal/material"
	"github.com/AnyUserName/pbrforge/internal/pipeline"
	"github.com/AnyUserName/pbrforge/internal/tessellate"
)

func buildResult(t *testing.T) *pipeline.Result {
	t.Helper()
	kinds := map[material.MapKind]bool{}
	for _, k := range material.AllCoreKinds() {
		kinds[k] = true
	}
	req := pipeline.Request{
		Prompt:        "brick wall, weathered",
		Resolution:    imageset.Resolution{Width: 32, Height: 32},
		MaterialClass: material.Brick,
		Kinds:         kinds,
		Tessellation:  tessellate.Params{Algorithm: tessellate.Offset},
		Derivation:    derive.DefaultParams(),
		Seamless:      true,
		Generator:     aiclient.Stub{},
	}
	res, err := pipeline.New(false).Run(context.Background(), req)
	if err != nil {
		t.Fatalf("pipeline run failed: %v", err)
	}
	return res
}

func TestWriteProducesManifestAndFiles(t *testing.T) {
	res := buildResult(t)
	dir := t.TempDir()
	tess := tessellate.Params{Algorithm: tessellate.Offset, BlendWidth: 8}
	m, err := Write(res, Options{
		Directory:      dir,
		Prefix:         "wall",
		CreatePreview:  true,
		HeightBitDepth: 16,
		Prompt:         "brick wall, weathered",
		Material:       material.Brick,
		Tessellation:   &tess,
	})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	if _, ok := m.Maps["diffuse"]; !ok {
		t.Fatal("manifest missing diffuse entry")
	}
	for _, k := range material.AllCoreKinds() {
		mp, ok := m.Maps[k.String()]
		if !ok {
			t.Fatalf("manifest missing %s entry", k)
		}
		path := filepath.Join(dir, mp.Path)
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("expected file for %s at %s: %v", k, path, err)
		}
		if info.Size() != mp.Size {
			t.Errorf("%s: manifest size %d, file size %d", k, mp.Size, info.Size())
		}
	}

	heightMap := m.Maps["height"]
	if heightMap.BitDepth != 16 {
		t.Errorf("height bit depth = %d, want 16", heightMap.BitDepth)
	}
	diffuseMap := m.Maps["diffuse"]
	if diffuseMap.BitDepth != 8 {
		t.Errorf("diffuse bit depth = %d, want 8", diffuseMap.BitDepth)
	}

	if _, err := os.Stat(filepath.Join(dir, "wall_preview.webp")); err != nil {
		t.Errorf("expected a preview file to be written: %v", err)
	}

	if m.Tessellation == nil {
		t.Fatal("expected tessellation diagnostics to be populated")
	}
	if m.Tessellation.Algorithm != "offset" {
		t.Errorf("tessellation algorithm = %q, want offset", m.Tessellation.Algorithm)
	}

	if m.ThumbHash == "" {
		t.Error("expected a non-empty thumbhash")
	}

	if m.Stats.TotalMaps != len(m.Maps) {
		t.Errorf("stats.total_maps = %d, want %d", m.Stats.TotalMaps, len(m.Maps))
	}
}

func TestWriteWithoutPreviewSkipsPreviewFile(t *testing.T) {
	res := buildResult(t)
	dir := t.TempDir()
	_, err := Write(res, Options{
		Directory:     dir,
		Prefix:        "wall",
		CreatePreview: false,
		Prompt:        "brick wall, weathered",
		Material:      material.Brick,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "wall_preview.webp")); !os.IsNotExist(err) {
		t.Error("expected no preview file when CreatePreview is false")
	}
}

func TestTilePreviewDoublesDimensions(t *testing.T) {
	diffuse := imageset.New(16, 16, 3)
	for i := range diffuse.Data {
		diffuse.Data[i] = 0.4
	}
	out := tilePreview(diffuse)
	b := out.Bounds()
	if b.Dx() != 32 || b.Dy() != 32 {
		t.Errorf("tilePreview dims = %dx%d, want 32x32", b.Dx(), b.Dy())
	}
}
