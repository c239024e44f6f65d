// Package output is the concrete external writer spec.md describes only by
// interface: it lays out the on-disk PNG set, an optional WebP preview
// grid, and the manifest sidecar, all outside the core pipeline package.
package output

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/pbrforge/internal/encoder"
	"github.com/AnyUserName/pbrforge/internal/hasher"
	"github.com/AnyUserName/pbrforge/internal/imageset"
	"github.com/AnyUserName/pbrforge/internal/manifest"
	"github.com/AnyUserName/pbrforge/internal/material"
	"github.com/AnyUserName/pbrforge/internal/pipeline"
	"github.com/AnyUserName/pbrforge/internal/tessellate"
	"github.com/AnyUserName/pbrforge/internal/thumbhash"
)

// Options configures where and how a Result is written.
type Options struct {
	Directory      string
	Prefix         string
	CreatePreview  bool
	HeightBitDepth int
	Prompt         string
	Material       material.Class
	Tessellation   *tessellate.Params
}

// Write lays out res on disk per the layout in the external interfaces
// section and returns the manifest describing what was written.
func Write(res *pipeline.Result, opts Options) (*manifest.Manifest, error) {
	if err := os.MkdirAll(opts.Directory, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	reg := encoder.NewRegistry()
	png := reg.Get("png")

	m := manifest.New(opts.Prompt, opts.Material.String(), manifest.Resolution{
		Width: res.Diffuse.Width, Height: res.Diffuse.Height,
	})
	m.Warnings = res.Warnings
	m.Cancelled = res.Cancelled
	m.ThumbHash = thumbhashB64(res.Diffuse)

	if opts.Tessellation != nil {
		isSeamless, maxEdgeDelta := tessellate.ValidateTiling(res.Diffuse)
		m.Tessellation = &manifest.Tessellation{
			Algorithm:    algorithmName(opts.Tessellation.Algorithm),
			BlendWidth:   int(opts.Tessellation.BlendWidth),
			MaxEdgeDelta: float64(maxEdgeDelta),
			IsSeamless:   isSeamless,
		}
	}

	writeOne := func(kind material.MapKind, img *imageset.Image, bitDepth int) error {
		if img == nil {
			return nil
		}
		var data []byte
		var err error
		if kind == material.Height && bitDepth == 16 {
			data, err = encode16BitPNG(img)
		} else {
			data, err = png.Encode(img.ToStdImage())
		}
		if err != nil {
			return fmt.Errorf("encode %s: %w", kind, err)
		}
		fileName := fmt.Sprintf("%s_%s_%dx%d.png", opts.Prefix, kind, img.Width, img.Height)
		path := filepath.Join(opts.Directory, fileName)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", fileName, err)
		}
		m.Maps[kind.String()] = manifest.Map{
			Kind: kind.String(), Width: img.Width, Height: img.Height,
			BitDepth: bitDepthOf(kind, bitDepth), Path: fileName,
			Hash: hasher.ContentHash(data, 16), Size: int64(len(data)),
		}
		return nil
	}

	if err := writeOne(material.Diffuse, res.Diffuse, 8); err != nil {
		return nil, err
	}
	for kind, img := range res.Maps {
		if err := writeOne(kind, img, opts.HeightBitDepth); err != nil {
			return nil, err
		}
	}

	if opts.CreatePreview {
		webp := reg.Get("webp")
		preview := tilePreview(res.Diffuse)
		data, err := webp.Encode(preview)
		if err == nil {
			previewName := opts.Prefix + "_preview.webp"
			_ = os.WriteFile(filepath.Join(opts.Directory, previewName), data, 0o644)
		}
	}

	m.ComputeStats()
	return m, nil
}

func bitDepthOf(kind material.MapKind, requested int) int {
	if kind == material.Height && requested == 16 {
		return 16
	}
	return 8
}

func encode16BitPNG(img *imageset.Image) ([]byte, error) {
	// image/png infers the bit depth from the color model of the source
	// image, so a Gray16 buffer is all that is needed here.
	gray16 := img.To16BitGray()
	reg := encoder.NewRegistry()
	return reg.Get("png").Encode(gray16)
}

func algorithmName(a tessellate.Algorithm) string {
	switch a {
	case tessellate.Mirror:
		return "mirror"
	case tessellate.Frequency:
		return "frequency"
	default:
		return "offset"
	}
}

func thumbhashB64(diffuse *imageset.Image) string {
	hash := thumbhash.Encode(diffuse.ToStdImage())
	return base64.StdEncoding.EncodeToString(hash)
}
