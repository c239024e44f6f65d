package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/pbrforge/internal/manifest"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <manifest_path>",
	Short: "Validate a pbrforge manifest and check referenced files exist",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	manifestPath := args[0]

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	var m manifest.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parse manifest: %w", err)
	}

	baseDir := filepath.Dir(manifestPath)
	errs := validateManifest(&m, baseDir)

	if len(errs) == 0 {
		fmt.Println("  ✓ Manifest is valid")
		fmt.Printf("  ✓ %d maps, %s total — all files present\n", m.Stats.TotalMaps, formatBytes(m.Stats.TotalOutputBytes))
		if m.Tessellation != nil && !m.Tessellation.IsSeamless {
			fmt.Printf("  ⚠ recorded max_edge_delta %.6f exceeds the seamless threshold\n", m.Tessellation.MaxEdgeDelta)
		}
		return nil
	}

	fmt.Printf("  ✗ Manifest has %d error(s):\n", len(errs))
	for _, e := range errs {
		fmt.Printf("    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errs))
}

func validateManifest(m *manifest.Manifest, baseDir string) []string {
	var errs []string

	if m.Version != manifest.SupportedManifestVersion {
		errs = append(errs, fmt.Sprintf("unsupported manifest version: %d", m.Version))
	}

	if _, ok := m.Maps["diffuse"]; !ok {
		errs = append(errs, "manifest has no diffuse map, which every result must contain")
	}

	for kind, mp := range m.Maps {
		if mp.Width <= 0 || mp.Height <= 0 {
			errs = append(errs, fmt.Sprintf("map %q: invalid dimensions %dx%d", kind, mp.Width, mp.Height))
		}
		if mp.Path == "" {
			errs = append(errs, fmt.Sprintf("map %q: missing path", kind))
			continue
		}
		if mp.Hash == "" {
			errs = append(errs, fmt.Sprintf("map %q: missing hash", kind))
		}

		fullPath := filepath.Join(baseDir, mp.Path)
		info, err := os.Stat(fullPath)
		if err != nil {
			errs = append(errs, fmt.Sprintf("map %q: file not found: %s", kind, mp.Path))
			continue
		}
		if mp.Size > 0 && info.Size() != mp.Size {
			errs = append(errs, fmt.Sprintf("map %q: size mismatch: manifest=%d, disk=%d", kind, mp.Size, info.Size()))
		}
	}

	mapCount := len(m.Maps)
	if m.Stats.TotalMaps != mapCount {
		errs = append(errs, fmt.Sprintf("stats.total_maps mismatch: %d != %d", m.Stats.TotalMaps, mapCount))
	}

	return errs
}
