package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/pbrforge/internal/manifest"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_manifest>",
	Short: "Display statistics for a generated texture set",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, args []string) error {
	path := args[0]

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, "pbrforge.manifest.json")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	var m manifest.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parse manifest: %w", err)
	}

	printStats(&m)
	return nil
}

func printStats(m *manifest.Manifest) {
	fmt.Println()
	fmt.Printf("  Manifest version: %d\n", m.Version)
	fmt.Printf("  Generated:        %s\n", m.GeneratedAt)
	fmt.Printf("  Prompt:           %q\n", m.Prompt)
	fmt.Printf("  Material:         %s\n", m.Material)
	fmt.Printf("  Resolution:       %dx%d\n", m.Resolution.Width, m.Resolution.Height)
	fmt.Println()

	if m.Tessellation != nil {
		fmt.Println("  Tessellation:")
		fmt.Printf("    algorithm:       %s\n", m.Tessellation.Algorithm)
		fmt.Printf("    blend_width:     %d\n", m.Tessellation.BlendWidth)
		fmt.Printf("    max_edge_delta:  %.6f\n", m.Tessellation.MaxEdgeDelta)
		fmt.Printf("    is_seamless:     %v\n", m.Tessellation.IsSeamless)
		fmt.Println()
	}

	fmt.Println("  Maps:")
	for _, kind := range []string{"diffuse", "normal", "roughness", "metallic", "ao", "height", "emissive"} {
		mp, ok := m.Maps[kind]
		if !ok {
			continue
		}
		fmt.Printf("    %-10s %dx%d  %2d-bit  %s  %s\n", mp.Kind, mp.Width, mp.Height, mp.BitDepth, formatBytes(mp.Size), mp.Path)
	}
	fmt.Println()

	fmt.Printf("  Total maps:       %d\n", m.Stats.TotalMaps)
	fmt.Printf("  Total output:     %s\n", formatBytes(m.Stats.TotalOutputBytes))
	fmt.Printf("  ThumbHash:        %v\n", m.ThumbHash != "")
	fmt.Println()

	if m.Cancelled {
		fmt.Println("  ⚠ run was cancelled; result is partial")
	}
	if len(m.Warnings) > 0 {
		fmt.Printf("  Warnings (%d):\n", len(m.Warnings))
		for _, w := range m.Warnings {
			fmt.Printf("    ⚠ %s\n", w)
		}
	}
	fmt.Println()
}
