package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AnyUserName/pbrforge/internal/aiclient"
	"github.com/AnyUserName/pbrforge/internal/config"
	"github.com/AnyUserName/pbrforge/internal/derive"
	"github.com/AnyUserName/pbrforge/internal/imageset"
	"github.com/AnyUserName/pbrforge/internal/manifest"
	"github.com/AnyUserName/pbrforge/internal/material"
	"github.com/AnyUserName/pbrforge/internal/output"
	"github.com/AnyUserName/pbrforge/internal/pipeline"
	"github.com/AnyUserName/pbrforge/internal/tessellate"
	"github.com/spf13/cobra"
)

var (
	genConfigPath  string
	genMaterial    string
	genResolution  string
	genOutDir      string
	genTypes       []string
	genPreview     bool
	genSeamless    bool
	genAlgorithm   string
	genBlendWidth  int
	genStub        bool
	genTimeout     time.Duration
)

var generateCmd = &cobra.Command{
	Use:   "generate <prompt>",
	Short: "Generate a PBR texture set from a prompt",
	Long: `Requests a diffuse image for the prompt, optionally tessellates it
seamless, and derives normal, roughness, metallic, ambient occlusion and
height maps in parallel, writing a PNG per map plus a manifest sidecar.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&genConfigPath, "config", "c", "", "JSON config file (nested textures/material/tessellation/generation/output keys)")
	generateCmd.Flags().StringVarP(&genMaterial, "material", "m", "", "material class (stone, brick, wood, metal, fabric, concrete)")
	generateCmd.Flags().StringVarP(&genResolution, "resolution", "r", "512x512", "output resolution WxH")
	generateCmd.Flags().StringVarP(&genOutDir, "output", "o", "./pbrforge_out", "output directory")
	generateCmd.Flags().StringSliceVar(&genTypes, "types", nil, "map kinds to produce (default: all six)")
	generateCmd.Flags().BoolVar(&genPreview, "preview", false, "also write a 2x2 tiled preview")
	generateCmd.Flags().BoolVar(&genSeamless, "seamless", false, "tessellate the diffuse image seamless before deriving maps")
	generateCmd.Flags().StringVar(&genAlgorithm, "algorithm", "offset", "tessellation algorithm: offset, mirror, frequency")
	generateCmd.Flags().IntVar(&genBlendWidth, "blend-width", 0, "tessellation blend width in pixels (0 = spec default)")
	generateCmd.Flags().BoolVar(&genStub, "stub", true, "use the deterministic offline stub generator instead of a real AI collaborator")
	generateCmd.Flags().DurationVar(&genTimeout, "timeout", 30*time.Second, "AI collaborator request timeout")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	prompt := args[0]
	start := time.Now()

	resolved, err := resolveGenerateRequest(cmd)
	if err != nil {
		return err
	}

	if !genStub {
		return fmt.Errorf("no AI collaborator wired besides --stub; the core treats generation as an external contract")
	}
	var gen aiclient.Generator = aiclient.Stub{}

	req := pipeline.Request{
		Prompt:          prompt,
		Resolution:      resolved.Resolution,
		MaterialClass:   resolved.MaterialClass,
		Kinds:           resolved.Kinds,
		Tessellation:    resolved.Tessellation,
		Derivation:      resolved.Derivation,
		Seamless:        resolved.Seamless,
		Generator:       gen,
		GenerateTimeout: genTimeout,
	}

	for _, w := range resolved.Warnings {
		logVerbose("config: %s", w)
	}

	logVerbose("resolution=%dx%d material=%s seamless=%v", req.Resolution.Width, req.Resolution.Height, req.MaterialClass, req.Seamless)

	p := pipeline.New(verbose)
	res, err := p.Run(cmd.Context(), req)
	if res == nil && err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	cancelled := err != nil

	m, werr := output.Write(res, output.Options{
		Directory:      resolved.OutputDir,
		Prefix:         resolved.OutputPrefix,
		CreatePreview:  resolved.CreatePreview || genPreview,
		HeightBitDepth: resolved.Derivation.Height.BitDepth,
		Prompt:         prompt,
		Material:       resolved.MaterialClass,
		Tessellation:   &resolved.Tessellation,
	})
	if werr != nil {
		return fmt.Errorf("write output: %w", werr)
	}

	manifestPath := filepath.Join(resolved.OutputDir, "pbrforge.manifest.json")
	if err := manifest.WriteJSON(m, manifestPath); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	printGenerateReport(m, time.Since(start), cancelled)
	return nil
}

// resolveGenerateRequest merges --config (if given) with flag overrides.
// Only flags the user actually set on the command line take precedence
// over the config file; an untouched flag must never clobber a value the
// config already supplied, so this checks cmd.Flags().Changed rather than
// comparing against the flag's default.
func resolveGenerateRequest(cmd *cobra.Command) (*config.Resolved, error) {
	changed := cmd.Flags().Changed

	var resolved *config.Resolved
	if genConfigPath != "" {
		raw, err := os.ReadFile(genConfigPath)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		resolved, err = config.Load(raw)
		if err != nil {
			return nil, err
		}
	} else {
		resolved = &config.Resolved{
			Derivation:   derive.DefaultParams(),
			Kinds:        map[material.MapKind]bool{},
			OutputDir:    "./pbrforge_out",
			OutputPrefix: "texture",
		}
		for _, k := range material.AllCoreKinds() {
			resolved.Kinds[k] = true
		}
	}

	if changed("resolution") || resolved.Resolution.Width == 0 {
		w, h, err := parseResolution(genResolution)
		if err != nil {
			return nil, err
		}
		resolved.Resolution = imageset.Resolution{Width: w, Height: h}
	}
	if genMaterial != "" {
		resolved.MaterialClass = material.Parse(genMaterial)
	}
	if changed("types") {
		resolved.Kinds = map[material.MapKind]bool{material.Diffuse: true}
		for _, t := range genTypes {
			k, ok := material.ParseMapKind(t)
			if !ok {
				resolved.Warnings = append(resolved.Warnings, fmt.Sprintf("unrecognized --types entry %q ignored", t))
				continue
			}
			resolved.Kinds[k] = true
		}
	}
	if changed("output") || resolved.OutputDir == "" {
		resolved.OutputDir = genOutDir
	}
	resolved.Seamless = resolved.Seamless || genSeamless
	if changed("algorithm") {
		switch strings.ToLower(genAlgorithm) {
		case "mirror":
			resolved.Tessellation.Algorithm = tessellate.Mirror
		case "frequency":
			resolved.Tessellation.Algorithm = tessellate.Frequency
		case "offset":
			resolved.Tessellation.Algorithm = tessellate.Offset
		default:
			resolved.Tessellation.Algorithm = tessellate.Offset
			resolved.Warnings = append(resolved.Warnings, fmt.Sprintf("unrecognized --algorithm %q, defaulting to offset", genAlgorithm))
		}
	}
	if genBlendWidth > 0 {
		resolved.Tessellation.BlendWidth = uint32(genBlendWidth)
	}
	return resolved, nil
}

func parseResolution(s string) (int, int, error) {
	parts := strings.SplitN(strings.ToLower(s), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid --resolution %q, expected WxH", s)
	}
	var w, h int
	if _, err := fmt.Sscanf(parts[0], "%d", &w); err != nil {
		return 0, 0, fmt.Errorf("invalid --resolution width: %w", err)
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &h); err != nil {
		return 0, 0, fmt.Errorf("invalid --resolution height: %w", err)
	}
	return w, h, nil
}

func printGenerateReport(m *manifest.Manifest, elapsed time.Duration, cancelled bool) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════╗")
	fmt.Println("║             pbrforge generate complete            ║")
	fmt.Println("╚══════════════════════════════════════════════════╝")
	fmt.Println()

	if cancelled {
		fmt.Println("  ⚠ run was cancelled; partial result written")
	}

	fmt.Printf("  Material:    %s\n", m.Material)
	fmt.Printf("  Resolution:  %dx%d\n", m.Resolution.Width, m.Resolution.Height)
	if m.Tessellation != nil {
		fmt.Printf("  Tessellation: %s, blend_width=%d, seamless=%v, max_edge_delta=%.5f\n",
			m.Tessellation.Algorithm, m.Tessellation.BlendWidth, m.Tessellation.IsSeamless, m.Tessellation.MaxEdgeDelta)
	}
	fmt.Printf("  Maps:        %d\n", m.Stats.TotalMaps)
	fmt.Printf("  Output size: %s\n", formatBytes(m.Stats.TotalOutputBytes))
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	if len(m.Warnings) > 0 {
		fmt.Printf("  Warnings (%d):\n", len(m.Warnings))
		for _, w := range m.Warnings {
			fmt.Printf("    ⚠ %s\n", w)
		}
	}
	fmt.Println()

	data, _ := json.Marshal(m)
	fmt.Printf("  Manifest:    pbrforge.manifest.json (%s)\n", formatBytes(int64(len(data))))
	fmt.Println()
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
