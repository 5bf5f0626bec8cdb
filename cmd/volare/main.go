package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hugozap/volare/pkg/components"
	"github.com/hugozap/volare/pkg/fontmetrics"
	"github.com/hugozap/volare/pkg/layout"
	"github.com/hugozap/volare/pkg/record"
	"github.com/hugozap/volare/pkg/render"
	"github.com/hugozap/volare/pkg/scene"
	"github.com/hugozap/volare/pkg/volconfig"
)

const version = "0.1.0"

var (
	inputPath  = flag.String("input", "", "Path to a JSONL scene description (required)")
	outputPath = flag.String("output", "out.svg", "Path to write the rendered SVG")
	configPath = flag.String("config", "", "Path to a YAML pipeline config (optional)")
	verbose    = flag.Bool("verbose", false, "Enable verbose output")
	versionF   = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *versionF {
		fmt.Printf("volare version %s\n", version)
		os.Exit(0)
	}

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -input flag is required")
		flag.Usage()
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg := volconfig.Default()
	if *configPath != "" {
		if *verbose {
			fmt.Printf("Loading configuration from %s\n", *configPath)
		}
		loaded, err := volconfig.Load(*configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}
	if err := cfg.ValidateComponents(components.List()); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	in, err := os.Open(*inputPath)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer in.Close()

	if *verbose {
		fmt.Printf("Parsing %s\n", *inputPath)
	}
	rootID, records, err := record.Parse(in)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if *verbose {
		fmt.Printf("Building tree from root %q (%d records)\n", rootID, len(records))
	}
	tree, builder, err := scene.Build(rootID, records, components.Lookup)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	fm := fontmetrics.NewFixedAdvance()
	fm.AdvanceRatio = cfg.Font.AdvanceRatio
	fm.Leading = cfg.Font.Leading

	start := time.Now()
	geo, conn, diag, err := layout.Layout(ctx, tree, builder, fm)
	if err != nil {
		return fmt.Errorf("layout failed: %w", err)
	}
	if *verbose {
		fmt.Printf("Layout completed in %v (%d warnings)\n", time.Since(start), len(diag.Warnings))
		for _, w := range diag.Warnings {
			fmt.Printf("  warning: %s\n", w)
		}
	}

	root := geo[tree.Handle]
	renderCfg := render.SVGOptions{
		Width:      maxInt(cfg.Render.Width, int(root.W)),
		Height:     maxInt(cfg.Render.Height, int(root.H)),
		Background: cfg.Render.Background,
	}

	out, err := os.Create(*outputPath)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer out.Close()

	svgRenderer := render.NewSVGRenderer(out, renderCfg)
	if err := render.Render(tree, builder, geo, conn, svgRenderer); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	svgRenderer.Close()

	fmt.Printf("Wrote %s\n", *outputPath)
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
