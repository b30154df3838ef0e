package cli

import (
	"context"
	"fmt"
	stdio "io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/fpgakit/placer/pkg/pipeline"
	"github.com/fpgakit/placer/pkg/runs"
	"github.com/fpgakit/placer/pkg/search"
)

// placeFlags holds the flags of the place command that are not pipeline
// options themselves.
type placeFlags struct {
	output   string // base output path
	preset   string // TOML preset file
	noCache  bool   // disable the pipeline cache
	noTUI    bool   // disable the live progress UI
	archive  bool   // archive the run
	store    string // archive backend: file or mongo
	mongoURI string // mongo connection string
}

// placeCommand creates the place command running the full pipeline.
func (c *CLI) placeCommand() *cobra.Command {
	var (
		flags      placeFlags
		formatsStr string
		opts       pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "place",
		Short: "Place a netlist onto a fabric",
		Long: `Place a netlist onto a fabric.

The place command runs the full pipeline: build or load the fabric and the
netlist, seed an initial placement, improve it by parallel strict-descent
search, and render the requested output formats. Intermediate results are
cached locally, so repeating a run with the same options is fast.

A TOML preset file can carry any pipeline option; flags given on the
command line override the preset.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if flags.preset != "" {
				preset, err := pipeline.LoadPreset(flags.preset)
				if err != nil {
					return err
				}
				mergePreset(cmd, &opts, preset)
			}
			return c.runPlace(cmd.Context(), opts, flags)
		},
	}

	// Fabric flags
	cmd.Flags().IntVar(&opts.Width, "width", 0, "fabric width in sites")
	cmd.Flags().IntVar(&opts.Height, "height", 0, "fabric height in sites")
	cmd.Flags().StringVar(&opts.FabricPath, "fabric", "", "load fabric from JSON")

	// Netlist flags
	cmd.Flags().StringVar(&opts.NetlistPath, "netlist", "", "load netlist from JSON")
	cmd.Flags().IntVarP(&opts.Nodes, "nodes", "n", 0, "total node count")
	cmd.Flags().IntVar(&opts.IO, "io", 0, "nodes relabeled IO")
	cmd.Flags().IntVar(&opts.BRAM, "bram", 0, "nodes relabeled BRAM")
	cmd.Flags().IntVar(&opts.DSP, "dsp", 0, "nodes relabeled DSP")
	cmd.Flags().Float64Var(&opts.EdgeProb, "edge-prob", 0, "independent edge probability")

	// Search flags
	cmd.Flags().StringVar(&opts.Strategy, "strategy", "", "initial placement strategy: random (default), greedy")
	cmd.Flags().IntVar(&opts.Steps, "steps", 0, "search steps")
	cmd.Flags().IntVar(&opts.Neighbors, "neighbors", 0, "candidates per step")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "search seed")

	// Render flags
	cmd.Flags().StringVarP(&opts.VizType, "type", "t", "", "visualization type: board (default), nodelink")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot, csv, gif, mp4 (comma-separated)")
	cmd.Flags().Float64Var(&opts.CellSize, "cell-size", 0, "board cell size in pixels")
	cmd.Flags().BoolVar(&opts.ShowEdges, "edges", false, "draw netlist edges on the board")
	cmd.Flags().BoolVar(&opts.Labels, "labels", false, "draw node IDs on the board")
	cmd.Flags().BoolVar(&opts.Legend, "legend", false, "draw the site type legend")
	cmd.Flags().IntVar(&opts.FPS, "fps", 0, "animation frame rate")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute cached stages")

	// Command flags
	cmd.Flags().StringVarP(&flags.output, "output", "o", "placement", "output base path")
	cmd.Flags().StringVar(&flags.preset, "preset", "", "TOML preset file")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.noTUI, "no-tui", false, "disable the live progress UI")
	cmd.Flags().BoolVar(&flags.archive, "archive", false, "archive the run for later browsing")
	cmd.Flags().StringVar(&flags.store, "store", storeFile, "archive backend: file (default), mongo")
	cmd.Flags().StringVar(&flags.mongoURI, "mongo-uri", "", "mongo connection string (with --store mongo)")

	return cmd
}

// mergePreset fills opts from the preset for every flag the user did not set
// on the command line.
func mergePreset(cmd *cobra.Command, opts *pipeline.Options, preset pipeline.Options) {
	set := func(name string) bool { return cmd.Flags().Changed(name) }

	if !set("width") && preset.Width != 0 {
		opts.Width = preset.Width
	}
	if !set("height") && preset.Height != 0 {
		opts.Height = preset.Height
	}
	if !set("fabric") && preset.FabricPath != "" {
		opts.FabricPath = preset.FabricPath
	}
	if !set("netlist") && preset.NetlistPath != "" {
		opts.NetlistPath = preset.NetlistPath
	}
	if !set("nodes") && preset.Nodes != 0 {
		opts.Nodes = preset.Nodes
	}
	if !set("io") && preset.IO != 0 {
		opts.IO = preset.IO
	}
	if !set("bram") && preset.BRAM != 0 {
		opts.BRAM = preset.BRAM
	}
	if !set("dsp") && preset.DSP != 0 {
		opts.DSP = preset.DSP
	}
	if !set("edge-prob") && preset.EdgeProb != 0 {
		opts.EdgeProb = preset.EdgeProb
	}
	if !set("strategy") && preset.Strategy != "" {
		opts.Strategy = preset.Strategy
	}
	if !set("steps") && preset.Steps != 0 {
		opts.Steps = preset.Steps
	}
	if !set("neighbors") && preset.Neighbors != 0 {
		opts.Neighbors = preset.Neighbors
	}
	if !set("seed") && preset.Seed != 0 {
		opts.Seed = preset.Seed
	}
	if !set("type") && preset.VizType != "" {
		opts.VizType = preset.VizType
	}
	if !set("format") && len(preset.Formats) > 0 {
		opts.Formats = preset.Formats
	}
	if !set("cell-size") && preset.CellSize != 0 {
		opts.CellSize = preset.CellSize
	}
	if !set("edges") && preset.ShowEdges {
		opts.ShowEdges = true
	}
	if !set("labels") && preset.Labels {
		opts.Labels = true
	}
	if !set("legend") && preset.Legend {
		opts.Legend = true
	}
	if !set("fps") && preset.FPS != 0 {
		opts.FPS = preset.FPS
	}
}

// runPlace executes the pipeline and writes artifacts.
func (c *CLI) runPlace(ctx context.Context, opts pipeline.Options, flags placeFlags) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	var store runs.Store
	if flags.archive {
		var err error
		store, err = newStore(ctx, flags.store, flags.mongoURI)
		if err != nil {
			return fmt.Errorf("initialize run store: %w", err)
		}
	}

	runner, err := c.newRunner(flags.noCache, store)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	var result *pipeline.Result
	if !flags.noTUI && isatty.IsTerminal(os.Stderr.Fd()) {
		result, err = c.executeWithTUI(ctx, runner, opts)
	} else {
		spinner := newSpinnerWithContext(ctx, "Placing...")
		spinner.Start()
		result, err = runner.Execute(ctx, opts)
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	base := basePath(flags.output)
	for _, format := range opts.Formats {
		data, ok := result.Artifacts[format]
		if !ok {
			continue
		}
		path := base + "." + format
		if err := writeFile(path, data); err != nil {
			return err
		}
		printFile(path)
	}

	printSuccess("Placement complete")
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.SearchHit)
	printCost(result.Search.InitialCost, result.Search.FinalCost)

	if result.Run != nil {
		printDetail("run %s", result.Run.ID)
		printNewline()
		printNextStep("Inspect", "placer runs show "+result.Run.ID)
	}

	return nil
}

// executeWithTUI runs the pipeline with a live progress view on stderr.
// Quitting the view cancels the run.
func (c *CLI) executeWithTUI(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (*pipeline.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	samples := make(chan search.Sample, 64)
	opts.OnStep = func(s search.Sample) {
		// Drop samples the view cannot keep up with; the search must not
		// block on the UI.
		select {
		case samples <- s:
		default:
		}
	}
	// The progress view owns stderr while it runs.
	opts.Logger = newLogger(stdio.Discard, LogInfo)

	type outcome struct {
		result *pipeline.Result
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := runner.Execute(ctx, opts)
		close(samples)
		done <- outcome{result, err}
	}()

	model := NewSearchModel(opts.Steps, 0, samples)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil && ctx.Err() == nil {
		cancel()
		<-done
		return nil, fmt.Errorf("progress view: %w", err)
	}
	if m, ok := final.(SearchModel); ok && m.Quit {
		cancel()
	}

	out := <-done
	return out.result, out.err
}
