package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fpgakit/placer/pkg/io"
	"github.com/fpgakit/placer/pkg/pipeline"
	"github.com/fpgakit/placer/pkg/search"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string  // output file base path
	vizType  string  // visualization type: "board", "nodelink"
	cellSize float64 // board cell size in pixels
	edges    bool    // draw netlist edges on the board
	labels   bool    // draw node IDs
	legend   bool    // draw the site type legend
}

// renderCommand creates the render command for re-rendering saved placements.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		opts       renderOpts
		formatsStr string
	)

	cmd := &cobra.Command{
		Use:   "render [placement.json]",
		Short: "Re-render a saved placement",
		Long: `Re-render a saved placement.

The render command takes a placement JSON file (produced by 'place -f json'
or 'runs export') and renders it again, possibly with different formats or
board options. Animation formats need the original search and are not
available here.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], parseFormats(formatsStr), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (default: input path)")
	cmd.Flags().StringVarP(&opts.vizType, "type", "t", "", "visualization type: board (default), nodelink")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot (comma-separated)")
	cmd.Flags().Float64Var(&opts.cellSize, "cell-size", 0, "board cell size in pixels")
	cmd.Flags().BoolVar(&opts.edges, "edges", false, "draw netlist edges on the board")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "draw node IDs on the board")
	cmd.Flags().BoolVar(&opts.legend, "legend", false, "draw the site type legend")

	return cmd
}

// runRender loads the placement and renders the requested formats.
func (c *CLI) runRender(ctx context.Context, input string, formats []string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	for _, f := range formats {
		if pipeline.AnimationFormats[f] {
			return fmt.Errorf("format %s needs the original search; run 'placer place -f %s' instead", f, f)
		}
		if f == pipeline.FormatCSV {
			printWarning("a re-rendered placement has no cost series; the csv will be empty")
		}
	}

	p, err := io.ImportPlacement(input)
	if err != nil {
		return fmt.Errorf("load placement %s: %w", input, err)
	}
	cost, err := p.Cost()
	if err != nil {
		return fmt.Errorf("placement cost: %w", err)
	}
	logger.Debugf("Loaded placement: %d nodes, cost %d", p.Netlist().NodeCount(), cost)

	popts := pipeline.Options{
		VizType:   opts.vizType,
		Formats:   formats,
		CellSize:  opts.cellSize,
		ShowEdges: opts.edges,
		Labels:    opts.labels,
		Legend:    opts.legend,
	}
	res := &search.Result{Final: p, InitialCost: cost, FinalCost: cost}

	prog := newProgress(logger)
	artifacts, err := pipeline.RenderArtifacts(res, popts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(artifacts)))

	base := opts.output
	if base == "" {
		base = input
	}
	base = basePath(base)

	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := base + "." + format
		if err := writeFile(path, data); err != nil {
			return err
		}
		printFile(path)
	}

	printSuccess("Render complete")
	printStats(p.Netlist().NodeCount(), p.Netlist().EdgeCount(), false)

	return nil
}
