package cli

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fpgakit/placer/pkg/io"
	"github.com/fpgakit/placer/pkg/netlist"
	"github.com/fpgakit/placer/pkg/pipeline"
	"github.com/fpgakit/placer/pkg/render/nodelink"
)

// netlistOpts holds the command-line flags for the netlist command.
type netlistOpts struct {
	input    string  // load from JSON instead of generating
	output   string  // output file (.json, .dot, .svg)
	nodes    int     // total node count
	ioNodes  int     // nodes relabeled IO
	bram     int     // nodes relabeled BRAM
	dsp      int     // nodes relabeled DSP
	edgeProb float64 // independent edge probability
	seed     int64   // generation seed
	labels   bool    // detailed node labels in diagrams
}

// netlistCommand creates the netlist command for generating netlists.
func (c *CLI) netlistCommand() *cobra.Command {
	var opts netlistOpts

	cmd := &cobra.Command{
		Use:   "netlist",
		Short: "Generate or inspect a netlist",
		Long: `Generate or inspect a netlist.

Without --in, a random netlist is generated: every node pair gets an edge
with probability --edge-prob, the requested counts are relabeled IO, BRAM
and DSP, and isolated nodes are connected so every node has at least one
edge. Generation is seeded, so the same flags always produce the same
netlist.

The output format follows the -o extension: .json for later runs, .dot for
Graphviz, .svg for a rendered node-link diagram.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runNetlist(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.input, "in", "", "load netlist from JSON instead of generating")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (.json, .dot or .svg)")
	cmd.Flags().IntVarP(&opts.nodes, "nodes", "n", pipeline.DefaultNodes, "total node count")
	cmd.Flags().IntVar(&opts.ioNodes, "io", 0, "nodes relabeled IO")
	cmd.Flags().IntVar(&opts.bram, "bram", 0, "nodes relabeled BRAM")
	cmd.Flags().IntVar(&opts.dsp, "dsp", 0, "nodes relabeled DSP")
	cmd.Flags().Float64Var(&opts.edgeProb, "edge-prob", netlist.DefaultEdgeProb, "independent edge probability")
	cmd.Flags().Int64Var(&opts.seed, "seed", 42, "generation seed")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "detailed node labels in diagrams")

	return cmd
}

// runNetlist builds the netlist and writes or prints it.
func (c *CLI) runNetlist(ctx context.Context, opts *netlistOpts) error {
	var (
		net *netlist.Netlist
		err error
	)
	if opts.input != "" {
		net, err = io.ImportNetlist(opts.input)
		if err != nil {
			return fmt.Errorf("load netlist %s: %w", opts.input, err)
		}
	} else {
		rng := rand.New(rand.NewSource(opts.seed))
		net, err = netlist.Generate(netlist.GenOptions{
			Nodes:    opts.nodes,
			IO:       opts.ioNodes,
			BRAM:     opts.bram,
			DSP:      opts.dsp,
			EdgeProb: opts.edgeProb,
		}, rng)
		if err != nil {
			return fmt.Errorf("generate netlist: %w", err)
		}
	}

	printSuccess("Netlist ready")
	printDetail("%s", net.Summary())

	if opts.output != "" {
		if err := writeNetlistFile(net, opts.output, opts.labels); err != nil {
			return err
		}
		printFile(opts.output)
		if filepath.Ext(opts.output) == ".json" {
			printNewline()
			printNextStep("Place", "placer place --netlist "+opts.output)
		}
	}

	return nil
}

// writeNetlistFile writes the netlist in the format implied by the extension.
func writeNetlistFile(net *netlist.Netlist, path string, labels bool) error {
	switch filepath.Ext(path) {
	case ".json":
		return io.ExportNetlist(net, path)
	case ".dot":
		dot := nodelink.ToDOT(net, nodelink.Options{Detailed: labels})
		return writeFile(path, []byte(dot))
	case ".svg":
		dot := nodelink.ToDOT(net, nodelink.Options{Detailed: labels})
		svg, err := nodelink.RenderSVG(dot)
		if err != nil {
			return err
		}
		return writeFile(path, svg)
	default:
		return fmt.Errorf("unsupported netlist output extension: %s (use .json, .dot or .svg)", filepath.Ext(path))
	}
}
