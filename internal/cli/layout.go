package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fpgakit/placer/pkg/fabric"
	"github.com/fpgakit/placer/pkg/io"
	"github.com/fpgakit/placer/pkg/pipeline"
	"github.com/fpgakit/placer/pkg/render/board"
)

// layoutCommand creates the layout command for building fabrics.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		width  int
		height int
		input  string
		output string
		ascii  bool
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Build or inspect a fabric of typed sites",
		Long: `Build or inspect a fabric of typed sites.

Without --fabric, a simple fabric is generated: IO sites along the border,
BRAM columns every tenth column, CLB sites everywhere else, and empty
corners. With --fabric, an existing fabric JSON file is loaded instead.

The output format follows the -o extension: .json writes the fabric for
later runs, .svg renders the site map.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), width, height, input, output, ascii)
		},
	}

	cmd.Flags().IntVar(&width, "width", pipeline.DefaultWidth, "fabric width in sites")
	cmd.Flags().IntVar(&height, "height", pipeline.DefaultHeight, "fabric height in sites")
	cmd.Flags().StringVar(&input, "fabric", "", "load fabric from JSON instead of generating")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.json or .svg)")
	cmd.Flags().BoolVar(&ascii, "ascii", false, "print the fabric as ASCII art")

	return cmd
}

// runLayout builds the fabric and writes or prints it.
func (c *CLI) runLayout(ctx context.Context, width, height int, input, output string, ascii bool) error {
	var (
		g   *fabric.Grid
		err error
	)
	if input != "" {
		g, err = io.ImportFabric(input)
		if err != nil {
			return fmt.Errorf("load fabric %s: %w", input, err)
		}
	} else {
		g, err = fabric.Simple(width, height)
		if err != nil {
			return fmt.Errorf("build fabric: %w", err)
		}
	}

	printSuccess("Fabric ready")
	printDetail("%s", g.Summary())

	if ascii {
		printNewline()
		fmt.Print(g.ASCII())
	}

	if output != "" {
		if err := writeFabricFile(g, output); err != nil {
			return err
		}
		printFile(output)
		if strings.HasSuffix(output, ".json") {
			printNewline()
			printNextStep("Place", "placer place --fabric "+output)
		}
	}

	return nil
}

// writeFabricFile writes the fabric in the format implied by the extension.
func writeFabricFile(g *fabric.Grid, path string) error {
	switch filepath.Ext(path) {
	case ".json":
		return io.ExportFabric(g, path)
	case ".svg":
		return writeFile(path, board.RenderFabricSVG(g))
	default:
		return fmt.Errorf("unsupported fabric output extension: %s (use .json or .svg)", filepath.Ext(path))
	}
}
