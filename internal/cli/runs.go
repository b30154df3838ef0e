package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/fpgakit/placer/pkg/errors"
	"github.com/fpgakit/placer/pkg/pipeline"
	"github.com/fpgakit/placer/pkg/runs"
	"github.com/fpgakit/placer/pkg/search"
)

// runsCommand creates the runs command for browsing archived runs.
func (c *CLI) runsCommand() *cobra.Command {
	var (
		backend  string
		mongoURI string
	)

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Browse and export archived runs",
		Long: `Browse and export archived runs.

Runs are archived by 'place --archive'. The file backend keeps them under
the XDG data directory; the mongo backend matches what 'serve' uses.`,
	}

	cmd.PersistentFlags().StringVar(&backend, "store", storeFile, "archive backend: file (default), mongo")
	cmd.PersistentFlags().StringVar(&mongoURI, "mongo-uri", "", "mongo connection string (with --store mongo)")

	cmd.AddCommand(c.runsListCommand(&backend, &mongoURI))
	cmd.AddCommand(c.runsShowCommand(&backend, &mongoURI))
	cmd.AddCommand(c.runsExportCommand(&backend, &mongoURI))
	cmd.AddCommand(c.runsDeleteCommand(&backend, &mongoURI))

	return cmd
}

// withStore opens the run store, invokes fn and closes the store.
func withStore(ctx context.Context, backend, mongoURI string, fn func(runs.Store) error) error {
	store, err := newStore(ctx, backend, mongoURI)
	if err != nil {
		return fmt.Errorf("open run store: %w", err)
	}
	defer store.Close()
	return fn(store)
}

// runsListCommand creates the "runs list" subcommand.
func (c *CLI) runsListCommand(backend, mongoURI *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List archived runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), *backend, *mongoURI, func(store runs.Store) error {
				summaries, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(summaries) == 0 {
					printInfo("No archived runs")
					return nil
				}
				printRunTable(summaries)
				return nil
			})
		},
	}
}

// printRunTable renders run summaries as a bordered table.
func printRunTable(summaries []runs.Summary) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.ID,
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("%dx%d", s.Width, s.Height),
			fmt.Sprintf("%d", s.Nodes),
			fmt.Sprintf("%d", s.Steps),
			fmt.Sprintf("%d → %d", s.InitialCost, s.FinalCost),
			s.Duration.Round(time.Millisecond).String(),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Created", "Fabric", "Nodes", "Steps", "Cost", "Duration").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 5 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	fmt.Println(t.Render())
}

// runsShowCommand creates the "runs show" subcommand.
func (c *CLI) runsShowCommand(backend, mongoURI *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show one archived run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateRunID(args[0]); err != nil {
				return err
			}
			return withStore(cmd.Context(), *backend, *mongoURI, func(store runs.Store) error {
				run, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printRun(run)
				return nil
			})
		},
	}
}

// printRun prints the full record of one run.
func printRun(run *runs.Run) {
	printKeyValue("id", run.ID)
	printKeyValue("created", run.CreatedAt.Local().Format(time.RFC1123))
	printKeyValue("fabric", fmt.Sprintf("%dx%d sites", run.Width, run.Height))
	printKeyValue("netlist", fmt.Sprintf("%d nodes, %d edges", run.Nodes, run.Edges))
	printKeyValue("strategy", run.Strategy)
	printKeyValue("steps", fmt.Sprintf("%d × %d neighbors", run.Steps, run.Neighbors))
	printKeyValue("seed", fmt.Sprintf("%d", run.Seed))
	printKeyValue("duration", run.Duration.Round(time.Millisecond).String())
	printNewline()
	printCost(run.InitialCost, run.FinalCost)
	printDetail("%d improving steps", run.Improved)
}

// runsExportCommand creates the "runs export" subcommand.
func (c *CLI) runsExportCommand(backend, mongoURI *string) *cobra.Command {
	var (
		output     string
		formatsStr string
	)

	cmd := &cobra.Command{
		Use:   "export [id]",
		Short: "Re-render an archived run to files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateRunID(args[0]); err != nil {
				return err
			}
			formats := parseFormats(formatsStr)
			return withStore(cmd.Context(), *backend, *mongoURI, func(store runs.Store) error {
				run, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return exportRun(run, output, formats)
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: run ID)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot, csv (comma-separated)")

	return cmd
}

// exportRun rebuilds the run's placement and renders the requested formats.
func exportRun(run *runs.Run, output string, formats []string) error {
	for _, f := range formats {
		if pipeline.AnimationFormats[f] {
			return fmt.Errorf("format %s needs per-step snapshots, which runs do not archive", f)
		}
	}

	p, err := run.Placement()
	if err != nil {
		return err
	}
	res := &search.Result{
		Final:       p,
		InitialCost: run.InitialCost,
		FinalCost:   run.FinalCost,
		Improved:    run.Improved,
		Duration:    run.Duration,
		Series:      run.Series,
	}

	artifacts, err := pipeline.RenderArtifacts(res, pipeline.Options{Formats: formats})
	if err != nil {
		return err
	}

	base := output
	if base == "" {
		base = run.ID
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

	printSuccess("Export complete")
	return nil
}

// runsDeleteCommand creates the "runs delete" subcommand.
func (c *CLI) runsDeleteCommand(backend, mongoURI *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete an archived run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateRunID(args[0]); err != nil {
				return err
			}
			return withStore(cmd.Context(), *backend, *mongoURI, func(store runs.Store) error {
				if err := store.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				printSuccess("Deleted %s", args[0])
				return nil
			})
		},
	}
}
