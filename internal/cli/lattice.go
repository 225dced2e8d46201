package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/latticekit/pkg/errors"
	lio "github.com/matzehuels/latticekit/pkg/io"
)

// latticeOpts holds the flags of the lattice command.
type latticeOpts struct {
	src    sourceFlags
	full   bool   // include adjacency and distances
	json   bool   // print the analysis as JSON instead of a summary
	output string // export the graph document here
}

// latticeCommand creates the lattice command.
func (c *CLI) latticeCommand() *cobra.Command {
	var opts latticeOpts

	cmd := &cobra.Command{
		Use:   "lattice",
		Short: "Build a lattice and print its analysis",
		Long: `Build a lattice and print its structure: site and edge counts, bipartiteness,
connectivity, diameter and the size of its symmetry table.

The lattice is a hypercube described by --length/--dim/--pbc unless a
description file (--config) or a graph document (--input) is given.`,
		Example: `  latticekit lattice -L 4 -d 2
  latticekit lattice --config heisenberg.toml --json --full
  latticekit lattice -L 6 --pbc=false -o chain.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLattice(cmd, &opts)
		},
	}

	opts.src.register(cmd, false)
	cmd.Flags().BoolVar(&opts.full, "full", false, "include adjacency list and distance table")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the analysis as JSON")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the graph document to this file")

	return cmd
}

func (c *CLI) runLattice(cmd *cobra.Command, opts *latticeOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(opts.src.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	g, _, err := opts.src.build(ctx, cmd, runner)
	if err != nil {
		return err
	}
	a, cached, err := runner.AnalyzeWithCacheInfo(ctx, g, opts.full)
	if err != nil {
		return err
	}
	logger.Debugf("analysis ready (%s)", prog.elapsed())

	if opts.output != "" {
		if err := lio.ExportJSON(g, opts.output); err != nil {
			return err
		}
	}

	if opts.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(a); err != nil {
			return errs.Wrap(errs.ErrCodeInternal, err, "encode analysis")
		}
		return nil
	}

	printSuccess("Lattice ready")
	printStats(a.NumSites, a.NumEdges, cached)
	printNewline()
	printAnalysis(a)
	if opts.output != "" {
		printNewline()
		printFile(opts.output)
		printNextStep("Render it", "latticekit render -i "+opts.output+" -o lattice.svg")
	}
	return nil
}
