package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/latticekit/pkg/errors"
	"github.com/matzehuels/latticekit/pkg/pipeline"
	"github.com/matzehuels/latticekit/pkg/render"
	"github.com/matzehuels/latticekit/pkg/render/nodelink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	src     sourceFlags
	output  string // output file; its extension picks the format unless --format is set
	format  string // dot, svg, png or pdf
	engine  string // graphviz layout engine
	colors  bool   // label colored edges with their color
	refresh bool   // ignore cached artifacts
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw a lattice as DOT, SVG, PNG or PDF",
		Long: `Draw a lattice as a node-link diagram.

Chains, squares and cubes are pinned to their grid coordinates and periodic
wrap edges are dashed; other graphs are laid out by the graphviz engine.
PNG and PDF output need rsvg-convert on the PATH.`,
		Example: `  latticekit render -L 4 -d 2 -o square.svg
  latticekit render -L 8 --axis-colors --colors -o ring.png
  latticekit render -i custom.json --engine fdp -o custom.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, &opts)
		},
	}

	opts.src.register(cmd, false)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default lattice.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: "+strings.Join(render.Formats, ", "))
	cmd.Flags().StringVarP(&opts.engine, "engine", "e", "", "layout engine: "+strings.Join(engineNames(), ", "))
	cmd.Flags().BoolVar(&opts.colors, "colors", false, "label colored edges with their color")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if a cached picture exists")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(render.Formats, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("engine", cobra.FixedCompletions(engineNames(), cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, opts *renderOpts) error {
	ctx := cmd.Context()

	format, output, err := resolveOutput(opts.format, opts.output)
	if err != nil {
		return err
	}
	ropts := pipeline.RenderOptions{
		Format:     format,
		Engine:     opts.engine,
		ShowColors: opts.colors,
		Refresh:    opts.refresh,
	}
	if err := ropts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(opts.src.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	g, _, err := opts.src.build(ctx, cmd, runner)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Rendering "+format+"...")
	spinner.Start()
	data, cached, err := runner.RenderWithCacheInfo(ctx, g, ropts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidPath, err, "write %s", output)
	}

	printSuccess("Rendered %s", strings.ToUpper(format))
	printStats(g.NumSites(), g.NumEdges(), cached)
	printFile(output)
	return nil
}

// resolveOutput reconciles --format and --output. An explicit format wins;
// otherwise the output extension decides, falling back to SVG.
func resolveOutput(format, output string) (string, string, error) {
	if format == "" && output != "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
		if format == "" {
			return "", "", errs.New(errs.ErrCodeInvalidInput,
				"cannot infer format from %q, pass --format", output)
		}
	}
	if format == "" {
		format = pipeline.DefaultFormat
	}
	format = strings.ToLower(format)
	if err := pipeline.ValidateFormat(format); err != nil {
		return "", "", err
	}
	if output == "" {
		output = "lattice." + format
	}
	if err := errs.ValidatePath(output); err != nil {
		return "", "", err
	}
	return format, output, nil
}

func engineNames() []string {
	names := make([]string, len(nodelink.Engines))
	for i, e := range nodelink.Engines {
		names[i] = string(e)
	}
	return names
}
