package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/latticekit/pkg/buildinfo"
	"github.com/matzehuels/latticekit/pkg/cache"
	"github.com/matzehuels/latticekit/pkg/config"
	errs "github.com/matzehuels/latticekit/pkg/errors"
	"github.com/matzehuels/latticekit/pkg/hilbert"
	lio "github.com/matzehuels/latticekit/pkg/io"
	"github.com/matzehuels/latticekit/pkg/lattice"
	"github.com/matzehuels/latticekit/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "latticekit"

	// defaultLength and defaultDim describe the lattice built when no flags
	// are given: a periodic chain of four sites.
	defaultLength = 4
	defaultDim    = 1
)

// Log levels accepted by New.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:          appName,
		Short:        "latticekit builds lattices and indexes their Hilbert spaces",
		Long:         `latticekit builds validated lattice graphs (hypercubes or custom edge lists), analyses their structure and symmetries, and maps many-body basis states to dense integers and back.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.latticeCommand())
	root.AddCommand(c.hilbertCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/latticekit/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Lattice Source Flags
// =============================================================================

// sourceFlags selects the lattice (and optionally the Hilbert space) a
// command works on. At most one of configPath and input is set; otherwise a
// hypercube is built from length/dim/pbc.
type sourceFlags struct {
	configPath string // --config: TOML, YAML or JSON description
	input      string // --input: graph JSON document
	length     int
	dim        int
	pbc        bool
	axisColors bool

	space   string // --space: spin, qubit or boson
	spin    float64
	nMax    int
	totalSz float64
	nBosons int
	noCache bool
}

// spaceNames are the --space values; custom spaces need a config file.
var spaceNames = []string{"spin", "qubit", "boson"}

func (f *sourceFlags) register(cmd *cobra.Command, withSpace bool) {
	fs := cmd.Flags()
	fs.StringVarP(&f.configPath, "config", "c", "", "lattice description file (.toml, .yaml, .json)")
	fs.StringVarP(&f.input, "input", "i", "", "graph JSON document (as written by lattice --output)")
	fs.IntVarP(&f.length, "length", "L", defaultLength, "hypercube side length")
	fs.IntVarP(&f.dim, "dim", "d", defaultDim, "hypercube dimension")
	fs.BoolVar(&f.pbc, "pbc", true, "periodic boundary conditions")
	fs.BoolVar(&f.axisColors, "axis-colors", false, "color hypercube edges by axis")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable the analysis/render cache")
	cmd.MarkFlagsMutuallyExclusive("config", "input")
	_ = cmd.MarkFlagFilename("config", "toml", "yaml", "yml", "json")
	_ = cmd.MarkFlagFilename("input", "json")

	if !withSpace {
		return
	}
	fs.StringVar(&f.space, "space", "", "local Hilbert space: "+strings.Join(spaceNames, ", ")+" (overrides the config file)")
	_ = cmd.RegisterFlagCompletionFunc("space", cobra.FixedCompletions(spaceNames, cobra.ShellCompDirectiveNoFileComp))
	fs.Float64Var(&f.spin, "s", 0.5, "spin magnitude for --space spin")
	fs.IntVar(&f.nMax, "n-max", 1, "maximum occupation for --space boson")
	fs.Float64Var(&f.totalSz, "total-sz", 0, "constrain the total magnetization (spin)")
	fs.IntVar(&f.nBosons, "n-bosons", 0, "constrain the total particle number (boson)")
}

// hilbertConfig returns the space described by the flags, or nil when
// --space is not given.
func (f *sourceFlags) hilbertConfig(cmd *cobra.Command) *config.HilbertConfig {
	if f.space == "" {
		return nil
	}
	hc := &config.HilbertConfig{Name: f.space, S: f.spin, NMax: f.nMax}
	if cmd.Flags().Changed("total-sz") {
		sz := f.totalSz
		hc.TotalSz = &sz
	}
	if cmd.Flags().Changed("n-bosons") {
		n := f.nBosons
		hc.NBosons = &n
	}
	return hc
}

// config returns the description selected by the flags. It is only used
// when --input is not given.
func (f *sourceFlags) config(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		pbc := f.pbc
		cfg = &config.Config{Graph: config.GraphConfig{
			Name:       "hypercube",
			Length:     f.length,
			Dimension:  f.dim,
			PBC:        &pbc,
			AxisColors: f.axisColors,
		}}
	}
	if hc := f.hilbertConfig(cmd); hc != nil {
		cfg.Hilbert = hc
	}
	return cfg, nil
}

// build resolves the lattice and, when one is described, the space on it.
func (f *sourceFlags) build(ctx context.Context, cmd *cobra.Command, runner *pipeline.Runner) (*lattice.Graph, *hilbert.Space, error) {
	if f.input == "" {
		cfg, err := f.config(cmd)
		if err != nil {
			return nil, nil, err
		}
		return runner.Build(ctx, cfg)
	}

	g, err := lio.ImportJSON(f.input)
	if err != nil {
		return nil, nil, err
	}
	hc := f.hilbertConfig(cmd)
	if hc == nil {
		return g, nil, nil
	}
	if err := hc.Validate(); err != nil {
		return nil, nil, err
	}
	sp, err := hc.Build(g)
	if err != nil {
		return nil, nil, err
	}
	return g, sp, nil
}

// requireSpace builds the lattice and fails when no space is described.
func (f *sourceFlags) requireSpace(ctx context.Context, cmd *cobra.Command, runner *pipeline.Runner) (*lattice.Graph, *hilbert.Space, error) {
	g, sp, err := f.build(ctx, cmd, runner)
	if err != nil {
		return nil, nil, err
	}
	if sp == nil {
		return nil, nil, errs.New(errs.ErrCodeInvalidInput,
			"no Hilbert space: pass --space or add a [hilbert] section to the config")
	}
	return g, sp, nil
}
