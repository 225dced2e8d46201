package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/latticekit/pkg/errors"
	"github.com/matzehuels/latticekit/pkg/hilbert"
)

// defaultEnumerateLimit caps "hilbert enumerate" unless --limit is given.
const defaultEnumerateLimit = 64

// hilbertCommand groups the basis indexing subcommands.
func (c *CLI) hilbertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hilbert",
		Short: "Convert between basis states and their indices",
		Long: `Index the basis of a Hilbert space on a lattice.

Every configuration of the space maps to an integer in [0, N) where N is the
product of the local dimensions. Site 0 is the most significant digit.`,
	}

	cmd.AddCommand(c.hilbertIndexCommand())
	cmd.AddCommand(c.hilbertStateCommand())
	cmd.AddCommand(c.hilbertEnumerateCommand())

	return cmd
}

// hilbertIndex builds the index described by src.
func (c *CLI) hilbertIndex(cmd *cobra.Command, src *sourceFlags) (*hilbert.Space, *hilbert.Index, error) {
	runner, err := c.newRunner(src.noCache)
	if err != nil {
		return nil, nil, err
	}
	defer runner.Close()

	_, sp, err := src.requireSpace(cmd.Context(), cmd, runner)
	if err != nil {
		return nil, nil, err
	}
	idx, err := hilbert.NewIndex(sp)
	if err != nil {
		return nil, nil, err
	}
	loggerFromContext(cmd.Context()).Debugf("indexed %d states on %d sites", idx.NStates(), idx.Size())
	return sp, idx, nil
}

func (c *CLI) hilbertIndexCommand() *cobra.Command {
	var (
		src   sourceFlags
		state string
	)
	cmd := &cobra.Command{
		Use:     "index",
		Short:   "Print the index of a configuration",
		Example: `  latticekit hilbert index -L 2 --space spin --state "1,-1"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := parseState(state)
			if err != nil {
				return err
			}
			_, idx, err := c.hilbertIndex(cmd, &src)
			if err != nil {
				return err
			}
			n, err := idx.StateToNumber(conf)
			if err != nil {
				return err
			}
			fmt.Println(n)
			return nil
		},
	}
	src.register(cmd, true)
	cmd.Flags().StringVar(&state, "state", "", "comma or space separated local values, one per site")
	_ = cmd.MarkFlagRequired("state")
	return cmd
}

func (c *CLI) hilbertStateCommand() *cobra.Command {
	var (
		src    sourceFlags
		number int
	)
	cmd := &cobra.Command{
		Use:     "state",
		Short:   "Print the configuration with a given index",
		Example: `  latticekit hilbert state -L 3 --space boson --n-max 2 --number 5`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, idx, err := c.hilbertIndex(cmd, &src)
			if err != nil {
				return err
			}
			conf, err := idx.NumberToState(number)
			if err != nil {
				return err
			}
			fmt.Println(formatState(conf))
			return nil
		},
	}
	src.register(cmd, true)
	cmd.Flags().IntVar(&number, "number", 0, "basis index")
	_ = cmd.MarkFlagRequired("number")
	return cmd
}

func (c *CLI) hilbertEnumerateCommand() *cobra.Command {
	var (
		src   sourceFlags
		limit int
		all   bool
	)
	cmd := &cobra.Command{
		Use:   "enumerate",
		Short: "List basis states in index order",
		Long: `List basis states in index order, one "index state" pair per line.

With a --total-sz or --n-bosons constraint only the states that satisfy it
are printed; their indices still refer to the full product basis.`,
		Example: `  latticekit hilbert enumerate -L 4 --space spin --total-sz 0`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sp, idx, err := c.hilbertIndex(cmd, &src)
			if err != nil {
				return err
			}
			target, constrained := sp.Constraint()
			printed := 0
			for i, conf := range idx.All() {
				if constrained && sum(conf) != target {
					continue
				}
				if !all && printed >= limit {
					printDetail("more states follow, pass --all to list every one")
					break
				}
				fmt.Printf("%s %s\n", StyleHighlight.Render(strconv.Itoa(i)), formatState(conf))
				printed++
			}
			return nil
		},
	}
	src.register(cmd, true)
	cmd.Flags().IntVar(&limit, "limit", defaultEnumerateLimit, "maximum number of states to print")
	cmd.Flags().BoolVar(&all, "all", false, "print every state, ignoring --limit")
	return cmd
}

// parseState reads a configuration such as "1,-1,1" or "0 2 1".
func parseState(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	conf := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, errs.New(errs.ErrCodeInvalidInput, "state value %d: %q is not a number", i, f)
		}
		conf[i] = v
	}
	return conf, nil
}

func sum(conf []float64) float64 {
	var total float64
	for _, v := range conf {
		total += v
	}
	return total
}
