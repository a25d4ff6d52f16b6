package cli

import (
	"fmt"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/casrc/internal/search"
)

// NewOptions holds flags for the new command.
type NewOptions struct {
	*RootOptions

	Rule           string
	Dx             int
	Dy             int
	Symmetry       string
	Transformation string
	Order          string
	Strategy       string
	MaxPopulation  int
	Seed           uint64
	ReduceMax      bool
	DiagonalWidth  int
	AllowEmpty     bool
	Known          []string

	All        bool
	StepBudget uint64
	ConfigFile string
	SaveFile   string
	Database   string
}

// NewNewCommand creates the new command.
func NewNewCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NewOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "new [width height period]",
		Short: "Start a new pattern search",
		Long: `Start a backtracking search for patterns of the given size and period.

The three positional arguments are the width and height of the bounding box
and the period in generations. They may be omitted when --config supplies
them. Each pattern found is printed as RLE; with --all the search keeps
going until the space is exhausted.

Example:
  casrc new 26 8 4 -r B3/S23 -y 1 -n alive
  casrc new --config glider.yaml --all --db results.db`,
		Args:          cobra.RangeArgs(0, 3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.Rule, "rule", "r", "", "rule string (default "+search.DefaultRule+")")
	cmd.Flags().IntVarP(&opts.Dx, "dx", "x", 0, "horizontal translation per period")
	cmd.Flags().IntVarP(&opts.Dy, "dy", "y", 0, "vertical translation per period")
	cmd.Flags().StringVarP(&opts.Symmetry, "symmetry", "s", "C1", "symmetry the pattern must satisfy")
	cmd.Flags().StringVarP(&opts.Transformation, "transformation", "t", "R0", "transformation applied per period")
	cmd.Flags().StringVar(&opts.Order, "order", "auto", "search order (auto|row|column|diagonal)")
	cmd.Flags().StringVarP(&opts.Strategy, "new-state", "n", "dead", "state tried first (dead|alive|random)")
	cmd.Flags().IntVarP(&opts.MaxPopulation, "max-population", "m", -1, "bound on living cells of generation 0 (-1 for none)")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "seed for the random strategy")
	cmd.Flags().BoolVar(&opts.ReduceMax, "reduce-max", false, "tighten the population bound after each find")
	cmd.Flags().IntVar(&opts.DiagonalWidth, "diagonal-width", 0, "restrict the pattern to a diagonal band")
	cmd.Flags().BoolVar(&opts.AllowEmpty, "allow-empty-front", false, "permit patterns with an empty search front")
	cmd.Flags().StringArrayVar(&opts.Known, "known", nil, "pin a cell, as x,y,t=dead|alive (repeatable)")
	cmd.Flags().BoolVar(&opts.All, "all", false, "enumerate every pattern instead of stopping at the first")
	cmd.Flags().Uint64Var(&opts.StepBudget, "step-budget", 0, "search steps per suspension point")
	cmd.Flags().StringVar(&opts.ConfigFile, "config", "", "YAML search configuration to start from")
	cmd.Flags().StringVar(&opts.SaveFile, "save", "", "write the final search state to this file")
	cmd.Flags().StringVar(&opts.Database, "db", "", "archive found patterns to this SQLite database")

	return cmd
}

// assembleConfig builds the search configuration from the config file, the
// positional arguments, and the flags, in increasing order of precedence.
func assembleConfig(cmd *cobra.Command, opts *NewOptions, args []string) (search.Config, error) {
	var config search.Config

	if opts.ConfigFile != "" {
		var err error
		config, err = LoadConfigFile(opts.ConfigFile)
		if err != nil {
			return config, err
		}
	} else if len(args) != 3 {
		return config, NewExitError(ExitBadConfig, "width, height and period are required without --config")
	}

	if len(args) == 3 {
		for i, dst := range []*int{&config.Width, &config.Height, &config.Period} {
			v, err := strconv.Atoi(args[i])
			if err != nil {
				return config, WrapExitError(ExitBadConfig, fmt.Sprintf("argument %q", args[i]), err)
			}
			*dst = v
		}
	} else if len(args) != 0 {
		return config, NewExitError(ExitBadConfig, "give all of width, height and period, or none")
	}

	flags := cmd.Flags()

	if flags.Changed("rule") {
		config.Rule = opts.Rule
	}
	if flags.Changed("dx") {
		config.Dx = opts.Dx
	}
	if flags.Changed("dy") {
		config.Dy = opts.Dy
	}
	if flags.Changed("diagonal-width") {
		config.DiagonalWidth = opts.DiagonalWidth
	}
	if flags.Changed("reduce-max") {
		config.ReduceMax = opts.ReduceMax
	}
	if flags.Changed("allow-empty-front") {
		config.AllowEmptyFront = opts.AllowEmpty
	}
	if flags.Changed("max-population") && opts.MaxPopulation >= 0 {
		bound := opts.MaxPopulation
		config.MaxPopulation = &bound
	}
	if flags.Changed("seed") {
		seed := opts.Seed
		config.Seed = &seed
	}

	if flags.Changed("symmetry") || opts.ConfigFile == "" {
		if err := config.Symmetry.UnmarshalText([]byte(opts.Symmetry)); err != nil {
			return config, WrapExitError(ExitBadConfig, "symmetry", err)
		}
	}
	if flags.Changed("transformation") || opts.ConfigFile == "" {
		if err := config.Transformation.UnmarshalText([]byte(opts.Transformation)); err != nil {
			return config, WrapExitError(ExitBadConfig, "transformation", err)
		}
	}
	if flags.Changed("order") {
		if err := config.SearchOrder.UnmarshalText([]byte(opts.Order)); err != nil {
			return config, WrapExitError(ExitBadConfig, "order", err)
		}
	}
	if flags.Changed("new-state") {
		if err := config.NewState.UnmarshalText([]byte(opts.Strategy)); err != nil {
			return config, WrapExitError(ExitBadConfig, "new-state", err)
		}
	}

	for _, entry := range opts.Known {
		cell, err := parseKnownCell(entry)
		if err != nil {
			return config, WrapExitError(ExitBadConfig, "known", err)
		}
		config.KnownCells = append(config.KnownCells, cell)
	}

	return config, nil
}

func runNew(cmd *cobra.Command, opts *NewOptions, args []string) error {
	config, err := assembleConfig(cmd, opts, args)
	if err != nil {
		return err
	}

	w, err := search.NewWorld(config)
	if err != nil {
		return WrapExitError(ExitBadConfig, "invalid configuration", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return runSearch(ctx, opts.RootOptions, w, opts.All, opts.StepBudget, opts.SaveFile, opts.Database)
}
