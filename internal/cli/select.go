package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/selbench/internal/engine"
)

// SelectOptions holds flags for the select command.
type SelectOptions struct {
	*RootOptions
	Algorithm string
	Rank      int
	Seed      uint64
}

// NewSelectCommand creates the select command.
func NewSelectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SelectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "select [flags] <ints...>",
		Short: "Find the k-th smallest integer with an instrumented engine",
		Long: `Select the element of zero-based rank k and report comparisons,
memory and time.

Algorithms: quickselect (randomized, Lomuto partition) and selectlinear
(deterministic median of medians).

Example:
  selbench select --algorithm selectlinear -k 2 12 3 5 7 4
  selbench select --algorithm quickselect -k 0 --seed 3 9 8 7`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelect(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Algorithm, "algorithm", "a", "selectlinear", "selection algorithm (quickselect|selectlinear)")
	cmd.Flags().IntVarP(&opts.Rank, "k", "k", 0, "zero-based rank to select")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "seed for randomized pivot choice")

	return cmd
}

func runSelect(opts *SelectOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	seq, err := parseInts(args)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidInput, "invalid input", err)
	}

	selector, err := engine.NewSelector(opts.Algorithm, opts.engineOptions(opts.Seed)...)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidInput, "invalid algorithm", err)
	}

	formatter.VerboseLog("Selecting rank %d of %d elements with %s", opts.Rank, len(seq), selector.Name())
	res, err := selector.SelectWithMetrics(seq, opts.Rank)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeEngine, "selection failed", err)
	}

	return formatter.Success(newSelectView(res, opts.Rank))
}
