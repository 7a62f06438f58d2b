package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/selbench/internal/engine"
)

// SortOptions holds flags for the sort command.
type SortOptions struct {
	*RootOptions
	Algorithm string
	Seed      uint64
}

// NewSortCommand creates the sort command.
func NewSortCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SortOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sort [flags] <ints...>",
		Short: "Sort integers with an instrumented engine",
		Long: `Sort the given integers and report comparisons, memory and time.

Algorithms: quicksort (randomized, Hoare partition) and mergesort.
Separate negative numbers from flags with "--".

Example:
  selbench sort --algorithm mergesort 5 3 1 4 2
  selbench sort --algorithm quicksort --seed 7 -- -4 10 -1`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Algorithm, "algorithm", "a", "quicksort", "sorting algorithm (quicksort|mergesort)")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "seed for randomized pivot choice")

	return cmd
}

func runSort(opts *SortOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	seq, err := parseInts(args)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidInput, "invalid input", err)
	}

	sorter, err := engine.NewSorter(opts.Algorithm, opts.engineOptions(opts.Seed)...)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidInput, "invalid algorithm", err)
	}

	formatter.VerboseLog("Sorting %d elements with %s", len(seq), sorter.Name())
	res, err := sorter.SortWithMetrics(seq)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeEngine, "sort failed", err)
	}

	return formatter.Success(newSortView(res))
}
