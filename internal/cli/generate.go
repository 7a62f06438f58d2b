package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/selbench/internal/inputgen"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Size         int
	Distribution string
	Seed         uint64
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print a benchmark input sequence",
		Long: `Generate the input sequence a sweep would use for the given
distribution, size and seed.

Distributions: random, nearly-sorted, reverse-sorted.

Example:
  selbench generate --size 10 --distribution random --seed 1
  selbench generate --size 20 --distribution nearly-sorted | xargs selbench sort`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Size, "size", "n", 10, "number of elements")
	cmd.Flags().StringVarP(&opts.Distribution, "distribution", "d", "random", "input distribution (random|nearly-sorted|reverse-sorted)")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "generator seed")

	return cmd
}

// generateView is the output of the generate command.
type generateView struct {
	Distribution inputgen.Distribution `json:"distribution"`
	Size         int                   `json:"size"`
	Seed         uint64                `json:"seed"`
	Sequence     []int                 `json:"sequence"`
}

func (v generateView) String() string {
	return joinInts(v.Sequence)
}

func runGenerate(opts *GenerateOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	d, err := inputgen.ParseDistribution(opts.Distribution)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidInput, "invalid distribution", err)
	}

	seq, err := inputgen.New(opts.Seed).Generate(opts.Size, d)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidInput, "invalid size", err)
	}

	return formatter.Success(generateView{
		Distribution: d,
		Size:         opts.Size,
		Seed:         opts.Seed,
		Sequence:     seq,
	})
}
