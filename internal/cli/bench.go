package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/selbench/internal/harness"
	"github.com/roach88/selbench/internal/inputgen"
	"github.com/roach88/selbench/internal/report"
	"github.com/roach88/selbench/internal/store"
)

// BenchOptions holds flags for the bench command.
type BenchOptions struct {
	*RootOptions
	ConfigPath  string
	Database    string
	CSVDir      string
	MetricsFile string
	Progress    bool

	// Overrides for config file values, applied only when set.
	Name          string
	Category      string
	Sizes         []int
	Distributions []string
	Repeats       int
	Rank          int
	Seed          uint64
	Verify        bool
	FailFast      bool

	// RunIDs allows overriding the run ID generator (for testing).
	// If nil, defaults to UUIDv7.
	RunIDs harness.RunIDGenerator
}

// NewBenchCommand creates the bench command.
func NewBenchCommand(rootOpts *RootOptions) *cobra.Command {
	return newBenchCommand(&BenchOptions{RootOptions: rootOpts})
}

func newBenchCommand(opts *BenchOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run a benchmark sweep",
		Long: `Run every engine of a category over generated inputs and report
time, comparisons and memory per (distribution, size).

The sweep is read from --config when given, otherwise the defaults are used
(all engines, three distributions, size 1,000,000, rank 6, one repeat).
Flags override individual config values.

Exit codes:
  0 - Sweep completed without failures
  1 - A measurement failed, verification mismatched or the sweep was interrupted
  2 - Command error (invalid config, database or output file failure)

Example:
  selbench bench --config sweep.yaml --db ./selbench.db
  selbench bench --category sorting --sizes 1000,10000 --repeats 5 --verify
  selbench bench --csv ./results --metrics-file ./selbench.prom`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "sweep config YAML file")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run in this SQLite database")
	cmd.Flags().StringVar(&opts.CSVDir, "csv", "", "append CSV results to files in this directory")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "write Prometheus metrics to this file")
	cmd.Flags().BoolVar(&opts.Progress, "progress", false, "print progress to stderr")

	cmd.Flags().StringVar(&opts.Name, "name", "", "run name")
	cmd.Flags().StringVar(&opts.Category, "category", "", "engines to run (selection|sorting|all)")
	cmd.Flags().IntSliceVar(&opts.Sizes, "sizes", nil, "input sizes")
	cmd.Flags().StringSliceVar(&opts.Distributions, "distributions", nil, "input distributions (random|nearly-sorted|reverse-sorted)")
	cmd.Flags().IntVar(&opts.Repeats, "repeats", 0, "executions per (distribution, size)")
	cmd.Flags().IntVarP(&opts.Rank, "rank", "k", 0, "zero-based rank for selection engines")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "seed for inputs and pivots")
	cmd.Flags().BoolVar(&opts.Verify, "verify", false, "check every result against a reference sort")
	cmd.Flags().BoolVar(&opts.FailFast, "fail-fast", false, "stop at the first failed measurement")

	return cmd
}

func runBench(opts *BenchOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	logger := opts.logger()

	cfg, err := opts.config(cmd)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeConfig, "invalid config", err)
	}

	rec := &collector{}
	if opts.Database != "" {
		logger.Debug("opening database", "path", opts.Database)
		st, err := store.Open(opts.Database)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeDatabase, "failed to open database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				logger.Error("error closing database", "error", closeErr)
			}
		}()
		rec.next = st
	}

	metrics := harness.NewMetrics()
	runnerOpts := []harness.RunnerOption{
		harness.WithLogger(logger),
		harness.WithMetrics(metrics),
		harness.WithRecorder(rec),
	}
	if opts.Clock != nil {
		runnerOpts = append(runnerOpts, harness.WithClock(opts.Clock))
	}
	if opts.RunIDs != nil {
		runnerOpts = append(runnerOpts, harness.WithRunIDGenerator(opts.RunIDs))
	}
	if opts.Progress {
		errW := formatter.GetErrWriter()
		runnerOpts = append(runnerOpts, harness.WithProgress(func(p harness.Progress) {
			fmt.Fprintf(errW, "[%d/%d] %s %s n=%d\n",
				p.Done, p.Total, p.Last.Algorithm, inputgen.Distribution(p.Last.Distribution).Label(), p.Last.Size)
		}))
	}

	// Setup signal handling for graceful shutdown
	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan) // Prevent signal handler leak

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("received signal, stopping sweep", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	summary, runErr := harness.NewRunner(cfg, runnerOpts...).Run(ctx)
	if summary == nil {
		if errors.Is(runErr, context.Canceled) {
			return formatter.Fail(ExitFailure, ErrCodeBenchmark, "sweep interrupted", runErr)
		}
		if rec.err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeDatabase, "failed to record run", runErr)
		}
		return formatter.Fail(ExitCommandError, ErrCodeBenchmark, "sweep could not start", runErr)
	}

	// Partial results are still written out when the sweep stopped early.
	if err := writeOutputs(opts, cfg.Category, rec.measurements, metrics); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeOutput, "failed to write results", err)
	}

	if opts.Format == "json" {
		if err := formatter.Success(summary); err != nil {
			return err
		}
	} else if err := writeBenchText(cmd, summary); err != nil {
		return err
	}

	switch {
	case rec.err != nil:
		return WrapExitError(ExitCommandError, "failed to record run", runErr)
	case runErr != nil:
		return WrapExitError(ExitFailure, "sweep failed", runErr)
	case summary.Failures > 0:
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d measurements failed", summary.Failures, summary.Measurements))
	}
	return nil
}

// config builds the sweep config from --config and the override flags.
func (o *BenchOptions) config(cmd *cobra.Command) (harness.Config, error) {
	cfg := harness.DefaultConfig()
	if o.ConfigPath != "" {
		loaded, err := harness.LoadConfig(o.ConfigPath)
		if err != nil {
			return harness.Config{}, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("name") {
		cfg.Name = harness.NormalizeName(o.Name)
	}
	if flags.Changed("category") {
		cfg.Category = harness.Category(strings.ToLower(strings.TrimSpace(o.Category)))
	}
	if flags.Changed("sizes") {
		cfg.Sizes = o.Sizes
	}
	if flags.Changed("distributions") {
		ds := make([]inputgen.Distribution, len(o.Distributions))
		for i, name := range o.Distributions {
			d, err := inputgen.ParseDistribution(name)
			if err != nil {
				return harness.Config{}, &harness.ConfigError{Field: "distributions", Message: err.Error()}
			}
			ds[i] = d
		}
		cfg.Distributions = ds
	}
	if flags.Changed("repeats") {
		cfg.Repeats = o.Repeats
	}
	if flags.Changed("rank") {
		cfg.Rank = o.Rank
	}
	if flags.Changed("seed") {
		cfg.Seed = o.Seed
	}
	if flags.Changed("verify") {
		cfg.Verify = o.Verify
	}
	if flags.Changed("fail-fast") {
		cfg.FailFast = o.FailFast
	}

	if err := cfg.Validate(); err != nil {
		return harness.Config{}, err
	}
	return cfg, nil
}

func writeOutputs(opts *BenchOptions, category harness.Category, ms []store.Measurement, metrics *harness.Metrics) error {
	if opts.CSVDir != "" {
		if err := appendCSVFiles(opts.CSVDir, category, ms); err != nil {
			return err
		}
	}
	if opts.MetricsFile != "" {
		if err := metrics.WriteTextfile(opts.MetricsFile); err != nil {
			return fmt.Errorf("write metrics file: %w", err)
		}
	}
	return nil
}

func writeBenchText(cmd *cobra.Command, s *harness.Summary) error {
	w := cmd.OutOrStdout()
	title := fmt.Sprintf("%s [%s]", s.Name, s.RunID)
	if err := report.WriteText(w, title, s.Rows); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nStatus: %s, %d measurements, %d failed, %s\n",
		s.Status, s.Measurements, s.Failures, s.FinishedAt.Sub(s.StartedAt).Round(time.Millisecond))
	return err
}

// collector keeps every measurement of a sweep in memory for CSV output
// and forwards the run to an optional store. err holds the first store
// failure.
type collector struct {
	next         harness.Recorder
	measurements []store.Measurement
	err          error
}

func (c *collector) BeginRun(ctx context.Context, run store.Run) error {
	if c.next == nil {
		return nil
	}
	return c.fail(c.next.BeginRun(ctx, run))
}

func (c *collector) RecordMeasurement(ctx context.Context, m store.Measurement) error {
	if c.next != nil {
		if err := c.fail(c.next.RecordMeasurement(ctx, m)); err != nil {
			return err
		}
	}
	c.measurements = append(c.measurements, m)
	return nil
}

func (c *collector) FinishRun(ctx context.Context, runID string, status store.RunStatus, finishedAt time.Time) error {
	if c.next == nil {
		return nil
	}
	return c.fail(c.next.FinishRun(ctx, runID, status, finishedAt))
}

func (c *collector) fail(err error) error {
	if err != nil && c.err == nil && !errors.Is(err, context.Canceled) {
		c.err = err
	}
	return err
}

var _ harness.Recorder = (*collector)(nil)
