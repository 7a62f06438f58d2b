package harness

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/roach88/selbench/internal/engine"
	"github.com/roach88/selbench/internal/inputgen"
	"github.com/roach88/selbench/internal/store"
)

// ErrVerification marks a result that disagrees with the reference sort.
var ErrVerification = errors.New("verification failed")

// Recorder persists a sweep as it runs. *store.Store satisfies it.
type Recorder interface {
	BeginRun(ctx context.Context, run store.Run) error
	RecordMeasurement(ctx context.Context, m store.Measurement) error
	FinishRun(ctx context.Context, runID string, status store.RunStatus, finishedAt time.Time) error
}

type discardRecorder struct{}

func (discardRecorder) BeginRun(context.Context, store.Run) error                  { return nil }
func (discardRecorder) RecordMeasurement(context.Context, store.Measurement) error { return nil }
func (discardRecorder) FinishRun(context.Context, string, store.RunStatus, time.Time) error {
	return nil
}

// Runner executes a benchmark sweep: every configured engine on every
// (distribution, size, repeat) input.
type Runner struct {
	cfg      Config
	logger   *slog.Logger
	clock    engine.Clock
	ids      RunIDGenerator
	metrics  *Metrics
	recorder Recorder
	progress func(Progress)

	// build returns the engines to run, in order.
	build func() ([]invoker, error)
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the sweep logger. The default discards everything.
func WithLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// WithClock sets the clock used for engine timing and run timestamps.
func WithClock(c engine.Clock) RunnerOption {
	return func(r *Runner) { r.clock = c }
}

// WithRunIDGenerator overrides the UUIDv7 run ID generator.
func WithRunIDGenerator(g RunIDGenerator) RunnerOption {
	return func(r *Runner) { r.ids = g }
}

// WithMetrics records every measurement into m.
func WithMetrics(m *Metrics) RunnerOption {
	return func(r *Runner) { r.metrics = m }
}

// WithRecorder persists the run and its measurements.
func WithRecorder(rec Recorder) RunnerOption {
	return func(r *Runner) { r.recorder = rec }
}

// WithProgress installs a callback invoked after every measurement.
func WithProgress(fn func(Progress)) RunnerOption {
	return func(r *Runner) { r.progress = fn }
}

// NewRunner creates a Runner for cfg.
func NewRunner(cfg Config, opts ...RunnerOption) *Runner {
	r := &Runner{
		cfg:      cfg,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:    engine.SystemClock{},
		ids:      UUIDv7Generator{},
		recorder: discardRecorder{},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.build = r.engines
	return r
}

// invoker runs one engine on an input.
type invoker struct {
	name string
	run  func(seq []int) (engine.Result, error)
}

// engines builds the category's engines. Randomized engines are seeded
// from the config seed, so a sweep is repeatable end to end.
func (r *Runner) engines() ([]invoker, error) {
	opts := []engine.Option{engine.WithSeed(r.cfg.Seed), engine.WithClock(r.clock)}
	rank := r.cfg.Rank

	var invokers []invoker
	for _, name := range r.cfg.Category.Algorithms() {
		category, err := engine.CategoryOf(name)
		if err != nil {
			return nil, err
		}
		switch category {
		case engine.CategorySelection:
			sel, err := engine.NewSelector(name, opts...)
			if err != nil {
				return nil, err
			}
			invokers = append(invokers, invoker{
				name: sel.Name(),
				run:  func(seq []int) (engine.Result, error) { return sel.SelectWithMetrics(seq, rank) },
			})
		case engine.CategorySorting:
			srt, err := engine.NewSorter(name, opts...)
			if err != nil {
				return nil, err
			}
			invokers = append(invokers, invoker{name: srt.Name(), run: srt.SortWithMetrics})
		}
	}
	return invokers, nil
}

// Run executes the sweep.
//
// Engine errors and verification failures are recorded on their
// measurement and the sweep continues, unless FailFast is set. The
// returned Summary is non-nil whenever the run was begun, including when
// Run also returns an error.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	if err := r.cfg.Validate(); err != nil {
		return nil, err
	}

	invokers, err := r.build()
	if err != nil {
		return nil, fmt.Errorf("build engines: %w", err)
	}

	summary := &Summary{
		RunID:     r.ids.Generate(),
		Name:      r.cfg.Name,
		Status:    store.StatusRunning,
		Host:      CaptureHost(),
		StartedAt: r.clock.Now(),
	}

	run, err := r.runRecord(summary)
	if err != nil {
		return nil, err
	}
	if err := r.recorder.BeginRun(ctx, run); err != nil {
		return nil, fmt.Errorf("begin run: %w", err)
	}

	total := len(r.cfg.Distributions) * len(r.cfg.Sizes) * r.cfg.Repeats * len(invokers)
	r.logger.Info("sweep starting",
		"run_id", summary.RunID,
		"name", r.cfg.Name,
		"category", r.cfg.Category,
		"measurements", total,
	)

	ms, status, runErr := r.sweep(ctx, summary.RunID, invokers, total)

	summary.Status = status
	summary.FinishedAt = r.clock.Now()
	summary.Measurements = len(ms)
	for _, m := range ms {
		if m.Failed() {
			summary.Failures++
		}
	}
	summary.Rows = Aggregate(ms)

	// A cancelled sweep is still closed out.
	if err := r.recorder.FinishRun(context.WithoutCancel(ctx), summary.RunID, status, summary.FinishedAt); err != nil && runErr == nil {
		runErr = fmt.Errorf("finish run: %w", err)
	}

	r.logger.Info("sweep finished",
		"run_id", summary.RunID,
		"status", status,
		"measurements", summary.Measurements,
		"failures", summary.Failures,
		"duration", summary.FinishedAt.Sub(summary.StartedAt),
	)
	return summary, runErr
}

func (r *Runner) sweep(ctx context.Context, runID string, invokers []invoker, total int) ([]store.Measurement, store.RunStatus, error) {
	var (
		ms       []store.Measurement
		failures int
	)

	for _, d := range r.cfg.Distributions {
		for _, size := range r.cfg.Sizes {
			first := len(ms)

			for rep := range r.cfg.Repeats {
				if err := ctx.Err(); err != nil {
					return ms, store.StatusCancelled, fmt.Errorf("sweep interrupted: %w", err)
				}

				input, err := inputgen.New(r.cfg.Seed+uint64(rep)).Generate(size, d)
				if err != nil {
					return ms, store.StatusFailed, err
				}
				var ref []int
				if r.cfg.Verify {
					ref = slices.Sorted(slices.Values(input))
				}

				for _, inv := range invokers {
					m, measureErr := r.measure(inv, input, ref)
					m.RunID = runID
					m.Seq = int64(len(ms) + 1)
					m.Distribution = string(d)
					m.Size = size
					m.Repeat = rep

					if err := r.recorder.RecordMeasurement(ctx, m); err != nil {
						if ctx.Err() != nil {
							return ms, store.StatusCancelled, fmt.Errorf("sweep interrupted: %w", ctx.Err())
						}
						return ms, store.StatusFailed, fmt.Errorf("record measurement: %w", err)
					}
					ms = append(ms, m)
					r.metrics.Observe(m)

					r.logger.Debug("measurement",
						"distribution", d,
						"size", size,
						"repeat", rep,
						"algorithm", m.Algorithm,
						"elapsed_ms", m.ElapsedMillis,
						"comparisons", m.Comparisons,
					)
					if r.progress != nil {
						r.progress(Progress{Done: len(ms), Total: total, Last: m})
					}

					if measureErr != nil {
						failures++
						r.logger.Warn("measurement failed",
							"distribution", d,
							"size", size,
							"repeat", rep,
							"algorithm", m.Algorithm,
							"error", measureErr,
						)
						if r.cfg.FailFast {
							return ms, store.StatusFailed, fmt.Errorf("%s on %s input of size %d (repeat %d): %w",
								m.Algorithm, d.Label(), size, rep, measureErr)
						}
					}
				}
			}

			for _, row := range Aggregate(ms[first:]) {
				r.logger.Info("configuration complete",
					"distribution", d,
					"size", size,
					"algorithm", row.Algorithm,
					"mean_ms", row.MeanMillis,
					"mean_comparisons", row.MeanComparisons,
					"failures", row.Failures,
				)
			}
		}
	}

	if failures > 0 {
		return ms, store.StatusFailed, nil
	}
	return ms, store.StatusCompleted, nil
}

// measure runs one engine. On failure the returned measurement carries
// the error text and zero metrics.
func (r *Runner) measure(inv invoker, input, ref []int) (store.Measurement, error) {
	m := store.Measurement{Algorithm: inv.name}

	res, err := inv.run(input)
	if err != nil {
		m.Error = err.Error()
		return m, err
	}
	if ref != nil {
		if err := verify(res, ref, r.cfg.Rank); err != nil {
			m.Error = err.Error()
			return m, err
		}
	}

	m.ElapsedMillis = res.ExecutionTimeMillis()
	m.Comparisons = res.Comparisons
	m.MemoryBytes = res.MemoryUsage
	m.Outcome = outcomeSummary(res)
	return m, nil
}

func (r *Runner) runRecord(s *Summary) (store.Run, error) {
	cfgJSON, err := json.Marshal(r.cfg)
	if err != nil {
		return store.Run{}, fmt.Errorf("marshal config: %w", err)
	}
	hostJSON, err := json.Marshal(s.Host)
	if err != nil {
		return store.Run{}, fmt.Errorf("marshal host info: %w", err)
	}
	return store.Run{
		ID:        s.RunID,
		Name:      r.cfg.Name,
		Category:  string(r.cfg.Category),
		Seed:      r.cfg.Seed,
		Rank:      r.cfg.Rank,
		Config:    string(cfgJSON),
		Host:      string(hostJSON),
		Status:    store.StatusRunning,
		StartedAt: s.StartedAt,
	}, nil
}

// verify compares a result with the sorted reference of its input.
func verify(res engine.Result, ref []int, rank int) error {
	if seq, ok := res.Sequence(); ok {
		if i := firstMismatch(seq, ref); i >= 0 {
			return fmt.Errorf("%w: %s output differs from reference at index %d", ErrVerification, res.Algorithm, i)
		}
		return nil
	}

	v, ok := res.Value()
	if !ok {
		return fmt.Errorf("%w: %s returned no outcome", ErrVerification, res.Algorithm)
	}
	if v != ref[rank] {
		return fmt.Errorf("%w: %s selected %d, want %d at rank %d", ErrVerification, res.Algorithm, v, ref[rank], rank)
	}
	return nil
}

// firstMismatch returns the first index where a and b differ, or -1.
func firstMismatch(a, b []int) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) != len(b) {
		return n
	}
	return -1
}

func outcomeSummary(res engine.Result) string {
	if v, ok := res.Value(); ok {
		return strconv.Itoa(v)
	}
	seq, _ := res.Sequence()
	return fmt.Sprintf("sorted n=%d", len(seq))
}
