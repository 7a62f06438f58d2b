package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/selbench/internal/harness"
	"github.com/roach88/selbench/internal/store"
	"github.com/roach88/selbench/internal/testutil"
)

// runTestBench executes bench with a 1ms step clock and run IDs
// bench-0001, bench-0002, ...
func runTestBench(t *testing.T, format string, logs *bytes.Buffer, args ...string) (string, string, error) {
	t.Helper()
	cmd := newBenchCommand(&BenchOptions{
		RootOptions: testRootOptions(format, logs),
		RunIDs:      testutil.NewSequentialRunIDs("bench"),
	})
	return execute(cmd, args...)
}

var smallSortingSweep = []string{
	"--name", "nightly",
	"--category", "sorting",
	"--sizes", "10,20",
	"--distributions", "random,reverse-sorted",
	"--repeats", "2",
	"--seed", "5",
	"--verify",
}

func TestBench_RecordsRunAndWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "selbench.db")
	csvDir := filepath.Join(dir, "results")
	metricsPath := filepath.Join(dir, "selbench.prom")

	args := append([]string{"--db", dbPath, "--csv", csvDir, "--metrics-file", metricsPath}, smallSortingSweep...)
	out, _, err := runTestBench(t, "text", nil, args...)
	require.NoError(t, err)

	assert.Contains(t, out, "=== nightly [bench-0001] ===")
	assert.Contains(t, out, "Status: completed, 16 measurements, 0 failed")
	assert.Contains(t, out, "Reverse Sorted")

	// Store
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	run, err := st.ReadRun(context.Background(), "bench-0001")
	require.NoError(t, err)
	assert.Equal(t, store.StatusCompleted, run.Status)
	assert.Equal(t, "sorting", run.Category)
	assert.Equal(t, uint64(5), run.Seed)
	require.NotNil(t, run.FinishedAt)

	ms, err := st.ReadMeasurements(context.Background(), "bench-0001")
	require.NoError(t, err)
	assert.Len(t, ms, 16)

	// CSV: header plus one line per (distribution, size, repeat)
	data, err := os.ReadFile(filepath.Join(csvDir, "sorting_benchmark_results.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 9)
	assert.True(t, strings.HasPrefix(lines[0], "Test Case,Input Size,Execution Time (ms) Quick Sort"))
	assert.True(t, strings.HasPrefix(lines[1], "Random,10,1,1,"))
	assert.NoFileExists(t, filepath.Join(csvDir, "selection_benchmark_results.csv"))

	// Metrics
	prom, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `selbench_sweep_measurements_total{algorithm="QuickSort",status="ok"} 8`)
	assert.Contains(t, string(prom), `selbench_sweep_measurements_total{algorithm="MergeSort",status="ok"} 8`)
}

func TestBench_CSVAppendsWithoutRepeatingHeader(t *testing.T) {
	csvDir := t.TempDir()
	args := []string{"--csv", csvDir, "--category", "selection", "--sizes", "12", "--distributions", "random", "-k", "3"}

	_, _, err := runTestBench(t, "text", nil, args...)
	require.NoError(t, err)
	_, _, err = runTestBench(t, "text", nil, args...)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(csvDir, "selection_benchmark_results.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, 1, strings.Count(string(data), "Test Case"))
	assert.Equal(t, lines[1], lines[2], "same seed, same clock, same line")
}

func TestBench_JSONSummary(t *testing.T) {
	out, _, err := runTestBench(t, "json", nil, smallSortingSweep...)
	require.NoError(t, err)

	var resp struct {
		Status string          `json:"status"`
		Data   harness.Summary `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "bench-0001", resp.Data.RunID)
	assert.Equal(t, "nightly", resp.Data.Name)
	assert.Equal(t, store.StatusCompleted, resp.Data.Status)
	assert.Equal(t, 16, resp.Data.Measurements)
	require.Len(t, resp.Data.Rows, 8)

	first := resp.Data.Rows[0]
	assert.Equal(t, "RANDOM", first.Distribution)
	assert.Equal(t, 10, first.Size)
	assert.Equal(t, "QuickSort", first.Algorithm)
	assert.Equal(t, 2, first.Samples)
	assert.InDelta(t, 1.0, first.MeanMillis, 1e-9)
}

func TestBench_ConfigFileWithOverrides(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "sweep.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`name: from-file
category: selection
sizes: [30]
distributions: [random]
repeats: 1
rank: 3
`), 0644))
	dbPath := filepath.Join(dir, "selbench.db")

	_, _, err := runTestBench(t, "text", nil, "--config", cfgPath, "--db", dbPath, "--rank", "5", "--repeats", "2")
	require.NoError(t, err)

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	run, err := st.ReadRun(context.Background(), "bench-0001")
	require.NoError(t, err)
	assert.Equal(t, "from-file", run.Name)
	assert.Equal(t, 5, run.Rank)

	ms, err := st.ReadMeasurements(context.Background(), "bench-0001")
	require.NoError(t, err)
	assert.Len(t, ms, 4) // 2 repeats x 2 selection engines
	for _, m := range ms {
		assert.Contains(t, []string{"SelectLinear", "QuickSelect"}, m.Algorithm)
	}
}

func TestBench_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"rank not below smallest size", []string{"--category", "selection", "--sizes", "5", "--rank", "6"}, "rank 6 must be smaller"},
		{"unknown distribution", []string{"--distributions", "sawtooth"}, "sawtooth"},
		{"zero repeats", []string{"--sizes", "10", "--repeats", "0"}, "repeats"},
		{"unknown category", []string{"--sizes", "10", "--category", "hashing"}, "category"},
		{"missing config file", []string{"--config", "does-not-exist.yaml"}, "failed to read config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runTestBench(t, "text", nil, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestBench_InvalidConfigJSON(t *testing.T) {
	out, _, err := runTestBench(t, "json", nil, "--sizes", "10", "--repeats", "0")
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, ErrCodeConfig, resp.Error.Code)
}

func TestBench_DatabaseOpenFailure(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "missing", "selbench.db")
	_, _, err := runTestBench(t, "text", nil, "--db", dbPath, "--sizes", "10")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to open database")
}

func TestBench_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := newBenchCommand(&BenchOptions{
		RootOptions: testRootOptions("text", nil),
		RunIDs:      testutil.NewSequentialRunIDs("bench"),
	})
	cmd.SetContext(ctx)
	out, _, err := execute(cmd, "--sizes", "10", "--category", "sorting")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, out, "Status: cancelled, 0 measurements")
}

func TestBench_CancelledBeforeRunRecorded(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := newBenchCommand(&BenchOptions{
		RootOptions: testRootOptions("text", nil),
		RunIDs:      testutil.NewSequentialRunIDs("bench"),
	})
	cmd.SetContext(ctx)
	_, _, err := execute(cmd, "--db", filepath.Join(t.TempDir(), "selbench.db"), "--sizes", "10")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "sweep interrupted")
}

func TestBench_Progress(t *testing.T) {
	_, errOut, err := runTestBench(t, "text", nil,
		"--progress", "--category", "sorting", "--sizes", "10", "--distributions", "random")
	require.NoError(t, err)
	assert.Equal(t, "[1/2] QuickSort Random n=10\n[2/2] MergeSort Random n=10\n", errOut)
}

func TestBench_Logging(t *testing.T) {
	logs := &bytes.Buffer{}
	_, _, err := runTestBench(t, "text", logs, "--category", "sorting", "--sizes", "10", "--distributions", "random")
	require.NoError(t, err)

	assert.Contains(t, logs.String(), "sweep starting")
	assert.Contains(t, logs.String(), "run_id=bench-0001")
	assert.Contains(t, logs.String(), "sweep finished")
	assert.NotContains(t, logs.String(), "level=DEBUG")
}

func TestCollector_WithoutStore(t *testing.T) {
	c := &collector{}
	ctx := context.Background()

	require.NoError(t, c.BeginRun(ctx, store.Run{ID: "r"}))
	require.NoError(t, c.RecordMeasurement(ctx, store.Measurement{Seq: 1}))
	require.NoError(t, c.RecordMeasurement(ctx, store.Measurement{Seq: 2}))
	require.NoError(t, c.FinishRun(ctx, "r", store.StatusCompleted, testutil.Epoch))

	assert.Len(t, c.measurements, 2)
	assert.NoError(t, c.err)
}
