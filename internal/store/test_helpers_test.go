package store

import (
	"path/filepath"
	"testing"
	"time"
)

// createTestStore creates a new temporary store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

var testStart = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

// createTestRun creates a run with minimal required fields.
func createTestRun(id string) Run {
	return Run{
		ID:        id,
		Name:      "test-sweep",
		Category:  "sorting",
		Seed:      42,
		Rank:      6,
		Config:    `{"name":"test-sweep"}`,
		Host:      `{"goos":"linux"}`,
		StartedAt: testStart,
	}
}

// createTestMeasurement creates a successful measurement.
func createTestMeasurement(runID string, seq int64, algorithm string) Measurement {
	return Measurement{
		RunID:         runID,
		Seq:           seq,
		Distribution:  "RANDOM",
		Size:          1000,
		Repeat:        0,
		Algorithm:     algorithm,
		ElapsedMillis: 1.25,
		Comparisons:   12000,
		MemoryBytes:   8000,
		Outcome:       "sorted n=1000",
	}
}
