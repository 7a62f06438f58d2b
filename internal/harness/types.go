package harness

import (
	"time"

	"github.com/roach88/selbench/internal/store"
)

// Row aggregates the measurements of one algorithm on one
// (distribution, size) configuration.
type Row struct {
	Distribution string `json:"distribution"`
	Size         int    `json:"size"`
	Algorithm    string `json:"algorithm"`

	// Samples counts successful measurements; Failures counts the rest.
	// Statistics below cover successful measurements only.
	Samples  int `json:"samples"`
	Failures int `json:"failures"`

	MeanMillis   float64 `json:"mean_ms"`
	StdMillis    float64 `json:"std_ms"`
	MedianMillis float64 `json:"median_ms"`
	MinMillis    float64 `json:"min_ms"`
	MaxMillis    float64 `json:"max_ms"`

	MeanComparisons float64 `json:"mean_comparisons"`
	MeanMemoryBytes float64 `json:"mean_memory_bytes"`
}

// Summary is the outcome of a sweep.
type Summary struct {
	RunID      string          `json:"run_id"`
	Name       string          `json:"name"`
	Status     store.RunStatus `json:"status"`
	Host       HostInfo        `json:"host"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`

	// Measurements counts recorded measurements; Failures counts those
	// carrying an error.
	Measurements int `json:"measurements"`
	Failures     int `json:"failures"`

	Rows []Row `json:"rows"`
}

// Progress is reported after every measurement.
type Progress struct {
	Done  int
	Total int

	// Last is the measurement just recorded.
	Last store.Measurement
}
