package store

import "time"

// RunStatus is the lifecycle state of a sweep.
type RunStatus string

const (
	StatusRunning   RunStatus = "running"
	StatusCompleted RunStatus = "completed"
	StatusFailed    RunStatus = "failed"
	StatusCancelled RunStatus = "cancelled"
)

// Run is one benchmark sweep.
type Run struct {
	ID       string
	Name     string
	Category string
	Seed     uint64
	Rank     int

	// Config is the sweep configuration as JSON.
	Config string

	// Host describes the machine the sweep ran on, as JSON.
	Host string

	Status     RunStatus
	StartedAt  time.Time
	FinishedAt *time.Time
}

// Measurement is the outcome of a single engine invocation in a sweep.
type Measurement struct {
	RunID string

	// Seq orders measurements within a run, starting at 1.
	Seq int64

	Distribution string
	Size         int
	Repeat       int
	Algorithm    string

	ElapsedMillis float64
	Comparisons   uint64
	MemoryBytes   uint64

	// Outcome summarizes the result: the selected value, or "sorted n=<len>".
	Outcome string

	// Error is empty on success. It holds the engine or verification
	// error otherwise, and the metric fields are then zero.
	Error string
}

// Failed reports whether the measurement recorded an error.
func (m Measurement) Failed() bool { return m.Error != "" }
