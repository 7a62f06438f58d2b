package engine

import (
	"strconv"
	"time"
)

// Algorithm labels reported in Result.Algorithm.
const (
	AlgorithmMergeSort    = "MergeSort"
	AlgorithmQuickSort    = "QuickSort"
	AlgorithmQuickSelect  = "QuickSelect"
	AlgorithmSelectLinear = "SelectLinear"
)

// ElementSize is the size in bytes of one sequence element.
// All memory estimates are expressed as multiples of it.
const ElementSize = strconv.IntSize / 8

// Outcome is the algorithm-specific part of a Result.
// It is either a SelectionOutcome or a SortingOutcome, never both.
type Outcome interface {
	// outcomeMarker is a private method to restrict implementers
	outcomeMarker()
}

// SelectionOutcome carries the order statistic found by a selection engine.
type SelectionOutcome struct {
	Value int
}

// SortingOutcome carries the fully sorted output of a sorting engine.
type SortingOutcome struct {
	Sequence []int
}

func (SelectionOutcome) outcomeMarker() {}
func (SortingOutcome) outcomeMarker()   {}

// Result is the uniform record returned by every engine invocation.
type Result struct {
	// Algorithm identifies the engine that produced the result.
	Algorithm string

	// Outcome is the selected value or the sorted sequence.
	Outcome Outcome

	// Elapsed is the wall-clock duration of the whole call.
	Elapsed time.Duration

	// Comparisons counts element-to-element and element-to-pivot ordering
	// tests, accumulated over every recursive step.
	Comparisons uint64

	// MemoryUsage is the engine's estimate of additional bytes allocated.
	// Each engine has its own accounting rule; it is not a peak measurement.
	MemoryUsage uint64
}

// ExecutionTimeMillis returns Elapsed in fractional milliseconds.
func (r Result) ExecutionTimeMillis() float64 {
	return float64(r.Elapsed) / float64(time.Millisecond)
}

// Value returns the selected element if r holds a SelectionOutcome.
func (r Result) Value() (int, bool) {
	o, ok := r.Outcome.(SelectionOutcome)
	return o.Value, ok
}

// Sequence returns the sorted output if r holds a SortingOutcome.
func (r Result) Sequence() ([]int, bool) {
	o, ok := r.Outcome.(SortingOutcome)
	return o.Sequence, ok
}

// metrics is the per-invocation accumulator threaded through the recursion.
// It is created at call entry and never shared between calls.
type metrics struct {
	comparisons uint64
	memory      uint64
}

// compare is a three-way comparator that counts every invocation.
func (m *metrics) compare(a, b int) int {
	m.comparisons++
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// workingCopy returns a private copy of seq whose capacity equals its length.
func workingCopy(seq []int) []int {
	data := make([]int, len(seq))
	copy(data, seq)
	return data
}
