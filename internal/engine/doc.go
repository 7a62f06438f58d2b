// Package engine implements the instrumented sorting and selection engines.
//
// Four engines share one result shape:
//
//   - MergeSort: stable top-down merge sort
//   - QuickSort: randomized in-place sort, Hoare partition
//   - QuickSelect: randomized order-statistic selection, Lomuto partition
//   - SelectLinear: deterministic median-of-medians selection
//
// Every invocation copies its input, runs the algorithm while counting
// ordering comparisons into a per-call accumulator, times the whole call
// and returns a Result whose Outcome is either a SelectionOutcome or a
// SortingOutcome.
//
// # Comparison counting
//
// Counting rules are part of the contract, since results from different
// runs and different implementations are compared side by side:
//
//   - MergeSort: one per element emitted while both halves are non-empty.
//   - QuickSort: one per element stepped over by each Hoare scan, plus one
//     for each scan's terminating test.
//   - QuickSelect: one per element scanned by the Lomuto loop, plus one per
//     recursive step to place k relative to the pivot.
//   - SelectLinear: one per comparator call while sorting groups and small
//     tails, one per element for the "< pivot" test, and one more only for
//     elements greater than the pivot.
//
// # Memory estimates
//
// MemoryUsage is a reproducible estimate derived from buffer sizes, not a
// profile. See each engine's SortWithMetrics/SelectWithMetrics for its rule.
//
// # Randomness
//
// QuickSort and QuickSelect draw pivots from an injected RandSource. Build
// them WithSeed to make pivots, and therefore comparison counts, repeatable:
//
//	qs := engine.NewQuickSort(engine.WithSeed(42))
//	res, err := qs.SortWithMetrics([]int{5, 3, 1, 4, 2})
//
// Engines are safe for concurrent use; the random source is mutex-guarded
// and every other piece of state is call-scoped.
package engine
