package engine

// MergeSort is a stable top-down merge sort.
type MergeSort struct {
	clock Clock
}

// NewMergeSort creates a MergeSort engine.
func NewMergeSort(opts ...Option) *MergeSort {
	o := buildOptions(opts)
	return &MergeSort{clock: o.clock}
}

// Name returns the algorithm label.
func (s *MergeSort) Name() string { return AlgorithmMergeSort }

// SortWithMetrics sorts a copy of seq and reports its metrics.
// seq is never modified. The error is always nil; it is part of the
// Sorter contract.
//
// MemoryUsage is ElementSize × len(seq): the buffers of the final
// top-level merge, not the cumulative or peak footprint of all merges.
func (s *MergeSort) SortWithMetrics(seq []int) (Result, error) {
	sw := startStopwatch(s.clock)
	m := &metrics{}

	data := workingCopy(seq)
	mergeSort(data, 0, len(data)-1, m)

	return Result{
		Algorithm:   AlgorithmMergeSort,
		Outcome:     SortingOutcome{Sequence: data},
		Elapsed:     sw.elapsed(),
		Comparisons: m.comparisons,
		MemoryUsage: uint64(ElementSize * len(data)),
	}, nil
}

func mergeSort(a []int, low, high int, m *metrics) {
	if low < high {
		mid := low + (high-low)/2
		mergeSort(a, low, mid, m)
		mergeSort(a, mid+1, high, m)
		merge(a, low, mid, high, m)
	}
}

// merge combines the sorted runs a[low..mid] and a[mid+1..high].
// One comparison is counted per element emitted while both runs are
// non-empty; the leftover tail is copied without comparisons.
func merge(a []int, low, mid, high int, m *metrics) {
	left := make([]int, mid-low+1)
	right := make([]int, high-mid)
	copy(left, a[low:mid+1])
	copy(right, a[mid+1:high+1])

	i, j, k := 0, 0, low
	for i < len(left) && j < len(right) {
		m.comparisons++
		if left[i] <= right[j] {
			a[k] = left[i]
			i++
		} else {
			a[k] = right[j]
			j++
		}
		k++
	}

	k += copy(a[k:], left[i:])
	copy(a[k:], right[j:])
}
