package engine

import "math"

// QuickSort is a randomized in-place quicksort using Hoare partitioning.
type QuickSort struct {
	rand  RandSource
	clock Clock
}

// NewQuickSort creates a QuickSort engine. Use WithSeed for reproducible
// pivot choices and comparison counts.
func NewQuickSort(opts ...Option) *QuickSort {
	o := buildOptions(opts)
	return &QuickSort{rand: o.rand, clock: o.clock}
}

// Name returns the algorithm label.
func (s *QuickSort) Name() string { return AlgorithmQuickSort }

// SortWithMetrics sorts a copy of seq and reports its metrics.
// seq is never modified. Empty input yields an empty result with zero
// comparisons.
//
// MemoryUsage approximates the expected recursion depth,
// ElementSize × (1 + log2(n)), since the sort itself is in place.
func (s *QuickSort) SortWithMetrics(seq []int) (Result, error) {
	sw := startStopwatch(s.clock)
	m := &metrics{}

	data := workingCopy(seq)
	if len(data) > 0 {
		if err := s.quickSort(data, 0, len(data)-1, m); err != nil {
			return Result{}, err
		}
	}

	return Result{
		Algorithm:   AlgorithmQuickSort,
		Outcome:     SortingOutcome{Sequence: data},
		Elapsed:     sw.elapsed(),
		Comparisons: m.comparisons,
		MemoryUsage: quickSortMemory(len(data)),
	}, nil
}

func quickSortMemory(n int) uint64 {
	if n == 0 {
		return 0
	}
	return uint64(float64(ElementSize) * (1 + math.Log2(float64(n))))
}

// quickSort sorts a[low..high]. The left recursion includes the split
// index returned by hoarePartition; with Hoare's scheme that index is not
// necessarily the pivot's final slot.
func (s *QuickSort) quickSort(a []int, low, high int, m *metrics) error {
	if low < 0 || high < 0 || low >= len(a) || high >= len(a) {
		return NewInvalidRangeError(AlgorithmQuickSort, low, high, len(a))
	}

	if low < high {
		split, err := s.randomPartition(a, low, high, m)
		if err != nil {
			return err
		}
		if err := s.quickSort(a, low, split, m); err != nil {
			return err
		}
		if err := s.quickSort(a, split+1, high, m); err != nil {
			return err
		}
	}
	return nil
}

// randomPartition moves a uniformly chosen element to a[low] and
// partitions around it.
func (s *QuickSort) randomPartition(a []int, low, high int, m *metrics) (int, error) {
	if low < 0 || high < 0 || low >= len(a) || high >= len(a) || low > high {
		return 0, NewInvalidRangeError(AlgorithmQuickSort, low, high, len(a))
	}
	if low == high {
		return low, nil
	}

	r := intInRange(s.rand, low, high)
	a[r], a[low] = a[low], a[r]

	return hoarePartition(a, low, high, m), nil
}

// hoarePartition partitions a[low..high] around a[low] and returns j such
// that every element of a[low..j] is <= every element of a[j+1..high].
//
// Each scan counts one comparison per element it steps over plus one for
// the test that stops it.
func hoarePartition(a []int, low, high int, m *metrics) int {
	pivot := a[low]
	i, j := low, high

	for {
		for i <= high && a[i] < pivot {
			i++
			m.comparisons++
		}
		m.comparisons++

		for j >= low && a[j] > pivot {
			j--
			m.comparisons++
		}
		m.comparisons++

		if i >= j {
			return j
		}

		a[i], a[j] = a[j], a[i]
		i++
		j--
	}
}
