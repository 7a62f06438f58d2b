package engine

import "slices"

// groupSize is the block size used to build the medians sequence.
const groupSize = 5

// SelectLinear is the deterministic median-of-medians selector.
// It has no random component: the value, comparison count and memory
// estimate depend only on the input and k.
type SelectLinear struct {
	clock Clock
}

// NewSelectLinear creates a SelectLinear engine. WithSeed and WithRand
// are accepted and ignored.
func NewSelectLinear(opts ...Option) *SelectLinear {
	o := buildOptions(opts)
	return &SelectLinear{clock: o.clock}
}

// Name returns the algorithm label.
func (s *SelectLinear) Name() string { return AlgorithmSelectLinear }

// SelectWithMetrics returns the element of rank k (zero-based) in seq.
// seq is never modified. Returns an OutOfRange error unless 0 <= k < len(seq).
//
// MemoryUsage is the working copy plus the capacities of every medians,
// left, equal and right buffer allocated at every recursion level. The sum
// is never decremented when a level returns, so it grows past the real
// footprint on deep recursions.
func (s *SelectLinear) SelectWithMetrics(seq []int, k int) (Result, error) {
	sw := startStopwatch(s.clock)

	if k < 0 || k >= len(seq) {
		return Result{}, NewOutOfRangeError(AlgorithmSelectLinear, k, len(seq))
	}

	data := workingCopy(seq)
	m := &metrics{memory: uint64(ElementSize * cap(data))}
	value := selectLinear(data, k, m)

	return Result{
		Algorithm:   AlgorithmSelectLinear,
		Outcome:     SelectionOutcome{Value: value},
		Elapsed:     sw.elapsed(),
		Comparisons: m.comparisons,
		MemoryUsage: m.memory,
	}, nil
}

// selectLinear returns the element of rank k in a. a may be reordered.
func selectLinear(a []int, k int, m *metrics) int {
	if len(a) <= groupSize {
		slices.SortFunc(a, m.compare)
		return a[k]
	}

	var medians []int
	for i := 0; i < len(a); i += groupSize {
		end := min(i+groupSize, len(a))
		medians = append(medians, groupMedian(a[i:end], m))
	}
	m.memory += uint64(ElementSize * cap(medians))

	pivot := selectLinear(medians, len(medians)/2, m)

	var left, equal, right []int
	for _, v := range a {
		m.comparisons++
		if v < pivot {
			left = append(left, v)
		} else if v > pivot {
			// The "greater than" test is only charged when it succeeds.
			m.comparisons++
			right = append(right, v)
		} else {
			equal = append(equal, v)
		}
	}
	m.memory += uint64(ElementSize * (cap(left) + cap(right) + cap(equal)))

	switch {
	case k < len(left):
		return selectLinear(left, k, m)
	case k < len(left)+len(equal):
		return pivot
	default:
		return selectLinear(right, k-len(left)-len(equal), m)
	}
}

// groupMedian sorts a private copy of group and returns its middle element.
func groupMedian(group []int, m *metrics) int {
	g := make([]int, 0, len(group))
	g = append(g, group...)
	slices.SortFunc(g, m.compare)
	return g[len(g)/2]
}
