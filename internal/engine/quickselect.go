package engine

// QuickSelect is a randomized order-statistic selector using Lomuto
// partitioning.
type QuickSelect struct {
	rand  RandSource
	clock Clock
}

// NewQuickSelect creates a QuickSelect engine. Use WithSeed for
// reproducible pivot choices and comparison counts.
func NewQuickSelect(opts ...Option) *QuickSelect {
	o := buildOptions(opts)
	return &QuickSelect{rand: o.rand, clock: o.clock}
}

// Name returns the algorithm label.
func (s *QuickSelect) Name() string { return AlgorithmQuickSelect }

// SelectWithMetrics returns the element of rank k (zero-based) in seq.
// seq is never modified. Returns an OutOfRange error unless 0 <= k < len(seq).
//
// MemoryUsage is ElementSize × (n + 1): the working copy plus one element
// standing in for recursion-frame overhead.
func (s *QuickSelect) SelectWithMetrics(seq []int, k int) (Result, error) {
	sw := startStopwatch(s.clock)

	if k < 0 || k >= len(seq) {
		return Result{}, NewOutOfRangeError(AlgorithmQuickSelect, k, len(seq))
	}

	m := &metrics{}
	data := workingCopy(seq)
	value := s.quickSelect(data, 0, len(data)-1, k, m)

	return Result{
		Algorithm:   AlgorithmQuickSelect,
		Outcome:     SelectionOutcome{Value: value},
		Elapsed:     sw.elapsed(),
		Comparisons: m.comparisons,
		MemoryUsage: uint64(ElementSize * (len(data) + 1)),
	}, nil
}

// quickSelect finds the element of rank k within a[left..right], where k
// is relative to left. One comparison per step is charged for classifying
// k against the pivot position.
func (s *QuickSelect) quickSelect(a []int, left, right, k int, m *metrics) int {
	if left == right {
		return a[left]
	}

	p := s.randomPartition(a, left, right, m)
	before := p - left + 1
	m.comparisons++

	switch {
	case k == before-1:
		return a[p]
	case k < before-1:
		return s.quickSelect(a, left, p-1, k, m)
	default:
		return s.quickSelect(a, p+1, right, k-before, m)
	}
}

// randomPartition moves a uniformly chosen element to a[right] and
// partitions around it.
func (s *QuickSelect) randomPartition(a []int, left, right int, m *metrics) int {
	r := intInRange(s.rand, left, right)
	a[r], a[right] = a[right], a[r]
	return lomutoPartition(a, left, right, m)
}

// lomutoPartition partitions a[left..right] around a[right] and returns
// the pivot's final index. Elements <= pivot end up on its left.
func lomutoPartition(a []int, left, right int, m *metrics) int {
	pivot := a[right]
	boundary := left - 1

	for i := left; i < right; i++ {
		m.comparisons++
		if a[i] <= pivot {
			boundary++
			a[boundary], a[i] = a[i], a[boundary]
		}
	}

	a[boundary+1], a[right] = a[right], a[boundary+1]
	return boundary + 1
}
