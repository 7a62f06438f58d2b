package engine

import (
	"math/rand/v2"
	"slices"
	"time"
)

// fixedStepClock advances by a constant step on every Now call.
type fixedStepClock struct {
	now  time.Time
	step time.Duration
}

func (c *fixedStepClock) Now() time.Time {
	c.now = c.now.Add(c.step)
	return c.now
}

// inputPatterns returns named inputs covering the shapes the benchmark
// sweep uses plus the degenerate ones.
func inputPatterns(n int, seed uint64) map[string][]int {
	rng := rand.New(rand.NewPCG(seed, seed))

	random := make([]int, n)
	for i := range random {
		random[i] = rng.IntN(n*10+1) + 1
	}

	sorted := make([]int, n)
	reversed := make([]int, n)
	for i := range sorted {
		sorted[i] = i + 1
		reversed[i] = n - i
	}

	nearly := slices.Clone(sorted)
	for i := 0; i < n/20; i++ {
		a, b := rng.IntN(n), rng.IntN(n)
		nearly[a], nearly[b] = nearly[b], nearly[a]
	}

	dups := make([]int, n)
	for i := range dups {
		dups[i] = 7
	}

	few := make([]int, n)
	for i := range few {
		few[i] = rng.IntN(3)
	}

	return map[string][]int{
		"random":         random,
		"sorted":         sorted,
		"reversed":       reversed,
		"nearly_sorted":  nearly,
		"all_duplicates": dups,
		"few_distinct":   few,
	}
}

func sortedCopy(seq []int) []int {
	s := slices.Clone(seq)
	slices.Sort(s)
	return s
}
