package harness

import (
	"math"
	"slices"

	"github.com/roach88/selbench/internal/store"
)

type rowKey struct {
	distribution string
	size         int
	algorithm    string
}

// Aggregate groups measurements by (distribution, size, algorithm) and
// computes per-group statistics. Groups keep the order in which their
// first measurement appears. Failed measurements are counted but do not
// contribute to the statistics.
func Aggregate(ms []store.Measurement) []Row {
	var order []rowKey
	groups := make(map[rowKey][]store.Measurement)
	for _, m := range ms {
		k := rowKey{m.Distribution, m.Size, m.Algorithm}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], m)
	}

	rows := make([]Row, 0, len(order))
	for _, k := range order {
		rows = append(rows, aggregateGroup(k, groups[k]))
	}
	return rows
}

func aggregateGroup(k rowKey, ms []store.Measurement) Row {
	row := Row{Distribution: k.distribution, Size: k.size, Algorithm: k.algorithm}

	var millis, comparisons, memory []float64
	for _, m := range ms {
		if m.Failed() {
			row.Failures++
			continue
		}
		millis = append(millis, m.ElapsedMillis)
		comparisons = append(comparisons, float64(m.Comparisons))
		memory = append(memory, float64(m.MemoryBytes))
	}

	row.Samples = len(millis)
	if row.Samples == 0 {
		return row
	}

	row.MeanMillis, row.StdMillis = meanStd(millis)
	row.MedianMillis = quantile(millis, 0.5)
	row.MinMillis = slices.Min(millis)
	row.MaxMillis = slices.Max(millis)
	row.MeanComparisons, _ = meanStd(comparisons)
	row.MeanMemoryBytes, _ = meanStd(memory)
	return row
}

// quantile returns the q-quantile (0..1) of values by linear
// interpolation. values is not modified.
func quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	cp := slices.Clone(values)
	slices.Sort(cp)
	if q <= 0 {
		return cp[0]
	}
	if q >= 1 {
		return cp[len(cp)-1]
	}
	pos := q * float64(len(cp)-1)
	l := int(math.Floor(pos))
	r := int(math.Ceil(pos))
	if l == r {
		return cp[l]
	}
	frac := pos - float64(l)
	return cp[l]*(1-frac) + cp[r]*frac
}

// meanStd returns the mean and population standard deviation.
func meanStd(values []float64) (mean, std float64) {
	n := float64(len(values))
	if n == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / n
	var varsum float64
	for _, v := range values {
		d := v - mean
		varsum += d * d
	}
	std = math.Sqrt(varsum / n)
	return
}
