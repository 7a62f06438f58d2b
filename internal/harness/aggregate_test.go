package harness

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/selbench/internal/store"
)

func measurement(dist string, size int, alg string, ms float64, comparisons, memory uint64) store.Measurement {
	return store.Measurement{
		Distribution:  dist,
		Size:          size,
		Algorithm:     alg,
		ElapsedMillis: ms,
		Comparisons:   comparisons,
		MemoryBytes:   memory,
	}
}

func TestAggregate_GroupsInFirstSeenOrder(t *testing.T) {
	ms := []store.Measurement{
		measurement("RANDOM", 10, "QuickSort", 1, 30, 32),
		measurement("RANDOM", 10, "MergeSort", 2, 25, 80),
		measurement("RANDOM", 10, "QuickSort", 3, 34, 32),
		measurement("RANDOM", 10, "MergeSort", 4, 23, 80),
		measurement("REVERSE_SORTED", 10, "QuickSort", 5, 40, 32),
	}

	rows := Aggregate(ms)
	require.Len(t, rows, 3)

	assert.Equal(t, "QuickSort", rows[0].Algorithm)
	assert.Equal(t, "MergeSort", rows[1].Algorithm)
	assert.Equal(t, "REVERSE_SORTED", rows[2].Distribution)

	qs := rows[0]
	assert.Equal(t, 2, qs.Samples)
	assert.Equal(t, 0, qs.Failures)
	assert.InDelta(t, 2.0, qs.MeanMillis, 1e-9)
	assert.InDelta(t, 1.0, qs.StdMillis, 1e-9)
	assert.InDelta(t, 2.0, qs.MedianMillis, 1e-9)
	assert.Equal(t, 1.0, qs.MinMillis)
	assert.Equal(t, 3.0, qs.MaxMillis)
	assert.InDelta(t, 32.0, qs.MeanComparisons, 1e-9)
	assert.InDelta(t, 32.0, qs.MeanMemoryBytes, 1e-9)

	assert.InDelta(t, 24.0, rows[1].MeanComparisons, 1e-9)
}

func TestAggregate_FailuresExcludedFromStatistics(t *testing.T) {
	failed := measurement("RANDOM", 10, "QuickSelect", 0, 0, 0)
	failed.Error = "boom"

	rows := Aggregate([]store.Measurement{
		measurement("RANDOM", 10, "QuickSelect", 4, 12, 88),
		failed,
	})
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Samples)
	assert.Equal(t, 1, rows[0].Failures)
	assert.Equal(t, 4.0, rows[0].MeanMillis)
	assert.Equal(t, 0.0, rows[0].StdMillis)
}

func TestAggregate_AllFailed(t *testing.T) {
	failed := measurement("RANDOM", 10, "QuickSelect", 0, 0, 0)
	failed.Error = "boom"

	rows := Aggregate([]store.Measurement{failed, failed})
	require.Len(t, rows, 1)
	assert.Equal(t, 0, rows[0].Samples)
	assert.Equal(t, 2, rows[0].Failures)
	assert.Zero(t, rows[0].MeanMillis)
}

func TestAggregate_Empty(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
}

func TestQuantile(t *testing.T) {
	values := []float64{4, 1, 3, 2}
	assert.Equal(t, 1.0, quantile(values, 0))
	assert.Equal(t, 4.0, quantile(values, 1))
	assert.InDelta(t, 2.5, quantile(values, 0.5), 1e-9)
	assert.Equal(t, []float64{4, 1, 3, 2}, values, "input must not be reordered")
	assert.Zero(t, quantile(nil, 0.5))
}

func TestMeanStd(t *testing.T) {
	mean, std := meanStd([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, 5.0, mean, 1e-9)
	assert.InDelta(t, 2.0, std, 1e-9)

	mean, std = meanStd(nil)
	assert.Zero(t, mean)
	assert.False(t, math.IsNaN(std))
}

func TestQuantile_InterpolatesBetweenOrderStatistics(t *testing.T) {
	values := []float64{10, 40, 20, 30}
	assert.InDelta(t, 17.5, quantile(values, 0.25), 1e-9)
	assert.InDelta(t, 25.0, quantile(values, 0.5), 1e-9)
	assert.InDelta(t, 32.5, quantile(values, 0.75), 1e-9)
	assert.Equal(t, 7.0, quantile([]float64{7}, 0.3))
}

func TestAggregate_EvenSampleMedianAndPopulationStd(t *testing.T) {
	rows := Aggregate([]store.Measurement{
		measurement("RANDOM", 10, "MergeSort", 1, 25, 80),
		measurement("RANDOM", 10, "MergeSort", 2, 25, 80),
		measurement("RANDOM", 10, "MergeSort", 4, 25, 80),
		measurement("RANDOM", 10, "MergeSort", 9, 25, 80),
	})
	require.Len(t, rows, 1)

	// Median sits halfway between the two middle samples.
	assert.InDelta(t, 3.0, rows[0].MedianMillis, 1e-9)
	assert.InDelta(t, 4.0, rows[0].MeanMillis, 1e-9)
	// Divides by n, not n-1: sqrt((9+4+0+25)/4).
	assert.InDelta(t, math.Sqrt(9.5), rows[0].StdMillis, 1e-9)
}
