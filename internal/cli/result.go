package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/selbench/internal/engine"
)

// sortView is the output of the sort command.
type sortView struct {
	Algorithm   string  `json:"algorithm"`
	Sequence    []int   `json:"sequence"`
	Comparisons uint64  `json:"comparisons"`
	MemoryBytes uint64  `json:"memory_bytes"`
	ElapsedMs   float64 `json:"execution_time_ms"`
}

func newSortView(res engine.Result) sortView {
	seq, _ := res.Sequence()
	if seq == nil {
		seq = []int{}
	}
	return sortView{
		Algorithm:   res.Algorithm,
		Sequence:    seq,
		Comparisons: res.Comparisons,
		MemoryBytes: res.MemoryUsage,
		ElapsedMs:   res.ExecutionTimeMillis(),
	}
}

func (v sortView) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Algorithm:   %s\n", v.Algorithm)
	fmt.Fprintf(&b, "Sorted:      %s\n", joinInts(v.Sequence))
	writeMetrics(&b, v.Comparisons, v.MemoryBytes, v.ElapsedMs)
	return b.String()
}

// selectView is the output of the select command.
type selectView struct {
	Algorithm   string  `json:"algorithm"`
	Rank        int     `json:"rank"`
	Value       int     `json:"value"`
	Comparisons uint64  `json:"comparisons"`
	MemoryBytes uint64  `json:"memory_bytes"`
	ElapsedMs   float64 `json:"execution_time_ms"`
}

func newSelectView(res engine.Result, k int) selectView {
	value, _ := res.Value()
	return selectView{
		Algorithm:   res.Algorithm,
		Rank:        k,
		Value:       value,
		Comparisons: res.Comparisons,
		MemoryBytes: res.MemoryUsage,
		ElapsedMs:   res.ExecutionTimeMillis(),
	}
}

func (v selectView) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Algorithm:   %s\n", v.Algorithm)
	fmt.Fprintf(&b, "Rank:        %d\n", v.Rank)
	fmt.Fprintf(&b, "Value:       %d\n", v.Value)
	writeMetrics(&b, v.Comparisons, v.MemoryBytes, v.ElapsedMs)
	return b.String()
}

func writeMetrics(b *strings.Builder, comparisons, memory uint64, elapsedMs float64) {
	fmt.Fprintf(b, "Comparisons: %d\n", comparisons)
	fmt.Fprintf(b, "Memory:      %d bytes\n", memory)
	fmt.Fprintf(b, "Time:        %.3f ms", elapsedMs)
}

// parseInts converts positional arguments to a sequence.
func parseInts(args []string) ([]int, error) {
	seq := make([]int, 0, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(strings.TrimSpace(a))
		if err != nil {
			return nil, fmt.Errorf("argument %d: %q is not an integer", i+1, a)
		}
		seq = append(seq, v)
	}
	return seq, nil
}

func joinInts(seq []int) string {
	parts := make([]string, len(seq))
	for i, v := range seq {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
