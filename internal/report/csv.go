package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/roach88/selbench/internal/engine"
	"github.com/roach88/selbench/internal/inputgen"
	"github.com/roach88/selbench/internal/store"
)

// layout describes one CSV format: its header and the two engines whose
// metrics it places side by side.
type layout struct {
	header        []string
	first, second string
}

var layouts = map[engine.Category]layout{
	engine.CategorySelection: {
		header: []string{
			"Test Case", "Input Size",
			"Execution Time (ms) Select Linear", "Execution Time (ms) QuickSelect",
			"Comparisons Select Linear", "Comparisons QuickSelect",
			"Memory Usage (bytes) Select Linear", "Memory Usage (bytes) QuickSelect",
		},
		first:  engine.AlgorithmSelectLinear,
		second: engine.AlgorithmQuickSelect,
	},
	engine.CategorySorting: {
		header: []string{
			"Test Case", "Input Size",
			"Execution Time (ms) Quick Sort", "Execution Time (ms) Merge Sort",
			"Comparisons Quick Sort", "Comparisons Merge Sort",
			"Memory Usage (bytes) Quick Sort", "Memory Usage (bytes) Merge Sort",
		},
		first:  engine.AlgorithmQuickSort,
		second: engine.AlgorithmMergeSort,
	},
}

// Header returns the CSV header for a category.
func Header(category engine.Category) ([]string, error) {
	l, ok := layouts[category]
	if !ok {
		return nil, fmt.Errorf("no CSV layout for category %q", category)
	}
	return l.header, nil
}

type lineKey struct {
	distribution string
	size         int
	repeat       int
}

// WriteCSV writes one line per (distribution, size, repeat) found in ms,
// in first-seen order. Measurements of engines outside the category are
// ignored. A failed or missing measurement leaves its cells empty.
func WriteCSV(w io.Writer, category engine.Category, ms []store.Measurement, header bool) error {
	l, ok := layouts[category]
	if !ok {
		return fmt.Errorf("no CSV layout for category %q", category)
	}

	var order []lineKey
	lines := make(map[lineKey]map[string]store.Measurement)
	for _, m := range ms {
		if m.Algorithm != l.first && m.Algorithm != l.second {
			continue
		}
		k := lineKey{m.Distribution, m.Size, m.Repeat}
		if lines[k] == nil {
			lines[k] = make(map[string]store.Measurement)
			order = append(order, k)
		}
		lines[k][m.Algorithm] = m
	}

	cw := csv.NewWriter(w)
	if header {
		if err := cw.Write(l.header); err != nil {
			return fmt.Errorf("write CSV header: %w", err)
		}
	}
	for _, k := range order {
		a, aok := lines[k][l.first]
		b, bok := lines[k][l.second]
		aok = aok && !a.Failed()
		bok = bok && !b.Failed()

		record := []string{
			inputgen.Distribution(k.distribution).Label(),
			strconv.Itoa(k.size),
			cell(aok, formatMillis(a.ElapsedMillis)), cell(bok, formatMillis(b.ElapsedMillis)),
			cell(aok, strconv.FormatUint(a.Comparisons, 10)), cell(bok, strconv.FormatUint(b.Comparisons, 10)),
			cell(aok, strconv.FormatUint(a.MemoryBytes, 10)), cell(bok, strconv.FormatUint(b.MemoryBytes, 10)),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write CSV line: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// AppendCSV appends lines to the CSV file at path, creating it if needed.
// The header is written only when the file is empty.
func AppendCSV(path string, category engine.Category, ms []store.Measurement) (err error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open CSV file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close CSV file: %w", cerr)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat CSV file: %w", err)
	}
	return WriteCSV(f, category, ms, info.Size() == 0)
}

func cell(ok bool, v string) string {
	if !ok {
		return ""
	}
	return v
}

// formatMillis prints six significant digits, like a default C++ stream.
func formatMillis(ms float64) string {
	return strconv.FormatFloat(ms, 'g', 6, 64)
}
