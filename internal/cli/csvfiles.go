package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/roach88/selbench/internal/engine"
	"github.com/roach88/selbench/internal/harness"
	"github.com/roach88/selbench/internal/report"
	"github.com/roach88/selbench/internal/store"
)

// csvFileNames maps each engine category to its results file.
var csvFileNames = map[engine.Category]string{
	engine.CategorySelection: "selection_benchmark_results.csv",
	engine.CategorySorting:   "sorting_benchmark_results.csv",
}

// csvCategories returns the CSV layouts a sweep category produces.
func csvCategories(c harness.Category) []engine.Category {
	switch c {
	case harness.CategorySelection:
		return []engine.Category{engine.CategorySelection}
	case harness.CategorySorting:
		return []engine.Category{engine.CategorySorting}
	default:
		return []engine.Category{engine.CategorySelection, engine.CategorySorting}
	}
}

// appendCSVFiles appends ms to the results file of every layout the
// category produces, creating dir when needed.
func appendCSVFiles(dir string, category harness.Category, ms []store.Measurement) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create CSV directory: %w", err)
	}
	for _, c := range csvCategories(category) {
		path := filepath.Join(dir, csvFileNames[c])
		if err := report.AppendCSV(path, c, ms); err != nil {
			return fmt.Errorf("append %s: %w", path, err)
		}
	}
	return nil
}
