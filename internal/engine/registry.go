package engine

import (
	"fmt"
	"strings"
)

// Sorter is the call contract of the sorting engines.
type Sorter interface {
	Name() string
	SortWithMetrics(seq []int) (Result, error)
}

// Selector is the call contract of the selection engines.
type Selector interface {
	Name() string
	SelectWithMetrics(seq []int, k int) (Result, error)
}

// Category groups engines by the call contract they implement.
type Category string

const (
	CategorySelection Category = "selection"
	CategorySorting   Category = "sorting"
)

// SelectionNames lists the selection engines in report order.
var SelectionNames = []string{AlgorithmSelectLinear, AlgorithmQuickSelect}

// SortingNames lists the sorting engines in report order.
var SortingNames = []string{AlgorithmQuickSort, AlgorithmMergeSort}

// Names returns every engine label.
func Names() []string {
	names := make([]string, 0, len(SelectionNames)+len(SortingNames))
	names = append(names, SelectionNames...)
	return append(names, SortingNames...)
}

// CategoryOf returns the category of the named engine.
func CategoryOf(name string) (Category, error) {
	canonical, err := canonicalName(name)
	if err != nil {
		return "", err
	}
	switch canonical {
	case AlgorithmSelectLinear, AlgorithmQuickSelect:
		return CategorySelection, nil
	default:
		return CategorySorting, nil
	}
}

// NewSorter builds the sorting engine with the given name.
// Names are matched case-insensitively.
func NewSorter(name string, opts ...Option) (Sorter, error) {
	canonical, err := canonicalName(name)
	if err != nil {
		return nil, err
	}
	switch canonical {
	case AlgorithmQuickSort:
		return NewQuickSort(opts...), nil
	case AlgorithmMergeSort:
		return NewMergeSort(opts...), nil
	default:
		return nil, fmt.Errorf("%s is not a sorting algorithm", canonical)
	}
}

// NewSelector builds the selection engine with the given name.
// Names are matched case-insensitively.
func NewSelector(name string, opts ...Option) (Selector, error) {
	canonical, err := canonicalName(name)
	if err != nil {
		return nil, err
	}
	switch canonical {
	case AlgorithmQuickSelect:
		return NewQuickSelect(opts...), nil
	case AlgorithmSelectLinear:
		return NewSelectLinear(opts...), nil
	default:
		return nil, fmt.Errorf("%s is not a selection algorithm", canonical)
	}
}

func canonicalName(name string) (string, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(name))
	for _, n := range Names() {
		if strings.ToLower(n) == key {
			return n, nil
		}
	}
	return "", fmt.Errorf("unknown algorithm %q: must be one of %v", name, Names())
}
