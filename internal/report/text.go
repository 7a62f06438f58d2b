package report

import (
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/roach88/selbench/internal/harness"
	"github.com/roach88/selbench/internal/inputgen"
)

// column widths are minimums; WriteText widens a column to fit its cells.
type column struct {
	title string
	width int
	left  bool
}

var textColumns = []column{
	{"DISTRIBUTION", 14, true},
	{"SIZE", 11, false},
	{"ALGORITHM", 12, true},
	{"SAMPLES", 7, false},
	{"MEAN ms", 11, false},
	{"STD ms", 9, false},
	{"COMPARISONS", 15, false},
	{"MEMORY B", 13, false},
	{"FAILED", 6, false},
}

// WriteText renders rows as an aligned table under a title. Numbers use
// English digit grouping.
func WriteText(w io.Writer, title string, rows []harness.Row) error {
	p := message.NewPrinter(language.English)

	if _, err := fmt.Fprintf(w, "=== %s ===\n", title); err != nil {
		return err
	}
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "  (no measurements)")
		return err
	}

	titles := make([]string, len(textColumns))
	for i, c := range textColumns {
		titles[i] = c.title
	}
	table := make([][]string, len(rows))
	for i, r := range rows {
		table[i] = []string{
			inputgen.Distribution(r.Distribution).Label(),
			p.Sprintf("%d", r.Size),
			r.Algorithm,
			p.Sprintf("%d", r.Samples),
			p.Sprintf("%.3f", r.MeanMillis),
			p.Sprintf("%.3f", r.StdMillis),
			p.Sprintf("%.0f", r.MeanComparisons),
			p.Sprintf("%.0f", r.MeanMemoryBytes),
			p.Sprintf("%d", r.Failures),
		}
	}

	widths := columnWidths(titles, table)
	if err := writeLine(w, widths, titles); err != nil {
		return err
	}
	for _, cells := range table {
		if err := writeLine(w, widths, cells); err != nil {
			return err
		}
	}
	return nil
}

// columnWidths widens each column past its minimum to fit its widest cell.
func columnWidths(titles []string, table [][]string) []int {
	widths := make([]int, len(textColumns))
	for i, c := range textColumns {
		widths[i] = max(c.width, utf8.RuneCountInString(titles[i]))
		for _, cells := range table {
			widths[i] = max(widths[i], utf8.RuneCountInString(cells[i]))
		}
	}
	return widths
}

func writeLine(w io.Writer, widths []int, cells []string) error {
	line := ""
	for i, c := range textColumns {
		if i > 0 {
			line += "  "
		}
		if c.left {
			line += fmt.Sprintf("%-*s", widths[i], cells[i])
		} else {
			line += fmt.Sprintf("%*s", widths[i], cells[i])
		}
	}
	_, err := fmt.Fprintln(w, line)
	return err
}
