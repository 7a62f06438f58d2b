// Package report renders sweep results.
//
// CSV output keeps the two historical layouts, one for selection and one
// for sorting, with one line per (distribution, size, repeat) so existing
// analysis scripts keep working. Text output is an aligned per-algorithm
// summary of aggregated rows.
package report
