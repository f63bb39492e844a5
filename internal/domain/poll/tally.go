package poll

import (
	"math"
	"sort"
)

// OptionCount is one tallied row: an option, its votes, and its integer
// percentage share of the total.
type OptionCount struct {
	Option  string
	Count   int
	Percent int
}

// Tally summarizes raw counts into a total and per-option shares.
type Tally struct {
	Total int
	Rows  []OptionCount
}

// Tallied computes the tally for a result set. Percentages are rounded to the
// nearest integer; with a zero total every share is 0. Rows are sorted by
// option name so renders are stable across refreshes.
func (r Results) Tallied() Tally {
	total := 0
	for _, c := range r.Counts {
		total += c
	}
	rows := make([]OptionCount, 0, len(r.Counts))
	for option, count := range r.Counts {
		pct := 0
		if total > 0 {
			pct = int(math.Round(float64(count) / float64(total) * 100))
		}
		rows = append(rows, OptionCount{Option: option, Count: count, Percent: pct})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Option < rows[j].Option })
	return Tally{Total: total, Rows: rows}
}
