// Package aggregator groups scan results by the text that was matched.
package aggregator

import (
	"github.com/gcbaptista/go-style-checker/model"
)

// Aggregate groups matches by exact surface text. Each entry takes its
// correct term, context and offset from the first match of its group in
// input order, and entries appear in the order their surface text was first
// seen. The input is not re-sorted.
func Aggregate(matches []model.MatchRecord) []model.AggregatedEntry {
	entries := make([]model.AggregatedEntry, 0)
	positions := make(map[string]int)

	for _, m := range matches {
		if pos, seen := positions[m.SurfaceText]; seen {
			entries[pos].Count++
			continue
		}
		positions[m.SurfaceText] = len(entries)
		entries = append(entries, model.AggregatedEntry{
			WrongTerm:             m.SurfaceText,
			CorrectTerm:           m.CorrectTerm,
			Count:                 1,
			RepresentativeContext: m.ContextWindow,
			FirstOffset:           m.StartOffset,
		})
	}
	return entries
}

// TotalCount sums the counts of entries.
func TotalCount(entries []model.AggregatedEntry) int {
	total := 0
	for _, e := range entries {
		total += e.Count
	}
	return total
}

// Locate returns the first match whose surface text equals surface, which is
// where a reader clicking on an aggregated entry is taken.
func Locate(matches []model.MatchRecord, surface string) (model.MatchRecord, bool) {
	for _, m := range matches {
		if m.SurfaceText == surface {
			return m, true
		}
	}
	return model.MatchRecord{}, false
}
