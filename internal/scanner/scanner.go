// Package scanner finds dictionary terms in text.
//
// Every wrong term is searched for independently with whole-word,
// case-insensitive matching. Offsets are rune offsets into the scanned text.
package scanner

import (
	"sort"

	"github.com/gcbaptista/go-style-checker/config"
	"github.com/gcbaptista/go-style-checker/internal/dictionary"
	"github.com/gcbaptista/go-style-checker/internal/tokenizer"
	"github.com/gcbaptista/go-style-checker/model"
)

// Options tune a scan. The zero value scans with the default context radius
// and keeps overlapping matches of different terms.
type Options struct {
	ContextRadius int    // Runes of context kept on each side of a match
	OverlapPolicy string // config.OverlapAll or config.OverlapLongest
}

// OptionsFromSettings converts session check settings into scan options.
func OptionsFromSettings(settings config.CheckSettings) Options {
	return Options{
		ContextRadius: settings.ContextRadius,
		OverlapPolicy: settings.OverlapPolicy,
	}
}

func (o Options) radius() int {
	if o.ContextRadius <= 0 {
		return config.DefaultContextRadius
	}
	return o.ContextRadius
}

// Scan returns every word-bounded, case-insensitive occurrence of the
// dictionary's wrong terms in text, sorted by start offset. Matches of the
// same start keep dictionary order. Occurrences of one term never overlap
// each other; occurrences of different terms may, unless the longest
// overlap policy is selected.
func Scan(text string, dict *dictionary.Dictionary, opts Options) []model.MatchRecord {
	matches := make([]model.MatchRecord, 0)
	if dict.Len() == 0 {
		return matches
	}

	runes := []rune(text)
	folded := tokenizer.Fold(runes)
	radius := opts.radius()

	for _, entry := range dict.Entries() {
		term := tokenizer.Fold([]rune(entry.WrongTerm))
		for _, span := range findTerm(runes, folded, term) {
			matches = append(matches, newRecord(runes, span[0], span[1], radius, entry))
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].StartOffset < matches[j].StartOffset
	})

	if opts.OverlapPolicy == config.OverlapLongest {
		matches = keepLongest(matches)
	}
	return matches
}

// findTerm returns the [start, end) spans of term in folded, scanning left to
// right and resuming after each accepted match.
func findTerm(runes, folded, term []rune) [][2]int {
	var spans [][2]int
	n := len(term)
	if n == 0 {
		return spans
	}
	for i := 0; i+n <= len(folded); {
		if hasPrefixAt(folded, i, term) && tokenizer.IsBoundary(runes, i, i+n) {
			spans = append(spans, [2]int{i, i + n})
			i += n
			continue
		}
		i++
	}
	return spans
}

func hasPrefixAt(folded []rune, at int, term []rune) bool {
	for k, r := range term {
		if folded[at+k] != r {
			return false
		}
	}
	return true
}

func newRecord(runes []rune, start, end, radius int, entry model.DictionaryEntry) model.MatchRecord {
	from := max(0, start-radius)
	to := min(len(runes), end+radius)
	return model.MatchRecord{
		SurfaceText:   string(runes[start:end]),
		WrongTerm:     entry.WrongTerm,
		CorrectTerm:   entry.CorrectTerm,
		StartOffset:   start,
		EndOffset:     end,
		ContextWindow: string(runes[from:to]),
	}
}

// keepLongest resolves overlaps leftmost-longest: among matches sharing a
// start the longest wins, and a match overlapping an already kept one is
// dropped. Input must be sorted by start offset.
func keepLongest(matches []model.MatchRecord) []model.MatchRecord {
	candidates := make([]model.MatchRecord, len(matches))
	copy(candidates, matches)
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].StartOffset != candidates[j].StartOffset {
			return candidates[i].StartOffset < candidates[j].StartOffset
		}
		return candidates[i].EndOffset > candidates[j].EndOffset
	})

	kept := make([]model.MatchRecord, 0, len(candidates))
	lastEnd := -1
	for _, m := range candidates {
		if m.StartOffset < lastEnd {
			continue
		}
		kept = append(kept, m)
		lastEnd = m.EndOffset
	}
	return kept
}
