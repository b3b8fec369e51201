// Package dictionary holds the mapping from known-incorrect terms to their
// replacements. Entries keep the order in which they were loaded and keys
// are unique case-insensitively.
package dictionary

import (
	"fmt"
	"strings"

	"github.com/gcbaptista/go-style-checker/internal/tokenizer"
	"github.com/gcbaptista/go-style-checker/model"
)

// Dictionary is an insertion-ordered wrong-term to correct-term mapping.
// A Dictionary is not safe for concurrent mutation; sessions replace it
// wholesale instead of editing it in place.
type Dictionary struct {
	entries []model.DictionaryEntry
	index   map[string]int // folded wrong term -> position in entries
}

// New creates an empty dictionary.
func New() *Dictionary {
	return &Dictionary{index: make(map[string]int)}
}

// FromEntries builds a dictionary from entries in order. Later entries
// overwrite the correct term of earlier ones with the same folded key.
func FromEntries(entries []model.DictionaryEntry) (*Dictionary, error) {
	d := New()
	for i, entry := range entries {
		if err := d.Set(entry.WrongTerm, entry.CorrectTerm); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return d, nil
}

// FromPairs builds a dictionary from alternating wrong/correct terms.
func FromPairs(pairs ...string) (*Dictionary, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("odd number of terms (%d)", len(pairs))
	}
	d := New()
	for i := 0; i < len(pairs); i += 2 {
		if err := d.Set(pairs[i], pairs[i+1]); err != nil {
			return nil, fmt.Errorf("pair %d: %w", i/2, err)
		}
	}
	return d, nil
}

// MustFromPairs is like FromPairs but panics on error. It is meant for tests
// and static tables.
func MustFromPairs(pairs ...string) *Dictionary {
	d, err := FromPairs(pairs...)
	if err != nil {
		panic("dictionary: " + err.Error())
	}
	return d
}

// Key returns the case-insensitive lookup key of a term.
func Key(term string) string {
	return string(tokenizer.Fold([]rune(term)))
}

// Set adds or overwrites an entry. Overwriting keeps the entry's position and
// the spelling of its first wrong term.
func (d *Dictionary) Set(wrongTerm, correctTerm string) error {
	if strings.TrimSpace(wrongTerm) == "" {
		return fmt.Errorf("wrong term cannot be empty or whitespace-only")
	}
	key := Key(wrongTerm)
	if pos, exists := d.index[key]; exists {
		d.entries[pos].CorrectTerm = correctTerm
		return nil
	}
	d.index[key] = len(d.entries)
	d.entries = append(d.entries, model.DictionaryEntry{WrongTerm: wrongTerm, CorrectTerm: correctTerm})
	return nil
}

// Lookup returns the correct term for a wrong term, ignoring case.
func (d *Dictionary) Lookup(wrongTerm string) (string, bool) {
	if d == nil {
		return "", false
	}
	pos, exists := d.index[Key(wrongTerm)]
	if !exists {
		return "", false
	}
	return d.entries[pos].CorrectTerm, true
}

// Len returns the number of distinct wrong terms.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Entries returns a copy of the entries in insertion order.
func (d *Dictionary) Entries() []model.DictionaryEntry {
	if d == nil {
		return []model.DictionaryEntry{}
	}
	out := make([]model.DictionaryEntry, len(d.entries))
	copy(out, d.entries)
	return out
}

// Terms returns the wrong terms in insertion order.
func (d *Dictionary) Terms() []string {
	if d == nil {
		return []string{}
	}
	terms := make([]string, len(d.entries))
	for i, entry := range d.entries {
		terms[i] = entry.WrongTerm
	}
	return terms
}
