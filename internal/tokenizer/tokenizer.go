// Package tokenizer classifies runes into word and non-word characters and
// splits text into words. Word boundaries are script independent, so Arabic,
// Latin and other alphabets follow the same rules.
package tokenizer

import (
	"unicode"
	"unicode/utf8"
)

// Token is a word found in a text, with rune offsets into that text.
type Token struct {
	Text  string `json:"text"`
	Start int    `json:"start"` // inclusive rune offset
	End   int    `json:"end"`   // exclusive rune offset
}

// IsWordRune reports whether r belongs inside a word: letters, combining
// marks (e.g. Arabic harakat), digits and the underscore.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r) || unicode.IsNumber(r)
}

// FoldRune maps r to the canonical member of its simple case folding orbit
// (unicode.SimpleFold), so Σ, σ and ς fold alike, as do S, s and ſ. The
// canonical member is the lower-case form of the orbit's smallest rune when
// that form belongs to the orbit, and the smallest rune otherwise. The
// mapping is one rune to one rune, so offsets computed on folded text are
// valid on the original.
func FoldRune(r rune) rune {
	if r < utf8.RuneSelf {
		if 'A' <= r && r <= 'Z' {
			r += 'a' - 'A'
		}
		return r
	}

	smallest := r
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		if f < smallest {
			smallest = f
		}
	}
	if lower := unicode.ToLower(smallest); lower != smallest && inFoldOrbit(smallest, lower) {
		return lower
	}
	return smallest
}

func inFoldOrbit(r, target rune) bool {
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		if f == target {
			return true
		}
	}
	return false
}

// Fold returns runes folded with FoldRune.
func Fold(runes []rune) []rune {
	folded := make([]rune, len(runes))
	for i, r := range runes {
		folded[i] = FoldRune(r)
	}
	return folded
}

// IsBoundary reports whether the span [start, end) of runes is word bounded:
// the rune before start and the rune at end are non-word runes or lie
// outside the text.
func IsBoundary(runes []rune, start, end int) bool {
	if start > 0 && IsWordRune(runes[start-1]) {
		return false
	}
	if end < len(runes) && IsWordRune(runes[end]) {
		return false
	}
	return true
}

// Tokenize splits text into words with their rune offsets.
// Non-word characters separate words and are dropped.
func Tokenize(text string) []Token {
	tokens := make([]Token, 0) // Initialize as empty slice, not nil
	runes := []rune(text)

	start := -1
	for i, r := range runes {
		if IsWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, Token{Text: string(runes[start:i]), Start: start, End: i})
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, Token{Text: string(runes[start:]), Start: start, End: len(runes)})
	}
	return tokens
}

// CountWords returns the number of words in text.
func CountWords(text string) int {
	count := 0
	inWord := false
	for _, r := range text {
		if IsWordRune(r) {
			if !inWord {
				count++
				inWord = true
			}
			continue
		}
		inWord = false
	}
	return count
}
