package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-style-checker/internal/dictionary"
	"github.com/gcbaptista/go-style-checker/internal/scanner"
	"github.com/gcbaptista/go-style-checker/internal/testing/corpus"
	"github.com/gcbaptista/go-style-checker/model"
)

func TestAggregate(t *testing.T) {
	matches := []model.MatchRecord{
		{SurfaceText: "teh", CorrectTerm: "the", StartOffset: 6, EndOffset: 9, ContextWindow: "I saw teh cat"},
		{SurfaceText: "recieve", CorrectTerm: "receive", StartOffset: 14, EndOffset: 21, ContextWindow: "to recieve"},
		{SurfaceText: "Teh", CorrectTerm: "the", StartOffset: 30, EndOffset: 33, ContextWindow: "Teh end"},
		{SurfaceText: "teh", CorrectTerm: "the", StartOffset: 40, EndOffset: 43, ContextWindow: "and teh dog"},
	}

	entries := Aggregate(matches)

	expected := []model.AggregatedEntry{
		{WrongTerm: "teh", CorrectTerm: "the", Count: 2, RepresentativeContext: "I saw teh cat", FirstOffset: 6},
		{WrongTerm: "recieve", CorrectTerm: "receive", Count: 1, RepresentativeContext: "to recieve", FirstOffset: 14},
		{WrongTerm: "Teh", CorrectTerm: "the", Count: 1, RepresentativeContext: "Teh end", FirstOffset: 30},
	}
	assert.Equal(t, expected, entries, "grouping is case sensitive and keeps first-seen order")
	assert.Equal(t, 4, TotalCount(entries))
}

func TestAggregate_KeepsInputOrder(t *testing.T) {
	matches := []model.MatchRecord{
		{SurfaceText: "b", ContextWindow: "late b", StartOffset: 50, EndOffset: 51},
		{SurfaceText: "a", ContextWindow: "a", StartOffset: 10, EndOffset: 11},
		{SurfaceText: "b", ContextWindow: "early b", StartOffset: 0, EndOffset: 1},
	}

	entries := Aggregate(matches)
	require.Len(t, entries, 2)
	assert.Equal(t, "b", entries[0].WrongTerm)
	assert.Equal(t, "late b", entries[0].RepresentativeContext, "the first record in input order is representative")
	assert.Equal(t, 50, entries[0].FirstOffset)
}

func TestAggregate_Empty(t *testing.T) {
	entries := Aggregate(nil)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
	assert.Equal(t, 0, TotalCount(entries))
}

func TestAggregate_ScenarioA(t *testing.T) {
	matches := scanner.Scan("I saw teh cat and teh dog.", dictionary.MustFromPairs("teh", "the"), scanner.Options{})

	entries := Aggregate(matches)
	require.Len(t, entries, 1)
	assert.Equal(t, "teh", entries[0].WrongTerm)
	assert.Equal(t, "the", entries[0].CorrectTerm)
	assert.Equal(t, 2, entries[0].Count)
}

// The count of an entry equals the number of matches with that exact surface.
func TestAggregate_CountProperty(t *testing.T) {
	gen := corpus.NewGenerator(corpus.RandSource(t))

	for i := 0; i < 200; i++ {
		text := gen.Text()
		matches := scanner.Scan(text, gen.Dictionary(), scanner.Options{})

		expected := make(map[string]int)
		for _, m := range matches {
			expected[m.SurfaceText]++
		}

		entries := Aggregate(matches)
		assert.Len(t, entries, len(expected), "text: %q", text)
		for _, e := range entries {
			assert.Equal(t, expected[e.WrongTerm], e.Count, "surface %q in text %q", e.WrongTerm, text)
		}
		assert.Equal(t, len(matches), TotalCount(entries))
	}
}

func TestLocate(t *testing.T) {
	matches := scanner.Scan("teh cat, Teh dog, teh bird", dictionary.MustFromPairs("teh", "the"), scanner.Options{})

	m, ok := Locate(matches, "teh")
	require.True(t, ok)
	assert.Equal(t, 0, m.StartOffset)

	m, ok = Locate(matches, "Teh")
	require.True(t, ok)
	assert.Equal(t, 9, m.StartOffset)

	_, ok = Locate(matches, "TEH")
	assert.False(t, ok)
}
