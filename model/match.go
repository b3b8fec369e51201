package model

import "time"

// DictionaryEntry maps a known-incorrect term to its replacement.
type DictionaryEntry struct {
	WrongTerm   string `json:"wrong_term"`
	CorrectTerm string `json:"correct_term"`
}

// MatchRecord is one located occurrence of a wrong term in a scanned text.
// Offsets are rune offsets: 0 <= StartOffset < EndOffset <= rune length of the text.
type MatchRecord struct {
	SurfaceText   string `json:"surface_text"`   // The matched slice with its original casing
	WrongTerm     string `json:"wrong_term"`     // Dictionary key that produced the match
	CorrectTerm   string `json:"correct_term"`   // Suggested replacement
	StartOffset   int    `json:"start_offset"`   // Inclusive
	EndOffset     int    `json:"end_offset"`     // Exclusive
	ContextWindow string `json:"context_window"` // Text around the match, clamped to the text bounds
}

// AggregatedEntry summarizes every match sharing one surface text.
type AggregatedEntry struct {
	WrongTerm             string `json:"wrong_term"` // Surface text as matched
	CorrectTerm           string `json:"correct_term"`
	Count                 int    `json:"count"`
	RepresentativeContext string `json:"representative_context"`
	FirstOffset           int    `json:"first_offset"` // StartOffset of the representative match
}

// SegmentKind distinguishes untouched text from flagged spans in rendered markup.
type SegmentKind string

const (
	SegmentPlain   SegmentKind = "plain"
	SegmentFlagged SegmentKind = "flagged"
)

// Segment is one piece of the annotated text. Plain segments carry Text,
// flagged segments carry WrongText and CorrectText.
type Segment struct {
	Kind        SegmentKind `json:"kind"`
	Text        string      `json:"text,omitempty"`
	WrongText   string      `json:"wrong_text,omitempty"`
	CorrectText string      `json:"correct_text,omitempty"`
	Start       int         `json:"start"` // Rune offset of the segment in the original text
	End         int         `json:"end"`
}

// Literal returns the original text covered by the segment.
func (s Segment) Literal() string {
	if s.Kind == SegmentFlagged {
		return s.WrongText
	}
	return s.Text
}

// CheckResult is the outcome of one "check text" invocation.
type CheckResult struct {
	ID            string            `json:"id"`
	SessionID     string            `json:"session_id,omitempty"`
	Matches       []MatchRecord     `json:"matches"`
	Entries       []AggregatedEntry `json:"entries"`
	TotalMatches  int               `json:"total_matches"`
	DistinctTerms int               `json:"distinct_terms"`
	WordCount     int               `json:"word_count"`
	CharCount     int               `json:"char_count"` // Rune length of the checked text
	CheckedAt     time.Time         `json:"checked_at"`
	Took          int64             `json:"took"` // milliseconds
}

// HasMatches reports whether the check flagged anything.
func (r *CheckResult) HasMatches() bool {
	return r != nil && len(r.Matches) > 0
}

// SessionInfo describes a session without exposing its mutable state.
type SessionInfo struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	DictionarySize  int       `json:"dictionary_size"`
	DictionaryReady bool      `json:"dictionary_loaded"`
	HasResult       bool      `json:"has_result"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
