// Package diff renders a checked text as a sequence of plain and flagged
// segments, the inline diff shown to readers.
package diff

import (
	"html"
	"sort"
	"strings"

	"github.com/gcbaptista/go-style-checker/model"
)

// Render splits originalText into plain segments and flagged segments, one
// flagged segment per rendered match, in reading order. Concatenating the
// literal text of the segments reproduces originalText exactly.
//
// Matches are processed from the end of the text towards its start. A match
// that overlaps one already rendered, or whose offsets do not fit the text,
// is skipped.
func Render(originalText string, matches []model.MatchRecord) []model.Segment {
	runes := []rune(originalText)

	sorted := make([]model.MatchRecord, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].StartOffset != sorted[j].StartOffset {
			return sorted[i].StartOffset > sorted[j].StartOffset
		}
		return sorted[i].EndOffset > sorted[j].EndOffset
	})

	segments := make([]model.Segment, 0, 2*len(sorted)+1)
	cursor := len(runes) // start of the previously rendered match
	for _, m := range sorted {
		if m.StartOffset < 0 || m.StartOffset >= m.EndOffset || m.EndOffset > cursor {
			continue
		}
		if m.EndOffset < cursor {
			segments = append(segments, plain(runes, m.EndOffset, cursor))
		}
		segments = append(segments, model.Segment{
			Kind:        model.SegmentFlagged,
			WrongText:   string(runes[m.StartOffset:m.EndOffset]),
			CorrectText: m.CorrectTerm,
			Start:       m.StartOffset,
			End:         m.EndOffset,
		})
		cursor = m.StartOffset
	}
	if cursor > 0 || len(segments) == 0 {
		segments = append(segments, plain(runes, 0, cursor))
	}

	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return segments
}

func plain(runes []rune, start, end int) model.Segment {
	return model.Segment{Kind: model.SegmentPlain, Text: string(runes[start:end]), Start: start, End: end}
}

// Original concatenates the literal text of segments.
func Original(segments []model.Segment) string {
	var sb strings.Builder
	for _, s := range segments {
		sb.WriteString(s.Literal())
	}
	return sb.String()
}

// Corrected concatenates plain text with the correct term of every flagged
// segment.
func Corrected(segments []model.Segment) string {
	var sb strings.Builder
	for _, s := range segments {
		if s.Kind == model.SegmentFlagged {
			sb.WriteString(s.CorrectText)
			continue
		}
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Colours of the inline diff markup.
const (
	WrongColor        = "#8b0000"
	WrongBackground   = "#ffcccc"
	CorrectColor      = "#006400"
	CorrectBackground = "#ccffcc"
)

// HTMLOptions control HTML rendering.
type HTMLOptions struct {
	RTL bool // Right-to-left paragraph direction, for Arabic texts
}

// HTML renders segments as a self-contained fragment: flagged text is struck
// through in a <del> followed by its replacement in an <ins>, and newlines
// become <br/>.
func HTML(segments []model.Segment, opts HTMLOptions) string {
	var sb strings.Builder
	sb.WriteString(`<div class="style-diff"`)
	if opts.RTL {
		sb.WriteString(` dir="rtl" style="direction: rtl; text-align: right; white-space: pre-wrap;"`)
	} else {
		sb.WriteString(` style="white-space: pre-wrap;"`)
	}
	sb.WriteString(">")

	for _, s := range segments {
		if s.Kind != model.SegmentFlagged {
			sb.WriteString(escape(s.Text))
			continue
		}
		sb.WriteString(`<del class="wrong" style="color: ` + WrongColor + `; background-color: ` + WrongBackground + `;">`)
		sb.WriteString(escape(s.WrongText))
		sb.WriteString(`</del> <ins class="correct" style="color: ` + CorrectColor + `; background-color: ` + CorrectBackground + `; font-weight: bold; text-decoration: none;">`)
		sb.WriteString(escape(s.CorrectText))
		sb.WriteString(`</ins>`)
	}

	sb.WriteString("</div>")
	return sb.String()
}

func escape(text string) string {
	return strings.ReplaceAll(html.EscapeString(text), "\n", "<br/>")
}
