// Package report turns aggregated check results into exportable documents:
// a plain-text report, a DOCX document with a results table, and CSV.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/gcbaptista/go-style-checker/internal/errors"
	"github.com/gcbaptista/go-style-checker/model"
)

// TimestampLayout formats the generation time in every serialization.
const TimestampLayout = "2006-01-02 15:04:05"

// Row is one line of the results table.
type Row struct {
	Count       int    `json:"count"`
	CorrectTerm string `json:"correct_term"`
	WrongTerm   string `json:"wrong_term"`
	Context     string `json:"context"`
}

// Document is a serialization-independent report.
type Document struct {
	Title         string    `json:"title"`
	GeneratedAt   time.Time `json:"generated_at"`
	TotalMatches  int       `json:"total_matches"`
	DistinctTerms int       `json:"distinct_terms"`
	Rows          []Row     `json:"rows"`
	Labels        Labels    `json:"-"`
}

// Build creates a report with one row per aggregated entry, in entry order.
// An empty entry list yields a valid report without rows.
func Build(entries []model.AggregatedEntry, generatedAt time.Time, labels Labels) *Document {
	doc := &Document{
		Title:         labels.Title,
		GeneratedAt:   generatedAt,
		DistinctTerms: len(entries),
		Rows:          make([]Row, 0, len(entries)),
		Labels:        labels,
	}
	for _, e := range entries {
		doc.TotalMatches += e.Count
		doc.Rows = append(doc.Rows, Row{
			Count:       e.Count,
			CorrectTerm: e.CorrectTerm,
			WrongTerm:   e.WrongTerm,
			Context:     e.RepresentativeContext,
		})
	}
	return doc
}

// Header returns the table header: count, correct, wrong, context.
func (d *Document) Header() []string {
	return []string{d.Labels.HeaderCount, d.Labels.HeaderCorrect, d.Labels.HeaderWrong, d.Labels.HeaderContext}
}

// Table returns the header followed by one record per row.
func (d *Document) Table() [][]string {
	table := make([][]string, 0, len(d.Rows)+1)
	table = append(table, d.Header())
	for _, row := range d.Rows {
		table = append(table, []string{strconv.Itoa(row.Count), row.CorrectTerm, row.WrongTerm, row.Context})
	}
	return table
}

// WriteText writes the plain-text report: a title, a rule, then one labeled
// block per row, each closed by a rule.
func (d *Document) WriteText(w io.Writer) error {
	var sb strings.Builder
	sb.WriteString(d.Title + "\n")
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")
	for _, row := range d.Rows {
		fmt.Fprintf(&sb, "%s: %s\n", d.Labels.WrongTerm, row.WrongTerm)
		fmt.Fprintf(&sb, "%s: %s\n", d.Labels.CorrectTerm, row.CorrectTerm)
		fmt.Fprintf(&sb, "%s: %d\n", d.Labels.Count, row.Count)
		fmt.Fprintf(&sb, "%s: %s\n", d.Labels.Context, row.Context)
		sb.WriteString(strings.Repeat("-", 50) + "\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Format is an export serialization.
type Format string

const (
	FormatText Format = "text"
	FormatDOCX Format = "docx"
	FormatCSV  Format = "csv"
)

// ParseFormat maps a user supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "docx", "word":
		return FormatDOCX, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", apperrors.NewValidationError("format", fmt.Sprintf("unsupported report format '%s' (must be 'text', 'docx' or 'csv')", s))
	}
}

// ContentType returns the MIME type of a format.
func (f Format) ContentType() string {
	switch f {
	case FormatDOCX:
		return DOCXContentType
	case FormatCSV:
		return "text/csv; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Extension returns the file extension of a format, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatDOCX:
		return ".docx"
	case FormatCSV:
		return ".csv"
	default:
		return ".txt"
	}
}

// Write serializes doc in the given format.
func (d *Document) Write(w io.Writer, format Format) error {
	switch format {
	case FormatText:
		return d.WriteText(w)
	case FormatDOCX:
		return d.WriteDOCX(w)
	case FormatCSV:
		return d.WriteCSV(w)
	default:
		return apperrors.NewValidationError("format", fmt.Sprintf("unsupported report format '%s'", format))
	}
}

// SaveFile writes doc to path as a whole file, replacing any existing file.
// Write failures are reported as ExportWriteError.
func SaveFile(path string, format Format, doc *Document) error {
	var buf bytes.Buffer
	if err := doc.Write(&buf, format); err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			return err
		}
		return apperrors.NewExportWriteError(path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil { // #nosec G306 -- reports are meant to be shared
		return apperrors.NewExportWriteError(path, err)
	}
	return nil
}
