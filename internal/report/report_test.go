package report

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/gcbaptista/go-style-checker/internal/errors"
	"github.com/gcbaptista/go-style-checker/model"
)

var generatedAt = time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

func scenarioEntries() []model.AggregatedEntry {
	return []model.AggregatedEntry{
		{WrongTerm: "teh", CorrectTerm: "the", Count: 2, RepresentativeContext: "I saw teh cat"},
	}
}

func TestBuild(t *testing.T) {
	entries := append(scenarioEntries(), model.AggregatedEntry{
		WrongTerm: "recieve", CorrectTerm: "receive", Count: 3, RepresentativeContext: "to recieve it",
	})

	doc := Build(entries, generatedAt, EnglishLabels)

	assert.Equal(t, "Style check report", doc.Title)
	assert.Equal(t, generatedAt, doc.GeneratedAt)
	assert.Equal(t, 5, doc.TotalMatches)
	assert.Equal(t, 2, doc.DistinctTerms)
	assert.Equal(t, []Row{
		{Count: 2, CorrectTerm: "the", WrongTerm: "teh", Context: "I saw teh cat"},
		{Count: 3, CorrectTerm: "receive", WrongTerm: "recieve", Context: "to recieve it"},
	}, doc.Rows)
}

func TestTable_ScenarioD(t *testing.T) {
	doc := Build(scenarioEntries(), generatedAt, EnglishLabels)

	assert.Equal(t, [][]string{
		{"count", "correct", "wrong", "context"},
		{"2", "the", "teh", "I saw teh cat"},
	}, doc.Table())
}

func TestWriteText(t *testing.T) {
	doc := Build(scenarioEntries(), generatedAt, EnglishLabels)

	var buf bytes.Buffer
	require.NoError(t, doc.WriteText(&buf))

	expected := "Style check report\n" +
		strings.Repeat("=", 50) + "\n\n" +
		"Wrong term: teh\n" +
		"Correct term: the\n" +
		"Count: 2\n" +
		"Context: I saw teh cat\n" +
		strings.Repeat("-", 50) + "\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteText_Arabic(t *testing.T) {
	entries := []model.AggregatedEntry{{WrongTerm: "مسئول", CorrectTerm: "مسؤول", Count: 1, RepresentativeContext: "هو مسئول"}}
	doc := Build(entries, generatedAt, ArabicLabels)

	var buf bytes.Buffer
	require.NoError(t, doc.WriteText(&buf))

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "تقرير الأخطاء اللغوية", lines[0])
	assert.Equal(t, "الكلمة الخاطئة: مسئول", lines[3])
	assert.Equal(t, "الصحيح: مسؤول", lines[4])
	assert.Equal(t, "التكرار: 1", lines[5])
	assert.Equal(t, "السياق: هو مسئول", lines[6])
}

func TestEmptyReport(t *testing.T) {
	doc := Build(nil, generatedAt, EnglishLabels)
	assert.Equal(t, 0, doc.TotalMatches)
	assert.Equal(t, [][]string{{"count", "correct", "wrong", "context"}}, doc.Table())

	var text bytes.Buffer
	require.NoError(t, doc.WriteText(&text))
	assert.Equal(t, "Style check report\n"+strings.Repeat("=", 50)+"\n\n", text.String())

	var docx bytes.Buffer
	require.NoError(t, doc.WriteDOCX(&docx))
	assert.Equal(t, [][]string{{"count", "correct", "wrong", "context"}}, readDOCXTable(t, docx.Bytes()))

	var csvOut bytes.Buffer
	require.NoError(t, doc.WriteCSV(&csvOut))
	assert.Equal(t, "count,correct,wrong,context\n", csvOut.String())
}

func TestWriteDOCX(t *testing.T) {
	entries := append(scenarioEntries(), model.AggregatedEntry{
		WrongTerm: "a<b", CorrectTerm: "a & b", Count: 1, RepresentativeContext: "line one\nline\ttwo",
	})
	doc := Build(entries, generatedAt, EnglishLabels)

	var buf bytes.Buffer
	require.NoError(t, doc.WriteDOCX(&buf))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{
		"[Content_Types].xml", "_rels/.rels", "word/_rels/document.xml.rels", "word/styles.xml", "word/document.xml",
	}, names)

	assert.Equal(t, [][]string{
		{"count", "correct", "wrong", "context"},
		{"2", "the", "teh", "I saw teh cat"},
		{"1", "a & b", "a<b", "line one\nline\ttwo"},
	}, readDOCXTable(t, buf.Bytes()))

	body := readPart(t, buf.Bytes(), "word/document.xml")
	assert.Contains(t, body, "Generated: 2024-03-09 14:05:07")
	assert.Contains(t, body, "Total matches: 3")
	assert.Contains(t, body, `<w:pStyle w:val="Title"/>`)
	assert.NotContains(t, body, "<w:bidi/>")
}

func TestWriteDOCX_RTL(t *testing.T) {
	doc := Build(scenarioEntries(), generatedAt, ArabicLabels)

	var buf bytes.Buffer
	require.NoError(t, doc.WriteDOCX(&buf))

	body := readPart(t, buf.Bytes(), "word/document.xml")
	assert.Contains(t, body, "<w:bidi/>")
	assert.Contains(t, body, "<w:bidiVisual/>")
	assert.Contains(t, body, "تقرير تصحيح الأخطاء اللغوية")
	assert.Contains(t, body, "تاريخ المعالجة: 2024-03-09 14:05:07")
	assert.Equal(t, []string{"التكرار", "الأصوب", "الكلمة الخاطئة", "السياق"}, readDOCXTable(t, buf.Bytes())[0])
}

func TestWriteCSV(t *testing.T) {
	entries := append(scenarioEntries(), model.AggregatedEntry{
		WrongTerm: "x,y", CorrectTerm: `say "x"`, Count: 1, RepresentativeContext: "ctx",
	})
	doc := Build(entries, generatedAt, EnglishLabels)

	var buf bytes.Buffer
	require.NoError(t, doc.WriteCSV(&buf))
	assert.Equal(t, "count,correct,wrong,context\n2,the,teh,I saw teh cat\n1,\"say \"\"x\"\"\",\"x,y\",ctx\n", buf.String())
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", FormatText},
		{"TXT", FormatText},
		{"text", FormatText},
		{"docx", FormatDOCX},
		{"csv", FormatCSV},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseFormat("pdf")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

	assert.Equal(t, ".docx", FormatDOCX.Extension())
	assert.Equal(t, DOCXContentType, FormatDOCX.ContentType())
	assert.Equal(t, "text/csv; charset=utf-8", FormatCSV.ContentType())
}

func TestSaveFile(t *testing.T) {
	doc := Build(scenarioEntries(), generatedAt, EnglishLabels)
	path := filepath.Join(t.TempDir(), "report.txt")

	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("stale content\n", 100)), 0600))
	require.NoError(t, SaveFile(path, FormatText, doc))

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(written), "Style check report\n"))
	assert.NotContains(t, string(written), "stale", "existing files are replaced, not appended to")

	missingDir := filepath.Join(t.TempDir(), "missing", "report.docx")
	err = SaveFile(missingDir, FormatDOCX, doc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrExportWrite))
	var writeErr *apperrors.ExportWriteError
	require.True(t, errors.As(err, &writeErr))
	assert.Equal(t, missingDir, writeErr.Destination)

	err = SaveFile(path, Format("pdf"), doc)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestLabelsFor(t *testing.T) {
	assert.Equal(t, ArabicLabels, LabelsFor("ar"))
	assert.Equal(t, EnglishLabels, LabelsFor("en"))
	assert.Equal(t, EnglishLabels, LabelsFor(""))
}

func readPart(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(content)
	}
	t.Fatalf("part %s not found", name)
	return ""
}

// readDOCXTable returns the text of every table cell, row by row.
func readDOCXTable(t *testing.T, data []byte) [][]string {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(readPart(t, data, "word/document.xml")))

	var (
		rows   [][]string
		cell   strings.Builder
		inCell bool
		inText bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "tr":
				rows = append(rows, []string{})
			case "tc":
				inCell = true
				cell.Reset()
			case "t":
				inText = inCell
			case "br":
				if inCell {
					cell.WriteByte('\n')
				}
			case "tab":
				if inCell {
					cell.WriteByte('\t')
				}
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "tc":
				rows[len(rows)-1] = append(rows[len(rows)-1], cell.String())
				inCell = false
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				cell.Write(el)
			}
		}
	}
	return rows
}
