package report

import (
	"github.com/gcbaptista/go-style-checker/config"
)

// Labels are the captions of a report.
type Labels struct {
	Title         string // Plain-text report title
	DocumentTitle string // DOCX heading; Title is used when empty
	Generated     string
	TotalMatches  string
	TableHeading  string

	HeaderCount   string
	HeaderCorrect string
	HeaderWrong   string
	HeaderContext string

	WrongTerm   string
	CorrectTerm string
	Count       string
	Context     string

	RTL bool // Right-to-left paragraphs and table
}

// EnglishLabels are the default captions.
var EnglishLabels = Labels{
	Title:         "Style check report",
	DocumentTitle: "Style check report",
	Generated:     "Generated",
	TotalMatches:  "Total matches",
	TableHeading:  "Detected terms",
	HeaderCount:   "count",
	HeaderCorrect: "correct",
	HeaderWrong:   "wrong",
	HeaderContext: "context",
	WrongTerm:     "Wrong term",
	CorrectTerm:   "Correct term",
	Count:         "Count",
	Context:       "Context",
}

// ArabicLabels are right-to-left Arabic captions.
var ArabicLabels = Labels{
	Title:         "تقرير الأخطاء اللغوية",
	DocumentTitle: "تقرير تصحيح الأخطاء اللغوية",
	Generated:     "تاريخ المعالجة",
	TotalMatches:  "عدد الأخطاء",
	TableHeading:  "الأخطاء المكتشفة",
	HeaderCount:   "التكرار",
	HeaderCorrect: "الأصوب",
	HeaderWrong:   "الكلمة الخاطئة",
	HeaderContext: "السياق",
	WrongTerm:     "الكلمة الخاطئة",
	CorrectTerm:   "الصحيح",
	Count:         "التكرار",
	Context:       "السياق",
	RTL:           true,
}

// LabelsFor returns the captions of a report language, falling back to
// English.
func LabelsFor(language string) Labels {
	if language == config.LanguageArabic {
		return ArabicLabels
	}
	return EnglishLabels
}

func (l Labels) documentTitle() string {
	if l.DocumentTitle != "" {
		return l.DocumentTitle
	}
	return l.Title
}
