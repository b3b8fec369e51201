package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/gcbaptista/go-style-checker/config"
	"github.com/gcbaptista/go-style-checker/internal/dictionary"
	"github.com/gcbaptista/go-style-checker/internal/diff"
	"github.com/gcbaptista/go-style-checker/internal/engine"
	apperrors "github.com/gcbaptista/go-style-checker/internal/errors"
	"github.com/gcbaptista/go-style-checker/internal/importer"
	"github.com/gcbaptista/go-style-checker/internal/report"
	"github.com/gcbaptista/go-style-checker/model"
)

const stdinName = "-"

// CheckOptions holds the flags of the check command.
type CheckOptions struct {
	DictPath   string
	ReportPath string
	DOCXPath   string
	CSVPath    string
	HTMLPath   string
	Color      string // auto, always or never
	Quiet      bool
	Settings   config.CheckSettings

	now func() time.Time
}

func NewCheckOptions() *CheckOptions {
	return &CheckOptions{now: time.Now}
}

func NewCheckCmd(o *CheckOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Check a document against a corrections dictionary",
		Long: `Check a document against a corrections dictionary.

The document is read from the file argument, or from standard input when it is
omitted or "-". Text files may be UTF-8 or Windows-1256; DOCX files are read
paragraph by paragraph. Without --dict the nearest corrections.json in the
current directory or the document's directory is used.`,
		Example: `  stylecheck check draft.txt --dict corrections.json
  stylecheck check chapter.docx --report report.txt --docx report.docx --lang ar
  cat notes.txt | stylecheck check --dict corrections.yaml --color never`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.Run(cmd.InOrStdin(), cmd.OutOrStdout(), args)
		},
	}

	cmd.Flags().StringVarP(&o.DictPath, "dict", "d", "", "Dictionary file, JSON object or YAML mapping of wrong to correct terms")
	cmd.Flags().StringVar(&o.ReportPath, "report", "", "Write a plain-text report to this file")
	cmd.Flags().StringVar(&o.DOCXPath, "docx", "", "Write a DOCX report to this file")
	cmd.Flags().StringVar(&o.CSVPath, "csv", "", "Write a CSV report to this file")
	cmd.Flags().StringVar(&o.HTMLPath, "html", "", "Write the annotated text as an HTML fragment to this file")
	cmd.Flags().StringVar(&o.Color, "color", "auto", "Colour the annotated text: auto, always or never")
	cmd.Flags().BoolVarP(&o.Quiet, "quiet", "q", false, "Print only the summary")
	cmd.Flags().IntVar(&o.Settings.ContextRadius, "context", config.DefaultContextRadius, "Runes of context kept on each side of a match")
	cmd.Flags().StringVar(&o.Settings.OverlapPolicy, "overlap", config.OverlapAll, "Overlapping matches of different terms: all or longest")
	cmd.Flags().StringVar(&o.Settings.ReportLanguage, "lang", config.LanguageEnglish, "Report language: en or ar")

	return cmd
}

func (o *CheckOptions) Run(stdin io.Reader, out io.Writer, args []string) error {
	if problems := o.Settings.Validate(); len(problems) > 0 {
		return fmt.Errorf("invalid settings: %s", strings.Join(problems, "; "))
	}
	settings := o.Settings
	settings.ApplyDefaults()

	output, err := o.output(out)
	if err != nil {
		return err
	}

	source := stdinName
	if len(args) == 1 {
		source = args[0]
	}
	text, err := readDocument(stdin, source)
	if err != nil {
		return err
	}

	dict, err := o.loadDictionary(source)
	if err != nil {
		return err
	}

	if err := engine.ValidateCheck("", dict, text); err != nil {
		return err
	}
	result := engine.CheckText(text, dict, settings)
	segments := diff.Render(text, result.Matches)

	if !o.Quiet {
		printSegments(output, segments)
		fmt.Fprintln(out)
	}
	printSummary(output, result)

	if o.HTMLPath != "" {
		markup := diff.HTML(segments, diff.HTMLOptions{RTL: settings.ReportLanguage == config.LanguageArabic})
		if err := os.WriteFile(o.HTMLPath, []byte(markup), 0644); err != nil {
			return apperrors.NewExportWriteError(o.HTMLPath, err)
		}
	}

	return o.writeReports(result, settings)
}

func (o *CheckOptions) output(out io.Writer) (*termenv.Output, error) {
	switch strings.ToLower(o.Color) {
	case "", "auto":
		return termenv.NewOutput(out), nil
	case "always":
		return termenv.NewOutput(out, termenv.WithProfile(termenv.TrueColor)), nil
	case "never":
		return termenv.NewOutput(out, termenv.WithProfile(termenv.Ascii)), nil
	default:
		return nil, fmt.Errorf("invalid --color '%s' (must be 'auto', 'always' or 'never')", o.Color)
	}
}

func readDocument(stdin io.Reader, source string) (string, error) {
	if source != stdinName {
		return importer.ImportFile(source)
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", apperrors.NewTextImportError("standard input", err)
	}
	return importer.Import("standard input", data)
}

func (o *CheckOptions) loadDictionary(source string) (*dictionary.Dictionary, error) {
	if o.DictPath != "" {
		return dictionary.LoadFile(o.DictPath)
	}

	dirs := []string{"."}
	if source != stdinName {
		dirs = append(dirs, filepath.Dir(source))
	}
	path, found := dictionary.Discover(dirs...)
	if !found {
		return nil, apperrors.NewDictionaryLoadError(dictionary.DefaultFileName,
			fmt.Errorf("no dictionary found, pass one with --dict"))
	}
	return dictionary.LoadFile(path)
}

func (o *CheckOptions) writeReports(result *model.CheckResult, settings config.CheckSettings) error {
	targets := []struct {
		path   string
		format report.Format
	}{
		{o.ReportPath, report.FormatText},
		{o.DOCXPath, report.FormatDOCX},
		{o.CSVPath, report.FormatCSV},
	}

	var doc *report.Document
	for _, target := range targets {
		if target.path == "" {
			continue
		}
		if !result.HasMatches() {
			return apperrors.NewNothingToExportError("", "the check found no matches")
		}
		if doc == nil {
			doc = report.Build(result.Entries, o.now(), report.LabelsFor(settings.ReportLanguage))
		}
		if err := report.SaveFile(target.path, target.format, doc); err != nil {
			return err
		}
	}
	return nil
}

// printSegments writes the annotated text. Flagged spans show the wrong text
// struck through followed by the correction; without colour support they are
// written as [-wrong-]{+correct+}.
func printSegments(output *termenv.Output, segments []model.Segment) {
	plain := output.Profile == termenv.Ascii
	for _, s := range segments {
		if s.Kind != model.SegmentFlagged {
			fmt.Fprint(output, s.Text)
			continue
		}
		if plain {
			fmt.Fprintf(output, "[-%s-]{+%s+}", s.WrongText, s.CorrectText)
			continue
		}
		wrong := output.String(s.WrongText).Foreground(output.Color(diff.WrongColor)).CrossOut()
		correct := output.String(s.CorrectText).Foreground(output.Color(diff.CorrectColor)).Bold()
		fmt.Fprintf(output, "%s %s", wrong, correct)
	}
}

func printSummary(output *termenv.Output, result *model.CheckResult) {
	if !result.HasMatches() {
		fmt.Fprintf(output, "No dictionary terms found in %d words.\n", result.WordCount)
		return
	}

	fmt.Fprintf(output, "%d matches of %d terms in %d words:\n", result.TotalMatches, result.DistinctTerms, result.WordCount)
	for _, entry := range result.Entries {
		fmt.Fprintf(output, "  %s -> %s (%d)\n", entry.WrongTerm, entry.CorrectTerm, entry.Count)
	}
}
