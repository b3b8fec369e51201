package engine

import (
	stderrors "errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/gcbaptista/go-style-checker/config"
	"github.com/gcbaptista/go-style-checker/internal/aggregator"
	"github.com/gcbaptista/go-style-checker/internal/dictionary"
	"github.com/gcbaptista/go-style-checker/internal/diff"
	"github.com/gcbaptista/go-style-checker/internal/errors"
	"github.com/gcbaptista/go-style-checker/internal/report"
	"github.com/gcbaptista/go-style-checker/model"
)

const (
	reasonNoCheck   = "no check has been run"
	reasonNoMatches = "the last check found no matches"
)

// LoadDictionary replaces the dictionary of a session with the one read from
// r. On failure the previous dictionary stays in place.
func (e *Engine) LoadDictionary(sessionID string, r io.Reader, format dictionary.Format) (model.SessionInfo, error) {
	session, err := e.getSession(sessionID)
	if err != nil {
		return model.SessionInfo{}, err
	}

	dict, err := dictionary.Load(r, format)
	if err != nil {
		return model.SessionInfo{}, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	previous := session.dict
	session.dict = dict
	session.touch()
	if err := e.persistSessionUnsafe(session); err != nil {
		session.dict = previous
		return model.SessionInfo{}, fmt.Errorf("failed to persist dictionary of session '%s': %w", sessionID, err)
	}

	log.Printf("Info: Loaded %d dictionary entries into session %s", dict.Len(), sessionID)
	return session.info(), nil
}

// Check scans text with the session dictionary and stores the result as the
// last result of the session. A check that finds nothing is a success.
func (e *Engine) Check(sessionID, text string) (*model.CheckResult, error) {
	session, err := e.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	if err := ValidateCheck(sessionID, session.dict, text); err != nil {
		session.mu.Unlock()
		return nil, err
	}
	start := time.Now()
	result := CheckText(text, session.dict, session.settings)
	result.SessionID = sessionID
	session.text = text
	session.result = result
	session.touch()
	session.mu.Unlock()

	e.track(sessionID, result, time.Since(start))
	return result, nil
}

// LastResult returns the result of the last check of a session.
func (e *Engine) LastResult(sessionID string) (*model.CheckResult, error) {
	session, err := e.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	session.mu.RLock()
	defer session.mu.RUnlock()

	if session.result == nil {
		return nil, errors.NewNothingToExportError(sessionID, reasonNoCheck)
	}
	return session.result, nil
}

// ClearResult forgets the last check of a session. The dictionary is kept.
func (e *Engine) ClearResult(sessionID string) error {
	session, err := e.getSession(sessionID)
	if err != nil {
		return err
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	session.text = ""
	session.result = nil
	session.touch()
	return nil
}

// Render annotates the text of the last check with its matches.
func (e *Engine) Render(sessionID string) ([]model.Segment, error) {
	session, err := e.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	session.mu.RLock()
	defer session.mu.RUnlock()

	if session.result == nil {
		return nil, errors.NewNothingToExportError(sessionID, reasonNoCheck)
	}
	return diff.Render(session.text, session.result.Matches), nil
}

// Locate returns the representative occurrence of a flagged surface text.
func (e *Engine) Locate(sessionID, surface string) (model.MatchRecord, error) {
	session, err := e.getSession(sessionID)
	if err != nil {
		return model.MatchRecord{}, err
	}
	session.mu.RLock()
	defer session.mu.RUnlock()

	if session.result == nil {
		return model.MatchRecord{}, errors.NewNothingToExportError(sessionID, reasonNoCheck)
	}
	match, found := aggregator.Locate(session.result.Matches, surface)
	if !found {
		return model.MatchRecord{}, errors.NewValidationError("term", fmt.Sprintf("'%s' was not flagged by the last check", surface))
	}
	return match, nil
}

// Report builds the report of the last check. Without a check, or when the
// check found nothing, there is nothing to export.
func (e *Engine) Report(sessionID string) (*report.Document, error) {
	session, err := e.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	session.mu.RLock()
	defer session.mu.RUnlock()

	if session.result == nil {
		return nil, errors.NewNothingToExportError(sessionID, reasonNoCheck)
	}
	if !session.result.HasMatches() {
		return nil, errors.NewNothingToExportError(sessionID, reasonNoMatches)
	}
	return buildReport(session.result, session.settings), nil
}

func buildReport(result *model.CheckResult, settings config.CheckSettings) *report.Document {
	return report.Build(result.Entries, time.Now(), report.LabelsFor(settings.ReportLanguage))
}

// Export writes the report of the last check to w.
func (e *Engine) Export(sessionID string, format report.Format, w io.Writer) error {
	doc, err := e.Report(sessionID)
	if err != nil {
		return err
	}
	if err := doc.Write(w, format); err != nil {
		if stderrors.Is(err, errors.ErrInvalidInput) {
			return err
		}
		return errors.NewExportWriteError(string(format)+" report", err)
	}
	return nil
}

// DictionaryEntries returns the entries of the session dictionary in
// insertion order. A session without a dictionary has none.
func (e *Engine) DictionaryEntries(sessionID string) ([]model.DictionaryEntry, error) {
	session, err := e.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	session.mu.RLock()
	defer session.mu.RUnlock()
	return session.dict.Entries(), nil
}
