package engine

import (
	"strings"
	"sync"
	"time"

	"github.com/gcbaptista/go-style-checker/config"
	"github.com/gcbaptista/go-style-checker/internal/dictionary"
	"github.com/gcbaptista/go-style-checker/internal/errors"
	"github.com/gcbaptista/go-style-checker/internal/jobs"
	"github.com/gcbaptista/go-style-checker/model"
	"github.com/gcbaptista/go-style-checker/services"
)

// Session holds the state of one user workflow: its settings, the loaded
// dictionary and the outcome of the last check. Loaded dictionaries and
// results are replaced wholesale, never mutated.
type Session struct {
	mu        sync.RWMutex
	id        string
	name      string
	settings  config.CheckSettings
	dict      *dictionary.Dictionary // nil until a dictionary is loaded
	text      string                 // Text of the last check
	result    *model.CheckResult     // nil until a check ran
	createdAt time.Time
	updatedAt time.Time
	deleted   bool // Set by DeleteSession; a deleted session is never persisted again
}

func newSession(id, name string, settings config.CheckSettings) *Session {
	now := time.Now()
	return &Session{
		id:        id,
		name:      name,
		settings:  settings,
		createdAt: now,
		updatedAt: now,
	}
}

// info must be called with s.mu held.
func (s *Session) info() model.SessionInfo {
	return model.SessionInfo{
		ID:              s.id,
		Name:            s.name,
		DictionarySize:  s.dict.Len(),
		DictionaryReady: s.dict.Len() > 0,
		HasResult:       s.result != nil,
		CreatedAt:       s.createdAt,
		UpdatedAt:       s.updatedAt,
	}
}

// ValidateCheck reports why a check of text against dict cannot run. A
// missing or empty dictionary is a precondition failure, distinct from a
// check that finds nothing; blank text is invalid input.
func ValidateCheck(sessionID string, dict *dictionary.Dictionary, text string) error {
	if dict.Len() == 0 {
		return errors.NewNoDictionaryError(sessionID)
	}
	if strings.TrimSpace(text) == "" {
		return errors.NewValidationError("text", "text must not be empty")
	}
	return nil
}

// touch must be called with s.mu held.
func (s *Session) touch() {
	s.updatedAt = time.Now()
}

var (
	_ services.SessionManager = (*Engine)(nil)
	_ services.JobManager     = (*jobs.Manager)(nil)
)
