package engine

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/gcbaptista/go-style-checker/config"
	"github.com/gcbaptista/go-style-checker/internal/errors"
	"github.com/gcbaptista/go-style-checker/model"
)

const defaultSessionName = "Untitled session"

// resolveSettings fills unset fields from the engine defaults and validates
// the result.
func (e *Engine) resolveSettings(settings config.CheckSettings) (config.CheckSettings, error) {
	if problems := settings.Validate(); len(problems) > 0 {
		return config.CheckSettings{}, errors.NewValidationError("settings", strings.Join(problems, "; "))
	}
	if settings.ContextRadius == 0 {
		settings.ContextRadius = e.defaults.ContextRadius
	}
	if settings.OverlapPolicy == "" {
		settings.OverlapPolicy = e.defaults.OverlapPolicy
	}
	if settings.ReportLanguage == "" {
		settings.ReportLanguage = e.defaults.ReportLanguage
	}
	settings.ApplyDefaults()
	return settings, nil
}

// CreateSession creates a new session with the given settings and persists it.
func (e *Engine) CreateSession(name string, settings config.CheckSettings) (model.SessionInfo, error) {
	resolved, err := e.resolveSettings(settings)
	if err != nil {
		return model.SessionInfo{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultSessionName
	}

	session := newSession(uuid.New().String(), name, resolved)

	session.mu.Lock()
	defer session.mu.Unlock()
	if err := e.persistSessionUnsafe(session); err != nil {
		return model.SessionInfo{}, fmt.Errorf("failed to persist new session '%s': %w", name, err)
	}

	e.mu.Lock()
	e.sessions[session.id] = session
	e.mu.Unlock()

	log.Printf("Info: Created session %s ('%s')", session.id, name)
	return session.info(), nil
}

func (e *Engine) getSession(sessionID string) (*Session, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	session, exists := e.sessions[sessionID]
	if !exists {
		return nil, errors.NewSessionNotFoundError(sessionID)
	}
	return session, nil
}

// GetSession returns a description of a session.
func (e *Engine) GetSession(sessionID string) (model.SessionInfo, error) {
	session, err := e.getSession(sessionID)
	if err != nil {
		return model.SessionInfo{}, err
	}
	session.mu.RLock()
	defer session.mu.RUnlock()
	return session.info(), nil
}

// ListSessions returns every session, oldest first.
func (e *Engine) ListSessions() []model.SessionInfo {
	e.mu.RLock()
	sessions := make([]*Session, 0, len(e.sessions))
	for _, session := range e.sessions {
		sessions = append(sessions, session)
	}
	e.mu.RUnlock()

	infos := make([]model.SessionInfo, 0, len(sessions))
	for _, session := range sessions {
		session.mu.RLock()
		infos = append(infos, session.info())
		session.mu.RUnlock()
	}
	sort.Slice(infos, func(i, j int) bool {
		if !infos[i].CreatedAt.Equal(infos[j].CreatedAt) {
			return infos[i].CreatedAt.Before(infos[j].CreatedAt)
		}
		return infos[i].ID < infos[j].ID
	})
	return infos
}

// DeleteSession removes a session, its snapshot and its jobs.
func (e *Engine) DeleteSession(sessionID string) error {
	e.mu.Lock()
	session, exists := e.sessions[sessionID]
	if !exists {
		e.mu.Unlock()
		return errors.NewSessionNotFoundError(sessionID)
	}
	delete(e.sessions, sessionID)
	e.mu.Unlock()

	e.jobManager.DeleteSessionJobs(sessionID)

	// Operations already holding the session finish before the snapshot goes
	session.mu.Lock()
	defer session.mu.Unlock()
	session.deleted = true
	if e.store != nil {
		if err := e.store.Delete(sessionID); err != nil {
			return fmt.Errorf("failed to delete snapshot of session '%s': %w", sessionID, err)
		}
	}
	log.Printf("Info: Deleted session %s", sessionID)
	return nil
}

// GetSessionSettings returns the check settings of a session.
func (e *Engine) GetSessionSettings(sessionID string) (config.CheckSettings, error) {
	session, err := e.getSession(sessionID)
	if err != nil {
		return config.CheckSettings{}, err
	}
	session.mu.RLock()
	defer session.mu.RUnlock()
	return session.settings, nil
}

// UpdateSessionSettings replaces the settings of a session. The last result
// is kept; it reflects the settings it was produced with until the next check.
func (e *Engine) UpdateSessionSettings(sessionID string, settings config.CheckSettings) (model.SessionInfo, error) {
	session, err := e.getSession(sessionID)
	if err != nil {
		return model.SessionInfo{}, err
	}
	resolved, err := e.resolveSettings(settings)
	if err != nil {
		return model.SessionInfo{}, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	previous := session.settings
	session.settings = resolved
	session.touch()
	if err := e.persistSessionUnsafe(session); err != nil {
		session.settings = previous
		return model.SessionInfo{}, fmt.Errorf("failed to persist settings of session '%s': %w", sessionID, err)
	}
	return session.info(), nil
}
