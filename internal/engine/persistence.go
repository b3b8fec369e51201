package engine

import (
	"log"
	"time"

	"github.com/gcbaptista/go-style-checker/config"
	"github.com/gcbaptista/go-style-checker/internal/dictionary"
	"github.com/gcbaptista/go-style-checker/model"
)

// sessionSnapshot is the on-disk form of a session. Check results are not
// persisted.
type sessionSnapshot struct {
	ID            string
	Name          string
	Settings      config.CheckSettings
	Entries       []model.DictionaryEntry
	HasDictionary bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (e *Engine) loadSessionsFromDisk() {
	log.Printf("Loading sessions from disk: %s", e.store.Dir())
	keys, err := e.store.Keys()
	if err != nil {
		log.Printf("Warning: Failed to read session directory %s: %v. No sessions loaded.", e.store.Dir(), err)
		return
	}

	for _, key := range keys {
		var snap sessionSnapshot
		if err := e.store.Load(key, &snap); err != nil {
			log.Printf("Warning: Failed to load session %s: %v. Skipping this session.", key, err)
			continue
		}
		if snap.ID != key {
			log.Printf("Warning: Session ID in snapshot ('%s') does not match file name ('%s'). Skipping this session.", snap.ID, key)
			continue
		}

		session := newSession(snap.ID, snap.Name, snap.Settings)
		session.createdAt = snap.CreatedAt
		session.updatedAt = snap.UpdatedAt
		if snap.HasDictionary {
			dict, err := dictionary.FromEntries(snap.Entries)
			if err != nil {
				log.Printf("Warning: Failed to restore dictionary of session %s: %v. Continuing without a dictionary.", key, err)
			} else {
				session.dict = dict
			}
		}

		e.sessions[snap.ID] = session
		log.Printf("Successfully loaded session: %s (%d dictionary entries)", snap.ID, session.dict.Len())
	}
}

// persistSessionUnsafe writes the session snapshot. Callers hold s.mu.
func (e *Engine) persistSessionUnsafe(s *Session) error {
	if e.store == nil || s.deleted {
		return nil
	}
	snap := sessionSnapshot{
		ID:            s.id,
		Name:          s.name,
		Settings:      s.settings,
		Entries:       s.dict.Entries(),
		HasDictionary: s.dict != nil,
		CreatedAt:     s.createdAt,
		UpdatedAt:     s.updatedAt,
	}
	return e.store.Save(s.id, snap)
}
