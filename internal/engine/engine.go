package engine

import (
	"log"
	"path/filepath"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/gcbaptista/go-style-checker/config"
	"github.com/gcbaptista/go-style-checker/internal/aggregator"
	"github.com/gcbaptista/go-style-checker/internal/dictionary"
	"github.com/gcbaptista/go-style-checker/internal/jobs"
	"github.com/gcbaptista/go-style-checker/internal/persistence"
	"github.com/gcbaptista/go-style-checker/internal/scanner"
	"github.com/gcbaptista/go-style-checker/internal/tokenizer"
	"github.com/gcbaptista/go-style-checker/model"
	"github.com/gcbaptista/go-style-checker/services"
)

const sessionsDir = "sessions"

// Engine manages check sessions.
// It implements the services.SessionManager interface.
type Engine struct {
	mu         sync.RWMutex
	sessions   map[string]*Session
	store      *persistence.Store // nil keeps sessions in memory only
	defaults   config.CheckSettings
	jobManager *jobs.Manager
	maxWorkers int

	trackerMu sync.RWMutex
	tracker   services.CheckTracker
}

// NewEngine creates a session engine. Sessions are persisted under dataDir;
// an empty dataDir keeps them in memory. maxWorkers bounds both concurrent
// jobs and the documents a batch job checks in parallel.
func NewEngine(dataDir string, defaults config.CheckSettings, maxWorkers int) *Engine {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	defaults.ApplyDefaults()

	eng := &Engine{
		sessions:   make(map[string]*Session),
		defaults:   defaults,
		jobManager: jobs.NewManager(maxWorkers),
		maxWorkers: maxWorkers,
	}
	if dataDir != "" {
		eng.store = persistence.NewStore(filepath.Join(dataDir, sessionsDir))
		eng.loadSessionsFromDisk()
	}
	eng.jobManager.Start()
	return eng
}

// Close stops the background jobs of the engine.
func (e *Engine) Close() {
	e.jobManager.Stop()
}

// GetJobManager returns the job manager running batch checks.
func (e *Engine) GetJobManager() *jobs.Manager {
	return e.jobManager
}

// Defaults returns the settings new sessions start from.
func (e *Engine) Defaults() config.CheckSettings {
	return e.defaults
}

// SetCheckTracker registers the receiver of check events. A nil tracker
// disables tracking.
func (e *Engine) SetCheckTracker(tracker services.CheckTracker) {
	e.trackerMu.Lock()
	defer e.trackerMu.Unlock()
	e.tracker = tracker
}

func (e *Engine) track(sessionID string, result *model.CheckResult, took time.Duration) {
	e.trackerMu.RLock()
	tracker := e.tracker
	e.trackerMu.RUnlock()
	if tracker == nil {
		return
	}

	terms := make(map[string]int, len(result.Entries))
	for _, entry := range result.Entries {
		terms[entry.WrongTerm] = entry.Count
	}
	event := model.CheckEvent{
		SessionID:     sessionID,
		TotalMatches:  result.TotalMatches,
		DistinctTerms: result.DistinctTerms,
		WordCount:     result.WordCount,
		ResponseTime:  took,
		Terms:         terms,
	}
	if err := tracker.TrackCheckEvent(event); err != nil {
		log.Printf("Warning: Failed to track check event for session '%s': %v", sessionID, err)
	}
}

// CheckText scans text against dict and aggregates the matches. It performs
// no validation; an empty dictionary yields a result without matches.
func CheckText(text string, dict *dictionary.Dictionary, settings config.CheckSettings) *model.CheckResult {
	start := time.Now()
	settings.ApplyDefaults()

	matches := scanner.Scan(text, dict, scanner.OptionsFromSettings(settings))
	entries := aggregator.Aggregate(matches)

	return &model.CheckResult{
		ID:            uuid.New().String(),
		Matches:       matches,
		Entries:       entries,
		TotalMatches:  len(matches),
		DistinctTerms: len(entries),
		WordCount:     tokenizer.CountWords(text),
		CharCount:     utf8.RuneCountInString(text),
		CheckedAt:     time.Now(),
		Took:          time.Since(start).Milliseconds(),
	}
}

// CheckOnce runs a check outside of any session. Nil settings use the engine
// defaults. The preconditions are the same as for a session check.
func (e *Engine) CheckOnce(text string, dict *dictionary.Dictionary, settings *config.CheckSettings) (*model.CheckResult, error) {
	effective := e.defaults
	if settings != nil {
		var err error
		if effective, err = e.resolveSettings(*settings); err != nil {
			return nil, err
		}
	}
	if err := ValidateCheck("", dict, text); err != nil {
		return nil, err
	}

	start := time.Now()
	result := CheckText(text, dict, effective)
	e.track("", result, time.Since(start))
	return result, nil
}
