package services

import (
	"io"

	"github.com/gcbaptista/go-style-checker/config"
	"github.com/gcbaptista/go-style-checker/internal/dictionary"
	"github.com/gcbaptista/go-style-checker/internal/report"
	"github.com/gcbaptista/go-style-checker/model"
)

// SessionLister is the read-only view of sessions used by analytics.
type SessionLister interface {
	ListSessions() []model.SessionInfo
}

// SessionManager is the full set of session operations exposed over HTTP.
type SessionManager interface {
	SessionLister
	CreateSession(name string, settings config.CheckSettings) (model.SessionInfo, error)
	GetSession(sessionID string) (model.SessionInfo, error)
	GetSessionSettings(sessionID string) (config.CheckSettings, error)
	UpdateSessionSettings(sessionID string, settings config.CheckSettings) (model.SessionInfo, error)
	DeleteSession(sessionID string) error

	LoadDictionary(sessionID string, r io.Reader, format dictionary.Format) (model.SessionInfo, error)
	DictionaryEntries(sessionID string) ([]model.DictionaryEntry, error)
	Check(sessionID, text string) (*model.CheckResult, error)
	LastResult(sessionID string) (*model.CheckResult, error)
	ClearResult(sessionID string) error
	Render(sessionID string) ([]model.Segment, error)
	Locate(sessionID, surface string) (model.MatchRecord, error)
	Export(sessionID string, format report.Format, w io.Writer) error
	CheckBatchAsync(sessionID string, docs []model.BatchDocument) (string, error)
}

// JobManager exposes job status to the API.
type JobManager interface {
	GetJob(jobID string) (*model.Job, error)
	ListJobs(sessionID string, status *model.JobStatus) []*model.Job
	CancelJob(jobID string) error
}

// CheckTracker receives one event per completed check.
type CheckTracker interface {
	TrackCheckEvent(event model.CheckEvent) error
}
