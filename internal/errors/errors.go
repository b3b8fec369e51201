package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrSessionNotFound is returned when a session is not found
	ErrSessionNotFound = errors.New("session not found")

	// ErrJobNotFound is returned when a job is not found
	ErrJobNotFound = errors.New("job not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrDictionaryLoad is returned when a dictionary file is malformed or unreadable
	ErrDictionaryLoad = errors.New("dictionary load failed")

	// ErrTextImport is returned when an input document cannot be read or decoded
	ErrTextImport = errors.New("text import failed")

	// ErrExportWrite is returned when a report cannot be written to its destination
	ErrExportWrite = errors.New("export write failed")

	// ErrNoDictionary is returned when a check is requested before any dictionary was loaded
	ErrNoDictionary = errors.New("no dictionary loaded")

	// ErrNothingToExport is returned when an export is requested without matches to report
	ErrNothingToExport = errors.New("nothing to export")
)

// SessionNotFoundError represents a session not found error with context
type SessionNotFoundError struct {
	SessionID string
}

func (e *SessionNotFoundError) Error() string {
	return fmt.Sprintf("session with ID '%s' not found", e.SessionID)
}

func (e *SessionNotFoundError) Is(target error) bool {
	return target == ErrSessionNotFound
}

// NewSessionNotFoundError creates a new SessionNotFoundError
func NewSessionNotFoundError(sessionID string) *SessionNotFoundError {
	return &SessionNotFoundError{SessionID: sessionID}
}

// JobNotFoundError represents a job not found error with context
type JobNotFoundError struct {
	JobID string
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job with ID '%s' not found", e.JobID)
}

func (e *JobNotFoundError) Is(target error) bool {
	return target == ErrJobNotFound
}

// NewJobNotFoundError creates a new JobNotFoundError
func NewJobNotFoundError(jobID string) *JobNotFoundError {
	return &JobNotFoundError{JobID: jobID}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// DictionaryLoadError wraps the reason a dictionary could not be loaded.
// The previously loaded dictionary, if any, stays active.
type DictionaryLoadError struct {
	Source string
	Err    error
}

func (e *DictionaryLoadError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("failed to load dictionary from '%s': %v", e.Source, e.Err)
	}
	return fmt.Sprintf("failed to load dictionary: %v", e.Err)
}

func (e *DictionaryLoadError) Is(target error) bool {
	return target == ErrDictionaryLoad
}

func (e *DictionaryLoadError) Unwrap() error {
	return e.Err
}

// NewDictionaryLoadError creates a new DictionaryLoadError
func NewDictionaryLoadError(source string, err error) *DictionaryLoadError {
	return &DictionaryLoadError{Source: source, Err: err}
}

// TextImportError wraps the reason an input document could not be imported
type TextImportError struct {
	Source string
	Err    error
}

func (e *TextImportError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("failed to import text from '%s': %v", e.Source, e.Err)
	}
	return fmt.Sprintf("failed to import text: %v", e.Err)
}

func (e *TextImportError) Is(target error) bool {
	return target == ErrTextImport
}

func (e *TextImportError) Unwrap() error {
	return e.Err
}

// NewTextImportError creates a new TextImportError
func NewTextImportError(source string, err error) *TextImportError {
	return &TextImportError{Source: source, Err: err}
}

// ExportWriteError wraps the reason a report could not be written
type ExportWriteError struct {
	Destination string
	Err         error
}

func (e *ExportWriteError) Error() string {
	if e.Destination != "" {
		return fmt.Sprintf("failed to write report to '%s': %v", e.Destination, e.Err)
	}
	return fmt.Sprintf("failed to write report: %v", e.Err)
}

func (e *ExportWriteError) Is(target error) bool {
	return target == ErrExportWrite
}

func (e *ExportWriteError) Unwrap() error {
	return e.Err
}

// NewExportWriteError creates a new ExportWriteError
func NewExportWriteError(destination string, err error) *ExportWriteError {
	return &ExportWriteError{Destination: destination, Err: err}
}

// NoDictionaryError is the precondition failure for checking text without a dictionary.
// It is distinct from a successful check that finds zero matches.
type NoDictionaryError struct {
	SessionID string
}

func (e *NoDictionaryError) Error() string {
	if e.SessionID != "" {
		return fmt.Sprintf("no dictionary loaded for session '%s'", e.SessionID)
	}
	return "no dictionary loaded"
}

func (e *NoDictionaryError) Is(target error) bool {
	return target == ErrNoDictionary
}

// NewNoDictionaryError creates a new NoDictionaryError
func NewNoDictionaryError(sessionID string) *NoDictionaryError {
	return &NoDictionaryError{SessionID: sessionID}
}

// NothingToExportError is returned when no check has run or the last check found no matches
type NothingToExportError struct {
	SessionID string
	Reason    string
}

func (e *NothingToExportError) Error() string {
	return fmt.Sprintf("nothing to export for session '%s': %s", e.SessionID, e.Reason)
}

func (e *NothingToExportError) Is(target error) bool {
	return target == ErrNothingToExport
}

// NewNothingToExportError creates a new NothingToExportError
func NewNothingToExportError(sessionID, reason string) *NothingToExportError {
	return &NothingToExportError{SessionID: sessionID, Reason: reason}
}
