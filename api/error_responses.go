package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/gcbaptista/go-style-checker/internal/errors"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeValidationFailed     ErrorCode = "VALIDATION_FAILED"
	ErrorCodeSessionNotFound      ErrorCode = "SESSION_NOT_FOUND"
	ErrorCodeJobNotFound          ErrorCode = "JOB_NOT_FOUND"
	ErrorCodeInvalidRequest       ErrorCode = "INVALID_REQUEST"
	ErrorCodeDictionaryLoadFailed ErrorCode = "DICTIONARY_LOAD_FAILED"
	ErrorCodeTextImportFailed     ErrorCode = "TEXT_IMPORT_FAILED"
	ErrorCodeDictionaryNotLoaded  ErrorCode = "DICTIONARY_NOT_LOADED"
	ErrorCodeNothingToExport      ErrorCode = "NOTHING_TO_EXPORT"

	// Server Error Codes (5xx)
	ErrorCodeInternalError ErrorCode = "INTERNAL_ERROR"
	ErrorCodeExportFailed  ErrorCode = "EXPORT_FAILED"
)

// ErrorDetail provides additional context for an error
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// APIError represents a standardized API error response
type APIError struct {
	Error     string        `json:"error"`
	Code      ErrorCode     `json:"code"`
	Message   string        `json:"message"`
	Details   []ErrorDetail `json:"details,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	RequestID string        `json:"request_id,omitempty"`
}

// APIErrorResponse creates a standardized error response
func APIErrorResponse(code ErrorCode, message string, details ...ErrorDetail) *APIError {
	return &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// SendError sends a standardized error response
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...ErrorDetail) {
	errorResponse := APIErrorResponse(code, message, details...)

	// Add request ID if available
	if requestID, exists := c.Get(requestIDKey); exists {
		if id, ok := requestID.(string); ok {
			errorResponse.RequestID = id
		}
	}

	c.JSON(statusCode, errorResponse)
}

// SendStructuredValidationError sends a validation error with structured details
func SendStructuredValidationError(c *gin.Context, result *ValidationResult) {
	details := make([]ErrorDetail, len(result.Errors))
	for i, err := range result.Errors {
		details[i] = ErrorDetail{
			Field:   err.Field,
			Message: err.Message,
			Code:    "VALIDATION_ERROR",
		}
	}

	SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed", details...)
}

// SendSessionNotFoundError sends a standardized session not found error
func SendSessionNotFoundError(c *gin.Context, sessionID string) {
	SendError(c, http.StatusNotFound, ErrorCodeSessionNotFound,
		"Session '"+sessionID+"' not found")
}

// SendJobNotFoundError sends a standardized job not found error
func SendJobNotFoundError(c *gin.Context, jobID string) {
	SendError(c, http.StatusNotFound, ErrorCodeJobNotFound,
		"Job '"+jobID+"' not found")
}

// SendInternalError sends a standardized internal server error
func SendInternalError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeInternalError,
		"Internal error during "+operation+": "+err.Error())
}

// SendCheckerError maps an error returned by the session engine to its
// standardized response.
func SendCheckerError(c *gin.Context, operation string, err error) {
	var sessionErr *apperrors.SessionNotFoundError
	var jobErr *apperrors.JobNotFoundError
	var validationErr *apperrors.ValidationError

	switch {
	case errors.As(err, &sessionErr):
		SendSessionNotFoundError(c, sessionErr.SessionID)
	case errors.As(err, &jobErr):
		SendJobNotFoundError(c, jobErr.JobID)
	case errors.As(err, &validationErr):
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed",
			ErrorDetail{Field: validationErr.Field, Message: validationErr.Message, Code: "VALIDATION_ERROR"})
	case errors.Is(err, apperrors.ErrDictionaryLoad):
		SendError(c, http.StatusBadRequest, ErrorCodeDictionaryLoadFailed, err.Error())
	case errors.Is(err, apperrors.ErrTextImport):
		SendError(c, http.StatusBadRequest, ErrorCodeTextImportFailed, err.Error())
	case errors.Is(err, apperrors.ErrNoDictionary):
		SendError(c, http.StatusPreconditionFailed, ErrorCodeDictionaryNotLoaded, err.Error())
	case errors.Is(err, apperrors.ErrNothingToExport):
		SendError(c, http.StatusConflict, ErrorCodeNothingToExport, err.Error())
	case errors.Is(err, apperrors.ErrExportWrite):
		SendError(c, http.StatusInternalServerError, ErrorCodeExportFailed, err.Error())
	default:
		SendInternalError(c, operation, err)
	}
}
