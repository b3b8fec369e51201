// Package api provides the HTTP interface of the style checker.
package api

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-style-checker/config"
	"github.com/gcbaptista/go-style-checker/model"
)

const (
	maxSessionNameLength = 200
	maxBatchDocuments    = 1000
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateSessionID validates a session ID parameter
func ValidateSessionID(sessionID string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if sessionID == "" {
		result.AddError("sessionId", "Session ID is required")
		return result
	}

	if strings.TrimSpace(sessionID) != sessionID {
		result.AddError("sessionId", "Session ID cannot have leading or trailing whitespace")
	}

	return result
}

// ValidateCreateSession validates a session creation request
func ValidateCreateSession(req *CreateSessionRequest) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if len([]rune(req.Name)) > maxSessionNameLength {
		result.AddError("name", fmt.Sprintf("Session name cannot be longer than %d characters", maxSessionNameLength))
	}
	ValidateCheckSettings(&req.Settings, result)

	return result
}

// ValidateCheckSettings adds one error per invalid setting to result.
func ValidateCheckSettings(settings *config.CheckSettings, result *ValidationResult) {
	for _, problem := range settings.Validate() {
		result.AddError("settings", problem)
	}
}

// ValidateBatchDocuments validates the documents of a batch check
func ValidateBatchDocuments(docs []model.BatchDocument) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if len(docs) == 0 {
		result.AddError("documents", "No documents provided")
		return result
	}
	if len(docs) > maxBatchDocuments {
		result.AddError("documents", fmt.Sprintf("A batch cannot contain more than %d documents", maxBatchDocuments))
		return result
	}

	seen := make(map[string]int, len(docs))
	for i, doc := range docs {
		if doc.ID == "" {
			continue
		}
		if strings.TrimSpace(doc.ID) != doc.ID {
			result.AddError(fmt.Sprintf("documents[%d].id", i), "Document ID cannot have leading or trailing whitespace")
			continue
		}
		if first, dup := seen[doc.ID]; dup {
			result.AddError(fmt.Sprintf("documents[%d].id", i), fmt.Sprintf("Document ID '%s' is already used by documents[%d]", doc.ID, first))
			continue
		}
		seen[doc.ID] = i
	}

	return result
}

// SendValidationError sends a standardized validation error response
func SendValidationError(c *gin.Context, result *ValidationResult) {
	SendStructuredValidationError(c, result)
}

// ValidateJSONBinding validates JSON binding and returns a standardized error
func ValidateJSONBinding(c *gin.Context, target interface{}) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if err := c.ShouldBindJSON(target); err != nil {
		result.AddError("request_body", "Invalid request body: "+err.Error())
	}

	return result
}
