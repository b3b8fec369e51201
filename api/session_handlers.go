package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-style-checker/internal/dictionary"
)

// CreateSessionHandler handles the request to create a new session.
// Request Body: CreateSessionRequest (both fields optional)
func (api *API) CreateSessionHandler(c *gin.Context) {
	var req CreateSessionRequest
	if c.Request.ContentLength != 0 {
		if result := ValidateJSONBinding(c, &req); result.HasErrors() {
			SendValidationError(c, result)
			return
		}
	}
	if result := ValidateCreateSession(&req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	info, err := api.engine.CreateSession(req.Name, req.Settings)
	if err != nil {
		SendCheckerError(c, "create session", err)
		return
	}

	c.JSON(http.StatusCreated, info)
}

// ListSessionsHandler handles the request to list all sessions.
func (api *API) ListSessionsHandler(c *gin.Context) {
	sessions := api.engine.ListSessions()
	c.JSON(http.StatusOK, gin.H{
		"sessions": sessions,
		"total":    len(sessions),
	})
}

// GetSessionHandler handles the request to get a session.
func (api *API) GetSessionHandler(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	info, err := api.engine.GetSession(sessionID)
	if err != nil {
		SendCheckerError(c, "get session", err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// DeleteSessionHandler handles the request to delete a session.
func (api *API) DeleteSessionHandler(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	if err := api.engine.DeleteSession(sessionID); err != nil {
		SendCheckerError(c, "delete session", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session '" + sessionID + "' deleted successfully"})
}

// GetSessionSettingsHandler handles the request to get the check settings of a session.
func (api *API) GetSessionSettingsHandler(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	settings, err := api.engine.GetSessionSettings(sessionID)
	if err != nil {
		SendCheckerError(c, "get session settings", err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSessionSettingsHandler handles partial updates of the check settings.
// Only the fields present in the body change.
func (api *API) UpdateSessionSettingsHandler(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	settings, err := api.engine.GetSessionSettings(sessionID)
	if err != nil {
		SendCheckerError(c, "update session settings", err)
		return
	}

	var update struct {
		ContextRadius  *int    `json:"context_radius"`
		OverlapPolicy  *string `json:"overlap_policy"`
		ReportLanguage *string `json:"report_language"`
	}
	if result := ValidateJSONBinding(c, &update); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if update.ContextRadius != nil {
		settings.ContextRadius = *update.ContextRadius
	}
	if update.OverlapPolicy != nil {
		settings.OverlapPolicy = *update.OverlapPolicy
	}
	if update.ReportLanguage != nil {
		settings.ReportLanguage = *update.ReportLanguage
	}

	result := &ValidationResult{Valid: true}
	ValidateCheckSettings(&settings, result)
	if result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	info, err := api.engine.UpdateSessionSettings(sessionID, settings)
	if err != nil {
		SendCheckerError(c, "update session settings", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session":  info,
		"settings": settings,
	})
}

// LoadDictionaryHandler replaces the dictionary of a session.
// The dictionary is either the raw request body (JSON object or YAML mapping,
// chosen by ?format= or the Content-Type) or a multipart "file" field whose
// extension selects the format.
func (api *API) LoadDictionaryHandler(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	var (
		body     io.Reader
		format   dictionary.Format
		hasQuery = c.Query("format") != ""
	)

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			result := &ValidationResult{Valid: true}
			result.AddError("file", "A dictionary file is required: "+err.Error())
			SendValidationError(c, result)
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			SendInternalError(c, "open uploaded dictionary", err)
			return
		}
		defer file.Close()
		body = file
		format = dictionary.FormatFromPath(fileHeader.Filename)
	} else {
		body = c.Request.Body
		if parsed, err := dictionary.ParseFormat(c.ContentType()); err == nil {
			format = parsed
		} else {
			format = dictionary.FormatJSON
		}
	}

	if hasQuery {
		parsed, err := dictionary.ParseFormat(c.Query("format"))
		if err != nil {
			result := &ValidationResult{Valid: true}
			result.AddError("format", err.Error())
			SendValidationError(c, result)
			return
		}
		format = parsed
	}

	info, err := api.engine.LoadDictionary(sessionID, body, format)
	if err != nil {
		SendCheckerError(c, "load dictionary", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Dictionary loaded",
		"session": info,
	})
}

// GetDictionaryHandler returns the dictionary entries of a session in order.
func (api *API) GetDictionaryHandler(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	entries, err := api.engine.DictionaryEntries(sessionID)
	if err != nil {
		SendCheckerError(c, "get dictionary", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"total":   len(entries),
	})
}
