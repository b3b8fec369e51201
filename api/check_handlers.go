package api

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-style-checker/internal/dictionary"
	"github.com/gcbaptista/go-style-checker/internal/importer"
)

// StatelessCheckHandler checks text against an inline dictionary without
// creating a session.
// Request Body: StatelessCheckRequest
func (api *API) StatelessCheckHandler(c *gin.Context) {
	var req StatelessCheckRequest
	if result := ValidateJSONBinding(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	if req.Settings != nil {
		result := &ValidationResult{Valid: true}
		ValidateCheckSettings(req.Settings, result)
		if result.HasErrors() {
			SendValidationError(c, result)
			return
		}
	}

	var dict *dictionary.Dictionary
	if raw := bytes.TrimSpace(req.Dictionary); len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		loaded, err := dictionary.Load(bytes.NewReader(raw), dictionary.FormatJSON)
		if err != nil {
			SendCheckerError(c, "load dictionary", err)
			return
		}
		dict = loaded
	}

	result, err := api.engine.CheckOnce(req.Text, dict, req.Settings)
	if err != nil {
		SendCheckerError(c, "check text", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CheckHandler checks text with the session dictionary. Zero matches is a
// successful check; a session without a dictionary is refused.
// Request Body: CheckRequest
func (api *API) CheckHandler(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	var req CheckRequest
	if result := ValidateJSONBinding(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	result, err := api.engine.Check(sessionID, req.Text)
	if err != nil {
		SendCheckerError(c, "check text", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ImportHandler converts an uploaded document (multipart field "file") into
// text. With ?check=true the text is checked right away.
func (api *API) ImportHandler(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	checkAfterImport := false
	if raw := c.Query("check"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			result := &ValidationResult{Valid: true}
			result.AddError("check", "check must be a boolean")
			SendValidationError(c, result)
			return
		}
		checkAfterImport = parsed
	}

	if _, err := api.engine.GetSession(sessionID); err != nil {
		SendCheckerError(c, "import document", err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		result := &ValidationResult{Valid: true}
		result.AddError("file", "A document file is required: "+err.Error())
		SendValidationError(c, result)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		SendInternalError(c, "open uploaded document", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		SendInternalError(c, "read uploaded document", err)
		return
	}

	text, err := importer.Import(fileHeader.Filename, data)
	if err != nil {
		SendCheckerError(c, "import document", err)
		return
	}

	response := gin.H{
		"file_name": fileHeader.Filename,
		"text":      text,
	}
	if checkAfterImport {
		result, err := api.engine.Check(sessionID, text)
		if err != nil {
			SendCheckerError(c, "check imported document", err)
			return
		}
		response["result"] = result
	}
	c.JSON(http.StatusOK, response)
}

// GetResultHandler returns the last check result of a session.
func (api *API) GetResultHandler(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	result, err := api.engine.LastResult(sessionID)
	if err != nil {
		SendCheckerError(c, "get result", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ClearResultHandler forgets the last check of a session.
func (api *API) ClearResultHandler(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	if err := api.engine.ClearResult(sessionID); err != nil {
		SendCheckerError(c, "clear result", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Result cleared"})
}
