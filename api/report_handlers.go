package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-style-checker/config"
	"github.com/gcbaptista/go-style-checker/internal/diff"
	"github.com/gcbaptista/go-style-checker/internal/report"
)

const reportFileBase = "style-report"

// RenderHandler returns the text of the last check with its flagged spans.
// Query: format=segments (default) or format=html.
func (api *API) RenderHandler(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	format := strings.ToLower(c.DefaultQuery("format", "segments"))
	if format != "segments" && format != "html" {
		result := &ValidationResult{Valid: true}
		result.AddError("format", "format must be 'segments' or 'html'")
		SendValidationError(c, result)
		return
	}

	segments, err := api.engine.Render(sessionID)
	if err != nil {
		SendCheckerError(c, "render result", err)
		return
	}

	if format == "html" {
		settings, err := api.engine.GetSessionSettings(sessionID)
		if err != nil {
			SendCheckerError(c, "render result", err)
			return
		}
		markup := diff.HTML(segments, diff.HTMLOptions{RTL: settings.ReportLanguage == config.LanguageArabic})
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(markup))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"segments":  segments,
		"corrected": diff.Corrected(segments),
	})
}

// LocateHandler returns the representative occurrence of a flagged term.
// Query: term (the surface text as listed in the result entries).
func (api *API) LocateHandler(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	term := c.Query("term")
	if term == "" {
		result := &ValidationResult{Valid: true}
		result.AddError("term", "term is required")
		SendValidationError(c, result)
		return
	}

	match, err := api.engine.Locate(sessionID, term)
	if err != nil {
		SendCheckerError(c, "locate term", err)
		return
	}
	c.JSON(http.StatusOK, match)
}

// ReportHandler exports the report of the last check as a download.
// Query: format=text (default), docx or csv.
func (api *API) ReportHandler(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	format, err := report.ParseFormat(c.Query("format"))
	if err != nil {
		SendCheckerError(c, "export report", err)
		return
	}

	var buf bytes.Buffer
	if err := api.engine.Export(sessionID, format, &buf); err != nil {
		SendCheckerError(c, "export report", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s%s"`, reportFileBase, format.Extension()))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
