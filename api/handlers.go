package api

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-style-checker/config"
	"github.com/gcbaptista/go-style-checker/internal/analytics"
	"github.com/gcbaptista/go-style-checker/internal/engine"
	"github.com/gcbaptista/go-style-checker/model"
)

// API holds dependencies for API handlers, primarily the session engine.
type API struct {
	engine    *engine.Engine
	analytics *analytics.Service
}

// CreateSessionRequest is the body of POST /sessions.
type CreateSessionRequest struct {
	Name     string               `json:"name"`
	Settings config.CheckSettings `json:"settings"`
}

// CheckRequest is the body of POST /sessions/:sessionId/check.
type CheckRequest struct {
	Text string `json:"text"`
}

// StatelessCheckRequest is the body of POST /check. The dictionary is kept
// raw so that its key order survives decoding.
type StatelessCheckRequest struct {
	Text       string                `json:"text"`
	Dictionary json.RawMessage       `json:"dictionary"`
	Settings   *config.CheckSettings `json:"settings,omitempty"`
}

// BatchCheckRequest is the body of POST /sessions/:sessionId/batch.
type BatchCheckRequest struct {
	Documents []model.BatchDocument `json:"documents"`
}

// NewAPI creates a new API handler structure. A nil analytics service is
// replaced by an in-memory one. The engine reports its checks to it.
func NewAPI(eng *engine.Engine, analyticsService *analytics.Service) *API {
	if analyticsService == nil {
		analyticsService = analytics.NewService(eng, "")
	}
	eng.SetCheckTracker(analyticsService)
	return &API{
		engine:    eng,
		analytics: analyticsService,
	}
}

// SetupRoutes defines all the API routes for the style checker.
func SetupRoutes(router *gin.Engine, eng *engine.Engine, analyticsService *analytics.Service) *API {
	apiHandler := NewAPI(eng, analyticsService)

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Analytics route
	router.GET("/analytics", apiHandler.GetAnalyticsHandler)

	// One-off check with an inline dictionary
	router.POST("/check", apiHandler.StatelessCheckHandler)

	// Job management routes
	jobRoutes := router.Group("/jobs")
	{
		jobRoutes.GET("/:jobId", apiHandler.GetJobHandler)            // Get job status by ID
		jobRoutes.POST("/:jobId/cancel", apiHandler.CancelJobHandler) // Cancel a pending or running job
		jobRoutes.GET("/metrics", apiHandler.GetJobMetricsHandler)    // Get job performance metrics
	}

	// Session routes
	sessionRoutes := router.Group("/sessions")
	{
		sessionRoutes.POST("", apiHandler.CreateSessionHandler)                              // Create a new session
		sessionRoutes.GET("", apiHandler.ListSessionsHandler)                                // List all sessions
		sessionRoutes.GET("/:sessionId", apiHandler.GetSessionHandler)                       // Get session details
		sessionRoutes.DELETE("/:sessionId", apiHandler.DeleteSessionHandler)                 // Delete a session
		sessionRoutes.GET("/:sessionId/settings", apiHandler.GetSessionSettingsHandler)      // Get check settings
		sessionRoutes.PATCH("/:sessionId/settings", apiHandler.UpdateSessionSettingsHandler) // Update check settings
		sessionRoutes.PUT("/:sessionId/dictionary", apiHandler.LoadDictionaryHandler)        // Replace the dictionary
		sessionRoutes.GET("/:sessionId/dictionary", apiHandler.GetDictionaryHandler)         // Get dictionary entries

		sessionRoutes.POST("/:sessionId/check", apiHandler.CheckHandler)          // Check text
		sessionRoutes.POST("/:sessionId/import", apiHandler.ImportHandler)        // Import a document, optionally checking it
		sessionRoutes.GET("/:sessionId/result", apiHandler.GetResultHandler)      // Last check result
		sessionRoutes.DELETE("/:sessionId/result", apiHandler.ClearResultHandler) // Forget the last check
		sessionRoutes.GET("/:sessionId/render", apiHandler.RenderHandler)         // Annotated text
		sessionRoutes.GET("/:sessionId/locate", apiHandler.LocateHandler)         // Position of a flagged term
		sessionRoutes.GET("/:sessionId/report", apiHandler.ReportHandler)         // Export the report

		sessionRoutes.POST("/:sessionId/batch", apiHandler.BatchCheckHandler) // Check several documents in a job
		sessionRoutes.GET("/:sessionId/jobs", apiHandler.ListJobsHandler)     // List jobs of a session
	}

	return apiHandler
}

// sessionIDParam returns the validated session ID of the request. It sends
// the error response and returns false when the ID is invalid.
func sessionIDParam(c *gin.Context) (string, bool) {
	sessionID := c.Param("sessionId")
	if result := ValidateSessionID(sessionID); result.HasErrors() {
		SendValidationError(c, result)
		return "", false
	}
	return sessionID, true
}
