package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-style-checker/model"
)

// BatchCheckHandler starts a background check of several documents.
// Request Body: BatchCheckRequest
func (api *API) BatchCheckHandler(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	var req BatchCheckRequest
	if result := ValidateJSONBinding(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	if result := ValidateBatchDocuments(req.Documents); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	jobID, err := api.engine.CheckBatchAsync(sessionID, req.Documents)
	if err != nil {
		SendCheckerError(c, "batch check", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "accepted",
		"message": "Batch check started",
		"job_id":  jobID,
	})
}

// GetJobHandler handles requests to get job status by ID
func (api *API) GetJobHandler(c *gin.Context) {
	jobID := c.Param("jobId")

	job, err := api.engine.GetJobManager().GetJob(jobID)
	if err != nil {
		SendCheckerError(c, "get job", err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// CancelJobHandler asks a pending or running job to stop
func (api *API) CancelJobHandler(c *gin.Context) {
	jobID := c.Param("jobId")

	if err := api.engine.GetJobManager().CancelJob(jobID); err != nil {
		var status model.JobStatus
		if job, getErr := api.engine.GetJobManager().GetJob(jobID); getErr == nil {
			status = job.Status
		} else {
			SendCheckerError(c, "cancel job", getErr)
			return
		}
		SendError(c, http.StatusConflict, ErrorCodeInvalidRequest,
			"Job '"+jobID+"' cannot be cancelled in status "+string(status))
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "accepted",
		"message": "Cancellation requested",
		"job_id":  jobID,
	})
}

// ListJobsHandler handles requests to list jobs for a session
func (api *API) ListJobsHandler(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}
	if _, err := api.engine.GetSession(sessionID); err != nil {
		SendCheckerError(c, "list jobs", err)
		return
	}

	var statusFilter *model.JobStatus
	if statusParam := c.Query("status"); statusParam != "" {
		status := model.JobStatus(statusParam)
		statusFilter = &status
	}

	jobs := api.engine.GetJobManager().ListJobs(sessionID, statusFilter)
	c.JSON(http.StatusOK, gin.H{
		"jobs":       jobs,
		"session_id": sessionID,
		"total":      len(jobs),
	})
}

// GetJobMetricsHandler handles requests to get job performance metrics
func (api *API) GetJobMetricsHandler(c *gin.Context) {
	metrics := api.engine.GetJobManager().GetMetrics()

	c.JSON(http.StatusOK, gin.H{
		"metrics":          metrics,
		"success_rate":     metrics.SuccessRate,
		"current_workload": metrics.CurrentWorkload,
	})
}
