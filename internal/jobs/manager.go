package jobs

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/go-style-checker/internal/errors"
	"github.com/gcbaptista/go-style-checker/model"
)

// JobFunc is the work of a job. It should return promptly once ctx is done.
type JobFunc func(ctx context.Context, job *model.Job) error

// Manager runs background jobs on a bounded number of worker slots and keeps
// their status for polling.
type Manager struct {
	mu       sync.RWMutex
	jobs     map[string]*model.Job
	cancels  map[string]context.CancelFunc
	workers  chan struct{} // Limits concurrent jobs
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	metrics  *JobMetrics
}

// NewManager creates a job manager running at most maxWorkers jobs at once.
func NewManager(maxWorkers int) *Manager {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	return &Manager{
		jobs:     make(map[string]*model.Job),
		cancels:  make(map[string]context.CancelFunc),
		workers:  make(chan struct{}, maxWorkers),
		stopChan: make(chan struct{}),
		metrics:  NewJobMetrics(),
	}
}

// Start begins the background cleanup of finished jobs.
func (m *Manager) Start() {
	log.Printf("Info: Job manager started with %d max workers", cap(m.workers))
	go m.cleanupRoutine()
}

// Stop cancels running jobs and waits for them to return. It is safe to call
// more than once.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopChan)
		m.mu.Lock()
		for _, cancel := range m.cancels {
			cancel()
		}
		m.mu.Unlock()
		m.wg.Wait()
		log.Printf("Info: Job manager stopped")
	})
}

// CreateJob registers a pending job for a session and returns its ID.
func (m *Manager) CreateJob(jobType model.JobType, sessionID string, metadata map[string]string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	job := &model.Job{
		ID:        uuid.New().String(),
		Type:      jobType,
		Status:    model.JobStatusPending,
		SessionID: sessionID,
		CreatedAt: time.Now(),
		Metadata:  metadata,
	}

	m.jobs[job.ID] = job
	m.metrics.RecordJobCreated(jobType)
	log.Printf("Info: Created job %s (type: %s) for session '%s'", job.ID, job.Type, job.SessionID)
	return job.ID
}

// GetJob returns a snapshot of a job.
func (m *Manager) GetJob(jobID string) (*model.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return nil, errors.NewJobNotFoundError(jobID)
	}
	return snapshot(job), nil
}

// ListJobs returns snapshots of a session's jobs, oldest first, optionally
// filtered by status.
func (m *Manager) ListJobs(sessionID string, status *model.JobStatus) []*model.Job {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*model.Job, 0)
	for _, job := range m.jobs {
		if job.SessionID != sessionID {
			continue
		}
		if status != nil && job.Status != *status {
			continue
		}
		result = append(result, snapshot(job))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

func snapshot(job *model.Job) *model.Job {
	jobCopy := *job
	if job.Progress != nil {
		progressCopy := *job.Progress
		jobCopy.Progress = &progressCopy
	}
	if job.Results != nil {
		jobCopy.Results = append([]model.BatchItemResult(nil), job.Results...)
	}
	if job.Metadata != nil {
		jobCopy.Metadata = make(map[string]string, len(job.Metadata))
		for k, v := range job.Metadata {
			jobCopy.Metadata[k] = v
		}
	}
	return &jobCopy
}

// ExecuteJob starts a pending job in the background. The job waits for a free
// worker slot; it is cancelled if the manager stops first.
func (m *Manager) ExecuteJob(jobID string, jobFunc JobFunc) error {
	select {
	case <-m.stopChan:
		return fmt.Errorf("job manager is shutting down")
	default:
	}

	m.mu.Lock()
	job, exists := m.jobs[jobID]
	if !exists {
		m.mu.Unlock()
		return errors.NewJobNotFoundError(jobID)
	}
	if job.Status != model.JobStatusPending {
		m.mu.Unlock()
		return fmt.Errorf("job with ID '%s' is not in pending status (current: %s)", jobID, job.Status)
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancels[jobID] = cancel
	jobView := snapshot(job)
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()
		defer m.forgetCancel(jobID)
		defer cancel()

		select {
		case m.workers <- struct{}{}:
		case <-ctx.Done():
			m.updateJobStatus(jobID, model.JobStatusCancelled, "job cancelled before it started")
			return
		}
		defer func() { <-m.workers }()

		m.markRunning(jobID)
		startTime := time.Now()
		err := jobFunc(ctx, jobView)
		executionTime := time.Since(startTime)

		switch {
		case err != nil && ctx.Err() != nil:
			m.updateJobStatus(jobID, model.JobStatusCancelled, err.Error())
			log.Printf("Info: Job %s cancelled after %v", jobID, executionTime)
		case err != nil:
			m.updateJobStatus(jobID, model.JobStatusFailed, err.Error())
			m.metrics.RecordJobFailed(jobView.Type)
			log.Printf("Warning: Job %s failed after %v: %v", jobID, executionTime, err)
		default:
			m.updateJobStatus(jobID, model.JobStatusCompleted, "")
			m.metrics.RecordJobCompleted(jobView.Type, executionTime)
			log.Printf("Info: Job %s completed successfully in %v", jobID, executionTime)
		}
	}()

	return nil
}

// CancelJob asks a pending or running job to stop.
func (m *Manager) CancelJob(jobID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return errors.NewJobNotFoundError(jobID)
	}
	cancel, active := m.cancels[jobID]
	if !active || (job.Status != model.JobStatusPending && job.Status != model.JobStatusRunning) {
		return fmt.Errorf("job with ID '%s' is not active (current: %s)", jobID, job.Status)
	}
	old := job.Status
	job.Status = model.JobStatusCancelling
	m.metrics.RecordJobStatusChange(old, job.Status)
	cancel()
	return nil
}

func (m *Manager) forgetCancel(jobID string) {
	m.mu.Lock()
	delete(m.cancels, jobID)
	m.mu.Unlock()
}

func (m *Manager) markRunning(jobID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, exists := m.jobs[jobID]
	if !exists || job.Status != model.JobStatusPending {
		return
	}
	job.Status = model.JobStatusRunning
	now := time.Now()
	job.StartedAt = &now
	m.metrics.RecordJobStatusChange(model.JobStatusPending, model.JobStatusRunning)
}

// UpdateJobProgress records how far a running job got.
func (m *Manager) UpdateJobProgress(jobID string, current, total int, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return
	}
	if job.Progress == nil {
		job.Progress = &model.JobProgress{}
	}
	job.Progress.Current = current
	job.Progress.Total = total
	job.Progress.Message = message
}

// SetJobResults stores the per-document results of a batch job.
func (m *Manager) SetJobResults(jobID string, results []model.BatchItemResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if job, exists := m.jobs[jobID]; exists {
		job.Results = append([]model.BatchItemResult(nil), results...)
	}
}

func (m *Manager) updateJobStatus(jobID string, status model.JobStatus, errorMsg string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return
	}

	oldStatus := job.Status
	job.Status = status
	if errorMsg != "" {
		job.Error = errorMsg
	}
	if status == model.JobStatusCompleted || status == model.JobStatusFailed || status == model.JobStatusCancelled {
		now := time.Now()
		job.CompletedAt = &now
	}
	m.metrics.RecordJobStatusChange(oldStatus, status)
}

func (m *Manager) cleanupRoutine() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.CleanupOldJobs(24 * time.Hour)
		case <-m.stopChan:
			return
		}
	}
}

// CleanupOldJobs forgets finished jobs that completed more than maxAge ago.
func (m *Manager) CleanupOldJobs(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	cleaned := 0
	for jobID, job := range m.jobs {
		if job.CompletedAt != nil && job.CompletedAt.Before(cutoff) {
			delete(m.jobs, jobID)
			cleaned++
		}
	}
	if cleaned > 0 {
		log.Printf("Info: Cleaned up %d old jobs", cleaned)
	}
	return cleaned
}

// DeleteSessionJobs forgets the finished jobs of a session and cancels its
// active ones.
func (m *Manager) DeleteSessionJobs(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for jobID, job := range m.jobs {
		if job.SessionID != sessionID {
			continue
		}
		if cancel, active := m.cancels[jobID]; active {
			cancel()
			continue
		}
		delete(m.jobs, jobID)
	}
}

// GetMetrics returns a copy of the job metrics.
func (m *Manager) GetMetrics() JobMetricsData {
	return m.metrics.GetMetrics()
}

// RecordDocumentsChecked adds n to the number of documents processed by jobs.
func (m *Manager) RecordDocumentsChecked(n int) {
	m.metrics.RecordDocumentsChecked(n)
}
