package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/gcbaptista/go-style-checker/internal/errors"
	"github.com/gcbaptista/go-style-checker/model"
)

func waitForStatus(t *testing.T, manager *Manager, jobID string, want model.JobStatus) *model.Job {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		job, err := manager.GetJob(jobID)
		if err != nil {
			t.Fatalf("Failed to get job: %v", err)
		}
		if job.Status == want {
			return job
		}
		time.Sleep(5 * time.Millisecond)
	}
	job, _ := manager.GetJob(jobID)
	t.Fatalf("Job %s did not reach status %s (current: %s)", jobID, want, job.Status)
	return nil
}

func TestJobManager_CreateJob(t *testing.T) {
	manager := NewManager(2)
	defer manager.Stop()

	jobID := manager.CreateJob(model.JobTypeBatchCheck, "session-1", map[string]string{
		"documents": "3",
	})

	if jobID == "" {
		t.Error("Expected non-empty job ID")
	}

	job, err := manager.GetJob(jobID)
	if err != nil {
		t.Fatalf("Failed to get created job: %v", err)
	}
	if job.Type != model.JobTypeBatchCheck {
		t.Errorf("Expected job type %s, got %s", model.JobTypeBatchCheck, job.Type)
	}
	if job.Status != model.JobStatusPending {
		t.Errorf("Expected job status %s, got %s", model.JobStatusPending, job.Status)
	}
	if job.SessionID != "session-1" {
		t.Errorf("Expected session ID 'session-1', got %s", job.SessionID)
	}

	job.Metadata["documents"] = "changed"
	again, _ := manager.GetJob(jobID)
	if again.Metadata["documents"] != "3" {
		t.Error("GetJob must return a copy of the job")
	}
}

func TestJobManager_GetJobNotFound(t *testing.T) {
	manager := NewManager(1)
	defer manager.Stop()

	_, err := manager.GetJob("missing")
	if !errors.Is(err, apperrors.ErrJobNotFound) {
		t.Errorf("Expected ErrJobNotFound, got %v", err)
	}
	if err := manager.ExecuteJob("missing", func(ctx context.Context, job *model.Job) error { return nil }); !errors.Is(err, apperrors.ErrJobNotFound) {
		t.Errorf("Expected ErrJobNotFound from ExecuteJob, got %v", err)
	}
}

func TestJobManager_ExecuteJob(t *testing.T) {
	manager := NewManager(2)
	manager.Start()
	defer manager.Stop()

	jobID := manager.CreateJob(model.JobTypeBatchCheck, "session-1", nil)

	err := manager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		manager.UpdateJobProgress(job.ID, 1, 2, "Checked 1 of 2 documents")
		manager.SetJobResults(job.ID, []model.BatchItemResult{{DocumentID: "a", TotalMatches: 2}, {DocumentID: "b"}})
		manager.UpdateJobProgress(job.ID, 2, 2, "Checked 2 of 2 documents")
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to execute job: %v", err)
	}

	job := waitForStatus(t, manager, jobID, model.JobStatusCompleted)
	if job.Progress == nil || job.Progress.Current != 2 || job.Progress.Total != 2 {
		t.Errorf("Expected progress 2/2, got %+v", job.Progress)
	}
	if job.Progress != nil && job.Progress.GetProgressPercentage() != 100 {
		t.Errorf("Expected 100%% progress, got %v", job.Progress.GetProgressPercentage())
	}
	if len(job.Results) != 2 || job.Results[0].TotalMatches != 2 {
		t.Errorf("Expected stored batch results, got %+v", job.Results)
	}
	if job.StartedAt == nil || job.CompletedAt == nil {
		t.Error("Expected start and completion timestamps")
	}

	if err := manager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error { return nil }); err == nil {
		t.Error("Expected an error when executing a job that is not pending")
	}

	metrics := manager.GetMetrics()
	if metrics.JobsCompleted != 1 || metrics.JobsCreated != 1 {
		t.Errorf("Expected 1 created and 1 completed job, got %+v", metrics)
	}
	if metrics.JobsByStatus[model.JobStatusCompleted] != 1 || metrics.CurrentWorkload != 0 {
		t.Errorf("Unexpected status counters: %+v", metrics.JobsByStatus)
	}
}

func TestJobManager_FailedJob(t *testing.T) {
	manager := NewManager(1)
	defer manager.Stop()

	jobID := manager.CreateJob(model.JobTypeBatchCheck, "session-1", nil)
	if err := manager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		return errors.New("dictionary vanished")
	}); err != nil {
		t.Fatalf("Failed to execute job: %v", err)
	}

	job := waitForStatus(t, manager, jobID, model.JobStatusFailed)
	if job.Error != "dictionary vanished" {
		t.Errorf("Expected job error to be recorded, got %q", job.Error)
	}
	if rate := manager.GetMetrics().SuccessRate; rate != 0 {
		t.Errorf("Expected success rate 0, got %v", rate)
	}
}

func TestJobManager_CancelJob(t *testing.T) {
	manager := NewManager(1)
	defer manager.Stop()

	started := make(chan struct{})
	jobID := manager.CreateJob(model.JobTypeBatchCheck, "session-1", nil)
	if err := manager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	}); err != nil {
		t.Fatalf("Failed to execute job: %v", err)
	}

	<-started
	if err := manager.CancelJob(jobID); err != nil {
		t.Fatalf("Failed to cancel job: %v", err)
	}
	waitForStatus(t, manager, jobID, model.JobStatusCancelled)

	if err := manager.CancelJob(jobID); err == nil {
		t.Error("Expected an error when cancelling a finished job")
	}
}

func TestJobManager_WorkerLimit(t *testing.T) {
	manager := NewManager(1)
	defer manager.Stop()

	release := make(chan struct{})
	first := manager.CreateJob(model.JobTypeBatchCheck, "session-1", nil)
	second := manager.CreateJob(model.JobTypeBatchCheck, "session-1", nil)

	block := func(ctx context.Context, job *model.Job) error {
		<-release
		return nil
	}
	if err := manager.ExecuteJob(first, block); err != nil {
		t.Fatal(err)
	}
	waitForStatus(t, manager, first, model.JobStatusRunning)
	if err := manager.ExecuteJob(second, block); err != nil {
		t.Fatal(err)
	}

	time.Sleep(20 * time.Millisecond)
	if job, _ := manager.GetJob(second); job.Status != model.JobStatusPending {
		t.Errorf("Expected the second job to wait for a worker slot, got %s", job.Status)
	}

	close(release)
	waitForStatus(t, manager, first, model.JobStatusCompleted)
	waitForStatus(t, manager, second, model.JobStatusCompleted)
}

func TestJobManager_ListAndCleanup(t *testing.T) {
	manager := NewManager(2)
	defer manager.Stop()

	a := manager.CreateJob(model.JobTypeBatchCheck, "session-1", nil)
	time.Sleep(2 * time.Millisecond)
	b := manager.CreateJob(model.JobTypeBatchCheck, "session-1", nil)
	manager.CreateJob(model.JobTypeBatchCheck, "session-2", nil)

	jobs := manager.ListJobs("session-1", nil)
	if len(jobs) != 2 || jobs[0].ID != a || jobs[1].ID != b {
		t.Fatalf("Expected jobs of session-1 oldest first, got %+v", jobs)
	}

	if err := manager.ExecuteJob(a, func(ctx context.Context, job *model.Job) error { return nil }); err != nil {
		t.Fatal(err)
	}
	waitForStatus(t, manager, a, model.JobStatusCompleted)

	completed := model.JobStatusCompleted
	if got := manager.ListJobs("session-1", &completed); len(got) != 1 || got[0].ID != a {
		t.Errorf("Expected only the completed job, got %+v", got)
	}

	if cleaned := manager.CleanupOldJobs(0); cleaned != 1 {
		t.Errorf("Expected 1 job cleaned up, got %d", cleaned)
	}
	if _, err := manager.GetJob(a); err == nil {
		t.Error("Expected the finished job to be removed")
	}

	manager.DeleteSessionJobs("session-2")
	if got := manager.ListJobs("session-2", nil); len(got) != 0 {
		t.Errorf("Expected session-2 jobs to be removed, got %d", len(got))
	}
}

func TestJobManager_StopRejectsNewJobs(t *testing.T) {
	manager := NewManager(1)
	jobID := manager.CreateJob(model.JobTypeBatchCheck, "session-1", nil)
	manager.Stop()
	manager.Stop()

	if err := manager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error { return nil }); err == nil {
		t.Error("Expected ExecuteJob to fail after Stop")
	}
}
