package engine

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gcbaptista/go-style-checker/config"
	"github.com/gcbaptista/go-style-checker/internal/dictionary"
	"github.com/gcbaptista/go-style-checker/internal/errors"
	"github.com/gcbaptista/go-style-checker/model"
)

// CheckBatchAsync checks several documents against the session dictionary in
// a background job and returns the job ID. The dictionary and settings in
// place at submission are used for every document; the session's last result
// is left untouched.
func (e *Engine) CheckBatchAsync(sessionID string, docs []model.BatchDocument) (string, error) {
	session, err := e.getSession(sessionID)
	if err != nil {
		return "", err
	}
	if len(docs) == 0 {
		return "", errors.NewValidationError("documents", "at least one document is required")
	}

	session.mu.RLock()
	dict := session.dict
	settings := session.settings
	session.mu.RUnlock()

	if dict.Len() == 0 {
		return "", errors.NewNoDictionaryError(sessionID)
	}

	docs = append([]model.BatchDocument(nil), docs...)
	for i := range docs {
		if docs[i].ID == "" {
			docs[i].ID = fmt.Sprintf("doc-%d", i+1)
		}
	}

	jobID := e.jobManager.CreateJob(model.JobTypeBatchCheck, sessionID, map[string]string{
		"operation": "batch_check",
		"documents": strconv.Itoa(len(docs)),
	})

	err = e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		return e.executeBatchCheckJob(ctx, sessionID, dict, settings, docs, jobID)
	})
	if err != nil {
		return "", fmt.Errorf("failed to start batch check job: %w", err)
	}

	return jobID, nil
}

// executeBatchCheckJob checks the documents in parallel, at most maxWorkers at
// a time. Cancellation is honoured between documents.
func (e *Engine) executeBatchCheckJob(ctx context.Context, sessionID string, dict *dictionary.Dictionary, settings config.CheckSettings, docs []model.BatchDocument, jobID string) error {
	results := make([]model.BatchItemResult, len(docs))

	var mu sync.Mutex
	done := 0
	e.jobManager.UpdateJobProgress(jobID, 0, len(docs), "Starting batch check")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.maxWorkers)

	for i, doc := range docs {
		if gctx.Err() != nil {
			break
		}
		i, doc := i, doc
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			item := model.BatchItemResult{DocumentID: doc.ID}
			if strings.TrimSpace(doc.Text) == "" {
				item.Error = "text must not be empty"
			} else {
				start := time.Now()
				result := CheckText(doc.Text, dict, settings)
				result.SessionID = sessionID
				item.TotalMatches = result.TotalMatches
				item.DistinctTerms = result.DistinctTerms
				item.Entries = result.Entries
				e.track(sessionID, result, time.Since(start))
			}
			results[i] = item

			mu.Lock()
			done++
			current := done
			mu.Unlock()
			e.jobManager.UpdateJobProgress(jobID, current, len(docs), fmt.Sprintf("Checked %d of %d documents", current, len(docs)))
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	e.jobManager.SetJobResults(jobID, results)
	e.jobManager.RecordDocumentsChecked(done)
	if err != nil {
		return fmt.Errorf("batch check stopped after %d of %d documents: %w", done, len(docs), err)
	}

	log.Printf("Info: Batch check of %d documents completed for session %s", len(docs), sessionID)
	return nil
}
