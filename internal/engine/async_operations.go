package engine

import (
	"context"
	"fmt"

	"github.com/gcbaptista/go-dedupe-engine/internal/errors"
	"github.com/gcbaptista/go-dedupe-engine/model"
	"github.com/gcbaptista/go-dedupe-engine/services"
)

// ScanAsync runs a pairwise match scan as a background job and returns the
// job ID. The result is retrievable from the dataset once the job completes.
func (e *Engine) ScanAsync(name string, opts services.ScanOptions) (string, error) {
	e.mu.RLock()
	instance, exists := e.datasets[name]
	e.mu.RUnlock()
	if !exists {
		return "", errors.NewDatasetNotFoundError(name)
	}

	jobID := e.jobManager.CreateJob(model.JobTypeMatchScan, name, map[string]string{
		"operation": "match_scan",
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		nameCount, _ := instance.Store.Counts()
		e.jobManager.UpdateJobProgress(jobID, 0, nameCount, "Scanning all pairs")
		result, err := instance.Scan(opts)
		if err != nil {
			return err
		}
		e.jobManager.UpdateJobProgress(jobID, nameCount, nameCount,
			fmt.Sprintf("Found %d matching pairs", len(result.Pairs)))
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to start match scan job: %w", err)
	}

	return jobID, nil
}

// AddNamesAsync adds names to a dataset as a background job and persists the
// dataset afterwards.
func (e *Engine) AddNamesAsync(name string, names []string) (string, error) {
	e.mu.RLock()
	instance, exists := e.datasets[name]
	e.mu.RUnlock()
	if !exists {
		return "", errors.NewDatasetNotFoundError(name)
	}

	jobID := e.jobManager.CreateJob(model.JobTypeAddNames, name, map[string]string{
		"operation": "add_names",
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		added, err := instance.AddNames(names)
		if err != nil {
			return err
		}
		e.jobManager.UpdateJobProgress(jobID, added, len(names),
			fmt.Sprintf("Added %d of %d names", added, len(names)))
		return e.PersistDataset(name)
	})
	if err != nil {
		return "", fmt.Errorf("failed to start add names job: %w", err)
	}

	return jobID, nil
}
