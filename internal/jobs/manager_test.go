package jobs

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/gcbaptista/go-dedupe-engine/model"
)

func TestJobManager_CreateJob(t *testing.T) {
	manager := NewManager(2)
	defer manager.Stop()

	jobID := manager.CreateJob(model.JobTypeMatchScan, "people", map[string]string{
		"operation": "test",
	})

	if jobID == "" {
		t.Error("Expected non-empty job ID")
	}

	job, err := manager.GetJob(jobID)
	if err != nil {
		t.Fatalf("Failed to get created job: %v", err)
	}

	if job.Type != model.JobTypeMatchScan {
		t.Errorf("Expected job type %s, got %s", model.JobTypeMatchScan, job.Type)
	}

	if job.Status != model.JobStatusPending {
		t.Errorf("Expected job status %s, got %s", model.JobStatusPending, job.Status)
	}

	if job.DatasetName != "people" {
		t.Errorf("Expected dataset name 'people', got %s", job.DatasetName)
	}
}

func TestJobManager_ExecuteJob(t *testing.T) {
	manager := NewManager(2)
	manager.Start()
	defer manager.Stop()

	jobID := manager.CreateJob(model.JobTypeMatchScan, "people", nil)

	err := manager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		manager.UpdateJobProgress(jobID, 50, 100, "Halfway done")
		time.Sleep(10 * time.Millisecond) // Simulate work
		manager.UpdateJobProgress(jobID, 100, 100, "Completed")
		return nil
	})

	if err != nil {
		t.Fatalf("Failed to execute job: %v", err)
	}

	// Wait for the job to complete
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		job, err := manager.GetJob(jobID)
		if err != nil {
			t.Fatalf("Failed to get job: %v", err)
		}
		if job.Status == model.JobStatusCompleted {
			if job.Progress == nil || job.Progress.Current != 100 {
				t.Errorf("Expected progress 100, got %+v", job.Progress)
			}
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("Job did not complete in time")
}

func TestJobManager_ExecuteJobFailure(t *testing.T) {
	manager := NewManager(1)
	manager.Start()
	defer manager.Stop()

	jobID := manager.CreateJob(model.JobTypeMatchScan, "people", nil)

	err := manager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		return fmt.Errorf("scan aborted")
	})
	if err != nil {
		t.Fatalf("Failed to execute job: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		job, err := manager.GetJob(jobID)
		if err != nil {
			t.Fatalf("Failed to get job: %v", err)
		}
		if job.Status == model.JobStatusFailed {
			if job.Error != "scan aborted" {
				t.Errorf("Expected job error 'scan aborted', got %q", job.Error)
			}
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("Job did not fail in time")
}

func TestJobManager_GetJobNotFound(t *testing.T) {
	manager := NewManager(1)
	defer manager.Stop()

	if _, err := manager.GetJob("missing"); err == nil {
		t.Error("Expected an error for a missing job")
	}
}

func TestJobManager_Metrics(t *testing.T) {
	manager := NewManager(2)
	manager.Start()
	defer manager.Stop()

	jobID := manager.CreateJob(model.JobTypeMatchScan, "people", nil)
	if err := manager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		return nil
	}); err != nil {
		t.Fatalf("Failed to execute job: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		metrics := manager.GetMetrics()
		if metrics.JobsCompleted == 1 {
			if metrics.JobsCreated != 1 {
				t.Errorf("Expected 1 job created, got %d", metrics.JobsCreated)
			}
			if rate := manager.GetJobSuccessRate(); rate != 1.0 {
				t.Errorf("Expected success rate 1.0, got %f", rate)
			}
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("Metrics never recorded the completed job")
}
