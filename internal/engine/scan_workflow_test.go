package engine_test

import (
	"testing"

	testutil "github.com/gcbaptista/go-dedupe-engine/internal/testing"
	"github.com/gcbaptista/go-dedupe-engine/model"
	"github.com/gcbaptista/go-dedupe-engine/services"
)

func TestScanWorkflow(t *testing.T) {
	eng := testutil.CreateTestEngine(t)
	testutil.CreateTestDataset(t, eng, "workflow")
	testutil.AddTestNames(t, eng, "workflow")

	accessor, err := eng.GetDataset("workflow")
	if err != nil {
		t.Fatalf("GetDataset failed: %v", err)
	}

	one := 1
	minScore := 90.0
	testutil.RunScanTests(t, accessor, []testutil.ScanTestCase{
		{
			Name:          "default options",
			Options:       services.ScanOptions{},
			ExpectedPairs: 2,
		},
		{
			Name:          "single worker",
			Options:       services.ScanOptions{WorkerCount: &one},
			ExpectedPairs: 2,
			ValidateFunc: func(t *testing.T, result *model.MatchResult) {
				if result.WorkerCount != 1 {
					t.Errorf("expected 1 effective worker, got %d", result.WorkerCount)
				}
			},
		},
		{
			Name:          "with scrutiny threshold",
			Options:       services.ScanOptions{MinScore: &minScore},
			ExpectedPairs: 2,
			ValidateFunc: func(t *testing.T, result *model.MatchResult) {
				for _, sp := range result.ScoredPairs {
					if sp.Score < minScore {
						t.Errorf("scored pair below threshold: %+v", sp)
					}
				}
			},
		},
	})
}

func TestAddNamesJobWorkflow(t *testing.T) {
	eng := testutil.CreateTestEngine(t)
	testutil.CreateTestDataset(t, eng, "workflow_jobs")

	jobID, err := eng.AddNamesAsync("workflow_jobs", []string{"bob smith", "robert smith"})
	if err != nil {
		t.Fatalf("AddNamesAsync failed: %v", err)
	}

	job := testutil.WaitForJobCompletion(t, eng, jobID, testutil.DefaultJobPollingOptions())
	testutil.AssertJobCompleted(t, job, model.JobTypeAddNames, "workflow_jobs")

	accessor, err := eng.GetDataset("workflow_jobs")
	if err != nil {
		t.Fatalf("GetDataset failed: %v", err)
	}
	if stats := accessor.Stats(); stats.NameCount != 2 {
		t.Errorf("expected 2 names after the job, got %d", stats.NameCount)
	}
}
