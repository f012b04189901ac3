// Package testing provides utilities and helpers for testing the dedupe engine.
package testing

import (
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-dedupe-engine/config"
	"github.com/gcbaptista/go-dedupe-engine/internal/engine"
	"github.com/gcbaptista/go-dedupe-engine/model"
	"github.com/gcbaptista/go-dedupe-engine/services"
)

// TestDirRegistry tracks test directories for cleanup
type TestDirRegistry struct {
	mu   sync.Mutex
	dirs []string
}

var globalTestDirRegistry = &TestDirRegistry{}

// RegisterTestDir registers a test directory for cleanup
func (r *TestDirRegistry) RegisterTestDir(dir string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dirs = append(r.dirs, dir)
}

// CleanupAll removes all registered test directories
func (r *TestDirRegistry) CleanupAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, dir := range r.dirs {
		if err := os.RemoveAll(dir); err != nil {
			fmt.Printf("Warning: Failed to remove test directory %s: %v\n", dir, err)
		}
	}
	r.dirs = nil
}

// CreateTestEngine creates a new engine instance for testing with automatic cleanup
func CreateTestEngine(t *testing.T) *engine.Engine {
	testDir := fmt.Sprintf("./test_data_%d", time.Now().UnixNano())
	globalTestDirRegistry.RegisterTestDir(testDir)

	eng := engine.NewEngine(testDir)
	t.Cleanup(eng.Stop)

	return eng
}

// CreateTestDataset creates a test dataset with default settings
func CreateTestDataset(t *testing.T, eng *engine.Engine, datasetName string) config.DatasetSettings {
	settings := config.DatasetSettings{
		Name:        datasetName,
		WorkerCount: 2,
	}

	err := eng.CreateDataset(settings)
	require.NoError(t, err, "Failed to create test dataset")

	return settings
}

// AddTestNames adds a small set of candidate names (and a synonym dictionary
// linking their nicknames) to a dataset
func AddTestNames(t *testing.T, eng *engine.Engine, datasetName string) []string {
	accessor, err := eng.GetDataset(datasetName)
	require.NoError(t, err, "Failed to get dataset accessor")

	names := []string{
		"bob smith",
		"robert smith",
		"william jones",
		"bill jones",
		"jane doe",
	}

	_, err = accessor.AddNames(names)
	require.NoError(t, err, "Failed to add test names")

	err = accessor.SetSynonyms(map[string][]string{
		"bob":     {"robert"},
		"william": {"bill"},
	})
	require.NoError(t, err, "Failed to set test synonyms")

	return names
}

// JobPollingOptions configures job polling behavior
type JobPollingOptions struct {
	Timeout      time.Duration
	PollInterval time.Duration
	LogProgress  bool
}

// DefaultJobPollingOptions returns sensible defaults for job polling
func DefaultJobPollingOptions() JobPollingOptions {
	return JobPollingOptions{
		Timeout:      10 * time.Second,
		PollInterval: 100 * time.Millisecond,
		LogProgress:  true,
	}
}

// WaitForJobCompletion polls a job until it completes or times out
func WaitForJobCompletion(t *testing.T, jobManager services.JobManager, jobID string, opts JobPollingOptions) *model.Job {
	timeout := time.After(opts.Timeout)
	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()

	var job *model.Job
	var err error

	for {
		select {
		case <-timeout:
			t.Fatalf("Job %s did not complete within %v timeout", jobID, opts.Timeout)
		case <-ticker.C:
			job, err = jobManager.GetJob(jobID)
			require.NoError(t, err, "Failed to get job status")

			switch job.Status {
			case model.JobStatusCompleted:
				if opts.LogProgress {
					t.Logf("Job %s completed successfully in %v", jobID, job.CompletedAt.Sub(job.CreatedAt))
				}
				return job
			case model.JobStatusFailed:
				t.Fatalf("Job %s failed: %s", jobID, job.Error)
			case model.JobStatusRunning:
				if opts.LogProgress && job.Progress != nil {
					t.Logf("Job %s progress: %d/%d - %s",
						jobID,
						job.Progress.Current,
						job.Progress.Total,
						job.Progress.Message)
				}
			}
		}
	}
}

// AssertJobCompleted verifies that a job completed successfully
func AssertJobCompleted(t *testing.T, job *model.Job, expectedType model.JobType, expectedDataset string) {
	assert.Equal(t, model.JobStatusCompleted, job.Status, "Job should be completed")
	assert.Equal(t, expectedType, job.Type, "Job type should match")
	assert.Equal(t, expectedDataset, job.DatasetName, "Job dataset name should match")
	assert.NotNil(t, job.CompletedAt, "Job should have completion timestamp")
	assert.Empty(t, job.Error, "Job should not have error")
}

// ScanTestCase represents a test case for match scans
type ScanTestCase struct {
	Name          string
	Options       services.ScanOptions
	ExpectedPairs int
	ValidateFunc  func(t *testing.T, result *model.MatchResult)
}

// RunScanTests runs a suite of scan tests against a dataset
func RunScanTests(t *testing.T, accessor services.DatasetAccessor, tests []ScanTestCase) {
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			result, err := accessor.Scan(tt.Options)
			require.NoError(t, err, "Scan should not fail")

			assert.Equal(t, tt.ExpectedPairs, len(result.Pairs), "Pair count should match")

			if tt.ValidateFunc != nil {
				tt.ValidateFunc(t, result)
			}
		})
	}
}

// CleanupTestDirs should be called in TestMain to clean up all test directories
func CleanupTestDirs() {
	globalTestDirRegistry.CleanupAll()
}
