package services

import (
	"github.com/gcbaptista/go-dedupe-engine/config"
	"github.com/gcbaptista/go-dedupe-engine/model"
)

// ScanOptions carries per-scan overrides of a dataset's settings.
type ScanOptions struct {
	WorkerCount *int     `json:"worker_count,omitempty"` // Optional: override dataset worker count (0 / -1 / n semantics)
	MinScore    *float64 `json:"min_score,omitempty"`    // Optional: override dataset scrutiny threshold (0 disables scoring)
}

// NameAdder defines operations for adding candidate names to a dataset
type NameAdder interface {
	AddNames(names []string) (int, error)
	ClearNames() error
	SetSynonyms(synonyms map[string][]string) error
}

// Scanner defines operations for running a pairwise match scan over a dataset
type Scanner interface {
	Scan(opts ScanOptions) (*model.MatchResult, error)
}

// DatasetManager manages the lifecycle of datasets
type DatasetManager interface {
	CreateDataset(settings config.DatasetSettings) error
	GetDataset(name string) (DatasetAccessor, error)
	GetDatasetSettings(name string) (config.DatasetSettings, error)
	DeleteDataset(name string) error
	ListDatasets() []string
	PersistDataset(name string) error
}

// JobManager defines operations for managing background jobs
type JobManager interface {
	GetJob(jobID string) (*model.Job, error)
	ListJobs(datasetName string, status *model.JobStatus) []*model.Job
}

// DatasetAccessor combines name management and scanning for a single dataset
type DatasetAccessor interface {
	NameAdder
	Scanner
	Names(offset, limit int) ([]string, int)
	LastResult() *model.MatchResult
	Stats() model.DatasetStats
	Settings() config.DatasetSettings
}
