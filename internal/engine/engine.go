package engine

import (
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/gcbaptista/go-dedupe-engine/config"
	"github.com/gcbaptista/go-dedupe-engine/internal/errors"
	"github.com/gcbaptista/go-dedupe-engine/internal/jobs"
	"github.com/gcbaptista/go-dedupe-engine/internal/persistence"
	"github.com/gcbaptista/go-dedupe-engine/model"
	"github.com/gcbaptista/go-dedupe-engine/services"
	"github.com/gcbaptista/go-dedupe-engine/store"
)

const (
	dataDirPerm   = 0755
	settingsFile  = "settings.gob"
	nameStoreFile = "name_store.gob"

	maxConcurrentJobs = 4
)

// Engine manages multiple datasets.
// It implements the services.DatasetManager interface.
type Engine struct {
	mu         sync.RWMutex
	datasets   map[string]*DatasetInstance
	dataDir    string
	jobManager *jobs.Manager
}

// NewEngine creates a new dedupe engine orchestrator.
func NewEngine(dataDir string) *Engine {
	eng := &Engine{
		datasets:   make(map[string]*DatasetInstance),
		dataDir:    dataDir,
		jobManager: jobs.NewManager(maxConcurrentJobs),
	}
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		log.Printf("Warning: Could not create data directory %s: %v. Proceeding without persistence for new datasets if loading fails.", dataDir, err)
	}
	eng.loadDatasetsFromDisk()
	eng.jobManager.Start()
	return eng
}

// Stop gracefully shuts down the engine's background workers.
func (e *Engine) Stop() {
	e.jobManager.Stop()
}

func (e *Engine) loadDatasetsFromDisk() {
	log.Printf("Loading datasets from disk: %s", e.dataDir)
	items, err := os.ReadDir(e.dataDir)
	if err != nil {
		log.Printf("Warning: Failed to read data directory %s: %v. No datasets loaded.", e.dataDir, err)
		return
	}

	for _, item := range items {
		if !item.IsDir() {
			continue
		}
		datasetName := item.Name()
		datasetPath := filepath.Join(e.dataDir, datasetName)
		log.Printf("Attempting to load dataset: %s", datasetName)

		var settings config.DatasetSettings
		settingsPath := filepath.Join(datasetPath, settingsFile)
		if err := persistence.LoadGob(settingsPath, &settings); err != nil {
			log.Printf("Warning: Failed to load settings for dataset %s from %s: %v. Skipping this dataset.", datasetName, settingsPath, err)
			continue
		}

		// Basic validation, settings name should match directory name
		if settings.Name != datasetName {
			log.Printf("Warning: Dataset name in settings ('%s') does not match directory name ('%s') for path %s. Skipping this dataset.", settings.Name, datasetName, datasetPath)
			continue
		}
		settings.ApplyDefaults()

		instance := NewDatasetInstance(settings)
		nsPath := filepath.Join(datasetPath, nameStoreFile)
		if err := persistence.LoadGob(nsPath, instance.Store); err != nil && err != os.ErrNotExist {
			log.Printf("Warning: Failed to load name store for dataset %s from %s: %v. Proceeding with empty store.", datasetName, nsPath, err)
			instance.Store = store.NewNameStore()
		} else if err == os.ErrNotExist {
			log.Printf("Info: Name store file %s not found for dataset %s. Initializing empty store.", nsPath, datasetName)
		}

		e.datasets[datasetName] = instance
		log.Printf("Successfully loaded dataset: %s", datasetName)
	}
}

// CreateDataset creates a new dataset with the given settings and persists it.
func (e *Engine) CreateDataset(settings config.DatasetSettings) error {
	if conflicts := settings.Validate(); len(conflicts) > 0 {
		return errors.NewValidationError("settings", conflicts[0])
	}
	settings.ApplyDefaults()

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.datasets[settings.Name]; exists {
		return errors.NewDatasetAlreadyExistsError(settings.Name)
	}

	instance := NewDatasetInstance(settings)
	if err := e.persistDatasetUnsafe(settings.Name, instance); err != nil {
		return err
	}

	e.datasets[settings.Name] = instance
	log.Printf("Dataset '%s' created and persisted.", settings.Name)
	return nil
}

// GetDataset returns the accessor for a dataset.
func (e *Engine) GetDataset(name string) (services.DatasetAccessor, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	instance, exists := e.datasets[name]
	if !exists {
		return nil, errors.NewDatasetNotFoundError(name)
	}
	return instance, nil
}

// GetDatasetSettings returns a copy of a dataset's settings.
func (e *Engine) GetDatasetSettings(name string) (config.DatasetSettings, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	instance, exists := e.datasets[name]
	if !exists {
		return config.DatasetSettings{}, errors.NewDatasetNotFoundError(name)
	}
	return instance.Settings(), nil
}

// DeleteDataset removes a dataset from memory and disk.
func (e *Engine) DeleteDataset(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.datasets[name]; !exists {
		return errors.NewDatasetNotFoundError(name)
	}

	delete(e.datasets, name)

	datasetPath := filepath.Join(e.dataDir, name)
	if err := os.RemoveAll(datasetPath); err != nil {
		return err
	}

	log.Printf("Dataset '%s' deleted.", name)
	return nil
}

// ListDatasets returns the names of all datasets.
func (e *Engine) ListDatasets() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.datasets))
	for name := range e.datasets {
		names = append(names, name)
	}
	return names
}

// PersistDataset writes a dataset's settings and name store to disk.
func (e *Engine) PersistDataset(name string) error {
	e.mu.RLock()
	instance, exists := e.datasets[name]
	e.mu.RUnlock()

	if !exists {
		return errors.NewDatasetNotFoundError(name)
	}
	return e.persistDatasetUnsafe(name, instance)
}

func (e *Engine) persistDatasetUnsafe(name string, instance *DatasetInstance) error {
	datasetPath := filepath.Join(e.dataDir, name)

	settings := instance.Settings()
	if err := persistence.SaveGob(filepath.Join(datasetPath, settingsFile), &settings); err != nil {
		return err
	}
	return persistence.SaveGob(filepath.Join(datasetPath, nameStoreFile), instance.Store)
}

// GetJob retrieves a background job by ID.
func (e *Engine) GetJob(jobID string) (*model.Job, error) {
	return e.jobManager.GetJob(jobID)
}

// ListJobs returns all jobs for a dataset, optionally filtered by status.
func (e *Engine) ListJobs(datasetName string, status *model.JobStatus) []*model.Job {
	return e.jobManager.ListJobs(datasetName, status)
}

// GetJobMetrics returns job performance metrics.
func (e *Engine) GetJobMetrics() jobs.JobMetricsData {
	return e.jobManager.GetMetrics()
}

// GetJobSuccessRate returns the percentage of finished jobs that completed
// successfully.
func (e *Engine) GetJobSuccessRate() float64 {
	return e.jobManager.GetJobSuccessRate()
}

// GetCurrentWorkload returns the number of pending and running jobs.
func (e *Engine) GetCurrentWorkload() int64 {
	return e.jobManager.GetCurrentWorkload()
}
