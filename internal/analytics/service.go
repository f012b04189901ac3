// Package analytics tracks completed match scans and aggregates them for the
// analytics endpoint.
package analytics

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gcbaptista/go-dedupe-engine/model"
)

const (
	analyticsFileName = "analytics.json"
	maxEventsToKeep   = 10000 // Keep last 10k events for performance
)

// Service implements scan analytics tracking and reporting
type Service struct {
	mutex        sync.RWMutex
	events       []model.ScanEvent
	dataFilePath string
}

// NewService creates a new analytics service persisting under dataDir
func NewService(dataDir string) *Service {
	service := &Service{
		events:       make([]model.ScanEvent, 0),
		dataFilePath: filepath.Join(dataDir, analyticsFileName),
	}

	if err := service.loadData(); err != nil {
		log.Printf("Warning: Failed to load analytics data: %v", err)
	}

	return service
}

// TrackScanEvent records a completed scan
func (s *Service) TrackScanEvent(event model.ScanEvent) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	event.Timestamp = time.Now()
	s.events = append(s.events, event)

	// Keep only the latest events to prevent unbounded growth
	if len(s.events) > maxEventsToKeep {
		s.events = s.events[len(s.events)-maxEventsToKeep:]
	}

	// Persist data asynchronously
	go func() {
		if err := s.saveData(); err != nil {
			log.Printf("Warning: Failed to save analytics data: %v", err)
		}
	}()
}

// GetDashboardData aggregates all tracked scans
func (s *Service) GetDashboardData() model.AnalyticsDashboard {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	dashboard := model.AnalyticsDashboard{
		TotalScans:     len(s.events),
		ScansByDataset: make(map[string]int),
		LastUpdated:    time.Now(),
	}

	var totalTime float64
	for _, event := range s.events {
		dashboard.TotalMatches += event.MatchCount
		dashboard.ScansByDataset[event.DatasetName]++
		totalTime += event.ProcessingTimeMs
	}
	if len(s.events) > 0 {
		dashboard.AvgProcessingTimeMs = totalTime / float64(len(s.events))
	}

	return dashboard
}

func (s *Service) saveData() error {
	s.mutex.RLock()
	data, err := json.Marshal(s.events)
	s.mutex.RUnlock()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.dataFilePath), 0750); err != nil {
		return err
	}
	return os.WriteFile(s.dataFilePath, data, 0600)
}

func (s *Service) loadData() error {
	data, err := os.ReadFile(s.dataFilePath) // #nosec G304 -- path is derived from the configured data directory
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Fresh start
		}
		return err
	}
	return json.Unmarshal(data, &s.events)
}
