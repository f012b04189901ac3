package model

import "time"

// ScanEvent records a single completed match scan for analytics.
type ScanEvent struct {
	DatasetName      string    `json:"dataset_name"`
	NameCount        int       `json:"name_count"`
	MatchCount       int       `json:"match_count"`
	WorkerCount      int       `json:"worker_count"`
	ProcessingTimeMs float64   `json:"processing_time_ms"`
	Timestamp        time.Time `json:"timestamp"`
}

// AnalyticsDashboard aggregates scan activity for the analytics endpoint.
type AnalyticsDashboard struct {
	TotalScans          int            `json:"total_scans"`
	TotalMatches        int            `json:"total_matches"`
	AvgProcessingTimeMs float64        `json:"avg_processing_time_ms"`
	ScansByDataset      map[string]int `json:"scans_by_dataset"`
	LastUpdated         time.Time      `json:"last_updated"`
}
