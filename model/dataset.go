package model

import "time"

// DatasetStats summarizes the current state of a dataset.
type DatasetStats struct {
	Name            string     `json:"name"`
	NameCount       int        `json:"name_count"`
	EligibleNames   int        `json:"eligible_names"` // names with at least two words
	SynonymKeyCount int        `json:"synonym_key_count"`
	LastScanAt      *time.Time `json:"last_scan_at,omitempty"`
	LastMatchCount  int        `json:"last_match_count"`
}
