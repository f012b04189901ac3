package model

// MatchPair is an unordered pair of distinct names judged equivalent by the
// matching rule. NameA is the name encountered at the lower scan index; each
// unordered pair is reported exactly once.
type MatchPair struct {
	NameA string `json:"name_a"`
	NameB string `json:"name_b"`
}

// ScoredPair is a match pair annotated with its scrutiny score (0-100).
type ScoredPair struct {
	NameA string  `json:"name_a"`
	NameB string  `json:"name_b"`
	Score float64 `json:"score"`
}

// MatchResult is the outcome of one pairwise scan over a dataset.
type MatchResult struct {
	Pairs        []MatchPair  `json:"pairs"`
	ScoredPairs  []ScoredPair `json:"scored_pairs,omitempty"` // populated when a scrutiny threshold was applied
	TotalNames   int          `json:"total_names"`            // names submitted to the scan
	ScannedNames int          `json:"scanned_names"`          // names in the scan domain (>= 2 words, deduplicated)
	WorkerCount  int          `json:"worker_count"`           // effective worker count used
	Took         int64        `json:"took"`                   // milliseconds
	ScanID       string       `json:"scan_id"`                // unique UUID for this scan
}
