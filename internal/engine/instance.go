package engine

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/go-dedupe-engine/config"
	"github.com/gcbaptista/go-dedupe-engine/index"
	"github.com/gcbaptista/go-dedupe-engine/internal/matcher"
	"github.com/gcbaptista/go-dedupe-engine/internal/scanner"
	"github.com/gcbaptista/go-dedupe-engine/internal/scoring"
	"github.com/gcbaptista/go-dedupe-engine/model"
	"github.com/gcbaptista/go-dedupe-engine/services"
	"github.com/gcbaptista/go-dedupe-engine/store"
)

// DatasetInstance holds all components for a single dataset.
// It implements the services.DatasetAccessor interface.
type DatasetInstance struct {
	settings *config.DatasetSettings
	Store    *store.NameStore

	resultMu   sync.RWMutex
	lastResult *model.MatchResult
	lastScanAt *time.Time
}

// NewDatasetInstance creates and initializes a new DatasetInstance.
func NewDatasetInstance(settings config.DatasetSettings) *DatasetInstance {
	return &DatasetInstance{
		settings: &settings,
		Store:    store.NewNameStore(),
	}
}

// Settings returns a copy of the dataset's settings.
func (d *DatasetInstance) Settings() config.DatasetSettings {
	return *d.settings
}

// AddNames cleans, deduplicates, and stores the given names. It returns the
// number of names actually added (cleaning can collapse several inputs into
// one canonical form).
func (d *DatasetInstance) AddNames(names []string) (int, error) {
	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		cleaned = append(cleaned, matcher.CleanName(name))
	}
	return d.Store.AddNames(matcher.DedupeNames(cleaned)), nil
}

// ClearNames removes all names from the dataset.
func (d *DatasetInstance) ClearNames() error {
	d.Store.Clear()
	return nil
}

// SetSynonyms replaces the dataset's synonym mapping. Keys and values are
// cleaned the same way names are so tradeout lookups compare like with like.
func (d *DatasetInstance) SetSynonyms(synonyms map[string][]string) error {
	cleaned := make(map[string][]string, len(synonyms))
	for key, values := range synonyms {
		cleanedValues := make([]string, 0, len(values))
		for _, v := range values {
			cleanedValues = append(cleanedValues, matcher.CleanName(v))
		}
		cleaned[matcher.CleanName(key)] = cleanedValues
	}
	d.Store.SetSynonyms(cleaned)
	return nil
}

// Names returns a page of the dataset's names and the total count.
func (d *DatasetInstance) Names(offset, limit int) ([]string, int) {
	names, _ := d.Store.Snapshot()
	total := len(names)
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []string{}, total
	}
	end := total
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	page := make([]string, end-offset)
	copy(page, names[offset:end])
	return page, total
}

// Scan runs a full pairwise match scan over the dataset's names.
func (d *DatasetInstance) Scan(opts services.ScanOptions) (*model.MatchResult, error) {
	names, synonyms := d.Store.Snapshot()

	workerCount := d.settings.WorkerCount
	if opts.WorkerCount != nil {
		workerCount = *opts.WorkerCount
	}
	minScore := d.settings.MinScore
	if opts.MinScore != nil {
		minScore = *opts.MinScore
	}

	maxWordLength := d.settings.MaxWordLength
	if maxWordLength < 0 {
		maxWordLength = 0 // -1 in settings means unbounded
	}

	start := time.Now()
	pairs, err := scanner.FindMatchesWithOptions(names, synonyms, scanner.Options{
		WorkerCount:           workerCount,
		MaxWordLength:         maxWordLength,
		InitialBufferCapacity: d.settings.InitialBufferCapacity,
		MaxBufferCapacity:     d.settings.MaxBufferCapacity,
	})
	if err != nil {
		return nil, err
	}

	result := &model.MatchResult{
		Pairs:        pairs,
		TotalNames:   len(names),
		ScannedNames: len(matcher.FilterEligible(names)),
		WorkerCount:  scanner.ResolveWorkerCount(workerCount),
		Took:         time.Since(start).Milliseconds(),
		ScanID:       uuid.New().String(),
	}

	if minScore > 0 {
		idx, err := index.Build(synonyms)
		if err != nil {
			return nil, err
		}
		m := matcher.New(idx)
		m.MaxWordLength = maxWordLength
		result.ScoredPairs = scoring.New(m).Scrutinize(pairs, minScore)
	}

	now := time.Now()
	d.resultMu.Lock()
	d.lastResult = result
	d.lastScanAt = &now
	d.resultMu.Unlock()

	return result, nil
}

// LastResult returns the most recent scan result, or nil if the dataset has
// not been scanned yet.
func (d *DatasetInstance) LastResult() *model.MatchResult {
	d.resultMu.RLock()
	defer d.resultMu.RUnlock()
	return d.lastResult
}

// Stats summarizes the dataset's current state.
func (d *DatasetInstance) Stats() model.DatasetStats {
	names, synonyms := d.Store.Snapshot()

	stats := model.DatasetStats{
		Name:            d.settings.Name,
		NameCount:       len(names),
		EligibleNames:   len(matcher.FilterEligible(names)),
		SynonymKeyCount: len(synonyms),
	}

	d.resultMu.RLock()
	if d.lastResult != nil {
		stats.LastMatchCount = len(d.lastResult.Pairs)
		stats.LastScanAt = d.lastScanAt
	}
	d.resultMu.RUnlock()

	return stats
}
