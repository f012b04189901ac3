package store

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sync"
)

// NameStore holds a dataset's candidate names and its synonym mapping. Names
// are stored in first-seen order with exact duplicates rejected, so the scan
// domain is a set of name values rather than list positions.
type NameStore struct {
	Mu       sync.RWMutex
	Names    []string
	NameSet  map[string]struct{}
	Synonyms map[string][]string
}

// NewNameStore creates an empty NameStore.
func NewNameStore() *NameStore {
	return &NameStore{
		Names:    make([]string, 0),
		NameSet:  make(map[string]struct{}),
		Synonyms: make(map[string][]string),
	}
}

// AddNames appends the given names, skipping exact duplicates (both against
// the store and within the batch). It returns the number actually added.
func (ns *NameStore) AddNames(names []string) int {
	ns.Mu.Lock()
	defer ns.Mu.Unlock()

	if ns.NameSet == nil {
		ns.NameSet = make(map[string]struct{})
	}
	added := 0
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, dup := ns.NameSet[name]; dup {
			continue
		}
		ns.NameSet[name] = struct{}{}
		ns.Names = append(ns.Names, name)
		added++
	}
	return added
}

// SetSynonyms replaces the dataset's synonym mapping.
func (ns *NameStore) SetSynonyms(synonyms map[string][]string) {
	ns.Mu.Lock()
	defer ns.Mu.Unlock()

	ns.Synonyms = make(map[string][]string, len(synonyms))
	for key, values := range synonyms {
		copied := make([]string, len(values))
		copy(copied, values)
		ns.Synonyms[key] = copied
	}
}

// Snapshot returns copies of the names and synonyms so a scan can run without
// holding the store's lock.
func (ns *NameStore) Snapshot() ([]string, map[string][]string) {
	ns.Mu.RLock()
	defer ns.Mu.RUnlock()

	names := make([]string, len(ns.Names))
	copy(names, ns.Names)

	synonyms := make(map[string][]string, len(ns.Synonyms))
	for key, values := range ns.Synonyms {
		copied := make([]string, len(values))
		copy(copied, values)
		synonyms[key] = copied
	}
	return names, synonyms
}

// Clear removes all names; the synonym mapping is kept.
func (ns *NameStore) Clear() {
	ns.Mu.Lock()
	defer ns.Mu.Unlock()

	ns.Names = make([]string, 0)
	ns.NameSet = make(map[string]struct{})
}

// Counts returns the number of names and synonym keys.
func (ns *NameStore) Counts() (names int, synonymKeys int) {
	ns.Mu.RLock()
	defer ns.Mu.RUnlock()
	return len(ns.Names), len(ns.Synonyms)
}

// gobNameStoreData is a helper struct for Gob encoding/decoding NameStore
// data. It excludes the mutex.
type gobNameStoreData struct {
	Names    []string
	Synonyms map[string][]string
}

// GobEncode implements the gob.GobEncoder interface for NameStore.
func (ns *NameStore) GobEncode() ([]byte, error) {
	ns.Mu.RLock()
	defer ns.Mu.RUnlock()

	dataToEncode := gobNameStoreData{
		Names:    ns.Names,
		Synonyms: ns.Synonyms,
	}

	var buf bytes.Buffer
	encoder := gob.NewEncoder(&buf)
	if err := encoder.Encode(dataToEncode); err != nil {
		return nil, fmt.Errorf("failed to gob encode name store data: %w", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface for NameStore.
func (ns *NameStore) GobDecode(data []byte) error {
	decodedData := gobNameStoreData{}

	buf := bytes.NewBuffer(data)
	decoder := gob.NewDecoder(buf)
	if err := decoder.Decode(&decodedData); err != nil {
		return fmt.Errorf("failed to gob decode name store data: %w", err)
	}

	ns.Mu.Lock()
	defer ns.Mu.Unlock()

	ns.Names = decodedData.Names
	ns.Synonyms = decodedData.Synonyms

	if ns.Names == nil {
		ns.Names = make([]string, 0)
	}
	if ns.Synonyms == nil {
		ns.Synonyms = make(map[string][]string)
	}

	// The membership set is derived state; rebuild it after decoding.
	ns.NameSet = make(map[string]struct{}, len(ns.Names))
	for _, name := range ns.Names {
		ns.NameSet[name] = struct{}{}
	}
	return nil
}
