// Package index provides the read-only synonym lookup structure shared by all
// scan workers. The table is an open-addressing hash map from a word to its
// tradeout set (the words considered interchangeable with it). It is built once
// before a scan and never mutated afterwards, so concurrent lookups from any
// number of goroutines are safe without locking.
package index

import (
	"fmt"
)

// Hash parameters for the classic djb2 string hash.
const (
	hashSeed       = 5381
	hashMultiplier = 33
)

// TradeoutSet holds the words interchangeable with a given key word.
// Sets are expected to be small, so membership is a linear scan.
type TradeoutSet struct {
	words []string
}

// Contains reports whether word is a member of the set.
func (ts TradeoutSet) Contains(word string) bool {
	for _, w := range ts.words {
		if w == word {
			return true
		}
	}
	return false
}

// Len returns the number of words in the set.
func (ts TradeoutSet) Len() int {
	return len(ts.words)
}

// Words returns a copy of the set's contents.
func (ts TradeoutSet) Words() []string {
	out := make([]string, len(ts.words))
	copy(out, ts.words)
	return out
}

type slot struct {
	used      bool
	key       string
	tradeouts TradeoutSet
}

// SynonymIndex is an immutable open-addressing hash table from a word to its
// tradeout set. Collisions are resolved with linear probing; the table is
// sized to twice the number of keys so probe sequences stay short.
type SynonymIndex struct {
	slots []slot
	keys  int
}

// Build constructs a SynonymIndex from a word-to-tradeouts mapping.
//
// Each tradeout set is allocated with room for the supplied synonyms plus one
// extra entry: keys that are exactly one character long (initials) get the key
// itself added as a self-match. Entries beyond that fixed capacity are dropped
// rather than grown.
func Build(wordToTradeouts map[string][]string) (*SynonymIndex, error) {
	capacity := 2 * len(wordToTradeouts)
	idx := &SynonymIndex{
		slots: make([]slot, capacity),
		keys:  len(wordToTradeouts),
	}

	for key, synonyms := range wordToTradeouts {
		words := make([]string, 0, len(synonyms)+1)
		for _, syn := range synonyms {
			if len(words) == cap(words) {
				break // fixed capacity, never reallocated
			}
			words = append(words, syn)
		}
		if len(key) == 1 && len(words) < cap(words) {
			words = append(words, key)
		}
		if err := idx.insert(key, TradeoutSet{words: words}); err != nil {
			return nil, err
		}
	}
	return idx, nil
}

// insert places a key during construction using the same hash/probe sequence
// as Lookup. The table is sized at a 0.5 load factor so a full cycle can only
// mean construction was given corrupted sizing; it is reported, not looped on.
func (idx *SynonymIndex) insert(key string, ts TradeoutSet) error {
	if len(idx.slots) == 0 {
		return fmt.Errorf("synonym index has no capacity for key %q", key)
	}
	start := idx.probeStart(key)
	i := start
	for {
		if !idx.slots[i].used {
			idx.slots[i] = slot{used: true, key: key, tradeouts: ts}
			return nil
		}
		if idx.slots[i].key == key {
			idx.slots[i].tradeouts = ts
			return nil
		}
		i++
		if i == len(idx.slots) {
			i = 0
		}
		if i == start {
			return fmt.Errorf("synonym index table saturated while inserting key %q", key)
		}
	}
}

// Lookup returns the tradeout set for word, if word is a key in the index.
// The probe sequence is bounded: if it wraps back to its start index the word
// is reported as absent rather than probing forever.
func (idx *SynonymIndex) Lookup(word string) (TradeoutSet, bool) {
	if len(idx.slots) == 0 {
		return TradeoutSet{}, false
	}
	start := idx.probeStart(word)
	i := start
	for {
		if !idx.slots[i].used {
			return TradeoutSet{}, false
		}
		if idx.slots[i].key == word {
			return idx.slots[i].tradeouts, true
		}
		i++
		if i == len(idx.slots) {
			i = 0
		}
		if i == start {
			return TradeoutSet{}, false
		}
	}
}

// Keys returns the number of keys the index was built with.
func (idx *SynonymIndex) Keys() int {
	return idx.keys
}

func (idx *SynonymIndex) probeStart(word string) int {
	h := uint64(hashSeed)
	for i := 0; i < len(word); i++ {
		h = h*hashMultiplier + uint64(word[i])
	}
	return int(h % uint64(len(idx.slots)))
}
