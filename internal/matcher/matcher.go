// Package matcher implements the word-level name matching rule: two names
// match when enough of their words correspond exactly or through the synonym
// ("tradeout") index, subject to a stricter no-mismatch rule for three-word
// names.
package matcher

import (
	"github.com/gcbaptista/go-dedupe-engine/index"
)

// Matcher validates name pairs against a synonym index. It is stateless apart
// from its configuration, so a single Matcher may be shared by concurrent
// workers, and Validate is a pure function of its inputs.
type Matcher struct {
	Index *index.SynonymIndex

	// MaxWordLength is the per-word byte bound applied when splitting names.
	// Zero or negative means unbounded.
	MaxWordLength int
}

// New creates a Matcher over the given synonym index with the default word
// length bound.
func New(idx *index.SynonymIndex) *Matcher {
	return &Matcher{Index: idx, MaxWordLength: DefaultMaxWordLength}
}

// Validate reports whether two names match. Names with fewer than two words
// never match anything.
func (m *Matcher) Validate(nameA, nameB string) bool {
	return m.ValidateWords(m.Split(nameA), m.Split(nameB))
}

// Split segments a name into words under the matcher's word length bound.
func (m *Matcher) Split(name string) []string {
	return SplitWords(name, m.MaxWordLength)
}

// ValidateWords is Validate over pre-split names. The scanner splits every
// name once up front and calls this on the hot path.
//
// Acceptance rules, in order:
//  1. a three-word name with any mismatch is rejected against another name of
//     three or more words (checked in both directions);
//  2. either side with fewer than two matching words is rejected;
//  3. otherwise the pair is accepted.
func (m *Matcher) ValidateWords(wordsA, wordsB []string) bool {
	if len(wordsA) < MinEligibleWords || len(wordsB) < MinEligibleWords {
		return false
	}

	matchesA := m.countMatches(wordsA, wordsB)
	matchesB := m.countMatches(wordsB, wordsA)

	mismatchesA := len(wordsA) - matchesA
	mismatchesB := len(wordsB) - matchesB

	if len(wordsA) == 3 && mismatchesA > 0 && len(wordsB) >= 3 {
		return false
	}
	if len(wordsB) == 3 && mismatchesB > 0 && len(wordsA) >= 3 {
		return false
	}
	if matchesA < MinEligibleWords || matchesB < MinEligibleWords {
		return false
	}
	return true
}

// countMatches counts how many words of from have a counterpart in to, either
// by exact byte equality or via the tradeout index.
func (m *Matcher) countMatches(from, to []string) int {
	matches := 0
	for _, word := range from {
		if m.wordMatches(word, to) {
			matches++
		}
	}
	return matches
}

func (m *Matcher) wordMatches(word string, to []string) bool {
	for _, other := range to {
		if word == other {
			return true
		}
	}
	if m.Index == nil {
		return false
	}
	// Tradeout membership is checked in both directions so that Validate
	// stays symmetric even when the synonym mapping itself is one-sided.
	if ts, ok := m.Index.Lookup(word); ok {
		for _, other := range to {
			if ts.Contains(other) {
				return true
			}
		}
	}
	for _, other := range to {
		if ts, ok := m.Index.Lookup(other); ok && ts.Contains(word) {
			return true
		}
	}
	return false
}
