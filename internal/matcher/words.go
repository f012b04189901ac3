package matcher

import (
	"strings"
)

// DefaultMaxWordLength is the per-word byte bound applied during matching.
// Words longer than the bound are truncated to it before comparison; this is
// a documented approximation, not an error. The bound is configurable on
// Matcher and in the dataset settings.
const DefaultMaxWordLength = 1023

// MinEligibleWords is the minimum number of words a name needs to enter the
// scan domain. Shorter names are silently excluded, never treated as errors.
const MinEligibleWords = 2

// SplitWords segments a name into its words: maximal runs of non-space bytes.
// Each word is truncated to maxWordLength bytes. maxWordLength <= 0 means
// unbounded.
func SplitWords(name string, maxWordLength int) []string {
	words := make([]string, 0, 4)
	start := -1
	for i := 0; i < len(name); i++ {
		if name[i] == ' ' {
			if start >= 0 {
				words = append(words, truncateWord(name[start:i], maxWordLength))
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, truncateWord(name[start:], maxWordLength))
	}
	return words
}

// WordCount counts the words of a name without allocating.
func WordCount(name string) int {
	count := 0
	inWord := false
	for i := 0; i < len(name); i++ {
		if name[i] == ' ' {
			inWord = false
			continue
		}
		if !inWord {
			count++
			inWord = true
		}
	}
	return count
}

// Eligible reports whether a name has enough words to participate in matching.
func Eligible(name string) bool {
	return WordCount(name) >= MinEligibleWords
}

// FilterEligible returns the names with at least two words, preserving order.
func FilterEligible(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if Eligible(name) {
			out = append(out, name)
		}
	}
	return out
}

// CleanName lowercases a name and collapses runs of whitespace to single
// spaces, so that matching and deduplication operate on a canonical form.
func CleanName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// DedupeNames removes exact duplicates while preserving first-seen order.
// Matching treats names as values, not list positions, so duplicates would
// only produce self-pairs.
func DedupeNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

func truncateWord(word string, maxWordLength int) string {
	if maxWordLength > 0 && len(word) > maxWordLength {
		return word[:maxWordLength]
	}
	return word
}
