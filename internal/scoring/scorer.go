// Package scoring grades matched name pairs so low-confidence matches can be
// filtered out after a scan. A pair starts at 100 and loses points for weak
// word matchups: tradeout (non-exact) matches, matchups built on single-letter
// initials, and matchups that cross each other's word order.
package scoring

import (
	"github.com/gcbaptista/go-dedupe-engine/internal/matcher"
	"github.com/gcbaptista/go-dedupe-engine/model"
)

// Matchup scores per kind of word correspondence.
const (
	exactMatchupScore    = 100.0
	tradeoutMatchupScore = 80.0
)

// matchup pairs a word of name A with its counterpart in name B.
type matchup struct {
	indexA int
	indexB int
	wordA  string
	wordB  string
	score  float64
}

// Scorer grades match pairs using the same matcher (and synonym index) that
// produced them.
type Scorer struct {
	Matcher *matcher.Matcher
}

// New creates a Scorer over the given matcher.
func New(m *matcher.Matcher) *Scorer {
	return &Scorer{Matcher: m}
}

// ScorePair grades a single pair from 0 to 100.
//
// Deductions, applied to a starting score of 100:
//   - only one matchup between words longer than one character: -20
//   - no matchup between words longer than one character: -40
//   - matched words appear in a different order in the two names: -7
//   - per matchup scoring in (75, 83]: -5 when the pair has at most two
//     matchups, otherwise -3
//   - per matchup scoring in (60, 75]: -9 / -5
//   - per matchup scoring at or below 60: -20 / -12
//
// The result is clamped at 0.
func (s *Scorer) ScorePair(nameA, nameB string) float64 {
	matchups := s.findMatchups(nameA, nameB)

	score := 100.0
	withoutInitials := 0
	midMatchups := 0
	badMatchups := 0
	realBadMatchups := 0
	total := len(matchups)
	maxIndexA := -1
	maxIndexB := -1
	indexViolation := false

	for _, mu := range matchups {
		if mu.indexA < maxIndexA || mu.indexB < maxIndexB {
			indexViolation = true
		}
		if len(mu.wordA) != 1 && len(mu.wordB) != 1 {
			withoutInitials++
		}
		switch {
		case mu.score > 75 && mu.score <= 83:
			midMatchups++
		case mu.score > 60 && mu.score <= 75:
			badMatchups++
		case mu.score <= 60:
			realBadMatchups++
		}
		maxIndexA = mu.indexA
		maxIndexB = mu.indexB
	}

	if withoutInitials == 1 {
		score -= 20
	}
	if withoutInitials == 0 {
		score -= 40
	}
	if indexViolation {
		score -= 7
	}

	short := total <= 2
	for i := 0; i < midMatchups; i++ {
		if short {
			score -= 5
		} else {
			score -= 3
		}
	}
	for i := 0; i < badMatchups; i++ {
		if short {
			score -= 9
		} else {
			score -= 5
		}
	}
	for i := 0; i < realBadMatchups; i++ {
		if short {
			score -= 20
		} else {
			score -= 12
		}
	}

	if score < 0 {
		return 0
	}
	return score
}

// Scrutinize grades every pair and keeps the ones at or above threshold.
func (s *Scorer) Scrutinize(pairs []model.MatchPair, threshold float64) []model.ScoredPair {
	out := make([]model.ScoredPair, 0, len(pairs))
	for _, pair := range pairs {
		score := s.ScorePair(pair.NameA, pair.NameB)
		if score < threshold {
			continue
		}
		out = append(out, model.ScoredPair{NameA: pair.NameA, NameB: pair.NameB, Score: score})
	}
	return out
}

// findMatchups walks A's words in order and greedily pairs each with the
// first unused counterpart in B: exact equality first, then a tradeout in
// either direction.
func (s *Scorer) findMatchups(nameA, nameB string) []matchup {
	wordsA := s.Matcher.Split(nameA)
	wordsB := s.Matcher.Split(nameB)
	used := make([]bool, len(wordsB))
	matchups := make([]matchup, 0, len(wordsA))

	for i, wordA := range wordsA {
		j, score := s.findCounterpart(wordA, wordsB, used)
		if j < 0 {
			continue
		}
		used[j] = true
		matchups = append(matchups, matchup{
			indexA: i,
			indexB: j,
			wordA:  wordA,
			wordB:  wordsB[j],
			score:  score,
		})
	}
	return matchups
}

func (s *Scorer) findCounterpart(wordA string, wordsB []string, used []bool) (int, float64) {
	for j, wordB := range wordsB {
		if !used[j] && wordA == wordB {
			return j, exactMatchupScore
		}
	}
	idx := s.Matcher.Index
	if idx == nil {
		return -1, 0
	}
	ts, hasSet := idx.Lookup(wordA)
	for j, wordB := range wordsB {
		if used[j] {
			continue
		}
		if hasSet && ts.Contains(wordB) {
			return j, tradeoutMatchupScore
		}
		if other, ok := idx.Lookup(wordB); ok && other.Contains(wordA) {
			return j, tradeoutMatchupScore
		}
	}
	return -1, 0
}
