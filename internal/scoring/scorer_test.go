package scoring

import (
	"testing"

	"github.com/gcbaptista/go-dedupe-engine/index"
	"github.com/gcbaptista/go-dedupe-engine/internal/matcher"
	"github.com/gcbaptista/go-dedupe-engine/model"
)

func newScorer(t *testing.T, synonyms map[string][]string) *Scorer {
	t.Helper()
	idx, err := index.Build(synonyms)
	if err != nil {
		t.Fatalf("index.Build failed: %v", err)
	}
	return New(matcher.New(idx))
}

func TestScorePair(t *testing.T) {
	s := newScorer(t, map[string][]string{"bob": {"robert"}})

	tests := []struct {
		name  string
		nameA string
		nameB string
		want  float64
	}{
		{
			// Two exact matchups between multi-letter words: no deductions.
			name:  "identical names",
			nameA: "bob smith",
			nameB: "bob smith",
			want:  100,
		},
		{
			// One tradeout matchup (80, mid bucket, total <= 2): -5.
			name:  "tradeout substitution",
			nameA: "bob smith",
			nameB: "robert smith",
			want:  95,
		},
		{
			// One matchup involves a single-letter word on both sides, so only
			// one matchup is between multi-letter words: -20.
			name:  "initial in both names",
			nameA: "j smith",
			nameB: "j smith",
			want:  80,
		},
		{
			// Matched words cross: smith before jones in A, after in B: -7.
			name:  "index violation",
			nameA: "smith jones",
			nameB: "jones smith",
			want:  93,
		},
		{
			// No matchups at all: zero multi-letter matchups costs -40.
			name:  "unrelated names",
			nameA: "alice white",
			nameB: "carol moore",
			want:  60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.ScorePair(tt.nameA, tt.nameB); got != tt.want {
				t.Errorf("ScorePair(%q, %q) = %v, want %v", tt.nameA, tt.nameB, got, tt.want)
			}
		})
	}
}

func TestScorePairClampedAtZero(t *testing.T) {
	s := newScorer(t, nil)
	// Single-letter words only: every matchup involves initials (-40) and the
	// crossing order costs another -7; the score must not go negative.
	if got := s.ScorePair("a b", "b a"); got != 53 {
		t.Errorf("ScorePair = %v, want 53", got)
	}
	if got := s.ScorePair("x y", "p q"); got < 0 {
		t.Errorf("score must be clamped at zero, got %v", got)
	}
}

func TestScrutinize(t *testing.T) {
	s := newScorer(t, map[string][]string{"bob": {"robert"}})

	pairs := []model.MatchPair{
		{NameA: "bob smith", NameB: "bob smith"},      // 100
		{NameA: "bob smith", NameB: "robert smith"},   // 95
		{NameA: "j smith", NameB: "j smith"},          // 80
	}

	scored := s.Scrutinize(pairs, 90)
	if len(scored) != 2 {
		t.Fatalf("expected 2 pairs at or above threshold 90, got %d (%v)", len(scored), scored)
	}
	if scored[0].Score != 100 || scored[1].Score != 95 {
		t.Errorf("unexpected scores: %v", scored)
	}

	// Threshold 0 keeps everything.
	scored = s.Scrutinize(pairs, 0)
	if len(scored) != len(pairs) {
		t.Errorf("threshold 0 should keep all pairs, got %d of %d", len(scored), len(pairs))
	}
}
