package matcher

import (
	"strings"
	"testing"

	"github.com/gcbaptista/go-dedupe-engine/index"
)

func buildIndex(t *testing.T, synonyms map[string][]string) *index.SynonymIndex {
	t.Helper()
	idx, err := index.Build(synonyms)
	if err != nil {
		t.Fatalf("index.Build failed: %v", err)
	}
	return idx
}

func TestValidate(t *testing.T) {
	idx := buildIndex(t, map[string][]string{
		"bob":  {"robert"},
		"bill": {"william"},
		"j":    {},
	})
	m := New(idx)

	tests := []struct {
		name  string
		nameA string
		nameB string
		want  bool
	}{
		{"exact equality", "bob smith", "bob smith", true},
		{"tradeout substitution", "bob smith", "robert smith", true},
		{"tradeout reversed direction", "robert smith", "bob smith", true},
		{"single word never matches", "smith", "smith", false},
		{"single word vs multi word", "smith", "bob smith", false},
		{"empty names", "", "", false},
		{"unrelated names", "bob smith", "carol white", false},
		{"three words with mismatch vs three words", "alice b smith", "alice smith jones", false},
		{"three words exact", "alice b smith", "alice b smith", true},
		{"three words all matched vs three words", "bob alan smith", "robert alan smith", true},
		{"three words vs two words with two matches", "alice b smith", "alice smith", true},
		{"two-match floor on short side", "alice bob carol dave", "alice white", false},
		{"four words vs four words with two mismatches each", "a1 b1 common1 common2", "a2 b2 common1 common2", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Validate(tt.nameA, tt.nameB); got != tt.want {
				t.Errorf("Validate(%q, %q) = %v, want %v", tt.nameA, tt.nameB, got, tt.want)
			}
		})
	}
}

// Validate must be symmetric for every pair, including pairs whose only link
// is a one-directional synonym entry.
func TestValidateSymmetry(t *testing.T) {
	idx := buildIndex(t, map[string][]string{
		"bob": {"robert"},
	})
	m := New(idx)

	names := []string{
		"bob smith",
		"robert smith",
		"alice b smith",
		"alice smith jones",
		"bob",
		"carol white moore",
		"bob smith carol white",
	}

	for _, a := range names {
		for _, b := range names {
			if m.Validate(a, b) != m.Validate(b, a) {
				t.Errorf("Validate is not symmetric for (%q, %q)", a, b)
			}
		}
	}
}

func TestValidateSingleLetterInitials(t *testing.T) {
	// Single-character synonym keys self-match through their tradeout set.
	idx := buildIndex(t, map[string][]string{"j": {}})
	m := New(idx)

	if !m.Validate("j smith", "j smith") {
		t.Error("identical names with initials should match")
	}
}

func TestValidateTruncatedWordsCompareEqual(t *testing.T) {
	idx := buildIndex(t, nil)
	m := New(idx)
	m.MaxWordLength = 8

	// Both words share the first 8 bytes; under the bound they compare equal.
	a := "smith " + strings.Repeat("x", 8) + "aaa"
	b := "smith " + strings.Repeat("x", 8) + "bbb"
	if !m.Validate(a, b) {
		t.Error("words identical up to the length bound should compare equal after truncation")
	}

	m.MaxWordLength = 0
	if m.Validate(a, b) {
		t.Error("unbounded words that differ should not compare equal")
	}
}

func TestValidateNilIndex(t *testing.T) {
	m := New(nil)
	if !m.Validate("bob smith", "bob smith") {
		t.Error("exact matches must not require a synonym index")
	}
	if m.Validate("bob smith", "robert smith") {
		t.Error("tradeout matches require a synonym index")
	}
}
