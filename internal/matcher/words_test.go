package matcher

import (
	"reflect"
	"strings"
	"testing"
)

func TestSplitWords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty string", "", []string{}},
		{"single word", "smith", []string{"smith"}},
		{"two words", "bob smith", []string{"bob", "smith"}},
		{"leading/trailing spaces", "  bob smith  ", []string{"bob", "smith"}},
		{"multiple spaces between words", "bob   smith", []string{"bob", "smith"}},
		{"only spaces", "   ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitWords(tt.input, DefaultMaxWordLength)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitWords(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitWordsTruncation(t *testing.T) {
	long := strings.Repeat("a", 2000)
	words := SplitWords("bob "+long, 1023)
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}
	if len(words[1]) != 1023 {
		t.Errorf("expected long word truncated to 1023 bytes, got %d", len(words[1]))
	}

	// Unbounded when the limit is zero.
	words = SplitWords(long, 0)
	if len(words[0]) != 2000 {
		t.Errorf("expected unbounded word to keep its full length, got %d", len(words[0]))
	}
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"   ", 0},
		{"smith", 1},
		{"bob smith", 2},
		{"  bob   smith  jones ", 3},
	}

	for _, tt := range tests {
		if got := WordCount(tt.input); got != tt.want {
			t.Errorf("WordCount(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestFilterEligible(t *testing.T) {
	names := []string{"bob smith", "cher", "", "alice b smith", "  x  "}
	got := FilterEligible(names)
	want := []string{"bob smith", "alice b smith"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FilterEligible(%v) = %v, want %v", names, got, want)
	}
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Bob Smith", "bob smith"},
		{"  BOB   SMITH ", "bob smith"},
		{"bob\tsmith", "bob smith"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := CleanName(tt.input); got != tt.want {
			t.Errorf("CleanName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDedupeNames(t *testing.T) {
	names := []string{"bob smith", "alice jones", "bob smith", "carol white", "alice jones"}
	got := DedupeNames(names)
	want := []string{"bob smith", "alice jones", "carol white"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DedupeNames(%v) = %v, want %v", names, got, want)
	}
}
