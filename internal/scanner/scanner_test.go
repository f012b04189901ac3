package scanner

import (
	"errors"
	"fmt"
	"runtime"
	"testing"

	enginerrors "github.com/gcbaptista/go-dedupe-engine/internal/errors"
	"github.com/gcbaptista/go-dedupe-engine/model"
)

func pairSet(t *testing.T, pairs []model.MatchPair) map[[2]string]struct{} {
	t.Helper()
	set := make(map[[2]string]struct{}, len(pairs))
	for _, p := range pairs {
		key := [2]string{p.NameA, p.NameB}
		if _, dup := set[key]; dup {
			t.Errorf("pair (%q, %q) reported more than once", p.NameA, p.NameB)
		}
		set[key] = struct{}{}
	}
	return set
}

func TestFindMatchesBasic(t *testing.T) {
	names := []string{
		"bob smith",
		"robert smith",
		"alice jones",
		"alice jones",   // duplicate, must not produce a self-pair
		"cher",          // single word, excluded from the scan domain
		"carol white",   // matches nothing
		"bob smith jr",  // shares two words with "bob smith"
	}
	synonyms := map[string][]string{"bob": {"robert"}}

	matches, err := FindMatches(names, synonyms, 2)
	if err != nil {
		t.Fatalf("FindMatches failed: %v", err)
	}

	got := pairSet(t, matches)
	want := map[[2]string]struct{}{
		{"bob smith", "robert smith"}:    {},
		{"bob smith", "bob smith jr"}:    {},
		{"robert smith", "bob smith jr"}: {},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d pairs (%v), want %d", len(got), matches, len(want))
	}
	for key := range want {
		if _, ok := got[key]; ok {
			continue
		}
		// The scan enumerates unordered pairs; accept either orientation.
		if _, ok := got[[2]string{key[1], key[0]}]; !ok {
			t.Errorf("missing expected pair (%q, %q)", key[0], key[1])
		}
	}

	for key := range got {
		if key[0] == key[1] {
			t.Errorf("scan reported a name paired with itself: %q", key[0])
		}
	}
}

// The result is a set: the same input must yield the same pairs regardless of
// worker count or scheduling.
func TestFindMatchesDeterministicAcrossWorkerCounts(t *testing.T) {
	names := make([]string, 0, 200)
	for i := 0; i < 100; i++ {
		names = append(names, fmt.Sprintf("person%02d smith", i%20))
		names = append(names, fmt.Sprintf("person%02d jones extra%d", i%20, i%3))
	}
	synonyms := map[string][]string{
		"person00": {"person01"},
		"smith":    {"jones"},
	}

	var reference map[[2]string]struct{}
	for _, workers := range []int{1, 2, 0} {
		matches, err := FindMatches(names, synonyms, workers)
		if err != nil {
			t.Fatalf("FindMatches with %d workers failed: %v", workers, err)
		}
		set := make(map[[2]string]struct{}, len(matches))
		for _, p := range matches {
			a, b := p.NameA, p.NameB
			if b < a {
				a, b = b, a
			}
			set[[2]string{a, b}] = struct{}{}
		}
		if reference == nil {
			reference = set
			continue
		}
		if len(set) != len(reference) {
			t.Fatalf("worker count %d produced %d unique pairs, reference has %d", workers, len(set), len(reference))
		}
		for key := range reference {
			if _, ok := set[key]; !ok {
				t.Errorf("worker count %d missing pair (%q, %q)", workers, key[0], key[1])
			}
		}
	}
}

func TestFindMatchesSmallDomains(t *testing.T) {
	// Fewer than two eligible names means nothing to scan.
	matches, err := FindMatches([]string{"bob smith", "cher", "x"}, nil, 1)
	if err != nil {
		t.Fatalf("FindMatches failed: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches for a one-name domain, got %v", matches)
	}

	matches, err = FindMatches(nil, nil, 1)
	if err != nil {
		t.Fatalf("FindMatches on nil input failed: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches for empty input, got %v", matches)
	}
}

func TestFindMatchesBufferGrowth(t *testing.T) {
	// Many mutually matching names with a tiny initial buffer forces several
	// doublings.
	names := make([]string, 30)
	for i := range names {
		names[i] = fmt.Sprintf("common shared extra name%02d", i)
	}
	// Every pair shares three words out of four, so all pairs match.
	matches, err := FindMatchesWithOptions(names, nil, Options{
		WorkerCount:           2,
		InitialBufferCapacity: 1,
	})
	if err != nil {
		t.Fatalf("FindMatchesWithOptions failed: %v", err)
	}
	want := len(names) * (len(names) - 1) / 2
	if len(matches) != want {
		t.Errorf("got %d matches, want %d", len(matches), want)
	}
}

// Forcing the buffer cap exercises the cross-worker failure path: the scan
// must abort as a whole and report exactly one error, never partial results.
func TestFindMatchesBufferCapacityFailure(t *testing.T) {
	names := make([]string, 40)
	for i := range names {
		names[i] = fmt.Sprintf("common shared extra name%02d", i)
	}

	matches, err := FindMatchesWithOptions(names, nil, Options{
		WorkerCount:           4,
		InitialBufferCapacity: 1,
		MaxBufferCapacity:     2,
	})
	if err == nil {
		t.Fatal("expected a buffer capacity error, got none")
	}
	if !errors.Is(err, enginerrors.ErrBufferCapacity) {
		t.Errorf("expected ErrBufferCapacity, got %v", err)
	}
	if matches != nil {
		t.Errorf("a failed scan must not return partial results, got %d pairs", len(matches))
	}
}

func TestResolveWorkerCount(t *testing.T) {
	cpus := runtime.NumCPU()

	if got := ResolveWorkerCount(0); got != cpus {
		t.Errorf("ResolveWorkerCount(0) = %d, want %d", got, cpus)
	}
	if got := ResolveWorkerCount(3); got != 3 {
		t.Errorf("ResolveWorkerCount(3) = %d, want 3", got)
	}

	got := ResolveWorkerCount(-1)
	if cpus > 1 && got != cpus-1 {
		t.Errorf("ResolveWorkerCount(-1) = %d, want %d", got, cpus-1)
	}
	if cpus == 1 && got != 1 {
		t.Errorf("ResolveWorkerCount(-1) = %d, want 1 on a single-CPU machine", got)
	}
}
