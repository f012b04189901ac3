package store

import (
	"bytes"
	"encoding/gob"
	"testing"
)

func TestAddNamesRejectsDuplicates(t *testing.T) {
	ns := NewNameStore()

	added := ns.AddNames([]string{"bob smith", "alice jones", "bob smith", ""})
	if added != 2 {
		t.Errorf("expected 2 names added, got %d", added)
	}

	added = ns.AddNames([]string{"alice jones", "carol white"})
	if added != 1 {
		t.Errorf("expected 1 name added on second batch, got %d", added)
	}

	names, _ := ns.Snapshot()
	want := []string{"bob smith", "alice jones", "carol white"}
	if len(names) != len(want) {
		t.Fatalf("got %d names, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q (first-seen order must be preserved)", i, names[i], want[i])
		}
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	ns := NewNameStore()
	ns.AddNames([]string{"bob smith"})
	ns.SetSynonyms(map[string][]string{"bob": {"robert"}})

	names, synonyms := ns.Snapshot()
	names[0] = "mutated"
	synonyms["bob"][0] = "mutated"

	fresh, freshSynonyms := ns.Snapshot()
	if fresh[0] != "bob smith" {
		t.Error("mutating a snapshot must not affect the store's names")
	}
	if freshSynonyms["bob"][0] != "robert" {
		t.Error("mutating a snapshot must not affect the store's synonyms")
	}
}

func TestClearKeepsSynonyms(t *testing.T) {
	ns := NewNameStore()
	ns.AddNames([]string{"bob smith"})
	ns.SetSynonyms(map[string][]string{"bob": {"robert"}})

	ns.Clear()

	nameCount, synonymKeys := ns.Counts()
	if nameCount != 0 {
		t.Errorf("expected 0 names after Clear, got %d", nameCount)
	}
	if synonymKeys != 1 {
		t.Errorf("expected synonyms to survive Clear, got %d keys", synonymKeys)
	}

	// Names cleared from the set can be re-added.
	if added := ns.AddNames([]string{"bob smith"}); added != 1 {
		t.Errorf("expected re-add after Clear to succeed, got %d added", added)
	}
}

func TestGobRoundTrip(t *testing.T) {
	ns := NewNameStore()
	ns.AddNames([]string{"bob smith", "alice jones"})
	ns.SetSynonyms(map[string][]string{"bob": {"robert"}})

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(ns); err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	decoded := &NameStore{}
	if err := gob.NewDecoder(&buf).Decode(decoded); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	names, synonyms := decoded.Snapshot()
	if len(names) != 2 || names[0] != "bob smith" {
		t.Errorf("unexpected names after round trip: %v", names)
	}
	if len(synonyms["bob"]) != 1 || synonyms["bob"][0] != "robert" {
		t.Errorf("unexpected synonyms after round trip: %v", synonyms)
	}

	// Duplicate detection must work against the rebuilt membership set.
	if added := decoded.AddNames([]string{"bob smith"}); added != 0 {
		t.Error("duplicate detection should survive a gob round trip")
	}
}
