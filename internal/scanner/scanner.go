// Package scanner implements the concurrent all-pairs name scan. Workers pull
// outer indices from a shared counter (dynamic scheduling, since the inner
// loop for index i shrinks as i grows), validate every pair (i, j) with i < j,
// and collect matches in per-worker buffers that are merged single-threaded
// after all workers join.
package scanner

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/gcbaptista/go-dedupe-engine/index"
	"github.com/gcbaptista/go-dedupe-engine/internal/matcher"
	"github.com/gcbaptista/go-dedupe-engine/model"
)

// DefaultInitialBufferCapacity is the starting capacity of each worker's
// result buffer.
const DefaultInitialBufferCapacity = 1000

// Options controls a scan.
type Options struct {
	// WorkerCount resolves as: 0 = all hardware threads, -1 = all minus one
	// (never below one), n > 0 = exactly n.
	WorkerCount int

	// MaxWordLength is the per-word byte bound for matching; <= 0 means
	// unbounded.
	MaxWordLength int

	// InitialBufferCapacity is the starting capacity of each worker's result
	// buffer; <= 0 uses DefaultInitialBufferCapacity.
	InitialBufferCapacity int

	// MaxBufferCapacity caps a worker's result buffer; 0 means unbounded.
	// A worker that cannot grow past the cap aborts the whole scan with a
	// BufferCapacityError.
	MaxBufferCapacity int
}

// FindMatches scans every unordered pair of distinct names and returns the
// pairs accepted by the matching rule. Names with fewer than two words are
// silently excluded, as are exact duplicates (pairs are over name values, not
// list positions). The result is a set: pair order is not deterministic
// across runs, but its contents are.
func FindMatches(names []string, synonyms map[string][]string, workerCount int) ([]model.MatchPair, error) {
	return FindMatchesWithOptions(names, synonyms, Options{
		WorkerCount:   workerCount,
		MaxWordLength: matcher.DefaultMaxWordLength,
	})
}

// FindMatchesWithOptions is FindMatches with explicit buffer and word-length
// configuration.
func FindMatchesWithOptions(names []string, synonyms map[string][]string, opts Options) ([]model.MatchPair, error) {
	domain := matcher.FilterEligible(matcher.DedupeNames(names))
	n := len(domain)
	if n < 2 {
		return []model.MatchPair{}, nil
	}

	idx, err := index.Build(synonyms)
	if err != nil {
		return nil, err
	}

	m := matcher.New(idx)
	m.MaxWordLength = opts.MaxWordLength

	// Split every name once; workers share this read-only word table.
	words := make([][]string, n)
	for i, name := range domain {
		words[i] = m.Split(name)
	}

	workers := ResolveWorkerCount(opts.WorkerCount)
	initial := opts.InitialBufferCapacity
	if initial <= 0 {
		initial = DefaultInitialBufferCapacity
	}

	buffers := make([]*resultBuffer, workers)
	workerErrs := make([]error, workers)
	for w := 0; w < workers; w++ {
		buffers[w] = newResultBuffer(initial, opts.MaxBufferCapacity)
	}

	var (
		next    atomic.Int64
		aborted atomic.Bool
		wg      sync.WaitGroup
	)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			buf := buffers[slot]
			for {
				if aborted.Load() {
					return
				}
				i := int(next.Add(1)) - 1
				if i >= n {
					return
				}
				// The inner loop is never split across workers.
				for j := i + 1; j < n; j++ {
					if !m.ValidateWords(words[i], words[j]) {
						continue
					}
					if err := buf.add(i, j); err != nil {
						workerErrs[slot] = err
						aborted.Store(true)
						return
					}
				}
			}
		}(w)
	}
	wg.Wait()

	// Propagate exactly one error; a failed scan returns no partial results.
	for _, werr := range workerErrs {
		if werr != nil {
			return nil, werr
		}
	}

	total := 0
	for _, buf := range buffers {
		total += len(buf.pairs)
	}
	matches := make([]model.MatchPair, 0, total)
	for w, buf := range buffers {
		for _, p := range buf.pairs {
			matches = append(matches, model.MatchPair{
				NameA: domain[p.i],
				NameB: domain[p.j],
			})
		}
		buffers[w] = nil // drained; release to the collector
	}
	return matches, nil
}

// ResolveWorkerCount maps the caller-facing worker count to an effective one:
// 0 = all hardware threads, -1 = all minus one (never below one), n > 0 = n.
func ResolveWorkerCount(workerCount int) int {
	switch {
	case workerCount > 0:
		return workerCount
	case workerCount == -1:
		if c := runtime.NumCPU() - 1; c > 0 {
			return c
		}
		return 1
	default:
		return runtime.NumCPU()
	}
}
