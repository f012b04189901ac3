package scanner

import (
	"sync"
	"sync/atomic"

	"github.com/gcbaptista/go-dedupe-engine/index"
)

// Transform maps an input string to the key tested for set membership.
type Transform func(string) string

// ParallelLookup applies transform to every input and returns the indices of
// inputs whose transformed value is a member of keys. It shares the scan's
// hash-table primitive and worker-count semantics; result order follows
// worker merge order and is not deterministic across runs.
func ParallelLookup(inputs []string, keys []string, transform Transform, workerCount int) ([]int, error) {
	buffers, err := parallelLookupIndices(inputs, keys, transform, workerCount)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, buf := range buffers {
		total += len(buf)
	}
	out := make([]int, 0, total)
	for _, buf := range buffers {
		out = append(out, buf...)
	}
	return out, nil
}

// ParallelLookupValues is the value-returning variant of ParallelLookup: it
// returns the matching inputs themselves instead of their indices.
func ParallelLookupValues(inputs []string, keys []string, transform Transform, workerCount int) ([]string, error) {
	buffers, err := parallelLookupIndices(inputs, keys, transform, workerCount)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, buf := range buffers {
		total += len(buf)
	}
	out := make([]string, 0, total)
	for _, buf := range buffers {
		for _, i := range buf {
			out = append(out, inputs[i])
		}
	}
	return out, nil
}

func parallelLookupIndices(inputs []string, keys []string, transform Transform, workerCount int) ([][]int, error) {
	keySet := make(map[string][]string, len(keys))
	for _, k := range keys {
		keySet[k] = nil
	}
	idx, err := index.Build(keySet)
	if err != nil {
		return nil, err
	}

	workers := ResolveWorkerCount(workerCount)
	buffers := make([][]int, workers)

	var (
		next atomic.Int64
		wg   sync.WaitGroup
	)
	n := len(inputs)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			for {
				i := int(next.Add(1)) - 1
				if i >= n {
					return
				}
				key := inputs[i]
				if transform != nil {
					key = transform(key)
				}
				if _, ok := idx.Lookup(key); ok {
					buffers[slot] = append(buffers[slot], i)
				}
			}
		}(w)
	}
	wg.Wait()

	return buffers, nil
}
