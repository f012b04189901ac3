package scanner

import (
	"github.com/gcbaptista/go-dedupe-engine/internal/errors"
)

// pairRef references a matched pair by scan-domain indices rather than by the
// name strings themselves; the strings are resolved once during the merge.
type pairRef struct {
	i, j int32
}

// resultBuffer is a per-worker, append-only buffer of matched pair references.
// Exactly one worker writes to it during the concurrent phase; the merge phase
// reads it afterwards, so no locking is needed.
//
// Growth doubles the capacity. When a hard limit is configured and the buffer
// cannot grow past it, append fails and the whole scan must abort; the limit
// stands in for an allocation failure and lets tests force that path.
type resultBuffer struct {
	pairs []pairRef
	limit int // max capacity in entries, 0 = unbounded
}

func newResultBuffer(initial, limit int) *resultBuffer {
	if initial < 1 {
		initial = 1
	}
	if limit > 0 && initial > limit {
		initial = limit
	}
	return &resultBuffer{
		pairs: make([]pairRef, 0, initial),
		limit: limit,
	}
}

func (b *resultBuffer) add(i, j int) error {
	if len(b.pairs) == cap(b.pairs) {
		if err := b.grow(); err != nil {
			return err
		}
	}
	b.pairs = append(b.pairs, pairRef{i: int32(i), j: int32(j)})
	return nil
}

func (b *resultBuffer) grow() error {
	oldCap := cap(b.pairs)
	if b.limit > 0 && oldCap >= b.limit {
		return errors.NewBufferCapacityError(b.limit)
	}
	newCap := oldCap * 2
	if newCap == 0 {
		newCap = 1
	}
	if b.limit > 0 && newCap > b.limit {
		newCap = b.limit
	}
	grown := make([]pairRef, len(b.pairs), newCap)
	copy(grown, b.pairs)
	b.pairs = grown
	return nil
}
