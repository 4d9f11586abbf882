package testutil

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/hupe1980/attrcodec/segment"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a random int in [0, n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Bytes returns n random bytes.
func (r *RNG) Bytes(n int) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	buf := make([]byte, n)
	r.rand.Read(buf)
	return buf
}

// RowIDs returns n strictly increasing row identifiers starting at a random
// non-negative base.
func (r *RNG) RowIDs(n int) segment.RowIDs {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make(segment.RowIDs, n)
	next := r.rand.Int63n(1 << 40)
	for i := range ids {
		ids[i] = next
		next += 1 + r.rand.Int63n(16)
	}
	return ids
}

// AttributeSet returns fields fixed-width attributes named field_000,
// field_001, ... covering rows rows. Every attribute shares the same row ids.
func (r *RNG) AttributeSet(fields, rows, width int) *segment.AttributeSet {
	ids := r.RowIDs(rows)
	set := segment.NewAttributeSet()
	for i := 0; i < fields; i++ {
		set.Put(segment.NewAttribute(fmt.Sprintf("field_%03d", i), r.Bytes(rows*width), ids))
	}
	return set
}

// SparseRowIDs returns n ids drawn from [0, limit) without duplicates, in
// ascending order. It panics if n > limit.
func (r *RNG) SparseRowIDs(n int, limit int64) segment.RowIDs {
	if int64(n) > limit {
		panic("testutil: more ids requested than the range holds")
	}

	r.mu.Lock()
	seen := make(map[int64]struct{}, n)
	for len(seen) < n {
		seen[r.rand.Int63n(limit)] = struct{}{}
	}
	r.mu.Unlock()

	ids := make(segment.RowIDs, 0, n)
	for id := int64(0); id < limit && len(ids) < n; id++ {
		if _, ok := seen[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}
