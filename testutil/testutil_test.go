package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowIDs(t *testing.T) {
	rng := NewRNG(4711)

	ids := rng.RowIDs(100)

	require.Len(t, ids, 100)
	for i := 1; i < len(ids); i++ {
		assert.Greater(t, ids[i], ids[i-1])
	}
	assert.GreaterOrEqual(t, ids[0], int64(0))
}

func TestAttributeSet(t *testing.T) {
	rng := NewRNG(4711)

	set := rng.AttributeSet(3, 10, 4)

	assert.Equal(t, []string{"field_000", "field_001", "field_002"}, set.Names())
	for _, a := range set.All() {
		assert.Len(t, a.Data, 40)
		assert.Equal(t, uint64(40), a.Nbytes)
		assert.Len(t, a.RowIDs, 10)
		assert.NoError(t, a.Validate())
	}
}

func TestSparseRowIDs(t *testing.T) {
	rng := NewRNG(4711)

	ids := rng.SparseRowIDs(50, 100)

	require.Len(t, ids, 50)
	for i := 1; i < len(ids); i++ {
		assert.Greater(t, ids[i], ids[i-1])
	}
	assert.Less(t, ids[len(ids)-1], int64(100))
	assert.Panics(t, func() { rng.SparseRowIDs(3, 2) })
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	b1 := rng.Bytes(16)
	ids1 := rng.RowIDs(4)

	rng.Reset()
	assert.Equal(t, b1, rng.Bytes(16))
	assert.Equal(t, ids1, rng.RowIDs(4))
	assert.Equal(t, int64(4711), rng.Seed())
}
