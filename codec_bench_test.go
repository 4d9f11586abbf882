package attrcodec

import (
	"bytes"
	"context"
	"testing"

	"github.com/hupe1980/attrcodec/fshandler"
	"github.com/hupe1980/attrcodec/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip_Random(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(4711)

	for _, rows := range []int{0, 1, 1000} {
		h := fshandler.NewLocal(t.TempDir())
		c := New(WithRowIDPersistence("rows"))

		in := rng.AttributeSet(5, rows, 8)
		require.NoError(t, c.WriteAll(ctx, h, in))

		out, err := c.ReadAll(ctx, h)
		require.NoError(t, err)
		require.Equal(t, in.Names(), out.Names())
		for name, want := range in.All() {
			got, _ := out.Get(name)
			assert.Equal(t, want.Nbytes, got.Nbytes)
			assert.True(t, bytes.Equal(want.Data, got.Data), name)
			assert.Len(t, got.RowIDs, len(want.RowIDs))
			if rows > 0 {
				assert.Equal(t, want.RowIDs, got.RowIDs)
			}
		}
	}
}

func BenchmarkReadAll(b *testing.B) {
	ctx := context.Background()
	h := fshandler.NewLocal(b.TempDir())
	c := New()

	set := testutil.NewRNG(42).AttributeSet(16, 64*1024, 8)
	if err := c.WriteAll(ctx, h, set); err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.ReadAll(ctx, h); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkWriteAll(b *testing.B) {
	ctx := context.Background()
	h := fshandler.NewLocal(b.TempDir())
	c := New()

	set := testutil.NewRNG(42).AttributeSet(16, 64*1024, 8)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := c.WriteAll(ctx, h, set); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkReadRange(b *testing.B) {
	ctx := context.Background()
	h := fshandler.NewLocal(b.TempDir(), fshandler.WithMmap())
	c := New()

	set := testutil.NewRNG(42).AttributeSet(1, 1<<20, 1)
	if err := c.WriteAll(ctx, h, set); err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := c.ReadRange(ctx, h, "field_000", int64(i%1024)*1024, 1024); err != nil {
			b.Fatal(err)
		}
	}
}
