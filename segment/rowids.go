package segment

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// RowIDs is the ordered list of 64-bit row identifiers of a segment.
type RowIDs []int64

// Len returns the number of row identifiers.
func (r RowIDs) Len() int { return len(r) }

// Bitmap returns a compressed bitmap holding every non-negative identifier.
// Negative identifiers cannot be represented and are skipped.
func (r RowIDs) Bitmap() *roaring64.Bitmap {
	bm := roaring64.New()
	for _, id := range r {
		if id >= 0 {
			bm.Add(uint64(id))
		}
	}
	bm.RunOptimize()
	return bm
}

// Contains reports whether id is in the list.
func (r RowIDs) Contains(id int64) bool {
	if id < 0 {
		for _, v := range r {
			if v == id {
				return true
			}
		}
		return false
	}
	return r.Bitmap().Contains(uint64(id))
}
