package bitmap

import "github.com/RoaringBitmap/roaring/v2"

// IndexSet is a set of point indices backed by a roaring bitmap.
// The engine uses it for the seed-index membership test done on every
// assignment.
type IndexSet struct {
	rb *roaring.Bitmap
}

// NewIndexSet creates a set holding the given indices.
func NewIndexSet(indices ...int) *IndexSet {
	s := &IndexSet{rb: roaring.New()}
	for _, idx := range indices {
		s.Add(idx)
	}
	return s
}

// Add adds idx to the set. Negative indices are ignored.
func (s *IndexSet) Add(idx int) {
	if idx < 0 {
		return
	}
	s.rb.Add(uint32(idx))
}

// Contains reports whether idx is in the set.
func (s *IndexSet) Contains(idx int) bool {
	if s == nil || idx < 0 {
		return false
	}
	return s.rb.Contains(uint32(idx))
}
