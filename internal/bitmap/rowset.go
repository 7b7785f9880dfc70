package bitmap

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// RowSet is a set of row positions backed by a 32-bit Roaring Bitmap.
//
// Iteration is always in ascending position order, so materializing a RowSet
// against the source slice preserves the original record order.
type RowSet struct {
	rb *roaring.Bitmap
}

// New creates a new empty row set.
func New() *RowSet {
	return &RowSet{
		rb: roaring.New(),
	}
}

// All creates a row set containing every position in [0, n).
func All(n int) *RowSet {
	rs := New()
	if n > 0 {
		rs.rb.AddRange(0, uint64(n))
	}
	return rs
}

// Add adds a row position to the set.
func (s *RowSet) Add(pos uint32) {
	s.rb.Add(pos)
}

// Contains checks if a row position is in the set.
func (s *RowSet) Contains(pos uint32) bool {
	return s.rb.Contains(pos)
}

// IsEmpty returns true if the set is empty.
func (s *RowSet) IsEmpty() bool {
	return s == nil || s.rb.IsEmpty()
}

// Len returns the number of positions in the set.
func (s *RowSet) Len() int {
	if s == nil {
		return 0
	}
	return int(s.rb.GetCardinality())
}

// Clone returns a deep copy of the set.
func (s *RowSet) Clone() *RowSet {
	return &RowSet{
		rb: s.rb.Clone(),
	}
}

// Positions returns an iterator over the set in ascending order.
func (s *RowSet) Positions() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		if s == nil {
			return
		}
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}

// ToArray returns the positions as a sorted slice.
func (s *RowSet) ToArray() []uint32 {
	if s == nil {
		return nil
	}
	return s.rb.ToArray()
}
