package dataprovider

import (
	"math"
	"slices"

	"github.com/hupe1980/dataprovider/filter"
	"github.com/hupe1980/dataprovider/record"
)

// SortClause orders results by one property.
type SortClause struct {
	Property  string
	Ascending bool
}

// Asc returns an ascending sort clause.
func Asc(property string) SortClause { return SortClause{Property: property, Ascending: true} }

// Desc returns a descending sort clause.
func Desc(property string) SortClause { return SortClause{Property: property} }

// Range is a half-open index interval [Start, End) over a sorted result.
type Range struct {
	Start int
	End   int
}

// IsEmpty reports whether the range selects nothing.
func (r Range) IsEmpty() bool { return r.End <= r.Start }

// pageRange returns the range of limit records starting at offset. The end
// saturates at the int bounds instead of wrapping.
func pageRange(offset, limit int) Range {
	end := offset + limit
	switch {
	case limit > 0 && end < offset:
		end = math.MaxInt
	case limit < 0 && end > offset:
		end = math.MinInt
	}
	return Range{Start: offset, End: end}
}

// bounds clamps the range to a result of the given size.
func (r Range) bounds(size int) (lo, hi int) {
	if r.IsEmpty() {
		return 0, 0
	}
	lo = max(r.Start, 0)
	hi = min(r.End, size)
	if lo >= hi {
		return 0, 0
	}
	return lo, hi
}

type sortKey struct {
	pos uint32
	v   record.Value
}

// sortPositions stable-sorts record positions by the first clause only.
// Further clauses are ignored.
func sortPositions[T any](schema record.Schema[T], records []T, positions []uint32, sortBy []SortClause) error {
	if len(sortBy) == 0 || len(positions) == 0 {
		return nil
	}

	clause := sortBy[0]
	get, ok := schema.Lookup(clause.Property)
	if !ok {
		return &filter.ErrPropertyNotFilterable{Property: clause.Property}
	}

	keys := make([]sortKey, len(positions))
	for i, pos := range positions {
		keys[i] = sortKey{pos: pos, v: get(records[pos])}
	}

	dir := 1
	if !clause.Ascending {
		dir = -1
	}
	slices.SortStableFunc(keys, func(a, b sortKey) int {
		return record.Compare(a.v, b.v) * dir
	})

	for i := range keys {
		positions[i] = keys[i].pos
	}
	return nil
}
