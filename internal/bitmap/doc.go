// Package bitmap provides row-position sets for filter evaluation.
//
// A RowSet holds the positions of records that survived a filter pass. Filter
// leaves narrow a RowSet into a new one, conjunctions chain the narrowing, and
// the store keeps the last counted RowSet as its cache entry. Cardinality is
// the count, ascending iteration rebuilds the records in source order.
package bitmap
