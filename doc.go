// Package dataprovider provides an in-memory, filterable record store for
// grid-style front ends.
//
// A Store holds a collection of uniform records and answers Count and Fetch
// queries against it. Records are read only through a record.Schema, a map
// from property name to typed accessor, so no reflection happens at query
// time.
//
// # Quick Start
//
//	type Person struct {
//	    Name string
//	    Age  int64
//	}
//
//	schema := record.Schema[Person]{
//	    "name": func(p Person) record.Value { return record.String(p.Name) },
//	    "age":  func(p Person) record.Value { return record.Int(p.Age) },
//	}
//
//	store := dataprovider.New(schema)
//	store.ReplaceAll(ctx, people)
//
//	f := filter.Eq("name", record.String("Ana"))
//	n, _ := store.Count(ctx, f)
//	page, _ := store.Fetch(ctx, f, []dataprovider.SortClause{dataprovider.Desc("age")}, dataprovider.Range{Start: 0, End: 10})
//
// # Caching
//
// The store keeps one cache entry: the row set of the last filter evaluated
// by Count, keyed by the filter's signature. Fetch reads the entry when the
// signature matches and otherwise evaluates the filter without caching it.
// Count with a nil filter and ReplaceAll both invalidate the entry.
//
// # Sorting and Pagination
//
// Only the first sort clause is honored; the sort is stable. A Range is a
// half-open interval clamped to the result, so out-of-bounds ranges yield
// empty pages instead of errors.
//
// # Listeners
//
// Every Count that evaluates a new filter notifies the registered
// FilterChangeListeners with the filter's signature and match count.
//
// # Errors
//
// Filters naming undeclared properties, unknown filter nodes and
// incompatible literal conversions fail with errors wrapping
// ErrConfiguration. Comparisons against null values are silent non-matches.
//
// # Concurrency
//
// Store is meant for one session at a time. SyncStore serializes access for
// shared use.
package dataprovider
