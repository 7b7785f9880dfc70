// Package filter provides composable predicates over records.
//
// A filter is a tree of Node values: Conjunction narrows through each child in
// order, Comparison tests one property against a literal, and NullTest checks
// a property for null. Every node has a Signature; two filters with the same
// signature select the same records, which is what the store's result cache
// keys on.
//
// Example:
//
//	f := filter.And(
//	    filter.StartsWith("name", "An*"),
//	    filter.Ge("age", record.Int(30)),
//	)
//
// Filters can also be decoded from YAML or JSON documents with Decode.
package filter
