// Package record defines the typed values and schemas the store filters and
// sorts on.
//
// A Value is a tagged union over null, text, integer, float, decimal, date,
// date-time and boolean. Compare gives the natural order within a kind and
// falls back to string order across kinds. Convert coerces filter literals to
// the kind of the property they are compared against.
//
// A Schema maps property names to accessors of a concrete record type.
// Document is the map-shaped record produced by loaders; DocumentSchema and
// FieldSchema describe it.
package record
