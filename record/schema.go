package record

import (
	"fmt"
	"slices"
)

// Accessor reads one property of a record.
//
// Accessors must not mutate the record; a missing value is reported as Null.
type Accessor[T any] func(T) Value

// Schema maps each filterable property name of a record type to its accessor.
//
// A Schema is built once per record type and handed to the store, replacing
// any by-name lookup at query time.
type Schema[T any] map[string]Accessor[T]

// Lookup returns the accessor for the named property.
func (s Schema[T]) Lookup(name string) (Accessor[T], bool) {
	get, ok := s[name]
	if !ok || get == nil {
		return nil, false
	}
	return get, true
}

// Names returns the declared property names in sorted order.
func (s Schema[T]) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// DocumentSchema declares the given fields of a Document as filterable.
func DocumentSchema(fields ...string) Schema[Document] {
	s := make(Schema[Document], len(fields))
	for _, field := range fields {
		s[field] = func(d Document) Value {
			v, ok := d[field]
			if !ok {
				return Null()
			}
			return v
		}
	}
	return s
}

// FieldSchema defines the expected kind of each document field.
type FieldSchema map[string]Kind

// Validate checks if the given document conforms to the schema.
//
// Unknown fields are ignored and null is valid for every field. Integers are
// accepted where floats or decimals are expected.
func (s FieldSchema) Validate(doc Document) error {
	if s == nil {
		return nil
	}
	for k, v := range doc {
		expected, ok := s[k]
		if !ok {
			continue
		}

		if !checkKind(v.Kind, expected) {
			return fmt.Errorf("field %q has invalid type %s, expected %s", k, v.Kind, expected)
		}
	}
	return nil
}

func checkKind(k, expected Kind) bool {
	if k == KindNull || k == expected {
		return true
	}
	switch expected {
	case KindFloat, KindDecimal:
		return k == KindInt
	}
	return false
}
