package record

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unique"

	"github.com/shopspring/decimal"
)

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	// KindInvalid represents an invalid kind.
	KindInvalid Kind = iota
	// KindNull represents a null value.
	KindNull
	// KindString represents a text value.
	KindString
	// KindInt represents an integer value.
	KindInt
	// KindFloat represents a floating-point value.
	KindFloat
	// KindDecimal represents an arbitrary-precision decimal value.
	KindDecimal
	// KindDate represents a calendar date without time of day.
	KindDate
	// KindDateTime represents a date with time of day.
	KindDateTime
	// KindBool represents a boolean value.
	KindBool
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindString:
		return "String"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindDecimal:
		return "Decimal"
	case KindDate:
		return "Date"
	case KindDateTime:
		return "DateTime"
	case KindBool:
		return "Bool"
	default:
		return "Invalid"
	}
}

// ParseKind parses a lower-case kind name such as "decimal" or "datetime".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "null":
		return KindNull, nil
	case "string", "text":
		return KindString, nil
	case "int", "integer":
		return KindInt, nil
	case "float":
		return KindFloat, nil
	case "decimal":
		return KindDecimal, nil
	case "date":
		return KindDate, nil
	case "datetime":
		return KindDateTime, nil
	case "bool", "boolean":
		return KindBool, nil
	default:
		return KindInvalid, fmt.Errorf("unknown kind %q", s)
	}
}

const dateLayout = "2006-01-02"

// Value is a small typed value read from a record property or used as a
// filter literal.
//
// Comparison and conversion switch over Kind; there is no reflection and no
// fmt-based stringification on the filter path.
//
// NOTE: The JSON form is used by snapshots; keep it stable.
type Value struct {
	Kind Kind
	I64  int64
	F64  float64
	B    bool
	s    unique.Handle[string]
	dec  decimal.Decimal
	t    time.Time
}

// Null returns a null Value.
func Null() Value { return Value{Kind: KindNull} }

// String returns a text Value.
func String(v string) Value { return Value{Kind: KindString, s: unique.Make(v)} }

// Int returns an int64 Value.
func Int(v int64) Value { return Value{Kind: KindInt, I64: v} }

// Float returns a float64 Value.
func Float(v float64) Value { return Value{Kind: KindFloat, F64: v} }

// Decimal returns a decimal Value.
func Decimal(v decimal.Decimal) Value { return Value{Kind: KindDecimal, dec: v} }

// Date returns a calendar date Value.
func Date(year int, month time.Month, day int) Value {
	return Value{Kind: KindDate, t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date of t, in t's location, as a date Value.
func DateOf(t time.Time) Value {
	return Date(t.Year(), t.Month(), t.Day())
}

// DateTime returns a date-time Value.
func DateTime(v time.Time) Value { return Value{Kind: KindDateTime, t: v} }

// Bool returns a boolean Value.
func Bool(v bool) Value { return Value{Kind: KindBool, B: v} }

// IsNull reports whether the value is null. The zero Value is treated as null.
func (v Value) IsNull() bool {
	return v.Kind == KindNull || v.Kind == KindInvalid
}

// AsString returns the text value if Kind is KindString.
func (v Value) AsString() (string, bool) {
	if v.Kind != KindString {
		return "", false
	}
	return v.s.Value(), true
}

// AsInt64 returns the int64 value if Kind is KindInt.
func (v Value) AsInt64() (int64, bool) {
	if v.Kind != KindInt {
		return 0, false
	}
	return v.I64, true
}

// AsFloat64 returns the float64 value if Kind is KindFloat.
func (v Value) AsFloat64() (float64, bool) {
	if v.Kind != KindFloat {
		return 0, false
	}
	return v.F64, true
}

// AsDecimal returns the decimal value if Kind is KindDecimal.
func (v Value) AsDecimal() (decimal.Decimal, bool) {
	if v.Kind != KindDecimal {
		return decimal.Zero, false
	}
	return v.dec, true
}

// AsTime returns the time value if Kind is KindDate or KindDateTime.
func (v Value) AsTime() (time.Time, bool) {
	if v.Kind != KindDate && v.Kind != KindDateTime {
		return time.Time{}, false
	}
	return v.t, true
}

// AsBool returns the boolean value if Kind is KindBool.
func (v Value) AsBool() (bool, bool) {
	if v.Kind != KindBool {
		return false, false
	}
	return v.B, true
}

// String returns the display form of the value.
//
// It is also the ordering key for kinds without a natural comparator.
func (v Value) String() string {
	switch v.Kind {
	case KindString:
		return v.s.Value()
	case KindInt:
		return strconv.FormatInt(v.I64, 10)
	case KindFloat:
		return strconv.FormatFloat(v.F64, 'g', -1, 64)
	case KindDecimal:
		return v.dec.String()
	case KindDate:
		return v.t.Format(dateLayout)
	case KindDateTime:
		return v.t.Format(time.RFC3339Nano)
	case KindBool:
		return strconv.FormatBool(v.B)
	default:
		return "null"
	}
}

// Key returns a stable, kind-prefixed string representation.
//
// Filter signatures are built from it, so two literals of different kinds
// never produce the same signature. Text is quoted, so a literal cannot
// imitate the separators of the signature around it.
func (v Value) Key() string {
	switch v.Kind {
	case KindString:
		return "s:" + strconv.Quote(v.s.Value())
	case KindInt:
		return "i:" + strconv.FormatInt(v.I64, 10)
	case KindFloat:
		return "f:" + strconv.FormatUint(math.Float64bits(v.F64), 16)
	case KindDecimal:
		return "d:" + v.dec.String()
	case KindDate:
		return "date:" + v.t.Format(dateLayout)
	case KindDateTime:
		return "dt:" + v.t.UTC().Format(time.RFC3339Nano)
	case KindBool:
		if v.B {
			return "b:1"
		}
		return "b:0"
	default:
		return "null"
	}
}

type valueJSON struct {
	Kind Kind    `json:"k"`
	I64  int64   `json:"i,omitempty"`
	F64  float64 `json:"f,omitempty"`
	S    string  `json:"s,omitempty"`
	B    bool    `json:"b,omitempty"`
	D    string  `json:"d,omitempty"`
	T    string  `json:"t,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	aux := valueJSON{Kind: v.Kind}
	switch v.Kind {
	case KindString:
		aux.S = v.s.Value()
	case KindInt:
		aux.I64 = v.I64
	case KindFloat:
		aux.F64 = v.F64
	case KindDecimal:
		aux.D = v.dec.String()
	case KindDate:
		aux.T = v.t.Format(dateLayout)
	case KindDateTime:
		aux.T = v.t.Format(time.RFC3339Nano)
	case KindBool:
		aux.B = v.B
	case KindInvalid:
		aux.Kind = KindNull
	}
	return json.Marshal(aux)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var aux valueJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	switch aux.Kind {
	case KindString:
		*v = String(aux.S)
	case KindInt:
		*v = Int(aux.I64)
	case KindFloat:
		*v = Float(aux.F64)
	case KindDecimal:
		d, err := decimal.NewFromString(aux.D)
		if err != nil {
			return err
		}
		*v = Decimal(d)
	case KindDate:
		t, err := time.Parse(dateLayout, aux.T)
		if err != nil {
			return err
		}
		*v = DateOf(t)
	case KindDateTime:
		t, err := time.Parse(time.RFC3339Nano, aux.T)
		if err != nil {
			return err
		}
		*v = DateTime(t)
	case KindBool:
		*v = Bool(aux.B)
	default:
		*v = Null()
	}
	return nil
}

// Document is a record represented as a property map.
//
// It is the record shape produced by the loaders and sources.
type Document map[string]Value

// Clone creates a copy of the document.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}

	clone := make(Document, len(d))
	for k, v := range d {
		clone[k] = v
	}
	return clone
}
