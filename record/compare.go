package record

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"

	"github.com/hupe1980/dataprovider/dateutil"
	"github.com/shopspring/decimal"
)

// ErrTypeMismatch indicates a value cannot be converted to the kind of the
// property it is compared against.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrTypeMismatch struct {
	From  Kind
	To    Kind
	cause error
}

func (e *ErrTypeMismatch) Error() string {
	return fmt.Sprintf("type mismatch: cannot convert %s to %s", e.From, e.To)
}

func (e *ErrTypeMismatch) Unwrap() error { return e.cause }

// Compare returns the natural ordering of a and b.
//
// Text, integer, float, decimal, date and date-time values compare naturally.
// Nulls sort before everything else. Any other combination, including values
// of different kinds, compares by string representation.
func Compare(a, b Value) int {
	if a.IsNull() || b.IsNull() {
		switch {
		case a.IsNull() && b.IsNull():
			return 0
		case a.IsNull():
			return -1
		default:
			return 1
		}
	}

	if a.Kind != b.Kind {
		return strings.Compare(a.String(), b.String())
	}

	switch a.Kind {
	case KindString:
		return strings.Compare(a.s.Value(), b.s.Value())
	case KindInt:
		return cmp.Compare(a.I64, b.I64)
	case KindFloat:
		return cmp.Compare(a.F64, b.F64)
	case KindDecimal:
		return a.dec.Cmp(b.dec)
	case KindDate, KindDateTime:
		return a.t.Compare(b.t)
	default:
		return strings.Compare(a.String(), b.String())
	}
}

// Convert converts v to the given kind.
//
// Supported conversions are decimal from float, integer or decimal text;
// float from decimal, integer or float text; integer from float or decimal
// (truncating); and date or date-time from each other or from text. Null
// values pass through unchanged. Everything else fails with ErrTypeMismatch.
func Convert(v Value, to Kind) (Value, error) {
	if v.Kind == to || v.IsNull() {
		return v, nil
	}

	switch to {
	case KindDecimal:
		switch v.Kind {
		case KindFloat:
			return Decimal(decimal.NewFromFloat(v.F64)), nil
		case KindInt:
			return Decimal(decimal.NewFromInt(v.I64)), nil
		case KindString:
			d, err := decimal.NewFromString(v.s.Value())
			if err != nil {
				return Value{}, &ErrTypeMismatch{From: v.Kind, To: to, cause: err}
			}
			return Decimal(d), nil
		}
	case KindFloat:
		switch v.Kind {
		case KindDecimal:
			f, _ := v.dec.Float64()
			return Float(f), nil
		case KindInt:
			return Float(float64(v.I64)), nil
		case KindString:
			f, err := strconv.ParseFloat(strings.TrimSpace(v.s.Value()), 64)
			if err != nil {
				return Value{}, &ErrTypeMismatch{From: v.Kind, To: to, cause: err}
			}
			return Float(f), nil
		}
	case KindInt:
		switch v.Kind {
		case KindFloat:
			return Int(int64(v.F64)), nil
		case KindDecimal:
			return Int(v.dec.IntPart()), nil
		}
	case KindDate:
		switch v.Kind {
		case KindDateTime:
			return DateOf(v.t), nil
		case KindString:
			t, err := dateutil.ParseDate(v.s.Value())
			if err != nil {
				return Value{}, &ErrTypeMismatch{From: v.Kind, To: to, cause: err}
			}
			return DateOf(t), nil
		}
	case KindDateTime:
		switch v.Kind {
		case KindDate:
			return DateTime(v.t), nil
		case KindString:
			t, err := dateutil.ParseDateTime(v.s.Value())
			if err != nil {
				return Value{}, &ErrTypeMismatch{From: v.Kind, To: to, cause: err}
			}
			return DateTime(t), nil
		}
	}

	return Value{}, &ErrTypeMismatch{From: v.Kind, To: to}
}
