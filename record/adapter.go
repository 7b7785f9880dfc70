package record

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// FromAny converts a Go value into a typed Value.
//
// This exists as an adapter layer for loaders and row sources.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case []byte:
		return String(string(x)), nil
	case float64:
		return Float(x), nil
	case float32:
		return Float(float64(x)), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return Int(int64(x)), nil
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		if x > math.MaxInt64 {
			// Avoid silently truncating large values.
			return Value{}, fmt.Errorf("record uint64 out of range: %d", x)
		}
		return Int(int64(x)), nil
	case decimal.Decimal:
		return Decimal(x), nil
	case time.Time:
		return DateTime(x), nil
	case json.Number:
		if i, err := strconv.ParseInt(x.String(), 10, 64); err == nil {
			return Int(i), nil
		}
		d, err := decimal.NewFromString(x.String())
		if err != nil {
			return Value{}, fmt.Errorf("record number %q: %w", x, err)
		}
		return Decimal(d), nil
	default:
		return Value{}, fmt.Errorf("unsupported record value type %T", v)
	}
}

// DocumentFromAny converts a map[string]any row to a typed Document.
func DocumentFromAny(m map[string]any) (Document, error) {
	d := make(Document, len(m))
	for k, v := range m {
		vv, err := FromAny(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		d[k] = vv
	}
	return d, nil
}
