package record

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueAccessors(t *testing.T) {
	s, ok := String("Ana").AsString()
	assert.True(t, ok)
	assert.Equal(t, "Ana", s)

	_, ok = Int(1).AsString()
	assert.False(t, ok)

	d, ok := Decimal(decimal.RequireFromString("1.50")).AsDecimal()
	assert.True(t, ok)
	assert.Equal(t, "1.5", d.String())

	tm, ok := Date(2023, time.March, 12).AsTime()
	assert.True(t, ok)
	assert.Equal(t, 12, tm.Day())

	assert.True(t, Null().IsNull())
	assert.True(t, Value{}.IsNull())
	assert.False(t, Bool(false).IsNull())
}

func TestValueKey(t *testing.T) {
	assert.NotEqual(t, String("1").Key(), Int(1).Key())
	assert.NotEqual(t, Int(1).Key(), Float(1).Key())
	assert.Equal(t, `s:"Ana"`, String("Ana").Key())
	assert.Equal(t, "i:30", Int(30).Key())
	assert.Equal(t, "date:2023-03-12", Date(2023, time.March, 12).Key())
	assert.Equal(t, "null", Null().Key())
	assert.Equal(t, "b:1", Bool(true).Key())
}

func TestValueJSON(t *testing.T) {
	values := []Value{
		Null(),
		String("Ana"),
		Int(-7),
		Float(2.5),
		Decimal(decimal.RequireFromString("10.25")),
		Date(2023, time.March, 12),
		DateTime(time.Date(2023, 3, 12, 10, 0, 0, 0, time.UTC)),
		Bool(true),
	}

	for _, v := range values {
		t.Run(v.Kind.String(), func(t *testing.T) {
			data, err := json.Marshal(v)
			require.NoError(t, err)

			var got Value
			require.NoError(t, json.Unmarshal(data, &got))
			assert.Equal(t, v.Kind, got.Kind)
			assert.Equal(t, v.Key(), got.Key())
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want int
	}{
		{"string", String("Ana"), String("Ben"), -1},
		{"int", Int(30), Int(25), 1},
		{"float", Float(1.5), Float(1.5), 0},
		{"decimal", Decimal(decimal.RequireFromString("2.0")), Decimal(decimal.RequireFromString("2")), 0},
		{"date", Date(2023, 1, 1), Date(2022, 12, 31), 1},
		{"datetime", DateTime(time.Unix(10, 0)), DateTime(time.Unix(20, 0)), -1},
		{"bool falls back to string", Bool(false), Bool(true), -1},
		{"mixed kinds compare as strings", Int(10), String("9"), -1},
		{"null first", Null(), Int(0), -1},
		{"null last arg", String("a"), Null(), 1},
		{"both null", Null(), Value{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compare(tt.a, tt.b))
		})
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name    string
		in      Value
		to      Kind
		wantKey string
	}{
		{"same kind", Int(3), KindInt, "i:3"},
		{"null passes", Null(), KindDecimal, "null"},
		{"float to decimal", Float(2.5), KindDecimal, "d:2.5"},
		{"int to decimal", Int(2), KindDecimal, "d:2"},
		{"text to decimal", String("10.75"), KindDecimal, "d:10.75"},
		{"decimal to float", Decimal(decimal.RequireFromString("0.5")), KindFloat, Float(0.5).Key()},
		{"int to float", Int(4), KindFloat, Float(4).Key()},
		{"text to float", String(" 1.25 "), KindFloat, Float(1.25).Key()},
		{"float to int truncates", Float(4.9), KindInt, "i:4"},
		{"decimal to int", Decimal(decimal.RequireFromString("7.2")), KindInt, "i:7"},
		{"text to date", String("2023-03-12T08:00:00.000Z"), KindDate, "date:2023-03-12"},
		{"datetime to date", DateTime(time.Date(2023, 3, 12, 23, 0, 0, 0, time.UTC)), KindDate, "date:2023-03-12"},
		{"text to datetime", String("2023-03-12"), KindDateTime, "dt:2023-03-12T06:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.in, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, got.Key())
		})
	}
}

func TestConvertMismatch(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		to   Kind
	}{
		{"bool to int", Bool(true), KindInt},
		{"text to int", String("3"), KindInt},
		{"int to text", Int(3), KindString},
		{"bad decimal text", String("abc"), KindDecimal},
		{"bad date text", String("yesterday"), KindDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Convert(tt.in, tt.to)
			var mismatch *ErrTypeMismatch
			require.True(t, errors.As(err, &mismatch))
			assert.Equal(t, tt.in.Kind, mismatch.From)
			assert.Equal(t, tt.to, mismatch.To)
		})
	}
}

func TestFromAny(t *testing.T) {
	v, err := FromAny(42)
	require.NoError(t, err)
	assert.Equal(t, "i:42", v.Key())

	v, err = FromAny(json.Number("1.5"))
	require.NoError(t, err)
	assert.Equal(t, KindDecimal, v.Kind)

	v, err = FromAny(json.Number("12"))
	require.NoError(t, err)
	assert.Equal(t, KindInt, v.Kind)

	v, err = FromAny(nil)
	require.NoError(t, err)
	assert.True(t, v.IsNull())

	_, err = FromAny([]int{1})
	require.Error(t, err)

	_, err = FromAny(uint64(1) << 63)
	require.Error(t, err)

	doc, err := DocumentFromAny(map[string]any{"name": "Ana", "age": int64(30)})
	require.NoError(t, err)
	assert.Equal(t, `s:"Ana"`, doc["name"].Key())

	_, err = DocumentFromAny(map[string]any{"bad": struct{}{}})
	require.ErrorContains(t, err, `field "bad"`)
}

func TestDocumentClone(t *testing.T) {
	doc := Document{"a": Int(1)}
	clone := doc.Clone()
	clone["a"] = Int(2)
	assert.Equal(t, "i:1", doc["a"].Key())
	assert.Nil(t, Document(nil).Clone())
}
