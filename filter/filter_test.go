package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/dataprovider/record"
)

func TestSignature(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"nil", nil, ""},
		{"comparison", Eq("name", record.String("Ana")), `"name" eq s:"Ana"`},
		{"null test", IsNull("city"), `"city" isNull`},
		{"not null test", IsNotNull("city"), `"city" isNotNull`},
		{"empty and", And(), "and()"},
		{
			"nested",
			And(StartsWith("name", "An*"), And(Ge("age", record.Int(30)))),
			`and("name" startsWith s:"An*", and("age" ge i:30))`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Signature(tt.node))
		})
	}
}

func TestSignatureDistinguishesKinds(t *testing.T) {
	assert.NotEqual(t, Signature(Eq("age", record.Int(30))), Signature(Eq("age", record.String("30"))))
}

func TestParseOperator(t *testing.T) {
	tests := []struct {
		in   string
		want Operator
	}{
		{"eq", OpEqual},
		{"=", OpEqual},
		{"!=", OpNotEqual},
		{">=", OpGreaterEqual},
		{"gte", OpGreaterEqual},
		{" lt ", OpLessThan},
		{"<=", OpLessEqual},
		{"startsWith", OpStartsWith},
		{"LIKE", OpStartsWith},
		{"isNotNull", OpIsNotNull},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOperator(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseOperator("between")
	require.Error(t, err)
}

func TestNew(t *testing.T) {
	n, err := New("city", OpIsNull, record.String("ignored"))
	require.NoError(t, err)
	assert.Equal(t, IsNull("city"), n)

	n, err = New("age", OpLessThan, record.Int(3))
	require.NoError(t, err)
	assert.Equal(t, `"age" lt i:3`, n.Signature())

	_, err = New("age", Operator("between"), record.Int(3))
	require.Error(t, err)
}

func TestSignatureQuotesText(t *testing.T) {
	a := And(Eq("name", record.String("Ana")), Ne("name", record.String("Ben")))
	b := And(Eq("name", record.String(`Ana, name ne s:Ben`)))
	c := And(Eq("name", record.String(`Ana", "name" ne s:"Ben`)))

	assert.NotEqual(t, Signature(a), Signature(b))
	assert.NotEqual(t, Signature(a), Signature(c))
	assert.NotEqual(t, Signature(IsNull("a b")), Signature(Eq("a", record.String("b"))))
}

func TestSignatureNilPointers(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"comparison", (*Comparison)(nil), "<nil>"},
		{"null test", (*NullTest)(nil), "<nil>"},
		{"conjunction", (*Conjunction)(nil), "<nil>"},
		{"nested", And(IsNull("city"), (*Comparison)(nil)), `and("city" isNull, <nil>)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Signature(tt.node))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		node    Node
		wantErr bool
	}{
		{"nil filter", nil, false},
		{"comparison", Eq("name", record.String("Ana")), false},
		{"pointer comparison", &Comparison{Property: "name", Operator: OpEqual, Value: record.String("Ana")}, false},
		{"conjunction", And(IsNull("city"), &NullTest{Property: "city"}), false},
		{"nil comparison", (*Comparison)(nil), true},
		{"nil null test", (*NullTest)(nil), true},
		{"nil conjunction", (*Conjunction)(nil), true},
		{"nil child", And(IsNull("city"), nil), true},
		{"nested nil pointer", And(And((*NullTest)(nil))), true},
		{"pointer conjunction with nil child", &Conjunction{Children: []Node{(*Comparison)(nil)}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.node)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var uf *ErrUnsupportedFilter
			assert.ErrorAs(t, err, &uf)
		})
	}
}
