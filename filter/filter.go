package filter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hupe1980/dataprovider/record"
)

// Operator represents a comparison operator for filtering.
type Operator string

const (
	// OpEqual represents the equality operator.
	OpEqual Operator = "eq"
	// OpNotEqual represents the inequality operator.
	OpNotEqual Operator = "ne"
	// OpGreaterThan represents the greater than operator.
	OpGreaterThan Operator = "gt"
	// OpGreaterEqual represents the greater than or equal operator.
	OpGreaterEqual Operator = "ge"
	// OpLessThan represents the less than operator.
	OpLessThan Operator = "lt"
	// OpLessEqual represents the less than or equal operator.
	OpLessEqual Operator = "le"
	// OpStartsWith represents the prefix-match operator.
	OpStartsWith Operator = "startsWith"
	// OpContains represents the substring-match operator.
	OpContains Operator = "contains"
	// OpEndsWith represents the suffix-match operator.
	OpEndsWith Operator = "endsWith"
	// OpIsNull represents the null test.
	OpIsNull Operator = "isNull"
	// OpIsNotNull represents the not-null test.
	OpIsNotNull Operator = "isNotNull"
)

var operatorAliases = map[string]Operator{
	"=":    OpEqual,
	"==":   OpEqual,
	"!=":   OpNotEqual,
	"<>":   OpNotEqual,
	">":    OpGreaterThan,
	">=":   OpGreaterEqual,
	"gte":  OpGreaterEqual,
	"<":    OpLessThan,
	"<=":   OpLessEqual,
	"lte":  OpLessEqual,
	"like": OpStartsWith,
}

// ParseOperator parses an operator name or its symbolic form.
func ParseOperator(s string) (Operator, error) {
	s = strings.TrimSpace(s)
	switch op := Operator(s); op {
	case OpEqual, OpNotEqual, OpGreaterThan, OpGreaterEqual, OpLessThan, OpLessEqual,
		OpStartsWith, OpContains, OpEndsWith, OpIsNull, OpIsNotNull:
		return op, nil
	}
	if op, ok := operatorAliases[strings.ToLower(s)]; ok {
		return op, nil
	}
	return "", fmt.Errorf("unknown filter operator %q", s)
}

// Node is a filter tree node.
//
// The set of nodes is closed: Conjunction, Comparison and NullTest.
type Node interface {
	// Signature returns the canonical textual form of the node.
	Signature() string

	isNode()
}

// Conjunction matches records that satisfy every child. Children are
// evaluated in order, each one narrowing the output of the previous.
type Conjunction struct {
	Children []Node
}

// Comparison tests a property against a literal value.
type Comparison struct {
	Property string
	Operator Operator
	Value    record.Value
}

// NullTest tests whether a property is null (IsNull) or not.
type NullTest struct {
	Property string
	IsNull   bool
}

func (Conjunction) isNode() {}
func (Comparison) isNode()  {}
func (NullTest) isNode()    {}

// Signature returns "and(child, child, ...)".
func (c Conjunction) Signature() string {
	var sb strings.Builder
	sb.WriteString("and(")
	for i, child := range c.Children {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(Signature(child))
	}
	sb.WriteByte(')')
	return sb.String()
}

// Signature returns `"property" operator literal`. The property is quoted
// and the literal is rendered with record.Value.Key.
func (c Comparison) Signature() string {
	return strconv.Quote(c.Property) + " " + string(c.Operator) + " " + c.Value.Key()
}

// Signature returns `"property" isNull` or `"property" isNotNull`.
func (n NullTest) Signature() string {
	if n.IsNull {
		return strconv.Quote(n.Property) + " " + string(OpIsNull)
	}
	return strconv.Quote(n.Property) + " " + string(OpIsNotNull)
}

// Signature returns the signature of n, or "" for a nil filter. Nil
// pointer nodes render as "<nil>".
func Signature(n Node) string {
	switch {
	case n == nil:
		return ""
	case isNilPointer(n):
		return "<nil>"
	}
	return n.Signature()
}

// Validate reports nil pointer nodes anywhere in n, and nil children of a
// conjunction, as ErrUnsupportedFilter. A nil n is a valid empty filter.
func Validate(n Node) error {
	if n == nil {
		return nil
	}
	return validate(n)
}

func validate(n Node) error {
	if n == nil || isNilPointer(n) {
		return &ErrUnsupportedFilter{Node: n}
	}
	var children []Node
	switch x := n.(type) {
	case Conjunction:
		children = x.Children
	case *Conjunction:
		children = x.Children
	}
	for _, child := range children {
		if err := validate(child); err != nil {
			return err
		}
	}
	return nil
}

func isNilPointer(n Node) bool {
	switch x := n.(type) {
	case *Conjunction:
		return x == nil
	case *Comparison:
		return x == nil
	case *NullTest:
		return x == nil
	}
	return false
}

// And creates a conjunction of the given filters.
func And(children ...Node) Conjunction { return Conjunction{Children: children} }

// Eq matches records whose property equals v.
func Eq(property string, v record.Value) Comparison {
	return Comparison{Property: property, Operator: OpEqual, Value: v}
}

// Ne matches records whose property differs from v.
func Ne(property string, v record.Value) Comparison {
	return Comparison{Property: property, Operator: OpNotEqual, Value: v}
}

// Gt matches records whose property is greater than v.
func Gt(property string, v record.Value) Comparison {
	return Comparison{Property: property, Operator: OpGreaterThan, Value: v}
}

// Ge matches records whose property is greater than or equal to v.
func Ge(property string, v record.Value) Comparison {
	return Comparison{Property: property, Operator: OpGreaterEqual, Value: v}
}

// Lt matches records whose property is less than v.
func Lt(property string, v record.Value) Comparison {
	return Comparison{Property: property, Operator: OpLessThan, Value: v}
}

// Le matches records whose property is less than or equal to v.
func Le(property string, v record.Value) Comparison {
	return Comparison{Property: property, Operator: OpLessEqual, Value: v}
}

// StartsWith matches text properties with the given prefix. A trailing
// wildcard ("*" or "%") on the pattern is ignored.
func StartsWith(property, pattern string) Comparison {
	return Comparison{Property: property, Operator: OpStartsWith, Value: record.String(pattern)}
}

// Contains matches text properties containing s.
func Contains(property, s string) Comparison {
	return Comparison{Property: property, Operator: OpContains, Value: record.String(s)}
}

// EndsWith matches text properties with the given suffix.
func EndsWith(property, suffix string) Comparison {
	return Comparison{Property: property, Operator: OpEndsWith, Value: record.String(suffix)}
}

// IsNull matches records whose property is null.
func IsNull(property string) NullTest { return NullTest{Property: property, IsNull: true} }

// IsNotNull matches records whose property is not null.
func IsNotNull(property string) NullTest { return NullTest{Property: property} }

// New creates a leaf filter for an arbitrary operator. Null-test operators
// ignore v.
func New(property string, op Operator, v record.Value) (Node, error) {
	switch op {
	case OpIsNull:
		return IsNull(property), nil
	case OpIsNotNull:
		return IsNotNull(property), nil
	case OpEqual, OpNotEqual, OpGreaterThan, OpGreaterEqual, OpLessThan, OpLessEqual,
		OpStartsWith, OpContains, OpEndsWith:
		return Comparison{Property: property, Operator: op, Value: v}, nil
	default:
		return nil, fmt.Errorf("unknown filter operator %q", op)
	}
}
