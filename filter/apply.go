package filter

import (
	"strings"

	"github.com/hupe1980/dataprovider/internal/bitmap"
	"github.com/hupe1980/dataprovider/record"
)

// Apply evaluates n over the records at the positions in rows and returns the
// positions that match.
//
// An empty rows set short-circuits to an empty result before the filter is
// validated. The input set is never modified.
func Apply[T any](n Node, schema record.Schema[T], records []T, rows *bitmap.RowSet) (*bitmap.RowSet, error) {
	if rows.IsEmpty() {
		return bitmap.New(), nil
	}

	switch x := n.(type) {
	case Conjunction:
		return applyConjunction(x, schema, records, rows)
	case *Conjunction:
		if x == nil {
			return nil, &ErrUnsupportedFilter{Node: n}
		}
		return applyConjunction(*x, schema, records, rows)
	case Comparison:
		return applyComparison(x, schema, records, rows)
	case *Comparison:
		if x == nil {
			return nil, &ErrUnsupportedFilter{Node: n}
		}
		return applyComparison(*x, schema, records, rows)
	case NullTest:
		return applyNullTest(x, schema, records, rows)
	case *NullTest:
		if x == nil {
			return nil, &ErrUnsupportedFilter{Node: n}
		}
		return applyNullTest(*x, schema, records, rows)
	default:
		return nil, &ErrUnsupportedFilter{Node: n}
	}
}

func applyConjunction[T any](c Conjunction, schema record.Schema[T], records []T, rows *bitmap.RowSet) (*bitmap.RowSet, error) {
	cur := rows
	for _, child := range c.Children {
		next, err := Apply(child, schema, records, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	if cur == rows {
		return rows.Clone(), nil
	}
	return cur, nil
}

func applyNullTest[T any](n NullTest, schema record.Schema[T], records []T, rows *bitmap.RowSet) (*bitmap.RowSet, error) {
	get, ok := schema.Lookup(n.Property)
	if !ok {
		return nil, &ErrPropertyNotFilterable{Property: n.Property}
	}

	out := bitmap.New()
	for pos := range rows.Positions() {
		if get(records[pos]).IsNull() == n.IsNull {
			out.Add(pos)
		}
	}
	return out, nil
}

func applyComparison[T any](c Comparison, schema record.Schema[T], records []T, rows *bitmap.RowSet) (*bitmap.RowSet, error) {
	get, ok := schema.Lookup(c.Property)
	if !ok {
		return nil, &ErrPropertyNotFilterable{Property: c.Property}
	}

	m, err := newMatcher(c)
	if err != nil {
		return nil, err
	}

	out := bitmap.New()
	for pos := range rows.Positions() {
		hit, err := m.match(get(records[pos]))
		if err != nil {
			return nil, err
		}
		if hit {
			out.Add(pos)
		}
	}
	return out, nil
}

// matcher evaluates one comparison, converting the literal once per
// property kind.
type matcher struct {
	op      Operator
	literal record.Value
	text    string

	convKind record.Kind
	conv     record.Value
}

func newMatcher(c Comparison) (*matcher, error) {
	m := &matcher{op: c.Operator, literal: c.Value}

	switch c.Operator {
	case OpStartsWith:
		if s, ok := c.Value.AsString(); ok {
			m.text = s[:len(s)-wildcardSuffixLen(s)]
		}
	case OpContains, OpEndsWith:
		m.text, _ = c.Value.AsString()
	case OpEqual, OpNotEqual, OpGreaterThan, OpGreaterEqual, OpLessThan, OpLessEqual:
	default:
		return nil, &ErrUnsupportedFilter{Node: c}
	}
	return m, nil
}

func wildcardSuffixLen(s string) int {
	if strings.HasSuffix(s, "*") || strings.HasSuffix(s, "%") {
		return 1
	}
	return 0
}

func (m *matcher) match(v record.Value) (bool, error) {
	if v.IsNull() || m.literal.IsNull() {
		return false, nil
	}

	switch m.op {
	case OpStartsWith, OpContains, OpEndsWith:
		s, ok := v.AsString()
		if !ok || m.literal.Kind != record.KindString {
			return false, nil
		}
		switch m.op {
		case OpStartsWith:
			return strings.HasPrefix(s, m.text), nil
		case OpContains:
			return strings.Contains(s, m.text), nil
		default:
			return strings.HasSuffix(s, m.text), nil
		}
	}

	lit, err := m.convert(v.Kind)
	if err != nil {
		return false, err
	}

	r := record.Compare(v, lit)
	switch m.op {
	case OpEqual:
		return r == 0, nil
	case OpNotEqual:
		return r != 0, nil
	case OpGreaterThan:
		return r > 0, nil
	case OpGreaterEqual:
		return r >= 0, nil
	case OpLessThan:
		return r < 0, nil
	default:
		return r <= 0, nil
	}
}

func (m *matcher) convert(k record.Kind) (record.Value, error) {
	if m.convKind == k {
		return m.conv, nil
	}
	v, err := record.Convert(m.literal, k)
	if err != nil {
		return record.Value{}, err
	}
	m.convKind, m.conv = k, v
	return v, nil
}
