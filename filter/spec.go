package filter

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/dataprovider/record"
)

// Spec is the document form of a filter tree.
//
// A node is either a conjunction (And set) or a leaf (Property and Op set).
// Kind optionally forces the literal's kind, e.g. "decimal" or "date".
//
//	and:
//	  - {property: name, op: startsWith, value: "An*"}
//	  - {property: age, op: ">=", value: 30}
//	  - {property: born, op: lt, value: "2000-01-01", kind: date}
type Spec struct {
	And      []Spec `yaml:"and,omitempty" json:"and,omitempty"`
	Property string `yaml:"property,omitempty" json:"property,omitempty"`
	Op       string `yaml:"op,omitempty" json:"op,omitempty"`
	Value    any    `yaml:"value,omitempty" json:"value,omitempty"`
	Kind     string `yaml:"kind,omitempty" json:"kind,omitempty"`
}

// Decode parses a YAML (or JSON) filter document. An empty document decodes
// to a nil filter.
func Decode(data []byte) (Node, error) {
	var s Spec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode filter: %w", err)
	}
	if s.And == nil && s.Property == "" && s.Op == "" {
		return nil, nil
	}
	return s.Node()
}

// Node builds the filter tree described by s.
func (s Spec) Node() (Node, error) {
	if s.And != nil {
		if s.Property != "" || s.Op != "" {
			return nil, fmt.Errorf("filter node mixes \"and\" with a leaf on %q", s.Property)
		}
		children := make([]Node, 0, len(s.And))
		for i, c := range s.And {
			n, err := c.Node()
			if err != nil {
				return nil, fmt.Errorf("and[%d]: %w", i, err)
			}
			children = append(children, n)
		}
		return And(children...), nil
	}

	if s.Property == "" {
		return nil, fmt.Errorf("filter leaf without property")
	}
	op, err := ParseOperator(s.Op)
	if err != nil {
		return nil, err
	}

	v, err := record.FromAny(s.Value)
	if err != nil {
		return nil, fmt.Errorf("filter %q value: %w", s.Property, err)
	}
	if s.Kind != "" {
		k, err := record.ParseKind(s.Kind)
		if err != nil {
			return nil, err
		}
		if v, err = record.Convert(v, k); err != nil {
			return nil, fmt.Errorf("filter %q value: %w", s.Property, err)
		}
	}

	return New(s.Property, op, v)
}
