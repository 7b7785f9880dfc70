package filter

import "fmt"

// ErrPropertyNotFilterable is returned when a filter or sort clause names a
// property the record schema does not declare.
type ErrPropertyNotFilterable struct {
	Property string
}

func (e *ErrPropertyNotFilterable) Error() string {
	return fmt.Sprintf("property %q not declared as filterable", e.Property)
}

// ErrUnsupportedFilter is returned when evaluation meets a node it does not
// know how to evaluate.
type ErrUnsupportedFilter struct {
	Node Node
}

func (e *ErrUnsupportedFilter) Error() string {
	if e.Node == nil {
		return "unsupported filter <nil>"
	}
	return fmt.Sprintf("unsupported filter %T", e.Node)
}
