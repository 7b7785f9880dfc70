package dataprovider

import (
	"context"

	"github.com/oklog/ulid/v2"
)

// FilterChangeEvent is delivered to listeners after a count evaluated a new
// filter.
type FilterChangeEvent struct {
	// Source is the name of the store that evaluated the filter.
	Source string
	// Signature is the canonical form of the new filter.
	Signature string
	// Matched is the number of records the filter selected.
	Matched int
}

// FilterChangeListener observes filter changes of a store.
type FilterChangeListener interface {
	FilterChange(ctx context.Context, e FilterChangeEvent)
}

// FilterChangeListenerFunc adapts a function to FilterChangeListener.
type FilterChangeListenerFunc func(ctx context.Context, e FilterChangeEvent)

// FilterChange implements FilterChangeListener.
func (f FilterChangeListenerFunc) FilterChange(ctx context.Context, e FilterChangeEvent) {
	f(ctx, e)
}

// ListenerID identifies a registered listener.
type ListenerID = ulid.ULID

type registeredListener struct {
	id ListenerID
	l  FilterChangeListener
}
