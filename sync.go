package dataprovider

import (
	"context"
	"sync"

	"github.com/hupe1980/dataprovider/filter"
)

// SyncStore serializes every operation on a Store behind a mutex.
//
// Listeners run while the lock is held and must not call back into the store.
type SyncStore[T any] struct {
	mu    sync.Mutex
	store *Store[T]
}

// NewSyncStore wraps store.
func NewSyncStore[T any](store *Store[T]) *SyncStore[T] {
	return &SyncStore[T]{store: store}
}

// ReplaceAll installs a new record collection.
func (s *SyncStore[T]) ReplaceAll(ctx context.Context, records []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.ReplaceAll(ctx, records)
}

// Len returns the number of installed records.
func (s *SyncStore[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Len()
}

// Count returns the number of records matching f.
func (s *SyncStore[T]) Count(ctx context.Context, f filter.Node) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Count(ctx, f)
}

// Fetch returns a sorted page of the records matching f.
func (s *SyncStore[T]) Fetch(ctx context.Context, f filter.Node, sortBy []SortClause, rng Range) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Fetch(ctx, f, sortBy, rng)
}

// AddFilterChangeListener registers l.
func (s *SyncStore[T]) AddFilterChangeListener(l FilterChangeListener) ListenerID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.AddFilterChangeListener(l)
}

// RemoveFilterChangeListener unregisters the listener with the given id.
func (s *SyncStore[T]) RemoveFilterChangeListener(id ListenerID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.RemoveFilterChangeListener(id)
}
