package dataprovider

import (
	"context"

	"github.com/hupe1980/dataprovider/filter"
)

// Queryable is the read side shared by Store and SyncStore.
type Queryable[T any] interface {
	Count(ctx context.Context, f filter.Node) (int, error)
	Fetch(ctx context.Context, f filter.Node, sortBy []SortClause, rng Range) ([]T, error)
}

var (
	_ Queryable[any] = (*Store[any])(nil)
	_ Queryable[any] = (*SyncStore[any])(nil)
)

// Page is one slice of a query result together with the total match count.
type Page[T any] struct {
	Items []T
	Total int
}

// Query counts and fetches in one call. Counting first primes the cache, so
// the fetch reuses the evaluated row set.
func Query[T any](ctx context.Context, q Queryable[T], f filter.Node, sortBy []SortClause, rng Range) (Page[T], error) {
	total, err := q.Count(ctx, f)
	if err != nil {
		return Page[T]{}, err
	}
	items, err := q.Fetch(ctx, f, sortBy, rng)
	if err != nil {
		return Page[T]{}, err
	}
	return Page[T]{Items: items, Total: total}, nil
}

// Provider is a pageable view over a store with a replaceable active filter,
// the shape grid components page through: Size first, then Page per visible
// window.
type Provider[T any] struct {
	q      Queryable[T]
	filter filter.Node
}

// NewProvider creates an unfiltered provider over q.
func NewProvider[T any](q Queryable[T]) *Provider[T] {
	return &Provider[T]{q: q}
}

// SetFilter replaces the active filter. A nil filter is rejected with
// ErrNilFilter; use ClearFilter instead.
func (p *Provider[T]) SetFilter(f filter.Node) error {
	if f == nil {
		return ErrNilFilter
	}
	p.filter = f
	return nil
}

// ClearFilter removes the active filter.
func (p *Provider[T]) ClearFilter() { p.filter = nil }

// Filter returns the active filter, or nil.
func (p *Provider[T]) Filter() filter.Node { return p.filter }

// Size returns the number of records matching the active filter.
func (p *Provider[T]) Size(ctx context.Context) (int, error) {
	return p.q.Count(ctx, p.filter)
}

// Page returns up to limit records starting at offset.
func (p *Provider[T]) Page(ctx context.Context, sortBy []SortClause, offset, limit int) ([]T, error) {
	return p.q.Fetch(ctx, p.filter, sortBy, pageRange(offset, limit))
}
