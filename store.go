package dataprovider

import (
	"context"
	"slices"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hupe1980/dataprovider/filter"
	"github.com/hupe1980/dataprovider/internal/bitmap"
	"github.com/hupe1980/dataprovider/record"
)

// Store is an in-memory collection of records answering filtered, sorted and
// paginated queries.
//
// The store keeps a single cache entry: the row set of the last filter
// evaluated by Count. Fetch reuses it when the filter signature matches but
// never writes it.
//
// Store is not safe for concurrent use. Use SyncStore, or one store per
// session, when calls may overlap.
type Store[T any] struct {
	schema  record.Schema[T]
	records []T

	cache cacheEntry

	listeners []registeredListener

	name    string
	logger  *Logger
	metrics MetricsCollector
}

type cacheEntry struct {
	signature string
	rows      *bitmap.RowSet
	valid     bool
}

func (c *cacheEntry) invalidate() { c.valid = false }

func (c *cacheEntry) lookup(signature string) (*bitmap.RowSet, bool) {
	if !c.valid || c.signature != signature {
		return nil, false
	}
	return c.rows, true
}

// New creates an empty store reading records through schema.
func New[T any](schema record.Schema[T], optFns ...Option) *Store[T] {
	opts := applyOptions(optFns)

	return &Store[T]{
		schema:  schema,
		name:    opts.name,
		logger:  opts.logger,
		metrics: opts.metricsCollector,
	}
}

// Name returns the configured store name.
func (s *Store[T]) Name() string { return s.name }

// Schema returns the record schema.
func (s *Store[T]) Schema() record.Schema[T] { return s.schema }

// ReplaceAll installs a new record collection and invalidates the cache.
//
// The slice is copied; the records themselves are shared and must not be
// mutated while installed.
func (s *Store[T]) ReplaceAll(ctx context.Context, records []T) {
	s.records = slices.Clone(records)
	s.cache.invalidate()

	s.logger.LogReplace(ctx, len(s.records))
	s.metrics.RecordReplace(len(s.records))
}

// Len returns the number of installed records.
func (s *Store[T]) Len() int { return len(s.records) }

// Count returns the number of records matching f.
//
// A nil filter returns the collection size and invalidates the cache. A
// filter whose signature matches the valid cache entry is answered from the
// cache. Any other filter is evaluated, cached, and announced to every
// listener.
func (s *Store[T]) Count(ctx context.Context, f filter.Node) (int, error) {
	start := time.Now()

	if f == nil {
		s.cache.invalidate()
		s.logger.LogCount(ctx, "", len(s.records), false, nil)
		s.metrics.RecordCount(false, len(s.records), time.Since(start), nil)
		return len(s.records), nil
	}

	if err := filter.Validate(f); err != nil {
		err = translateError(err)
		s.logger.LogCount(ctx, "", 0, false, err)
		s.metrics.RecordCount(false, 0, time.Since(start), err)
		return 0, err
	}

	signature := filter.Signature(f)
	if rows, ok := s.cache.lookup(signature); ok {
		n := rows.Len()
		s.logger.LogCount(ctx, signature, n, true, nil)
		s.metrics.RecordCount(true, n, time.Since(start), nil)
		return n, nil
	}

	rows, err := s.evaluate(f)
	if err != nil {
		err = translateError(err)
		s.logger.LogCount(ctx, signature, 0, false, err)
		s.metrics.RecordCount(false, 0, time.Since(start), err)
		return 0, err
	}

	s.cache = cacheEntry{signature: signature, rows: rows, valid: true}

	n := rows.Len()
	s.logger.LogCount(ctx, signature, n, false, nil)
	s.metrics.RecordCount(false, n, time.Since(start), nil)

	s.notify(ctx, FilterChangeEvent{Source: s.name, Signature: signature, Matched: n})

	return n, nil
}

// Fetch returns the records matching f, sorted by the first sort clause and
// sliced to rng. The result is never nil.
//
// A nil filter selects the whole collection.
func (s *Store[T]) Fetch(ctx context.Context, f filter.Node, sortBy []SortClause, rng Range) ([]T, error) {
	start := time.Now()

	if err := filter.Validate(f); err != nil {
		err = translateError(err)
		s.logger.LogFetch(ctx, "", 0, err)
		s.metrics.RecordFetch(0, time.Since(start), err)
		return nil, err
	}

	signature := filter.Signature(f)

	out, err := s.fetch(f, signature, sortBy, rng)
	if err != nil {
		err = translateError(err)
		s.logger.LogFetch(ctx, signature, 0, err)
		s.metrics.RecordFetch(0, time.Since(start), err)
		return nil, err
	}

	s.logger.LogFetch(ctx, signature, len(out), nil)
	s.metrics.RecordFetch(len(out), time.Since(start), nil)
	return out, nil
}

func (s *Store[T]) fetch(f filter.Node, signature string, sortBy []SortClause, rng Range) ([]T, error) {
	var rows *bitmap.RowSet
	switch cached, ok := s.cache.lookup(signature); {
	case f == nil:
		rows = bitmap.All(len(s.records))
	case ok:
		rows = cached
	default:
		var err error
		if rows, err = s.evaluate(f); err != nil {
			return nil, err
		}
	}

	positions := rows.ToArray()
	if err := sortPositions(s.schema, s.records, positions, sortBy); err != nil {
		return nil, err
	}

	lo, hi := rng.bounds(len(positions))
	out := make([]T, 0, hi-lo)
	for _, pos := range positions[lo:hi] {
		out = append(out, s.records[pos])
	}
	return out, nil
}

func (s *Store[T]) evaluate(f filter.Node) (*bitmap.RowSet, error) {
	return filter.Apply(f, s.schema, s.records, bitmap.All(len(s.records)))
}

// AddFilterChangeListener registers l and returns its id. Listeners are
// notified in registration order.
func (s *Store[T]) AddFilterChangeListener(l FilterChangeListener) ListenerID {
	id := ulid.Make()
	s.listeners = append(s.listeners, registeredListener{id: id, l: l})
	return id
}

// RemoveFilterChangeListener unregisters the listener with the given id. It
// reports whether a listener was removed.
func (s *Store[T]) RemoveFilterChangeListener(id ListenerID) bool {
	i := slices.IndexFunc(s.listeners, func(r registeredListener) bool { return r.id == id })
	if i < 0 {
		return false
	}
	s.listeners = slices.Delete(s.listeners, i, i+1)
	return true
}

func (s *Store[T]) notify(ctx context.Context, e FilterChangeEvent) {
	s.logger.LogFilterChange(ctx, e.Signature, len(s.listeners))
	for _, r := range slices.Clone(s.listeners) {
		r.l.FilterChange(ctx, e)
	}
}
