package dataprovider

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/dataprovider/filter"
	"github.com/hupe1980/dataprovider/record"
)

type person struct {
	Name    string
	Age     int64
	Balance decimal.Decimal
}

var personSchema = record.Schema[person]{
	"name":    func(p person) record.Value { return record.String(p.Name) },
	"age":     func(p person) record.Value { return record.Int(p.Age) },
	"balance": func(p person) record.Value { return record.Decimal(p.Balance) },
}

func samplePeople() []person {
	return []person{
		{Name: "Ana", Age: 30, Balance: decimal.RequireFromString("1.5")},
		{Name: "Ben", Age: 25, Balance: decimal.RequireFromString("20")},
		{Name: "Ana", Age: 40, Balance: decimal.RequireFromString("3")},
	}
}

func newStore(t *testing.T, opts ...Option) (*Store[person], *BasicMetricsCollector) {
	t.Helper()
	metrics := &BasicMetricsCollector{}
	opts = append([]Option{WithMetricsCollector(metrics)}, opts...)
	s := New(personSchema, opts...)
	s.ReplaceAll(context.Background(), samplePeople())
	return s, metrics
}

type recordingListener struct {
	events []FilterChangeEvent
}

func (r *recordingListener) FilterChange(_ context.Context, e FilterChangeEvent) {
	r.events = append(r.events, e)
}

func TestFilterSortAndPage(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	f := filter.Eq("name", record.String("Ana"))

	n, err := s.Count(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := s.Fetch(ctx, f, []SortClause{Desc("age")}, Range{Start: 0, End: 10})
	require.NoError(t, err)
	assert.Equal(t, []person{samplePeople()[2], samplePeople()[0]}, got)

	got, err = s.Fetch(ctx, f, []SortClause{Desc("age")}, Range{Start: 0, End: 1})
	require.NoError(t, err)
	assert.Equal(t, []person{samplePeople()[2]}, got)
}

func TestPrefixMatch(t *testing.T) {
	s, _ := newStore(t)
	n, err := s.Count(context.Background(), filter.StartsWith("name", "An*"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCountNilFilter(t *testing.T) {
	ctx := context.Background()
	s, metrics := newStore(t)
	f := filter.Eq("name", record.String("Ana"))

	_, err := s.Count(ctx, f)
	require.NoError(t, err)

	n, err := s.Count(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// The cache was invalidated, so the same filter is evaluated again.
	_, err = s.Count(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, int64(0), metrics.GetStats().CountCacheHits)
}

func TestCountCacheReuse(t *testing.T) {
	ctx := context.Background()
	s, metrics := newStore(t)
	l := &recordingListener{}
	s.AddFilterChangeListener(l)

	f := filter.Ge("age", record.Int(30))
	first, err := s.Count(ctx, f)
	require.NoError(t, err)

	before, err := s.Fetch(ctx, f, nil, Range{Start: 0, End: 10})
	require.NoError(t, err)

	// An equal but separately built filter has the same signature.
	second, err := s.Count(ctx, filter.Ge("age", record.Int(30)))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	after, err := s.Fetch(ctx, f, nil, Range{Start: 0, End: 10})
	require.NoError(t, err)
	assert.Equal(t, before, after)

	assert.Equal(t, int64(1), metrics.GetStats().CountCacheHits)
	assert.Len(t, l.events, 1)
}

func TestReplaceAllInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	s, metrics := newStore(t)
	l := &recordingListener{}
	s.AddFilterChangeListener(l)

	f := filter.Eq("name", record.String("Ana"))
	n, err := s.Count(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	s.ReplaceAll(ctx, []person{{Name: "Ana", Age: 1}})

	n, err = s.Count(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, int64(0), metrics.GetStats().CountCacheHits)
	assert.Len(t, l.events, 2)

	s.ReplaceAll(ctx, nil)
	assert.Equal(t, 0, s.Len())
	n, err = s.Count(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestFetchDoesNotWriteCache(t *testing.T) {
	ctx := context.Background()
	s, metrics := newStore(t)
	l := &recordingListener{}
	s.AddFilterChangeListener(l)

	f := filter.Eq("name", record.String("Ben"))
	got, err := s.Fetch(ctx, f, nil, Range{Start: 0, End: 10})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = s.Count(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, int64(0), metrics.GetStats().CountCacheHits)
	assert.Len(t, l.events, 1)
}

func TestFetchReadsCacheOnlyOnSignatureMatch(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	_, err := s.Count(ctx, filter.Eq("name", record.String("Ana")))
	require.NoError(t, err)

	got, err := s.Fetch(ctx, filter.Eq("name", record.String("Ben")), nil, Range{Start: 0, End: 10})
	require.NoError(t, err)
	assert.Equal(t, []person{samplePeople()[1]}, got)
}

func TestFetchNilFilterSortsAll(t *testing.T) {
	s, _ := newStore(t)
	got, err := s.Fetch(context.Background(), nil, []SortClause{Asc("age")}, Range{Start: 0, End: 10})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int64{25, 30, 40}, []int64{got[0].Age, got[1].Age, got[2].Age})
}

func TestPagination(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	f := filter.IsNotNull("name")

	tests := []struct {
		name string
		rng  Range
		want int
	}{
		{"empty range", Range{Start: 0, End: 0}, 0},
		{"inverted range", Range{Start: 2, End: 1}, 0},
		{"beyond size", Range{Start: 3, End: 103}, 0},
		{"far beyond size", Range{Start: 100, End: 200}, 0},
		{"larger than size", Range{Start: 0, End: 50}, 3},
		{"middle", Range{Start: 1, End: 2}, 1},
		{"tail", Range{Start: 1, End: 50}, 2},
		{"negative start", Range{Start: -5, End: 2}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Fetch(ctx, f, nil, tt.rng)
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestPaginationIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	sortBy := []SortClause{Asc("name")}

	a, err := s.Fetch(ctx, nil, sortBy, Range{Start: 0, End: 2})
	require.NoError(t, err)
	b, err := s.Fetch(ctx, nil, sortBy, Range{Start: 0, End: 2})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSortStability(t *testing.T) {
	s, _ := newStore(t)
	got, err := s.Fetch(context.Background(), nil, []SortClause{Asc("name"), Desc("age")}, Range{Start: 0, End: 10})
	require.NoError(t, err)

	// Equal names keep source order; the second clause is ignored.
	assert.Equal(t, []int64{30, 40, 25}, []int64{got[0].Age, got[1].Age, got[2].Age})

	got, err = s.Fetch(context.Background(), nil, []SortClause{Desc("name")}, Range{Start: 0, End: 10})
	require.NoError(t, err)
	assert.Equal(t, []int64{25, 30, 40}, []int64{got[0].Age, got[1].Age, got[2].Age})
}

func TestSortDecimal(t *testing.T) {
	s, _ := newStore(t)
	got, err := s.Fetch(context.Background(), nil, []SortClause{Asc("balance")}, Range{Start: 0, End: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"Ana", "Ana", "Ben"}, []string{got[0].Name, got[1].Name, got[2].Name})
	assert.Equal(t, int64(30), got[0].Age)
}

func TestConjunctionOrder(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	a := filter.StartsWith("name", "A*")
	b := filter.Gt("age", record.Int(35))

	ab, err := s.Fetch(ctx, filter.And(a, b), nil, Range{Start: 0, End: 10})
	require.NoError(t, err)
	ba, err := s.Fetch(ctx, filter.And(b, a), nil, Range{Start: 0, End: 10})
	require.NoError(t, err)
	assert.Equal(t, ab, ba)
	assert.Len(t, ab, 1)
}

func TestConfigurationErrors(t *testing.T) {
	ctx := context.Background()
	s, metrics := newStore(t)

	_, err := s.Count(ctx, filter.Eq("height", record.Int(1)))
	require.ErrorIs(t, err, ErrConfiguration)
	var nf *filter.ErrPropertyNotFilterable
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "height", nf.Property)

	_, err = s.Fetch(ctx, filter.Eq("age", record.Bool(true)), nil, Range{Start: 0, End: 1})
	require.ErrorIs(t, err, ErrConfiguration)
	var tm *record.ErrTypeMismatch
	require.True(t, errors.As(err, &tm))

	_, err = s.Fetch(ctx, nil, []SortClause{Asc("height")}, Range{Start: 0, End: 1})
	require.ErrorIs(t, err, ErrConfiguration)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.CountErrors)
	assert.Equal(t, int64(2), stats.FetchErrors)
}

func TestFailedCountKeepsCache(t *testing.T) {
	ctx := context.Background()
	s, metrics := newStore(t)
	f := filter.Eq("name", record.String("Ana"))

	_, err := s.Count(ctx, f)
	require.NoError(t, err)
	_, err = s.Count(ctx, filter.Eq("height", record.Int(1)))
	require.Error(t, err)

	n, err := s.Count(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, int64(1), metrics.GetStats().CountCacheHits)
}

func TestEmptyStoreSkipsValidation(t *testing.T) {
	s := New(personSchema)
	n, err := s.Count(context.Background(), filter.Eq("height", record.Int(1)))
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	got, err := s.Fetch(context.Background(), nil, []SortClause{Asc("height")}, Range{Start: 0, End: 1})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListeners(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t, WithName("people"))

	var order []string
	first := s.AddFilterChangeListener(FilterChangeListenerFunc(func(_ context.Context, e FilterChangeEvent) {
		order = append(order, "first:"+e.Signature)
	}))
	rec := &recordingListener{}
	s.AddFilterChangeListener(rec)

	_, err := s.Count(ctx, filter.Eq("name", record.String("Ana")))
	require.NoError(t, err)

	assert.Equal(t, []string{`first:"name" eq s:"Ana"`}, order)
	require.Len(t, rec.events, 1)
	assert.Equal(t, FilterChangeEvent{Source: "people", Signature: `"name" eq s:"Ana"`, Matched: 2}, rec.events[0])

	assert.True(t, s.RemoveFilterChangeListener(first))
	assert.False(t, s.RemoveFilterChangeListener(first))

	_, err = s.Count(ctx, filter.Eq("name", record.String("Ben")))
	require.NoError(t, err)
	assert.Len(t, order, 1)
	assert.Len(t, rec.events, 2)
}

func TestReplaceAllCopiesSlice(t *testing.T) {
	ctx := context.Background()
	people := samplePeople()
	s := New(personSchema)
	s.ReplaceAll(ctx, people)

	people[0] = person{Name: "Zoe"}

	got, err := s.Fetch(ctx, nil, nil, Range{Start: 0, End: 1})
	require.NoError(t, err)
	assert.Equal(t, "Ana", got[0].Name)
}

func TestDocumentStore(t *testing.T) {
	ctx := context.Background()
	s := New(record.DocumentSchema("name", "city"))
	s.ReplaceAll(ctx, []record.Document{
		{"name": record.String("Ana"), "city": record.String("Lima")},
		{"name": record.String("Ben")},
	})

	n, err := s.Count(ctx, filter.IsNull("city"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCountSignatureDoesNotCollide(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	a := filter.And(filter.Eq("name", record.String("Ana")), filter.Ne("name", record.String("Ben")))
	b := filter.And(filter.Eq("name", record.String("Ana, name ne s:Ben")))
	require.NotEqual(t, filter.Signature(a), filter.Signature(b))

	n, err := s.Count(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = s.Count(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	got, err := s.Fetch(ctx, b, nil, Range{Start: 0, End: 10})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNilPointerFilters(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		node filter.Node
	}{
		{"comparison", (*filter.Comparison)(nil)},
		{"null test", (*filter.NullTest)(nil)},
		{"conjunction", (*filter.Conjunction)(nil)},
		{"nested", filter.And(filter.Eq("name", record.String("Ana")), (*filter.Comparison)(nil))},
		{"nil child", filter.And(filter.Eq("name", record.String("Ana")), nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, metrics := newStore(t)
			var uf *filter.ErrUnsupportedFilter

			_, err := s.Count(ctx, tt.node)
			require.ErrorIs(t, err, ErrConfiguration)
			assert.True(t, errors.As(err, &uf))

			got, err := s.Fetch(ctx, tt.node, nil, Range{Start: 0, End: 10})
			require.ErrorIs(t, err, ErrConfiguration)
			assert.True(t, errors.As(err, &uf))
			assert.Nil(t, got)

			stats := metrics.GetStats()
			assert.Equal(t, int64(1), stats.CountErrors)
			assert.Equal(t, int64(1), stats.FetchErrors)
		})
	}
}
