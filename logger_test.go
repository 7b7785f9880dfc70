package dataprovider

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/dataprovider/filter"
	"github.com/hupe1980/dataprovider/record"
)

func TestLoggerHelpers(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})).WithStore("people")
	ctx := context.Background()

	l.LogCount(ctx, `"name" eq s:"Ana"`, 2, true, nil)
	l.LogFetch(ctx, "", 0, errors.New("boom"))
	l.LogReplace(ctx, 3)
	l.LogFilterChange(ctx, `"name" eq s:"Ana"`, 1)

	out := buf.String()
	assert.Contains(t, out, "count completed")
	assert.Contains(t, out, "cached=true")
	assert.Contains(t, out, "fetch failed")
	assert.Contains(t, out, "records replaced")
	assert.Contains(t, out, "filter changed")
	assert.Contains(t, out, "store=people")
}

func TestStoreLogsThroughOptions(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := New(personSchema, WithLogger(logger), WithName("people"))
	s.ReplaceAll(context.Background(), samplePeople())

	_, err := s.Count(context.Background(), filter.Eq("height", record.Int(1)))
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"count failed"`)
	assert.Contains(t, out, `"store":"people"`)
}

func TestNilOptions(t *testing.T) {
	s := New(personSchema, nil, WithLogger(nil), WithMetricsCollector(nil))
	s.ReplaceAll(context.Background(), samplePeople())
	n, err := s.Count(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestCountNilFilterIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := New(personSchema, WithLogger(logger), WithName("people"))
	s.ReplaceAll(context.Background(), samplePeople())

	n, err := s.Count(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	out := buf.String()
	assert.Contains(t, out, `"msg":"count completed"`)
	assert.Contains(t, out, `"store":"people"`)
	assert.Contains(t, out, `"filter":""`)
	assert.Contains(t, out, `"matched":3`)
}

func TestInvalidFilterIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := New(personSchema, WithLogger(logger))
	s.ReplaceAll(context.Background(), samplePeople())

	_, err := s.Count(context.Background(), (*filter.Comparison)(nil))
	require.Error(t, err)
	_, err = s.Fetch(context.Background(), (*filter.NullTest)(nil), nil, Range{Start: 0, End: 1})
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"count failed"`)
	assert.Contains(t, out, `"msg":"fetch failed"`)
}
