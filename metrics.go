package dataprovider

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the
// promcollector package provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordCount is called after each count. cached reports whether the
	// result came from the cache, matched is the returned size.
	RecordCount(cached bool, matched int, duration time.Duration, err error)

	// RecordFetch is called after each fetch with the number of records returned.
	RecordFetch(returned int, duration time.Duration, err error)

	// RecordReplace is called after each bulk replacement with the new size.
	RecordReplace(count int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCount(bool, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordFetch(int, time.Duration, error)       {}
func (NoopMetricsCollector) RecordReplace(int)                           {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	CountCount      atomic.Int64
	CountCacheHits  atomic.Int64
	CountErrors     atomic.Int64
	CountTotalNanos atomic.Int64
	FetchCount      atomic.Int64
	FetchErrors     atomic.Int64
	FetchRecords    atomic.Int64
	FetchTotalNanos atomic.Int64
	ReplaceCount    atomic.Int64
	RecordsLoaded   atomic.Int64
}

// RecordCount implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCount(cached bool, matched int, duration time.Duration, err error) {
	b.CountCount.Add(1)
	b.CountTotalNanos.Add(duration.Nanoseconds())
	if cached {
		b.CountCacheHits.Add(1)
	}
	if err != nil {
		b.CountErrors.Add(1)
	}
}

// RecordFetch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFetch(returned int, duration time.Duration, err error) {
	b.FetchCount.Add(1)
	b.FetchTotalNanos.Add(duration.Nanoseconds())
	b.FetchRecords.Add(int64(returned))
	if err != nil {
		b.FetchErrors.Add(1)
	}
}

// RecordReplace implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReplace(count int) {
	b.ReplaceCount.Add(1)
	b.RecordsLoaded.Store(int64(count))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		CountCount:     b.CountCount.Load(),
		CountCacheHits: b.CountCacheHits.Load(),
		CountErrors:    b.CountErrors.Load(),
		CountAvgNanos:  avg(b.CountTotalNanos.Load(), b.CountCount.Load()),
		FetchCount:     b.FetchCount.Load(),
		FetchErrors:    b.FetchErrors.Load(),
		FetchRecords:   b.FetchRecords.Load(),
		FetchAvgNanos:  avg(b.FetchTotalNanos.Load(), b.FetchCount.Load()),
		ReplaceCount:   b.ReplaceCount.Load(),
		RecordsLoaded:  b.RecordsLoaded.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	CountCount     int64
	CountCacheHits int64
	CountErrors    int64
	CountAvgNanos  int64
	FetchCount     int64
	FetchErrors    int64
	FetchRecords   int64
	FetchAvgNanos  int64
	ReplaceCount   int64
	RecordsLoaded  int64
}
