// Package promcollector exports store metrics to Prometheus.
package promcollector

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hupe1980/dataprovider"
)

// DefaultNamespace is used when New is given an empty namespace.
const DefaultNamespace = "dataprovider"

// Collector implements dataprovider.MetricsCollector on Prometheus
// counters, histograms and gauges.
type Collector struct {
	counts        *prometheus.CounterVec
	countDuration prometheus.Histogram
	matched       prometheus.Gauge

	fetches       *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	fetched       prometheus.Counter

	replaces prometheus.Counter
	records  prometheus.Gauge
}

var _ dataprovider.MetricsCollector = (*Collector)(nil)

// New registers the store metrics with reg and returns the collector.
func New(reg prometheus.Registerer, namespace string) *Collector {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	f := promauto.With(reg)

	return &Collector{
		counts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "count_total",
			Help:      "Total number of count operations",
		}, []string{"result"}), // result: fresh|cached|error
		countDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "count_duration_seconds",
			Help:      "Duration of count operations in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		matched: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "filter_matched_records",
			Help:      "Number of records matched by the last counted filter",
		}),
		fetches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_total",
			Help:      "Total number of fetch operations",
		}, []string{"result"}), // result: ok|error
		fetchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of fetch operations in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		fetched: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetched_records_total",
			Help:      "Total number of records returned by fetch operations",
		}),
		replaces: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "replace_total",
			Help:      "Total number of bulk record replacements",
		}),
		records: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records",
			Help:      "Number of records currently installed",
		}),
	}
}

// RecordCount implements dataprovider.MetricsCollector.
func (c *Collector) RecordCount(cached bool, matched int, duration time.Duration, err error) {
	c.countDuration.Observe(duration.Seconds())
	switch {
	case err != nil:
		c.counts.WithLabelValues("error").Inc()
		return
	case cached:
		c.counts.WithLabelValues("cached").Inc()
	default:
		c.counts.WithLabelValues("fresh").Inc()
	}
	c.matched.Set(float64(matched))
}

// RecordFetch implements dataprovider.MetricsCollector.
func (c *Collector) RecordFetch(returned int, duration time.Duration, err error) {
	c.fetchDuration.Observe(duration.Seconds())
	if err != nil {
		c.fetches.WithLabelValues("error").Inc()
		return
	}
	c.fetches.WithLabelValues("ok").Inc()
	c.fetched.Add(float64(returned))
}

// RecordReplace implements dataprovider.MetricsCollector.
func (c *Collector) RecordReplace(count int) {
	c.replaces.Inc()
	c.records.Set(float64(count))
}
