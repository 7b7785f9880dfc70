package dataprovider

import (
	"log/slog"
)

type options struct {
	name             string
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures a Store.
type Option func(*options)

// WithName names the store. The name is attached to log records and carried
// as the source of filter change events.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &dataprovider.BasicMetricsCollector{}
//	store := dataprovider.New(schema, dataprovider.WithMetricsCollector(metrics))
//	// ... use store ...
//	stats := metrics.GetStats()
//	fmt.Printf("Counts: %d, cache hits: %d\n", stats.CountCount, stats.CountCacheHits)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := dataprovider.NewJSONLogger(slog.LevelDebug)
//	store := dataprovider.New(schema, dataprovider.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	o.logger = o.logger.WithStore(o.name)
	return o
}
