package event

import (
	"context"
	"log/slog"
	"sync"

	"github.com/hupe1980/dataprovider"
	"github.com/hupe1980/dataprovider/identity"
)

// FilterChangeName is the event name of recorded filter changes.
const FilterChangeName = "filterChange"

// Sink receives published envelopes.
type Sink interface {
	Publish(ctx context.Context, e Envelope) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, e Envelope) error

// Publish implements Sink.
func (f SinkFunc) Publish(ctx context.Context, e Envelope) error { return f(ctx, e) }

// MemorySink keeps published envelopes in memory.
type MemorySink struct {
	mu     sync.Mutex
	events []Envelope
}

// Publish implements Sink.
func (s *MemorySink) Publish(_ context.Context, e Envelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

// Events returns a copy of the published envelopes.
func (s *MemorySink) Events() []Envelope {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Envelope(nil), s.events...)
}

// FilterChangeBody is the body of filter change events.
type FilterChangeBody struct {
	Store   string `json:"store"`
	Filter  string `json:"filter"`
	Matched int    `json:"matched"`
}

// RecorderOption configures a FilterChangeRecorder.
type RecorderOption func(r *FilterChangeRecorder)

// WithType sets the event type of recorded changes. Default is TypeDBStore.
func WithType(typ Type) RecorderOption {
	return func(r *FilterChangeRecorder) {
		r.typ = typ
	}
}

// WithLogger sets the logger used to report publish failures.
func WithLogger(logger *slog.Logger) RecorderOption {
	return func(r *FilterChangeRecorder) {
		r.logger = logger
	}
}

// FilterChangeRecorder turns store filter changes into audit envelopes.
// The acting user is taken from the context passed to Count.
type FilterChangeRecorder struct {
	sink        Sink
	application string
	typ         Type
	logger      *slog.Logger
}

var _ dataprovider.FilterChangeListener = (*FilterChangeRecorder)(nil)

// NewFilterChangeRecorder creates a recorder publishing to sink.
func NewFilterChangeRecorder(sink Sink, application string, optFns ...RecorderOption) *FilterChangeRecorder {
	r := &FilterChangeRecorder{
		sink:        sink,
		application: application,
		typ:         TypeDBStore,
	}
	for _, fn := range optFns {
		fn(r)
	}
	return r
}

// FilterChange implements dataprovider.FilterChangeListener.
func (r *FilterChangeRecorder) FilterChange(ctx context.Context, e dataprovider.FilterChangeEvent) {
	user := identity.FromContext(ctx)

	env, err := New(r.typ, user.Username, FilterChangeName, r.application, e.Source, FilterChangeBody{
		Store:   e.Source,
		Filter:  e.Signature,
		Matched: e.Matched,
	})
	if err == nil {
		err = r.sink.Publish(ctx, env)
	}
	if err != nil && r.logger != nil {
		r.logger.ErrorContext(ctx, "publish filter change failed",
			"store", e.Source,
			"filter", e.Signature,
			"error", err,
		)
	}
}
