package source

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hupe1980/dataprovider/blobstore"
	"github.com/hupe1980/dataprovider/record"
	"github.com/hupe1980/dataprovider/resource"
	"github.com/hupe1980/dataprovider/snapshot"
	"golang.org/x/sync/errgroup"
)

// Replacer swaps the full record set of a store.
type Replacer interface {
	ReplaceAll(ctx context.Context, records []record.Document)
}

// Option configures a Loader.
type Option func(l *Loader)

// WithLogger sets the logger for the loader.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithController bounds concurrent loads, decode memory and read throughput.
func WithController(rc *resource.Controller) Option {
	return func(l *Loader) {
		l.rc = rc
	}
}

// WithFieldSchema validates every loaded document against schema.
func WithFieldSchema(schema record.FieldSchema) Option {
	return func(l *Loader) {
		l.schema = schema
	}
}

// Loader reads record snapshots from a blob store.
type Loader struct {
	store  blobstore.BlobStore
	rc     *resource.Controller
	schema record.FieldSchema
	logger *slog.Logger
}

// NewLoader creates a loader reading from store.
func NewLoader(store blobstore.BlobStore, optFns ...Option) *Loader {
	l := &Loader{store: store}
	for _, fn := range optFns {
		fn(l)
	}
	return l
}

// Load reads and decodes a single snapshot.
func (l *Loader) Load(ctx context.Context, name string) ([]record.Document, error) {
	if err := l.rc.AcquireLoad(ctx); err != nil {
		return nil, err
	}
	defer l.rc.ReleaseLoad()

	return l.load(ctx, name, l.rc.AcquireMemory)
}

// TryLoad is like Load but returns ErrBusy instead of waiting for a load
// slot or decode memory.
func (l *Loader) TryLoad(ctx context.Context, name string) ([]record.Document, error) {
	if !l.rc.TryAcquireLoad() {
		return nil, ErrBusy
	}
	defer l.rc.ReleaseLoad()

	return l.load(ctx, name, func(_ context.Context, bytes int64) error {
		if !l.rc.TryAcquireMemory(bytes) {
			return ErrBusy
		}
		return nil
	})
}

func (l *Loader) load(ctx context.Context, name string, reserve func(context.Context, int64) error) ([]record.Document, error) {
	start := time.Now()

	data, err := blobstore.ReadAll(ctx, l.store, name)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}

	size := int64(len(data))
	if err := l.rc.AcquireIO(ctx, len(data)); err != nil {
		return nil, err
	}
	if err := reserve(ctx, size); err != nil {
		return nil, err
	}
	defer l.rc.ReleaseMemory(size)

	docs, err := snapshot.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}

	if l.schema != nil {
		for i, doc := range docs {
			if err := l.schema.Validate(doc); err != nil {
				return nil, &ValidationError{Blob: name, Index: i, Err: err}
			}
		}
	}

	if l.logger != nil {
		l.logger.DebugContext(ctx, "snapshot loaded",
			"blob", name,
			"size", humanize.IBytes(uint64(size)),
			"records", len(docs),
			"duration", time.Since(start),
		)
	}
	return docs, nil
}

// LoadPrefix loads every snapshot whose name starts with prefix and
// concatenates the records in blob name order.
func (l *Loader) LoadPrefix(ctx context.Context, prefix string) ([]record.Document, error) {
	names, err := l.store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", prefix, err)
	}

	parts := make([][]record.Document, len(names))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		if err := l.rc.AcquireLoad(gctx); err != nil {
			break
		}
		g.Go(func() error {
			defer l.rc.ReleaseLoad()
			docs, err := l.load(gctx, name, l.rc.AcquireMemory)
			if err != nil {
				return err
			}
			parts[i] = docs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var total int
	for _, p := range parts {
		total += len(p)
	}
	docs := make([]record.Document, 0, total)
	for _, p := range parts {
		docs = append(docs, p...)
	}

	if l.logger != nil {
		l.logger.InfoContext(ctx, "snapshots loaded",
			"prefix", prefix,
			"blobs", len(names),
			"records", len(docs),
		)
	}
	return docs, nil
}

// Refresh loads every snapshot under prefix and replaces the content of dst.
// dst is left untouched when loading fails.
func (l *Loader) Refresh(ctx context.Context, dst Replacer, prefix string) (int, error) {
	docs, err := l.LoadPrefix(ctx, prefix)
	if err != nil {
		return 0, err
	}
	dst.ReplaceAll(ctx, docs)
	return len(docs), nil
}
