package blobstore

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
)

// MemoryStore keeps blobs in a map. It is safe for concurrent use and is
// mostly useful in tests and for snapshots built in-process.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

var _ WritableStore = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreFrom(nil)
}

// NewMemoryStoreFrom returns a store seeded with copies of blobs.
func NewMemoryStoreFrom(blobs map[string][]byte) *MemoryStore {
	m := &MemoryStore{blobs: make(map[string][]byte, len(blobs))}
	for name, data := range blobs {
		m.blobs[name] = slices.Clone(data)
	}
	return m
}

func (m *MemoryStore) Open(_ context.Context, name string) (Blob, error) {
	m.mu.RLock()
	data, ok := m.blobs[name]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return memoryBlob(data), nil
}

// Put stores a copy of data, replacing any blob of the same name.
func (m *MemoryStore) Put(_ context.Context, name string, data []byte) error {
	data = slices.Clone(data)
	m.mu.Lock()
	m.blobs[name] = data
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	delete(m.blobs, name)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) List(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := slices.Sorted(maps.Keys(m.blobs))
	return slices.DeleteFunc(names, func(name string) bool {
		return !strings.HasPrefix(name, prefix)
	}), nil
}

// memoryBlob aliases the stored slice. Put never writes into a stored
// slice, so open blobs keep seeing the version they opened.
type memoryBlob []byte

func (b memoryBlob) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	return readAt(b, p, off)
}

func (b memoryBlob) Close() error           { return nil }
func (b memoryBlob) Size() int64            { return int64(len(b)) }
func (b memoryBlob) Bytes() ([]byte, error) { return b, nil }
