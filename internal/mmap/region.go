package mmap

import (
	"errors"
	"fmt"
	"os"
	"sync/atomic"
)

// ErrClosed is returned by Data after Close.
var ErrClosed = errors.New("mmap: region closed")

// Options configures Map.
type Options struct {
	// Sequential hints that the region is read front to back. Default true.
	Sequential bool
	// Prefetch asks the kernel to start reading the whole region ahead.
	Prefetch bool
}

// Region is a read-only view of a file's contents.
type Region struct {
	data   []byte
	mapped bool
	closed atomic.Bool
}

// Map maps the file at path read-only. Empty files produce an empty region
// without a mapping.
func Map(path string, optFns ...func(*Options)) (*Region, error) {
	opts := Options{Sequential: true}
	for _, fn := range optFns {
		fn(&opts)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := fi.Size()
	if size == 0 {
		return &Region{}, nil
	}
	if size < 0 || int64(int(size)) != size {
		return nil, fmt.Errorf("mmap: %s: unmappable size %d", path, size)
	}

	data, err := mapFile(f, int(size))
	if err != nil {
		return nil, fmt.Errorf("mmap: %s: %w", path, err)
	}
	// Hints are best effort.
	_ = advise(data, opts)

	return &Region{data: data, mapped: true}, nil
}

// Data returns the mapped bytes. The slice is invalid after Close.
func (r *Region) Data() ([]byte, error) {
	if r.closed.Load() {
		return nil, ErrClosed
	}
	return r.data, nil
}

// Len returns the region length in bytes. It stays valid after Close.
func (r *Region) Len() int { return len(r.data) }

// Close releases the mapping. Calling it again is a no-op.
func (r *Region) Close() error {
	if r.closed.Swap(true) || !r.mapped {
		return nil
	}
	return unmapFile(r.data)
}
