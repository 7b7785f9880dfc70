package blobstore

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hupe1980/dataprovider/internal/mmap"
)

// LocalStore implements WritableStore using the local file system.
//
// Blob names are slash-separated paths relative to the root directory.
type LocalStore struct {
	root string
}

// NewLocalStore creates a new LocalStore rooted at the given directory.
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

// Root returns the directory the store is rooted at.
func (s *LocalStore) Root() string { return s.root }

// Open opens a blob for reading. Local blobs are memory mapped.
func (s *LocalStore) Open(_ context.Context, name string) (Blob, error) {
	r, err := mmap.Map(s.path(name))
	if err != nil {
		return nil, err
	}
	return &localBlob{r: r}, nil
}

// Put writes data to a temporary file and renames it into place.
func (s *LocalStore) Put(_ context.Context, name string, data []byte) error {
	path := s.path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.CreateTemp(filepath.Dir(path), ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Delete removes a blob.
func (s *LocalStore) Delete(_ context.Context, name string) error {
	err := os.Remove(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// List walks the root directory and returns blob names starting with prefix.
func (s *LocalStore) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == s.root {
				return fs.SkipAll
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".tmp-") {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(names)
	return names, nil
}

func (s *LocalStore) path(name string) string {
	return filepath.Join(s.root, filepath.FromSlash(name))
}

type localBlob struct {
	r *mmap.Region
}

func (b *localBlob) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	data, err := b.r.Data()
	if err != nil {
		return 0, err
	}
	return readAt(data, p, off)
}

func (b *localBlob) Close() error {
	return b.r.Close()
}

func (b *localBlob) Size() int64 {
	return int64(b.r.Len())
}

func (b *localBlob) Bytes() ([]byte, error) {
	return b.r.Data()
}
