package mmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "part-0001.snap")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestMap(t *testing.T) {
	tests := []struct {
		name string
		opts func(*Options)
	}{
		{name: "default"},
		{name: "prefetch", opts: func(o *Options) { o.Prefetch = true }},
		{name: "no hints", opts: func(o *Options) { o.Sequential = false }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var optFns []func(*Options)
			if tt.opts != nil {
				optFns = append(optFns, tt.opts)
			}

			r, err := Map(writeFile(t, []byte("DPRS snapshot")), optFns...)
			require.NoError(t, err)
			defer r.Close()

			data, err := r.Data()
			require.NoError(t, err)
			assert.Equal(t, "DPRS snapshot", string(data))
			assert.Equal(t, 13, r.Len())
		})
	}
}

func TestMap_EmptyFile(t *testing.T) {
	r, err := Map(writeFile(t, nil))
	require.NoError(t, err)

	data, err := r.Data()
	require.NoError(t, err)
	assert.Empty(t, data)
	assert.Equal(t, 0, r.Len())
	require.NoError(t, r.Close())
}

func TestRegion_Close(t *testing.T) {
	r, err := Map(writeFile(t, []byte("payload")))
	require.NoError(t, err)

	require.NoError(t, r.Close())
	require.NoError(t, r.Close())

	_, err = r.Data()
	assert.ErrorIs(t, err, ErrClosed)
	assert.Equal(t, 7, r.Len())
}

func TestMap_Missing(t *testing.T) {
	_, err := Map(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
