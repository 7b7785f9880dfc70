// Package codec centralizes record encoding for snapshots and event bodies.
//
// Snapshots store the codec name in their header, so changing the codec of a
// writer never breaks readers of older blobs as long as the named codec is
// still listed here.
package codec

import (
	"fmt"
	"slices"
)

// Codec encodes and decodes values. Implementations must be safe for
// concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Default is the codec used when none is configured.
var Default Codec = GoJSON{}

var builtin = []Codec{JSON{}, GoJSON{}}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	i := slices.IndexFunc(builtin, func(c Codec) bool { return c.Name() == name })
	if i < 0 {
		return nil, false
	}
	return builtin[i], true
}

// Names lists the built-in codec names.
func Names() []string {
	names := make([]string, len(builtin))
	for i, c := range builtin {
		names[i] = c.Name()
	}
	return names
}

// MustMarshal encodes v with c, or Default when c is nil, and panics on
// failure. Tests and fixtures only.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s: marshal: %w", c.Name(), err))
	}
	return b
}
