package source

import (
	"errors"
	"fmt"
)

// ErrBusy is returned by TryLoad when no load slot or decode memory is free.
var ErrBusy = errors.New("source: loader busy")

// ValidationError reports a loaded document that does not match the field schema.
type ValidationError struct {
	Blob  string
	Index int
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("blob %q record %d: %v", e.Blob, e.Index, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }
