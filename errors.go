package dataprovider

import (
	"errors"
	"fmt"

	"github.com/hupe1980/dataprovider/filter"
	"github.com/hupe1980/dataprovider/record"
)

var (
	// ErrConfiguration marks errors caused by a filter or sort clause that
	// does not fit the record schema. They signal a programming defect in the
	// query-building layer and are never retried.
	ErrConfiguration = errors.New("configuration error")

	// ErrNilFilter is returned when a provider is given a nil filter.
	// Use ClearFilter to remove the active filter.
	ErrNilFilter = errors.New("filter must not be nil")
)

// translateError normalizes package errors. Schema, filter and conversion
// errors are wrapped as ErrConfiguration; the cause stays reachable through
// errors.As.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrConfiguration) {
		return err
	}

	var nf *filter.ErrPropertyNotFilterable
	if errors.As(err, &nf) {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	var uf *filter.ErrUnsupportedFilter
	if errors.As(err, &uf) {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	var tm *record.ErrTypeMismatch
	if errors.As(err, &tm) {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	return err
}
