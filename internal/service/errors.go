package service

import (
	"errors"
	"fmt"
)

// ErrNotFound is the sentinel matched by errors.Is for every not-found
// condition: empty table, unknown symbol, unknown tool.
var ErrNotFound = errors.New("not found")

// InputError reports a malformed request parameter. Param names the
// offending field so callers can correct it.
type InputError struct {
	Param  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Param, e.Reason)
}

// NotFoundError reports a missing resource by kind and name.
type NotFoundError struct {
	What string
	Name string
}

func (e *NotFoundError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s not found", e.What)
	}
	return fmt.Sprintf("%s %q not found", e.What, e.Name)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// InsufficientDataError reports an analysis window with too few usable
// samples to compute statistics.
type InsufficientDataError struct {
	Symbol  string
	Samples int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for %s: %d usable samples, need at least 2",
		e.Symbol, e.Samples)
}

// StoreUnavailableError reports that the store could not serve the
// request: connection failure, query timeout, or shutdown in progress.
type StoreUnavailableError struct {
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("store unavailable: %v", e.Err)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }
