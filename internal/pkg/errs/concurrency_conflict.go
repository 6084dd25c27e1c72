package errs

import (
	"errors"
	"fmt"
)

// ErrConcurrencyConflict is the sentinel error for all ConcurrencyConflictError
// instances. A conflict means the aggregate was modified between read and write;
// the caller must reload and retry, never merge blindly.
var ErrConcurrencyConflict = errors.New("concurrency conflict")

// ConcurrencyConflictError indicates an optimistic concurrency version mismatch
// detected at write time.
type ConcurrencyConflictError struct {
	ParamName string
	ID        any
	Version   int
}

// NewConcurrencyConflictError creates a ConcurrencyConflictError for the aggregate
// identified by id whose expected version did not match the stored one.
func NewConcurrencyConflictError(paramName string, id any, version int) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{
		ParamName: paramName,
		ID:        id,
		Version:   version,
	}
}

func (e *ConcurrencyConflictError) Error() string {
	return fmt.Sprintf("%s: %s %s was modified concurrently, expected version is: %d",
		ErrConcurrencyConflict, e.ParamName, e.ID, e.Version)
}

func (e *ConcurrencyConflictError) Unwrap() error {
	return ErrConcurrencyConflict
}
