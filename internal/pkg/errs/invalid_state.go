package errs

import (
	"errors"
	"fmt"
)

// ErrInvalidState is the sentinel error for all InvalidStateError instances.
// It classifies operations attempted outside the allowed state transition set;
// the target aggregate is left unchanged.
var ErrInvalidState = errors.New("state is invalid")

// InvalidStateError indicates that an operation is not legal in the current
// lifecycle state of an aggregate.
type InvalidStateError struct {
	Operation string
	State     string
	Cause     error
}

// NewInvalidStateError creates an InvalidStateError for an operation rejected
// in the given state.
func NewInvalidStateError(operation, state string) *InvalidStateError {
	return &InvalidStateError{
		Operation: operation,
		State:     state,
	}
}

// NewInvalidStateErrorWithCause creates an InvalidStateError wrapping an
// underlying cause.
func NewInvalidStateErrorWithCause(operation, state string, cause error) *InvalidStateError {
	return &InvalidStateError{
		Operation: operation,
		State:     state,
		Cause:     cause,
	}
}

func (e *InvalidStateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s is not allowed in state %s (cause: %s)",
			ErrInvalidState, e.Operation, e.State, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s is not allowed in state %s", ErrInvalidState, e.Operation, e.State)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}
