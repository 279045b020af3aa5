package scopestack

import (
	"errors"
	"fmt"
)

var (
	// ErrOrderViolation reports a handle finished while a handle created after
	// it is still live.
	ErrOrderViolation = errors.New("scopestack: handles must be released in LIFO order")
	// ErrNotInnermost reports access through a handle that has a live child.
	ErrNotInnermost = errors.New("scopestack: handle is not the innermost live handle")
	// ErrHandleFinished reports use of a handle after Pop or Release.
	ErrHandleFinished = errors.New("scopestack: handle already finished")
	// ErrStoreBorrowed reports a root push on a bottomless store that already
	// lends a live frame.
	ErrStoreBorrowed = errors.New("scopestack: store has a live frame")
)

// OrderError is the panic value raised when a handle is used against the LIFO
// discipline. It carries enough context to locate the offending frame and
// unwraps to one of the sentinel errors.
type OrderError struct {
	Op    Op
	Stack string
	Depth int
	Len   int
	State State
	Err   error
}

func (e *OrderError) Error() string {
	if e == nil {
		return "<nil>"
	}
	stack := e.Stack
	if stack == "" {
		stack = "<anonymous>"
	}
	return fmt.Sprintf("%v: op=%s stack=%s depth=%d len=%d state=%s", e.Err, e.Op, stack, e.Depth, e.Len, e.State)
}

func (e *OrderError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// AsOrderError extracts an *OrderError from a recovered panic value.
func AsOrderError(recovered any) (*OrderError, bool) {
	err, ok := recovered.(error)
	if !ok {
		return nil, false
	}
	var orderErr *OrderError
	if errors.As(err, &orderErr) {
		return orderErr, true
	}
	return nil, false
}
