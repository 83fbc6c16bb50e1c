package billing

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated matches every *AuthError via errors.Is.
var ErrNotAuthenticated = errors.New("not authenticated")

// ValidationError reports the first input field that failed a local check.
// It is always returned before any store call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// AuthError is returned when no user is signed in.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("not authenticated: %v", e.Err)
	}
	return "not authenticated"
}

func (e *AuthError) Unwrap() error { return e.Err }

func (e *AuthError) Is(target error) bool { return target == ErrNotAuthenticated }

// StoreError wraps a failure of the data store. Its message is the store's
// message verbatim.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return e.Err.Error() }

func (e *StoreError) Unwrap() error { return e.Err }

// PartialFailureError means the second write of a paired operation failed
// after the first one was committed.
type PartialFailureError struct {
	Op        string
	Completed string
	Err       error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%s partially failed (%s was saved): %v", e.Op, e.Completed, e.Err)
}

func (e *PartialFailureError) Unwrap() error { return e.Err }

type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	if e.ID == 0 {
		return fmt.Sprintf("no %s found", e.Resource)
	}
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
