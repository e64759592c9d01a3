package helper

import "fmt"

// Error wraps an underlying error with the operation that failed.
type Error struct {
	Context string
	Err     error
}

// NewError creates a new Error with the given operation context
func NewError(context string, err error) error {
	return &Error{Context: context, Err: err}
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("error in %s: %v", e.Context, e.Err)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}
