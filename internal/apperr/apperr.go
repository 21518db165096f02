// Package apperr defines the error type shared by Blinkrail packages
package apperr

import (
	"fmt"
)

// Error is an application error. Package level values act as templates:
// Fmt and Wrap derive new errors that still match the template with
// errors.Is.
type Error struct {
	Cause   error
	base    *Error
	Message string
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}

	return e.Message + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the template this error was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.root() == t.root()
}

// Fmt returns a copy of the error with its message formatted using args.
func (e *Error) Fmt(args ...any) *Error {
	return &Error{
		Message: fmt.Sprintf(e.Message, args...),
		Cause:   e.Cause,
		base:    e.root(),
	}
}

// Wrap returns a copy of the error that carries err as its cause.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		Message: e.Message,
		Cause:   err,
		base:    e.root(),
	}
}

func (e *Error) root() *Error {
	if e.base != nil {
		return e.base
	}

	return e
}
