package apperr

import (
	"errors"
	"fmt"
)

// Error kinds. Every error crossing a service boundary belongs to exactly one
// of these; handlers map them to HTTP statuses.
var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Error carries a client-facing message plus the error kind and, optionally,
// the underlying store error.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Constructors

func Validation(msg string) *Error {
	return &Error{Kind: ErrValidation, Message: msg}
}

func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(msg string) *Error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

func Conflict(msg string, err error) *Error {
	return &Error{Kind: ErrConflict, Message: msg, Err: err}
}

func Unavailable(msg string, err error) *Error {
	return &Error{Kind: ErrStoreUnavailable, Message: msg, Err: err}
}

// Predicates

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

func IsUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}

// Message returns the client-facing message for an error, falling back to a
// generic string for errors that did not originate in a service.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}
