// Package apperr defines the error taxonomy shared by every operation.
// Handlers map these to HTTP statuses in one place instead of choosing a
// status at each failure site.
package apperr

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindValidation       Kind = "validation_error"
	KindUnauthenticated  Kind = "unauthenticated"
	KindAccountLocked    Kind = "account_locked"
	KindForbidden        Kind = "forbidden"
	KindNotFound         Kind = "not_found"
	KindConflict         Kind = "conflict"
	KindInvalidOperation Kind = "invalid_operation"
	KindInternal         Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status maps the error kind to its HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindInvalidOperation:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindAccountLocked, KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func Validation(msg string) *Error       { return &Error{Kind: KindValidation, Message: msg} }
func Unauthenticated(msg string) *Error  { return &Error{Kind: KindUnauthenticated, Message: msg} }
func AccountLocked(msg string) *Error    { return &Error{Kind: KindAccountLocked, Message: msg} }
func Forbidden(msg string) *Error        { return &Error{Kind: KindForbidden, Message: msg} }
func NotFound(msg string) *Error         { return &Error{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) *Error         { return &Error{Kind: KindConflict, Message: msg} }
func InvalidOperation(msg string) *Error { return &Error{Kind: KindInvalidOperation, Message: msg} }

// Internal wraps an unexpected failure. The wrapped error is kept for
// logging; the message is what callers see.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// From extracts an *Error from err, wrapping anything else as Internal.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal("Internal server error", err)
}
