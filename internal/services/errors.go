package services

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure a caller can act on
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindConflict
	KindUnauthenticated
	KindForbidden
	KindNotFound
)

// Error is the failure variant returned across the service boundary.
// Anything that is not an *Error is an infrastructure failure.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func ValidationError(format string, args ...interface{}) error {
	return newError(KindValidation, format, args...)
}

func ConflictError(format string, args ...interface{}) error {
	return newError(KindConflict, format, args...)
}

func UnauthenticatedError(format string, args ...interface{}) error {
	return newError(KindUnauthenticated, format, args...)
}

func ForbiddenError(format string, args ...interface{}) error {
	return newError(KindForbidden, format, args...)
}

func NotFoundError(format string, args ...interface{}) error {
	return newError(KindNotFound, format, args...)
}

// KindOf returns the kind of a service error, or 0 for other errors
func KindOf(err error) ErrorKind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return 0
}
