package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error.
type Kind string

const (
	// KindValidation marks a missing or malformed input.
	KindValidation Kind = "validation"
	// KindNotFound marks an id that does not resolve.
	KindNotFound Kind = "not_found"
	// KindProtected marks an attempt to alter a root container.
	KindProtected Kind = "protected"
	// KindTypeMismatch marks a folder/link type conflict.
	KindTypeMismatch Kind = "type_mismatch"
	// KindStore marks a failure of the underlying store.
	KindStore Kind = "store"
)

// Error is a classified error.
type Error struct {
	// Kind is the error class.
	Kind Kind
	// Op is the operation that failed (e.g. "deleteFolder").
	Op string
	// Message is a human readable description.
	Message string
	// Err is the wrapped cause, if any.
	Err error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	} else if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	if e.Op == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation returns a KindValidation error.
func Validation(op, format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: fmt.Sprintf(format, args...)}
}

// NotFound returns a KindNotFound error for the given id.
func NotFound(op, id string) *Error {
	return &Error{Kind: KindNotFound, Op: op, Message: fmt.Sprintf("bookmark %s not found", id)}
}

// Protected returns a KindProtected error for the given id.
func Protected(op, id string) *Error {
	return &Error{Kind: KindProtected, Op: op, Message: fmt.Sprintf("%s is a root container and cannot be modified", id)}
}

// TypeMismatch returns a KindTypeMismatch error.
func TypeMismatch(op, id, want string) *Error {
	return &Error{Kind: KindTypeMismatch, Op: op, Message: fmt.Sprintf("%s is not a %s", id, want)}
}

// Store wraps a store failure.
func Store(op string, err error) *Error {
	return &Error{Kind: KindStore, Op: op, Err: err}
}

// KindOf returns the kind of err, or KindStore for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStore
}

// IsKind reports whether err is a classified error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
