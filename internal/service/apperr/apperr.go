package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for transport-level mapping.
type Kind int

const (
	// KindInternal represents an unexpected storage or transport failure.
	KindInternal Kind = iota
	// KindInvalidArgument represents malformed or semantically invalid caller input.
	KindInvalidArgument
	// KindNotFound represents a referenced entity that does not exist.
	KindNotFound
	// KindConflict represents a storage-level constraint violation.
	KindConflict
)

// Error is the service-level error carrying a machine readable kind.
type Error struct {
	Kind    Kind
	Entity  string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.Err
}

// InvalidArgument creates an error for invalid caller input.
func InvalidArgument(msg string) *Error {
	return &Error{
		Kind:    KindInvalidArgument,
		Message: msg,
	}
}

// NotFound creates an error for a missing entity, identifying kind and id.
func NotFound(entity string, id any) *Error {
	return &Error{
		Kind:    KindNotFound,
		Entity:  entity,
		Message: fmt.Sprintf("%s not found with id: %v", entity, id),
	}
}

// Conflict creates an error for a storage constraint violation.
func Conflict(msg string, err error) *Error {
	return &Error{
		Kind:    KindConflict,
		Message: msg,
		Err:     err,
	}
}

// Internal wraps an unexpected failure without leaking its details to callers.
func Internal(err error) *Error {
	return &Error{
		Kind:    KindInternal,
		Message: "internal error",
		Err:     err,
	}
}

// KindOf extracts the kind from an error chain. Unclassified errors are
// reported as KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}

	return KindInternal
}

// IsNotFound reports whether the error chain contains a not-found error.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
