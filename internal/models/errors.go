package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures surfaced at the action boundary.
type ErrorKind string

const (
	KindValidation       ErrorKind = "VALIDATION_ERROR"
	KindNotFound         ErrorKind = "NOT_FOUND"
	KindUnauthorized     ErrorKind = "UNAUTHORIZED"
	KindConflictResolved ErrorKind = "CONFLICT_RESOLVED"
	KindStorage          ErrorKind = "STORAGE_FAILURE"
)

// AppError represents a classified application error
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError reports rejected input.
func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

// NewNotFoundError reports a missing referenced entity.
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

// NewUnauthorizedError reports an actor acting on a resource it does not own,
// or an unauthenticated caller.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: message}
}

// NewStorageError wraps an underlying store failure.
func NewStorageError(operation string, err error) *AppError {
	return &AppError{
		Kind:    KindStorage,
		Message: operation + " failed",
		Err:     err,
	}
}

// KindOf returns the classification of err; unclassified errors are storage failures.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStorage
}

// IsKind reports whether err carries the given classification.
func IsKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}
