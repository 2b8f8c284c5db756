package models

import "errors"

// ActionError is the failure variant payload of an ActionResult.
type ActionError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// ActionResult is the uniform envelope returned by mutating actions.
// Exactly one of Data or Error is meaningful, selected by Success.
type ActionResult[T any] struct {
	Success bool         `json:"success"`
	Data    T            `json:"data,omitempty"`
	Error   *ActionError `json:"error,omitempty"`
}

// Ok wraps a successful payload.
func Ok[T any](data T) ActionResult[T] {
	return ActionResult[T]{Success: true, Data: data}
}

// Fail builds the failure variant from err. Storage failures carry a generic
// message so internal details are not exposed to callers.
func Fail[T any](err error) ActionResult[T] {
	kind := KindOf(err)
	message := "Something went wrong"
	var appErr *AppError
	if kind != KindStorage && errors.As(err, &appErr) {
		message = appErr.Message
	}
	return ActionResult[T]{Error: &ActionError{Kind: kind, Message: message}}
}
