package models

import (
	"errors"
	"fmt"
)

// AppError is the application error type. Code classifies the failure so
// handlers can decide between a 404 page, a soft redirect, or a form
// re-render.
type AppError struct {
	Code    string
	Message string
	// Field names the offending form field for duplicate/validation errors.
	Field string
	Err   error
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

// Error codes.
const (
	CodeNotFound   = "NOT_FOUND"
	CodeForbidden  = "FORBIDDEN"
	CodeValidation = "VALIDATION_ERROR"
	CodeDuplicate  = "DUPLICATE"
	CodeInternal   = "INTERNAL_ERROR"
)

// NewNotFoundError reports a missing resource. Handlers render the 404
// page for it rather than leaking existence.
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %v not found", resource, id),
	}
}

// NewForbiddenError reports a mutation attempt by a non-owner. Handlers
// answer it with a redirect to the item's detail view, never an error page.
func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
	}
}

// NewValidationError reports rejected input.
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

// NewDuplicateError reports a unique-constraint violation on the named
// form field.
func NewDuplicateError(field string) *AppError {
	return &AppError{
		Code:    CodeDuplicate,
		Message: fmt.Sprintf("%s is already in use", field),
		Field:   field,
	}
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "internal error",
		Err:     err,
	}
}

func hasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsNotFound reports whether err is a not-found AppError.
func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

// IsForbidden reports whether err is a forbidden AppError.
func IsForbidden(err error) bool { return hasCode(err, CodeForbidden) }

// IsDuplicate reports whether err is a duplicate AppError.
func IsDuplicate(err error) bool { return hasCode(err, CodeDuplicate) }
