// Package errors provides the unified application error type for rolegate.
// Business failures carry a machine-readable code, the client-facing message,
// and the HTTP status they map to; unexpected failures keep their cause for
// server-side logging and surface only a generic message.
package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is the client-facing error message.
	Message string `json:"message"`
	// HTTPStatus is the HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error. Never serialized to clients.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// --- Common Error Constructors ---

// Validation creates an AppError for a business-rule shape violation (422).
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeValidation, Message: message,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// InvalidInput creates an AppError for a malformed request body (400).
func InvalidInput(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// Conflict creates an AppError for a uniqueness conflict (409).
func Conflict(message string) *AppError {
	return &AppError{
		Code: ErrCodeConflict, Message: message,
		HTTPStatus: http.StatusConflict,
	}
}

// Unauthorized creates an AppError for failed authentication (401).
func Unauthorized(message string) *AppError {
	return &AppError{
		Code: ErrCodeUnauthorized, Message: message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden creates an AppError for a role mismatch (403).
func Forbidden(message string) *AppError {
	return &AppError{
		Code: ErrCodeForbidden, Message: message,
		HTTPStatus: http.StatusForbidden,
	}
}

// Internal creates an AppError for an unexpected failure. The cause is kept
// for logging; clients only ever see the generic message.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "Internal server error",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}

// DatabaseError creates an AppError for a credential-store failure.
func DatabaseError(cause error) *AppError {
	return &AppError{
		Code: ErrCodeDatabase, Message: "Internal server error",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}
