package errors

import (
	stderrors "errors"
)

// MessageResponse is the JSON body returned to clients for every failure.
// The shape is machine-stable: exactly one "message" field.
type MessageResponse struct {
	Message string `json:"message"`
}

// ToResponse converts an AppError to the client-facing response body.
func (e *AppError) ToResponse() MessageResponse {
	return MessageResponse{Message: e.Message}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
