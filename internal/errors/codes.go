package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Validation errors
const (
	// ErrCodeValidation indicates a business-rule shape violation (e.g. role name).
	ErrCodeValidation ErrorCode = "VALIDATION_FAILED"
	// ErrCodeInvalidInput indicates a malformed request body.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Resource errors
const (
	// ErrCodeConflict indicates a uniqueness conflict (duplicate username).
	ErrCodeConflict ErrorCode = "CONFLICT"
)

// Authentication/Authorization errors
const (
	// ErrCodeUnauthorized indicates missing or failed authentication.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeForbidden indicates the caller's role does not permit the operation.
	ErrCodeForbidden ErrorCode = "FORBIDDEN"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected internal failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeDatabase indicates a credential-store failure.
	ErrCodeDatabase ErrorCode = "DATABASE_ERROR"
)
