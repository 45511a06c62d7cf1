// Package errors provides custom error types for the goldbook API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
// Field names the offending input field for validation failures.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Field      string `json:"field,omitempty"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target carries the same code, so wrapped copies
// still match their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		Field:      sentinel.Field,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		Field:      sentinel.Field,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// WithField creates a validation-style AppError naming the offending field.
func WithField(sentinel *AppError, field, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		Field:      field,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Ledger errors.
var (
	ErrValidation           = &AppError{Code: "VALIDATION_ERROR", Message: "Transaction failed validation", StatusCode: http.StatusBadRequest}
	ErrInsufficientPosition = &AppError{Code: "INSUFFICIENT_POSITION", Message: "Sell exceeds the weight currently held", StatusCode: http.StatusUnprocessableEntity}
	ErrStoreUnavailable     = &AppError{Code: "STORE_UNAVAILABLE", Message: "Ledger storage is unavailable", StatusCode: http.StatusServiceUnavailable}
	ErrStoreCorrupt         = &AppError{Code: "STORE_CORRUPT", Message: "Stored transaction could not be read", StatusCode: http.StatusInternalServerError}
)

// Price errors.
var (
	ErrPriceNotFound = &AppError{Code: "PRICE_NOT_FOUND", Message: "No gold price has been recorded", StatusCode: http.StatusNotFound}
)
