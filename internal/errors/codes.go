package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a specific error type for resolve operations.
type ErrorCode string

const (
	// ErrCodeInvalidArgument indicates invalid input parameters.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeNotFound indicates that no date or time was found in the input.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeRateLimitExceeded indicates rate limit has been exceeded.
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	// ErrCodeContextCanceled indicates the operation was canceled.
	ErrCodeContextCanceled ErrorCode = "CONTEXT_CANCELED"
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

var httpStatuses = map[ErrorCode]int{
	ErrCodeInvalidArgument:   http.StatusBadRequest,
	ErrCodeNotFound:          http.StatusNotFound,
	ErrCodeRateLimitExceeded: http.StatusTooManyRequests,
	ErrCodeContextCanceled:   499,
	ErrCodeInternal:          http.StatusInternalServerError,
}

// ResolveError represents a structured error for resolve operations.
type ResolveError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *ResolveError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ResolveError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error.
func (e *ResolveError) WithContext(key string, value interface{}) *ResolveError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// GetCode returns the error code.
func (e *ResolveError) GetCode() ErrorCode {
	return e.Code
}

// InvalidArgument creates an invalid argument error.
func InvalidArgument(msg string) *ResolveError {
	return &ResolveError{Code: ErrCodeInvalidArgument, Message: msg}
}

// NotFound creates a not found error.
func NotFound(msg string) *ResolveError {
	return &ResolveError{Code: ErrCodeNotFound, Message: msg}
}

// RateLimitExceeded creates a rate limit exceeded error.
func RateLimitExceeded(msg string) *ResolveError {
	return &ResolveError{Code: ErrCodeRateLimitExceeded, Message: msg}
}

// ContextCanceled creates a context canceled error.
func ContextCanceled(cause error) *ResolveError {
	return &ResolveError{Code: ErrCodeContextCanceled, Message: "operation canceled", Cause: cause}
}

// Internal creates an internal error.
func Internal(msg string, cause error) *ResolveError {
	return &ResolveError{Code: ErrCodeInternal, Message: msg, Cause: cause}
}

// Wrap wraps an existing error with additional context.
func Wrap(cause error, code ErrorCode, msg string) *ResolveError {
	return &ResolveError{Code: code, Message: msg, Cause: cause}
}

// IsCode checks if an error, or any error it wraps, carries the given code.
func IsCode(err error, code ErrorCode) bool {
	var re *ResolveError
	if errors.As(err, &re) {
		return re.Code == code
	}
	return false
}

// GetCodeFromError extracts the error code from any error.
// Returns the provided default code if the error is not a ResolveError.
func GetCodeFromError(err error, defaultCode ErrorCode) ErrorCode {
	var re *ResolveError
	if errors.As(err, &re) {
		return re.Code
	}
	return defaultCode
}

// HTTPStatus maps an error to the status code the HTTP surface answers with.
func HTTPStatus(err error) int {
	if status, ok := httpStatuses[GetCodeFromError(err, ErrCodeInternal)]; ok {
		return status
	}
	return http.StatusInternalServerError
}
