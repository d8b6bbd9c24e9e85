package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified promptkit error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// HTTPStatus is the status the HTTP surface answers with.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
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

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	for k, v := range details {
		e.WithDetail(k, v)
	}
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

// --- Configuration errors ---

// Configuration creates a generic configuration error.
func Configuration(message string) *AppError {
	return &AppError{
		Code: ErrCodeConfiguration, Message: message,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// MissingCredential reports that the credential named key could not be resolved.
func MissingCredential(key string) *AppError {
	return &AppError{
		Code:       ErrCodeConfiguration,
		Message:    fmt.Sprintf("%s not set or invalid. Please check your config.json file.", key),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"credential": key},
	}
}

// UnknownModel reports that no usable model identifier was selected.
func UnknownModel(model string) *AppError {
	return &AppError{
		Code: ErrCodeConfiguration, Message: fmt.Sprintf("model %q is not available", model),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"model": model},
	}
}

// UnknownTag reports a domain tag outside the supported set.
func UnknownTag(tag string) *AppError {
	return &AppError{
		Code: ErrCodeConfiguration, Message: fmt.Sprintf("unknown prompt type %q", tag),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"tag": tag},
	}
}

// InvalidInput creates an error for an invalid parameter.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("invalid input: %s", reason),
		HTTPStatus: http.StatusBadRequest, Details: details,
	}
}

// Validation creates an error for a failed struct validation.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// --- Transport errors ---

// Transport wraps a network failure talking to service.
func Transport(service string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeTransport, Message: fmt.Sprintf("request to %s failed", service),
		HTTPStatus: http.StatusBadGateway,
		Details:    map[string]any{"service": service}, Cause: cause,
	}
}

// Timeout reports that operation exceeded its deadline.
func Timeout(operation string) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: fmt.Sprintf("%s timed out", operation),
		HTTPStatus: http.StatusGatewayTimeout,
		Details:    map[string]any{"operation": operation},
	}
}

// RateLimited reports a backend rate-limit rejection.
func RateLimited(message string) *AppError {
	if message == "" {
		message = "rate limit exceeded"
	}
	return &AppError{
		Code: ErrCodeRateLimited, Message: message,
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// Unauthorized reports a rejected credential or missing bearer token.
func Unauthorized(reason string) *AppError {
	if reason == "" {
		reason = "authentication required"
	}
	return &AppError{
		Code: ErrCodeUnauthorized, Message: reason,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Provider reports an error payload or unusable answer from a backend.
func Provider(service, message string) *AppError {
	return &AppError{
		Code: ErrCodeProvider, Message: fmt.Sprintf("%s: %s", service, message),
		HTTPStatus: http.StatusBadGateway,
		Details:    map[string]any{"service": service},
	}
}

// Internal creates an error for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "an unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}
