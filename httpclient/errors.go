package httpclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/kbukum/promptkit/errors"
)

// ErrorCode classifies HTTP client errors.
type ErrorCode int

const (
	// ErrCodeTimeout indicates a request or connection timeout.
	ErrCodeTimeout ErrorCode = iota
	// ErrCodeConnection indicates a connection failure (refused, DNS, etc).
	ErrCodeConnection
	// ErrCodeAuth indicates an authentication/authorization failure (401/403).
	ErrCodeAuth
	// ErrCodeNotFound indicates the resource was not found (404).
	ErrCodeNotFound
	// ErrCodeRateLimit indicates rate limiting (429).
	ErrCodeRateLimit
	// ErrCodeValidation indicates a client-side validation error (400).
	ErrCodeValidation
	// ErrCodeServer indicates a server-side error (5xx).
	ErrCodeServer
	// ErrCodeDecode indicates a response body that could not be decoded.
	ErrCodeDecode
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeConnection:
		return "connection"
	case ErrCodeAuth:
		return "auth"
	case ErrCodeNotFound:
		return "not_found"
	case ErrCodeRateLimit:
		return "rate_limit"
	case ErrCodeValidation:
		return "validation"
	case ErrCodeServer:
		return "server"
	case ErrCodeDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is a structured HTTP client error with classification.
type Error struct {
	// StatusCode is the HTTP status code (0 for connection-level errors).
	StatusCode int
	// Code classifies the error.
	Code ErrorCode
	// Message describes the error.
	Message string
	// Body is the original response body (may be nil).
	Body []byte
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(err error) *Error {
	return &Error{Code: ErrCodeTimeout, Message: err.Error(), Err: err}
}

// NewConnectionError creates a connection error.
func NewConnectionError(err error) *Error {
	return &Error{Code: ErrCodeConnection, Message: err.Error(), Err: err}
}

// NewValidationError creates a validation error.
func NewValidationError(msg string) *Error {
	return &Error{Code: ErrCodeValidation, Message: msg}
}

// NewDecodeError creates a decode error for a malformed response body.
func NewDecodeError(statusCode int, body []byte, err error) *Error {
	return &Error{StatusCode: statusCode, Code: ErrCodeDecode, Message: err.Error(), Body: body, Err: err}
}

// ClassifyStatusCode converts an HTTP status code into a typed error.
// Returns nil for 2xx status codes.
func ClassifyStatusCode(statusCode int, body []byte) *Error {
	e := &Error{
		StatusCode: statusCode,
		Message:    fmt.Sprintf("HTTP %d", statusCode),
		Body:       body,
	}
	switch {
	case statusCode >= 200 && statusCode < 300:
		return nil
	case statusCode == 401 || statusCode == 403:
		e.Code = ErrCodeAuth
	case statusCode == 404:
		e.Code = ErrCodeNotFound
	case statusCode == 429:
		e.Code = ErrCodeRateLimit
	case statusCode >= 400 && statusCode < 500:
		e.Code = ErrCodeValidation
	default:
		e.Code = ErrCodeServer
	}
	return e
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeTimeout
}

// IsConnection checks if an error is a connection error.
func IsConnection(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeConnection
}

// IsAuth checks if an error is an authentication error.
func IsAuth(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeAuth
}

// IsRateLimit checks if an error is a rate-limit error.
func IsRateLimit(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeRateLimit
}

// ToAppError translates a client error into the promptkit error taxonomy.
// service names the remote side in messages. Errors that are already
// AppErrors, and nil, pass through unchanged.
func ToAppError(service string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}

	var e *Error
	if !errors.As(err, &e) {
		return apperrors.Transport(service, err)
	}

	msg := BodyMessage(e.Body)
	if msg == "" {
		msg = e.Message
	}

	var appErr *apperrors.AppError
	switch e.Code {
	case ErrCodeTimeout:
		appErr = apperrors.Timeout(service + " request")
	case ErrCodeConnection:
		appErr = apperrors.Transport(service, e)
	case ErrCodeAuth:
		appErr = apperrors.Unauthorized(msg)
	case ErrCodeRateLimit:
		appErr = apperrors.RateLimited(msg)
	default:
		appErr = apperrors.Provider(service, msg)
	}
	if e.StatusCode > 0 {
		appErr = appErr.WithDetail("status", e.StatusCode)
	}
	return appErr
}

// BodyMessage extracts a human-readable message from a JSON error body.
// It understands {"error": "..."}, {"error": {"message": "..."}} and
// {"message": "..."}; anything else yields the trimmed body text.
func BodyMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return strings.TrimSpace(string(body))
	}
	if len(payload.Error) > 0 {
		var s string
		if json.Unmarshal(payload.Error, &s) == nil && s != "" {
			return s
		}
		var obj struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(payload.Error, &obj) == nil && obj.Message != "" {
			return obj.Message
		}
	}
	if payload.Message != "" {
		return payload.Message
	}
	return strings.TrimSpace(string(body))
}
