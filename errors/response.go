package errors

import (
	stderrors "errors"
	"strings"
)

// TextPrefix starts every in-band error result handed back to the host.
const TextPrefix = "Error: "

// ErrorResponse is the JSON structure returned by the HTTP surface.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody contains the error details sent to clients.
type ErrorBody struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ToResponse converts an AppError to an ErrorResponse for JSON serialization.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{
		Error: ErrorBody{
			Code:    e.Code,
			Message: e.Message,
			Details: e.Details,
		},
	}
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf returns the code of the first AppError in err's chain, or
// ErrCodeInternal for any other non-nil error.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ErrCodeInternal
}

// IsConfiguration reports whether err is a configuration error.
func IsConfiguration(err error) bool {
	return CodeOf(err) == ErrCodeConfiguration
}

// IsTransport reports whether err came from a provider transport.
func IsTransport(err error) bool {
	return IsTransportCode(CodeOf(err))
}

// Text renders err as the in-band result a node hands back to the host.
// AppErrors contribute their message and, when present, their cause; plain
// errors are rendered verbatim.
func Text(err error) string {
	if err == nil {
		return ""
	}
	appErr, ok := AsAppError(err)
	if !ok {
		return TextPrefix + err.Error()
	}
	var b strings.Builder
	b.WriteString(TextPrefix)
	b.WriteString(appErr.Message)
	if appErr.Cause != nil {
		b.WriteString(": ")
		b.WriteString(appErr.Cause.Error())
	}
	return b.String()
}
