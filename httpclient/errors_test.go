package httpclient

import (
	"fmt"
	"testing"

	apperrors "github.com/kbukum/promptkit/errors"
)

func TestErrorCode_String(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{ErrCodeTimeout, "timeout"},
		{ErrCodeConnection, "connection"},
		{ErrCodeAuth, "auth"},
		{ErrCodeNotFound, "not_found"},
		{ErrCodeRateLimit, "rate_limit"},
		{ErrCodeValidation, "validation"},
		{ErrCodeServer, "server"},
		{ErrCodeDecode, "decode"},
		{ErrorCode(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("ErrorCode(%d).String() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestError_Error(t *testing.T) {
	e := &Error{StatusCode: 404, Code: ErrCodeNotFound, Message: "HTTP 404"}
	if got := e.Error(); got != "httpclient: not_found (HTTP 404): HTTP 404" {
		t.Errorf("got %q", got)
	}
	e2 := &Error{Code: ErrCodeConnection, Message: "connection refused"}
	if got := e2.Error(); got != "httpclient: connection: connection refused" {
		t.Errorf("got %q", got)
	}
}

func TestClassifyStatusCode_Success(t *testing.T) {
	for _, code := range []int{200, 201, 204} {
		if err := ClassifyStatusCode(code, nil); err != nil {
			t.Errorf("ClassifyStatusCode(%d) = %v, want nil", code, err)
		}
	}
}

func TestBodyMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty", "", ""},
		{"ollama string error", `{"error":"model 'x' not found"}`, "model 'x' not found"},
		{"openai object error", `{"error":{"message":"Invalid Authentication","type":"invalid_authentication_error"}}`, "Invalid Authentication"},
		{"message field", `{"message":"overloaded"}`, "overloaded"},
		{"plain text", "  bad gateway \n", "bad gateway"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := BodyMessage([]byte(tc.body)); got != tc.want {
				t.Errorf("BodyMessage() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestToAppError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperrors.ErrorCode
	}{
		{"timeout", NewTimeoutError(fmt.Errorf("deadline exceeded")), apperrors.ErrCodeTimeout},
		{"connection", NewConnectionError(fmt.Errorf("connection refused")), apperrors.ErrCodeTransport},
		{"auth", ClassifyStatusCode(401, []byte(`{"error":{"message":"Invalid Authentication"}}`)), apperrors.ErrCodeUnauthorized},
		{"rate limit", ClassifyStatusCode(429, nil), apperrors.ErrCodeRateLimited},
		{"server", ClassifyStatusCode(500, nil), apperrors.ErrCodeProvider},
		{"decode", NewDecodeError(200, []byte("x"), fmt.Errorf("bad json")), apperrors.ErrCodeProvider},
		{"plain", fmt.Errorf("weird"), apperrors.ErrCodeTransport},
		{"already app error", apperrors.UnknownModel("x"), apperrors.ErrCodeConfiguration},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := apperrors.CodeOf(ToAppError("moonshot", tc.err)); got != tc.want {
				t.Errorf("CodeOf(ToAppError()) = %s, want %s", got, tc.want)
			}
		})
	}

	if ToAppError("moonshot", nil) != nil {
		t.Error("expected nil to pass through")
	}

	err := ToAppError("moonshot", ClassifyStatusCode(401, []byte(`{"error":{"message":"Invalid Authentication"}}`)))
	appErr, _ := apperrors.AsAppError(err)
	if appErr.Message != "Invalid Authentication" {
		t.Errorf("expected body message, got %q", appErr.Message)
	}
	if appErr.Details["status"] != 401 {
		t.Errorf("expected status detail, got %v", appErr.Details["status"])
	}
}
