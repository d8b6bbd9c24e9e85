package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_New(t *testing.T) {
	err := New(ErrCodeProvider, "bad answer", http.StatusBadGateway)
	if err.Code != ErrCodeProvider {
		t.Errorf("expected code %s, got %s", ErrCodeProvider, err.Code)
	}
	if err.Message != "bad answer" {
		t.Errorf("expected message 'bad answer', got %q", err.Message)
	}
	if err.HTTPStatus != http.StatusBadGateway {
		t.Errorf("expected status %d, got %d", http.StatusBadGateway, err.HTTPStatus)
	}
}

func TestAppError_ErrorString(t *testing.T) {
	err := Timeout("ollama generate")
	if got := err.Error(); got != "TIMEOUT: ollama generate timed out" {
		t.Errorf("Error() = %q", got)
	}

	err = Transport("moonshot", fmt.Errorf("connection refused"))
	if !strings.Contains(err.Error(), "cause: connection refused") {
		t.Errorf("expected cause in error string, got %q", err.Error())
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("dial tcp: refused")
	err := Transport("ollama", cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	wrapped := fmt.Errorf("generate: %w", err)
	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to unwrap")
	}
	if appErr.Code != ErrCodeTransport {
		t.Errorf("expected TRANSPORT_ERROR, got %s", appErr.Code)
	}
}

func TestAppError_WithDetails(t *testing.T) {
	err := Provider("moonshot", "no choices").
		WithDetail("model", "moonshot-v1-8k").
		WithDetails(map[string]any{"status": 200})
	if err.Details["service"] != "moonshot" {
		t.Errorf("expected service detail, got %v", err.Details["service"])
	}
	if err.Details["model"] != "moonshot-v1-8k" {
		t.Errorf("expected model detail, got %v", err.Details["model"])
	}
	if err.Details["status"] != 200 {
		t.Errorf("expected status detail, got %v", err.Details["status"])
	}
}

func TestMissingCredential(t *testing.T) {
	err := MissingCredential("MOONSHOT_API_KEY")
	if err.Code != ErrCodeConfiguration {
		t.Errorf("expected CONFIGURATION_ERROR, got %s", err.Code)
	}
	want := "Error: MOONSHOT_API_KEY not set or invalid. Please check your config.json file."
	if got := Text(err); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, ""},
		{"plain error", fmt.Errorf("boom"), ErrCodeInternal},
		{"configuration", UnknownTag("anime"), ErrCodeConfiguration},
		{"wrapped rate limit", fmt.Errorf("x: %w", RateLimited("")), ErrCodeRateLimited},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CodeOf(tc.err); got != tc.want {
				t.Errorf("CodeOf() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestKindHelpers(t *testing.T) {
	if !IsConfiguration(UnknownModel("")) {
		t.Error("UnknownModel should be a configuration error")
	}
	if IsTransport(UnknownModel("")) {
		t.Error("UnknownModel should not be a transport error")
	}
	for _, err := range []*AppError{
		Transport("x", nil), Timeout("x"), RateLimited("x"), Unauthorized(""), Provider("x", "y"),
	} {
		if !IsTransport(err) {
			t.Errorf("%s should be a transport error", err.Code)
		}
	}
	if IsTransport(Internal(nil)) {
		t.Error("Internal should not be a transport error")
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain", fmt.Errorf("socket closed"), "Error: socket closed"},
		{"app error", Unauthorized("invalid api key"), "Error: invalid api key"},
		{
			"app error with cause",
			Transport("ollama", fmt.Errorf("connection refused")),
			"Error: request to ollama failed: connection refused",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Text(tc.err); got != tc.want {
				t.Errorf("Text() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestToResponse(t *testing.T) {
	resp := InvalidInput("temperature", "must be between 0 and 2").ToResponse()
	if resp.Error.Code != ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", resp.Error.Code)
	}
	if resp.Error.Details["field"] != "temperature" {
		t.Errorf("expected field detail, got %v", resp.Error.Details["field"])
	}
}
