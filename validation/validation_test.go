package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/promptkit/errors"
)

func TestValidatorRequired(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"present", "moonshot-v1-8k", false},
		{"empty", "", true},
		{"whitespace", "   ", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := New().Required("model", tc.value)
			if v.HasErrors() != tc.wantErr {
				t.Errorf("HasErrors() = %v, want %v", v.HasErrors(), tc.wantErr)
			}
		})
	}
}

func TestValidatorRange(t *testing.T) {
	tests := []struct {
		value   int
		wantErr bool
	}{
		{1, false},
		{1000, false},
		{128000, false},
		{0, true},
		{128001, true},
	}
	for _, tc := range tests {
		v := New().Range("max_tokens", tc.value, 1, 128000)
		if v.HasErrors() != tc.wantErr {
			t.Errorf("Range(%d) HasErrors() = %v, want %v", tc.value, v.HasErrors(), tc.wantErr)
		}
	}
}

func TestValidatorFloatRange(t *testing.T) {
	tests := []struct {
		value   float64
		wantErr bool
	}{
		{0, false},
		{0.3, false},
		{2, false},
		{-0.01, true},
		{2.01, true},
	}
	for _, tc := range tests {
		v := New().FloatRange("temperature", tc.value, 0, 2)
		if v.HasErrors() != tc.wantErr {
			t.Errorf("FloatRange(%v) HasErrors() = %v, want %v", tc.value, v.HasErrors(), tc.wantErr)
		}
	}

	v := New().FloatRange("temperature", 3, 0, 2)
	if got := v.Errors()[0].Message; got != "must be between 0 and 2" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestValidatorOneOf(t *testing.T) {
	models := []string{"moonshot-v1-8k", "moonshot-v1-32k", "moonshot-v1-128k"}

	if New().OneOf("model", "moonshot-v1-32k", models).HasErrors() {
		t.Error("expected no error for a listed model")
	}
	if !New().OneOf("model", "gpt-4", models).HasErrors() {
		t.Error("expected error for an unlisted model")
	}
	if New().OneOf("model", "", models).HasErrors() {
		t.Error("expected empty value to be skipped")
	}
}

func TestValidatorCustom(t *testing.T) {
	v := New().Custom(true, "field", "should pass").Custom(false, "field", "custom error")
	if len(v.Errors()) != 1 {
		t.Fatalf("expected 1 error, got %d", len(v.Errors()))
	}
	if v.Errors()[0].Message != "custom error" {
		t.Errorf("expected 'custom error', got %q", v.Errors()[0].Message)
	}
}

func TestValidatorValidate(t *testing.T) {
	if New().Required("model", "x").Error() != nil {
		t.Error("expected nil for valid input")
	}

	appErr := New().Required("model", "").Range("max_tokens", 0, 1, 10).Validate()
	if appErr == nil {
		t.Fatal("expected error")
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 2 {
		t.Fatalf("expected 2 field errors in details, got %v", appErr.Details["fields"])
	}
	if !strings.Contains(appErr.Message, "model") || !strings.Contains(appErr.Message, "max_tokens") {
		t.Errorf("expected both fields in message, got %q", appErr.Message)
	}
}

func TestStructValidate(t *testing.T) {
	type Params struct {
		Model       string  `json:"model" validate:"required"`
		Temperature float64 `json:"temperature" validate:"gte=0,lte=2"`
		MaxTokens   int     `json:"max_tokens" validate:"gte=1,lte=128000"`
		SystemHint  string  `validate:"max=5"`
	}

	if err := Validate(Params{Model: "m", Temperature: 0.3, MaxTokens: 1000}); err != nil {
		t.Errorf("expected valid, got %v", err)
	}

	err := Validate(Params{Temperature: 2.5, MaxTokens: 0, SystemHint: "too long"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	for _, want := range []string{
		"model: is required",
		"temperature: must be at most 2",
		"max_tokens: must be at least 1",
		"system_hint: must be at most 5 characters",
	} {
		if !strings.Contains(appErr.Message, want) {
			t.Errorf("expected %q in %q", want, appErr.Message)
		}
	}
}

func TestRequiredFunc(t *testing.T) {
	if err := Required("theme", "sunset"); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := Required("theme", ""); err == nil {
		t.Error("expected error for empty required field")
	}
}
