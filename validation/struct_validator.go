package validation

import (
	stderrors "errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/promptkit/errors"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// getValidator returns the singleton validator instance.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Use json tag names for field names in error messages
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return toSnakeCase(fld.Name)
			}
			return name
		})
	})
	return validate
}

// Validate validates a struct using struct tags.
// Uses tags like `validate:"required,gte=0,lte=2"`.
func Validate(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !stderrors.As(err, &validationErrors) {
		return errors.Validation("validation failed").WithCause(err)
	}

	v := New()
	for _, e := range validationErrors {
		v.AddError(e.Field(), formatValidationError(e))
	}
	return v.Error()
}

// formatValidationError creates a human-readable error message.
func formatValidationError(e validator.FieldError) string {
	numeric := isNumeric(e.Kind())
	switch e.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		if numeric {
			return "must be at least " + e.Param()
		}
		return "must be at least " + e.Param() + " characters"
	case "max", "lte":
		if numeric {
			return "must be at most " + e.Param()
		}
		return "must be at most " + e.Param() + " characters"
	case "gt":
		return "must be greater than " + e.Param()
	case "url", "http_url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return "is invalid"
	}
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// toSnakeCase converts a field name to snake_case.
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		if r >= 'A' && r <= 'Z' {
			result.WriteRune(r + 32) // lowercase
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
