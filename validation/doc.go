// Package validation validates generation requests and node parameters.
//
// Struct tag validation goes through go-playground/validator and reports
// json field names; programmatic checks collect field errors the same way.
// Both produce an errors.AppError with code INVALID_INPUT and a "fields"
// detail.
//
//	type Params struct {
//	    Model       string  `json:"model" validate:"required"`
//	    Temperature float64 `json:"temperature" validate:"gte=0,lte=2"`
//	}
//	err := validation.Validate(p)
//
//	v := validation.New()
//	v.FloatRange("temperature", t, 0, 2).OneOf("model", m, models)
//	err := v.Error()
package validation
