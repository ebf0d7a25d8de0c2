package validators

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// EchoValidator adapts go-playground/validator to echo's Validator interface
type EchoValidator struct {
	validate *validator.Validate
}

// NewValidator creates a new EchoValidator
func NewValidator() *EchoValidator {
	return &EchoValidator{validate: validator.New()}
}

// Validate validates the bound struct
func (v *EchoValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// FieldErrors flattens validator errors into a field -> message map suitable
// for a 422 response body
func FieldErrors(err error) map[string]string {
	out := make(map[string]string)
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_"] = err.Error()
		return out
	}
	for _, fe := range errs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out[field] = fmt.Sprintf("%s is required", field)
		case "email":
			out[field] = "must be a valid email address"
		case "min":
			out[field] = fmt.Sprintf("must be at least %s", fe.Param())
		case "max":
			out[field] = fmt.Sprintf("must be at most %s", fe.Param())
		case "oneof":
			out[field] = fmt.Sprintf("must be one of: %s", fe.Param())
		case "url":
			out[field] = "must be a valid URL"
		default:
			out[field] = fmt.Sprintf("failed %s validation", fe.Tag())
		}
	}
	return out
}
