// Package validator adapts go-playground/validator to echo's Validator
// interface and flattens violations into the API's error message format.
package validator

import (
	"reflect"
	"strings"

	domainerrors "minibank/internal/domain/errors"
	"minibank/internal/errors"

	"github.com/go-playground/validator/v10"
)

type echoValidator struct {
	validate *validator.Validate
}

// New builds the request validator used by the HTTP server.
func New() *echoValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names, not Go struct names, in violation messages.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return &echoValidator{validate: validate}
}

// Validate runs the schema against the bound request. All violations are
// collected, then joined in field order with ", " into a single message.
func (v *echoValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		return domainerrors.NewValidationError("invalid request payload")
	}

	messages := make([]string, 0, len(violations))
	for _, violation := range violations {
		messages = append(messages, messageFor(violation))
	}

	return domainerrors.NewValidationError(strings.Join(messages, ", "))
}

// messageFor renders one violation as a human-readable message keyed by the
// JSON field name.
func messageFor(violation validator.FieldError) string {
	field := violation.Field()

	switch violation.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		if violation.Param() == "1" {
			return field + " must not be empty"
		}

		return field + " must be at least " + violation.Param() + " characters long"
	case "max":
		return field + " must be at most " + violation.Param() + " characters long"
	case "datetime":
		return field + " must be a valid ISO 8601 timestamp"
	default:
		return field + " is invalid"
	}
}
