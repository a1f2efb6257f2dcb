package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateRequest runs struct tag validation; errors are validator.ValidationErrors.
func ValidateRequest(req any) error {
	return validate.Struct(req)
}

// FieldError is the JSON shape of a single failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func FormatValidationErrors(errs validator.ValidationErrors) []FieldError {
	out := make([]FieldError, 0, len(errs))
	for _, fe := range errs {
		field := strings.ToLower(fe.Field())
		msg := fmt.Sprintf("%s failed on '%s'", field, fe.Tag())
		if fe.Param() != "" {
			msg = fmt.Sprintf("%s failed on '%s=%s'", field, fe.Tag(), fe.Param())
		}
		out = append(out, FieldError{Field: field, Rule: fe.Tag(), Message: msg})
	}
	return out
}
