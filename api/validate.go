package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vouchly/vouchly-backend/errs"
)

// validateRequest runs struct validation and converts the first failure into
// a field-carrying bad request.
func validateRequest(validate *validator.Validate, req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		first := validationErrs[0]
		field := strings.ToLower(first.Field())
		return errs.NewValidationError(field, fmt.Sprintf("%s failed validation on %s", field, first.Tag()))
	}

	return errs.NewBadRequest("invalid request body")
}
