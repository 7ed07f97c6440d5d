package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Common error sentinel values. Every outcome the API can surface maps to
// exactly one of these.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("operation not allowed")
	ErrConflict     = errors.New("resource conflict")
	ErrBadRequest   = errors.New("malformed request")
	ErrInternal     = errors.New("internal server error")
)

type ApiErr struct {
	StatusCode int
	err        error
	Details    string // Additional details about the error
	Field      string // Field that caused the error (for validation errors)
	Cause      error  // The underlying cause of the error
}

func NewApiErr(statusCode int, message string) *ApiErr {
	return &ApiErr{
		StatusCode: statusCode,
		err:        errors.New(message),
	}
}

// implements error interface. this allows us to pass an instance of ApiErr as an argument of type `error`
func (e *ApiErr) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.err.Error(), e.Details)
	}
	return e.err.Error()
}

func (e *ApiErr) Unwrap() error {
	return e.err
}

func NewUnauthorized(message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        fmt.Errorf("%s: %w", message, ErrUnauthorized),
	}
}

func NewNotFound(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        fmt.Errorf("%s %w", entity, ErrNotFound),
	}
}

func NewForbidden(message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusForbidden,
		err:        fmt.Errorf("%s: %w", message, ErrForbidden),
	}
}

func NewAlreadyExists(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        fmt.Errorf("%s already exists: %w", entity, ErrConflict),
	}
}

func NewBadRequest(message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        fmt.Errorf("%s: %w", message, ErrBadRequest),
	}
}

func NewValidationError(field, message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        fmt.Errorf("%s: %w", message, ErrBadRequest),
		Field:      field,
	}
}

func NewInternal(message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        fmt.Errorf("%s: %w", message, ErrInternal),
	}
}

func IsUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }
func IsNotFound(err error) bool     { return errors.Is(err, ErrNotFound) }
func IsForbidden(err error) bool    { return errors.Is(err, ErrForbidden) }
func IsConflict(err error) bool     { return errors.Is(err, ErrConflict) }
