package errs

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

// FromDatabase translates a store error into the API taxonomy. The store's
// own constraints are the authoritative backstop for uniqueness: a unique
// index rejection must surface as a conflict, never as a generic internal
// error.
func FromDatabase(operation, entity string, cause error) *ApiErr {
	details := fmt.Sprintf("failed to %s %s", operation, entity)

	switch {
	case errors.Is(cause, gorm.ErrRecordNotFound):
		return &ApiErr{
			StatusCode: http.StatusNotFound,
			err:        fmt.Errorf("%s %w", entity, ErrNotFound),
			Cause:      cause,
		}
	case errors.Is(cause, gorm.ErrDuplicatedKey):
		return &ApiErr{
			StatusCode: http.StatusConflict,
			err:        fmt.Errorf("%s already exists: %w", entity, ErrConflict),
			Details:    details,
			Cause:      cause,
		}
	case errors.Is(cause, gorm.ErrForeignKeyViolated):
		return &ApiErr{
			StatusCode: http.StatusBadRequest,
			err:        fmt.Errorf("invalid reference in %s: %w", entity, ErrBadRequest),
			Details:    details,
			Cause:      cause,
		}
	}

	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrInternal,
		Details:    details,
		Cause:      cause,
	}
}
