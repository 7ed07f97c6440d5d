package errs

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestConstructorsCarryStatusAndSentinel(t *testing.T) {
	cases := []struct {
		apiErr *ApiErr
		status int
		is     error
	}{
		{NewUnauthorized("nope"), http.StatusUnauthorized, ErrUnauthorized},
		{NewNotFound("project"), http.StatusNotFound, ErrNotFound},
		{NewForbidden("not yours"), http.StatusForbidden, ErrForbidden},
		{NewAlreadyExists("email"), http.StatusConflict, ErrConflict},
		{NewBadRequest("bad"), http.StatusBadRequest, ErrBadRequest},
		{NewInternal("boom"), http.StatusInternalServerError, ErrInternal},
	}

	for _, c := range cases {
		require.Equal(t, c.status, c.apiErr.StatusCode, c.apiErr.Error())
		require.ErrorIs(t, c.apiErr, c.is)
	}
}

func TestSentinelHelpers(t *testing.T) {
	require.True(t, IsUnauthorized(NewUnauthorized("nope")))
	require.True(t, IsNotFound(NewNotFound("project")))
	require.True(t, IsForbidden(NewForbidden("not yours")))
	require.True(t, IsConflict(NewAlreadyExists("email")))

	require.False(t, IsForbidden(NewNotFound("project")))
	require.False(t, IsConflict(NewBadRequest("bad")))
}

func TestValidationErrorCarriesField(t *testing.T) {
	err := NewValidationError("email", "email failed validation on required")
	require.Equal(t, http.StatusBadRequest, err.StatusCode)
	require.Equal(t, "email", err.Field)
	require.True(t, IsUnauthorized(NewUnauthorized("x")))
	require.False(t, IsUnauthorized(err))
}

func TestFromDatabaseRecordNotFound(t *testing.T) {
	err := FromDatabase("find", "tag", gorm.ErrRecordNotFound)
	require.Equal(t, http.StatusNotFound, err.StatusCode)
	require.True(t, IsNotFound(err))
}

func TestFromDatabaseDuplicatedKey(t *testing.T) {
	err := FromDatabase("create", "project", gorm.ErrDuplicatedKey)
	require.Equal(t, http.StatusConflict, err.StatusCode)
	require.True(t, IsConflict(err))
}

func TestFromDatabaseForeignKeyViolated(t *testing.T) {
	err := FromDatabase("create", "testimonial", gorm.ErrForeignKeyViolated)
	require.Equal(t, http.StatusBadRequest, err.StatusCode)
}

func TestFromDatabaseUnknownErrorIsInternal(t *testing.T) {
	cause := errors.New("connection reset")
	err := FromDatabase("list", "projects", cause)
	require.Equal(t, http.StatusInternalServerError, err.StatusCode)
	require.ErrorIs(t, err.Cause, cause)
}
