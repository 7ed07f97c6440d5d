package api

import (
	"context"
	"errors"

	"github.com/vouchly/vouchly-backend/models"
)

type keyType string

const currentUserKey keyType = "currentUser"

// ctxWithUser stores the authenticated user on the request context.
func ctxWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}

// ctxGetUser retrieves the authenticated user set by the auth middleware.
func ctxGetUser(ctx context.Context) (*models.User, error) {
	value := ctx.Value(currentUserKey)
	if value == nil {
		return nil, errors.New("no authenticated user in context")
	}

	user, ok := value.(*models.User)
	if !ok {
		return nil, errors.New("context user has unexpected type")
	}
	return user, nil
}
