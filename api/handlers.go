package api

import (
	"github.com/go-playground/validator/v10"

	"github.com/vouchly/vouchly-backend/auth"
	"github.com/vouchly/vouchly-backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, tokens *auth.TokenService) *routeHandlers {
	validate := validator.New()
	guard := newOwnershipGuard(database)

	return &routeHandlers{
		healthHandler:      newHealthHandler(),
		authHandler:        newAuthHandler(database.UserRepo(), tokens, validate),
		projectHandler:     newProjectHandler(database.ProjectRepo(), validate, guard),
		testimonialHandler: newTestimonialHandler(database.TestimonialRepo(), database.TagRepo(), validate, guard),
		tagHandler:         newTagHandler(database.TagRepo(), validate, guard),
	}
}
