package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vouchly/vouchly-backend/database"
	"github.com/vouchly/vouchly-backend/errs"
	"github.com/vouchly/vouchly-backend/models"
)

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	validate  *validator.Validate
	guard     ownershipGuard
	projects  *database.ProjectRepo
}

func newProjectHandler(projects *database.ProjectRepo, validate *validator.Validate, guard ownershipGuard) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		validate:  validate,
		guard:     guard,
		projects:  projects,
	}
}

type createProjectRequest struct {
	Name       string  `json:"name" validate:"required"`
	Slug       string  `json:"slug" validate:"required"`
	LogoURL    *string `json:"logo_url"`
	WebsiteURL *string `json:"website_url"`
}

type updateProjectRequest struct {
	Name       *string `json:"name"`
	Slug       *string `json:"slug"`
	LogoURL    *string `json:"logo_url"`
	WebsiteURL *string `json:"website_url"`
}

type projectResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Slug       string  `json:"slug"`
	LogoURL    *string `json:"logo_url"`
	WebsiteURL *string `json:"website_url"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

func toProjectResponse(project *models.Project) projectResponse {
	return projectResponse{
		ID:         project.PublicID.String(),
		Name:       project.Name,
		Slug:       project.Slug,
		LogoURL:    project.LogoURL,
		WebsiteURL: project.WebsiteURL,
		CreatedAt:  project.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  project.UpdatedAt.Format(time.RFC3339),
	}
}

// listProjects returns the caller's own projects, never anyone else's.
func (h projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorized("not authenticated"))
			return
		}

		projects, err := h.projects.FindByOwner(r.Context(), user.ID)
		if err != nil {
			h.responder.WriteError(w, errs.FromDatabase("list", "projects", err))
			return
		}

		response := make([]projectResponse, 0, len(projects))
		for _, project := range projects {
			response = append(response, toProjectResponse(project))
		}

		h.responder.WriteJSON(w, http.StatusOK, response)
	}
}

// createProject pre-checks the slug for a friendly conflict message; the
// unique index on slug is the backstop when a concurrent create wins the
// race, and surfaces as the same conflict.
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorized("not authenticated"))
			return
		}

		var req createProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequest("malformed request body"))
			return
		}

		if err := validateRequest(h.validate, req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		taken, err := h.projects.SlugTaken(r.Context(), req.Slug, 0)
		if err != nil {
			h.responder.WriteError(w, errs.FromDatabase("check", "slug", err))
			return
		}
		if taken {
			h.responder.WriteError(w, errs.NewAlreadyExists("slug"))
			return
		}

		project := models.Project{
			PublicID:   uuid.New(),
			UserID:     user.ID,
			Name:       req.Name,
			Slug:       req.Slug,
			LogoURL:    req.LogoURL,
			WebsiteURL: req.WebsiteURL,
		}

		if err := h.projects.Add(r.Context(), &project); err != nil {
			h.responder.WriteError(w, errs.FromDatabase("create", "slug", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusCreated, toProjectResponse(&project))
	}
}

func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorized("not authenticated"))
			return
		}

		project, err := h.guard.requireProject(r.Context(), chi.URLParam(r, "projectID"), user.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, toProjectResponse(project))
	}
}

func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorized("not authenticated"))
			return
		}

		project, err := h.guard.requireProject(r.Context(), chi.URLParam(r, "projectID"), user.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req updateProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequest("malformed request body"))
			return
		}

		if req.Slug != nil {
			taken, err := h.projects.SlugTaken(r.Context(), *req.Slug, project.ID)
			if err != nil {
				h.responder.WriteError(w, errs.FromDatabase("check", "slug", err))
				return
			}
			if taken {
				h.responder.WriteError(w, errs.NewAlreadyExists("slug"))
				return
			}
			project.Slug = *req.Slug
		}

		if req.Name != nil {
			project.Name = *req.Name
		}
		if req.LogoURL != nil {
			project.LogoURL = req.LogoURL
		}
		if req.WebsiteURL != nil {
			project.WebsiteURL = req.WebsiteURL
		}

		if err := h.projects.Update(r.Context(), project); err != nil {
			h.responder.WriteError(w, errs.FromDatabase("update", "slug", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, toProjectResponse(project))
	}
}

func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorized("not authenticated"))
			return
		}

		project, err := h.guard.requireProject(r.Context(), chi.URLParam(r, "projectID"), user.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projects.Delete(r.Context(), project.ID); err != nil {
			h.responder.WriteError(w, errs.FromDatabase("delete", "project", err))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
