package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vouchly/vouchly-backend/database"
	"github.com/vouchly/vouchly-backend/errs"
	"github.com/vouchly/vouchly-backend/models"
)

type tagHandler struct {
	responder Responder
	logger    zerolog.Logger
	validate  *validator.Validate
	guard     ownershipGuard
	tags      *database.TagRepo
}

func newTagHandler(tags *database.TagRepo, validate *validator.Validate, guard ownershipGuard) tagHandler {
	logger := log.With().Str("handlerName", "tagHandler").Logger()

	return tagHandler{
		responder: NewResponder(logger),
		logger:    logger,
		validate:  validate,
		guard:     guard,
		tags:      tags,
	}
}

type createTagRequest struct {
	Name  string  `json:"name" validate:"required"`
	Color *string `json:"color"`
}

type updateTagRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

type tagResponse struct {
	ID        string  `json:"id"`
	ProjectID string  `json:"project_id"`
	Name      string  `json:"name"`
	Color     *string `json:"color"`
}

type setTestimonialTagsRequest struct {
	TagIDs []string `json:"tag_ids"`
}

type testimonialTagsResponse struct {
	Tags []tagResponse `json:"tags"`
}

func toTagResponse(tag *models.Tag, project *models.Project) tagResponse {
	return tagResponse{
		ID:        tag.PublicID.String(),
		ProjectID: project.PublicID.String(),
		Name:      tag.Name,
		Color:     tag.Color,
	}
}

func toTagResponses(tags []*models.Tag, project *models.Project) []tagResponse {
	response := make([]tagResponse, 0, len(tags))
	for _, tag := range tags {
		response = append(response, toTagResponse(tag, project))
	}
	return response
}

func (h tagHandler) listTags() http.HandlerFunc {
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

		tags, err := h.tags.FindByProject(r.Context(), project.ID)
		if err != nil {
			h.responder.WriteError(w, errs.FromDatabase("list", "tags", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, toTagResponses(tags, project))
	}
}

// createTag enforces per-project name uniqueness: the pre-check supplies the
// friendly conflict, the composite unique index backs it up under races.
func (h tagHandler) createTag() http.HandlerFunc {
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

		var req createTagRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequest("malformed request body"))
			return
		}

		if err := validateRequest(h.validate, req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		taken, err := h.tags.NameTaken(r.Context(), project.ID, req.Name, 0)
		if err != nil {
			h.responder.WriteError(w, errs.FromDatabase("check", "tag name", err))
			return
		}
		if taken {
			h.responder.WriteError(w, errs.NewAlreadyExists("tag name"))
			return
		}

		tag := models.Tag{
			PublicID:  uuid.New(),
			ProjectID: project.ID,
			Name:      req.Name,
			Color:     req.Color,
		}

		if err := h.tags.Add(r.Context(), &tag); err != nil {
			h.responder.WriteError(w, errs.FromDatabase("create", "tag name", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusCreated, toTagResponse(&tag, project))
	}
}

func (h tagHandler) updateTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorized("not authenticated"))
			return
		}

		tag, project, err := h.guard.requireTag(r.Context(), chi.URLParam(r, "tagID"), user.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req updateTagRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequest("malformed request body"))
			return
		}

		if req.Name != nil {
			taken, err := h.tags.NameTaken(r.Context(), project.ID, *req.Name, tag.ID)
			if err != nil {
				h.responder.WriteError(w, errs.FromDatabase("check", "tag name", err))
				return
			}
			if taken {
				h.responder.WriteError(w, errs.NewAlreadyExists("tag name"))
				return
			}
			tag.Name = *req.Name
		}

		if req.Color != nil {
			tag.Color = req.Color
		}

		if err := h.tags.Update(r.Context(), tag); err != nil {
			h.responder.WriteError(w, errs.FromDatabase("update", "tag name", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, toTagResponse(tag, project))
	}
}

func (h tagHandler) deleteTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorized("not authenticated"))
			return
		}

		tag, _, err := h.guard.requireTag(r.Context(), chi.URLParam(r, "tagID"), user.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.tags.Delete(r.Context(), tag.ID); err != nil {
			h.responder.WriteError(w, errs.FromDatabase("delete", "tag", err))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// setTestimonialTags replaces the testimonial's full tag set. Every
// requested tag is resolved and checked against the testimonial's project
// before anything is written: an unknown tag aborts with not found, a tag
// from another project aborts with forbidden, and in both cases the existing
// associations stay untouched. The replacement itself is transactional.
func (h tagHandler) setTestimonialTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorized("not authenticated"))
			return
		}

		testimonial, project, err := h.guard.requireTestimonial(r.Context(), chi.URLParam(r, "testimonialID"), user.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req setTestimonialTagsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequest("malformed request body"))
			return
		}

		tags := make([]*models.Tag, 0, len(req.TagIDs))
		tagIDs := make([]uint, 0, len(req.TagIDs))
		for _, rawID := range req.TagIDs {
			tagPublicID, err := uuid.Parse(rawID)
			if err != nil {
				h.responder.WriteError(w, errs.NewNotFound("tag"))
				return
			}

			tag, err := h.tags.FindByPublicID(r.Context(), tagPublicID)
			if err != nil {
				h.responder.WriteError(w, errs.FromDatabase("find", "tag", err))
				return
			}

			// Cross-project tag reuse is never permitted, even between two
			// projects of the same caller.
			if tag.ProjectID != testimonial.ProjectID {
				h.responder.WriteError(w, errs.NewForbidden("tag belongs to a different project"))
				return
			}

			tags = append(tags, tag)
			tagIDs = append(tagIDs, tag.ID)
		}

		if err := h.tags.ReplaceForTestimonial(r.Context(), testimonial.ID, tagIDs); err != nil {
			h.responder.WriteError(w, errs.FromDatabase("replace", "testimonial tags", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, testimonialTagsResponse{
			Tags: toTagResponses(tags, project),
		})
	}
}
