package api

import (
	"encoding/json"
	"net/http"
	"strconv"
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

type testimonialHandler struct {
	responder    Responder
	logger       zerolog.Logger
	validate     *validator.Validate
	guard        ownershipGuard
	testimonials *database.TestimonialRepo
	tags         *database.TagRepo
}

func newTestimonialHandler(testimonials *database.TestimonialRepo, tags *database.TagRepo, validate *validator.Validate, guard ownershipGuard) testimonialHandler {
	logger := log.With().Str("handlerName", "testimonialHandler").Logger()

	return testimonialHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		validate:     validate,
		guard:        guard,
		testimonials: testimonials,
		tags:         tags,
	}
}

type createTestimonialRequest struct {
	AuthorName           string   `json:"author_name" validate:"required"`
	Type                 *string  `json:"type"`
	Content              *string  `json:"content"`
	Rating               *int16   `json:"rating"`
	AuthorEmail          *string  `json:"author_email"`
	AuthorTitle          *string  `json:"author_title"`
	AuthorAvatarURL      *string  `json:"author_avatar_url"`
	AuthorCompany        *string  `json:"author_company"`
	AuthorURL            *string  `json:"author_url"`
	VideoURL             *string  `json:"video_url"`
	VideoThumbnailURL    *string  `json:"video_thumbnail_url"`
	VideoDurationSeconds *int     `json:"video_duration_seconds"`
	Transcription        *string  `json:"transcription"`
	Source               *string  `json:"source"`
	SourcePlatform       *string  `json:"source_platform"`
	SourceURL            *string  `json:"source_url"`
	SourceID             *string  `json:"source_id"`
	Sentiment            *string  `json:"sentiment"`
	SentimentScore       *float32 `json:"sentiment_score"`
	Language             *string  `json:"language"`
}

type updateTestimonialRequest struct {
	Type                 *string  `json:"type"`
	Content              *string  `json:"content"`
	Rating               *int16   `json:"rating"`
	AuthorName           *string  `json:"author_name"`
	AuthorEmail          *string  `json:"author_email"`
	AuthorTitle          *string  `json:"author_title"`
	AuthorAvatarURL      *string  `json:"author_avatar_url"`
	AuthorCompany        *string  `json:"author_company"`
	AuthorURL            *string  `json:"author_url"`
	VideoURL             *string  `json:"video_url"`
	VideoThumbnailURL    *string  `json:"video_thumbnail_url"`
	VideoDurationSeconds *int     `json:"video_duration_seconds"`
	Transcription        *string  `json:"transcription"`
	Source               *string  `json:"source"`
	SourcePlatform       *string  `json:"source_platform"`
	SourceURL            *string  `json:"source_url"`
	SourceID             *string  `json:"source_id"`
	Sentiment            *string  `json:"sentiment"`
	SentimentScore       *float32 `json:"sentiment_score"`
	Language             *string  `json:"language"`
	IsApproved           *bool    `json:"is_approved"`
	IsFeatured           *bool    `json:"is_featured"`
}

type testimonialResponse struct {
	ID                   string        `json:"id"`
	ProjectID            string        `json:"project_id"`
	Type                 string        `json:"type"`
	Content              *string       `json:"content"`
	Rating               *int16        `json:"rating"`
	AuthorName           string        `json:"author_name"`
	AuthorEmail          *string       `json:"author_email"`
	AuthorTitle          *string       `json:"author_title"`
	AuthorAvatarURL      *string       `json:"author_avatar_url"`
	AuthorCompany        *string       `json:"author_company"`
	AuthorURL            *string       `json:"author_url"`
	VideoURL             *string       `json:"video_url"`
	VideoThumbnailURL    *string       `json:"video_thumbnail_url"`
	VideoDurationSeconds *int          `json:"video_duration_seconds"`
	Transcription        *string       `json:"transcription"`
	Source               *string       `json:"source"`
	SourcePlatform       *string       `json:"source_platform"`
	SourceURL            *string       `json:"source_url"`
	SourceID             *string       `json:"source_id"`
	Sentiment            *string       `json:"sentiment"`
	SentimentScore       *float32      `json:"sentiment_score"`
	Language             *string       `json:"language"`
	IsApproved           bool          `json:"is_approved"`
	IsFeatured           bool          `json:"is_featured"`
	Tags                 []tagResponse `json:"tags"`
	CreatedAt            string        `json:"created_at"`
	UpdatedAt            string        `json:"updated_at"`
}

func toTestimonialResponse(t *models.Testimonial, project *models.Project, tags []tagResponse) testimonialResponse {
	if tags == nil {
		tags = make([]tagResponse, 0)
	}

	return testimonialResponse{
		ID:                   t.PublicID.String(),
		ProjectID:            project.PublicID.String(),
		Type:                 t.Type,
		Content:              t.Content,
		Rating:               t.Rating,
		AuthorName:           t.AuthorName,
		AuthorEmail:          t.AuthorEmail,
		AuthorTitle:          t.AuthorTitle,
		AuthorAvatarURL:      t.AuthorAvatarURL,
		AuthorCompany:        t.AuthorCompany,
		AuthorURL:            t.AuthorURL,
		VideoURL:             t.VideoURL,
		VideoThumbnailURL:    t.VideoThumbnailURL,
		VideoDurationSeconds: t.VideoDurationSeconds,
		Transcription:        t.Transcription,
		Source:               t.Source,
		SourcePlatform:       t.SourcePlatform,
		SourceURL:            t.SourceURL,
		SourceID:             t.SourceID,
		Sentiment:            t.Sentiment,
		SentimentScore:       t.SentimentScore,
		Language:             t.Language,
		IsApproved:           t.IsApproved,
		IsFeatured:           t.IsFeatured,
		Tags:                 tags,
		CreatedAt:            t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            t.UpdatedAt.Format(time.RFC3339),
	}
}

func parseBoolQueryParam(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, errs.NewBadRequest("invalid " + name + " query parameter")
	}
	return &value, nil
}

func (h testimonialHandler) listTestimonials() http.HandlerFunc {
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

		var filter database.TestimonialFilter
		if filter.IsApproved, err = parseBoolQueryParam(r, "is_approved"); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if filter.IsFeatured, err = parseBoolQueryParam(r, "is_featured"); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		testimonials, err := h.testimonials.FindByProject(r.Context(), project.ID, filter)
		if err != nil {
			h.responder.WriteError(w, errs.FromDatabase("list", "testimonials", err))
			return
		}

		testimonialIDs := make([]uint, 0, len(testimonials))
		for _, t := range testimonials {
			testimonialIDs = append(testimonialIDs, t.ID)
		}

		tagsByTestimonial, err := h.tags.ForTestimonials(r.Context(), testimonialIDs)
		if err != nil {
			h.responder.WriteError(w, errs.FromDatabase("load", "testimonial tags", err))
			return
		}

		response := make([]testimonialResponse, 0, len(testimonials))
		for _, t := range testimonials {
			response = append(response, toTestimonialResponse(t, project, toTagResponses(tagsByTestimonial[t.ID], project)))
		}

		h.responder.WriteJSON(w, http.StatusOK, response)
	}
}

func (h testimonialHandler) createTestimonial() http.HandlerFunc {
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

		var req createTestimonialRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequest("malformed request body"))
			return
		}

		if err := validateRequest(h.validate, req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		testimonialType := "text"
		if req.Type != nil {
			testimonialType = *req.Type
		}

		source := req.Source
		if source == nil {
			defaultSource := "form"
			source = &defaultSource
		}

		testimonial := models.Testimonial{
			PublicID:             uuid.New(),
			ProjectID:            project.ID,
			Type:                 testimonialType,
			Content:              req.Content,
			Rating:               req.Rating,
			AuthorName:           req.AuthorName,
			AuthorEmail:          req.AuthorEmail,
			AuthorTitle:          req.AuthorTitle,
			AuthorAvatarURL:      req.AuthorAvatarURL,
			AuthorCompany:        req.AuthorCompany,
			AuthorURL:            req.AuthorURL,
			VideoURL:             req.VideoURL,
			VideoThumbnailURL:    req.VideoThumbnailURL,
			VideoDurationSeconds: req.VideoDurationSeconds,
			Transcription:        req.Transcription,
			Source:               source,
			SourcePlatform:       req.SourcePlatform,
			SourceURL:            req.SourceURL,
			SourceID:             req.SourceID,
			Sentiment:            req.Sentiment,
			SentimentScore:       req.SentimentScore,
			Language:             req.Language,
		}

		if err := h.testimonials.Add(r.Context(), &testimonial); err != nil {
			h.responder.WriteError(w, errs.FromDatabase("create", "testimonial", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusCreated, toTestimonialResponse(&testimonial, project, nil))
	}
}

func (h testimonialHandler) getTestimonial() http.HandlerFunc {
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

		tags, err := h.tags.ForTestimonial(r.Context(), testimonial.ID)
		if err != nil {
			h.responder.WriteError(w, errs.FromDatabase("load", "testimonial tags", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, toTestimonialResponse(testimonial, project, toTagResponses(tags, project)))
	}
}

func (h testimonialHandler) updateTestimonial() http.HandlerFunc {
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

		var req updateTestimonialRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequest("malformed request body"))
			return
		}

		applyTestimonialUpdate(testimonial, req)

		if err := h.testimonials.Update(r.Context(), testimonial); err != nil {
			h.responder.WriteError(w, errs.FromDatabase("update", "testimonial", err))
			return
		}

		tags, err := h.tags.ForTestimonial(r.Context(), testimonial.ID)
		if err != nil {
			h.responder.WriteError(w, errs.FromDatabase("load", "testimonial tags", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, toTestimonialResponse(testimonial, project, toTagResponses(tags, project)))
	}
}

func applyTestimonialUpdate(t *models.Testimonial, req updateTestimonialRequest) {
	if req.Type != nil {
		t.Type = *req.Type
	}
	if req.Content != nil {
		t.Content = req.Content
	}
	if req.Rating != nil {
		t.Rating = req.Rating
	}
	if req.AuthorName != nil {
		t.AuthorName = *req.AuthorName
	}
	if req.AuthorEmail != nil {
		t.AuthorEmail = req.AuthorEmail
	}
	if req.AuthorTitle != nil {
		t.AuthorTitle = req.AuthorTitle
	}
	if req.AuthorAvatarURL != nil {
		t.AuthorAvatarURL = req.AuthorAvatarURL
	}
	if req.AuthorCompany != nil {
		t.AuthorCompany = req.AuthorCompany
	}
	if req.AuthorURL != nil {
		t.AuthorURL = req.AuthorURL
	}
	if req.VideoURL != nil {
		t.VideoURL = req.VideoURL
	}
	if req.VideoThumbnailURL != nil {
		t.VideoThumbnailURL = req.VideoThumbnailURL
	}
	if req.VideoDurationSeconds != nil {
		t.VideoDurationSeconds = req.VideoDurationSeconds
	}
	if req.Transcription != nil {
		t.Transcription = req.Transcription
	}
	if req.Source != nil {
		t.Source = req.Source
	}
	if req.SourcePlatform != nil {
		t.SourcePlatform = req.SourcePlatform
	}
	if req.SourceURL != nil {
		t.SourceURL = req.SourceURL
	}
	if req.SourceID != nil {
		t.SourceID = req.SourceID
	}
	if req.Sentiment != nil {
		t.Sentiment = req.Sentiment
	}
	if req.SentimentScore != nil {
		t.SentimentScore = req.SentimentScore
	}
	if req.Language != nil {
		t.Language = req.Language
	}
	if req.IsApproved != nil {
		t.IsApproved = *req.IsApproved
	}
	if req.IsFeatured != nil {
		t.IsFeatured = *req.IsFeatured
	}
}

func (h testimonialHandler) deleteTestimonial() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorized("not authenticated"))
			return
		}

		testimonial, _, err := h.guard.requireTestimonial(r.Context(), chi.URLParam(r, "testimonialID"), user.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.testimonials.Delete(r.Context(), testimonial.ID); err != nil {
			h.responder.WriteError(w, errs.FromDatabase("delete", "testimonial", err))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// toggleApprove inverts the approval flag. The client never sends a value:
// each call flips the current state and leaves the featured flag untouched.
func (h testimonialHandler) toggleApprove() http.HandlerFunc {
	return h.toggleFlag(func(t *models.Testimonial) {
		t.IsApproved = !t.IsApproved
	})
}

// toggleFeature inverts the featured flag, independent of approval.
func (h testimonialHandler) toggleFeature() http.HandlerFunc {
	return h.toggleFlag(func(t *models.Testimonial) {
		t.IsFeatured = !t.IsFeatured
	})
}

func (h testimonialHandler) toggleFlag(flip func(*models.Testimonial)) http.HandlerFunc {
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

		flip(testimonial)

		if err := h.testimonials.Update(r.Context(), testimonial); err != nil {
			h.responder.WriteError(w, errs.FromDatabase("update", "testimonial", err))
			return
		}

		tags, err := h.tags.ForTestimonial(r.Context(), testimonial.ID)
		if err != nil {
			h.responder.WriteError(w, errs.FromDatabase("load", "testimonial tags", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, toTestimonialResponse(testimonial, project, toTagResponses(tags, project)))
	}
}
