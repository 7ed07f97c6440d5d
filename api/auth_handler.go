package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vouchly/vouchly-backend/auth"
	"github.com/vouchly/vouchly-backend/database"
	"github.com/vouchly/vouchly-backend/errs"
	"github.com/vouchly/vouchly-backend/models"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	validate  *validator.Validate
	users     *database.UserRepo
	tokens    *auth.TokenService
}

func newAuthHandler(users *database.UserRepo, tokens *auth.TokenService, validate *validator.Validate) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		validate:  validate,
		users:     users,
		tokens:    tokens,
	}
}

type registerRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Name     *string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatar_url"`
}

type authResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expires_in"`
	User      userResponse `json:"user"`
}

func toUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:        user.PublicID.String(),
		Email:     user.Email,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
	}
}

// register creates an account and issues a token for it. The email pre-check
// gives the friendly conflict message; the unique index on email catches the
// race the pre-check can lose.
func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequest("malformed request body"))
			return
		}

		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		if err := validateRequest(h.validate, req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		taken, err := h.users.EmailTaken(r.Context(), req.Email)
		if err != nil {
			h.responder.WriteError(w, errs.FromDatabase("check", "email", err))
			return
		}
		if taken {
			h.responder.WriteError(w, errs.NewAlreadyExists("email"))
			return
		}

		passwordHash, err := auth.HashPassword(req.Password)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternal("failed to hash password"))
			return
		}

		user := models.User{
			PublicID:     uuid.New(),
			Email:        req.Email,
			PasswordHash: passwordHash,
			Name:         req.Name,
		}

		if err := h.users.Add(r.Context(), &user); err != nil {
			h.responder.WriteError(w, errs.FromDatabase("create", "email", err))
			return
		}

		token, err := h.tokens.Generate(user.PublicID)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternal("failed to generate token"))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, authResponse{
			Token:     token,
			ExpiresIn: int64(h.tokens.TTL().Seconds()),
			User:      toUserResponse(&user),
		})
	}
}

// login exchanges credentials for a token. Unknown email and wrong password
// collapse to one 401 so the endpoint can't be used to probe for accounts.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequest("malformed request body"))
			return
		}

		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		if err := validateRequest(h.validate, req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.users.FindByEmail(r.Context(), req.Email)
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorized("invalid credentials"))
			return
		}

		if !auth.CheckPassword(user.PasswordHash, req.Password) {
			h.responder.WriteError(w, errs.NewUnauthorized("invalid credentials"))
			return
		}

		token, err := h.tokens.Generate(user.PublicID)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternal("failed to generate token"))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, authResponse{
			Token:     token,
			ExpiresIn: int64(h.tokens.TTL().Seconds()),
			User:      toUserResponse(user),
		})
	}
}

// me returns the authenticated caller.
func (h authHandler) me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorized("not authenticated"))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, toUserResponse(user))
	}
}
