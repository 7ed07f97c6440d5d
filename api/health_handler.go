package api

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

const serverVersion = "0.1.0"

type healthHandler struct {
	responder Responder
}

func newHealthHandler() healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()
	return healthHandler{
		responder: NewResponder(logger),
	}
}

func (h healthHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"version": serverVersion,
		})
	}
}
