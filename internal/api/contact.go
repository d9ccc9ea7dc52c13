package api

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/gaayatricouture/couture/internal/model"
	"github.com/gaayatricouture/couture/internal/store"
)

// ContactHandler accepts contact form messages.
type ContactHandler struct {
	Store  store.ContactStore
	logger zerolog.Logger
}

// Create handles POST /api/contact.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var sub model.ContactSubmission
	if err := decodeJSON(r, &sub); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := sub.Validate(); err != nil {
		jsonFailure(w, err, "failed to send message")
		return
	}

	if err := h.Store.CreateContactSubmission(r.Context(), &sub); err != nil {
		h.logger.Error().Err(err).Msg("failed to save contact submission")
		jsonFailure(w, err, "failed to send message")
		return
	}

	jsonResponse(w, http.StatusCreated, map[string]string{"message": "message sent"})
}
