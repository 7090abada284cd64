package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/nietlabs/answer-engine/internal/observability"
	"github.com/nietlabs/answer-engine/internal/storage"
)

// CallbackHandler records callback requests from prospective students.
type CallbackHandler struct {
	logger *observability.Logger
	store  *storage.CallbackStore
}

// NewCallbackHandler creates a callback handler.
func NewCallbackHandler(logger *observability.Logger, store *storage.CallbackStore) *CallbackHandler {
	return &CallbackHandler{logger: logger, store: store}
}

// CallbackRequestDTO is the API request to schedule a callback.
type CallbackRequestDTO struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Topic     string `json:"topic,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
}

// Create handles POST /api/v1/callbacks.
func (h *CallbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CallbackRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	cb := storage.CallbackRequest{
		Name:      req.Name,
		Phone:     req.Phone,
		Topic:     req.Topic,
		SessionID: req.SessionID,
	}
	if err := h.store.Create(r.Context(), &cb); err != nil {
		writeError(w, http.StatusBadRequest, "could not record callback request", err.Error())
		return
	}

	h.logger.Info().Str("callback_id", cb.ID).Msg("callback request recorded")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(cb); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode callback response")
	}
}

// Recent handles GET /api/v1/callbacks, newest first.
func (h *CallbackHandler) Recent(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.Recent(r.Context(), 50)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list callback requests")
		writeError(w, http.StatusInternalServerError, "could not list callback requests", "")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(items); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode callback list")
	}
}
