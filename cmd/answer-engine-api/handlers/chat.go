// Package handlers provides HTTP handlers for the Answer Engine API.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/nietlabs/answer-engine/internal/observability"
	"github.com/nietlabs/answer-engine/internal/routing"
)

// ChatHandler answers chat questions through the routing engine.
type ChatHandler struct {
	logger *observability.Logger
	engine *routing.Engine
}

// NewChatHandler creates a chat handler.
func NewChatHandler(logger *observability.Logger, engine *routing.Engine) *ChatHandler {
	return &ChatHandler{logger: logger, engine: engine}
}

// ChatRequestDTO is the API request for one question.
type ChatRequestDTO struct {
	Question  string `json:"question"`
	SessionID string `json:"sessionId,omitempty"`
}

// ChatResponseDTO is the API response. Exactly one answer is returned for
// every well-formed request.
type ChatResponseDTO struct {
	Type      string           `json:"type"`
	Answer    string           `json:"answer"`
	Details   []string         `json:"details,omitempty"`
	Actions   []routing.Action `json:"actions,omitempty"`
	SessionID string           `json:"sessionId"`
}

// Ask handles POST /api/v1/chat.
func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req ChatRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "question is required", "")
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	answer := h.engine.Answer(r.Context(), req.Question, req.SessionID)

	resp := ChatResponseDTO{
		Type:      string(answer.Type),
		Answer:    answer.Text,
		Details:   answer.Details,
		Actions:   answer.Actions,
		SessionID: req.SessionID,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode chat response")
	}
}

func writeError(w http.ResponseWriter, status int, message, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := map[string]string{"error": message}
	if detail != "" {
		resp["detail"] = detail
	}
	json.NewEncoder(w).Encode(resp)
}
