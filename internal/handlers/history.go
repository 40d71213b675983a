package handlers

import (
	"net/http"

	"docchat/internal/service"
)

// HistoryHandler exposes the in-memory conversation history.
type HistoryHandler struct {
	session *service.Session
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(session *service.Session) *HistoryHandler {
	return &HistoryHandler{session: session}
}

// HistoryResponse represents the recent conversation turns.
type HistoryResponse struct {
	Turns []service.Turn `json:"turns"`
}

// List returns the most recent conversation turns, oldest first.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	turns := h.session.Recent(service.DisplayTurns)
	if turns == nil {
		turns = []service.Turn{}
	}
	writeJSON(w, http.StatusOK, HistoryResponse{Turns: turns})
}

// Clear drops the conversation history.
func (h *HistoryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.session.Clear()
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
