package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"docchat/internal/contextutil"
	"docchat/internal/rag"
	"docchat/internal/service"
)

// AskHandler handles question-answering requests over the indexed documents.
type AskHandler struct {
	engine  rag.Engine
	session *service.Session
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(engine rag.Engine, session *service.Session) *AskHandler {
	return &AskHandler{
		engine:  engine,
		session: session,
	}
}

// AskRequest represents the HTTP request payload for questions.
type AskRequest struct {
	Question string `json:"question"`
}

// ServeHTTP answers a question using the indexed documents.
// Successful answers are appended to the conversation history.
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	logger.InfoContext(ctx, "answering question", "question_length", len(req.Question))
	result := h.engine.Answer(ctx, req.Question)

	if result.OK() && strings.TrimSpace(req.Question) != "" {
		h.session.Append(req.Question, result.Text)
	}

	writeResult(w, r, result)
}
