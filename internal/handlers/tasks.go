package handlers

import (
	"encoding/json"
	"net/http"

	"docchat/internal/contextutil"
	"docchat/internal/rag"
)

// SummarizeRequest represents the HTTP request payload for summaries.
type SummarizeRequest struct {
	Document string `json:"document"`
}

// CompareRequest represents the HTTP request payload for comparisons.
type CompareRequest struct {
	DocumentA string `json:"document_a"`
	DocumentB string `json:"document_b"`
}

// ClassifyRequest represents the HTTP request payload for topic classification.
type ClassifyRequest struct {
	Query string `json:"query"`
}

// AnalyzeRequest represents the HTTP request payload for document analysis.
type AnalyzeRequest struct {
	Document string `json:"document"`
}

// TaskHandler exposes the document-level tasks: summarize, compare,
// classify, and analyze.
type TaskHandler struct {
	engine rag.Engine
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(engine rag.Engine) *TaskHandler {
	return &TaskHandler{engine: engine}
}

// Summarize writes an executive summary of one document.
func (h *TaskHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	logger.InfoContext(ctx, "summarizing document", "document", req.Document)
	writeResult(w, r, h.engine.Summarize(ctx, req.Document))
}

// Compare contrasts two documents.
func (h *TaskHandler) Compare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	logger.InfoContext(ctx, "comparing documents", "document_a", req.DocumentA, "document_b", req.DocumentB)
	writeResult(w, r, h.engine.Compare(ctx, req.DocumentA, req.DocumentB))
}

// Classify builds a topic taxonomy for a query.
func (h *TaskHandler) Classify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	logger.InfoContext(ctx, "classifying topics", "query", req.Query)
	writeResult(w, r, h.engine.Classify(ctx, req.Query))
}

// Analyze profiles a single document.
func (h *TaskHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	logger.InfoContext(ctx, "analyzing document", "document", req.Document)
	writeResult(w, r, h.engine.Analyze(ctx, req.Document))
}

// Overview aggregates per-document statistics from the index.
func (h *TaskHandler) Overview(w http.ResponseWriter, r *http.Request) {
	writeResult(w, r, h.engine.Overview(r.Context()))
}
