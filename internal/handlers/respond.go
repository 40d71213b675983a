package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghhtml "github.com/yuin/goldmark/renderer/html"

	"docchat/internal/contextutil"
	"docchat/internal/rag"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// TaskResponse represents an orchestrator outcome. Text is Markdown unless
// the client asked for rendered HTML via ?format=html.
type TaskResponse struct {
	Kind      string   `json:"kind"`
	Text      string   `json:"text"`
	HTML      string   `json:"html,omitempty"`
	Citations []string `json:"citations,omitempty"`
}

// markdown renders task results for format=html responses.
var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Table,
		extension.Strikethrough,
	),
	goldmark.WithRendererOptions(
		ghhtml.WithHardWraps(),
	),
)

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, ErrorResponse{Error: message})
}

// writeResult maps an orchestrator result to an HTTP response. Business
// outcomes (not indexed, no match) are 200s carrying their marker-prefixed
// text; only malformed requests and infrastructure failures map to error
// status codes.
func writeResult(w http.ResponseWriter, r *http.Request, result rag.Result) {
	resp := TaskResponse{
		Kind:      result.Kind.String(),
		Text:      result.Text,
		Citations: result.Citations,
	}

	if wantsHTML(r) {
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(result.Text), &buf); err != nil {
			logger := contextutil.LoggerFromContext(r.Context())
			logger.ErrorContext(r.Context(), "failed to render markdown", "error", err)
		} else {
			resp.HTML = buf.String()
		}
	}

	writeJSON(w, statusForKind(result.Kind), resp)
}

func wantsHTML(r *http.Request) bool {
	return strings.EqualFold(r.URL.Query().Get("format"), "html")
}

func statusForKind(kind rag.ResultKind) int {
	switch kind {
	case rag.KindValidation:
		return http.StatusBadRequest
	case rag.KindConfigError, rag.KindGenerateFailed:
		return http.StatusBadGateway
	case rag.KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusOK
	}
}
