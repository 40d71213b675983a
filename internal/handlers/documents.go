package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"docchat/internal/contextutil"
	"docchat/internal/indexer"
	"docchat/internal/service"
	"docchat/internal/storage"
	"docchat/internal/uploads"
)

// maxUploadBytes bounds one multipart ingestion request.
const maxUploadBytes = 100 << 20 // 100 MiB

// DocumentHandler handles ingestion, catalog listing, and full reset.
type DocumentHandler struct {
	pipeline *indexer.Pipeline
	docs     storage.DocumentStore
	uploads  *uploads.Store
	session  *service.Session
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(pipeline *indexer.Pipeline, docs storage.DocumentStore, uploadStore *uploads.Store, session *service.Session) *DocumentHandler {
	return &DocumentHandler{
		pipeline: pipeline,
		docs:     docs,
		uploads:  uploadStore,
		session:  session,
	}
}

// IngestRequest represents a JSON ingestion request referencing files
// already present on disk.
type IngestRequest struct {
	Paths []string `json:"paths"`
}

// IngestResponse represents the outcome of one ingestion batch.
type IngestResponse struct {
	Documents int      `json:"documents"`
	Fragments int      `json:"fragments"`
	Skipped   []string `json:"skipped,omitempty"`
}

// DocumentResponse represents one catalog entry.
type DocumentResponse struct {
	DocID      int    `json:"doc_id"`
	Name       string `json:"name"`
	Pages      int    `json:"pages"`
	SizeBytes  int64  `json:"size_bytes"`
	Fragments  int    `json:"fragments"`
	IngestedAt string `json:"ingested_at"`
}

// Ingest indexes PDF files. Multipart requests upload the files themselves;
// JSON requests name paths already on disk.
func (h *DocumentHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var paths []string
	contentType := r.Header.Get("Content-Type")

	switch {
	case strings.HasPrefix(contentType, "multipart/form-data"):
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			logger.WarnContext(ctx, "invalid multipart request", "error", err)
			writeError(w, http.StatusBadRequest, "Invalid multipart request")
			return
		}
		files := r.MultipartForm.File["files"]
		if len(files) == 0 {
			writeError(w, http.StatusBadRequest, "No files provided")
			return
		}
		for _, header := range files {
			f, err := header.Open()
			if err != nil {
				logger.WarnContext(ctx, "failed to open upload", "file", header.Filename, "error", err)
				writeError(w, http.StatusBadRequest, "Failed to read uploaded file")
				return
			}
			path, err := h.uploads.Save(header.Filename, f)
			_ = f.Close()
			if err != nil {
				logger.ErrorContext(ctx, "failed to store upload", "file", header.Filename, "error", err)
				writeError(w, http.StatusInternalServerError, "Failed to store uploaded file")
				return
			}
			paths = append(paths, path)
		}

	default:
		var req IngestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.WarnContext(ctx, "invalid request body", "error", err)
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		paths = req.Paths
	}

	if len(paths) == 0 {
		writeError(w, http.StatusBadRequest, "No files to ingest")
		return
	}

	logger.InfoContext(ctx, "ingesting documents", "count", len(paths))
	report, err := h.pipeline.Ingest(ctx, paths)
	if err != nil {
		logger.ErrorContext(ctx, "ingestion failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Ingestion failed")
		return
	}

	writeJSON(w, http.StatusOK, IngestResponse{
		Documents: report.Documents,
		Fragments: report.Fragments,
		Skipped:   report.Skipped,
	})
}

// List returns the document catalog.
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	records, err := h.docs.ListAll(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list documents", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list documents")
		return
	}

	out := make([]DocumentResponse, len(records))
	for i, record := range records {
		out[i] = DocumentResponse{
			DocID:      record.DocID,
			Name:       record.Name,
			Pages:      record.Pages,
			SizeBytes:  record.SizeBytes,
			Fragments:  record.Fragments,
			IngestedAt: record.IngestedAt.UTC().Format(time.RFC3339),
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// Reset wipes the vector collection, the document catalog, the stored
// uploads, and the conversation history.
func (h *DocumentHandler) Reset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if err := h.pipeline.Reset(ctx); err != nil {
		logger.ErrorContext(ctx, "reset failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Reset failed")
		return
	}
	if err := h.uploads.Clear(); err != nil {
		logger.WarnContext(ctx, "failed to clear uploads", "error", err)
	}
	h.session.Clear()

	logger.InfoContext(ctx, "index reset")
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
