package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"docchat/internal/handlers"
	"docchat/internal/indexer"
	"docchat/internal/rag"
	"docchat/internal/service"
	"docchat/internal/storage"
	"docchat/internal/uploads"
	"docchat/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Engine      rag.Engine
	Pipeline    *indexer.Pipeline
	Documents   storage.DocumentStore
	Uploads     *uploads.Store
	Session     *service.Session
	VectorStore vectorstore.VectorStore
	Collection  string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	askHandler := handlers.NewAskHandler(deps.Engine, deps.Session)
	taskHandler := handlers.NewTaskHandler(deps.Engine)
	documentHandler := handlers.NewDocumentHandler(deps.Pipeline, deps.Documents, deps.Uploads, deps.Session)
	historyHandler := handlers.NewHistoryHandler(deps.Session)
	healthHandler := handlers.NewHealthHandler(deps.VectorStore, deps.Collection)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/ask", askHandler)
		r.Post("/summarize", taskHandler.Summarize)
		r.Post("/compare", taskHandler.Compare)
		r.Post("/classify", taskHandler.Classify)
		r.Post("/analyze", taskHandler.Analyze)
		r.Get("/overview", taskHandler.Overview)

		r.Post("/ingest", documentHandler.Ingest)
		r.Get("/documents", documentHandler.List)
		r.Post("/reset", documentHandler.Reset)

		r.Get("/history", historyHandler.List)
		r.Delete("/history", historyHandler.Clear)

		r.Method(http.MethodGet, "/health", healthHandler)
	})

	return r
}
