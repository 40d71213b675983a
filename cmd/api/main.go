package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"docchat/internal/config"
	"docchat/internal/http"
	"docchat/internal/indexer"
	"docchat/internal/llm"
	"docchat/internal/pdf"
	"docchat/internal/rag"
	"docchat/internal/service"
	"docchat/internal/storage"
	"docchat/internal/uploads"
	"docchat/internal/vectorstore"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize the document catalog
	db, err := storage.New(cfg.CatalogPath())
	if err != nil {
		log.Fatalf("Failed to open document catalog: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Document catalog initialized", "path", cfg.CatalogPath())

	documentRepo := storage.NewDocumentRepo(db)

	ctx := context.Background()

	// Select the vector backend
	var vectorStore vectorstore.VectorStore
	switch cfg.VectorBackend {
	case "memory":
		vectorStore = vectorstore.NewMemoryStore()
		slog.Info("Using in-memory vector store")
	default:
		qdrantStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
		if err != nil {
			log.Fatalf("Failed to create Qdrant client: %v", err)
		}
		vectorStore = qdrantStore
		slog.Info("Using Qdrant vector store", "url", cfg.QdrantURL)
	}

	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.EmbeddingVectorSize); err != nil {
		log.Fatalf("Failed to ensure vector collection: %v", err)
	}
	slog.Info("Vector collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.EmbeddingVectorSize)

	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModel, cfg.EmbeddingVectorSize)

	uploadStore, err := uploads.NewStore(cfg.UploadsDir())
	if err != nil {
		log.Fatalf("Failed to initialize uploads directory: %v", err)
	}

	// Create the ingestion pipeline
	pipeline := indexer.NewPipeline(
		pdf.NewExtractor(),
		embedder,
		vectorStore,
		documentRepo,
		cfg.QdrantCollection,
		cfg.EmbeddingVectorSize,
	)

	// Create the generation client. A missing credential is reported on first
	// use, not at startup, so the index endpoints stay usable without one.
	llmClient := llm.NewClient(llm.DefaultBaseURL, cfg.GeminiAPIKey, cfg.LLMModel)
	if cfg.GeminiAPIKey != "" {
		if info, err := llmClient.CheckModel(ctx); err != nil {
			slog.Warn("Generation model check failed", "model", cfg.LLMModel, "error", err)
		} else {
			slog.Info("Generation model available", "model", info.Name)
		}
	} else {
		slog.Warn("No generation credential configured; answers will fail until GOOGLE_API_KEY or GEMINI_API_KEY is set")
	}

	// Create the RAG engine
	assembler := rag.NewAssembler(embedder, vectorStore, cfg.QdrantCollection)
	engine := rag.NewEngine(assembler, llmClient, vectorStore, cfg.QdrantCollection)
	slog.Info("RAG engine initialized", "model", cfg.LLMModel)

	session := service.NewSession()

	router := http.NewRouter(&http.Deps{
		Engine:      engine,
		Pipeline:    pipeline,
		Documents:   documentRepo,
		Uploads:     uploadStore,
		Session:     session,
		VectorStore: vectorStore,
		Collection:  cfg.QdrantCollection,
	})

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
