package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// GeminiAPIKey authenticates the generation capability.
	// Read from GOOGLE_API_KEY or GEMINI_API_KEY (either name is accepted).
	// Absence is not fatal at load time; the generation client reports a
	// configuration error at first use.
	GeminiAPIKey string

	LLMModel string

	EmbeddingBaseURL string
	EmbeddingModel   string
	EmbeddingAPIKey  string
	// EmbeddingVectorSize must match the output dimension of the embedding model.
	// all-MiniLM-L6-v2 produces 384-dimensional vectors.
	EmbeddingVectorSize int

	VectorBackend    string // "qdrant" or "memory"
	QdrantURL        string
	QdrantCollection string

	// DataDir is the persistence root for the document catalog and uploaded PDFs.
	// Created at load time if absent.
	DataDir string

	APIPort   string
	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates the rest.
// If a .env file exists in the current directory or a parent directory, it is
// loaded automatically; variables already set take precedence over .env values.
func Load() (*Config, error) {
	_ = godotenv.Load() // Try current directory

	// Walk up a few levels looking for a .env at the project root.
	if wd, err := os.Getwd(); err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	apiKey := os.Getenv("GOOGLE_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	cfg := &Config{
		GeminiAPIKey:     apiKey,
		LLMModel:         getEnv("LLM_MODEL", "gemini-2.0-flash-001"),
		EmbeddingBaseURL: getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModel:   getEnv("EMBEDDING_MODEL", "sentence-transformers/all-MiniLM-L6-v2"),
		EmbeddingAPIKey:  getEnv("EMBEDDING_API_KEY", "dummy-key"),
		VectorBackend:    strings.ToLower(getEnv("VECTOR_BACKEND", "qdrant")),
		QdrantURL:        getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection: getEnv("QDRANT_COLLECTION", "docchat_fragments"),
		DataDir:          getEnv("DATA_DIR", "./data"),
		APIPort:          getEnv("API_PORT", "9000"),
		LogFormat:        strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	vectorSizeStr := getEnv("EMBEDDING_VECTOR_SIZE", "384")
	vectorSize, err := strconv.Atoi(vectorSizeStr)
	if err != nil {
		return nil, fmt.Errorf("EMBEDDING_VECTOR_SIZE must be a valid integer: %w", err)
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("EMBEDDING_VECTOR_SIZE must be greater than 0")
	}
	cfg.EmbeddingVectorSize = vectorSize

	if cfg.VectorBackend != "qdrant" && cfg.VectorBackend != "memory" {
		return nil, fmt.Errorf("VECTOR_BACKEND must be \"qdrant\" or \"memory\", got %q", cfg.VectorBackend)
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// CatalogPath returns the path of the SQLite document catalog inside DataDir.
func (c *Config) CatalogPath() string {
	return filepath.Join(c.DataDir, "docchat.db")
}

// UploadsDir returns the directory where uploaded PDFs are stored.
func (c *Config) UploadsDir() string {
	return filepath.Join(c.DataDir, "uploads")
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
