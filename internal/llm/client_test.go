package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func candidateResponse(text string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	}
}

func TestNewClient(t *testing.T) {
	client := NewClient("", "key", "gemini-2.0-flash-001")
	if client == nil {
		t.Fatal("NewClient() returned nil")
	}
	if client.BaseURL != DefaultBaseURL {
		t.Errorf("NewClient() BaseURL = %v, want default %v", client.BaseURL, DefaultBaseURL)
	}
	if client.shape != -1 {
		t.Errorf("NewClient() shape = %d, want -1 (not negotiated)", client.shape)
	}
}

func TestClient_Generate_MissingCredential(t *testing.T) {
	client := NewClient("", "", "gemini-2.0-flash-001")
	_, err := client.Generate(context.Background(), "hello")
	if !errors.Is(err, ErrMissingCredential) {
		t.Errorf("Generate() error = %v, want ErrMissingCredential", err)
	}
}

func TestClient_Generate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(candidateResponse("  the answer \n"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "gemini-2.0-flash-001")
	got, err := client.Generate(context.Background(), "question")
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if got != "the answer" {
		t.Errorf("Generate() = %q, want trimmed %q", got, "the answer")
	}
}

func TestClient_Generate_ShapeFallback(t *testing.T) {
	// First request shape (with role) is rejected; the second succeeds.
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++

		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if len(req.Contents) != 1 {
			t.Fatalf("expected 1 content block, got %d", len(req.Contents))
		}

		if req.Contents[0].Role != "" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error": "unknown field role"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(candidateResponse("fallback worked"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "gemini-2.0-flash-001")

	got, err := client.Generate(context.Background(), "question")
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if got != "fallback worked" {
		t.Errorf("Generate() = %q, want %q", got, "fallback worked")
	}
	if calls != 2 {
		t.Errorf("Generate() made %d calls, want 2 (one per shape)", calls)
	}

	// The successful shape is cached: the next call goes straight to it.
	calls = 0
	if _, err := client.Generate(context.Background(), "another"); err != nil {
		t.Fatalf("Generate() second call unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Generate() after negotiation made %d calls, want 1", calls)
	}
}

func TestClient_Generate_AllShapesRejected(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "bad request"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "gemini-2.0-flash-001")
	_, err := client.Generate(context.Background(), "question")

	var genErr *GenerateError
	if !errors.As(err, &genErr) {
		t.Fatalf("Generate() error = %v, want *GenerateError", err)
	}
	if genErr.StatusCode != http.StatusBadRequest {
		t.Errorf("GenerateError.StatusCode = %d, want %d", genErr.StatusCode, http.StatusBadRequest)
	}
	if calls != len(requestShapes) {
		t.Errorf("Generate() made %d calls, want %d (all shapes tried)", calls, len(requestShapes))
	}
}

func TestClient_Generate_EmptyTextIsValid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(candidateResponse("   "))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "gemini-2.0-flash-001")
	got, err := client.Generate(context.Background(), "question")
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("Generate() = %q, want empty string", got)
	}
}

func TestClient_CheckModel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ModelInfo{Name: "models/gemini-2.0-flash-001", DisplayName: "Gemini Flash"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "gemini-2.0-flash-001")
	info, err := client.CheckModel(context.Background())
	if err != nil {
		t.Fatalf("CheckModel() unexpected error: %v", err)
	}
	if info.Name != "models/gemini-2.0-flash-001" {
		t.Errorf("CheckModel() name = %q", info.Name)
	}

	noKey := NewClient(server.URL, "", "gemini-2.0-flash-001")
	if _, err := noKey.CheckModel(context.Background()); !errors.Is(err, ErrMissingCredential) {
		t.Errorf("CheckModel() without key error = %v, want ErrMissingCredential", err)
	}
}
