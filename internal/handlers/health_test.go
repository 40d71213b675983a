package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"docchat/internal/vectorstore"
	"docchat/internal/vectorstore/mocks"

	"go.uber.org/mock/gomock"
)

func TestHealthHandler_Healthy(t *testing.T) {
	// An empty collection is still healthy; only an unreachable store is not.
	handler := NewHealthHandler(vectorstore.NewMemoryStore(), "test_fragments")

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("status = %q, want healthy", resp.Status)
	}
	if resp.Checks["vector_store"] != "ok" {
		t.Errorf("checks = %v", resp.Checks)
	}
}

func TestHealthHandler_Unhealthy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockVectorStore(ctrl)
	store.EXPECT().
		Count(gomock.Any(), "test_fragments").
		Return(0, fmt.Errorf("connection refused"))

	handler := NewHealthHandler(store, "test_fragments")

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "unhealthy" {
		t.Errorf("status = %q, want unhealthy", resp.Status)
	}
	if len(resp.Issues) == 0 {
		t.Error("issues empty, want vector_store_unavailable")
	}
}
