package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"docchat/internal/indexer"
	"docchat/internal/rag"
	rag_mocks "docchat/internal/rag/mocks"
	storage_mocks "docchat/internal/storage/mocks"
	"docchat/internal/service"
	"docchat/internal/uploads"
	"docchat/internal/vectorstore"

	"go.uber.org/mock/gomock"
)

type stubExtractor struct{}

func (stubExtractor) ExtractPages(_ string) ([]indexer.PageText, error) {
	return nil, nil
}

type stubEmbedder struct{}

func (stubEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0}
	}
	return out, nil
}

func newTestRouter(t *testing.T, engine rag.Engine, ctrl *gomock.Controller) http.Handler {
	t.Helper()

	store := vectorstore.NewMemoryStore()
	docs := storage_mocks.NewMockDocumentStore(ctrl)
	pipeline := indexer.NewPipeline(stubExtractor{}, stubEmbedder{}, store, docs, "test_fragments", 2)
	uploadStore, err := uploads.NewStore(filepath.Join(t.TempDir(), "uploads"))
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}

	return NewRouter(&Deps{
		Engine:      engine,
		Pipeline:    pipeline,
		Documents:   docs,
		Uploads:     uploadStore,
		Session:     service.NewSession(),
		VectorStore: store,
		Collection:  "test_fragments",
	})
}

func TestRouter_Routes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := rag_mocks.NewMockEngine(ctrl)
	engine.EXPECT().Answer(gomock.Any(), "q").Return(rag.Result{Kind: rag.KindOK, Text: "a"}).AnyTimes()
	engine.EXPECT().Overview(gomock.Any()).Return(rag.Result{Kind: rag.KindOK, Text: "stats"}).AnyTimes()

	router := newTestRouter(t, engine, ctrl)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"ask", http.MethodPost, "/api/ask", `{"question":"q"}`, http.StatusOK},
		{"overview", http.MethodGet, "/api/overview", "", http.StatusOK},
		{"health", http.MethodGet, "/api/health", "", http.StatusOK},
		{"history", http.MethodGet, "/api/history", "", http.StatusOK},
		{"unknown route", http.MethodGet, "/api/nope", "", http.StatusNotFound},
		{"wrong method", http.MethodGet, "/api/ask", "", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("%s %s status = %d, want %d", tt.method, tt.path, w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := newTestRouter(t, rag_mocks.NewMockEngine(ctrl), ctrl)

	req := httptest.NewRequest(http.MethodOptions, "/api/ask", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}
