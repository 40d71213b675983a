package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"docchat/internal/rag"
	"docchat/internal/rag/mocks"
	"docchat/internal/service"

	"go.uber.org/mock/gomock"
)

func TestAskHandler_ServeHTTP(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name        string
		body        string
		mockSetup   func(*mocks.MockEngine)
		wantStatus  int
		wantKind    string
		wantInText  string
		wantHistory int
	}{
		{
			name: "successful question",
			body: `{"question":"what is the revenue?"}`,
			mockSetup: func(m *mocks.MockEngine) {
				m.EXPECT().
					Answer(gomock.Any(), "what is the revenue?").
					Return(rag.Result{
						Kind:      rag.KindOK,
						Text:      "Revenue was 10M.\n\n**📚 Sources:** [report.pdf p.3]",
						Citations: []string{"[report.pdf p.3]"},
					})
			},
			wantStatus:  http.StatusOK,
			wantKind:    "ok",
			wantInText:  "Revenue was 10M.",
			wantHistory: 1,
		},
		{
			name: "validation failure from engine",
			body: `{"question":""}`,
			mockSetup: func(m *mocks.MockEngine) {
				m.EXPECT().
					Answer(gomock.Any(), "").
					Return(rag.Result{Kind: rag.KindValidation, Text: "❌ Please enter a valid question."})
			},
			wantStatus:  http.StatusBadRequest,
			wantKind:    "validation",
			wantInText:  "valid question",
			wantHistory: 0,
		},
		{
			name: "not indexed is a business outcome",
			body: `{"question":"anything"}`,
			mockSetup: func(m *mocks.MockEngine) {
				m.EXPECT().
					Answer(gomock.Any(), "anything").
					Return(rag.Result{Kind: rag.KindNotIndexed, Text: "❌ No documents indexed. Please upload and process some PDFs first."})
			},
			wantStatus:  http.StatusOK,
			wantKind:    "not_indexed",
			wantInText:  "No documents indexed",
			wantHistory: 0,
		},
		{
			name:        "invalid body",
			body:        `{not json`,
			mockSetup:   func(m *mocks.MockEngine) {},
			wantStatus:  http.StatusBadRequest,
			wantHistory: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockEngine := mocks.NewMockEngine(ctrl)
			tt.mockSetup(mockEngine)
			session := service.NewSession()
			handler := NewAskHandler(mockEngine, session)

			req := httptest.NewRequest(http.MethodPost, "/api/ask", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantKind != "" {
				var resp TaskResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("decode response: %v", err)
				}
				if resp.Kind != tt.wantKind {
					t.Errorf("kind = %q, want %q", resp.Kind, tt.wantKind)
				}
				if !strings.Contains(resp.Text, tt.wantInText) {
					t.Errorf("text = %q, want to contain %q", resp.Text, tt.wantInText)
				}
			}
			if session.Len() != tt.wantHistory {
				t.Errorf("session length = %d, want %d", session.Len(), tt.wantHistory)
			}
		})
	}
}

func TestAskHandler_HTMLFormat(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEngine := mocks.NewMockEngine(ctrl)
	mockEngine.EXPECT().
		Answer(gomock.Any(), "q").
		Return(rag.Result{Kind: rag.KindOK, Text: "**bold answer**"})

	handler := NewAskHandler(mockEngine, service.NewSession())
	req := httptest.NewRequest(http.MethodPost, "/api/ask?format=html", strings.NewReader(`{"question":"q"}`))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	var resp TaskResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(resp.HTML, "<strong>bold answer</strong>") {
		t.Errorf("HTML = %q, want rendered markdown", resp.HTML)
	}
	if resp.Text != "**bold answer**" {
		t.Errorf("Text = %q, raw markdown must be preserved", resp.Text)
	}
}
