package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"resumeforge/internal/ats"
	"resumeforge/internal/config"
	"resumeforge/internal/errors"
	"resumeforge/internal/extract"
	"resumeforge/internal/history"
	"resumeforge/internal/observability"
	"resumeforge/internal/types"

	"github.com/go-playground/validator/v10"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return &Server{
		Host:    "localhost",
		Port:    "0",
		Version: "test",
		AppConfig: &config.Config{
			History: config.HistoryConfig{
				Enabled:      true,
				DefaultLimit: 20,
				MaxLimit:     100,
			},
		},
		APIKeys:        map[string]bool{},
		MaxRequestSize: 1024 * 1024,
		Scorer:         ats.New(),
		Extractor:      extract.New(logger),
		Validator:      validator.New(),
		Logger:         logger,
	}
}

func TestNewServerWiresCollaborators(t *testing.T) {
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	s := NewServer(&config.Config{}, ServerConfig{Host: "localhost", Port: "8080"}, logger)

	if s.Scorer == nil {
		t.Error("NewServer left Scorer nil")
	}
	if s.Extractor == nil {
		t.Error("NewServer left Extractor nil")
	}
	if s.Validator == nil {
		t.Error("NewServer left Validator nil")
	}
}

func newDisabledObservability(t *testing.T) *observability.ObservabilityManager {
	t.Helper()
	om, err := observability.NewObservabilityManager(observability.ObservabilityConfig{Enabled: false}, nil)
	if err != nil {
		t.Fatalf("failed to create observability manager: %v", err)
	}
	return om
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestScoreHandlerReturnsScoreResult(t *testing.T) {
	s := newTestServer(t)
	s.History = history.NewMemoryStore()
	om := newDisabledObservability(t)
	handler := s.createScoreHandler(om)

	resume := types.EmptyProfile()
	resume.Contact.FullName = "Ada Lovelace"
	resume.Skills = map[string][]string{"languages": {"Go", "Python"}}
	resume.Experience = []types.Experience{{
		Company:   "Analytical Engines",
		Position:  "Software Engineer",
		StartDate: "2018-01",
		EndDate:   "Present",
	}}

	rec := postJSON(t, handler, "/api/v1/score", types.ScoreRequest{
		Resume:         resume,
		JobDescription: "Looking for a software engineer with Go and Python experience.",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var result types.ScoreResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.ATSScore < 0 || result.ATSScore > 100 {
		t.Errorf("ATSScore = %d, want value in [0,100]", result.ATSScore)
	}
	if result.ATSScore == 0 {
		t.Error("expected a non-zero score for an overlapping resume")
	}

	// The scoring run must be recorded in history
	entries, err := s.History.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("history holds %d entries, want 1", len(entries))
	}
	if entries[0].CandidateName != "Ada Lovelace" {
		t.Errorf("history candidate = %q, want %q", entries[0].CandidateName, "Ada Lovelace")
	}
	if entries[0].ATSScore != result.ATSScore {
		t.Errorf("history score = %d, want %d", entries[0].ATSScore, result.ATSScore)
	}
}

func TestScoreHandlerMissingJobDescription(t *testing.T) {
	s := newTestServer(t)
	om := newDisabledObservability(t)
	handler := s.createScoreHandler(om)

	rec := postJSON(t, handler, "/api/v1/score", types.ScoreRequest{
		Resume: types.EmptyProfile(),
	})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestScoreHandlerRejectsWrongContentType(t *testing.T) {
	s := newTestServer(t)
	om := newDisabledObservability(t)
	handler := s.createScoreHandler(om)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/score", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRenderHandlerReturnsHTML(t *testing.T) {
	s := newTestServer(t)
	om := newDisabledObservability(t)
	handler := s.createRenderHandler(om)

	resume := types.EmptyProfile()
	resume.Contact.FullName = "Grace Hopper"
	resume.Summary = "Compiler pioneer"

	rec := postJSON(t, handler, "/api/v1/render", types.RenderRequest{Resume: resume})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q, want text/html", got)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("Grace Hopper")) {
		t.Error("rendered document must contain the candidate name")
	}
}

func TestHistoryHandlerDisabled(t *testing.T) {
	s := newTestServer(t)
	om := newDisabledObservability(t)
	handler := s.createHistoryHandler(om)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 when history is disabled", rec.Code)
	}
}

func TestHistoryHandlerReturnsRecentEntries(t *testing.T) {
	s := newTestServer(t)
	s.History = history.NewMemoryStore()
	om := newDisabledObservability(t)

	for i := 0; i < 5; i++ {
		entry := &history.Entry{CandidateName: "candidate", ATSScore: 50 + i}
		if err := s.History.Save(context.Background(), entry); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	handler := s.createHistoryHandler(om)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/history?limit=3", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var response struct {
		Entries []history.Entry `json:"entries"`
		Count   int             `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Count != 3 {
		t.Errorf("count = %d, want 3", response.Count)
	}
	if len(response.Entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(response.Entries))
	}
	if response.Entries[0].ATSScore != 54 {
		t.Errorf("newest entry score = %d, want 54", response.Entries[0].ATSScore)
	}
}

func TestHistoryHandlerInvalidLimit(t *testing.T) {
	s := newTestServer(t)
	s.History = history.NewMemoryStore()
	om := newDisabledObservability(t)

	handler := s.createHistoryHandler(om)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/history?limit=abc", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for invalid limit", rec.Code)
	}
}

func TestAuthMiddleware(t *testing.T) {
	s := newTestServer(t)
	next := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}

	t.Run("no keys configured allows access", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.authMiddleware(next)(rec, httptest.NewRequest(http.MethodGet, "/api/v1/history", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	s.APIKeys = map[string]bool{"valid-key-12345": true}

	t.Run("missing key rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.authMiddleware(next)(rec, httptest.NewRequest(http.MethodGet, "/api/v1/history", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("invalid key rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/history", nil)
		req.Header.Set("X-API-Key", "wrong-key")
		rec := httptest.NewRecorder()
		s.authMiddleware(next)(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("valid header key accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/history", nil)
		req.Header.Set("X-API-Key", "valid-key-12345")
		rec := httptest.NewRecorder()
		s.authMiddleware(next)(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("bearer token accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/history", nil)
		req.Header.Set("Authorization", "Bearer valid-key-12345")
		rec := httptest.NewRecorder()
		s.authMiddleware(next)(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"short key fully masked", "short", "****"},
		{"long key shows prefix", "abcdefgh12345678", "abcdefgh****"},
		{"empty key", "", "****"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := maskAPIKey(tt.input); got != tt.expected {
				t.Errorf("maskAPIKey(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
