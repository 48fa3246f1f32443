package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHandleHealth(t *testing.T) {
	mux := setupHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var payload map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if payload["status"] != "ok" {
		t.Fatalf("expected ok status, got %s", payload["status"])
	}
}

func TestHandleHealthDegradedWithoutModel(t *testing.T) {
	mux := http.NewServeMux()
	RegisterHandlers(mux)
	SetEngine(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	var payload map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if payload["status"] != "degraded" {
		t.Fatalf("expected degraded status, got %s", payload["status"])
	}
}

func TestHandleModelInfo(t *testing.T) {
	mux := setupHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/model/info", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var payload struct {
		ModelType    string   `json:"model_type"`
		FeatureNames []string `json:"feature_names"`
		FeatureCount int      `json:"feature_count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if payload.ModelType != "logistic" {
		t.Fatalf("unexpected model type: %s", payload.ModelType)
	}
	if payload.FeatureCount != len(payload.FeatureNames) || payload.FeatureCount == 0 {
		t.Fatalf("unexpected feature names: %+v", payload)
	}
}

func TestDashboardPage(t *testing.T) {
	mux := http.NewServeMux()
	RegisterPageHandlers(mux)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type: %s", ct)
	}
}
