package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandlePredict(t *testing.T) {
	mux := setupHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/api/predict", jsonBody(t, riskyProfile()))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var response PredictionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if response.Prediction != "Attrition" || response.Label != 1 {
		t.Fatalf("expected attrition outcome, got %+v", response)
	}
	if response.Probability < 0 || response.Probability > 1 {
		t.Fatalf("probability out of range: %f", response.Probability)
	}
	if response.RiskLevel != "high" {
		t.Fatalf("expected high risk, got %s", response.RiskLevel)
	}
	if len(response.Insights) == 0 || len(response.Actions) == 0 {
		t.Fatal("expected insights and actions")
	}
	if response.ID == "" {
		t.Fatal("expected prediction to be persisted with an id")
	}
}

func TestHandlePredictStableProfile(t *testing.T) {
	mux := setupHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/api/predict", jsonBody(t, stableProfile()))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var response PredictionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if response.Prediction != "No Attrition" || response.Label != 0 {
		t.Fatalf("expected no-attrition outcome, got %+v", response)
	}
	if response.RiskLevel != "low" {
		t.Fatalf("expected low risk, got %s", response.RiskLevel)
	}
}

func TestHandlePredictValidation(t *testing.T) {
	mux := setupHandlers(t)

	profile := riskyProfile()
	profile.Age = 12
	req := httptest.NewRequest(http.MethodPost, "/api/predict", jsonBody(t, profile))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "age") {
		t.Fatalf("expected field error, got %s", w.Body.String())
	}
}

func TestHandlePredictMalformedBody(t *testing.T) {
	mux := setupHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHandlePredictNoModel(t *testing.T) {
	mux := http.NewServeMux()
	RegisterHandlers(mux)
	SetEngine(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/predict", jsonBody(t, riskyProfile()))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestHandleExplain(t *testing.T) {
	mux := setupHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/api/predict/explain", jsonBody(t, riskyProfile()))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var response struct {
		Contributions []struct {
			Feature string  `json:"feature"`
			Score   float64 `json:"score"`
		} `json:"contributions"`
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if response.Count == 0 || len(response.Contributions) != response.Count {
		t.Fatalf("unexpected contributions payload: %+v", response)
	}
}

type opaqueModel struct{}

func (opaqueModel) Train([][]float64, []int) error          { return nil }
func (opaqueModel) Predict([]float64) (int, float64, error) { return 0, 0.5, nil }
func (opaqueModel) Save(string) error                       { return nil }
func (opaqueModel) Load(string) error                       { return nil }

func TestHandleExplainWithoutWeights(t *testing.T) {
	mux := setupHandlers(t)

	artifacts := engine.Artifacts()
	artifacts.Model = opaqueModel{}
	artifacts.ModelType = "opaque"

	req := httptest.NewRequest(http.MethodPost, "/api/predict/explain", jsonBody(t, riskyProfile()))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "detail") {
		t.Fatalf("expected error detail, got %s", w.Body.String())
	}
}
