package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"attriscope/hr"
	"attriscope/ml"
	"attriscope/monitoring"
	"attriscope/risk"
	"attriscope/store"
)

var (
	engine       *ml.Engine
	dashboardHub *monitoring.Hub
	serviceStats *monitoring.ServiceStats
)

func SetEngine(e *ml.Engine) {
	engine = e
}

func SetDashboardHub(h *monitoring.Hub) {
	dashboardHub = h
}

func SetServiceStats(s *monitoring.ServiceStats) {
	serviceStats = s
}

func RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", handleHealth)
	mux.HandleFunc("GET /api/model/info", handleModelInfo)
	mux.HandleFunc("POST /api/predict", handlePredict)
	mux.HandleFunc("POST /api/predict/explain", handleExplain)
	mux.HandleFunc("GET /api/ws/dashboard", handleDashboardWS)
}

// PredictionResponse is the full payload the dashboard renders after one
// form submission.
type PredictionResponse struct {
	ID          string     `json:"id,omitempty"`
	Prediction  string     `json:"prediction"`
	Label       int        `json:"label"`
	Probability float64    `json:"probability"`
	RiskLevel   risk.Level `json:"risk_level"`
	RiskLabel   string     `json:"risk_label"`
	Insights    []string   `json:"insights"`
	Actions     []string   `json:"actions"`
	Timestamp   time.Time  `json:"timestamp"`
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}
	if engine == nil {
		status["status"] = "degraded"
		status["detail"] = "model not loaded"
	}
	respondJSON(w, status)
}

func handleModelInfo(w http.ResponseWriter, r *http.Request) {
	if engine == nil {
		http.Error(w, `{"error":"model not loaded"}`, http.StatusServiceUnavailable)
		return
	}

	artifacts := engine.Artifacts()
	respondJSON(w, map[string]interface{}{
		"model_type":    artifacts.ModelType,
		"feature_names": artifacts.FeatureNames,
		"feature_count": len(artifacts.FeatureNames),
		"loaded_at":     artifacts.LoadedAt,
	})
}

func decodeProfile(w http.ResponseWriter, r *http.Request) (hr.Profile, bool) {
	var profile hr.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return profile, false
	}
	if err := profile.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return profile, false
	}
	return profile, true
}

func handlePredict(w http.ResponseWriter, r *http.Request) {
	if engine == nil {
		http.Error(w, `{"error":"model not loaded"}`, http.StatusServiceUnavailable)
		return
	}

	profile, ok := decodeProfile(w, r)
	if !ok {
		return
	}

	start := time.Now()
	prediction, err := engine.Evaluate(profile)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	level := risk.Bucket(prediction.Probability)
	response := PredictionResponse{
		Prediction:  outcomeText(prediction.Label),
		Label:       prediction.Label,
		Probability: prediction.Probability,
		RiskLevel:   level,
		RiskLabel:   level.Label(),
		Insights:    risk.Insights(profile),
		Actions:     risk.Actions(level),
		Timestamp:   time.Now().UTC(),
	}

	// History is best effort: a storage failure should not fail the prediction.
	if id, err := store.SavePrediction(profile, prediction.Label, prediction.Probability, level); err != nil {
		log.Printf("Failed to save prediction: %v", err)
	} else {
		response.ID = id
	}

	if serviceStats != nil {
		serviceStats.RecordPrediction(level, time.Since(start))
	}
	if dashboardHub != nil {
		dashboardHub.Publish(monitoring.PredictionEvent, response)
	}

	respondJSON(w, response)
}

func handleExplain(w http.ResponseWriter, r *http.Request) {
	if engine == nil {
		http.Error(w, `{"error":"model not loaded"}`, http.StatusServiceUnavailable)
		return
	}

	profile, ok := decodeProfile(w, r)
	if !ok {
		return
	}

	contributions, err := engine.Explain(profile)
	if err != nil {
		// The one recoverable failure: the loaded model type cannot produce
		// a breakdown. Surface the detail instead of a bare 500.
		if errors.Is(err, ml.ErrNoImportances) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]string{
				"error":  "feature importances unavailable",
				"detail": err.Error(),
			})
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, map[string]interface{}{
		"contributions": contributions,
		"count":         len(contributions),
	})
}

func handleDashboardWS(w http.ResponseWriter, r *http.Request) {
	if dashboardHub == nil {
		http.Error(w, `{"error":"dashboard feed unavailable"}`, http.StatusServiceUnavailable)
		return
	}
	dashboardHub.HandleWebSocket(w, r)
}

func outcomeText(label int) string {
	if label == 1 {
		return "Attrition"
	}
	return "No Attrition"
}

func respondJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode JSON: %v", err)
	}
}

func respondError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
