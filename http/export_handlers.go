package http

import (
	"net/http"
	"time"

	"attriscope/hr"
	"attriscope/report"
	"attriscope/risk"
)

func RegisterExportHandlers(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/export/report", handleExportText)
	mux.HandleFunc("POST /api/export/csv", handleExportCSV)
	mux.HandleFunc("POST /api/export/json", handleExportJSON)
}

// buildResult reruns the pipeline for the submitted profile so every export
// format renders from the same inputs and result.
func buildResult(w http.ResponseWriter, r *http.Request) (profileResult, bool) {
	var out profileResult

	if engine == nil {
		http.Error(w, `{"error":"model not loaded"}`, http.StatusServiceUnavailable)
		return out, false
	}

	profile, ok := decodeProfile(w, r)
	if !ok {
		return out, false
	}

	prediction, err := engine.Evaluate(profile)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return out, false
	}

	level := risk.Bucket(prediction.Probability)
	out.profile = profile
	out.result = report.Result{
		Label:       prediction.Label,
		Probability: prediction.Probability,
		RiskLevel:   level,
		Insights:    risk.Insights(profile),
		Actions:     risk.Actions(level),
		GeneratedAt: time.Now().UTC(),
	}
	return out, true
}

type profileResult struct {
	profile hr.Profile
	result  report.Result
}

func handleExportText(w http.ResponseWriter, r *http.Request) {
	input, ok := buildResult(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="attrition_report.txt"`)
	w.Write([]byte(report.Text(input.profile, input.result)))
}

func handleExportCSV(w http.ResponseWriter, r *http.Request) {
	input, ok := buildResult(w, r)
	if !ok {
		return
	}

	out, err := report.CSV(input.profile, input.result)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="attrition_prediction.csv"`)
	w.Write([]byte(out))
}

func handleExportJSON(w http.ResponseWriter, r *http.Request) {
	input, ok := buildResult(w, r)
	if !ok {
		return
	}

	payload, err := report.JSON(input.profile, input.result)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="attrition_prediction.json"`)
	w.Write(payload)
}
