package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"attriscope/store"
)

func RegisterHistoryHandlers(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/history", handleHistory)
	mux.HandleFunc("GET /api/history/distribution", handleHistoryDistribution)
	mux.HandleFunc("GET /api/history/stats", handleHistoryStats)
	mux.HandleFunc("GET /api/history/{id}", handleHistoryRecord)
	mux.HandleFunc("POST /api/history/{id}/notes", handleAddNote)
	mux.HandleFunc("GET /api/history/{id}/notes", handleListNotes)
}

func handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	records, err := store.QueryRecent(limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, map[string]interface{}{
		"records": records,
		"count":   len(records),
	})
}

func handleHistoryDistribution(w http.ResponseWriter, r *http.Request) {
	distribution, err := store.RiskDistribution()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	total, err := store.CountPredictions()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, map[string]interface{}{
		"distribution": distribution,
		"total":        total,
	})
}

func handleHistoryStats(w http.ResponseWriter, r *http.Request) {
	if serviceStats == nil {
		http.Error(w, `{"error":"stats unavailable"}`, http.StatusServiceUnavailable)
		return
	}
	respondJSON(w, serviceStats.Snapshot())
}

func handleHistoryRecord(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	record, err := store.GetPrediction(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "prediction not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, record)
}

func handleAddNote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var body struct {
		Body   string `json:"body"`
		Author string `json:"author"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Body == "" {
		respondError(w, http.StatusBadRequest, "note body is required")
		return
	}

	note, err := store.SaveNote(id, body.Body, body.Author)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "prediction not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(note)
}

func handleListNotes(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	notes, err := store.QueryNotes(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, map[string]interface{}{
		"prediction_id": id,
		"notes":         notes,
		"count":         len(notes),
	})
}
