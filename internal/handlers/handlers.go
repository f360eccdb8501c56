// Package handlers exposes the planner store as a JSON API. List
// responses are wrapped in {"rows": ...}; single records are returned
// bare. Mutations return the full post-mutation record.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/plugg/internal/app"
	"github.com/shrimpsizemoose/plugg/internal/store"
)

type PlannerHandler struct {
	service *app.Service
}

func NewPlannerHandler(service *app.Service) *PlannerHandler {
	return &PlannerHandler{
		service: service,
	}
}

func (h *PlannerHandler) authorize(w http.ResponseWriter, r *http.Request) bool {
	if err := h.service.Authorize(r); err != nil {
		logger.Error.Printf("Auth failed: %v", err)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	writeJSONStatus(w, http.StatusOK, payload)
}

func writeJSONStatus(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error.Printf("Failed to encode response: %v", err)
	}
}

func writeRows(w http.ResponseWriter, rows interface{}) {
	writeJSON(w, map[string]interface{}{"rows": rows})
}

// storeError maps gateway failures onto status codes: missing records
// are 404, everything else is a 500 the client may retry.
func storeError(w http.ResponseWriter, err error, msg string) {
	logger.Error.Printf("%s: %v", msg, err)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	http.Error(w, msg, http.StatusInternalServerError)
}
