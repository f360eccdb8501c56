package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/shrimpsizemoose/plugg/internal/metrics"
	"github.com/shrimpsizemoose/plugg/internal/models"
	"github.com/shrimpsizemoose/plugg/internal/store"
)

func (h *PlannerHandler) HandleListSubjects(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	subjects, err := h.service.Store.ListSubjects()
	if err != nil {
		storeError(w, err, "Failed to list subjects")
		return
	}

	writeRows(w, subjects)
}

func (h *PlannerHandler) HandleCreateSubject(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	var subject models.Subject
	if err := json.NewDecoder(r.Body).Decode(&subject); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if subject.Color == "" {
		subject.Color = models.DefaultColor
	}

	if err := subject.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.Store.CreateSubject(&subject); err != nil {
		storeError(w, err, "Failed to create subject")
		return
	}

	metrics.MutationsTotal.WithLabelValues("subject", "create").Inc()

	writeJSONStatus(w, http.StatusCreated, subject)
}

func (h *PlannerHandler) HandleUpdateSubject(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var patch store.SubjectPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	subject, err := h.service.Store.UpdateSubject(id, patch)
	if err != nil {
		storeError(w, err, "Failed to update subject")
		return
	}

	metrics.MutationsTotal.WithLabelValues("subject", "update").Inc()

	writeJSON(w, subject)
}

func (h *PlannerHandler) HandleDeleteSubject(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Store.DeleteSubject(id); err != nil {
		storeError(w, err, "Failed to delete subject")
		return
	}

	metrics.MutationsTotal.WithLabelValues("subject", "delete").Inc()

	writeJSON(w, map[string]string{"message": "Subject deleted successfully"})
}
