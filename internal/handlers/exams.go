package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shrimpsizemoose/plugg/internal/metrics"
	"github.com/shrimpsizemoose/plugg/internal/models"
	"github.com/shrimpsizemoose/plugg/internal/schedule"
	"github.com/shrimpsizemoose/plugg/internal/store"
)

// stampCountdowns recomputes days_remaining on every read; it is never
// stored.
func stampCountdowns(exams []models.Exam) []models.Exam {
	now := time.Now()
	for i := range exams {
		target, err := time.ParseInLocation(schedule.DateLayout, exams[i].Date, now.Location())
		if err != nil {
			continue
		}
		exams[i].DaysRemaining = schedule.DaysUntilAt(target, now)
	}
	return exams
}

func (h *PlannerHandler) HandleListExams(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	q := r.URL.Query()

	var exams []models.Exam
	var err error
	switch {
	case q.Get("date") != "":
		exams, err = h.service.Store.ListExamsForDate(q.Get("date"))
	case q.Get("from") != "" && q.Get("to") != "":
		exams, err = h.service.Store.ListExamsForRange(q.Get("from"), q.Get("to"))
	default:
		exams, err = h.service.Store.ListExams()
	}
	if err != nil {
		storeError(w, err, "Failed to list exams")
		return
	}

	writeRows(w, stampCountdowns(exams))
}

// HandleUpcomingExams serves the pre-filtered view: exams dated today
// or later, by the server's local date.
func (h *PlannerHandler) HandleUpcomingExams(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	today := schedule.DateKey(time.Now())
	exams, err := h.service.Store.ListUpcomingExams(today)
	if err != nil {
		storeError(w, err, "Failed to list upcoming exams")
		return
	}

	writeRows(w, stampCountdowns(exams))
}

func (h *PlannerHandler) HandleCreateExam(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	var exam models.Exam
	if err := json.NewDecoder(r.Body).Decode(&exam); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := exam.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.Store.CreateExam(&exam); err != nil {
		storeError(w, err, "Failed to create exam")
		return
	}

	metrics.MutationsTotal.WithLabelValues("exam", "create").Inc()

	writeJSONStatus(w, http.StatusCreated, stampCountdowns([]models.Exam{exam})[0])
}

func (h *PlannerHandler) HandleUpdateExam(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var patch store.ExamPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	exam, err := h.service.Store.UpdateExam(id, patch)
	if err != nil {
		storeError(w, err, "Failed to update exam")
		return
	}

	metrics.MutationsTotal.WithLabelValues("exam", "update").Inc()

	writeJSON(w, stampCountdowns([]models.Exam{*exam})[0])
}

func (h *PlannerHandler) HandleDeleteExam(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Store.DeleteExam(id); err != nil {
		storeError(w, err, "Failed to delete exam")
		return
	}

	metrics.MutationsTotal.WithLabelValues("exam", "delete").Inc()

	writeJSON(w, map[string]string{"message": "Exam deleted successfully"})
}
