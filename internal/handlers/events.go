package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shrimpsizemoose/plugg/internal/metrics"
	"github.com/shrimpsizemoose/plugg/internal/models"
	"github.com/shrimpsizemoose/plugg/internal/schedule"
	"github.com/shrimpsizemoose/plugg/internal/store"
)

// HandleListEvents serves the events collection. Query params narrow
// the window: ?date=YYYY-MM-DD for a single day, ?from=&to= for an
// inclusive range. Results are joined with subject name and color.
func (h *PlannerHandler) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	q := r.URL.Query()

	var events []models.RevisionEvent
	var err error
	switch {
	case q.Get("date") != "":
		events, err = h.service.Store.ListEventsForDate(q.Get("date"))
	case q.Get("from") != "" && q.Get("to") != "":
		events, err = h.service.Store.ListEventsForRange(q.Get("from"), q.Get("to"))
	default:
		events, err = h.service.Store.ListEvents()
	}
	if err != nil {
		storeError(w, err, "Failed to list events")
		return
	}

	writeRows(w, events)
}

func (h *PlannerHandler) HandleCreateEvent(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		duration := time.Since(start).Seconds()
		metrics.APIRequestDuration.WithLabelValues(
			r.URL.Path,
			r.Method,
			"200",
		).Observe(duration)
	}()

	if !h.authorize(w, r) {
		return
	}

	var event models.RevisionEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := event.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.Store.CreateEvent(&event); err != nil {
		storeError(w, err, "Failed to create event")
		return
	}

	metrics.MutationsTotal.WithLabelValues("event", "create").Inc()
	metrics.SessionMinutesHistogram.WithLabelValues(
		string(schedule.BucketFor(event.Time)),
	).Observe(float64(event.Duration))

	writeJSONStatus(w, http.StatusCreated, event)
}

func (h *PlannerHandler) HandleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var patch store.EventPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	event, err := h.service.Store.UpdateEvent(id, patch)
	if err != nil {
		storeError(w, err, "Failed to update event")
		return
	}

	metrics.MutationsTotal.WithLabelValues("event", "update").Inc()

	writeJSON(w, event)
}

// HandleToggleEvent flips the completion flag and returns the updated
// record, so a second toggle restores the original value.
func (h *PlannerHandler) HandleToggleEvent(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	event, err := h.service.Store.ToggleEventCompletion(id)
	if err != nil {
		storeError(w, err, fmt.Sprintf("Failed to toggle event %d", id))
		return
	}

	metrics.MutationsTotal.WithLabelValues("event", "toggle").Inc()

	writeJSON(w, event)
}

func (h *PlannerHandler) HandleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Store.DeleteEvent(id); err != nil {
		storeError(w, err, "Failed to delete event")
		return
	}

	metrics.MutationsTotal.WithLabelValues("event", "delete").Inc()

	writeJSON(w, map[string]string{"message": "Event deleted successfully"})
}
