package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/unity-hands/server/internal/api/problem"
	"github.com/unity-hands/server/internal/domain/events"
)

type EventsHandler struct {
	Service *events.Service
	Env     string
}

func NewEventsHandler(service *events.Service, env string) *EventsHandler {
	return &EventsHandler{Service: service, Env: env}
}

// List handles GET /events. The query may scope by owning account (`user`)
// and by a case-insensitive title search (`searchEvent`); results always come
// back sorted by event date.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := events.ParseFilters(r.URL.Query())
	list, err := h.Service.List(r.Context(), filters)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if list == nil {
		list = []events.Event{}
	}
	writeJSON(w, http.StatusOK, list)
}

// Get handles GET /events/{id}.
func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	event, err := h.Service.GetByID(r.Context(), pathParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// Create handles POST /events.
func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input events.EventInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidationError, "Invalid request", err, h.Env)
		return
	}

	event, err := h.Service.Create(r.Context(), input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

// Update handles PATCH /events/{id}. Missing ids fail with 404 unless the
// caller opts into creation with ?upsert=true.
func (h *EventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch events.EventPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidationError, "Invalid request", err, h.Env)
		return
	}

	upsert := r.URL.Query().Get("upsert") == "true"
	event, err := h.Service.Update(r.Context(), pathParam(r, "id"), patch, upsert)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// Delete handles DELETE /events/{id}. The event and every application
// referencing it go in one transaction; the response reports both counts.
func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.Delete(r.Context(), pathParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if result.EventsDeleted == 0 {
		problem.Write(w, r, http.StatusNotFound, problem.TypeNotFound, "Event not found", nil, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *EventsHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr events.ValidationError
	switch {
	case errors.Is(err, events.ErrInvalidID):
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidationError, "Invalid event id", err, h.Env)
	case errors.As(err, &verr):
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidationError, "Invalid request", err, h.Env,
			problem.WithDetail(verr.Error()))
	case errors.Is(err, events.ErrNotFound):
		problem.Write(w, r, http.StatusNotFound, problem.TypeNotFound, "Event not found", err, h.Env)
	default:
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
	}
}
