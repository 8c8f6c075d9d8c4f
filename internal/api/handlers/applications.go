package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/unity-hands/server/internal/api/middleware"
	"github.com/unity-hands/server/internal/api/problem"
	"github.com/unity-hands/server/internal/domain/applications"
	"github.com/unity-hands/server/internal/domain/events"
)

type ApplicationsHandler struct {
	Service *applications.Service
	Env     string
}

func NewApplicationsHandler(service *applications.Service, env string) *ApplicationsHandler {
	return &ApplicationsHandler{Service: service, Env: env}
}

// ListForApplicant handles GET /application. It resolves the applicant's
// applications to the full event documents, in the order the applications
// were made. When the `user` query is absent the authenticated subject is
// used.
func (h *ApplicationsHandler) ListForApplicant(w http.ResponseWriter, r *http.Request) {
	applicant := strings.TrimSpace(r.URL.Query().Get("user"))
	if applicant == "" {
		applicant = middleware.Subject(r)
	}
	if applicant == "" {
		problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Authentication required", problem.ErrUnauthorized, h.Env)
		return
	}

	list, err := h.Service.ListForApplicant(r.Context(), applicant)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if list == nil {
		list = []events.Event{}
	}
	writeJSON(w, http.StatusOK, list)
}

// ListForEvent handles GET /application/{id}: all applications held against
// one event.
func (h *ApplicationsHandler) ListForEvent(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListForEvent(r.Context(), pathParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if list == nil {
		list = []applications.Application{}
	}
	writeJSON(w, http.StatusOK, list)
}

// Create handles POST /application. An applicant holds at most one
// application per event; a repeat submission fails rather than duplicating.
func (h *ApplicationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input applications.ApplicationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidationError, "Invalid request", err, h.Env)
		return
	}

	application, err := h.Service.Create(r.Context(), input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, application)
}

// Withdraw handles DELETE /application/{id}. The path id names the event;
// the application removed is the authenticated subject's own.
func (h *ApplicationsHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	subject := middleware.Subject(r)
	if subject == "" {
		problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Authentication required", problem.ErrUnauthorized, h.Env)
		return
	}

	if err := h.Service.Withdraw(r.Context(), pathParam(r, "id"), subject); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// DeleteByID handles DELETE /participant/{id}: removal of one application
// record by its own identity.
func (h *ApplicationsHandler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteByID(r.Context(), pathParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *ApplicationsHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr applications.ValidationError
	switch {
	case errors.Is(err, applications.ErrAlreadyApplied):
		problem.Write(w, r, http.StatusBadRequest, problem.TypeAlreadyApplied, "Already applied", err, h.Env,
			problem.WithDetail("You have already joined this event"))
	case errors.Is(err, applications.ErrInvalidID):
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidationError, "Invalid application id", err, h.Env)
	case errors.As(err, &verr):
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidationError, "Invalid request", err, h.Env,
			problem.WithDetail(verr.Error()))
	case errors.Is(err, applications.ErrNotFound):
		problem.Write(w, r, http.StatusNotFound, problem.TypeNotFound, "Application not found", err, h.Env)
	default:
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
	}
}
