package handlers

import (
	"context"
	"net/http"

	"github.com/unity-hands/server/internal/api/problem"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	DB      Pinger
	Version string
	Env     string
}

func NewHealthHandler(db Pinger, version, env string) *HealthHandler {
	return &HealthHandler{DB: db, Version: version, Env: env}
}

// Root handles GET /: a plain liveness greeting.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Unity Hands API is running"))
}

// Healthz reports process liveness.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": h.Version,
	})
}

// Readyz reports readiness to serve traffic, which requires a reachable
// database.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	if h.DB == nil {
		problem.Write(w, r, http.StatusServiceUnavailable, problem.TypeServerError, "Not ready", nil, h.Env)
		return
	}
	if err := h.DB.Ping(r.Context()); err != nil {
		problem.Write(w, r, http.StatusServiceUnavailable, problem.TypeServerError, "Not ready", err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ready"})
}
