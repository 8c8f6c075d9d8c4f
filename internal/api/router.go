package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/unity-hands/server/internal/api/handlers"
	"github.com/unity-hands/server/internal/api/middleware"
	"github.com/unity-hands/server/internal/auth"
	"github.com/unity-hands/server/internal/config"
	"github.com/unity-hands/server/internal/domain/applications"
	"github.com/unity-hands/server/internal/domain/events"
	"github.com/unity-hands/server/internal/metrics"
)

// Deps carries everything the router wires together. The caller owns the
// lifecycles; the router only routes.
type Deps struct {
	Config       config.Config
	Logger       zerolog.Logger
	Tokens       *auth.TokenManager
	Events       *events.Service
	Applications *applications.Service
	DB           handlers.Pinger
	Version      string
}

func NewRouter(deps Deps) http.Handler {
	env := deps.Config.Environment

	authHandler := handlers.NewAuthHandler(deps.Tokens, env)
	eventsHandler := handlers.NewEventsHandler(deps.Events, env)
	applicationsHandler := handlers.NewApplicationsHandler(deps.Applications, env)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Version, env)

	requireAuth := middleware.RequireAuth(deps.Tokens, env)
	matchSubject := middleware.RequireMatchingSubject(deps.Tokens, env)

	mux := http.NewServeMux()
	mux.Handle("/{$}", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(healthHandler.Root),
	}))
	mux.Handle("/healthz", http.HandlerFunc(healthHandler.Healthz))
	mux.Handle("/readyz", http.HandlerFunc(healthHandler.Readyz))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	mux.Handle("/jwt", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(authHandler.IssueToken),
	}))
	mux.Handle("/logout", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(authHandler.Logout),
	}))

	mux.Handle("/events", methodMux(map[string]http.Handler{
		http.MethodGet:  matchSubject(http.HandlerFunc(eventsHandler.List)),
		http.MethodPost: requireAuth(http.HandlerFunc(eventsHandler.Create)),
	}))
	mux.Handle("/events/{id}", methodMux(map[string]http.Handler{
		http.MethodGet:    http.HandlerFunc(eventsHandler.Get),
		http.MethodPatch:  requireAuth(http.HandlerFunc(eventsHandler.Update)),
		http.MethodDelete: requireAuth(http.HandlerFunc(eventsHandler.Delete)),
	}))

	mux.Handle("/application", methodMux(map[string]http.Handler{
		http.MethodGet:  requireAuth(http.HandlerFunc(applicationsHandler.ListForApplicant)),
		http.MethodPost: requireAuth(http.HandlerFunc(applicationsHandler.Create)),
	}))
	mux.Handle("/application/{id}", methodMux(map[string]http.Handler{
		http.MethodGet:    requireAuth(http.HandlerFunc(applicationsHandler.ListForEvent)),
		http.MethodDelete: requireAuth(http.HandlerFunc(applicationsHandler.Withdraw)),
	}))
	mux.Handle("/participant/{id}", methodMux(map[string]http.Handler{
		http.MethodDelete: requireAuth(http.HandlerFunc(applicationsHandler.DeleteByID)),
	}))

	var handler http.Handler = mux
	handler = middleware.RequestSizeLimit(handler)
	handler = middleware.SecurityHeaders(env == "production")(handler)
	handler = middleware.CORS(deps.Config.CORS, deps.Logger)(handler)
	handler = metrics.HTTPMiddleware(handler)
	handler = middleware.RequestLogging(deps.Logger)(handler)
	handler = middleware.CorrelationID(deps.Logger)(handler)
	return handler
}

func methodMux(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allowedMethods(handlers))
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func allowedMethods(handlers map[string]http.Handler) string {
	methods := make([]string, 0, len(handlers))
	for method := range handlers {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
