package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/unity-hands/server/internal/api/problem"
	"github.com/unity-hands/server/internal/auth"
)

type contextKeyAuth string

const subjectKey contextKeyAuth = "subject"

// RequireAuth gates mutation endpoints: it extracts the session token from
// the request cookie, verifies it, and stores the subject email in the
// request context. On any failure the request is answered with 401 and the
// downstream handler never runs.
func RequireAuth(manager *auth.TokenManager, env string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if manager == nil {
				problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", problem.ErrUnauthorized, env)
				return
			}

			token, err := auth.TokenFromRequest(r)
			if err != nil {
				problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", err, env)
				return
			}

			subject, err := manager.Verify(token)
			if err != nil {
				problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", err, env)
				return
			}

			next.ServeHTTP(w, r.WithContext(contextWithSubject(r.Context(), subject)))
		})
	}
}

// RequireMatchingSubject guards identity-scoped listings. It only engages
// when the request carries a `user` query parameter: the token's subject must
// then equal it. Without the parameter the request passes through unchecked
// and the endpoint behaves as a public listing.
func RequireMatchingSubject(manager *auth.TokenManager, env string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := strings.TrimSpace(r.URL.Query().Get("user"))
			if user == "" {
				next.ServeHTTP(w, r)
				return
			}

			if manager == nil {
				problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", problem.ErrUnauthorized, env)
				return
			}

			token, err := auth.TokenFromRequest(r)
			if err != nil {
				problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", err, env)
				return
			}

			subject, err := manager.Verify(token)
			if err != nil {
				problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", err, env)
				return
			}
			if subject != user {
				problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", problem.ErrUnauthorized, env)
				return
			}

			next.ServeHTTP(w, r.WithContext(contextWithSubject(r.Context(), subject)))
		})
	}
}

func contextWithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey, subject)
}

// Subject returns the authenticated email for the request, or "" when the
// request passed no guard.
func Subject(r *http.Request) string {
	if r == nil {
		return ""
	}
	if subject, ok := r.Context().Value(subjectKey).(string); ok {
		return subject
	}
	return ""
}
