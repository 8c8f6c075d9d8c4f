package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/unity-hands/server/internal/api/problem"
	"github.com/unity-hands/server/internal/auth"
)

type AuthHandler struct {
	Tokens *auth.TokenManager
	Env    string
}

func NewAuthHandler(tokens *auth.TokenManager, env string) *AuthHandler {
	return &AuthHandler{Tokens: tokens, Env: env}
}

type tokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// IssueToken handles POST /jwt: it signs a session token for the submitted
// email and stores it as the HTTP-only session cookie.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	if h.Tokens == nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", nil, h.Env)
		return
	}

	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidationError, "Invalid request", err, h.Env)
		return
	}
	if err := validate.Struct(req); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidationError, "Invalid request", err, h.Env)
		return
	}

	token, err := h.Tokens.Issue(req.Email)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}

	auth.SetSessionCookie(w, token, h.Tokens.Expiry(), h.Env)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Logout handles POST /logout: it clears the session cookie using the same
// scoping attributes that were used at issuance.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, h.Env)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
