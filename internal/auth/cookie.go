package auth

import (
	"net/http"
	"time"
)

// SessionCookieName is the cookie that carries the session token.
const SessionCookieName = "token"

// sessionCookie builds the cookie with the scoping attributes for the given
// environment. Production runs cross-site behind HTTPS, so the cookie must be
// Secure with SameSite=None; everywhere else Lax and non-secure so local
// frontends work over plain HTTP. Clearing must reuse the exact same
// attributes or browsers silently keep the old cookie.
func sessionCookie(env string) *http.Cookie {
	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if env == "production" {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}

// SetSessionCookie stores the issued token as a browser-held credential.
func SetSessionCookie(w http.ResponseWriter, token string, expiry time.Duration, env string) {
	cookie := sessionCookie(env)
	cookie.Value = token
	cookie.Expires = time.Now().Add(expiry)
	http.SetCookie(w, cookie)
}

// ClearSessionCookie revokes the browser-held credential.
func ClearSessionCookie(w http.ResponseWriter, env string) {
	cookie := sessionCookie(env)
	cookie.MaxAge = -1
	http.SetCookie(w, cookie)
}

// TokenFromRequest extracts the session token from the request cookie.
func TokenFromRequest(r *http.Request) (string, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", ErrMissingToken
	}
	return cookie.Value, nil
}
