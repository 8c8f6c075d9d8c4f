package middleware

import "net/http"

// MaxBodyBytes caps request bodies; event and application documents are
// small, so anything larger is abuse.
const MaxBodyBytes = 1 << 20 // 1 MB

func RequestSizeLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
		}
		next.ServeHTTP(w, r)
	})
}
