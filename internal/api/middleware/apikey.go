// Package middleware provides HTTP middleware for request validation and processing.
package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/fundscope/fundscope-backend/internal/api/response"
)

// RequireAPIKey gates write and admin endpoints behind the X-API-Key header.
// An empty configured key disables the gate entirely, which is only intended
// for local development.
func RequireAPIKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			provided := r.Header.Get("X-API-Key")
			if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
				response.RespondError(w, http.StatusUnauthorized, "invalid or missing API key", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
