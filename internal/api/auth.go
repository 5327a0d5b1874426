package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// BearerAuth guards the resume management routes with the local API
// token minted at first start.
func BearerAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) || subtle.ConstantTimeCompare([]byte(auth[len(prefix):]), []byte(token)) != 1 {
				httpError(w, http.StatusUnauthorized, "authentication_error", "invalid or missing bearer token for the resumeforge API")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
