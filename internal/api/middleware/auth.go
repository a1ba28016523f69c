package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/quillcraft/quillcraft/internal/api/response"
)

// APIKeyAuth validates the API key from the Authorization or x-api-key
// header. An empty expectedKey disables the check.
func APIKeyAuth(expectedKey string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if expectedKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok && keysEqual(token, expectedKey) {
				next.ServeHTTP(w, r)
				return
			}

			if keysEqual(r.Header.Get("x-api-key"), expectedKey) {
				next.ServeHTTP(w, r)
				return
			}

			response.Error(w, http.StatusUnauthorized, "Invalid API key", response.CodeUnauthorized)
		})
	}
}

func keysEqual(got, want string) bool {
	return got != "" && subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
