package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/quillcraft/quillcraft/internal/api/response"
	"github.com/quillcraft/quillcraft/internal/logging"
)

// Recoverer turns a handler panic into a 500 SERVER_ERROR envelope.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logging.Printf(r.Context(), "💥 [HTTP] panic serving %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
			response.Error(w, http.StatusInternalServerError, "Internal server error", response.CodeServer)
		}()
		next.ServeHTTP(w, r)
	})
}
