package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/quillcraft/quillcraft/internal/logging"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// GetOrGenerateRequestID retrieves X-Request-ID from header or generates a new one.
// Format: "web-{uuid}" if generated.
func GetOrGenerateRequestID(r *http.Request) string {
	if requestID := r.Header.Get(RequestIDHeader); requestID != "" {
		return requestID
	}
	return "web-" + uuid.New().String()
}

// RequestID stores the request ID in the request context and echoes it in
// the response headers.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := GetOrGenerateRequestID(r)
		w.Header().Set(RequestIDHeader, requestID)
		next.ServeHTTP(w, r.WithContext(logging.WithRequestID(r.Context(), requestID)))
	})
}
