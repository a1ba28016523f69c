// Package logging carries the request ID through contexts so that log lines
// from the handler, the orchestrator and the upstream call can be correlated.
package logging

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
)

type contextKey string

const requestIDKey contextKey = "requestId"

// GenerateRequestID creates an 8-character hex request ID.
func GenerateRequestID() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
// Returns empty string if not found.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// Printf logs with a "[rid]" prefix when ctx carries a request ID.
func Printf(ctx context.Context, format string, args ...any) {
	if id := GetRequestID(ctx); id != "" {
		log.Printf("[%s] %s", id, fmt.Sprintf(format, args...))
		return
	}
	log.Printf(format, args...)
}
