// Package response writes the {success, data|error} JSON envelope shared by
// every endpoint.
package response

import (
	"encoding/json"
	"log"
	"net/http"
)

// Error codes used outside the paraphrase pipeline.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeServer       = "SERVER_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeRateLimited  = "RATE_LIMIT_EXCEEDED"
	CodeHealthCheck  = "HEALTH_CHECK_ERROR"
	CodeHistory      = "HISTORY_ERROR"
	CodeTooLarge     = "PAYLOAD_TOO_LARGE"
)

// FieldError describes one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorBody is the error member of a failure envelope.
type ErrorBody struct {
	Message string       `json:"message"`
	Code    string       `json:"code"`
	Details []FieldError `json:"details,omitempty"`
}

type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// JSON writes v as the response body with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[HTTP] failed to encode response: %v", err)
	}
}

// Data writes a success envelope around data.
func Data(w http.ResponseWriter, status int, data any) {
	JSON(w, status, envelope{Success: true, Data: data})
}

// Error writes a failure envelope.
func Error(w http.ResponseWriter, status int, message, code string) {
	JSON(w, status, envelope{Error: &ErrorBody{Message: message, Code: code}})
}

// ValidationError writes a 400 VALIDATION_ERROR envelope with field details.
func ValidationError(w http.ResponseWriter, details []FieldError) {
	JSON(w, http.StatusBadRequest, envelope{Error: &ErrorBody{
		Message: "Validation failed",
		Code:    CodeValidation,
		Details: details,
	}})
}
