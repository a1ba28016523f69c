package paraphrase

import (
	"errors"

	"github.com/quillcraft/quillcraft/internal/providers/catalog"
)

// Error codes carried in the failure envelope.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeQuality    = "PARAPHRASE_QUALITY_ERROR"
	CodeParaphrase = "PARAPHRASE_ERROR"
	CodeServer     = "SERVER_ERROR"
)

// Outcome is the terminal state of one pipeline run.
type Outcome string

const (
	OutcomeSuccess           Outcome = "success"
	OutcomeValidationFailure Outcome = "validation_failure"
	OutcomeUpstreamFailure   Outcome = "upstream_failure"
)

// ValidationError is a rejected request shape.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// classify maps a pipeline error onto its outcome and external code.
func classify(err error) (Outcome, string) {
	var validationErr *ValidationError
	var unsupported *catalog.UnsupportedModelError

	switch {
	case errors.As(err, &validationErr), errors.As(err, &unsupported):
		return OutcomeValidationFailure, CodeValidation
	case IsQualityError(err):
		return OutcomeValidationFailure, CodeQuality
	default:
		// *upstream.Error and anything unanticipated.
		return OutcomeUpstreamFailure, CodeParaphrase
	}
}
