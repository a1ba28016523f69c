// Package handlers implements the QuillCraft HTTP endpoints.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/quillcraft/quillcraft/internal/api/response"
	"github.com/quillcraft/quillcraft/internal/db/models"
	"github.com/quillcraft/quillcraft/internal/logging"
	"github.com/quillcraft/quillcraft/internal/monitor"
	"github.com/quillcraft/quillcraft/internal/paraphrase"
	"github.com/quillcraft/quillcraft/internal/prompt"
	"github.com/quillcraft/quillcraft/internal/providers/catalog"
)

// MaxBodyBytes caps request bodies.
const MaxBodyBytes = 10 << 20

// paraphraseBody is the wire shape of POST /api/paraphrase. Optional fields
// are pointers so that absence can be told apart from zero values.
type paraphraseBody struct {
	Text            *string  `json:"text"`
	Mode            *string  `json:"mode"`
	Language        *string  `json:"language"`
	SynonymStrength *float64 `json:"synonymStrength"`
	Model           *string  `json:"model"`
}

// ParaphraseHandler handles POST /api/paraphrase.
func ParaphraseHandler(svc *paraphrase.Service, mon *monitor.Monitor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := r.Context()
		entry := models.ParaphraseLog{RequestID: logging.GetRequestID(ctx)}
		defer func() {
			if mon != nil {
				entry.Duration = time.Since(start).Milliseconds()
				mon.LogRequest(entry)
			}
		}()

		var body paraphraseBody
		r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			status, details := decodeFailure(err)
			entry.Status, entry.ErrorCode, entry.Error = status, response.CodeValidation, err.Error()
			if status == http.StatusRequestEntityTooLarge {
				entry.ErrorCode = response.CodeTooLarge
				response.Error(w, status, "Request body too large", response.CodeTooLarge)
				return
			}
			response.ValidationError(w, details)
			return
		}

		req, details := body.toRequest()
		entry.Mode, entry.Tier, entry.Language = string(req.Mode), req.Model, req.Language
		entry.SynonymStrength, entry.InputChars = req.SynonymStrength, utf8.RuneCountInString(req.Text)
		if len(details) > 0 {
			entry.Status, entry.ErrorCode = http.StatusBadRequest, response.CodeValidation
			entry.Error = details[0].Field + ": " + details[0].Message
			response.ValidationError(w, details)
			return
		}

		req.Accepted = start
		res := svc.Paraphrase(ctx, req)
		entry.Success, entry.Provider, entry.Temperature = res.Success, string(res.Provider), res.Temperature
		if !res.Success {
			entry.Status, entry.ErrorCode, entry.Error = http.StatusBadRequest, res.Error.Code, res.Error.Message
			response.JSON(w, http.StatusBadRequest, res)
			return
		}

		entry.Status, entry.OutputChars = http.StatusOK, utf8.RuneCountInString(res.Data.ParaphrasedText)
		response.JSON(w, http.StatusOK, res)
	}
}

// toRequest applies defaults and checks the request shape. It reports every
// offending field rather than stopping at the first.
func (b paraphraseBody) toRequest() (paraphrase.Request, []response.FieldError) {
	req := paraphrase.Request{
		Language:        prompt.DefaultLanguage,
		SynonymStrength: paraphrase.DefaultSynonymStrength,
		Model:           string(catalog.DefaultTier),
	}
	var details []response.FieldError
	fail := func(field, format string, args ...any) {
		details = append(details, response.FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	switch {
	case b.Text == nil:
		fail("text", "Required")
	case *b.Text == "":
		fail("text", "Text is required")
	case utf8.RuneCountInString(*b.Text) > paraphrase.MaxTextLength:
		fail("text", "Text too long")
	default:
		req.Text = *b.Text
	}

	switch {
	case b.Mode == nil:
		fail("mode", "Required")
	case !prompt.IsValidMode(*b.Mode):
		fail("mode", "Invalid enum value. Expected %s, received '%s'", modeList(), *b.Mode)
	default:
		req.Mode = prompt.Mode(*b.Mode)
	}

	if b.Language != nil {
		req.Language = *b.Language
	}

	if b.SynonymStrength != nil {
		v := *b.SynonymStrength
		switch {
		case v != math.Trunc(v):
			fail("synonymStrength", "Expected integer, received float")
		case v < 0 || v > 100:
			fail("synonymStrength", "Number must be between 0 and 100")
		default:
			req.SynonymStrength = int(v)
		}
	}

	if b.Model != nil {
		if catalog.IsKnownTier(*b.Model) {
			req.Model = *b.Model
		} else {
			fail("model", "Invalid enum value. Expected %s, received '%s'", tierList(), *b.Model)
		}
	}

	return req, details
}

func decodeFailure(err error) (int, []response.FieldError) {
	var maxBytes *http.MaxBytesError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge, nil
	case errors.As(err, &typeErr):
		return http.StatusBadRequest, []response.FieldError{{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("Expected %s, received %s", typeErr.Type.Kind(), typeErr.Value),
		}}
	case errors.Is(err, io.EOF):
		return http.StatusBadRequest, []response.FieldError{{Field: "body", Message: "Request body is empty"}}
	default:
		return http.StatusBadRequest, []response.FieldError{{Field: "body", Message: "Malformed JSON"}}
	}
}

func modeList() string {
	modes := prompt.Modes()
	quoted := make([]string, len(modes))
	for i, m := range modes {
		quoted[i] = "'" + string(m.ID) + "'"
	}
	return strings.Join(quoted, " | ")
}

func tierList() string {
	tiers := catalog.Tiers()
	quoted := make([]string, len(tiers))
	for i, t := range tiers {
		quoted[i] = "'" + string(t) + "'"
	}
	return strings.Join(quoted, " | ")
}
