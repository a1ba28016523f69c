package paraphrase

import (
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/quillcraft/quillcraft/internal/prompt"
)

// Quality gate rejections. All of them surface as PARAPHRASE_QUALITY_ERROR.
var (
	ErrIdenticalOutput   = errors.New("paraphrased text is identical to the original")
	ErrTruncatedOutput   = errors.New("paraphrased text is too short and appears truncated")
	ErrExpansionTooShort = errors.New("expanded text must not be shorter than the original")
	ErrShortenTooLong    = errors.New("shortened text must not be longer than the original")
	ErrResidualPrefix    = errors.New("paraphrased text still contains an introductory phrase")
)

// minLengthRatio is the share of the input length below which output is
// treated as truncated.
const minLengthRatio = 0.3

var residualLeadIns = []string{
	"here is the",
	"here's the",
	"the rewritten",
	"the paraphrased",
	"below is",
}

type qualityCheck struct {
	failed func(original, paraphrased string, mode prompt.Mode) bool
	err    error
}

// qualityChecks run in order; the first failure wins.
var qualityChecks = []qualityCheck{
	{
		failed: func(original, paraphrased string, _ prompt.Mode) bool {
			fold := cases.Fold()
			return fold.String(original) == fold.String(paraphrased)
		},
		err: ErrIdenticalOutput,
	},
	{
		failed: func(original, paraphrased string, _ prompt.Mode) bool {
			return float64(charCount(paraphrased)) < float64(charCount(original))*minLengthRatio
		},
		err: ErrTruncatedOutput,
	},
	{
		failed: func(original, paraphrased string, mode prompt.Mode) bool {
			return mode == prompt.ModeExpand && charCount(paraphrased) < charCount(original)
		},
		err: ErrExpansionTooShort,
	},
	{
		failed: func(original, paraphrased string, mode prompt.Mode) bool {
			return mode == prompt.ModeShorten && charCount(paraphrased) > charCount(original)
		},
		err: ErrShortenTooLong,
	},
	{
		failed: func(_, paraphrased string, _ prompt.Mode) bool {
			lower := strings.ToLower(paraphrased)
			for _, leadIn := range residualLeadIns {
				if strings.HasPrefix(lower, leadIn) {
					return true
				}
			}
			return false
		},
		err: ErrResidualPrefix,
	},
}

// Validate checks normalized output against the original. Lengths are
// character counts, not tokens or words.
func Validate(original, paraphrased string, mode prompt.Mode) error {
	for _, check := range qualityChecks {
		if check.failed(original, paraphrased, mode) {
			return check.err
		}
	}
	return nil
}

// IsQualityError reports whether err is one of the quality gate rejections.
func IsQualityError(err error) bool {
	for _, check := range qualityChecks {
		if errors.Is(err, check.err) {
			return true
		}
	}
	return false
}

func charCount(s string) int {
	return utf8.RuneCountInString(s)
}
