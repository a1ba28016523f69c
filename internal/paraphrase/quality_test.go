package paraphrase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quillcraft/quillcraft/internal/prompt"
)

func TestValidate_IdenticalOutputForEveryMode(t *testing.T) {
	original := "The cat sat on the mat."
	for _, m := range prompt.Modes() {
		assert.ErrorIs(t, Validate(original, original, m.ID), ErrIdenticalOutput, "mode %s", m.ID)
	}
	assert.ErrorIs(t, Validate("Hello World", "hELLO wORLD", prompt.ModeStandard), ErrIdenticalOutput)
}

func TestValidate_TruncationRuleFiresBeforeExpandRule(t *testing.T) {
	err := Validate(strings.Repeat("A", 100), strings.Repeat("A", 20), prompt.ModeExpand)
	assert.ErrorIs(t, err, ErrTruncatedOutput)
}

func TestValidate_TruncationBoundary(t *testing.T) {
	original := strings.Repeat("a", 100)
	assert.ErrorIs(t, Validate(original, strings.Repeat("b", 29), prompt.ModeStandard), ErrTruncatedOutput)
	assert.NoError(t, Validate(original, strings.Repeat("b", 30), prompt.ModeStandard))
}

func TestValidate_ModeLengthRules(t *testing.T) {
	assert.ErrorIs(t, Validate("short", "much longer output text here", prompt.ModeShorten), ErrShortenTooLong)
	assert.NoError(t, Validate("a fairly long sentence", "a short sentence", prompt.ModeShorten))
	assert.NoError(t, Validate("abcde", "vwxyz", prompt.ModeShorten), "equal length is allowed when shortening")

	assert.ErrorIs(t, Validate("a fairly long sentence", "a short sentence", prompt.ModeExpand), ErrExpansionTooShort)
	assert.NoError(t, Validate("abcde", "vwxyz", prompt.ModeExpand), "equal length is allowed when expanding")
	assert.NoError(t, Validate("short", "much longer output text here", prompt.ModeExpand))
}

func TestValidate_ResidualPrefix(t *testing.T) {
	original := "The quick brown fox jumps over the lazy dog."
	for _, out := range []string{
		"Here is the fox that leapt over a sleepy hound.",
		"HERE'S THE fox, leaping over the drowsy dog.",
		"The rewritten sentence: a fox leapt over a dog.",
		"The paraphrased line has a fox leaping a dog.",
		"Below is a fox that vaulted over a tired dog.",
	} {
		assert.ErrorIs(t, Validate(original, out, prompt.ModeStandard), ErrResidualPrefix, "output %q", out)
	}
	assert.NoError(t, Validate(original, "A swift auburn fox vaults over the idle hound.", prompt.ModeStandard))
}

func TestValidate_CountsCharactersNotBytes(t *testing.T) {
	// 10 characters but 30 bytes; 3 characters of output is exactly 30%.
	original := "日本語のテキストです"
	assert.NoError(t, Validate(original, "短い文", prompt.ModeStandard))
	assert.ErrorIs(t, Validate(original, "短い", prompt.ModeStandard), ErrTruncatedOutput)
}

func TestIsQualityError(t *testing.T) {
	assert.True(t, IsQualityError(ErrResidualPrefix))
	assert.False(t, IsQualityError(&ValidationError{Message: "x"}))
	assert.False(t, IsQualityError(nil))
}
