// Package prompt builds the instruction block sent ahead of the user's text.
package prompt

import (
	"fmt"
	"strings"
)

// Mode is the rewriting style requested by the client.
type Mode string

const (
	ModeStandard Mode = "standard"
	ModeFluency  Mode = "fluency"
	ModeHumanize Mode = "humanize"
	ModeFormal   Mode = "formal"
	ModeAcademic Mode = "academic"
	ModeSimple   Mode = "simple"
	ModeCreative Mode = "creative"
	ModeExpand   Mode = "expand"
	ModeShorten  Mode = "shorten"
	ModeCustom   Mode = "custom"
)

// Strength is a bucketed synonym-strength dial.
type Strength string

const (
	StrengthLow    Strength = "low"
	StrengthMedium Strength = "medium"
	StrengthHigh   Strength = "high"
)

// TextMarker is the final line of every prompt; the user text follows it.
const TextMarker = "Text to paraphrase:"

// DefaultLanguage is the language tag assumed when a request carries none.
const DefaultLanguage = "en-us"

// ModeInfo describes a mode for catalogs and the prompt body.
type ModeInfo struct {
	ID          Mode   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	objective   string
}

var modeOrder = []Mode{
	ModeStandard, ModeFluency, ModeHumanize, ModeFormal, ModeAcademic,
	ModeSimple, ModeCreative, ModeExpand, ModeShorten, ModeCustom,
}

var modes = map[Mode]ModeInfo{
	ModeStandard: {
		ID: ModeStandard, Name: "Standard", Description: "Balanced rewrite with a neutral tone",
		objective: "Rewrite the text in a standard, neutral tone while maintaining clarity and readability.",
	},
	ModeFluency: {
		ID: ModeFluency, Name: "Fluency", Description: "Smoother, more natural flow",
		objective: "Focus on improving the flow and readability of the text. Make it sound more natural and smooth.",
	},
	ModeHumanize: {
		ID: ModeHumanize, Name: "Humanize", Description: "Removes robotic phrasing",
		objective: "Make the text sound more natural and human-like. Remove any robotic or artificial phrasing.",
	},
	ModeFormal: {
		ID: ModeFormal, Name: "Formal", Description: "Professional tone without contractions",
		objective: "Rewrite the text in a formal, professional tone suitable for business or academic contexts. Remove contractions and casual expressions.",
	},
	ModeAcademic: {
		ID: ModeAcademic, Name: "Academic", Description: "Scholarly language and precise terminology",
		objective: "Transform the text into an academic style with scholarly language and precise terminology.",
	},
	ModeSimple: {
		ID: ModeSimple, Name: "Simple", Description: "Easier vocabulary and shorter sentences",
		objective: "Simplify the text using easier vocabulary and shorter sentences for better comprehension.",
	},
	ModeCreative: {
		ID: ModeCreative, Name: "Creative", Description: "Vivid, engaging expression",
		objective: "Rewrite the text with creative flair, using vivid language and engaging expressions.",
	},
	ModeExpand: {
		ID: ModeExpand, Name: "Expand", Description: "Adds detail and context",
		objective: "Elaborate on the original text by adding more detail, context, and explanatory information.",
	},
	ModeShorten: {
		ID: ModeShorten, Name: "Shorten", Description: "Condenses without losing key facts",
		objective: "Condense the text while retaining all key information and facts.",
	},
	ModeCustom: {
		ID: ModeCustom, Name: "Custom", Description: "Adapts to the content and context",
		objective: "Apply advanced paraphrasing techniques tailored to the specific content and context.",
	},
}

var strengthApproach = map[Strength]string{
	StrengthLow:    "Make minimal changes to the text, focusing on basic restructuring while keeping most original words.",
	StrengthMedium: "Make moderate changes, replacing some words with synonyms and restructuring sentences for better flow.",
	StrengthHigh:   "Make significant changes, using extensive synonyms and completely restructuring sentences while preserving meaning.",
}

const requirements = `Instructions:
1. Preserve the original meaning completely
2. Maintain the logical flow and structure
3. Keep technical terms and proper nouns that are essential
4. Ensure the output is grammatically correct
5. Match the tone and formality level specified by the mode
6. Do not add any introductory phrases like "Here is the rewritten text:"
7. Return only the paraphrased content`

// InvalidModeError is returned when a mode outside the closed set reaches
// the builder. Request validation runs first, so this signals a caller that
// skipped it.
type InvalidModeError struct {
	Mode string
}

func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid paraphrase mode: %q", e.Mode)
}

// IsValidMode reports whether mode is one of the ten supported modes.
func IsValidMode(mode string) bool {
	_, ok := modes[Mode(mode)]
	return ok
}

// Modes returns the mode catalog in display order.
func Modes() []ModeInfo {
	result := make([]ModeInfo, 0, len(modeOrder))
	for _, m := range modeOrder {
		result = append(result, modes[m])
	}
	return result
}

// Objective returns the fixed objective sentence for mode.
func Objective(mode Mode) (string, error) {
	info, ok := modes[mode]
	if !ok {
		return "", &InvalidModeError{Mode: string(mode)}
	}
	return info.objective, nil
}

// BucketStrength maps a 0-100 dial onto low (<=30), medium (<=70) or high.
func BucketStrength(synonymStrength int) Strength {
	switch {
	case synonymStrength <= 30:
		return StrengthLow
	case synonymStrength <= 70:
		return StrengthMedium
	default:
		return StrengthHigh
	}
}

// Approach returns the fixed approach sentence for a strength bucket.
func Approach(s Strength) string {
	return strengthApproach[s]
}

// DisplayLanguage renders the language line of the prompt. Only en-us is
// spelled out; any other tag is passed through as given.
func DisplayLanguage(language string) string {
	if language == DefaultLanguage {
		return "English (US)"
	}
	return language
}

// Build returns the instruction text for one request. The caller appends
// "\n\n" and the user text (see Compose).
func Build(mode Mode, synonymStrength int, language string) (string, error) {
	objective, err := Objective(mode)
	if err != nil {
		return "", err
	}
	strength := BucketStrength(synonymStrength)

	var b strings.Builder
	fmt.Fprintf(&b, "You are a professional text paraphrasing tool. Your task is to rewrite the given text while preserving its original meaning and context. The output language should be: %s.", DisplayLanguage(language))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Mode: %s\n%s", strings.ToUpper(string(mode)), objective)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Synonym Replacement Level: %s\n%s", strings.ToUpper(string(strength)), Approach(strength))
	b.WriteString("\n\n")
	b.WriteString(requirements)
	b.WriteString("\n\n")
	b.WriteString(TextMarker)
	return b.String(), nil
}

// Compose joins the instruction block and the user text into the full
// upstream prompt.
func Compose(instruction, text string) string {
	return instruction + "\n\n" + text
}
