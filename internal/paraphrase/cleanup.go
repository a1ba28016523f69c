package paraphrase

import "strings"

// fillerPrefixes are lead-ins models tend to put before the rewritten text.
var fillerPrefixes = []string{
	"Here is the rewritten text:",
	"Here is the paraphrased text:",
	"Here's the rewritten version:",
	"Here's the paraphrased version:",
	"Rewritten text:",
	"Paraphrased text:",
	"Here is the text rewritten:",
	"The rewritten text is:",
}

// Cleanup strips one known filler prefix and one pair of wrapping double
// quotes from raw provider output.
func Cleanup(raw string) string {
	text := strings.TrimSpace(raw)

	for _, prefix := range fillerPrefixes {
		if hasPrefixFold(text, prefix) {
			text = strings.TrimSpace(text[len(prefix):])
			break
		}
	}

	// A lone quote counts as both ends and leaves nothing.
	if strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) {
		text = strings.TrimSuffix(strings.TrimPrefix(text, `"`), `"`)
	}

	return strings.TrimSpace(text)
}

// hasPrefixFold is a case-insensitive HasPrefix for ASCII prefixes.
func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
