package util

import (
	"fmt"
	"unicode/utf8"
)

// DefaultLogMaxLen caps upstream bodies quoted in error messages and logs.
const DefaultLogMaxLen = 1024

// SnippetMaxRunes caps user text quoted in logs.
const SnippetMaxRunes = 80

// TruncateLog truncates long strings for logging, noting the original size.
// The cut never splits a UTF-8 sequence.
func TruncateLog(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + fmt.Sprintf("... [truncated, %d bytes total]", len(s))
}

// TruncateBytes is TruncateLog for []byte with DefaultLogMaxLen.
func TruncateBytes(b []byte) string {
	return TruncateLog(string(b), DefaultLogMaxLen)
}

// Snippet returns at most maxRunes characters of s followed by an ellipsis
// when anything was cut.
func Snippet(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	i := 0
	for pos := range s {
		if i == maxRunes {
			return s[:pos] + "…"
		}
		i++
	}
	return s
}
