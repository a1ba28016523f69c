package util

import "testing"

func TestTruncateLog_ShortString(t *testing.T) {
	input := "short log"
	result := TruncateLog(input, DefaultLogMaxLen)
	if result != input {
		t.Errorf("TruncateLog() should not truncate short strings, got %q", result)
	}
}

func TestTruncateLog_ExactLimit(t *testing.T) {
	input := "12345678901234567890"
	result := TruncateLog(input, 20)
	if result != input {
		t.Errorf("TruncateLog() should not truncate at exact limit, got %q", result)
	}
}

func TestTruncateLog_LongString(t *testing.T) {
	input := "1234567890abcdefghij"
	result := TruncateLog(input, 10)
	if result != "1234567890... [truncated, 20 bytes total]" {
		t.Errorf("TruncateLog() = %q", result)
	}
}

func TestTruncateLog_DoesNotSplitRunes(t *testing.T) {
	// "é" is two bytes; a cut at byte 2 would land inside it.
	input := "aéb-long-tail"
	result := TruncateLog(input, 2)
	if result != "a... [truncated, 14 bytes total]" {
		t.Errorf("TruncateLog() = %q", result)
	}
}

func TestTruncateBytes_LongBytes(t *testing.T) {
	input := make([]byte, 2000)
	for i := range input {
		input[i] = 'x'
	}
	result := TruncateBytes(input)
	if result[:DefaultLogMaxLen] != string(input[:DefaultLogMaxLen]) {
		t.Error("TruncateBytes() should preserve first DefaultLogMaxLen bytes")
	}
	if len(result) <= DefaultLogMaxLen {
		t.Errorf("TruncateBytes() result should carry the truncation suffix, got len=%d", len(result))
	}
}

func TestSnippet(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 5, "hello…"},
		{"日本語のテキスト", 3, "日本語…"},
		{"", 3, ""},
	}
	for _, tc := range cases {
		if got := Snippet(tc.in, tc.max); got != tc.want {
			t.Errorf("Snippet(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}
