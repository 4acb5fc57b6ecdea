package openai

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?\d[\d\s-]{6,}\d`)
)

// scrubString normalizes whitespace in the input text before it is sent to
// the provider. Punctuation is kept: relation verbs and title marks
// (《》, quotes) carry meaning for extraction.
func scrubString(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// MaskSensitive replaces email addresses and phone numbers with placeholder
// tokens so they never reach the provider.
func MaskSensitive(s string) string {
	s = emailPattern.ReplaceAllString(s, "[email]")
	s = phonePattern.ReplaceAllString(s, "[phone]")
	return s
}
