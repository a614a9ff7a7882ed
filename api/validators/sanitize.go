package validators

import (
	"strings"
	"unicode"
)

// cleanParam trims, drops control characters and collapses inner runs of
// whitespace, so "LMR  400" and "LMR 400" reach the catalog lookup the same.
func cleanParam(input string, maxLen int) string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	})
	cleaned := strings.Join(fields, " ")
	if maxLen > 0 && len(cleaned) > maxLen {
		cleaned = strings.TrimSpace(cleaned[:maxLen])
	}
	return cleaned
}
