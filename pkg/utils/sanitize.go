package utils

import (
	"html"
	"strings"
	"unicode"
)

// SanitizeString trims whitespace, drops control characters and escapes HTML
// entities. Applied to free-text fields before they reach storage.
func SanitizeString(input string) string {
	trimmed := strings.TrimSpace(input)

	var b strings.Builder
	for _, r := range trimmed {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		b.WriteRune(r)
	}

	return html.EscapeString(b.String())
}
