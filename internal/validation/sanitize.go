package validation

import (
	"html"
	"strings"
)

// Escape HTML-escapes s. Run it after validation so length rules count the
// characters the caller sent.
func Escape(s string) string {
	return html.EscapeString(s)
}

func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
