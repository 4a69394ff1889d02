package domain

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML makes untrusted text safe to place in element content or a
// quoted attribute value.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
