package render

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// policy allows a handful of inline formatting tags in titles and
// descriptions. Everything else is stripped; script and style elements are
// dropped together with their content. A built policy is safe for
// concurrent use.
var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "i", "em", "strong", "code", "br")
	return p
}

// Sanitize converts newlines to <br> and strips disallowed markup from s.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\n", "<br>")
	return policy.Sanitize(s)
}

// escaper escapes every character that could start markup or end an
// attribute value.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

// Escape returns s with HTML special characters replaced by entities.
func Escape(s string) string {
	return escaper.Replace(s)
}
