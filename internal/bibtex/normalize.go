package bibtex

import (
	"regexp"
	"strings"
)

var (
	markupRE     = regexp.MustCompile(`[{}$\\]`)
	punctRE      = regexp.MustCompile(`[^\w\s]`)
	whitespaceRE = regexp.MustCompile(`\s+`)
)

// NormalizeTitle canonicalizes a free-text title for comparison: brace,
// dollar and backslash markup removed, remaining punctuation stripped,
// lower-cased, whitespace runs collapsed to a single space, ends trimmed.
// Idempotent; empty input yields "".
func NormalizeTitle(title string) string {
	if title == "" {
		return ""
	}
	t := markupRE.ReplaceAllString(title, "")
	t = punctRE.ReplaceAllString(t, "")
	t = strings.ToLower(t)
	t = whitespaceRE.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}
