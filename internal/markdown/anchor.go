package markdown

import (
	"regexp"
	"strings"
)

var (
	nonAnchorChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
	hyphenRuns     = regexp.MustCompile(`-+`)
)

// HeadingID turns heading text into the anchor id used for deep links.
// Bold markers are removed first, then the text is lowercased, stripped to
// [a-z0-9 -], whitespace becomes hyphens and hyphen runs collapse.
func HeadingID(text string) string {
	id := strings.ReplaceAll(text, "**", "")
	id = strings.ToLower(id)
	id = nonAnchorChars.ReplaceAllString(id, "")
	id = whitespaceRuns.ReplaceAllString(strings.TrimSpace(id), "-")
	id = hyphenRuns.ReplaceAllString(id, "-")
	return strings.Trim(id, "-")
}
