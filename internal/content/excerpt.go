package content

import "strings"

const excerptRunes = 150

// Excerpt is the post description, or the first 150 characters of the body
// followed by "..." when the description is blank.
func Excerpt(post Post) string {
	if desc := strings.TrimSpace(post.FrontMatter.Description); desc != "" {
		return desc
	}
	runes := []rune(post.Content)
	if len(runes) > excerptRunes {
		runes = runes[:excerptRunes]
	}
	return string(runes) + "..."
}
