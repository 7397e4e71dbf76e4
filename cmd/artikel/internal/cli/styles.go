package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/restatolahdata/go-artikel/internal/content"
)

var (
	mutedColor = lipgloss.Color("#6B7280")
	okColor    = lipgloss.Color("#10B981")
	errorColor = lipgloss.Color("#EF4444")

	titleStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	okStyle      = lipgloss.NewStyle().Foreground(okColor).Bold(true)
	problemStyle = lipgloss.NewStyle().Foreground(errorColor)
)

// categoryBadge renders the category name in its brand colour.
func categoryBadge(id string) string {
	category := content.LookupCategory(id)
	style := lipgloss.NewStyle().Bold(true)
	if category.Color != "" {
		style = style.Foreground(lipgloss.Color(category.Color))
	}
	return style.Render("[" + category.Name + "]")
}
