package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pluqqy/inline-editor/pkg/editor"
)

// renderHeader draws the document title on the left and the mode on the
// right. A trailing dot marks unsaved changes.
func renderHeader(width int, title string, mode editor.Mode, modified bool) string {
	badgeStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorActive)).
		Bold(true)

	if modified {
		title += " " + ModifiedStyle.Render("●")
	}
	badge := badgeStyle.Render(strings.ToUpper(mode.String()))

	gap := width - lipgloss.Width(title) - lipgloss.Width(badge)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + badge
}
