package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/pluqqy/inline-editor/pkg/models"
)

// Color constants
const (
	ColorActive  = "170" // Purple/magenta for active elements
	ColorDim     = "241"
	ColorWarning = "214" // Orange/yellow for warnings
	ColorDanger  = "196"
	ColorSuccess = "28"
	ColorStatus  = "62"  // Status bar background
	ColorOnBar   = "230" // Status bar text
)

var (
	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color(ColorStatus)).
			Foreground(lipgloss.Color(ColorOnBar)).
			Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDim))

	ModifiedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWarning)).
			Bold(true)
)

// editorStyles are derived from a theme each time it changes.
type editorStyles struct {
	frame   lipgloss.Style
	toolbar lipgloss.Style
	toggle  lipgloss.Style
	header  lipgloss.Style
}

func newEditorStyles(t models.Theme, plain bool) editorStyles {
	if plain {
		return editorStyles{
			frame:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()),
			toolbar: lipgloss.NewStyle(),
			toggle:  lipgloss.NewStyle().Padding(0, 1),
			header:  lipgloss.NewStyle(),
		}
	}

	t = t.WithDefaults()
	border := lipgloss.Color(t.Border)
	return editorStyles{
		frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Foreground(lipgloss.Color(t.Foreground)),
		toolbar: lipgloss.NewStyle().
			Background(lipgloss.Color(t.ToolbarBackground())).
			Foreground(lipgloss.Color(t.Foreground)),
		toggle: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Background)).
			Foreground(lipgloss.Color(t.Foreground)).
			BorderForeground(border).
			Padding(0, 1).
			Bold(true),
		header: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Foreground)).
			Bold(true),
	}
}

// appStyle paints the area around the widget.
func appStyle(t models.Theme, plain bool) lipgloss.Style {
	if plain {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(t.WithDefaults().AppBackground))
}
