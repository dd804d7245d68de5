package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmationConfig holds the configuration for a confirmation prompt
type ConfirmationConfig struct {
	Title       string
	Message     string
	Warning     string // Shown in orange
	Destructive bool   // If true, Yes is red, No is green
	YesLabel    string // Default: "Yes"
	NoLabel     string // Default: "No"
	Width       int    // Dialog width
}

// ConfirmationModel handles yes/no prompts
type ConfirmationModel struct {
	active    bool
	config    ConfirmationConfig
	onConfirm func() tea.Cmd
	onCancel  func() tea.Cmd
}

// NewConfirmation creates a new confirmation model
func NewConfirmation() *ConfirmationModel {
	return &ConfirmationModel{}
}

// Show activates the confirmation with the given configuration
func (m *ConfirmationModel) Show(config ConfirmationConfig, onConfirm, onCancel func() tea.Cmd) {
	m.active = true
	m.config = config
	m.onConfirm = onConfirm
	m.onCancel = onCancel

	if m.config.YesLabel == "" {
		m.config.YesLabel = "Yes"
	}
	if m.config.NoLabel == "" {
		m.config.NoLabel = "No"
	}
}

// Hide deactivates the confirmation
func (m *ConfirmationModel) Hide() {
	m.active = false
}

// Active returns whether the confirmation is currently shown
func (m *ConfirmationModel) Active() bool {
	return m.active
}

// Update handles key events for the confirmation
func (m *ConfirmationModel) Update(msg tea.KeyMsg) tea.Cmd {
	if !m.active {
		return nil
	}

	switch msg.String() {
	case "y", "Y":
		m.active = false
		if m.onConfirm != nil {
			return m.onConfirm()
		}
	case "n", "N", "esc":
		m.active = false
		if m.onCancel != nil {
			return m.onCancel()
		}
	}
	return nil
}

// View renders the prompt as a bordered dialog for the host to center
func (m *ConfirmationModel) View() string {
	if !m.active {
		return ""
	}

	width := m.config.Width
	if width == 0 {
		width = 50
	}
	center := lipgloss.NewStyle().Width(width - 4).Align(lipgloss.Center)

	var b strings.Builder
	if m.config.Title != "" {
		title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorWarning))
		b.WriteString(center.Render(title.Render(m.config.Title)))
		b.WriteString("\n\n")
	}
	if m.config.Message != "" {
		b.WriteString(center.Render(m.config.Message))
		b.WriteString("\n")
	}
	if m.config.Warning != "" {
		warning := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning))
		b.WriteString("\n")
		b.WriteString(center.Render(warning.Render(m.config.Warning)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(center.Render(m.options()))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorActive)).
		Padding(1, 1).
		Width(width - 2).
		Render(b.String())
}

func (m *ConfirmationModel) options() string {
	yes := fmt.Sprintf("[Y]%s", strings.TrimPrefix(m.config.YesLabel, "Y"))
	no := fmt.Sprintf("[N]%s", strings.TrimPrefix(m.config.NoLabel, "N"))

	yesColor, noColor := ColorSuccess, ColorDanger
	if m.config.Destructive {
		yesColor, noColor = ColorDanger, ColorSuccess
	}
	yesStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(yesColor)).Bold(true)
	noStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(noColor)).Bold(true)
	return yesStyle.Render(yes) + " / " + noStyle.Render(no)
}
