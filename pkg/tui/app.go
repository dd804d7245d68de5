package tui

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pluqqy/inline-editor/internal/logging"
	"github.com/pluqqy/inline-editor/pkg/editor"
	"github.com/pluqqy/inline-editor/pkg/files"
	"github.com/pluqqy/inline-editor/pkg/mathcodec"
	"github.com/pluqqy/inline-editor/pkg/models"
	"github.com/pluqqy/inline-editor/pkg/surface"
	"github.com/pluqqy/inline-editor/pkg/utils"
)

const statusDuration = 3 * time.Second

// StatusMsg shows a message in the status bar for a few seconds.
type StatusMsg string

type clearStatusMsg struct {
	text string
}

// AppOptions configures the demo host.
type AppOptions struct {
	// Path is the document file. Empty means the project's default document.
	Path     string
	Settings *models.Settings
	Plain    bool
	Logger   *slog.Logger
	Opener   editor.Opener
}

// App hosts one EditorModel: it loads and saves the document, copies it to
// the clipboard, cycles themes and asks before quitting with unsaved
// changes. Documents are stored in collapsed source form.
type App struct {
	editor  *EditorModel
	confirm *ConfirmationModel
	logger  *slog.Logger

	path string
	// saved is the document as last loaded or written.
	saved     string
	theme     models.Theme
	plain     bool
	statusMsg string

	width  int
	height int

	writeFile func(path, content string) error
	copyText  func(text string) error
}

// NewApp loads the document at opts.Path, if it exists, and builds the
// editor around it.
func NewApp(opts AppOptions) (*App, error) {
	settings := opts.Settings
	if settings == nil {
		settings = models.DefaultSettings()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	opener := opts.Opener
	if opener == nil {
		opener = BrowserOpener{}
	}

	path := opts.Path
	if path == "" {
		path = files.DocumentPath(files.DefaultDocument)
	}

	content := settings.Editor.InitialContent
	if files.DocumentExists(path) {
		doc, err := files.ReadDocument(path)
		if err != nil {
			return nil, err
		}
		content = doc.Content
	}
	if content == "" {
		content = editor.DefaultContent
	}

	a := &App{
		confirm:   NewConfirmation(),
		logger:    logger,
		path:      path,
		theme:     settings.ResolveTheme(),
		plain:     opts.Plain,
		writeFile: files.WriteDocument,
		copyText:  clipboard.WriteAll,
	}

	a.editor = NewEditorModel(EditorOptions{
		Config: editor.Config{
			InitialContent: content,
			Theme:          a.theme,
			SuppressToggle: settings.Editor.SuppressToggle,
			Header:         a.header,
			OnChange: func(value string) {
				logger.Debug("content changed", "bytes", len(value))
			},
			OnModeChange: func(mode editor.Mode) {
				logger.Info("mode changed", "mode", mode.String())
			},
			Opener: opener,
			Logger: logger,
		},
		WrapWidth: settings.Editor.WrapWidth,
		Plain:     opts.Plain,
	})

	if settings.Editor.StartMode != "" {
		mode, err := editor.ParseMode(settings.Editor.StartMode)
		if err != nil {
			return nil, fmt.Errorf("invalid start mode: %w", err)
		}
		a.editor.SetMode(mode)
	}
	// Compare against the content as the editor serializes it, so loading
	// alone never counts as a change.
	a.saved = a.Document()

	return a, nil
}

// Editor returns the hosted widget.
func (a *App) Editor() *EditorModel { return a.editor }

// Path is the document file.
func (a *App) Path() string { return a.path }

// Document returns the content as it is saved: collapsed to notation.
func (a *App) Document() string {
	content := a.editor.Content()
	if a.editor.Mode() == editor.ModeVisual {
		return mathcodec.Collapse(content)
	}
	return content
}

// Modified reports whether the document differs from the saved copy.
func (a *App) Modified() bool {
	if a.editor == nil {
		return false
	}
	return a.Document() != a.saved
}

func (a *App) header(props editor.HeaderProps) string {
	return renderHeader(a.headerWidth(), filepath.Base(a.path), props.Mode, a.Modified())
}

// headerWidth is the content width inside the widget border.
func (a *App) headerWidth() int {
	if a.width <= 2 {
		return defaultEditorWidth - 2
	}
	return a.width - 2
}

func (a *App) Init() tea.Cmd {
	return a.editor.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.editor.SetSize(msg.Width, msg.Height-2)
		return a, nil

	case StatusMsg:
		a.statusMsg = string(msg)
		text := string(msg)
		return a, tea.Tick(statusDuration, func(time.Time) tea.Msg {
			return clearStatusMsg{text: text}
		})

	case clearStatusMsg:
		// A newer message keeps its own timer.
		if a.statusMsg == msg.text {
			a.statusMsg = ""
		}
		return a, nil

	case tea.KeyMsg:
		if a.confirm.Active() {
			return a, a.confirm.Update(msg)
		}

		key := msg.String()
		switch {
		case Shortcuts.Quit.Matches(key):
			return a, a.quit()
		case Shortcuts.Save.Matches(key):
			return a, a.save()
		case Shortcuts.Copy.Matches(key):
			return a, a.copy()
		case Shortcuts.CycleTheme.Matches(key):
			return a, a.cycleTheme()
		case !a.editor.Editor().ShowToggle() && Shortcuts.ToggleMode.Matches(key):
			// The widget's own toggle is hidden; the host drives the mode.
			a.editor.ToggleMode()
			return a, a.editor.Cmd()
		}
	}

	_, cmd := a.editor.Update(msg)
	return a, cmd
}

func (a *App) save() tea.Cmd {
	content := a.Document()
	if err := a.writeFile(a.path, content); err != nil {
		a.logger.Error("save failed", "path", a.path, "error", err)
		return status(fmt.Sprintf("Error: %v", err))
	}
	a.saved = content
	a.logger.Info("document saved", "path", a.path, "bytes", len(content))
	return status("Saved " + filepath.Base(a.path))
}

func (a *App) copy() tea.Cmd {
	if err := a.copyText(a.Document()); err != nil {
		a.logger.Warn("clipboard write failed", "error", err)
		return status(fmt.Sprintf("Error: failed to copy to clipboard: %v", err))
	}
	return status("Copied document to clipboard")
}

func (a *App) cycleTheme() tea.Cmd {
	a.theme = models.NextTheme(a.theme.Name)
	a.editor.SetTheme(a.theme)
	return status("Theme: " + a.theme.Name)
}

func (a *App) quit() tea.Cmd {
	if !a.Modified() {
		return tea.Quit
	}
	a.confirm.Show(ConfirmationConfig{
		Title:       "Unsaved changes",
		Message:     fmt.Sprintf("Quit without saving %s?", filepath.Base(a.path)),
		Destructive: true,
	}, func() tea.Cmd {
		return tea.Quit
	}, nil)
	return nil
}

func status(text string) tea.Cmd {
	return func() tea.Msg { return StatusMsg(text) }
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	if a.confirm.Active() {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.confirm.View())
	}

	status := a.statusMsg
	if status == "" {
		status = utils.FormatWordCount(a.wordCount())
	}
	parts := []string{a.editor.View(), HelpStyle.Render(a.helpLine()), StatusBarStyle.Render(status)}
	return appStyle(a.theme, a.plain).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// wordCount counts words block by block so adjacent paragraphs do not run
// together.
func (a *App) wordCount() int {
	dom := surface.NewDOM()
	dom.SetHTML(a.Document())
	n := 0
	for _, b := range dom.Blocks() {
		n += utils.CountWords(b.Text())
	}
	return n
}

func (a *App) helpLine() string {
	help := []string{
		FormatShortcutForHelp(Shortcuts.ToggleMode.Get()) + " mode",
		FormatShortcutForHelp(Shortcuts.Save.Get()) + " save",
		FormatShortcutForHelp(Shortcuts.Copy.Get()) + " copy",
		FormatShortcutForHelp(Shortcuts.CycleTheme.Get()) + " theme",
		fmt.Sprintf("%s open link (%s+click)", FormatShortcutForHelp(Shortcuts.OpenLink.Get()), ModifierLabel()),
		FormatShortcutForHelp(Shortcuts.Quit.Get()) + " quit",
	}
	return strings.Join(help, " · ")
}
