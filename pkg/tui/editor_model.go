package tui

import (
	"math"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pluqqy/inline-editor/pkg/editor"
	"github.com/pluqqy/inline-editor/pkg/models"
	"github.com/pluqqy/inline-editor/pkg/surface"
)

const (
	defaultEditorWidth  = 80
	defaultEditorHeight = 20
)

// EditorOptions configures an EditorModel. The embedded Config's Scheduler
// is always replaced by the model's own.
type EditorOptions struct {
	editor.Config
	Width  int
	Height int
	// WrapWidth caps the visual line length. Zero means the full width.
	WrapWidth int
	// Plain disables all colors.
	Plain bool
}

// EditorModel is the two-mode editing widget for Bubble Tea programs. The
// visual view draws a surface.DOM in a viewport; the source view is a
// textarea holding the raw markup.
type EditorModel struct {
	editor    *editor.Editor
	dom       *surface.DOM
	scheduler *TeaScheduler

	source   textarea.Model
	viewport viewport.Model
	cursor   surface.Cursor

	width     int
	height    int
	wrapWidth int
	focused   bool
	plain     bool
	styles    editorStyles
}

var _ editor.Handle = (*EditorModel)(nil)

// NewEditorModel creates a focused widget in visual mode.
func NewEditorModel(opts EditorOptions) *EditorModel {
	scheduler := &TeaScheduler{}
	cfg := opts.Config
	cfg.Scheduler = scheduler

	ta := textarea.New()
	ta.Placeholder = editor.SourcePlaceholder
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.MaxHeight = 0

	m := &EditorModel{
		dom:       surface.NewDOM(),
		scheduler: scheduler,
		source:    ta,
		viewport:  viewport.New(defaultEditorWidth, defaultEditorHeight),
		wrapWidth: opts.WrapWidth,
		focused:   true,
		plain:     opts.Plain,
	}
	// Header callbacks go through the widget so its surfaces follow the mode.
	if header := cfg.Header; header != nil {
		cfg.Header = func(p editor.HeaderProps) string {
			p.ToggleMode = m.ToggleMode
			p.SetMode = m.SetMode
			return header(p)
		}
	}
	m.editor = editor.New(cfg)
	m.editor.Attach(m.dom)
	m.styles = newEditorStyles(m.editor.Theme(), m.plain)
	m.SetSize(opts.Width, opts.Height)
	return m
}

// Editor exposes the underlying synchronizer.
func (m *EditorModel) Editor() *editor.Editor { return m.editor }

// Cursor is the caret position on the visual surface.
func (m *EditorModel) Cursor() surface.Cursor { return m.cursor }

// Focused reports whether the widget receives keys.
func (m *EditorModel) Focused() bool { return m.focused }

func (m *EditorModel) Init() tea.Cmd {
	return m.scheduler.Cmd()
}

// Cmd returns the command that drives pending deferred work, if any. Hosts
// that call Handle methods outside Update should return it from their own
// Update.
func (m *EditorModel) Cmd() tea.Cmd {
	return m.scheduler.Cmd()
}

func (m *EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case repopulateMsg:
		m.scheduler.Run()
		m.cursor = m.dom.Clamp(m.cursor)
		m.refresh()

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if m.focused {
			cmds = append(cmds, m.handleKey(msg))
		}

	default:
		if m.editor.Mode() == editor.ModeSource {
			var cmd tea.Cmd
			m.source, cmd = m.source.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	cmds = append(cmds, m.scheduler.Cmd())
	return m, tea.Batch(cmds...)
}

func (m *EditorModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.editor.ShowToggle() && Shortcuts.ToggleMode.Matches(msg.String()) {
		m.ToggleMode()
		return nil
	}
	if m.editor.Mode() == editor.ModeSource {
		return m.sourceKey(msg)
	}
	m.visualKey(msg)
	return nil
}

func (m *EditorModel) sourceKey(msg tea.KeyMsg) tea.Cmd {
	before := m.source.Value()
	var cmd tea.Cmd
	m.source, cmd = m.source.Update(msg)
	if after := m.source.Value(); after != before {
		m.editor.SourceInput(after)
	}
	return cmd
}

func (m *EditorModel) visualKey(msg tea.KeyMsg) {
	// The surface is about to be replaced.
	if m.editor.Pending() {
		return
	}

	key := msg.String()
	switch {
	case Shortcuts.OpenLink.Matches(key):
		m.editor.Click(editor.ClickEvent{Target: m.dom.ElementAt(m.cursor), Modifier: true})
		return
	case Shortcuts.ActivateImg.Matches(key):
		if el := m.dom.ElementAt(m.cursor); el != nil && el.TagName() == "IMG" {
			if m.editor.Click(editor.ClickEvent{Target: el}) {
				return
			}
		}
		m.cursor = m.dom.SplitBlock(m.cursor)
		m.editor.Input()
		m.refresh()
		return
	}

	switch msg.Type {
	case tea.KeyLeft:
		m.moveHorizontal(-1)
	case tea.KeyRight:
		m.moveHorizontal(1)
	case tea.KeyUp:
		m.cursor = m.dom.Clamp(surface.Cursor{Block: m.cursor.Block - 1, Offset: m.cursor.Offset})
	case tea.KeyDown:
		m.cursor = m.dom.Clamp(surface.Cursor{Block: m.cursor.Block + 1, Offset: m.cursor.Offset})
	case tea.KeyHome:
		m.cursor.Offset = 0
	case tea.KeyEnd:
		m.cursor = m.dom.Clamp(surface.Cursor{Block: m.cursor.Block, Offset: math.MaxInt})
	case tea.KeyPgUp, tea.KeyPgDown:
		m.viewport, _ = m.viewport.Update(msg)
		return
	case tea.KeyBackspace:
		m.cursor = m.dom.DeleteBackward(m.cursor)
		m.editor.Input()
	case tea.KeySpace:
		m.insert(" ")
	case tea.KeyRunes:
		if msg.Alt {
			return
		}
		m.insert(string(msg.Runes))
	default:
		return
	}
	m.refresh()
}

func (m *EditorModel) insert(s string) {
	m.cursor = m.dom.InsertText(m.cursor, s)
	m.editor.Input()
}

func (m *EditorModel) moveHorizontal(delta int) {
	blocks := m.dom.Blocks()
	c := m.dom.Clamp(m.cursor)
	switch {
	case delta < 0 && c.Offset > 0:
		c.Offset--
	case delta < 0 && c.Block > 0:
		c.Block--
		c.Offset = blocks[c.Block].Len()
	case delta > 0 && c.Block < len(blocks) && c.Offset < blocks[c.Block].Len():
		c.Offset++
	case delta > 0 && c.Block+1 < len(blocks):
		c.Block++
		c.Offset = 0
	}
	m.cursor = c
}

// Content implements editor.Handle.
func (m *EditorModel) Content() string { return m.editor.Content() }

// Mode implements editor.Handle.
func (m *EditorModel) Mode() editor.Mode { return m.editor.Mode() }

// SetContent implements editor.Handle.
func (m *EditorModel) SetContent(value string) {
	m.editor.SetContent(value)
	m.syncSurfaces()
}

// SyncInitialContent forwards a changed host value to the editor.
func (m *EditorModel) SyncInitialContent(value string) {
	m.editor.SyncInitialContent(value)
	m.syncSurfaces()
}

// SetMode implements editor.Handle.
func (m *EditorModel) SetMode(target editor.Mode) {
	if target == m.editor.Mode() {
		return
	}
	m.editor.SetMode(target)
	m.syncSurfaces()
}

// ToggleMode implements editor.Handle.
func (m *EditorModel) ToggleMode() {
	m.SetMode(m.editor.Mode().Other())
}

func (m *EditorModel) syncSurfaces() {
	if m.editor.Mode() == editor.ModeSource {
		if m.source.Value() != m.editor.Content() {
			m.source.SetValue(m.editor.Content())
		}
		if m.focused {
			m.source.Focus()
		}
	} else {
		m.source.Blur()
		m.cursor = m.dom.Clamp(m.cursor)
	}
	m.resize()
	m.refresh()
}

// SetTheme swaps the colors without touching content or mode.
func (m *EditorModel) SetTheme(t models.Theme) {
	m.editor.SetTheme(t)
	m.styles = newEditorStyles(m.editor.Theme(), m.plain)
	m.refresh()
}

// Focus gives the widget keyboard input.
func (m *EditorModel) Focus() tea.Cmd {
	m.focused = true
	var cmd tea.Cmd
	if m.editor.Mode() == editor.ModeSource {
		cmd = m.source.Focus()
	}
	m.refresh()
	return cmd
}

// Blur takes keyboard input away and reports the content to OnBlur.
func (m *EditorModel) Blur() {
	if !m.focused {
		return
	}
	m.focused = false
	m.source.Blur()
	m.editor.Blur()
	m.refresh()
}

// SetSize sets the outer size of the widget, border included.
func (m *EditorModel) SetSize(width, height int) {
	if width <= 0 {
		width = defaultEditorWidth
	}
	if height <= 0 {
		height = defaultEditorHeight
	}
	m.width, m.height = width, height
	m.resize()
	m.refresh()
}

func (m *EditorModel) resize() {
	inner := m.width - 2
	if inner < 10 {
		inner = 10
	}
	body := m.height - 2 - m.chromeHeight()
	if body < 1 {
		body = 1
	}
	m.source.SetWidth(inner)
	m.source.SetHeight(body)
	m.viewport.Width = inner
	m.viewport.Height = body
}

func (m *EditorModel) chromeHeight() int {
	n := 0
	if m.editor.ShowToggle() {
		n++
	}
	if h := m.editor.Header(); h != "" {
		n += lipgloss.Height(h)
	}
	return n
}

// refresh redraws the visual surface into the viewport and keeps the caret
// line in view.
func (m *EditorModel) refresh() {
	if m.editor.Mode() != editor.ModeVisual {
		return
	}
	if m.editor.Pending() {
		m.viewport.SetContent("")
		return
	}

	width := m.viewport.Width
	if m.wrapWidth > 0 && m.wrapWidth < width {
		width = m.wrapWidth
	}
	r := surface.Renderer{Width: width, Theme: m.editor.Theme(), Plain: m.plain}
	if m.focused {
		c := m.cursor
		r.Cursor = &c
	}
	out := r.Render(m.dom)
	m.viewport.SetContent(out.Text)

	if line := out.CursorLine; line >= 0 {
		switch {
		case line < m.viewport.YOffset:
			m.viewport.SetYOffset(line)
		case line >= m.viewport.YOffset+m.viewport.Height:
			m.viewport.SetYOffset(line - m.viewport.Height + 1)
		}
	}
}

func (m *EditorModel) View() string {
	var parts []string
	if h := m.editor.Header(); h != "" {
		parts = append(parts, m.styles.header.Render(h))
	}
	if m.editor.ShowToggle() {
		parts = append(parts, m.toolbar())
	}
	if m.editor.Mode() == editor.ModeSource {
		parts = append(parts, m.source.View())
	} else {
		parts = append(parts, m.viewport.View())
	}
	return m.styles.frame.Width(m.width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m *EditorModel) toolbar() string {
	button := m.styles.toggle.Render(m.editor.ToggleLabel())
	return m.styles.toolbar.
		Width(m.width - 2).
		Align(lipgloss.Right).
		Render(button)
}
