package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/inline-editor/pkg/editor"
	"github.com/pluqqy/inline-editor/pkg/models"
	"github.com/pluqqy/inline-editor/pkg/surface"
	"github.com/pluqqy/inline-editor/pkg/tui/testhelpers"
)

type recorder struct {
	changes []string
	blurs   []string
	modes   []editor.Mode
	opened  []string
}

func newTestEditor(content string, rec *recorder, mutate ...func(*editor.Config)) *EditorModel {
	cfg := editor.Config{
		InitialContent: content,
		OnChange:       func(v string) { rec.changes = append(rec.changes, v) },
		OnBlur:         func(v string) { rec.blurs = append(rec.blurs, v) },
		OnModeChange:   func(m editor.Mode) { rec.modes = append(rec.modes, m) },
		Opener: editor.OpenerFunc(func(url string) error {
			rec.opened = append(rec.opened, url)
			return nil
		}),
	}
	for _, f := range mutate {
		f(&cfg)
	}
	return NewEditorModel(EditorOptions{Config: cfg, Width: 60, Height: 12, Plain: true})
}

func press(m *EditorModel, msg tea.Msg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func ctrlE() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyCtrlE} }

func TestEditorModel_Defaults(t *testing.T) {
	m := newTestEditor("", &recorder{})

	assert.Equal(t, editor.ModeVisual, m.Mode())
	assert.Equal(t, editor.DefaultContent, m.Content())
	assert.True(t, m.Focused())

	view := m.View()
	assert.Contains(t, view, "Start typing here...")
	assert.Contains(t, view, editor.VisualToggleLabel)
}

func TestEditorModel_ToggleRoundTrip(t *testing.T) {
	rec := &recorder{}
	m := newTestEditor("<p>Hello $x^2$ world</p>", rec)

	testhelpers.AssertViewContains(t, m.View(), "Hello x² world")

	cmd := press(m, ctrlE())
	assert.Nil(t, cmd)
	assert.Equal(t, editor.ModeSource, m.Mode())
	assert.Equal(t, "<p>Hello $x^2$ world</p>", m.Content())
	assert.Equal(t, "<p>Hello $x^2$ world</p>", m.source.Value())
	assert.Contains(t, m.View(), editor.SourceToggleLabel)
	assert.Equal(t, []editor.Mode{editor.ModeSource}, rec.modes)

	cmd = press(m, ctrlE())
	require.NotNil(t, cmd)
	assert.Equal(t, editor.ModeVisual, m.Mode())
	assert.True(t, m.Editor().Pending())
	assert.Equal(t, []editor.Mode{editor.ModeSource}, rec.modes, "visual notification waits for the next turn")

	press(m, repopulateMsg{})
	assert.False(t, m.Editor().Pending())
	assert.Equal(t, []editor.Mode{editor.ModeSource, editor.ModeVisual}, rec.modes)
	testhelpers.AssertViewContains(t, m.View(), "Hello x² world")
}

func TestEditorModel_StaleRepopulationIsDropped(t *testing.T) {
	rec := &recorder{}
	m := newTestEditor("<p>a</p>", rec)

	press(m, ctrlE())
	press(m, ctrlE())
	press(m, ctrlE())
	press(m, repopulateMsg{})

	assert.Equal(t, editor.ModeSource, m.Mode())
	assert.Equal(t, "<p>a</p>", m.Content())
	assert.Equal(t, []editor.Mode{editor.ModeSource, editor.ModeSource}, rec.modes)
}

func TestEditorModel_VisualTyping(t *testing.T) {
	rec := &recorder{}
	m := newTestEditor("<p>ab</p>", rec)

	press(m, testhelpers.Key(tea.KeyEnd))
	assert.Equal(t, surface.Cursor{Block: 0, Offset: 2}, m.Cursor())

	testhelpers.Type(m, "c d")
	assert.Equal(t, "<p>abc d</p>", m.Content())
	assert.Equal(t, []string{"<p>abc</p>", "<p>abc </p>", "<p>abc d</p>"}, rec.changes)

	press(m, testhelpers.Key(tea.KeyBackspace))
	assert.Equal(t, "<p>abc </p>", m.Content())

	press(m, testhelpers.Key(tea.KeyEnter))
	assert.Equal(t, "<p>abc </p><p></p>", m.Content())
	assert.Equal(t, surface.Cursor{Block: 1, Offset: 0}, m.Cursor())
}

func TestEditorModel_CursorMovement(t *testing.T) {
	m := newTestEditor("<p>ab</p><p>cde</p>", &recorder{})

	tests := []struct {
		name string
		key  tea.KeyType
		want surface.Cursor
	}{
		{"right", tea.KeyRight, surface.Cursor{Block: 0, Offset: 1}},
		{"end", tea.KeyEnd, surface.Cursor{Block: 0, Offset: 2}},
		{"right wraps to next block", tea.KeyRight, surface.Cursor{Block: 1, Offset: 0}},
		{"left wraps to previous block", tea.KeyLeft, surface.Cursor{Block: 0, Offset: 2}},
		{"down keeps offset", tea.KeyDown, surface.Cursor{Block: 1, Offset: 2}},
		{"down stops at last block", tea.KeyDown, surface.Cursor{Block: 1, Offset: 2}},
		{"home", tea.KeyHome, surface.Cursor{Block: 1, Offset: 0}},
		{"up", tea.KeyUp, surface.Cursor{Block: 0, Offset: 0}},
		{"left stops at start", tea.KeyLeft, surface.Cursor{Block: 0, Offset: 0}},
	}

	for _, tt := range tests {
		press(m, testhelpers.Key(tt.key))
		assert.Equal(t, tt.want, m.Cursor(), tt.name)
	}
}

func TestEditorModel_SourceTyping(t *testing.T) {
	rec := &recorder{}
	m := newTestEditor("<p>a</p>", rec)

	press(m, ctrlE())
	testhelpers.Type(m, "x")

	assert.Equal(t, "<p>a</p>x", m.Content())
	assert.Equal(t, []string{"<p>a</p>x"}, rec.changes)
}

func TestEditorModel_KeysIgnoredWhilePending(t *testing.T) {
	m := newTestEditor("<p>a</p>", &recorder{})

	press(m, ctrlE())
	press(m, ctrlE())
	require.True(t, m.Editor().Pending())

	testhelpers.Type(m, "zz")
	press(m, repopulateMsg{})

	assert.Equal(t, "<p>a</p>", m.Content())
}

func TestEditorModel_Links(t *testing.T) {
	rec := &recorder{}
	m := newTestEditor(`<p><a href="https://x.test">site</a> <a href="https://y.test"><img src="i.png" alt="i"></a></p>`, rec)

	press(m, tea.KeyMsg{Type: tea.KeyCtrlO})
	assert.Equal(t, []string{"https://x.test"}, rec.opened)

	press(m, testhelpers.Key(tea.KeyEnd))
	press(m, testhelpers.Key(tea.KeyLeft))
	before := m.Content()
	press(m, testhelpers.Key(tea.KeyEnter))

	assert.Equal(t, []string{"https://x.test", "https://y.test"}, rec.opened)
	assert.Equal(t, before, m.Content(), "activating a linked image does not split the block")
}

func TestEditorModel_SuppressToggle(t *testing.T) {
	m := newTestEditor("<p>a</p>", &recorder{}, func(c *editor.Config) {
		c.SuppressToggle = true
	})

	press(m, ctrlE())

	assert.Equal(t, editor.ModeVisual, m.Mode())
	assert.NotContains(t, m.View(), editor.VisualToggleLabel)

	m.ToggleMode()
	assert.Equal(t, editor.ModeSource, m.Mode())
}

func TestEditorModel_HeaderSlot(t *testing.T) {
	var toggle func()
	m := newTestEditor("<p>a</p>", &recorder{}, func(c *editor.Config) {
		c.Header = func(p editor.HeaderProps) string {
			toggle = p.ToggleMode
			return "HEAD " + p.Mode.String()
		}
	})

	assert.Contains(t, m.View(), "HEAD visual")

	toggle()
	assert.Equal(t, editor.ModeSource, m.Mode())
	assert.Equal(t, "<p>a</p>", m.source.Value())
	assert.Contains(t, m.View(), "HEAD source")
}

func TestEditorModel_BlurAndFocus(t *testing.T) {
	rec := &recorder{}
	m := newTestEditor("<p>a</p>", rec)

	m.Blur()
	m.Blur()
	assert.False(t, m.Focused())
	assert.Equal(t, []string{"<p>a</p>"}, rec.blurs)

	testhelpers.Type(m, "x")
	assert.Equal(t, "<p>a</p>", m.Content())

	m.Focus()
	testhelpers.Type(m, "x")
	assert.Equal(t, "<p>xa</p>", m.Content())
}

func TestEditorModel_SetContentAndTheme(t *testing.T) {
	m := newTestEditor("<p>a</p>", &recorder{})

	m.SetContent("<p>b</p>")
	assert.Equal(t, "<p>b</p>", m.Content())

	press(m, ctrlE())
	m.SetContent("raw $y$")
	assert.Equal(t, "raw $y$", m.source.Value())

	dark, err := models.LookupTheme("dark")
	require.NoError(t, err)
	m.SetTheme(dark)
	assert.Equal(t, "dark", m.Editor().Theme().Name)
	assert.Equal(t, "raw $y$", m.Content())
}

func TestEditorModel_SyncInitialContent(t *testing.T) {
	m := newTestEditor("<p>a</p>", &recorder{})

	m.SyncInitialContent("<p>$x$</p>")

	testhelpers.AssertViewContains(t, m.View(), "x")
	assert.Contains(t, m.Content(), `data-latex="x"`)
}

func TestTeaScheduler(t *testing.T) {
	s := &TeaScheduler{}
	assert.Nil(t, s.Cmd())

	ran := 0
	s.Schedule(func() { ran++ })
	cmd := s.Cmd()
	require.NotNil(t, cmd)
	assert.Equal(t, repopulateMsg{}, cmd())
	assert.Equal(t, 0, ran, "scheduling never runs the task inline")

	assert.Equal(t, 1, s.Run())
	assert.Equal(t, 1, ran)
	assert.Nil(t, s.Cmd())
}
