package editor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/inline-editor/pkg/mathcodec"
)

// memSurface stores markup verbatim and counts writes.
type memSurface struct {
	markup string
	writes int
}

func (s *memSurface) SetHTML(markup string) {
	s.markup = markup
	s.writes++
}

func (s *memSurface) HTML() string { return s.markup }

// bracketCodec marks expansion visibly so tests can tell the forms apart.
type bracketCodec struct{}

func (bracketCodec) Expand(text string) string {
	return strings.ReplaceAll(text, "$", "[m]")
}

func (bracketCodec) Collapse(text string) string {
	return strings.ReplaceAll(text, "[m]", "$")
}

type recorder struct {
	changes []string
	blurs   []string
	modes   []Mode
}

func newTestEditor(t *testing.T, initial string) (*Editor, *QueueScheduler, *memSurface, *recorder) {
	t.Helper()
	rec := &recorder{}
	queue := &QueueScheduler{}
	ed := New(Config{
		InitialContent: initial,
		Scheduler:      queue,
		Codec:          bracketCodec{},
		OnChange:       func(c string) { rec.changes = append(rec.changes, c) },
		OnBlur:         func(c string) { rec.blurs = append(rec.blurs, c) },
		OnModeChange:   func(m Mode) { rec.modes = append(rec.modes, m) },
	})
	surface := &memSurface{}
	ed.Attach(surface)
	return ed, queue, surface, rec
}

func TestNew_Defaults(t *testing.T) {
	ed := New(Config{})

	assert.Equal(t, ModeVisual, ed.Mode())
	assert.Equal(t, DefaultContent, ed.Content())
	assert.Equal(t, "#ffffff", ed.Theme().Background)
	assert.True(t, ed.ShowToggle())
	assert.Equal(t, VisualToggleLabel, ed.ToggleLabel())
	assert.Empty(t, ed.Header())
}

func TestNew_ExpandsInitialContent(t *testing.T) {
	ed, _, surface, _ := newTestEditor(t, "<p>$x$</p>")

	assert.Equal(t, "<p>[m]x[m]</p>", surface.markup)
	assert.Equal(t, "<p>[m]x[m]</p>", ed.Content())
}

func TestContent_WithoutSurfaceReturnsLastKnown(t *testing.T) {
	ed := New(Config{InitialContent: "<p>a</p>", Codec: bracketCodec{}})

	assert.Equal(t, "<p>a</p>", ed.Content())
}

func TestSetMode_SameModeIsNoop(t *testing.T) {
	ed, queue, surface, rec := newTestEditor(t, "<p>a</p>")

	ed.SetMode(ModeVisual)

	assert.Equal(t, ModeVisual, ed.Mode())
	assert.Equal(t, "<p>a</p>", ed.Content())
	assert.Empty(t, rec.modes)
	assert.Zero(t, queue.Pending())
	assert.Equal(t, 1, surface.writes)

	ed.SetMode(ModeSource)
	ed.SetMode(ModeSource)
	assert.Equal(t, []Mode{ModeSource}, rec.modes)
}

func TestToSource_CollapsesLiveSurface(t *testing.T) {
	ed, queue, surface, rec := newTestEditor(t, "<p>$x$</p>")

	// The user edits the surface before switching.
	surface.markup = "<p>[m]x[m] more</p>"
	ed.ToggleMode()

	assert.Equal(t, ModeSource, ed.Mode())
	assert.Equal(t, "<p>$x$ more</p>", ed.Content())
	assert.Equal(t, []Mode{ModeSource}, rec.modes)
	assert.Zero(t, queue.Pending())
	assert.Equal(t, SourceToggleLabel, ed.ToggleLabel())
}

func TestToVisual_DefersRepopulation(t *testing.T) {
	ed, queue, surface, rec := newTestEditor(t, "<p>a</p>")
	ed.SetMode(ModeSource)
	ed.SourceInput("<p>$y$</p>")
	writes := surface.writes

	ed.SetMode(ModeVisual)

	assert.Equal(t, ModeVisual, ed.Mode())
	assert.True(t, ed.Pending())
	assert.Equal(t, writes, surface.writes, "surface must not be written before the next turn")
	assert.Equal(t, "<p>[m]y[m]</p>", ed.Content(), "last known content during the deferred window")
	assert.Equal(t, []Mode{ModeSource}, rec.modes, "callback fires only after repopulation")

	require.Equal(t, 1, queue.RunPending())

	assert.False(t, ed.Pending())
	assert.Equal(t, "<p>[m]y[m]</p>", surface.markup)
	assert.Equal(t, []Mode{ModeSource, ModeVisual}, rec.modes)
}

func TestToVisual_StaleRepopulationDropped(t *testing.T) {
	ed, queue, surface, rec := newTestEditor(t, "<p>a</p>")
	ed.SetMode(ModeSource)
	writes := surface.writes

	ed.SetMode(ModeVisual)
	ed.SetMode(ModeSource)
	queue.RunPending()

	assert.Equal(t, ModeSource, ed.Mode())
	assert.Equal(t, writes, surface.writes)
	assert.Equal(t, []Mode{ModeSource, ModeSource}, rec.modes)
	assert.Equal(t, "<p>a</p>", ed.Content())
}

func TestToVisual_SecondSwitchSupersedesFirst(t *testing.T) {
	ed, queue, surface, rec := newTestEditor(t, "<p>a</p>")
	ed.SetMode(ModeSource)

	ed.SetMode(ModeVisual)
	ed.SetMode(ModeSource)
	ed.SourceInput("<p>b</p>")
	ed.SetMode(ModeVisual)
	require.Equal(t, 2, queue.RunPending())

	assert.Equal(t, "<p>b</p>", surface.markup)
	assert.Equal(t, []Mode{ModeSource, ModeSource, ModeVisual}, rec.modes)
}

func TestToggleTwice_PreservesContent(t *testing.T) {
	ed, queue, surface, _ := newTestEditor(t, "<p>$x$ and $$y$$</p>")
	before := ed.Content()

	ed.ToggleMode()
	ed.ToggleMode()
	queue.RunPending()

	assert.Equal(t, before, ed.Content())
	assert.Equal(t, before, surface.markup)
}

func TestSetContent(t *testing.T) {
	t.Run("source mode is exact", func(t *testing.T) {
		ed, _, surface, _ := newTestEditor(t, "<p>a</p>")
		ed.SetMode(ModeSource)
		writes := surface.writes

		ed.SetContent("<p>$raw$ <b>unclosed")

		assert.Equal(t, "<p>$raw$ <b>unclosed", ed.Content())
		assert.Equal(t, ModeSource, ed.Mode())
		assert.Equal(t, writes, surface.writes)
	})

	t.Run("visual mode refreshes surface", func(t *testing.T) {
		ed, _, surface, rec := newTestEditor(t, "<p>a</p>")

		ed.SetContent("<p>b</p>")

		assert.Equal(t, "<p>b</p>", surface.markup)
		assert.Equal(t, "<p>b</p>", ed.Content())
		assert.Empty(t, rec.changes)
	})

	t.Run("during deferred window", func(t *testing.T) {
		ed, queue, surface, rec := newTestEditor(t, "<p>a</p>")
		ed.SetMode(ModeSource)
		ed.SetMode(ModeVisual)

		ed.SetContent("<p>latest</p>")
		queue.RunPending()

		assert.Equal(t, "<p>latest</p>", surface.markup)
		assert.Equal(t, []Mode{ModeSource, ModeVisual}, rec.modes)
	})
}

func TestInput_FiresChange(t *testing.T) {
	ed, _, surface, rec := newTestEditor(t, "<p>a</p>")

	surface.markup = "<p>ab</p>"
	ed.Input()

	assert.Equal(t, []string{"<p>ab</p>"}, rec.changes)

	ed.SetMode(ModeSource)
	ed.Input()
	assert.Len(t, rec.changes, 1, "visual input is ignored in source mode")
}

func TestSourceInput_FiresChangePerKeystroke(t *testing.T) {
	ed, _, _, rec := newTestEditor(t, "")
	ed.SetMode(ModeSource)

	for _, v := range []string{"<", "<p", "<p>"} {
		ed.SourceInput(v)
	}

	assert.Equal(t, []string{"<", "<p", "<p>"}, rec.changes)
	assert.Equal(t, "<p>", ed.Content())
}

func TestSourceInput_IgnoredInVisualMode(t *testing.T) {
	ed, _, _, rec := newTestEditor(t, "<p>a</p>")

	ed.SourceInput("<p>b</p>")

	assert.Empty(t, rec.changes)
	assert.Equal(t, "<p>a</p>", ed.Content())
}

func TestBlur_CarriesAuthoritativeContent(t *testing.T) {
	ed, _, surface, rec := newTestEditor(t, "<p>a</p>")

	surface.markup = "<p>edited</p>"
	ed.Blur()
	ed.SetMode(ModeSource)
	ed.SourceInput("<p>src</p>")
	ed.Blur()

	assert.Equal(t, []string{"<p>edited</p>", "<p>src</p>"}, rec.blurs)
}

func TestAttachDetach(t *testing.T) {
	ed, _, surface, _ := newTestEditor(t, "<p>a</p>")
	surface.markup = "<p>typed</p>"

	ed.Detach()
	ed.Detach()

	assert.Equal(t, "<p>typed</p>", ed.Content())

	next := &memSurface{}
	ed.Attach(next)
	assert.Equal(t, "<p>typed</p>", next.markup)
}

func TestAttach_InSourceModeLeavesSurfaceAlone(t *testing.T) {
	ed, _, surface, _ := newTestEditor(t, "<p>a</p>")
	ed.Detach()
	ed.SetMode(ModeSource)

	ed.Attach(surface)

	assert.Equal(t, 1, surface.writes)
}

func TestSyncInitialContent(t *testing.T) {
	ed, _, surface, rec := newTestEditor(t, "<p>a</p>")

	surface.markup = "<p>ab</p>"
	ed.Input()
	ed.SyncInitialContent("<p>ab</p>")
	assert.Equal(t, "<p>ab</p>", surface.markup, "echo of our own change is ignored")

	ed.SyncInitialContent("<p>$z$</p>")
	assert.Equal(t, "<p>[m]z[m]</p>", surface.markup)

	ed.SetMode(ModeSource)
	ed.SyncInitialContent("<p>$q$</p>")
	assert.Equal(t, "<p>$q$</p>", ed.Content())
	assert.Len(t, rec.changes, 1)
}

func TestHeader(t *testing.T) {
	var props HeaderProps
	ed := New(Config{
		SuppressToggle: true,
		Header: func(p HeaderProps) string {
			props = p
			return "header:" + p.Mode.String()
		},
	})

	assert.False(t, ed.ShowToggle())
	assert.Equal(t, "header:visual", ed.Header())

	props.ToggleMode()
	assert.Equal(t, ModeSource, ed.Mode())
	assert.Equal(t, "header:source", ed.Header())

	props.SetMode(ModeVisual)
	assert.Equal(t, ModeVisual, ed.Mode())
}

func TestEndToEnd_WithMathCodec(t *testing.T) {
	queue := &QueueScheduler{}
	ed := New(Config{
		InitialContent: "<p>Hello $x^2$ world</p>",
		Scheduler:      queue,
		Codec:          mathcodec.New(),
	})
	surface := &memSurface{}
	ed.Attach(surface)

	assert.True(t, strings.HasPrefix(surface.markup,
		`<p>Hello <span class="math-inline" data-latex="x^2">`))
	assert.True(t, strings.HasSuffix(surface.markup, `</span> world</p>`))

	ed.SetMode(ModeSource)
	assert.Equal(t, "<p>Hello $x^2$ world</p>", ed.Content())
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"visual", ModeVisual, false},
		{"Source", ModeSource, false},
		{"html", ModeSource, false},
		{"rich", ModeVisual, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, ModeSource, ModeVisual.Other())
	assert.Equal(t, ModeVisual, ModeSource.Other())
}
