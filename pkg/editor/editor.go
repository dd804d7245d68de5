// Package editor keeps a document and its edit mode consistent across a
// visual surface and a source text buffer.
//
// An Editor owns the {mode, content} pair. In visual mode the attached
// Surface holds the live document; in source mode a plain string does.
// Switching to source collapses rendered math back to notation, switching to
// visual expands it again and repopulates the surface one scheduler turn
// later.
package editor

import (
	"log/slog"

	"github.com/pluqqy/inline-editor/internal/logging"
	"github.com/pluqqy/inline-editor/pkg/mathcodec"
	"github.com/pluqqy/inline-editor/pkg/models"
)

// DefaultContent is returned when the host never supplied any content.
const DefaultContent = "<p>Start typing here...</p>"

// Toggle labels and the source placeholder.
const (
	VisualToggleLabel = "< > HTML"
	SourceToggleLabel = "Visual"
	SourcePlaceholder = "Enter HTML here..."
)

// Handle is the imperative contract the editor exposes to its host.
type Handle interface {
	Content() string
	SetContent(value string)
	Mode() Mode
	SetMode(target Mode)
	ToggleMode()
}

// Surface is a live rendered document. It behaves like an element's
// innerHTML: SetHTML parses forgivingly and HTML re-serializes, so the value
// read back may be normalized.
type Surface interface {
	SetHTML(markup string)
	HTML() string
}

// Codec converts between source notation and rendered markup.
type Codec interface {
	Expand(text string) string
	Collapse(text string) string
}

// HeaderProps is handed to a host-supplied header renderer.
type HeaderProps struct {
	Mode       Mode
	ToggleMode func()
	SetMode    func(Mode)
}

// Config configures an Editor. Every field is optional.
type Config struct {
	// InitialContent seeds the document. Empty means DefaultContent.
	InitialContent string
	Theme          models.Theme
	// SuppressToggle hides the built-in toggle so the host can draw its own.
	SuppressToggle bool
	Header         func(HeaderProps) string

	OnChange     func(content string)
	OnBlur       func(content string)
	OnModeChange func(mode Mode)

	Scheduler Scheduler
	Codec     Codec
	Opener    Opener
	Logger    *slog.Logger
}

// Editor is the mode and content synchronizer. It is not safe for concurrent
// use; all calls are expected on the host's event loop.
type Editor struct {
	cfg       Config
	codec     Codec
	scheduler Scheduler
	opener    Opener
	logger    *slog.Logger

	mode    Mode
	surface Surface

	// source is the raw buffer while in source mode.
	source string
	// visual is the last known visual markup, used whenever the surface is
	// absent or about to be repopulated.
	visual string
	// emitted is the last content reported to or received from the host.
	emitted string

	epoch   uint64
	pending bool
}

var _ Handle = (*Editor)(nil)

// New creates an editor in visual mode with the expanded initial content.
func New(cfg Config) *Editor {
	e := &Editor{
		cfg:       cfg,
		codec:     cfg.Codec,
		scheduler: cfg.Scheduler,
		opener:    cfg.Opener,
		logger:    cfg.Logger,
		mode:      ModeVisual,
	}
	if e.codec == nil {
		e.codec = mathcodec.New(mathcodec.WithLogger(cfg.Logger))
	}
	if e.scheduler == nil {
		e.scheduler = &QueueScheduler{}
	}
	if e.opener == nil {
		e.opener = NopOpener{}
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	e.cfg.Theme = cfg.Theme.WithDefaults()

	initial := cfg.InitialContent
	if initial == "" {
		initial = DefaultContent
	}
	e.emitted = initial
	e.visual = e.codec.Expand(initial)
	return e
}

// Scheduler returns the scheduler deferred repopulation runs on.
func (e *Editor) Scheduler() Scheduler { return e.scheduler }

// Theme returns the configured colors.
func (e *Editor) Theme() models.Theme { return e.cfg.Theme }

// SetTheme replaces the presentation colors. Content and mode are untouched.
func (e *Editor) SetTheme(t models.Theme) { e.cfg.Theme = t.WithDefaults() }

// Attach mounts the visual surface. In visual mode it is populated at once.
func (e *Editor) Attach(s Surface) {
	e.surface = s
	if e.mode == ModeVisual && !e.pending {
		s.SetHTML(e.visual)
	}
}

// Detach unmounts the visual surface, keeping its markup as the last known
// visual content.
func (e *Editor) Detach() {
	if e.surface == nil {
		return
	}
	if e.mode == ModeVisual && !e.pending {
		e.visual = e.surface.HTML()
	}
	e.surface = nil
}

// Mode returns the active mode.
func (e *Editor) Mode() Mode { return e.mode }

// Content returns the authoritative content: the source buffer in source
// mode, otherwise the live surface markup or, when no surface is ready, the
// last known visual markup.
func (e *Editor) Content() string {
	if e.mode == ModeSource {
		return e.source
	}
	return e.liveVisual()
}

func (e *Editor) liveVisual() string {
	if e.surface != nil && !e.pending {
		return e.surface.HTML()
	}
	return e.visual
}

// SetContent overwrites the content without changing mode. No transform is
// applied; in visual mode the surface shows value immediately.
func (e *Editor) SetContent(value string) {
	e.emitted = value
	if e.mode == ModeSource {
		e.source = value
		return
	}
	e.visual = value
	if e.surface != nil {
		e.surface.SetHTML(value)
	}
}

// SyncInitialContent re-seeds the editor when the host's initial content
// changes to something other than what the editor last reported. In visual
// mode the new value is expanded.
func (e *Editor) SyncInitialContent(value string) {
	if value == e.emitted {
		return
	}
	e.emitted = value
	if e.mode == ModeSource {
		e.source = value
		return
	}
	e.visual = e.codec.Expand(value)
	if e.surface != nil && !e.pending {
		e.surface.SetHTML(e.visual)
	}
}

// SetMode switches to target. Switching to the active mode does nothing.
func (e *Editor) SetMode(target Mode) {
	if target == e.mode {
		return
	}
	if target == ModeSource {
		e.toSource()
		return
	}
	e.toVisual()
}

// ToggleMode switches to the other mode.
func (e *Editor) ToggleMode() {
	e.SetMode(e.mode.Other())
}

func (e *Editor) toSource() {
	collapsed := e.codec.Collapse(e.liveVisual())

	e.source = collapsed
	e.emitted = collapsed
	e.mode = ModeSource
	e.pending = false
	e.epoch++

	e.logger.Debug("mode changed", "mode", ModeSource.String(), "epoch", e.epoch)
	e.notifyMode(ModeSource)
}

func (e *Editor) toVisual() {
	e.visual = e.codec.Expand(e.source)
	e.mode = ModeVisual
	e.pending = true
	e.epoch++

	epoch := e.epoch
	e.scheduler.Schedule(func() { e.repopulate(epoch) })
}

// repopulate is the deferred half of entering visual mode.
func (e *Editor) repopulate(epoch uint64) {
	if epoch != e.epoch || e.mode != ModeVisual {
		e.logger.Debug("stale repopulation dropped", "scheduled", epoch, "current", e.epoch)
		return
	}
	e.pending = false
	if e.surface != nil {
		e.surface.SetHTML(e.visual)
	}

	e.logger.Debug("mode changed", "mode", ModeVisual.String(), "epoch", epoch)
	e.notifyMode(ModeVisual)
}

// Pending reports whether visual repopulation is still waiting for its turn.
func (e *Editor) Pending() bool { return e.pending }

// Input records a user edit made on the visual surface.
func (e *Editor) Input() {
	if e.mode != ModeVisual || e.surface == nil || e.pending {
		return
	}
	value := e.surface.HTML()
	e.visual = value
	e.emitted = value
	if e.cfg.OnChange != nil {
		e.cfg.OnChange(value)
	}
}

// SourceInput records a keystroke in the source buffer.
func (e *Editor) SourceInput(value string) {
	if e.mode != ModeSource {
		return
	}
	e.source = value
	e.emitted = value
	if e.cfg.OnChange != nil {
		e.cfg.OnChange(value)
	}
}

// Blur reports that the active surface lost focus.
func (e *Editor) Blur() {
	if e.cfg.OnBlur != nil {
		e.cfg.OnBlur(e.Content())
	}
}

func (e *Editor) notifyMode(m Mode) {
	if e.cfg.OnModeChange != nil {
		e.cfg.OnModeChange(m)
	}
}

// ShowToggle reports whether the built-in toggle control is drawn.
func (e *Editor) ShowToggle() bool { return !e.cfg.SuppressToggle }

// ToggleLabel is the caption of the built-in toggle for the active mode.
func (e *Editor) ToggleLabel() string {
	if e.mode == ModeSource {
		return SourceToggleLabel
	}
	return VisualToggleLabel
}

// Header renders the host header slot, or "" when none is configured.
func (e *Editor) Header() string {
	if e.cfg.Header == nil {
		return ""
	}
	return e.cfg.Header(HeaderProps{
		Mode:       e.mode,
		ToggleMode: e.ToggleMode,
		SetMode:    e.SetMode,
	})
}
