package editor

import "strings"

// Element is the view of a clicked node needed for link handling. Parent
// returns nil at the editable root.
type Element interface {
	TagName() string
	Attr(name string) string
	Parent() Element
}

// ClickEvent is a click on the visual surface. Modifier is the platform
// "open in new context" key (ctrl, or cmd on macOS).
type ClickEvent struct {
	Target   Element
	Modifier bool
}

// Opener opens a link target outside the editor, with no handle back to it.
type Opener interface {
	Open(url string) error
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(url string) error

// Open calls f.
func (f OpenerFunc) Open(url string) error { return f(url) }

// NopOpener ignores every request.
type NopOpener struct{}

// Open implements Opener.
func (NopOpener) Open(string) error { return nil }

// Click applies the link convention for the visual surface. A plain click
// never navigates. An image inside a link opens the link. A link clicked with
// the modifier held opens its target. It reports whether a link was opened.
func (e *Editor) Click(ev ClickEvent) bool {
	if e.mode != ModeVisual || ev.Target == nil {
		return false
	}
	target := ev.Target

	if isTag(target, "img") {
		for p := target.Parent(); p != nil; p = p.Parent() {
			if isTag(p, "a") {
				return e.open(p)
			}
		}
	}

	if isTag(target, "a") && ev.Modifier {
		return e.open(target)
	}
	return false
}

func (e *Editor) open(link Element) bool {
	href := strings.TrimSpace(link.Attr("href"))
	if href == "" {
		return false
	}
	if err := e.opener.Open(href); err != nil {
		e.logger.Warn("failed to open link", "href", href, "err", err)
	}
	return true
}

func isTag(el Element, name string) bool {
	return strings.EqualFold(el.TagName(), name)
}
