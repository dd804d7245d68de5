package editor

import (
	"fmt"
	"strings"
)

// Mode is the active editing surface.
type Mode int

const (
	// ModeVisual edits through the rendered document.
	ModeVisual Mode = iota
	// ModeSource edits the raw markup text.
	ModeSource
)

func (m Mode) String() string {
	if m == ModeSource {
		return "source"
	}
	return "visual"
}

// Other returns the mode a toggle switches to.
func (m Mode) Other() Mode {
	if m == ModeSource {
		return ModeVisual
	}
	return ModeSource
}

// ParseMode accepts "visual" and "source". "html" is an alias for source.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "visual":
		return ModeVisual, nil
	case "source", "html":
		return ModeSource, nil
	}
	return ModeVisual, fmt.Errorf("invalid mode %q: must be visual or source", s)
}
