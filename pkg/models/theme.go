package models

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Theme holds the presentation colors of the editor. Colors are free-form
// strings; hex values are the common case.
type Theme struct {
	Name          string `yaml:"name" json:"name"`
	Background    string `yaml:"background" json:"background"`
	Foreground    string `yaml:"foreground" json:"foreground"`
	Border        string `yaml:"border" json:"border"`
	AppBackground string `yaml:"app_background" json:"app_background"`
}

var builtinThemes = []Theme{
	{Name: "light", Background: "#ffffff", Foreground: "#000000", Border: "#cccccc", AppBackground: "#f0f0f0"},
	{Name: "dark", Background: "#1e1e1e", Foreground: "#e0e0e0", Border: "#444444", AppBackground: "#0d0d0d"},
	{Name: "blue", Background: "#1a2332", Foreground: "#c5d4e8", Border: "#2d3e52", AppBackground: "#0f1823"},
	{Name: "warm", Background: "#2b2520", Foreground: "#e8dcc8", Border: "#4a3f35", AppBackground: "#1a1512"},
}

// DefaultThemeName is the theme used when none is configured.
const DefaultThemeName = "light"

// BuiltinThemes returns the built-in themes in cycling order.
func BuiltinThemes() []Theme {
	out := make([]Theme, len(builtinThemes))
	copy(out, builtinThemes)
	return out
}

// ThemeNames lists the built-in theme names.
func ThemeNames() []string {
	names := make([]string, len(builtinThemes))
	for i, t := range builtinThemes {
		names[i] = t.Name
	}
	return names
}

// DefaultTheme returns the light theme.
func DefaultTheme() Theme {
	return builtinThemes[0]
}

// LookupTheme finds a built-in theme by name, case-insensitively.
func LookupTheme(name string) (Theme, error) {
	for _, t := range builtinThemes {
		if strings.EqualFold(t.Name, strings.TrimSpace(name)) {
			return t, nil
		}
	}
	return Theme{}, fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(ThemeNames(), ", "))
}

// NextTheme returns the built-in theme after name, wrapping around. Unknown
// names start the cycle over.
func NextTheme(name string) Theme {
	for i, t := range builtinThemes {
		if t.Name == name {
			return builtinThemes[(i+1)%len(builtinThemes)]
		}
	}
	return builtinThemes[0]
}

// WithDefaults fills empty colors from the light theme.
func (t Theme) WithDefaults() Theme {
	d := DefaultTheme()
	if t.Background == "" {
		t.Background = d.Background
	}
	if t.Foreground == "" {
		t.Foreground = d.Foreground
	}
	if t.Border == "" {
		t.Border = d.Border
	}
	if t.AppBackground == "" {
		t.AppBackground = d.AppBackground
	}
	return t
}

// ToolbarBackground derives the toolbar shade from the background: pure
// white and black map to fixed greys, anything else is mixed 10% toward white
// (dark text) or black (light text). Unparseable colors are returned as is.
func (t Theme) ToolbarBackground() string {
	switch strings.ToLower(t.Background) {
	case "#ffffff":
		return "#f5f5f5"
	case "#000000":
		return "#1a1a1a"
	}

	bg, err := colorful.Hex(t.Background)
	if err != nil {
		return t.Background
	}
	toward := colorful.Color{R: 0, G: 0, B: 0}
	if strings.ToLower(t.Foreground) == "#000000" {
		toward = colorful.Color{R: 1, G: 1, B: 1}
	}
	return bg.BlendRgb(toward, 0.1).Clamped().Hex()
}
