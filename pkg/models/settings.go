package models

// Settings represents the application configuration
type Settings struct {
	Editor EditorSettings `yaml:"editor"`
	UI     UISettings     `yaml:"ui"`
}

// EditorSettings controls the editing widget
type EditorSettings struct {
	InitialContent string `yaml:"initial_content,omitempty"`
	SuppressToggle bool   `yaml:"suppress_toggle"`
	WrapWidth      int    `yaml:"wrap_width"`
	StartMode      string `yaml:"start_mode,omitempty"` // "visual" or "source"
}

// UISettings controls presentation
type UISettings struct {
	Theme  string          `yaml:"theme"`
	Colors *ColorOverrides `yaml:"colors,omitempty"`
}

// ColorOverrides replace individual colors of the selected theme
type ColorOverrides struct {
	Background    string `yaml:"background,omitempty"`
	Foreground    string `yaml:"foreground,omitempty"`
	Border        string `yaml:"border,omitempty"`
	AppBackground string `yaml:"app_background,omitempty"`
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		Editor: EditorSettings{
			WrapWidth: 80,
		},
		UI: UISettings{
			Theme: DefaultThemeName,
		},
	}
}

// ResolveTheme returns the configured theme with overrides applied. An
// unknown theme name falls back to the default theme.
func (s *Settings) ResolveTheme() Theme {
	theme, err := LookupTheme(s.UI.Theme)
	if err != nil {
		theme = DefaultTheme()
	}
	if c := s.UI.Colors; c != nil {
		if c.Background != "" {
			theme.Background = c.Background
		}
		if c.Foreground != "" {
			theme.Foreground = c.Foreground
		}
		if c.Border != "" {
			theme.Border = c.Border
		}
		if c.AppBackground != "" {
			theme.AppBackground = c.AppBackground
		}
	}
	return theme
}
