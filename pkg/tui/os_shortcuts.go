package tui

import (
	"runtime"
	"strings"
)

// OSType represents the operating system type
type OSType int

const (
	OSMac OSType = iota
	OSLinux
	OSWindows
	OSUnknown
)

// goos is swapped in tests.
var goos = runtime.GOOS

// GetOS returns the current operating system type
func GetOS() OSType {
	switch goos {
	case "darwin":
		return OSMac
	case "linux":
		return OSLinux
	case "windows":
		return OSWindows
	default:
		return OSUnknown
	}
}

// ShortcutKey represents a keyboard shortcut with OS-specific variations
type ShortcutKey struct {
	Mac     string
	Linux   string
	Windows string
	Default string // Fallback if OS-specific not defined
}

// Get returns the appropriate shortcut for the current OS
func (s ShortcutKey) Get() string {
	switch GetOS() {
	case OSMac:
		if s.Mac != "" {
			return s.Mac
		}
	case OSLinux:
		if s.Linux != "" {
			return s.Linux
		}
	case OSWindows:
		if s.Windows != "" {
			return s.Windows
		}
	}
	return s.Default
}

// Matches reports whether key triggers the shortcut. The default binding
// always works in addition to the platform one.
func (s ShortcutKey) Matches(key string) bool {
	return key == s.Get() || key == s.Default
}

// GetWithWarning returns the shortcut and a warning if there are known issues
func (s ShortcutKey) GetWithWarning() (shortcut string, warning string) {
	shortcut = s.Get()

	switch GetOS() {
	case OSLinux:
		switch shortcut {
		case "^s", "ctrl+s":
			warning = "(may need: stty -ixon)"
		}
	case OSMac:
		switch shortcut {
		case "^y", "ctrl+y":
			warning = "(may need: stty dsusp undef)"
		}
	}
	return shortcut, warning
}

// Shortcuts holds every binding of the editor and its host.
var Shortcuts = struct {
	Save        ShortcutKey
	Copy        ShortcutKey
	ToggleMode  ShortcutKey
	CycleTheme  ShortcutKey
	OpenLink    ShortcutKey
	ActivateImg ShortcutKey
	Quit        ShortcutKey
}{
	Save: ShortcutKey{
		Mac:     "ctrl+s",
		Linux:   "alt+s", // Avoid Ctrl+S terminal conflict (XOFF)
		Windows: "alt+s",
		Default: "ctrl+s",
	},
	Copy: ShortcutKey{
		Default: "ctrl+y",
	},
	ToggleMode: ShortcutKey{
		Default: "ctrl+e",
	},
	CycleTheme: ShortcutKey{
		Default: "ctrl+t",
	},
	// A modified click on a link. Terminals report cmd as alt on macOS.
	OpenLink: ShortcutKey{
		Mac:     "alt+o",
		Default: "ctrl+o",
	},
	ActivateImg: ShortcutKey{
		Default: "enter",
	},
	Quit: ShortcutKey{
		Default: "ctrl+c",
	},
}

// ModifierLabel names the key held for a modified click on this platform.
func ModifierLabel() string {
	if GetOS() == OSMac {
		return "cmd"
	}
	return "ctrl"
}

// FormatShortcutForHelp formats a shortcut for display in help text
func FormatShortcutForHelp(shortcut string) string {
	if GetOS() == OSMac {
		shortcut = strings.ReplaceAll(shortcut, "alt+", "⌥")
		shortcut = strings.ReplaceAll(shortcut, "ctrl+", "^")
		shortcut = strings.ReplaceAll(shortcut, "cmd+", "⌘")
	} else {
		shortcut = strings.ReplaceAll(shortcut, "alt+", "M-")
		shortcut = strings.ReplaceAll(shortcut, "ctrl+", "^")
	}
	return shortcut
}

// GetOSName returns a human-readable OS name
func GetOSName() string {
	switch GetOS() {
	case OSMac:
		return "macOS"
	case OSLinux:
		return "Linux"
	case OSWindows:
		return "Windows"
	default:
		return "Unknown"
	}
}
