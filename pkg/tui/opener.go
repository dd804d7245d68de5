package tui

import (
	"fmt"
	"os/exec"

	"github.com/pluqqy/inline-editor/pkg/editor"
)

// BrowserOpener opens links in a new browser context with the platform's
// launcher. The launched process is not waited for.
type BrowserOpener struct{}

var _ editor.Opener = BrowserOpener{}

// Open starts the launcher for url.
func (BrowserOpener) Open(url string) error {
	cmd, err := browserCommand(goos, url)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return nil
}

func browserCommand(platform, url string) (*exec.Cmd, error) {
	switch platform {
	case "darwin":
		return exec.Command("open", url), nil
	case "linux":
		return exec.Command("xdg-open", url), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", platform)
	}
}
