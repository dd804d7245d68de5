package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/inline-editor/pkg/editor"
)

func TestBrowserCommand(t *testing.T) {
	tests := []struct {
		platform string
		want     []string
	}{
		{"darwin", []string{"open", "https://x.test"}},
		{"linux", []string{"xdg-open", "https://x.test"}},
		{"windows", []string{"rundll32", "url.dll,FileProtocolHandler", "https://x.test"}},
	}

	for _, tt := range tests {
		t.Run(tt.platform, func(t *testing.T) {
			cmd, err := browserCommand(tt.platform, "https://x.test")
			require.NoError(t, err)
			assert.Equal(t, tt.want, cmd.Args)
		})
	}
}

func TestBrowserOpener_UnsupportedPlatform(t *testing.T) {
	withOS(t, "plan9")

	err := BrowserOpener{}.Open("https://x.test")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unsupported platform"))
}

func TestRenderHeader(t *testing.T) {
	got := renderHeader(30, "doc.html", editor.ModeVisual, false)
	assert.Equal(t, 30, len([]rune(got)))
	assert.True(t, strings.HasPrefix(got, "doc.html"))
	assert.True(t, strings.HasSuffix(got, "VISUAL"))

	modified := renderHeader(30, "doc.html", editor.ModeVisual, true)
	assert.Contains(t, modified, "doc.html ●")
}
