package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pluqqy/inline-editor/pkg/files"
	"github.com/pluqqy/inline-editor/pkg/models"
)

// CommandContext carries project state shared by the subcommands
type CommandContext struct {
	ProjectPath string
	Settings    *models.Settings
	validated   bool
}

// NewCommandContext creates a context rooted at the working directory
func NewCommandContext() *CommandContext {
	return &CommandContext{ProjectPath: files.ProjectDir}
}

// ValidateProject ensures the project is initialized
func (c *CommandContext) ValidateProject() error {
	if c.validated {
		return nil
	}

	if _, err := os.Stat(c.ProjectPath); os.IsNotExist(err) {
		return fmt.Errorf("no %s directory found. Run 'inline-editor init' first", files.ProjectDir)
	}

	c.validated = true
	return nil
}

// LoadSettingsWithDefault loads settings, falling back to the defaults when
// the file cannot be read
func (c *CommandContext) LoadSettingsWithDefault() *models.Settings {
	if c.Settings != nil {
		return c.Settings
	}

	settings, err := files.ReadSettings()
	if err != nil {
		settings = models.DefaultSettings()
	}

	c.Settings = settings
	return settings
}

// ResolveDocument maps a command argument to a document path. Arguments
// that look like paths are used as given; bare names live in the project's
// documents directory, with ".html" added when no extension is present.
func ResolveDocument(arg string) (string, error) {
	if strings.ContainsAny(arg, `/\`) || files.DocumentExists(arg) {
		return arg, nil
	}

	if err := ValidateDocumentName(arg); err != nil {
		return "", err
	}
	if filepath.Ext(arg) == "" {
		arg += ".html"
	}
	return files.DocumentPath(arg), nil
}

// ReadInput returns the contents of the file named by args[0], or of in when
// no file or "-" is given
func ReadInput(in io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	path, err := ResolveDocument(args[0])
	if err != nil {
		return "", err
	}
	doc, err := files.ReadDocument(path)
	if err != nil {
		return "", err
	}
	return doc.Content, nil
}
