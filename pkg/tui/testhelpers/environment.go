package testhelpers

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/pluqqy/inline-editor/pkg/files"
	"github.com/pluqqy/inline-editor/pkg/models"
)

// TestEnvironment is a temporary project directory for TUI and CLI tests.
type TestEnvironment struct {
	t          *testing.T
	TempDir    string
	OriginalWd string
}

// NewTestEnvironment creates a temporary directory and restores the working
// directory when the test ends.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}

	env := &TestEnvironment{
		t:          t,
		TempDir:    t.TempDir(),
		OriginalWd: originalWd,
	}
	t.Cleanup(func() {
		os.Chdir(originalWd)
	})
	return env
}

// ChangeToTempDir changes the working directory to the temp directory
func (e *TestEnvironment) ChangeToTempDir() {
	e.t.Helper()
	if err := os.Chdir(e.TempDir); err != nil {
		e.t.Fatalf("Failed to change to temp dir: %v", err)
	}
}

// InitProjectStructure creates the project directories inside TempDir.
func (e *TestEnvironment) InitProjectStructure() {
	e.t.Helper()
	dirs := []string{
		filepath.Join(e.TempDir, files.ProjectDir),
		filepath.Join(e.TempDir, files.ProjectDir, files.DocumentsDir),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			e.t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}
}

// CreateDocument writes a document relative to TempDir and returns its
// absolute path.
func (e *TestEnvironment) CreateDocument(name, content string) string {
	e.t.Helper()

	path := filepath.Join(e.TempDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.t.Fatalf("Failed to create document directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.t.Fatalf("Failed to write document: %v", err)
	}
	return path
}

// ReadFile returns the content of a file relative to TempDir.
func (e *TestEnvironment) ReadFile(name string) string {
	e.t.Helper()

	data, err := os.ReadFile(filepath.Join(e.TempDir, name))
	if err != nil {
		e.t.Fatalf("Failed to read %s: %v", name, err)
	}
	return string(data)
}

// CreateSettings writes a settings file with custom configuration
func (e *TestEnvironment) CreateSettings(settings *models.Settings) {
	e.t.Helper()

	settingsPath := filepath.Join(e.TempDir, files.SettingsPath())
	if err := os.MkdirAll(filepath.Dir(settingsPath), 0755); err != nil {
		e.t.Fatalf("Failed to create settings directory: %v", err)
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		e.t.Fatalf("Failed to marshal settings: %v", err)
	}
	if err := os.WriteFile(settingsPath, data, 0644); err != nil {
		e.t.Fatalf("Failed to write settings file: %v", err)
	}
}

// SetupTestEnvironment creates an initialized project and changes into it.
func SetupTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	env := NewTestEnvironment(t)
	env.InitProjectStructure()
	env.ChangeToTempDir()
	return env
}
