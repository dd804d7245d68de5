package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pluqqy/inline-editor/pkg/models"
)

const (
	ProjectDir      = ".inline-editor"
	DocumentsDir    = "documents"
	SettingsFile    = "settings.yaml"
	DefaultDocument = "index.html"
)

func InitProjectStructure() error {
	dirs := []string{
		ProjectDir,
		filepath.Join(ProjectDir, DocumentsDir),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// SettingsPath is the location of the settings file relative to the working
// directory.
func SettingsPath() string {
	return filepath.Join(ProjectDir, SettingsFile)
}

// ReadSettings loads the project settings. A missing file yields the
// defaults; fields absent from the file keep their default values.
func ReadSettings() (*models.Settings, error) {
	settings := models.DefaultSettings()

	content, err := os.ReadFile(SettingsPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	if err := yaml.Unmarshal(content, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings YAML: %w", err)
	}

	return settings, nil
}

func WriteSettings(settings *models.Settings) error {
	if err := os.MkdirAll(ProjectDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory for settings: %w", err)
	}

	content, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings to YAML: %w", err)
	}

	if err := os.WriteFile(SettingsPath(), content, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	return nil
}

// DocumentPath places a document name inside the project's documents
// directory.
func DocumentPath(name string) string {
	return filepath.Join(ProjectDir, DocumentsDir, name)
}

func ReadDocument(path string) (*models.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat document %s: %w", path, err)
	}

	return &models.Document{
		Path:     path,
		Content:  string(content),
		Modified: info.ModTime(),
	}, nil
}

func WriteDocument(path string, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory for document: %w", err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write document %s: %w", path, err)
	}

	return nil
}

// DocumentExists reports whether path names an existing regular file.
func DocumentExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
