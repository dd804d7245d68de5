package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pluqqy/inline-editor/pkg/models"
)

// ValidateFilePath checks that path exists and is a regular file
func ValidateFilePath(path string) error {
	if !filepath.IsAbs(path) {
		path, _ = filepath.Abs(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("path does not exist: %s", path)
		}
		return fmt.Errorf("error accessing path: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, expected file: %s", path)
	}

	return nil
}

// ValidateOutputFormat validates the --format flag
func ValidateOutputFormat(format string) error {
	if Contains([]string{"text", "json", "yaml"}, format) {
		return nil
	}
	return fmt.Errorf("invalid output format: %s (must be: text, json, or yaml)", format)
}

// ValidateThemeName accepts the built-in theme names, ignoring case
func ValidateThemeName(name string) error {
	_, err := models.LookupTheme(name)
	return err
}

// ValidateDocumentName rejects names that would escape the documents directory
func ValidateDocumentName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("document name cannot be empty")
	}

	for _, char := range []string{"/", "\\", "..", "~", "$", "`"} {
		if strings.Contains(name, char) {
			return fmt.Errorf("document name contains invalid character: %s", char)
		}
	}

	return nil
}

// ValidateWidth requires a positive column count
func ValidateWidth(width int) error {
	if width <= 0 {
		return fmt.Errorf("width must be positive, got %d", width)
	}
	return nil
}

// Contains checks if a string is in a slice
func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
