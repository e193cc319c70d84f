package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Validator provides methods for validating CLI inputs
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateQuery rejects queries that are empty once trimmed
func (v *Validator) ValidateQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("search query cannot be empty")
	}
	return nil
}

// ValidateFile checks if a file path is valid and exists
func (v *Validator) ValidateFile(path string) error {
	if path == "" {
		return fmt.Errorf("file path cannot be empty")
	}

	stat, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("file not found: %w", err)
	}

	if stat.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}

	return nil
}

// ValidateCatalogPath resolves a catalog path and checks it names an
// existing JSON file. An empty path selects the built-in catalog.
func (v *Validator) ValidateCatalogPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	resolved, err := v.ResolvePath(path)
	if err != nil {
		return "", err
	}

	if err := v.ValidateFile(resolved); err != nil {
		return "", fmt.Errorf("invalid catalog: %w", err)
	}

	if ext := strings.ToLower(filepath.Ext(resolved)); ext != ".json" {
		return "", fmt.Errorf("invalid catalog: expected a .json file, got %q", filepath.Base(resolved))
	}

	return resolved, nil
}

// ResolvePath resolves a path to an absolute path
func (v *Validator) ResolvePath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if path == "." {
		return os.Getwd()
	}

	if filepath.IsAbs(path) {
		return path, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	return filepath.Join(cwd, path), nil
}
