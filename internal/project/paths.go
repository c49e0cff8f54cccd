package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File names inside the data directory.
const (
	inventoryFile = "inventory.json"
	templatesFile = "templates.json"
)

// ProjectExt is the file extension for saved projects.
const ProjectExt = ".boardcut"

// DefaultDataDir returns ~/.boardcut.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".boardcut"), nil
}

// InventoryPath returns the inventory file inside dataDir.
func InventoryPath(dataDir string) string {
	return filepath.Join(dataDir, inventoryFile)
}

// TemplatesPath returns the template store file inside dataDir.
func TemplatesPath(dataDir string) string {
	return filepath.Join(dataDir, templatesFile)
}

// writeJSONFile creates parent directories and writes data.
func writeJSONFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// writeJSON marshals v indented and writes it to path.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return writeJSONFile(path, data)
}

// readJSON decodes path into dst. A missing file leaves dst untouched and
// reports found=false without an error.
func readJSON(path string, dst any) (found bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return true, fmt.Errorf("parse %s: %w", path, err)
	}
	return true, nil
}
