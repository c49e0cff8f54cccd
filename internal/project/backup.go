package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/BoardCut/internal/model"
)

const backupVersion = "1.0.0"

// BackupData is the top-level structure for import/export of all user data.
type BackupData struct {
	Version   string              `json:"version"`
	CreatedAt string              `json:"created_at"`
	Inventory model.Inventory     `json:"inventory"`
	Templates model.TemplateStore `json:"templates"`
}

// ExportAllData writes the inventory and templates to a single JSON file.
func ExportAllData(exportPath string, inv model.Inventory, templates model.TemplateStore) error {
	backup := BackupData{
		Version:   backupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Inventory: inv,
		Templates: templates,
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup data: %w", err)
	}
	if err := writeJSONFile(exportPath, data); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller decides whether to replace or merge.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if backup.Inventory.Boards == nil {
		backup.Inventory.Boards = []model.BoardPreset{}
	}
	if backup.Templates.Templates == nil {
		backup.Templates.Templates = []model.ProjectTemplate{}
	}
	return backup, nil
}

// RestoreBackup merges a backup into the stores under dataDir and saves them.
func RestoreBackup(dataDir string, backup BackupData) error {
	invPath := InventoryPath(dataDir)
	inv, err := LoadInventory(invPath)
	if err != nil {
		return err
	}
	inv = mergeInventory(inv, backup.Inventory)
	if err := SaveInventory(invPath, inv); err != nil {
		return err
	}

	tplPath := TemplatesPath(dataDir)
	store, err := LoadTemplates(tplPath)
	if err != nil {
		return err
	}
	store.Merge(backup.Templates)
	return SaveTemplates(tplPath, store)
}
