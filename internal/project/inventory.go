package project

import (
	"encoding/json"
	"os"

	"github.com/piwi3910/BoardCut/internal/model"
)

// SaveInventory writes the inventory to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveInventory(path string, inv model.Inventory) error {
	return writeJSON(path, inv)
}

// LoadInventory reads the inventory from the specified JSON file.
// If the file does not exist, it returns the default inventory and saves it.
func LoadInventory(path string) (model.Inventory, error) {
	var inv model.Inventory
	found, err := readJSON(path, &inv)
	if err != nil {
		return model.Inventory{}, err
	}
	if !found {
		inv = model.DefaultInventory()
		if err := SaveInventory(path, inv); err != nil {
			return inv, err
		}
		return inv, nil
	}
	if inv.Boards == nil {
		inv.Boards = []model.BoardPreset{}
	}
	return inv, nil
}

// ImportInventory merges the presets in path into existing. Presets whose ID
// is already present are skipped.
func ImportInventory(path string, existing model.Inventory) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, err
	}
	var imported model.Inventory
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, err
	}
	return mergeInventory(existing, imported), nil
}

func mergeInventory(existing, imported model.Inventory) model.Inventory {
	ids := make(map[string]bool, len(existing.Boards))
	for _, b := range existing.Boards {
		ids[b.ID] = true
	}
	for _, b := range imported.Boards {
		if !ids[b.ID] {
			existing.Boards = append(existing.Boards, b)
			ids[b.ID] = true
		}
	}
	return existing
}
