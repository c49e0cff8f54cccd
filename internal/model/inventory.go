package model

import (
	"github.com/google/uuid"

	"github.com/piwi3910/BoardCut/internal/units"
)

// BoardPreset represents a reusable stock board definition, such as a lumber
// yard length the user buys regularly.
type BoardPreset struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Length        float64 `json:"length"`
	Unit          string  `json:"unit"`
	Material      string  `json:"material"`
	PricePerBoard float64 `json:"price_per_board"` // 0 when unknown
}

// NewBoardPreset creates a new BoardPreset with a generated ID.
func NewBoardPreset(name string, length float64, unit, material string) BoardPreset {
	return BoardPreset{
		ID:       uuid.New().String()[:8],
		Name:     name,
		Length:   length,
		Unit:     unit,
		Material: material,
	}
}

// NewBoardPresetWithPrice creates a BoardPreset carrying a unit price.
func NewBoardPresetWithPrice(name string, length float64, unit, material string, price float64) BoardPreset {
	bp := NewBoardPreset(name, length, unit, material)
	bp.PricePerBoard = price
	return bp
}

// LengthInches returns the preset length in inches.
func (bp BoardPreset) LengthInches() (float64, error) {
	return units.ToInches(bp.Length, bp.Unit)
}

// ToBoardSpec converts a preset into stock with the given quantity.
func (bp BoardPreset) ToBoardSpec(qty int) BoardSpec {
	return NewBoardSpec(bp.Name, bp.Length, bp.Unit, qty)
}

// Inventory holds the user's saved board presets.
type Inventory struct {
	Boards []BoardPreset `json:"boards"`
}

// DefaultInventory returns an inventory populated with common lumber lengths.
func DefaultInventory() Inventory {
	return Inventory{
		Boards: []BoardPreset{
			NewBoardPreset("2x4 8ft", 8, "ft", "SPF"),
			NewBoardPreset("2x4 10ft", 10, "ft", "SPF"),
			NewBoardPreset("2x4 12ft", 12, "ft", "SPF"),
			NewBoardPreset("1x6 8ft", 8, "ft", "Pine"),
			NewBoardPreset("2x6 16ft", 16, "ft", "SPF"),
			NewBoardPreset("Batten 2.4m", 2.4, "m", "Pine"),
			NewBoardPreset("Batten 3.0m", 3.0, "m", "Pine"),
		},
	}
}

// Add appends a preset to the inventory.
func (inv *Inventory) Add(bp BoardPreset) {
	inv.Boards = append(inv.Boards, bp)
}

// Remove deletes a preset by ID. Returns true if found and removed.
func (inv *Inventory) Remove(id string) bool {
	for i, b := range inv.Boards {
		if b.ID == id {
			inv.Boards = append(inv.Boards[:i], inv.Boards[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the preset with the given ID, or nil.
func (inv *Inventory) FindByID(id string) *BoardPreset {
	for i := range inv.Boards {
		if inv.Boards[i].ID == id {
			return &inv.Boards[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first preset with the given name, or nil.
func (inv *Inventory) FindByName(name string) *BoardPreset {
	for i := range inv.Boards {
		if inv.Boards[i].Name == name {
			return &inv.Boards[i]
		}
	}
	return nil
}

// Names returns the preset names in inventory order.
func (inv *Inventory) Names() []string {
	names := make([]string, len(inv.Boards))
	for i, b := range inv.Boards {
		names[i] = b.Name
	}
	return names
}
