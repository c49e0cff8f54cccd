package model

import (
	"github.com/piwi3910/BoardCut/internal/units"
)

// BoardSpec describes a class of identical boards available as stock.
type BoardSpec struct {
	ID       int     `json:"id"`
	Label    string  `json:"label,omitempty" validate:"max=64"`
	Length   float64 `json:"length" validate:"gt=0,finite"`
	Unit     string  `json:"unit" validate:"unit"`
	Quantity int     `json:"quantity" validate:"gt=0,lte=10000"`
}

func NewBoardSpec(label string, length float64, unit string, qty int) BoardSpec {
	return BoardSpec{
		Label:    label,
		Length:   length,
		Unit:     unit,
		Quantity: qty,
	}
}

// LengthInches returns the board length converted to inches.
func (b BoardSpec) LengthInches() (float64, error) {
	return units.ToInches(b.Length, b.Unit)
}

// CutSpec describes a class of identical pieces the user wants to cut.
type CutSpec struct {
	ID       int     `json:"id"`
	Label    string  `json:"label,omitempty" validate:"max=64"`
	Length   float64 `json:"length" validate:"gt=0,finite"`
	Unit     string  `json:"unit" validate:"unit"`
	Quantity int     `json:"quantity" validate:"gt=0,lte=10000"`
}

func NewCutSpec(label string, length float64, unit string, qty int) CutSpec {
	return CutSpec{
		Label:    label,
		Length:   length,
		Unit:     unit,
		Quantity: qty,
	}
}

// LengthInches returns the cut length converted to inches.
func (c CutSpec) LengthInches() (float64, error) {
	return units.ToInches(c.Length, c.Unit)
}

// Assignment binds one desired cut to the board piece it is cut from.
type Assignment struct {
	Cut             CutSpec   `json:"cut"`
	CutIndex        int       `json:"cut_index"` // Index of Cut in the input cut list
	QuantityToCut   int       `json:"quantity_to_cut"`
	Board           BoardSpec `json:"board"`
	BoardIndex      int       `json:"board_index"` // Index of Board in the input board list
	PieceID         int       `json:"piece_id"`
	CutLengthInches float64   `json:"cut_length_inches"`
}

// RemainingBoard is a leftover piece reported as a single board in inches.
type RemainingBoard struct {
	SourceID   int     `json:"source_id"` // ID of the BoardSpec it came from
	BoardIndex int     `json:"board_index"`
	PieceID    int     `json:"piece_id"`
	Label      string  `json:"label,omitempty"`
	Length     float64 `json:"length"`
	Unit       string  `json:"unit"`
	Quantity   int     `json:"quantity"`
}

// ToBoardSpec converts a leftover into stock for a follow-up plan.
func (r RemainingBoard) ToBoardSpec() BoardSpec {
	label := r.Label
	if label == "" {
		label = "Offcut"
	} else {
		label = "Offcut " + label
	}
	return BoardSpec{
		ID:       r.SourceID,
		Label:    label,
		Length:   r.Length,
		Unit:     r.Unit,
		Quantity: 1,
	}
}

// PieceUsage reports how one physical board was consumed.
type PieceUsage struct {
	PieceID         int       `json:"piece_id"`
	BoardIndex      int       `json:"board_index"`
	Board           BoardSpec `json:"board"`
	StartInches     float64   `json:"start_inches"`
	RemainingInches float64   `json:"remaining_inches"`
	KerfInches      float64   `json:"kerf_inches,omitempty"`
	Assignments     []int     `json:"assignments"` // Indices into PlanResult.Assignments
}

// Used reports whether any cut was taken from the piece.
func (p PieceUsage) Used() bool {
	return len(p.Assignments) > 0
}

// Messages reported in PlanResult.Message.
const (
	MessageComplete      = "Optimization complete."
	MessageNothingToPlan = "Please provide available boards and desired cuts."
	messageShortfall     = "Not enough material. Additional needed: "
)

// ShortfallMessage formats the message for a plan that could not be met.
func ShortfallMessage(inches float64) string {
	return messageShortfall + units.FormatFeetAndInches(inches)
}

// PlanResult holds the full cutting plan.
type PlanResult struct {
	Assignments                    []Assignment     `json:"assignments"`
	RemainingBoards                []RemainingBoard `json:"remaining_boards"`
	Pieces                         []PieceUsage     `json:"pieces"`
	UnsatisfiedCuts                []CutSpec        `json:"unsatisfied_cuts"`
	TotalWasteInches               float64          `json:"total_waste_inches"`
	TotalKerfInches                float64          `json:"total_kerf_inches,omitempty"`
	AdditionalMaterialNeededInches float64          `json:"additional_material_needed_inches"`
	Message                        string           `json:"message"`
}

// AdditionalMaterialNeededFormatted renders the shortfall in feet and inches.
func (r PlanResult) AdditionalMaterialNeededFormatted() string {
	return units.FormatFeetAndInches(r.AdditionalMaterialNeededInches)
}

// TotalWasteFormatted renders the waste in feet and inches.
func (r PlanResult) TotalWasteFormatted() string {
	return units.FormatFeetAndInches(r.TotalWasteInches)
}

// Satisfied reports whether every desired cut was assigned.
func (r PlanResult) Satisfied() bool {
	return len(r.UnsatisfiedCuts) == 0 && r.AdditionalMaterialNeededInches == 0
}

// TotalCutInches returns the summed length of all assigned cuts.
func (r PlanResult) TotalCutInches() float64 {
	var total float64
	for _, a := range r.Assignments {
		total += a.CutLengthInches
	}
	return total
}

// BoardsUsed returns the number of physical boards with at least one cut.
func (r PlanResult) BoardsUsed() int {
	n := 0
	for _, p := range r.Pieces {
		if p.Used() {
			n++
		}
	}
	return n
}

// UsedStockInches returns the original length of every board that was cut.
func (r PlanResult) UsedStockInches() float64 {
	var total float64
	for _, p := range r.Pieces {
		if p.Used() {
			total += p.StartInches
		}
	}
	return total
}

// Efficiency returns the percentage of used stock that became cuts.
func (r PlanResult) Efficiency() float64 {
	used := r.UsedStockInches()
	if used == 0 {
		return 0
	}
	return (r.TotalCutInches() / used) * 100.0
}

// AssignmentsForPiece returns the assignments cut from the given piece, in cut order.
func (r PlanResult) AssignmentsForPiece(p PieceUsage) []Assignment {
	out := make([]Assignment, 0, len(p.Assignments))
	for _, idx := range p.Assignments {
		if idx >= 0 && idx < len(r.Assignments) {
			out = append(out, r.Assignments[idx])
		}
	}
	return out
}

// DefaultRemnantTolerance is the leftover length (inches) below which a piece
// is treated as fully consumed.
const DefaultRemnantTolerance = 0.01

// PlanSettings holds optimizer configuration.
type PlanSettings struct {
	KerfInches       float64 `json:"kerf_inches" validate:"gte=0,finite"`        // Blade width consumed between cuts on one board
	MinRemnantInches float64 `json:"min_remnant_inches" validate:"gte=0,finite"` // Leftovers at or below this are not reported
}

func DefaultSettings() PlanSettings {
	return PlanSettings{
		KerfInches:       0,
		MinRemnantInches: DefaultRemnantTolerance,
	}
}

// RemnantThreshold returns the effective leftover threshold.
func (s PlanSettings) RemnantThreshold() float64 {
	if s.MinRemnantInches < DefaultRemnantTolerance {
		return DefaultRemnantTolerance
	}
	return s.MinRemnantInches
}

// Project ties everything together for save/load.
type Project struct {
	Name     string       `json:"name"`
	Boards   []BoardSpec  `json:"boards"`
	Cuts     []CutSpec    `json:"cuts"`
	Settings PlanSettings `json:"settings"`
	Result   *PlanResult  `json:"result,omitempty"`
}

func NewProject() Project {
	return Project{
		Name:     "Untitled",
		Boards:   []BoardSpec{},
		Cuts:     []CutSpec{},
		Settings: DefaultSettings(),
	}
}
