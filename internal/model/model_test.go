package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoardSpec(t *testing.T) {
	b := NewBoardSpec("2x4", 8, "ft", 3)
	assert.Equal(t, 0, b.ID)
	assert.Equal(t, "2x4", b.Label)

	in, err := b.LengthInches()
	require.NoError(t, err)
	assert.Equal(t, 96.0, in)
}

func TestCutSpec_LengthInchesBadUnit(t *testing.T) {
	c := NewCutSpec("leg", 2, "yd", 1)
	_, err := c.LengthInches()
	assert.Error(t, err)
}

func TestRemainingBoard_ToBoardSpec(t *testing.T) {
	r := RemainingBoard{SourceID: 4, Label: "2x4", Length: 18.5, Unit: "in", Quantity: 1}
	b := r.ToBoardSpec()
	assert.Equal(t, 4, b.ID)
	assert.Equal(t, "Offcut 2x4", b.Label)
	assert.Equal(t, 18.5, b.Length)
	assert.Equal(t, "in", b.Unit)
	assert.Equal(t, 1, b.Quantity)

	r.Label = ""
	assert.Equal(t, "Offcut", r.ToBoardSpec().Label)
}

func TestShortfallMessage(t *testing.T) {
	assert.Equal(t, "Not enough material. Additional needed: 1 ft 0 in", ShortfallMessage(12))
	assert.Equal(t, "Not enough material. Additional needed: 3 ft 0 in", ShortfallMessage(36))
}

func samplePlan() PlanResult {
	return PlanResult{
		Assignments: []Assignment{
			{CutLengthInches: 36, PieceID: 0},
			{CutLengthInches: 36, PieceID: 0},
			{CutLengthInches: 12, PieceID: 2},
		},
		Pieces: []PieceUsage{
			{PieceID: 0, StartInches: 96, RemainingInches: 24, Assignments: []int{0, 1}},
			{PieceID: 1, StartInches: 96, RemainingInches: 96},
			{PieceID: 2, StartInches: 48, RemainingInches: 36, Assignments: []int{2}},
		},
		TotalWasteInches: 60,
		Message:          MessageComplete,
	}
}

func TestPlanResult_Stats(t *testing.T) {
	r := samplePlan()

	assert.Equal(t, 84.0, r.TotalCutInches())
	assert.Equal(t, 2, r.BoardsUsed())
	assert.Equal(t, 144.0, r.UsedStockInches())
	assert.InDelta(t, 58.333, r.Efficiency(), 0.001)
	assert.True(t, r.Satisfied())
	assert.Equal(t, "5 ft 0 in", r.TotalWasteFormatted())
	assert.Equal(t, "0 ft 0 in", r.AdditionalMaterialNeededFormatted())
}

func TestPlanResult_EmptyEfficiency(t *testing.T) {
	var r PlanResult
	assert.Equal(t, 0.0, r.Efficiency())
	assert.Equal(t, 0, r.BoardsUsed())
}

func TestPlanResult_NotSatisfied(t *testing.T) {
	r := samplePlan()
	r.UnsatisfiedCuts = []CutSpec{NewCutSpec("", 5, "ft", 1)}
	r.AdditionalMaterialNeededInches = 60
	assert.False(t, r.Satisfied())
}

func TestPlanResult_AssignmentsForPiece(t *testing.T) {
	r := samplePlan()

	got := r.AssignmentsForPiece(r.Pieces[0])
	require.Len(t, got, 2)
	assert.Equal(t, 36.0, got[0].CutLengthInches)

	assert.Empty(t, r.AssignmentsForPiece(r.Pieces[1]))

	// Out-of-range indices are skipped.
	assert.Empty(t, r.AssignmentsForPiece(PieceUsage{Assignments: []int{7, -1}}))
}

func TestPlanSettings_RemnantThreshold(t *testing.T) {
	assert.Equal(t, DefaultRemnantTolerance, DefaultSettings().RemnantThreshold())
	assert.Equal(t, DefaultRemnantTolerance, PlanSettings{}.RemnantThreshold())
	assert.Equal(t, 6.0, PlanSettings{MinRemnantInches: 6}.RemnantThreshold())
}

func TestProject_JSON(t *testing.T) {
	p := NewProject()
	p.Boards = append(p.Boards, NewBoardSpec("2x4", 8, "ft", 1))
	p.Cuts = append(p.Cuts, NewCutSpec("shelf", 30, "in", 2))

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"result"`)

	var loaded Project
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.Equal(t, p, loaded)
}
