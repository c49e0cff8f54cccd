package export

import (
	"fmt"

	"github.com/piwi3910/BoardCut/internal/model"
	"github.com/piwi3910/BoardCut/internal/units"
	"github.com/xuri/excelize/v2"
)

// Sheet names in the exported workbook.
const (
	SheetAssignments = "Assignments"
	SheetRemaining   = "Remaining"
	SheetSummary     = "Summary"
)

var assignmentHeaders = []interface{}{
	"#", "Cut ID", "Cut Label", "Length", "Unit", "Length (in)",
	"Board ID", "Board Label", "Board Index", "Piece",
}

var remainingHeaders = []interface{}{
	"Piece", "Board ID", "Board Label", "Length (in)", "Length (ft/in)",
}

// ExportXLSX writes the plan to a workbook with assignment, leftover and
// summary sheets.
func ExportXLSX(path string, result model.PlanResult) error {
	if len(result.Assignments) == 0 {
		return ErrNothingToExport
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetAssignments); err != nil {
		return err
	}
	if _, err := f.NewSheet(SheetRemaining); err != nil {
		return err
	}
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(result.Assignments))
	for i, a := range result.Assignments {
		rows = append(rows, []interface{}{
			i + 1, a.Cut.ID, a.Cut.Label, a.Cut.Length, a.Cut.Unit, a.CutLengthInches,
			a.Board.ID, a.Board.Label, a.BoardIndex, a.PieceID + 1,
		})
	}
	if err := writeTable(f, SheetAssignments, assignmentHeaders, rows, bold); err != nil {
		return err
	}

	rows = rows[:0]
	for _, r := range result.RemainingBoards {
		rows = append(rows, []interface{}{
			r.PieceID + 1, r.SourceID, r.Label, r.Length, units.FormatFeetAndInches(r.Length),
		})
	}
	if err := writeTable(f, SheetRemaining, remainingHeaders, rows, bold); err != nil {
		return err
	}

	summary := [][]interface{}{
		{"Message", result.Message},
		{"Boards Used", result.BoardsUsed()},
		{"Cuts Assigned", len(result.Assignments)},
		{"Unplaced Cuts", len(result.UnsatisfiedCuts)},
		{"Total Cut (in)", result.TotalCutInches()},
		{"Total Waste (in)", result.TotalWasteInches},
		{"Total Waste", result.TotalWasteFormatted()},
		{"Kerf Loss (in)", result.TotalKerfInches},
		{"Additional Needed (in)", result.AdditionalMaterialNeededInches},
		{"Additional Needed", result.AdditionalMaterialNeededFormatted()},
		{"Efficiency (%)", result.Efficiency()},
	}
	if err := writeTable(f, SheetSummary, []interface{}{"Metric", "Value"}, summary, bold); err != nil {
		return err
	}

	return f.SaveAs(path)
}

// writeTable writes a bold header row followed by data rows.
func writeTable(f *excelize.File, sheet string, headers []interface{}, rows [][]interface{}, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+2, err)
		}
	}
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastCol, 16)
}
