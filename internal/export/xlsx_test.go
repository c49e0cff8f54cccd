package export

import (
	"errors"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/piwi3910/BoardCut/internal/model"
	"github.com/xuri/excelize/v2"
)

func TestExportXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.xlsx")
	result := buildTestResult(t)

	if err := ExportXLSX(path, result); err != nil {
		t.Fatalf("ExportXLSX returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("cannot open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	want := []string{SheetAssignments, SheetRemaining, SheetSummary}
	if len(sheets) != len(want) {
		t.Fatalf("expected sheets %v, got %v", want, sheets)
	}
	for i := range want {
		if sheets[i] != want[i] {
			t.Errorf("sheet %d: expected %s, got %s", i, want[i], sheets[i])
		}
	}

	rows, err := f.GetRows(SheetAssignments)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != len(result.Assignments)+1 {
		t.Fatalf("expected %d rows, got %d", len(result.Assignments)+1, len(rows))
	}
	if rows[0][2] != "Cut Label" {
		t.Errorf("unexpected header %v", rows[0])
	}
	if rows[1][2] != "Rail" {
		t.Errorf("expected first assignment 'Rail', got %q", rows[1][2])
	}

	rows, err = f.GetRows(SheetRemaining)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != len(result.RemainingBoards)+1 {
		t.Errorf("expected %d remaining rows, got %d", len(result.RemainingBoards)+1, len(rows))
	}

	msg, err := f.GetCellValue(SheetSummary, "B2")
	if err != nil {
		t.Fatal(err)
	}
	if msg != result.Message {
		t.Errorf("expected message %q, got %q", result.Message, msg)
	}
	used, err := f.GetCellValue(SheetSummary, "B3")
	if err != nil {
		t.Fatal(err)
	}
	if used != strconv.Itoa(result.BoardsUsed()) {
		t.Errorf("expected boards used %d, got %s", result.BoardsUsed(), used)
	}
}

func TestExportXLSX_EmptyResult(t *testing.T) {
	err := ExportXLSX(filepath.Join(t.TempDir(), "empty.xlsx"), model.PlanResult{})
	if !errors.Is(err, ErrNothingToExport) {
		t.Fatalf("expected ErrNothingToExport, got %v", err)
	}
}
