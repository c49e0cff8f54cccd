package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/BoardCut/internal/engine"
	"github.com/piwi3910/BoardCut/internal/model"
)

// buildTestResult plans a small shelf project across two board classes.
func buildTestResult(t *testing.T) model.PlanResult {
	t.Helper()
	boards := []model.BoardSpec{
		{ID: 1, Label: "1x10 8ft", Length: 8, Unit: "ft", Quantity: 2},
		{ID: 2, Label: "2x4 10ft", Length: 10, Unit: "ft", Quantity: 1},
	}
	cuts := []model.CutSpec{
		{ID: 1, Label: "Side", Length: 36, Unit: "in", Quantity: 2},
		{ID: 2, Label: "Shelf", Length: 30, Unit: "in", Quantity: 3},
		{ID: 3, Label: "Rail", Length: 1.2, Unit: "m", Quantity: 1},
	}
	result, err := engine.New(model.DefaultSettings()).Optimize(boards, cuts)
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}
	return result
}

func assertFile(t *testing.T, path string, minSize int64) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("file was not created: %v", err)
	}
	if info.Size() < minSize {
		t.Errorf("file seems too small: %d bytes", info.Size())
	}
}

func TestExportPDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.pdf")

	if err := ExportPDF(path, buildTestResult(t), model.DefaultSettings()); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertFile(t, path, 500)
}

func TestExportPDF_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	err := ExportPDF(path, model.PlanResult{}, model.DefaultSettings())
	if !errors.Is(err, ErrNothingToExport) {
		t.Fatalf("expected ErrNothingToExport, got %v", err)
	}
	if err.Error() != "no assignments to export" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestExportPDF_ShortfallOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.pdf")

	result, err := engine.Optimize(
		[]model.BoardSpec{{ID: 1, Length: 4, Unit: "ft", Quantity: 1}},
		[]model.CutSpec{{ID: 1, Label: "Beam", Length: 5, Unit: "ft", Quantity: 1}},
	)
	if err != nil {
		t.Fatal(err)
	}

	if err := ExportPDF(path, result, model.DefaultSettings()); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertFile(t, path, 500)
}

func TestExportPDF_WithKerf(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kerf.pdf")

	settings := model.DefaultSettings()
	settings.KerfInches = 0.125
	result, err := engine.New(settings).Optimize(
		[]model.BoardSpec{{ID: 1, Length: 96, Unit: "in", Quantity: 1}},
		[]model.CutSpec{{ID: 1, Length: 20, Unit: "in", Quantity: 4}},
	)
	if err != nil {
		t.Fatal(err)
	}

	if err := ExportPDF(path, result, settings); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertFile(t, path, 500)
}

func TestExportPDF_ManyBoards(t *testing.T) {
	path := filepath.Join(t.TempDir(), "many.pdf")

	// Enough boards to spill the diagrams over several pages.
	var cuts []model.CutSpec
	for i := 0; i < 25; i++ {
		cuts = append(cuts, model.CutSpec{ID: i + 1, Label: fmt.Sprintf("Cut %d", i+1), Length: 7, Unit: "ft", Quantity: 1})
	}
	result, err := engine.Optimize([]model.BoardSpec{{ID: 1, Length: 8, Unit: "ft", Quantity: 25}}, cuts)
	if err != nil {
		t.Fatal(err)
	}
	if result.BoardsUsed() != 25 {
		t.Fatalf("expected 25 boards used, got %d", result.BoardsUsed())
	}

	if err := ExportPDF(path, result, model.DefaultSettings()); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertFile(t, path, 1000)
}

func TestFormatInches(t *testing.T) {
	cases := map[float64]string{
		0:       "0 in",
		0.125:   "0.125 in",
		30:      "30 in",
		47.2441: "47.244 in",
	}
	for in, want := range cases {
		if got := formatInches(in); got != want {
			t.Errorf("formatInches(%v) = %q, want %q", in, got, want)
		}
	}
}
