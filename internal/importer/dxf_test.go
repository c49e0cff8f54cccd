package importer

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/yofu/dxf"
)

func createTestDXF(t *testing.T, lines [][4]float64, circles int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cuts.dxf")

	d := dxf.NewDrawing()
	for _, l := range lines {
		if _, err := d.Line(l[0], l[1], 0, l[2], l[3], 0); err != nil {
			t.Fatalf("failed to add line: %v", err)
		}
	}
	for i := 0; i < circles; i++ {
		if _, err := d.Circle(float64(i)*10, 0, 0, 2); err != nil {
			t.Fatalf("failed to add circle: %v", err)
		}
	}
	if err := d.SaveAs(path); err != nil {
		t.Fatalf("failed to save DXF: %v", err)
	}
	return path
}

func TestImportDXF_LinesBecomeCuts(t *testing.T) {
	path := createTestDXF(t, [][4]float64{
		{0, 0, 30, 0},
		{0, 10, 0, 40},
		{5, 5, 23, 29},
		{0, 20, 18, 20},
	}, 0)

	result := ImportFile(path, "in")

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	// 30, 30, 30 (18-24-30 triangle) and 18.
	if len(result.Entries) != 2 {
		t.Fatalf("expected 2 merged entries, got %+v", result.Entries)
	}
	if result.Entries[0].Quantity != 3 || result.Entries[0].Length != 30 {
		t.Errorf("unexpected first entry %+v", result.Entries[0])
	}
	if result.Entries[1].Quantity != 1 || result.Entries[1].Length != 18 {
		t.Errorf("unexpected second entry %+v", result.Entries[1])
	}
	if result.Entries[0].Unit != "in" {
		t.Errorf("expected unit in, got %s", result.Entries[0].Unit)
	}
}

func TestImportDXF_DrawingUnit(t *testing.T) {
	path := createTestDXF(t, [][4]float64{{0, 0, 600, 0}}, 0)

	result := ImportDXF(path, "cm")
	if len(result.Entries) != 1 || result.Entries[0].Unit != "cm" {
		t.Fatalf("unexpected entries %+v", result.Entries)
	}

	result = ImportDXF(path, "mm")
	if len(result.Errors) != 1 {
		t.Errorf("expected unsupported unit error, got %v", result.Errors)
	}
}

func TestImportDXF_SkipsOtherEntities(t *testing.T) {
	path := createTestDXF(t, [][4]float64{{0, 0, 12, 0}, {3, 3, 3, 3}}, 2)

	result := ImportDXF(path, "in")
	if len(result.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %+v", result.Entries)
	}
	joined := strings.Join(result.Warnings, "|")
	if !strings.Contains(joined, "Skipped 2 non-LINE entities") {
		t.Errorf("expected non-LINE warning, got %v", result.Warnings)
	}
	if !strings.Contains(joined, "Skipped 1 zero-length lines") {
		t.Errorf("expected zero-length warning, got %v", result.Warnings)
	}
}

func TestImportDXF_NoLines(t *testing.T) {
	path := createTestDXF(t, nil, 1)

	result := ImportDXF(path, "in")
	if len(result.Errors) != 1 || result.Errors[0] != "No LINE entities found in DXF file" {
		t.Errorf("unexpected errors %v", result.Errors)
	}
}

func TestImportDXF_FileNotFound(t *testing.T) {
	result := ImportDXF(filepath.Join(t.TempDir(), "nope.dxf"), "in")
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestMergeLengths(t *testing.T) {
	entries := mergeLengths([]float64{10, 10.0005, 12, 9.9995, 10.01}, "ft")
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %+v", entries)
	}
	if entries[0].Quantity != 3 {
		t.Errorf("expected 3 lengths merged into first entry, got %d", entries[0].Quantity)
	}
	if entries[2].Label != "DXF Cut 3" {
		t.Errorf("expected label 'DXF Cut 3', got %q", entries[2].Label)
	}
}
