package export

import (
	"github.com/piwi3910/BoardCut/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

// DXF strip layout in drawing units (inches).
const (
	dxfStripHeight  = 3.5
	dxfStripSpacing = 6.0
)

// Layer names in the exported drawing.
const (
	LayerStock = "Stock"
	LayerCuts  = "Cuts"
)

// ExportDXF draws one horizontal strip per used board, with vertical lines
// at every cut boundary. Strips are stacked downward in piece order and
// measured in inches.
func ExportDXF(path string, result model.PlanResult) error {
	if len(result.Assignments) == 0 {
		return ErrNothingToExport
	}

	d := dxf.NewDrawing()
	d.AddLayer(LayerStock, dxf.DefaultColor, dxf.DefaultLineType, false)
	d.AddLayer(LayerCuts, color.Red, dxf.DefaultLineType, false)

	for row, p := range usedPieces(result) {
		y := -float64(row) * dxfStripSpacing
		if err := drawStrip(d, result, p, y); err != nil {
			return err
		}
	}

	return d.SaveAs(path)
}

// drawStrip outlines a piece on the stock layer and its cut boundaries on the
// cuts layer.
func drawStrip(d *drawing.Drawing, result model.PlanResult, p model.PieceUsage, y float64) error {
	if err := d.ChangeLayer(LayerStock); err != nil {
		return err
	}
	top := y + dxfStripHeight
	outline := [][4]float64{
		{0, y, p.StartInches, y},
		{p.StartInches, y, p.StartInches, top},
		{p.StartInches, top, 0, top},
		{0, top, 0, y},
	}
	for _, l := range outline {
		if _, err := d.Line(l[0], l[1], 0, l[2], l[3], 0); err != nil {
			return err
		}
	}

	if err := d.ChangeLayer(LayerCuts); err != nil {
		return err
	}
	var kerfEach float64
	if n := len(p.Assignments); n > 1 {
		kerfEach = p.KerfInches / float64(n-1)
	}
	x := 0.0
	for i, a := range result.AssignmentsForPiece(p) {
		if i > 0 {
			x += kerfEach
		}
		x += a.CutLengthInches
		if x >= p.StartInches {
			break
		}
		if _, err := d.Line(x, y, 0, x, top, 0); err != nil {
			return err
		}
	}
	return nil
}
