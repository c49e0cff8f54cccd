// Package export provides functionality for exporting cutting plans
// to various file formats.
package export

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/BoardCut/internal/model"
	"github.com/piwi3910/BoardCut/internal/units"
)

// ErrNothingToExport is returned for plans without assignments.
var ErrNothingToExport = errors.New("no assignments to export")

// cutColor represents an RGB color for a cut segment.
type cutColor struct {
	R, G, B int
}

// cutColors is the fill palette for cut segments, cycled per cut spec.
var cutColors = []cutColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	rowHeight    = 18.0
	barHeight    = 8.0
	rowLabelW    = 45.0
)

// ExportPDF writes a summary page followed by one bar diagram per used board.
// A plan that only reports a shortfall still produces the summary page.
func ExportPDF(path string, result model.PlanResult, settings model.PlanSettings) error {
	if len(result.Assignments) == 0 && result.AdditionalMaterialNeededInches == 0 {
		return ErrNothingToExport
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderSummaryPage(pdf, result, settings)

	used := usedPieces(result)
	if len(used) > 0 {
		renderDiagramPages(pdf, result, used)
	}

	return pdf.OutputFileAndClose(path)
}

// usedPieces returns the pieces that received at least one cut.
func usedPieces(result model.PlanResult) []model.PieceUsage {
	var used []model.PieceUsage
	for _, p := range result.Pieces {
		if p.Used() {
			used = append(used, p)
		}
	}
	return used
}

// renderDiagramPages draws one row per used piece. All bars share one scale
// so relative board lengths stay visible.
func renderDiagramPages(pdf *fpdf.Fpdf, result model.PlanResult, pieces []model.PieceUsage) {
	var longest float64
	for _, p := range pieces {
		longest = math.Max(longest, p.StartInches)
	}
	barArea := pageWidth - marginLeft - marginRight - rowLabelW
	scale := barArea / longest

	usableHeight := pageHeight - drawAreaTop - marginBottom
	rowsPerPage := int(usableHeight / rowHeight)
	for i, p := range pieces {
		if i%rowsPerPage == 0 {
			pdf.AddPage()
			pdf.SetFont("Helvetica", "B", 14)
			pdf.SetXY(marginLeft, marginTop)
			title := fmt.Sprintf("Cut Diagrams (page %d)", i/rowsPerPage+1)
			pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")
		}
		y := drawAreaTop + float64(i%rowsPerPage)*rowHeight
		renderPieceRow(pdf, result, p, y, scale)
	}
}

// renderPieceRow draws a single board as a bar with its cuts in order.
func renderPieceRow(pdf *fpdf.Fpdf, result model.PlanResult, p model.PieceUsage, y, scale float64) {
	label := p.Board.Label
	if label == "" {
		label = fmt.Sprintf("Board %d", p.BoardIndex+1)
	}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(rowLabelW-2, 4, fmt.Sprintf("#%d %s", p.PieceID+1, label), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(marginLeft, y+4)
	pdf.CellFormat(rowLabelW-2, 4, units.FormatFeetAndInches(p.StartInches), "", 0, "L", false, 0, "")

	barX := marginLeft + rowLabelW
	barW := p.StartInches * scale

	// Stock background (wood color)
	pdf.SetFillColor(210, 180, 140)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.4)
	pdf.Rect(barX, y, barW, barHeight, "FD")

	x := barX
	for i, a := range result.AssignmentsForPiece(p) {
		if i > 0 && p.KerfInches > 0 {
			// Blade allowance before every cut except the first.
			x += (p.KerfInches / float64(len(p.Assignments)-1)) * scale
		}
		w := a.CutLengthInches * scale
		col := cutColors[a.CutIndex%len(cutColors)]
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(x, y, w, barHeight, "FD")

		text := a.Cut.Label
		if text == "" {
			text = formatInches(a.CutLengthInches)
		}
		pdf.SetFont("Helvetica", "", labelFontSize(w))
		if tw := pdf.GetStringWidth(text); tw < w-1 {
			pdf.SetXY(x+(w-tw)/2, y+barHeight/2-2)
			pdf.CellFormat(tw, 4, text, "", 0, "C", false, 0, "")
		}
		x += w
	}

	if p.RemainingInches > 0 {
		drawHatchPattern(pdf, x, y, barX+barW-x, barHeight)
	}

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(80, 80, 80)
	pdf.SetXY(barX, y+barHeight+1)
	info := fmt.Sprintf("%d cuts | leftover %s", len(p.Assignments), units.FormatFeetAndInches(p.RemainingInches))
	pdf.CellFormat(barW, 4, info, "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// drawHatchPattern draws diagonal lines inside a rectangle to mark leftover stock.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	pdf.SetDrawColor(120, 90, 60)
	pdf.SetLineWidth(0.15)

	spacing := 2.0
	maxDist := w + h

	for d := spacing; d < maxDist; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)

		pdf.Line(x1, y1, x2, y2)
	}
}

// renderSummaryPage draws totals, the status message and any unplaced cuts.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.PlanResult, settings model.PlanSettings) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Cutting Plan Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 11)
	if result.AdditionalMaterialNeededInches > 0 {
		pdf.SetTextColor(200, 0, 0)
	}
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 7, result.Message, "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	y += 11

	summaryItems := []struct {
		label string
		value string
	}{
		{"Boards Used", fmt.Sprintf("%d", result.BoardsUsed())},
		{"Cuts Assigned", fmt.Sprintf("%d", len(result.Assignments))},
		{"Total Cut Length", units.FormatFeetAndInches(result.TotalCutInches())},
		{"Total Waste", result.TotalWasteFormatted()},
		{"Kerf Loss", formatInches(result.TotalKerfInches)},
		{"Additional Material Needed", result.AdditionalMaterialNeededFormatted()},
		{"Efficiency", fmt.Sprintf("%.1f%%", result.Efficiency())},
		{"Kerf Width", formatInches(settings.KerfInches)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(70, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	if len(result.RemainingBoards) > 0 {
		y += 5
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(100, 7, "Remaining Boards", "", 0, "L", false, 0, "")
		y += 8
		pdf.SetFont("Helvetica", "", 9)
		for _, r := range result.RemainingBoards {
			if y > pageHeight-marginBottom-10 {
				break
			}
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- #%d %s: %s", r.PieceID+1, r.Label, units.FormatFeetAndInches(r.Length))
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	if len(result.UnsatisfiedCuts) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Unplaced Cuts", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, c := range result.UnsatisfiedCuts {
			if y > pageHeight-marginBottom-10 {
				break
			}
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s: %g %s", c.Label, c.Length, c.Unit)
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by BoardCut - Board Cutting Planner", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// labelFontSize returns a font size that fits a segment of the given width.
func labelFontSize(w float64) float64 {
	switch {
	case w > 40:
		return 8
	case w > 20:
		return 7
	default:
		return 6
	}
}

// formatInches renders a length in inches rounded to thousandths.
func formatInches(in float64) string {
	return strconv.FormatFloat(math.Round(in*1000)/1000, 'f', -1, 64) + " in"
}
