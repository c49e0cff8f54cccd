package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/BoardCut/internal/model"
	"github.com/piwi3910/BoardCut/internal/units"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each cut label's QR code.
type LabelInfo struct {
	CutLabel     string  `json:"label"`
	CutID        int     `json:"cut_id"`
	Length       float64 `json:"length"`
	Unit         string  `json:"unit"`
	LengthInches float64 `json:"length_in"`
	BoardLabel   string  `json:"board"`
	BoardIndex   int     `json:"board_index"`
	PieceID      int     `json:"piece"`
	Sequence     int     `json:"sequence"` // 1-based position of the cut on its piece
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels, one per assigned cut.
// Labels are laid out on a standard label sheet format (Avery 5160 /
// 3 columns x 10 rows on US Letter).
func ExportLabels(path string, result model.PlanResult) error {
	labels := CollectLabelInfos(result)
	if len(labels) == 0 {
		return ErrNothingToExport
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.CutLabel, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, idx int, info LabelInfo) error {
	// Light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d", idx)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	// Truncate label if too long
	cutLabel := info.CutLabel
	if cutLabel == "" {
		cutLabel = fmt.Sprintf("Cut %d", info.CutID)
	}
	if pdf.GetStringWidth(cutLabel) > textW {
		for len(cutLabel) > 0 && pdf.GetStringWidth(cutLabel+"...") > textW {
			cutLabel = cutLabel[:len(cutLabel)-1]
		}
		cutLabel += "..."
	}
	pdf.CellFormat(textW, 4.5, cutLabel, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%g %s (%s)", info.Length, info.Unit, units.FormatFeetAndInches(info.LengthInches))
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	boardInfo := fmt.Sprintf("Board #%d %s, cut %d", info.PieceID+1, info.BoardLabel, info.Sequence)
	pdf.CellFormat(textW, 3, boardInfo, "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// CollectLabelInfos extracts label information from a plan, one entry per
// assignment in assignment order.
func CollectLabelInfos(result model.PlanResult) []LabelInfo {
	var labels []LabelInfo
	seq := make(map[int]int)
	for _, a := range result.Assignments {
		seq[a.PieceID]++
		labels = append(labels, LabelInfo{
			CutLabel:     a.Cut.Label,
			CutID:        a.Cut.ID,
			Length:       a.Cut.Length,
			Unit:         a.Cut.Unit,
			LengthInches: a.CutLengthInches,
			BoardLabel:   a.Board.Label,
			BoardIndex:   a.BoardIndex,
			PieceID:      a.PieceID,
			Sequence:     seq[a.PieceID],
		})
	}
	return labels
}
