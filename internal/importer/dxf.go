package importer

import (
	"fmt"
	"math"

	"github.com/piwi3910/BoardCut/internal/units"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// dxfMergeTolerance is the distance below which two line lengths count as one cut.
const dxfMergeTolerance = 0.001

// ImportDXF imports cuts from a DXF file. Every LINE entity becomes a cut
// whose length is the segment length in drawingUnit. Lines of the same
// length are merged into one entry with a quantity.
func ImportDXF(path, drawingUnit string) ImportResult {
	result := ImportResult{}

	unit, err := units.Canonical(drawingUnit)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Unsupported drawing unit '%s'", drawingUnit))
		return result
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var lengths []float64
	skipped := 0
	degenerate := 0
	for _, ent := range entities {
		line, ok := ent.(*entity.Line)
		if !ok {
			skipped++
			continue
		}
		l := lineLength(line)
		if l < dxfMergeTolerance {
			degenerate++
			continue
		}
		lengths = append(lengths, l)
	}

	if skipped > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped %d non-LINE entities", skipped))
	}
	if degenerate > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped %d zero-length lines", degenerate))
	}
	if len(lengths) == 0 {
		result.Errors = append(result.Errors, "No LINE entities found in DXF file")
		return result
	}

	result.Entries = mergeLengths(lengths, string(unit))
	return result
}

// lineLength returns the 3D length of a LINE entity.
func lineLength(l *entity.Line) float64 {
	dx := l.End[0] - l.Start[0]
	dy := l.End[1] - l.Start[1]
	dz := l.End[2] - l.Start[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// mergeLengths groups lengths within dxfMergeTolerance, in first-seen order.
func mergeLengths(lengths []float64, unit string) []Entry {
	var entries []Entry
	for _, l := range lengths {
		merged := false
		for i := range entries {
			if math.Abs(entries[i].Length-l) <= dxfMergeTolerance {
				entries[i].Quantity++
				merged = true
				break
			}
		}
		if !merged {
			entries = append(entries, Entry{
				Label:    fmt.Sprintf("DXF Cut %d", len(entries)+1),
				Length:   l,
				Unit:     unit,
				Quantity: 1,
			})
		}
	}
	return entries
}
