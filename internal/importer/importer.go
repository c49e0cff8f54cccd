// Package importer reads board and cut lists from CSV, Excel and DXF files.
// It supports automatic delimiter detection, flexible column mapping,
// case-insensitive header recognition and unit suffixes on lengths.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piwi3910/BoardCut/internal/model"
	"github.com/piwi3910/BoardCut/internal/units"
	"github.com/xuri/excelize/v2"
)

// Entry is one imported row: a length class with a quantity. The same rows
// serve as stock boards or desired cuts.
type Entry struct {
	Label    string
	Length   float64
	Unit     string
	Quantity int
}

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Entries  []Entry
	Errors   []string
	Warnings []string
}

// Cuts returns the entries as cut specs.
func (r ImportResult) Cuts() []model.CutSpec {
	cuts := make([]model.CutSpec, 0, len(r.Entries))
	for _, e := range r.Entries {
		cuts = append(cuts, model.NewCutSpec(e.Label, e.Length, e.Unit, e.Quantity))
	}
	return cuts
}

// Boards returns the entries as board specs.
func (r ImportResult) Boards() []model.BoardSpec {
	boards := make([]model.BoardSpec, 0, len(r.Entries))
	for _, e := range r.Entries {
		boards = append(boards, model.NewBoardSpec(e.Label, e.Length, e.Unit, e.Quantity))
	}
	return boards
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Label    int
	Length   int
	Unit     int
	Quantity int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":    {"label", "name", "part", "description", "desc", "item"},
	"length":   {"length", "len", "size"},
	"unit":     {"unit", "units"},
	"quantity": {"quantity", "qty", "count", "pcs"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or a positional
// mapping and false if no header was found. The positional layout is
// label,length,unit,quantity; a three-column row is label,length,quantity.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Label: -1, Length: -1, Unit: -1, Quantity: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "label":
					if mapping.Label == -1 {
						mapping.Label = i
					}
				case "length":
					if mapping.Length == -1 {
						mapping.Length = i
					}
				case "unit":
					if mapping.Unit == -1 {
						mapping.Unit = i
					}
				case "quantity":
					if mapping.Quantity == -1 {
						mapping.Quantity = i
					}
				}
			}
		}
	}

	if !isHeader {
		if len(row) == 3 {
			return ColumnMapping{Label: 0, Length: 1, Unit: -1, Quantity: 2}, false
		}
		return ColumnMapping{Label: 0, Length: 1, Unit: 2, Quantity: 3}, false
	}

	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts an Entry from a row using the given column mapping.
// Returns the entry, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel, defaultUnit string) (Entry, string, string) {
	label := getCell(row, mapping.Label)

	lengthStr := getCell(row, mapping.Length)
	if lengthStr == "" {
		return Entry{}, fmt.Sprintf("%s: Missing length value", rowLabel), ""
	}

	unitStr := getCell(row, mapping.Unit)
	rowUnit := defaultUnit
	if unitStr != "" {
		u, err := units.Canonical(unitStr)
		if err != nil {
			return Entry{}, fmt.Sprintf("%s: Unsupported unit '%s'", rowLabel, unitStr), ""
		}
		rowUnit = string(u)
	}

	length, unit, err := units.ParseLength(lengthStr, rowUnit)
	if err != nil {
		return Entry{}, fmt.Sprintf("%s: Invalid length '%s'", rowLabel, lengthStr), ""
	}

	var warning string
	if unitStr != "" && string(unit) != rowUnit {
		warning = fmt.Sprintf("%s: Length suffix '%s' overrides unit column '%s'", rowLabel, unit, unitStr)
	}

	qty := 1
	if qtyStr := getCell(row, mapping.Quantity); qtyStr != "" {
		qty, err = strconv.Atoi(qtyStr)
		if err != nil {
			return Entry{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), ""
		}
	}

	if length <= 0 || qty <= 0 {
		return Entry{}, fmt.Sprintf("%s: Length and quantity must be positive", rowLabel), ""
	}

	return Entry{Label: label, Length: length, Unit: string(unit), Quantity: qty}, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportFile picks the importer from the file extension. For DXF files
// defaultUnit is the drawing unit.
func ImportFile(path, defaultUnit string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return ImportExcel(path, defaultUnit)
	case ".dxf":
		return ImportDXF(path, defaultUnit)
	default:
		return ImportCSV(path, defaultUnit)
	}
}

// ImportCSV imports entries from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path, defaultUnit string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", defaultUnit, result.Warnings)
}

// ImportCSVFromReader imports entries from a CSV reader with a specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune, defaultUnit string) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", defaultUnit, nil)
}

// ImportExcel imports entries from the first sheet of an Excel file.
func ImportExcel(path, defaultUnit string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", defaultUnit, nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix, defaultUnit string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if _, err := units.Canonical(defaultUnit); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Unsupported default unit '%s'", defaultUnit))
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		if mapping.Length == -1 {
			result.Errors = append(result.Errors, "Required columns not found in header: Length")
			return result
		}
	} else if len(rows[0]) >= 2 {
		// An unrecognized header still fails to parse as a length.
		if _, _, err := units.ParseLength(rows[0][1], defaultUnit); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		entry, errMsg, warning := parseRow(row, mapping, rowLabel, defaultUnit)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		if entry.Label == "" {
			entry.Label = fmt.Sprintf("Item %d", len(result.Entries)+1)
		}
		result.Entries = append(result.Entries, entry)
	}

	return result
}
