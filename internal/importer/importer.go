// Package importer reads shape lists from CSV and Excel files and
// layouts from DXF drawings. Spreadsheet import supports automatic
// delimiter detection, flexible column mapping and case-insensitive
// header recognition; dimensions in spreadsheets are in cm, DXF files
// in mm.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cssftj2-sketch/shapeforge-dxf/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation. Errors are
// per-row failures; a result with shapes and errors means a partial
// import.
type ImportResult struct {
	Shapes   []model.Shape
	Slab     *model.Slab
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Label     int
	Kind      int
	Width     int
	Height    int
	LegWidth  int
	LegHeight int
	Quantity  int
}

// headerAliases maps canonical column names to their accepted aliases
// (all lowercase).
var headerAliases = map[string][]string{
	"label":     {"label", "name", "shape name", "description", "desc", "piece", "item"},
	"kind":      {"kind", "type", "shape", "shape type", "form"},
	"width":     {"width", "w", "base", "diameter", "x"},
	"height":    {"height", "h", "y"},
	"legwidth":  {"leg width", "legwidth", "leg w", "notch width", "notchwidth"},
	"legheight": {"leg height", "legheight", "leg h", "notch height", "notchheight"},
	"quantity":  {"quantity", "qty", "count", "num", "amount", "pcs", "pieces"},
}

// kindAliases maps accepted type-column spellings (lowercase) to kinds.
var kindAliases = map[string]model.Kind{
	"rectangle":  model.KindRectangle,
	"rect":       model.KindRectangle,
	"r":          model.KindRectangle,
	"l-shape-tl": model.KindLShapeTL,
	"l-tl":       model.KindLShapeTL,
	"ltl":        model.KindLShapeTL,
	"l-shape-tr": model.KindLShapeTR,
	"l-tr":       model.KindLShapeTR,
	"ltr":        model.KindLShapeTR,
	"l-shape-bl": model.KindLShapeBL,
	"l-bl":       model.KindLShapeBL,
	"lbl":        model.KindLShapeBL,
	"l-shape-br": model.KindLShapeBR,
	"l-br":       model.KindLShapeBR,
	"lbr":        model.KindLShapeBR,
	"triangle":   model.KindTriangle,
	"tri":        model.KindTriangle,
	"t":          model.KindTriangle,
	"circle":     model.KindCircle,
	"round":      model.KindCircle,
	"c":          model.KindCircle,
}

// ParseKind resolves a type-column value to a shape kind. Matching is
// case-insensitive and tolerant of common abbreviations.
func ParseKind(s string) (model.Kind, bool) {
	k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]
	return k, ok
}

// DetectCSVDelimiter reads the file content and determines the most
// likely CSV delimiter. It tries comma, semicolon, tab, and pipe; the
// delimiter that produces the most consistent multi-column split wins.
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

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Matching against the known aliases is case-insensitive. Returns the
// mapping and true if a header was detected, or a default positional
// mapping (Label, Kind, Width, Height, LegWidth, LegHeight, Quantity)
// and false if not.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Label: -1, Kind: -1, Width: -1, Height: -1,
		LegWidth: -1, LegHeight: -1, Quantity: -1,
	}

	assign := func(role string, i int) {
		switch role {
		case "label":
			if mapping.Label == -1 {
				mapping.Label = i
			}
		case "kind":
			if mapping.Kind == -1 {
				mapping.Kind = i
			}
		case "width":
			if mapping.Width == -1 {
				mapping.Width = i
			}
		case "height":
			if mapping.Height == -1 {
				mapping.Height = i
			}
		case "legwidth":
			if mapping.LegWidth == -1 {
				mapping.LegWidth = i
			}
		case "legheight":
			if mapping.LegHeight == -1 {
				mapping.LegHeight = i
			}
		case "quantity":
			if mapping.Quantity == -1 {
				mapping.Quantity = i
			}
		}
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					assign(role, i)
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{
			Label: 0, Kind: 1, Width: 2, Height: 3,
			LegWidth: 4, LegHeight: 5, Quantity: 6,
		}, false
	}

	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseDim(row []string, idx int, name, rowLabel string) (float64, string) {
	str := getCell(row, idx)
	if str == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, name)
	}
	v, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, name, str)
	}
	if v <= 0 {
		return 0, fmt.Sprintf("%s: %s must be positive", rowLabel, name)
	}
	return v, ""
}

// parseRow builds one shape (before quantity expansion) from a row.
// Returns the shape, the quantity, any error message and any warning.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, shapeCount int) (model.Shape, int, string, string) {
	label := getCell(row, mapping.Label)
	if label == "" {
		label = fmt.Sprintf("Shape %d", shapeCount+1)
	}

	kind := model.KindRectangle
	var warning string
	if kindStr := getCell(row, mapping.Kind); kindStr != "" {
		k, ok := ParseKind(kindStr)
		if !ok {
			return nil, 0, fmt.Sprintf("%s: Unknown shape type '%s'", rowLabel, kindStr), ""
		}
		kind = k
	} else if mapping.Kind >= 0 {
		warning = fmt.Sprintf("%s: Missing shape type, assuming rectangle", rowLabel)
	}

	width, errMsg := parseDim(row, mapping.Width, "width", rowLabel)
	if errMsg != "" {
		return nil, 0, errMsg, ""
	}

	// Circles take their diameter from the width column; height is
	// ignored for them.
	var height float64
	if kind != model.KindCircle {
		height, errMsg = parseDim(row, mapping.Height, "height", rowLabel)
		if errMsg != "" {
			return nil, 0, errMsg, ""
		}
	}

	qty := 1
	if qtyStr := getCell(row, mapping.Quantity); qtyStr != "" {
		q, err := strconv.Atoi(qtyStr)
		if err != nil || q <= 0 {
			return nil, 0, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), ""
		}
		qty = q
	}

	var shape model.Shape
	switch kind {
	case model.KindRectangle:
		shape = model.NewRectangle(label, width, height)

	case model.KindTriangle:
		shape = model.NewTriangle(label, width, height)

	case model.KindCircle:
		shape = model.NewCircle(label, width/2)

	default:
		legW, errMsg := parseDim(row, mapping.LegWidth, "leg width", rowLabel)
		if errMsg != "" {
			return nil, 0, errMsg, ""
		}
		legH, errMsg := parseDim(row, mapping.LegHeight, "leg height", rowLabel)
		if errMsg != "" {
			return nil, 0, errMsg, ""
		}
		corner, _ := cornerForKind(kind)
		ls := model.NewLShape(label, corner, width, height, legW, legH)
		if err := ls.Validate(); err != nil {
			return nil, 0, fmt.Sprintf("%s: %v", rowLabel, err), ""
		}
		shape = ls
	}

	return shape, qty, "", warning
}

func cornerForKind(k model.Kind) (model.Corner, bool) {
	switch k {
	case model.KindLShapeTL:
		return model.CornerTL, true
	case model.KindLShapeTR:
		return model.CornerTR, true
	case model.KindLShapeBL:
		return model.CornerBL, true
	case model.KindLShapeBR:
		return model.CornerBR, true
	default:
		return model.CornerTL, false
	}
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

// ImportCSV imports shapes from a CSV file. It automatically detects
// the delimiter and maps columns by header names. Supports comma,
// semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
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

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports shapes from a CSV reader with a specific
// delimiter. Useful for testing or when the delimiter is already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
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

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports shapes from an Excel (.xlsx) file. Reads the
// first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
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

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel
// data. It detects headers, maps columns, parses each row and expands
// quantities into individual shapes with fresh IDs.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Kind == -1 {
			missing = append(missing, "Type")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		// No recognized header: if the width column of the first row is
		// not numeric, treat it as an unknown header and keep the
		// positional mapping.
		if _, err := strconv.ParseFloat(strings.TrimSpace(getCell(rows[0], 2)), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		shape, qty, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Shapes))

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Shapes = append(result.Shapes, shape)
		for q := 1; q < qty; q++ {
			result.Shapes = append(result.Shapes, cloneShape(shape, q+1))
		}
	}

	return result
}

// cloneShape produces a copy with a fresh ID and a numbered label, so
// quantity-expanded pieces stay distinguishable on labels and layouts.
func cloneShape(s model.Shape, n int) model.Shape {
	label := fmt.Sprintf("%s #%d", s.Label(), n)
	switch v := s.(type) {
	case model.Rectangle:
		return model.NewRectangle(label, v.Width, v.Height)
	case model.LShape:
		return model.NewLShape(label, v.Corner, v.Width, v.Height, v.LegWidth, v.LegHeight)
	case model.Triangle:
		return model.NewTriangle(label, v.Base, v.Height)
	case model.Circle:
		return model.NewCircle(label, v.Radius)
	default:
		return s
	}
}
