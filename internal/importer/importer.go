// Package importer reads item lists from CSV, Excel and DXF files.
// Tabular input gets automatic delimiter detection and case-insensitive
// header recognition with a positional fallback.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/packlayout/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Items    []model.PackableItem
	Errors   []string
	Warnings []string
}

// OK reports whether at least one item was read and nothing failed.
func (r ImportResult) OK() bool {
	return len(r.Errors) == 0 && len(r.Items) > 0
}

// Column roles. The order is also the positional layout used when a file has
// no header row, except for ID which is never positional.
const (
	colLabel = iota
	colMinWidth
	colMinHeight
	colPriority
	colMaxWidth
	colMaxHeight
	colAspectRatio
	colID
	numColumns
)

// ColumnMapping holds the index of each column role, or -1 when absent.
type ColumnMapping [numColumns]int

// headerAliases lists accepted header names per role (all lowercase).
var headerAliases = [numColumns][]string{
	colLabel:       {"label", "name", "title", "description", "desc", "item"},
	colMinWidth:    {"min width", "min_width", "minwidth", "width", "w"},
	colMinHeight:   {"min height", "min_height", "minheight", "height", "h"},
	colPriority:    {"priority", "prio", "weight", "importance", "p"},
	colMaxWidth:    {"max width", "max_width", "maxwidth"},
	colMaxHeight:   {"max height", "max_height", "maxheight"},
	colAspectRatio: {"aspect ratio", "aspect_ratio", "aspect", "ratio"},
	colID:          {"id", "key", "ref", "slug"},
}

var columnNames = [numColumns]string{
	colLabel:       "Label",
	colMinWidth:    "Min Width",
	colMinHeight:   "Min Height",
	colPriority:    "Priority",
	colMaxWidth:    "Max Width",
	colMaxHeight:   "Max Height",
	colAspectRatio: "Aspect Ratio",
	colID:          "ID",
}

// positionalMapping is used for files without a header row:
// Label, Min Width, Min Height, Priority, Max Width, Max Height, Aspect Ratio.
func positionalMapping() ColumnMapping {
	var m ColumnMapping
	for role := range m {
		m[role] = role
	}
	m[colID] = -1
	return m
}

// DetectCSVDelimiter picks the most likely delimiter out of comma, semicolon,
// tab and pipe. The candidate giving the most rows with the same column count
// as the first row wins; wider first rows break ties.
func DetectCSVDelimiter(data []byte) rune {
	best, bestScore := ',', 0

	for _, delim := range []rune{',', ';', '\t', '|'} {
		records, err := readCSV(bytes.NewReader(data), delim)
		if err != nil || len(records) == 0 || len(records[0]) < 2 {
			continue
		}
		width := len(records[0])
		consistent := 0
		for _, row := range records {
			if len(row) == width {
				consistent++
			}
		}
		if score := consistent*10 + width; score > bestScore {
			best, bestScore = delim, score
		}
	}
	return best
}

func readCSV(r io.Reader, delim rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delim
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

// DetectColumns examines a row and returns a ColumnMapping plus true when it
// looks like a header. Otherwise the positional mapping and false are returned.
func DetectColumns(row []string) (ColumnMapping, bool) {
	var mapping ColumnMapping
	for role := range mapping {
		mapping[role] = -1
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			if mapping[role] != -1 || !contains(aliases, normalized) {
				continue
			}
			mapping[role] = i
			isHeader = true
			break
		}
	}

	if !isHeader {
		return positionalMapping(), false
	}
	return mapping, true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// getCell safely retrieves a trimmed cell value; out of range yields "".
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseNumber reads an optional numeric cell. Empty cells return def.
func parseNumber(row []string, idx int, def float64) (float64, string, bool) {
	s := getCell(row, idx)
	if s == "" {
		return def, s, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, s, false
	}
	return v, s, true
}

// parseRow extracts an item from a row. It returns the item and an error
// message, which is empty on success.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, itemCount int) (model.PackableItem, string) {
	item := model.PackableItem{
		ID:       getCell(row, mapping[colID]),
		Label:    getCell(row, mapping[colLabel]),
		Priority: 1,
	}
	if item.ID == "" {
		item.ID = fmt.Sprintf("item-%d", itemCount+1)
	}

	for _, role := range []int{colMinWidth, colMinHeight} {
		if getCell(row, mapping[role]) == "" {
			return model.PackableItem{}, fmt.Sprintf("%s: Missing %s value", rowLabel, strings.ToLower(columnNames[role]))
		}
	}

	fields := []struct {
		role int
		dst  *float64
	}{
		{colMinWidth, &item.MinWidth},
		{colMinHeight, &item.MinHeight},
		{colPriority, &item.Priority},
		{colMaxWidth, &item.MaxWidth},
		{colMaxHeight, &item.MaxHeight},
		{colAspectRatio, &item.AspectRatio},
	}
	for _, f := range fields {
		v, raw, ok := parseNumber(row, mapping[f.role], *f.dst)
		if !ok {
			return model.PackableItem{}, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, strings.ToLower(columnNames[f.role]), raw)
		}
		*f.dst = v
	}

	if item.MinWidth < 0 || item.MinHeight < 0 || item.MaxWidth < 0 || item.MaxHeight < 0 {
		return model.PackableItem{}, fmt.Sprintf("%s: Sizes must not be negative", rowLabel)
	}
	return item, ""
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

// ImportCSV imports items from a CSV file, detecting the delimiter and
// mapping columns by header names.
func ImportCSV(path string) ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ImportResult{Errors: []string{"File is empty"}}
	}

	var warnings []string
	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	records, err := readCSV(bytes.NewReader(data), delimiter)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	return importFromRows(records, "Line", warnings)
}

// ImportCSVFromReader imports items from a reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	records, err := readCSV(reader, delimiter)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	return importFromRows(records, "Line", nil)
}

// ImportExcel imports items from the first sheet of an Excel workbook.
func ImportExcel(path string) ImportResult {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open Excel file: %v", err)}}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ImportResult{Errors: []string{"Excel file has no sheets"}}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read Excel data: %v", err)}}
	}
	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, warnings []string) ImportResult {
	result := ImportResult{Items: []model.PackableItem{}, Warnings: warnings}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		var missing []string
		for _, role := range []int{colMinWidth, colMinHeight} {
			if mapping[role] == -1 {
				missing = append(missing, columnNames[role])
			}
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		// An unrecognized header still has a non-numeric width cell.
		if _, err := strconv.ParseFloat(getCell(rows[0], colMinWidth), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		if isEmptyRow(rows[i]) {
			continue
		}
		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		item, errMsg := parseRow(rows[i], mapping, rowLabel, len(result.Items))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Items = append(result.Items, item)
	}

	result.Warnings = append(result.Warnings, model.ValidateItems(result.Items)...)
	return result
}
