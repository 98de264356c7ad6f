// Package importer reads layouts from spreadsheets and CAD drawings.
//
// A grid file lists the layout's rows top first, one face token per cell.
// Tokens are either integer face ids or free-text labels; labels are
// numbered in reading order and become the seated player's name. A row
// weight may follow each row after one empty cell, and a row of column
// weights may follow the grid after one empty row. Missing weights default
// to 1. This is the same shape ExportXLSX writes on its "Grid" sheet.
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

	"github.com/piwi3910/splitgrid/internal/engine"
	"github.com/piwi3910/splitgrid/internal/model"
)

// ImportResult holds the results of an import operation. Layout is only
// meaningful when Errors is empty.
type ImportResult struct {
	Layout    model.Layout
	Occupancy model.Occupancy
	Errors    []string
	Warnings  []string
}

// OK reports whether the import produced a usable layout.
func (r ImportResult) OK() bool {
	return len(r.Errors) == 0 && !r.Layout.Empty()
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
		reader.FieldsPerRecord = -1 // Allow variable field counts

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Only consider delimiters that produce more than 1 column
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

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
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

// ImportCSV imports a grid from a CSV file, detecting the delimiter.
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
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	result = ImportCSVFromReader(bytes.NewReader(data), delimiter)
	result.Warnings = append(warnings, result.Warnings...)
	return result
}

// ImportCSVFromReader imports a grid from a CSV reader with a specific delimiter.
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

	return importFromRows(records, "Line")
}

// GridSheet is the sheet name ImportExcel prefers when a workbook has several.
const GridSheet = "Grid"

// ImportExcel imports a grid from an Excel workbook. It reads the "Grid"
// sheet when present and the first sheet otherwise.
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
	sheet := sheets[0]
	for _, s := range sheets {
		if strings.EqualFold(s, GridSheet) {
			sheet = s
			break
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row")
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string) ImportResult {
	result := ImportResult{Occupancy: model.Occupancy{}}

	start := 0
	for start < len(rows) && isEmptyRow(rows[start]) {
		start++
	}
	end := start
	for end < len(rows) && !isEmptyRow(rows[end]) {
		end++
	}
	if start == end {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	var tokens [][]string
	var rowWeights []float64
	for i := start; i < end; i++ {
		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		cells, weight, errMsg := splitGridRow(rows[i], rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if len(tokens) > 0 && len(cells) != len(tokens[0]) {
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s: Has %d cells, expected %d", rowLabel, len(cells), len(tokens[0])))
			continue
		}
		tokens = append(tokens, cells)
		rowWeights = append(rowWeights, weight)
	}
	if len(result.Errors) > 0 {
		return result
	}
	cols := len(tokens[0])

	colWeights := make([]float64, cols)
	for i := range colWeights {
		colWeights[i] = 1
	}
	for i := end; i < len(rows); i++ {
		if isEmptyRow(rows[i]) {
			continue
		}
		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		for c := 0; c < cols; c++ {
			s := getCell(rows[i], c)
			if s == "" {
				continue
			}
			w, err := strconv.ParseFloat(s, 64)
			if err != nil || w <= 0 {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: Invalid column weight '%s'", rowLabel, s))
				continue
			}
			colWeights[c] = w
		}
		if len(rows[i]) > cols && !isEmptyRow(rows[i][cols:]) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: Ignoring %d extra column weights", rowLabel, len(rows[i])-cols))
		}
		if i+1 < len(rows) && !isEmptyRow(rows[i+1]) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: Ignoring rows after the column weights", rowLabel))
		}
		break
	}
	if len(result.Errors) > 0 {
		return result
	}

	grid, labels := assignIDs(tokens)
	if len(labels) > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Numbered %d labelled faces", len(labels)))
		for id, name := range labels {
			result.Occupancy[id] = model.Seat{Player: name}
		}
	}

	// The file lists the top row first; layouts store row 0 at the bottom.
	n := len(grid)
	layout := model.Layout{
		Grid:       make([][]int, n),
		RowWeights: make([]float64, n),
		ColWeights: colWeights,
	}
	for r := range grid {
		layout.Grid[n-1-r] = grid[r]
		layout.RowWeights[n-1-r] = rowWeights[r]
	}
	for _, id := range layout.FaceIDs() {
		layout.NextID = max(layout.NextID, id+1)
	}

	if _, err := engine.FromLayout(layout, model.DefaultEngineSettings()); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Grid is not a valid layout: %v", err))
		return result
	}
	result.Layout = layout
	return result
}

// splitGridRow returns the face tokens of a row and its weight. Tokens end
// at the first empty cell; the next non-empty cell is the row weight.
func splitGridRow(row []string, rowLabel string) ([]string, float64, string) {
	var cells []string
	i := 0
	for ; i < len(row); i++ {
		s := getCell(row, i)
		if s == "" {
			break
		}
		cells = append(cells, s)
	}
	if len(cells) == 0 {
		return nil, 0, fmt.Sprintf("%s: Row starts with an empty cell", rowLabel)
	}
	for ; i < len(row); i++ {
		s := getCell(row, i)
		if s == "" {
			continue
		}
		w, err := strconv.ParseFloat(s, 64)
		if err != nil || w <= 0 {
			return nil, 0, fmt.Sprintf("%s: Invalid row weight '%s'", rowLabel, s)
		}
		return cells, w, ""
	}
	return cells, 1, ""
}

// assignIDs converts tokens to face ids. When every token is a
// non-negative integer it is used as the id; otherwise distinct tokens are
// numbered from 0 in reading order and returned as labels.
func assignIDs(tokens [][]string) ([][]int, map[int]string) {
	grid := make([][]int, len(tokens))
	numeric := true
	for r, row := range tokens {
		grid[r] = make([]int, len(row))
		for c, tok := range row {
			id, err := strconv.Atoi(tok)
			if err != nil || id < 0 {
				numeric = false
			}
			grid[r][c] = id
		}
	}
	if numeric {
		return grid, nil
	}

	ids := make(map[string]int)
	labels := make(map[int]string)
	for r, row := range tokens {
		for c, tok := range row {
			id, ok := ids[tok]
			if !ok {
				id = len(ids)
				ids[tok] = id
				labels[id] = tok
			}
			grid[r][c] = id
		}
	}
	return grid, labels
}
