package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	facesSheet = "Faces"
	gridSheet  = "Grid"
)

// ExportXLSX writes a workbook with a "Faces" table and a "Grid" sheet that
// mirrors the id matrix with each cell filled in its face color. The grid
// sheet lists the top row first, with row and column weights alongside.
func ExportXLSX(path string, sheet Sheet) error {
	if len(sheet.Faces) == 0 {
		return ErrEmptyLayout
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", facesSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writeFaceTable(f, sheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(gridSheet); err != nil {
		return fmt.Errorf("failed to add grid sheet: %w", err)
	}
	if err := writeGrid(f, sheet); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, name string, row int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(name, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func writeFaceTable(f *excelize.File, sheet Sheet) error {
	header := []any{"Face", "Player", "X", "Y", "Width", "Height", "Share", "Anchor Row", "Anchor Col", "Neighbors"}
	if err := setRow(f, facesSheet, 1, header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(facesSheet, "A1", last, bold); err != nil {
		return err
	}

	for i, face := range sheet.Faces {
		player := ""
		if seat, ok := sheet.Occupancy[face.ID]; ok {
			player = seat.Player
		}
		neighbors := make([]string, len(sheet.Adjacency[face.ID]))
		for j, n := range sheet.Adjacency[face.ID] {
			neighbors[j] = fmt.Sprint(n)
		}
		row := []any{
			face.ID, player,
			face.Rect.X, face.Rect.Y, face.Rect.Width, face.Rect.Height,
			sheet.Share(face),
			face.AnchorRow, face.AnchorCol,
			strings.Join(neighbors, " "),
		}
		if err := setRow(f, facesSheet, i+2, row); err != nil {
			return fmt.Errorf("failed to write face %d: %w", face.ID, err)
		}
	}
	return nil
}

func writeGrid(f *excelize.File, sheet Sheet) error {
	grid := sheet.Layout.Grid
	rows := len(grid)
	styles := make(map[int]int)
	styleFor := func(id int) (int, error) {
		if s, ok := styles[id]; ok {
			return s, nil
		}
		hex := strings.TrimPrefix(sheet.Color(id).Hex(), "#")
		s, err := f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Color: []string{hex}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Border: []excelize.Border{
				{Type: "left", Color: "333333", Style: 1},
				{Type: "right", Color: "333333", Style: 1},
				{Type: "top", Color: "333333", Style: 1},
				{Type: "bottom", Color: "333333", Style: 1},
			},
		})
		styles[id] = s
		return s, err
	}

	for r := range grid {
		// Spreadsheets read top-down; the layout's row 0 is at the bottom.
		src := rows - 1 - r
		for c, id := range grid[src] {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(gridSheet, cell, id); err != nil {
				return err
			}
			style, err := styleFor(id)
			if err != nil {
				return fmt.Errorf("failed to create style: %w", err)
			}
			if err := f.SetCellStyle(gridSheet, cell, cell, style); err != nil {
				return err
			}
		}
		weightCell, _ := excelize.CoordinatesToCellName(len(grid[src])+2, r+1)
		if err := f.SetCellValue(gridSheet, weightCell, sheet.Layout.RowWeights[src]); err != nil {
			return err
		}
	}
	for c, w := range sheet.Layout.ColWeights {
		cell, _ := excelize.CoordinatesToCellName(c+1, rows+2)
		if err := f.SetCellValue(gridSheet, cell, w); err != nil {
			return err
		}
	}
	return nil
}
