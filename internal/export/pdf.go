package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/splitgrid/internal/model"
)

// pageDims returns the portrait width and height in mm of a supported page size.
func pageDims(pageSize string) (string, float64, float64) {
	if strings.EqualFold(pageSize, "Letter") {
		return "Letter", 215.9, 279.4
	}
	return "A4", 210.0, 297.0
}

// Page layout constants in mm.
const (
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	rowHeight    = 6.0
)

// ExportPDF generates a layout sheet: a scaled diagram of every face on the
// first page followed by a face table and the track weights.
func ExportPDF(path string, sheet Sheet, pageSize string) error {
	if len(sheet.Faces) == 0 {
		return ErrEmptyLayout
	}

	name, pageWidth, pageHeight := pageDims(pageSize)
	pdf := fpdf.New("P", "mm", name, "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	bottom := renderDiagram(pdf, sheet, pageWidth, pageHeight)
	renderFaceTable(pdf, sheet, bottom+8, pageWidth, pageHeight)

	return pdf.OutputFileAndClose(path)
}

// renderDiagram draws the layout square and returns the Y of its lower edge.
func renderDiagram(pdf *fpdf.Fpdf, sheet Sheet, pageWidth, pageHeight float64) float64 {
	rows, cols := len(sheet.Layout.Grid), 0
	if rows > 0 {
		cols = len(sheet.Layout.Grid[0])
	}

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s (%d faces, %dx%d grid)", sheet.Name, len(sheet.Faces), rows, cols)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	side := math.Min(drawWidth, pageHeight*0.5)
	scale := side / sheet.Size
	offsetX := marginLeft + (drawWidth-side)/2
	offsetY := drawAreaTop

	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, side, side, "D")

	for _, f := range sheet.Faces {
		r := f.Rect.Flip(sheet.Size)
		fx := offsetX + r.X*scale
		fy := offsetY + r.Y*scale
		fw := r.Width * scale
		fh := r.Height * scale

		pdf.SetFillColor(faceRGB(sheet.Color(f.ID)))
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(fx, fy, fw, fh, "FD")

		// Label only if the rectangle is large enough
		if fw > 15 && fh > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(fw, fh))
			pdf.SetTextColor(0, 0, 0)
			label := sheet.Label(f.ID)
			labelW := pdf.GetStringWidth(label)
			if labelW < fw-2 {
				pdf.SetXY(fx+(fw-labelW)/2, fy+fh/2-2)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
		}
	}

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)
	sizeLabel := fmt.Sprintf("%g x %g", sheet.Size, sheet.Size)
	w := pdf.GetStringWidth(sizeLabel)
	pdf.SetXY(offsetX+(side-w)/2, offsetY+side+1)
	pdf.CellFormat(w, 4, sizeLabel, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	return offsetY + side + 5
}

// renderFaceTable lists every face with its rectangle, starting at y and
// continuing onto new pages as needed.
func renderFaceTable(pdf *fpdf.Fpdf, sheet Sheet, y, pageWidth, pageHeight float64) {
	colWidths := []float64{15, 45, 25, 25, 25, 25, 20}
	headers := []string{"Face", "Player", "X", "Y", "Width", "Height", "Share"}

	header := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		x := marginLeft
		for i, h := range headers {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[i], rowHeight, h, "1", 0, "C", true, 0, "")
			x += colWidths[i]
		}
		y += rowHeight
	}
	header()

	pdf.SetFont("Helvetica", "", 9)
	for i, f := range sheet.Faces {
		if y+rowHeight > pageHeight-marginBottom {
			pdf.AddPage()
			y = marginTop
			header()
			pdf.SetFont("Helvetica", "", 9)
		}
		player := ""
		if seat, ok := sheet.Occupancy[f.ID]; ok {
			player = seat.Player
		}
		rowData := []string{
			fmt.Sprintf("%d", f.ID),
			player,
			fmt.Sprintf("%.3f", f.Rect.X),
			fmt.Sprintf("%.3f", f.Rect.Y),
			fmt.Sprintf("%.3f", f.Rect.Width),
			fmt.Sprintf("%.3f", f.Rect.Height),
			fmt.Sprintf("%.1f%%", sheet.Share(f)*100),
		}

		// Alternate row background
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		x := marginLeft
		for j, cell := range rowData {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[j], rowHeight, cell, "1", 0, "C", true, 0, "")
			x += colWidths[j]
		}
		y += rowHeight
	}

	y += 6
	if y+3*rowHeight > pageHeight-marginBottom {
		pdf.AddPage()
		y = marginTop
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(60, rowHeight, "Track weights", "", 0, "L", false, 0, "")
	y += rowHeight
	pdf.SetFont("Helvetica", "", 9)
	for _, line := range []string{
		"Rows (bottom to top): " + formatWeights(sheet.Layout.RowWeights),
		"Columns (left to right): " + formatWeights(sheet.Layout.ColWeights),
	} {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(pageWidth-marginLeft-marginRight-5, 5, line, "", 0, "L", false, 0, "")
		y += 5
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by SplitGrid", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func formatWeights(w []float64) string {
	parts := make([]string, len(w))
	for i, v := range w {
		parts[i] = fmt.Sprintf("%.3g", v)
	}
	return strings.Join(parts, " : ")
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 10
	case minDim > 20:
		return 8
	default:
		return 6
	}
}

// faceRGB converts a model color for fpdf.
func faceRGB(c model.RGB) (int, int, int) {
	return int(c.R), int(c.G), int(c.B)
}
