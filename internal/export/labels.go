package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// SeatCard holds the data encoded into each seat card's QR code.
type SeatCard struct {
	Layout string  `json:"layout"`
	Face   int     `json:"face"`
	Player string  `json:"player,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Share  float64 `json:"share"`
}

// Card layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
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
	swatchSize      = 3.0
)

// ExportLabels generates a PDF with one QR-coded seat card per face. The QR
// code encodes the card as JSON so a player can scan which view is theirs.
func ExportLabels(path string, sheet Sheet) error {
	cards := CollectSeatCards(sheet)
	if len(cards) == 0 {
		return ErrEmptyLayout
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, card := range cards {
		// Add new page when needed
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderSeatCard(pdf, x, y, card, sheet); err != nil {
			return fmt.Errorf("failed to render card for face %d: %w", card.Face, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderSeatCard draws a single card at the given position.
func renderSeatCard(pdf *fpdf.Fpdf, x, y float64, card SeatCard, sheet Sheet) error {
	// Draw light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("failed to marshal seat card: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_face_%d", card.Face)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	// QR code on the right side of the card
	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Face color swatch next to the title
	pdf.SetFillColor(faceRGB(sheet.Color(card.Face)))
	pdf.Rect(textX, y+labelPadding+0.75, swatchSize, swatchSize, "F")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX+swatchSize+1, y+labelPadding)
	title := truncate(pdf, sheet.Label(card.Face), textW-swatchSize-1)
	pdf.CellFormat(textW-swatchSize-1, 4.5, title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%.3g x %.3g (%.0f%%)", card.Width, card.Height, card.Share*100)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pos := fmt.Sprintf("Face %d @ (%.3g, %.3g)", card.Face, card.X, card.Y)
	pdf.CellFormat(textW, 3, pos, "", 1, "L", false, 0, "")

	pdf.SetXY(textX, y+labelPadding+12.5)
	pdf.CellFormat(textW, 3, truncate(pdf, card.Layout, textW), "", 0, "L", false, 0, "")

	// Reset text color
	pdf.SetTextColor(0, 0, 0)
	return nil
}

// truncate shortens s with an ellipsis until it fits in width.
func truncate(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}

// CollectSeatCards builds one card per face in ascending id order.
func CollectSeatCards(sheet Sheet) []SeatCard {
	var cards []SeatCard
	for _, f := range sheet.Faces {
		card := SeatCard{
			Layout: sheet.Name,
			Face:   f.ID,
			X:      f.Rect.X,
			Y:      f.Rect.Y,
			Width:  f.Rect.Width,
			Height: f.Rect.Height,
			Share:  sheet.Share(f),
		}
		if seat, ok := sheet.Occupancy[f.ID]; ok {
			card.Player = seat.Player
		}
		cards = append(cards, card)
	}
	return cards
}
