package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
)

// DXF layer names.
const (
	LayerFaces  = "FACES"
	LayerLabels = "LABELS"
	LayerFrame  = "FRAME"
)

// ExportDXF writes each face as a closed LWPOLYLINE on the FACES layer with
// its id as TEXT on the LABELS layer. DXF shares the layout's bottom-left
// origin so coordinates are written unchanged. ImportDXF reads the result back.
func ExportDXF(path string, sheet Sheet) error {
	if len(sheet.Faces) == 0 {
		return ErrEmptyLayout
	}

	d := dxf.NewDrawing()
	if _, err := d.AddLayer(LayerFrame, color.White, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer: %w", err)
	}
	if _, err := d.LwPolyline(true,
		[]float64{0, 0},
		[]float64{sheet.Size, 0},
		[]float64{sheet.Size, sheet.Size},
		[]float64{0, sheet.Size},
	); err != nil {
		return fmt.Errorf("failed to draw frame: %w", err)
	}

	if _, err := d.AddLayer(LayerFaces, color.Cyan, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer: %w", err)
	}
	for _, f := range sheet.Faces {
		r := f.Rect
		if _, err := d.LwPolyline(true,
			[]float64{r.X, r.Y},
			[]float64{r.Right(), r.Y},
			[]float64{r.Right(), r.Top()},
			[]float64{r.X, r.Top()},
		); err != nil {
			return fmt.Errorf("failed to draw face %d: %w", f.ID, err)
		}
	}

	if _, err := d.AddLayer(LayerLabels, color.Yellow, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer: %w", err)
	}
	for _, f := range sheet.Faces {
		h := min(f.Rect.Width, f.Rect.Height) / 8
		if _, err := d.Text(fmt.Sprintf("%d", f.ID), f.Rect.X+h/2, f.Rect.Y+h/2, 0, h); err != nil {
			return fmt.Errorf("failed to label face %d: %w", f.ID, err)
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}
	return nil
}
