package widgets

import (
	"fmt"
	"image/color"
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/splitgrid/internal/model"
)

// FaceSource is the read side of a tiling graph that the canvas draws.
type FaceSource interface {
	Faces() map[int]model.Face
	FaceAt(x, y float64) (model.Face, bool)
	Settings() model.EngineSettings
}

// NoSelection marks that no face is selected.
const NoSelection = -1

// LayoutCanvas draws the faces of a layout scaled into a square and lets the
// user select one by tapping it.
type LayoutCanvas struct {
	widget.BaseWidget

	source    FaceSource
	occupancy model.Occupancy
	palette   []string
	selected  int
	minSide   float32

	// OnFaceTapped is called with the id of the tapped face, or NoSelection
	// when the tap lands outside every face.
	OnFaceTapped func(id int)
}

// NewLayoutCanvas creates a canvas for the given source.
func NewLayoutCanvas(source FaceSource, palette []string, minSide float32) *LayoutCanvas {
	c := &LayoutCanvas{
		source:   source,
		palette:  palette,
		selected: NoSelection,
		minSide:  minSide,
	}
	c.ExtendBaseWidget(c)
	return c
}

// SetSource swaps the graph being drawn.
func (c *LayoutCanvas) SetSource(source FaceSource) {
	c.source = source
	c.Refresh()
}

// SetOccupancy updates seat labels and colors.
func (c *LayoutCanvas) SetOccupancy(occ model.Occupancy) {
	c.occupancy = occ
	c.Refresh()
}

// SetPalette replaces the colors cycled per face id.
func (c *LayoutCanvas) SetPalette(palette []string) {
	c.palette = palette
	c.Refresh()
}

// SetSelected highlights a face.
func (c *LayoutCanvas) SetSelected(id int) {
	c.selected = id
	c.Refresh()
}

// Selected returns the highlighted face id or NoSelection.
func (c *LayoutCanvas) Selected() int {
	return c.selected
}

// scale returns pixels per layout unit and the origin of the drawn square.
func (c *LayoutCanvas) scale(size fyne.Size) (float32, fyne.Position) {
	side := size.Width
	if size.Height < side {
		side = size.Height
	}
	layoutSize := float32(model.DefaultEngineSettings().Size)
	if c.source != nil {
		layoutSize = float32(c.source.Settings().Size)
	}
	origin := fyne.NewPos((size.Width-side)/2, (size.Height-side)/2)
	return side / layoutSize, origin
}

// Tapped selects the face under the pointer.
func (c *LayoutCanvas) Tapped(ev *fyne.PointEvent) {
	if c.source == nil {
		return
	}
	scale, origin := c.scale(c.Size())
	if scale <= 0 {
		return
	}
	size := c.source.Settings().Size
	x := float64((ev.Position.X - origin.X) / scale)
	y := size - float64((ev.Position.Y-origin.Y)/scale)

	id := NoSelection
	if f, ok := c.source.FaceAt(x, y); ok {
		id = f.ID
	}
	c.SetSelected(id)
	if c.OnFaceTapped != nil {
		c.OnFaceTapped(id)
	}
}

func (c *LayoutCanvas) CreateRenderer() fyne.WidgetRenderer {
	r := &layoutCanvasRenderer{lc: c}
	r.rebuild()
	return r
}

type layoutCanvasRenderer struct {
	lc      *LayoutCanvas
	objects []fyne.CanvasObject
}

func (r *layoutCanvasRenderer) rebuild() {
	r.objects = nil
	lc := r.lc
	size := lc.Size()
	scale, origin := lc.scale(size)
	side := scale * float32(model.DefaultEngineSettings().Size)
	if lc.source != nil {
		side = scale * float32(lc.source.Settings().Size)
	}

	bg := canvas.NewRectangle(color.NRGBA{R: 240, G: 240, B: 240, A: 255})
	bg.StrokeColor = color.NRGBA{R: 80, G: 80, B: 80, A: 255}
	bg.StrokeWidth = 2
	bg.Resize(fyne.NewSize(side, side))
	bg.Move(origin)
	r.objects = append(r.objects, bg)

	if lc.source == nil {
		return
	}
	faces := lc.source.Faces()
	if len(faces) == 0 {
		hint := canvas.NewText("Empty layout: add an initial face to begin", color.NRGBA{R: 90, G: 90, B: 90, A: 255})
		hint.TextSize = 12
		hint.Move(fyne.NewPos(origin.X+8, origin.Y+8))
		r.objects = append(r.objects, hint)
		return
	}

	ids := make([]int, 0, len(faces))
	for id := range faces {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	layoutSize := lc.source.Settings().Size
	for _, id := range ids {
		f := faces[id]
		rect := f.Rect.Flip(layoutSize)
		px := origin.X + float32(rect.X)*scale
		py := origin.Y + float32(rect.Y)*scale
		pw := float32(rect.Width) * scale
		ph := float32(rect.Height) * scale

		fc := model.FaceColor(id, lc.occupancy, lc.palette)
		fill := canvas.NewRectangle(color.NRGBA{R: fc.R, G: fc.G, B: fc.B, A: 200})
		fill.StrokeColor = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
		fill.StrokeWidth = 1
		if id == lc.selected {
			fill.StrokeColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			fill.StrokeWidth = 4
		}
		fill.Resize(fyne.NewSize(pw, ph))
		fill.Move(fyne.NewPos(px, py))
		r.objects = append(r.objects, fill)

		if pw > 30 && ph > 16 {
			text := fmt.Sprintf("%d", id)
			if seat, ok := lc.occupancy[id]; ok && seat.Player != "" {
				text = fmt.Sprintf("%d: %s", id, seat.Player)
			}
			label := canvas.NewText(text, color.Black)
			label.TextSize = 12
			label.TextStyle = fyne.TextStyle{Bold: id == lc.selected}
			label.Move(fyne.NewPos(px+4, py+3))
			r.objects = append(r.objects, label)
		}
	}
}

func (r *layoutCanvasRenderer) Layout(size fyne.Size)        { r.rebuild() }
func (r *layoutCanvasRenderer) Refresh()                     { r.rebuild(); canvas.Refresh(r.lc) }
func (r *layoutCanvasRenderer) Destroy()                     {}
func (r *layoutCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *layoutCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(r.lc.minSide, r.lc.minSide)
}
