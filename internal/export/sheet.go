// Package export renders tiling layouts to printable and interchange
// formats: PDF sheets, QR seat cards, spreadsheets, DXF drawings and
// adjacency diagrams.
package export

import (
	"errors"
	"fmt"
	"sort"

	"github.com/piwi3910/splitgrid/internal/engine"
	"github.com/piwi3910/splitgrid/internal/model"
)

// ErrEmptyLayout is returned when there are no faces to export.
var ErrEmptyLayout = errors.New("layout has no faces")

// Sheet is an immutable view of a layout prepared for the exporters.
type Sheet struct {
	Name      string
	Size      float64
	Layout    model.Layout
	Faces     []model.Face // ascending by id
	Adjacency map[int][]int
	Occupancy model.Occupancy
	Palette   []string
}

// NewSheet snapshots a graph together with its seat assignments.
func NewSheet(name string, g *engine.Graph, occ model.Occupancy, palette []string) Sheet {
	s := Sheet{
		Name:      name,
		Size:      g.Settings().Size,
		Layout:    g.Layout(),
		Adjacency: make(map[int][]int),
		Occupancy: occ.Clone(),
		Palette:   palette,
	}
	for _, id := range g.FaceIDs() {
		f, _ := g.Face(id)
		s.Faces = append(s.Faces, f)
		s.Adjacency[id] = g.Neighbors(id)
	}
	return s
}

// Color returns the fill color of a face.
func (s Sheet) Color(id int) model.RGB {
	return model.FaceColor(id, s.Occupancy, s.Palette)
}

// Label returns the display text of a face: the seated player if any,
// otherwise its id.
func (s Sheet) Label(id int) string {
	if seat, ok := s.Occupancy[id]; ok && seat.Player != "" {
		return seat.Player
	}
	return fmt.Sprintf("Face %d", id)
}

// Edges returns every adjacent face pair once, with the lower id first.
func (s Sheet) Edges() [][2]int {
	var out [][2]int
	for a, ns := range s.Adjacency {
		for _, b := range ns {
			if a < b {
				out = append(out, [2]int{a, b})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out
}

// Share returns the fraction of the square covered by a face.
func (s Sheet) Share(f model.Face) float64 {
	if s.Size <= 0 {
		return 0
	}
	return f.Rect.Area() / (s.Size * s.Size)
}
