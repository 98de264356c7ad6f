// Package engine implements the split-screen tiling graph: a unit square
// divided into non-overlapping rectangular faces laid out on a weighted grid.
//
// A Graph is owned by a single caller and is not safe for concurrent use.
// Every structural edit leaves the grid fully covered with one rectangle
// per live face, and recomputes face rectangles before returning.
package engine

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/splitgrid/internal/model"
)

// Graph is the tiling engine.
type Graph struct {
	settings model.EngineSettings
	logger   *log.Logger

	grid grid
	rows weights
	cols weights
	reg  registry
}

// New creates an empty graph.
func New(settings model.EngineSettings) *Graph {
	return &Graph{
		settings: settings.Normalized(),
		logger:   log.New(io.Discard),
	}
}

// SetLogger attaches a logger for edit tracing and invariant recovery.
// A nil logger discards output.
func (g *Graph) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	g.logger = l
}

// Settings returns the engine settings in effect.
func (g *Graph) Settings() model.EngineSettings {
	return g.settings
}

// Len returns the number of live faces.
func (g *Graph) Len() int {
	return g.reg.live
}

// Empty reports whether the graph has no faces.
func (g *Graph) Empty() bool {
	return g.reg.live == 0
}

// Clear resets the graph to the empty state. Face numbering restarts at 0.
func (g *Graph) Clear() {
	g.grid = nil
	g.rows = nil
	g.cols = nil
	g.reg.reset()
	g.logger.Debug("cleared graph")
}

// AddInitialFace seeds an empty graph with a single face covering the whole
// square at unit weight.
func (g *Graph) AddInitialFace() (int, error) {
	if !g.Empty() {
		return 0, ErrGraphNotEmpty
	}
	id := g.reg.alloc()
	g.grid = grid{{id}}
	g.rows = weights{1}
	g.cols = weights{1}
	g.logger.Debug("added initial face", "face", id)
	return id, g.finishEdit("add initial face")
}

// Faces returns a copy of every live face keyed by id.
func (g *Graph) Faces() map[int]model.Face {
	out := make(map[int]model.Face, g.reg.live)
	for _, id := range g.reg.ids() {
		f, _ := g.reg.get(id)
		out[id] = *f
	}
	return out
}

// FaceIDs returns the live face ids in ascending order.
func (g *Graph) FaceIDs() []int {
	return g.reg.ids()
}

// Face returns the face with the given id.
func (g *Graph) Face(id int) (model.Face, error) {
	f, ok := g.reg.get(id)
	if !ok {
		return model.Face{}, fmt.Errorf("face %d: %w", id, ErrFaceNotFound)
	}
	return *f, nil
}

// Dimensions returns the number of grid rows and columns.
func (g *Graph) Dimensions() (rows, cols int) {
	return g.grid.rows(), g.grid.cols()
}

// Grid returns a copy of the face id matrix.
func (g *Graph) Grid() [][]int {
	return g.grid.clone()
}

// RowWeights returns a copy of the row weights.
func (g *Graph) RowWeights() []float64 {
	return g.rows.clone()
}

// ColWeights returns a copy of the column weights.
func (g *Graph) ColWeights() []float64 {
	return g.cols.clone()
}

// Neighbors returns the ids of faces sharing an edge with id, ascending.
func (g *Graph) Neighbors(id int) []int {
	return g.grid.neighbors(id, g.grid.cells(id))
}

// FaceAt returns the face covering the point (x, y) in layout units.
// Points on the far edges of the square belong to the outermost faces.
func (g *Graph) FaceAt(x, y float64) (model.Face, bool) {
	size := g.settings.Size
	if x < 0 || y < 0 || x > size || y > size {
		return model.Face{}, false
	}
	for _, id := range g.reg.ids() {
		f, _ := g.reg.get(id)
		r := f.Rect
		inX := x >= r.X && (x < r.Right() || (x == size && r.Right() >= size-g.settings.Epsilon))
		inY := y >= r.Y && (y < r.Top() || (y == size && r.Top() >= size-g.settings.Epsilon))
		if inX && inY {
			return *f, true
		}
	}
	return model.Face{}, false
}

// Layout returns a snapshot of the graph that FromLayout can restore.
func (g *Graph) Layout() model.Layout {
	l := model.Layout{NextID: g.reg.next()}
	if g.grid.rows() > 0 {
		l.Grid = g.grid.clone()
		l.RowWeights = g.rows.clone()
		l.ColWeights = g.cols.clone()
	}
	return l
}

// FromLayout builds a graph from a snapshot. The snapshot must describe a
// rectangular grid with positive weights in which every face is a rectangle.
func FromLayout(l model.Layout, settings model.EngineSettings) (*Graph, error) {
	g := New(settings)
	if err := g.Restore(l); err != nil {
		return nil, err
	}
	return g, nil
}

// Restore replaces the graph state with a snapshot. On error the graph is
// left unchanged.
func (g *Graph) Restore(l model.Layout) error {
	if l.Empty() {
		g.Clear()
		g.reg.reserve(l.NextID)
		return nil
	}
	cols := len(l.Grid[0])
	for r, row := range l.Grid {
		if len(row) != cols {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvariantViolation, r, len(row), cols)
		}
	}
	if len(l.RowWeights) != len(l.Grid) || len(l.ColWeights) != cols {
		return fmt.Errorf("%w: %d row and %d column weights for a %dx%d grid",
			ErrInvalidWeight, len(l.RowWeights), len(l.ColWeights), len(l.Grid), cols)
	}
	if !validWeights(l.RowWeights) || !validWeights(l.ColWeights) {
		return fmt.Errorf("%w: weights must be positive", ErrInvalidWeight)
	}

	next := &Graph{settings: g.settings, logger: g.logger}
	next.grid = grid(l.Clone().Grid)
	next.rows = weights(l.RowWeights).clone()
	next.cols = weights(l.ColWeights).clone()
	for _, id := range l.FaceIDs() {
		if id < 0 {
			return fmt.Errorf("%w: negative face id %d", ErrInvariantViolation, id)
		}
		next.reg.ensure(id)
	}
	next.reg.reserve(l.NextID)
	if err := next.Validate(); err != nil {
		return err
	}
	next.Recalculate()

	*g = *next
	return nil
}
