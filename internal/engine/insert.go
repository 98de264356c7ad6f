package engine

import (
	"fmt"

	"github.com/piwi3910/splitgrid/internal/model"
)

// insertion is where a new full-width row or full-height column goes.
type insertion int

const (
	insertAtRowEnd insertion = iota
	insertAtRowStart
	insertAtColEnd
	insertAtColStart
)

// insertionFor maps an edge to its insertion position. Rows are laid out
// from Y=0 upwards, so the top edge appends a row and the bottom edge
// prepends one.
func insertionFor(e model.Edge) (insertion, bool) {
	switch e {
	case model.EdgeTop:
		return insertAtRowEnd, true
	case model.EdgeBottom:
		return insertAtRowStart, true
	case model.EdgeRight:
		return insertAtColEnd, true
	case model.EdgeLeft:
		return insertAtColStart, true
	}
	return 0, false
}

// InsertFromEdge adds a full row or column along the given edge, owned by a
// single new face. The new track gets the mean weight of its dimension;
// existing weights are untouched.
func (g *Graph) InsertFromEdge(edge model.Edge) (int, error) {
	pos, ok := insertionFor(edge)
	if !ok {
		return 0, fmt.Errorf("edge %v: %w", edge, ErrInvalidEdge)
	}
	if g.Empty() {
		return 0, ErrEmptyGraph
	}

	id := g.reg.alloc()
	switch pos {
	case insertAtRowEnd, insertAtRowStart:
		at := 0
		if pos == insertAtRowEnd {
			at = g.grid.rows()
		}
		row := make([]int, g.grid.cols())
		for i := range row {
			row[i] = id
		}
		w := g.rows.mean()
		g.grid = g.grid.insertRow(at, row)
		g.rows = g.rows.insert(at, w)
	case insertAtColEnd, insertAtColStart:
		at := 0
		if pos == insertAtColEnd {
			at = g.grid.cols()
		}
		col := make([]int, g.grid.rows())
		for i := range col {
			col[i] = id
		}
		w := g.cols.mean()
		g.grid = g.grid.insertCol(at, col)
		g.cols = g.cols.insert(at, w)
	}

	g.logger.Debug("inserted face from edge", "face", id, "edge", edge)
	return id, g.finishEdit("insert from edge")
}
