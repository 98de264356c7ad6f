package engine

import (
	"fmt"

	"github.com/piwi3910/splitgrid/internal/model"
)

// Subdivide splits a face in two along axis and returns the original id and
// the id of the new face. A vertical split produces a left and a right
// half; a horizontal split a lower and an upper half. The new face always
// takes the second half.
//
// When the face spans a single track in the split direction, that track is
// halved and a sibling track is inserted after it. Other faces crossing the
// track are widened into the sibling so their rectangles are preserved.
// When the face spans several tracks, the tracks from count/2 onwards are
// handed to the new face and the grid does not grow.
func (g *Graph) Subdivide(id int, axis model.Axis) (int, int, error) {
	if g.Empty() {
		return 0, 0, ErrEmptyGraph
	}
	if !axis.Valid() {
		return 0, 0, fmt.Errorf("axis %v: %w", axis, ErrInvalidAxis)
	}
	if !g.reg.has(id) || len(g.grid.cells(id)) == 0 {
		return 0, 0, fmt.Errorf("face %d: %w", id, ErrFaceNotFound)
	}

	newID := g.reg.alloc()
	if axis == model.AxisVertical {
		g.splitColumns(id, newID)
	} else {
		g.splitRows(id, newID)
	}

	g.logger.Debug("subdivided face", "face", id, "new", newID, "axis", axis)
	return id, newID, g.finishEdit("subdivide")
}

func (g *Graph) splitColumns(id, newID int) {
	spanned := g.grid.spanCols(id)
	if len(spanned) == 1 {
		c := spanned[0]
		half := g.cols[c] / 2
		g.cols.set(c, half)
		g.cols = g.cols.insert(c+1, half)

		col := make([]int, g.grid.rows())
		for r := range col {
			if g.grid[r][c] == id {
				col[r] = newID
			} else {
				col[r] = g.grid[r][c]
			}
		}
		g.grid = g.grid.insertCol(c+1, col)
		return
	}

	for _, c := range spanned[len(spanned)/2:] {
		for r := range g.grid {
			if g.grid[r][c] == id {
				g.grid[r][c] = newID
			}
		}
	}
}

func (g *Graph) splitRows(id, newID int) {
	spanned := g.grid.spanRows(id)
	if len(spanned) == 1 {
		r := spanned[0]
		half := g.rows[r] / 2
		g.rows.set(r, half)
		g.rows = g.rows.insert(r+1, half)

		row := make([]int, g.grid.cols())
		for c := range row {
			if g.grid[r][c] == id {
				row[c] = newID
			} else {
				row[c] = g.grid[r][c]
			}
		}
		g.grid = g.grid.insertRow(r+1, row)
		return
	}

	for _, r := range spanned[len(spanned)/2:] {
		for c := range g.grid[r] {
			if g.grid[r][c] == id {
				g.grid[r][c] = newID
			}
		}
	}
}
