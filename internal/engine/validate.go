package engine

import (
	"fmt"
	"sort"
)

// Validate checks the coverage and rectangularity invariants: the grid is
// rectangular, weights match its dimensions and are positive, every cell
// belongs to a live face and every live face owns exactly one rectangle.
func (g *Graph) Validate() error {
	rows, cols := g.grid.rows(), g.grid.cols()
	if rows == 0 {
		if g.reg.live != 0 {
			return fmt.Errorf("%w: empty grid with %d live faces", ErrInvariantViolation, g.reg.live)
		}
		return nil
	}
	if cols == 0 {
		return fmt.Errorf("%w: grid has %d empty rows", ErrInvariantViolation, rows)
	}
	for r, row := range g.grid {
		if len(row) != cols {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvariantViolation, r, len(row), cols)
		}
	}
	if len(g.rows) != rows || len(g.cols) != cols {
		return fmt.Errorf("%w: %d row and %d column weights for a %dx%d grid",
			ErrInvariantViolation, len(g.rows), len(g.cols), rows, cols)
	}
	if !validWeights(g.rows) || !validWeights(g.cols) {
		return fmt.Errorf("%w: non-positive weight", ErrInvariantViolation)
	}

	owned := make(map[int][]cell)
	for r, row := range g.grid {
		for c, id := range row {
			if !g.reg.has(id) {
				return fmt.Errorf("%w: cell (%d,%d) references unknown face %d", ErrInvariantViolation, r, c, id)
			}
			owned[id] = append(owned[id], cell{r, c})
		}
	}
	for _, id := range g.reg.ids() {
		cells, ok := owned[id]
		if !ok {
			return fmt.Errorf("%w: face %d owns no cells", ErrInvariantViolation, id)
		}
		if len(cells) != boundsOf(cells).area() {
			return fmt.Errorf("%w: face %d is not rectangular", ErrInvariantViolation, id)
		}
	}
	return nil
}

// finishEdit validates the grid and recomputes rectangles. On failure it
// panics when strict invariants are enabled; otherwise it logs, rebuilds
// the grid around the largest face and returns the violation.
func (g *Graph) finishEdit(op string) error {
	err := g.Validate()
	if err != nil {
		if g.settings.StrictInvariants {
			panic(fmt.Sprintf("engine: %s: %v", op, err))
		}
		g.logger.Error("rebuilding grid from largest face", "op", op, "err", err)
		g.rebuildFromLargest()
		err = fmt.Errorf("%s: %w", op, err)
	}
	g.Recalculate()
	return err
}

// rebuildFromLargest resets the grid to a single face: the live face that
// covers the most weighted area. All other faces are dropped.
func (g *Graph) rebuildFromLargest() {
	rowW := g.rows.fit(g.grid.rows())
	colW := g.cols.fit(g.grid.cols())
	area := make(map[int]float64)
	for r, row := range g.grid {
		for c, id := range row {
			if g.reg.has(id) && c < len(colW) {
				area[id] += rowW[r] * colW[c]
			}
		}
	}

	ids := make([]int, 0, len(area))
	for id := range area {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	largest := -1
	for _, id := range ids {
		if largest < 0 || area[id] > area[largest] {
			largest = id
		}
	}

	for _, id := range g.reg.ids() {
		if id != largest {
			g.reg.remove(id)
		}
	}
	if largest < 0 {
		g.grid = nil
		g.rows = nil
		g.cols = nil
		return
	}
	g.grid = grid{{largest}}
	g.rows = weights{1}
	g.cols = weights{1}
}
