package engine

// RemoveFace deletes a face and hands its cells to its neighbours.
//
// Neighbouring faces grow into the freed cells greedily, largest coverage
// first, and only into rectangles that do not overlap a third face. Cells no
// neighbour can take go to a freshly allocated face, so the result is a
// valid tiling but not always the one with the fewest faces. The grid is
// then optimized: identical adjacent rows and columns are merged and any
// non-rectangular face is split.
//
// Removing an unknown id is a no-op.
func (g *Graph) RemoveFace(id int) error {
	if g.Empty() {
		return ErrEmptyGraph
	}
	cells := g.grid.cells(id)
	if len(cells) == 0 {
		if g.reg.has(id) {
			g.reg.remove(id)
		}
		return nil
	}

	neighbors := g.grid.neighbors(id, cells)
	if len(neighbors) == 0 {
		g.removeIsolated(id)
		return g.finishEdit("remove face")
	}

	free := newCellSet(cells)
	claims, left := greedyCover(g.grid, neighbors, free)
	for _, c := range claims {
		g.logger.Debug("neighbour absorbed cells", "face", c.id, "rows", []int{c.rect.r0, c.rect.r1}, "cols", []int{c.rect.c0, c.rect.c1})
	}
	if len(left) > 0 {
		fill := g.reg.alloc()
		for c := range left {
			g.grid[c.row][c.col] = fill
		}
		g.logger.Debug("allocated fallback face", "face", fill, "cells", len(left))
	}
	g.reg.remove(id)

	g.optimize()
	g.logger.Debug("removed face", "face", id, "remaining", g.reg.live)
	return g.finishEdit("remove face")
}

// removeIsolated removes a face that has no neighbours. Rows and columns
// wholly owned by the face are stripped; if nothing is left but the
// registry still holds faces, the grid is reseeded with the first of them.
func (g *Graph) removeIsolated(id int) {
	g.reg.remove(id)

	for r := g.grid.rows() - 1; r >= 0; r-- {
		if ownedBy(g.grid[r], id) {
			g.grid = g.grid.deleteRow(r)
			g.rows = g.rows.remove(r)
		}
	}
	for c := g.grid.cols() - 1; c >= 0; c-- {
		owned := true
		for r := range g.grid {
			if g.grid[r][c] != id {
				owned = false
				break
			}
		}
		if owned {
			g.grid = g.grid.deleteCol(c)
			g.cols = g.cols.remove(c)
		}
	}

	if g.grid.rows() == 0 || g.grid.cols() == 0 {
		g.grid = nil
		g.rows = nil
		g.cols = nil
		if ids := g.reg.ids(); len(ids) > 0 {
			seed := ids[0]
			for _, other := range ids[1:] {
				g.reg.remove(other)
			}
			g.grid = grid{{seed}}
			g.rows = weights{1}
			g.cols = weights{1}
			g.logger.Warn("reseeded empty grid", "face", seed)
		}
		return
	}
	g.optimize()
}

func ownedBy(row []int, id int) bool {
	for _, v := range row {
		if v != id {
			return false
		}
	}
	return true
}
