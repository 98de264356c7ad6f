package engine

// optimize normalizes the grid after a removal: it merges identical
// adjacent rows and columns, splits faces that are no longer rectangular,
// pads ragged rows and fits the weight vectors to the grid.
func (g *Graph) optimize() {
	g.padRagged()
	g.mergeRows()
	g.mergeCols()
	g.repairRectangles()
	g.syncRegistry()
	g.rows = g.rows.fit(g.grid.rows())
	g.cols = g.cols.fit(g.grid.cols())
}

// mergeRows collapses element-wise identical adjacent rows. The surviving
// row keeps the combined weight.
func (g *Graph) mergeRows() {
	for r := g.grid.rows() - 1; r > 0; r-- {
		if rowsEqual(g.grid[r], g.grid[r-1]) {
			if r < len(g.rows) {
				g.rows.set(r-1, g.rows[r-1]+g.rows[r])
				g.rows = g.rows.remove(r)
			}
			g.grid = g.grid.deleteRow(r)
		}
	}
}

// mergeCols collapses identical adjacent columns, summing their weights.
func (g *Graph) mergeCols() {
	for c := g.grid.cols() - 1; c > 0; c-- {
		if g.grid.colsEqual(c, c-1) {
			if c < len(g.cols) {
				g.cols.set(c-1, g.cols[c-1]+g.cols[c])
				g.cols = g.cols.remove(c)
			}
			g.grid = g.grid.deleteCol(c)
		}
	}
}

// repairRectangles splits every face whose cells do not form a single
// rectangle. The first rectangle keeps the face id; each extra rectangle
// gets a new face.
func (g *Graph) repairRectangles() {
	seen := make(map[int]bool)
	var ids []int
	for _, row := range g.grid {
		for _, id := range row {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	for _, id := range ids {
		cells := g.grid.cells(id)
		if len(cells) == boundsOf(cells).area() {
			continue
		}
		rects := decomposeRects(newCellSet(cells))
		for _, rect := range rects[1:] {
			extra := g.reg.alloc()
			for _, c := range rect.cells() {
				g.grid[c.row][c.col] = extra
			}
		}
		g.logger.Warn("split non-rectangular face", "face", id, "pieces", len(rects))
	}
}

// padRagged extends short rows to the widest row by repeating their last
// face id. An empty row copies the row below it.
func (g *Graph) padRagged() {
	width := 0
	for _, row := range g.grid {
		width = max(width, len(row))
	}
	for r, row := range g.grid {
		if len(row) == width {
			continue
		}
		if len(row) == 0 && r > 0 {
			row = append(row, g.grid[r-1][0])
		}
		if len(row) == 0 {
			continue
		}
		last := row[len(row)-1]
		for len(row) < width {
			row = append(row, last)
		}
		g.grid[r] = row
	}
}

// syncRegistry drops registered faces that own no cell and registers ids
// that appear in the grid without a face record.
func (g *Graph) syncRegistry() {
	present := make(map[int]bool)
	for _, row := range g.grid {
		for _, id := range row {
			present[id] = true
		}
	}
	for _, id := range g.reg.ids() {
		if !present[id] {
			g.reg.remove(id)
			g.logger.Warn("dropped face without cells", "face", id)
		}
	}
	for id := range present {
		if !g.reg.has(id) {
			g.reg.ensure(id)
			g.logger.Warn("registered orphan face", "face", id)
		}
	}
}
