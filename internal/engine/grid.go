package engine

import "sort"

// cell addresses one grid position.
type cell struct {
	row, col int
}

// span is an inclusive block of grid cells, rows r0..r1 and columns c0..c1.
type span struct {
	r0, c0, r1, c1 int
}

func (s span) area() int {
	return (s.r1 - s.r0 + 1) * (s.c1 - s.c0 + 1)
}

func (s span) contains(c cell) bool {
	return c.row >= s.r0 && c.row <= s.r1 && c.col >= s.c0 && c.col <= s.c1
}

func (s span) cells() []cell {
	out := make([]cell, 0, s.area())
	for r := s.r0; r <= s.r1; r++ {
		for c := s.c0; c <= s.c1; c++ {
			out = append(out, cell{r, c})
		}
	}
	return out
}

// boundsOf returns the bounding span of a non-empty cell list.
func boundsOf(cells []cell) span {
	b := span{r0: cells[0].row, c0: cells[0].col, r1: cells[0].row, c1: cells[0].col}
	for _, c := range cells[1:] {
		b.r0 = min(b.r0, c.row)
		b.c0 = min(b.c0, c.col)
		b.r1 = max(b.r1, c.row)
		b.c1 = max(b.c1, c.col)
	}
	return b
}

// cellSet is an unordered set of cells.
type cellSet map[cell]bool

func newCellSet(cells []cell) cellSet {
	s := make(cellSet, len(cells))
	for _, c := range cells {
		s[c] = true
	}
	return s
}

func (s cellSet) clone() cellSet {
	cp := make(cellSet, len(s))
	for c := range s {
		cp[c] = true
	}
	return cp
}

// countIn returns how many cells of sp are in the set.
func (s cellSet) countIn(sp span) int {
	n := 0
	for r := sp.r0; r <= sp.r1; r++ {
		for c := sp.c0; c <= sp.c1; c++ {
			if s[cell{r, c}] {
				n++
			}
		}
	}
	return n
}

// sorted returns the cells in row-major order.
func (s cellSet) sorted() []cell {
	out := make([]cell, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].row != out[j].row {
			return out[i].row < out[j].row
		}
		return out[i].col < out[j].col
	})
	return out
}

// grid is a row-major matrix of face ids.
type grid [][]int

func (g grid) rows() int { return len(g) }

func (g grid) cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

func (g grid) clone() grid {
	cp := make(grid, len(g))
	for i, row := range g {
		cp[i] = append([]int(nil), row...)
	}
	return cp
}

func (g grid) inside(s span) bool {
	return s.r0 >= 0 && s.c0 >= 0 && s.r1 < g.rows() && s.c1 < g.cols()
}

// cells returns every cell owned by id in row-major order.
func (g grid) cells(id int) []cell {
	var out []cell
	for r, row := range g {
		for c, v := range row {
			if v == id {
				out = append(out, cell{r, c})
			}
		}
	}
	return out
}

// bounds returns the bounding span of id, or false if id owns no cell.
func (g grid) bounds(id int) (span, bool) {
	cells := g.cells(id)
	if len(cells) == 0 {
		return span{}, false
	}
	return boundsOf(cells), true
}

// spanRows returns the distinct rows occupied by id, ascending.
func (g grid) spanRows(id int) []int {
	var out []int
	for r, row := range g {
		for _, v := range row {
			if v == id {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// spanCols returns the distinct columns occupied by id, ascending.
func (g grid) spanCols(id int) []int {
	var out []int
	for c := 0; c < g.cols(); c++ {
		for r := range g {
			if g[r][c] == id {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

func (g grid) insertRow(at int, row []int) grid {
	g = append(g, nil)
	copy(g[at+1:], g[at:])
	g[at] = row
	return g
}

func (g grid) insertCol(at int, col []int) grid {
	for r := range g {
		row := append(g[r], 0)
		copy(row[at+1:], row[at:])
		row[at] = col[r]
		g[r] = row
	}
	return g
}

func (g grid) deleteRow(r int) grid {
	return append(g[:r], g[r+1:]...)
}

func (g grid) deleteCol(c int) grid {
	for r := range g {
		g[r] = append(g[r][:c], g[r][c+1:]...)
	}
	return g
}

// neighbors returns the distinct ids 4-adjacent to any of the given cells,
// excluding self, in ascending order.
func (g grid) neighbors(self int, cells []cell) []int {
	seen := make(map[int]bool)
	var out []int
	for _, c := range cells {
		for _, d := range [...]cell{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			r, k := c.row+d.row, c.col+d.col
			if r < 0 || r >= g.rows() || k < 0 || k >= len(g[r]) {
				continue
			}
			v := g[r][k]
			if v != self && !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	sort.Ints(out)
	return out
}

func rowsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (g grid) colsEqual(a, b int) bool {
	for r := range g {
		if g[r][a] != g[r][b] {
			return false
		}
	}
	return true
}
