package engine

// growth is a one-track step of a span in one direction.
type growth struct {
	dr0, dc0, dr1, dc1 int
}

// Growth directions in the order candidates are produced: right, left,
// up (towards higher rows), down.
var growths = [...]growth{
	{0, 0, 0, 1},
	{0, -1, 0, 0},
	{0, 0, 1, 0},
	{-1, 0, 0, 0},
}

func (s span) grow(d growth) span {
	return span{r0: s.r0 + d.dr0, c0: s.c0 + d.dc0, r1: s.r1 + d.dr1, c1: s.c1 + d.dc1}
}

// claimable reports whether every cell of next outside cur is owned by id
// or still free.
func claimable(g grid, id int, cur, next span, free cellSet) bool {
	for r := next.r0; r <= next.r1; r++ {
		for c := next.c0; c <= next.c1; c++ {
			at := cell{r, c}
			if cur.contains(at) {
				continue
			}
			if g[r][c] != id && !free[at] {
				return false
			}
		}
	}
	return true
}

// candidateRects enumerates the rectangles face id could occupy by growing
// its current bounds one track at a time in a single direction. A step is
// valid only while every newly covered cell is already owned by id or is
// still free, so no candidate overlaps a third face. Every valid
// intermediate size is returned, not just the largest.
func candidateRects(g grid, id int, bounds span, free cellSet) []span {
	var out []span
	for _, d := range growths {
		cur := bounds
		for {
			next := cur.grow(d)
			if !g.inside(next) || !claimable(g, id, cur, next, free) {
				break
			}
			out = append(out, next)
			cur = next
		}
	}
	return out
}

// claim is one greedy assignment: face id takes the free cells of rect.
type claim struct {
	id   int
	rect span
}

// greedyCover hands free cells to neighbouring faces. Each round picks the
// candidate rectangle covering the most free cells, ties going to the lower
// face id and then to the earlier candidate. The grid is updated in place
// and the cells left uncovered are returned.
func greedyCover(g grid, neighbors []int, free cellSet) ([]claim, cellSet) {
	free = free.clone()
	var claims []claim
	for len(free) > 0 {
		best := claim{id: -1}
		bestCount := 0
		for _, n := range neighbors {
			b, ok := g.bounds(n)
			if !ok {
				continue
			}
			for _, cand := range candidateRects(g, n, b, free) {
				if cnt := free.countIn(cand); cnt > bestCount {
					best = claim{id: n, rect: cand}
					bestCount = cnt
				}
			}
		}
		if bestCount == 0 {
			break
		}
		for _, c := range best.rect.cells() {
			if free[c] {
				g[c.row][c.col] = best.id
				delete(free, c)
			}
		}
		claims = append(claims, best)
	}
	return claims, free
}

// decomposeRects splits a cell set into rectangles. It seeds at the first
// remaining cell in row-major order, grows right, left, up and down while
// staying inside the set, extracts the rectangle and repeats.
func decomposeRects(cells cellSet) []span {
	remaining := cells.clone()
	var out []span
	for len(remaining) > 0 {
		seed := remaining.sorted()[0]
		s := span{r0: seed.row, c0: seed.col, r1: seed.row, c1: seed.col}
		for grew := true; grew; {
			grew = false
			for _, d := range growths {
				for {
					next := s.grow(d)
					if !covers(remaining, s, next) {
						break
					}
					s = next
					grew = true
				}
			}
		}
		for _, c := range s.cells() {
			delete(remaining, c)
		}
		out = append(out, s)
	}
	return out
}

// covers reports whether every cell of next outside cur is in set.
func covers(set cellSet, cur, next span) bool {
	for r := next.r0; r <= next.r1; r++ {
		for c := next.c0; c <= next.c1; c++ {
			at := cell{r, c}
			if !cur.contains(at) && !set[at] {
				return false
			}
		}
	}
	return true
}
