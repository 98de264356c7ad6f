package engine

import "github.com/piwi3910/splitgrid/internal/model"

// Recalculate derives every face rectangle and anchor cell from the current
// grid and weights. Weights are normalized to span the configured size.
// It is idempotent.
func (g *Graph) Recalculate() {
	if g.grid.rows() == 0 {
		return
	}
	size := g.settings.Size
	ys, hs := g.rows.offsets(size)
	xs, ws := g.cols.offsets(size)

	seen := make(map[int]bool, g.reg.live)
	for r, row := range g.grid {
		for c, id := range row {
			f, ok := g.reg.get(id)
			if !ok {
				continue
			}
			rect := model.Rect{X: xs[c], Y: ys[r], Width: ws[c], Height: hs[r]}
			if !seen[id] {
				seen[id] = true
				f.Rect = rect
				f.AnchorRow = r
				f.AnchorCol = c
				continue
			}
			f.Rect = f.Rect.Union(rect)
		}
	}
}
