package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/splitgrid/internal/engine"
	"github.com/piwi3910/splitgrid/internal/model"
)

// ImportDXF builds a layout from the axis-aligned rectangles (closed
// LWPOLYLINEs) of a DXF drawing. The distinct rectangle edges become the
// grid lines and their spacing the track weights. A rectangle enclosing
// all the others is treated as a frame and dropped. Faces are numbered
// bottom to top, left to right.
func ImportDXF(path string) ImportResult {
	result := ImportResult{Occupancy: model.Occupancy{}}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var rects []model.Rect
	for _, ent := range entities {
		lw, ok := ent.(*entity.LwPolyline)
		if !ok {
			continue
		}
		r, ok := polylineRect(lw.Vertices)
		if !ok {
			result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE that is not an axis-aligned rectangle")
			continue
		}
		rects = append(rects, r)
	}
	rects = dropFrames(rects)
	if len(rects) == 0 {
		result.Errors = append(result.Errors, "No rectangles found in DXF file")
		return result
	}

	layout, err := layoutFromRects(rects)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	if _, err := engine.FromLayout(layout, model.DefaultEngineSettings()); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Rectangles do not form a valid layout: %v", err))
		return result
	}
	result.Layout = layout
	return result
}

// polylineRect returns the rectangle described by 4 vertices, or 5 when
// the first vertex is repeated to close the outline.
func polylineRect(vs [][]float64) (model.Rect, bool) {
	if len(vs) == 5 && pointsClose(vs[0], vs[4], 1e-9) {
		vs = vs[:4]
	}
	if len(vs) != 4 {
		return model.Rect{}, false
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, v := range vs {
		if len(v) < 2 {
			return model.Rect{}, false
		}
		minX, maxX = math.Min(minX, v[0]), math.Max(maxX, v[0])
		minY, maxY = math.Min(minY, v[1]), math.Max(maxY, v[1])
	}
	tol := 1e-9 * math.Max(maxX-minX, maxY-minY)
	for _, v := range vs {
		onX := math.Abs(v[0]-minX) <= tol || math.Abs(v[0]-maxX) <= tol
		onY := math.Abs(v[1]-minY) <= tol || math.Abs(v[1]-maxY) <= tol
		if !onX || !onY {
			return model.Rect{}, false
		}
	}
	if maxX-minX <= 0 || maxY-minY <= 0 {
		return model.Rect{}, false
	}
	return model.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}

func pointsClose(a, b []float64, tolerance float64) bool {
	return len(a) >= 2 && len(b) >= 2 &&
		math.Abs(a[0]-b[0]) <= tolerance && math.Abs(a[1]-b[1]) <= tolerance
}

// dropFrames removes duplicate rectangles and rectangles that contain
// another rectangle.
func dropFrames(rects []model.Rect) []model.Rect {
	var out []model.Rect
	for i, r := range rects {
		frame := false
		for j, o := range rects {
			same := o.ApproxEqual(r, 1e-9)
			if (same && j < i) || (i != j && !same && encloses(r, o)) {
				frame = true
				break
			}
		}
		if !frame {
			out = append(out, r)
		}
	}
	return out
}

func encloses(outer, inner model.Rect) bool {
	const eps = 1e-9
	return inner.X >= outer.X-eps && inner.Y >= outer.Y-eps &&
		inner.Right() <= outer.Right()+eps && inner.Top() <= outer.Top()+eps
}

// gridLines returns the sorted distinct values of vs, merging values
// closer than tol.
func gridLines(vs []float64, tol float64) []float64 {
	sort.Float64s(vs)
	var out []float64
	for _, v := range vs {
		if len(out) == 0 || v-out[len(out)-1] > tol {
			out = append(out, v)
		}
	}
	return out
}

func layoutFromRects(rects []model.Rect) (model.Layout, error) {
	sort.Slice(rects, func(i, j int) bool {
		if rects[i].Y != rects[j].Y {
			return rects[i].Y < rects[j].Y
		}
		return rects[i].X < rects[j].X
	})

	var xs, ys []float64
	bounds := rects[0]
	for _, r := range rects {
		xs = append(xs, r.X, r.Right())
		ys = append(ys, r.Y, r.Top())
		bounds = bounds.Union(r)
	}
	tol := 1e-6 * math.Max(bounds.Width, bounds.Height)
	xs = gridLines(xs, tol)
	ys = gridLines(ys, tol)

	layout := model.Layout{
		Grid:       make([][]int, len(ys)-1),
		RowWeights: make([]float64, len(ys)-1),
		ColWeights: make([]float64, len(xs)-1),
		NextID:     len(rects),
	}
	for c := range layout.ColWeights {
		layout.ColWeights[c] = xs[c+1] - xs[c]
	}
	for r := range layout.Grid {
		layout.RowWeights[r] = ys[r+1] - ys[r]
		layout.Grid[r] = make([]int, len(xs)-1)
		cy := (ys[r] + ys[r+1]) / 2
		for c := range layout.Grid[r] {
			cx := (xs[c] + xs[c+1]) / 2
			owner := -1
			for id, rect := range rects {
				if rect.Contains(cx, cy) {
					if owner >= 0 {
						return model.Layout{}, fmt.Errorf("Rectangles %d and %d overlap at (%.3g, %.3g)", owner, id, cx, cy)
					}
					owner = id
				}
			}
			if owner < 0 {
				return model.Layout{}, fmt.Errorf("Gap in drawing at (%.3g, %.3g)", cx, cy)
			}
			layout.Grid[r][c] = owner
		}
	}
	return layout, nil
}
