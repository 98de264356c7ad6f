package engine

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/splitgrid/internal/model"
)

const eps = 1e-9

func strictSettings() model.EngineSettings {
	s := model.DefaultEngineSettings()
	s.StrictInvariants = true
	return s
}

func newSeeded(t *testing.T) (*Graph, int) {
	t.Helper()
	g := New(strictSettings())
	id, err := g.AddInitialFace()
	require.NoError(t, err)
	return g, id
}

// requireTiling checks that the live faces exactly tile the layout square.
func requireTiling(t *testing.T, g *Graph) {
	t.Helper()
	require.NoError(t, g.Validate())

	size := g.Settings().Size
	faces := g.Faces()
	var area float64
	for _, f := range faces {
		assert.Greater(t, f.Rect.Width, 0.0, "face %d width", f.ID)
		assert.Greater(t, f.Rect.Height, 0.0, "face %d height", f.ID)
		assert.GreaterOrEqual(t, f.Rect.X, -eps)
		assert.GreaterOrEqual(t, f.Rect.Y, -eps)
		assert.LessOrEqual(t, f.Rect.Right(), size+eps)
		assert.LessOrEqual(t, f.Rect.Top(), size+eps)
		area += f.Rect.Area()
	}
	if len(faces) > 0 {
		assert.InDelta(t, size*size, area, 1e-6, "face areas should sum to the square")
	}
	for _, a := range faces {
		for _, b := range faces {
			if a.ID >= b.ID {
				continue
			}
			w := math.Min(a.Rect.Right(), b.Rect.Right()) - math.Max(a.Rect.X, b.Rect.X)
			h := math.Min(a.Rect.Top(), b.Rect.Top()) - math.Max(a.Rect.Y, b.Rect.Y)
			if w > 1e-9 && h > 1e-9 {
				t.Errorf("faces %d %v and %d %v overlap", a.ID, a.Rect, b.ID, b.Rect)
			}
		}
	}
}

func rectOf(t *testing.T, g *Graph, id int) model.Rect {
	t.Helper()
	f, err := g.Face(id)
	require.NoError(t, err)
	return f.Rect
}

func TestAddInitialFace(t *testing.T) {
	g, id := newSeeded(t)

	assert.Equal(t, 1, g.Len())
	f, err := g.Face(id)
	require.NoError(t, err)
	assert.True(t, f.Rect.ApproxEqual(model.Rect{X: 0, Y: 0, Width: 1, Height: 1}, eps), "got %v", f.Rect)
	assert.Equal(t, 0, f.AnchorRow)
	assert.Equal(t, 0, f.AnchorCol)
	assert.Equal(t, [][]int{{id}}, g.Grid())
}

func TestAddInitialFace_NotEmpty(t *testing.T) {
	g, _ := newSeeded(t)

	_, err := g.AddInitialFace()
	assert.ErrorIs(t, err, ErrGraphNotEmpty)
	assert.Equal(t, 1, g.Len())
}

func TestAddInitialFace_CustomSize(t *testing.T) {
	s := strictSettings()
	s.Size = 1920
	g := New(s)
	id, err := g.AddInitialFace()
	require.NoError(t, err)

	assert.True(t, rectOf(t, g, id).ApproxEqual(model.Rect{Width: 1920, Height: 1920}, eps))
}

func TestInsertFromEdge_Right(t *testing.T) {
	g, first := newSeeded(t)

	id, err := g.InsertFromEdge(model.EdgeRight)
	require.NoError(t, err)

	rows, cols := g.Dimensions()
	assert.Equal(t, 1, rows)
	assert.Equal(t, 2, cols)
	assert.Equal(t, 2, g.Len())
	assert.True(t, rectOf(t, g, first).ApproxEqual(model.Rect{X: 0, Y: 0, Width: 0.5, Height: 1}, eps))
	assert.True(t, rectOf(t, g, id).ApproxEqual(model.Rect{X: 0.5, Y: 0, Width: 0.5, Height: 1}, eps))
	requireTiling(t, g)
}

func TestInsertFromEdge_Positions(t *testing.T) {
	cases := []struct {
		edge model.Edge
		want model.Rect
		grid [][]int
	}{
		{model.EdgeTop, model.Rect{X: 0, Y: 0.5, Width: 1, Height: 0.5}, [][]int{{0}, {1}}},
		{model.EdgeBottom, model.Rect{X: 0, Y: 0, Width: 1, Height: 0.5}, [][]int{{1}, {0}}},
		{model.EdgeRight, model.Rect{X: 0.5, Y: 0, Width: 0.5, Height: 1}, [][]int{{0, 1}}},
		{model.EdgeLeft, model.Rect{X: 0, Y: 0, Width: 0.5, Height: 1}, [][]int{{1, 0}}},
	}
	for _, tc := range cases {
		t.Run(tc.edge.String(), func(t *testing.T) {
			g, _ := newSeeded(t)
			id, err := g.InsertFromEdge(tc.edge)
			require.NoError(t, err)

			assert.Equal(t, tc.grid, g.Grid())
			assert.True(t, rectOf(t, g, id).ApproxEqual(tc.want, eps), "got %v", rectOf(t, g, id))
			requireTiling(t, g)
		})
	}
}

func TestInsertFromEdge_UsesMeanWeight(t *testing.T) {
	g, _ := newSeeded(t)
	_, err := g.InsertFromEdge(model.EdgeRight)
	require.NoError(t, err)
	require.NoError(t, g.SetColWeights([]float64{1, 3}))

	_, err = g.InsertFromEdge(model.EdgeRight)
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 3, 2}, g.ColWeights(), "existing weights untouched, new weight is the mean")
	assert.Equal(t, []float64{1}, g.RowWeights())
}

func TestInsertFromEdge_FullSpan(t *testing.T) {
	g, a := newSeeded(t)
	_, b, err := g.Subdivide(a, model.AxisVertical)
	require.NoError(t, err)

	top, err := g.InsertFromEdge(model.EdgeTop)
	require.NoError(t, err)

	assert.Equal(t, [][]int{{a, b}, {top, top}}, g.Grid())
	assert.True(t, rectOf(t, g, top).ApproxEqual(model.Rect{X: 0, Y: 0.5, Width: 1, Height: 0.5}, eps))
	requireTiling(t, g)
}

func TestInsertFromEdge_Errors(t *testing.T) {
	g := New(strictSettings())

	_, err := g.InsertFromEdge(model.EdgeTop)
	assert.ErrorIs(t, err, ErrEmptyGraph)

	_, err = g.AddInitialFace()
	require.NoError(t, err)
	before := g.Layout()

	_, err = g.InsertFromEdge(model.Edge(42))
	assert.ErrorIs(t, err, ErrInvalidEdge)
	assert.Equal(t, before, g.Layout(), "a rejected edit must not touch the grid")
}

func TestSubdivide_HorizontalSingleFace(t *testing.T) {
	g, a := newSeeded(t)

	orig, b, err := g.Subdivide(a, model.AxisHorizontal)
	require.NoError(t, err)

	assert.Equal(t, a, orig)
	rows, cols := g.Dimensions()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 1, cols)
	assert.InDelta(t, 0.5, rectOf(t, g, a).Height, eps)
	assert.InDelta(t, 0.5, rectOf(t, g, b).Height, eps)
	assert.InDelta(t, 0.5, rectOf(t, g, b).Y, eps, "new face takes the second half")
	requireTiling(t, g)
}

func TestSubdivide_PreservesOtherFaces(t *testing.T) {
	g, a := newSeeded(t)
	_, b, err := g.Subdivide(a, model.AxisVertical)
	require.NoError(t, err)
	before := rectOf(t, g, b)

	_, c, err := g.Subdivide(a, model.AxisHorizontal)
	require.NoError(t, err)

	assert.Equal(t, [][]int{{a, b}, {c, b}}, g.Grid())
	assert.True(t, rectOf(t, g, b).ApproxEqual(before, eps), "untouched face keeps its rectangle")
	requireTiling(t, g)
}

func TestSubdivide_MultiTrackSplitsAtMidpoint(t *testing.T) {
	g, a := newSeeded(t)
	_, b, err := g.Subdivide(a, model.AxisVertical)
	require.NoError(t, err)
	_, _, err = g.Subdivide(b, model.AxisVertical)
	require.NoError(t, err)
	wide, err := g.InsertFromEdge(model.EdgeTop)
	require.NoError(t, err)
	colsBefore := g.ColWeights()

	_, n, err := g.Subdivide(wide, model.AxisVertical)
	require.NoError(t, err)

	grid := g.Grid()
	assert.Equal(t, []int{wide, n, n}, grid[1], "three spanned columns split 1 + 2")
	assert.Equal(t, colsBefore, g.ColWeights(), "no grid growth in the multi-track case")
	assert.True(t, rectOf(t, g, wide).ApproxEqual(model.Rect{X: 0, Y: 0.5, Width: 0.5, Height: 0.5}, eps))
	assert.True(t, rectOf(t, g, n).ApproxEqual(model.Rect{X: 0.5, Y: 0.5, Width: 0.5, Height: 0.5}, eps))
	requireTiling(t, g)
}

func TestSubdivide_WeightConservation(t *testing.T) {
	g, a := newSeeded(t)
	_, err := g.InsertFromEdge(model.EdgeTop)
	require.NoError(t, err)
	require.NoError(t, g.SetRowWeights([]float64{3, 1}))
	rowTotal := weights(g.RowWeights()).total()
	colTotal := weights(g.ColWeights()).total()

	_, _, err = g.Subdivide(a, model.AxisHorizontal)
	require.NoError(t, err)
	_, _, err = g.Subdivide(a, model.AxisVertical)
	require.NoError(t, err)

	assert.InDelta(t, rowTotal, weights(g.RowWeights()).total(), eps)
	assert.InDelta(t, colTotal, weights(g.ColWeights()).total(), eps)
	assert.Equal(t, []float64{1.5, 1.5, 1}, g.RowWeights())
}

func TestSubdivide_Errors(t *testing.T) {
	g := New(strictSettings())
	_, _, err := g.Subdivide(0, model.AxisVertical)
	assert.ErrorIs(t, err, ErrEmptyGraph)

	_, err = g.AddInitialFace()
	require.NoError(t, err)
	before := g.Layout()

	_, _, err = g.Subdivide(99, model.AxisVertical)
	assert.ErrorIs(t, err, ErrFaceNotFound)
	_, _, err = g.Subdivide(0, model.Axis(5))
	assert.ErrorIs(t, err, ErrInvalidAxis)
	assert.Equal(t, before, g.Layout())
}

func TestFace_NotFound(t *testing.T) {
	g, _ := newSeeded(t)
	_, err := g.Face(3)
	assert.ErrorIs(t, err, ErrFaceNotFound)
}

func TestRemoveFace_RoundTrip(t *testing.T) {
	g, a := newSeeded(t)
	_, b, err := g.Subdivide(a, model.AxisVertical)
	require.NoError(t, err)

	require.NoError(t, g.RemoveFace(b))

	assert.Equal(t, 1, g.Len())
	assert.Equal(t, [][]int{{a}}, g.Grid())
	assert.True(t, rectOf(t, g, a).ApproxEqual(model.Rect{X: 0, Y: 0, Width: 1, Height: 1}, eps))
	assert.InDelta(t, 1.0, g.ColWeights()[0], eps, "merged columns keep the combined weight")
}

func TestRemoveFace_CornerOf2x2(t *testing.T) {
	g, a := newSeeded(t)
	_, b, err := g.Subdivide(a, model.AxisVertical)
	require.NoError(t, err)
	_, c, err := g.Subdivide(a, model.AxisHorizontal)
	require.NoError(t, err)
	_, d, err := g.Subdivide(b, model.AxisHorizontal)
	require.NoError(t, err)
	require.Equal(t, [][]int{{a, b}, {c, d}}, g.Grid())

	require.NoError(t, g.RemoveFace(d))

	assert.Equal(t, 3, g.Len())
	assert.ElementsMatch(t, []int{a, b, c}, g.FaceIDs())
	// Both neighbours cover one cell; the lower id wins the tie.
	assert.Equal(t, [][]int{{a, b}, {c, b}}, g.Grid())
	assert.True(t, rectOf(t, g, b).ApproxEqual(model.Rect{X: 0.5, Y: 0, Width: 0.5, Height: 1}, eps))
	requireTiling(t, g)
}

func TestRemoveFace_FullRowMergesBack(t *testing.T) {
	g, a := newSeeded(t)
	_, b, err := g.Subdivide(a, model.AxisVertical)
	require.NoError(t, err)
	top, err := g.InsertFromEdge(model.EdgeTop)
	require.NoError(t, err)

	require.NoError(t, g.RemoveFace(top))

	assert.Equal(t, [][]int{{a, b}}, g.Grid())
	assert.Equal(t, []float64{2}, g.RowWeights(), "merged rows sum their weights")
	assert.InDelta(t, 1.0, rectOf(t, g, a).Height, eps)
	requireTiling(t, g)
}

func TestRemoveFace_LastFace(t *testing.T) {
	g, a := newSeeded(t)

	require.NoError(t, g.RemoveFace(a))

	assert.True(t, g.Empty())
	assert.Empty(t, g.Faces())
	rows, cols := g.Dimensions()
	assert.Zero(t, rows)
	assert.Zero(t, cols)

	id, err := g.AddInitialFace()
	require.NoError(t, err)
	assert.NotEqual(t, a, id, "ids are not reused")
	assert.True(t, rectOf(t, g, id).ApproxEqual(model.Rect{Width: 1, Height: 1}, eps))
}

func TestRemoveFace_UnknownIsNoop(t *testing.T) {
	g, _ := newSeeded(t)
	before := g.Layout()

	require.NoError(t, g.RemoveFace(12))
	assert.Equal(t, before, g.Layout())
}

func TestRemoveFace_EmptyGraph(t *testing.T) {
	g := New(strictSettings())
	assert.ErrorIs(t, g.RemoveFace(0), ErrEmptyGraph)
}

func TestRemoveFace_PinwheelAllocatesFallback(t *testing.T) {
	// The centre face is boxed in by a pinwheel: no neighbour can grow into
	// it without overlapping another face.
	l := model.Layout{
		Grid: [][]int{
			{0, 0, 1},
			{2, 3, 1},
			{2, 4, 4},
		},
		RowWeights: []float64{1, 1, 1},
		ColWeights: []float64{1, 1, 1},
		NextID:     5,
	}
	g, err := FromLayout(l, strictSettings())
	require.NoError(t, err)

	require.NoError(t, g.RemoveFace(3))

	assert.Equal(t, 5, g.Len())
	assert.Equal(t, 5, g.Grid()[1][1], "centre handed to a fresh face")
	requireTiling(t, g)
}

func TestRemoveFace_GreedyPrefersLargestCover(t *testing.T) {
	// Face 1 spans both columns under the removed face and takes the whole
	// freed row in one claim.
	l := model.Layout{
		Grid: [][]int{
			{0, 0},
			{1, 1},
			{2, 3},
		},
		RowWeights: []float64{1, 1, 1},
		ColWeights: []float64{1, 1},
		NextID:     4,
	}
	g, err := FromLayout(l, strictSettings())
	require.NoError(t, err)

	require.NoError(t, g.RemoveFace(0))

	assert.Equal(t, [][]int{{1, 1}, {2, 3}}, g.Grid())
	assert.Equal(t, []float64{2, 1}, g.RowWeights())
	requireTiling(t, g)
}

func TestClear(t *testing.T) {
	g, a := newSeeded(t)
	_, _, err := g.Subdivide(a, model.AxisVertical)
	require.NoError(t, err)

	g.Clear()

	assert.True(t, g.Empty())
	id, err := g.AddInitialFace()
	require.NoError(t, err)
	assert.Equal(t, 0, id, "numbering restarts after clear")
}

func TestRecalculate_Idempotent(t *testing.T) {
	g, a := newSeeded(t)
	_, b, err := g.Subdivide(a, model.AxisVertical)
	require.NoError(t, err)
	_, _, err = g.Subdivide(b, model.AxisHorizontal)
	require.NoError(t, err)
	require.NoError(t, g.SetColWeights([]float64{0.3, 0.7}))

	first := g.Faces()
	g.Recalculate()
	second := g.Faces()

	require.Len(t, second, len(first))
	for id, f := range first {
		assert.True(t, f.Rect.ApproxEqual(second[id].Rect, eps), "face %d", id)
		assert.Equal(t, f.AnchorRow, second[id].AnchorRow)
		assert.Equal(t, f.AnchorCol, second[id].AnchorCol)
	}
}

func TestNeighbors(t *testing.T) {
	g, a := newSeeded(t)
	_, b, err := g.Subdivide(a, model.AxisVertical)
	require.NoError(t, err)
	top, err := g.InsertFromEdge(model.EdgeTop)
	require.NoError(t, err)

	assert.Equal(t, []int{b, top}, g.Neighbors(a))
	assert.Equal(t, []int{a, b}, g.Neighbors(top))
	assert.Empty(t, g.Neighbors(99))
}

func TestFaceAt(t *testing.T) {
	g, a := newSeeded(t)
	b, err := g.InsertFromEdge(model.EdgeRight)
	require.NoError(t, err)

	f, ok := g.FaceAt(0.25, 0.5)
	require.True(t, ok)
	assert.Equal(t, a, f.ID)

	f, ok = g.FaceAt(1, 1)
	require.True(t, ok)
	assert.Equal(t, b, f.ID)

	_, ok = g.FaceAt(1.5, 0.5)
	assert.False(t, ok)
}

func TestLayoutRoundTrip(t *testing.T) {
	g, a := newSeeded(t)
	_, b, err := g.Subdivide(a, model.AxisVertical)
	require.NoError(t, err)
	_, _, err = g.Subdivide(b, model.AxisHorizontal)
	require.NoError(t, err)

	restored, err := FromLayout(g.Layout(), strictSettings())
	require.NoError(t, err)

	assert.Equal(t, g.Grid(), restored.Grid())
	assert.Equal(t, g.Faces(), restored.Faces())
	id, err := restored.InsertFromEdge(model.EdgeLeft)
	require.NoError(t, err)
	assert.Equal(t, g.Layout().NextID, id, "restored graph continues the id sequence")
}

func TestFromLayout_Rejects(t *testing.T) {
	cases := map[string]model.Layout{
		"ragged": {Grid: [][]int{{0, 1}, {0}}, RowWeights: []float64{1, 1}, ColWeights: []float64{1, 1}},
		"weight count": {Grid: [][]int{{0, 1}}, RowWeights: []float64{1}, ColWeights: []float64{1}},
		"zero weight": {Grid: [][]int{{0, 1}}, RowWeights: []float64{1}, ColWeights: []float64{1, 0}},
		"L shape": {
			Grid:       [][]int{{0, 0}, {0, 1}},
			RowWeights: []float64{1, 1},
			ColWeights: []float64{1, 1},
		},
		"split face": {Grid: [][]int{{0, 1, 0}}, RowWeights: []float64{1}, ColWeights: []float64{1, 1, 1}},
	}
	for name, l := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromLayout(l, strictSettings())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvariantViolation) || errors.Is(err, ErrInvalidWeight), "got %v", err)
		})
	}
}

func TestFromLayout_Empty(t *testing.T) {
	g, err := FromLayout(model.Layout{NextID: 4}, strictSettings())
	require.NoError(t, err)
	assert.True(t, g.Empty())

	id, err := g.AddInitialFace()
	require.NoError(t, err)
	assert.Equal(t, 4, id)
}

func TestRandomEditsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	g := New(strictSettings())

	for step := 0; step < 600; step++ {
		if g.Empty() {
			_, err := g.AddInitialFace()
			require.NoError(t, err)
			continue
		}
		ids := g.FaceIDs()
		pick := ids[rng.Intn(len(ids))]
		op := rng.Intn(10)
		if g.Len() > 12 {
			op = 0
		}
		switch {
		case op < 3:
			require.NoError(t, g.RemoveFace(pick), "step %d", step)
		case op < 5:
			_, err := g.InsertFromEdge(model.Edges[rng.Intn(len(model.Edges))])
			require.NoError(t, err, "step %d", step)
		case op < 9:
			axis := model.Axis(rng.Intn(2))
			_, _, err := g.Subdivide(pick, axis)
			require.NoError(t, err, "step %d", step)
		default:
			rows, _ := g.Dimensions()
			if rows > 1 {
				require.NoError(t, g.MoveDivider(model.AxisHorizontal, 1+rng.Intn(rows-1), rng.Float64()-0.5))
			}
		}
		requireTiling(t, g)
	}
}
