package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidateRects_GrowsIntoFreeCells(t *testing.T) {
	g := grid{
		{0, 9},
		{1, 1},
	}
	free := newCellSet([]cell{{0, 1}})

	got := candidateRects(g, 0, span{0, 0, 0, 0}, free)
	assert.Equal(t, []span{{0, 0, 0, 1}}, got)
}

func TestCandidateRects_BlockedByThirdFace(t *testing.T) {
	g := grid{
		{0, 9},
		{1, 1},
	}
	free := newCellSet([]cell{{0, 1}})

	// Growing down would swallow face 0's cell.
	assert.Empty(t, candidateRects(g, 1, span{1, 0, 1, 1}, free))
}

func TestCandidateRects_ReturnsEveryIntermediateSize(t *testing.T) {
	g := grid{{0, 9, 9}}
	free := newCellSet([]cell{{0, 1}, {0, 2}})

	got := candidateRects(g, 0, span{0, 0, 0, 0}, free)
	assert.Equal(t, []span{{0, 0, 0, 1}, {0, 0, 0, 2}}, got)
}

func TestCandidateRects_DoesNotMutateInputs(t *testing.T) {
	g := grid{{0, 9}}
	free := newCellSet([]cell{{0, 1}})

	candidateRects(g, 0, span{0, 0, 0, 0}, free)

	assert.Equal(t, grid{{0, 9}}, g)
	assert.Len(t, free, 1)
}

func TestGreedyCover_LowerIDWinsTie(t *testing.T) {
	g := grid{
		{0, 1},
		{2, 9},
	}
	free := newCellSet([]cell{{1, 1}})

	claims, left := greedyCover(g, []int{1, 2}, free)

	require.Len(t, claims, 1)
	assert.Equal(t, claim{id: 1, rect: span{0, 1, 1, 1}}, claims[0])
	assert.Empty(t, left)
	assert.Equal(t, 1, g[1][1])
	assert.Len(t, free, 1, "caller's free set is left intact")
}

func TestGreedyCover_PrefersLargestCoverage(t *testing.T) {
	g := grid{
		{0, 9, 9},
		{1, 1, 2},
	}
	free := newCellSet([]cell{{0, 1}, {0, 2}})

	claims, left := greedyCover(g, []int{0, 1, 2}, free)

	require.Len(t, claims, 1)
	assert.Equal(t, 0, claims[0].id)
	assert.Empty(t, left)
	assert.Equal(t, []int{0, 0, 0}, g[0])
}

func TestGreedyCover_LeavesUnreachableCells(t *testing.T) {
	g := grid{
		{0, 0, 1},
		{2, 9, 1},
		{2, 4, 4},
	}
	free := newCellSet([]cell{{1, 1}})

	claims, left := greedyCover(g, []int{0, 1, 2, 4}, free)

	assert.Empty(t, claims)
	assert.Equal(t, free, left)
}

func TestDecomposeRects_LShape(t *testing.T) {
	cells := newCellSet([]cell{{0, 0}, {0, 1}, {1, 0}})

	got := decomposeRects(cells)

	assert.Equal(t, []span{{0, 0, 0, 1}, {1, 0, 1, 0}}, got)
	assert.Len(t, cells, 3)
}

func TestDecomposeRects_Rectangle(t *testing.T) {
	cells := newCellSet(span{1, 1, 2, 3}.cells())
	assert.Equal(t, []span{{1, 1, 2, 3}}, decomposeRects(cells))
}

func TestDecomposeRects_Disjoint(t *testing.T) {
	cells := newCellSet([]cell{{0, 0}, {2, 2}})
	assert.Equal(t, []span{{0, 0, 0, 0}, {2, 2, 2, 2}}, decomposeRects(cells))
}

func TestGridNeighbors(t *testing.T) {
	g := grid{
		{0, 1, 1},
		{2, 3, 4},
	}
	assert.Equal(t, []int{1, 2, 4}, g.neighbors(3, g.cells(3)))
	assert.Equal(t, []int{0, 3, 4}, g.neighbors(1, g.cells(1)))
}

func TestGridSpans(t *testing.T) {
	g := grid{
		{0, 1, 1},
		{2, 1, 1},
	}
	assert.Equal(t, []int{0, 1}, g.spanRows(1))
	assert.Equal(t, []int{1, 2}, g.spanCols(1))
	b, ok := g.bounds(1)
	require.True(t, ok)
	assert.Equal(t, span{0, 1, 1, 2}, b)
	_, ok = g.bounds(7)
	assert.False(t, ok)
}
