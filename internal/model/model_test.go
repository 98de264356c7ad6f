package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 0.5, Height: 0.5}
	b := Rect{X: 0.5, Y: 0.25, Width: 0.5, Height: 0.75}

	u := a.Union(b)

	assert.True(t, u.ApproxEqual(Rect{X: 0, Y: 0, Width: 1, Height: 1}, 1e-12), "got %v", u)
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 0.5, Y: 0, Width: 0.5, Height: 1}

	assert.True(t, r.Contains(0.5, 0))
	assert.True(t, r.Contains(0.75, 0.5))
	assert.False(t, r.Contains(1, 0.5), "right edge is exclusive")
	assert.False(t, r.Contains(0.25, 0.5))
}

func TestRectFlip(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 1, Height: 0.25}
	assert.Equal(t, Rect{X: 0, Y: 0.75, Width: 1, Height: 0.25}, r.Flip(1))
}

func TestParseEdge(t *testing.T) {
	for _, e := range Edges {
		got, err := ParseEdge(e.String())
		require.NoError(t, err)
		assert.Equal(t, e, got)
	}
	got, err := ParseEdge("  TOP ")
	require.NoError(t, err)
	assert.Equal(t, EdgeTop, got)

	_, err = ParseEdge("middle")
	assert.Error(t, err)
	assert.False(t, Edge(7).Valid())
}

func TestParseAxis(t *testing.T) {
	a, err := ParseAxis("v")
	require.NoError(t, err)
	assert.Equal(t, AxisVertical, a)

	a, err = ParseAxis("Horizontal")
	require.NoError(t, err)
	assert.Equal(t, AxisHorizontal, a)

	_, err = ParseAxis("diagonal")
	assert.Error(t, err)
	assert.False(t, Axis(-1).Valid())
}

func TestEngineSettingsNormalized(t *testing.T) {
	s := EngineSettings{Size: -1, MinTrackFraction: 0.9}.Normalized()
	d := DefaultEngineSettings()

	assert.Equal(t, d.Size, s.Size)
	assert.Equal(t, d.Epsilon, s.Epsilon)
	assert.Equal(t, d.MinTrackFraction, s.MinTrackFraction)
}

func TestLayoutFaceIDsAndClone(t *testing.T) {
	l := Layout{Grid: [][]int{{3, 1}, {3, 2}}, RowWeights: []float64{1, 2}, ColWeights: []float64{1, 1}, NextID: 4}

	assert.Equal(t, []int{1, 2, 3}, l.FaceIDs())
	assert.False(t, l.Empty())
	assert.True(t, Layout{}.Empty())

	cp := l.Clone()
	cp.Grid[0][0] = 7
	cp.RowWeights[0] = 5
	assert.Equal(t, 3, l.Grid[0][0])
	assert.Equal(t, 1.0, l.RowWeights[0])
}

func TestOccupancyPrune(t *testing.T) {
	occ := Occupancy{1: {Player: "Ana"}, 2: {Player: "Bo"}}
	occ.Prune(map[int]Face{2: {ID: 2}})

	assert.Len(t, occ, 1)
	assert.Equal(t, "Bo", occ[2].Player)
}

func TestFaceColor(t *testing.T) {
	occ := Occupancy{1: {Player: "Ana", Color: "#102030"}, 2: {Player: "Bo", Color: "bogus"}}

	assert.Equal(t, RGB{R: 0x10, G: 0x20, B: 0x30}, FaceColor(1, occ, nil))
	assert.Equal(t, "#2196F3", FaceColor(1, nil, DefaultPalette).Hex())
	// An invalid seat color falls back to the palette.
	assert.Equal(t, "#FF9800", FaceColor(2, occ, DefaultPalette).Hex())
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("4caf50")
	require.NoError(t, err)
	assert.Equal(t, RGB{R: 0x4C, G: 0xAF, B: 0x50}, c)

	_, err = ParseHexColor("#12345")
	assert.Error(t, err)
}
