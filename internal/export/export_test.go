package export

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/splitgrid/internal/engine"
	"github.com/piwi3910/splitgrid/internal/model"
)

// threeWay builds [[0,1],[2,2]]: two faces at the bottom, one wide face on top.
func threeWay(t *testing.T) Sheet {
	t.Helper()
	g := engine.New(model.DefaultEngineSettings())
	a, err := g.AddInitialFace()
	require.NoError(t, err)
	_, _, err = g.Subdivide(a, model.AxisVertical)
	require.NoError(t, err)
	_, err = g.InsertFromEdge(model.EdgeTop)
	require.NoError(t, err)

	occ := model.Occupancy{
		0: {Player: "Alice", Color: "#FF0000"},
		2: {Player: "Carol"},
	}
	return NewSheet("Three", g, occ, nil)
}

func TestNewSheet(t *testing.T) {
	s := threeWay(t)

	require.Len(t, s.Faces, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{s.Faces[0].ID, s.Faces[1].ID, s.Faces[2].ID})
	assert.Equal(t, [][2]int{{0, 1}, {0, 2}, {1, 2}}, s.Edges())
	assert.Equal(t, "Alice", s.Label(0))
	assert.Equal(t, "Face 1", s.Label(1))
	assert.Equal(t, model.RGB{R: 255}, s.Color(0))
	assert.InDelta(t, 0.5, s.Share(s.Faces[2]), 1e-9)
}

func TestExportPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.pdf")

	require.NoError(t, ExportPDF(path, threeWay(t), "Letter"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}

func TestExportPDF_ManyFaces(t *testing.T) {
	g := engine.New(model.DefaultEngineSettings())
	_, err := g.AddInitialFace()
	require.NoError(t, err)
	for i := 0; i < 40; i++ {
		_, err := g.InsertFromEdge(model.Edges[i%4])
		require.NoError(t, err)
	}
	path := filepath.Join(t.TempDir(), "many.pdf")

	assert.NoError(t, ExportPDF(path, NewSheet("Many", g, nil, nil), "A4"))
}

func TestExportersRejectEmptyLayout(t *testing.T) {
	dir := t.TempDir()
	empty := NewSheet("Empty", engine.New(model.DefaultEngineSettings()), nil, nil)

	assert.ErrorIs(t, ExportPDF(filepath.Join(dir, "a.pdf"), empty, "A4"), ErrEmptyLayout)
	assert.ErrorIs(t, ExportLabels(filepath.Join(dir, "b.pdf"), empty), ErrEmptyLayout)
	assert.ErrorIs(t, ExportXLSX(filepath.Join(dir, "c.xlsx"), empty), ErrEmptyLayout)
	assert.ErrorIs(t, ExportDXF(filepath.Join(dir, "d.dxf"), empty), ErrEmptyLayout)
	assert.ErrorIs(t, ExportAdjacency(context.Background(), filepath.Join(dir, "e.dot"), empty), ErrEmptyLayout)
}

func TestCollectSeatCards(t *testing.T) {
	cards := CollectSeatCards(threeWay(t))

	require.Len(t, cards, 3)
	assert.Equal(t, "Alice", cards[0].Player)
	assert.Empty(t, cards[1].Player)
	assert.Equal(t, "Three", cards[2].Layout)
	assert.InDelta(t, 0.5, cards[2].Y, 1e-9)

	data, err := json.Marshal(cards[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"face":0`)
}

func TestExportLabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.pdf")

	require.NoError(t, ExportLabels(path, threeWay(t)))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestExportXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.xlsx")

	require.NoError(t, ExportXLSX(path, threeWay(t)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{facesSheet, gridSheet}, f.GetSheetList())

	faces, err := f.GetRows(facesSheet)
	require.NoError(t, err)
	require.Len(t, faces, 4)
	assert.Equal(t, "Face", faces[0][0])
	assert.Equal(t, "Alice", faces[1][1])

	grid, err := f.GetRows(gridSheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "2", "", "1"}, grid[0], "top row first, weight after a gap")
	assert.Equal(t, []string{"0", "1", "", "1"}, grid[1])
}

func TestExportDXF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.dxf")

	require.NoError(t, ExportDXF(path, threeWay(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "LWPOLYLINE")
	assert.Contains(t, string(data), LayerFaces)
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(threeWay(t))

	assert.True(t, strings.HasPrefix(dot, "graph faces {"))
	assert.Contains(t, dot, `f0 [label="Alice", fillcolor="#FF0000"`)
	assert.Contains(t, dot, "f0 -- f1;")
	assert.Contains(t, dot, "f1 -- f2;")
	assert.NotContains(t, dot, "f1 -- f0;")
}

func TestExportAdjacency_DOT(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faces.dot")

	require.NoError(t, ExportAdjacency(context.Background(), path, threeWay(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "graph faces")
}

func TestExportAdjacency_SVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faces.svg")

	require.NoError(t, ExportAdjacency(context.Background(), path, threeWay(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}
