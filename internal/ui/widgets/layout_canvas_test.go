package widgets

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/splitgrid/internal/engine"
	"github.com/piwi3910/splitgrid/internal/model"
)

func sideBySide(t *testing.T) *engine.Graph {
	t.Helper()
	g := engine.New(model.DefaultEngineSettings())
	_, err := g.AddInitialFace()
	require.NoError(t, err)
	_, err = g.InsertFromEdge(model.EdgeRight)
	require.NoError(t, err)
	return g
}

func TestTapSelectsFace(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	c := NewLayoutCanvas(sideBySide(t), nil, 100)
	c.Resize(fyne.NewSize(200, 200))

	var tapped []int
	c.OnFaceTapped = func(id int) { tapped = append(tapped, id) }

	c.Tapped(&fyne.PointEvent{Position: fyne.NewPos(50, 100)})
	c.Tapped(&fyne.PointEvent{Position: fyne.NewPos(150, 20)})

	assert.Equal(t, []int{0, 1}, tapped)
	assert.Equal(t, 1, c.Selected())
}

func TestTapCentersNonSquareCanvas(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	c := NewLayoutCanvas(sideBySide(t), nil, 100)
	c.Resize(fyne.NewSize(400, 200))

	var got int
	c.OnFaceTapped = func(id int) { got = id }

	// The square spans x in [100, 300].
	c.Tapped(&fyne.PointEvent{Position: fyne.NewPos(50, 100)})
	assert.Equal(t, NoSelection, got)

	c.Tapped(&fyne.PointEvent{Position: fyne.NewPos(250, 100)})
	assert.Equal(t, 1, got)
}

func TestRendererDrawsEveryFace(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	g := sideBySide(t)
	c := NewLayoutCanvas(g, model.DefaultPalette, 100)
	c.Resize(fyne.NewSize(200, 200))

	r := test.WidgetRenderer(c)
	// Background plus a fill and a label per face.
	assert.Len(t, r.Objects(), 5)

	_, _, err := g.Subdivide(0, model.AxisHorizontal)
	require.NoError(t, err)
	c.Refresh()
	assert.Len(t, r.Objects(), 7)
	assert.Equal(t, fyne.NewSize(100, 100), r.MinSize())
}

func TestRendererEmptyLayout(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	c := NewLayoutCanvas(engine.New(model.DefaultEngineSettings()), nil, 100)
	c.Resize(fyne.NewSize(200, 200))

	// Background plus the hint text.
	assert.Len(t, test.WidgetRenderer(c).Objects(), 2)
}
