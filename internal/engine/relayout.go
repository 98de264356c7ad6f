package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/splitgrid/internal/model"
)

// SetRowWeights replaces the row weights. The vector must have one positive
// entry per grid row.
func (g *Graph) SetRowWeights(w []float64) error {
	if g.Empty() {
		return ErrEmptyGraph
	}
	if len(w) != g.grid.rows() || !validWeights(w) {
		return fmt.Errorf("%w: need %d positive row weights, got %v", ErrInvalidWeight, g.grid.rows(), w)
	}
	g.rows = weights(w).clone()
	return g.finishEdit("set row weights")
}

// SetColWeights replaces the column weights. The vector must have one
// positive entry per grid column.
func (g *Graph) SetColWeights(w []float64) error {
	if g.Empty() {
		return ErrEmptyGraph
	}
	if len(w) != g.grid.cols() || !validWeights(w) {
		return fmt.Errorf("%w: need %d positive column weights, got %v", ErrInvalidWeight, g.grid.cols(), w)
	}
	g.cols = weights(w).clone()
	return g.finishEdit("set column weights")
}

// Equalize resets every row and column to unit weight.
func (g *Graph) Equalize() error {
	if g.Empty() {
		return ErrEmptyGraph
	}
	for i := range g.rows {
		g.rows[i] = 1
	}
	for i := range g.cols {
		g.cols[i] = 1
	}
	return g.finishEdit("equalize")
}

// MoveDivider shifts the boundary between track index-1 and track index of
// the given axis by delta layout units. AxisVertical moves a column
// boundary, AxisHorizontal a row boundary. Both tracks keep at least
// MinTrackFraction of the total and the total weight is unchanged.
func (g *Graph) MoveDivider(axis model.Axis, index int, delta float64) error {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return fmt.Errorf("%w: divider delta %v is not finite", ErrInvalidWeight, delta)
	}
	if g.Empty() {
		return ErrEmptyGraph
	}
	var w weights
	switch axis {
	case model.AxisVertical:
		w = g.cols
	case model.AxisHorizontal:
		w = g.rows
	default:
		return fmt.Errorf("axis %v: %w", axis, ErrInvalidAxis)
	}
	if index < 1 || index >= len(w) {
		return fmt.Errorf("%w: divider %d outside 1..%d", ErrInvalidWeight, index, len(w)-1)
	}

	total := w.total()
	lo := g.settings.MinTrackFraction * total
	pair := w[index-1] + w[index]
	if pair < 2*lo {
		return nil
	}
	a := w[index-1] + delta/g.settings.Size*total
	a = min(max(a, lo), pair-lo)
	w.set(index-1, a)
	w.set(index, pair-a)

	g.logger.Debug("moved divider", "axis", axis, "index", index, "delta", delta)
	return g.finishEdit("move divider")
}
