package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeights_Mean(t *testing.T) {
	assert.Equal(t, 1.0, weights(nil).mean())
	assert.Equal(t, 2.0, weights{1, 3}.mean())
}

func TestWeights_InsertRemove(t *testing.T) {
	w := weights{1, 2}
	w = w.insert(1, 5)
	assert.Equal(t, weights{1, 5, 2}, w)
	w = w.remove(0)
	assert.Equal(t, weights{5, 2}, w)
}

func TestWeights_RejectsNonPositive(t *testing.T) {
	assert.Panics(t, func() { weights{1}.insert(0, 0) })
	assert.Panics(t, func() { weights{1}.set(0, -1) })
}

func TestWeights_Fit(t *testing.T) {
	assert.Equal(t, weights{1}, weights{1, 2, 3}.fit(1))
	assert.Equal(t, weights{1, 3, 2}, weights{1, 3}.fit(3))
}

func TestWeights_Offsets(t *testing.T) {
	starts, extents := weights{1, 3}.offsets(2)
	assert.InDeltaSlice(t, []float64{0, 0.5}, starts, eps)
	assert.InDeltaSlice(t, []float64{0.5, 1.5}, extents, eps)
}

func TestValidWeights(t *testing.T) {
	assert.True(t, validWeights([]float64{1, 2.5}))
	assert.False(t, validWeights([]float64{1, 0}))
	assert.False(t, validWeights([]float64{1, math.NaN()}))
	assert.False(t, validWeights([]float64{math.MaxFloat64, math.MaxFloat64}))
}
