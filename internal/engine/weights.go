package engine

import (
	"fmt"
	"math"
)

// weights holds the relative sizes of the rows or columns of a grid.
// Every entry is strictly positive.
type weights []float64

func mustPositive(v float64) {
	if !(v > 0) || math.IsInf(v, 0) {
		panic(fmt.Sprintf("engine: weight must be positive and finite, got %v", v))
	}
}

func (w weights) total() float64 {
	var t float64
	for _, v := range w {
		t += v
	}
	return t
}

// mean returns the arithmetic mean, or 1 for an empty vector.
func (w weights) mean() float64 {
	if len(w) == 0 {
		return 1
	}
	return w.total() / float64(len(w))
}

func (w weights) clone() weights {
	return append(weights(nil), w...)
}

func (w weights) set(i int, v float64) {
	mustPositive(v)
	w[i] = v
}

func (w weights) insert(i int, v float64) weights {
	mustPositive(v)
	w = append(w, 0)
	copy(w[i+1:], w[i:])
	w[i] = v
	return w
}

func (w weights) remove(i int) weights {
	return append(w[:i], w[i+1:]...)
}

// fit trims or pads w to n entries. Padding uses the mean of the
// existing entries so new tracks get an average share.
func (w weights) fit(n int) weights {
	if len(w) > n {
		return w[:n]
	}
	m := w.mean()
	for len(w) < n {
		w = append(w, m)
	}
	return w
}

// offsets returns the start and extent of every track scaled so the
// whole vector spans size.
func (w weights) offsets(size float64) (starts, extents []float64) {
	total := w.total()
	starts = make([]float64, len(w))
	extents = make([]float64, len(w))
	var cum float64
	for i, v := range w {
		s := cum / total * size
		cum += v
		starts[i] = s
		extents[i] = cum/total*size - s
	}
	return starts, extents
}

func validWeights(w []float64) bool {
	for _, v := range w {
		if !(v > 0) || math.IsInf(v, 0) {
			return false
		}
	}
	return !math.IsInf(weights(w).total(), 0)
}
