package model

import (
	"fmt"
	"strings"
)

// Rect is an axis-aligned rectangle in layout units. The origin is the
// bottom-left corner of the layout square: row 0 sits at Y=0.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns X+Width.
func (r Rect) Right() float64 { return r.X + r.Width }

// Top returns Y+Height.
func (r Rect) Top() float64 { return r.Y + r.Height }

// Area returns the rectangle area.
func (r Rect) Area() float64 { return r.Width * r.Height }

// Contains reports whether the point lies inside r. The lower and left
// boundaries are inclusive, the upper and right ones exclusive.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Top()
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	x0 := min(r.X, o.X)
	y0 := min(r.Y, o.Y)
	x1 := max(r.Right(), o.Right())
	y1 := max(r.Top(), o.Top())
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// ApproxEqual compares two rectangles component-wise within eps.
func (r Rect) ApproxEqual(o Rect, eps float64) bool {
	return abs(r.X-o.X) <= eps && abs(r.Y-o.Y) <= eps &&
		abs(r.Width-o.Width) <= eps && abs(r.Height-o.Height) <= eps
}

// Flip converts r into a top-left origin space of the given size.
func (r Rect) Flip(size float64) Rect {
	return Rect{X: r.X, Y: size - r.Top(), Width: r.Width, Height: r.Height}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%.3f,%.3f %.3fx%.3f)", r.X, r.Y, r.Width, r.Height)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Edge names the boundary of the layout a new row or column is inserted at.
type Edge int

const (
	EdgeTop    Edge = iota // New row after the last row
	EdgeBottom             // New row before row 0
	EdgeLeft               // New column before column 0
	EdgeRight              // New column after the last column
)

func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	default:
		return fmt.Sprintf("Edge(%d)", int(e))
	}
}

// Valid reports whether e is one of the four defined edges.
func (e Edge) Valid() bool {
	return e >= EdgeTop && e <= EdgeRight
}

// Edges lists every valid edge in declaration order.
var Edges = []Edge{EdgeTop, EdgeBottom, EdgeLeft, EdgeRight}

// ParseEdge converts a case-insensitive edge name into an Edge.
func ParseEdge(s string) (Edge, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top":
		return EdgeTop, nil
	case "bottom":
		return EdgeBottom, nil
	case "left":
		return EdgeLeft, nil
	case "right":
		return EdgeRight, nil
	}
	return 0, fmt.Errorf("unknown edge %q", s)
}

// Axis selects the direction a face is split along.
type Axis int

const (
	AxisVertical   Axis = iota // Split into left and right halves (columns)
	AxisHorizontal             // Split into lower and upper halves (rows)
)

func (a Axis) String() string {
	switch a {
	case AxisVertical:
		return "vertical"
	case AxisHorizontal:
		return "horizontal"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Valid reports whether a is a defined axis.
func (a Axis) Valid() bool {
	return a == AxisVertical || a == AxisHorizontal
}

// ParseAxis accepts "vertical"/"v" and "horizontal"/"h".
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vertical", "v":
		return AxisVertical, nil
	case "horizontal", "h":
		return AxisHorizontal, nil
	}
	return 0, fmt.Errorf("unknown axis %q", s)
}

// Face is one rectangular screen region of a layout.
type Face struct {
	ID        int  `json:"id"`
	Rect      Rect `json:"rect"`
	AnchorRow int  `json:"anchor_row"`
	AnchorCol int  `json:"anchor_col"`
}

// EngineSettings configures a tiling graph.
type EngineSettings struct {
	Size             float64 `json:"size"`               // Side length of the layout square
	Epsilon          float64 `json:"epsilon"`            // Tolerance for weight and rect comparisons
	MinTrackFraction float64 `json:"min_track_fraction"` // Smallest share a row/column may be dragged to
	StrictInvariants bool    `json:"strict_invariants"`  // Panic instead of recovering on invariant failure
}

// DefaultEngineSettings returns the settings used for new layouts.
func DefaultEngineSettings() EngineSettings {
	return EngineSettings{
		Size:             1.0,
		Epsilon:          1e-9,
		MinTrackFraction: 0.05,
		StrictInvariants: false,
	}
}

// Normalized fills zero or negative fields with their defaults.
func (s EngineSettings) Normalized() EngineSettings {
	d := DefaultEngineSettings()
	if s.Size <= 0 {
		s.Size = d.Size
	}
	if s.Epsilon <= 0 {
		s.Epsilon = d.Epsilon
	}
	if s.MinTrackFraction <= 0 || s.MinTrackFraction >= 0.5 {
		s.MinTrackFraction = d.MinTrackFraction
	}
	return s
}
