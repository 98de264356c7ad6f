package engine

import "errors"

var (
	// ErrEmptyGraph is returned when an edit other than AddInitialFace or
	// Clear is attempted on a graph with no faces.
	ErrEmptyGraph = errors.New("graph has no faces")

	// ErrFaceNotFound is returned for stale or unknown face ids.
	ErrFaceNotFound = errors.New("face not found")

	// ErrInvalidEdge is returned for an edge outside top/bottom/left/right.
	ErrInvalidEdge = errors.New("invalid edge")

	// ErrInvalidAxis is returned for an axis other than vertical/horizontal.
	ErrInvalidAxis = errors.New("invalid axis")

	// ErrGraphNotEmpty is returned by AddInitialFace when faces already exist.
	ErrGraphNotEmpty = errors.New("graph already has faces")

	// ErrInvalidWeight is returned when a weight vector does not match the
	// grid or contains a non-positive entry.
	ErrInvalidWeight = errors.New("invalid weight")

	// ErrInvariantViolation reports a grid that is not fully covered by
	// rectangular faces. Outside of restored layouts it indicates an engine bug.
	ErrInvariantViolation = errors.New("layout invariant violated")
)
