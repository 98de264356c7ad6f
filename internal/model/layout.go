package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Layout is a complete, serializable snapshot of a tiling graph.
type Layout struct {
	Grid       [][]int   `json:"grid" toml:"grid"`               // Row-major face ids
	RowWeights []float64 `json:"row_weights" toml:"row_weights"` // One entry per grid row
	ColWeights []float64 `json:"col_weights" toml:"col_weights"` // One entry per grid column
	NextID     int       `json:"next_id" toml:"next_id"`         // Next face id to allocate
}

// Empty reports whether the layout has no cells.
func (l Layout) Empty() bool {
	return len(l.Grid) == 0 || len(l.Grid[0]) == 0
}

// FaceIDs returns the distinct face ids referenced by the grid, sorted.
func (l Layout) FaceIDs() []int {
	seen := make(map[int]bool)
	var ids []int
	for _, row := range l.Grid {
		for _, id := range row {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	sort.Ints(ids)
	return ids
}

// Clone returns a deep copy of the layout.
func (l Layout) Clone() Layout {
	cp := Layout{NextID: l.NextID}
	if l.Grid != nil {
		cp.Grid = make([][]int, len(l.Grid))
		for i, row := range l.Grid {
			cp.Grid[i] = append([]int(nil), row...)
		}
	}
	if l.RowWeights != nil {
		cp.RowWeights = append([]float64(nil), l.RowWeights...)
	}
	if l.ColWeights != nil {
		cp.ColWeights = append([]float64(nil), l.ColWeights...)
	}
	return cp
}

// Seat is the assignment of a player to a face. It is owned by the
// assignment layer; the engine never reads it.
type Seat struct {
	Player string `json:"player"`
	Color  string `json:"color,omitempty"` // "#RRGGBB"; empty uses the palette
}

// Occupancy maps face ids to seats.
type Occupancy map[int]Seat

// Prune drops seats whose face is no longer live.
func (o Occupancy) Prune(faces map[int]Face) {
	for id := range o {
		if _, ok := faces[id]; !ok {
			delete(o, id)
		}
	}
}

// Clone returns a copy of the occupancy map.
func (o Occupancy) Clone() Occupancy {
	cp := make(Occupancy, len(o))
	for k, v := range o {
		cp[k] = v
	}
	return cp
}

// Document ties a layout to its metadata for save/load.
type Document struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	UpdatedAt string         `json:"updated_at"`
	Settings  EngineSettings `json:"settings"`
	Layout    Layout         `json:"layout"`
	Occupancy Occupancy      `json:"occupancy,omitempty"`
}

// NewDocument returns an untitled document with an empty layout.
func NewDocument(settings EngineSettings) Document {
	return Document{
		ID:        uuid.New().String()[:8],
		Name:      "Untitled",
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
		Settings:  settings,
		Occupancy: Occupancy{},
	}
}
