package model

import (
	"time"

	"github.com/google/uuid"
)

// LayoutPreset is a named, reusable layout. It captures the grid and weights
// but not who is seated where.
type LayoutPreset struct {
	ID          string `json:"id" toml:"id"`
	Name        string `json:"name" toml:"name"`
	Description string `json:"description" toml:"description"`
	CreatedAt   string `json:"created_at" toml:"created_at"`
	UpdatedAt   string `json:"updated_at" toml:"updated_at"`
	Layout      Layout `json:"layout" toml:"layout"`
}

// NewLayoutPreset creates a new preset from the given layout.
func NewLayoutPreset(name, description string, layout Layout) LayoutPreset {
	now := time.Now().UTC().Format(time.RFC3339)
	return LayoutPreset{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Layout:      layout.Clone(),
	}
}

// ToDocument creates a new Document from this preset with empty occupancy.
func (p LayoutPreset) ToDocument(name string, settings EngineSettings) Document {
	doc := NewDocument(settings)
	doc.Name = name
	doc.Layout = p.Layout.Clone()
	return doc
}

// PresetStore holds a collection of layout presets.
type PresetStore struct {
	Presets []LayoutPreset `json:"presets" toml:"presets"`
}

// NewPresetStore creates an empty preset store.
func NewPresetStore() PresetStore {
	return PresetStore{
		Presets: []LayoutPreset{},
	}
}

// Add adds a preset to the store.
func (ps *PresetStore) Add(p LayoutPreset) {
	ps.Presets = append(ps.Presets, p)
}

// Remove removes a preset by ID. Returns true if found and removed.
func (ps *PresetStore) Remove(id string) bool {
	for i, p := range ps.Presets {
		if p.ID == id {
			ps.Presets = append(ps.Presets[:i], ps.Presets[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the preset with the given ID, or nil.
func (ps *PresetStore) FindByID(id string) *LayoutPreset {
	for i := range ps.Presets {
		if ps.Presets[i].ID == id {
			return &ps.Presets[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first preset with the given name, or nil.
func (ps *PresetStore) FindByName(name string) *LayoutPreset {
	for i := range ps.Presets {
		if ps.Presets[i].Name == name {
			return &ps.Presets[i]
		}
	}
	return nil
}

// Names returns a list of preset names for UI dropdowns.
func (ps *PresetStore) Names() []string {
	names := make([]string, len(ps.Presets))
	for i, p := range ps.Presets {
		names[i] = p.Name
	}
	return names
}

// BuiltinPresets returns the common split-screen arrangements.
func BuiltinPresets() []LayoutPreset {
	mk := func(name, desc string, grid [][]int, rows, cols []float64) LayoutPreset {
		next := 0
		for _, r := range grid {
			for _, id := range r {
				if id >= next {
					next = id + 1
				}
			}
		}
		return LayoutPreset{
			ID:          "builtin-" + name,
			Name:        name,
			Description: desc,
			Layout:      Layout{Grid: grid, RowWeights: rows, ColWeights: cols, NextID: next},
		}
	}
	return []LayoutPreset{
		mk("Single", "One full-screen player", [][]int{{0}}, []float64{1}, []float64{1}),
		mk("Side by side", "Two players, vertical split", [][]int{{0, 1}}, []float64{1}, []float64{1, 1}),
		mk("Stacked", "Two players, horizontal split", [][]int{{0}, {1}}, []float64{1, 1}, []float64{1}),
		mk("Three", "One wide view above two halves", [][]int{{0, 1}, {2, 2}}, []float64{1, 1}, []float64{1, 1}),
		mk("Quad", "Four equal quarters", [][]int{{0, 1}, {2, 3}}, []float64{1, 1}, []float64{1, 1}),
	}
}
