package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/splitgrid/internal/engine"
	"github.com/piwi3910/splitgrid/internal/model"
)

// FileExtension is the extension used for saved layout documents.
const FileExtension = ".splitgrid"

// Save writes a layout document to path as JSON, stamping UpdatedAt.
func Save(path string, doc model.Document) error {
	doc.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	if err := writeJSON(path, doc); err != nil {
		return fmt.Errorf("failed to save layout: %w", err)
	}
	return nil
}

// Load reads a layout document and checks that its grid is a valid tiling.
// Seats referring to faces that are not in the layout are dropped.
func Load(path string) (model.Document, error) {
	doc, _, err := load(path)
	return doc, err
}

// Open loads a document and builds its graph.
func Open(path string) (model.Document, *engine.Graph, error) {
	return load(path)
}

func load(path string) (model.Document, *engine.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Document{}, nil, fmt.Errorf("failed to read layout: %w", err)
	}
	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.Document{}, nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	doc.Settings = doc.Settings.Normalized()

	g, err := engine.FromLayout(doc.Layout, doc.Settings)
	if err != nil {
		return model.Document{}, nil, fmt.Errorf("invalid layout in %s: %w", path, err)
	}
	if doc.Occupancy == nil {
		doc.Occupancy = model.Occupancy{}
	}
	doc.Occupancy.Prune(g.Faces())
	return doc, g, nil
}
