package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/splitgrid/internal/engine"
	"github.com/piwi3910/splitgrid/internal/model"
)

// DefaultPresetPath returns the default file path for the presets store.
// This is located at ~/.splitgrid/presets.json.
func DefaultPresetPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".splitgrid", "presets.json"), nil
}

// SavePresets writes the preset store to a JSON file.
func SavePresets(path string, store model.PresetStore) error {
	return writeJSON(path, store)
}

// LoadPresets reads a preset store from a JSON file.
// If the file does not exist, returns an empty store.
func LoadPresets(path string) (model.PresetStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewPresetStore(), nil
		}
		return model.PresetStore{}, err
	}
	var store model.PresetStore
	if err := json.Unmarshal(data, &store); err != nil {
		return model.PresetStore{}, fmt.Errorf("failed to parse presets: %w", err)
	}
	if store.Presets == nil {
		store.Presets = []model.LayoutPreset{}
	}
	return store, nil
}

// LoadDefaultPresets loads presets from the default path.
func LoadDefaultPresets() (model.PresetStore, error) {
	path, err := DefaultPresetPath()
	if err != nil {
		return model.NewPresetStore(), err
	}
	return LoadPresets(path)
}

// SaveDefaultPresets saves presets to the default path.
func SaveDefaultPresets(store model.PresetStore) error {
	path, err := DefaultPresetPath()
	if err != nil {
		return err
	}
	return SavePresets(path, store)
}

// MergePresets adds the imported presets to existing. Presets whose ID is
// already present are skipped, as are presets whose layout is not a valid
// tiling. It returns the merged store and the names of rejected presets.
func MergePresets(existing, imported model.PresetStore) (model.PresetStore, []string) {
	ids := make(map[string]bool, len(existing.Presets))
	for _, p := range existing.Presets {
		ids[p.ID] = true
	}

	var rejected []string
	for _, p := range imported.Presets {
		if ids[p.ID] {
			continue
		}
		if _, err := engine.FromLayout(p.Layout, model.DefaultEngineSettings()); err != nil {
			rejected = append(rejected, p.Name)
			continue
		}
		existing.Add(p)
		ids[p.ID] = true
	}
	return existing, rejected
}
