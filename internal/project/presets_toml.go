package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/piwi3910/splitgrid/internal/model"
)

// ExportPresetsTOML writes the preset store as a hand-editable TOML file.
func ExportPresetsTOML(path string, store model.PresetStore) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create presets file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(store); err != nil {
		return fmt.Errorf("failed to encode presets: %w", err)
	}
	return nil
}

// ImportPresetsTOML reads presets from a TOML file. Unknown keys are an
// error so typos in hand-edited files are caught.
func ImportPresetsTOML(path string) (model.PresetStore, error) {
	var store model.PresetStore
	md, err := toml.DecodeFile(path, &store)
	if err != nil {
		return model.PresetStore{}, fmt.Errorf("failed to parse presets: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return model.PresetStore{}, fmt.Errorf("unknown keys in %s: %v", path, undecoded)
	}
	if store.Presets == nil {
		store.Presets = []model.LayoutPreset{}
	}
	return store, nil
}
