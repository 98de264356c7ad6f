package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/piwi3910/splitgrid/internal/engine"
	"github.com/piwi3910/splitgrid/internal/importer"
	"github.com/piwi3910/splitgrid/internal/model"
	"github.com/piwi3910/splitgrid/internal/project"
)

// loadConfig returns the saved application config, or the defaults when
// none can be read.
func loadConfig(ctx context.Context) model.AppConfig {
	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		loggerFromContext(ctx).Debug("using default config", "err", err)
		return model.DefaultAppConfig()
	}
	return cfg
}

func defaultSettings(cfg model.AppConfig) model.EngineSettings {
	s := model.DefaultEngineSettings()
	cfg.ApplyToSettings(&s)
	return s.Normalized()
}

func documentName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// gridImporters maps grid file extensions to their importers.
var gridImporters = map[string]func(string) importer.ImportResult{
	".csv":  importer.ImportCSV,
	".txt":  importer.ImportCSV,
	".xlsx": importer.ImportExcel,
	".xlsm": importer.ImportExcel,
	".dxf":  importer.ImportDXF,
}

// gridImporter picks an importer by file extension.
func gridImporter(path string) (func(string) importer.ImportResult, bool) {
	read, ok := gridImporters[strings.ToLower(filepath.Ext(path))]
	return read, ok
}

// openSource loads a saved document or imports a grid file, and returns
// a graph traced by the context logger.
func openSource(ctx context.Context, path string, settings model.EngineSettings) (model.Document, *engine.Graph, error) {
	logger := loggerFromContext(ctx)

	read, isGrid := gridImporter(path)
	if !isGrid {
		doc, g, err := project.Open(path)
		if err != nil {
			return model.Document{}, nil, err
		}
		g.SetLogger(logger)
		return doc, g, nil
	}

	result := read(path)
	for _, w := range result.Warnings {
		logger.Warn("import", "path", path, "warning", w)
	}
	if len(result.Errors) > 0 {
		return model.Document{}, nil, fmt.Errorf("failed to import %s:\n  %s", path, strings.Join(result.Errors, "\n  "))
	}
	g, err := engine.FromLayout(result.Layout, settings)
	if err != nil {
		return model.Document{}, nil, fmt.Errorf("failed to import %s: %w", path, err)
	}
	g.SetLogger(logger)

	doc := model.NewDocument(settings)
	doc.Name = documentName(path)
	doc.Layout = g.Layout()
	if result.Occupancy != nil {
		doc.Occupancy = result.Occupancy
	}
	return doc, g, nil
}

// saveDocument stores the graph state into doc and writes it.
func saveDocument(path string, doc model.Document, g *engine.Graph) error {
	doc.Layout = g.Layout()
	doc.Settings = g.Settings()
	doc.Occupancy.Prune(g.Faces())
	return project.Save(path, doc)
}
