package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/piwi3910/splitgrid/internal/engine"
	"github.com/piwi3910/splitgrid/internal/model"
	"github.com/piwi3910/splitgrid/internal/project"
)

func newEditCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Edit a layout in the terminal",
		Long: `Edit opens an interactive terminal editor. The file may be a saved
layout, a grid file to start from, or a new path. Saving writes a layout
document to --output, or to the file itself when it is a document.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			cfg := loadConfig(ctx)
			settings := defaultSettings(cfg)

			var (
				doc  model.Document
				g    *engine.Graph
				path string
			)
			if len(args) == 1 {
				path = args[0]
			}

			switch _, statErr := os.Stat(path); {
			case path != "" && statErr == nil:
				var err error
				if doc, g, err = openSource(ctx, path, settings); err != nil {
					return err
				}
			case path == "" || errors.Is(statErr, os.ErrNotExist):
				doc = model.NewDocument(settings)
				g = engine.New(settings)
				g.SetLogger(logger)
				if path != "" {
					doc.Name = documentName(path)
				}
			default:
				return statErr
			}

			if output == "" && path != "" {
				output = path
				if _, isGrid := gridImporter(path); isGrid {
					output = strings.TrimSuffix(path, filepath.Ext(path)) + project.FileExtension
				}
			}
			var save func(model.Document, *engine.Graph) error
			if output != "" {
				save = func(d model.Document, g *engine.Graph) error {
					return saveDocument(output, d, g)
				}
			}

			m := NewEditorModel(doc, g, output, cfg.Palette, save, logger)
			final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			if err != nil {
				return fmt.Errorf("editor failed: %w", err)
			}
			if fm, ok := final.(EditorModel); ok && fm.Dirty() {
				printWarning(cmd.OutOrStdout(), "Quit with unsaved changes")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "document path used when saving")
	return cmd
}
