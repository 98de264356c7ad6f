package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/piwi3910/splitgrid/internal/engine"
	"github.com/piwi3910/splitgrid/internal/model"
	"github.com/piwi3910/splitgrid/internal/project"
)

func newPresetsCmd() *cobra.Command {
	var store string

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List, apply, import and export layout presets",
	}
	cmd.PersistentFlags().StringVar(&store, "store", "", "preset store path (default ~/.splitgrid/presets.json)")

	storePath := func() (string, error) {
		if store != "" {
			return store, nil
		}
		return project.DefaultPresetPath()
	}

	cmd.AddCommand(newPresetsListCmd(storePath))
	cmd.AddCommand(newPresetsApplyCmd(storePath))
	cmd.AddCommand(newPresetsImportCmd(storePath))
	cmd.AddCommand(newPresetsExportCmd(storePath))
	return cmd
}

func loadStore(storePath func() (string, error)) (string, model.PresetStore, error) {
	path, err := storePath()
	if err != nil {
		return "", model.PresetStore{}, err
	}
	s, err := project.LoadPresets(path)
	return path, s, err
}

// allPresets lists the built-in presets followed by the saved ones.
func allPresets(saved model.PresetStore) []model.LayoutPreset {
	return append(model.BuiltinPresets(), saved.Presets...)
}

// findPreset matches an id exactly or a name case-insensitively.
func findPreset(presets []model.LayoutPreset, key string) (model.LayoutPreset, bool) {
	for _, p := range presets {
		if p.ID == key || strings.EqualFold(p.Name, key) {
			return p, true
		}
	}
	return model.LayoutPreset{}, false
}

func newPresetsListCmd(storePath func() (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in and saved presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, saved, err := loadStore(storePath)
			if err != nil {
				return err
			}
			var rows [][]string
			for _, p := range allPresets(saved) {
				r, c := len(p.Layout.Grid), 0
				if r > 0 {
					c = len(p.Layout.Grid[0])
				}
				rows = append(rows, []string{
					p.ID, p.Name, fmt.Sprint(len(p.Layout.FaceIDs())), fmt.Sprintf("%d×%d", r, c), p.Description,
				})
			}
			headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("ID", "Name", "Faces", "Grid", "Description").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == -1 {
						return headerStyle
					}
					return lipgloss.NewStyle().Padding(0, 1)
				})
			fmt.Fprintln(cmd.OutOrStdout(), t.String())
			return nil
		},
	}
}

func newPresetsApplyCmd(storePath func() (string, error)) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "apply <id-or-name>",
		Short: "Create a layout document from a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, saved, err := loadStore(storePath)
			if err != nil {
				return err
			}
			p, ok := findPreset(allPresets(saved), args[0])
			if !ok {
				return fmt.Errorf("preset %q not found", args[0])
			}
			cfg := loadConfig(ctx)
			doc := p.ToDocument(p.Name, defaultSettings(cfg))
			g, err := engine.FromLayout(doc.Layout, doc.Settings)
			if err != nil {
				return fmt.Errorf("preset %q is invalid: %w", p.Name, err)
			}
			g.SetLogger(loggerFromContext(ctx))

			out := cmd.OutOrStdout()
			printLayout(out, doc.Name, g, doc.Occupancy, cfg.Palette)
			if output != "" {
				if err := saveDocument(output, doc, g); err != nil {
					return err
				}
				printFile(out, output)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the layout document here")
	return cmd
}

func newPresetsImportCmd(storePath func() (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.toml>",
		Short: "Merge presets from a TOML file into the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, saved, err := loadStore(storePath)
			if err != nil {
				return err
			}
			imported, err := project.ImportPresetsTOML(args[0])
			if err != nil {
				return err
			}
			before := len(saved.Presets)
			merged, rejected := project.MergePresets(saved, imported)
			if err := project.SavePresets(path, merged); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printSuccess(out, "Imported %d presets", len(merged.Presets)-before)
			for _, name := range rejected {
				printWarning(out, "Skipped invalid preset %q", name)
			}
			return nil
		},
	}
}

func newPresetsExportCmd(storePath func() (string, error)) *cobra.Command {
	var builtin bool

	cmd := &cobra.Command{
		Use:   "export <file.toml>",
		Short: "Write saved presets to a TOML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, saved, err := loadStore(storePath)
			if err != nil {
				return err
			}
			if builtin {
				saved.Presets = allPresets(saved)
			}
			if len(saved.Presets) == 0 {
				return fmt.Errorf("no saved presets to export (use --builtin to include built-ins)")
			}
			if err := project.ExportPresetsTOML(args[0], saved); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printSuccess(out, "Exported %d presets", len(saved.Presets))
			printFile(out, args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&builtin, "builtin", false, "include the built-in presets")
	return cmd
}
