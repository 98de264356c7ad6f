package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/splitgrid/internal/model"
	"github.com/piwi3910/splitgrid/internal/project"
)

// showSettingsDialog displays the application settings editor.
func (a *App) showSettingsDialog() {
	cfg := a.config
	cfg.Palette = append([]string(nil), a.config.Palette...)

	// Helper to create a float entry bound to a pointer
	floatEntry := func(val *float64, format string) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf(format, *val))
		e.OnChanged = func(text string) {
			if v, err := strconv.ParseFloat(text, 64); err == nil {
				*val = v
			}
		}
		return e
	}

	themeSelect := widget.NewSelect([]string{"system", "light", "dark"}, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	pageSelect := widget.NewSelect([]string{"A4", "Letter"}, func(selected string) {
		cfg.PageSize = selected
	})
	pageSelect.SetSelected(cfg.PageSize)

	strictCheck := widget.NewCheck("Stop on internal errors", func(on bool) {
		cfg.StrictInvariants = on
	})
	strictCheck.SetChecked(cfg.StrictInvariants)

	paletteEntry := widget.NewEntry()
	paletteEntry.SetText(strings.Join(cfg.Palette, ", "))

	formItems := []*widget.FormItem{
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("Export Page Size", pageSelect),
		widget.NewFormItem("Palette", paletteEntry),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Layout Size", floatEntry(&cfg.DefaultSize, "%g")),
		widget.NewFormItem("Epsilon", floatEntry(&cfg.DefaultEpsilon, "%g")),
		widget.NewFormItem("Min Track Fraction", floatEntry(&cfg.DefaultMinTrackFraction, "%.2f")),
		widget.NewFormItem("Invariants", strictCheck),
	}

	d := dialog.NewForm("Settings", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			palette, err := parsePalette(paletteEntry.Text)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			cfg.Palette = palette
			a.config = cfg
			a.theme.SetPreference(cfg.Theme)
			a.app.Settings().SetTheme(a.theme)
			if err := a.saveConfig(); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
				return
			}
			a.refresh()
			dialog.ShowInformation("Settings Saved",
				"Settings have been saved. Engine settings apply to new layouts.", a.window)
		},
		a.window,
	)
	d.Resize(fyne.NewSize(480, 420))
	d.Show()
}

// parsePalette reads a comma-separated list of "#RRGGBB" colors.
func parsePalette(s string) ([]string, error) {
	var out []string
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		c, err := model.ParseHexColor(field)
		if err != nil {
			return nil, err
		}
		out = append(out, c.Hex())
	}
	if len(out) == 0 {
		return append([]string(nil), model.DefaultPalette...), nil
	}
	return out, nil
}

// showImportExportDialog displays the import/export data dialog.
func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("Export All Data...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			path := writer.URI().Path()
			writer.Close()
			if err := project.ExportAllData(path, a.config, a.presets); err != nil {
				dialog.ShowError(err, a.window)
			} else {
				dialog.ShowInformation("Export Complete",
					fmt.Sprintf("All application data exported to:\n%s", path), a.window)
			}
		}, a.window)
		d.SetFileName("splitgrid-backup.json")
		d.Show()
	})

	importBtn := widget.NewButton("Import All Data...", func() {
		dialog.ShowConfirm("Import Data",
			"Importing data will replace your settings and saved presets.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					path := reader.URI().Path()
					reader.Close()
					backup, err := project.ImportAllData(path)
					if err != nil {
						dialog.ShowError(err, a.window)
						return
					}
					a.config = backup.Config
					a.presets = backup.Presets
					if err := a.saveConfig(); err != nil {
						dialog.ShowError(fmt.Errorf("failed to save imported settings: %w", err), a.window)
						return
					}
					if err := project.SaveDefaultPresets(a.presets); err != nil {
						dialog.ShowError(fmt.Errorf("failed to save imported presets: %w", err), a.window)
						return
					}
					a.theme.SetPreference(a.config.Theme)
					a.app.Settings().SetTheme(a.theme)
					a.SetupMenus()
					a.refresh()
					dialog.ShowInformation("Import Complete",
						fmt.Sprintf("Data imported successfully from backup created at %s.", backup.CreatedAt), a.window)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export settings and saved presets to a backup file,\nor import from a previously exported backup."),
		widget.NewSeparator(),
		exportBtn,
		widget.NewSeparator(),
		importBtn,
	)

	d := dialog.NewCustom("Import / Export Data", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 250))
	d.Show()
}

// saveConfig persists the current app config to disk.
func (a *App) saveConfig() error {
	return project.SaveAppConfig(project.DefaultConfigPath(), a.config)
}
