package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/splitgrid/internal/model"
	"github.com/piwi3910/splitgrid/internal/project"
)

// presetEntry is one row of the presets list.
type presetEntry struct {
	preset  model.LayoutPreset
	builtin bool
}

func (a *App) presetEntries() []presetEntry {
	var out []presetEntry
	for _, p := range model.BuiltinPresets() {
		out = append(out, presetEntry{preset: p, builtin: true})
	}
	for _, p := range a.presets.Presets {
		out = append(out, presetEntry{preset: p})
	}
	return out
}

// showPresetsDialog lists built-in and saved presets.
func (a *App) showPresetsDialog() {
	entries := a.presetEntries()
	selected := -1

	detail := widget.NewLabel("Select a preset.")
	detail.Wrapping = fyne.TextWrapWord

	list := widget.NewList(
		func() int { return len(entries) },
		func() fyne.CanvasObject { return widget.NewLabel("preset") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			e := entries[i]
			name := e.preset.Name
			if e.builtin {
				name += " (built-in)"
			}
			o.(*widget.Label).SetText(name)
		},
	)

	reload := func() {
		entries = a.presetEntries()
		selected = -1
		list.UnselectAll()
		list.Refresh()
		detail.SetText("Select a preset.")
	}

	list.OnSelected = func(i widget.ListItemID) {
		selected = i
		p := entries[i].preset
		rows, cols := len(p.Layout.Grid), 0
		if rows > 0 {
			cols = len(p.Layout.Grid[0])
		}
		text := fmt.Sprintf("%s\n%d faces on a %d×%d grid", p.Name, len(p.Layout.FaceIDs()), rows, cols)
		if p.Description != "" {
			text += "\n\n" + p.Description
		}
		detail.SetText(text)
	}

	var d dialog.Dialog

	applyBtn := widget.NewButton("Apply", func() {
		if selected < 0 {
			return
		}
		p := entries[selected].preset
		d.Hide()
		a.replaceLayout("Apply Preset "+p.Name, p.Layout, nil)
	})

	saveBtn := widget.NewButton("Save Current...", func() {
		if a.graph.Empty() {
			dialog.ShowInformation("Nothing to save", "Add at least one face first.", a.window)
			return
		}
		nameEntry := widget.NewEntry()
		nameEntry.SetText(a.doc.Name)
		descEntry := widget.NewMultiLineEntry()
		items := []*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Description", descEntry),
		}
		dialog.ShowForm("Save Preset", "Save", "Cancel", items, func(ok bool) {
			name := strings.TrimSpace(nameEntry.Text)
			if !ok || name == "" {
				return
			}
			a.presets.Add(model.NewLayoutPreset(name, strings.TrimSpace(descEntry.Text), a.graph.Layout()))
			if err := project.SaveDefaultPresets(a.presets); err != nil {
				dialog.ShowError(err, a.window)
			}
			reload()
		}, a.window)
	})

	deleteBtn := widget.NewButton("Delete", func() {
		if selected < 0 || entries[selected].builtin {
			return
		}
		p := entries[selected].preset
		dialog.ShowConfirm("Delete Preset", "Delete "+p.Name+"?", func(ok bool) {
			if !ok {
				return
			}
			a.presets.Remove(p.ID)
			if err := project.SaveDefaultPresets(a.presets); err != nil {
				dialog.ShowError(err, a.window)
			}
			reload()
		}, a.window)
	})

	importBtn := widget.NewButton("Import TOML...", func() {
		dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			path := reader.URI().Path()
			reader.Close()
			imported, err := project.ImportPresetsTOML(path)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			before := len(a.presets.Presets)
			merged, rejected := project.MergePresets(a.presets, imported)
			a.presets = merged
			if err := project.SaveDefaultPresets(a.presets); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			reload()
			msg := fmt.Sprintf("Imported %d presets.", len(merged.Presets)-before)
			if len(rejected) > 0 {
				msg += "\n\nSkipped invalid presets:\n" + strings.Join(rejected, "\n")
			}
			dialog.ShowInformation("Import Complete", msg, a.window)
		}, a.window)
	})

	exportBtn := widget.NewButton("Export TOML...", func() {
		if len(a.presets.Presets) == 0 {
			dialog.ShowInformation("Nothing to export", "Save a preset first.", a.window)
			return
		}
		fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			path := writer.URI().Path()
			writer.Close()
			if err := project.ExportPresetsTOML(path, a.presets); err != nil {
				dialog.ShowError(err, a.window)
			}
		}, a.window)
		fd.SetFileName("presets.toml")
		fd.Show()
	})

	buttons := container.NewGridWithColumns(5, applyBtn, saveBtn, deleteBtn, importBtn, exportBtn)
	content := container.NewBorder(nil, buttons, nil, nil,
		container.NewHSplit(list, container.NewVScroll(detail)))

	d = dialog.NewCustom("Presets", "Close", content, a.window)
	d.Resize(fyne.NewSize(640, 420))
	d.Show()
}
