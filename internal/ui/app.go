package ui

import (
	"errors"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"

	"github.com/piwi3910/splitgrid/internal/engine"
	"github.com/piwi3910/splitgrid/internal/model"
	"github.com/piwi3910/splitgrid/internal/project"
	"github.com/piwi3910/splitgrid/internal/ui/widgets"
)

const maxRecentLayouts = 10

// App holds all application state and UI references.
type App struct {
	app    fyne.App
	window fyne.Window
	logger *log.Logger
	theme  *SplitGridTheme

	config  model.AppConfig
	presets model.PresetStore

	doc      model.Document
	docPath  string
	dirty    bool
	graph    *engine.Graph
	history  *History
	selected int

	// UI references for dynamic updates
	canvas      *widgets.LayoutCanvas
	toolbar     *editorToolbar
	infoLabel   *widget.Label
	statusLabel *widget.Label
	rowEntry    *widget.Entry
	colEntry    *widget.Entry
}

// NewApp loads the saved configuration and presets and starts with an
// empty untitled layout.
func NewApp(application fyne.App, window fyne.Window, logger *log.Logger) *App {
	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		logger.Warn("using default settings", "err", err)
		config = model.DefaultAppConfig()
	}
	presets, err := project.LoadDefaultPresets()
	if err != nil {
		logger.Warn("could not load presets", "err", err)
		presets = model.NewPresetStore()
	}

	a := &App{
		app:      application,
		window:   window,
		logger:   logger,
		theme:    NewSplitGridTheme(config.Theme),
		config:   config,
		presets:  presets,
		history:  NewHistory(),
		selected: widgets.NoSelection,
	}
	application.Settings().SetTheme(a.theme)
	a.resetDocument()
	return a
}

// engineSettings returns the settings new layouts are created with.
func (a *App) engineSettings() model.EngineSettings {
	s := model.DefaultEngineSettings()
	a.config.ApplyToSettings(&s)
	return s.Normalized()
}

func (a *App) resetDocument() {
	settings := a.engineSettings()
	a.doc = model.NewDocument(settings)
	a.docPath = ""
	a.dirty = false
	a.setGraph(engine.New(settings))
	a.history.Clear()
	a.selected = widgets.NoSelection
}

func (a *App) setGraph(g *engine.Graph) {
	g.SetLogger(a.logger)
	a.graph = g
	if a.canvas != nil {
		a.canvas.SetSource(g)
	}
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	recent := fyne.NewMenuItem("Open Recent", nil)
	var recentItems []*fyne.MenuItem
	for _, path := range a.config.RecentLayouts {
		path := path
		recentItems = append(recentItems, fyne.NewMenuItem(path, func() { a.openPath(path) }))
	}
	if len(recentItems) == 0 {
		none := fyne.NewMenuItem("(none)", nil)
		none.Disabled = true
		recentItems = append(recentItems, none)
	}
	recent.ChildMenu = fyne.NewMenu("", recentItems...)

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Layout", a.newLayout),
		fyne.NewMenuItem("Open Layout...", a.openLayout),
		recent,
		fyne.NewMenuItem("Save Layout", a.saveLayout),
		fyne.NewMenuItem("Save Layout As...", a.saveLayoutAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Grid from CSV...", a.importCSV),
		fyne.NewMenuItem("Import Grid from Excel...", a.importExcel),
		fyne.NewMenuItem("Import Rectangles from DXF...", a.importDXF),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PDF Sheet...", a.exportPDF),
		fyne.NewMenuItem("Export Seat Cards...", a.exportLabels),
		fyne.NewMenuItem("Export Excel Workbook...", a.exportXLSX),
		fyne.NewMenuItem("Export DXF Drawing...", a.exportDXF),
		fyne.NewMenuItem("Export Adjacency Graph...", a.exportAdjacency),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings...", a.showSettingsDialog),
		fyne.NewMenuItem("Import / Export Data...", a.showImportExportDialog),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", a.undo),
		fyne.NewMenuItem("Redo", a.redo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Equalize Weights", a.equalize),
		fyne.NewMenuItem("Clear Layout", a.clearLayout),
	)

	insertItems := make([]*fyne.MenuItem, 0, len(model.Edges))
	for _, e := range model.Edges {
		e := e
		insertItems = append(insertItems, fyne.NewMenuItem(
			"Insert from "+edgeTitle(e), func() { a.insertFromEdge(e) }))
	}
	layoutMenu := fyne.NewMenu("Layout", append([]*fyne.MenuItem{
		fyne.NewMenuItem("Add Initial Face", a.addInitialFace),
		fyne.NewMenuItemSeparator(),
	}, append(insertItems,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Split Selected Vertically", func() { a.subdivide(model.AxisVertical) }),
		fyne.NewMenuItem("Split Selected Horizontally", func() { a.subdivide(model.AxisHorizontal) }),
		fyne.NewMenuItem("Remove Selected", a.removeSelected),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Assign Seat...", a.showSeatDialog),
		fyne.NewMenuItem("Presets...", a.showPresetsDialog),
	)...)...)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, layoutMenu, helpMenu))
}

func edgeTitle(e model.Edge) string {
	s := e.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// SetupShortcuts binds the editing keys on the window canvas.
func (a *App) SetupShortcuts() {
	c := a.window.Canvas()
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { a.undo() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift},
		func(fyne.Shortcut) { a.redo() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { a.saveLayout() })
	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyDelete, fyne.KeyBackspace:
			a.removeSelected()
		case fyne.KeyV:
			a.subdivide(model.AxisVertical)
		case fyne.KeyH:
			a.subdivide(model.AxisHorizontal)
		case fyne.KeyEscape:
			a.selectFace(widgets.NoSelection)
		}
	})
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About SplitGrid",
		"SplitGrid: split-screen layout editor\n\n"+
			"Divide the screen into rectangular player views by inserting,\n"+
			"splitting and removing faces, then export the result.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	a.canvas = widgets.NewLayoutCanvas(a.graph, a.config.Palette, 360)
	a.canvas.OnFaceTapped = a.selectFace
	a.toolbar = a.buildToolbar()

	split := container.NewHSplit(a.canvas, a.buildSidePanel())
	split.Offset = 0.7

	a.statusLabel = widget.NewLabel("")
	root := container.NewBorder(a.toolbar.bar, a.statusLabel, nil, nil, split)
	a.refresh()
	return root
}

// ─── Side Panel ────────────────────────────────────────────

func (a *App) buildSidePanel() fyne.CanvasObject {
	a.infoLabel = widget.NewLabel("")
	a.infoLabel.Wrapping = fyne.TextWrapWord

	selection := widget.NewCard("Selection", "", container.NewVBox(
		a.infoLabel,
		container.NewGridWithColumns(2,
			widget.NewButton("Split V", func() { a.subdivide(model.AxisVertical) }),
			widget.NewButton("Split H", func() { a.subdivide(model.AxisHorizontal) }),
		),
		container.NewGridWithColumns(2,
			widget.NewButton("Assign Seat", a.showSeatDialog),
			widget.NewButton("Remove", a.removeSelected),
		),
	))

	a.rowEntry = widget.NewEntry()
	a.colEntry = widget.NewEntry()
	weights := widget.NewCard("Weights", "Rows are listed bottom to top", container.NewVBox(
		widget.NewForm(
			widget.NewFormItem("Rows", a.rowEntry),
			widget.NewFormItem("Columns", a.colEntry),
		),
		container.NewGridWithColumns(2,
			widget.NewButton("Apply", a.applyWeights),
			widget.NewButton("Equalize", a.equalize),
		),
		a.buildDividerControls(),
	))

	return container.NewVScroll(container.NewVBox(selection, weights))
}

// buildDividerControls nudges one row or column boundary at a time.
func (a *App) buildDividerControls() fyne.CanvasObject {
	axisSelect := widget.NewSelect([]string{"Column", "Row"}, nil)
	axisSelect.SetSelected("Column")
	indexEntry := widget.NewEntry()
	indexEntry.SetText("1")

	nudge := func(sign float64) {
		axis := model.AxisVertical
		if axisSelect.Selected == "Row" {
			axis = model.AxisHorizontal
		}
		var index int
		if _, err := fmt.Sscanf(indexEntry.Text, "%d", &index); err != nil {
			dialog.ShowError(fmt.Errorf("invalid divider index %q", indexEntry.Text), a.window)
			return
		}
		step := sign * 0.02 * a.graph.Settings().Size
		a.edit(fmt.Sprintf("Move %s Divider %d", axisSelect.Selected, index), func() error {
			return a.graph.MoveDivider(axis, index, step)
		})
	}

	return container.NewVBox(
		widget.NewLabel("Divider"),
		container.NewGridWithColumns(2, axisSelect, indexEntry),
		container.NewGridWithColumns(2,
			widget.NewButton("Move -", func() { nudge(-1) }),
			widget.NewButton("Move +", func() { nudge(1) }),
		),
	)
}

func (a *App) selectFace(id int) {
	a.selected = id
	a.refresh()
}

// refresh pushes the current graph state into every widget.
func (a *App) refresh() {
	if a.canvas == nil {
		return
	}
	if _, err := a.graph.Face(a.selected); err != nil {
		a.selected = widgets.NoSelection
	}
	a.canvas.SetPalette(a.config.Palette)
	a.canvas.SetOccupancy(a.doc.Occupancy)
	a.canvas.SetSelected(a.selected)

	a.infoLabel.SetText(a.selectionText())
	a.rowEntry.SetText(formatWeights(a.graph.RowWeights()))
	a.colEntry.SetText(formatWeights(a.graph.ColWeights()))

	rows, cols := a.graph.Dimensions()
	a.statusLabel.SetText(fmt.Sprintf("%d faces, %d×%d grid", a.graph.Len(), rows, cols))
	a.toolbar.update(a.history, a.graph.Empty(), a.selected != widgets.NoSelection)

	title := "SplitGrid - " + a.doc.Name
	if a.dirty {
		title += " *"
	}
	a.window.SetTitle(title)
}

func (a *App) selectionText() string {
	if a.selected == widgets.NoSelection {
		if a.graph.Empty() {
			return "The layout is empty. Add an initial face to begin."
		}
		return "Tap a face to select it."
	}
	f, err := a.graph.Face(a.selected)
	if err != nil {
		return err.Error()
	}
	share := f.Rect.Area() / (a.graph.Settings().Size * a.graph.Settings().Size) * 100
	text := fmt.Sprintf("Face %d\nPosition %.3f, %.3f\nSize %.3f × %.3f (%.1f%%)\nNeighbors %v",
		f.ID, f.Rect.X, f.Rect.Y, f.Rect.Width, f.Rect.Height, share, a.graph.Neighbors(f.ID))
	if seat, ok := a.doc.Occupancy[f.ID]; ok {
		text += "\nSeat " + seat.Player
		if seat.Color != "" {
			text += " (" + seat.Color + ")"
		}
	}
	return text
}

// ─── Editing ───────────────────────────────────────────────

func (a *App) snapshot(label string) Snapshot {
	return MakeSnapshot(a.graph.Layout(), a.doc.Occupancy, label)
}

// edit runs one structural change as an undoable step. Editors reject bad
// input before mutating, so a plain error leaves nothing to undo. An
// invariant violation means the graph was rebuilt and is recorded.
func (a *App) edit(label string, fn func() error) {
	before := a.snapshot(label)
	if err := fn(); err != nil {
		if !errors.Is(err, engine.ErrInvariantViolation) {
			dialog.ShowError(err, a.window)
			return
		}
		a.logger.Error("layout was rebuilt", "edit", label, "err", err)
		dialog.ShowError(fmt.Errorf("the layout was reset after an internal error: %w", err), a.window)
	}
	a.history.Push(before)
	a.doc.Occupancy.Prune(a.graph.Faces())
	a.dirty = true
	a.logger.Debug("edit", "label", label, "faces", a.graph.Len())
	a.refresh()
}

// replaceLayout swaps in a whole layout as one undoable step.
func (a *App) replaceLayout(label string, layout model.Layout, occ model.Occupancy) {
	before := a.snapshot(label)
	if err := a.graph.Restore(layout); err != nil {
		dialog.ShowError(fmt.Errorf("failed to apply layout: %w", err), a.window)
		return
	}
	if occ == nil {
		occ = model.Occupancy{}
	}
	a.doc.Occupancy = occ.Clone()
	a.doc.Occupancy.Prune(a.graph.Faces())
	a.history.Push(before)
	a.selected = widgets.NoSelection
	a.dirty = true
	a.refresh()
}

func (a *App) restore(s Snapshot) {
	if err := a.graph.Restore(s.Layout); err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.doc.Occupancy = s.Occupancy.Clone()
	a.dirty = true
	a.refresh()
}

func (a *App) undo() {
	s, ok := a.history.Undo(a.snapshot("Redo"))
	if !ok {
		return
	}
	a.logger.Debug("undo", "label", s.Label)
	a.restore(s)
}

func (a *App) redo() {
	s, ok := a.history.Redo(a.snapshot("Undo"))
	if !ok {
		return
	}
	a.logger.Debug("redo", "label", s.Label)
	a.restore(s)
}

func (a *App) addInitialFace() {
	a.edit("Add Initial Face", func() error {
		id, err := a.graph.AddInitialFace()
		if err == nil {
			a.selected = id
		}
		return err
	})
}

func (a *App) insertFromEdge(e model.Edge) {
	a.edit("Insert from "+e.String(), func() error {
		id, err := a.graph.InsertFromEdge(e)
		if err == nil {
			a.selected = id
		}
		return err
	})
}

// requireSelection returns the selected face or tells the user to pick one.
func (a *App) requireSelection() (int, bool) {
	if a.selected == widgets.NoSelection {
		dialog.ShowInformation("No face selected", "Tap a face on the canvas first.", a.window)
		return 0, false
	}
	return a.selected, true
}

func (a *App) subdivide(axis model.Axis) {
	id, ok := a.requireSelection()
	if !ok {
		return
	}
	a.edit(fmt.Sprintf("Split Face %d %s", id, axis), func() error {
		_, newID, err := a.graph.Subdivide(id, axis)
		if err == nil {
			a.selected = newID
		}
		return err
	})
}

func (a *App) removeSelected() {
	id, ok := a.requireSelection()
	if !ok {
		return
	}
	a.edit(fmt.Sprintf("Remove Face %d", id), func() error {
		return a.graph.RemoveFace(id)
	})
}

func (a *App) equalize() {
	a.edit("Equalize", a.graph.Equalize)
}

func (a *App) applyWeights() {
	rows, err := parseWeights(a.rowEntry.Text)
	if err != nil {
		dialog.ShowError(fmt.Errorf("row weights: %w", err), a.window)
		return
	}
	cols, err := parseWeights(a.colEntry.Text)
	if err != nil {
		dialog.ShowError(fmt.Errorf("column weights: %w", err), a.window)
		return
	}
	a.edit("Set Weights", func() error {
		// Restore the rows if the columns are rejected so the step stays atomic.
		old := a.graph.RowWeights()
		if err := a.graph.SetRowWeights(rows); err != nil {
			return err
		}
		if err := a.graph.SetColWeights(cols); err != nil {
			_ = a.graph.SetRowWeights(old)
			return err
		}
		return nil
	})
}

func (a *App) clearLayout() {
	if a.graph.Empty() {
		return
	}
	dialog.ShowConfirm("Clear Layout", "Remove every face from the layout?", func(ok bool) {
		if !ok {
			return
		}
		a.edit("Clear", func() error {
			a.graph.Clear()
			a.doc.Occupancy = model.Occupancy{}
			return nil
		})
	}, a.window)
}

// ─── Seats ─────────────────────────────────────────────────

func (a *App) showSeatDialog() {
	id, ok := a.requireSelection()
	if !ok {
		return
	}
	seat := a.doc.Occupancy[id]

	playerEntry := widget.NewEntry()
	playerEntry.SetText(seat.Player)
	playerEntry.SetPlaceHolder("Player name")

	colorEntry := widget.NewSelectEntry(a.config.Palette)
	colorEntry.SetText(seat.Color)
	colorEntry.SetPlaceHolder("#RRGGBB, blank for palette")

	items := []*widget.FormItem{
		widget.NewFormItem("Player", playerEntry),
		widget.NewFormItem("Color", colorEntry),
	}
	d := dialog.NewForm(fmt.Sprintf("Seat for Face %d", id), "Assign", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		player := strings.TrimSpace(playerEntry.Text)
		hex := strings.TrimSpace(colorEntry.Text)
		if hex != "" {
			c, err := model.ParseHexColor(hex)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			hex = c.Hex()
		}
		a.edit(fmt.Sprintf("Assign Seat %d", id), func() error {
			if player == "" && hex == "" {
				delete(a.doc.Occupancy, id)
				return nil
			}
			a.doc.Occupancy[id] = model.Seat{Player: player, Color: hex}
			return nil
		})
	}, a.window)
	d.Resize(fyne.NewSize(380, 200))
	d.Show()
}

// ─── Documents ─────────────────────────────────────────────

func (a *App) confirmDiscard(then func()) {
	if !a.dirty {
		then()
		return
	}
	dialog.ShowConfirm("Unsaved Changes", "Discard the changes to "+a.doc.Name+"?", func(ok bool) {
		if ok {
			then()
		}
	}, a.window)
}

func (a *App) newLayout() {
	a.confirmDiscard(func() {
		a.resetDocument()
		a.refresh()
	})
}

func (a *App) openLayout() {
	a.confirmDiscard(func() {
		d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			path := reader.URI().Path()
			reader.Close()
			a.openPath(path)
		}, a.window)
		d.Show()
	})
}

func (a *App) openPath(path string) {
	doc, g, err := project.Open(path)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.doc = doc
	a.docPath = path
	a.dirty = false
	a.setGraph(g)
	a.history.Clear()
	a.selected = widgets.NoSelection
	a.rememberRecent(path)
	a.logger.Info("opened layout", "path", path, "faces", g.Len())
	a.refresh()
}

func (a *App) saveLayout() {
	if a.docPath == "" {
		a.saveLayoutAs()
		return
	}
	a.writeDocument(a.docPath)
}

func (a *App) saveLayoutAs() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if !strings.HasSuffix(path, project.FileExtension) {
			path += project.FileExtension
		}
		a.writeDocument(path)
	}, a.window)
	d.SetFileName(a.doc.Name + project.FileExtension)
	d.Show()
}

func (a *App) writeDocument(path string) {
	a.doc.Layout = a.graph.Layout()
	a.doc.Settings = a.graph.Settings()
	if err := project.Save(path, a.doc); err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.docPath = path
	a.dirty = false
	a.rememberRecent(path)
	a.logger.Info("saved layout", "path", path)
	a.refresh()
}

func (a *App) rememberRecent(path string) {
	a.config.AddRecent(path, maxRecentLayouts)
	if err := a.saveConfig(); err != nil {
		a.logger.Warn("could not save recent layouts", "err", err)
	}
	a.SetupMenus()
}
