package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"github.com/piwi3910/splitgrid/internal/model"
)

// newIconButtonWithTooltip creates an icon-only button with a tooltip that appears on hover.
func newIconButtonWithTooltip(icon fyne.Resource, tooltip string, tapped func()) *ttwidget.Button {
	btn := ttwidget.NewButtonWithIcon("", icon, tapped)
	btn.SetToolTip(tooltip)
	return btn
}

// newTextButtonWithTooltip is the labelled variant for actions without a fitting icon.
func newTextButtonWithTooltip(label, tooltip string, tapped func()) *ttwidget.Button {
	btn := ttwidget.NewButton(label, tapped)
	btn.SetToolTip(tooltip)
	return btn
}

// editorToolbar keeps the buttons whose enabled state follows the editor.
type editorToolbar struct {
	bar fyne.CanvasObject

	undo, redo   *ttwidget.Button
	initial      *ttwidget.Button
	inserts      []*ttwidget.Button
	perSelection []*ttwidget.Button
	perLayout    []*ttwidget.Button
}

func (a *App) buildToolbar() *editorToolbar {
	t := &editorToolbar{}

	t.undo = newIconButtonWithTooltip(theme.ContentUndoIcon(), "Undo", a.undo)
	t.redo = newIconButtonWithTooltip(theme.ContentRedoIcon(), "Redo", a.redo)
	t.initial = newIconButtonWithTooltip(theme.ContentAddIcon(), "Add initial face", a.addInitialFace)

	edgeIcons := map[model.Edge]fyne.Resource{
		model.EdgeTop:    theme.MoveUpIcon(),
		model.EdgeBottom: theme.MoveDownIcon(),
		model.EdgeLeft:   theme.NavigateBackIcon(),
		model.EdgeRight:  theme.NavigateNextIcon(),
	}
	for _, e := range model.Edges {
		e := e
		t.inserts = append(t.inserts, newIconButtonWithTooltip(edgeIcons[e],
			"Insert a new face along the "+e.String()+" edge", func() { a.insertFromEdge(e) }))
	}

	t.perSelection = []*ttwidget.Button{
		newTextButtonWithTooltip("Split V", "Split the selected face into left and right halves",
			func() { a.subdivide(model.AxisVertical) }),
		newTextButtonWithTooltip("Split H", "Split the selected face into lower and upper halves",
			func() { a.subdivide(model.AxisHorizontal) }),
		newIconButtonWithTooltip(theme.DeleteIcon(), "Remove the selected face", a.removeSelected),
		newIconButtonWithTooltip(theme.AccountIcon(), "Assign a player to the selected face", a.showSeatDialog),
	}
	t.perLayout = []*ttwidget.Button{
		newIconButtonWithTooltip(theme.ViewRestoreIcon(), "Equalize all weights", a.equalize),
		newIconButtonWithTooltip(theme.ContentClearIcon(), "Clear the layout", a.clearLayout),
	}

	objects := []fyne.CanvasObject{
		newIconButtonWithTooltip(theme.DocumentCreateIcon(), "New layout", a.newLayout),
		newIconButtonWithTooltip(theme.FolderOpenIcon(), "Open layout", a.openLayout),
		newIconButtonWithTooltip(theme.DocumentSaveIcon(), "Save layout", a.saveLayout),
		widget.NewSeparator(),
		t.undo, t.redo,
		widget.NewSeparator(),
		t.initial,
	}
	for _, b := range t.inserts {
		objects = append(objects, b)
	}
	objects = append(objects, widget.NewSeparator())
	for _, b := range t.perSelection {
		objects = append(objects, b)
	}
	objects = append(objects, widget.NewSeparator())
	for _, b := range t.perLayout {
		objects = append(objects, b)
	}
	objects = append(objects,
		widget.NewSeparator(),
		newIconButtonWithTooltip(theme.ListIcon(), "Layout presets", a.showPresetsDialog),
		newIconButtonWithTooltip(theme.DocumentPrintIcon(), "Export PDF sheet", a.exportPDF),
	)

	t.bar = container.NewHBox(objects...)
	return t
}

func setEnabled(b *ttwidget.Button, on bool) {
	if on {
		b.Enable()
	} else {
		b.Disable()
	}
}

// update enables each button only when its action can succeed.
func (t *editorToolbar) update(h *History, empty, hasSelection bool) {
	setEnabled(t.undo, h.CanUndo())
	setEnabled(t.redo, h.CanRedo())
	setEnabled(t.initial, empty)
	for _, b := range t.inserts {
		setEnabled(b, !empty)
	}
	for _, b := range t.perSelection {
		setEnabled(b, hasSelection)
	}
	for _, b := range t.perLayout {
		setEnabled(b, !empty)
	}
}
