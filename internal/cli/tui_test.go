package cli

import (
	"errors"
	"io"
	"math"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/piwi3910/splitgrid/internal/engine"
	"github.com/piwi3910/splitgrid/internal/model"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m EditorModel, keys ...string) EditorModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(EditorModel)
	}
	return m
}

func newEditor(save func(model.Document, *engine.Graph) error) EditorModel {
	g := newGraph()
	return NewEditorModel(model.NewDocument(g.Settings()), g, "test.splitgrid", nil, save, log.New(io.Discard))
}

func TestEditorBuildsLayout(t *testing.T) {
	m := press(newEditor(nil), "i", "right", "v")

	if got := m.Graph().FaceIDs(); !reflect.DeepEqual(got, []int{0, 1, 2}) {
		t.Fatalf("faces = %v, want [0 1 2]", got)
	}
	if m.selected != 2 {
		t.Errorf("selected = %d, want the new face 2", m.selected)
	}
	if !m.Dirty() {
		t.Error("edits should mark the model dirty")
	}
}

func TestEditorRemoveAndUndo(t *testing.T) {
	m := press(newEditor(nil), "i", "right", "v", "x")
	if m.Graph().Len() != 2 {
		t.Fatalf("expected 2 faces after remove, got %d", m.Graph().Len())
	}
	if _, err := m.Graph().Face(m.selected); err != nil {
		t.Errorf("selection should move to a live face, got %d", m.selected)
	}

	m = press(m, "u")
	if m.Graph().Len() != 3 {
		t.Errorf("expected 3 faces after undo, got %d", m.Graph().Len())
	}
	m = press(m, "u", "u", "u", "u")
	if !m.Graph().Empty() {
		t.Errorf("undoing every edit should empty the layout")
	}
	if m.status != "nothing to undo" {
		t.Errorf("status = %q", m.status)
	}
}

func TestEditorCycleSelection(t *testing.T) {
	m := press(newEditor(nil), "i", "up", "up")
	if m.selected != 2 {
		t.Fatalf("selected = %d, want 2", m.selected)
	}
	m = press(m, "tab")
	if m.selected != 0 {
		t.Errorf("tab should wrap to 0, got %d", m.selected)
	}
	m = press(m, "p")
	if m.selected != 2 {
		t.Errorf("p should wrap back to 2, got %d", m.selected)
	}
}

func TestEditorMoveDivider(t *testing.T) {
	m := press(newEditor(nil), "i", "right", "]")
	f, err := m.Graph().Face(0)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(f.Rect.Width-0.52) > 1e-9 {
		t.Errorf("face 0 width = %v, want 0.52", f.Rect.Width)
	}
}

func TestEditorErrors(t *testing.T) {
	m := press(newEditor(nil), "x")
	if !errors.Is(m.err, engine.ErrFaceNotFound) {
		t.Errorf("expected ErrFaceNotFound, got %v", m.err)
	}
	if !strings.Contains(m.View(), iconError) {
		t.Error("view should show the error")
	}

	m = press(m, "i", "i")
	if !errors.Is(m.err, engine.ErrGraphNotEmpty) {
		t.Errorf("expected ErrGraphNotEmpty, got %v", m.err)
	}
	if len(m.undo) != 1 {
		t.Errorf("failed edits should not be undoable, got %d entries", len(m.undo))
	}
}

func TestEditorSave(t *testing.T) {
	var saved model.Layout
	m := press(newEditor(func(d model.Document, g *engine.Graph) error {
		saved = g.Layout()
		return nil
	}), "i", "down", "s")

	if m.Dirty() {
		t.Error("save should clear the dirty flag")
	}
	if len(saved.FaceIDs()) != 2 {
		t.Errorf("saved layout faces = %v", saved.FaceIDs())
	}

	m = press(newEditor(nil), "s")
	if m.status != "no output file" {
		t.Errorf("status = %q", m.status)
	}
}

func TestEditorQuit(t *testing.T) {
	_, cmd := newEditor(nil).Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestEditorView(t *testing.T) {
	m := press(newEditor(nil), "i", "left")
	view := m.View()
	for _, want := range []string{"Untitled *", "2 faces", "selected 1"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q:\n%s", want, view)
		}
	}
}
