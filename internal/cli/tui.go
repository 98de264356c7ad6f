package cli

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/piwi3910/splitgrid/internal/engine"
	"github.com/piwi3910/splitgrid/internal/model"
)

const maxUndo = 50

var (
	editorHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	editorStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	editorErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
	editorFrameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
)

const editorHelp = "tab/shift+tab select  i init  ←↑↓→ insert  v/h split  x remove\n" +
	"[ ] move column  { } move row  e equalize  c clear  u undo  s save  q quit"

// EditorModel is the bubbletea model for the terminal layout editor.
type EditorModel struct {
	graph   *engine.Graph
	doc     model.Document
	path    string
	palette []string
	save    func(model.Document, *engine.Graph) error
	logger  *log.Logger

	selected int
	undo     []model.Layout
	status   string
	err      error
	dirty    bool
	width    int
	height   int
}

// NewEditorModel creates an editor for g. save is called on "s"; a nil
// save disables saving.
func NewEditorModel(doc model.Document, g *engine.Graph, path string, palette []string,
	save func(model.Document, *engine.Graph) error, logger *log.Logger) EditorModel {
	m := EditorModel{
		graph:    g,
		doc:      doc,
		path:     path,
		palette:  palette,
		save:     save,
		logger:   logger,
		selected: -1,
		width:    48,
		height:   20,
	}
	if ids := g.FaceIDs(); len(ids) > 0 {
		m.selected = ids[0]
	}
	if m.doc.Occupancy == nil {
		m.doc.Occupancy = model.Occupancy{}
	}
	return m
}

func (m EditorModel) Init() tea.Cmd {
	return nil
}

// cycle moves the selection through the face ids in ascending order.
func (m *EditorModel) cycle(step int) {
	ids := m.graph.FaceIDs()
	if len(ids) == 0 {
		m.selected = -1
		return
	}
	at := 0
	for i, id := range ids {
		if id == m.selected {
			at = i
			break
		}
	}
	at = (at + step + len(ids)) % len(ids)
	m.selected = ids[at]
}

// edit runs fn as one undoable step.
func (m *EditorModel) edit(label string, fn func() error) {
	before := m.graph.Layout()
	err := fn()
	if err != nil && !errors.Is(err, engine.ErrInvariantViolation) {
		m.err = err
		return
	}
	m.undo = append(m.undo, before)
	if len(m.undo) > maxUndo {
		m.undo = m.undo[len(m.undo)-maxUndo:]
	}
	m.err = err
	m.dirty = true
	m.status = label
	m.doc.Occupancy.Prune(m.graph.Faces())
	if _, ferr := m.graph.Face(m.selected); ferr != nil {
		m.cycle(0)
	}
	m.logger.Debug("tui edit", "label", label, "faces", m.graph.Len())
}

func (m *EditorModel) divider(axis model.Axis, sign float64) {
	index := 1
	if f, err := m.graph.Face(m.selected); err == nil {
		// Move the divider on the selected face's far side when it has one.
		rows, cols := m.graph.Dimensions()
		if axis == model.AxisVertical {
			index = f.AnchorCol + spanOf(m.graph.Grid(), m.selected, true)
			if index >= cols {
				index = f.AnchorCol
			}
		} else {
			index = f.AnchorRow + spanOf(m.graph.Grid(), m.selected, false)
			if index >= rows {
				index = f.AnchorRow
			}
		}
	}
	step := sign * 0.02 * m.graph.Settings().Size
	m.edit(fmt.Sprintf("move %s divider %d", axis, index), func() error {
		return m.graph.MoveDivider(axis, index, step)
	})
}

// spanOf counts the columns (or rows) a face covers.
func spanOf(grid [][]int, id int, cols bool) int {
	seen := make(map[int]bool)
	for r, row := range grid {
		for c, v := range row {
			if v != id {
				continue
			}
			if cols {
				seen[c] = true
			} else {
				seen[r] = true
			}
		}
	}
	return len(seen)
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = max(msg.Width-4, 8)
		m.height = max(msg.Height-10, 4)
		return m, nil
	case tea.KeyMsg:
		m.err = nil
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "n":
			m.cycle(1)
		case "shift+tab", "p":
			m.cycle(-1)
		case "i":
			m.edit("initial face", func() error {
				id, err := m.graph.AddInitialFace()
				if err == nil {
					m.selected = id
				}
				return err
			})
		case "up", "down", "left", "right":
			edge := map[string]model.Edge{
				"up": model.EdgeTop, "down": model.EdgeBottom,
				"left": model.EdgeLeft, "right": model.EdgeRight,
			}[msg.String()]
			m.edit("insert from "+edge.String(), func() error {
				id, err := m.graph.InsertFromEdge(edge)
				if err == nil {
					m.selected = id
				}
				return err
			})
		case "v", "h":
			axis := model.AxisVertical
			if msg.String() == "h" {
				axis = model.AxisHorizontal
			}
			id := m.selected
			m.edit(fmt.Sprintf("split face %d %s", id, axis), func() error {
				_, newID, err := m.graph.Subdivide(id, axis)
				if err == nil {
					m.selected = newID
				}
				return err
			})
		case "x", "delete", "backspace":
			id := m.selected
			if _, err := m.graph.Face(id); err != nil {
				m.err = err
				break
			}
			m.edit(fmt.Sprintf("remove face %d", id), func() error {
				return m.graph.RemoveFace(id)
			})
		case "[":
			m.divider(model.AxisVertical, -1)
		case "]":
			m.divider(model.AxisVertical, 1)
		case "{":
			m.divider(model.AxisHorizontal, -1)
		case "}":
			m.divider(model.AxisHorizontal, 1)
		case "e":
			m.edit("equalize", m.graph.Equalize)
		case "c":
			m.edit("clear", func() error {
				m.graph.Clear()
				return nil
			})
		case "u":
			if len(m.undo) == 0 {
				m.status = "nothing to undo"
				break
			}
			last := m.undo[len(m.undo)-1]
			m.undo = m.undo[:len(m.undo)-1]
			if err := m.graph.Restore(last); err != nil {
				m.err = err
				break
			}
			m.dirty = true
			m.status = "undo"
			if _, err := m.graph.Face(m.selected); err != nil {
				m.cycle(0)
			}
		case "s":
			if m.save == nil {
				m.status = "no output file"
				break
			}
			if err := m.save(m.doc, m.graph); err != nil {
				m.err = err
				break
			}
			m.dirty = false
			m.status = "saved " + m.path
		}
	}
	return m, nil
}

func (m EditorModel) View() string {
	var b strings.Builder

	title := m.doc.Name
	if m.dirty {
		title += " *"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(editorFrameStyle.Render(renderLayout(m.graph, m.doc.Occupancy, m.palette, m.width, m.height, m.selected)))
	b.WriteString("\n")

	rows, cols := m.graph.Dimensions()
	info := fmt.Sprintf("%d faces  %d×%d grid", m.graph.Len(), rows, cols)
	if f, err := m.graph.Face(m.selected); err == nil {
		info += fmt.Sprintf("  selected %d %s neighbors %v", f.ID, f.Rect, m.graph.Neighbors(f.ID))
	}
	b.WriteString(editorStatusStyle.Render(info))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(editorErrorStyle.Render(iconError + " " + m.err.Error()))
	} else if m.status != "" {
		b.WriteString(editorStatusStyle.Render(iconInfo + " " + m.status))
	}
	b.WriteString("\n")
	b.WriteString(editorHelpStyle.Render(editorHelp))
	return b.String()
}

// Graph returns the edited graph.
func (m EditorModel) Graph() *engine.Graph {
	return m.graph
}

// Dirty reports whether there are unsaved edits.
func (m EditorModel) Dirty() bool {
	return m.dirty
}
