package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/piwi3910/splitgrid/internal/engine"
	"github.com/piwi3910/splitgrid/internal/model"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
	colorBlack  = lipgloss.Color("0")
)

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// faceGlyph is the single character a face is drawn with.
func faceGlyph(id int) string {
	return strconv.FormatInt(int64(id%36), 36)
}

// rasterize samples the layout at the centre of each character cell and
// returns face ids with the top row first. Cells outside every face are -1.
func rasterize(g *engine.Graph, width, height int) [][]int {
	size := g.Settings().Size
	out := make([][]int, height)
	for r := range out {
		out[r] = make([]int, width)
		y := size * (1 - (float64(r)+0.5)/float64(height))
		for c := range out[r] {
			x := size * (float64(c) + 0.5) / float64(width)
			out[r][c] = -1
			if f, ok := g.FaceAt(x, y); ok {
				out[r][c] = f.ID
			}
		}
	}
	return out
}

// renderLayout draws the layout as coloured character blocks. The selected
// face, if any, is drawn bold and underlined.
func renderLayout(g *engine.Graph, occ model.Occupancy, palette []string, width, height, selected int) string {
	if g.Empty() {
		return StyleDim.Render("(empty layout)")
	}
	styles := make(map[int]lipgloss.Style)
	style := func(id int) lipgloss.Style {
		if s, ok := styles[id]; ok {
			return s
		}
		s := lipgloss.NewStyle().
			Background(lipgloss.Color(model.FaceColor(id, occ, palette).Hex())).
			Foreground(colorBlack)
		if id == selected {
			s = s.Bold(true).Underline(true).Foreground(colorWhite)
		}
		styles[id] = s
		return s
	}

	var b strings.Builder
	for r, row := range rasterize(g, width, height) {
		if r > 0 {
			b.WriteByte('\n')
		}
		for _, id := range row {
			if id < 0 {
				b.WriteString(" ")
				continue
			}
			b.WriteString(style(id).Render(faceGlyph(id)))
		}
	}
	return b.String()
}

// faceTable lists every face with its rectangle, share and seat.
func faceTable(g *engine.Graph, occ model.Occupancy) string {
	size := g.Settings().Size
	var rows [][]string
	for _, id := range g.FaceIDs() {
		f, _ := g.Face(id)
		share := f.Rect.Area() / (size * size) * 100
		rows = append(rows, []string{
			strconv.Itoa(id),
			fmt.Sprintf("%.3f", f.Rect.X),
			fmt.Sprintf("%.3f", f.Rect.Y),
			fmt.Sprintf("%.3f", f.Rect.Width),
			fmt.Sprintf("%.3f", f.Rect.Height),
			fmt.Sprintf("%.1f%%", share),
			fmt.Sprint(g.Neighbors(id)),
			occ[id].Player,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Face", "X", "Y", "Width", "Height", "Share", "Neighbors", "Player").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		String()
}

// printLayout writes the block drawing, the face table and the weights.
func printLayout(w io.Writer, name string, g *engine.Graph, occ model.Occupancy, palette []string) {
	fmt.Fprintln(w, StyleTitle.Render(name))
	fmt.Fprintln(w, renderLayout(g, occ, palette, 32, 16, -1))
	if g.Empty() {
		return
	}
	fmt.Fprintln(w, faceTable(g, occ))
	rows, cols := g.Dimensions()
	printKeyValue(w, "Grid", fmt.Sprintf("%d×%d", rows, cols))
	printKeyValue(w, "Rows", fmt.Sprint(g.RowWeights()))
	printKeyValue(w, "Columns", fmt.Sprint(g.ColWeights()))
}
