package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-graphviz"
)

// ToDOT converts the face adjacency of a layout to Graphviz DOT. Each face is
// a node filled with its color; faces sharing an edge are joined.
func ToDOT(sheet Sheet) string {
	var buf bytes.Buffer
	buf.WriteString("graph faces {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=14];\n")
	buf.WriteString("\n")

	for _, f := range sheet.Faces {
		// Position nodes at face centres so the drawing resembles the layout.
		cx := (f.Rect.X + f.Rect.Width/2) / sheet.Size * 6
		cy := (f.Rect.Y + f.Rect.Height/2) / sheet.Size * 6
		fmt.Fprintf(&buf, "  f%d [label=%q, fillcolor=%q, pos=\"%.2f,%.2f!\"];\n",
			f.ID, sheet.Label(f.ID), sheet.Color(f.ID).Hex(), cx, cy)
	}

	buf.WriteString("\n")
	for _, e := range sheet.Edges() {
		fmt.Fprintf(&buf, "  f%d -- f%d;\n", e[0], e[1])
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportAdjacency writes the adjacency diagram. A ".dot" or ".gv" path gets
// the DOT source; anything else is rendered to SVG.
func ExportAdjacency(ctx context.Context, path string, sheet Sheet) error {
	if len(sheet.Faces) == 0 {
		return ErrEmptyLayout
	}
	dot := ToDOT(sheet)
	data := []byte(dot)
	switch filepath.Ext(path) {
	case ".dot", ".gv":
	default:
		svg, err := RenderSVG(ctx, dot)
		if err != nil {
			return err
		}
		data = svg
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write adjacency diagram: %w", err)
	}
	return nil
}
