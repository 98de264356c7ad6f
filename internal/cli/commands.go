package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/splitgrid/internal/engine"
	"github.com/piwi3910/splitgrid/internal/export"
	"github.com/piwi3910/splitgrid/internal/model"
)

type applyOpts struct {
	from       string
	scriptFile string
	output     string
	name       string
	size       float64
	quiet      bool
}

func newApplyCmd() *cobra.Command {
	var opts applyOpts

	cmd := &cobra.Command{
		Use:   "apply [script]",
		Short: "Build a layout by running an edit script",
		Long: `Apply runs an edit script against a new or existing layout.

Steps are separated by commas, semicolons or newlines:
  init                    seed an empty layout with one face
  insert:EDGE             add a row or column (top, bottom, left, right)
  split:FACE:v|h          subdivide a face
  remove:FACE             remove a face and let its neighbours fill the gap
  move:v|h:INDEX:DELTA    drag a column (v) or row (h) divider
  rows:W/W/...            set row weights, bottom row first
  cols:W/W/...            set column weights, left column first
  equalize                reset all weights to 1
  clear                   remove every face`,
		Example: `  splitgridctl apply "init,insert:right,split:1:h" -o quad.splitgrid
  splitgridctl apply --from quad.splitgrid "remove:2"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script := ""
			if len(args) == 1 {
				script = args[0]
			}
			return runApply(cmd, script, opts)
		},
	}

	cmd.Flags().StringVar(&opts.from, "from", "", "start from a saved layout or grid file")
	cmd.Flags().StringVarP(&opts.scriptFile, "script-file", "f", "", "read the edit script from a file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the result as a layout document")
	cmd.Flags().StringVar(&opts.name, "name", "", "document name (default: from the output file)")
	cmd.Flags().Float64Var(&opts.size, "size", 0, "side length of a new layout (default: from config)")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "do not print the resulting layout")

	return cmd
}

func runApply(cmd *cobra.Command, script string, opts applyOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	cfg := loadConfig(ctx)

	if opts.scriptFile != "" {
		data, err := os.ReadFile(opts.scriptFile)
		if err != nil {
			return fmt.Errorf("failed to read script: %w", err)
		}
		script = strings.TrimSpace(script + "\n" + string(data))
	}
	ops, err := parseOps(script)
	if err != nil {
		return err
	}

	settings := defaultSettings(cfg)
	if opts.size > 0 {
		settings.Size = opts.size
	}

	var (
		doc model.Document
		g   *engine.Graph
	)
	if opts.from != "" {
		if doc, g, err = openSource(ctx, opts.from, settings); err != nil {
			return err
		}
	} else {
		doc = model.NewDocument(settings)
		g = engine.New(settings)
		g.SetLogger(logger)
	}

	prog := newProgress(logger)
	if err := applyOps(g, ops); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Applied %d steps", len(ops)))

	switch {
	case opts.name != "":
		doc.Name = opts.name
	case opts.output != "":
		doc.Name = documentName(opts.output)
	}

	out := cmd.OutOrStdout()
	if !opts.quiet {
		printLayout(out, doc.Name, g, doc.Occupancy, cfg.Palette)
	}
	if opts.output != "" {
		if err := saveDocument(opts.output, doc, g); err != nil {
			return err
		}
		printSuccess(out, "Saved %d faces", g.Len())
		printFile(out, opts.output)
	}
	return nil
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <file>",
		Short: "Print a layout document or grid file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := loadConfig(ctx)
			doc, g, err := openSource(ctx, args[0], defaultSettings(cfg))
			if err != nil {
				return err
			}
			printLayout(cmd.OutOrStdout(), doc.Name, g, doc.Occupancy, cfg.Palette)
			return nil
		},
	}
}

type exportOpts struct {
	output   string
	format   string
	pageSize string
}

// exportFormats maps --format values to the exporters.
var exportFormats = []string{"pdf", "labels", "xlsx", "dxf", "dot", "svg"}

func newExportCmd() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export a layout as PDF, seat cards, XLSX, DXF or an adjacency graph",
		Example: `  splitgridctl export quad.splitgrid -o quad.pdf
  splitgridctl export quad.splitgrid -o seats.pdf --format labels
  splitgridctl export grid.csv -o grid.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (required)")
	cmd.Flags().StringVar(&opts.format, "format", "", "one of "+strings.Join(exportFormats, ", ")+" (default: from the output extension)")
	cmd.Flags().StringVar(&opts.pageSize, "page", "", "PDF page size, A4 or Letter (default: from config)")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

// exportFormat resolves the format from the flag or the output extension.
func exportFormat(flag, output string) (string, error) {
	format := strings.ToLower(flag)
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
		if format == "gv" {
			format = "dot"
		}
	}
	for _, f := range exportFormats {
		if f == format {
			return format, nil
		}
	}
	return "", fmt.Errorf("unsupported export format %q", format)
}

func runExport(cmd *cobra.Command, input string, opts exportOpts) error {
	ctx := cmd.Context()
	cfg := loadConfig(ctx)

	format, err := exportFormat(opts.format, opts.output)
	if err != nil {
		return err
	}
	doc, g, err := openSource(ctx, input, defaultSettings(cfg))
	if err != nil {
		return err
	}
	sheet := export.NewSheet(doc.Name, g, doc.Occupancy, cfg.Palette)

	pageSize := opts.pageSize
	if pageSize == "" {
		pageSize = cfg.PageSize
	}

	prog := newProgress(loggerFromContext(ctx))
	switch format {
	case "pdf":
		err = export.ExportPDF(opts.output, sheet, pageSize)
	case "labels":
		err = export.ExportLabels(opts.output, sheet)
	case "xlsx":
		err = export.ExportXLSX(opts.output, sheet)
	case "dxf":
		err = export.ExportDXF(opts.output, sheet)
	case "dot", "svg":
		err = export.ExportAdjacency(ctx, opts.output, sheet)
	}
	if err != nil {
		return err
	}
	prog.done("Exported " + format)

	out := cmd.OutOrStdout()
	printSuccess(out, "Exported %d faces as %s", len(sheet.Faces), format)
	printFile(out, opts.output)
	return nil
}

func newImportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "import <grid-file>",
		Short: "Convert a CSV, XLSX or DXF grid into a layout document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := loadConfig(ctx)
			if _, ok := gridImporter(args[0]); !ok {
				return fmt.Errorf("unsupported grid file %q: use .csv, .xlsx or .dxf", args[0])
			}
			doc, g, err := openSource(ctx, args[0], defaultSettings(cfg))
			if err != nil {
				return err
			}
			if output == "" {
				output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".splitgrid"
			}
			if err := saveDocument(output, doc, g); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printSuccess(out, "Imported %d faces", g.Len())
			if len(doc.Occupancy) > 0 {
				printInfo(out, "%d seats assigned from labels", len(doc.Occupancy))
			}
			printFile(out, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "document path (default: input with .splitgrid)")
	return cmd
}
