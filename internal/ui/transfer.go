package ui

import (
	"context"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/splitgrid/internal/export"
	"github.com/piwi3910/splitgrid/internal/importer"
)

// ─── Export Functions ──────────────────────────────────────

func (a *App) sheet() export.Sheet {
	return export.NewSheet(a.doc.Name, a.graph, a.doc.Occupancy, a.config.Palette)
}

// exportTo asks for a destination and runs write against it.
func (a *App) exportTo(kind, fileName string, write func(path string) error) {
	if a.graph.Empty() {
		dialog.ShowInformation("Nothing to export", "Add at least one face first.", a.window)
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := write(path); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.logger.Info("exported layout", "kind", kind, "path", path)
		dialog.ShowInformation("Export Complete", fmt.Sprintf("%s saved to %s", kind, path), a.window)
	}, a.window)
	d.SetFileName(fileName)
	d.Show()
}

func (a *App) exportPDF() {
	sheet := a.sheet()
	a.exportTo("PDF sheet", a.doc.Name+".pdf", func(path string) error {
		return export.ExportPDF(path, sheet, a.config.PageSize)
	})
}

func (a *App) exportLabels() {
	sheet := a.sheet()
	a.exportTo("Seat cards", a.doc.Name+"-seats.pdf", func(path string) error {
		return export.ExportLabels(path, sheet)
	})
}

func (a *App) exportXLSX() {
	sheet := a.sheet()
	a.exportTo("Workbook", a.doc.Name+".xlsx", func(path string) error {
		return export.ExportXLSX(path, sheet)
	})
}

func (a *App) exportDXF() {
	sheet := a.sheet()
	a.exportTo("DXF drawing", a.doc.Name+".dxf", func(path string) error {
		return export.ExportDXF(path, sheet)
	})
}

// exportAdjacency renders off the UI goroutine; graphviz start-up is slow.
func (a *App) exportAdjacency() {
	if a.graph.Empty() {
		dialog.ShowInformation("Nothing to export", "Add at least one face first.", a.window)
		return
	}
	sheet := a.sheet()
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		progress := dialog.NewCustomWithoutButtons("Rendering", widget.NewProgressBarInfinite(), a.window)
		progress.Show()
		go func() {
			err := export.ExportAdjacency(context.Background(), path, sheet)
			fyne.Do(func() {
				progress.Hide()
				if err != nil {
					dialog.ShowError(err, a.window)
					return
				}
				a.logger.Info("exported layout", "kind", "adjacency", "path", path)
				dialog.ShowInformation("Export Complete", "Adjacency graph saved to "+path, a.window)
			})
		}()
	}, a.window)
	d.SetFileName(a.doc.Name + "-adjacency.svg")
	d.Show()
}

// ─── Import Functions ──────────────────────────────────────

func (a *App) importWith(read func(path string) importer.ImportResult) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		a.handleImportResult(path, read(path))
	}, a.window)
}

func (a *App) importCSV()   { a.importWith(importer.ImportCSV) }
func (a *App) importExcel() { a.importWith(importer.ImportExcel) }
func (a *App) importDXF()   { a.importWith(importer.ImportDXF) }

func (a *App) handleImportResult(path string, result importer.ImportResult) {
	for _, w := range result.Warnings {
		a.logger.Warn("import", "path", path, "warning", w)
	}
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", errorMsg), a.window)
		return
	}
	if !result.OK() {
		dialog.ShowInformation("Nothing imported", "The file did not contain a layout.", a.window)
		return
	}

	apply := func() {
		a.replaceLayout("Import "+path, result.Layout, result.Occupancy)
		msg := fmt.Sprintf("Imported %d faces.", len(result.Layout.FaceIDs()))
		if len(result.Warnings) > 0 {
			msg += fmt.Sprintf("\n\n%d warnings:\n%s", len(result.Warnings), strings.Join(result.Warnings, "\n"))
		}
		dialog.ShowInformation("Import Complete", msg, a.window)
	}
	if a.graph.Empty() {
		apply()
		return
	}
	dialog.ShowConfirm("Replace Layout", "Replace the current layout with the imported one?", func(ok bool) {
		if ok {
			apply()
		}
	}, a.window)
}
