// SplitGrid: split-screen layout editor
//
// A cross-platform desktop application for dividing a screen into
// rectangular player views and exporting the result.
//
// Build:
//   go build -o splitgrid ./cmd/splitgrid
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o splitgrid.exe ./cmd/splitgrid
//   GOOS=darwin  GOARCH=amd64 go build -o splitgrid-darwin ./cmd/splitgrid
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64
//
// Set SPLITGRID_LOG=debug to trace every edit on stderr.

package main

import (
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/charmbracelet/log"
	fynetooltip "github.com/dweymouth/fyne-tooltip"

	"github.com/piwi3910/splitgrid/internal/ui"
)

func main() {
	level := log.InfoLevel
	if l, err := log.ParseLevel(os.Getenv("SPLITGRID_LOG")); err == nil {
		level = l
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          "splitgrid",
	})

	application := app.NewWithID("com.piwi3910.splitgrid")
	window := application.NewWindow("SplitGrid")

	appUI := ui.NewApp(application, window, logger)
	appUI.SetupMenus()
	appUI.SetupShortcuts()
	window.SetContent(fynetooltip.AddWindowToolTipLayer(appUI.Build(), window.Canvas()))
	window.Resize(fyne.NewSize(1100, 760))
	window.CenterOnScreen()
	window.ShowAndRun()
}
