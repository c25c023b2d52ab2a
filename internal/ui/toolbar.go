package ui

import (
	"errors"
	"fmt"
	"log"

	"Snowfold/internal/export"
	"Snowfold/internal/sketch"
	"Snowfold/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// NewToolbar assembles the tool strip: pen/line tools, stroke width, undo,
// clear, fill preview, exports and the share link.
func NewToolbar(win fyne.Window, board *WedgeWidget, session *state.Session, shareLink string) fyne.CanvasObject {
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), func() {
			board.SetTool(sketch.Freehand)
			board.statusBar.SetText("Pen")
		}),
		widget.NewToolbarAction(theme.ContentRemoveIcon(), func() {
			board.SetTool(sketch.Line)
			board.statusBar.SetText("Line")
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentUndoIcon(), board.Undo),
		widget.NewToolbarAction(theme.DeleteIcon(), func() {
			dialog.ShowConfirm("Clear", "Remove all strokes?", func(ok bool) {
				if ok {
					board.Clear()
				}
			}, win)
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ColorPaletteIcon(), board.ToggleFill),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() {
			exportSVG(win, board, session)
		}),
		widget.NewToolbarAction(theme.DocumentPrintIcon(), func() {
			exportPDF(win, board, session)
		}),
	)

	strokeSlider := widget.NewSlider(1.0, 10.0)
	strokeSlider.SetValue(state.DefaultStrokeWidth)
	strokeSlider.OnChanged = func(val float64) {
		board.SetWidth(val)
	}
	sliderBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), strokeSlider)

	items := []fyne.CanvasObject{
		tb,
		widget.NewSeparator(),
		widget.NewLabel("Width:"),
		sliderBox,
		layout.NewSpacer(),
	}
	if shareLink != "" {
		items = append(items, widget.NewButtonWithIcon("Share", theme.MailSendIcon(), func() {
			dialog.ShowInformation("Share this session",
				"Join from another machine on the LAN:\n"+shareLink, win)
		}))
	}
	return container.NewHBox(items...)
}

func exportSVG(win fyne.Window, board *WedgeWidget, session *state.Session) {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		if err := export.SVG(writer, session.BakedPaths()); err != nil {
			if errors.Is(err, export.ErrNothingToExport) {
				board.statusBar.SetText("Nothing to export yet")
			} else {
				log.Printf("[export] svg failed: %v", err)
				board.statusBar.SetText("SVG export failed")
			}
			return
		}
		board.statusBar.SetText(fmt.Sprintf("Exported %d paths to %s",
			len(session.BakedPaths()), writer.URI().Name()))
	}, win)
}

func exportPDF(win fyne.Window, board *WedgeWidget, session *state.Session) {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		name := writer.URI().Path()
		writer.Close()
		if err := export.PDF(name, session.BakedPaths()); err != nil {
			if errors.Is(err, export.ErrNothingToExport) {
				board.statusBar.SetText("Nothing to export yet")
			} else {
				log.Printf("[export] pdf failed: %v", err)
				board.statusBar.SetText("PDF export failed")
			}
			return
		}
		board.statusBar.SetText("Exported PDF to " + name)
	}, win)
}
