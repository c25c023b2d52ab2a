package ui

import (
	"Snowfold/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
)

// RunApp shows the main window and blocks until it closes.
func RunApp(shareLink string, session *state.Session, board *WedgeWidget) {
	myApp := app.New()
	myWindow := myApp.NewWindow("Snowfold")
	myWindow.Resize(fyne.NewSize(1024, 768))

	toolbar := NewToolbar(myWindow, board, session, shareLink)

	content := container.NewBorder(toolbar, board.StatusBar(), nil, nil, board)

	myWindow.SetContent(content)
	myWindow.ShowAndRun()
}
