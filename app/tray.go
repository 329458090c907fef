package app

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
)

// setupTray installs the system tray icon and menu. With a tray present the
// window close button hides instead of quitting; quitting happens from the
// tray menu.
func (a *Application) setupTray() {
	desk, ok := a.fyneApp.(desktop.App)
	if !ok {
		slog.Warn("system tray not available, window close will quit")
		return
	}

	menu := fyne.NewMenu("ClipNest",
		fyne.NewMenuItem("Show ClipNest", func() {
			a.window.Show()
			a.window.RequestFocus()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.fyneApp.Quit()
		}),
	)
	desk.SetSystemTrayMenu(menu)
	desk.SetSystemTrayIcon(theme.ContentPasteIcon())

	a.window.SetCloseIntercept(func() {
		a.window.Hide()
	})
}
