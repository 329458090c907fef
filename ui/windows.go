package ui

import (
	"fmt"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"clipnest/config"
	"clipnest/model"
	"clipnest/storage"
	"clipnest/ui/component"
)

// ClipboardSetter writes an item back to the OS clipboard.
type ClipboardSetter interface {
	SetContent(item *model.ClipboardItem) error
}

// ImageOpener previews a saved image in the system viewer.
type ImageOpener interface {
	OpenImage(path string) error
}

// Window is the main application window.
type Window struct {
	fyne.Window
	app     fyne.App
	storage storage.Storage
	setter  ClipboardSetter
	opener  ImageOpener

	searchBar     *component.SearchBar
	historyList   *component.HistoryList
	favoriteList  *component.HistoryList
	settingsPanel *component.SettingsPanel
	statusLabel   *widget.Label
	statusTimer   *time.Timer
}

// NewWindow builds the main window.
func NewWindow(
	app fyne.App,
	store storage.Storage,
	setter ClipboardSetter,
	opener ImageOpener,
	cfg *config.Config,
	onSaveSettings func(*config.StorageConfig),
) *Window {
	win := app.NewWindow("ClipNest")
	win.Resize(fyne.NewSize(600, 500))

	w := &Window{
		Window:  win,
		app:     app,
		storage: store,
		setter:  setter,
		opener:  opener,
	}
	w.initUI(cfg, onSaveSettings)
	return w
}

// SetBackend swaps storage and clipboard access after a settings change.
func (w *Window) SetBackend(store storage.Storage, setter ClipboardSetter, opener ImageOpener) {
	w.storage = store
	w.setter = setter
	w.opener = opener
	w.RefreshHistory()
}

func (w *Window) initUI(cfg *config.Config, onSaveSettings func(*config.StorageConfig)) {
	w.searchBar = component.NewSearchBar(func(string) {
		w.RefreshHistory()
	})

	w.historyList = component.NewHistoryList(nil,
		w.copyItem, w.toggleFavorite, w.deleteItem, w.openImage)
	w.favoriteList = component.NewHistoryList(nil,
		w.copyItem, w.toggleFavorite, w.deleteItem, w.openImage)

	w.statusLabel = widget.NewLabel("Ready")

	refreshBtn := widget.NewButtonWithIcon("Refresh", theme.ViewRefreshIcon(), func() {
		w.RefreshHistory()
	})
	clearBtn := widget.NewButtonWithIcon("Clear History", theme.DeleteIcon(), w.confirmClear)
	buttons := container.NewHBox(refreshBtn, clearBtn)

	historyTab := container.NewBorder(w.searchBar, nil, nil, nil, w.historyList)
	favoritesTab := container.NewBorder(nil, nil, nil, nil, w.favoriteList)
	w.settingsPanel = component.NewSettingsPanel(w.Window, &cfg.Storage, onSaveSettings)

	tabs := container.NewAppTabs(
		container.NewTabItemWithIcon("History", theme.HistoryIcon(), historyTab),
		container.NewTabItemWithIcon("Favorites", theme.ConfirmIcon(), favoritesTab),
		container.NewTabItemWithIcon("Settings", theme.SettingsIcon(), w.settingsPanel),
	)

	bottom := container.NewVBox(buttons, w.statusLabel)
	w.SetContent(container.NewBorder(nil, bottom, nil, nil, tabs))

	w.RefreshHistory()
}

// RefreshHistory re-reads storage with the current search text and updates
// both lists and the status line. Call on the UI thread.
func (w *Window) RefreshHistory() {
	items := w.storage.Search(w.searchBar.Text, 0)

	var favorites []*model.ClipboardItem
	for _, item := range items {
		if item.IsFavorite {
			favorites = append(favorites, item)
		}
	}

	w.historyList.SetItems(items)
	w.favoriteList.SetItems(favorites)
	w.showStats()
}

func (w *Window) copyItem(item *model.ClipboardItem) {
	if err := w.setter.SetContent(item); err != nil {
		slog.Error("ui: copy back failed", "id", item.ID, "err", err)
		w.flashStatus("Could not copy item to clipboard")
		return
	}
	w.flashStatus("Copied to clipboard")
}

func (w *Window) toggleFavorite(id uint) {
	if !w.storage.ToggleFavorite(id) {
		w.flashStatus("Could not toggle favorite")
		return
	}
	w.RefreshHistory()
	w.flashStatus("Favorite toggled")
}

func (w *Window) deleteItem(id uint) {
	if !w.storage.Delete(id) {
		w.flashStatus("Could not delete item")
		return
	}
	w.RefreshHistory()
	w.flashStatus("Item deleted")
}

func (w *Window) openImage(item *model.ClipboardItem) {
	if !item.IsImage() || w.opener == nil {
		return
	}
	if err := w.opener.OpenImage(item.Content); err != nil {
		slog.Error("ui: image preview failed", "path", item.Content, "err", err)
		w.flashStatus("Could not open image")
	}
}

func (w *Window) confirmClear() {
	dialog.ShowConfirm(
		"Clear History",
		"Clear all clipboard history? Favorites will be kept.",
		func(confirmed bool) {
			if !confirmed {
				return
			}
			if !w.storage.Clear(true) {
				w.flashStatus("Could not clear history")
				return
			}
			w.RefreshHistory()
			w.flashStatus("History cleared")
		},
		w.Window,
	)
}

func (w *Window) showStats() {
	stats := w.storage.Stats()
	w.statusLabel.SetText(fmt.Sprintf("Total items: %d | Favorites: %d",
		stats.TotalItems, stats.FavoriteItems))
}

// flashStatus shows a transient message, reverting to the stats summary
// after two seconds.
func (w *Window) flashStatus(msg string) {
	w.statusLabel.SetText(msg)
	if w.statusTimer != nil {
		w.statusTimer.Stop()
	}
	w.statusTimer = time.AfterFunc(2*time.Second, func() {
		fyne.Do(func() { w.showStats() })
	})
}
