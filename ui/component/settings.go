package component

import (
	"os"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"clipnest/config"
)

// SettingsPanel edits the storage configuration. Saving hands the new
// config to the application, which rebuilds storage and monitor.
type SettingsPanel struct {
	*container.Scroll
	window fyne.Window
	onSave func(*config.StorageConfig)

	storageType   *widget.Select
	maxItemsEntry *widget.Entry
	dataDirEntry  *widget.Entry

	mysqlHostEntry *widget.Entry
	mysqlPortEntry *widget.Entry
	mysqlUserEntry *widget.Entry
	mysqlPassEntry *widget.Entry
	mysqlDBEntry   *widget.Entry
	mysqlSettings  *fyne.Container
}

// NewSettingsPanel creates the settings tab from the current config.
func NewSettingsPanel(window fyne.Window, cfg *config.StorageConfig, onSave func(*config.StorageConfig)) *SettingsPanel {
	p := &SettingsPanel{
		window: window,
		onSave: onSave,
	}

	p.storageType = widget.NewSelect(
		[]string{string(config.StorageTypeSQLite), string(config.StorageTypeMySQL)},
		func(value string) { p.updateVisibility(value) },
	)

	p.maxItemsEntry = widget.NewEntry()
	p.maxItemsEntry.SetText(strconv.Itoa(cfg.MaxItems))

	p.dataDirEntry = widget.NewEntry()
	p.dataDirEntry.SetText(cfg.DataDir)
	browseBtn := widget.NewButton("Browse...", func() {
		dialog.ShowFolderOpen(func(dir fyne.ListableURI, err error) {
			if err != nil {
				dialog.ShowError(err, p.window)
				return
			}
			if dir != nil {
				p.dataDirEntry.SetText(dir.Path())
			}
		}, p.window)
	})

	p.mysqlHostEntry = widget.NewEntry()
	p.mysqlHostEntry.SetText(cfg.MySQL.Host)
	p.mysqlPortEntry = widget.NewEntry()
	p.mysqlPortEntry.SetText(strconv.Itoa(cfg.MySQL.Port))
	p.mysqlUserEntry = widget.NewEntry()
	p.mysqlUserEntry.SetText(cfg.MySQL.User)
	p.mysqlPassEntry = widget.NewEntry()
	p.mysqlPassEntry.SetText(cfg.MySQL.Password)
	p.mysqlPassEntry.Password = true
	p.mysqlDBEntry = widget.NewEntry()
	p.mysqlDBEntry.SetText(cfg.MySQL.Database)

	p.mysqlSettings = container.NewVBox(
		widget.NewLabel("MySQL host:"),
		p.mysqlHostEntry,
		widget.NewLabel("MySQL port:"),
		p.mysqlPortEntry,
		widget.NewLabel("MySQL user:"),
		p.mysqlUserEntry,
		widget.NewLabel("MySQL password:"),
		p.mysqlPassEntry,
		widget.NewLabel("MySQL database:"),
		p.mysqlDBEntry,
	)

	saveBtn := widget.NewButton("Save settings", p.save)

	content := container.NewVBox(
		widget.NewLabel("Storage backend:"),
		p.storageType,
		widget.NewLabel("History cap (non-favorites):"),
		p.maxItemsEntry,
		widget.NewSeparator(),
		widget.NewLabel("Data directory:"),
		container.NewBorder(nil, nil, nil, browseBtn, p.dataDirEntry),
		widget.NewSeparator(),
		p.mysqlSettings,
		saveBtn,
	)

	p.storageType.SetSelected(string(cfg.Type))
	p.updateVisibility(string(cfg.Type))

	p.Scroll = container.NewScroll(content)
	return p
}

func (p *SettingsPanel) updateVisibility(storageType string) {
	if storageType == string(config.StorageTypeMySQL) {
		p.mysqlSettings.Show()
	} else {
		p.mysqlSettings.Hide()
	}
}

func (p *SettingsPanel) save() {
	if p.onSave == nil {
		return
	}

	maxItems, err := strconv.Atoi(p.maxItemsEntry.Text)
	if err != nil || maxItems <= 0 {
		maxItems = config.DefaultMaxItems
	}
	port, err := strconv.Atoi(p.mysqlPortEntry.Text)
	if err != nil || port <= 0 {
		port = 3306
	}

	dataDir := p.dataDirEntry.Text
	if dataDir != "" {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			dialog.ShowError(err, p.window)
			return
		}
	}

	p.onSave(&config.StorageConfig{
		Type:     config.StorageType(p.storageType.Selected),
		DataDir:  dataDir,
		MaxItems: maxItems,
		MySQL: config.MySQLConfig{
			Host:     p.mysqlHostEntry.Text,
			Port:     port,
			User:     p.mysqlUserEntry.Text,
			Password: p.mysqlPassEntry.Text,
			Database: p.mysqlDBEntry.Text,
		},
	})

	dialog.ShowInformation("Settings saved", "Your settings have been applied.", p.window)
}
