// Package app wires configuration, storage, the clipboard monitor and the
// UI together.
package app

import (
	"fmt"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"clipnest/clipboard"
	"clipnest/config"
	"clipnest/logging"
	"clipnest/storage"
	"clipnest/ui"
)

// Application owns every long-lived component.
type Application struct {
	fyneApp fyne.App
	config  *config.Config
	storage storage.Storage
	device  clipboard.Device
	monitor *clipboard.Monitor
	window  *ui.Window
}

// New bootstraps the application. Errors here are fatal; once New returns,
// operational failures only log.
func New() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logging.Setup(cfg.LogFormat, cfg.LogLevel)

	fyneApp := fyneapp.NewWithID("dev.clipnest")

	store, err := storage.NewStorage(&cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	device, err := clipboard.NewSystemDevice()
	if err != nil {
		return nil, err
	}

	monitor, err := clipboard.NewMonitor(store, device, pollInterval(cfg))
	if err != nil {
		return nil, fmt.Errorf("create monitor: %w", err)
	}

	a := &Application{
		fyneApp: fyneApp,
		config:  cfg,
		storage: store,
		device:  device,
		monitor: monitor,
	}

	a.window = ui.NewWindow(fyneApp, store, monitor, monitor.Processor(), cfg, a.handleSaveSettings)
	a.setupTray()
	a.startMonitoring(monitor)

	return a, nil
}

// Run blocks until the user quits, then shuts components down.
func (a *Application) Run() {
	a.window.ShowAndRun()

	a.monitor.Stop()
	if err := a.storage.Close(); err != nil {
		slog.Warn("closing storage", "err", err)
	}
	slog.Info("clipnest stopped")
}

// startMonitoring starts the poll loop and a goroutine that marshals change
// signals onto the UI thread. The goroutine follows this monitor instance
// and exits with it, so settings rebuilds don't leak watchers.
func (a *Application) startMonitoring(m *clipboard.Monitor) {
	if err := m.Start(); err != nil {
		slog.Error("starting clipboard monitor", "err", err)
		return
	}

	go func() {
		for {
			select {
			case <-m.Changes():
				fyne.Do(func() { a.window.RefreshHistory() })
			case <-m.Done():
				return
			}
		}
	}()
}

// handleSaveSettings applies a new storage configuration: persist it, tear
// the old backend down and bring a fresh storage+monitor pair up.
func (a *Application) handleSaveSettings(newStorageCfg *config.StorageConfig) {
	a.config.Storage = *newStorageCfg
	if err := config.Save(a.config); err != nil {
		slog.Warn("saving config", "err", err)
	}

	a.monitor.Stop()
	if err := a.storage.Close(); err != nil {
		slog.Warn("closing storage", "err", err)
	}

	store, err := storage.NewStorage(newStorageCfg)
	if err != nil {
		slog.Error("reopening storage with new settings", "err", err)
		return
	}
	monitor, err := clipboard.NewMonitor(store, a.device, pollInterval(a.config))
	if err != nil {
		slog.Error("recreating monitor", "err", err)
		store.Close()
		return
	}

	a.storage = store
	a.monitor = monitor
	a.startMonitoring(monitor)
	a.window.SetBackend(store, monitor, monitor.Processor())
}

func pollInterval(cfg *config.Config) time.Duration {
	return time.Duration(cfg.PollIntervalMS) * time.Millisecond
}
