package clipboard

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"clipnest/model"
	"clipnest/storage"
)

// Monitor polls the clipboard on a background goroutine and persists new
// content. Image content wins over text when both are present. A one-shot
// suppression token keeps the monitor from treating its own SetContent
// writes as fresh history.
type Monitor struct {
	storage   storage.Storage
	device    Device
	processor *Processor
	interval  time.Duration

	changeChan chan struct{}
	stopChan   chan struct{}
	doneChan   chan struct{}

	mu           sync.Mutex
	lastText     string
	lastImageID  string
	suppressNext bool
	running      bool
}

// NewMonitor creates a monitor persisting into s, sampling every interval.
func NewMonitor(s storage.Storage, device Device, interval time.Duration) (*Monitor, error) {
	processor, err := NewProcessor(s.ImageDir())
	if err != nil {
		return nil, fmt.Errorf("init processor: %w", err)
	}
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}

	return &Monitor{
		storage:    s,
		device:     device,
		processor:  processor,
		interval:   interval,
		changeChan: make(chan struct{}, 1),
		stopChan:   make(chan struct{}),
		doneChan:   make(chan struct{}),
	}, nil
}

// Start launches the poll loop. Starting a running monitor is an error.
func (m *Monitor) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return errors.New("monitor already running")
	}
	m.running = true

	go m.run()
	return nil
}

func (m *Monitor) run() {
	defer close(m.doneChan)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopChan:
			return
		case <-ticker.C:
			m.scan()
		}
	}
}

// Stop shuts the poll loop down and waits for it to exit.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	m.mu.Unlock()

	close(m.stopChan)
	<-m.doneChan
}

// IsRunning reports whether the poll loop is active.
func (m *Monitor) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// Changes signals after each persisted capture. The channel is buffered and
// coalescing; receivers re-read storage rather than consuming payloads.
func (m *Monitor) Changes() <-chan struct{} { return m.changeChan }

// Done is closed once the poll loop has exited.
func (m *Monitor) Done() <-chan struct{} { return m.doneChan }

// Processor exposes the image helper for the presentation layer (preview).
func (m *Monitor) Processor() *Processor { return m.processor }

// SetContent writes an item back to the OS clipboard and arms echo
// suppression so the next poll cycle ignores the write.
func (m *Monitor) SetContent(item *model.ClipboardItem) error {
	if item == nil {
		return errors.New("nil clipboard item")
	}

	switch item.ContentType {
	case model.ContentTypeText:
		m.device.WriteText([]byte(item.Content))
		m.mu.Lock()
		m.suppressNext = true
		m.lastText = item.Content
		m.mu.Unlock()
		return nil

	case model.ContentTypeImage:
		data, err := m.processor.LoadImage(item.Content)
		if err != nil {
			return err
		}
		m.device.WriteImage(data)
		m.mu.Lock()
		m.suppressNext = true
		m.lastImageID = m.processor.ImageID(data)
		m.mu.Unlock()
		return nil

	default:
		return fmt.Errorf("unsupported content type: %s", item.ContentType)
	}
}

// scan is one poll cycle.
func (m *Monitor) scan() {
	m.mu.Lock()
	if m.suppressNext {
		m.suppressNext = false
		// Our own write: remember what is on the clipboard now so a later
		// cycle cannot re-capture it, then skip this cycle entirely.
		if img := m.device.ReadImage(); len(img) > 0 {
			m.lastImageID = m.processor.ImageID(img)
		}
		m.lastText = string(m.device.ReadText())
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	if data := m.device.ReadImage(); len(data) > 0 {
		m.handleImage(data)
		return
	}

	text := string(m.device.ReadText())
	if strings.TrimSpace(text) == "" {
		return
	}
	m.handleText(text)
}

func (m *Monitor) handleText(text string) {
	m.mu.Lock()
	if text == m.lastText {
		m.mu.Unlock()
		return
	}
	m.lastText = text
	m.mu.Unlock()

	if m.storage.Add(model.NewItem(model.ContentTypeText, text)) {
		slog.Debug("monitor: captured text", "len", len(text))
		m.notify()
	}
}

func (m *Monitor) handleImage(data []byte) {
	id := m.processor.ImageID(data)

	m.mu.Lock()
	if id == m.lastImageID {
		m.mu.Unlock()
		return
	}
	m.lastImageID = id
	m.mu.Unlock()

	path, err := m.processor.SaveImage(data)
	if err != nil {
		slog.Error("monitor: saving image failed", "err", err)
		// Allow a retry on the next cycle.
		m.mu.Lock()
		m.lastImageID = ""
		m.mu.Unlock()
		return
	}

	if m.storage.Add(model.NewItem(model.ContentTypeImage, path)) {
		slog.Debug("monitor: captured image", "path", path)
		m.notify()
	}
}

func (m *Monitor) notify() {
	select {
	case m.changeChan <- struct{}{}:
	default:
	}
}
