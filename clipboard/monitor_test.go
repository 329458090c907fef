package clipboard

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"
	"time"

	"clipnest/model"
)

// fakeDevice is an in-memory clipboard.
type fakeDevice struct {
	mu    sync.Mutex
	text  []byte
	image []byte
}

func (d *fakeDevice) ReadText() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.text
}

func (d *fakeDevice) ReadImage() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.image
}

func (d *fakeDevice) WriteText(data []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.text = data
	d.image = nil
}

func (d *fakeDevice) WriteImage(data []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.image = data
	d.text = nil
}

// setText simulates another application copying text.
func (d *fakeDevice) setText(s string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.text = []byte(s)
	d.image = nil
}

func (d *fakeDevice) setImage(data []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.image = data
	d.text = nil
}

// recordStore captures Add calls; other Storage methods are inert.
type recordStore struct {
	mu       sync.Mutex
	added    []*model.ClipboardItem
	imageDir string
}

func (r *recordStore) Add(item *model.ClipboardItem) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.added = append(r.added, item)
	return true
}

func (r *recordStore) History(limit int) []*model.ClipboardItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*model.ClipboardItem(nil), r.added...)
}

func (r *recordStore) Search(string, int) []*model.ClipboardItem { return nil }
func (r *recordStore) ToggleFavorite(uint) bool                  { return false }
func (r *recordStore) Delete(uint) bool                          { return false }
func (r *recordStore) Clear(bool) bool                           { return false }
func (r *recordStore) Stats() model.Stats                        { return model.Stats{} }
func (r *recordStore) ImageDir() string                          { return r.imageDir }
func (r *recordStore) Close() error                              { return nil }

func (r *recordStore) addedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.added)
}

func newTestMonitor(t *testing.T) (*Monitor, *fakeDevice, *recordStore) {
	t.Helper()
	store := &recordStore{imageDir: t.TempDir()}
	device := &fakeDevice{}
	monitor, err := NewMonitor(store, device, 500*time.Millisecond)
	if err != nil {
		t.Fatalf("NewMonitor failed: %v", err)
	}
	return monitor, device, store
}

func pngBytes(t *testing.T, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding fixture png: %v", err)
	}
	return buf.Bytes()
}

func TestScanCapturesNewText(t *testing.T) {
	monitor, device, store := newTestMonitor(t)

	device.setText("copied once")
	monitor.scan()

	if store.addedCount() != 1 {
		t.Fatalf("added %d items, expected 1", store.addedCount())
	}
	item := store.added[0]
	if item.ContentType != model.ContentTypeText || item.Content != "copied once" {
		t.Errorf("captured %v %q", item.ContentType, item.Content)
	}

	select {
	case <-monitor.Changes():
	default:
		t.Error("change channel should have a pending signal")
	}
}

func TestScanSkipsUnchangedText(t *testing.T) {
	monitor, device, store := newTestMonitor(t)

	device.setText("stable")
	monitor.scan()
	monitor.scan()
	monitor.scan()

	if store.addedCount() != 1 {
		t.Errorf("added %d items, expected 1", store.addedCount())
	}
}

func TestScanSkipsBlankText(t *testing.T) {
	monitor, device, store := newTestMonitor(t)

	for _, s := range []string{"", "   ", "\n\t"} {
		device.setText(s)
		monitor.scan()
	}

	if store.addedCount() != 0 {
		t.Errorf("added %d items, expected 0", store.addedCount())
	}
}

func TestScanPrefersImageOverText(t *testing.T) {
	monitor, device, store := newTestMonitor(t)

	device.mu.Lock()
	device.text = []byte("text too")
	device.image = pngBytes(t, color.RGBA{R: 255, A: 255})
	device.mu.Unlock()

	monitor.scan()

	if store.addedCount() != 1 {
		t.Fatalf("added %d items, expected 1", store.addedCount())
	}
	if store.added[0].ContentType != model.ContentTypeImage {
		t.Errorf("captured %v, expected image", store.added[0].ContentType)
	}
}

func TestScanDeduplicatesImageByHash(t *testing.T) {
	monitor, device, store := newTestMonitor(t)

	red := pngBytes(t, color.RGBA{R: 255, A: 255})
	device.setImage(red)
	monitor.scan()
	monitor.scan()

	if store.addedCount() != 1 {
		t.Fatalf("added %d items after same image twice, expected 1", store.addedCount())
	}

	device.setImage(pngBytes(t, color.RGBA{B: 255, A: 255}))
	monitor.scan()

	if store.addedCount() != 2 {
		t.Errorf("added %d items after a different image, expected 2", store.addedCount())
	}
}

func TestSetContentSuppressesEcho(t *testing.T) {
	monitor, device, store := newTestMonitor(t)

	device.setText("original")
	monitor.scan()
	if store.addedCount() != 1 {
		t.Fatalf("added %d items, expected 1", store.addedCount())
	}

	// Re-copying a stored entry must not create a second history row.
	if err := monitor.SetContent(store.added[0]); err != nil {
		t.Fatalf("SetContent failed: %v", err)
	}
	monitor.scan()
	monitor.scan()

	if store.addedCount() != 1 {
		t.Errorf("added %d items after echo, expected still 1", store.addedCount())
	}

	// A genuinely new copy afterwards is still captured.
	device.setText("something else")
	monitor.scan()
	if store.addedCount() != 2 {
		t.Errorf("added %d items, expected 2", store.addedCount())
	}
}

func TestSetContentImageRoundTrip(t *testing.T) {
	monitor, device, store := newTestMonitor(t)

	device.setImage(pngBytes(t, color.RGBA{G: 255, A: 255}))
	monitor.scan()
	if store.addedCount() != 1 {
		t.Fatalf("added %d items, expected 1", store.addedCount())
	}
	item := store.added[0]
	if !item.IsImage() {
		t.Fatalf("captured %v, expected image", item.ContentType)
	}

	if err := monitor.SetContent(item); err != nil {
		t.Fatalf("SetContent failed: %v", err)
	}
	if len(device.ReadImage()) == 0 {
		t.Error("image bytes should be back on the clipboard")
	}

	monitor.scan()
	if store.addedCount() != 1 {
		t.Errorf("added %d items after image echo, expected still 1", store.addedCount())
	}
}

func TestStartStop(t *testing.T) {
	monitor, _, _ := newTestMonitor(t)

	if err := monitor.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !monitor.IsRunning() {
		t.Error("monitor should report running after Start")
	}
	if err := monitor.Start(); err == nil {
		t.Error("second Start should fail")
	}

	monitor.Stop()
	if monitor.IsRunning() {
		t.Error("monitor should not report running after Stop")
	}
	select {
	case <-monitor.Done():
	case <-time.After(time.Second):
		t.Error("poll loop did not exit")
	}
}
