package clipboard

import (
	"fmt"

	"golang.design/x/clipboard"
)

// Device is the small surface of the OS clipboard the monitor needs. The
// system implementation is backed by golang.design/x/clipboard; tests swap
// in an in-memory fake.
type Device interface {
	ReadText() []byte
	ReadImage() []byte
	WriteText(data []byte)
	WriteImage(data []byte)
}

type systemDevice struct{}

// NewSystemDevice initializes the OS clipboard binding. It fails on headless
// environments without a display connection.
func NewSystemDevice() (Device, error) {
	if err := clipboard.Init(); err != nil {
		return nil, fmt.Errorf("clipboard init: %w", err)
	}
	return systemDevice{}, nil
}

func (systemDevice) ReadText() []byte       { return clipboard.Read(clipboard.FmtText) }
func (systemDevice) ReadImage() []byte      { return clipboard.Read(clipboard.FmtImage) }
func (systemDevice) WriteText(data []byte)  { clipboard.Write(clipboard.FmtText, data) }
func (systemDevice) WriteImage(data []byte) { clipboard.Write(clipboard.FmtImage, data) }
