package clipboard

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/google/uuid"
	"github.com/skratchdot/open-golang/open"
)

var (
	ErrNoImageData  = errors.New("no image data on clipboard")
	ErrFileNotFound = errors.New("image file does not exist")
)

// Processor handles the image side of clipboard captures: fingerprinting
// raw clipboard bytes and writing them out as PNG files.
type Processor struct {
	imageDir string
}

// NewProcessor creates a processor writing under imageDir.
func NewProcessor(imageDir string) (*Processor, error) {
	if err := os.MkdirAll(imageDir, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}
	return &Processor{imageDir: imageDir}, nil
}

// ImageID fingerprints raw clipboard image bytes. Identical content always
// yields the same ID, which is what duplicate suppression keys on.
func (p *Processor) ImageID(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

// SaveImage decodes the clipboard bytes and writes them as a PNG named by
// capture timestamp. Returns the absolute path of the saved file.
func (p *Processor) SaveImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrNoImageData
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode clipboard image: %w", err)
	}

	// Timestamp names the file; the uuid suffix keeps two captures within
	// the same second from colliding.
	name := fmt.Sprintf("clipnest_%s_%s.png",
		time.Now().Format("20060102_150405"),
		uuid.NewString()[:8])

	absDir, err := filepath.Abs(p.imageDir)
	if err != nil {
		return "", fmt.Errorf("resolve image dir: %w", err)
	}
	path := filepath.Join(absDir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return path, nil
}

// LoadImage reads a previously saved image file back for re-copying.
func (p *Processor) LoadImage(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if err != nil {
		return nil, err
	}
	if info.IsDir() || info.Size() == 0 {
		return nil, fmt.Errorf("not a usable image file: %s", path)
	}
	return os.ReadFile(path)
}

// OpenImage opens a saved image in the system viewer.
func (p *Processor) OpenImage(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return ErrFileNotFound
	}
	return open.Start(path)
}
