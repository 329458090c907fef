package clipboard

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestImageIDStable(t *testing.T) {
	p, err := NewProcessor(t.TempDir())
	if err != nil {
		t.Fatalf("NewProcessor failed: %v", err)
	}

	red := pngBytes(t, color.RGBA{R: 255, A: 255})
	blue := pngBytes(t, color.RGBA{B: 255, A: 255})

	if p.ImageID(red) != p.ImageID(red) {
		t.Error("identical bytes should yield identical IDs")
	}
	if p.ImageID(red) == p.ImageID(blue) {
		t.Error("different content should yield different IDs")
	}
}

func TestSaveImageWritesPNG(t *testing.T) {
	dir := t.TempDir()
	p, err := NewProcessor(dir)
	if err != nil {
		t.Fatalf("NewProcessor failed: %v", err)
	}

	path, err := p.SaveImage(pngBytes(t, color.RGBA{G: 255, A: 255}))
	if err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	if !filepath.IsAbs(path) {
		t.Errorf("SaveImage returned a relative path: %s", path)
	}
	base := filepath.Base(path)
	if !strings.HasPrefix(base, "clipnest_") || !strings.HasSuffix(base, ".png") {
		t.Errorf("unexpected file name %s", base)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("saved file is not a decodable PNG: %v", err)
	}
}

func TestSaveImageRejectsBadInput(t *testing.T) {
	p, err := NewProcessor(t.TempDir())
	if err != nil {
		t.Fatalf("NewProcessor failed: %v", err)
	}

	if _, err := p.SaveImage(nil); err != ErrNoImageData {
		t.Errorf("SaveImage(nil) err = %v, expected ErrNoImageData", err)
	}
	if _, err := p.SaveImage([]byte("not an image")); err == nil {
		t.Error("SaveImage should reject undecodable bytes")
	}
}

func TestLoadImageMissingFile(t *testing.T) {
	p, err := NewProcessor(t.TempDir())
	if err != nil {
		t.Fatalf("NewProcessor failed: %v", err)
	}

	if _, err := p.LoadImage(filepath.Join(t.TempDir(), "gone.png")); err == nil {
		t.Error("LoadImage should fail for a missing file")
	}
}
