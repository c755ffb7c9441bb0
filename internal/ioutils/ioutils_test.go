package ioutils

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/mjhalwa/usdb-syncer/internal/meta"
)

func TestReadFileUnknownEncoding_UTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "utf8.txt")
	content := "#TITLE:Über den Wolken\n"
	if err := os.WriteFile(path, []byte("\uFEFF"+content), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadFileUnknownEncoding(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != content {
		t.Errorf("got %q, want %q (BOM should be stripped)", got, content)
	}
}

func TestReadFileUnknownEncoding_Windows1252(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.txt")
	// "Über" in Windows-1252: 0xdc is Ü, invalid as UTF-8.
	if err := os.WriteFile(path, []byte{0xdc, 'b', 'e', 'r'}, 0644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadFileUnknownEncoding(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Über" {
		t.Errorf("got %q, want %q", got, "Über")
	}
}

func TestImageService_Process(t *testing.T) {
	svc := NewImageService()
	src := testJPEG(t, 400, 200)

	t.Run("no directives returns input unchanged", func(t *testing.T) {
		got, err := svc.Process(src, nil, 0)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, src) {
			t.Error("expected input bytes to pass through untouched")
		}
	})

	t.Run("max width downscales keeping aspect ratio", func(t *testing.T) {
		got, err := svc.Process(src, nil, 100)
		if err != nil {
			t.Fatal(err)
		}
		cfg := decodeConfig(t, got)
		if cfg.Width != 100 || cfg.Height != 50 {
			t.Errorf("got %dx%d, want 100x50", cfg.Width, cfg.Height)
		}
	})

	t.Run("crop", func(t *testing.T) {
		tags := &meta.ImageMetaTags{Crop: &meta.CropMetaTags{Left: 10, Upper: 20, Right: 110, Lower: 70}}
		got, err := svc.Process(src, tags, 0)
		if err != nil {
			t.Fatal(err)
		}
		cfg := decodeConfig(t, got)
		if cfg.Width != 100 || cfg.Height != 50 {
			t.Errorf("got %dx%d, want 100x50", cfg.Width, cfg.Height)
		}
	})

	t.Run("resize", func(t *testing.T) {
		tags := &meta.ImageMetaTags{Resize: &meta.ResizeMetaTags{Width: 64, Height: 64}}
		got, err := svc.Process(src, tags, 0)
		if err != nil {
			t.Fatal(err)
		}
		cfg := decodeConfig(t, got)
		if cfg.Width != 64 || cfg.Height != 64 {
			t.Errorf("got %dx%d, want 64x64", cfg.Width, cfg.Height)
		}
	})

	t.Run("rotate 90 swaps dimensions", func(t *testing.T) {
		tags := &meta.ImageMetaTags{Rotate: 90}
		got, err := svc.Process(src, tags, 0)
		if err != nil {
			t.Fatal(err)
		}
		cfg := decodeConfig(t, got)
		if cfg.Width != 200 || cfg.Height != 400 {
			t.Errorf("got %dx%d, want 200x400", cfg.Width, cfg.Height)
		}
	})

	t.Run("garbage input errors", func(t *testing.T) {
		if _, err := svc.Process([]byte("not an image"), nil, 0); err == nil {
			t.Error("expected decode error")
		}
	})
}

func testJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func decodeConfig(t *testing.T, data []byte) image.Config {
	t.Helper()
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}
