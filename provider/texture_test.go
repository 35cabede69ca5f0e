// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package provider

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() = %v", err)
	}
	return buf.Bytes()
}

func TestImageTexturesDecode(t *testing.T) {
	fsys := fstest.MapFS{
		"textures/icon.png": {Data: encodePNG(t, 4, 2)},
	}
	p := NewImageTextures(fsys)

	img, err := p.Texture("textures/icon.png")
	if err != nil {
		t.Fatalf("Texture() = %v", err)
	}
	if got := img.Bounds(); got.Dx() != 4 || got.Dy() != 2 {
		t.Errorf("bounds = %v, want 4x2", got)
	}
}

func TestImageTexturesCache(t *testing.T) {
	fsys := fstest.MapFS{
		"icon.png": {Data: encodePNG(t, 2, 2)},
	}
	p := NewImageTextures(fsys)

	first, err := p.Texture("icon.png")
	if err != nil {
		t.Fatalf("Texture() = %v", err)
	}
	second, err := p.Texture("icon.png")
	if err != nil {
		t.Fatalf("second Texture() = %v", err)
	}
	if first != second {
		t.Error("repeated lookups decoded the image twice")
	}

	// Close drops the cache; the next lookup decodes a fresh image.
	if err := p.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	third, err := p.Texture("icon.png")
	if err != nil {
		t.Fatalf("Texture() after Close = %v", err)
	}
	if third == first {
		t.Error("cache survived Close")
	}
}

func TestImageTexturesMissing(t *testing.T) {
	p := NewImageTextures(fstest.MapFS{})
	if _, err := p.Texture("absent.png"); !errors.Is(err, ErrTextureNotFound) {
		t.Errorf("Texture() = %v, want ErrTextureNotFound", err)
	}
}

func TestImageTexturesUndecodable(t *testing.T) {
	fsys := fstest.MapFS{
		"broken.png": {Data: []byte("not an image")},
	}
	p := NewImageTextures(fsys)

	_, err := p.Texture("broken.png")
	if err == nil {
		t.Fatal("Texture() = nil error for undecodable data")
	}
	if errors.Is(err, ErrTextureNotFound) {
		t.Errorf("Texture() = %v, want a decode error, not ErrTextureNotFound", err)
	}
}
