// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package provider

import (
	"fmt"
	"image"
	"io/fs"

	// Register decoders for the texture formats UI assets commonly use.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageTextures is a TextureProvider that decodes image files from an
// fs.FS. Decoded images are cached by uri; UI runtimes request the same
// texture every time an element referencing it is (re)created.
type ImageTextures struct {
	fsys  fs.FS
	cache map[string]image.Image
}

// NewImageTextures creates a texture provider over fsys.
func NewImageTextures(fsys fs.FS) *ImageTextures {
	return &ImageTextures{
		fsys:  fsys,
		cache: make(map[string]image.Image),
	}
}

// Texture returns the decoded image at uri.
func (t *ImageTextures) Texture(uri string) (image.Image, error) {
	if img, ok := t.cache[uri]; ok {
		return img, nil
	}

	name, ok := cleanURI(uri)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTextureNotFound, uri)
	}
	f, err := t.fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrTextureNotFound, uri, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("provider: decode texture %q: %w", uri, err)
	}
	t.cache[uri] = img
	return img, nil
}

// Close drops the decode cache. The provider is usable afterward.
func (t *ImageTextures) Close() error {
	t.cache = make(map[string]image.Image)
	return nil
}

// Ensure ImageTextures implements TextureProvider.
var _ TextureProvider = (*ImageTextures)(nil)
