// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package provider

import (
	"errors"
	"image"
	"io"

	"golang.org/x/text/language"
)

// Common errors returned by providers.
var (
	// ErrDocumentNotFound is returned when a document uri does not resolve.
	ErrDocumentNotFound = errors.New("provider: document not found")

	// ErrFontNotFound is returned when no loaded font matches the request.
	ErrFontNotFound = errors.New("provider: font not found")

	// ErrTextureNotFound is returned when a texture uri does not resolve.
	ErrTextureNotFound = errors.New("provider: texture not found")

	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("provider: empty font data")

	// ErrBundleClosed is returned when a closed bundle is used.
	ErrBundleClosed = errors.New("provider: bundle is closed")
)

// DocumentProvider resolves markup document uris to their content.
type DocumentProvider interface {
	// OpenDocument opens the document at uri for reading.
	// Returns ErrDocumentNotFound (possibly wrapped) if uri does not resolve.
	OpenDocument(uri string) (io.ReadCloser, error)

	// DocumentExists reports whether uri resolves to a document.
	DocumentExists(uri string) bool
}

// FontProvider resolves fonts by family name or language.
type FontProvider interface {
	// Font returns the loaded font with the given family name.
	Font(family string) (*Font, error)

	// FontForLanguage returns the best loaded font for the given
	// language tag.
	FontForLanguage(tag language.Tag) (*Font, error)
}

// TextureProvider resolves texture uris to decoded images.
type TextureProvider interface {
	// Texture returns the decoded image at uri.
	// Returns ErrTextureNotFound (possibly wrapped) if uri does not resolve.
	Texture(uri string) (image.Image, error)
}

// Bundle groups the document, font, and texture providers a UI runtime
// consumes. Any member may be nil; runtimes treat a nil provider as an
// empty resource space.
//
// The bundle owns its providers: Close releases every provider that
// implements io.Closer, in reverse of the order they were supplied, and
// is idempotent.
type Bundle struct {
	documents DocumentProvider
	fonts     FontProvider
	textures  TextureProvider
	closed    bool
}

// NewBundle creates a Bundle from the given providers.
func NewBundle(documents DocumentProvider, fonts FontProvider, textures TextureProvider) *Bundle {
	return &Bundle{
		documents: documents,
		fonts:     fonts,
		textures:  textures,
	}
}

// Documents returns the document provider, or nil.
func (b *Bundle) Documents() DocumentProvider {
	if b.closed {
		return nil
	}
	return b.documents
}

// Fonts returns the font provider, or nil.
func (b *Bundle) Fonts() FontProvider {
	if b.closed {
		return nil
	}
	return b.fonts
}

// Textures returns the texture provider, or nil.
func (b *Bundle) Textures() TextureProvider {
	if b.closed {
		return nil
	}
	return b.textures
}

// Close releases all providers in reverse-registration order.
// Close is idempotent; multiple calls are safe. The first error
// encountered is returned, but every provider is still closed.
func (b *Bundle) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true

	var first error
	for _, p := range []any{b.textures, b.fonts, b.documents} {
		c, ok := p.(io.Closer)
		if !ok {
			continue
		}
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	b.documents = nil
	b.fonts = nil
	b.textures = nil
	return first
}
