// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package provider

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-text/typesetting/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/language"
)

// Font is a loaded font resource. One Font wraps the parsed face shared by
// every view that renders with it; Fonts are heavyweight and live for the
// lifetime of their FontSet.
type Font struct {
	family   string
	fullName string
	tag      language.Tag
	data     []byte
	face     *font.Face
}

// Family returns the font family name from the name table, or the family
// the font was registered under when the table carries none.
func (f *Font) Family() string { return f.family }

// FullName returns the font's full name from the name table.
func (f *Font) FullName() string { return f.fullName }

// Language returns the language tag the font was registered for.
func (f *Font) Language() language.Tag { return f.tag }

// Face returns the parsed typesetting face for shaping and rasterization.
func (f *Font) Face() *font.Face { return f.face }

// Data returns the raw font file bytes. The slice must not be modified.
func (f *Font) Data() []byte { return f.data }

// FontSet is a FontProvider over fonts loaded from memory. Fonts are
// matched by family name (case-insensitive) or by BCP 47 language tag.
type FontSet struct {
	byFamily map[string]*Font
	order    []*Font
	matcher  language.Matcher
}

// NewFontSet creates an empty FontSet.
func NewFontSet() *FontSet {
	return &FontSet{byFamily: make(map[string]*Font)}
}

// LoadFont parses TTF or OTF data and adds it to the set, registered for
// the given language tag. Use language.Und for fonts with no particular
// language affinity. The data slice is copied internally.
//
// Loading a font whose family is already present replaces the previous
// entry for family lookups; language matching considers both.
func (s *FontSet) LoadFont(data []byte, tag language.Tag) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	// Parse with typesetting for the shaping face.
	face, err := font.ParseTTF(bytes.NewReader(dataCopy))
	if err != nil {
		return nil, fmt.Errorf("provider: parse font: %w", err)
	}

	f := &Font{
		tag:  tag,
		data: dataCopy,
		face: face,
	}
	f.family, f.fullName = fontNames(dataCopy)

	s.byFamily[strings.ToLower(f.family)] = f
	s.order = append(s.order, f)
	s.matcher = nil // rebuilt on next language lookup
	return f, nil
}

// Font returns the loaded font with the given family name.
func (s *FontSet) Font(family string) (*Font, error) {
	f, ok := s.byFamily[strings.ToLower(family)]
	if !ok {
		return nil, fmt.Errorf("%w: family %q", ErrFontNotFound, family)
	}
	return f, nil
}

// FontForLanguage returns the best loaded font for tag, using BCP 47
// matching over the tags the fonts were registered with. Fonts registered
// as language.Und act as the fallback.
func (s *FontSet) FontForLanguage(tag language.Tag) (*Font, error) {
	if len(s.order) == 0 {
		return nil, fmt.Errorf("%w: no fonts loaded", ErrFontNotFound)
	}
	if s.matcher == nil {
		tags := make([]language.Tag, len(s.order))
		for i, f := range s.order {
			tags[i] = f.tag
		}
		s.matcher = language.NewMatcher(tags)
	}
	_, index, _ := s.matcher.Match(tag)
	return s.order[index], nil
}

// Close releases all loaded fonts. The set is empty but usable afterward.
func (s *FontSet) Close() error {
	s.byFamily = make(map[string]*Font)
	s.order = nil
	s.matcher = nil
	return nil
}

// fontNames extracts the family and full name from the font's name table.
// Falls back to empty strings when the table cannot be read; the caller
// keyed the font by registration in that case.
func fontNames(data []byte) (family, fullName string) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return "", ""
	}
	var buf sfnt.Buffer
	if name, err := f.Name(&buf, sfnt.NameIDFamily); err == nil {
		family = name
	}
	if name, err := f.Name(&buf, sfnt.NameIDFull); err == nil {
		fullName = name
	}
	return family, fullName
}

// Ensure FontSet implements FontProvider.
var _ FontProvider = (*FontSet)(nil)
