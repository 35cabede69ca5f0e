// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package provider

import (
	"errors"
	"testing"

	"golang.org/x/text/language"
)

func TestFontSetEmptyData(t *testing.T) {
	s := NewFontSet()
	if _, err := s.LoadFont(nil, language.Und); !errors.Is(err, ErrEmptyFontData) {
		t.Errorf("LoadFont(nil) = %v, want ErrEmptyFontData", err)
	}
	if _, err := s.LoadFont([]byte{}, language.Und); !errors.Is(err, ErrEmptyFontData) {
		t.Errorf("LoadFont(empty) = %v, want ErrEmptyFontData", err)
	}
}

func TestFontSetGarbageData(t *testing.T) {
	s := NewFontSet()
	_, err := s.LoadFont([]byte("not a font file"), language.Und)
	if err == nil {
		t.Fatal("LoadFont(garbage) = nil error")
	}
	if errors.Is(err, ErrEmptyFontData) {
		t.Errorf("LoadFont(garbage) = %v, want a parse error", err)
	}
}

func TestFontSetLookupMiss(t *testing.T) {
	s := NewFontSet()
	if _, err := s.Font("Nonexistent Sans"); !errors.Is(err, ErrFontNotFound) {
		t.Errorf("Font() = %v, want ErrFontNotFound", err)
	}
	if _, err := s.FontForLanguage(language.Japanese); !errors.Is(err, ErrFontNotFound) {
		t.Errorf("FontForLanguage() = %v, want ErrFontNotFound", err)
	}
}

func TestFontSetCloseResets(t *testing.T) {
	s := NewFontSet()
	if err := s.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	// The set is empty but usable after Close.
	if _, err := s.Font("any"); !errors.Is(err, ErrFontNotFound) {
		t.Errorf("Font() after Close = %v, want ErrFontNotFound", err)
	}
}
