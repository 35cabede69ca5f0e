// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package target

import (
	"errors"
	"testing"

	"github.com/gogpu/wgpu/hal"
)

type fakeTexture struct {
	hal.Texture
	label     string
	destroyed bool
}

type fakeView struct {
	hal.TextureView
	label     string
	destroyed bool
}

// fakeDevice implements the texture methods Ensure and Destroy call.
type fakeDevice struct {
	hal.Device
	texCalls  int
	failTexOn int // 1-based CreateTexture call index that fails; 0 = never
	textures  []*fakeTexture
	views     []*fakeView
}

func (d *fakeDevice) CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error) {
	d.texCalls++
	if d.failTexOn != 0 && d.texCalls == d.failTexOn {
		return nil, errors.New("out of memory")
	}
	t := &fakeTexture{label: desc.Label}
	d.textures = append(d.textures, t)
	return t, nil
}

func (d *fakeDevice) CreateTextureView(_ hal.Texture, desc *hal.TextureViewDescriptor) (hal.TextureView, error) {
	v := &fakeView{label: desc.Label}
	d.views = append(d.views, v)
	return v, nil
}

func (d *fakeDevice) DestroyTexture(t hal.Texture) {
	t.(*fakeTexture).destroyed = true
}

func (d *fakeDevice) DestroyTextureView(v hal.TextureView) {
	v.(*fakeView).destroyed = true
}

func TestEnsureIsNoOpAtSameSize(t *testing.T) {
	dev := &fakeDevice{}
	var s Set

	if err := s.Ensure(dev, 800, 600); err != nil {
		t.Fatalf("Ensure() = %v", err)
	}
	if !s.Valid() {
		t.Fatal("set not valid after Ensure")
	}
	if w, h := s.Size(); w != 800 || h != 600 {
		t.Errorf("Size() = %dx%d, want 800x600", w, h)
	}
	if dev.texCalls != 2 {
		t.Fatalf("CreateTexture calls = %d, want 2 (color + depth/stencil)", dev.texCalls)
	}

	// Same size: nothing is recreated.
	if err := s.Ensure(dev, 800, 600); err != nil {
		t.Fatalf("second Ensure() = %v", err)
	}
	if dev.texCalls != 2 {
		t.Errorf("CreateTexture calls = %d after no-op Ensure, want 2", dev.texCalls)
	}
}

func TestEnsureRecreatesOnResize(t *testing.T) {
	dev := &fakeDevice{}
	var s Set

	if err := s.Ensure(dev, 800, 600); err != nil {
		t.Fatalf("Ensure() = %v", err)
	}
	firstColor := s.ColorView()

	if err := s.Ensure(dev, 1024, 768); err != nil {
		t.Fatalf("Ensure() after resize = %v", err)
	}
	if w, h := s.Size(); w != 1024 || h != 768 {
		t.Errorf("Size() = %dx%d, want 1024x768", w, h)
	}
	if dev.texCalls != 4 {
		t.Errorf("CreateTexture calls = %d, want 4 after recreation", dev.texCalls)
	}
	for i := 0; i < 2; i++ {
		if !dev.textures[i].destroyed {
			t.Errorf("texture %d from the old size not destroyed", i)
		}
	}
	if s.ColorView() == firstColor {
		t.Error("color view not recreated on resize")
	}
}

func TestEnsurePartialFailureDestroysCreated(t *testing.T) {
	dev := &fakeDevice{failTexOn: 2} // depth/stencil creation fails
	var s Set

	if err := s.Ensure(dev, 800, 600); err == nil {
		t.Fatal("Ensure() = nil error, want failure")
	}
	if s.Valid() {
		t.Error("set valid after a failed Ensure")
	}
	// The color texture and view created before the failure are released.
	if len(dev.textures) != 1 || !dev.textures[0].destroyed {
		t.Errorf("color texture not destroyed after partial failure: %+v", dev.textures)
	}
	if len(dev.views) != 1 || !dev.views[0].destroyed {
		t.Errorf("color view not destroyed after partial failure: %+v", dev.views)
	}

	// The device recovers; the next Ensure succeeds from scratch.
	dev.failTexOn = 0
	if err := s.Ensure(dev, 800, 600); err != nil {
		t.Fatalf("Ensure() after recovery = %v", err)
	}
	if !s.Valid() {
		t.Error("set not valid after recovery")
	}
}

func TestDestroyIdempotent(t *testing.T) {
	dev := &fakeDevice{}
	var s Set

	if err := s.Ensure(dev, 800, 600); err != nil {
		t.Fatalf("Ensure() = %v", err)
	}
	s.Destroy(dev)
	s.Destroy(dev)

	if s.Valid() {
		t.Error("set valid after Destroy")
	}
	if w, h := s.Size(); w != 0 || h != 0 {
		t.Errorf("Size() = %dx%d after Destroy, want 0x0", w, h)
	}
	for i, tex := range dev.textures {
		if !tex.destroyed {
			t.Errorf("texture %d not destroyed", i)
		}
	}
	for i, v := range dev.views {
		if !v.destroyed {
			t.Errorf("view %d not destroyed", i)
		}
	}

	// Destroy on a zero set is safe too.
	var empty Set
	empty.Destroy(dev)
}
