// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package target manages the offscreen HAL textures a view session renders
// the UI into: an MSAA color attachment and its paired depth/stencil
// attachment, both sized to the current viewport.
package target

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// sampleCount is the MSAA sample count for the UI attachments.
const sampleCount = 4

// Set holds the MSAA color and depth/stencil textures for UI compositing.
// Textures are created lazily by Ensure and recreated whenever the
// requested dimensions change, which happens on viewport resize and after
// a device reset.
type Set struct {
	colorTex    hal.Texture
	colorView   hal.TextureView
	stencilTex  hal.Texture
	stencilView hal.TextureView
	width       uint32
	height      uint32
}

// Ensure creates or recreates the textures if the requested dimensions
// differ from the current size. If dimensions match and textures exist,
// this is a no-op.
func (s *Set) Ensure(device hal.Device, w, h uint32) error {
	if s.width == w && s.height == h && s.colorTex != nil {
		return nil
	}
	s.Destroy(device)

	size := hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1}

	colorTex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "ui_msaa_color",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   sampleCount,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("create UI color texture: %w", err)
	}
	s.colorTex = colorTex

	colorView, err := device.CreateTextureView(colorTex, &hal.TextureViewDescriptor{
		Label: "ui_msaa_color_view",
	})
	if err != nil {
		s.Destroy(device)
		return fmt.Errorf("create UI color view: %w", err)
	}
	s.colorView = colorView

	stencilTex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "ui_depth_stencil",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   sampleCount,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatDepth24PlusStencil8,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		s.Destroy(device)
		return fmt.Errorf("create UI depth/stencil texture: %w", err)
	}
	s.stencilTex = stencilTex

	stencilView, err := device.CreateTextureView(stencilTex, &hal.TextureViewDescriptor{
		Label: "ui_depth_stencil_view",
	})
	if err != nil {
		s.Destroy(device)
		return fmt.Errorf("create UI depth/stencil view: %w", err)
	}
	s.stencilView = stencilView

	s.width = w
	s.height = h
	return nil
}

// Valid reports whether the set currently holds textures.
func (s *Set) Valid() bool { return s.colorView != nil }

// ColorView returns the MSAA color attachment view, or nil.
func (s *Set) ColorView() hal.TextureView { return s.colorView }

// DepthStencilView returns the depth/stencil attachment view, or nil.
func (s *Set) DepthStencilView() hal.TextureView { return s.stencilView }

// Size returns the current texture dimensions.
func (s *Set) Size() (uint32, uint32) { return s.width, s.height }

// Destroy releases all texture resources and resets dimensions.
// Safe to call multiple times or on a set with no allocated resources.
func (s *Set) Destroy(device hal.Device) {
	if s.stencilView != nil {
		device.DestroyTextureView(s.stencilView)
		s.stencilView = nil
	}
	if s.stencilTex != nil {
		device.DestroyTexture(s.stencilTex)
		s.stencilTex = nil
	}
	if s.colorView != nil {
		device.DestroyTextureView(s.colorView)
		s.colorView = nil
	}
	if s.colorTex != nil {
		device.DestroyTexture(s.colorTex)
		s.colorTex = nil
	}
	s.width = 0
	s.height = 0
}
