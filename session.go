package uibridge

import (
	"fmt"
	"time"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/uibridge/internal/target"
)

// halDeviceProvider is the optional interface devices implement to expose
// the wgpu HAL. Matches the provider shape used across the gogpu family:
// HalDevice() returns any to keep hal out of the provider contract.
type halDeviceProvider interface {
	HalDevice() any
}

// viewSession owns one loaded document tree and its renderer binding.
// It tracks the last viewport size it propagated so a stable viewport
// costs one comparison per frame instead of a render-surface reallocation.
//
// The session is the single owner of its view: destroy releases the
// renderer binding first, then drops every reference, and finally checks
// the view's native-resource count as a leak signal.
type viewSession struct {
	view     View
	doc      Document
	renderer SurfaceRenderer // nil when the view renders on its own
	hal      hal.Device      // nil when the device exposes no HAL
	targets  *target.Set     // nil when hal is nil

	lastWidth  int
	lastHeight int
}

// newViewSession creates the session for doc on dev. The initial viewport
// is not propagated here; the first Update call performs the first size
// refresh so resize accounting has a single code path.
func newViewSession(rt Runtime, doc Document, dev Device) (*viewSession, error) {
	view, err := rt.CreateView(doc, dev)
	if err != nil {
		return nil, fmt.Errorf("uibridge: create view for %q: %w", doc.URI(), err)
	}

	s := &viewSession{view: view, doc: doc}
	if sr, ok := view.(SurfaceRenderer); ok {
		s.renderer = sr
	}
	if hp, ok := dev.(halDeviceProvider); ok {
		if hd, ok := hp.HalDevice().(hal.Device); ok && hd != nil {
			s.hal = hd
			s.targets = &target.Set{}
		}
	}
	return s, nil
}

// refreshSize propagates a viewport change to the view and keeps the
// target set sized to it. Returns false when the size is unchanged, so a
// stable viewport never re-propagates to the view. The view sees each
// distinct size exactly once; target-set retries after a transient
// creation failure are tracked by the set itself and never reach the view.
func (s *viewSession) refreshSize(width, height int) bool {
	changed := width != s.lastWidth || height != s.lastHeight
	if changed {
		s.lastWidth = width
		s.lastHeight = height
		s.view.SetSize(width, height)
	}

	if s.targets != nil && width > 0 && height > 0 {
		if err := s.targets.Ensure(s.hal, uint32(width), uint32(height)); err != nil {
			// Transient device state (mid-loss) can fail texture creation;
			// the destroyed set makes the next refresh retry.
			Logger().Warn("uibridge: UI render targets unavailable", "error", err)
			s.targets.Destroy(s.hal)
		}
	}
	return changed
}

// update advances the view's animations and layout.
func (s *viewSession) update(elapsed time.Duration) {
	s.view.Update(elapsed)
}

// prepareRender builds the frame's draw batches. Runtime faults are
// surfaced through the log channel, not control flow, so one bad frame
// cannot destabilize the host's render loop.
func (s *viewSession) prepareRender() {
	if err := s.view.PrepareRender(); err != nil {
		Logger().Error("uibridge: prepare render failed", "error", err)
	}
}

// render issues the UI draw calls, through the HAL target set when the
// view supports it.
func (s *viewSession) render() {
	if s.renderer != nil && s.targets != nil && s.targets.Valid() {
		if err := s.renderer.RenderTo(s.targets.ColorView(), s.targets.DepthStencilView()); err != nil {
			Logger().Error("uibridge: render failed", "error", err)
		}
		return
	}
	if err := s.view.Render(); err != nil {
		Logger().Error("uibridge: render failed", "error", err)
	}
}

// destroy releases the renderer binding and the document-tree root, then
// drops the session's references. The leak probe is captured before the
// owning reference is cleared so the post-destruction check inspects the
// object that was actually released.
func (s *viewSession) destroy() {
	if s.view == nil {
		return
	}
	probe, _ := s.view.(ResourceCounter)

	if s.targets != nil {
		s.targets.Destroy(s.hal)
		s.targets = nil
	}
	s.hal = nil
	if err := s.view.Close(); err != nil {
		Logger().Warn("uibridge: view close failed", "error", err)
	}
	s.renderer = nil
	s.view = nil
	s.doc = nil
	s.lastWidth, s.lastHeight = 0, 0

	// Leak signal, not a crash condition: the UI runtime tracks native
	// liveness independently of the Go heap.
	if probe != nil {
		if n := probe.LiveResources(); n > 0 {
			Logger().Warn("uibridge: view leaked native resources", "count", n)
		}
	}
}

// destroyed reports whether the single-owner slot is empty.
func (s *viewSession) destroyed() bool {
	return s.view == nil
}
