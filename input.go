package uibridge

import (
	"time"

	"github.com/gogpu/gpucontext"
)

// PointerButton identifies a pointer-device button.
type PointerButton uint8

const (
	// PointerPrimary is the primary (usually left) button.
	PointerPrimary PointerButton = iota

	// PointerSecondary is the secondary (usually right) button.
	PointerSecondary

	// PointerMiddle is the middle (wheel) button.
	PointerMiddle

	numPointerButtons
)

// PointerState is one sampled pointer-device snapshot.
type PointerState struct {
	// X, Y is the pointer position in window client pixels.
	X, Y int

	// Buttons holds the held state per PointerButton.
	Buttons [numPointerButtons]bool

	// WheelX, WheelY is the scroll delta accumulated since the last sample.
	WheelX, WheelY float64
}

// KeyboardState is one sampled keyboard snapshot.
type KeyboardState struct {
	// Pressed lists the keys currently held.
	Pressed []gpucontext.Key

	// Mods is the active modifier set.
	Mods gpucontext.Modifiers

	// Runes holds the text input produced since the last sample.
	Runes []rune
}

// InputSnapshot is the host input-device state sampled once per frame.
type InputSnapshot struct {
	Pointer  PointerState
	Keyboard KeyboardState
}

// InputSource supplies input snapshots from the host's input devices.
// Poll is called exactly once per UpdateInput and must not block.
type InputSource interface {
	Poll() InputSnapshot
}

// InputManager translates host input-device snapshots into UI-runtime
// input events and routes them to the view's document tree.
//
// Snapshots are diffed frame to frame: a button held across two samples
// produces one pressed event, position changes produce move events, and
// so on. While the window is inactive, sampling continues so the diff
// state stays current, but focus-affecting events (presses, releases,
// keys, text) are suppressed; only pointer moves pass through.
type InputManager struct {
	sink   InputSink
	source InputSource
	window Window

	prev      InputSnapshot
	prevKeys  map[gpucontext.Key]bool
	sampled   bool
	active    bool
	activeSet bool
}

// NewInputManager creates an InputManager that routes events from the
// config's input source to view. A view that does not implement
// [InputSink] receives no events; sampling still runs.
func NewInputManager(view View, cfg Config) *InputManager {
	m := &InputManager{
		source:   cfg.Input,
		window:   cfg.Window,
		prevKeys: make(map[gpucontext.Key]bool),
	}
	if sink, ok := view.(InputSink); ok {
		m.sink = sink
	} else {
		Logger().Debug("uibridge: view does not accept input events")
	}
	return m
}

// Update samples the host input devices and delivers the resulting events.
// Non-blocking; never suspends.
func (m *InputManager) Update(elapsed time.Duration, windowActive bool) {
	_ = elapsed

	if m.sink != nil && (!m.activeSet || windowActive != m.active) {
		m.sink.SetActive(windowActive)
	}
	m.active = windowActive
	m.activeSet = true

	if m.source == nil {
		return
	}
	snap := m.source.Poll()
	m.clampPointer(&snap.Pointer)

	if m.sink == nil {
		m.retain(snap)
		return
	}

	m.deliverPointer(snap.Pointer, windowActive)
	m.deliverKeyboard(snap.Keyboard, windowActive)
	m.retain(snap)
}

// deliverPointer emits move, scroll, and button events from the diff of
// the previous and current pointer samples.
func (m *InputManager) deliverPointer(p PointerState, windowActive bool) {
	if !m.sampled || p.X != m.prev.Pointer.X || p.Y != m.prev.Pointer.Y {
		m.sink.PointerMoved(p.X, p.Y)
	}
	if !windowActive {
		return
	}
	if p.WheelX != 0 || p.WheelY != 0 {
		m.sink.Scroll(p.X, p.Y, p.WheelX, p.WheelY)
	}
	for b := PointerButton(0); b < numPointerButtons; b++ {
		was := m.sampled && m.prev.Pointer.Buttons[b]
		now := p.Buttons[b]
		switch {
		case now && !was:
			m.sink.PointerPressed(p.X, p.Y, b)
		case !now && was:
			m.sink.PointerReleased(p.X, p.Y, b)
		}
	}
}

// deliverKeyboard emits key and text events from the keyboard diff.
func (m *InputManager) deliverKeyboard(k KeyboardState, windowActive bool) {
	if !windowActive {
		return
	}
	held := make(map[gpucontext.Key]bool, len(k.Pressed))
	for _, key := range k.Pressed {
		held[key] = true
		if !m.prevKeys[key] {
			m.sink.KeyPressed(key, k.Mods)
		}
	}
	for key := range m.prevKeys {
		if !held[key] {
			m.sink.KeyReleased(key, k.Mods)
		}
	}
	for _, r := range k.Runes {
		m.sink.TextInput(r)
	}
	m.prevKeys = held
}

// retain stores the snapshot for the next frame's diff. While the window
// is inactive key releases are not delivered, but the held-key map is
// still refreshed so reactivation does not replay stale presses.
func (m *InputManager) retain(snap InputSnapshot) {
	if !m.active {
		held := make(map[gpucontext.Key]bool, len(snap.Keyboard.Pressed))
		for _, key := range snap.Keyboard.Pressed {
			held[key] = true
		}
		m.prevKeys = held
	}
	m.prev = snap
	m.sampled = true
}

// clampPointer keeps pointer coordinates inside the window client area.
func (m *InputManager) clampPointer(p *PointerState) {
	w, h := m.window.Size()
	if w <= 0 || h <= 0 {
		return
	}
	if p.X < 0 {
		p.X = 0
	} else if p.X >= w {
		p.X = w - 1
	}
	if p.Y < 0 {
		p.Y = 0
	} else if p.Y >= h {
		p.Y = h - 1
	}
}
