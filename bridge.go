package uibridge

import (
	"fmt"
	"sync/atomic"
	"time"
)

// bridgeState tracks the one-way bridge lifecycle.
type bridgeState uint8

const (
	// stateActive accepts frame calls.
	stateActive bridgeState = iota

	// stateClosed is terminal; every operation is a no-op.
	stateClosed
)

// framePhase records the most recent frame call for order diagnostics.
type framePhase uint8

const (
	phaseIdle framePhase = iota
	phaseUpdateInput
	phaseUpdate
	phasePreRender
	phaseRender
)

var phaseNames = [...]string{"idle", "UpdateInput", "Update", "PreRender", "Render"}

// bridgeSeq numbers bridges so each gets a unique component-owner key.
var bridgeSeq atomic.Uint64

// Bridge embeds a retained-mode UI runtime inside the host's render loop.
//
// The host constructs one Bridge per application session and calls, every
// frame while the bridge is active and in this order:
//
//	b.UpdateInput(elapsed, windowActive)
//	// host game-logic update
//	b.Update(elapsed)
//	b.PreRender()
//	// host clears the device, draws its scene
//	b.Render()
//
// and on shutdown closes it exactly once (extra Close calls are no-ops):
//
//	b.Close()
//
// All methods must be invoked from the host's render-loop thread. The
// bridge has no internal threading; device lost/reset notifications are
// expected on the same thread as frame calls.
type Bridge struct {
	cfg   Config
	rt    Runtime
	owner string

	session *viewSession
	input   *InputManager
	theme   Document

	// unsubscribe detaches the device-event subscription. Held as a func
	// so teardown can guarantee deregistration on every path.
	unsubscribe func()

	state      bridgeState
	phase      framePhase
	phaseCheck bool
}

// New constructs a Bridge from cfg. On success the bridge is active and
// accepts frame calls. On failure nothing is left registered: no view, no
// input manager, no device-event subscription, no component registrations.
//
// Returns [ErrConfigInvalid] if cfg fails validation, [ErrNoRuntime] if
// no runtime is available, [ErrRuntimeInit] if the process-wide runtime
// initialization fails, and [ErrResourceLoad] if the theme or root
// document cannot be loaded.
func New(cfg Config, opts ...Option) (*Bridge, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	rt := o.runtime
	if rt == nil {
		rt = DefaultRuntime()
	}
	if rt == nil {
		return nil, ErrNoRuntime
	}
	if err := ensureRuntimeInit(rt); err != nil {
		return nil, err
	}

	b := &Bridge{
		cfg:        cfg,
		rt:         rt,
		owner:      fmt.Sprintf("uibridge-%d", bridgeSeq.Add(1)),
		state:      stateActive,
		phase:      phaseIdle,
		phaseCheck: o.phaseCheck,
	}

	// Construction-time load failures are returned as errors, never routed
	// to OnError; the callback is attached only once the bridge exists.
	rt.SetLogCallback(newLogRouter(nil))

	if cfg.Providers != nil {
		rt.SetProviders(cfg.Providers)
	}
	if len(cfg.Components) > 0 {
		rt.RegisterComponents(b.owner, cfg.Components)
	}

	// Past this point every failure path must unwind the registrations
	// made so far; a half-constructed bridge must not stay activated.
	fail := func(err error) (*Bridge, error) {
		if b.theme != nil {
			rt.SetApplicationResources(nil)
			b.theme = nil
		}
		if len(cfg.Components) > 0 {
			rt.UnregisterComponents(b.owner)
		}
		return nil, err
	}

	if cfg.ThemeDocument != "" {
		theme, err := rt.LoadDocument(cfg.ThemeDocument)
		if err != nil {
			return fail(fmt.Errorf("%w: theme %q: %v", ErrResourceLoad, cfg.ThemeDocument, err))
		}
		b.theme = theme
		rt.SetApplicationResources(theme)
	}

	root, err := rt.LoadDocument(cfg.RootDocument)
	if err != nil {
		return fail(fmt.Errorf("%w: root document %q: %v", ErrResourceLoad, cfg.RootDocument, err))
	}

	session, err := newViewSession(rt, root, cfg.Device)
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrResourceLoad, err))
	}
	b.session = session
	b.input = NewInputManager(session.view, cfg)

	if src, ok := cfg.Device.(DeviceEventSource); ok {
		b.unsubscribe = src.SubscribeDeviceEvents(b)
	}

	rt.SetLogCallback(newLogRouter(cfg.OnError))

	Logger().Info("uibridge: bridge constructed",
		"runtime", rt.Name(), "root", cfg.RootDocument, "theme", cfg.ThemeDocument)
	return b, nil
}

// UpdateInput forwards host input-device sampling to the InputManager.
// While windowActive is false, input is sampled but focus-affecting
// events are suppressed. Non-blocking; never suspends.
func (b *Bridge) UpdateInput(elapsed time.Duration, windowActive bool) {
	if b.state != stateActive {
		return
	}
	b.notePhase(phaseUpdateInput)
	b.input.Update(elapsed, windowActive)
}

// Update performs viewport-size detection and then advances the UI
// session's animations and layout by elapsed. Must run after the host's
// game-logic update and before PreRender of the same frame.
//
// Size detection runs every frame, not only on device events, because
// some host frameworks resize the viewport without raising one.
func (b *Bridge) Update(elapsed time.Duration) {
	if b.state != stateActive {
		return
	}
	b.notePhase(phaseUpdate)
	b.refreshSize()
	b.session.update(elapsed)
}

// PreRender prepares the UI renderer's draw batches against the current
// graphics-device state. Must run before the host clears the device's
// color and stencil buffers.
func (b *Bridge) PreRender() {
	if b.state != stateActive {
		return
	}
	b.notePhase(phasePreRender)
	b.session.prepareRender()
}

// Render issues the UI draw calls. Must run after the host's own scene
// drawing so the UI composites on top.
func (b *Bridge) Render() {
	if b.state != stateActive {
		return
	}
	b.notePhase(phaseRender)
	b.session.render()
}

// Active reports whether the bridge accepts frame calls.
func (b *Bridge) Active() bool {
	return b.state == stateActive
}

// Close tears the bridge down in dependency order: device-event
// subscription first (an event firing into a half-destroyed session is
// undefined behavior), then the view session, theme, provider bundle,
// and component registrations.
//
// Close is idempotent; calls after the first are no-ops and return nil.
func (b *Bridge) Close() error {
	if b.state == stateClosed {
		return nil
	}
	b.state = stateClosed

	if b.unsubscribe != nil {
		b.unsubscribe()
		b.unsubscribe = nil
	}

	b.session.destroy()
	if !b.session.destroyed() {
		Logger().Warn("uibridge: view session not reclaimed after destroy")
	}
	b.session = nil
	b.input = nil

	if b.theme != nil {
		b.rt.SetApplicationResources(nil)
		b.theme = nil
	}

	if b.cfg.Providers != nil {
		if err := b.cfg.Providers.Close(); err != nil {
			Logger().Warn("uibridge: provider bundle close failed", "error", err)
		}
	}

	if len(b.cfg.Components) > 0 {
		b.rt.UnregisterComponents(b.owner)
	}

	Logger().Info("uibridge: bridge closed", "runtime", b.rt.Name())
	return nil
}

// DeviceLost implements [DeviceObserver]. Native resources are assumed to
// survive or be mid-invalidated; the renderer must tolerate the transient
// state, so nothing is torn down here.
func (b *Bridge) DeviceLost() {
	if b.state != stateActive {
		return
	}
	Logger().Debug("uibridge: device lost")
}

// DeviceReset implements [DeviceObserver]. The viewport is refreshed
// immediately so renderer surfaces rebind to the new device state.
func (b *Bridge) DeviceReset() {
	if b.state != stateActive {
		return
	}
	Logger().Debug("uibridge: device reset")
	b.refreshSize()
}

// refreshSize reads the device viewport and forwards it to the session,
// which ignores sizes it has already seen.
func (b *Bridge) refreshSize() {
	w, h := b.cfg.Device.Viewport()
	if b.session.refreshSize(w, h) {
		Logger().Debug("uibridge: viewport resized", "width", w, "height", h)
	}
}

// notePhase records the frame call and warns when the host deviates from
// the documented per-frame order. Diagnostics only; the call proceeds.
func (b *Bridge) notePhase(p framePhase) {
	if !b.phaseCheck {
		return
	}
	expected := p - 1
	if p == phaseUpdateInput {
		expected = phaseIdle
	}
	if b.phase != expected {
		Logger().Warn("uibridge: frame call out of order",
			"call", phaseNames[p], "previous", phaseNames[b.phase])
	}
	if p == phaseRender {
		b.phase = phaseIdle
		return
	}
	b.phase = p
}

// Ensure Bridge implements DeviceObserver.
var _ DeviceObserver = (*Bridge)(nil)
