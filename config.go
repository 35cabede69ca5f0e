package uibridge

import (
	"fmt"

	"github.com/gogpu/uibridge/provider"
)

// Window is the host window the bridge is paired with. The bridge assumes
// a single window/device pairing for its lifetime.
type Window interface {
	// Size returns the window's client area in pixels. The InputManager
	// uses it to clamp pointer coordinates.
	Size() (width, height int)
}

// Config carries everything the bridge needs at construction. It is read
// once by New and never mutated afterward.
//
// Device, Window, and RootDocument are required; Validate reports a
// wrapped [ErrConfigInvalid] when any is missing.
type Config struct {
	// Device is the graphics device handle shared with the host.
	Device Device

	// Window is the host window the UI is presented in.
	Window Window

	// RootDocument is the uri of the root UI document tree.
	RootDocument string

	// ThemeDocument is the uri of an optional resource-dictionary document
	// installed as application-wide resources for the bridge's lifetime.
	ThemeDocument string

	// Providers is the resource provider bundle bound to the UI runtime.
	// The bridge disposes it during teardown. Optional; when nil the
	// runtime keeps whatever providers are already bound.
	Providers *provider.Bundle

	// Input supplies per-frame host input snapshots. Optional; when nil
	// the InputManager has nothing to sample and delivers no events.
	Input InputSource

	// Components holds native component factories registered with the
	// runtime for the bridge's lifetime and unregistered at teardown.
	// Optional.
	Components map[string]func() any

	// OnError receives error-level messages from the UI runtime's default
	// log channel. Optional. Construction-time load failures are returned
	// as errors, not routed here.
	OnError func(message string)
}

// Validate checks the required fields. It allocates nothing.
func (c *Config) Validate() error {
	if c.Device == nil {
		return fmt.Errorf("%w: Device is required", ErrConfigInvalid)
	}
	if c.Window == nil {
		return fmt.Errorf("%w: Window is required", ErrConfigInvalid)
	}
	if c.RootDocument == "" {
		return fmt.Errorf("%w: RootDocument is required", ErrConfigInvalid)
	}
	return nil
}

// Option configures a Bridge during creation.
//
// Example:
//
//	// Default runtime from the registry
//	b, err := uibridge.New(cfg)
//
//	// Explicit runtime (dependency injection)
//	b, err := uibridge.New(cfg, uibridge.WithRuntime(rt))
type Option func(*options)

// options holds optional configuration for Bridge creation.
type options struct {
	runtime    Runtime
	phaseCheck bool
}

// defaultOptions returns the default bridge options.
func defaultOptions() options {
	return options{phaseCheck: true}
}

// WithRuntime sets the UI runtime the bridge drives instead of the
// registry default. Use this for dependency injection in tests or when
// several runtimes are registered.
func WithRuntime(rt Runtime) Option {
	return func(o *options) {
		o.runtime = rt
	}
}

// WithPhaseCheck enables or disables frame call-order diagnostics.
// When enabled (the default), the bridge logs a warning each time the
// host deviates from the UpdateInput, Update, PreRender, Render order.
// The check never fails the frame.
func WithPhaseCheck(enabled bool) Option {
	return func(o *options) {
		o.phaseCheck = enabled
	}
}
