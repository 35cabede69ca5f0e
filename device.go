package uibridge

import (
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Device provides graphics-device access from the host application.
//
// This interface is the primary integration point between uibridge and GPU
// frameworks like gogpu. The host application implements Device and passes
// it to the bridge, allowing the UI runtime to share the host's GPU device.
//
// Key principle: the bridge RECEIVES the device from the host, it does NOT
// create one. This keeps a single device per window and a single owner for
// native GPU resources.
//
// A Device that also implements [DeviceEventSource] delivers loss/reset
// notifications to the bridge. A Device that exposes the wgpu HAL through
// a HalDevice() any method additionally enables the session's offscreen
// render-target set.
type Device interface {
	gpucontext.DeviceProvider

	// Viewport returns the active render target's pixel dimensions.
	Viewport() (width, height int)
}

// DeviceObserver receives graphics-device lifecycle events.
//
// Handlers run synchronously on the thread that fires the notification,
// which for a well-behaved host is the render-loop thread.
type DeviceObserver interface {
	// DeviceLost signals that native GPU resources have become invalid.
	DeviceLost()

	// DeviceReset signals that native GPU resources have been reallocated
	// and are usable again.
	DeviceReset()
}

// DeviceEventSource is an optional interface for devices that deliver
// loss/reset notifications.
//
// Subscribe returns an unsubscribe function. Callers must invoke it on
// every teardown path before destroying the resources their observer
// touches; calling it more than once is safe.
type DeviceEventSource interface {
	SubscribeDeviceEvents(o DeviceObserver) (unsubscribe func())
}

// DeviceNotifier is a reusable observer hub for device lifecycle events.
// Host device implementations embed it to satisfy [DeviceEventSource].
//
// The zero value is ready to use.
type DeviceNotifier struct {
	mu        sync.Mutex
	nextID    int
	observers map[int]DeviceObserver
}

// SubscribeDeviceEvents registers o and returns its unsubscribe function.
// The returned function is idempotent.
func (n *DeviceNotifier) SubscribeDeviceEvents(o DeviceObserver) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.observers == nil {
		n.observers = make(map[int]DeviceObserver)
	}
	id := n.nextID
	n.nextID++
	n.observers[id] = o

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.observers, id)
	}
}

// NotifyDeviceLost delivers DeviceLost to all subscribed observers.
func (n *DeviceNotifier) NotifyDeviceLost() {
	for _, o := range n.snapshot() {
		o.DeviceLost()
	}
}

// NotifyDeviceReset delivers DeviceReset to all subscribed observers.
func (n *DeviceNotifier) NotifyDeviceReset() {
	for _, o := range n.snapshot() {
		o.DeviceReset()
	}
}

// snapshot copies the observer set so notifications run without holding
// the lock. An observer unsubscribing from within its own handler would
// otherwise deadlock.
func (n *DeviceNotifier) snapshot() []DeviceObserver {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]DeviceObserver, 0, len(n.observers))
	for _, o := range n.observers {
		out = append(out, o)
	}
	return out
}

// NullDevice is a Device with no GPU backing. It reports a configurable
// viewport and delivers lifecycle events through its embedded
// DeviceNotifier. Used for headless operation and tests.
type NullDevice struct {
	DeviceNotifier

	width  int
	height int
}

// NewNullDevice creates a NullDevice with the given viewport.
func NewNullDevice(width, height int) *NullDevice {
	return &NullDevice{width: width, height: height}
}

// Device returns nil for the null device.
func (d *NullDevice) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (d *NullDevice) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (d *NullDevice) Adapter() gpucontext.Adapter { return nil }

// AdapterInfo returns a zero AdapterInfo for the null device.
func (d *NullDevice) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{}
}

// SurfaceFormat returns undefined format for the null device.
func (d *NullDevice) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// Viewport returns the configured viewport dimensions.
func (d *NullDevice) Viewport() (width, height int) {
	return d.width, d.height
}

// Resize changes the reported viewport. It does not fire a device event;
// hosts that reallocate surfaces call NotifyDeviceReset themselves.
func (d *NullDevice) Resize(width, height int) {
	d.width = width
	d.height = height
}

// Ensure NullDevice implements Device and DeviceEventSource.
var (
	_ Device            = (*NullDevice)(nil)
	_ DeviceEventSource = (*NullDevice)(nil)
)
