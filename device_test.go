package uibridge

import (
	"reflect"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// countingObserver counts lifecycle notifications.
type countingObserver struct {
	lost  int
	reset int
}

func (o *countingObserver) DeviceLost() { o.lost++ }

func (o *countingObserver) DeviceReset() { o.reset++ }

func TestDeviceNotifierSubscribe(t *testing.T) {
	var n DeviceNotifier
	a := &countingObserver{}
	b := &countingObserver{}

	unsubA := n.SubscribeDeviceEvents(a)
	n.SubscribeDeviceEvents(b)

	n.NotifyDeviceLost()
	n.NotifyDeviceReset()
	if a.lost != 1 || a.reset != 1 || b.lost != 1 || b.reset != 1 {
		t.Errorf("counts = %v/%v, want one of each per observer", a, b)
	}

	unsubA()
	n.NotifyDeviceReset()
	if a.reset != 1 {
		t.Error("unsubscribed observer still notified")
	}
	if b.reset != 2 {
		t.Error("remaining observer missed notification")
	}

	// Unsubscribe is idempotent.
	unsubA()
	n.NotifyDeviceReset()
	if a.reset != 1 || b.reset != 3 {
		t.Error("double unsubscribe disturbed the observer set")
	}
}

// selfRemover unsubscribes itself from within its own handler.
type selfRemover struct {
	unsub func()
	reset int
}

func (o *selfRemover) DeviceLost() {}

func (o *selfRemover) DeviceReset() {
	o.reset++
	o.unsub()
}

func TestDeviceNotifierUnsubscribeFromHandler(t *testing.T) {
	var n DeviceNotifier
	o := &selfRemover{}
	o.unsub = n.SubscribeDeviceEvents(o)

	// Must not deadlock.
	n.NotifyDeviceReset()
	n.NotifyDeviceReset()
	if o.reset != 1 {
		t.Errorf("reset = %d, want 1 after self-removal", o.reset)
	}
}

func TestNullDevice(t *testing.T) {
	dev := NewNullDevice(800, 600)

	if w, h := dev.Viewport(); w != 800 || h != 600 {
		t.Errorf("Viewport() = %dx%d, want 800x600", w, h)
	}
	dev.Resize(1024, 768)
	if w, h := dev.Viewport(); w != 1024 || h != 768 {
		t.Errorf("Viewport() after Resize = %dx%d, want 1024x768", w, h)
	}

	if dev.Device() != nil || dev.Queue() != nil || dev.Adapter() != nil {
		t.Error("null device exposes GPU objects")
	}
	if got := dev.SurfaceFormat(); got != gputypes.TextureFormatUndefined {
		t.Errorf("SurfaceFormat() = %v, want undefined", got)
	}
	if got := dev.AdapterInfo(); !reflect.DeepEqual(got, gpucontext.AdapterInfo{}) {
		t.Errorf("AdapterInfo() = %+v, want zero value", got)
	}
}
