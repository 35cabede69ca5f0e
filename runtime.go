package uibridge

import (
	"fmt"
	"sync"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/uibridge/provider"
)

// Runtime is the UI runtime the bridge drives. It loads markup documents,
// creates views over them, and renders the resulting element trees.
//
// Runtime implementations are external to this module. They register via
// [RegisterRuntime] and are selected through [DefaultRuntime] or
// [WithRuntime]. One Runtime instance exists per registered name for the
// lifetime of the process; its Init runs exactly once (first caller wins)
// and is never re-entered or torn down by a bridge.
type Runtime interface {
	// Name returns the runtime identifier (e.g., "stub").
	Name() string

	// Init performs the process-wide runtime initialization.
	// Callers must go through the bridge, which guards Init so it runs
	// at most once per process regardless of how many bridges exist.
	Init() error

	// SetProviders binds the resource provider bundle the runtime queries
	// for fonts, textures, and documents. Last binder wins.
	SetProviders(b *provider.Bundle)

	// LoadDocument parses the markup resource at uri into a document tree.
	// Returns an error if the uri does not resolve to a loadable resource.
	LoadDocument(uri string) (Document, error)

	// SetApplicationResources installs doc as the application-wide
	// resource dictionary (theme). Pass nil to clear.
	SetApplicationResources(doc Document)

	// CreateView builds a view over doc with a renderer bound to dev.
	CreateView(doc Document, dev Device) (View, error)

	// SetLogCallback installs the runtime's log sink. Pass nil to clear.
	SetLogCallback(fn LogFunc)

	// RegisterComponents registers native component factories under an
	// owner key, making them instantiable from markup.
	RegisterComponents(owner string, components map[string]func() any)

	// UnregisterComponents removes every component registered under owner.
	// Unknown owners are a no-op.
	UnregisterComponents(owner string)
}

// Document is a loaded UI element hierarchy parsed from a markup resource.
type Document interface {
	// URI returns the resource path the document was loaded from.
	URI() string
}

// View is one live document tree with a renderer binding. All methods are
// invoked from the host's render-loop thread.
type View interface {
	// SetSize resizes the view's internal render surfaces to the viewport.
	SetSize(width, height int)

	// Update advances animations and layout by elapsed.
	Update(elapsed time.Duration)

	// PrepareRender builds the frame's draw batches against the current
	// device state. Must run before the host clears its buffers.
	PrepareRender() error

	// Render issues the UI draw calls. Runs after the host's own scene
	// drawing so the UI composites on top.
	Render() error

	// Close releases the renderer binding and the document-tree root.
	// After Close the view must not be used. Close is idempotent.
	Close() error
}

// InputSink is an optional interface for views that accept input events.
// The InputManager delivers translated host input through it. Views that
// do not implement InputSink simply receive no input.
type InputSink interface {
	PointerMoved(x, y int)
	PointerPressed(x, y int, button PointerButton)
	PointerReleased(x, y int, button PointerButton)
	Scroll(x, y int, deltaX, deltaY float64)
	KeyPressed(key gpucontext.Key, mods gpucontext.Modifiers)
	KeyReleased(key gpucontext.Key, mods gpucontext.Modifiers)
	TextInput(r rune)

	// SetActive reports window focus changes. While inactive, the
	// InputManager suppresses focus-affecting events on its own; SetActive
	// lets the view drop keyboard focus visuals.
	SetActive(active bool)
}

// SurfaceRenderer is an optional interface for views that render through
// the wgpu HAL. When both the view implements SurfaceRenderer and the
// device exposes a HAL device, the session routes Render through the
// offscreen target set it maintains at viewport size.
type SurfaceRenderer interface {
	// RenderTo draws the view into the given MSAA color attachment using
	// the paired depth/stencil attachment.
	RenderTo(color, depthStencil hal.TextureView) error
}

// ResourceCounter is an optional interface for views that track native
// resource liveness. The session consults it after destruction: a nonzero
// count is a leak signal, logged as a warning, never a crash.
type ResourceCounter interface {
	LiveResources() int
}

// runtimeEntry pairs a factory with its lazily created singleton and the
// outcome of its one-time Init.
type runtimeEntry struct {
	factory  func() Runtime
	instance Runtime
	initDone bool
	initErr  error
}

// registry holds registered runtimes. One instance per name, process-wide.
var (
	registryMu   sync.Mutex
	runtimes     = make(map[string]*runtimeEntry)
	runtimeOrder []string
)

// RegisterRuntime registers a runtime factory with the given name.
// This is typically called from init() functions in runtime packages.
// Registering an already-registered name replaces the factory only if the
// previous runtime was never instantiated; a live runtime instance is
// process-wide state and is kept.
func RegisterRuntime(name string, factory func() Runtime) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if e, ok := runtimes[name]; ok {
		if e.instance == nil {
			e.factory = factory
		}
		return
	}
	runtimes[name] = &runtimeEntry{factory: factory}
	runtimeOrder = append(runtimeOrder, name)
}

// UnregisterRuntime removes a runtime from the registry.
// This is useful for testing.
func UnregisterRuntime(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(runtimes, name)
	for i, n := range runtimeOrder {
		if n == name {
			runtimeOrder = append(runtimeOrder[:i], runtimeOrder[i+1:]...)
			break
		}
	}
}

// AvailableRuntimes returns the registered runtime names in registration
// order.
func AvailableRuntimes() []string {
	registryMu.Lock()
	defer registryMu.Unlock()
	out := make([]string, len(runtimeOrder))
	copy(out, runtimeOrder)
	return out
}

// RuntimeByName returns the process-wide runtime instance for name,
// creating it on first use. Returns nil if name is not registered.
func RuntimeByName(name string) Runtime {
	registryMu.Lock()
	defer registryMu.Unlock()
	e, ok := runtimes[name]
	if !ok {
		return nil
	}
	if e.instance == nil {
		e.instance = e.factory()
	}
	return e.instance
}

// DefaultRuntime returns the first registered runtime, or nil if none is
// registered.
func DefaultRuntime() Runtime {
	registryMu.Lock()
	defer registryMu.Unlock()
	for _, name := range runtimeOrder {
		e := runtimes[name]
		if e.instance == nil {
			e.instance = e.factory()
		}
		if e.instance != nil {
			return e.instance
		}
	}
	return nil
}

// ensureRuntimeInit runs rt.Init exactly once per process for registered
// runtimes. The first caller initializes; every later caller observes the
// first call's outcome. Runtimes supplied directly via WithRuntime that
// were never registered are tracked by identity in adhocInit.
func ensureRuntimeInit(rt Runtime) error {
	registryMu.Lock()
	defer registryMu.Unlock()

	if e, ok := runtimes[rt.Name()]; ok && e.instance == rt {
		if !e.initDone {
			e.initErr = rt.Init()
			e.initDone = true
		}
		if e.initErr != nil {
			return fmt.Errorf("%w: %s: %v", ErrRuntimeInit, rt.Name(), e.initErr)
		}
		return nil
	}

	if err, done := adhocInit[rt]; done {
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrRuntimeInit, rt.Name(), err)
		}
		return nil
	}
	err := rt.Init()
	adhocInit[rt] = err
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRuntimeInit, rt.Name(), err)
	}
	return nil
}

// adhocInit records one-time Init outcomes for unregistered runtimes,
// keyed by instance identity. Guarded by registryMu.
var adhocInit = make(map[Runtime]error)
