package uibridge

import "errors"

// Errors returned by Bridge construction. Per-frame methods never return
// errors; runtime faults during a frame are routed through the logger.
var (
	// ErrConfigInvalid is returned by New when a required Config field is
	// missing. The wrapped message names the field.
	ErrConfigInvalid = errors.New("uibridge: invalid config")

	// ErrResourceLoad is returned by New when the theme or root document
	// cannot be loaded, or the view cannot be created over it.
	ErrResourceLoad = errors.New("uibridge: resource load failed")

	// ErrNoRuntime is returned by New when no UI runtime is registered and
	// none was supplied with WithRuntime.
	ErrNoRuntime = errors.New("uibridge: no UI runtime available")

	// ErrRuntimeInit is returned by New when the process-wide runtime
	// initialization failed. The failure is sticky: every later bridge over
	// the same runtime observes the first attempt's outcome.
	ErrRuntimeInit = errors.New("uibridge: runtime initialization failed")
)
