package sim

import "errors"

var (
	// ErrConfiguration reports an engine that cannot be built or run with the
	// supplied network, state, step size or horizon. It is never retried.
	ErrConfiguration = errors.New("configuration error")

	// ErrPropensity wraps a failure raised by a caller-supplied propensity.
	// The engine stops at the first failing evaluation.
	ErrPropensity = errors.New("propensity evaluation failed")

	// ErrEngineUsed is returned by Sim on an engine that already ran.
	// A new run needs a new engine built from a fresh initial state.
	ErrEngineUsed = errors.New("engine already ran")
)
