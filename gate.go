package ecc

import (
	"log/slog"
	"sync/atomic"
)

// gateState tracks the registry's one-shot initialization barrier.
// The first resolution request moves the registry from stateUnloaded
// through stateLoading (running the bulk-registration pass) to stateReady,
// after which every registration call is a programmer error.
type gateState uint32

const (
	// stateUnloaded accepts registrations; no container has been resolved.
	stateUnloaded gateState = iota

	// stateLoading runs the bulk-registration pass over the plugin
	// initializers. Only the pass itself registers in this state.
	stateLoading

	// stateReady is terminal: the registry is sealed and serves cached or
	// freshly synthesized container factories.
	stateReady
)

// String returns the string representation of the state.
func (s gateState) String() string {
	switch s {
	case stateUnloaded:
		return "Unloaded"
	case stateLoading:
		return "Loading"
	case stateReady:
		return "Ready"
	default:
		return "Unknown"
	}
}

func loadGateState(state *uint32) gateState {
	return gateState(atomic.LoadUint32(state))
}

// ensureInitialized runs the bulk-registration pass exactly once,
// invoking every plugin initializer in registration order. Safe for
// concurrent use: later callers block until the pass finishes. The gate
// cannot be reopened or reset.
func (r *Registry) ensureInitialized() {
	if loadGateState(&r.state) == stateReady {
		return
	}

	r.initMu.Lock()
	defer r.initMu.Unlock()

	if loadGateState(&r.state) == stateReady {
		return
	}

	atomic.StoreUint32(&r.state, uint32(stateLoading))
	slog.Debug("ecc: running component initializers", "count", len(r.initializers))

	for _, init := range r.initializers {
		init(r)
	}

	atomic.StoreUint32(&r.state, uint32(stateReady))
}

// checkRegistration panics if the registry has been sealed by the first
// resolution request. op names the registration call for diagnostics.
// Registrations performed by the bulk pass itself observe stateLoading and
// are allowed through.
func (r *Registry) checkRegistration(op string) {
	if loadGateState(&r.state) == stateReady {
		panic("ecc: too late to call Registry." + op + ": component containers have already been resolved")
	}
}
