package graph

import "errors"

// Sentinel errors for the runtime's lifecycle and build-time conditions.
var (
	// ErrGraphBuildIncomplete is matched by Build's error when a handoff
	// has no producer or no consumer among the registered subgraphs.
	ErrGraphBuildIncomplete = errors.New("graph: build incomplete, unconnected port(s)")
	// ErrDuplicateStateID is never returned by this package's own state
	// API (state.Registry allocates fresh ids itself) but is kept as a
	// sentinel so a caller wrapping external state allocation can report
	// collisions through the same error taxonomy.
	ErrDuplicateStateID = errors.New("graph: duplicate state id")
	// ErrRuntimeStopped is returned by Run/Tick once the runtime has been
	// stopped; no further ticks may be driven.
	ErrRuntimeStopped = errors.New("graph: runtime stopped")
	// ErrReentrantTick is returned if Tick is called while a tick is
	// already in progress on the same Dfir (e.g. from within a subgraph
	// closure) — the scheduler is not reentrant.
	ErrReentrantTick = errors.New("graph: tick already in progress")
)

// BuildError reports a single build-time diagnostic: an unconnected port
// or a stratum ordering violation. Build returns an error that wraps one
// or more of these via errors.Join, so callers can errors.As a single
// BuildError out of a multi-diagnostic failure.
type BuildError struct {
	// Kind is a short machine-readable category: "unconnected_port" or
	// "stratum_order".
	Kind string
	// Detail names the offending port, subgraph, or stratum pair.
	Detail string
}

func (e *BuildError) Error() string {
	return "graph: " + e.Kind + ": " + e.Detail
}

// Unwrap lets errors.Is(err, ErrGraphBuildIncomplete) match a BuildError
// of kind "unconnected_port".
func (e *BuildError) Unwrap() error {
	if e.Kind == "unconnected_port" {
		return ErrGraphBuildIncomplete
	}
	return nil
}
