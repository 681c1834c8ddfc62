// Package state implements the dataflow runtime's state registry: named,
// typed, scope-lifetimed cells owned by the graph and borrowed by
// operators.
package state

import "fmt"

// Lifespan determines when a cell's reset hook fires.
type Lifespan int

const (
	// LifespanNone cells are never cleared automatically; they live for
	// the runtime's lifetime.
	LifespanNone Lifespan = iota
	// LifespanTick cells are reset at tick boundaries.
	LifespanTick
	// LifespanStratum cells are reset at stratum boundaries.
	LifespanStratum
)

// String implements fmt.Stringer.
func (l Lifespan) String() string {
	switch l {
	case LifespanNone:
		return "none"
	case LifespanTick:
		return "tick"
	case LifespanStratum:
		return "stratum"
	default:
		return fmt.Sprintf("Lifespan(%d)", int(l))
	}
}

// ID is an opaque, typed identifier for a state cell. The type parameter
// ensures Get cannot be called with a mismatched type at compile time.
type ID[T any] struct {
	id uint64
}

// rawID is the untyped identifier used internally by the Registry.
type rawID = uint64

// cell is the untyped storage backing every ID[T]. The value field always
// holds a *T (set up in Add); storing the pointer, not the value, is what
// lets Get hand out a stable address operators can mutate in place across
// polls, matching the spec's "&mut T" borrow.
type cell struct {
	value    any
	lifespan Lifespan
	// reset is invoked with the cell's current value and must return the
	// value to store after reset. For LifespanNone cells, reset is never
	// called, even if SetResetFunc installed one.
	reset func(any) any
}

// Registry owns every state cell in a graph. It is not safe for
// concurrent use: per §5 of the engine's design, all operator and
// registry access happens on the single scheduler goroutine.
type Registry struct {
	cells  map[rawID]*cell
	nextID uint64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		cells:  make(map[rawID]*cell),
		nextID: 1,
	}
}

// Add registers a new cell holding initial with the given lifespan and
// returns its typed ID. A LifespanNone cell never needs a reset function;
// LifespanTick and LifespanStratum cells must be given one via
// SetResetFunc before the first boundary they participate in, otherwise
// the boundary sweep leaves them untouched (matching "never cleared" for
// cells without an installed hook).
//
// The cell's storage is a *T, not a T: Get must hand back the same
// address on every call so that a closure mutating through it (e.g.
// Fold's combine_fn touching its accumulator across repeated polls within
// a tick) persists that mutation without an explicit Set, matching the
// spec's "&mut T" borrow contract.
func Add[T any](r *Registry, initial T, lifespan Lifespan) ID[T] {
	id := r.nextID
	r.nextID++
	ptr := new(T)
	*ptr = initial
	r.cells[id] = &cell{value: ptr, lifespan: lifespan}
	return ID[T]{id: id}
}

// SetResetFunc installs the lifespan reset hook for id. reset receives a
// pointer to the cell's current value and mutates it in place to produce
// the value the cell should hold immediately after the boundary, mirroring
// the spec's "closure FnMut(&mut T)" contract.
func SetResetFunc[T any](r *Registry, id ID[T], reset func(*T)) {
	c := r.mustCell(id.id)
	c.reset = func(v any) any {
		reset(v.(*T))
		return v
	}
}

// Get returns the cell's storage pointer, permitting in-place mutation by
// the caller (the operator holding this ID). The same pointer is returned
// on every call for the lifetime of the cell, so mutations through it are
// visible to every other holder of id without a separate Set call.
//
// Get panics if id was not obtained from this Registry, mirroring the
// spec's "state access error: dynamically-typed state mismatch...a logic
// bug and should panic."
func Get[T any](r *Registry, id ID[T]) *T {
	c := r.mustCell(id.id)
	ptr, ok := c.value.(*T)
	if !ok {
		panic(fmt.Sprintf("state: cell %d holds %T, not %T", id.id, c.value, ptr))
	}
	return ptr
}

// Set replaces the cell's entire value in one shot (e.g. swapping in a
// fresh accumulator at EOS). It writes through the existing storage
// pointer rather than replacing it, so any previously-returned Get
// pointer keeps observing the cell.
func Set[T any](r *Registry, id ID[T], v T) {
	*Get(r, id) = v
}

// mustCell returns the raw cell for id or panics if unknown.
func (r *Registry) mustCell(id rawID) *cell {
	c, ok := r.cells[id]
	if !ok {
		panic(fmt.Sprintf("state: unknown cell id %d", id))
	}
	return c
}

// RunStratumHooks invokes every LifespanStratum cell's reset hook. Called
// by the scheduler after all subgraphs in a stratum have completed their
// run for the current tick.
func (r *Registry) RunStratumHooks() {
	r.runHooksForLifespan(LifespanStratum)
}

// RunTickHooks invokes every LifespanTick cell's reset hook. Called by
// the scheduler once per tick, after all strata have run to fixpoint.
func (r *Registry) RunTickHooks() {
	r.runHooksForLifespan(LifespanTick)
}

func (r *Registry) runHooksForLifespan(lifespan Lifespan) {
	for _, c := range r.cells {
		if c.lifespan != lifespan || c.reset == nil {
			continue
		}
		c.value = c.reset(c.value)
	}
}

// Len reports the number of registered cells; used by graph inspection.
func (r *Registry) Len() int {
	return len(r.cells)
}
