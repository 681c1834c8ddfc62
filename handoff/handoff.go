// Package handoff implements the double-buffered FIFO link between two
// subgraphs: a producer appends to the input side all tick, the scheduler
// swaps input and output between producer and consumer runs, and the
// consumer drains the output side.
package handoff

// Handoff is a typed double-buffer. The zero value is a ready-to-use empty
// handoff. Not safe for concurrent use — all access happens on the single
// scheduler goroutine during a tick.
type Handoff[T any] struct {
	input  []T
	output []T
}

// New returns an empty handoff. Provided for symmetry with the rest of the
// package's constructors; the zero value works identically.
func New[T any]() *Handoff[T] {
	return &Handoff[T]{}
}

// Give appends a single item to the input side. Never blocks: the handoff
// is conceptually unbounded.
func (h *Handoff[T]) Give(item T) {
	h.input = append(h.input, item)
}

// GiveIter drains seq into the input side.
func (h *Handoff[T]) GiveIter(seq func(yield func(T) bool)) {
	seq(func(item T) bool {
		h.input = append(h.input, item)
		return true
	})
}

// GiveVec appends every element of items to the input side.
func (h *Handoff[T]) GiveVec(items []T) {
	h.input = append(h.input, items...)
}

// BorrowSwap atomically exchanges the input and output sides. The
// scheduler calls this once, before running a subgraph that consumes this
// handoff: the previous input (everything given since the last swap)
// becomes the new output, ready for TakeInner, and the old output side
// becomes the new input. That new input is empty when the consumer called
// TakeInner on its previous run; items it left untaken are back on the
// input side.
func (h *Handoff[T]) BorrowSwap() {
	h.input, h.output = h.output, h.input
}

// TakeInner moves the output side out, leaving it empty. Concurrent Give
// calls within the same run continue to target the (distinct) input side.
func (h *Handoff[T]) TakeInner() []T {
	out := h.output
	h.output = nil
	return out
}

// IsBottom reports whether the input side is empty. The scheduler checks
// this on a subgraph's output handoffs immediately after running it: a
// non-bottom handoff schedules every downstream consumer.
func (h *Handoff[T]) IsBottom() bool {
	return len(h.input) == 0
}

// Len reports the number of items currently queued on the input side.
// Inspection only; not part of the scheduling contract.
func (h *Handoff[T]) Len() int {
	return len(h.input)
}

// Lazy wraps a Handoff so IsBottom always reports true, breaking a
// scheduling cycle between two subgraphs that would otherwise wake each
// other every tick. Lazy handoffs are still fully functional FIFOs; only
// the scheduler's readiness check is suppressed.
type Lazy[T any] struct {
	Handoff[T]
}

// NewLazy returns an empty lazy handoff.
func NewLazy[T any]() *Lazy[T] {
	return &Lazy[T]{}
}

// IsBottom always returns true for a lazy handoff.
func (h *Lazy[T]) IsBottom() bool {
	return true
}
