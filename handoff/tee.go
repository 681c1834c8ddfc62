package handoff

// Tee is a one-producer, N-consumer handoff. Each reader owns an
// independent Handoff fed the same sequence of items; a give on the Tee
// fans out to every reader registered at the time of the call.
//
// Late-joining readers (added after some items have already been given)
// do not see history: only readers present at the time of a Give receive
// that item, matching the spec's resolution of the "does a tee replay for
// new readers" question.
type Tee[T any] struct {
	readers []*Handoff[T]
}

// NewTee returns an empty Tee with no readers.
func NewTee[T any]() *Tee[T] {
	return &Tee[T]{}
}

// NewReader registers and returns a new reader handoff. Its stream starts
// from this point forward; items given before this call are not replayed.
func (t *Tee[T]) NewReader() *Handoff[T] {
	h := New[T]()
	t.readers = append(t.readers, h)
	return h
}

// Give clones item into every reader currently registered.
func (t *Tee[T]) Give(item T) {
	for _, r := range t.readers {
		r.Give(item)
	}
}

// GiveVec clones items into every reader currently registered.
func (t *Tee[T]) GiveVec(items []T) {
	for _, r := range t.readers {
		r.GiveVec(items)
	}
}

// BorrowSwap swaps every reader's buffers. The scheduler calls this once
// per tick pass over the Tee's consumer side, same as a plain Handoff.
func (t *Tee[T]) BorrowSwap() {
	for _, r := range t.readers {
		r.BorrowSwap()
	}
}

// IsBottom reports whether every reader's input side is empty. A Tee only
// counts as bottom (nothing to schedule downstream) once none of its
// readers have pending items, since each reader gates a distinct consumer
// subgraph.
func (t *Tee[T]) IsBottom() bool {
	for _, r := range t.readers {
		if !r.IsBottom() {
			return false
		}
	}
	return true
}

// Readers returns the registered reader handoffs, in registration order.
func (t *Tee[T]) Readers() []*Handoff[T] {
	return t.readers
}
