package graph

import "github.com/hydro-project/hydro-sub005/handoff"

// HandoffID identifies a registered handoff within one Builder/Dfir.
type HandoffID uint32

// handle is the subset of handoff.Handoff[T]'s behavior the scheduler
// needs without knowing T: every *handoff.Handoff[T] and *handoff.Lazy[T]
// satisfies it already.
type handle interface {
	BorrowSwap()
	IsBottom() bool
}

// SendPort is the producer-side capability for one handoff: a subgraph
// holding a SendPort may Give items to it during its own run.
type SendPort[T any] struct {
	id HandoffID
	h  *handoff.Handoff[T]
}

// ID returns the port's underlying HandoffID, for passing to AddSubgraph.
func (p SendPort[T]) ID() HandoffID { return p.id }

// Give appends item to the handoff's input side.
func (p SendPort[T]) Give(item T) { p.h.Give(item) }

// GiveVec appends every element of items to the handoff's input side.
func (p SendPort[T]) GiveVec(items []T) { p.h.GiveVec(items) }

// RecvPort is the consumer-side capability for one handoff: a subgraph
// holding a RecvPort may TakeInner its swapped-in output side during its
// own run.
type RecvPort[T any] struct {
	id HandoffID
	h  *handoff.Handoff[T]
}

// ID returns the port's underlying HandoffID, for passing to AddSubgraph.
func (p RecvPort[T]) ID() HandoffID { return p.id }

// TakeInner moves the handoff's output side out, per handoff.Handoff.
func (p RecvPort[T]) TakeInner() []T { return p.h.TakeInner() }

// Len reports how many items are queued on the handoff's input side
// (inspection only).
func (p RecvPort[T]) Len() int { return p.h.Len() }

// TeePort is the builder-time handle for a fan-out handoff: one producer,
// any number of independently-scheduled readers. Grounded on
// handoff.Tee and the "only readers present at the time of a Give see
// that item" resolution recorded in DESIGN.md's Open Question decisions.
type TeePort[T any] struct {
	tee *handoff.Tee[T]
}

// Send returns the producer-side capability for the tee: Give fans out
// to every reader registered so far.
func (p TeePort[T]) Send() teeSendPort[T] { return teeSendPort[T]{p.tee} }

type teeSendPort[T any] struct{ tee *handoff.Tee[T] }

func (p teeSendPort[T]) Give(item T)       { p.tee.Give(item) }
func (p teeSendPort[T]) GiveVec(items []T) { p.tee.GiveVec(items) }

// NewReader registers a new independently-scheduled reader on the tee and
// returns its RecvPort, wired into b for scheduling. Grounded on
// handoff.Tee.NewReader: the reader only observes items given after this
// call.
func (p TeePort[T]) NewReader(b *Builder) RecvPort[T] {
	r := p.tee.NewReader()
	id := b.register(r)
	return RecvPort[T]{id: id, h: r}
}
