package sched

import "github.com/hydro-project/hydro-sub005/wake"

// Waker binds a SubgraphID to a runtime's EventQueue: calling Wake sends
// an external wakeup event for that one subgraph, safe to do from any
// goroutine. Grounded on the original's `Reactor::into_waker`, which
// converts a `(SubgraphId, EventQueueSender)` pair into a `std::task::Waker`
// bound to a single subgraph by wrapping a clonable sender.
type Waker struct {
	subgraph SubgraphID
	queue    *EventQueue
}

// NewWaker returns a Waker that wakes subgraph id via queue.
func NewWaker(id SubgraphID, queue *EventQueue) Waker {
	return Waker{subgraph: id, queue: queue}
}

// Wake implements wake.Waker.
func (w Waker) Wake() {
	w.queue.Send(Event{Subgraph: w.subgraph, External: true})
}

var _ wake.Waker = Waker{}
