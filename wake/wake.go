// Package wake defines the minimal waker contract shared by pull sequences,
// push sinks, the reactor, and the scheduler: a callback an async poller
// invokes to request rescheduling when progress becomes possible.
package wake

// Waker is the callback a pending poll uses to request a future re-poll.
// Implementations must be safe to call from any goroutine: external async
// sources (sockets, timers, other threads) are expected to hold a Waker
// past the lifetime of the poll call that handed it out.
type Waker interface {
	Wake()
}

// Func adapts a plain function to Waker.
type Func func()

// Wake implements Waker.
func (f Func) Wake() {
	f()
}

// Noop is a Waker that does nothing. Useful in tests driving an operator
// to completion synchronously, where no Pending result is ever expected.
var Noop Waker = Func(func() {})
