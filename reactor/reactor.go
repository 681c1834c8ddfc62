// Package reactor bridges real external async sources (readable file
// descriptors, rate-limited producers) into pull.Channel[T], the contract
// FromChannel consumes (SPEC_FULL.md §B's "real external async source").
// The scheduler core never imports this package or golang.org/x/sys/unix
// directly; only a subgraph that genuinely talks to the outside world
// wires a reactor.FDSource or reactor.RateLimitedSource into its pull
// side, the same way the teacher's event loop keeps platform pollers
// behind a narrow interface rather than spreading unix.* calls through
// its core scheduling code.
package reactor

import "errors"

// IOEvents is a bitset of readiness conditions a registered file
// descriptor can report, mirroring the teacher poller's event flags.
type IOEvents uint32

const (
	// EventRead indicates the file descriptor is ready for reading.
	EventRead IOEvents = 1 << iota
	// EventWrite indicates the file descriptor is ready for writing.
	EventWrite
	// EventError indicates an error condition on the file descriptor.
	EventError
	// EventHangup indicates the peer closed its end of the connection.
	EventHangup
)

// IOCallback is invoked from the poller's own goroutine whenever a
// registered file descriptor reports one of the events it was registered
// for. Callbacks must not block: they run on the poller's dispatch path,
// not the scheduler's tick loop.
type IOCallback func(IOEvents)

// Errors returned by Poller implementations.
var (
	ErrFDAlreadyRegistered = errors.New("reactor: fd already registered")
	ErrFDNotRegistered     = errors.New("reactor: fd not registered")
	ErrPollerClosed        = errors.New("reactor: poller closed")
)

// Poller monitors a set of file descriptors for readiness, dispatching a
// callback per event. Linux builds use epoll (reactor_linux.go); every
// other platform falls back to a portable blocking-read-per-goroutine
// strategy (reactor_other.go) that needs no platform-specific syscalls.
type Poller interface {
	// RegisterFD begins monitoring fd for events, invoking cb from the
	// poller's dispatch goroutine whenever one fires.
	RegisterFD(fd int, events IOEvents, cb IOCallback) error
	// UnregisterFD stops monitoring fd. Callers must do this before
	// closing fd to avoid stale event delivery on fd reuse.
	UnregisterFD(fd int) error
	// Close shuts the poller down, stopping all dispatch.
	Close() error
}

// NewPoller constructs the platform-appropriate Poller.
func NewPoller() (Poller, error) {
	return newPoller()
}
