package reactor

import (
	"sync"

	"github.com/hydro-project/hydro-sub005/wake"
)

// FDSource adapts a raw, readable file descriptor into a pull.Channel[T]:
// bytes read from fd are decoded into items by Decode and handed out one
// at a time via TryRecv, invoking Waker whenever the queue transitions
// from empty to non-empty. On Linux the actual read only happens once
// epoll reports the fd readable (fd_source_linux.go); elsewhere a
// dedicated blocking-read goroutine does the same job without any
// platform-specific syscalls (fd_source_other.go).
type FDSource[T any] struct {
	mu     sync.Mutex
	queue  []T
	closed bool

	Waker  wake.Waker
	Decode func([]byte) ([]T, error)
}

// NewFDSource starts reading fd in the background and returns a Channel
// suitable for pull.FromChannel. decode turns each raw chunk read from
// fd into zero or more items; a decode error silently drops that chunk
// rather than tearing down the source, since a malformed frame from an
// external producer shouldn't take the whole subgraph down.
func NewFDSource[T any](fd int, decode func([]byte) ([]T, error), waker wake.Waker) (*FDSource[T], error) {
	s := &FDSource[T]{Waker: waker, Decode: decode}
	if err := s.start(fd); err != nil {
		return nil, err
	}
	return s, nil
}

// TryRecv implements pull.Channel[T].
func (s *FDSource[T]) TryRecv() (item T, open bool, ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) > 0 {
		item = s.queue[0]
		s.queue = s.queue[1:]
		return item, true, true
	}
	var zero T
	if s.closed {
		return zero, false, false
	}
	return zero, true, false
}

func (s *FDSource[T]) push(items []T) {
	if len(items) == 0 {
		return
	}
	s.mu.Lock()
	wasEmpty := len(s.queue) == 0
	s.queue = append(s.queue, items...)
	s.mu.Unlock()
	if wasEmpty && s.Waker != nil {
		s.Waker.Wake()
	}
}

func (s *FDSource[T]) finish() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	if s.Waker != nil {
		s.Waker.Wake()
	}
}
