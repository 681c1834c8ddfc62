package reactor

import (
	"sync"
	"time"

	"github.com/joeycumines/go-catrate"

	"github.com/hydro-project/hydro-sub005/pull"
	"github.com/hydro-project/hydro-sub005/wake"
)

// RateLimitedSource wraps an inner pull.Channel[T], throttling how
// quickly items are released downstream through a catrate.Limiter:
// whenever the limiter reports an item would exceed one of its
// configured sliding-window rates, the item is held rather than dropped
// until the limiter's own deadline passes, and a timer re-arms Waker so
// the subgraph is polled again at that point (SPEC_FULL.md §B's
// go-catrate domain-stack entry — gating a real external producer
// before it wakes a subgraph).
type RateLimitedSource[T any] struct {
	Inner    pull.Channel[T]
	Limiter  *catrate.Limiter
	Category any
	Waker    wake.Waker

	mu      sync.Mutex
	held    T
	hasHeld bool
	timer   *time.Timer
}

// TryRecv implements pull.Channel[T]. Once an item is released from
// Inner it is unconditionally emitted here too (the inner channel is the
// only one that decides when the stream ends); this type only ever
// delays emission, never drops an item.
func (s *RateLimitedSource[T]) TryRecv() (item T, open bool, ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasHeld {
		return s.attemptRelease(s.held, true)
	}

	v, open, ready := s.Inner.TryRecv()
	if !ready {
		var zero T
		return zero, open, false
	}
	return s.attemptRelease(v, open)
}

// attemptRelease must be called with mu held.
func (s *RateLimitedSource[T]) attemptRelease(v T, open bool) (T, bool, bool) {
	next, allowed := s.Limiter.Allow(s.Category)
	if allowed {
		var zero T
		s.hasHeld = false
		s.held = zero
		return v, open, true
	}
	s.held = v
	s.hasHeld = true
	s.scheduleRelease(next)
	var zero T
	return zero, true, false
}

func (s *RateLimitedSource[T]) scheduleRelease(at time.Time) {
	d := time.Until(at)
	if d < 0 {
		d = 0
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(d, func() {
		if s.Waker != nil {
			s.Waker.Wake()
		}
	})
}
