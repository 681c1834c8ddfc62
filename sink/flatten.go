package sink

// FlatMap maps each incoming item to a slice via f and drains it into
// next, one Next.PollReady/StartSend round per element — retaining the
// unsent suffix across polls so a not-yet-ready next pauses the drain
// exactly where it left off, per spec.md §4.2. PollReady both reports
// and enforces readiness: it fully drains any leftover suffix before
// reporting true, so StartSend may assume pending is empty.
type FlatMap[In, Out any] struct {
	F       func(In) []Out
	Next    Sink[Out]
	pending []Out
	idx     int
}

func (s *FlatMap[In, Out]) drain(ctx *Context) (bool, error) {
	for s.idx < len(s.pending) {
		ready, err := s.Next.PollReady(ctx)
		if err != nil {
			return false, err
		}
		if !ready {
			return false, nil
		}
		if err := s.Next.StartSend(s.pending[s.idx]); err != nil {
			return false, err
		}
		s.idx++
	}
	s.pending = nil
	s.idx = 0
	return true, nil
}

func (s *FlatMap[In, Out]) PollReady(ctx *Context) (bool, error) { return s.drain(ctx) }

func (s *FlatMap[In, Out]) StartSend(item In) error {
	s.pending = append(s.pending, s.F(item)...)
	s.idx = 0
	return nil
}

func (s *FlatMap[In, Out]) PollFlush(ctx *Context) (bool, error) {
	if ready, err := s.drain(ctx); err != nil || !ready {
		return ready, err
	}
	return s.Next.PollFlush(ctx)
}

func (s *FlatMap[In, Out]) PollClose(ctx *Context) (bool, error) {
	if ready, err := s.drain(ctx); err != nil || !ready {
		return ready, err
	}
	return s.Next.PollClose(ctx)
}

// Flatten is FlatMap with the identity function: each incoming slice is
// drained element-by-element into next.
func Flatten[Out any](next Sink[Out]) *FlatMap[[]Out, Out] {
	return &FlatMap[[]Out, Out]{F: func(v []Out) []Out { return v }, Next: next}
}
