package sink

// Pair is the item type Unzip accepts: its two halves are routed to two
// independent child sinks.
type Pair[A, B any] struct {
	A A
	B B
}

// Unzip routes a.A to Sink0 and a.B to Sink1. Readiness, flush, and close
// are all and-joins of both children: per spec.md §4.2 and §8 invariant
// 9, the composed sink is ready only once every leaf sink beneath it is
// ready. Both children are always polled (not short-circuited) so a
// not-yet-ready Sink0 doesn't starve Sink1 of its own progress.
type Unzip[A, B any] struct {
	Sink0 Sink[A]
	Sink1 Sink[B]
}

func (s *Unzip[A, B]) PollReady(ctx *Context) (bool, error) {
	return andJoin2(
		func() (bool, error) { return s.Sink0.PollReady(ctx) },
		func() (bool, error) { return s.Sink1.PollReady(ctx) },
	)
}

func (s *Unzip[A, B]) StartSend(item Pair[A, B]) error {
	if err := s.Sink0.StartSend(item.A); err != nil {
		return err
	}
	return s.Sink1.StartSend(item.B)
}

func (s *Unzip[A, B]) PollFlush(ctx *Context) (bool, error) {
	return andJoin2(
		func() (bool, error) { return s.Sink0.PollFlush(ctx) },
		func() (bool, error) { return s.Sink1.PollFlush(ctx) },
	)
}

func (s *Unzip[A, B]) PollClose(ctx *Context) (bool, error) {
	return andJoin2(
		func() (bool, error) { return s.Sink0.PollClose(ctx) },
		func() (bool, error) { return s.Sink1.PollClose(ctx) },
	)
}

// andJoin2 calls both polls unconditionally (so neither child is starved)
// and and-joins the results: the first error wins, otherwise ready only
// if both report ready.
func andJoin2(a, b func() (bool, error)) (bool, error) {
	readyA, errA := a()
	readyB, errB := b()
	if errA != nil {
		return false, errA
	}
	if errB != nil {
		return false, errB
	}
	return readyA && readyB, nil
}
