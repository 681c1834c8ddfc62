package sink

import (
	"github.com/hydro-project/hydro-sub005/pull"
	"github.com/hydro-project/hydro-sub005/wake"
)

// ResolveFutures accepts futures via StartSend, queuing them in Queue,
// and forwards each resolved value to Next as soon as it's ready. Every
// StartSend triggers exactly one non-blocking pump of the queue using
// SubgraphWaker rather than the ambient ctx.Waker — the same dual-waker
// rule pull.ResolveFutures observes, so a future that resolves between
// ticks re-wakes this subgraph instead of whatever happened to call
// StartSend. PollFlush/PollClose additionally drain until the queue is
// empty or Next stops being ready.
type ResolveFutures[Item any] struct {
	Queue         *pull.Queue[Item]
	Next          Sink[Item]
	SubgraphWaker wake.Waker
}

func (s *ResolveFutures[Item]) pump(ctx *Context) (bool, error) {
	nextCtx := &pull.Context{Waker: s.SubgraphWaker}
	for {
		ready, err := s.Next.PollReady(ctx)
		if err != nil {
			return false, err
		}
		if !ready {
			return false, nil
		}
		// Next confirmed ready before the queue is polled: a resolved
		// future is only ever popped once it can be sent immediately,
		// so a not-yet-ready Next never strands a resolved value.
		p := s.Queue.Poll(nextCtx)
		if p.IsPending() {
			return false, nil
		}
		val, ok := p.Value()
		if !ok {
			return true, nil
		}
		if err := s.Next.StartSend(val); err != nil {
			return false, err
		}
	}
}

func (s *ResolveFutures[Item]) PollReady(ctx *Context) (bool, error) { return s.Next.PollReady(ctx) }

func (s *ResolveFutures[Item]) StartSend(item pull.Future[Item]) error {
	s.Queue.Extend(item)
	// Best-effort, non-blocking: drain whatever's already resolved so
	// the queue doesn't grow without bound across a long run, but a
	// pump error or backpressure here isn't this call's problem — it
	// surfaces on the next PollFlush/PollClose instead.
	_, _ = s.pump(&Context{Waker: s.SubgraphWaker})
	return nil
}

func (s *ResolveFutures[Item]) PollFlush(ctx *Context) (bool, error) {
	if ready, err := s.pump(ctx); err != nil || !ready {
		return ready, err
	}
	return s.Next.PollFlush(ctx)
}

func (s *ResolveFutures[Item]) PollClose(ctx *Context) (bool, error) {
	if ready, err := s.pump(ctx); err != nil || !ready {
		return ready, err
	}
	return s.Next.PollClose(ctx)
}
