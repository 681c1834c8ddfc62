package pull

import "github.com/hydro-project/hydro-sub005/wake"

// Future is a single asynchronous result, polled like a Seq but with no
// separate Done state: Poll returns (zero, false) until it resolves, then
// (value, true) exactly once. Grounded on the original's use of
// `std::future::Future` as the item type of the stream ResolveFutures
// consumes.
type Future[T any] interface {
	Poll(ctx *Context) (T, bool)
}

// FutureFunc adapts a plain function to Future.
type FutureFunc[T any] func(ctx *Context) (T, bool)

// Poll implements Future.
func (f FutureFunc[T]) Poll(ctx *Context) (T, bool) { return f(ctx) }

// Queue is the state cell ResolveFutures extends and drains: Ordered
// resolves futures in FIFO order (only the head is polled), Unordered
// resolves whichever future is ready first regardless of arrival order.
// Grounded on the original's `FuturesOrdered`/`FuturesUnordered` choice.
type Queue[T any] struct {
	items   []Future[T]
	ordered bool
}

// NewOrderedQueue returns an empty FIFO future queue.
func NewOrderedQueue[T any]() *Queue[T] { return &Queue[T]{ordered: true} }

// NewUnorderedQueue returns an empty unordered future queue.
func NewUnorderedQueue[T any]() *Queue[T] { return &Queue[T]{} }

// Extend adds a future to the queue.
func (q *Queue[T]) Extend(f Future[T]) {
	q.items = append(q.items, f)
}

// Len reports the number of unresolved futures still queued.
func (q *Queue[T]) Len() int { return len(q.items) }

// Poll attempts to resolve one queued future, reporting the result as a
// Poll[T]: Item on resolution, EOS if the queue is empty, Pending if the
// queue holds futures but none are ready yet. Exported for the push-side
// ResolveFutures sink, which drains this same queue type.
func (q *Queue[T]) Poll(ctx *Context) Poll[T] {
	val, ok, empty := q.poll(ctx)
	if ok {
		return Item(val)
	}
	if empty {
		return EOS[T]()
	}
	return Pending[T]()
}

// poll attempts to resolve one future. empty reports whether the queue
// held nothing at all (distinct from "held futures, none ready yet") —
// the original's Ready(None) vs Pending distinction on the queue stream.
func (q *Queue[T]) poll(ctx *Context) (val T, ok bool, empty bool) {
	if len(q.items) == 0 {
		return val, false, true
	}
	if q.ordered {
		if v, resolved := q.items[0].Poll(ctx); resolved {
			q.items = q.items[1:]
			return v, true, false
		}
		return val, false, false
	}
	for i, f := range q.items {
		if v, resolved := f.Poll(ctx); resolved {
			q.items = append(q.items[:i:i], q.items[i+1:]...)
			return v, true, false
		}
	}
	return val, false, false
}

// ResolveFutures accepts an upstream stream of futures, queues them, and
// polls the queue for resolved values. In blocking mode it yields Pending
// until the queue is ready, polling with the ambient ctx waker (matching
// the operator's own suspension point). In non-blocking mode it polls the
// queue with subgraphWaker instead — the dual-waker rule (SPEC_FULL.md
// supplement C.4, grounded on the original's push/pull `resolve_futures.rs`
// comment): queued futures are driven independently of whether this
// operator itself is re-polled, and the operator reports Done for this
// tick (EOS) as soon as upstream is also exhausted, leaving any
// unresolved futures to resolve on a later tick via subgraphWaker.
func ResolveFutures[T any](inner Seq[Future[T]], queue *Queue[T], blocking bool, subgraphWaker wake.Waker) Seq[T] {
	return Func[T](func(ctx *Context) Poll[T] {
		upstreamPending := false
		for {
			p := inner.PollNext(ctx)
			if p.IsPending() {
				upstreamPending = true
				break
			}
			if p.IsDone() {
				break
			}
			f, _ := p.Value()
			queue.Extend(f)
		}

		pollCtx := ctx
		if !blocking {
			pollCtx = &Context{Waker: subgraphWaker}
		}
		v, ok, empty := queue.poll(pollCtx)
		if ok {
			return Item(v)
		}
		if !empty && blocking {
			return Pending[T]()
		}
		if upstreamPending {
			return Pending[T]()
		}
		return EOS[T]()
	})
}
