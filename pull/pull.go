// Package pull implements the dataflow runtime's lazy-sequence combinator
// library: pull-based operators polled for one item at a time, composed by
// ownership (an operator holds its upstream by value), fusable once they
// report end-of-sequence.
package pull

import "github.com/hydro-project/hydro-sub005/wake"

// Poll is the three-state result of a single PollNext call: an item is
// ready, the sequence is permanently finished (Done), or nothing is ready
// yet (neither Ready nor Done — the zero value).
type Poll[T any] struct {
	ready bool
	done  bool
	value T
}

// Item returns a Poll reporting a ready value.
func Item[T any](v T) Poll[T] {
	return Poll[T]{ready: true, value: v}
}

// EOS returns a Poll reporting permanent end-of-sequence.
func EOS[T any]() Poll[T] {
	return Poll[T]{ready: true, done: true}
}

// Pending returns a Poll reporting no item is available yet.
func Pending[T any]() Poll[T] {
	return Poll[T]{}
}

// IsPending reports whether no item is available yet.
func (p Poll[T]) IsPending() bool {
	return !p.ready
}

// IsDone reports permanent end-of-sequence.
func (p Poll[T]) IsDone() bool {
	return p.ready && p.done
}

// Value returns the ready item and true, or the zero value and false if
// this Poll is Pending or Done.
func (p Poll[T]) Value() (T, bool) {
	if p.ready && !p.done {
		return p.value, true
	}
	var zero T
	return zero, false
}

// Context carries the current waker into a PollNext call. Operators that
// return Pending must have already arranged for ctx.Waker.Wake to be
// called once progress is possible — typically by forwarding ctx into an
// external source (From Channel) or by registering it with a future.
type Context struct {
	Waker wake.Waker
}

// Seq is the pull contract: a lazy sequence of Item polled one at a time.
// Once PollNext returns a Done Poll, every subsequent call must also
// return Done — the "fuse" property invariant to every combinator below.
type Seq[Item any] interface {
	PollNext(ctx *Context) Poll[Item]
}

// Func adapts a plain function to Seq.
type Func[Item any] func(ctx *Context) Poll[Item]

// PollNext implements Seq.
func (f Func[Item]) PollNext(ctx *Context) Poll[Item] {
	return f(ctx)
}

// RunToCompletion repeatedly polls seq until it reports Done, calling emit
// for each item produced in between. It never itself awaits a Pending
// result — the caller (the scheduler) handles Pending by leaving the
// subgraph unscheduled until woken. RunToCompletion stops and returns
// false the first time PollNext returns Pending, so the caller can decide
// whether to retry the same tick or wait for a wakeup.
func RunToCompletion[T any](ctx *Context, seq Seq[T], emit func(T)) (done bool) {
	for {
		p := seq.PollNext(ctx)
		if p.IsPending() {
			return false
		}
		if p.IsDone() {
			return true
		}
		v, _ := p.Value()
		emit(v)
	}
}
