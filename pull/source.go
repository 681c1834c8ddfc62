package pull

// FromIter adapts a Go 1.23 range-over-func iterator into a Seq: it emits
// each element in turn and reports Done at exhaustion. The iterator runs
// eagerly to completion on the first poll (Go iterators have no native
// suspension point), buffering into a slice; subsequent polls drain that
// slice one item per call, matching the one-item-per-PollNext contract.
func FromIter[T any](seq func(yield func(T) bool)) Seq[T] {
	var buf []T
	var started bool
	idx := 0
	return Func[T](func(_ *Context) Poll[T] {
		if !started {
			started = true
			seq(func(v T) bool {
				buf = append(buf, v)
				return true
			})
		}
		if idx >= len(buf) {
			return EOS[T]()
		}
		v := buf[idx]
		idx++
		return Item(v)
	})
}

// FromSlice emits each element of a plain slice in order and reports Done
// at its end, indexing the slice directly rather than going through
// FromIter.
func FromSlice[T any](items []T) Seq[T] {
	idx := 0
	return Func[T](func(_ *Context) Poll[T] {
		if idx >= len(items) {
			return EOS[T]()
		}
		v := items[idx]
		idx++
		return Item(v)
	})
}

// Channel is the minimal external multi-producer queue contract consumed
// by FromChannel: a receive that reports whether the channel is still
// open, mirroring a Go channel's two-value receive form.
type Channel[T any] interface {
	// TryRecv attempts a non-blocking receive. open is false exactly when
	// the channel is closed and drained — matching a Go `v, ok := <-ch`
	// after close once the buffer is empty. When the channel is open but
	// currently empty, TryRecv must return (zero, true, false) and it is
	// the caller's responsibility (see FromChannel) to arrange a wakeup.
	TryRecv() (item T, open bool, ready bool)
}

// FromChannel emits items received from rx. It reports Pending when rx is
// momentarily empty (relying on the channel implementation to invoke the
// current poll's waker once an item arrives) and reports Done only once
// rx reports closed-and-drained, per spec.md §4.1.
func FromChannel[T any](rx Channel[T]) Seq[T] {
	return Func[T](func(_ *Context) Poll[T] {
		v, open, ready := rx.TryRecv()
		if ready {
			return Item(v)
		}
		if !open {
			return EOS[T]()
		}
		return Pending[T]()
	})
}
