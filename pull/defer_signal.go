package pull

// DeferSignal buffers upstream items until signal produces at least one
// element, then emits the buffer (in arrival order) followed by every
// subsequent upstream item straight through, with no further buffering.
// Grounded on the original's `defer_signal.rs` three-stage poll: drain
// signal to update signalled, drain the buffer if signalled, then drain
// input (buffering while unsignalled, passing through once signalled).
//
// buf is caller-owned so it can be a state cell when DeferSignal must
// survive across ticks (the Open Question in spec.md §9: persisted items
// remain eligible for release at the next signal after a prior replay).
func DeferSignal[T any](input, signal Seq[T], buf *[]T, signalled *bool) Seq[T] {
	return Func[T](func(ctx *Context) Poll[T] {
		for {
			sp := signal.PollNext(ctx)
			if sp.IsPending() {
				return Pending[T]()
			}
			if sp.IsDone() {
				break
			}
			*signalled = true
		}

		if *signalled && len(*buf) > 0 {
			v := (*buf)[0]
			*buf = (*buf)[1:]
			return Item(v)
		}

		for {
			ip := input.PollNext(ctx)
			if ip.IsPending() {
				return Pending[T]()
			}
			if ip.IsDone() {
				return EOS[T]()
			}
			v, _ := ip.Value()
			if *signalled {
				return Item(v)
			}
			*buf = append(*buf, v)
		}
	})
}
