package pull

// LatticeFoldBatch accumulates upstream items into lattice by merge (a
// monotonic join) and emits the current joined value exactly once a
// companion signal stream produces at least one element, then reports
// Done. Signal and data stream are polled together, signal first each
// call (so a signal that arrives alongside the final data items is still
// observed), until signal reaches Done. Grounded on the original's
// `lattice_fold_batch.rs` Streaming/Done state split.
func LatticeFoldBatch[T, L any](input Seq[T], signal Seq[any], lattice *L, merge func(*L, T)) Seq[L] {
	done := false
	signalled := false
	return Func[L](func(ctx *Context) Poll[L] {
		if done {
			return EOS[L]()
		}
		for {
			sp := signal.PollNext(ctx)
			if sp.IsPending() {
				return Pending[L]()
			}
			if sp.IsDone() {
				break
			}
			signalled = true
		}

		for {
			ip := input.PollNext(ctx)
			if ip.IsPending() {
				return Pending[L]()
			}
			if ip.IsDone() {
				break
			}
			v, _ := ip.Value()
			merge(lattice, v)
		}

		done = true
		if !signalled {
			return EOS[L]()
		}
		return Item(*lattice)
	})
}
