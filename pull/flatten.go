package pull

// FlatMap applies f to each upstream item, producing a slice whose
// elements are emitted one at a time before the next upstream item is
// pulled. Grounded on the original's `flat_map.rs`/`flatten.rs`: the
// combinator retains the current inner iterator (here, a slice + index)
// as state across polls, boxed by the closure's captured variables
// (Go's garbage collector makes the pin-projection discipline those files
// need for self-referential state a non-issue). A zero-length result
// causes an immediate re-pull of upstream rather than any yielded item,
// per spec.md §4.1's edge case.
func FlatMap[In, Out any](inner Seq[In], f func(In) []Out) Seq[Out] {
	var cur []Out
	idx := 0
	return Func[Out](func(ctx *Context) Poll[Out] {
		for {
			if idx < len(cur) {
				v := cur[idx]
				idx++
				return Item(v)
			}
			p := inner.PollNext(ctx)
			if p.IsPending() {
				return Pending[Out]()
			}
			if p.IsDone() {
				return EOS[Out]()
			}
			v, _ := p.Value()
			cur = f(v)
			idx = 0
		}
	})
}

// Flatten flattens a sequence of slices into a sequence of their
// elements, in order. Equivalent to FlatMap with the identity function.
func Flatten[T any](inner Seq[[]T]) Seq[T] {
	return FlatMap(inner, func(v []T) []T { return v })
}
