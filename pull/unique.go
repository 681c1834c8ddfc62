package pull

// Unique emits only the first occurrence of each distinct value, tracking
// what's been seen in a caller-owned set (a plain map). Passing a map
// whose lifespan is state.LifespanTick gives per-tick dedup (spec.md §8
// invariant 5); a map with state.LifespanNone (never reset) gives
// all-time dedup — the dedup window is entirely a property of who owns
// and resets the seen map, not of this operator.
func Unique[T comparable](inner Seq[T], seen map[T]bool) Seq[T] {
	return Func[T](func(ctx *Context) Poll[T] {
		for {
			p := inner.PollNext(ctx)
			if p.IsPending() {
				return Pending[T]()
			}
			if p.IsDone() {
				return EOS[T]()
			}
			v, _ := p.Value()
			if seen[v] {
				continue
			}
			seen[v] = true
			return Item(v)
		}
	})
}
