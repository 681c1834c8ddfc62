package pull

// CrossSingleton pairs every item of items with a single cached value
// from singleton: the first time singleton produces a value it is stashed
// in cache (a state cell, *S, nil until filled) and cloned onto every
// subsequent main-stream item. If singleton reaches Done before ever
// producing a value, CrossSingleton immediately reports Done — no output
// for any main item, per spec.md §8 invariant 8. Per supplemented feature
// C.2, once items reaches Done the combinator fuses directly without
// re-checking singleton (it never will again, since items driving the
// join is what's exhausted).
func CrossSingleton[Item, S any](items Seq[Item], singleton Seq[S], cache **S) Seq[KV2[Item, S]] {
	return Func[KV2[Item, S]](func(ctx *Context) Poll[KV2[Item, S]] {
		if *cache == nil {
			sp := singleton.PollNext(ctx)
			if sp.IsPending() {
				return Pending[KV2[Item, S]]()
			}
			if sp.IsDone() {
				return EOS[KV2[Item, S]]()
			}
			v, _ := sp.Value()
			*cache = &v
		}

		ip := items.PollNext(ctx)
		if ip.IsPending() {
			return Pending[KV2[Item, S]]()
		}
		if ip.IsDone() {
			return EOS[KV2[Item, S]]()
		}
		v, _ := ip.Value()
		return Item(KV2[Item, S]{A: v, B: **cache})
	})
}

// KV2 is the pair CrossSingleton emits: one main-stream item alongside
// the cached singleton value.
type KV2[A, B any] struct {
	A A
	B B
}
