package pull

// Fold accumulates every upstream item into accum via combine, draining
// inner to Done before emitting. Grounded on the original's `fold.rs`:
// the accumulator lives in the caller's state cell (passed by pointer) so
// its lifespan — carried across ticks or reset — is entirely the state
// registry's concern, not this operator's. Exactly one item (a snapshot
// of *accum, via clone) is emitted once inner reaches Done; afterward
// Fold is permanently Done too, per the fuse invariant.
//
// clone must return an independent copy of *accum suitable for emission
// — for value types (ints, strings, structs of them) `func(a T) T { return a }`
// suffices; for types containing slices/maps the caller must deep-copy.
func Fold[In, Accum any](inner Seq[In], accum *Accum, combine func(*Accum, In), clone func(Accum) Accum) Seq[Accum] {
	done := false
	return Func[Accum](func(ctx *Context) Poll[Accum] {
		if done {
			return EOS[Accum]()
		}
		for {
			p := inner.PollNext(ctx)
			if p.IsPending() {
				return Pending[Accum]()
			}
			if p.IsDone() {
				done = true
				return Item(clone(*accum))
			}
			v, _ := p.Value()
			combine(accum, v)
		}
	})
}

// Reduce is Fold with no initial value: the first upstream item seeds the
// accumulator; Reduce emits nothing (Done with no prior Item) if inner
// produced no items at all, per spec.md §4.1 / §8 invariant 4. accum
// starts nil-equivalent via the hasValue flag rather than a pointer, so
// callers don't need a sentinel "empty" T.
func Reduce[T any](inner Seq[T], combine func(*T, T), clone func(T) T) Seq[T] {
	done := false
	var accum T
	hasValue := false
	return Func[T](func(ctx *Context) Poll[T] {
		if done {
			return EOS[T]()
		}
		for {
			p := inner.PollNext(ctx)
			if p.IsPending() {
				return Pending[T]()
			}
			if p.IsDone() {
				done = true
				if !hasValue {
					return EOS[T]()
				}
				return Item(clone(accum))
			}
			v, _ := p.Value()
			if !hasValue {
				accum = v
				hasValue = true
			} else {
				combine(&accum, v)
			}
		}
	})
}

// KV is a key/value pair, the item type FoldKeyed and ReduceKeyed operate
// on and emit.
type KV[K comparable, V any] struct {
	Key K
	Val V
}

// FoldKeyed maintains a K -> Accum mapping in accums (a state-cell-backed
// map), folding each upstream (K, V) into its key's accumulator via
// combine (initializing missing keys with init). On upstream Done it
// emits every (K, Accum) pair in the map, in the Go map iteration order
// (arbitrary, per spec.md's explicit "key ordering on output is
// intentionally unspecified"), then reports Done itself.
func FoldKeyed[K comparable, V, Accum any](inner Seq[KV[K, V]], accums map[K]Accum, init func() Accum, combine func(*Accum, V)) Seq[KV[K, Accum]] {
	draining := false
	var keys []K
	idx := 0
	return Func[KV[K, Accum]](func(ctx *Context) Poll[KV[K, Accum]] {
		if draining {
			if idx >= len(keys) {
				return EOS[KV[K, Accum]]()
			}
			k := keys[idx]
			idx++
			return Item(KV[K, Accum]{Key: k, Val: accums[k]})
		}
		for {
			p := inner.PollNext(ctx)
			if p.IsPending() {
				return Pending[KV[K, Accum]]()
			}
			if p.IsDone() {
				draining = true
				keys = make([]K, 0, len(accums))
				for k := range accums {
					keys = append(keys, k)
				}
				if idx >= len(keys) {
					return EOS[KV[K, Accum]]()
				}
				k := keys[idx]
				idx++
				return Item(KV[K, Accum]{Key: k, Val: accums[k]})
			}
			kv, _ := p.Value()
			a, ok := accums[kv.Key]
			if !ok {
				a = init()
			}
			combine(&a, kv.Val)
			accums[kv.Key] = a
		}
	})
}

// ReduceKeyed is FoldKeyed with no per-key initial value: a key's first
// occurrence seeds its accumulator directly from the incoming V (combine
// is not called for it); later occurrences of the same key fold via
// combine. seen tracks which keys in accums have been initialized versus
// merely present from a prior tick's carried-over state.
func ReduceKeyed[K comparable, V any](inner Seq[KV[K, V]], accums map[K]V, seen map[K]bool, combine func(*V, V)) Seq[KV[K, V]] {
	draining := false
	var keys []K
	idx := 0
	return Func[KV[K, V]](func(ctx *Context) Poll[KV[K, V]] {
		if draining {
			if idx >= len(keys) {
				return EOS[KV[K, V]]()
			}
			k := keys[idx]
			idx++
			return Item(KV[K, V]{Key: k, Val: accums[k]})
		}
		for {
			p := inner.PollNext(ctx)
			if p.IsPending() {
				return Pending[KV[K, V]]()
			}
			if p.IsDone() {
				draining = true
				keys = make([]K, 0, len(accums))
				for k := range accums {
					keys = append(keys, k)
				}
				if idx >= len(keys) {
					return EOS[KV[K, V]]()
				}
				k := keys[idx]
				idx++
				return Item(KV[K, V]{Key: k, Val: accums[k]})
			}
			kv, _ := p.Value()
			if seen[kv.Key] {
				a := accums[kv.Key]
				combine(&a, kv.Val)
				accums[kv.Key] = a
			} else {
				accums[kv.Key] = kv.Val
				seen[kv.Key] = true
			}
		}
	})
}
