package pull

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// SortByKey buffers every upstream item; once inner reports Done it
// stably sorts the buffer by key (ascending, per constraints.Ordered) and
// emits items in that order. Until inner is exhausted, SortByKey only
// ever returns Pending (if inner does) or keeps draining — it never
// emits early, per spec.md §4.1 and the original's `sort_by_key.rs`
// Accumulating/Emitting state split.
func SortByKey[T any, K constraints.Ordered](inner Seq[T], key func(T) K) Seq[T] {
	return SortByLess(inner, func(a, b T) bool { return key(a) < key(b) })
}

// SortByLess is SortByKey generalized to an arbitrary less function, for
// keys that aren't one of Go's ordered primitive types.
func SortByLess[T any](inner Seq[T], less func(a, b T) bool) Seq[T] {
	var accum []T
	emitting := false
	idx := 0
	return Func[T](func(ctx *Context) Poll[T] {
		if !emitting {
			for {
				p := inner.PollNext(ctx)
				if p.IsPending() {
					return Pending[T]()
				}
				if p.IsDone() {
					break
				}
				v, _ := p.Value()
				accum = append(accum, v)
			}
			sort.SliceStable(accum, func(i, j int) bool { return less(accum[i], accum[j]) })
			emitting = true
		}
		if idx >= len(accum) {
			return EOS[T]()
		}
		v := accum[idx]
		idx++
		return Item(v)
	})
}
