package pull

// Persist stores every upstream item into buf (a state-cell-owned slice)
// and replays the entire buffer, in insertion order, before polling fresh
// upstream items. replayIdx tracks how much of the buffer has already
// been emitted this tick/run; when buf is not cleared between runs (a
// LifespanNone or LifespanStratum-surviving cell), the next run's replay
// starts by re-emitting everything stored so far — the "replay" that
// gives the operator its name. Grounded on the original's `persist.rs`.
//
// buf and replayIdx are both caller-owned (state cells) so their
// lifespans are configured by whoever builds this operator, not by
// Persist itself: a LifespanTick buf (and its replayIdx reset to 0 on the
// same boundary) gives "this tick only" persistence, while LifespanNone
// gives "forever" replay — spec.md §4.1's Persist contract, parameterized.
func Persist[T any](inner Seq[T], buf *[]T, replayIdx *int) Seq[T] {
	return Func[T](func(ctx *Context) Poll[T] {
		if *replayIdx < len(*buf) {
			v := (*buf)[*replayIdx]
			*replayIdx++
			return Item(v)
		}
		p := inner.PollNext(ctx)
		if p.IsPending() {
			return Pending[T]()
		}
		if p.IsDone() {
			return EOS[T]()
		}
		v, _ := p.Value()
		*buf = append(*buf, v)
		*replayIdx++
		return Item(v)
	})
}

// Delta is a PersistMut input item: a positive or negative multiplicity
// change to value Val.
type Delta[T any] struct {
	Val      T
	Positive bool
}

// PersistMut replays the current multiset described by a stream of
// (+value, -value) deltas: multiset is a state-cell-owned count map,
// updated in place as deltas arrive, and replayed (one Item per unit of
// remaining multiplicity) on every run exactly like Persist replays a
// plain buffer. Grounded on the original's `persist_mut.rs`.
func PersistMut[T comparable](inner Seq[Delta[T]], multiset map[T]int) Seq[T] {
	var replay []T
	replayIdx := 0
	rebuilt := false
	return Func[T](func(ctx *Context) Poll[T] {
		if !rebuilt {
			replay = replay[:0]
			for v, n := range multiset {
				for i := 0; i < n; i++ {
					replay = append(replay, v)
				}
			}
			replayIdx = 0
			rebuilt = true
		}
		if replayIdx < len(replay) {
			v := replay[replayIdx]
			replayIdx++
			return Item(v)
		}
		p := inner.PollNext(ctx)
		if p.IsPending() {
			return Pending[T]()
		}
		if p.IsDone() {
			return EOS[T]()
		}
		d, _ := p.Value()
		if d.Positive {
			multiset[d.Val]++
		} else {
			multiset[d.Val]--
			if multiset[d.Val] <= 0 {
				delete(multiset, d.Val)
			}
		}
		return Item(d.Val)
	})
}
