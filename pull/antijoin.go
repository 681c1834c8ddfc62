package pull

// AntiJoin emits items from pos whose key is not present in the set
// accumulated from neg. It is the non-persisted variant (supplemented
// feature C.1 in SPEC_FULL.md, grounded on the original's `anti_join.rs`
// second impl): neg is drained to Done first (so the set is final before
// any pos item is judged), then pos is streamed straight through the
// filter — no positive-side buffering across ticks. negSet is caller-
// owned so its lifespan (typically LifespanTick, matching "this tick's
// negative set") is the state registry's concern.
func AntiJoin[K comparable, V any](pos Seq[KV[K, V]], neg Seq[K], negSet map[K]bool) Seq[KV[K, V]] {
	negDone := false
	return Func[KV[K, V]](func(ctx *Context) Poll[KV[K, V]] {
		if !negDone {
			for {
				np := neg.PollNext(ctx)
				if np.IsPending() {
					return Pending[KV[K, V]]()
				}
				if np.IsDone() {
					negDone = true
					break
				}
				k, _ := np.Value()
				negSet[k] = true
			}
		}
		for {
			pp := pos.PollNext(ctx)
			if pp.IsPending() {
				return Pending[KV[K, V]]()
			}
			if pp.IsDone() {
				return EOS[KV[K, V]]()
			}
			kv, _ := pp.Value()
			if !negSet[kv.Key] {
				return Item(kv)
			}
		}
	})
}

// AntiJoinPersist is AntiJoin with both sides persisted via state cells:
// posBuf/replayIdx replay the positive side across ticks exactly like
// Persist, and negSet accumulates forever (or per whatever lifespan the
// caller gave it). Execution order per spec.md §4.1: drain neg to Done
// first, then replay posBuf (filtering by the now-final negSet), then
// stream fresh pos items — appending every one (matched or not) to
// posBuf so future ticks replay the same decisions, per the original's
// `AntiJoinPersist`.
func AntiJoinPersist[K comparable, V any](pos Seq[KV[K, V]], neg Seq[K], posBuf *[]KV[K, V], replayIdx *int, negSet map[K]bool) Seq[KV[K, V]] {
	negDone := false
	return Func[KV[K, V]](func(ctx *Context) Poll[KV[K, V]] {
		if !negDone {
			for {
				np := neg.PollNext(ctx)
				if np.IsPending() {
					return Pending[KV[K, V]]()
				}
				if np.IsDone() {
					negDone = true
					break
				}
				k, _ := np.Value()
				negSet[k] = true
			}
		}

		for *replayIdx < len(*posBuf) {
			item := (*posBuf)[*replayIdx]
			*replayIdx++
			if !negSet[item.Key] {
				return Item(item)
			}
		}

		for {
			pp := pos.PollNext(ctx)
			if pp.IsPending() {
				return Pending[KV[K, V]]()
			}
			if pp.IsDone() {
				return EOS[KV[K, V]]()
			}
			kv, _ := pp.Value()
			*replayIdx++
			*posBuf = append(*posBuf, kv)
			if !negSet[kv.Key] {
				return Item(kv)
			}
		}
	})
}
