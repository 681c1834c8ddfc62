package pull

// ZPair is the item ZipPersist emits: one item from each side, paired.
type ZPair[A, B any] struct {
	A A
	B B
}

// ZipPersist pairs two fused streams, holding either side's overflow in a
// per-side deque (dq1, dq2 — caller-owned so they can survive across
// ticks) so a later poll can consume a previously-held element against a
// newly arriving partner. Grounded on the original's `zip_persist.rs`
// four-way poll matrix: deque-drain fast path first, then per-combination
// handling of (Ready/Ready, Ready/Pending, Ready/Done, Pending/Pending,
// Pending/Done, Done/Done).
func ZipPersist[A, B any](sa Seq[A], sb Seq[B], dq1 *[]A, dq2 *[]B) Seq[ZPair[A, B]] {
	doneA, doneB := false, false
	return Func[ZPair[A, B]](func(ctx *Context) Poll[ZPair[A, B]] {
		if len(*dq1) > 0 && len(*dq2) > 0 {
			a := (*dq1)[0]
			*dq1 = (*dq1)[1:]
			b := (*dq2)[0]
			*dq2 = (*dq2)[1:]
			return Item(ZPair[A, B]{A: a, B: b})
		}

		for {
			var pa Poll[A]
			if doneA {
				pa = EOS[A]()
			} else {
				pa = sa.PollNext(ctx)
				if pa.IsDone() {
					doneA = true
				}
			}
			var pb Poll[B]
			if doneB {
				pb = EOS[B]()
			} else {
				pb = sb.PollNext(ctx)
				if pb.IsDone() {
					doneB = true
				}
			}

			switch {
			case pa.IsDone() && pb.IsDone():
				return EOS[ZPair[A, B]]()
			case pa.IsPending() && pb.IsPending():
				return Pending[ZPair[A, B]]()
			case pa.IsDone() && pb.IsPending():
				return Pending[ZPair[A, B]]()
			case pa.IsPending() && pb.IsDone():
				return Pending[ZPair[A, B]]()
			default:
				av, aok := pa.Value()
				bv, bok := pb.Value()
				if aok && bok {
					return Item(ZPair[A, B]{A: av, B: bv})
				}
				if aok {
					if len(*dq2) > 0 {
						b := (*dq2)[0]
						*dq2 = (*dq2)[1:]
						return Item(ZPair[A, B]{A: av, B: b})
					}
					*dq1 = append(*dq1, av)
					continue
				}
				// bok
				if len(*dq1) > 0 {
					a := (*dq1)[0]
					*dq1 = (*dq1)[1:]
					return Item(ZPair[A, B]{A: a, B: bv})
				}
				*dq2 = append(*dq2, bv)
				continue
			}
		}
	})
}
