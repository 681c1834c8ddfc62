package pull

// Map applies f to every item of inner, pointwise. Pending and Done are
// forwarded unchanged.
func Map[In, Out any](inner Seq[In], f func(In) Out) Seq[Out] {
	return Func[Out](func(ctx *Context) Poll[Out] {
		p := inner.PollNext(ctx)
		if p.IsPending() {
			return Pending[Out]()
		}
		if p.IsDone() {
			return EOS[Out]()
		}
		v, _ := p.Value()
		return Item(f(v))
	})
}

// Filter keeps only items for which pred returns true, re-polling inner
// until an item passes, Pending is seen, or inner is Done.
func Filter[T any](inner Seq[T], pred func(T) bool) Seq[T] {
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
			if pred(v) {
				return Item(v)
			}
		}
	})
}

// FilterMap applies f to every item, keeping it only if f's second return
// value is true — equivalently, Filter and Map fused into one pass.
func FilterMap[In, Out any](inner Seq[In], f func(In) (Out, bool)) Seq[Out] {
	return Func[Out](func(ctx *Context) Poll[Out] {
		for {
			p := inner.PollNext(ctx)
			if p.IsPending() {
				return Pending[Out]()
			}
			if p.IsDone() {
				return EOS[Out]()
			}
			v, _ := p.Value()
			if out, ok := f(v); ok {
				return Item(out)
			}
		}
	})
}

// Inspect calls f with each item as it passes through, for side effects
// (logging, metrics) without altering the sequence.
func Inspect[T any](inner Seq[T], f func(T)) Seq[T] {
	return Func[T](func(ctx *Context) Poll[T] {
		p := inner.PollNext(ctx)
		if p.IsPending() {
			return Pending[T]()
		}
		if p.IsDone() {
			return EOS[T]()
		}
		v, _ := p.Value()
		f(v)
		return Item(v)
	})
}
