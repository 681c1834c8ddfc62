package sink

// Map transforms each item with f before forwarding to next. All four
// protocol calls pass straight through.
type Map[In, Out any] struct {
	F    func(In) Out
	Next Sink[Out]
}

func (s *Map[In, Out]) PollReady(ctx *Context) (bool, error) { return s.Next.PollReady(ctx) }
func (s *Map[In, Out]) StartSend(item In) error               { return s.Next.StartSend(s.F(item)) }
func (s *Map[In, Out]) PollFlush(ctx *Context) (bool, error)  { return s.Next.PollFlush(ctx) }
func (s *Map[In, Out]) PollClose(ctx *Context) (bool, error)  { return s.Next.PollClose(ctx) }

// Filter forwards an item to next only if pred accepts it; a rejected
// item is simply dropped (StartSend still succeeds, since the contract
// promises the item was accepted by this sink, just not propagated).
type Filter[Item any] struct {
	Pred func(Item) bool
	Next Sink[Item]
}

func (s *Filter[Item]) PollReady(ctx *Context) (bool, error) { return s.Next.PollReady(ctx) }
func (s *Filter[Item]) StartSend(item Item) error {
	if !s.Pred(item) {
		return nil
	}
	return s.Next.StartSend(item)
}
func (s *Filter[Item]) PollFlush(ctx *Context) (bool, error) { return s.Next.PollFlush(ctx) }
func (s *Filter[Item]) PollClose(ctx *Context) (bool, error) { return s.Next.PollClose(ctx) }

// FilterMap fuses Filter and Map: f's second return decides whether the
// transformed item reaches next.
type FilterMap[In, Out any] struct {
	F    func(In) (Out, bool)
	Next Sink[Out]
}

func (s *FilterMap[In, Out]) PollReady(ctx *Context) (bool, error) { return s.Next.PollReady(ctx) }
func (s *FilterMap[In, Out]) StartSend(item In) error {
	out, ok := s.F(item)
	if !ok {
		return nil
	}
	return s.Next.StartSend(out)
}
func (s *FilterMap[In, Out]) PollFlush(ctx *Context) (bool, error) { return s.Next.PollFlush(ctx) }
func (s *FilterMap[In, Out]) PollClose(ctx *Context) (bool, error) { return s.Next.PollClose(ctx) }

// Inspect calls f with each item for side effects, then forwards it
// unchanged to next.
type Inspect[Item any] struct {
	F    func(Item)
	Next Sink[Item]
}

func (s *Inspect[Item]) PollReady(ctx *Context) (bool, error) { return s.Next.PollReady(ctx) }
func (s *Inspect[Item]) StartSend(item Item) error {
	s.F(item)
	return s.Next.StartSend(item)
}
func (s *Inspect[Item]) PollFlush(ctx *Context) (bool, error) { return s.Next.PollFlush(ctx) }
func (s *Inspect[Item]) PollClose(ctx *Context) (bool, error) { return s.Next.PollClose(ctx) }
