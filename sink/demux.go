package sink

import "fmt"

// Keyed is the item DemuxMap and LazyDemuxSink dispatch: a key selecting
// the child sink, paired with the payload.
type Keyed[K comparable, V any] struct {
	Key K
	Val V
}

// DemuxMap routes item.Val to Sinks[item.Key], panicking on an unknown
// key per spec.md §4.2 ("panics on missing key"). Readiness/flush/close
// and-join every child sink, matching Unzip and spec.md §8 invariant 9.
type DemuxMap[K comparable, V any] struct {
	Sinks map[K]Sink[V]
}

func (s *DemuxMap[K, V]) PollReady(ctx *Context) (bool, error) { return demuxAndJoin(s.Sinks, ctx, pollReady[V]) }
func (s *DemuxMap[K, V]) PollFlush(ctx *Context) (bool, error) { return demuxAndJoin(s.Sinks, ctx, pollFlush[V]) }
func (s *DemuxMap[K, V]) PollClose(ctx *Context) (bool, error) { return demuxAndJoin(s.Sinks, ctx, pollClose[V]) }

func (s *DemuxMap[K, V]) StartSend(item Keyed[K, V]) error {
	child, ok := s.Sinks[item.Key]
	if !ok {
		panic(fmt.Sprintf("sink: DemuxMap has no child sink for key %v", item.Key))
	}
	return child.StartSend(item.Val)
}

func pollReady[V any](s Sink[V], ctx *Context) (bool, error) { return s.PollReady(ctx) }
func pollFlush[V any](s Sink[V], ctx *Context) (bool, error) { return s.PollFlush(ctx) }
func pollClose[V any](s Sink[V], ctx *Context) (bool, error) { return s.PollClose(ctx) }

func demuxAndJoin[K comparable, V any](sinks map[K]Sink[V], ctx *Context, call func(Sink[V], *Context) (bool, error)) (bool, error) {
	ready := true
	var firstErr error
	for _, child := range sinks {
		r, err := call(child, ctx)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		if !r {
			ready = false
		}
	}
	if firstErr != nil {
		return false, firstErr
	}
	return ready, nil
}

// LazyDemuxSink is DemuxMap but creates a child sink on first appearance
// of each key via Factory, rather than requiring every key's sink to be
// pre-registered.
type LazyDemuxSink[K comparable, V any] struct {
	Factory func(K) Sink[V]
	sinks   map[K]Sink[V]
}

func (s *LazyDemuxSink[K, V]) ensure() map[K]Sink[V] {
	if s.sinks == nil {
		s.sinks = make(map[K]Sink[V])
	}
	return s.sinks
}

func (s *LazyDemuxSink[K, V]) PollReady(ctx *Context) (bool, error) {
	return demuxAndJoin(s.ensure(), ctx, pollReady[V])
}
func (s *LazyDemuxSink[K, V]) PollFlush(ctx *Context) (bool, error) {
	return demuxAndJoin(s.ensure(), ctx, pollFlush[V])
}
func (s *LazyDemuxSink[K, V]) PollClose(ctx *Context) (bool, error) {
	return demuxAndJoin(s.ensure(), ctx, pollClose[V])
}

func (s *LazyDemuxSink[K, V]) StartSend(item Keyed[K, V]) error {
	sinks := s.ensure()
	child, ok := sinks[item.Key]
	if !ok {
		child = s.Factory(item.Key)
		sinks[item.Key] = child
	}
	return child.StartSend(item.Val)
}

// DemuxVar is DemuxMap keyed by position in a fixed slice instead of a
// map, for when the key space is a small dense set of indices known at
// build time.
type DemuxVar[V any] struct {
	Sinks []Sink[V]
}

func (s *DemuxVar[V]) PollReady(ctx *Context) (bool, error) { return s.andJoin(ctx, pollReady[V]) }
func (s *DemuxVar[V]) PollFlush(ctx *Context) (bool, error) { return s.andJoin(ctx, pollFlush[V]) }
func (s *DemuxVar[V]) PollClose(ctx *Context) (bool, error) { return s.andJoin(ctx, pollClose[V]) }

func (s *DemuxVar[V]) andJoin(ctx *Context, call func(Sink[V], *Context) (bool, error)) (bool, error) {
	ready := true
	var firstErr error
	for _, child := range s.Sinks {
		r, err := call(child, ctx)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		if !r {
			ready = false
		}
	}
	if firstErr != nil {
		return false, firstErr
	}
	return ready, nil
}

func (s *DemuxVar[V]) StartSend(item Keyed[int, V]) error {
	if item.Key < 0 || item.Key >= len(s.Sinks) {
		panic(fmt.Sprintf("sink: DemuxVar index %d out of range (%d sinks)", item.Key, len(s.Sinks)))
	}
	return s.Sinks[item.Key].StartSend(item.Val)
}

// Tagged is the constraint DemuxEnum places on its item type: a closed sum
// type reporting its variant as a small integer — the Go stand-in for the
// macro-derived enum-variant dispatch table spec.md §4.2 describes (Go has
// no enum-variant derive). DemuxEnum does not call Tag() itself.
type Tagged interface {
	Tag() int
}

// DemuxEnum returns a DemuxVar over sinks for a tag-discriminated item
// type: each Keyed item goes to sinks[item.Key]. Tag() is not consulted,
// so an item whose Key differs from its Val.Tag() goes to sinks[item.Key].
func DemuxEnum[Item Tagged](sinks ...Sink[Item]) Sink[Keyed[int, Item]] {
	return &DemuxVar[Item]{Sinks: sinks}
}
