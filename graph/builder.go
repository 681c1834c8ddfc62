package graph

import (
	"errors"
	"fmt"

	"github.com/hydro-project/hydro-sub005/handoff"
	"github.com/hydro-project/hydro-sub005/sched"
	"github.com/hydro-project/hydro-sub005/state"
)

// OpContext is passed to a subgraph's BuildFn each time it runs: the
// per-subgraph waker (bound to this subgraph's id, safe to hand to any
// external async source), the current tick, and the stratum the subgraph
// is running in.
type OpContext struct {
	Waker    sched.Waker
	Tick     uint64
	Stratum  sched.Stratum
	Subgraph sched.SubgraphID
	State    *state.Registry
}

// RunFunc is produced fresh by a subgraph's BuildFn each run and, when
// called, drives that subgraph's operator tree to completion for this
// tick — i.e. until its root pull sequence reports EOS or Pending. A
// RunFunc that returns a nil error has done everything it can this tick;
// the scheduler does not call it again until the subgraph is
// rescheduled. A non-nil error aborts the tick and is returned from
// Dfir.Tick, per spec.md §7's operator-error propagation policy.
type RunFunc func() error

// BuildFn constructs a subgraph's operator tree bound to the ports it was
// registered with (captured by closure at AddSubgraph time) and the
// per-run OpContext, returning the RunFunc that drives it.
type BuildFn func(ctx *OpContext) RunFunc

type subgraphRecord struct {
	name    string
	stratum sched.Stratum
	recv    []HandoffID
	send    []HandoffID
	build   BuildFn

	runCount     uint64
	pollDuration int64 // nanoseconds, accumulated
}

// Builder assembles handoffs, subgraphs, and state into a runnable Dfir.
// Not safe for concurrent use.
type Builder struct {
	handoffs   []handle
	downstream [][]sched.SubgraphID // indexed by HandoffID
	connected  []bool

	subgraphs []subgraphRecord
	producers map[HandoffID]sched.SubgraphID

	state *state.Registry
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		producers: make(map[HandoffID]sched.SubgraphID),
		state:     state.NewRegistry(),
	}
}

// State returns the state registry shared by every subgraph built from
// this Builder (and, later, the finished Dfir). Operators obtain their
// state.ID values from here at build time.
func (b *Builder) State() *state.Registry { return b.state }

func (b *Builder) register(h handle) HandoffID {
	id := HandoffID(len(b.handoffs))
	b.handoffs = append(b.handoffs, h)
	b.downstream = append(b.downstream, nil)
	b.connected = append(b.connected, true)
	return id
}

// AddHandoff registers a new plain handoff and returns its paired ports,
// already wired to each other.
func AddHandoff[T any](b *Builder) (SendPort[T], RecvPort[T]) {
	h := handoff.New[T]()
	id := b.register(h)
	return SendPort[T]{id: id, h: h}, RecvPort[T]{id: id, h: h}
}

// AddLazyHandoff registers a handoff whose IsBottom always reports true,
// breaking a scheduling cycle between two subgraphs that would otherwise
// wake each other every tick (spec.md §4.3's lazy variant).
func AddLazyHandoff[T any](b *Builder) (SendPort[T], RecvPort[T]) {
	h := handoff.NewLazy[T]()
	id := b.register(h)
	return SendPort[T]{id: id, h: &h.Handoff}, RecvPort[T]{id: id, h: &h.Handoff}
}

// AddTee registers a new fan-out handoff: one producer, any number of
// independently scheduled readers obtained via TeePort.NewReader.
func AddTee[T any](b *Builder) TeePort[T] {
	return TeePort[T]{tee: handoff.NewTee[T]()}
}

// AddSubgraph registers a subgraph in stratum s, reading recv and writing
// send, built fresh each tick by build. Returns the subgraph's id.
func AddSubgraph(b *Builder, name string, s sched.Stratum, recv, send []HandoffID, build BuildFn) sched.SubgraphID {
	id := sched.SubgraphID(len(b.subgraphs))
	b.subgraphs = append(b.subgraphs, subgraphRecord{
		name:    name,
		stratum: s,
		recv:    append([]HandoffID(nil), recv...),
		send:    append([]HandoffID(nil), send...),
		build:   build,
	})
	for _, h := range send {
		b.producers[h] = id
	}
	for _, h := range recv {
		b.downstream[h] = append(b.downstream[h], id)
	}
	return id
}

// Build finalizes the graph, checking completeness, and returns a
// runnable Dfir. Every handoff must have both a producer and a consumer
// named via AddSubgraph's send/recv lists or it is reported as
// unconnected (a dangling port with only one side wired is caught the
// same as one with neither); a subgraph reading a handoff produced by a
// subgraph in a strictly later stratum is reported as a stratum ordering
// violation (spec.md §8, "Build-side properties": "a stratum less than
// one of its dependencies' strata"). A handoff's producer and consumer
// sharing the same stratum is the normal case for a multi-subgraph
// pipeline within one stratum (spec.md §2, §8 invariant 2) and is not a
// violation — the scheduler's intra-stratum fixpoint loop in dfir.go
// exists precisely to re-run such subgraphs until the stratum drains.
func Build(b *Builder, opts ...GraphOption) (*Dfir, error) {
	cfg, err := resolveGraphOptions(opts)
	if err != nil {
		return nil, err
	}

	var diags []error
	for id := range b.handoffs {
		hid := HandoffID(id)
		_, hasProducer := b.producers[hid]
		hasConsumer := len(b.downstream[hid]) > 0
		if !hasProducer || !hasConsumer {
			diags = append(diags, &BuildError{Kind: "unconnected_port", Detail: fmt.Sprintf("handoff %d is missing a producer or consumer (has producer=%v, has consumer=%v)", id, hasProducer, hasConsumer)})
		}
	}
	for consumerID, rec := range b.subgraphs {
		for _, hid := range rec.recv {
			producerID, ok := b.producers[hid]
			if !ok {
				continue
			}
			producerStratum := b.subgraphs[producerID].stratum
			if producerStratum > rec.stratum && int(producerID) != consumerID {
				diags = append(diags, &BuildError{
					Kind:   "stratum_order",
					Detail: fmt.Sprintf("subgraph %q (stratum %d) reads handoff %d produced by %q (stratum %d)", rec.name, rec.stratum, hid, b.subgraphs[producerID].name, producerStratum),
				})
			}
		}
	}
	if len(diags) > 0 {
		return nil, errors.Join(diags...)
	}

	numStrata := sched.Stratum(0)
	for _, rec := range b.subgraphs {
		if rec.stratum+1 > numStrata {
			numStrata = rec.stratum + 1
		}
	}

	g := &Dfir{
		handoffs:   b.handoffs,
		downstream: b.downstream,
		subgraphs:  b.subgraphs,
		state:      b.state,
		ready:      sched.NewReadyQueue(),
		events:     sched.NewEventQueue(),
		numStrata:  numStrata,
		opts:       cfg,
	}
	return g, nil
}
