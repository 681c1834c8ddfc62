// Package graph assembles handoffs, subgraphs, and state cells into a
// runnable Dfir instance and implements its tick/stratum scheduler loop
// (spec.md §4.5, §4.6).
package graph

import (
	"sync"
	"time"

	"github.com/hydro-project/hydro-sub005/dlog"
	"github.com/hydro-project/hydro-sub005/sched"
	"github.com/hydro-project/hydro-sub005/state"
)

// Dfir is a built, runnable dataflow instance. Not safe for concurrent
// use from multiple goroutines except for the external-event path:
// Waker values handed out to subgraphs may be woken from any goroutine,
// but Tick/Run/Metrics must be called from a single caller goroutine at a
// time. Tick rejects an overlapping call through a reentrancy flag
// (ErrReentrantTick); Metrics has no such guard.
type Dfir struct {
	handoffs   []handle
	downstream [][]sched.SubgraphID
	subgraphs  []subgraphRecord
	state      *state.Registry
	ready      *sched.ReadyQueue
	events     *sched.EventQueue
	numStrata  sched.Stratum
	opts       *runtimeOptions

	tick    uint64
	running bool
	stopped bool
	mu      sync.Mutex // guards running/stopped only
}

// State returns the runtime's shared state registry.
func (g *Dfir) State() *state.Registry { return g.state }

// CurrentTick returns the current tick counter.
func (g *Dfir) CurrentTick() uint64 { return g.tick }

// Stop marks the runtime stopped; subsequent Tick/Run calls return
// ErrRuntimeStopped. Dropping all references works too (there is no
// other cleanup); Stop exists so a caller sharing a Dfir across
// goroutines can signal termination explicitly.
func (g *Dfir) Stop() {
	g.mu.Lock()
	g.stopped = true
	g.mu.Unlock()
}

// ScheduleInitial pushes subgraph id into the ready queue for its own
// stratum, for use before the first Tick — a graph with no input
// handoffs would otherwise never run anything.
func (g *Dfir) ScheduleInitial(id sched.SubgraphID) {
	g.ready.Push(g.subgraphs[id].stratum, id)
}

// SendExternal enqueues an external wake event for subgraph id, safe to
// call from any goroutine — the same effect as that subgraph's own
// sched.Waker.Wake.
func (g *Dfir) SendExternal(id sched.SubgraphID) {
	g.events.Send(sched.Event{Subgraph: id, External: true})
}

// Tick runs the tick algorithm from spec.md §4.5 to fixpoint: subgraphs
// execute in increasing stratum order, a stratum is revisited as long as
// it has pending work, stratum-lifespan hooks fire once a stratum is
// fully drained, tick-lifespan hooks fire once every stratum is drained,
// and finally pending external events are drained into the ready queue
// for the next Tick call.
func (g *Dfir) Tick() error {
	g.mu.Lock()
	if g.stopped {
		g.mu.Unlock()
		return ErrRuntimeStopped
	}
	if g.running {
		g.mu.Unlock()
		return ErrReentrantTick
	}
	g.running = true
	g.mu.Unlock()
	defer func() {
		g.mu.Lock()
		g.running = false
		g.mu.Unlock()
	}()

	g.logTickBoundary("tick_start")

	for g.anyScheduled() {
		for s := sched.Stratum(0); s < g.numStrata; s++ {
			for {
				id, ok := g.ready.PopStratum(s)
				if !ok {
					break
				}
				if err := g.runSubgraph(id); err != nil {
					g.mu.Lock()
					g.stopped = true
					g.mu.Unlock()
					return err
				}
			}
			g.state.RunStratumHooks()
		}
	}
	g.state.RunTickHooks()
	g.tick++
	g.drainExternalEvents()

	g.logTickBoundary("tick_end")
	return nil
}

// Run calls Tick in a loop until stop returns true, sleeping idle for
// idleWait between ticks that produced no work (avoiding a busy spin
// while waiting on external wakeups). Intended for a long-running
// process driving the graph off real external sources; tests typically
// call Tick directly instead.
func (g *Dfir) Run(stop func() bool, idleWait time.Duration) error {
	for !stop() {
		before := g.tick
		if err := g.Tick(); err != nil {
			return err
		}
		if g.tick == before+1 && g.ready.Len() == 0 {
			time.Sleep(idleWait)
		}
	}
	return nil
}

func (g *Dfir) anyScheduled() bool {
	return g.ready.Len() > 0
}

func (g *Dfir) drainExternalEvents() {
	events := g.events.Drain()
	budget := g.opts.tickBudget
	for i, ev := range events {
		if budget > 0 && i >= budget {
			// Over budget for this tick: re-enqueue the remainder rather
			// than dropping it, so a woken subgraph is only deferred to
			// a later tick, never forgotten (spec.md §4.5/§2's wakeup
			// protocol guarantees a wakeup is eventually observed).
			for _, rest := range events[i:] {
				g.events.Send(rest)
			}
			return
		}
		g.ready.Push(g.subgraphs[ev.Subgraph].stratum, ev.Subgraph)
	}
}

func (g *Dfir) runSubgraph(id sched.SubgraphID) error {
	rec := &g.subgraphs[id]

	for _, hid := range rec.recv {
		g.handoffs[hid].BorrowSwap()
	}

	waker := sched.NewWaker(id, g.events)
	ctx := &OpContext{Waker: waker, Tick: g.tick, Stratum: rec.stratum, Subgraph: id, State: g.state}

	start := g.opts.clock()
	run := rec.build(ctx)
	err := run()
	rec.runCount++
	rec.pollDuration += int64(g.opts.clock().Sub(start))
	if err != nil {
		return err
	}

	for _, hid := range rec.send {
		if !g.handoffs[hid].IsBottom() {
			for _, consumer := range g.downstream[hid] {
				g.ready.Push(g.subgraphs[consumer].stratum, consumer)
			}
		}
	}
	return nil
}

func (g *Dfir) logTickBoundary(msg string) {
	if !g.opts.logger.IsEnabled(dlog.LevelDebug) {
		return
	}
	g.opts.logger.Log(dlog.Entry{
		Level:     dlog.LevelDebug,
		Category:  "scheduler",
		Message:   msg,
		Tick:      g.tick,
		Stratum:   -1,
		Subgraph:  -1,
		Handoff:   -1,
		Timestamp: g.opts.clock(),
	})
}
