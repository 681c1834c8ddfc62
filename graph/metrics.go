package graph

import "time"

// Metrics is a point-in-time snapshot of runtime statistics, grounded on
// the original's scheduled/metrics.rs DfirMetrics view type (SPEC_FULL.md
// supplement C.5): per-subgraph poll counts/durations and per-handoff
// item counts, exposed for telemetry only — not part of scheduling
// semantics (spec.md §6, "Inspection").
type Metrics struct {
	Subgraphs []SubgraphMetrics
	Handoffs  []HandoffMetrics
}

// SubgraphMetrics reports one subgraph's cumulative run statistics.
type SubgraphMetrics struct {
	Name         string
	Stratum      int
	RunCount     uint64
	PollDuration time.Duration
}

// HandoffMetrics reports one handoff's current backlog depth. The
// original additionally tracks cumulative items read; this module tracks
// only the live input-side depth, since Handoff itself does not retain a
// read counter across BorrowSwap/TakeInner — a caller wanting cumulative
// counts can sum RunCount-correlated Len snapshots via WithLogger instead.
type HandoffMetrics struct {
	ID      HandoffID
	Pending int
}

// Metrics returns a snapshot of every subgraph and handoff's current
// counters. Only meaningful when the Dfir was built with WithMetrics(true)
// — without it, counts are still tracked (the bookkeeping is cheap) but
// callers should not rely on Metrics being populated for instances built
// without the option, since a future version may skip the bookkeeping
// entirely when disabled.
func (g *Dfir) Metrics() Metrics {
	m := Metrics{
		Subgraphs: make([]SubgraphMetrics, len(g.subgraphs)),
		Handoffs:  make([]HandoffMetrics, len(g.handoffs)),
	}
	for i, rec := range g.subgraphs {
		m.Subgraphs[i] = SubgraphMetrics{
			Name:         rec.name,
			Stratum:      int(rec.stratum),
			RunCount:     rec.runCount,
			PollDuration: time.Duration(rec.pollDuration),
		}
	}
	for i, h := range g.handoffs {
		pending := 0
		if lp, ok := h.(interface{ Len() int }); ok {
			pending = lp.Len()
		}
		m.Handoffs[i] = HandoffMetrics{ID: HandoffID(i), Pending: pending}
	}
	return m
}
