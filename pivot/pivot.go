// Package pivot implements the pull-to-push drive loop spec.md §9
// describes: a subgraph that must branch from one pull stream into a
// composed sink (ForEach, a Demux tree, and so on) drives the stream by
// repeatedly polling it and pushing each item into the sink, respecting
// the sink's own back-pressure protocol rather than assuming it's always
// ready.
package pivot

import (
	"github.com/hydro-project/hydro-sub005/pull"
	"github.com/hydro-project/hydro-sub005/sink"
)

// Drive polls seq to completion, pushing every item into s via the full
// poll_ready/start_send protocol. It returns once seq reports EOS (after
// flushing and closing s) or Pending (leaving s mid-stream, to be resumed
// by a later call with the same seq/sink pair — callers composing a
// long-lived subgraph should retain both across runs via closures, the
// same way any other stateful operator does).
//
// A pending item (pulled from seq but not yet accepted by s because
// PollReady reported false) is held in pendingItem/hasPending across
// calls, mirroring how FlatMap's sink combinator retains an unsent
// suffix.
//
// An error from the sink's protocol — a user closure failing inside
// TryForEach or similar — aborts the drive immediately and is returned
// to the caller, per spec.md §7's operator-error propagation policy; it
// is not wrapped or swallowed here.
func Drive[Item any](ctx *pull.Context, seq pull.Seq[Item], sctx *sink.Context, s sink.Sink[Item], pendingItem *Item, hasPending *bool) (done bool, err error) {
	if *hasPending {
		ready, err := s.PollReady(sctx)
		if err != nil {
			return false, err
		}
		if !ready {
			return false, nil
		}
		if err := s.StartSend(*pendingItem); err != nil {
			return false, err
		}
		*hasPending = false
	}

	for {
		p := seq.PollNext(ctx)
		if p.IsDone() {
			// One close attempt per call, not a busy spin: seq is
			// fused at Done, so a later Drive call (triggered by the
			// sink's own waker) lands right back here to retry.
			ready, err := s.PollClose(sctx)
			if err != nil {
				return false, err
			}
			if ready {
				return true, nil
			}
			return false, nil
		}
		if p.IsPending() {
			return false, nil
		}
		item, _ := p.Value()

		ready, err := s.PollReady(sctx)
		if err != nil {
			return false, err
		}
		if !ready {
			*pendingItem = item
			*hasPending = true
			return false, nil
		}
		if err := s.StartSend(item); err != nil {
			return false, err
		}
	}
}
