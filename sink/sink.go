// Package sink implements the dataflow runtime's push-combinator library:
// consumers accepting items one at a time, back-pressure expressed via a
// four-phase poll_ready/start_send/poll_flush/poll_close protocol (spec.md
// §4.2). Every composed sink forwards these calls to its inner sink(s) and
// propagates the first error encountered.
package sink

import "github.com/hydro-project/hydro-sub005/wake"

// Context carries the current waker into a poll call, mirroring pull.Context.
type Context struct {
	Waker wake.Waker
}

// Sink is the push contract. All four methods must be callable in the
// sequence poll_ready -> start_send -> {poll_flush | poll_close | more
// start_send}; start_send without a prior Ready poll_ready is a caller
// bug (the original panics; no sink in this package checks for it).
type Sink[Item any] interface {
	// PollReady reports whether StartSend may be called now. ready=false,
	// err=nil means Pending; err!=nil aborts the subgraph run.
	PollReady(ctx *Context) (ready bool, err error)
	// StartSend accepts one item. Must only be called immediately after a
	// true PollReady.
	StartSend(item Item) error
	// PollFlush forces any buffered items downstream.
	PollFlush(ctx *Context) (ready bool, err error)
	// PollClose flushes and terminates the sink.
	PollClose(ctx *Context) (ready bool, err error)
}

// ForEach consumes every item via f; always ready, never errors — the
// simplest possible sink, and the usual terminus of a pivot's drive loop.
type ForEach[Item any] struct {
	F func(Item)
}

func (s *ForEach[Item]) PollReady(*Context) (bool, error) { return true, nil }
func (s *ForEach[Item]) StartSend(item Item) error        { s.F(item); return nil }
func (s *ForEach[Item]) PollFlush(*Context) (bool, error) { return true, nil }
func (s *ForEach[Item]) PollClose(*Context) (bool, error) { return true, nil }

// TryForEach is ForEach but f may fail; the error surfaces from StartSend
// and aborts the subgraph run per spec.md §7's operator-error propagation
// policy.
type TryForEach[Item any] struct {
	F func(Item) error
}

func (s *TryForEach[Item]) PollReady(*Context) (bool, error) { return true, nil }
func (s *TryForEach[Item]) StartSend(item Item) error        { return s.F(item) }
func (s *TryForEach[Item]) PollFlush(*Context) (bool, error) { return true, nil }
func (s *TryForEach[Item]) PollClose(*Context) (bool, error) { return true, nil }
