package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hydro-project/hydro-sub005/pivot"
	"github.com/hydro-project/hydro-sub005/pull"
	"github.com/hydro-project/hydro-sub005/sink"
	"github.com/hydro-project/hydro-sub005/state"
)

// fakeChannel is a test double implementing pull.Channel[int]: items are
// queued by the test, TryRecv drains them non-blockingly, closed flips
// open to false once drained.
type fakeChannel struct {
	items  []int
	closed bool
}

func (c *fakeChannel) send(v int) { c.items = append(c.items, v) }

func (c *fakeChannel) TryRecv() (int, bool, bool) {
	if len(c.items) == 0 {
		if c.closed {
			return 0, false, false
		}
		return 0, true, false
	}
	v := c.items[0]
	c.items = c.items[1:]
	return v, true, true
}

func TestScenario_E1_FoldStaticLifespanAcrossTicks(t *testing.T) {
	b := NewBuilder()
	rx := &fakeChannel{}
	accumID := state.Add(b.State(), 0, state.LifespanNone)

	var emitted []int
	sg := AddSubgraph(b, "fold_static", 0, nil, nil, func(ctx *OpContext) RunFunc {
		accum := state.Get(ctx.State, accumID)
		seq := pull.Fold[int, int](pull.FromChannel[int](rx), accum, func(a *int, v int) { *a += v }, func(v int) int { return v })
		s := &sink.ForEach[int]{F: func(v int) { emitted = append(emitted, v) }}
		var pending int
		var hasPending bool
		return func() error {
			pctx := &pull.Context{Waker: ctx.Waker}
			sctx := &sink.Context{Waker: ctx.Waker}
			_, err := pivot.Drive(pctx, seq, sctx, s, &pending, &hasPending)
			return err
		}
	})

	g, err := Build(b)
	assert.NoError(t, err)

	rx.send(1)
	rx.send(2)
	rx.send(3)
	rx.closed = true
	g.ScheduleInitial(sg)
	assert.NoError(t, g.Tick())
	assert.Equal(t, []int{6}, emitted)

	// Tick 2: reopen the channel (Fold's *accum carries forward since
	// LifespanNone means no reset hook runs between ticks).
	rx.closed = false
	rx.send(4)
	rx.closed = true
	g.ScheduleInitial(sg)
	assert.NoError(t, g.Tick())
	assert.Equal(t, []int{6, 10}, emitted)
}

func TestScenario_E2_FoldTickLifespanResets(t *testing.T) {
	b := NewBuilder()
	rx := &fakeChannel{}
	accumID := state.Add(b.State(), 0, state.LifespanTick)
	state.SetResetFunc(b.State(), accumID, func(v *int) { *v = 0 })

	var emitted []int
	sg := AddSubgraph(b, "fold_tick", 0, nil, nil, func(ctx *OpContext) RunFunc {
		accum := state.Get(ctx.State, accumID)
		seq := pull.Fold[int, int](pull.FromChannel[int](rx), accum, func(a *int, v int) { *a += v }, func(v int) int { return v })
		s := &sink.ForEach[int]{F: func(v int) { emitted = append(emitted, v) }}
		var pending int
		var hasPending bool
		return func() error {
			pctx := &pull.Context{Waker: ctx.Waker}
			sctx := &sink.Context{Waker: ctx.Waker}
			_, err := pivot.Drive(pctx, seq, sctx, s, &pending, &hasPending)
			return err
		}
	})

	g, err := Build(b)
	assert.NoError(t, err)

	rx.send(1)
	rx.send(2)
	rx.send(3)
	rx.closed = true
	g.ScheduleInitial(sg)
	assert.NoError(t, g.Tick())
	assert.Equal(t, []int{6}, emitted)

	rx.closed = false
	rx.send(4)
	rx.closed = true
	g.ScheduleInitial(sg)
	assert.NoError(t, g.Tick())
	assert.Equal(t, []int{6, 4}, emitted)
}
