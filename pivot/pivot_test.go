package pivot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hydro-project/hydro-sub005/pull"
	"github.com/hydro-project/hydro-sub005/sink"
	"github.com/hydro-project/hydro-sub005/wake"
)

type recorderSink[Item any] struct {
	items      []Item
	ready      bool
	closeReady bool
}

func (s *recorderSink[Item]) PollReady(*sink.Context) (bool, error) { return s.ready, nil }
func (s *recorderSink[Item]) StartSend(item Item) error {
	s.items = append(s.items, item)
	return nil
}
func (s *recorderSink[Item]) PollFlush(*sink.Context) (bool, error) { return true, nil }
func (s *recorderSink[Item]) PollClose(*sink.Context) (bool, error) { return s.closeReady, nil }

func TestDrive_PushesEveryItemThenCloses(t *testing.T) {
	seq := pull.FromSlice([]int{1, 2, 3})
	s := &recorderSink[int]{ready: true, closeReady: true}

	pctx := &pull.Context{Waker: wake.Noop}
	sctx := &sink.Context{Waker: wake.Noop}
	var pending int
	var hasPending bool

	done, err := Drive[int](pctx, seq, sctx, s, &pending, &hasPending)
	assert.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, []int{1, 2, 3}, s.items)
}

func TestDrive_HoldsPendingItemAcrossCallsWhenSinkNotReady(t *testing.T) {
	seq := pull.FromSlice([]int{1, 2})
	s := &recorderSink[int]{ready: false, closeReady: true}

	pctx := &pull.Context{Waker: wake.Noop}
	sctx := &sink.Context{Waker: wake.Noop}
	var pending int
	var hasPending bool

	done, err := Drive[int](pctx, seq, sctx, s, &pending, &hasPending)
	assert.NoError(t, err)
	assert.False(t, done)
	assert.Empty(t, s.items)
	assert.True(t, hasPending)
	assert.Equal(t, 1, pending)

	// sink becomes ready: the held item must be sent before anything
	// else is pulled from seq.
	s.ready = true
	done, err = Drive[int](pctx, seq, sctx, s, &pending, &hasPending)
	assert.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, []int{1, 2}, s.items)
	assert.False(t, hasPending)
}

func TestDrive_ReturnsNotDoneOnUpstreamPending(t *testing.T) {
	ch := &pendingOnceChannel{items: []int{1}}
	seq := pull.FromChannel[int](ch)
	s := &recorderSink[int]{ready: true, closeReady: true}

	pctx := &pull.Context{Waker: wake.Noop}
	sctx := &sink.Context{Waker: wake.Noop}
	var pending int
	var hasPending bool

	done, err := Drive[int](pctx, seq, sctx, s, &pending, &hasPending)
	assert.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, []int{1}, s.items)
}

type pendingOnceChannel struct {
	items []int
}

func (c *pendingOnceChannel) TryRecv() (int, bool, bool) {
	if len(c.items) == 0 {
		return 0, true, false
	}
	v := c.items[0]
	c.items = c.items[1:]
	return v, true, true
}

// PollClose not yet ready must not spin: Drive reports not-done and a
// later call (seq fused at Done) retries the close exactly once more.
func TestDrive_RetriesCloseOnNextCallWithoutSpinning(t *testing.T) {
	seq := pull.FromSlice([]int{1})
	s := &recorderSink[int]{ready: true, closeReady: false}

	pctx := &pull.Context{Waker: wake.Noop}
	sctx := &sink.Context{Waker: wake.Noop}
	var pending int
	var hasPending bool

	done, err := Drive[int](pctx, seq, sctx, s, &pending, &hasPending)
	assert.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, []int{1}, s.items)

	s.closeReady = true
	done, err = Drive[int](pctx, seq, sctx, s, &pending, &hasPending)
	assert.NoError(t, err)
	assert.True(t, done)
}
