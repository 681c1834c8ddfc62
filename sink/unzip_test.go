package sink

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hydro-project/hydro-sub005/wake"
)

func TestUnzip_RoutesEachHalfToItsOwnSink(t *testing.T) {
	recA := &recorderSink[int]{ready: true}
	recB := &recorderSink[string]{ready: true}
	s := &Unzip[int, string]{Sink0: recA, Sink1: recB}

	assert.NoError(t, s.StartSend(Pair[int, string]{A: 1, B: "x"}))
	assert.Equal(t, []int{1}, recA.items)
	assert.Equal(t, []string{"x"}, recB.items)
}

func TestUnzip_ReadyOnlyWhenBothChildrenReady(t *testing.T) {
	ctx := &Context{Waker: wake.Noop}
	recA := &recorderSink[int]{ready: true}
	recB := &recorderSink[string]{ready: false}
	s := &Unzip[int, string]{Sink0: recA, Sink1: recB}

	ready, err := s.PollReady(ctx)
	assert.NoError(t, err)
	assert.False(t, ready)

	recB.ready = true
	ready, err = s.PollReady(ctx)
	assert.NoError(t, err)
	assert.True(t, ready)
}

// Both children are polled unconditionally so a not-yet-ready Sink0
// doesn't starve Sink1's own flush/close progress.
func TestUnzip_PollsBothChildrenEvenWhenOneNotReady(t *testing.T) {
	ctx := &Context{Waker: wake.Noop}
	recA := &recorderSink[int]{ready: false}
	recB := &recorderSink[string]{ready: true}
	s := &Unzip[int, string]{Sink0: recA, Sink1: recB}

	_, _ = s.PollFlush(ctx)
	assert.Equal(t, 1, recA.flushCalls)
	assert.Equal(t, 1, recB.flushCalls)
}

func TestUnzip_FirstErrorWins(t *testing.T) {
	recA := &recorderSink[int]{ready: true, readyErr: errRecorder}
	recB := &recorderSink[string]{ready: true}
	s := &Unzip[int, string]{Sink0: recA, Sink1: recB}

	ctx := &Context{Waker: wake.Noop}
	_, err := s.PollReady(ctx)
	assert.ErrorIs(t, err, errRecorder)
}
