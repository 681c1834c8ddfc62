package sink

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hydro-project/hydro-sub005/wake"
)

func TestForEach_AlwaysReadyAndCallsF(t *testing.T) {
	var got []int
	s := &ForEach[int]{F: func(v int) { got = append(got, v) }}
	ctx := &Context{Waker: wake.Noop}

	ready, err := s.PollReady(ctx)
	assert.True(t, ready)
	assert.NoError(t, err)

	assert.NoError(t, s.StartSend(1))
	assert.NoError(t, s.StartSend(2))
	assert.Equal(t, []int{1, 2}, got)

	ready, err = s.PollFlush(ctx)
	assert.True(t, ready)
	assert.NoError(t, err)
	ready, err = s.PollClose(ctx)
	assert.True(t, ready)
	assert.NoError(t, err)
}

func TestTryForEach_PropagatesErrorFromF(t *testing.T) {
	boom := errors.New("boom")
	s := &TryForEach[int]{F: func(v int) error {
		if v == 2 {
			return boom
		}
		return nil
	}}

	assert.NoError(t, s.StartSend(1))
	assert.ErrorIs(t, s.StartSend(2), boom)
}
