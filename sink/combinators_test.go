package sink

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hydro-project/hydro-sub005/wake"
)

func TestMap_TransformsBeforeForwarding(t *testing.T) {
	rec := &recorderSink[int]{ready: true}
	s := &Map[int, int]{F: func(v int) int { return v * 10 }, Next: rec}
	assert.NoError(t, s.StartSend(3))
	assert.Equal(t, []int{30}, rec.items)
}

func TestFilter_DropsRejectedItemsWithoutError(t *testing.T) {
	rec := &recorderSink[int]{ready: true}
	s := &Filter[int]{Pred: func(v int) bool { return v%2 == 0 }, Next: rec}
	assert.NoError(t, s.StartSend(1))
	assert.NoError(t, s.StartSend(2))
	assert.NoError(t, s.StartSend(3))
	assert.NoError(t, s.StartSend(4))
	assert.Equal(t, []int{2, 4}, rec.items)
}

func TestFilterMap_CombinesTransformAndFilter(t *testing.T) {
	rec := &recorderSink[string]{ready: true}
	s := &FilterMap[int, string]{
		F: func(v int) (string, bool) {
			if v%2 != 0 {
				return "", false
			}
			return "even", true
		},
		Next: rec,
	}
	assert.NoError(t, s.StartSend(1))
	assert.NoError(t, s.StartSend(2))
	assert.Equal(t, []string{"even"}, rec.items)
}

func TestInspect_ObservesAndForwardsUnchanged(t *testing.T) {
	rec := &recorderSink[int]{ready: true}
	var seen []int
	s := &Inspect[int]{F: func(v int) { seen = append(seen, v) }, Next: rec}
	assert.NoError(t, s.StartSend(5))
	assert.Equal(t, []int{5}, seen)
	assert.Equal(t, []int{5}, rec.items)
}

func TestCombinators_PollReadyFlushClosePassThroughToNext(t *testing.T) {
	ctx := &Context{Waker: wake.Noop}
	rec := &recorderSink[int]{ready: true, readyErr: errRecorder}
	s := &Map[int, int]{F: func(v int) int { return v }, Next: rec}
	_, err := s.PollReady(ctx)
	assert.ErrorIs(t, err, errRecorder)

	rec2 := &recorderSink[int]{ready: true}
	s2 := &Filter[int]{Pred: func(int) bool { return true }, Next: rec2}
	ready, err := s2.PollFlush(ctx)
	assert.True(t, ready)
	assert.NoError(t, err)
	assert.Equal(t, 1, rec2.flushCalls)

	ready, err = s2.PollClose(ctx)
	assert.True(t, ready)
	assert.NoError(t, err)
	assert.Equal(t, 1, rec2.closeCalls)
}
