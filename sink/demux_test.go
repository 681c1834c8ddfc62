package sink

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hydro-project/hydro-sub005/wake"
)

func TestDemuxMap_RoutesByKey(t *testing.T) {
	recA := &recorderSink[int]{ready: true}
	recB := &recorderSink[int]{ready: true}
	s := &DemuxMap[string, int]{Sinks: map[string]Sink[int]{"a": recA, "b": recB}}

	assert.NoError(t, s.StartSend(Keyed[string, int]{Key: "a", Val: 1}))
	assert.NoError(t, s.StartSend(Keyed[string, int]{Key: "b", Val: 2}))
	assert.Equal(t, []int{1}, recA.items)
	assert.Equal(t, []int{2}, recB.items)
}

func TestDemuxMap_PanicsOnMissingKey(t *testing.T) {
	s := &DemuxMap[string, int]{Sinks: map[string]Sink[int]{}}
	assert.Panics(t, func() {
		_ = s.StartSend(Keyed[string, int]{Key: "missing", Val: 1})
	})
}

func TestDemuxMap_ReadyOnlyWhenEveryChildReady(t *testing.T) {
	ctx := &Context{Waker: wake.Noop}
	recA := &recorderSink[int]{ready: true}
	recB := &recorderSink[int]{ready: false}
	s := &DemuxMap[string, int]{Sinks: map[string]Sink[int]{"a": recA, "b": recB}}

	ready, err := s.PollReady(ctx)
	assert.NoError(t, err)
	assert.False(t, ready)
}

func TestLazyDemuxSink_CreatesChildOnFirstAppearance(t *testing.T) {
	var created []string
	s := &LazyDemuxSink[string, int]{Factory: func(k string) Sink[int] {
		created = append(created, k)
		return &recorderSink[int]{ready: true}
	}}

	assert.NoError(t, s.StartSend(Keyed[string, int]{Key: "x", Val: 1}))
	assert.NoError(t, s.StartSend(Keyed[string, int]{Key: "x", Val: 2}))
	assert.NoError(t, s.StartSend(Keyed[string, int]{Key: "y", Val: 3}))

	assert.Equal(t, []string{"x", "y"}, created)
	assert.Equal(t, []int{1, 2}, s.sinks["x"].(*recorderSink[int]).items)
	assert.Equal(t, []int{3}, s.sinks["y"].(*recorderSink[int]).items)
}

func TestDemuxVar_RoutesByIndex(t *testing.T) {
	rec0 := &recorderSink[int]{ready: true}
	rec1 := &recorderSink[int]{ready: true}
	s := &DemuxVar[int]{Sinks: []Sink[int]{rec0, rec1}}

	assert.NoError(t, s.StartSend(Keyed[int, int]{Key: 1, Val: 42}))
	assert.Equal(t, []int{42}, rec1.items)
	assert.Empty(t, rec0.items)
}

func TestDemuxVar_PanicsOnOutOfRangeIndex(t *testing.T) {
	s := &DemuxVar[int]{Sinks: []Sink[int]{&recorderSink[int]{ready: true}}}
	assert.Panics(t, func() {
		_ = s.StartSend(Keyed[int, int]{Key: 5, Val: 1})
	})
}

type shapeTag int

const (
	tagCircle shapeTag = iota
	tagSquare
)

type shape struct {
	tag    shapeTag
	radius int
	side   int
}

func (s shape) Tag() int { return int(s.tag) }

func TestDemuxEnum_DispatchesByTag(t *testing.T) {
	circles := &recorderSink[shape]{ready: true}
	squares := &recorderSink[shape]{ready: true}
	s := DemuxEnum[shape](circles, squares)

	assert.NoError(t, s.StartSend(Keyed[int, shape]{Key: int(tagCircle), Val: shape{tag: tagCircle, radius: 3}}))
	assert.NoError(t, s.StartSend(Keyed[int, shape]{Key: int(tagSquare), Val: shape{tag: tagSquare, side: 4}}))

	assert.Equal(t, 3, circles.items[0].radius)
	assert.Equal(t, 4, squares.items[0].side)
}
