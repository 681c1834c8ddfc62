package pull

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLatticeFoldBatch_EmitsJoinedValueOnceSignalled(t *testing.T) {
	var lattice int
	merge := func(l *int, v int) {
		if v > *l {
			*l = v
		}
	}
	input := FromSlice([]int{3, 7, 2})
	signal := FromSlice([]any{struct{}{}})

	seq := LatticeFoldBatch[int, int](input, signal, &lattice, merge)
	out := drain(t, seq)
	assert.Equal(t, []int{7}, out)
}

func TestLatticeFoldBatch_NoSignalReportsDoneWithNoEmission(t *testing.T) {
	var lattice int
	merge := func(l *int, v int) { *l += v }
	input := FromSlice([]int{1, 2, 3})
	signal := FromSlice[any](nil)

	seq := LatticeFoldBatch[int, int](input, signal, &lattice, merge)
	out := drain(t, seq)
	assert.Empty(t, out)
	// input is still drained and merged even without a signal.
	assert.Equal(t, 6, lattice)
}

func TestLatticeFoldBatch_FusesDoneAfterFirstPoll(t *testing.T) {
	var lattice int
	merge := func(l *int, v int) { *l += v }
	seq := LatticeFoldBatch[int, int](FromSlice([]int{1}), FromSlice([]any{struct{}{}}), &lattice, merge)
	out := drain(t, seq)
	assert.Equal(t, []int{1}, out)

	ctx := &Context{Waker: noopWaker{}}
	assert.True(t, seq.PollNext(ctx).IsDone())
}
