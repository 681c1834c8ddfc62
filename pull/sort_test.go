package pull

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortByKey_OrdersAscendingOnlyAfterEOS(t *testing.T) {
	seq := SortByKey[int, int](FromSlice([]int{3, 1, 2}), func(v int) int { return v })
	assert.Equal(t, []int{1, 2, 3}, drain(t, seq))
}

func TestSortByKey_NeverEmitsBeforeUpstreamDone(t *testing.T) {
	ch := &queueChannel{items: []int{5, 1}}
	seq := SortByKey[int, int](FromChannel[int](ch), func(v int) int { return v })
	ctx := &Context{Waker: noopWaker{}}

	// upstream has items but hasn't reached Done: SortByKey must not emit
	// yet, and must report Pending once the channel runs dry (still open).
	p := seq.PollNext(ctx)
	assert.True(t, p.IsPending())

	ch.closed = true
	out := drain(t, seq)
	assert.Equal(t, []int{1, 5}, out)
}

type stableKV struct {
	key int
	tag string
}

func TestSortByLess_StableForEqualKeys(t *testing.T) {
	in := []stableKV{{1, "a"}, {1, "b"}, {0, "c"}, {1, "d"}}
	seq := SortByLess(FromSlice(in), func(a, b stableKV) bool { return a.key < b.key })
	out := drain(t, seq)
	assert.Equal(t, []stableKV{{0, "c"}, {1, "a"}, {1, "b"}, {1, "d"}}, out)
}

func TestSortByKey_FusesAtEOS(t *testing.T) {
	seq := SortByKey[int, int](FromSlice([]int{2, 1}), func(v int) int { return v })
	drain(t, seq)
	ctx := &Context{Waker: noopWaker{}}
	assert.True(t, seq.PollNext(ctx).IsDone())
}
