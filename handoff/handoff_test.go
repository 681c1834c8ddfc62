package handoff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGiveAccumulatesOnInputSide(t *testing.T) {
	h := New[int]()
	h.Give(1)
	h.Give(2)
	assert.Equal(t, 2, h.Len())
	assert.False(t, h.IsBottom())
}

func TestGiveVecAndGiveIter(t *testing.T) {
	h := New[string]()
	h.GiveVec([]string{"a", "b"})
	h.GiveIter(func(yield func(string) bool) {
		yield("c")
		yield("d")
	})
	assert.Equal(t, 4, h.Len())
}

func TestEmptyHandoffIsBottom(t *testing.T) {
	h := New[int]()
	assert.True(t, h.IsBottom())
}

// TestBorrowSwapThenTakeInner is the core FIFO contract: items given
// before a swap are exactly what the next TakeInner returns, in order.
func TestBorrowSwapThenTakeInner(t *testing.T) {
	h := New[int]()
	h.Give(1)
	h.Give(2)
	h.Give(3)

	h.BorrowSwap()
	got := h.TakeInner()
	assert.Equal(t, []int{1, 2, 3}, got)

	// The input side is now empty — IsBottom reflects no items given
	// since the swap.
	assert.True(t, h.IsBottom())
}

// TestGiveDuringSameRoundTargetsNewInputSide verifies the input/output
// sides stay distinct across a swap: a Give issued after BorrowSwap must
// not appear in the buffer TakeInner just handed out, and must show up on
// the next swap cycle instead.
func TestGiveDuringSameRoundTargetsNewInputSide(t *testing.T) {
	h := New[int]()
	h.Give(1)
	h.BorrowSwap()

	h.Give(2) // targets the post-swap input side

	out := h.TakeInner()
	assert.Equal(t, []int{1}, out)

	h.BorrowSwap()
	assert.Equal(t, []int{2}, h.TakeInner())
}

// TestTakeInnerLeavesOutputEmpty ensures a second TakeInner without an
// intervening swap yields nothing — draining is destructive.
func TestTakeInnerLeavesOutputEmpty(t *testing.T) {
	h := New[int]()
	h.Give(1)
	h.BorrowSwap()
	_ = h.TakeInner()
	assert.Empty(t, h.TakeInner())
}

func TestLazyAlwaysBottom(t *testing.T) {
	h := NewLazy[int]()
	assert.True(t, h.IsBottom())
	h.Give(1)
	assert.True(t, h.IsBottom(), "a lazy handoff must report bottom even with pending items")

	h.BorrowSwap()
	assert.Equal(t, []int{1}, h.TakeInner())
}
