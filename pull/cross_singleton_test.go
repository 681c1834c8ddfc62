package pull

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrossSingleton_PairsEveryItemWithCachedValue(t *testing.T) {
	var cache *string
	items := FromSlice([]int{1, 2, 3})
	singleton := FromSlice([]string{"x"})

	seq := CrossSingleton[int, string](items, singleton, &cache)
	out := drain(t, seq)
	assert.Equal(t, []KV2[int, string]{{1, "x"}, {2, "x"}, {3, "x"}}, out)
	assert.NotNil(t, cache)
	assert.Equal(t, "x", *cache)
}

// If singleton reaches Done before ever producing a value, no output is
// ever emitted for any main-stream item.
func TestCrossSingleton_SingletonDoneBeforeValueYieldsNothing(t *testing.T) {
	var cache *string
	items := FromSlice([]int{1, 2})
	singleton := FromSlice[string](nil)

	seq := CrossSingleton[int, string](items, singleton, &cache)
	out := drain(t, seq)
	assert.Empty(t, out)
	assert.Nil(t, cache)
}

// A cache already populated from a prior tick (a carried-over state cell)
// is reused directly without re-polling singleton.
func TestCrossSingleton_PrepopulatedCacheSkipsSingletonPoll(t *testing.T) {
	held := "carried"
	cache := &held
	items := FromSlice([]int{7})
	singleton := FromSlice[string](nil)

	seq := CrossSingleton[int, string](items, singleton, &cache)
	out := drain(t, seq)
	assert.Equal(t, []KV2[int, string]{{7, "carried"}}, out)
}
