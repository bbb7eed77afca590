package spline

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SharesTablesByValue(t *testing.T) {
	c := NewCache()

	a, err := c.Get(defaultParams)
	require.NoError(t, err)

	same := defaultParams
	b, err := c.Get(same)
	require.NoError(t, err)
	assert.Same(t, a, b)

	other, err := c.Get(androidParams)
	require.NoError(t, err)
	assert.NotSame(t, a, other)
	assert.Equal(t, androidParams, other.Params())
	assert.Equal(t, 2, c.Len())

	c.Drop(defaultParams)
	assert.Equal(t, 1, c.Len())
	rebuilt, err := c.Get(defaultParams)
	require.NoError(t, err)
	assert.NotSame(t, a, rebuilt)
	assert.Equal(t, a.Knots(), rebuilt.Knots())
}

func TestCache_ErrorNotCached(t *testing.T) {
	c := NewCache()
	_, err := c.Get(Params{Inflection: 0.1, StartTension: 0.1, EndTension: 1})
	require.ErrorIs(t, err, ErrNoConvergence)
	assert.Equal(t, 0, c.Len())
}

func TestCache_ConcurrentGet(t *testing.T) {
	c := NewCache()
	const workers = 16

	tables := make([]*Table, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tab, err := c.Get(androidParams)
			assert.NoError(t, err)
			tables[i] = tab
		}(i)
	}
	wg.Wait()

	for _, tab := range tables[1:] {
		assert.Same(t, tables[0], tab)
	}
}
