package trace

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRing_PushRead(t *testing.T) {
	r := NewRing[int](2, 0)
	for i := range 5 {
		r.Push(i)
	}

	assert.Equal(t, 5, r.Len())
	assert.Equal(t, []int{0, 1, 2}, r.Read(3))
	assert.Equal(t, []int{3, 4}, r.Peek(10))
	assert.Equal(t, 2, r.Len())
	assert.Zero(t, r.Dropped())
}

func TestRing_WrapsBeforeGrowing(t *testing.T) {
	r := NewRing[int](4, 0)
	r.Push(1)
	r.Push(2)
	r.Push(3)
	require.Equal(t, []int{1, 2}, r.Read(2))

	// writePos wraps past the end; the next grow must unwrap.
	for i := 4; i <= 8; i++ {
		r.Push(i)
	}
	assert.Equal(t, []int{3, 4, 5, 6, 7, 8}, r.All())
}

func TestRing_LimitDropsOldest(t *testing.T) {
	r := NewRing[int](1, 3)
	for i := range 7 {
		r.Push(i)
	}

	assert.Equal(t, []int{4, 5, 6}, r.All())
	assert.Equal(t, 4, r.Dropped())

	r.Clear()
	assert.Zero(t, r.Len())
	assert.Zero(t, r.Dropped())
	assert.Empty(t, r.Read(1))
}

func TestRing_CapacityClampedToLimit(t *testing.T) {
	r := NewRing[int](100, 2)
	r.Push(1)
	r.Push(2)
	r.Push(3)
	assert.Equal(t, []int{2, 3}, r.All())
}

func TestRing_Concurrent(t *testing.T) {
	r := NewRing[int](1, 0)
	var wg sync.WaitGroup
	for w := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				r.Push(w*100 + i)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 800, r.Len())
}
