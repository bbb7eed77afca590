// Package trace records what a fling reported through its hooks.
package trace

import "sync"

const (
	// ringGrowthFactor is the capacity multiplier applied when a ring below
	// its limit fills.
	ringGrowthFactor = 2

	// defaultRingCapacity is the initial capacity of a Recorder's ring.
	defaultRingCapacity = 64
)

// Ring is a circular buffer. It grows on demand up to its limit; once the
// limit is reached every write discards the oldest entry.
type Ring[T any] struct {
	data     []T
	size     int
	readPos  int
	writePos int
	limit    int
	dropped  int
	mu       sync.Mutex
}

// NewRing returns a ring with the given initial capacity. A limit of zero or
// less lets the ring grow without bound.
func NewRing[T any](capacity, limit int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	if limit > 0 && capacity > limit {
		capacity = limit
	}
	return &Ring[T]{data: make([]T, capacity), limit: limit}
}

// Push appends v.
func (r *Ring[T]) Push(v T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.size == len(r.data) {
		if r.limit > 0 && r.size >= r.limit {
			r.readPos = (r.readPos + 1) % len(r.data)
			r.size--
			r.dropped++
		} else {
			r.grow()
		}
	}

	r.data[r.writePos] = v
	r.writePos = (r.writePos + 1) % len(r.data)
	r.size++
}

// Read removes and returns up to n entries, oldest first.
func (r *Ring[T]) Read(n int) []T {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.peek(n)
	r.readPos = (r.readPos + len(out)) % len(r.data)
	r.size -= len(out)
	return out
}

// Peek returns up to n entries, oldest first, without removing them.
func (r *Ring[T]) Peek(n int) []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.peek(n)
}

// All returns every buffered entry without removing them.
func (r *Ring[T]) All() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.peek(r.size)
}

// Len returns the number of buffered entries.
func (r *Ring[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

// Dropped returns how many entries were discarded to stay within the limit.
func (r *Ring[T]) Dropped() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// Clear empties the ring. Capacity is kept.
func (r *Ring[T]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.data)
	r.size, r.readPos, r.writePos, r.dropped = 0, 0, 0, 0
}

func (r *Ring[T]) peek(n int) []T {
	n = min(n, r.size)
	if n <= 0 {
		return []T{}
	}

	out := make([]T, n)
	first := copy(out, r.data[r.readPos:min(r.readPos+n, len(r.data))])
	copy(out[first:], r.data[:n-first])
	return out
}

// grow doubles the capacity, capped at the limit, and unwraps the contents.
func (r *Ring[T]) grow() {
	newCap := len(r.data) * ringGrowthFactor
	if r.limit > 0 && newCap > r.limit {
		newCap = r.limit
	}

	newData := make([]T, newCap)
	first := copy(newData, r.data[r.readPos:])
	copy(newData[first:], r.data[:r.readPos])

	r.data = newData
	r.readPos = 0
	r.writePos = r.size
}
