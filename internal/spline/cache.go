package spline

import (
	"sync"

	"github.com/iamjosephmj/flinger/internal/logging"
)

// Cache hands out shared tables keyed by Params value equality. A Cache is
// owned by its creator; there is no package-level instance. It is safe for
// concurrent use.
type Cache struct {
	mu     sync.RWMutex
	tables map[Params]*Table
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{tables: make(map[Params]*Table)}
}

// Get returns the table for p, building it on first use.
func (c *Cache) Get(p Params) (*Table, error) {
	c.mu.RLock()
	t, ok := c.tables[p]
	c.mu.RUnlock()
	if ok {
		return t, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another caller may have built it while we waited for the write lock.
	if t, ok := c.tables[p]; ok {
		return t, nil
	}

	t, err := Build(p)
	if err != nil {
		return nil, err
	}
	c.tables[p] = t
	logging.Logger().Debug("spline table built",
		"inflection", p.Inflection,
		"start_tension", p.StartTension,
		"end_tension", p.EndTension,
		"samples", p.Samples)

	return t, nil
}

// Len returns the number of cached tables.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tables)
}

// Drop discards the table for p, if cached.
func (c *Cache) Drop(p Params) {
	c.mu.Lock()
	delete(c.tables, p)
	c.mu.Unlock()
}
