package dispatch

import (
	"sync"

	"aiotoolsuite/backend/internal/tools"
)

// LogicCache maps tool ids to resolved logic. Entries are never replaced or
// removed. The mutex guards the map only; it is not held while a loader runs.
type LogicCache struct {
	mu      sync.RWMutex
	entries map[string]tools.Logic
}

// NewLogicCache creates an empty cache
func NewLogicCache() *LogicCache {
	return &LogicCache{entries: make(map[string]tools.Logic)}
}

// Get returns the cached logic for id
func (c *LogicCache) Get(id string) (tools.Logic, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	logic, ok := c.entries[id]
	return logic, ok
}

// LoadOrStore stores logic under id unless an entry exists, and returns the
// entry that ends up cached. loaded is true when an earlier entry won.
func (c *LogicCache) LoadOrStore(id string, logic tools.Logic) (actual tools.Logic, loaded bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[id]; ok {
		return existing, true
	}
	c.entries[id] = logic
	return logic, false
}

// Len returns the number of cached tools
func (c *LogicCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// IDs returns the cached tool ids in no particular order
func (c *LogicCache) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, 0, len(c.entries))
	for id := range c.entries {
		ids = append(ids, id)
	}
	return ids
}
