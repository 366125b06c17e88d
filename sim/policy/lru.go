// Package policy provides reference cache eviction policies implementing
// sim.CacheModel. They model admission and eviction only; no values are
// stored. All policies are single-threaded, matching the simulator's
// ownership model.
package policy

import "container/list"

// LRU evicts the least recently used key. Get promotes, Insert admits
// (or promotes an existing key), Delete removes.
type LRU struct {
	capacity  int
	items     map[uint64]*list.Element
	order     *list.List // front = most recent
	evictions uint64
}

// NewLRU creates an LRU cache. Capacity below 1 is clamped to 1.
func NewLRU(capacity int) *LRU {
	if capacity < 1 {
		capacity = 1
	}
	return &LRU{
		capacity: capacity,
		items:    make(map[uint64]*list.Element, capacity),
		order:    list.New(),
	}
}

func (c *LRU) Get(key uint64) bool {
	elem, ok := c.items[key]
	if !ok {
		return false
	}
	c.order.MoveToFront(elem)
	return true
}

func (c *LRU) Insert(key uint64) {
	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		return
	}
	if len(c.items) >= c.capacity {
		back := c.order.Back()
		if back != nil {
			delete(c.items, back.Value.(uint64))
			c.order.Remove(back)
			c.evictions++
		}
	}
	c.items[key] = c.order.PushFront(key)
}

func (c *LRU) Delete(key uint64) {
	if elem, ok := c.items[key]; ok {
		delete(c.items, key)
		c.order.Remove(elem)
	}
}

// Len returns the number of resident keys.
func (c *LRU) Len() int {
	return len(c.items)
}

// Evictions returns the number of capacity evictions (Delete not
// included).
func (c *LRU) Evictions() uint64 {
	return c.evictions
}
