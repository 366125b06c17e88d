package policy

import "container/list"

// FIFO evicts in insertion order. Get does not change eviction order,
// which makes FIFO a useful scan-resistance baseline against LRU.
type FIFO struct {
	capacity  int
	items     map[uint64]*list.Element
	order     *list.List // front = newest
	evictions uint64
}

// NewFIFO creates a FIFO cache. Capacity below 1 is clamped to 1.
func NewFIFO(capacity int) *FIFO {
	if capacity < 1 {
		capacity = 1
	}
	return &FIFO{
		capacity: capacity,
		items:    make(map[uint64]*list.Element, capacity),
		order:    list.New(),
	}
}

func (c *FIFO) Get(key uint64) bool {
	_, ok := c.items[key]
	return ok
}

func (c *FIFO) Insert(key uint64) {
	if _, ok := c.items[key]; ok {
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

func (c *FIFO) Delete(key uint64) {
	if elem, ok := c.items[key]; ok {
		delete(c.items, key)
		c.order.Remove(elem)
	}
}

// Len returns the number of resident keys.
func (c *FIFO) Len() int {
	return len(c.items)
}

// Evictions returns the number of capacity evictions (Delete not
// included).
func (c *FIFO) Evictions() uint64 {
	return c.evictions
}
