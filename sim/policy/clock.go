package policy

// Clock approximates LRU with a circular buffer and per-slot reference
// bits. Get sets the reference bit; eviction sweeps the hand, clearing
// bits until it finds an unreferenced slot.
type Clock struct {
	keys      []uint64
	refs      []bool
	occupied  []bool
	slots     map[uint64]int
	hand      int
	evictions uint64
}

// NewClock creates a Clock cache. Capacity below 1 is clamped to 1.
func NewClock(capacity int) *Clock {
	if capacity < 1 {
		capacity = 1
	}
	return &Clock{
		keys:     make([]uint64, capacity),
		refs:     make([]bool, capacity),
		occupied: make([]bool, capacity),
		slots:    make(map[uint64]int, capacity),
	}
}

func (c *Clock) Get(key uint64) bool {
	slot, ok := c.slots[key]
	if !ok {
		return false
	}
	c.refs[slot] = true
	return true
}

func (c *Clock) Insert(key uint64) {
	if slot, ok := c.slots[key]; ok {
		c.refs[slot] = true
		return
	}
	slot := c.findVictim()
	if c.occupied[slot] {
		delete(c.slots, c.keys[slot])
		c.evictions++
	}
	c.keys[slot] = key
	c.refs[slot] = false
	c.occupied[slot] = true
	c.slots[key] = slot
	c.hand = (slot + 1) % len(c.keys)
}

func (c *Clock) Delete(key uint64) {
	if slot, ok := c.slots[key]; ok {
		delete(c.slots, key)
		c.occupied[slot] = false
		c.refs[slot] = false
	}
}

// Len returns the number of resident keys.
func (c *Clock) Len() int {
	return len(c.slots)
}

// Evictions returns the number of capacity evictions (Delete not
// included).
func (c *Clock) Evictions() uint64 {
	return c.evictions
}

// findVictim advances the hand until it lands on a free or unreferenced
// slot. Terminates within two sweeps because each pass clears bits.
func (c *Clock) findVictim() int {
	for {
		if !c.occupied[c.hand] || !c.refs[c.hand] {
			return c.hand
		}
		c.refs[c.hand] = false
		c.hand = (c.hand + 1) % len(c.keys)
	}
}
