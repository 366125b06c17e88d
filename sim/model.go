package sim

// CacheModel is the minimal surface a cache under test must expose.
//
// The replay loop never inspects cache internals beyond these three calls;
// capacity and eviction policy are entirely the implementation's business.
// Implementations are free to mutate recency/frequency state inside Get.
type CacheModel interface {
	// Get attempts a lookup. Returns true on hit, false on miss.
	Get(key uint64) bool

	// Insert inserts or updates a key with unit weight. The event source
	// is authoritative; no value is tracked.
	Insert(key uint64)

	// Delete removes a key. Caches without deletion support embed
	// NoDelete to get a no-op.
	Delete(key uint64)
}

// EvictionCounter is the optional interface a cache implements to report
// how many entries capacity pressure has evicted.
type EvictionCounter interface {
	// Evictions returns the number of capacity evictions so far.
	// Explicit deletes are not counted.
	Evictions() uint64
}

// NoDelete provides the no-op Delete for caches that do not support
// deletion.
type NoDelete struct{}

// Delete does nothing.
func (NoDelete) Delete(uint64) {}
