package policy

import (
	"testing"

	"github.com/cachebench/cachebench/sim"
	"github.com/cachebench/cachebench/sim/workload"
)

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRU(2)
	c.Insert(1)
	c.Insert(2)
	if !c.Get(1) {
		t.Fatal("key 1 should be resident")
	}
	// 2 is now least recently used.
	c.Insert(3)
	if c.Get(2) {
		t.Error("key 2 should have been evicted")
	}
	if !c.Get(1) || !c.Get(3) {
		t.Error("keys 1 and 3 should be resident")
	}
}

func TestLRU_GetPromotes(t *testing.T) {
	c := NewLRU(2)
	c.Insert(1)
	c.Insert(2)
	c.Get(1)
	c.Insert(3) // evicts 2, not 1
	if !c.Get(1) {
		t.Error("promoted key 1 was evicted")
	}
	if c.Get(2) {
		t.Error("key 2 should have been evicted")
	}
}

func TestLRU_ReinsertIsNotGrowth(t *testing.T) {
	c := NewLRU(2)
	c.Insert(1)
	c.Insert(1)
	c.Insert(1)
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestLRU_Delete(t *testing.T) {
	c := NewLRU(2)
	c.Insert(1)
	c.Delete(1)
	if c.Get(1) {
		t.Error("deleted key still resident")
	}
	c.Delete(99) // no-op
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
}

func TestFIFO_EvictsInInsertionOrder(t *testing.T) {
	c := NewFIFO(2)
	c.Insert(1)
	c.Insert(2)
	// Unlike LRU, a hit must not save key 1.
	c.Get(1)
	c.Insert(3)
	if c.Get(1) {
		t.Error("key 1 should have been evicted despite the hit")
	}
	if !c.Get(2) || !c.Get(3) {
		t.Error("keys 2 and 3 should be resident")
	}
}

func TestClock_ReferenceBitSavesHotKey(t *testing.T) {
	c := NewClock(2)
	c.Insert(1)
	c.Insert(2)
	c.Get(1)
	// The hand clears 1's bit only after passing it once, so 2 goes first.
	c.Insert(3)
	if !c.Get(1) {
		t.Error("referenced key 1 was evicted")
	}
	if c.Get(2) {
		t.Error("unreferenced key 2 should have been evicted")
	}
	if !c.Get(3) {
		t.Error("key 3 should be resident")
	}
}

func TestClock_DeleteFreesSlot(t *testing.T) {
	c := NewClock(2)
	c.Insert(1)
	c.Insert(2)
	c.Delete(1)
	if c.Len() != 1 {
		t.Fatalf("Len = %d, want 1", c.Len())
	}
	c.Insert(3)
	if !c.Get(2) || !c.Get(3) {
		t.Error("delete should have freed a slot without evicting key 2")
	}
}

func TestPolicies_CountCapacityEvictions(t *testing.T) {
	caches := map[string]interface {
		sim.CacheModel
		sim.EvictionCounter
	}{
		"lru":   NewLRU(2),
		"fifo":  NewFIFO(2),
		"clock": NewClock(2),
	}
	for name, cache := range caches {
		cache.Insert(1)
		cache.Insert(2)
		if got := cache.Evictions(); got != 0 {
			t.Errorf("%s: Evictions = %d before capacity pressure, want 0", name, got)
		}
		cache.Insert(3)
		if got := cache.Evictions(); got != 1 {
			t.Errorf("%s: Evictions = %d after overflow, want 1", name, got)
		}
		// Explicit deletes are not evictions.
		cache.Delete(3)
		if got := cache.Evictions(); got != 1 {
			t.Errorf("%s: Evictions = %d after delete, want 1", name, got)
		}
	}
}

func TestLRU_RefillAfterDeleteDoesNotEvict(t *testing.T) {
	c := NewLRU(2)
	c.Insert(1)
	c.Insert(2)
	c.Delete(2)
	c.Insert(3) // fills the freed slot
	if got := c.Evictions(); got != 0 {
		t.Errorf("Evictions = %d, want 0", got)
	}
}

func TestLRU_ReinsertDoesNotEvict(t *testing.T) {
	c := NewLRU(2)
	c.Insert(1)
	c.Insert(2)
	c.Insert(1)
	if got := c.Evictions(); got != 0 {
		t.Errorf("Evictions = %d, want 0", got)
	}
}

func TestPolicies_StayWithinCapacity(t *testing.T) {
	caches := map[string]interface {
		sim.CacheModel
		Len() int
	}{
		"lru":   NewLRU(128),
		"fifo":  NewFIFO(128),
		"clock": NewClock(128),
	}
	for name, cache := range caches {
		gen, err := workload.New(1<<16, workload.Uniform{}, 42)
		if err != nil {
			t.Fatal(err)
		}
		stats := sim.Simulate(cache, workload.NewBounded(gen, 10000))
		if cache.Len() > 128 {
			t.Errorf("%s: Len = %d exceeds capacity 128", name, cache.Len())
		}
		if stats.TotalOps() != 10000 {
			t.Errorf("%s: TotalOps = %d, want 10000", name, stats.TotalOps())
		}
	}
}

func TestLRU_BeatsFIFOOnHotSet(t *testing.T) {
	run := func(cache sim.CacheModel) float64 {
		gen, err := workload.New(8192, workload.HotSet{HotFraction: 0.05, HotProb: 0.95}, 42)
		if err != nil {
			t.Fatal(err)
		}
		return sim.Simulate(cache, workload.NewBounded(gen, 50000)).HitRate()
	}
	lru := run(NewLRU(512))
	fifo := run(NewFIFO(512))
	// Recency-aware eviction must not lose to FIFO on a skewed workload.
	if lru+0.02 < fifo {
		t.Errorf("LRU hit rate %.3f well below FIFO %.3f on hot set workload", lru, fifo)
	}
}
