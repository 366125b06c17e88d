package sim

// Simulate drains the source through the cache and returns accumulated
// hit statistics.
//
// On a Get miss the key is immediately inserted and the insert counted:
// the common read-through pattern. Traces that carry their own Insert
// events after misses should use SimulateExplicit instead to avoid
// double-counting inserts.
//
// The loop makes a single pass, owns both arguments for its duration, and
// buffers nothing beyond the current event.
func Simulate(cache CacheModel, source EventSource) HitStats {
	var stats HitStats

	for {
		event, ok := source.NextEvent()
		if !ok {
			return stats
		}
		switch event.Op {
		case OpGet:
			if cache.Get(event.Key) {
				stats.Hits++
			} else {
				stats.Misses++
				cache.Insert(event.Key)
				stats.Inserts++
			}
		case OpInsert:
			cache.Insert(event.Key)
			stats.Inserts++
		case OpDelete:
			cache.Delete(event.Key)
		}
	}
}

// SimulateExplicit replays the source without auto-insert on miss. A Get
// miss is only counted; the cache content changes exclusively through
// explicit Insert and Delete events.
func SimulateExplicit(cache CacheModel, source EventSource) HitStats {
	var stats HitStats

	for {
		event, ok := source.NextEvent()
		if !ok {
			return stats
		}
		switch event.Op {
		case OpGet:
			if cache.Get(event.Key) {
				stats.Hits++
			} else {
				stats.Misses++
			}
		case OpInsert:
			cache.Insert(event.Key)
			stats.Inserts++
		case OpDelete:
			cache.Delete(event.Key)
		}
	}
}
