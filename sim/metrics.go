package sim

import (
	"fmt"
	"sort"
	"time"
)

// HitStats accumulates hit/miss/insert counters over one replay.
type HitStats struct {
	Hits    uint64
	Misses  uint64
	Inserts uint64
	// Updates is carried for artifact schema compatibility; neither replay
	// policy increments it.
	Updates uint64
}

// HitRate returns hits / (hits + misses), or 0 when no Gets were replayed.
func (s HitStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// MissRate returns 1 - HitRate.
func (s HitStats) MissRate() float64 {
	return 1 - s.HitRate()
}

// TotalOps returns the number of Get operations replayed.
func (s HitStats) TotalOps() uint64 {
	return s.Hits + s.Misses
}

// Add accumulates another window of counters into s.
func (s *HitStats) Add(other HitStats) {
	s.Hits += other.Hits
	s.Misses += other.Misses
	s.Inserts += other.Inserts
	s.Updates += other.Updates
}

// Summary formats the stats as a single line for log output.
func (s HitStats) Summary() string {
	return fmt.Sprintf("hits=%d misses=%d inserts=%d hit_rate=%.2f%%",
		s.Hits, s.Misses, s.Inserts, s.HitRate()*100)
}

// ThroughputStats reports wall-clock throughput for one replay.
type ThroughputStats struct {
	TotalDuration time.Duration
	OpsPerSec     float64
	GetsPerSec    float64
	InsertsPerSec float64
}

// ThroughputFromCounts derives throughput from replay counters and the
// measured wall-clock duration. A zero duration yields zero-valued stats
// rather than infinities.
func ThroughputFromCounts(hits, misses, inserts uint64, duration time.Duration) ThroughputStats {
	secs := duration.Seconds()
	if secs == 0 {
		return ThroughputStats{}
	}
	total := hits + misses + inserts
	return ThroughputStats{
		TotalDuration: duration,
		OpsPerSec:     float64(total) / secs,
		GetsPerSec:    float64(hits+misses) / secs,
		InsertsPerSec: float64(inserts) / secs,
	}
}

// EvictionStats reports eviction behavior for caches that expose it.
type EvictionStats struct {
	TotalEvictions     uint64
	EvictionsPerInsert float64
}

// EvictionStatsFromCounts derives eviction stats from replay counters.
// Zero inserts yield a zero rate rather than NaN.
func EvictionStatsFromCounts(evictions, inserts uint64) EvictionStats {
	stats := EvictionStats{TotalEvictions: evictions}
	if inserts > 0 {
		stats.EvictionsPerInsert = float64(evictions) / float64(inserts)
	}
	return stats
}

// LatencyStats is the latency distribution of one replay, derived from
// sampled operation durations.
type LatencyStats struct {
	Min         time.Duration
	P50         time.Duration
	P95         time.Duration
	P99         time.Duration
	Max         time.Duration
	Mean        time.Duration
	SampleCount int
}

// LatencyStatsFromSamples computes percentiles by direct index into the
// sorted sample set (n*95/100 etc., truncating division, no
// interpolation). The input slice is sorted in place. An empty input
// yields zero-valued stats.
func LatencyStatsFromSamples(samples []time.Duration) LatencyStats {
	if len(samples) == 0 {
		return LatencyStats{}
	}

	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	n := len(samples)
	var sum time.Duration
	for _, d := range samples {
		sum += d
	}

	return LatencyStats{
		Min:         samples[0],
		P50:         samples[n/2],
		P95:         samples[n*95/100],
		P99:         samples[n*99/100],
		Max:         samples[n-1],
		Mean:        sum / time.Duration(n),
		SampleCount: n,
	}
}

// LatencySampler collects a bounded set of operation latencies without
// timing every operation. Only every sampleRate-th call is recorded.
//
// Once the reservoir is full, replacement falls back to a plain
// modulo-index overwrite. That is an intentional approximation, not true
// reservoir sampling: inclusion probability is not uniform past the first
// fill. It is kept because it is cheap and good enough for percentile
// estimates over long steady-state runs.
type LatencySampler struct {
	samples    []time.Duration
	capacity   int
	count      uint64
	sampleRate uint64
}

// NewLatencySampler creates a sampler holding up to capacity samples,
// recording every sampleRate-th call (1 = every op). A sampleRate of 0 is
// treated as 1.
func NewLatencySampler(capacity int, sampleRate uint64) *LatencySampler {
	if sampleRate < 1 {
		sampleRate = 1
	}
	return &LatencySampler{
		samples:    make([]time.Duration, 0, capacity),
		capacity:   capacity,
		sampleRate: sampleRate,
	}
}

// Record offers one latency observation to the sampler.
func (s *LatencySampler) Record(d time.Duration) {
	s.count++
	if s.count%s.sampleRate != 0 {
		return
	}

	if len(s.samples) < s.capacity {
		s.samples = append(s.samples, d)
		return
	}
	if s.capacity == 0 {
		return
	}
	idx := int(s.count % uint64(s.capacity))
	s.samples[idx] = d
}

// Stats computes latency statistics over the collected samples.
func (s *LatencySampler) Stats() LatencyStats {
	return LatencyStatsFromSamples(s.samples)
}
