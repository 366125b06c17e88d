// Package measure implements the specialized benchmark measurements that
// need more than a single replay pass: scan resistance and adaptation
// speed. Both drive a cache through deterministic workload phases and
// reduce the observed hit rates into small result aggregates.
package measure

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/cachebench/cachebench/sim"
	"github.com/cachebench/cachebench/sim/workload"
)

// ScanResistanceConfig parameterizes the three-phase scan resistance
// measurement.
type ScanResistanceConfig struct {
	Universe uint64
	Seed     uint64
	// PointExponent is the Zipf exponent of the point-lookup phases.
	PointExponent float64
	// BaselineOps, ScanOps and RecoveryOps are the phase lengths.
	BaselineOps int
	ScanOps     int
	RecoveryOps int
}

// DefaultScanResistanceConfig returns the standard measurement shape.
func DefaultScanResistanceConfig(universe, seed uint64) ScanResistanceConfig {
	return ScanResistanceConfig{
		Universe:      universe,
		Seed:          seed,
		PointExponent: 1.0,
		BaselineOps:   50000,
		ScanOps:       50000,
		RecoveryOps:   50000,
	}
}

// ScanResistanceResult reports how well a policy recovers its hit rate
// after a long sequential scan of cold keys.
type ScanResistanceResult struct {
	BaselineHitRate float64 `json:"baseline_hit_rate"`
	ScanHitRate     float64 `json:"scan_hit_rate"`
	RecoveryHitRate float64 `json:"recovery_hit_rate"`
	// ResistanceScore is recovery/baseline; 1.0 means full recovery. A
	// zero baseline yields a defined score of 0 rather than NaN.
	ResistanceScore float64 `json:"resistance_score"`
}

// Summary formats the result as a single line for log output.
func (r ScanResistanceResult) Summary() string {
	return fmt.Sprintf("baseline=%.2f%% scan=%.2f%% recovery=%.2f%% score=%.2f",
		r.BaselineHitRate*100, r.ScanHitRate*100, r.RecoveryHitRate*100, r.ResistanceScore)
}

// ScanResistance runs three back-to-back phases against the same cache
// instance: a Zipfian point-lookup baseline, a sequential scan injection,
// and a point-lookup recovery continuing the baseline's key stream. All
// phases use read-through replay.
func ScanResistance(cache sim.CacheModel, cfg ScanResistanceConfig) (ScanResistanceResult, error) {
	points, err := workload.New(cfg.Universe, workload.Zipfian{Exponent: cfg.PointExponent}, cfg.Seed)
	if err != nil {
		return ScanResistanceResult{}, fmt.Errorf("point workload: %w", err)
	}
	scan, err := workload.New(cfg.Universe, workload.Scan{}, cfg.Seed)
	if err != nil {
		return ScanResistanceResult{}, fmt.Errorf("scan workload: %w", err)
	}

	baseline := sim.Simulate(cache, workload.NewBounded(points, cfg.BaselineOps))
	scanStats := sim.Simulate(cache, workload.NewBounded(scan, cfg.ScanOps))
	// Recovery continues the same point generator, so the popular set is
	// identical to the baseline's.
	recovery := sim.Simulate(cache, workload.NewBounded(points, cfg.RecoveryOps))

	result := ScanResistanceResult{
		BaselineHitRate: baseline.HitRate(),
		ScanHitRate:     scanStats.HitRate(),
		RecoveryHitRate: recovery.HitRate(),
	}
	if result.BaselineHitRate > 0 {
		result.ResistanceScore = result.RecoveryHitRate / result.BaselineHitRate
	}
	return result, nil
}

// AdaptationConfig parameterizes the adaptation-speed measurement.
type AdaptationConfig struct {
	Universe uint64
	Seed     uint64
	// HotFraction and HotProb shape the popular set before and after the
	// shift.
	HotFraction float64
	HotProb     float64
	// WarmupOps populate the cache with the pre-shift popular set.
	WarmupOps int
	// WindowSize is the number of operations per hit-rate window after
	// the shift; Windows is how many windows to record.
	WindowSize int
	Windows    int
}

// DefaultAdaptationConfig returns the standard measurement shape.
func DefaultAdaptationConfig(universe, seed uint64) AdaptationConfig {
	return AdaptationConfig{
		Universe:    universe,
		Seed:        seed,
		HotFraction: 0.1,
		HotProb:     0.9,
		WarmupOps:   50000,
		WindowSize:  1000,
		Windows:     100,
	}
}

// AdaptationResult reports how quickly a policy converges on a new
// popular set after the old one goes cold.
type AdaptationResult struct {
	// StableHitRate is the hit rate the policy eventually settles at.
	StableHitRate float64 `json:"stable_hit_rate"`
	// OpsTo50Percent and OpsTo80Percent are the operations elapsed after
	// the shift until the windowed hit rate first reaches 50%/80% of the
	// stable value.
	OpsTo50Percent int `json:"ops_to_50_percent"`
	OpsTo80Percent int `json:"ops_to_80_percent"`
	// HitRateCurve holds the hit rate of each post-shift window.
	HitRateCurve []float64 `json:"hit_rate_curve,omitempty"`
}

// Summary formats the result as a single line for log output.
func (r AdaptationResult) Summary() string {
	return fmt.Sprintf("stable=%.2f%% ops_to_50%%=%d ops_to_80%%=%d",
		r.StableHitRate*100, r.OpsTo50Percent, r.OpsTo80Percent)
}

// Adaptation warms the cache on one hot set, shifts the popular region by
// half the universe, and then records the windowed hit rate until it
// stabilizes. The stable value is the mean over the last quarter of the
// recorded windows.
func Adaptation(cache sim.CacheModel, cfg AdaptationConfig) (AdaptationResult, error) {
	if cfg.WindowSize <= 0 || cfg.Windows <= 0 {
		return AdaptationResult{}, nil
	}
	hot := workload.HotSet{HotFraction: cfg.HotFraction, HotProb: cfg.HotProb}

	warm, err := workload.New(cfg.Universe, hot, cfg.Seed)
	if err != nil {
		return AdaptationResult{}, fmt.Errorf("warmup workload: %w", err)
	}
	sim.Simulate(cache, workload.NewBounded(warm, cfg.WarmupOps))

	// Same process shape, different half of the key space: offsetting by
	// universe/2 moves the hot region wholesale.
	shifted, err := workload.New(cfg.Universe, hot, cfg.Seed+1)
	if err != nil {
		return AdaptationResult{}, fmt.Errorf("shifted workload: %w", err)
	}
	offset := &offsetSource{
		inner:    workload.NewBounded(shifted, cfg.WindowSize*cfg.Windows),
		offset:   cfg.Universe / 2,
		universe: shifted.Universe(),
	}

	curve := make([]float64, 0, cfg.Windows)
	for w := 0; w < cfg.Windows; w++ {
		stats := sim.Simulate(cache, &windowSource{inner: offset, remaining: cfg.WindowSize})
		curve = append(curve, stats.HitRate())
	}

	tail := curve[len(curve)-len(curve)/4:]
	if len(curve) < 4 {
		tail = curve
	}
	stable := stat.Mean(tail, nil)

	result := AdaptationResult{
		StableHitRate:  stable,
		OpsTo50Percent: opsToReach(curve, cfg.WindowSize, 0.5*stable),
		OpsTo80Percent: opsToReach(curve, cfg.WindowSize, 0.8*stable),
		HitRateCurve:   curve,
	}
	return result, nil
}

// opsToReach returns the operations elapsed until the windowed hit rate
// first reaches the threshold, or the full run length if it never does.
func opsToReach(curve []float64, windowSize int, threshold float64) int {
	for i, rate := range curve {
		if rate >= threshold {
			return (i + 1) * windowSize
		}
	}
	return len(curve) * windowSize
}

// offsetSource shifts every key of the inner source by a fixed offset
// modulo the universe.
type offsetSource struct {
	inner    sim.EventSource
	offset   uint64
	universe uint64
}

func (s *offsetSource) NextEvent() (sim.Event, bool) {
	e, ok := s.inner.NextEvent()
	if !ok {
		return sim.Event{}, false
	}
	e.Key = (e.Key + s.offset) % s.universe
	return e, true
}

func (s *offsetSource) SizeHint() (int, bool) { return s.inner.SizeHint() }

// windowSource passes through at most remaining events from the inner
// source, letting one long stream be replayed in fixed-size windows.
type windowSource struct {
	inner     sim.EventSource
	remaining int
}

func (s *windowSource) NextEvent() (sim.Event, bool) {
	if s.remaining <= 0 {
		return sim.Event{}, false
	}
	e, ok := s.inner.NextEvent()
	if !ok {
		return sim.Event{}, false
	}
	s.remaining--
	return e, true
}

func (s *windowSource) SizeHint() (int, bool) { return s.remaining, true }
