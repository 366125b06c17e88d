package measure

import (
	"math"
	"testing"

	"github.com/cachebench/cachebench/sim"
	"github.com/cachebench/cachebench/sim/policy"
)

// missCache never hits, forcing a zero baseline.
type missCache struct{ sim.NoDelete }

func (missCache) Get(uint64) bool { return false }
func (missCache) Insert(uint64)   {}

func TestScanResistance_ZeroBaselineYieldsZeroScore(t *testing.T) {
	cfg := DefaultScanResistanceConfig(1024, 42)
	cfg.BaselineOps = 100
	cfg.ScanOps = 100
	cfg.RecoveryOps = 100

	result, err := ScanResistance(missCache{}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if result.BaselineHitRate != 0 {
		t.Errorf("BaselineHitRate = %v, want 0", result.BaselineHitRate)
	}
	if result.ResistanceScore != 0 || math.IsNaN(result.ResistanceScore) {
		t.Errorf("ResistanceScore = %v, want defined 0", result.ResistanceScore)
	}
}

func TestScanResistance_LRURecovers(t *testing.T) {
	// The cache holds half the universe; the zipf head fits comfortably, so
	// the baseline must hit and the scan must hurt less than it helps.
	cache := policy.NewLRU(512)
	cfg := DefaultScanResistanceConfig(1024, 42)
	cfg.BaselineOps = 20000
	cfg.ScanOps = 5000
	cfg.RecoveryOps = 20000

	result, err := ScanResistance(cache, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if result.BaselineHitRate <= 0.5 {
		t.Errorf("BaselineHitRate = %.3f, want > 0.5 with cache half the universe", result.BaselineHitRate)
	}
	if result.ResistanceScore <= 0 || result.ResistanceScore > 1.5 {
		t.Errorf("ResistanceScore = %.3f, want a sane positive ratio", result.ResistanceScore)
	}
}

func TestScanResistance_RejectsBadExponent(t *testing.T) {
	cfg := DefaultScanResistanceConfig(1024, 42)
	cfg.PointExponent = -1
	if _, err := ScanResistance(policy.NewLRU(64), cfg); err == nil {
		t.Error("expected error for negative exponent")
	}
}

func TestAdaptation_LRUAdapts(t *testing.T) {
	cache := policy.NewLRU(256)
	cfg := DefaultAdaptationConfig(2048, 42)
	cfg.WarmupOps = 10000
	cfg.WindowSize = 500
	cfg.Windows = 40

	result, err := Adaptation(cache, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.HitRateCurve) != cfg.Windows {
		t.Fatalf("curve length = %d, want %d", len(result.HitRateCurve), cfg.Windows)
	}
	// The hot set (10% of 2048 keys) fits in the cache, so LRU settles at a
	// high hit rate after the shift.
	if result.StableHitRate <= 0.5 {
		t.Errorf("StableHitRate = %.3f, want > 0.5", result.StableHitRate)
	}
	total := cfg.WindowSize * cfg.Windows
	if result.OpsTo50Percent <= 0 || result.OpsTo50Percent > total {
		t.Errorf("OpsTo50Percent = %d, want in (0, %d]", result.OpsTo50Percent, total)
	}
	if result.OpsTo80Percent < result.OpsTo50Percent {
		t.Errorf("OpsTo80Percent %d < OpsTo50Percent %d", result.OpsTo80Percent, result.OpsTo50Percent)
	}
}

func TestAdaptation_ZeroWindowsIsNoop(t *testing.T) {
	cfg := DefaultAdaptationConfig(1024, 42)
	cfg.Windows = 0
	result, err := Adaptation(policy.NewLRU(64), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.HitRateCurve) != 0 {
		t.Errorf("curve length = %d, want 0", len(result.HitRateCurve))
	}
}

func TestAdaptation_Deterministic(t *testing.T) {
	cfg := DefaultAdaptationConfig(2048, 7)
	cfg.WarmupOps = 5000
	cfg.WindowSize = 200
	cfg.Windows = 10

	a, err := Adaptation(policy.NewLRU(256), cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Adaptation(policy.NewLRU(256), cfg)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.HitRateCurve {
		if a.HitRateCurve[i] != b.HitRateCurve[i] {
			t.Fatalf("curves diverge at window %d: %v != %v", i, a.HitRateCurve[i], b.HitRateCurve[i])
		}
	}
}
