// Package workload generates deterministic synthetic key streams that
// emulate real-world cache access patterns.
//
// A Spec (universe size, workload variant, seed) fully determines the key
// sequence a Generator produces: two generators built from the same Spec
// emit identical keys forever. That reproducibility is the whole point —
// it lets different cache policies be compared under bit-identical load.
//
// Each variant is a small stochastic state machine. Variant parameters
// are validated once at generator construction; sampling never fails.
package workload

import (
	"fmt"
	"math"
	"math/rand"
)

// Workload is one of the sixteen synthetic access pattern variants. A
// variant value carries its numeric parameters and knows how to build the
// per-variant mutable process state.
type Workload interface {
	// Kind returns the stable identifier of the variant (e.g. "zipfian").
	Kind() string

	// Validate checks the variant parameters. Called once at generator
	// construction.
	Validate() error

	// newProcess builds the variant's state machine. universe is already
	// clamped to >= 1, and rng is the single seeded stream shared by the
	// whole generator.
	newProcess(universe uint64, rng *rand.Rand) (process, error)
}

// process is the per-variant state machine. Each nextKey call advances it
// by exactly one logical operation and returns a key in [0, universe).
type process interface {
	nextKey() uint64
}

// inserter is implemented by processes that react to insert notifications
// (only Latest does).
type inserter interface {
	recordInsert()
}

// Uniform draws keys uniformly at random from [0, universe).
type Uniform struct{}

// HotSet splits the space into a hot region covering HotFraction of the
// universe and a cold remainder; each operation lands in the hot region
// with probability HotProb.
type HotSet struct {
	HotFraction float64
	HotProb     float64
}

// Scan emits a strictly increasing key cursor wrapping modulo the
// universe; its period is exactly the universe size.
type Scan struct{}

// Zipfian samples ranks from a Zipf distribution with the given exponent.
// Rank 1 maps to key 0. Exponent 1.0 is standard Zipf; higher is more
// skewed.
type Zipfian struct {
	Exponent float64
}

// ScrambledZipfian is Zipfian with an FNV-1a hash applied to the sampled
// rank, destroying the sequential locality of adjacent hot keys. This is
// YCSB's default distribution.
type ScrambledZipfian struct {
	Exponent float64
}

// Latest favors recently inserted keys: sampled Zipf offsets are mapped
// backward from a monotonically increasing insert counter. The counter
// only advances through Generator.RecordInsert, never per read.
type Latest struct {
	Exponent float64
}

// ShiftingHotspot moves the hot region every ShiftInterval operations.
// 80% of accesses land in the current hot region, 20% are uniform over
// the whole universe.
type ShiftingHotspot struct {
	ShiftInterval uint64
	HotFraction   float64
}

// Exponential concentrates popularity near key 0 with exponentially
// decaying density. Lambda is the decay rate (typical 0.01-0.1).
type Exponential struct {
	Lambda float64
}

// Pareto models heavy-tailed popularity where a small share of keys
// receives the vast majority of accesses.
type Pareto struct {
	Shape float64
}

// ScanResistance interleaves Zipfian point lookups with occasional
// sequential scans: with probability ScanFraction per idle operation a
// scan of ScanLength keys starts at a random offset. The differentiator
// workload for scan-resistant eviction policies.
type ScanResistance struct {
	ScanFraction  float64
	ScanLength    uint64
	PointExponent float64
}

// Correlated emits stride-spaced bursts: with probability BurstProb per
// idle operation a burst of BurstLen keys starts at a random key,
// advancing by Stride each operation; otherwise keys are uniform.
type Correlated struct {
	Stride    uint64
	BurstLen  uint64
	BurstProb float64
}

// Loop cycles over [0, WorkingSetSize) indefinitely. The period does not
// grow with the universe, but the working set is clamped to it so keys
// stay in range. The critical edge case for cache sizing.
type Loop struct {
	WorkingSetSize uint64
}

// WorkingSetChurn keeps a sliding window of WorkingSetSize keys whose
// base advances by one with probability ChurnRate per operation; keys are
// uniform within the current window.
type WorkingSetChurn struct {
	WorkingSetSize uint64
	ChurnRate      float64
}

// Bursty is a two-state (burst/idle) process whose state persistence is
// derived from the Hurst parameter. While bursting, samples concentrate
// into the first universe/10 keys; otherwise they follow a full Zipfian
// distribution with BaseExponent.
type Bursty struct {
	Hurst        float64
	BaseExponent float64
}

// FlashCrowd models a sudden popularity spike: with probability FlashProb
// per idle operation a flash of FlashDuration operations starts over
// FlashKeys keys at a random base. During a flash a
// FlashIntensity/(FlashIntensity+1) fraction of draws hit the flash keys;
// everything else follows the background Zipfian with BaseExponent.
type FlashCrowd struct {
	BaseExponent   float64
	FlashProb      float64
	FlashDuration  uint64
	FlashKeys      uint64
	FlashIntensity float64
}

// Mixture dispatches per operation: 70% ad-hoc rank-based skew, 20%
// sequential scan, 10% uniform.
type Mixture struct{}

// Kind implementations.

func (Uniform) Kind() string          { return "uniform" }
func (HotSet) Kind() string           { return "hotset" }
func (Scan) Kind() string             { return "scan" }
func (Zipfian) Kind() string          { return "zipfian" }
func (ScrambledZipfian) Kind() string { return "scrambled_zipfian" }
func (Latest) Kind() string           { return "latest" }
func (ShiftingHotspot) Kind() string  { return "shifting_hotspot" }
func (Exponential) Kind() string      { return "exponential" }
func (Pareto) Kind() string           { return "pareto" }
func (ScanResistance) Kind() string   { return "scan_resistance" }
func (Correlated) Kind() string       { return "correlated" }
func (Loop) Kind() string             { return "loop" }
func (WorkingSetChurn) Kind() string  { return "working_set_churn" }
func (Bursty) Kind() string           { return "bursty" }
func (FlashCrowd) Kind() string       { return "flash_crowd" }
func (Mixture) Kind() string          { return "mixture" }

// Validate implementations. Invalid parameters are a fatal configuration
// error surfaced at generator construction, never during sampling.

func (Uniform) Validate() error { return nil }

func (w HotSet) Validate() error {
	if err := validateFraction("hot_fraction", w.HotFraction); err != nil {
		return err
	}
	return validateFraction("hot_prob", w.HotProb)
}

func (Scan) Validate() error { return nil }

func (w Zipfian) Validate() error {
	return validatePositive("exponent", w.Exponent)
}

func (w ScrambledZipfian) Validate() error {
	return validatePositive("exponent", w.Exponent)
}

func (w Latest) Validate() error {
	return validatePositive("exponent", w.Exponent)
}

func (w ShiftingHotspot) Validate() error {
	return validateFraction("hot_fraction", w.HotFraction)
}

func (w Exponential) Validate() error {
	return validatePositive("lambda", w.Lambda)
}

func (w Pareto) Validate() error {
	return validatePositive("shape", w.Shape)
}

func (w ScanResistance) Validate() error {
	if err := validateFraction("scan_fraction", w.ScanFraction); err != nil {
		return err
	}
	if w.ScanLength == 0 {
		return fmt.Errorf("scan_length must be positive")
	}
	return validatePositive("point_exponent", w.PointExponent)
}

func (w Correlated) Validate() error {
	return validateFraction("burst_prob", w.BurstProb)
}

func (Loop) Validate() error { return nil }

func (w WorkingSetChurn) Validate() error {
	return validateFraction("churn_rate", w.ChurnRate)
}

func (w Bursty) Validate() error {
	if math.IsNaN(w.Hurst) || w.Hurst < 0 || w.Hurst > 1 {
		return fmt.Errorf("hurst must be in [0, 1], got %f", w.Hurst)
	}
	return validatePositive("base_exponent", w.BaseExponent)
}

func (w FlashCrowd) Validate() error {
	if err := validatePositive("base_exponent", w.BaseExponent); err != nil {
		return err
	}
	if err := validateFraction("flash_prob", w.FlashProb); err != nil {
		return err
	}
	if w.FlashIntensity < 0 || math.IsNaN(w.FlashIntensity) {
		return fmt.Errorf("flash_intensity must be non-negative, got %f", w.FlashIntensity)
	}
	return nil
}

func (Mixture) Validate() error { return nil }

func validatePositive(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%s must be a finite number, got %f", name, val)
	}
	if val <= 0 {
		return fmt.Errorf("%s must be positive, got %f", name, val)
	}
	return nil
}

func validateFraction(name string, val float64) error {
	if math.IsNaN(val) || val < 0 || val > 1 {
		return fmt.Errorf("%s must be in [0, 1], got %f", name, val)
	}
	return nil
}
