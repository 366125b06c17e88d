package workload

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// SuiteConfig is the top-level YAML configuration for a benchmark run.
// Loaded via LoadSuiteConfig(path).
type SuiteConfig struct {
	Universe          uint64         `yaml:"universe" json:"universe"`
	Seed              uint64         `yaml:"seed" json:"seed"`
	Operations        int            `yaml:"operations" json:"operations"`
	Capacity          int            `yaml:"capacity" json:"capacity"`
	WarmupOps         int            `yaml:"warmup_ops,omitempty" json:"warmup_ops,omitempty"`
	LatencySampleRate uint64         `yaml:"latency_sample_rate,omitempty" json:"latency_sample_rate,omitempty"`
	MaxLatencySamples int            `yaml:"max_latency_samples,omitempty" json:"max_latency_samples,omitempty"`
	Suite             string         `yaml:"suite,omitempty" json:"suite,omitempty"`
	Workloads         []WorkloadSpec `yaml:"workloads,omitempty" json:"workloads,omitempty"`
}

// WorkloadSpec is one custom workload entry in a SuiteConfig.
type WorkloadSpec struct {
	ID          string             `yaml:"id" json:"id"`
	DisplayName string             `yaml:"display_name,omitempty" json:"display_name,omitempty"`
	Kind        string             `yaml:"kind" json:"kind"`
	Params      map[string]float64 `yaml:"params,omitempty" json:"params,omitempty"`
}

// DefaultSuiteConfig returns the configuration used when no file is given:
// the standard suite at the original benchmark defaults.
func DefaultSuiteConfig() SuiteConfig {
	return SuiteConfig{
		Universe:          16384,
		Seed:              42,
		Operations:        100000,
		Capacity:          4096,
		WarmupOps:         10000,
		LatencySampleRate: 100,
		MaxLatencySamples: 10000,
		Suite:             "standard",
	}
}

// LoadSuiteConfig reads and parses a YAML suite configuration. Parsing is
// strict: unrecognized keys (typos) are rejected.
//
// The standard suite is only a fallback for files that select no
// workloads at all; a file defining custom workloads runs exactly those.
func LoadSuiteConfig(path string) (*SuiteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading suite config: %w", err)
	}
	cfg := DefaultSuiteConfig()
	cfg.Suite = ""
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing suite config: %w", err)
	}
	if cfg.Suite == "" && len(cfg.Workloads) == 0 {
		cfg.Suite = DefaultSuiteConfig().Suite
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration eagerly so a bad file fails before
// any simulation starts.
func (c *SuiteConfig) Validate() error {
	if c.Operations <= 0 {
		return fmt.Errorf("operations must be positive, got %d", c.Operations)
	}
	if c.Capacity <= 0 {
		return fmt.Errorf("capacity must be positive, got %d", c.Capacity)
	}
	if c.WarmupOps < 0 {
		return fmt.Errorf("warmup_ops must be non-negative, got %d", c.WarmupOps)
	}
	if c.Suite != "" {
		if _, ok := Suite(c.Suite); !ok {
			return fmt.Errorf("unknown suite %q; valid: standard, extended", c.Suite)
		}
	}
	if c.Suite == "" && len(c.Workloads) == 0 {
		return fmt.Errorf("either a suite name or at least one workload entry is required")
	}
	seen := make(map[string]bool, len(c.Workloads))
	for i := range c.Workloads {
		w := &c.Workloads[i]
		prefix := fmt.Sprintf("workloads[%d]", i)
		if w.ID == "" {
			return fmt.Errorf("%s: id is required", prefix)
		}
		if seen[w.ID] {
			return fmt.Errorf("%s: duplicate id %q", prefix, w.ID)
		}
		seen[w.ID] = true
		for name, val := range w.Params {
			if math.IsNaN(val) || math.IsInf(val, 0) {
				return fmt.Errorf("%s.params.%s must be a finite number, got %f", prefix, name, val)
			}
		}
		if _, err := w.Workload(); err != nil {
			return fmt.Errorf("%s: %w", prefix, err)
		}
	}
	return nil
}

// Cases resolves the configuration into catalog entries: the named suite
// (if any) followed by the custom workload entries.
func (c *SuiteConfig) Cases() ([]Case, error) {
	var cases []Case
	if c.Suite != "" {
		suite, ok := Suite(c.Suite)
		if !ok {
			return nil, fmt.Errorf("unknown suite %q", c.Suite)
		}
		cases = append(cases, suite...)
	}
	for i := range c.Workloads {
		w := &c.Workloads[i]
		wl, err := w.Workload()
		if err != nil {
			return nil, fmt.Errorf("workloads[%d]: %w", i, err)
		}
		name := w.DisplayName
		if name == "" {
			name = w.ID
		}
		cases = append(cases, Case{ID: w.ID, DisplayName: name, Workload: wl})
	}
	return cases, nil
}

// Workload builds the variant value for this entry.
func (w *WorkloadSpec) Workload() (Workload, error) {
	return Parse(w.Kind, w.Params)
}

// requireParam checks that all required keys exist in a params map.
func requireParam(params map[string]float64, keys ...string) error {
	for _, k := range keys {
		if _, ok := params[k]; !ok {
			return fmt.Errorf("workload requires parameter %q", k)
		}
	}
	return nil
}

// Parse builds a Workload variant from its kind name and a parameter map,
// the representation used by YAML configs and CLI flags. The returned
// variant is validated.
func Parse(kind string, params map[string]float64) (Workload, error) {
	var w Workload
	switch kind {
	case "uniform":
		w = Uniform{}
	case "hotset":
		if err := requireParam(params, "hot_fraction", "hot_prob"); err != nil {
			return nil, err
		}
		w = HotSet{HotFraction: params["hot_fraction"], HotProb: params["hot_prob"]}
	case "scan":
		w = Scan{}
	case "zipfian":
		if err := requireParam(params, "exponent"); err != nil {
			return nil, err
		}
		w = Zipfian{Exponent: params["exponent"]}
	case "scrambled_zipfian":
		if err := requireParam(params, "exponent"); err != nil {
			return nil, err
		}
		w = ScrambledZipfian{Exponent: params["exponent"]}
	case "latest":
		if err := requireParam(params, "exponent"); err != nil {
			return nil, err
		}
		w = Latest{Exponent: params["exponent"]}
	case "shifting_hotspot":
		if err := requireParam(params, "shift_interval", "hot_fraction"); err != nil {
			return nil, err
		}
		w = ShiftingHotspot{ShiftInterval: uint64(params["shift_interval"]), HotFraction: params["hot_fraction"]}
	case "exponential":
		if err := requireParam(params, "lambda"); err != nil {
			return nil, err
		}
		w = Exponential{Lambda: params["lambda"]}
	case "pareto":
		if err := requireParam(params, "shape"); err != nil {
			return nil, err
		}
		w = Pareto{Shape: params["shape"]}
	case "scan_resistance":
		if err := requireParam(params, "scan_fraction", "scan_length", "point_exponent"); err != nil {
			return nil, err
		}
		w = ScanResistance{
			ScanFraction:  params["scan_fraction"],
			ScanLength:    uint64(params["scan_length"]),
			PointExponent: params["point_exponent"],
		}
	case "correlated":
		if err := requireParam(params, "stride", "burst_len", "burst_prob"); err != nil {
			return nil, err
		}
		w = Correlated{
			Stride:    uint64(params["stride"]),
			BurstLen:  uint64(params["burst_len"]),
			BurstProb: params["burst_prob"],
		}
	case "loop":
		if err := requireParam(params, "working_set_size"); err != nil {
			return nil, err
		}
		w = Loop{WorkingSetSize: uint64(params["working_set_size"])}
	case "working_set_churn":
		if err := requireParam(params, "working_set_size", "churn_rate"); err != nil {
			return nil, err
		}
		w = WorkingSetChurn{
			WorkingSetSize: uint64(params["working_set_size"]),
			ChurnRate:      params["churn_rate"],
		}
	case "bursty":
		if err := requireParam(params, "hurst", "base_exponent"); err != nil {
			return nil, err
		}
		w = Bursty{Hurst: params["hurst"], BaseExponent: params["base_exponent"]}
	case "flash_crowd":
		if err := requireParam(params, "base_exponent", "flash_prob", "flash_duration", "flash_keys", "flash_intensity"); err != nil {
			return nil, err
		}
		w = FlashCrowd{
			BaseExponent:   params["base_exponent"],
			FlashProb:      params["flash_prob"],
			FlashDuration:  uint64(params["flash_duration"]),
			FlashKeys:      uint64(params["flash_keys"]),
			FlashIntensity: params["flash_intensity"],
		}
	case "mixture":
		w = Mixture{}
	default:
		return nil, fmt.Errorf("unknown workload kind %q", kind)
	}
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("%s workload: %w", kind, err)
	}
	return w, nil
}
