package workload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "suite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSuiteConfig_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "suite: standard\n")
	cfg, err := LoadSuiteConfig(path)
	require.NoError(t, err)

	defaults := DefaultSuiteConfig()
	assert.Equal(t, defaults.Universe, cfg.Universe)
	assert.Equal(t, defaults.Operations, cfg.Operations)
	assert.Equal(t, defaults.Capacity, cfg.Capacity)
}

func TestLoadSuiteConfig_RejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "suite: standard\nunivrse: 100\n")
	_, err := LoadSuiteConfig(path)
	require.Error(t, err, "typoed keys must be rejected, not silently ignored")
}

func TestLoadSuiteConfig_RejectsUnknownSuite(t *testing.T) {
	path := writeConfig(t, "suite: exhaustive\n")
	_, err := LoadSuiteConfig(path)
	assert.ErrorContains(t, err, "unknown suite")
}

func TestLoadSuiteConfig_CustomWorkloads(t *testing.T) {
	path := writeConfig(t, `
universe: 1000
seed: 7
operations: 500
capacity: 100
workloads:
  - id: my_hotset
    display_name: My HotSet
    kind: hotset
    params:
      hot_fraction: 0.2
      hot_prob: 0.8
  - id: my_zipf
    kind: zipfian
    params:
      exponent: 1.2
`)
	cfg, err := LoadSuiteConfig(path)
	require.NoError(t, err)

	cases, err := cfg.Cases()
	require.NoError(t, err)
	require.Len(t, cases, 2)
	assert.Equal(t, "My HotSet", cases[0].DisplayName)
	// DisplayName falls back to the id.
	assert.Equal(t, "my_zipf", cases[1].DisplayName)
}

func TestLoadSuiteConfig_CustomWorkloadsOnly_NoSuiteFallback(t *testing.T) {
	// A file that defines its own workloads must not inherit the standard
	// suite on top of them.
	path := writeConfig(t, `
workloads:
  - id: only_one
    kind: uniform
`)
	cfg, err := LoadSuiteConfig(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.Suite)

	cases, err := cfg.Cases()
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, "only_one", cases[0].ID)
}

func TestLoadSuiteConfig_NoSelectionFallsBackToStandard(t *testing.T) {
	path := writeConfig(t, "operations: 2000\n")
	cfg, err := LoadSuiteConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "standard", cfg.Suite)

	cases, err := cfg.Cases()
	require.NoError(t, err)
	assert.Len(t, cases, len(StandardSuite()))
}

func TestLoadSuiteConfig_SuitePlusCustom(t *testing.T) {
	path := writeConfig(t, `
suite: standard
workloads:
  - id: extra
    kind: uniform
`)
	cfg, err := LoadSuiteConfig(path)
	require.NoError(t, err)
	cases, err := cfg.Cases()
	require.NoError(t, err)
	assert.Len(t, cases, len(StandardSuite())+1)
}

func TestSuiteConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SuiteConfig)
		wantErr string
	}{
		{"zero operations", func(c *SuiteConfig) { c.Operations = 0 }, "operations"},
		{"zero capacity", func(c *SuiteConfig) { c.Capacity = 0 }, "capacity"},
		{"negative warmup", func(c *SuiteConfig) { c.WarmupOps = -1 }, "warmup_ops"},
		{"no suite no workloads", func(c *SuiteConfig) { c.Suite = "" }, "suite name or at least one workload"},
		{
			"missing workload id",
			func(c *SuiteConfig) { c.Workloads = []WorkloadSpec{{Kind: "uniform"}} },
			"id is required",
		},
		{
			"duplicate workload id",
			func(c *SuiteConfig) {
				c.Workloads = []WorkloadSpec{
					{ID: "a", Kind: "uniform"},
					{ID: "a", Kind: "scan"},
				}
			},
			"duplicate id",
		},
		{
			"missing parameter",
			func(c *SuiteConfig) { c.Workloads = []WorkloadSpec{{ID: "z", Kind: "zipfian"}} },
			"exponent",
		},
		{
			"unknown kind",
			func(c *SuiteConfig) { c.Workloads = []WorkloadSpec{{ID: "x", Kind: "fractal"}} },
			"unknown workload kind",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSuiteConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestParse_AllKinds(t *testing.T) {
	specs := map[string]map[string]float64{
		"uniform":           nil,
		"hotset":            {"hot_fraction": 0.1, "hot_prob": 0.9},
		"scan":              nil,
		"zipfian":           {"exponent": 1.0},
		"scrambled_zipfian": {"exponent": 1.0},
		"latest":            {"exponent": 0.8},
		"shifting_hotspot":  {"shift_interval": 1000, "hot_fraction": 0.1},
		"exponential":       {"lambda": 0.05},
		"pareto":            {"shape": 1.5},
		"scan_resistance":   {"scan_fraction": 0.2, "scan_length": 100, "point_exponent": 1.0},
		"correlated":        {"stride": 8, "burst_len": 4, "burst_prob": 0.3},
		"loop":              {"working_set_size": 512},
		"working_set_churn": {"working_set_size": 256, "churn_rate": 0.01},
		"bursty":            {"hurst": 0.8, "base_exponent": 1.0},
		"flash_crowd": {
			"base_exponent": 1.0, "flash_prob": 0.01, "flash_duration": 100,
			"flash_keys": 10, "flash_intensity": 50,
		},
		"mixture": nil,
	}
	for kind, params := range specs {
		w, err := Parse(kind, params)
		require.NoError(t, err, "kind %s", kind)
		assert.Equal(t, kind, w.Kind())
	}
}

func TestParse_InvalidParamsSurfaceKind(t *testing.T) {
	_, err := Parse("zipfian", map[string]float64{"exponent": -1})
	require.Error(t, err)
	assert.ErrorContains(t, err, "zipfian")
}
