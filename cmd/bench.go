package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cachebench/cachebench/sim"
	"github.com/cachebench/cachebench/sim/measure"
	"github.com/cachebench/cachebench/sim/results"
	"github.com/cachebench/cachebench/sim/workload"
)

var (
	benchConfig         string   // YAML suite config path
	benchPolicies       []string // Policies to benchmark
	benchJSON           string   // Optional JSON artifact path
	benchScanResistance bool     // Include the scan resistance measurement
	benchAdaptation     bool     // Include the adaptation measurement
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run a workload suite against one or more cache policies",
	Long: "Run every workload of a suite against each selected policy and report hit rates, " +
		"throughput and sampled latencies. Without --config the standard suite runs at its defaults.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := workload.DefaultSuiteConfig()
		if benchConfig != "" {
			loaded, err := workload.LoadSuiteConfig(benchConfig)
			if err != nil {
				logrus.Fatalf("Suite config load failed: %v", err)
			}
			cfg = *loaded
		}
		cases, err := cfg.Cases()
		if err != nil {
			logrus.Fatalf("Suite resolution failed: %v", err)
		}
		if len(benchPolicies) == 0 {
			logrus.Fatal("At least one policy is required")
		}

		logrus.Infof("Benchmarking %d workloads x %d policies (universe=%d ops=%d capacity=%d seed=%d)",
			len(cases), len(benchPolicies), cfg.Universe, cfg.Operations, cfg.Capacity, cfg.Seed)

		artifact := newBenchArtifact(cfg)
		table := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(table, "workload\tpolicy\thit_rate\tops/s\tp99\tevictions")

		for _, c := range cases {
			for _, policyID := range benchPolicies {
				row, err := runBenchCase(cfg, c, policyID)
				if err != nil {
					logrus.Fatalf("Benchmark %s/%s failed: %v", c.ID, policyID, err)
				}
				artifact.AddRow(row)
				evictions := "-"
				if row.Metrics.Evictions != nil {
					evictions = fmt.Sprintf("%d", row.Metrics.Evictions.TotalEvictions)
				}
				fmt.Fprintf(table, "%s\t%s\t%.2f%%\t%.0f\t%s\t%s\n",
					c.ID, policyID,
					row.Metrics.Hits.HitRate*100,
					row.Metrics.Throughput.OpsPerSec,
					time.Duration(row.Metrics.Latency.P99Nanos),
					evictions)
			}
		}
		table.Flush()

		if benchScanResistance || benchAdaptation {
			runMeasurements(cfg, artifact)
		}

		if benchJSON != "" {
			if err := artifact.WriteFile(benchJSON); err != nil {
				logrus.Fatalf("Artifact write failed: %v", err)
			}
			logrus.Infof("Wrote results artifact to %s (run %s)", benchJSON, artifact.Run.RunID)
		}
	},
}

// newBenchArtifact embeds the effective config so a result file is
// reproducible on its own.
func newBenchArtifact(cfg workload.SuiteConfig) *results.Artifact {
	raw, err := json.Marshal(cfg)
	if err != nil {
		logrus.Warnf("Could not embed config in artifact: %v", err)
		raw = nil
	}
	return results.NewArtifact(raw)
}

// runBenchCase replays one workload against one fresh cache: an unmeasured
// warmup, then a timed run with latency sampling.
func runBenchCase(cfg workload.SuiteConfig, c workload.Case, policyID string) (results.Row, error) {
	cache, err := newCache(policyID, cfg.Capacity)
	if err != nil {
		return results.Row{}, err
	}
	gen, err := c.Spec(cfg.Universe, cfg.Seed).Generator()
	if err != nil {
		return results.Row{}, err
	}

	if cfg.WarmupOps > 0 {
		sim.Simulate(cache, workload.NewBounded(gen, cfg.WarmupOps))
	}
	// Evictions during warmup are not part of the measured run.
	var warmupEvictions uint64
	if counter, ok := cache.(sim.EvictionCounter); ok {
		warmupEvictions = counter.Evictions()
	}

	sampler := sim.NewLatencySampler(cfg.MaxLatencySamples, cfg.LatencySampleRate)
	source := workload.NewBounded(gen, cfg.Operations)
	start := time.Now()
	stats := runTimed(cache, source, sampler)
	elapsed := time.Since(start)

	throughput := sim.ThroughputFromCounts(stats.Hits, stats.Misses, stats.Inserts, elapsed)
	metrics := &results.Metrics{
		Hits:       results.NewHitSnapshot(stats),
		Throughput: results.NewThroughputSnapshot(throughput),
		Latency:    results.NewLatencySnapshot(sampler.Stats()),
	}
	if counter, ok := cache.(sim.EvictionCounter); ok {
		evictions := sim.EvictionStatsFromCounts(counter.Evictions()-warmupEvictions, stats.Inserts)
		metrics.Evictions = results.NewEvictionSnapshot(evictions)
	}
	return results.Row{
		PolicyID:     policyID,
		PolicyName:   policyDisplayName(policyID),
		WorkloadID:   c.ID,
		WorkloadName: c.DisplayName,
		Metrics:      metrics,
	}, nil
}

// runTimed is read-through replay with per-operation latency sampling. It
// mirrors sim.Simulate and must stay in sync with its miss handling.
func runTimed(cache sim.CacheModel, source sim.EventSource, sampler *sim.LatencySampler) sim.HitStats {
	var stats sim.HitStats
	for {
		event, ok := source.NextEvent()
		if !ok {
			return stats
		}
		start := time.Now()
		if cache.Get(event.Key) {
			stats.Hits++
		} else {
			stats.Misses++
			cache.Insert(event.Key)
			stats.Inserts++
		}
		sampler.Record(time.Since(start))
	}
}

// runMeasurements appends the scan resistance and adaptation probes, one
// row per policy, each against a fresh cache.
func runMeasurements(cfg workload.SuiteConfig, artifact *results.Artifact) {
	for _, policyID := range benchPolicies {
		if benchScanResistance {
			cache, err := newCache(policyID, cfg.Capacity)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			result, err := measure.ScanResistance(cache, measure.DefaultScanResistanceConfig(cfg.Universe, cfg.Seed))
			if err != nil {
				logrus.Fatalf("Scan resistance measurement failed for %s: %v", policyID, err)
			}
			logrus.Infof("Scan resistance %s: %s", policyID, result.Summary())
			artifact.AddRow(results.Row{
				PolicyID:     policyID,
				PolicyName:   policyDisplayName(policyID),
				WorkloadID:   "scan_resistance_probe",
				WorkloadName: "Scan Resistance Probe",
				Metrics:      &results.Metrics{ScanResistance: &result},
			})
		}
		if benchAdaptation {
			cache, err := newCache(policyID, cfg.Capacity)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			result, err := measure.Adaptation(cache, measure.DefaultAdaptationConfig(cfg.Universe, cfg.Seed))
			if err != nil {
				logrus.Fatalf("Adaptation measurement failed for %s: %v", policyID, err)
			}
			logrus.Infof("Adaptation %s: %s", policyID, result.Summary())
			artifact.AddRow(results.Row{
				PolicyID:     policyID,
				PolicyName:   policyDisplayName(policyID),
				WorkloadID:   "adaptation_probe",
				WorkloadName: "Adaptation Probe",
				Metrics:      &results.Metrics{Adaptation: &result},
			})
		}
	}
}

func init() {
	benchCmd.Flags().StringVar(&benchConfig, "config", "", "YAML suite config path (default: standard suite)")
	benchCmd.Flags().StringSliceVar(&benchPolicies, "policies", []string{"lru", "fifo", "clock"}, "Comma-separated eviction policies")
	benchCmd.Flags().StringVar(&benchJSON, "json", "", "Write a JSON results artifact to this path")
	benchCmd.Flags().BoolVar(&benchScanResistance, "scan-resistance", false, "Include the scan resistance measurement")
	benchCmd.Flags().BoolVar(&benchAdaptation, "adaptation", false, "Include the adaptation measurement")

	rootCmd.AddCommand(benchCmd)
}
