// Package results defines the versioned JSON artifact written by
// benchmark runs. The schema version is bumped on any breaking change so
// downstream tooling can refuse artifacts it does not understand.
package results

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/cachebench/cachebench/sim"
	"github.com/cachebench/cachebench/sim/measure"
)

// SchemaVersion identifies the artifact layout.
const SchemaVersion = "1.0.0"

// Artifact is the top-level benchmark result document.
type Artifact struct {
	SchemaVersion string      `json:"schema_version"`
	Run           RunMetadata `json:"run"`
	Rows          []Row       `json:"rows"`
}

// RunMetadata describes the run that produced the artifact.
type RunMetadata struct {
	RunID     string          `json:"run_id"`
	Timestamp time.Time       `json:"timestamp"`
	GoVersion string          `json:"go_version"`
	Host      string          `json:"host"`
	Config    json.RawMessage `json:"config,omitempty"`
}

// Row carries the metrics for one policy/workload pairing.
type Row struct {
	PolicyID     string   `json:"policy_id"`
	PolicyName   string   `json:"policy_name"`
	WorkloadID   string   `json:"workload_id"`
	WorkloadName string   `json:"workload_name"`
	Metrics      *Metrics `json:"metrics,omitempty"`
}

// Metrics bundles the measurement snapshots a row may carry. Absent
// sections are omitted from the JSON output.
type Metrics struct {
	Hits           *HitSnapshot                  `json:"hits,omitempty"`
	Throughput     *ThroughputSnapshot           `json:"throughput,omitempty"`
	Latency        *LatencySnapshot              `json:"latency,omitempty"`
	Evictions      *EvictionSnapshot             `json:"evictions,omitempty"`
	ScanResistance *measure.ScanResistanceResult `json:"scan_resistance,omitempty"`
	Adaptation     *measure.AdaptationResult     `json:"adaptation,omitempty"`
}

// HitSnapshot is the serialized form of sim.HitStats plus derived rates.
type HitSnapshot struct {
	Hits    uint64  `json:"hits"`
	Misses  uint64  `json:"misses"`
	Inserts uint64  `json:"inserts"`
	Updates uint64  `json:"updates"`
	HitRate float64 `json:"hit_rate"`
}

// NewHitSnapshot captures stats with its derived hit rate.
func NewHitSnapshot(stats sim.HitStats) *HitSnapshot {
	return &HitSnapshot{
		Hits:    stats.Hits,
		Misses:  stats.Misses,
		Inserts: stats.Inserts,
		Updates: stats.Updates,
		HitRate: stats.HitRate(),
	}
}

// ThroughputSnapshot is the serialized form of sim.ThroughputStats.
type ThroughputSnapshot struct {
	DurationSecs  float64 `json:"duration_secs"`
	OpsPerSec     float64 `json:"ops_per_sec"`
	GetsPerSec    float64 `json:"gets_per_sec"`
	InsertsPerSec float64 `json:"inserts_per_sec"`
}

// NewThroughputSnapshot captures throughput stats.
func NewThroughputSnapshot(stats sim.ThroughputStats) *ThroughputSnapshot {
	return &ThroughputSnapshot{
		DurationSecs:  stats.TotalDuration.Seconds(),
		OpsPerSec:     stats.OpsPerSec,
		GetsPerSec:    stats.GetsPerSec,
		InsertsPerSec: stats.InsertsPerSec,
	}
}

// LatencySnapshot is the serialized form of sim.LatencyStats, with
// durations in nanoseconds.
type LatencySnapshot struct {
	MinNanos    int64 `json:"min_nanos"`
	P50Nanos    int64 `json:"p50_nanos"`
	P95Nanos    int64 `json:"p95_nanos"`
	P99Nanos    int64 `json:"p99_nanos"`
	MaxNanos    int64 `json:"max_nanos"`
	MeanNanos   int64 `json:"mean_nanos"`
	SampleCount int   `json:"sample_count"`
}

// NewLatencySnapshot captures latency stats.
func NewLatencySnapshot(stats sim.LatencyStats) *LatencySnapshot {
	return &LatencySnapshot{
		MinNanos:    stats.Min.Nanoseconds(),
		P50Nanos:    stats.P50.Nanoseconds(),
		P95Nanos:    stats.P95.Nanoseconds(),
		P99Nanos:    stats.P99.Nanoseconds(),
		MaxNanos:    stats.Max.Nanoseconds(),
		MeanNanos:   stats.Mean.Nanoseconds(),
		SampleCount: stats.SampleCount,
	}
}

// EvictionSnapshot is the serialized form of sim.EvictionStats.
type EvictionSnapshot struct {
	TotalEvictions     uint64  `json:"total_evictions"`
	EvictionsPerInsert float64 `json:"evictions_per_insert"`
}

// NewEvictionSnapshot captures eviction stats.
func NewEvictionSnapshot(stats sim.EvictionStats) *EvictionSnapshot {
	return &EvictionSnapshot{
		TotalEvictions:     stats.TotalEvictions,
		EvictionsPerInsert: stats.EvictionsPerInsert,
	}
}

// NewArtifact creates an artifact with fresh run metadata. config may be
// nil when the run had no config file.
func NewArtifact(config json.RawMessage) *Artifact {
	host, _ := os.Hostname()
	return &Artifact{
		SchemaVersion: SchemaVersion,
		Run: RunMetadata{
			RunID:     uuid.NewString(),
			Timestamp: time.Now().UTC(),
			GoVersion: runtime.Version(),
			Host:      host,
			Config:    config,
		},
	}
}

// AddRow appends a result row.
func (a *Artifact) AddRow(row Row) {
	a.Rows = append(a.Rows, row)
}

// WriteFile writes the artifact as indented JSON.
func (a *Artifact) WriteFile(path string) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write results %s: %w", path, err)
	}
	return nil
}

// ReadFile loads an artifact, rejecting unknown schema versions.
func ReadFile(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results %s: %w", path, err)
	}
	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("parse results %s: %w", path, err)
	}
	if artifact.SchemaVersion != SchemaVersion {
		return nil, fmt.Errorf("unsupported results schema %q (want %s)", artifact.SchemaVersion, SchemaVersion)
	}
	return &artifact, nil
}
