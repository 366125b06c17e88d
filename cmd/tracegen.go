package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cachebench/cachebench/sim"
	"github.com/cachebench/cachebench/sim/formats"
	"github.com/cachebench/cachebench/sim/workload"
)

var (
	tracegenWorkload string   // Catalog case id or workload kind
	tracegenParams   []string // key=value parameters when --workload is a kind
	tracegenUniverse uint64   // Key space size
	tracegenSeed     uint64   // RNG seed
	tracegenOps      int      // Number of events to emit
	tracegenOut      string   // Output trace path
	tracegenFormat   string   // Output trace format
)

var tracegenCmd = &cobra.Command{
	Use:   "tracegen",
	Short: "Generate a synthetic trace file from a workload",
	Long: "Generate a deterministic synthetic trace. --workload accepts a catalog case id " +
		"(see the standard and extended suites) or a workload kind with --param key=value pairs.",
	Run: func(cmd *cobra.Command, args []string) {
		wl, err := resolveWorkload(tracegenWorkload, tracegenParams)
		if err != nil {
			logrus.Fatalf("Workload resolution failed: %v", err)
		}
		gen, err := workload.New(tracegenUniverse, wl, tracegenSeed)
		if err != nil {
			logrus.Fatalf("Generator construction failed: %v", err)
		}

		out, err := formats.Create(tracegenOut)
		if err != nil {
			logrus.Fatalf("Output open failed: %v", err)
		}
		writer, err := newTraceWriter(tracegenFormat, out)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		source := workload.NewBounded(gen, tracegenOps)
		written := 0
		for {
			event, ok := source.NextEvent()
			if !ok {
				break
			}
			if err := writer.WriteEvent(event); err != nil {
				logrus.Fatalf("Trace write failed: %v", err)
			}
			written++
		}
		if err := writer.Flush(); err != nil {
			logrus.Fatalf("Trace flush failed: %v", err)
		}
		// Close still flushes compressed output; an error here means a
		// truncated trace.
		if err := out.Close(); err != nil {
			logrus.Fatalf("Output close failed: %v", err)
		}
		logrus.Infof("Wrote %d events to %s (%s)", written, tracegenOut, tracegenFormat)
	},
}

// resolveWorkload accepts either a catalog case id or a workload kind with
// explicit parameters.
func resolveWorkload(name string, rawParams []string) (workload.Workload, error) {
	if c, ok := workload.FindCase(name); ok {
		if len(rawParams) > 0 {
			return nil, fmt.Errorf("catalog case %q does not take --param overrides", name)
		}
		return c.Workload, nil
	}
	params, err := parseParams(rawParams)
	if err != nil {
		return nil, err
	}
	return workload.Parse(name, params)
}

// parseParams turns repeated key=value flags into a parameter map.
func parseParams(raw []string) (map[string]float64, error) {
	params := make(map[string]float64, len(raw))
	for _, kv := range raw {
		key, value, found := strings.Cut(kv, "=")
		if !found {
			return nil, fmt.Errorf("malformed --param %q, want key=value", kv)
		}
		var f float64
		if _, err := fmt.Sscanf(value, "%g", &f); err != nil {
			return nil, fmt.Errorf("malformed --param %q: %w", kv, err)
		}
		params[key] = f
	}
	return params, nil
}

// traceWriter is the shared surface of the per-format writers.
type traceWriter interface {
	WriteEvent(sim.Event) error
	Flush() error
}

// newTraceWriter picks a writer by format name.
func newTraceWriter(format string, w io.Writer) (traceWriter, error) {
	switch format {
	case "keyonly":
		return formats.NewKeyOnlyWriter(w), nil
	case "jsonl":
		return formats.NewJsonlWriter(w), nil
	case "csv":
		return formats.NewCsvWriter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (valid: keyonly, jsonl, csv)", format)
	}
}

func init() {
	tracegenCmd.Flags().StringVar(&tracegenWorkload, "workload", "zipfian_1.0", "Catalog case id or workload kind")
	tracegenCmd.Flags().StringArrayVar(&tracegenParams, "param", nil, "Workload parameter as key=value (repeatable)")
	tracegenCmd.Flags().Uint64Var(&tracegenUniverse, "universe", 16384, "Key space size")
	tracegenCmd.Flags().Uint64Var(&tracegenSeed, "seed", 42, "Seed for deterministic generation")
	tracegenCmd.Flags().IntVar(&tracegenOps, "ops", 100000, "Number of events to generate")
	tracegenCmd.Flags().StringVar(&tracegenOut, "out", "trace.txt", "Output path (.sz suffix enables snappy compression)")
	tracegenCmd.Flags().StringVar(&tracegenFormat, "format", "keyonly", "Output format (keyonly, jsonl, csv)")

	rootCmd.AddCommand(tracegenCmd)
}
