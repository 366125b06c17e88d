package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cachebench/cachebench/sim"
	"github.com/cachebench/cachebench/sim/formats"
)

var (
	rewriteIn        string // Input trace path
	rewriteInFormat  string // Input trace format
	rewriteOut       string // Output trace path
	rewriteOutFormat string // Output trace format
	rewriteScramble  bool   // Hash keys into a fresh keyspace
	rewriteKeyspace  uint64 // Scrambled keyspace size
	rewriteSeed      uint32 // Scramble hash seed
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite",
	Short: "Convert a trace between formats",
	Long: "Convert a trace between formats, optionally scrambling keys through a seeded hash " +
		"so the rewritten trace hides the original key identities while staying deterministic.",
	Run: func(cmd *cobra.Command, args []string) {
		in, err := formats.Open(rewriteIn)
		if err != nil {
			logrus.Fatalf("Trace open failed: %v", err)
		}
		defer in.Close()
		var source sim.EventSource
		source, err = newTraceReader(rewriteInFormat, in)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if rewriteScramble {
			source = formats.NewScrambled(source, rewriteKeyspace, rewriteSeed)
		}

		out, err := formats.Create(rewriteOut)
		if err != nil {
			logrus.Fatalf("Output open failed: %v", err)
		}
		writer, err := newTraceWriter(rewriteOutFormat, out)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

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
		logrus.Infof("Rewrote %d events from %s (%s) to %s (%s)", written, rewriteIn, rewriteInFormat, rewriteOut, rewriteOutFormat)
	},
}

func init() {
	rewriteCmd.Flags().StringVar(&rewriteIn, "in", "", "Input trace path")
	rewriteCmd.Flags().StringVar(&rewriteInFormat, "in-format", "keyonly", "Input format (keyonly, jsonl, csv, csv-keyonly, arc, lirs, cachelib)")
	rewriteCmd.Flags().StringVar(&rewriteOut, "out", "", "Output trace path (.sz suffix enables snappy compression)")
	rewriteCmd.Flags().StringVar(&rewriteOutFormat, "out-format", "keyonly", "Output format (keyonly, jsonl, csv)")
	rewriteCmd.Flags().BoolVar(&rewriteScramble, "scramble", false, "Hash keys into a fresh keyspace")
	rewriteCmd.Flags().Uint64Var(&rewriteKeyspace, "keyspace", 1<<24, "Scrambled keyspace size")
	rewriteCmd.Flags().Uint32Var(&rewriteSeed, "scramble-seed", 0, "Scramble hash seed")
	rewriteCmd.MarkFlagRequired("in")
	rewriteCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(rewriteCmd)
}
