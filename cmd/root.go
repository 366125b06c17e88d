package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cachebench/cachebench/sim"
	"github.com/cachebench/cachebench/sim/policy"
)

var logLevel string // Log verbosity level

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "cachebench",
	Short: "Deterministic cache workload generator and replay benchmark",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newCache builds a cache model by policy name.
func newCache(name string, capacity int) (sim.CacheModel, error) {
	switch name {
	case "lru":
		return policy.NewLRU(capacity), nil
	case "fifo":
		return policy.NewFIFO(capacity), nil
	case "clock":
		return policy.NewClock(capacity), nil
	default:
		return nil, fmt.Errorf("unknown policy %q (valid: lru, fifo, clock)", name)
	}
}

// policyDisplayName maps a policy id to its table heading.
func policyDisplayName(name string) string {
	switch name {
	case "lru":
		return "LRU"
	case "fifo":
		return "FIFO"
	case "clock":
		return "Clock"
	default:
		return name
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
}
