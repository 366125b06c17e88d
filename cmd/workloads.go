package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cachebench/cachebench/sim/workload"
)

var workloadsSuite string // Suite to list

var workloadsCmd = &cobra.Command{
	Use:   "workloads",
	Short: "List the workload cases of a catalog suite",
	Run: func(cmd *cobra.Command, args []string) {
		cases, ok := workload.Suite(workloadsSuite)
		if !ok {
			logrus.Fatalf("Unknown suite %q (valid: standard, extended)", workloadsSuite)
		}
		table := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(table, "id\tname\tkind")
		for _, c := range cases {
			fmt.Fprintf(table, "%s\t%s\t%s\n", c.ID, c.DisplayName, c.Workload.Kind())
		}
		table.Flush()
	},
}

func init() {
	workloadsCmd.Flags().StringVar(&workloadsSuite, "suite", "standard", "Suite name (standard, extended)")

	rootCmd.AddCommand(workloadsCmd)
}
