package main

import (
	"os"

	"github.com/spf13/cobra"
)

// verbose is set by the root command's persistent --verbose flag and
// read by subcommands that trace extra timing/progress information via
// log.Printf, the same package the teacher's REPL uses for its startup
// timer.
var verbose bool

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fplcheck",
		Short: "fplcheck - a formal proof checker for algebraic identities",
		Long:  `Checks fpl documents: matching formulas against their proofs step by step.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.OutOrStdout(), defaultPath)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log extra timing/tracing information")
	root.AddCommand(newCheckCmd(), newWatchCmd(), newReplCmd())
	return root
}
