package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fpl-lang/fpl"
	"github.com/fpl-lang/fpl/diag"
	"github.com/fpl-lang/fpl/parse"
)

// defaultPath is the fixed input path a bare `fplcheck check` (or a bare
// `fplcheck`) looks for, matching the original single-file contract.
const defaultPath = "fpl/math.fpl"

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Check one fpl document and report any errors",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultPath
			if len(args) > 0 {
				path = args[0]
			}
			return runCheck(cmd.OutOrStdout(), path)
		},
	}
	return cmd
}

func runCheck(w io.Writer, path string) error {
	start := time.Now()
	result, err := fpl.CheckFile(path)
	if verbose {
		log.Printf("checked %q in %g ms", path, 1000.0*float64(time.Since(start))/1.0e9)
	}
	if err != nil {
		return err
	}
	if result.OK() {
		fmt.Fprintf(w, "%q is OK\n", path)
		return nil
	}

	source, _ := os.ReadFile(path)
	for _, e := range result.Errors {
		diag.Print(w, string(source), e)
		if ute, ok := e.(parse.UnexpectedTokenError); ok {
			names := make([]string, len(ute.Expected))
			for i, t := range ute.Expected {
				names[i] = t.String()
			}
			diag.PrintExpectedTokens(w, names)
		}
	}
	return fmt.Errorf("%q has %d error(s)", path, len(result.Errors))
}
