package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/lmorg/readline/v4"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fpl-lang/fpl/ast"
	"github.com/fpl-lang/fpl/core"
	"github.com/fpl-lang/fpl/parse"
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactively match a subject expression against a pattern",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := NewREPL(os.Stdin, cmd.OutOrStdout())
			return r.Run()
		},
	}
}

// REPL is an interactive aid for authoring fpl proofs: it reads a line
// of the form "subject ~ pattern", parses each side, and reports the
// bindings core.Match produces (or the reason it failed). Each line is
// matched on its own. It does not evaluate anything; fpl has no
// evaluator, only structural matching and substitution.
type REPL struct {
	input  io.Reader
	output io.Writer
	prompt string
}

func NewREPL(input io.Reader, output io.Writer) *REPL {
	return &REPL{input: input, output: output, prompt: "fpl> "}
}

func (r *REPL) isInteractive() bool {
	if r.input == os.Stdin {
		return term.IsTerminal(int(os.Stdin.Fd()))
	}
	return false
}

func (r *REPL) Run() error {
	if r.isInteractive() {
		return r.runInteractive()
	}
	return r.runScripted()
}

func (r *REPL) runInteractive() error {
	fmt.Fprintln(r.output, "fpl match debugger")
	fmt.Fprintln(r.output, "type 'subject ~ pattern', or 'help'")

	start := time.Now()
	rl := readline.NewInstance()
	log.Printf("start up in %g ms", 1000.0*float64(time.Since(start))/1.0e9)
	for {
		rl.SetPrompt(r.prompt)
		line, err := rl.Readline()
		if err != nil {
			return nil
		}
		if r.handleLine(strings.TrimSpace(line)) {
			return nil
		}
	}
}

func (r *REPL) runScripted() error {
	scanner := bufio.NewScanner(r.input)
	for scanner.Scan() {
		if r.handleLine(strings.TrimSpace(scanner.Text())) {
			break
		}
	}
	return scanner.Err()
}

// handleLine processes one line and reports whether the REPL should
// exit.
func (r *REPL) handleLine(line string) bool {
	switch line {
	case "":
		return false
	case "quit", "exit":
		fmt.Fprintln(r.output, "goodbye")
		return true
	case "help":
		r.printHelp()
		return false
	}

	subjectSrc, patternSrc, ok := strings.Cut(line, "~")
	if !ok {
		fmt.Fprintln(r.output, "expected 'subject ~ pattern' (type 'help')")
		return false
	}

	subject, err := r.parseExpr("subject", subjectSrc)
	if err != nil {
		fmt.Fprintf(r.output, "subject: %v\n", err)
		return false
	}
	template, err := r.parseExpr("pattern", patternSrc)
	if err != nil {
		fmt.Fprintf(r.output, "pattern: %v\n", err)
		return false
	}

	bindings := core.NewBindingStorage()
	hof := core.NewManualAnyFunctionBinding(nil)
	if err := core.Match(subject, template, bindings, hof); err != nil {
		fmt.Fprintf(r.output, "no match: %v\n", err)
		return false
	}

	names := bindings.Names()
	if len(names) == 0 {
		fmt.Fprintln(r.output, "match (no bindings)")
		return false
	}
	fmt.Fprintln(r.output, "match:")
	for _, name := range names {
		value, _ := bindings.Lookup(name)
		fmt.Fprintf(r.output, "  %s = %s\n", name, value)
	}
	return false
}

func (r *REPL) parseExpr(label, src string) (core.Expr, error) {
	node, errs := parse.ParseExpr(label, strings.TrimSpace(src))
	if len(errs) > 0 {
		return nil, errs[0]
	}
	return ast.Retype(node), nil
}

func (r *REPL) printHelp() {
	fmt.Fprint(r.output, `
fpl match debugger

  subject ~ pattern   match subject against pattern, printing any bindings
  help                show this message
  quit, exit          leave the debugger

Each plain name in the pattern binds to whatever subtree it meets. No
function binding can be given here, so a pattern containing an
any-function $name(args) never matches.
`)
}
