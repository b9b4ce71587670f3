// Package fpl is the top-level facade over the proof checker: parse a
// document, analyze its formulas, check the formula-usage graph for
// cycles, and verify every proof — in that order, stopping at the first
// phase that reports any error so a document with a parse error isn't
// also reported as cyclic.
package fpl

import (
	"os"

	"github.com/fpl-lang/fpl/ast"
	"github.com/fpl-lang/fpl/engine"
	"github.com/fpl-lang/fpl/parse"
)

// Result is the outcome of checking one document.
type Result struct {
	Math   ast.Math
	Errors []error
}

// OK reports whether the document is entirely sound.
func (r Result) OK() bool { return len(r.Errors) == 0 }

// Check parses and verifies source, identifying it as file in any
// reported error's span.
func Check(file, source string) Result {
	p := parse.NewParser(file, source)
	math := p.ParseMath()
	if errs := p.Errors(); len(errs) > 0 {
		return Result{Errors: errs}
	}

	db, errs := engine.BuildFormulaDB(file, math)
	if len(errs) > 0 {
		return Result{Math: math, Errors: errs}
	}

	if err := engine.DetectCycles(db); err != nil {
		return Result{Math: math, Errors: []error{err}}
	}

	return Result{Math: math, Errors: engine.VerifyAll(file, source, db, math)}
}

// CheckFile reads path and checks it.
func CheckFile(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, err
	}
	return Check(path, string(data)), nil
}
