package fpl

import (
	"fmt"
	"strings"
	"testing"

	"github.com/fpl-lang/fpl/engine"
	"github.com/fpl-lang/fpl/parse"
	"github.com/stretchr/testify/require"
)

// proofStepLine renders a proof step body (an expression line followed
// by a caret line pointing at a leading substring of it) with the caret
// run under exprText's first charCount characters, indented by the given
// number of spaces. This mirrors how `.fpl` source is actually written:
// the expression on one line, a "^^^" pointer beneath it.
func proofStepLine(indent string, exprText string, charCount int, rest string) string {
	carets := strings.Repeat("^", charCount)
	return fmt.Sprintf("%s%s;\n%s%s %s;\n", indent, exprText, indent, carets, rest)
}

// TestCheckSimpleCommutativityRewrite mirrors end-to-end scenario A. A
// helper formula states the general commutativity identity; the formula
// under test is the concrete instance, proved via one root-level
// rewrite through the helper.
func TestCheckSimpleCommutativityRewrite(t *testing.T) {
	indent := "  "
	rootExpr := "part(b=0, a, q)"
	src := "[m]\n" +
		"1. part(cond, then, else) <-> part(not(cond), else, then);\n" +
		"2. part(b=0, a, q) <-> part(not(b=0), q, a) {\n" +
		proofStepLine(indent, rootExpr, len(rootExpr), "m.1l") +
		"};\n"

	result := Check("test.fpl", src)
	require.Empty(t, result.Errors, "unexpected errors: %v", result.Errors)
	require.True(t, result.OK())
}

func TestCheckWithUserSuppliedBinding(t *testing.T) {
	indent := "  "
	// A helper formula (no proof of its own) supplies the shape
	// part(x,a,a) <-> a; the formula under test starts at "a" and
	// rewrites right-to-left through it, which needs the otherwise
	// unmatched "x" supplied explicitly.
	rootExpr := "a"
	src := "[m]\n" +
		"1. part(x, a, a) <-> a;\n" +
		"2. a <-> part(b=0, a, a) {\n" +
		proofStepLine(indent, rootExpr, len(rootExpr), "m.1r x := b=0") +
		"};\n"

	result := Check("test.fpl", src)
	require.Empty(t, result.Errors, "unexpected errors: %v", result.Errors)
}

// TestCheckHigherOrderRewrite mirrors end-to-end scenario C: a helper
// formula states the any-function identity in the abstract, and the
// formula under test is the concrete instance, rewritten through it
// with an explicit $f(x) := a*x function binding.
func TestCheckHigherOrderRewrite(t *testing.T) {
	indent := "  "
	rootExpr := "part(not(b=0), a*part($true, 1, $undefined), a)"
	wantRHS := "part(not(b=0), a*part($true & not(b=0), 1, $undefined), a)"
	src := "[m]\n" +
		"1. part(cond, $f(part(cond2, then2, else2)), else) <-> " +
		"part(cond, $f(part(cond2 & cond, then2, else2)), else);\n" +
		"2. " + rootExpr + " <-> " + wantRHS + " {\n" +
		proofStepLine(indent, rootExpr, len(rootExpr), "m.1l $f(x) := a*x") +
		"};\n"

	result := Check("test.fpl", src)
	require.Empty(t, result.Errors, "unexpected errors: %v", result.Errors)
}

func TestCheckStepWrongWhenExpressionDoesNotContinue(t *testing.T) {
	indent := "  "
	rootExpr := "b" // does not equal the formula's LHS "a"
	src := "[m]\n" +
		"1. a <-> a {\n" +
		proofStepLine(indent, rootExpr, len(rootExpr), "m.1l") +
		"};\n"

	result := Check("test.fpl", src)
	require.NotEmpty(t, result.Errors)
}

func TestCheckFormulaNotFound(t *testing.T) {
	indent := "  "
	rootExpr := "a"
	src := "[m]\n" +
		"1. a <-> a {\n" +
		proofStepLine(indent, rootExpr, len(rootExpr), "other.9l") +
		"};\n"

	result := Check("test.fpl", src)
	require.NotEmpty(t, result.Errors)
	var found bool
	for _, e := range result.Errors {
		if _, ok := e.(engine.FormulaNotFoundError); ok {
			found = true
		}
	}
	require.True(t, found)
}

func TestCheckNotAllBindingsProvided(t *testing.T) {
	indent := "  "
	rootExpr := "a"
	src := "[m]\n" +
		"1. part(x, a, a) <-> a;\n" +
		"2. a <-> part(b=0, a, a) {\n" +
		proofStepLine(indent, rootExpr, len(rootExpr), "m.1r") + // missing x := ...
		"};\n"

	result := Check("test.fpl", src)
	require.NotEmpty(t, result.Errors)
	var found bool
	for _, e := range result.Errors {
		if _, ok := e.(engine.NotAllBindingsProvidedError); ok {
			found = true
		}
	}
	require.True(t, found)
}

// TestCheckCycleRejection mirrors end-to-end scenario F: a formula whose
// proof uses another formula, whose own proof uses the first one back.
func TestCheckCycleRejection(t *testing.T) {
	indentA := "  "
	rootA := "a"
	rootB := "b"
	src := "[m]\n" +
		"1. a <-> b {\n" +
		proofStepLine(indentA, rootA, len(rootA), "m.2l") +
		"};\n" +
		"2. b <-> a {\n" +
		proofStepLine(indentA, rootB, len(rootB), "m.1l") +
		"};\n"

	result := Check("test.fpl", src)
	require.NotEmpty(t, result.Errors)
	var found bool
	for _, e := range result.Errors {
		if _, ok := e.(engine.ProofHasCyclesError); ok {
			found = true
		}
	}
	require.True(t, found)
}

func TestCheckWrongNumberInStart(t *testing.T) {
	src := "[m]\n" +
		"2. a <-> a;\n"

	result := Check("test.fpl", src)
	require.NotEmpty(t, result.Errors)
	var found bool
	for _, e := range result.Errors {
		if _, ok := e.(engine.WrongNumberInStartError); ok {
			found = true
		}
	}
	require.True(t, found)
}

func TestCheckAcceptsNonCyclicChainThroughIntermediateFormula(t *testing.T) {
	// [m] 1 depends on nothing, 2 depends on 1, 3 depends on 2: a DAG, not a
	// cycle, even though every formula is used by a later one.
	indent := "  "
	src := "[m]\n" +
		"1. a <-> a;\n" +
		"2. b <-> b {\n" +
		proofStepLine(indent, "b", 1, "m.1l") +
		"};\n" +
		"3. c <-> c {\n" +
		proofStepLine(indent, "c", 1, "m.2l") +
		"};\n"

	result := Check("test.fpl", src)
	require.Empty(t, result.Errors, "unexpected errors: %v", result.Errors)
}

func TestCheckParseErrorShortCircuitsAnalysis(t *testing.T) {
	src := "[m]\n1. + <-> +;\n"
	result := Check("test.fpl", src)
	require.NotEmpty(t, result.Errors)
	for _, e := range result.Errors {
		_, isParseErr := e.(parse.UnexpectedTokenError)
		require.True(t, isParseErr, "expected only parse errors, got %T: %v", e, e)
	}
}

func TestCheckFormulaArityAnalysisError(t *testing.T) {
	src := "[m]\n1. and($f(x), $f(x, y)) <-> a;\n"
	result := Check("test.fpl", src)
	require.NotEmpty(t, result.Errors)
}
