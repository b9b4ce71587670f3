package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func noopHof() HofStrategy { return NewManualAnyFunctionBinding(nil) }

func TestMatchPatternBindsSubject(t *testing.T) {
	bindings := NewBindingStorage()
	err := Match(NewIntegerValue(5), NewPattern("x"), bindings, noopHof())
	require.NoError(t, err)
	v, ok := bindings.Lookup("x")
	require.True(t, ok)
	require.True(t, v.Equal(NewIntegerValue(5)))
}

func TestMatchRepeatedPatternRequiresEqualSubtrees(t *testing.T) {
	template := part(NewPattern("x"), NewPattern("a"), NewPattern("x"))

	// Same subtree at both "x" occurrences succeeds.
	subject := part(NewPattern("shared"), NewPattern("b"), NewPattern("shared"))
	bindings := NewBindingStorage()
	require.NoError(t, Match(subject, template, bindings, noopHof()))
	v, _ := bindings.Lookup("x")
	require.True(t, v.Equal(NewPattern("shared")))

	// Different subtrees at the two "x" occurrences fails.
	mismatch := part(NewPattern("left"), NewPattern("b"), NewPattern("right"))
	bindings2 := NewBindingStorage()
	err := Match(mismatch, template, bindings2, noopHof())
	require.Error(t, err)
	var ce BindingConflictError
	require.ErrorAs(t, err, &ce)
}

func TestMatchNamedFunctionNameMismatch(t *testing.T) {
	subject := NewNamedFunction("plus", NewIntegerValue(1))
	template := NewNamedFunction("minus", NewPattern("x"))
	err := Match(subject, template, NewBindingStorage(), noopHof())
	require.Error(t, err)
}

func TestMatchNamedFunctionArityMismatch(t *testing.T) {
	subject := NewNamedFunction("f", NewIntegerValue(1))
	template := NewNamedFunction("f", NewPattern("x"), NewPattern("y"))
	err := Match(subject, template, NewBindingStorage(), noopHof())
	require.Error(t, err)
}

func TestMatchNamedValue(t *testing.T) {
	require.NoError(t, Match(NewNamedValue("true"), NewNamedValue("true"), NewBindingStorage(), noopHof()))

	err := Match(NewNamedValue("true"), NewNamedValue("false"), NewBindingStorage(), noopHof())
	require.Error(t, err)
}

func TestMatchIntegerValue(t *testing.T) {
	require.NoError(t, Match(NewIntegerValue(42), NewIntegerValue(42), NewBindingStorage(), noopHof()))

	err := Match(NewIntegerValue(42), NewIntegerValue(7), NewBindingStorage(), noopHof())
	require.Error(t, err)
}

func TestMatchEmptyArgsNamedFunction(t *testing.T) {
	require.NoError(t, Match(NewNamedFunction("f"), NewNamedFunction("f"), NewBindingStorage(), noopHof()))
}

func TestMatchVariantMismatchFails(t *testing.T) {
	err := Match(NewNamedValue("x"), NewNamedFunction("x"), NewBindingStorage(), noopHof())
	require.Error(t, err)
}

// TestMatchCommutativityRewrite mirrors end-to-end scenario A: a simple
// commutativity-style rewrite of `part(cond, then, else)`.
func TestMatchCommutativityRewrite(t *testing.T) {
	formulaLeft := part(NewPattern("cond"), NewPattern("then"), NewPattern("else"))
	formulaRight := part(
		NewNamedFunction("not", NewPattern("cond")),
		NewPattern("else"),
		NewPattern("then"),
	)

	subject := part(
		NewNamedFunction("=", NewPattern("b"), NewIntegerValue(0)),
		NewPattern("a"),
		NewNamedFunction("*", NewPattern("a"), part(NewNamedValue("true"), NewIntegerValue(1), NewNamedValue("undefined"))),
	)

	bindings := NewBindingStorage()
	hof := noopHof()
	require.NoError(t, Match(subject, formulaLeft, bindings, hof))

	rewritten, err := Substitute(formulaRight, bindings, hof)
	require.NoError(t, err)

	want := part(
		NewNamedFunction("not", NewNamedFunction("=", NewPattern("b"), NewIntegerValue(0))),
		NewNamedFunction("*", NewPattern("a"), part(NewNamedValue("true"), NewIntegerValue(1), NewNamedValue("undefined"))),
		NewPattern("a"),
	)
	require.True(t, rewritten.Equal(want), "got %s want %s", rewritten, want)
}

// TestMatchPreSeededBinding mirrors end-to-end scenario B: matching with a
// binding pre-seeded before the match runs.
func TestMatchPreSeededBinding(t *testing.T) {
	bindings := NewBindingStorage()
	xValue := NewNamedFunction("=", NewPattern("b"), NewIntegerValue(0))
	require.NoError(t, bindings.Add("x", xValue))

	hof := noopHof()
	require.NoError(t, Match(NewPattern("a"), NewPattern("a"), bindings, hof))

	formulaLeft := part(NewPattern("x"), NewPattern("a"), NewPattern("a"))
	rewritten, err := Substitute(formulaLeft, bindings, hof)
	require.NoError(t, err)

	want := part(xValue, NewPattern("a"), NewPattern("a"))
	require.True(t, rewritten.Equal(want))
}
