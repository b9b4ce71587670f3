package engine

import (
	"fmt"
	"strings"

	"github.com/fpl-lang/fpl/ast"
	"github.com/fpl-lang/fpl/core"
	"github.com/fpl-lang/fpl/diag"
)

// PositionNotFoundError reports that a proof step's visual pointer did
// not line up with the span of any subtree of its shown expression.
type PositionNotFoundError struct {
	Loc diag.GlobalSpan
}

func (e PositionNotFoundError) Error() string {
	return "visual pointer does not line up with any subtree of the shown expression"
}

func (e PositionNotFoundError) Location() diag.GlobalSpan { return e.Loc }

// StepWrongError reports that a proof step's shown expression did not
// equal the expression carried forward from the previous step.
type StepWrongError struct {
	Actual core.Expr
	Loc    diag.GlobalSpan
}

func (e StepWrongError) Error() string {
	return fmt.Sprintf("step does not continue from the previous expression %s", e.Actual)
}

func (e StepWrongError) Location() diag.GlobalSpan { return e.Loc }

// LatestStepWrongError reports that a proof's final expression did not
// equal the formula's right-hand side.
type LatestStepWrongError struct {
	Actual core.Expr
	Loc    diag.GlobalSpan
}

func (e LatestStepWrongError) Error() string {
	return fmt.Sprintf("proof ends at %s, not the formula's right-hand side", e.Actual)
}

func (e LatestStepWrongError) Location() diag.GlobalSpan { return e.Loc }

// FormulaNotFoundError reports that a proof step referenced a
// (module, index) pair absent from the FormulaDB.
type FormulaNotFoundError struct {
	Ref ast.FormulaRef
	Loc diag.GlobalSpan
}

func (e FormulaNotFoundError) Error() string {
	return fmt.Sprintf("formula %s.%d not found", e.Ref.Module, e.Ref.Index)
}

func (e FormulaNotFoundError) Location() diag.GlobalSpan { return e.Loc }

// NotAllBindingsProvidedError reports that the names supplied by a
// proof step's bindings do not match the referenced formula side's
// unknown pattern names.
type NotAllBindingsProvidedError struct {
	Missing []string
	Extra   []string
	Loc     diag.GlobalSpan
}

func (e NotAllBindingsProvidedError) Error() string {
	return fmt.Sprintf("bindings do not match required names: missing [%s], extra [%s]",
		strings.Join(e.Missing, ", "), strings.Join(e.Extra, ", "))
}

func (e NotAllBindingsProvidedError) Location() diag.GlobalSpan { return e.Loc }

// NotAllFunctionBindingsProvidedError reports that the any-function
// names/arities supplied by a proof step's function bindings do not
// match the referenced formula side's any-function signatures.
type NotAllFunctionBindingsProvidedError struct {
	Missing []core.AnyFunctionSignature
	Extra   []core.AnyFunctionSignature
	Loc     diag.GlobalSpan
}

func (e NotAllFunctionBindingsProvidedError) Error() string {
	return fmt.Sprintf("function bindings do not match required signatures: missing %v, extra %v", e.Missing, e.Extra)
}

func (e NotAllFunctionBindingsProvidedError) Location() diag.GlobalSpan { return e.Loc }

// InternalError reports that positional descent into the current
// expression failed while extracting or replacing the rewrite target —
// a state that well-formed, previously validated proof steps should
// never reach.
type InternalError struct {
	Depth int
	Loc   diag.GlobalSpan
}

func (e InternalError) Error() string {
	return fmt.Sprintf("internal error: position diverges at depth %d", e.Depth)
}

func (e InternalError) Location() diag.GlobalSpan { return e.Loc }

// CannotFindBindingsError reports that the target subtree failed to
// match the referenced formula's left-hand pattern.
type CannotFindBindingsError struct {
	Cause error
	Loc   diag.GlobalSpan
}

func (e CannotFindBindingsError) Error() string {
	return fmt.Sprintf("cannot find bindings: %s", e.Cause)
}

func (e CannotFindBindingsError) Unwrap() error { return e.Cause }

func (e CannotFindBindingsError) Location() diag.GlobalSpan { return e.Loc }

// ConflictingUserBindingError reports that a proof step supplied two
// bindings for the same pattern name with unequal values. Kept distinct
// from NotAllBindingsProvidedError rather than folded into it, per the
// documented preference for reporting conflicting bindings on their own.
type ConflictingUserBindingError struct {
	Name     string
	Existing core.Expr
	New      core.Expr
	Loc      diag.GlobalSpan
}

func (e ConflictingUserBindingError) Error() string {
	return fmt.Sprintf("conflicting user-supplied binding for %q: %s vs %s", e.Name, e.Existing, e.New)
}

func (e ConflictingUserBindingError) Location() diag.GlobalSpan { return e.Loc }
