package engine

import (
	"unicode/utf8"

	"github.com/fpl-lang/fpl/ast"
	"github.com/fpl-lang/fpl/core"
	"github.com/fpl-lang/fpl/diag"
)

// VerifyProof checks one formula's proof against the database, following
// the nine-step algorithm: re-lex the step's position from its visual
// pointer, confirm the step continues from the running expression,
// resolve and possibly flip the referenced formula, check binding
// completeness, swap the target subtree out, match it against the
// formula's left pattern, substitute the right pattern in its place, and
// swap the result back in. It stops at the first failing step (the
// running expression is no longer well-defined past that point) but the
// caller is expected to still attempt every other proof in the
// document.
func VerifyProof(file, source string, db *FormulaDB, formula core.Formula, proof ast.Proof, proofSpan diag.Span) []error {
	current := formula.Left.Pattern

	for _, step := range proof.Steps {
		loc := diag.GlobalSpan{File: file, Span: step.Pos}

		position, ok := locateStep(source, step)
		if !ok {
			return []error{PositionNotFoundError{Loc: loc}}
		}

		shown := ast.Retype(step.Shown)
		if !shown.Equal(current) {
			return []error{StepWrongError{Actual: current, Loc: loc}}
		}

		key := FormulaKey{Module: step.UsedFormula.Module, Index: step.UsedFormula.Index}
		usedFormula, ok := db.Lookup(key)
		if !ok {
			return []error{FormulaNotFoundError{Ref: step.UsedFormula, Loc: loc}}
		}
		if step.UsedFormula.Direction == ast.RightToLeft {
			usedFormula = usedFormula.Swap()
		}

		if err := checkBindingNames(usedFormula, step, loc); err != nil {
			return []error{err}
		}

		subtreePtr, err := core.GetMut(&current, position)
		if err != nil {
			depth := 0
			if pe, ok := err.(core.PositionError); ok {
				depth = pe.Depth
			}
			return []error{InternalError{Depth: depth, Loc: deepestValidSpan(file, step, position, depth)}}
		}
		original := *subtreePtr
		*subtreePtr = core.NewIntegerValue(0) // throwaway placeholder

		bindings := core.NewBindingStorage()
		if err := seedUserBindings(bindings, step, loc); err != nil {
			*subtreePtr = original
			return []error{err}
		}

		hof := core.NewManualAnyFunctionBinding(functionPatterns(step))

		if err := core.Match(original, usedFormula.Left.Pattern, bindings, hof); err != nil {
			*subtreePtr = original
			return []error{CannotFindBindingsError{Cause: err, Loc: loc}}
		}

		rewritten, err := core.Substitute(usedFormula.Right.Pattern, bindings, hof)
		if err != nil {
			*subtreePtr = original
			return []error{CannotFindBindingsError{Cause: err, Loc: loc}}
		}
		*subtreePtr = rewritten
	}

	if !current.Equal(formula.Right.Pattern) {
		return []error{LatestStepWrongError{Actual: current, Loc: diag.GlobalSpan{File: file, Span: proofSpan}}}
	}
	return nil
}

// VerifyAll runs VerifyProof for every formula in db that carries a
// proof, accumulating the errors of every proof rather than stopping at
// the first failing one — analysis and verification are separate
// phases, and within the verification phase every proof gets its
// chance.
func VerifyAll(file, source string, db *FormulaDB, math ast.Math) []error {
	var errs []error
	for _, group := range math.Groups {
		for _, ff := range group.Formulas {
			if ff.Proof == nil {
				continue
			}
			key := FormulaKey{Module: group.Name, Index: ff.Position}
			formula, ok := db.Lookup(key)
			if !ok {
				continue
			}
			errs = append(errs, VerifyProof(file, source, db, formula, *ff.Proof, ff.Proof.Pos)...)
		}
	}
	return errs
}

// locateStep re-lexes a proof step's position: it finds the subtree of
// step.Shown whose character-range span lines up with the visual
// pointer drawn beneath it. The pointer's column is measured on its own
// line; the target column is the same offset from the start of the
// shown expression's line, converted to a character (not byte) index
// because the pointer is drawn in characters.
func locateStep(source string, step ast.ProofStep) (core.Position, bool) {
	lineStart := diag.LineStart(source, step.Shown.Span().Start)
	lineStartChar := utf8.RuneCountInString(source[:lineStart])
	wantStart := lineStartChar + step.Pointer.StartChar
	wantEnd := lineStartChar + step.Pointer.EndChar

	return ast.FindPosition(step.Shown, func(n ast.Node) bool {
		s, e := diag.CharRange(source, n.Span())
		return s == wantStart && e == wantEnd
	})
}

// deepestValidSpan locates the span of the deepest valid subtree along
// position: position itself diverged from current's shape at depth, so
// the longest prefix that still names a real node is position[:depth],
// walked against step.Shown (which, structurally equal to current at
// this point in the proof, still carries spans). Falls back to the
// step's own span if that prefix can't be resolved either, which should
// not happen for a well-formed document.
func deepestValidSpan(file string, step ast.ProofStep, position core.Position, depth int) diag.GlobalSpan {
	if depth > len(position) {
		depth = len(position)
	}
	if n, ok := ast.NodeAt(step.Shown, position[:depth]); ok {
		return diag.GlobalSpan{File: file, Span: n.Span()}
	}
	return diag.GlobalSpan{File: file, Span: step.Pos}
}

func checkBindingNames(formula core.Formula, step ast.ProofStep, loc diag.GlobalSpan) error {
	required := make(map[string]struct{}, len(formula.Left.UnknownPatternNames))
	for _, n := range formula.Left.UnknownPatternNames {
		required[n] = struct{}{}
	}
	provided := make(map[string]struct{}, len(step.Bindings))
	for _, b := range step.Bindings {
		provided[b.Name] = struct{}{}
	}
	if missing, extra := setDiff(required, provided); len(missing) > 0 || len(extra) > 0 {
		return NotAllBindingsProvidedError{Missing: missing, Extra: extra, Loc: loc}
	}

	requiredFn := make(map[core.AnyFunctionSignature]struct{}, len(formula.Left.AnyFunctionNames))
	for _, sig := range formula.Left.AnyFunctionNames {
		requiredFn[sig] = struct{}{}
	}
	providedFn := make(map[core.AnyFunctionSignature]struct{}, len(step.FunctionBindings))
	for _, fb := range step.FunctionBindings {
		providedFn[core.AnyFunctionSignature{Name: fb.Name, Arity: len(fb.Variables)}] = struct{}{}
	}
	if missing, extra := setDiffSig(requiredFn, providedFn); len(missing) > 0 || len(extra) > 0 {
		return NotAllFunctionBindingsProvidedError{Missing: missing, Extra: extra, Loc: loc}
	}
	return nil
}

func seedUserBindings(bindings *core.BindingStorage, step ast.ProofStep, loc diag.GlobalSpan) error {
	for _, b := range step.Bindings {
		value := ast.Retype(b.Value)
		if err := bindings.Add(b.Name, value); err != nil {
			if conflict, ok := err.(core.BindingConflictError); ok {
				return ConflictingUserBindingError{
					Name: conflict.Name, Existing: conflict.Existing, New: conflict.New, Loc: loc,
				}
			}
			return err
		}
	}
	return nil
}

func functionPatterns(step ast.ProofStep) map[string]core.AnyFunctionPattern {
	out := make(map[string]core.AnyFunctionPattern, len(step.FunctionBindings))
	for _, fb := range step.FunctionBindings {
		out[fb.Name] = core.AnyFunctionPattern{
			Pattern:   ast.Retype(fb.Value),
			Variables: fb.Variables,
		}
	}
	return out
}

func setDiff(required, provided map[string]struct{}) (missing, extra []string) {
	for n := range required {
		if _, ok := provided[n]; !ok {
			missing = append(missing, n)
		}
	}
	for n := range provided {
		if _, ok := required[n]; !ok {
			extra = append(extra, n)
		}
	}
	return missing, extra
}

func setDiffSig(required, provided map[core.AnyFunctionSignature]struct{}) (missing, extra []core.AnyFunctionSignature) {
	for s := range required {
		if _, ok := provided[s]; !ok {
			missing = append(missing, s)
		}
	}
	for s := range provided {
		if _, ok := required[s]; !ok {
			extra = append(extra, s)
		}
	}
	return missing, extra
}
