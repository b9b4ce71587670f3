package core

import (
	"fmt"
	"sort"
	"strings"
)

// FormulaPart is one side of a named identity: the pattern itself, plus
// the analysis results NewFormula computes about it (which pattern names
// occur only on the opposite side, and which any-function signatures it
// contains).
type FormulaPart struct {
	Pattern             Expr
	UnknownPatternNames []string
	AnyFunctionNames    []AnyFunctionSignature
}

// Formula is a checked `left <-> right` identity.
type Formula struct {
	Left  FormulaPart
	Right FormulaPart
}

// FormulaArityError reports that an any-function name appears with two
// different arities within one side of a formula.
type FormulaArityError struct {
	Name     string
	ShouldBe int
	Actual   int
}

func (e FormulaArityError) Error() string {
	return fmt.Sprintf("any-function %q used with arity %d and %d in the same formula", e.Name, e.ShouldBe, e.Actual)
}

// FormulaAnyFunctionMismatchError reports that the two sides of a
// formula disagree on their any-function signatures (name and arity).
// OnlyLeft and OnlyRight list each side's signatures that the other side
// lacks.
type FormulaAnyFunctionMismatchError struct {
	OnlyLeft  []AnyFunctionSignature
	OnlyRight []AnyFunctionSignature
}

func (e FormulaAnyFunctionMismatchError) Error() string {
	var b strings.Builder
	b.WriteString("any-functions differ between both sides of the formula: only left has [")
	b.WriteString(joinSignatures(e.OnlyLeft))
	b.WriteString("], only right has [")
	b.WriteString(joinSignatures(e.OnlyRight))
	b.WriteString("]")
	return b.String()
}

func joinSignatures(sigs []AnyFunctionSignature) string {
	parts := make([]string, len(sigs))
	for i, s := range sigs {
		parts[i] = fmt.Sprintf("%s/%d", s.Name, s.Arity)
	}
	return strings.Join(parts, ", ")
}

// NewFormula analyzes left and right and builds a Formula, checking that
// any-function names are used with a single, consistent arity on each
// side and that the any-function signatures agree between the two
// sides. Each side's UnknownPatternNames lists the pattern names that
// occur only on the opposite side: matching this side does not bind
// them, so a proof step rewriting from this side must supply them as
// bindings.
func NewFormula(left, right Expr) (Formula, error) {
	leftPatterns := PatternNames(left)
	rightPatterns := PatternNames(right)

	leftAny, err := consistentArities(AnyFunctionSignatures(left))
	if err != nil {
		return Formula{}, err
	}
	rightAny, err := consistentArities(AnyFunctionSignatures(right))
	if err != nil {
		return Formula{}, err
	}

	if !sameNameSet(leftAny, rightAny) {
		return Formula{}, FormulaAnyFunctionMismatchError{
			OnlyLeft:  signatureDifference(leftAny, rightAny),
			OnlyRight: signatureDifference(rightAny, leftAny),
		}
	}

	return Formula{
		Left: FormulaPart{
			Pattern:             left,
			UnknownPatternNames: difference(rightPatterns, leftPatterns),
			AnyFunctionNames:    sortedSignatures(leftAny),
		},
		Right: FormulaPart{
			Pattern:             right,
			UnknownPatternNames: difference(leftPatterns, rightPatterns),
			AnyFunctionNames:    sortedSignatures(rightAny),
		},
	}, nil
}

// Swap returns a formula with its two sides exchanged wholesale: not
// just the patterns but each side's analyzed unknown-pattern-names and
// any-function-names move together, since they describe that side's
// pattern specifically.
func (f Formula) Swap() Formula {
	return Formula{Left: f.Right, Right: f.Left}
}

func consistentArities(sigs map[AnyFunctionSignature]struct{}) (map[string]int, error) {
	arities := make(map[string]int)
	for sig := range sigs {
		if existing, ok := arities[sig.Name]; ok {
			if existing != sig.Arity {
				lo, hi := existing, sig.Arity
				return nil, FormulaArityError{Name: sig.Name, ShouldBe: lo, Actual: hi}
			}
			continue
		}
		arities[sig.Name] = sig.Arity
	}
	return arities, nil
}

func sameNameSet(a, b map[string]int) bool {
	if len(a) != len(b) {
		return false
	}
	for name, arity := range a {
		if b[name] != arity {
			return false
		}
	}
	return true
}

func signatureDifference(a, b map[string]int) []AnyFunctionSignature {
	var out []AnyFunctionSignature
	for name, arity := range a {
		if other, ok := b[name]; !ok || other != arity {
			out = append(out, AnyFunctionSignature{Name: name, Arity: arity})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func sortedSignatures(m map[string]int) []AnyFunctionSignature {
	out := make([]AnyFunctionSignature, 0, len(m))
	for name, arity := range m {
		out = append(out, AnyFunctionSignature{Name: name, Arity: arity})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func difference(a, b map[string]struct{}) []string {
	var out []string
	for name := range a {
		if _, ok := b[name]; !ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
