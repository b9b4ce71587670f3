package ast

import "github.com/fpl-lang/fpl/diag"

// Direction names which side of a formula a proof step rewrites from.
type Direction int

const (
	LeftToRight Direction = iota
	RightToLeft
)

// FormulaRef is the `name.index direction` reference a proof step makes
// to a previously stated formula.
type FormulaRef struct {
	Module    string
	Index     int
	Direction Direction
	Pos       diag.Span
}

// Binding is a spanned `name := expr` proof-step annotation.
type Binding struct {
	Name  string
	Value Node
	Pos   diag.Span
}

// FunctionBinding is a spanned `$name(vars...) := expr` proof-step
// annotation giving the body shape of an any-function occurrence.
type FunctionBinding struct {
	Name      string
	Variables []string
	Value     Node
	Pos       diag.Span
}

// VisualPointer is the `^^^` marker under a proof step's displayed
// expression, naming the subtree the step rewrites by character range.
type VisualPointer struct {
	StartChar int
	EndChar   int
	Pos       diag.Span
}

// ProofStep is one rewrite step: the expression as it stands at this
// point in the proof, the subtree singled out by the visual pointer, the
// formula being invoked, and the bindings supplying its free names.
type ProofStep struct {
	Shown            Node
	Pointer          VisualPointer
	UsedFormula      FormulaRef
	Bindings         []Binding
	FunctionBindings []FunctionBinding
	Pos              diag.Span
}

// Proof is an ordered sequence of ProofStep values.
type Proof struct {
	Steps []ProofStep
	Pos   diag.Span
}

// Formula is the spanned `left <-> right` pair as written in source,
// before FormulaPart analysis.
type Formula struct {
	Left  Node
	Right Node
	Pos   diag.Span
}

// FullFormula is one numbered entry in a NamedFormulas group.
type FullFormula struct {
	Position int
	Formula  Formula
	Proof    *Proof
	Pos      diag.Span
}

// NamedFormulas is a `[name] ...` group of numbered formulas.
type NamedFormulas struct {
	Name     string
	Formulas []FullFormula
	Pos      diag.Span
}

// Math is the whole parsed document.
type Math struct {
	Groups []NamedFormulas
}
