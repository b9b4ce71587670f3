// Package ast defines the spanned concrete-syntax tree produced by the
// parser: one decorated variant per core.Expr shape, plus the document
// structure around it (named formula groups, proofs, proof steps). Every
// node carries the diag.Span it came from so later phases can report
// precise source locations.
package ast

import "github.com/fpl-lang/fpl/diag"

// Node is the spanned counterpart of core.Expr. It mirrors the same five
// term variants so that Retype can convert between the two shapes
// without inventing semantics of its own.
type Node interface {
	Span() diag.Span
}

// Pattern is a spanned meta-variable occurrence.
type Pattern struct {
	Name string
	Pos  diag.Span
}

func (n Pattern) Span() diag.Span { return n.Pos }

// AnyFunction is a spanned meta-function occurrence, `$name(args...)`.
type AnyFunction struct {
	Name string
	Args []Node
	Pos  diag.Span
}

func (n AnyFunction) Span() diag.Span { return n.Pos }

// NamedFunction is a spanned concrete function application, including
// every operator the parser produces.
type NamedFunction struct {
	Name string
	Args []Node
	Pos  diag.Span
}

func (n NamedFunction) Span() diag.Span { return n.Pos }

// NamedValue is a spanned nullary named constant, `$name`.
type NamedValue struct {
	Name string
	Pos  diag.Span
}

func (n NamedValue) Span() diag.Span { return n.Pos }

// IntegerValue is a spanned integer literal.
type IntegerValue struct {
	Value int64
	Pos   diag.Span
}

func (n IntegerValue) Span() diag.Span { return n.Pos }
