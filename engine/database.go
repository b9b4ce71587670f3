// Package engine builds the document-wide FormulaDB from a parsed
// ast.Math, detects cyclic formula dependencies, and verifies each
// formula's proof against it.
package engine

import (
	"fmt"

	"github.com/fpl-lang/fpl/ast"
	"github.com/fpl-lang/fpl/core"
	"github.com/fpl-lang/fpl/diag"
)

// FormulaKey identifies one numbered formula by its enclosing module
// name and its 1-based position within that module.
type FormulaKey struct {
	Module string
	Index  int
}

func (k FormulaKey) String() string { return fmt.Sprintf("%s.%d", k.Module, k.Index) }

// FormulaDB is the immutable table of every analyzed formula in a
// document, keyed by FormulaKey. It is built once by BuildFormulaDB and
// read many times by cycle detection and proof verification.
type FormulaDB struct {
	formulas map[FormulaKey]core.Formula
	spans    map[FormulaKey]diag.GlobalSpan
	proofs   map[FormulaKey]*ast.Proof
}

func newFormulaDB() *FormulaDB {
	return &FormulaDB{
		formulas: make(map[FormulaKey]core.Formula),
		spans:    make(map[FormulaKey]diag.GlobalSpan),
		proofs:   make(map[FormulaKey]*ast.Proof),
	}
}

// Lookup returns the analyzed formula for key, if any.
func (db *FormulaDB) Lookup(key FormulaKey) (core.Formula, bool) {
	f, ok := db.formulas[key]
	return f, ok
}

// Span returns the source location of key's formula.
func (db *FormulaDB) Span(key FormulaKey) diag.GlobalSpan {
	return db.spans[key]
}

// Proof returns the proof attached to key's formula, if it has one.
func (db *FormulaDB) Proof(key FormulaKey) (*ast.Proof, bool) {
	p, ok := db.proofs[key]
	return p, ok && p != nil
}

// Keys returns every key in the database, in no particular order.
func (db *FormulaDB) Keys() []FormulaKey {
	keys := make([]FormulaKey, 0, len(db.formulas))
	for k := range db.formulas {
		keys = append(keys, k)
	}
	return keys
}

// WrongNumberInStartError reports that a NamedFormulas group's k-th
// entry (0-based) was not numbered k+1.
type WrongNumberInStartError struct {
	Module   string
	ShouldBe int
	Got      int
	Loc      diag.GlobalSpan
}

func (e WrongNumberInStartError) Error() string {
	return fmt.Sprintf("formula [%s].%d is out of order, expected position %d", e.Module, e.Got, e.ShouldBe)
}

func (e WrongNumberInStartError) Location() diag.GlobalSpan { return e.Loc }

// BuildFormulaDB analyzes every formula in math, checking document-level
// numbering and the per-formula arity/any-function consistency that
// core.NewFormula enforces. Every formula is attempted regardless of
// earlier failures, and every resulting error is returned together, in
// keeping with the per-phase accumulation the verifier as a whole
// follows: a document with three bad formulas reports all three, not
// just the first.
func BuildFormulaDB(file string, math ast.Math) (*FormulaDB, []error) {
	db := newFormulaDB()
	var errs []error

	for _, group := range math.Groups {
		for i, ff := range group.Formulas {
			expected := i + 1
			if ff.Position != expected {
				errs = append(errs, WrongNumberInStartError{
					Module:   group.Name,
					ShouldBe: expected,
					Got:      ff.Position,
					Loc:      diag.GlobalSpan{File: file, Span: ff.Pos},
				})
			}

			left := ast.Retype(ff.Formula.Left)
			right := ast.Retype(ff.Formula.Right)
			formula, err := core.NewFormula(left, right)
			if err != nil {
				errs = append(errs, err)
				continue
			}

			key := FormulaKey{Module: group.Name, Index: ff.Position}
			db.formulas[key] = formula
			db.spans[key] = diag.GlobalSpan{File: file, Span: ff.Formula.Pos}
			db.proofs[key] = ff.Proof
		}
	}

	return db, errs
}
