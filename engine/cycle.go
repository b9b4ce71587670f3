package engine

import (
	"strings"

	"github.com/fpl-lang/fpl/diag"
)

// ProofHasCyclesError reports that the formula-usage graph induced by
// every proof step's used_formula reference contains a cycle. Cycle
// lists the keys along the offending loop, starting and ending at the
// same formula.
type ProofHasCyclesError struct {
	Cycle []FormulaKey
	Loc   diag.GlobalSpan
}

func (e ProofHasCyclesError) Error() string {
	names := make([]string, len(e.Cycle))
	for i, k := range e.Cycle {
		names[i] = k.String()
	}
	return "proof dependency cycle: " + strings.Join(names, " -> ")
}

func (e ProofHasCyclesError) Location() diag.GlobalSpan { return e.Loc }

// DetectCycles builds the directed graph whose vertices are formula
// keys and whose edges run from a formula to every formula its proof
// steps cite, then walks it with a standard three-color DFS. No graph
// library is used: none of the retrieved example repositories depends
// on one, and the graph here is small and purely boolean (accept or
// reject), which does not warrant pulling in a new dependency.
func DetectCycles(db *FormulaDB) error {
	graph := make(map[FormulaKey][]FormulaKey)
	for key, proof := range db.proofs {
		if proof == nil {
			continue
		}
		for _, step := range proof.Steps {
			used := FormulaKey{Module: step.UsedFormula.Module, Index: step.UsedFormula.Index}
			graph[key] = append(graph[key], used)
		}
	}

	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[FormulaKey]int)
	var path []FormulaKey
	var cycle []FormulaKey

	var visit func(n FormulaKey) bool
	visit = func(n FormulaKey) bool {
		color[n] = gray
		path = append(path, n)
		for _, m := range graph[n] {
			switch color[m] {
			case white:
				if visit(m) {
					return true
				}
			case gray:
				idx := indexOfKey(path, m)
				cycle = append(cycle, path[idx:]...)
				cycle = append(cycle, m)
				return true
			}
		}
		path = path[:len(path)-1]
		color[n] = black
		return false
	}

	for key := range db.formulas {
		if color[key] == white {
			if visit(key) {
				loc := diag.GlobalSpan{}
				if len(cycle) > 0 {
					loc = db.Span(cycle[0])
				}
				return ProofHasCyclesError{Cycle: cycle, Loc: loc}
			}
		}
	}
	return nil
}

func indexOfKey(path []FormulaKey, target FormulaKey) int {
	for i, k := range path {
		if k == target {
			return i
		}
	}
	return 0
}
