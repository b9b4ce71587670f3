package ast

import "github.com/fpl-lang/fpl/core"

// FindPosition searches n pre-order for the first node satisfying want,
// returning the argument-index path from n's root down to it. This backs
// the proof verifier's re-lex step: the visual pointer names a character
// range, and want closes over that range to identify the one subtree it
// names.
func FindPosition(n Node, want func(Node) bool) (core.Position, bool) {
	if want(n) {
		return core.Position{}, true
	}
	for i, child := range children(n) {
		if pos, ok := FindPosition(child, want); ok {
			return append(core.Position{i}, pos...), true
		}
	}
	return nil, false
}

// NodeAt descends n following pos, the inverse of FindPosition, and
// returns the subtree found there. It is used to recover a source span
// for a position computed over a rewritten (spanless) core.Expr, by
// walking the same path over the original spanned Node the position was
// first located in.
func NodeAt(n Node, pos core.Position) (Node, bool) {
	cur := n
	for _, idx := range pos {
		kids := children(cur)
		if idx < 0 || idx >= len(kids) {
			return nil, false
		}
		cur = kids[idx]
	}
	return cur, true
}
