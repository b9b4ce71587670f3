package ast

import "github.com/fpl-lang/fpl/core"

// Retype strips the spans from a Node tree, producing the equivalent
// spanless core.Expr tree used by every semantic phase. It is written
// once as an exhaustive type switch so that adding a sixth variant to
// either shape shows up here as a missing case rather than a silent
// identity pass-through.
func Retype(n Node) core.Expr {
	switch v := n.(type) {
	case Pattern:
		return core.NewPattern(v.Name)
	case AnyFunction:
		return core.NewAnyFunction(v.Name, retypeAll(v.Args)...)
	case NamedFunction:
		return core.NewNamedFunction(v.Name, retypeAll(v.Args)...)
	case NamedValue:
		return core.NewNamedValue(v.Name)
	case IntegerValue:
		return core.NewIntegerValue(v.Value)
	default:
		panic("ast: Retype: unhandled node variant")
	}
}

func retypeAll(nodes []Node) []core.Expr {
	out := make([]core.Expr, len(nodes))
	for i, n := range nodes {
		out[i] = Retype(n)
	}
	return out
}

func children(n Node) []Node {
	switch v := n.(type) {
	case AnyFunction:
		return v.Args
	case NamedFunction:
		return v.Args
	default:
		return nil
	}
}
