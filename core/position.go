package core

// Position is an owned sequence of zero-based argument indices
// identifying a subtree of an Expr. The empty Position denotes the root.
// It is a distinct nominal type (not a bare []int) so that a raw index
// slice can't be passed where a Position is expected by mistake.
type Position []int

// View returns a borrowed, read-only look at the same path. It exists so
// that APIs which only need to inspect a position (rather than own it)
// say so in their signature.
func (p Position) View() PositionView { return PositionView(p) }

// PositionView is the borrowed counterpart of Position.
type PositionView []int

// Get performs an immutable descent into e following pos, returning the
// subtree at that position. Descending through a Pattern, NamedValue or
// IntegerValue is undefined and reported as a PositionError carrying the
// depth at which the descent diverged.
func Get(e Expr, pos Position) (Expr, error) {
	cur := e
	for depth, idx := range pos {
		args := Args(cur)
		if args == nil {
			return nil, PositionError{Depth: depth}
		}
		if idx < 0 || idx >= len(args) {
			return nil, PositionError{Depth: depth}
		}
		cur = args[idx]
	}
	return cur, nil
}

// GetMut returns a pointer into root's tree at pos, suitable for an
// in-place subtree swap. root must point at the variable holding the
// current expression. Each node along the path is rebuilt in place with a
// fresh copy of its argument slice, so assigning through the returned
// pointer changes only the tree held by *root: other trees that shared
// those argument slices are left untouched, and the sibling subtrees are
// reused as they are, not cloned.
func GetMut(root *Expr, pos Position) (*Expr, error) {
	cur := root
	for depth, idx := range pos {
		args := Args(*cur)
		if args == nil || idx < 0 || idx >= len(args) {
			return nil, PositionError{Depth: depth}
		}
		args = append([]Expr(nil), args...)
		switch v := (*cur).(type) {
		case AnyFunction:
			*cur = AnyFunction{Name: v.Name, Args: args}
		case NamedFunction:
			*cur = NamedFunction{Name: v.Name, Args: args}
		}
		cur = &args[idx]
	}
	return cur, nil
}

// Travel performs a pre-order traversal of e, invoking visit on every node.
func Travel(e Expr, visit func(Expr)) {
	visit(e)
	for _, a := range Args(e) {
		Travel(a, visit)
	}
}

// TravelWithPosition performs a pre-order traversal, passing the current
// PositionView (a view into a working buffer pushed/popped at each
// descent) alongside each node.
func TravelWithPosition(e Expr, visit func(Expr, PositionView)) {
	buf := make(Position, 0, 8)
	travelWithPosition(e, &buf, visit)
}

func travelWithPosition(e Expr, buf *Position, visit func(Expr, PositionView)) {
	visit(e, (*buf).View())
	for i, a := range Args(e) {
		*buf = append(*buf, i)
		travelWithPosition(a, buf, visit)
		*buf = (*buf)[:len(*buf)-1]
	}
}

// PatternNames returns the set of names of every Pattern node in e.
func PatternNames(e Expr) map[string]struct{} {
	names := make(map[string]struct{})
	Travel(e, func(n Expr) {
		if p, ok := n.(Pattern); ok {
			names[p.Name] = struct{}{}
		}
	})
	return names
}

// AnyFunctionSignature is the (name, arity) pair identifying one shape
// of any-function occurrence.
type AnyFunctionSignature struct {
	Name  string
	Arity int
}

// AnyFunctionSignatures returns the set of (name, arity) signatures of
// every AnyFunction node in e.
func AnyFunctionSignatures(e Expr) map[AnyFunctionSignature]struct{} {
	sigs := make(map[AnyFunctionSignature]struct{})
	Travel(e, func(n Expr) {
		if f, ok := n.(AnyFunction); ok {
			sigs[AnyFunctionSignature{Name: f.Name, Arity: len(f.Args)}] = struct{}{}
		}
	})
	return sigs
}
