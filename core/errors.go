package core

import "fmt"

// PositionError reports that an ExprPosition descended past a leaf
// (Pattern, NamedValue or IntegerValue) or off the end of an argument
// list. Depth is the zero-based index, within the position, at which the
// descent first diverged; callers truncate the position to this depth
// when mapping the failure back to a source span.
type PositionError struct {
	Depth int
}

func (e PositionError) Error() string {
	return fmt.Sprintf("position diverges at depth %d: no such subtree", e.Depth)
}

// MatchError reports that a subject failed to match a template. It
// carries the template node and the subject node at which the shapes or
// constants first differed.
type MatchError struct {
	Template Expr
	Subject  Expr
}

func (e MatchError) Error() string {
	return fmt.Sprintf("%s does not match pattern %s", e.Subject, e.Template)
}

// BindingConflictError reports that BindingStorage.Add was called with a
// name already bound to a structurally different expression.
type BindingConflictError struct {
	Name     string
	Existing Expr
	New      Expr
}

func (e BindingConflictError) Error() string {
	return fmt.Sprintf("conflicting binding for %q: %s vs %s", e.Name, e.Existing, e.New)
}
