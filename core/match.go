package core

// Match performs a one-way, non-backtracking structural match of subject
// against template, recording every Pattern binding it discovers into
// bindings. An AnyFunction node in template delegates to hof, which
// resolves the higher-order fragment; everything else matches
// structurally: a NamedFunction matches only a NamedFunction of the same
// name and arity (recursing pairwise on arguments), a NamedValue or
// IntegerValue matches only an identical leaf, and anything else fails
// with a MatchError.
//
// Match never backtracks: once a branch is chosen (by the shape of
// template) there is no retry on downstream failure. fpl patterns carry
// no alternation or repetition, so this is sufficient.
func Match(subject Expr, template Expr, bindings *BindingStorage, hof HofStrategy) error {
	switch t := template.(type) {
	case Pattern:
		return bindings.Add(t.Name, subject)

	case AnyFunction:
		return hof.FindBindings(t.Name, t.Args, subject, bindings)

	case NamedFunction:
		s, ok := subject.(NamedFunction)
		if !ok || s.Name != t.Name || len(s.Args) != len(t.Args) {
			return MatchError{Template: template, Subject: subject}
		}
		for i := range t.Args {
			if err := Match(s.Args[i], t.Args[i], bindings, hof); err != nil {
				return err
			}
		}
		return nil

	case NamedValue:
		s, ok := subject.(NamedValue)
		if !ok || s.Name != t.Name {
			return MatchError{Template: template, Subject: subject}
		}
		return nil

	case IntegerValue:
		s, ok := subject.(IntegerValue)
		if !ok || s.Value != t.Value {
			return MatchError{Template: template, Subject: subject}
		}
		return nil

	default:
		return MatchError{Template: template, Subject: subject}
	}
}
