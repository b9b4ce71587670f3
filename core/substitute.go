package core

// Substitute rebuilds template with every Pattern replaced by its bound
// value from bindings, and every AnyFunction occurrence rebuilt by hof.
// A Pattern with no recorded binding is left in place unchanged (this
// only happens for formula-direction patterns that are meant to stay
// free, never for a fully bound proof-step substitution).
func Substitute(template Expr, bindings *BindingStorage, hof HofStrategy) (Expr, error) {
	switch t := template.(type) {
	case Pattern:
		if v, ok := bindings.Lookup(t.Name); ok {
			return v, nil
		}
		return t, nil

	case AnyFunction:
		args := make([]Expr, len(t.Args))
		for i, a := range t.Args {
			sub, err := Substitute(a, bindings, hof)
			if err != nil {
				return nil, err
			}
			args[i] = sub
		}
		return hof.ApplyBindings(t.Name, args, bindings)

	case NamedFunction:
		args := make([]Expr, len(t.Args))
		for i, a := range t.Args {
			sub, err := Substitute(a, bindings, hof)
			if err != nil {
				return nil, err
			}
			args[i] = sub
		}
		return NewNamedFunction(t.Name, args...), nil

	case NamedValue:
		return t, nil

	case IntegerValue:
		return t, nil

	default:
		return t, nil
	}
}
