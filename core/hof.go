package core

// HofStrategy resolves the higher-order fragment of matching and
// substitution: what an AnyFunction node in a template actually matches
// against, and what it rebuilds into once its bindings are known. A
// strategy is stateful across a single proof step (it remembers which
// any-function identity it resolved to, so Apply can reuse it), so each
// proof step must use a fresh instance.
type HofStrategy interface {
	// FindBindings attempts to bind the arguments of an AnyFunction
	// occurrence (identified by name) against expr, recording discovered
	// pattern bindings into global. It returns an error if no consistent
	// binding exists.
	FindBindings(name string, args []Expr, expr Expr, global *BindingStorage) error

	// ApplyBindings rebuilds the result of substituting into an
	// AnyFunction occurrence (identified by name), given its
	// already-substituted arguments and the global bindings.
	ApplyBindings(name string, args []Expr, global *BindingStorage) (Expr, error)
}

// AnyFunctionPattern is a user-authored `$f(x, y) := body` annotation:
// the shape that the any-function named by a proof step's binding list
// must take, expressed in terms of the formal variables.
type AnyFunctionPattern struct {
	Pattern   Expr
	Variables []string
}

// HofBindingError reports that ManualAnyFunctionBinding has no
// registered AnyFunctionPattern for a given any-function name, or that
// the caller supplied the wrong number of formal variables for it.
type HofBindingError struct {
	Name   string
	Reason string
}

func (e HofBindingError) Error() string {
	return "any-function binding for " + e.Name + ": " + e.Reason
}

// ManualAnyFunctionBinding is the default HofStrategy. Rather than
// attempt general higher-order unification, it requires the proof step
// to spell out the shape of each any-function occurrence as a
// first-order AnyFunctionPattern (`$f(x) := x*2`), and reduces matching
// and substitution of the any-function to ordinary first-order matching
// and substitution of that pattern, with the formal variables bound to
// the any-function's actual arguments.
type ManualAnyFunctionBinding struct {
	toMatch map[string]AnyFunctionPattern
	local   map[string]*BindingStorage
}

// NewManualAnyFunctionBinding builds a strategy from the step's
// user-supplied any-function bindings.
func NewManualAnyFunctionBinding(toMatch map[string]AnyFunctionPattern) *ManualAnyFunctionBinding {
	return &ManualAnyFunctionBinding{
		toMatch: toMatch,
		local:   make(map[string]*BindingStorage),
	}
}

func (m *ManualAnyFunctionBinding) FindBindings(name string, args []Expr, expr Expr, global *BindingStorage) error {
	afp, ok := m.toMatch[name]
	if !ok {
		return HofBindingError{Name: name, Reason: "no pattern supplied for this any-function"}
	}
	if len(afp.Variables) != len(args) {
		return HofBindingError{Name: name, Reason: "argument count does not match supplied pattern's variables"}
	}

	local := NewBindingStorage()
	if err := Match(expr, afp.Pattern, local, m); err != nil {
		return err
	}

	for i, varName := range afp.Variables {
		value, ok := local.Remove(varName)
		if !ok {
			return HofBindingError{Name: name, Reason: "pattern does not bind variable " + varName}
		}
		if err := Match(value, args[i], global, m); err != nil {
			return err
		}
	}

	m.local[name] = local
	return nil
}

func (m *ManualAnyFunctionBinding) ApplyBindings(name string, args []Expr, global *BindingStorage) (Expr, error) {
	afp, ok := m.toMatch[name]
	if !ok {
		return nil, HofBindingError{Name: name, Reason: "no pattern supplied for this any-function"}
	}
	local, ok := m.local[name]
	if !ok {
		return nil, HofBindingError{Name: name, Reason: "no bindings recorded for this any-function"}
	}

	for i, varName := range afp.Variables {
		if err := local.Add(varName, args[i]); err != nil {
			return nil, err
		}
	}

	return Substitute(afp.Pattern, local, m)
}
