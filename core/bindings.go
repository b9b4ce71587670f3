package core

// BindingStorage accumulates pattern-name to expression bindings
// discovered while matching a template against a subject. It is the
// single source of truth consulted when a substitution later resolves
// a Pattern back into a concrete Expr.
type BindingStorage struct {
	values map[string]Expr
}

// NewBindingStorage returns an empty BindingStorage.
func NewBindingStorage() *BindingStorage {
	return &BindingStorage{values: make(map[string]Expr)}
}

// Add records that name is bound to value. If name is unbound, the
// binding is recorded and Add succeeds. If name is already bound, Add
// succeeds only when the existing value is structurally Equal to value;
// otherwise it fails with a BindingConflictError naming both values.
func (b *BindingStorage) Add(name string, value Expr) error {
	existing, ok := b.values[name]
	if !ok {
		b.values[name] = value
		return nil
	}
	if existing.Equal(value) {
		return nil
	}
	return BindingConflictError{Name: name, Existing: existing, New: value}
}

// Lookup returns the expression bound to name, if any.
func (b *BindingStorage) Lookup(name string) (Expr, bool) {
	v, ok := b.values[name]
	return v, ok
}

// Remove deletes name from the storage, returning the value it held, if
// any. Used by ManualAnyFunctionBinding to lift a local any-function
// binding into the caller's global storage.
func (b *BindingStorage) Remove(name string) (Expr, bool) {
	v, ok := b.values[name]
	if ok {
		delete(b.values, name)
	}
	return v, ok
}

// Names returns every bound pattern name, in no particular order.
func (b *BindingStorage) Names() []string {
	names := make([]string, 0, len(b.values))
	for n := range b.values {
		names = append(names, n)
	}
	return names
}
