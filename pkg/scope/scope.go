package scope

import (
	"sort"

	"lumen/interpreter-go/pkg/diag"
)

// Scope is one level of a lexically linked name table. The runtime binds
// names to values and the checker binds them to types; both use this chain.
type Scope[T any] struct {
	values map[string]T
	parent *Scope[T]
}

// New creates a root scope, optionally seeded with initial bindings.
func New[T any](initial map[string]T) *Scope[T] {
	s := &Scope[T]{values: make(map[string]T, len(initial))}
	for k, v := range initial {
		s.values[k] = v
	}
	return s
}

// Parent exposes the lexical parent (nil at the root).
func (s *Scope[T]) Parent() *Scope[T] {
	return s.parent
}

// Extend allocates a child scope linked to s.
func (s *Scope[T]) Extend() *Scope[T] {
	return &Scope[T]{values: make(map[string]T), parent: s}
}

// Has reports whether the binding exists anywhere in the scope chain.
func (s *Scope[T]) Has(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// HasLocal reports whether the binding exists in this scope level.
func (s *Scope[T]) HasLocal(name string) bool {
	_, ok := s.values[name]
	return ok
}

// Lookup searches outward through the scope chain.
func (s *Scope[T]) Lookup(name string) (T, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.values[name]; ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Get retrieves a binding, failing with UnboundName when absent from the whole chain.
func (s *Scope[T]) Get(name string) (T, error) {
	if v, ok := s.Lookup(name); ok {
		return v, nil
	}
	var zero T
	return zero, diag.Newf(diag.UnboundName, "unbound variable: %s", name)
}

// Set binds name in this scope only. A name already bound at this level is a Redefinition.
func (s *Scope[T]) Set(name string, value T) error {
	if _, ok := s.values[name]; ok {
		return diag.Newf(diag.Redefinition, "%s is already defined in this scope", name)
	}
	s.values[name] = value
	return nil
}

// Update mutates the nearest scope that already owns name. It never creates a binding.
func (s *Scope[T]) Update(name string, value T) error {
	for cur := s; cur != nil; cur = cur.parent {
		if _, ok := cur.values[name]; ok {
			cur.values[name] = value
			return nil
		}
	}
	return diag.Newf(diag.UnboundName, "unbound variable: %s", name)
}

// Keys returns the local bindings in sorted order.
func (s *Scope[T]) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of the local bindings.
func (s *Scope[T]) Snapshot() map[string]T {
	out := make(map[string]T, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Restore replaces the local bindings with a copy of saved. Child scopes and
// closures that hold s keep seeing it.
func (s *Scope[T]) Restore(saved map[string]T) {
	s.values = make(map[string]T, len(saved))
	for k, v := range saved {
		s.values[k] = v
	}
}
