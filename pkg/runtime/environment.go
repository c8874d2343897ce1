package runtime

import "lumen/interpreter-go/pkg/scope"

// Environment provides lexical scoping for runtime values. Child scopes hold
// a reference to their parent; a scope captured by a closure stays alive as
// long as the closure does.
type Environment = scope.Scope[Value]

// NewEnvironment creates a root environment, optionally seeded with host bindings.
func NewEnvironment(initial map[string]Value) *Environment {
	return scope.New(initial)
}
