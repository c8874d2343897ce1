package decls

import (
	"sort"

	"lumen/interpreter-go/pkg/ast"
	"lumen/interpreter-go/pkg/diag"
)

// Constructor is the registered signature of one data constructor.
type Constructor struct {
	ID     string
	Fields []ast.Type
	Owner  ast.DataType
}

// Arity is the declared field count.
func (c Constructor) Arity() int { return len(c.Fields) }

// Nullary reports whether the constructor takes no fields.
func (c Constructor) Nullary() bool { return len(c.Fields) == 0 }

// Signature is the type a constructor id is bound to: the bare data type for
// nullary constructors and an arrow into it otherwise.
func (c Constructor) Signature() ast.Type {
	if c.Nullary() {
		return c.Owner
	}
	inputs := make([]ast.Type, len(c.Fields))
	copy(inputs, c.Fields)
	return ast.ArrowType{Inputs: inputs, Output: c.Owner}
}

// Registry tracks declared data types and their constructors.
type Registry struct {
	data         map[string][]string
	constructors map[string]Constructor
}

func NewRegistry() *Registry {
	return &Registry{
		data:         make(map[string][]string),
		constructors: make(map[string]Constructor),
	}
}

// Declare records a data declaration. Declaring a data id or constructor id
// twice is a Redefinition; nothing is registered when the declaration fails.
func (r *Registry) Declare(decl *ast.DataDeclaration) ([]Constructor, error) {
	if decl == nil {
		return nil, diag.Newf(diag.TypeMismatch, "data declaration is nil")
	}
	if _, ok := r.data[decl.Name]; ok {
		return nil, diag.Newf(diag.Redefinition, "data type %s is already declared", decl.Name)
	}
	owner := ast.DataType{ID: decl.Name}
	seen := make(map[string]struct{}, len(decl.Constructors))
	ctors := make([]Constructor, 0, len(decl.Constructors))
	for _, def := range decl.Constructors {
		if def == nil {
			continue
		}
		if _, dup := seen[def.Name]; dup {
			return nil, diag.Newf(diag.Redefinition, "constructor %s is declared twice in %s", def.Name, decl.Name)
		}
		if existing, ok := r.constructors[def.Name]; ok {
			return nil, diag.Newf(diag.Redefinition, "constructor %s is already declared by %s", def.Name, existing.Owner.ID)
		}
		seen[def.Name] = struct{}{}
		fields := make([]ast.Type, len(def.Fields))
		copy(fields, def.Fields)
		ctors = append(ctors, Constructor{ID: def.Name, Fields: fields, Owner: owner})
	}
	names := make([]string, 0, len(ctors))
	for _, c := range ctors {
		r.constructors[c.ID] = c
		names = append(names, c.ID)
	}
	r.data[decl.Name] = names
	return ctors, nil
}

// Constructor looks up a constructor by id.
func (r *Registry) Constructor(id string) (Constructor, bool) {
	c, ok := r.constructors[id]
	return c, ok
}

// HasData reports whether a data type with this id was declared.
func (r *Registry) HasData(id string) bool {
	_, ok := r.data[id]
	return ok
}

// ConstructorsOf returns the constructor ids of a data type in declaration order.
func (r *Registry) ConstructorsOf(id string) []string {
	return append([]string(nil), r.data[id]...)
}

// DataTypes lists declared data ids in sorted order.
func (r *Registry) DataTypes() []string {
	out := make([]string, 0, len(r.data))
	for id := range r.data {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy of the registry.
func (r *Registry) Clone() *Registry {
	out := NewRegistry()
	out.Restore(r)
	return out
}

// Restore replaces the contents of r with a copy of from.
func (r *Registry) Restore(from *Registry) {
	r.data = make(map[string][]string, len(from.data))
	for id, names := range from.data {
		r.data[id] = append([]string(nil), names...)
	}
	r.constructors = make(map[string]Constructor, len(from.constructors))
	for id, c := range from.constructors {
		r.constructors[id] = c
	}
}

// Arities maps every constructor id to its field count.
func (r *Registry) Arities() map[string]int {
	out := make(map[string]int, len(r.constructors))
	for id, c := range r.constructors {
		out[id] = c.Arity()
	}
	return out
}
