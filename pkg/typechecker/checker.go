package typechecker

import (
	"fmt"

	"lumen/interpreter-go/pkg/ast"
	"lumen/interpreter-go/pkg/decls"
	"lumen/interpreter-go/pkg/diag"
	"lumen/interpreter-go/pkg/scope"
)

// Context maps names to their static types.
type Context = scope.Scope[ast.Type]

// NewContext creates a root context, optionally seeded with host bindings.
func NewContext(initial map[string]ast.Type) *Context {
	return scope.New(initial)
}

// InferenceMap records the type synthesized for each checked expression.
type InferenceMap map[ast.Expression]ast.Type

func (m InferenceMap) set(expr ast.Expression, typ ast.Type) {
	if m == nil || expr == nil {
		return
	}
	m[expr] = typ
}

// Checker synthesizes types bottom-up and stops at the first violation.
// It owns the registry of data declarations seen so far.
type Checker struct {
	infer InferenceMap
	ctors *decls.Registry
}

// New returns a checker with no data declarations.
func New() *Checker {
	return &Checker{
		infer: make(InferenceMap),
		ctors: decls.NewRegistry(),
	}
}

// Constructors exposes the data declarations registered by CheckProgram.
func (c *Checker) Constructors() *decls.Registry {
	return c.ctors
}

// TypeOf returns the type recorded for expr during the last successful check.
func (c *Checker) TypeOf(expr ast.Expression) (ast.Type, bool) {
	typ, ok := c.infer[expr]
	return typ, ok
}

// Typecheck returns the type of expr under ctx, or the first error found.
// The AST is never mutated and ctx only gains bindings in child scopes.
func (c *Checker) Typecheck(ctx *Context, expr ast.Expression) (ast.Type, error) {
	if ctx == nil {
		return nil, fmt.Errorf("typechecker: context is nil")
	}
	typ, err := c.checkExpression(ctx, expr)
	if err != nil {
		return nil, diag.InPhase(err, diag.PhaseTypecheck)
	}
	return typ, nil
}

// CheckProgram validates every statement in order against ctx. Definitions
// and data declarations extend ctx as they are checked.
func (c *Checker) CheckProgram(ctx *Context, prog *ast.Program) error {
	if ctx == nil {
		return fmt.Errorf("typechecker: context is nil")
	}
	if prog == nil {
		return fmt.Errorf("typechecker: program is nil")
	}
	for _, stmt := range prog.Body {
		if err := c.CheckStatement(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) fail(node ast.Node, kind diag.Kind, format string, args ...any) error {
	return diag.At(diag.Newf(kind, format, args...), node)
}
