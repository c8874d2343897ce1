package interpreter

import (
	"fmt"

	"lumen/interpreter-go/pkg/ast"
	"lumen/interpreter-go/pkg/decls"
	"lumen/interpreter-go/pkg/diag"
	"lumen/interpreter-go/pkg/runtime"
)

// Interpreter evaluates expressions and executes programs. It owns the
// registry of data declarations executed so far; evaluation itself is
// single-threaded.
type Interpreter struct {
	global *runtime.Environment
	ctors  *decls.Registry
}

// New returns an interpreter with an empty global environment.
func New() *Interpreter {
	return &Interpreter{
		global: runtime.NewEnvironment(nil),
		ctors:  decls.NewRegistry(),
	}
}

// GlobalEnvironment returns the interpreter's root environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// Constructors exposes the data declarations executed so far.
func (i *Interpreter) Constructors() *decls.Registry {
	return i.ctors
}

// Evaluate reduces expr to a value under env.
func (i *Interpreter) Evaluate(env *runtime.Environment, expr ast.Expression) (runtime.Value, error) {
	if env == nil {
		return nil, fmt.Errorf("interpreter: environment is nil")
	}
	val, err := i.evaluateExpression(expr, env)
	if err != nil {
		return nil, diag.InPhase(err, diag.PhaseRuntime)
	}
	return val, nil
}

// Execute runs every statement of prog against env in order and returns the
// printed lines. On failure the lines printed before the failing statement
// are returned alongside the error.
func (i *Interpreter) Execute(env *runtime.Environment, prog *ast.Program) ([]string, error) {
	if env == nil {
		return nil, fmt.Errorf("interpreter: environment is nil")
	}
	if prog == nil {
		return nil, fmt.Errorf("interpreter: program is nil")
	}
	var output []string
	for _, stmt := range prog.Body {
		line, printed, err := i.ExecuteStatement(env, stmt)
		if err != nil {
			return output, err
		}
		if printed {
			output = append(output, line)
		}
	}
	return output, nil
}

func (i *Interpreter) fail(node ast.Node, kind diag.Kind, format string, args ...any) error {
	return diag.At(diag.Newf(kind, format, args...), node)
}
