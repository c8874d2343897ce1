package interpreter

import (
	"fmt"

	"lumen/interpreter-go/pkg/ast"
	"lumen/interpreter-go/pkg/diag"
	"lumen/interpreter-go/pkg/runtime"
)

// ExecuteStatement runs one top-level statement against env. For a print
// statement it returns the rendered line and printed=true.
func (i *Interpreter) ExecuteStatement(env *runtime.Environment, stmt ast.Statement) (line string, printed bool, err error) {
	if env == nil {
		return "", false, fmt.Errorf("interpreter: environment is nil")
	}
	line, printed, err = i.evaluateStatement(stmt, env)
	if err != nil {
		return "", false, diag.InPhase(diag.At(err, stmt), diag.PhaseRuntime)
	}
	return line, printed, nil
}

func (i *Interpreter) evaluateStatement(node ast.Statement, env *runtime.Environment) (string, bool, error) {
	switch n := node.(type) {
	case *ast.DefineStatement:
		val, err := i.evaluateExpression(n.Value, env)
		if err != nil {
			return "", false, err
		}
		return "", false, env.Set(n.Name, val)
	case *ast.AssignStatement:
		return "", false, i.evaluateAssignStatement(n, env)
	case *ast.PrintStatement:
		val, err := i.evaluateExpression(n.Value, env)
		if err != nil {
			return "", false, err
		}
		return runtime.Display(val), true, nil
	case *ast.DataDeclaration:
		return "", false, i.evaluateDataDeclaration(n, env)
	case nil:
		return "", false, diag.Newf(diag.TypeMismatch, "missing statement")
	default:
		return "", false, diag.Newf(diag.TypeMismatch, "unsupported statement %T", node)
	}
}

func (i *Interpreter) evaluateAssignStatement(stmt *ast.AssignStatement, env *runtime.Environment) error {
	target, ok := stmt.Target.(*ast.Variable)
	if !ok || target.IsQuoted() {
		return i.fail(stmt.Target, diag.InvalidAssignTarget, "cannot assign to %s", ast.RenderExpression(stmt.Target))
	}
	val, err := i.evaluateExpression(stmt.Value, env)
	if err != nil {
		return err
	}
	if err := env.Update(target.Name, val); err != nil {
		return diag.At(err, target)
	}
	return nil
}

// evaluateDataDeclaration registers the constructors and binds each id in
// env. An n-ary constructor is bound to a primitive that builds values of it;
// a nullary one is bound to its only value, matching its static type.
func (i *Interpreter) evaluateDataDeclaration(decl *ast.DataDeclaration, env *runtime.Environment) error {
	for _, def := range decl.Constructors {
		if def != nil && env.HasLocal(def.Name) {
			return i.fail(def, diag.Redefinition, "constructor %s is already bound", def.Name)
		}
	}
	ctors, err := i.ctors.Declare(decl)
	if err != nil {
		return err
	}
	for _, ctor := range ctors {
		var val runtime.Value = &runtime.ConstructedValue{Constructor: ctor.ID}
		if !ctor.Nullary() {
			val = i.constructorPrimitive(ctor.ID, ctor.Arity())
		}
		if err := env.Set(ctor.ID, val); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) constructorPrimitive(id string, arity int) runtime.PrimitiveValue {
	return runtime.PrimitiveValue{
		Name:  id,
		Arity: arity,
		Impl: func(args []runtime.Value) (runtime.Value, error) {
			return i.construct(id, args)
		},
	}
}
