package interpreter

import (
	"lumen/interpreter-go/pkg/ast"
	"lumen/interpreter-go/pkg/diag"
	"lumen/interpreter-go/pkg/runtime"
)

// evaluateApplication evaluates the head, then every argument left to right,
// then calls.
func (i *Interpreter) evaluateApplication(call *ast.Application, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluateExpression(call.Head, env)
	if err != nil {
		return nil, err
	}
	args, err := i.evaluateArguments(call.Args, env)
	if err != nil {
		return nil, err
	}
	return i.callCallableValue(callee, args, call)
}

func (i *Interpreter) evaluateArguments(exprs []ast.Expression, env *runtime.Environment) ([]runtime.Value, error) {
	args := make([]runtime.Value, 0, len(exprs))
	for _, expr := range exprs {
		val, err := i.evaluateExpression(expr, env)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}
	return args, nil
}

// callCallableValue applies a closure or a primitive. A closure takes exactly
// one argument, bound in a fresh child of its captured environment.
func (i *Interpreter) callCallableValue(callee runtime.Value, args []runtime.Value, call *ast.Application) (runtime.Value, error) {
	switch fn := callee.(type) {
	case *runtime.ClosureValue:
		if len(args) != 1 {
			return nil, i.fail(call, diag.ArityMismatch, "closure expects 1 argument but got %d", len(args))
		}
		frame := fn.Closure.Extend()
		if err := frame.Set(fn.Lambda.Param, args[0]); err != nil {
			return nil, err
		}
		return i.evaluateExpression(fn.Lambda.Body, frame)
	case runtime.PrimitiveValue:
		if len(args) != fn.Arity {
			return nil, i.fail(call, diag.ArityMismatch, "%s expects %d arguments but got %d", fn.Name, fn.Arity, len(args))
		}
		if fn.Impl == nil {
			return nil, diag.Newf(diag.TypeMismatch, "primitive %s has no implementation", fn.Name)
		}
		return fn.Impl(args)
	default:
		return nil, i.fail(call, diag.TypeMismatch, "cannot call %s", runtime.Display(callee))
	}
}

func (i *Interpreter) evaluateConstructExpression(expr *ast.ConstructExpression, env *runtime.Environment) (runtime.Value, error) {
	if _, ok := i.ctors.Constructor(expr.Constructor); !ok {
		return nil, diag.Newf(diag.UnboundName, "unknown constructor: %s", expr.Constructor)
	}
	fields, err := i.evaluateArguments(expr.Args, env)
	if err != nil {
		return nil, err
	}
	return i.construct(expr.Constructor, fields)
}

// construct builds a value of a registered constructor after checking the
// field count against its declaration.
func (i *Interpreter) construct(id string, fields []runtime.Value) (runtime.Value, error) {
	ctor, ok := i.ctors.Constructor(id)
	if !ok {
		return nil, diag.Newf(diag.UnboundName, "unknown constructor: %s", id)
	}
	if len(fields) != ctor.Arity() {
		return nil, diag.Newf(diag.ArityMismatch, "constructor %s expects %d fields but got %d", id, ctor.Arity(), len(fields))
	}
	return &runtime.ConstructedValue{Constructor: id, Fields: fields}, nil
}
