package interpreter

import (
	"math/big"

	"lumen/interpreter-go/pkg/ast"
	"lumen/interpreter-go/pkg/diag"
	"lumen/interpreter-go/pkg/match"
	"lumen/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	val, err := i.reduce(node, env)
	if err != nil {
		return nil, diag.At(err, node)
	}
	return val, nil
}

func (i *Interpreter) reduce(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case nil:
		return nil, diag.Newf(diag.TypeMismatch, "missing expression")
	case *ast.NumberLiteral:
		if n.Value == nil {
			return runtime.NewNumber(0), nil
		}
		return runtime.NumberValue{Val: new(big.Int).Set(n.Value)}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.Variable:
		return i.evaluateVariable(n, env)
	case *ast.NotExpression:
		operand, err := i.evaluateBool(n.Operand, env, "not")
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: !operand}, nil
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(n, env)
	case *ast.IfExpression:
		cond, err := i.evaluateBool(n.Condition, env, "if condition")
		if err != nil {
			return nil, err
		}
		if cond {
			return i.evaluateExpression(n.Then, env)
		}
		return i.evaluateExpression(n.Else, env)
	case *ast.LambdaExpression:
		return &runtime.ClosureValue{Lambda: n, Closure: env}, nil
	case *ast.Application:
		return i.evaluateApplication(n, env)
	case *ast.PairExpression:
		first, err := i.evaluateExpression(n.First, env)
		if err != nil {
			return nil, err
		}
		second, err := i.evaluateExpression(n.Second, env)
		if err != nil {
			return nil, err
		}
		return runtime.PairValue{First: first, Second: second}, nil
	case *ast.ProjectExpression:
		val, err := i.evaluateExpression(n.Pair, env)
		if err != nil {
			return nil, err
		}
		pair, ok := val.(runtime.PairValue)
		if !ok {
			return nil, diag.Newf(diag.TypeMismatch, "%s expects a pair but got %s", n.Component, runtime.Display(val))
		}
		if n.Component == ast.ComponentFirst {
			return pair.First, nil
		}
		return pair.Second, nil
	case *ast.ConstructExpression:
		return i.evaluateConstructExpression(n, env)
	case *ast.MatchExpression:
		return i.evaluateMatchExpression(n, env)
	default:
		return nil, diag.Newf(diag.TypeMismatch, "unsupported expression %T", node)
	}
}

// evaluateVariable resolves a name. A quoted name that is not bound
// evaluates to its unquoted text.
func (i *Interpreter) evaluateVariable(v *ast.Variable, env *runtime.Environment) (runtime.Value, error) {
	if val, ok := env.Lookup(v.Name); ok {
		return val, nil
	}
	if text, ok := match.Unquote(v.Name); ok {
		return runtime.StringValue{Val: text}, nil
	}
	return nil, diag.Newf(diag.UnboundName, "unbound variable: %s", v.Name)
}

func (i *Interpreter) evaluateBool(node ast.Expression, env *runtime.Environment, what string) (bool, error) {
	val, err := i.evaluateExpression(node, env)
	if err != nil {
		return false, err
	}
	b, ok := val.(runtime.BoolValue)
	if !ok {
		return false, i.fail(node, diag.TypeMismatch, "%s expects a boolean but got %s", what, runtime.Display(val))
	}
	return b.Val, nil
}

func (i *Interpreter) evaluateNumber(node ast.Expression, env *runtime.Environment, what string) (*big.Int, error) {
	val, err := i.evaluateExpression(node, env)
	if err != nil {
		return nil, err
	}
	n, ok := val.(runtime.NumberValue)
	if !ok || n.Val == nil {
		return nil, i.fail(node, diag.TypeMismatch, "%s expects a number but got %s", what, runtime.Display(val))
	}
	return n.Val, nil
}

// evaluateBinaryExpression evaluates both operands left to right before
// combining them; and/or do not short-circuit.
func (i *Interpreter) evaluateBinaryExpression(expr *ast.BinaryExpression, env *runtime.Environment) (runtime.Value, error) {
	what := "'" + string(expr.Operator) + "'"
	switch expr.Operator {
	case ast.OpPlus:
		left, err := i.evaluateNumber(expr.Left, env, what)
		if err != nil {
			return nil, err
		}
		right, err := i.evaluateNumber(expr.Right, env, what)
		if err != nil {
			return nil, err
		}
		return runtime.NumberValue{Val: new(big.Int).Add(left, right)}, nil
	case ast.OpEq, ast.OpAnd, ast.OpOr:
		left, err := i.evaluateBool(expr.Left, env, what)
		if err != nil {
			return nil, err
		}
		right, err := i.evaluateBool(expr.Right, env, what)
		if err != nil {
			return nil, err
		}
		switch expr.Operator {
		case ast.OpEq:
			return runtime.BoolValue{Val: left == right}, nil
		case ast.OpAnd:
			return runtime.BoolValue{Val: left && right}, nil
		default:
			return runtime.BoolValue{Val: left || right}, nil
		}
	default:
		return nil, diag.Newf(diag.TypeMismatch, "unsupported operator %q", expr.Operator)
	}
}
