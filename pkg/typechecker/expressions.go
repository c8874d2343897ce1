package typechecker

import (
	"lumen/interpreter-go/pkg/ast"
	"lumen/interpreter-go/pkg/diag"
)

func (c *Checker) checkExpression(ctx *Context, expr ast.Expression) (ast.Type, error) {
	typ, err := c.synthesize(ctx, expr)
	if err != nil {
		return nil, diag.At(err, expr)
	}
	c.infer.set(expr, typ)
	return typ, nil
}

func (c *Checker) synthesize(ctx *Context, expr ast.Expression) (ast.Type, error) {
	switch e := expr.(type) {
	case nil:
		return nil, diag.Newf(diag.TypeMismatch, "missing expression")
	case *ast.NumberLiteral:
		return ast.NatType{}, nil
	case *ast.BooleanLiteral:
		return ast.BoolType{}, nil
	case *ast.Variable:
		return c.checkVariable(ctx, e)
	case *ast.NotExpression:
		if err := c.expect(ctx, e.Operand, ast.BoolType{}, "not"); err != nil {
			return nil, err
		}
		return ast.BoolType{}, nil
	case *ast.BinaryExpression:
		return c.checkBinaryExpression(ctx, e)
	case *ast.IfExpression:
		return c.checkIfExpression(ctx, e)
	case *ast.LambdaExpression:
		return c.checkLambdaExpression(ctx, e)
	case *ast.Application:
		return c.checkApplication(ctx, e)
	case *ast.PairExpression:
		first, err := c.checkExpression(ctx, e.First)
		if err != nil {
			return nil, err
		}
		second, err := c.checkExpression(ctx, e.Second)
		if err != nil {
			return nil, err
		}
		return ast.PairType{First: first, Second: second}, nil
	case *ast.ProjectExpression:
		return c.checkProjectExpression(ctx, e)
	case *ast.ConstructExpression:
		return c.checkConstructExpression(ctx, e)
	case *ast.MatchExpression:
		return c.checkMatchExpression(ctx, e)
	default:
		return nil, diag.Newf(diag.TypeMismatch, "unsupported expression %T", expr)
	}
}

// checkVariable resolves a name in ctx. A quoted name that is not bound is a
// string literal.
func (c *Checker) checkVariable(ctx *Context, v *ast.Variable) (ast.Type, error) {
	if typ, ok := ctx.Lookup(v.Name); ok {
		return typ, nil
	}
	if v.IsQuoted() {
		return ast.StrType{}, nil
	}
	return nil, diag.Newf(diag.UnboundName, "unbound variable: %s", v.Name)
}

// expect checks expr and requires its type to equal want.
func (c *Checker) expect(ctx *Context, expr ast.Expression, want ast.Type, what string) error {
	got, err := c.checkExpression(ctx, expr)
	if err != nil {
		return err
	}
	if !TypesEqual(got, want) {
		return c.fail(expr, diag.TypeMismatch, "%s requires %s operand (got %s)", what, typeName(want), typeName(got))
	}
	return nil
}

func (c *Checker) checkBinaryExpression(ctx *Context, expr *ast.BinaryExpression) (ast.Type, error) {
	var operand, result ast.Type
	switch expr.Operator {
	case ast.OpPlus:
		operand, result = ast.NatType{}, ast.NatType{}
	case ast.OpEq, ast.OpAnd, ast.OpOr:
		operand, result = ast.BoolType{}, ast.BoolType{}
	default:
		return nil, diag.Newf(diag.TypeMismatch, "unsupported operator %q", expr.Operator)
	}
	what := "'" + string(expr.Operator) + "'"
	if err := c.expect(ctx, expr.Left, operand, what); err != nil {
		return nil, err
	}
	if err := c.expect(ctx, expr.Right, operand, what); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Checker) checkIfExpression(ctx *Context, expr *ast.IfExpression) (ast.Type, error) {
	if err := c.expect(ctx, expr.Condition, ast.BoolType{}, "if condition"); err != nil {
		return nil, err
	}
	thenType, err := c.checkExpression(ctx, expr.Then)
	if err != nil {
		return nil, err
	}
	elseType, err := c.checkExpression(ctx, expr.Else)
	if err != nil {
		return nil, err
	}
	if !sameTopLevel(thenType, elseType) {
		return nil, c.fail(expr, diag.TypeMismatch, "if branches disagree: %s vs %s", typeName(thenType), typeName(elseType))
	}
	return elseType, nil
}

func (c *Checker) checkProjectExpression(ctx *Context, expr *ast.ProjectExpression) (ast.Type, error) {
	typ, err := c.checkExpression(ctx, expr.Pair)
	if err != nil {
		return nil, err
	}
	pair, ok := typ.(ast.PairType)
	if !ok {
		return nil, c.fail(expr, diag.TypeMismatch, "%s requires a pair (got %s)", expr.Component, typeName(typ))
	}
	if expr.Component == ast.ComponentFirst {
		return pair.First, nil
	}
	return pair.Second, nil
}
