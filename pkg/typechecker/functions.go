package typechecker

import (
	"lumen/interpreter-go/pkg/ast"
	"lumen/interpreter-go/pkg/diag"
)

func (c *Checker) checkLambdaExpression(ctx *Context, expr *ast.LambdaExpression) (ast.Type, error) {
	if err := c.validateTypeReference(expr.ParamType, ""); err != nil {
		return nil, err
	}
	body := ctx.Extend()
	if err := body.Set(expr.Param, expr.ParamType); err != nil {
		return nil, err
	}
	output, err := c.checkExpression(body, expr.Body)
	if err != nil {
		return nil, err
	}
	return ast.ArrowType{Inputs: []ast.Type{expr.ParamType}, Output: output}, nil
}

func (c *Checker) checkApplication(ctx *Context, expr *ast.Application) (ast.Type, error) {
	headType, err := c.checkExpression(ctx, expr.Head)
	if err != nil {
		return nil, err
	}
	arrow, ok := headType.(ast.ArrowType)
	if !ok {
		return nil, c.fail(expr.Head, diag.TypeMismatch, "cannot apply a value of type %s", typeName(headType))
	}
	if err := c.checkArguments(ctx, expr, arrow.Inputs, expr.Args, ast.RenderExpression(expr.Head)); err != nil {
		return nil, err
	}
	return arrow.Output, nil
}

// checkArguments requires exactly one argument per input and each argument
// type to equal the declared input.
func (c *Checker) checkArguments(ctx *Context, site ast.Node, inputs []ast.Type, args []ast.Expression, callee string) error {
	if len(args) != len(inputs) {
		return c.fail(site, diag.ArityMismatch, "%s expects %d arguments but got %d", callee, len(inputs), len(args))
	}
	for idx, arg := range args {
		got, err := c.checkExpression(ctx, arg)
		if err != nil {
			return err
		}
		if !TypesEqual(got, inputs[idx]) {
			return c.fail(arg, diag.TypeMismatch, "argument %d to %s: expected %s, got %s", idx+1, callee, typeName(inputs[idx]), typeName(got))
		}
	}
	return nil
}

func (c *Checker) checkConstructExpression(ctx *Context, expr *ast.ConstructExpression) (ast.Type, error) {
	ctor, ok := c.ctors.Constructor(expr.Constructor)
	if !ok {
		return nil, diag.Newf(diag.UnboundName, "unknown constructor: %s", expr.Constructor)
	}
	if err := c.checkArguments(ctx, expr, ctor.Fields, expr.Args, ctor.ID); err != nil {
		return nil, err
	}
	args := make([]ast.Type, len(ctor.Fields))
	copy(args, ctor.Fields)
	return ast.ConstructType{ID: ctor.ID, Args: args, Owner: ctor.Owner}, nil
}

// validateTypeReference rejects data types that have not been declared.
// pending names a data type whose declaration is being checked, so that
// recursive fields refer to it.
func (c *Checker) validateTypeReference(t ast.Type, pending string) error {
	switch typ := t.(type) {
	case nil:
		return diag.Newf(diag.TypeMismatch, "missing type annotation")
	case ast.NatType, ast.BoolType, ast.StrType:
		return nil
	case ast.DataType:
		if typ.ID == pending || c.ctors.HasData(typ.ID) {
			return nil
		}
		return diag.Newf(diag.UnboundName, "unknown data type: %s", typ.ID)
	case ast.ConstructType:
		return c.validateTypeReference(typ.Owner, pending)
	case ast.PairType:
		if err := c.validateTypeReference(typ.First, pending); err != nil {
			return err
		}
		return c.validateTypeReference(typ.Second, pending)
	case ast.ArrowType:
		for _, input := range typ.Inputs {
			if err := c.validateTypeReference(input, pending); err != nil {
				return err
			}
		}
		return c.validateTypeReference(typ.Output, pending)
	default:
		return diag.Newf(diag.TypeMismatch, "unsupported type %T", t)
	}
}
