package typechecker

import (
	"lumen/interpreter-go/pkg/ast"
	"lumen/interpreter-go/pkg/diag"
	"lumen/interpreter-go/pkg/match"
)

func (c *Checker) checkMatchExpression(ctx *Context, expr *ast.MatchExpression) (ast.Type, error) {
	if len(expr.Clauses) == 0 {
		return nil, c.fail(expr, diag.TypeMismatch, "match has no clauses")
	}
	subject, err := c.checkExpression(ctx, expr.Subject)
	if err != nil {
		return nil, err
	}

	var result ast.Type
	for idx, clause := range expr.Clauses {
		if clause == nil {
			return nil, c.fail(expr, diag.TypeMismatch, "match clause %d is missing", idx+1)
		}
		pattern, err := match.Compile(clause.Pattern, c.ctors)
		if err != nil {
			return nil, diag.At(err, clause.Pattern)
		}
		clauseCtx := ctx.Extend()
		ok, err := match.Match[ast.Type](pattern, subject, typeDomain{}, clauseCtx.Set)
		if err != nil {
			return nil, diag.At(err, clause.Pattern)
		}
		if !ok {
			return nil, c.fail(clause.Pattern, diag.TypeMismatch, "pattern %s cannot match a value of type %s", ast.RenderPattern(clause.Pattern), typeName(subject))
		}
		bodyType, err := c.checkExpression(clauseCtx, clause.Body)
		if err != nil {
			return nil, err
		}
		if result == nil {
			result = bodyType
			continue
		}
		if !TypesEqual(result, bodyType) {
			return nil, c.fail(clause.Body, diag.TypeMismatch, "match branch %d has type %s, expected %s", idx+1, typeName(bodyType), typeName(result))
		}
	}
	return result, nil
}
