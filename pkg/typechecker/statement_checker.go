package typechecker

import (
	"fmt"

	"lumen/interpreter-go/pkg/ast"
	"lumen/interpreter-go/pkg/diag"
)

// CheckStatement validates a single top-level statement against ctx.
func (c *Checker) CheckStatement(ctx *Context, stmt ast.Statement) error {
	if ctx == nil {
		return fmt.Errorf("typechecker: context is nil")
	}
	if err := c.checkStatement(ctx, stmt); err != nil {
		return diag.InPhase(diag.At(err, stmt), diag.PhaseTypecheck)
	}
	return nil
}

func (c *Checker) checkStatement(ctx *Context, stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.DefineStatement:
		typ, err := c.checkExpression(ctx, s.Value)
		if err != nil {
			return err
		}
		return ctx.Set(s.Name, typ)
	case *ast.AssignStatement:
		return c.checkAssignStatement(ctx, s)
	case *ast.PrintStatement:
		_, err := c.checkExpression(ctx, s.Value)
		return err
	case *ast.DataDeclaration:
		return c.checkDataDeclaration(ctx, s)
	case nil:
		return diag.Newf(diag.TypeMismatch, "missing statement")
	default:
		return diag.Newf(diag.TypeMismatch, "unsupported statement %T", stmt)
	}
}

// checkAssignStatement requires a bare bound variable whose type is preserved
// by the new value.
func (c *Checker) checkAssignStatement(ctx *Context, stmt *ast.AssignStatement) error {
	target, ok := stmt.Target.(*ast.Variable)
	if !ok || target.IsQuoted() {
		return c.fail(stmt.Target, diag.InvalidAssignTarget, "cannot assign to %s", ast.RenderExpression(stmt.Target))
	}
	current, err := ctx.Get(target.Name)
	if err != nil {
		return diag.At(err, target)
	}
	next, err := c.checkExpression(ctx, stmt.Value)
	if err != nil {
		return err
	}
	if !TypesEqual(current, next) {
		return c.fail(stmt.Value, diag.TypeMismatch, "cannot assign %s to %s of type %s", typeName(next), target.Name, typeName(current))
	}
	return nil
}

// checkDataDeclaration registers the data type and binds every constructor id
// in ctx to its signature. Nothing is registered when any part fails.
func (c *Checker) checkDataDeclaration(ctx *Context, decl *ast.DataDeclaration) error {
	for _, def := range decl.Constructors {
		if def == nil {
			continue
		}
		if ctx.HasLocal(def.Name) {
			return c.fail(def, diag.Redefinition, "constructor %s is already bound", def.Name)
		}
		for _, field := range def.Fields {
			if err := c.validateTypeReference(field, decl.Name); err != nil {
				return diag.At(err, def)
			}
		}
	}
	ctors, err := c.ctors.Declare(decl)
	if err != nil {
		return err
	}
	for _, ctor := range ctors {
		if err := ctx.Set(ctor.ID, ctor.Signature()); err != nil {
			return err
		}
	}
	return nil
}
