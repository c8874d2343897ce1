package typechecker

import (
	"testing"

	"lumen/interpreter-go/pkg/ast"
	"lumen/interpreter-go/pkg/diag"
)

func listContext(t *testing.T) (*Checker, *Context) {
	t.Helper()
	checker := New()
	ctx := NewContext(nil)
	decl := ast.DataDecl("List", ast.Ctor("Nil"), ast.Ctor("Cons", ast.Nat(), ast.Data("List")))
	if err := checker.CheckStatement(ctx, decl); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return checker, ctx
}

func TestDataDeclarationBindsConstructorSignatures(t *testing.T) {
	_, ctx := listContext(t)
	nilType, err := ctx.Get("Nil")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nilType != (ast.DataType{ID: "List"}) {
		t.Fatalf("expected Nil : List, got %#v", nilType)
	}
	consType, err := ctx.Get("Cons")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ast.RenderType(consType); got != "(-> Nat List List)" {
		t.Fatalf("unexpected Cons signature %s", got)
	}
	if ctx.Has("List") {
		t.Fatalf("data ids must not be bound as values")
	}
}

func TestDataDeclarationErrors(t *testing.T) {
	checker, ctx := listContext(t)
	err := checker.CheckStatement(ctx, ast.DataDecl("List", ast.Ctor("Empty")))
	expectKind(t, err, diag.ErrRedefinition)

	err = checker.CheckStatement(ctx, ast.DataDecl("Stack", ast.Ctor("Nil")))
	expectKind(t, err, diag.ErrRedefinition)

	err = checker.CheckStatement(ctx, ast.DataDecl("Tree", ast.Ctor("Node", ast.Data("Forest"))))
	expectKind(t, err, diag.ErrUnboundName)
	if checker.Constructors().HasData("Tree") {
		t.Fatalf("failed declaration must not be registered")
	}
}

func TestConstructExpressions(t *testing.T) {
	checker, ctx := listContext(t)
	list := ast.Construct("Cons", ast.Num(5), ast.Construct("Cons", ast.Num(3), ast.Construct("Nil")))
	typ := mustType(t, checker, ctx, list)
	construct, ok := typ.(ast.ConstructType)
	if !ok || construct.ID != "Cons" || construct.Owner.ID != "List" {
		t.Fatalf("expected Cons construct owned by List, got %#v", typ)
	}

	_, err := checker.Typecheck(ctx, ast.Construct("Cons", ast.Num(5)))
	expectKind(t, err, diag.ErrArityMismatch)
	_, err = checker.Typecheck(ctx, ast.Construct("Cons", ast.Bool(true), ast.Construct("Nil")))
	expectKind(t, err, diag.ErrTypeMismatch)
	_, err = checker.Typecheck(ctx, ast.Construct("Leaf"))
	expectKind(t, err, diag.ErrUnboundName)
}

func TestConstructorAsFunction(t *testing.T) {
	checker, ctx := listContext(t)
	typ := mustType(t, checker, ctx, ast.Call("Cons", ast.Num(1), ast.Var("Nil")))
	if typ != (ast.DataType{ID: "List"}) {
		t.Fatalf("expected List, got %#v", typ)
	}
}

func TestMatchTyping(t *testing.T) {
	checker, ctx := listContext(t)
	subject := ast.Construct("Cons", ast.Num(1), ast.Construct("Nil"))
	head := ast.Match(subject,
		ast.Mc(ast.StructP("Cons", ast.BindP("h"), ast.Wc()), ast.Var("h")),
		ast.Mc(ast.BindP("Nil"), ast.Num(0)),
	)
	if got := mustType(t, checker, ctx, head); got != (ast.NatType{}) {
		t.Fatalf("expected Nat, got %#v", got)
	}
	if ctx.Has("h") {
		t.Fatalf("pattern bindings leaked into the outer context")
	}

	mixed := ast.Match(subject,
		ast.Mc(ast.BindP("Nil"), ast.Num(0)),
		ast.Mc(ast.Wc(), ast.Bool(true)),
	)
	_, err := checker.Typecheck(ctx, mixed)
	expectKind(t, err, diag.ErrTypeMismatch)
}

func TestMatchPatternErrors(t *testing.T) {
	checker, ctx := listContext(t)
	subject := ast.Construct("Nil")
	cases := []struct {
		name string
		expr ast.Expression
		want error
	}{
		{"arity", ast.Match(subject, ast.Mc(ast.StructP("Cons", ast.Wc()), ast.Num(0))), diag.ErrArityMismatch},
		{"unknown head", ast.Match(subject, ast.Mc(ast.StructP("Leaf", ast.Wc()), ast.Num(0))), diag.ErrUnboundName},
		{"literal of wrong type", ast.Match(subject, ast.Mc(ast.BindP("7"), ast.Num(0))), diag.ErrTypeMismatch},
		{"pair against data", ast.Match(subject, ast.Mc(ast.PairP(ast.Wc(), ast.Wc()), ast.Num(0))), diag.ErrTypeMismatch},
		{"duplicate binding", ast.Match(ast.Pair(ast.Num(1), ast.Num(2)), ast.Mc(ast.PairP(ast.BindP("x"), ast.BindP("x")), ast.Num(0))), diag.ErrRedefinition},
		{"no clauses", ast.Match(subject), diag.ErrTypeMismatch},
	}
	for _, tc := range cases {
		_, err := checker.Typecheck(ctx, tc.expr)
		if diag.KindOf(err) != diag.KindOf(tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestMatchPairAndLiteralPatterns(t *testing.T) {
	checker := New()
	ctx := NewContext(nil)
	expr := ast.Match(ast.Pair(ast.Num(1), ast.Str("a")),
		ast.Mc(ast.PairP(ast.BindP("0"), ast.BindP(`"a"`)), ast.Bool(true)),
		ast.Mc(ast.PairP(ast.BindP("n"), ast.BindP("s")), ast.Eq(ast.Bool(false), ast.Bool(false))),
	)
	if got := mustType(t, checker, ctx, expr); got != (ast.BoolType{}) {
		t.Fatalf("expected Bool, got %#v", got)
	}
}
