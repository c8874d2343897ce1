package typechecker

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"lumen/interpreter-go/pkg/ast"
	"lumen/interpreter-go/pkg/diag"
)

func mustType(t *testing.T, checker *Checker, ctx *Context, expr ast.Expression) ast.Type {
	t.Helper()
	typ, err := checker.Typecheck(ctx, expr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return typ
}

func expectKind(t *testing.T, err error, want error) {
	t.Helper()
	if !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

func TestPairProjections(t *testing.T) {
	checker := New()
	ctx := NewContext(nil)
	pair := ast.Pair(ast.Num(1), ast.Bool(true))

	if got := mustType(t, checker, ctx, ast.Fst(pair)); got != (ast.NatType{}) {
		t.Fatalf("expected Nat, got %#v", got)
	}
	if got := mustType(t, checker, ctx, ast.Snd(pair)); got != (ast.BoolType{}) {
		t.Fatalf("expected Bool, got %#v", got)
	}
	_, err := checker.Typecheck(ctx, ast.Fst(ast.Num(1)))
	expectKind(t, err, diag.ErrTypeMismatch)
}

func TestTypecheckIsDeterministic(t *testing.T) {
	checker := New()
	ctx := NewContext(map[string]ast.Type{"n": ast.Nat()})
	expr := ast.Pair(ast.Lam("x", ast.Nat(), ast.Plus(ast.Var("x"), ast.Var("n"))), ast.Str("s"))
	first := mustType(t, checker, ctx, expr)
	second := mustType(t, checker, ctx, expr)
	if diff := cmp.Diff(ast.RenderType(first), ast.RenderType(second)); diff != "" {
		t.Fatalf("types differ between runs (-first +second):\n%s", diff)
	}
	if got := ast.RenderType(first); got != "(pair (-> Nat Nat) Str)" {
		t.Fatalf("unexpected type %s", got)
	}
	if diff := cmp.Diff([]string{"n"}, ctx.Keys()); diff != "" {
		t.Fatalf("context changed (-want +got):\n%s", diff)
	}
}

func TestVariables(t *testing.T) {
	checker := New()
	ctx := NewContext(map[string]ast.Type{"flag": ast.BoolT()})
	if got := mustType(t, checker, ctx, ast.Var("flag")); got != (ast.BoolType{}) {
		t.Fatalf("expected Bool, got %#v", got)
	}
	if got := mustType(t, checker, ctx, ast.Str("hello")); got != (ast.StrType{}) {
		t.Fatalf("expected quoted name to be Str, got %#v", got)
	}
	_, err := checker.Typecheck(ctx, ast.Var("missing"))
	expectKind(t, err, diag.ErrUnboundName)
	if diag.KindOf(err) != diag.UnboundName {
		t.Fatalf("expected UnboundName kind, got %v", diag.KindOf(err))
	}
}

func TestHalfQuotedNameIsNotAString(t *testing.T) {
	checker := New()
	ctx := NewContext(nil)
	for _, name := range []string{`"abc`, `"`, `abc"`} {
		_, err := checker.Typecheck(ctx, ast.Var(name))
		expectKind(t, err, diag.ErrUnboundName)
	}
	if got := mustType(t, checker, ctx, ast.Var(`""`)); got != (ast.StrType{}) {
		t.Fatalf("expected empty string literal to be Str, got %#v", got)
	}
}

func TestOperators(t *testing.T) {
	checker := New()
	ctx := NewContext(nil)
	cases := []struct {
		name string
		expr ast.Expression
		want ast.Type
		err  error
	}{
		{"plus", ast.Plus(ast.Num(1), ast.Num(2)), ast.Nat(), nil},
		{"plus bool", ast.Plus(ast.Num(1), ast.Bool(true)), nil, diag.ErrTypeMismatch},
		{"and", ast.And(ast.Bool(true), ast.Bool(false)), ast.BoolT(), nil},
		{"or nat", ast.Or(ast.Num(0), ast.Bool(false)), nil, diag.ErrTypeMismatch},
		{"not", ast.Not(ast.Bool(true)), ast.BoolT(), nil},
		{"not nat", ast.Not(ast.Num(3)), nil, diag.ErrTypeMismatch},
		{"eq bool", ast.Eq(ast.Bool(true), ast.Bool(true)), ast.BoolT(), nil},
		{"eq nat", ast.Eq(ast.Num(1), ast.Num(1)), nil, diag.ErrTypeMismatch},
	}
	for _, tc := range cases {
		got, err := checker.Typecheck(ctx, tc.expr)
		if tc.err != nil {
			if !errors.Is(err, tc.err) {
				t.Fatalf("%s: expected %v, got type=%v err=%v", tc.name, tc.err, got, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if !TypesEqual(got, tc.want) {
			t.Fatalf("%s: expected %s, got %s", tc.name, ast.RenderType(tc.want), ast.RenderType(got))
		}
	}
}

func TestIfBranches(t *testing.T) {
	checker := New()
	ctx := NewContext(nil)
	if got := mustType(t, checker, ctx, ast.If(ast.Bool(true), ast.Num(1), ast.Num(2))); got != (ast.NatType{}) {
		t.Fatalf("expected Nat, got %#v", got)
	}
	_, err := checker.Typecheck(ctx, ast.If(ast.Num(1), ast.Num(1), ast.Num(2)))
	expectKind(t, err, diag.ErrTypeMismatch)
	_, err = checker.Typecheck(ctx, ast.If(ast.Bool(true), ast.Num(1), ast.Bool(false)))
	expectKind(t, err, diag.ErrTypeMismatch)
}

func TestLambdaAndApplication(t *testing.T) {
	checker := New()
	ctx := NewContext(nil)
	inc := ast.Lam("x", ast.Nat(), ast.Plus(ast.Var("x"), ast.Num(1)))

	if got := ast.RenderType(mustType(t, checker, ctx, inc)); got != "(-> Nat Nat)" {
		t.Fatalf("unexpected lambda type %s", got)
	}
	if got := mustType(t, checker, ctx, ast.App(inc, ast.Num(4))); got != (ast.NatType{}) {
		t.Fatalf("expected Nat, got %#v", got)
	}

	_, err := checker.Typecheck(ctx, ast.App(inc, ast.Num(1), ast.Num(2)))
	expectKind(t, err, diag.ErrArityMismatch)
	_, err = checker.Typecheck(ctx, ast.App(inc, ast.Bool(true)))
	expectKind(t, err, diag.ErrTypeMismatch)
	_, err = checker.Typecheck(ctx, ast.App(ast.Num(1), ast.Num(2)))
	expectKind(t, err, diag.ErrTypeMismatch)
	_, err = checker.Typecheck(ctx, ast.Lam("x", ast.Data("Tree"), ast.Var("x")))
	expectKind(t, err, diag.ErrUnboundName)
}

func TestLambdaShadowsOuterBinding(t *testing.T) {
	checker := New()
	ctx := NewContext(map[string]ast.Type{"x": ast.BoolT()})
	typ := mustType(t, checker, ctx, ast.Lam("x", ast.Nat(), ast.Plus(ast.Var("x"), ast.Var("x"))))
	if got := ast.RenderType(typ); got != "(-> Nat Nat)" {
		t.Fatalf("unexpected type %s", got)
	}
	if outer, _ := ctx.Lookup("x"); outer != (ast.BoolType{}) {
		t.Fatalf("outer binding changed to %#v", outer)
	}
}

func TestTypeOfRecordsSubexpressions(t *testing.T) {
	checker := New()
	left := ast.Num(1)
	expr := ast.Pair(left, ast.Bool(false))
	mustType(t, checker, NewContext(nil), expr)
	got, ok := checker.TypeOf(left)
	if !ok || got != (ast.NatType{}) {
		t.Fatalf("expected recorded Nat, got %#v (ok=%v)", got, ok)
	}
}

func TestErrorsCarryPhaseAndSpan(t *testing.T) {
	checker := New()
	bad := ast.WithSpan(ast.Var("nope"), ast.Span{Start: ast.Position{Line: 3, Column: 7}})
	_, err := checker.Typecheck(NewContext(nil), ast.Plus(ast.Num(1), bad))
	var de *diag.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected *diag.Error, got %T", err)
	}
	if de.Phase != diag.PhaseTypecheck {
		t.Fatalf("expected typecheck phase, got %q", de.Phase)
	}
	if de.Span.Start.Line != 3 || de.Span.Start.Column != 7 {
		t.Fatalf("expected innermost span, got %#v", de.Span)
	}
}
