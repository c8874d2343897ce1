package interpreter

import (
	"errors"
	"testing"

	"lumen/interpreter-go/pkg/ast"
	"lumen/interpreter-go/pkg/diag"
	"lumen/interpreter-go/pkg/runtime"
)

func listInterpreter(t *testing.T) (*Interpreter, *runtime.Environment) {
	t.Helper()
	interp := New()
	env := interp.GlobalEnvironment()
	decl := ast.DataDecl("List", ast.Ctor("Nil"), ast.Ctor("Cons", ast.Nat(), ast.Data("List")))
	if _, err := interp.Execute(env, ast.Prog(decl)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return interp, env
}

func cons(head int64, tail ast.Expression) ast.Expression {
	return ast.Construct("Cons", ast.Num(head), tail)
}

func TestConstructRendersNested(t *testing.T) {
	interp, env := listInterpreter(t)
	val := mustEval(t, interp, env, cons(5, cons(3, ast.Construct("Nil"))))
	if got := runtime.Display(val); got != "(Cons 5 (Cons 3 (Nil)))" {
		t.Fatalf("unexpected rendering %s", got)
	}
}

func TestConstructorBindings(t *testing.T) {
	interp, env := listInterpreter(t)
	val := mustEval(t, interp, env, ast.Call("Cons", ast.Num(1), ast.Var("Nil")))
	if got := runtime.Display(val); got != "(Cons 1 (Nil))" {
		t.Fatalf("unexpected rendering %s", got)
	}
	_, err := interp.Evaluate(env, ast.Call("Cons", ast.Num(1)))
	if !errors.Is(err, diag.ErrArityMismatch) {
		t.Fatalf("expected arity mismatch from constructor primitive, got %v", err)
	}
	_, err = interp.Evaluate(env, ast.Construct("Cons", ast.Num(1)))
	if !errors.Is(err, diag.ErrArityMismatch) {
		t.Fatalf("expected arity mismatch from construct, got %v", err)
	}
	_, err = interp.Evaluate(env, ast.Construct("Leaf"))
	if !errors.Is(err, diag.ErrUnboundName) {
		t.Fatalf("expected unknown constructor, got %v", err)
	}
}

func TestMatchLiteralNestedPattern(t *testing.T) {
	interp, env := listInterpreter(t)
	expr := ast.Match(cons(0, cons(0, ast.Construct("Nil"))),
		ast.Mc(ast.StructP("Cons", ast.BindP("0"), ast.StructP("Cons", ast.BindP("0"), ast.BindP("Nil"))), ast.Str("fizzbuzz")),
		ast.Mc(ast.Wc(), ast.Str("other")),
	)
	val := mustEval(t, interp, env, expr)
	if s, ok := val.(runtime.StringValue); !ok || s.Val != "fizzbuzz" {
		t.Fatalf("expected fizzbuzz, got %#v", val)
	}
}

func TestMatchNonExhaustive(t *testing.T) {
	interp, env := listInterpreter(t)
	expr := ast.Match(ast.Construct("Nil"),
		ast.Mc(ast.StructP("Cons", ast.Wc(), ast.BindP("Nil")), ast.Num(1)),
	)
	_, err := interp.Evaluate(env, expr)
	if !errors.Is(err, diag.ErrNonExhaustiveMatch) {
		t.Fatalf("expected non-exhaustive match, got %v", err)
	}
	_, err = interp.Evaluate(env, ast.Match(ast.Num(1)))
	if !errors.Is(err, diag.ErrNonExhaustiveMatch) {
		t.Fatalf("expected non-exhaustive match for empty clause list, got %v", err)
	}
}

func TestMatchFirstClauseWins(t *testing.T) {
	interp, env := listInterpreter(t)
	expr := ast.Match(cons(7, ast.Construct("Nil")),
		ast.Mc(ast.BindP("Nil"), ast.Num(0)),
		ast.Mc(ast.StructP("Cons", ast.BindP("h"), ast.Wc()), ast.Var("h")),
		ast.Mc(ast.BindP("anything"), ast.Num(99)),
	)
	if got := runtime.Display(mustEval(t, interp, env, expr)); got != "7" {
		t.Fatalf("expected first matching clause, got %s", got)
	}
}

func TestMatchStopsBeforeLaterUnknownHead(t *testing.T) {
	interp, env := listInterpreter(t)
	expr := ast.Match(cons(7, ast.Construct("Nil")),
		ast.Mc(ast.StructP("Cons", ast.BindP("h"), ast.Wc()), ast.Var("h")),
		ast.Mc(ast.StructP("Leaf", ast.Wc()), ast.Num(0)),
	)
	if got := runtime.Display(mustEval(t, interp, env, expr)); got != "7" {
		t.Fatalf("expected the first clause to win, got %s", got)
	}
	_, err := interp.Evaluate(env, ast.Match(ast.Construct("Nil"),
		ast.Mc(ast.StructP("Cons", ast.Wc(), ast.Wc()), ast.Num(1)),
		ast.Mc(ast.StructP("Leaf", ast.Wc()), ast.Num(0)),
	))
	if !errors.Is(err, diag.ErrUnboundName) {
		t.Fatalf("expected unknown constructor once the clause is tried, got %v", err)
	}
}

func TestMatchBindingsStayInClauseScope(t *testing.T) {
	interp, env := listInterpreter(t)
	expr := ast.Match(ast.Pair(ast.Num(1), ast.Num(2)),
		ast.Mc(ast.PairP(ast.BindP("a"), ast.BindP("3")), ast.Var("a")),
		ast.Mc(ast.PairP(ast.BindP("x"), ast.BindP("y")), ast.Plus(ast.Var("x"), ast.Var("y"))),
	)
	if got := runtime.Display(mustEval(t, interp, env, expr)); got != "3" {
		t.Fatalf("expected 3, got %s", got)
	}
	for _, name := range []string{"a", "x", "y"} {
		if env.Has(name) {
			t.Fatalf("binding %s leaked out of the match", name)
		}
	}
}

func TestMatchStringAndBoolLiterals(t *testing.T) {
	interp := New()
	env := interp.GlobalEnvironment()
	expr := ast.Match(ast.Pair(ast.Str("b"), ast.Bool(true)),
		ast.Mc(ast.PairP(ast.BindP(`"a"`), ast.Wc()), ast.Num(1)),
		ast.Mc(ast.PairP(ast.BindP(`"b"`), ast.BindP("false")), ast.Num(2)),
		ast.Mc(ast.PairP(ast.BindP(`"b"`), ast.BindP("true")), ast.Num(3)),
	)
	if got := runtime.Display(mustEval(t, interp, env, expr)); got != "3" {
		t.Fatalf("expected 3, got %s", got)
	}
}
