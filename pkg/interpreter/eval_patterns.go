package interpreter

import (
	"math/big"

	"lumen/interpreter-go/pkg/ast"
	"lumen/interpreter-go/pkg/decls"
	"lumen/interpreter-go/pkg/diag"
	"lumen/interpreter-go/pkg/match"
	"lumen/interpreter-go/pkg/runtime"
)

// valueDomain runs the pattern engine over runtime values.
type valueDomain struct{}

var _ match.Domain[runtime.Value] = valueDomain{}

func (valueDomain) IsInt(s runtime.Value, n *big.Int) bool {
	num, ok := s.(runtime.NumberValue)
	return ok && num.Val != nil && num.Val.Cmp(n) == 0
}

func (valueDomain) IsBool(s runtime.Value, b bool) bool {
	val, ok := s.(runtime.BoolValue)
	return ok && val.Val == b
}

func (valueDomain) IsString(s runtime.Value, text string) bool {
	val, ok := s.(runtime.StringValue)
	return ok && val.Val == text
}

func (valueDomain) Fields(s runtime.Value, ctor decls.Constructor) ([]runtime.Value, bool) {
	val, ok := s.(*runtime.ConstructedValue)
	if !ok || val.Constructor != ctor.ID {
		return nil, false
	}
	return val.Fields, true
}

func (valueDomain) Components(s runtime.Value) (runtime.Value, runtime.Value, bool) {
	pair, ok := s.(runtime.PairValue)
	if !ok {
		return nil, nil, false
	}
	return pair.First, pair.Second, true
}

// evaluateMatchExpression evaluates the subject once and runs the first
// clause whose pattern matches, in the scope that attempt bound names into.
func (i *Interpreter) evaluateMatchExpression(expr *ast.MatchExpression, env *runtime.Environment) (runtime.Value, error) {
	subject, err := i.evaluateExpression(expr.Subject, env)
	if err != nil {
		return nil, err
	}
	patterns := make([]ast.Pattern, len(expr.Clauses))
	for idx, clause := range expr.Clauses {
		if clause == nil {
			return nil, i.fail(expr, diag.TypeMismatch, "match clause %d is missing", idx+1)
		}
		patterns[idx] = clause.Pattern
	}

	scopes := make(map[int]*runtime.Environment, len(patterns))
	open := func(idx int) match.Binder[runtime.Value] {
		attempt := env.Extend()
		scopes[idx] = attempt
		return attempt.Set
	}
	idx, err := match.First[runtime.Value](patterns, i.ctors, subject, valueDomain{}, open)
	if err != nil {
		return nil, err
	}
	if idx < 0 {
		return nil, i.fail(expr, diag.NonExhaustiveMatch, "no pattern matched %s", runtime.Display(subject))
	}
	return i.evaluateExpression(expr.Clauses[idx].Body, scopes[idx])
}
