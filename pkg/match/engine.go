package match

import (
	"math/big"

	"lumen/interpreter-go/pkg/ast"
	"lumen/interpreter-go/pkg/decls"
	"lumen/interpreter-go/pkg/diag"
)

// Domain supplies the comparisons the engine needs for one kind of scrutinee.
// The checker instantiates it over types and the interpreter over values;
// the matching algorithm itself is the same for both.
type Domain[S any] interface {
	// IsInt reports whether s is (or may hold) the natural n.
	IsInt(s S, n *big.Int) bool
	// IsBool reports whether s is (or may hold) the boolean b.
	IsBool(s S, b bool) bool
	// IsString reports whether s is (or may hold) the string text.
	IsString(s S, text string) bool
	// Fields returns the field scrutinees when s is built by constructor c.
	Fields(s S, c decls.Constructor) ([]S, bool)
	// Components returns both halves when s is a pair.
	Components(s S) (S, S, bool)
}

// Binder introduces a fresh name into the scope of the current match attempt.
type Binder[S any] func(name string, s S) error

// Match decides whether p applies to s, calling bind for every fresh name it
// introduces. Sub-patterns are tried left to right and the first failure
// short-circuits the rest. A bind error aborts the match.
func Match[S any](p Pattern, s S, d Domain[S], bind Binder[S]) (bool, error) {
	switch pat := p.(type) {
	case Wildcard:
		return true, nil
	case IntLiteral:
		return d.IsInt(s, pat.Value), nil
	case BoolLiteral:
		return d.IsBool(s, pat.Value), nil
	case StringLiteral:
		return d.IsString(s, pat.Value), nil
	case NullaryConstructor:
		fields, ok := d.Fields(s, pat.Constructor)
		return ok && len(fields) == 0, nil
	case FreshBinding:
		if bind == nil {
			return true, nil
		}
		if err := bind(pat.Name, s); err != nil {
			return false, err
		}
		return true, nil
	case ConstructorPattern:
		fields, ok := d.Fields(s, pat.Constructor)
		if !ok || len(fields) != len(pat.Fields) {
			return false, nil
		}
		return matchAll(pat.Fields, fields, d, bind)
	case PairPattern:
		first, second, ok := d.Components(s)
		if !ok {
			return false, nil
		}
		return matchAll([]Pattern{pat.First, pat.Second}, []S{first, second}, d, bind)
	default:
		return false, nil
	}
}

func matchAll[S any](patterns []Pattern, scrutinees []S, d Domain[S], bind Binder[S]) (bool, error) {
	for idx, sub := range patterns {
		ok, err := Match(sub, scrutinees[idx], d, bind)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// First tries patterns in order and returns the index of the first one that
// matches, or -1 when none does. Each pattern is compiled only when its turn
// comes, so a later clause with an unknown head never hides an earlier match.
// open is called before each attempt and returns the binder for that
// attempt's fresh scope.
func First[S any](patterns []ast.Pattern, ctors Constructors, s S, d Domain[S], open func(idx int) Binder[S]) (int, error) {
	for idx, raw := range patterns {
		p, err := Compile(raw, ctors)
		if err != nil {
			return -1, diag.At(err, raw)
		}
		var bind Binder[S]
		if open != nil {
			bind = open(idx)
		}
		ok, err := Match(p, s, d, bind)
		if err != nil {
			return -1, diag.At(err, raw)
		}
		if ok {
			return idx, nil
		}
	}
	return -1, nil
}
