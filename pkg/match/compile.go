package match

import (
	"math/big"
	"strconv"

	"lumen/interpreter-go/pkg/ast"
	"lumen/interpreter-go/pkg/decls"
	"lumen/interpreter-go/pkg/diag"
)

// Pattern is a classified pattern. Each raw ast pattern maps to exactly one
// of the concrete kinds below.
type Pattern interface {
	Source() ast.Pattern
	isPattern()
}

type base struct {
	src ast.Pattern
}

func (b base) Source() ast.Pattern { return b.src }
func (base) isPattern()            {}

type Wildcard struct{ base }

type IntLiteral struct {
	base
	Value *big.Int
}

type BoolLiteral struct {
	base
	Value bool
}

type StringLiteral struct {
	base
	Value string
}

type NullaryConstructor struct {
	base
	Constructor decls.Constructor
}

type FreshBinding struct {
	base
	Name string
}

type ConstructorPattern struct {
	base
	Constructor decls.Constructor
	Fields      []Pattern
}

type PairPattern struct {
	base
	First  Pattern
	Second Pattern
}

// Constructors is the view of declared constructors the classifier needs.
type Constructors interface {
	Constructor(id string) (decls.Constructor, bool)
}

// Compile classifies a raw pattern against the constructors known right now.
// Unknown structured heads and wrong sub-pattern counts are reported here,
// before any scrutinee is inspected.
func Compile(p ast.Pattern, ctors Constructors) (Pattern, error) {
	switch pat := p.(type) {
	case *ast.WildcardPattern:
		return Wildcard{base{pat}}, nil
	case *ast.BindingPattern:
		return classifyBinding(pat, ctors), nil
	case *ast.StructuredPattern:
		return compileStructured(pat, ctors)
	case nil:
		return nil, diag.Newf(diag.TypeMismatch, "missing pattern")
	default:
		return nil, diag.Newf(diag.TypeMismatch, "unsupported pattern %T", p)
	}
}

func classifyBinding(pat *ast.BindingPattern, ctors Constructors) Pattern {
	text := pat.Text
	if n, ok := new(big.Int).SetString(text, 10); ok {
		return IntLiteral{base: base{pat}, Value: n}
	}
	switch text {
	case "true":
		return BoolLiteral{base: base{pat}, Value: true}
	case "false":
		return BoolLiteral{base: base{pat}, Value: false}
	case "_":
		return Wildcard{base{pat}}
	}
	if s, ok := unquote(text); ok {
		return StringLiteral{base: base{pat}, Value: s}
	}
	if ctors != nil {
		if c, ok := ctors.Constructor(text); ok && c.Nullary() {
			return NullaryConstructor{base: base{pat}, Constructor: c}
		}
	}
	return FreshBinding{base: base{pat}, Name: text}
}

func compileStructured(pat *ast.StructuredPattern, ctors Constructors) (Pattern, error) {
	if pat.IsPair() {
		if len(pat.Subpatterns) != 2 {
			return nil, diag.Newf(diag.ArityMismatch, "pair pattern expects 2 sub-patterns but found %d", len(pat.Subpatterns))
		}
		first, err := Compile(pat.Subpatterns[0], ctors)
		if err != nil {
			return nil, err
		}
		second, err := Compile(pat.Subpatterns[1], ctors)
		if err != nil {
			return nil, err
		}
		return PairPattern{base: base{pat}, First: first, Second: second}, nil
	}
	var (
		c  decls.Constructor
		ok bool
	)
	if ctors != nil {
		c, ok = ctors.Constructor(pat.Head)
	}
	if !ok {
		return nil, diag.Newf(diag.UnboundName, "unknown constructor in pattern: %s", pat.Head)
	}
	if len(pat.Subpatterns) != c.Arity() {
		return nil, diag.Newf(diag.ArityMismatch, "constructor %s expects %d sub-patterns but found %d", c.ID, c.Arity(), len(pat.Subpatterns))
	}
	fields := make([]Pattern, len(pat.Subpatterns))
	for idx, sub := range pat.Subpatterns {
		compiled, err := Compile(sub, ctors)
		if err != nil {
			return nil, err
		}
		fields[idx] = compiled
	}
	return ConstructorPattern{base: base{pat}, Constructor: c, Fields: fields}, nil
}

// unquote accepts a double-quoted literal. Escapes are honoured when the
// literal is a valid Go string; otherwise the text between the quotes is taken as is.
func unquote(text string) (string, bool) {
	if !ast.IsQuotedText(text) {
		return "", false
	}
	if s, err := strconv.Unquote(text); err == nil {
		return s, true
	}
	return text[1 : len(text)-1], true
}

// Unquote exposes the string-literal rule shared by patterns and quoted variables.
func Unquote(text string) (string, bool) {
	return unquote(text)
}
