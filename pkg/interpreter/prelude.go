package interpreter

import (
	"math/big"
	"unicode/utf8"

	"lumen/interpreter-go/pkg/ast"
	"lumen/interpreter-go/pkg/diag"
	"lumen/interpreter-go/pkg/runtime"
)

// Builtin is a host primitive together with the type the checker sees for it.
type Builtin struct {
	Name string
	Type ast.ArrowType
	Impl runtime.NativeFunc
}

// Primitive returns the runtime value bound for the builtin.
func (b Builtin) Primitive() runtime.PrimitiveValue {
	return runtime.PrimitiveValue{Name: b.Name, Arity: len(b.Type.Inputs), Impl: b.Impl}
}

// Prelude lists the arithmetic, comparison and string helpers that programs
// may call without declaring them.
func Prelude() []Builtin {
	nat, boolean, str := ast.Nat(), ast.BoolT(), ast.StrT()
	return []Builtin{
		{Name: "add", Type: ast.Arrow(nat, nat, nat), Impl: natBinary("add", func(a, b *big.Int) runtime.Value {
			return runtime.NumberValue{Val: new(big.Int).Add(a, b)}
		})},
		{Name: "sub", Type: ast.Arrow(nat, nat, nat), Impl: natBinary("sub", func(a, b *big.Int) runtime.Value {
			diff := new(big.Int).Sub(a, b)
			if diff.Sign() < 0 {
				diff.SetInt64(0)
			}
			return runtime.NumberValue{Val: diff}
		})},
		{Name: "mul", Type: ast.Arrow(nat, nat, nat), Impl: natBinary("mul", func(a, b *big.Int) runtime.Value {
			return runtime.NumberValue{Val: new(big.Int).Mul(a, b)}
		})},
		{Name: "lt", Type: ast.Arrow(boolean, nat, nat), Impl: natBinary("lt", func(a, b *big.Int) runtime.Value {
			return runtime.BoolValue{Val: a.Cmp(b) < 0}
		})},
		{Name: "eqn", Type: ast.Arrow(boolean, nat, nat), Impl: natBinary("eqn", func(a, b *big.Int) runtime.Value {
			return runtime.BoolValue{Val: a.Cmp(b) == 0}
		})},
		{Name: "concat", Type: ast.Arrow(str, str, str), Impl: func(args []runtime.Value) (runtime.Value, error) {
			left, err := stringArg("concat", args, 0)
			if err != nil {
				return nil, err
			}
			right, err := stringArg("concat", args, 1)
			if err != nil {
				return nil, err
			}
			return runtime.StringValue{Val: left + right}, nil
		}},
		{Name: "strlen", Type: ast.Arrow(nat, str), Impl: func(args []runtime.Value) (runtime.Value, error) {
			text, err := stringArg("strlen", args, 0)
			if err != nil {
				return nil, err
			}
			return runtime.NewNumber(int64(utf8.RuneCountInString(text))), nil
		}},
	}
}

// PreludeValues returns the prelude as runtime bindings.
func PreludeValues() map[string]runtime.Value {
	out := make(map[string]runtime.Value)
	for _, b := range Prelude() {
		out[b.Name] = b.Primitive()
	}
	return out
}

// PreludeTypes returns the prelude as checker bindings.
func PreludeTypes() map[string]ast.Type {
	out := make(map[string]ast.Type)
	for _, b := range Prelude() {
		out[b.Name] = b.Type
	}
	return out
}

func natBinary(name string, op func(a, b *big.Int) runtime.Value) runtime.NativeFunc {
	return func(args []runtime.Value) (runtime.Value, error) {
		if len(args) != 2 {
			return nil, diag.Newf(diag.ArityMismatch, "%s expects 2 arguments but got %d", name, len(args))
		}
		a, ok := args[0].(runtime.NumberValue)
		if !ok || a.Val == nil {
			return nil, diag.Newf(diag.TypeMismatch, "%s expects numbers but got %s", name, runtime.Display(args[0]))
		}
		b, ok := args[1].(runtime.NumberValue)
		if !ok || b.Val == nil {
			return nil, diag.Newf(diag.TypeMismatch, "%s expects numbers but got %s", name, runtime.Display(args[1]))
		}
		return op(a.Val, b.Val), nil
	}
}

func stringArg(name string, args []runtime.Value, idx int) (string, error) {
	if idx >= len(args) {
		return "", diag.Newf(diag.ArityMismatch, "%s expects %d arguments but got %d", name, idx+1, len(args))
	}
	s, ok := args[idx].(runtime.StringValue)
	if !ok {
		return "", diag.Newf(diag.TypeMismatch, "%s expects strings but got %s", name, runtime.Display(args[idx]))
	}
	return s.Val, nil
}
