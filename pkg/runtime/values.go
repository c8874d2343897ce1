package runtime

import (
	"fmt"
	"math/big"

	"lumen/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNumber Kind = iota
	KindBool
	KindString
	KindClosure
	KindPrimitive
	KindPair
	KindConstructed
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindClosure:
		return "closure"
	case KindPrimitive:
		return "primitive"
	case KindPair:
		return "pair"
	case KindConstructed:
		return "constructed"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

// NumberValue holds a natural number of arbitrary size.
type NumberValue struct {
	Val *big.Int
}

func (v NumberValue) Kind() Kind { return KindNumber }

func NewNumber(n int64) NumberValue {
	return NumberValue{Val: big.NewInt(n)}
}

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

// StringValue holds the unquoted text.
type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

//-----------------------------------------------------------------------------
// Functions
//-----------------------------------------------------------------------------

// ClosureValue pairs a lambda with the environment it was defined in. The
// environment is shared, so later assignments to captured names are visible.
type ClosureValue struct {
	Lambda  *ast.LambdaExpression
	Closure *Environment
}

func (v *ClosureValue) Kind() Kind { return KindClosure }

// NativeFunc receives the full evaluated argument vector.
type NativeFunc func(args []Value) (Value, error)

// PrimitiveValue is a host function with a fixed arity.
type PrimitiveValue struct {
	Name  string
	Arity int
	Impl  NativeFunc
}

func (v PrimitiveValue) Kind() Kind { return KindPrimitive }

//-----------------------------------------------------------------------------
// Aggregates
//-----------------------------------------------------------------------------

type PairValue struct {
	First  Value
	Second Value
}

func (v PairValue) Kind() Kind { return KindPair }

// ConstructedValue is a data value tagged with the constructor that built it.
type ConstructedValue struct {
	Constructor string
	Fields      []Value
}

func (v *ConstructedValue) Kind() Kind { return KindConstructed }
