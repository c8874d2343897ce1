package ast

import "fmt"

// TypeKind identifies the top-level tag of a type term.
type TypeKind int

const (
	KindNat TypeKind = iota
	KindBool
	KindStr
	KindArrow
	KindPair
	KindData
	KindConstruct
)

func (k TypeKind) String() string {
	switch k {
	case KindNat:
		return "nat"
	case KindBool:
		return "bool"
	case KindStr:
		return "str"
	case KindArrow:
		return "arrow"
	case KindPair:
		return "pair"
	case KindData:
		return "data"
	case KindConstruct:
		return "construct"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Type is a type term. Types appear in lambda annotations and constructor
// declarations, and are synthesized by the checker.
type Type interface {
	Kind() TypeKind
}

type NatType struct{}

func (NatType) Kind() TypeKind { return KindNat }

type BoolType struct{}

func (BoolType) Kind() TypeKind { return KindBool }

type StrType struct{}

func (StrType) Kind() TypeKind { return KindStr }

type ArrowType struct {
	Inputs []Type
	Output Type
}

func (ArrowType) Kind() TypeKind { return KindArrow }

type PairType struct {
	First  Type
	Second Type
}

func (PairType) Kind() TypeKind { return KindPair }

// DataType is nominal: two data types are the same iff their IDs are.
type DataType struct {
	ID string
}

func (DataType) Kind() TypeKind { return KindData }

// ConstructType is the type of a constructor application. Owner names the
// data type the constructor belongs to.
type ConstructType struct {
	ID    string
	Args  []Type
	Owner DataType
}

func (ConstructType) Kind() TypeKind { return KindConstruct }
