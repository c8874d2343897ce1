package typechecker

import "lumen/interpreter-go/pkg/ast"

func typeName(t ast.Type) string {
	return ast.RenderType(t)
}

// TypesEqual is structural equality over type terms, with data types compared
// nominally. A constructor type is equal to its owning data type.
func TypesEqual(a, b ast.Type) bool {
	if a == nil || b == nil {
		return false
	}
	if id, ok := dataID(a); ok {
		other, ok := dataID(b)
		return ok && id == other
	}
	switch left := a.(type) {
	case ast.NatType, ast.BoolType, ast.StrType:
		return a.Kind() == b.Kind()
	case ast.PairType:
		right, ok := b.(ast.PairType)
		return ok && TypesEqual(left.First, right.First) && TypesEqual(left.Second, right.Second)
	case ast.ArrowType:
		right, ok := b.(ast.ArrowType)
		if !ok || len(left.Inputs) != len(right.Inputs) {
			return false
		}
		if !TypesEqual(left.Output, right.Output) {
			return false
		}
		for idx := range left.Inputs {
			if !TypesEqual(left.Inputs[idx], right.Inputs[idx]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// dataID returns the nominal identity of data and constructor types.
func dataID(t ast.Type) (string, bool) {
	switch typ := t.(type) {
	case ast.DataType:
		return typ.ID, true
	case ast.ConstructType:
		return typ.Owner.ID, true
	default:
		return "", false
	}
}

// sameTopLevel compares only the outermost tag. Constructor types share the
// tag of data types so both branches of an if may mix them.
func sameTopLevel(a, b ast.Type) bool {
	return topLevel(a) == topLevel(b)
}

func topLevel(t ast.Type) ast.TypeKind {
	if t.Kind() == ast.KindConstruct {
		return ast.KindData
	}
	return t.Kind()
}
