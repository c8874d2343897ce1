package typechecker

import (
	"math/big"

	"lumen/interpreter-go/pkg/ast"
	"lumen/interpreter-go/pkg/decls"
	"lumen/interpreter-go/pkg/match"
)

// typeDomain runs the pattern engine over types. A literal pattern applies
// to any scrutinee of its primitive type, and a constructor pattern applies
// to any scrutinee of the constructor's owning data type.
type typeDomain struct{}

var _ match.Domain[ast.Type] = typeDomain{}

func (typeDomain) IsInt(s ast.Type, _ *big.Int) bool  { return s.Kind() == ast.KindNat }
func (typeDomain) IsBool(s ast.Type, _ bool) bool     { return s.Kind() == ast.KindBool }
func (typeDomain) IsString(s ast.Type, _ string) bool { return s.Kind() == ast.KindStr }

func (typeDomain) Fields(s ast.Type, ctor decls.Constructor) ([]ast.Type, bool) {
	id, ok := dataID(s)
	if !ok || id != ctor.Owner.ID {
		return nil, false
	}
	return ctor.Fields, true
}

func (typeDomain) Components(s ast.Type) (ast.Type, ast.Type, bool) {
	pair, ok := s.(ast.PairType)
	if !ok {
		return nil, nil, false
	}
	return pair.First, pair.Second, true
}
