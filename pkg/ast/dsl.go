package ast

import "math/big"

// Identifier and literal helpers.

func Var(name string) *Variable {
	return NewVariable(name)
}

// Str spells a string as the quoted variable form the front-end produces.
func Str(value string) *Variable {
	return NewVariable(`"` + value + `"`)
}

func Num(value int64) *NumberLiteral {
	return NewNumberLiteral(big.NewInt(value))
}

func NumBig(value *big.Int) *NumberLiteral {
	return NewNumberLiteral(new(big.Int).Set(value))
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

// Type helpers.

func Nat() NatType { return NatType{} }

func BoolT() BoolType { return BoolType{} }

func StrT() StrType { return StrType{} }

func Arrow(output Type, inputs ...Type) ArrowType {
	return ArrowType{Inputs: inputs, Output: output}
}

func PairT(first, second Type) PairType {
	return PairType{First: first, Second: second}
}

func Data(id string) DataType {
	return DataType{ID: id}
}

// Expression helpers.

func Not(operand Expression) *NotExpression {
	return NewNotExpression(operand)
}

func Plus(left, right Expression) *BinaryExpression {
	return NewBinaryExpression(OpPlus, left, right)
}

func Eq(left, right Expression) *BinaryExpression {
	return NewBinaryExpression(OpEq, left, right)
}

func And(left, right Expression) *BinaryExpression {
	return NewBinaryExpression(OpAnd, left, right)
}

func Or(left, right Expression) *BinaryExpression {
	return NewBinaryExpression(OpOr, left, right)
}

func If(condition, then, otherwise Expression) *IfExpression {
	return NewIfExpression(condition, then, otherwise)
}

func Lam(param string, paramType Type, body Expression) *LambdaExpression {
	return NewLambdaExpression(param, paramType, body)
}

func App(head Expression, args ...Expression) *Application {
	return NewApplication(head, args)
}

func Call(name string, args ...Expression) *Application {
	return App(Var(name), args...)
}

func Pair(first, second Expression) *PairExpression {
	return NewPairExpression(first, second)
}

func Fst(pair Expression) *ProjectExpression {
	return NewProjectExpression(ComponentFirst, pair)
}

func Snd(pair Expression) *ProjectExpression {
	return NewProjectExpression(ComponentSecond, pair)
}

func Construct(constructor string, args ...Expression) *ConstructExpression {
	return NewConstructExpression(constructor, args)
}

func Mc(pattern Pattern, body Expression) *MatchClause {
	return NewMatchClause(pattern, body)
}

func Match(subject Expression, clauses ...*MatchClause) *MatchExpression {
	return NewMatchExpression(subject, clauses)
}

// Pattern helpers.

func Wc() *WildcardPattern {
	return NewWildcardPattern()
}

func BindP(text string) *BindingPattern {
	return NewBindingPattern(text)
}

func StructP(head string, subpatterns ...Pattern) *StructuredPattern {
	return NewStructuredPattern(head, subpatterns)
}

func PairP(first, second Pattern) *StructuredPattern {
	return NewStructuredPattern(PairHead, []Pattern{first, second})
}

// Statement helpers.

func Define(name string, value Expression) *DefineStatement {
	return NewDefineStatement(name, value)
}

func Assign(target, value Expression) *AssignStatement {
	return NewAssignStatement(target, value)
}

func Print(value Expression) *PrintStatement {
	return NewPrintStatement(value)
}

func Ctor(name string, fields ...Type) *ConstructorDefinition {
	return NewConstructorDefinition(name, fields)
}

func DataDecl(name string, constructors ...*ConstructorDefinition) *DataDeclaration {
	return NewDataDeclaration(name, constructors)
}

func Prog(statements ...Statement) *Program {
	return NewProgram(statements)
}
