package ast

import "math/big"

type NodeType string

const (
	NodeVariable              NodeType = "Variable"
	NodeNumberLiteral         NodeType = "NumberLiteral"
	NodeBooleanLiteral        NodeType = "BooleanLiteral"
	NodeNotExpression         NodeType = "NotExpression"
	NodeBinaryExpression      NodeType = "BinaryExpression"
	NodeIfExpression          NodeType = "IfExpression"
	NodeLambdaExpression      NodeType = "LambdaExpression"
	NodeApplication           NodeType = "Application"
	NodePairExpression        NodeType = "PairExpression"
	NodeProjectExpression     NodeType = "ProjectExpression"
	NodeConstructExpression   NodeType = "ConstructExpression"
	NodeMatchClause           NodeType = "MatchClause"
	NodeMatchExpression       NodeType = "MatchExpression"
	NodeWildcardPattern       NodeType = "WildcardPattern"
	NodeBindingPattern        NodeType = "BindingPattern"
	NodeStructuredPattern     NodeType = "StructuredPattern"
	NodeDefineStatement       NodeType = "DefineStatement"
	NodeAssignStatement       NodeType = "AssignStatement"
	NodePrintStatement        NodeType = "PrintStatement"
	NodeConstructorDefinition NodeType = "ConstructorDefinition"
	NodeDataDeclaration       NodeType = "DataDeclaration"
	NodeProgram               NodeType = "Program"
)

type Node interface {
	NodeType() NodeType
	Span() Span
	isNode()
}

type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// IsZero reports whether the span was never populated by a front-end.
func (s Span) IsZero() bool {
	return s.Start.Line == 0 && s.End.Line == 0
}

type nodeImpl struct {
	Type NodeType `json:"type"`
	span Span
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Span() Span         { return n.span }
func (nodeImpl) isNode()              {}
func (n *nodeImpl) setSpan(span Span) { n.span = span }

type spanSetter interface {
	setSpan(Span)
}

// WithSpan records the source span of a freshly built node and returns it.
// Front-ends call this once while constructing the tree.
func WithSpan[N Node](node N, span Span) N {
	if setter, ok := any(node).(spanSetter); ok {
		setter.setSpan(span)
	}
	return node
}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Expressions

type Variable struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewVariable(name string) *Variable {
	return &Variable{nodeImpl: newNodeImpl(NodeVariable), Name: name}
}

// IsQuoted reports whether the variable is spelled as a string literal.
func (v *Variable) IsQuoted() bool {
	return IsQuotedText(v.Name)
}

// IsQuotedText reports whether text is wrapped in double quotes.
func IsQuotedText(text string) bool {
	return len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"'
}

type NumberLiteral struct {
	nodeImpl
	expressionMarker

	Value *big.Int `json:"value"`
}

func NewNumberLiteral(value *big.Int) *NumberLiteral {
	return &NumberLiteral{nodeImpl: newNodeImpl(NodeNumberLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type NotExpression struct {
	nodeImpl
	expressionMarker

	Operand Expression `json:"operand"`
}

func NewNotExpression(operand Expression) *NotExpression {
	return &NotExpression{nodeImpl: newNodeImpl(NodeNotExpression), Operand: operand}
}

type BinaryOperator string

const (
	OpPlus BinaryOperator = "+"
	OpEq   BinaryOperator = "="
	OpAnd  BinaryOperator = "and"
	OpOr   BinaryOperator = "or"
)

type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Operator BinaryOperator `json:"operator"`
	Left     Expression     `json:"left"`
	Right    Expression     `json:"right"`
}

func NewBinaryExpression(operator BinaryOperator, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

type IfExpression struct {
	nodeImpl
	expressionMarker

	Condition Expression `json:"condition"`
	Then      Expression `json:"then"`
	Else      Expression `json:"else"`
}

func NewIfExpression(condition, then, otherwise Expression) *IfExpression {
	return &IfExpression{nodeImpl: newNodeImpl(NodeIfExpression), Condition: condition, Then: then, Else: otherwise}
}

type LambdaExpression struct {
	nodeImpl
	expressionMarker

	Param     string     `json:"param"`
	ParamType Type       `json:"paramType"`
	Body      Expression `json:"body"`
}

func NewLambdaExpression(param string, paramType Type, body Expression) *LambdaExpression {
	return &LambdaExpression{nodeImpl: newNodeImpl(NodeLambdaExpression), Param: param, ParamType: paramType, Body: body}
}

type Application struct {
	nodeImpl
	expressionMarker

	Head Expression   `json:"head"`
	Args []Expression `json:"args"`
}

func NewApplication(head Expression, args []Expression) *Application {
	return &Application{nodeImpl: newNodeImpl(NodeApplication), Head: head, Args: args}
}

type PairExpression struct {
	nodeImpl
	expressionMarker

	First  Expression `json:"first"`
	Second Expression `json:"second"`
}

func NewPairExpression(first, second Expression) *PairExpression {
	return &PairExpression{nodeImpl: newNodeImpl(NodePairExpression), First: first, Second: second}
}

// PairComponent selects one side of a pair for fst/snd.
type PairComponent int

const (
	ComponentFirst PairComponent = iota
	ComponentSecond
)

func (c PairComponent) String() string {
	if c == ComponentSecond {
		return "snd"
	}
	return "fst"
}

type ProjectExpression struct {
	nodeImpl
	expressionMarker

	Component PairComponent `json:"component"`
	Pair      Expression    `json:"pair"`
}

func NewProjectExpression(component PairComponent, pair Expression) *ProjectExpression {
	return &ProjectExpression{nodeImpl: newNodeImpl(NodeProjectExpression), Component: component, Pair: pair}
}

type ConstructExpression struct {
	nodeImpl
	expressionMarker

	Constructor string       `json:"constructor"`
	Args        []Expression `json:"args"`
}

func NewConstructExpression(constructor string, args []Expression) *ConstructExpression {
	return &ConstructExpression{nodeImpl: newNodeImpl(NodeConstructExpression), Constructor: constructor, Args: args}
}

type MatchClause struct {
	nodeImpl

	Pattern Pattern    `json:"pattern"`
	Body    Expression `json:"body"`
}

func NewMatchClause(pattern Pattern, body Expression) *MatchClause {
	return &MatchClause{nodeImpl: newNodeImpl(NodeMatchClause), Pattern: pattern, Body: body}
}

type MatchExpression struct {
	nodeImpl
	expressionMarker

	Subject Expression     `json:"subject"`
	Clauses []*MatchClause `json:"clauses"`
}

func NewMatchExpression(subject Expression, clauses []*MatchClause) *MatchExpression {
	return &MatchExpression{nodeImpl: newNodeImpl(NodeMatchExpression), Subject: subject, Clauses: clauses}
}

// Statements

type DefineStatement struct {
	nodeImpl
	statementMarker

	Name  string     `json:"name"`
	Value Expression `json:"value"`
}

func NewDefineStatement(name string, value Expression) *DefineStatement {
	return &DefineStatement{nodeImpl: newNodeImpl(NodeDefineStatement), Name: name, Value: value}
}

// AssignStatement keeps an arbitrary expression on the left so that
// non-variable targets reach the checker and the evaluator intact.
type AssignStatement struct {
	nodeImpl
	statementMarker

	Target Expression `json:"target"`
	Value  Expression `json:"value"`
}

func NewAssignStatement(target, value Expression) *AssignStatement {
	return &AssignStatement{nodeImpl: newNodeImpl(NodeAssignStatement), Target: target, Value: value}
}

type PrintStatement struct {
	nodeImpl
	statementMarker

	Value Expression `json:"value"`
}

func NewPrintStatement(value Expression) *PrintStatement {
	return &PrintStatement{nodeImpl: newNodeImpl(NodePrintStatement), Value: value}
}

type ConstructorDefinition struct {
	nodeImpl

	Name   string `json:"name"`
	Fields []Type `json:"fields"`
}

func NewConstructorDefinition(name string, fields []Type) *ConstructorDefinition {
	return &ConstructorDefinition{nodeImpl: newNodeImpl(NodeConstructorDefinition), Name: name, Fields: fields}
}

type DataDeclaration struct {
	nodeImpl
	statementMarker

	Name         string                   `json:"name"`
	Constructors []*ConstructorDefinition `json:"constructors"`
}

func NewDataDeclaration(name string, constructors []*ConstructorDefinition) *DataDeclaration {
	return &DataDeclaration{nodeImpl: newNodeImpl(NodeDataDeclaration), Name: name, Constructors: constructors}
}

// Program is the ordered statement list handed over by a front-end.
type Program struct {
	nodeImpl

	Body []Statement `json:"body"`
}

func NewProgram(body []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Body: body}
}
