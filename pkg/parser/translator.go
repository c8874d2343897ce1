package parser

import (
	"math/big"

	"lumen/interpreter-go/pkg/ast"
)

// ProgramParser translates Lumen source into the AST. It remembers the
// constructors declared by earlier input so that a REPL can parse one
// statement at a time.
type ProgramParser struct {
	ctors map[string]int
}

// NewProgramParser returns a parser that knows no constructors yet.
func NewProgramParser() *ProgramParser {
	return &ProgramParser{ctors: make(map[string]int)}
}

// SetConstructors replaces the known constructors (id to field count).
func (p *ProgramParser) SetConstructors(arities map[string]int) {
	p.ctors = make(map[string]int, len(arities))
	for id, n := range arities {
		p.ctors[id] = n
	}
}

// ParseProgram parses a whole source file with a fresh parser.
func ParseProgram(source []byte) (*ast.Program, error) {
	return NewProgramParser().ParseProgram(source)
}

// ParseProgram parses every top-level form as a statement. Constructors
// declared by a data statement are known to the forms after it.
func (p *ProgramParser) ParseProgram(source []byte) (*ast.Program, error) {
	forms, err := read(source)
	if err != nil {
		return nil, err
	}
	body := make([]ast.Statement, 0, len(forms))
	for _, form := range forms {
		stmt, err := p.parseStatement(form)
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	return ast.NewProgram(body), nil
}

// ParseInteractive parses like ParseProgram, except that a form which is not
// a statement is read as an expression to print.
func (p *ProgramParser) ParseInteractive(source []byte) (*ast.Program, error) {
	forms, err := read(source)
	if err != nil {
		return nil, err
	}
	body := make([]ast.Statement, 0, len(forms))
	for _, form := range forms {
		if isStatementForm(form) {
			stmt, err := p.parseStatement(form)
			if err != nil {
				return nil, err
			}
			body = append(body, stmt)
			continue
		}
		expr, err := p.parseExpression(form)
		if err != nil {
			return nil, err
		}
		body = append(body, ast.WithSpan(ast.NewPrintStatement(expr), form.span))
	}
	return ast.NewProgram(body), nil
}

func isStatementForm(e *sexp) bool {
	if !e.isList || len(e.list) == 0 || e.list[0].isList {
		return false
	}
	switch e.list[0].atom {
	case "define", "assign", "print", "data":
		return true
	default:
		return false
	}
}

// ParseExpression parses a single expression.
func (p *ProgramParser) ParseExpression(source []byte) (ast.Expression, error) {
	forms, err := read(source)
	if err != nil {
		return nil, err
	}
	if len(forms) != 1 {
		return nil, &Error{Line: 1, Column: 1, Message: "expected exactly one expression"}
	}
	return p.parseExpression(forms[0])
}

func (p *ProgramParser) parseStatement(e *sexp) (ast.Statement, error) {
	if !e.isList {
		return nil, errorAt(e.span.Start, "an atom cannot be a statement: '%s'", e.atom)
	}
	head, args, err := splitForm(e)
	if err != nil {
		return nil, err
	}
	var stmt ast.Statement
	switch head {
	case "define":
		if err := expectArgs(e, head, args, 2); err != nil {
			return nil, err
		}
		if args[0].isList {
			return nil, errorAt(args[0].span.Start, "'define' expects an identifier but '%s' was given", args[0])
		}
		value, err := p.parseExpression(args[1])
		if err != nil {
			return nil, err
		}
		stmt = ast.NewDefineStatement(args[0].atom, value)
	case "assign":
		if err := expectArgs(e, head, args, 2); err != nil {
			return nil, err
		}
		target, err := p.parseExpression(args[0])
		if err != nil {
			return nil, err
		}
		value, err := p.parseExpression(args[1])
		if err != nil {
			return nil, err
		}
		stmt = ast.NewAssignStatement(target, value)
	case "print":
		if err := expectArgs(e, head, args, 1); err != nil {
			return nil, err
		}
		value, err := p.parseExpression(args[0])
		if err != nil {
			return nil, err
		}
		stmt = ast.NewPrintStatement(value)
	case "data":
		decl, err := p.parseDataDeclaration(e, args)
		if err != nil {
			return nil, err
		}
		stmt = decl
	default:
		return nil, errorAt(e.span.Start, "unknown statement form '%s'", e)
	}
	return ast.WithSpan(stmt, e.span), nil
}

// parseDataDeclaration reads (data Name (Ctor T ...) Ctor2 ...). A bare atom
// declares a nullary constructor.
func (p *ProgramParser) parseDataDeclaration(e *sexp, args []*sexp) (*ast.DataDeclaration, error) {
	if len(args) == 0 || args[0].isList {
		return nil, errorAt(e.span.Start, "'data' expects a type name")
	}
	name := args[0].atom
	ctors := make([]*ast.ConstructorDefinition, 0, len(args)-1)
	for _, form := range args[1:] {
		var (
			ctorName string
			fields   []ast.Type
		)
		if form.isList {
			ctorHead, ctorArgs, err := splitForm(form)
			if err != nil {
				return nil, err
			}
			ctorName = ctorHead
			for _, field := range ctorArgs {
				typ, err := parseType(field)
				if err != nil {
					return nil, err
				}
				fields = append(fields, typ)
			}
		} else {
			ctorName = form.atom
		}
		ctors = append(ctors, ast.WithSpan(ast.NewConstructorDefinition(ctorName, fields), form.span))
	}
	for _, ctor := range ctors {
		p.ctors[ctor.Name] = len(ctor.Fields)
	}
	return ast.NewDataDeclaration(name, ctors), nil
}

func (p *ProgramParser) parseExpression(e *sexp) (ast.Expression, error) {
	expr, err := p.parseExpressionInternal(e)
	if err != nil {
		return nil, err
	}
	return ast.WithSpan(expr, e.span), nil
}

func (p *ProgramParser) parseExpressionInternal(e *sexp) (ast.Expression, error) {
	if !e.isList {
		return p.parseAtom(e), nil
	}
	if len(e.list) == 0 {
		return nil, errorAt(e.span.Start, "empty expression list encountered")
	}
	first, args := e.list[0], e.list[1:]
	if first.isList {
		return p.parseApplication(first, args)
	}
	switch head := first.atom; head {
	case "lambda":
		if err := expectArgs(e, head, args, 3); err != nil {
			return nil, err
		}
		if args[0].isList {
			return nil, errorAt(args[0].span.Start, "'lambda' expects an identifier but '%s' was given", args[0])
		}
		paramType, err := parseType(args[1])
		if err != nil {
			return nil, err
		}
		body, err := p.parseExpression(args[2])
		if err != nil {
			return nil, err
		}
		return ast.NewLambdaExpression(args[0].atom, paramType, body), nil
	case "if":
		parts, err := p.parseOperands(e, head, args, 3)
		if err != nil {
			return nil, err
		}
		return ast.NewIfExpression(parts[0], parts[1], parts[2]), nil
	case "not":
		parts, err := p.parseOperands(e, head, args, 1)
		if err != nil {
			return nil, err
		}
		return ast.NewNotExpression(parts[0]), nil
	case string(ast.OpPlus), string(ast.OpEq), string(ast.OpAnd), string(ast.OpOr):
		parts, err := p.parseOperands(e, head, args, 2)
		if err != nil {
			return nil, err
		}
		return ast.NewBinaryExpression(ast.BinaryOperator(head), parts[0], parts[1]), nil
	case "pair":
		parts, err := p.parseOperands(e, head, args, 2)
		if err != nil {
			return nil, err
		}
		return ast.NewPairExpression(parts[0], parts[1]), nil
	case "fst", "snd":
		parts, err := p.parseOperands(e, head, args, 1)
		if err != nil {
			return nil, err
		}
		component := ast.ComponentFirst
		if head == "snd" {
			component = ast.ComponentSecond
		}
		return ast.NewProjectExpression(component, parts[0]), nil
	case "match":
		return p.parseMatch(e, args)
	}
	if _, ok := p.ctors[first.atom]; ok {
		fields, err := p.parseOperands(e, first.atom, args, -1)
		if err != nil {
			return nil, err
		}
		return ast.NewConstructExpression(first.atom, fields), nil
	}
	return p.parseApplication(first, args)
}

// parseAtom classifies a bare atom. Quoted strings stay variables; the
// checker and evaluator treat an unbound quoted name as a string literal.
func (p *ProgramParser) parseAtom(e *sexp) ast.Expression {
	switch e.atom {
	case "true":
		return ast.NewBooleanLiteral(true)
	case "false":
		return ast.NewBooleanLiteral(false)
	}
	if isNatural(e.atom) {
		n, _ := new(big.Int).SetString(e.atom, 10)
		return ast.NewNumberLiteral(n)
	}
	if arity, ok := p.ctors[e.atom]; ok && arity == 0 {
		return ast.NewConstructExpression(e.atom, nil)
	}
	return ast.NewVariable(e.atom)
}

func (p *ProgramParser) parseApplication(head *sexp, args []*sexp) (ast.Expression, error) {
	callee, err := p.parseExpression(head)
	if err != nil {
		return nil, err
	}
	parsed := make([]ast.Expression, 0, len(args))
	for _, arg := range args {
		expr, err := p.parseExpression(arg)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, expr)
	}
	return ast.NewApplication(callee, parsed), nil
}

// parseOperands parses args, requiring exactly want of them unless want < 0.
func (p *ProgramParser) parseOperands(e *sexp, head string, args []*sexp, want int) ([]ast.Expression, error) {
	if want >= 0 {
		if err := expectArgs(e, head, args, want); err != nil {
			return nil, err
		}
	}
	out := make([]ast.Expression, 0, len(args))
	for _, arg := range args {
		expr, err := p.parseExpression(arg)
		if err != nil {
			return nil, err
		}
		out = append(out, expr)
	}
	return out, nil
}

// parseMatch reads (match e (p1 e1 p2 e2 ...)).
func (p *ProgramParser) parseMatch(e *sexp, args []*sexp) (ast.Expression, error) {
	if err := expectArgs(e, "match", args, 2); err != nil {
		return nil, err
	}
	subject, err := p.parseExpression(args[0])
	if err != nil {
		return nil, err
	}
	arms := args[1]
	if !arms.isList {
		return nil, errorAt(arms.span.Start, "'match' expects a list of patterns and expressions but '%s' was given", arms)
	}
	if len(arms.list)%2 != 0 {
		return nil, errorAt(arms.span.Start, "'match' expects an even number of list elements but %d were given", len(arms.list))
	}
	clauses := make([]*ast.MatchClause, 0, len(arms.list)/2)
	for idx := 0; idx < len(arms.list); idx += 2 {
		pattern, err := parsePattern(arms.list[idx])
		if err != nil {
			return nil, err
		}
		body, err := p.parseExpression(arms.list[idx+1])
		if err != nil {
			return nil, err
		}
		clause := ast.NewMatchClause(pattern, body)
		clauses = append(clauses, ast.WithSpan(clause, arms.list[idx].span))
	}
	return ast.NewMatchExpression(subject, clauses), nil
}

func parsePattern(e *sexp) (ast.Pattern, error) {
	if !e.isList {
		if e.atom == "_" {
			return ast.WithSpan[ast.Pattern](ast.NewWildcardPattern(), e.span), nil
		}
		return ast.WithSpan[ast.Pattern](ast.NewBindingPattern(e.atom), e.span), nil
	}
	head, args, err := splitForm(e)
	if err != nil {
		return nil, err
	}
	subs := make([]ast.Pattern, 0, len(args))
	for _, arg := range args {
		sub, err := parsePattern(arg)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return ast.WithSpan[ast.Pattern](ast.NewStructuredPattern(head, subs), e.span), nil
}

func parseType(e *sexp) (ast.Type, error) {
	if !e.isList {
		switch e.atom {
		case "Nat":
			return ast.NatType{}, nil
		case "Bool":
			return ast.BoolType{}, nil
		case "Str":
			return ast.StrType{}, nil
		}
		if !isIdentifier(e.atom) {
			return nil, errorAt(e.span.Start, "unknown type '%s'", e.atom)
		}
		return ast.DataType{ID: e.atom}, nil
	}
	head, args, err := splitForm(e)
	if err != nil {
		return nil, err
	}
	parts := make([]ast.Type, 0, len(args))
	for _, arg := range args {
		typ, err := parseType(arg)
		if err != nil {
			return nil, err
		}
		parts = append(parts, typ)
	}
	switch head {
	case "->":
		if len(parts) < 1 {
			return nil, errorAt(e.span.Start, "'->' expects at least 1 argument but 0 were given")
		}
		return ast.ArrowType{Inputs: parts[:len(parts)-1], Output: parts[len(parts)-1]}, nil
	case "pair":
		if len(parts) != 2 {
			return nil, errorAt(e.span.Start, "'pair' expects 2 arguments but %d were given", len(parts))
		}
		return ast.PairType{First: parts[0], Second: parts[1]}, nil
	default:
		return nil, errorAt(e.span.Start, "unknown type '%s'", e)
	}
}

// splitForm returns the atom at the head of a list and the remaining items.
func splitForm(e *sexp) (string, []*sexp, error) {
	if len(e.list) == 0 {
		return "", nil, errorAt(e.span.Start, "empty form")
	}
	if e.list[0].isList {
		return "", nil, errorAt(e.span.Start, "identifier expected at head of '%s'", e)
	}
	return e.list[0].atom, e.list[1:], nil
}

func expectArgs(e *sexp, head string, args []*sexp, want int) error {
	if len(args) != want {
		return errorAt(e.span.Start, "'%s' expects %d arguments but %d were given", head, want, len(args))
	}
	return nil
}

func isNatural(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isIdentifier(text string) bool {
	if text == "" || text[0] == '"' || isNatural(text[:1]) {
		return false
	}
	for _, r := range text {
		if r == '(' || r == ')' {
			return false
		}
	}
	return true
}
