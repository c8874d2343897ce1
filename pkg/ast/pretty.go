package ast

import (
	"fmt"
	"strings"
)

// RenderType returns the surface spelling of a type.
func RenderType(t Type) string {
	switch typ := t.(type) {
	case nil:
		return "<nil>"
	case NatType:
		return "Nat"
	case BoolType:
		return "Bool"
	case StrType:
		return "Str"
	case ArrowType:
		parts := make([]string, 0, len(typ.Inputs)+2)
		parts = append(parts, "->")
		for _, in := range typ.Inputs {
			parts = append(parts, RenderType(in))
		}
		parts = append(parts, RenderType(typ.Output))
		return "(" + strings.Join(parts, " ") + ")"
	case PairType:
		return fmt.Sprintf("(pair %s %s)", RenderType(typ.First), RenderType(typ.Second))
	case DataType:
		return typ.ID
	case ConstructType:
		return typ.Owner.ID + "." + typ.ID
	default:
		return fmt.Sprintf("<%T>", t)
	}
}

// RenderPattern returns the surface spelling of a pattern.
func RenderPattern(p Pattern) string {
	switch pat := p.(type) {
	case nil:
		return "<nil>"
	case *WildcardPattern:
		return "_"
	case *BindingPattern:
		return pat.Text
	case *StructuredPattern:
		parts := []string{pat.Head}
		for _, sub := range pat.Subpatterns {
			parts = append(parts, RenderPattern(sub))
		}
		return "(" + strings.Join(parts, " ") + ")"
	default:
		return fmt.Sprintf("<%T>", p)
	}
}

// RenderExpression returns the surface spelling of an expression.
func RenderExpression(e Expression) string {
	switch expr := e.(type) {
	case nil:
		return "<nil>"
	case *Variable:
		return expr.Name
	case *NumberLiteral:
		if expr.Value == nil {
			return "0"
		}
		return expr.Value.String()
	case *BooleanLiteral:
		if expr.Value {
			return "true"
		}
		return "false"
	case *NotExpression:
		return "(not " + RenderExpression(expr.Operand) + ")"
	case *BinaryExpression:
		return fmt.Sprintf("(%s %s %s)", expr.Operator, RenderExpression(expr.Left), RenderExpression(expr.Right))
	case *IfExpression:
		return fmt.Sprintf("(if %s %s %s)", RenderExpression(expr.Condition), RenderExpression(expr.Then), RenderExpression(expr.Else))
	case *LambdaExpression:
		return fmt.Sprintf("(lambda %s %s %s)", expr.Param, RenderType(expr.ParamType), RenderExpression(expr.Body))
	case *Application:
		return renderList(RenderExpression(expr.Head), expr.Args)
	case *PairExpression:
		return fmt.Sprintf("(pair %s %s)", RenderExpression(expr.First), RenderExpression(expr.Second))
	case *ProjectExpression:
		return fmt.Sprintf("(%s %s)", expr.Component, RenderExpression(expr.Pair))
	case *ConstructExpression:
		return renderList(expr.Constructor, expr.Args)
	case *MatchExpression:
		var b strings.Builder
		b.WriteString("(match ")
		b.WriteString(RenderExpression(expr.Subject))
		b.WriteString(" (")
		for idx, clause := range expr.Clauses {
			if idx > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(RenderPattern(clause.Pattern))
			b.WriteByte(' ')
			b.WriteString(RenderExpression(clause.Body))
		}
		b.WriteString("))")
		return b.String()
	default:
		return fmt.Sprintf("<%T>", e)
	}
}

// RenderStatement returns the surface spelling of a statement.
func RenderStatement(s Statement) string {
	switch stmt := s.(type) {
	case *DefineStatement:
		return fmt.Sprintf("(define %s %s)", stmt.Name, RenderExpression(stmt.Value))
	case *AssignStatement:
		return fmt.Sprintf("(assign %s %s)", RenderExpression(stmt.Target), RenderExpression(stmt.Value))
	case *PrintStatement:
		return "(print " + RenderExpression(stmt.Value) + ")"
	case *DataDeclaration:
		parts := []string{"data", stmt.Name}
		for _, ctor := range stmt.Constructors {
			fields := []string{ctor.Name}
			for _, f := range ctor.Fields {
				fields = append(fields, RenderType(f))
			}
			parts = append(parts, "("+strings.Join(fields, " ")+")")
		}
		return "(" + strings.Join(parts, " ") + ")"
	default:
		return fmt.Sprintf("<%T>", s)
	}
}

func renderList(head string, args []Expression) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, head)
	for _, arg := range args {
		parts = append(parts, RenderExpression(arg))
	}
	return "(" + strings.Join(parts, " ") + ")"
}
