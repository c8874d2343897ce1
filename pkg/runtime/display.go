package runtime

import (
	"fmt"
	"strconv"
	"strings"

	"lumen/interpreter-go/pkg/ast"
)

// Display renders a value the way print shows it. The output is
// deterministic: constructed values print as (Ctor field ...), strings are
// quoted and functions print their source form or host name.
func Display(v Value) string {
	var sb strings.Builder
	writeValue(&sb, v)
	return sb.String()
}

func writeValue(sb *strings.Builder, v Value) {
	switch val := v.(type) {
	case nil:
		sb.WriteString("<nil>")
	case NumberValue:
		if val.Val == nil {
			sb.WriteString("0")
			return
		}
		sb.WriteString(val.Val.String())
	case BoolValue:
		sb.WriteString(strconv.FormatBool(val.Val))
	case StringValue:
		sb.WriteString(strconv.Quote(val.Val))
	case *ClosureValue:
		if val.Lambda == nil {
			sb.WriteString("<closure>")
			return
		}
		sb.WriteString(ast.RenderExpression(val.Lambda))
	case PrimitiveValue:
		fmt.Fprintf(sb, "<primitive %s>", val.Name)
	case PairValue:
		sb.WriteString("(pair ")
		writeValue(sb, val.First)
		sb.WriteByte(' ')
		writeValue(sb, val.Second)
		sb.WriteByte(')')
	case *ConstructedValue:
		sb.WriteByte('(')
		sb.WriteString(val.Constructor)
		for _, field := range val.Fields {
			sb.WriteByte(' ')
			writeValue(sb, field)
		}
		sb.WriteByte(')')
	default:
		fmt.Fprintf(sb, "<%s>", v.Kind())
	}
}
