package ast

import (
	"strconv"
	"strings"
)

// Source renders an expression back to compact JavaScript-like text. It is
// used for diagnostics and informational formulas, never for execution.
func Source(e Expr) string {
	var sb strings.Builder
	printExpr(&sb, e)
	return sb.String()
}

// FormatNumber prints a number the way JavaScript would for common values.
func FormatNumber(n *NumberLit) string {
	if n.Raw != "" {
		return n.Raw
	}
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

func printExpr(sb *strings.Builder, e Expr) {
	switch x := e.(type) {
	case nil:
		sb.WriteString("undefined")
	case *Ident:
		sb.WriteString(x.Name)
	case *StringLit:
		sb.WriteString(strconv.Quote(x.Value))
	case *NumberLit:
		sb.WriteString(FormatNumber(x))
	case *BoolLit:
		sb.WriteString(strconv.FormatBool(x.Value))
	case *NullLit:
		sb.WriteString("null")
	case *TemplateLit:
		sb.WriteByte('`')
		for i, q := range x.Quasis {
			sb.WriteString(q)
			if i < len(x.Exprs) {
				sb.WriteString("${")
				printExpr(sb, x.Exprs[i])
				sb.WriteByte('}')
			}
		}
		sb.WriteByte('`')
	case *ArrayLit:
		sb.WriteByte('[')
		printList(sb, x.Elements)
		sb.WriteByte(']')
	case *ObjectLit:
		sb.WriteByte('{')
		for i, p := range x.Props {
			if i > 0 {
				sb.WriteString(", ")
			}
			switch {
			case p.Spread != nil:
				sb.WriteString("...")
				printExpr(sb, p.Spread)
			case p.Computed != nil:
				sb.WriteByte('[')
				printExpr(sb, p.Computed)
				sb.WriteString("]: ")
				printExpr(sb, p.Value)
			case p.Shorthand:
				sb.WriteString(p.Key)
			default:
				sb.WriteString(p.Key)
				sb.WriteString(": ")
				printExpr(sb, p.Value)
			}
		}
		sb.WriteByte('}')
	case *Member:
		printExpr(sb, x.Object)
		if x.Optional {
			sb.WriteString("?.")
			if x.Computed() {
				sb.WriteByte('[')
				printExpr(sb, x.Index)
				sb.WriteByte(']')
				return
			}
			sb.WriteString(x.Property)
			return
		}
		if x.Computed() {
			sb.WriteByte('[')
			printExpr(sb, x.Index)
			sb.WriteByte(']')
			return
		}
		sb.WriteByte('.')
		sb.WriteString(x.Property)
	case *Call:
		printExpr(sb, x.Callee)
		if x.Optional {
			sb.WriteString("?.")
		}
		sb.WriteByte('(')
		printList(sb, x.Args)
		sb.WriteByte(')')
	case *New:
		sb.WriteString("new ")
		printExpr(sb, x.Callee)
		sb.WriteByte('(')
		printList(sb, x.Args)
		sb.WriteByte(')')
	case *Unary:
		sb.WriteString(x.Op)
		if len(x.Op) > 1 {
			sb.WriteByte(' ')
		}
		printOperand(sb, x.X)
	case *Update:
		if x.Prefix {
			sb.WriteString(x.Op)
			printExpr(sb, x.X)
		} else {
			printExpr(sb, x.X)
			sb.WriteString(x.Op)
		}
	case *Binary:
		printOperand(sb, x.Left)
		sb.WriteString(" " + x.Op + " ")
		printOperand(sb, x.Right)
	case *Logical:
		printOperand(sb, x.Left)
		sb.WriteString(" " + x.Op + " ")
		printOperand(sb, x.Right)
	case *Conditional:
		printOperand(sb, x.Test)
		sb.WriteString(" ? ")
		printOperand(sb, x.Then)
		sb.WriteString(" : ")
		printOperand(sb, x.Else)
	case *Assign:
		printExpr(sb, x.Target)
		sb.WriteString(" " + x.Op + " ")
		printExpr(sb, x.Value)
	case *Func:
		if x.Async {
			sb.WriteString("async ")
		}
		sb.WriteByte('(')
		for i, p := range x.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strings.Join(Identifiers(p.Target), ", "))
		}
		sb.WriteString(") => ")
		if x.ExprBody != nil {
			printOperand(sb, x.ExprBody)
		} else {
			sb.WriteString("{...}")
		}
	case *Spread:
		sb.WriteString("...")
		printExpr(sb, x.X)
	case *Await:
		sb.WriteString("await ")
		printExpr(sb, x.X)
	case *JSXElement:
		sb.WriteString("<" + x.Name + " />")
	case *JSXFragment:
		sb.WriteString("<></>")
	case *JSXText:
		sb.WriteString(CleanJSXText(x.Value))
	case *JSXExprContainer:
		sb.WriteByte('{')
		if x.X != nil {
			printExpr(sb, x.X)
		}
		sb.WriteByte('}')
	case *Unsupported:
		sb.WriteString("/* " + x.Kind + " */")
	default:
		sb.WriteString("/* ? */")
	}
}

func printList(sb *strings.Builder, es []Expr) {
	for i, e := range es {
		if i > 0 {
			sb.WriteString(", ")
		}
		if e != nil {
			printExpr(sb, e)
		}
	}
}

// printOperand parenthesizes compound operands so the output re-reads with
// the same grouping.
func printOperand(sb *strings.Builder, e Expr) {
	switch e.(type) {
	case *Binary, *Logical, *Conditional, *Assign, *Func:
		sb.WriteByte('(')
		printExpr(sb, e)
		sb.WriteByte(')')
	default:
		printExpr(sb, e)
	}
}
