package codegen

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/minimact/swig-sub001/lib/ast"
)

// Expr translates e into a C# expression. Shapes outside the supported set
// produce "null" and an UnsupportedExpression diagnostic.
func Expr(ctx *Context, e ast.Expr) string {
	return (&gen{ctx: ctx}).expr(e)
}

// Condition translates e for use where C# requires a bool.
func Condition(ctx *Context, e ast.Expr) string {
	g := &gen{ctx: ctx}
	if isBoolish(e) {
		return g.expr(e)
	}
	return "MinimactHelpers.ToBool(" + g.expr(e) + ")"
}

// Quote returns s as a C# string literal.
func Quote(s string) string {
	return quote(s)
}

// Interpolated builds a C# string from literal text and expressions, the
// way a template literal is translated. len(quasis) must be len(holes)+1.
func Interpolated(ctx *Context, quasis []string, holes []ast.Expr) string {
	return (&gen{ctx: ctx}).template(&ast.TemplateLit{Quasis: quasis, Exprs: holes})
}

type gen struct {
	ctx *Context
}

var binaryOps = map[string]string{
	"===": "==",
	"!==": "!=",
	"==":  "==",
	"!=":  "!=",
	"<":   "<",
	"<=":  "<=",
	">":   ">",
	">=":  ">=",
	"+":   "+",
	"-":   "-",
	"*":   "*",
	"/":   "/",
	"%":   "%",
	"&":   "&",
	"|":   "|",
	"^":   "^",
	"<<":  "<<",
	">>":  ">>",
	">>>": ">>",
}

var binaryPrecedence = map[string]int{
	"|": 5, "^": 6, "&": 7,
	"==": 8, "!=": 8, "===": 8, "!==": 8,
	"<": 9, "<=": 9, ">": 9, ">=": 9, "in": 9, "instanceof": 9,
	"<<": 10, ">>": 10, ">>>": 10,
	"+": 11, "-": 11,
	"*": 12, "/": 12, "%": 12,
	"**": 13,
}

// eventProps renames DOM event members to their server-side names.
var eventProps = map[string]string{
	"target":          "Target",
	"currentTarget":   "CurrentTarget",
	"value":           "Value",
	"checked":         "Checked",
	"key":             "Key",
	"keyCode":         "KeyCode",
	"type":            "Type",
	"name":            "Name",
	"files":           "Files",
	"clientX":         "ClientX",
	"clientY":         "ClientY",
	"shiftKey":        "ShiftKey",
	"ctrlKey":         "CtrlKey",
	"altKey":          "AltKey",
	"preventDefault":  "PreventDefault",
	"stopPropagation": "StopPropagation",
}

func precedence(e ast.Expr) int {
	switch x := e.(type) {
	case *ast.Assign, *ast.Func:
		return 0
	case *ast.Conditional:
		return 1
	case *ast.Logical:
		switch x.Op {
		case "??":
			return 2
		case "||":
			return 3
		default:
			return 4
		}
	case *ast.Binary:
		if p, ok := binaryPrecedence[x.Op]; ok {
			return p
		}
		return 9
	case *ast.Unary, *ast.Await:
		return 15
	case *ast.Update:
		return 16
	}
	return 20
}

// sub translates a child expression, parenthesizing it when it binds
// looser than its parent.
func (g *gen) sub(e ast.Expr, parent int, right bool) string {
	s := g.expr(e)
	p := precedence(e)
	if p < parent || (right && p == parent) {
		return "(" + s + ")"
	}
	return s
}

// operand translates the receiver of a member access or call.
func (g *gen) operand(e ast.Expr) string {
	return g.sub(e, 17, false)
}

func (g *gen) expr(e ast.Expr) string {
	if u := unsupportedRoot(e); u != nil {
		g.ctx.unsupported(u, u.Kind)
		return "null"
	}
	switch x := e.(type) {
	case nil:
		return "null"
	case *ast.Ident:
		return g.ident(x)
	case *ast.StringLit:
		return quote(x.Value)
	case *ast.NumberLit:
		return ast.FormatNumber(x)
	case *ast.BoolLit:
		if x.Value {
			return "true"
		}
		return "false"
	case *ast.NullLit:
		return "null"
	case *ast.TemplateLit:
		return g.template(x)
	case *ast.ArrayLit:
		return g.array(x)
	case *ast.ObjectLit:
		return g.object(x)
	case *ast.Member:
		return g.member(x)
	case *ast.Call:
		return g.call(x)
	case *ast.New:
		return g.newExpr(x)
	case *ast.Unary:
		return g.unary(x)
	case *ast.Update:
		if x.Prefix {
			return x.Op + g.sub(x.X, 16, false)
		}
		return g.sub(x.X, 16, false) + x.Op
	case *ast.Binary:
		return g.binary(x)
	case *ast.Logical:
		p := precedence(x)
		return g.sub(x.Left, p, false) + " " + x.Op + " " + g.sub(x.Right, p, true)
	case *ast.Conditional:
		return g.sub(x.Test, 2, false) + " ? " + g.sub(x.Then, 1, false) + " : " + g.sub(x.Else, 1, false)
	case *ast.Assign:
		return g.assign(x)
	case *ast.Func:
		return g.lambda(x)
	case *ast.Spread:
		g.ctx.unsupported(x, "spread outside a literal")
		return g.expr(x.X)
	case *ast.Await:
		return "await " + g.sub(x.X, 15, false)
	case *ast.JSXElement, *ast.JSXFragment:
		if g.ctx.JSX != nil {
			return g.ctx.JSX(x)
		}
	case *ast.JSXExprContainer:
		return g.expr(x.X)
	case *ast.JSXText:
		return quote(ast.CleanJSXText(x.Value))
	}
	g.ctx.unsupported(e, fmt.Sprintf("expression %T", e))
	return "null"
}

func (g *gen) ident(id *ast.Ident) string {
	if r, ok := g.ctx.alias(id.Name); ok {
		return r
	}
	switch id.Name {
	case "undefined":
		return "null"
	case "NaN":
		return "double.NaN"
	case "Infinity":
		return "double.PositiveInfinity"
	}
	return id.Name
}

func (g *gen) member(m *ast.Member) string {
	obj := g.operand(m.Object)
	dot := "."
	if m.Optional {
		dot = "?."
	}
	if m.Computed() {
		if m.Optional {
			return obj + "?[" + g.expr(m.Index) + "]"
		}
		return obj + "[" + g.expr(m.Index) + "]"
	}

	prop := m.Property
	if prop == "length" {
		if g.isString(m.Object) {
			return obj + dot + "Length"
		}
		return obj + dot + "Count"
	}
	if root := ast.RootIdent(m.Object); root != "" && g.ctx.IsEventParam(root) {
		if r, ok := eventProps[prop]; ok {
			prop = r
		}
	}
	return obj + dot + prop
}

// isString reports whether e is statically known to be a string.
func (g *gen) isString(e ast.Expr) bool {
	switch x := e.(type) {
	case *ast.StringLit, *ast.TemplateLit:
		return true
	case *ast.Ident:
		return g.ctx.Strings[x.Name]
	case *ast.Member:
		if !x.Computed() && x.Property == "value" && g.ctx.IsEventParam(ast.RootIdent(x.Object)) {
			return true
		}
		if info, ok := ast.PathOf(x); ok {
			return g.ctx.Strings[info.Path]
		}
	case *ast.Call:
		if _, method, _, ok := ast.MethodCall(x); ok {
			switch method {
			case "toUpperCase", "toLowerCase", "trim", "trimStart", "trimEnd",
				"toFixed", "toString", "padStart", "padEnd", "substring", "join":
				return true
			}
		}
	}
	return false
}

func (g *gen) unary(u *ast.Unary) string {
	switch u.Op {
	case "!", "-", "+", "~":
		inner := g.sub(u.X, 15, false)
		if (u.Op == "-" || u.Op == "+") && (strings.HasPrefix(inner, "-") || strings.HasPrefix(inner, "+")) {
			inner = "(" + inner + ")"
		}
		return u.Op + inner
	case "void":
		return "null"
	case "typeof":
		return g.operand(u.X) + ".GetType().Name"
	}
	g.ctx.unsupported(u, "operator "+u.Op)
	return "null"
}

func (g *gen) binary(b *ast.Binary) string {
	if b.Op == "**" {
		return "Math.Pow(" + g.expr(b.Left) + ", " + g.expr(b.Right) + ")"
	}
	op, ok := binaryOps[b.Op]
	if !ok {
		g.ctx.unsupported(b, "operator "+b.Op)
		return "null"
	}
	p := precedence(b)
	return g.sub(b.Left, p, false) + " " + op + " " + g.sub(b.Right, p, true)
}

func (g *gen) assign(a *ast.Assign) string {
	target := g.expr(a.Target)
	switch a.Op {
	case "**=":
		return target + " = Math.Pow(" + target + ", " + g.expr(a.Value) + ")"
	case "&&=", "||=":
		return target + " = " + target + " " + a.Op[:2] + " " + g.sub(a.Value, 4, true)
	case ">>>=":
		return target + " >>= " + g.expr(a.Value)
	}
	return target + " " + a.Op + " " + g.expr(a.Value)
}

// template turns a template literal into an interpolated string. Without
// holes it is a plain string, so braces are not doubled.
func (g *gen) template(t *ast.TemplateLit) string {
	if len(t.Exprs) == 0 {
		return quote(strings.Join(t.Quasis, ""))
	}
	var sb strings.Builder
	sb.WriteString(`$"`)
	for i, q := range t.Quasis {
		sb.WriteString(escapeInterpolated(q))
		if i < len(t.Exprs) {
			sb.WriteByte('{')
			hole := g.expr(t.Exprs[i])
			if _, ok := t.Exprs[i].(*ast.Conditional); ok {
				hole = "(" + hole + ")"
			}
			sb.WriteString(hole)
			sb.WriteByte('}')
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func (g *gen) array(a *ast.ArrayLit) string {
	hasSpread := false
	for _, el := range a.Elements {
		if _, ok := el.(*ast.Spread); ok {
			hasSpread = true
		}
	}
	if !hasSpread {
		if len(a.Elements) == 0 {
			return "new List<dynamic>()"
		}
		return "new List<dynamic> { " + g.list(a.Elements) + " }"
	}

	var segments []string
	var run []ast.Expr
	flush := func() {
		if len(run) > 0 {
			segments = append(segments, "new List<dynamic> { "+g.list(run)+" }")
			run = nil
		}
	}
	for _, el := range a.Elements {
		if s, ok := el.(*ast.Spread); ok {
			flush()
			segments = append(segments, g.operand(s.X))
			continue
		}
		run = append(run, el)
	}
	flush()
	if len(segments) == 1 {
		return "new List<dynamic>(" + segments[0] + ")"
	}
	out := segments[0]
	for _, s := range segments[1:] {
		out += ".Concat(" + s + ")"
	}
	return out + ".ToList()"
}

func (g *gen) list(es []ast.Expr) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = g.expr(e)
	}
	return strings.Join(parts, ", ")
}

func (g *gen) object(o *ast.ObjectLit) string {
	hasSpread := false
	for _, p := range o.Props {
		if p.Spread != nil {
			hasSpread = true
		}
	}
	if hasSpread {
		var parts []string
		var run []*ast.Property
		flush := func() {
			if len(run) > 0 {
				parts = append(parts, g.object(&ast.ObjectLit{Props: run}))
				run = nil
			}
		}
		for _, p := range o.Props {
			if p.Spread != nil {
				flush()
				parts = append(parts, g.expr(p.Spread))
				continue
			}
			run = append(run, p)
		}
		flush()
		return "MinimactHelpers.Merge(" + strings.Join(parts, ", ") + ")"
	}

	bare := true
	for _, p := range o.Props {
		if p.Computed != nil || !isIdentifier(p.Key) {
			bare = false
		}
	}
	if len(o.Props) == 0 {
		return "new { }"
	}
	parts := make([]string, len(o.Props))
	for i, p := range o.Props {
		value := g.expr(p.Value)
		switch {
		case bare:
			parts[i] = p.Key + " = " + value
		case p.Computed != nil:
			parts[i] = "[" + g.expr(p.Computed) + "] = " + value
		default:
			parts[i] = "[" + quote(p.Key) + "] = " + value
		}
	}
	if bare {
		return "new { " + strings.Join(parts, ", ") + " }"
	}
	return "new Dictionary<string, dynamic> { " + strings.Join(parts, ", ") + " }"
}

func (g *gen) lambda(f *ast.Func) string {
	var names []string
	var prologue []string
	for i, p := range f.Params {
		switch t := p.Target.(type) {
		case *ast.Ident:
			names = append(names, t.Name)
		default:
			name := "__arg" + fmt.Sprint(i)
			names = append(names, name)
			w := NewWriter(0)
			g.bind(w, p.Target, name)
			prologue = append(prologue, w.Lines()...)
		}
	}

	head := "(" + strings.Join(names, ", ") + ") => "
	if len(names) == 1 && len(prologue) == 0 {
		head = names[0] + " => "
	}
	if f.Async {
		head = "async " + head
	}

	if f.ExprBody != nil && len(prologue) == 0 {
		return head + g.expr(f.ExprBody)
	}

	w := NewWriter(0)
	for _, line := range prologue {
		w.Line("%s", line)
	}
	for _, s := range ast.FuncBody(f) {
		g.stmt(w, s)
	}
	lines := w.Lines()
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	if len(lines) == 0 {
		return head + "{ }"
	}
	return head + "{ " + strings.Join(lines, " ") + " }"
}

// lambdaType returns the delegate type a lambda can be assigned to.
func lambdaType(f *ast.Func) string {
	n := len(f.Params)
	returns := f.ExprBody != nil || ast.ReturnedExpr(f) != nil
	args := strings.TrimSuffix(strings.Repeat("dynamic, ", n), ", ")
	switch {
	case returns && n == 0:
		return "Func<dynamic>"
	case returns:
		return "Func<" + args + ", dynamic>"
	case n == 0:
		return "Action"
	default:
		return "Action<" + args + ">"
	}
}

// isBoolish reports whether e always yields a C# bool.
func isBoolish(e ast.Expr) bool {
	switch x := e.(type) {
	case *ast.BoolLit:
		return true
	case *ast.Unary:
		return x.Op == "!"
	case *ast.Binary:
		switch x.Op {
		case "===", "!==", "==", "!=", "<", "<=", ">", ">=":
			return true
		}
	case *ast.Logical:
		return x.Op != "??" && isBoolish(x.Left) && isBoolish(x.Right)
	}
	return false
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

// quote returns s as a C# regular string literal.
func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	writeEscaped(&sb, s, false)
	sb.WriteByte('"')
	return sb.String()
}

// escapeInterpolated escapes literal text inside $"..." where braces are
// significant.
func escapeInterpolated(s string) string {
	var sb strings.Builder
	writeEscaped(&sb, s, true)
	return sb.String()
}

func writeEscaped(sb *strings.Builder, s string, interpolated bool) {
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case 0:
			sb.WriteString(`\0`)
		case '{', '}':
			if interpolated {
				sb.WriteRune(r)
			}
			sb.WriteRune(r)
		default:
			if r < 0x20 {
				fmt.Fprintf(sb, `\u%04x`, r)
				continue
			}
			sb.WriteRune(r)
		}
	}
}

// unsupportedRoot returns the unsupported node a member or call chain starts
// from, so the whole chain degrades to one neutral value.
func unsupportedRoot(e ast.Expr) *ast.Unsupported {
	for {
		switch x := e.(type) {
		case *ast.Unsupported:
			return x
		case *ast.Member:
			e = x.Object
		case *ast.Call:
			e = x.Callee
		case *ast.New:
			e = x.Callee
		default:
			return nil
		}
	}
}
