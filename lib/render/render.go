// Package render turns a component's JSX tree into C# virtual-node
// construction code.
//
// Elements are built directly with VElement unless they carry a spread
// attribute, a conditional attribute value, a mapped child or a structural
// conditional child. Those go through MinimactHelpers.createElement, which
// merges props and selects branches at runtime.
package render

import (
	"strings"

	"github.com/minimact/swig-sub001/lib/ast"
	"github.com/minimact/swig-sub001/lib/codegen"
	"github.com/minimact/swig-sub001/lib/diag"
	"github.com/minimact/swig-sub001/lib/zone"
)

// Generator renders JSX for one component.
type Generator struct {
	ctx      *codegen.Context
	handlers map[*ast.JSXAttr]string
	plugins  map[*ast.JSXElement]*PluginUsage
	err      error
}

// New returns a generator. It installs itself as ctx's JSX renderer so
// JSX nested in expressions, such as map callbacks, is rendered here.
// handlers maps inline event attributes to the method names the class
// declares for them.
func New(ctx *codegen.Context, handlers map[*ast.JSXAttr]string, plugins []*PluginUsage) *Generator {
	g := &Generator{
		ctx:      ctx,
		handlers: handlers,
		plugins:  make(map[*ast.JSXElement]*PluginUsage, len(plugins)),
	}
	for _, p := range plugins {
		g.plugins[p.Element] = p
	}
	ctx.JSX = g.node
	return g
}

// Node renders a render-tree expression. The error is non-nil when a
// structural validation failed somewhere in the tree.
func (g *Generator) Node(e ast.Expr) (string, error) {
	g.err = nil
	out := g.node(e)
	return out, g.err
}

func (g *Generator) fail(err *diag.Error) {
	if g.err == nil {
		g.err = err
	}
}

func (g *Generator) node(e ast.Expr) string {
	switch x := e.(type) {
	case nil, *ast.NullLit:
		return "null"
	case *ast.JSXElement:
		return g.element(x)
	case *ast.JSXFragment:
		return "new Fragment(" + strings.Join(g.children(x.Children), ", ") + ")"
	case *ast.JSXText:
		return "new VText(" + codegen.Quote(ast.CleanJSXText(x.Value)) + ")"
	case *ast.JSXExprContainer:
		return g.node(x.X)
	case *ast.Conditional, *ast.Logical:
		if ast.IsStructural(x) {
			return g.conditional(x)
		}
	}
	if ast.IsNullish(e) {
		return "null"
	}
	return codegen.Expr(g.ctx, e)
}

func (g *Generator) element(el *ast.JSXElement) string {
	if el.Name == PluginTag {
		return g.plugin(el)
	}
	if out, ok := g.markdown(el); ok {
		return out
	}
	if NeedsDynamic(el) {
		return g.dynamic(el)
	}
	return g.direct(el)
}

// NeedsDynamic reports whether el must be built with createElement.
func NeedsDynamic(el *ast.JSXElement) bool {
	for _, a := range el.Attrs {
		if a.Spread != nil {
			return true
		}
		switch a.Expr().(type) {
		case *ast.Conditional, *ast.Logical:
			return true
		}
	}
	for _, c := range el.Children {
		x := ast.ChildExpr(c)
		if _, isContainer := c.(*ast.JSXExprContainer); isContainer && (ast.IsMapCall(x) || ast.IsStructural(x)) {
			return true
		}
	}
	return false
}

func (g *Generator) direct(el *ast.JSXElement) string {
	var entries []string
	key := ""
	for _, a := range el.Attrs {
		if a.Name == "key" {
			key = g.stringValue(a.Expr())
			continue
		}
		name, value, ok := g.attribute(a, true)
		if ok {
			entries = append(entries, "["+codegen.Quote(name)+"] = "+value)
		}
	}

	attrs := "new Dictionary<string, string>()"
	if len(entries) > 0 {
		attrs = "new Dictionary<string, string> { " + strings.Join(entries, ", ") + " }"
	}
	out := "new VElement(" + codegen.Quote(el.Name) + ", " + attrs
	if children := g.children(el.Children); len(children) > 0 {
		out += ", new VNode[] { " + strings.Join(children, ", ") + " }"
	}
	out += ")"
	if key != "" {
		out += " { Key = " + key + " }"
	}
	return out
}

func (g *Generator) dynamic(el *ast.JSXElement) string {
	var parts []string
	var run []string
	flush := func() {
		if len(run) > 0 {
			parts = append(parts, "new Dictionary<string, object> { "+strings.Join(run, ", ")+" }")
			run = nil
		}
	}
	for _, a := range el.Attrs {
		if a.Spread != nil {
			flush()
			parts = append(parts, codegen.Expr(g.ctx, a.Spread))
			continue
		}
		name, value, ok := g.attribute(a, false)
		if ok {
			run = append(run, "["+codegen.Quote(name)+"] = "+value)
		}
	}
	flush()

	props := "null"
	switch len(parts) {
	case 0:
	case 1:
		props = parts[0]
	default:
		props = "MinimactHelpers.Merge(" + strings.Join(parts, ", ") + ")"
	}

	args := []string{codegen.Quote(el.Name), props}
	args = append(args, g.children(el.Children)...)
	return "MinimactHelpers.createElement(" + strings.Join(args, ", ") + ")"
}

// attribute returns the rendered name and value of a non-spread attribute.
// asString selects string values for the direct path's string map.
func (g *Generator) attribute(a *ast.JSXAttr, asString bool) (string, string, bool) {
	name := ast.DOMAttr(a.Name)
	if ast.IsEventAttr(name) {
		handler := g.handler(a)
		if handler == "" {
			g.ctx.Diags.Note(diag.UnsupportedExpression, a, "event attribute %s has no handler", a.Name)
			return "", "", false
		}
		return strings.ToLower(name), codegen.Quote(handler), true
	}

	value := a.Expr()
	if value == nil {
		return name, `"true"`, true
	}
	if asString {
		return name, g.stringValue(value), true
	}
	return name, codegen.Expr(g.ctx, value), true
}

func (g *Generator) handler(a *ast.JSXAttr) string {
	if name, ok := g.handlers[a]; ok {
		return name
	}
	switch x := a.Expr().(type) {
	case *ast.Ident:
		return x.Name
	case *ast.Member:
		if info, ok := ast.PathOf(x); ok {
			return info.Path
		}
	}
	return ""
}

// stringValue renders an attribute value as a C# string expression.
func (g *Generator) stringValue(e ast.Expr) string {
	switch x := e.(type) {
	case *ast.StringLit:
		return codegen.Quote(x.Value)
	case *ast.NumberLit:
		return codegen.Quote(ast.FormatNumber(x))
	case *ast.BoolLit:
		if x.Value {
			return `"true"`
		}
		return `"false"`
	case *ast.TemplateLit:
		return codegen.Expr(g.ctx, x)
	}
	return "Convert.ToString(" + codegen.Expr(g.ctx, e) + ")"
}

// children renders the meaningful children. Adjacent text and
// text-valued expressions merge into a single VText.
func (g *Generator) children(children []ast.Expr) []string {
	var out []string
	for _, seg := range ast.Segments(children) {
		if seg.Text {
			out = append(out, g.text(seg.Nodes))
			continue
		}
		c := seg.Nodes[0]
		if x := ast.ChildExpr(c); ast.IsStructural(x) {
			out = append(out, g.conditional(x))
			continue
		}
		out = append(out, g.node(c))
	}
	return out
}

func (g *Generator) text(nodes []ast.Expr) string {
	quasis := []string{""}
	var holes []ast.Expr
	for _, n := range nodes {
		switch x := n.(type) {
		case *ast.JSXText:
			quasis[len(quasis)-1] += ast.CleanJSXText(x.Value)
		case *ast.JSXExprContainer:
			if s, ok := x.X.(*ast.StringLit); ok {
				quasis[len(quasis)-1] += s.Value
				continue
			}
			holes = append(holes, x.X)
			quasis = append(quasis, "")
		}
	}
	return "new VText(" + codegen.Interpolated(g.ctx, quasis, holes) + ")"
}

func (g *Generator) conditional(e ast.Expr) string {
	switch x := e.(type) {
	case *ast.Conditional:
		return codegen.Condition(g.ctx, x.Test) + " ? (VNode)" + g.branch(x.Then) + " : " + g.branch(x.Else)
	case *ast.Logical:
		return codegen.Condition(g.ctx, x.Left) + " ? (VNode)" + g.branch(x.Right) + " : null"
	}
	return g.node(e)
}

func (g *Generator) branch(e ast.Expr) string {
	switch x := e.(type) {
	case *ast.StringLit:
		return "new VText(" + codegen.Quote(x.Value) + ")"
	case *ast.Conditional, *ast.Logical:
		if ast.IsStructural(x) {
			return "(" + g.conditional(x) + ")"
		}
	}
	return g.node(e)
}

// markdown rewrites <div markdown>{content}</div> where content is a
// markdown-zone variable into a raw HTML node.
func (g *Generator) markdown(el *ast.JSXElement) (string, bool) {
	if el.Attr("markdown") == nil {
		return "", false
	}
	children := ast.MeaningfulChildren(el.Children)
	if len(children) != 1 {
		return "", false
	}
	id, ok := ast.ChildExpr(children[0]).(*ast.Ident)
	if !ok || g.ctx.Zones[id.Name] != zone.Markdown {
		return "", false
	}
	return "new DivRawHtml(MarkdownHelper.ToHtml(" + id.Name + "))", true
}

func (g *Generator) plugin(el *ast.JSXElement) string {
	u, ok := g.plugins[el]
	if !ok {
		g.fail(diag.Structural(g.ctx.Component, el, "<Plugin> requires a literal name and a state attribute"))
		return "null"
	}
	args := []string{codegen.Quote(u.Name), codegen.Expr(g.ctx, u.State)}
	if u.Version != "" {
		args = append(args, codegen.Quote(u.Version))
	}
	return "new PluginNode(" + strings.Join(args, ", ") + ")"
}
