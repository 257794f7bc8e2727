package templates

import (
	"github.com/minimact/swig-sub001/lib/ast"
	"github.com/minimact/swig-sub001/lib/diag"
)

// shaper builds simplified shapes for loop bodies and structural branches.
type shaper struct {
	*binder
	diags *diag.List
}

func (s shaper) shape(e ast.Expr, path []int) *Shape {
	switch x := e.(type) {
	case nil, *ast.NullLit:
		return &Shape{Type: ShapeNull}
	case *ast.JSXExprContainer:
		return s.shape(x.X, path)
	case *ast.JSXElement:
		out := &Shape{Type: ShapeElement, Tag: x.Name}
		s.props(out, x, path)
		out.Children = s.children(x.Children, path)
		return out
	case *ast.JSXFragment:
		return &Shape{Type: ShapeFragment, Children: s.children(x.Children, path)}
	case *ast.Conditional, *ast.Logical:
		if ast.IsStructural(x) {
			return s.branches(x, path)
		}
	case *ast.Call:
		if ast.IsMapCall(x) {
			if lt := s.mapLoop(x); lt != nil {
				lt.Path = path
				return &Shape{Type: ShapeLoop, Loop: lt}
			}
			return &Shape{Type: ShapeText, Text: complexText(path)}
		}
	}
	if ast.IsNullish(e) {
		return &Shape{Type: ShapeNull}
	}

	var tb textBuilder
	if lit, ok := literalText(e); ok {
		tb.literal(lit)
	} else {
		tb.hole(s.bind(e))
	}
	t := tb.build()
	t.Path = path
	return &Shape{Type: ShapeText, Text: t}
}

func (s shaper) props(out *Shape, el *ast.JSXElement, path []int) {
	for _, a := range el.Attrs {
		if a.Spread != nil || a.Name == "key" || ast.IsEventAttr(a.Name) {
			continue
		}
		name := ast.DOMAttr(a.Name)
		if v, ok := staticAttr(a.Expr()); ok {
			if out.Props == nil {
				out.Props = make(map[string]string)
			}
			out.Props[name] = v
			continue
		}
		t := s.attribute(a.Expr())
		if t == nil {
			continue
		}
		t.Path = path
		t.Attribute = name
		if out.PropsTemplates == nil {
			out.PropsTemplates = make(map[string]*Template)
		}
		out.PropsTemplates[name] = t
	}
}

func (s shaper) children(children []ast.Expr, path []int) []*Shape {
	var out []*Shape
	for _, seg := range ast.Segments(children) {
		p := extend(path, seg.Index)
		if seg.Text {
			t := s.text(seg.Nodes)
			t.Path = p
			out = append(out, &Shape{Type: ShapeText, Text: t})
			continue
		}
		out = append(out, s.shape(ast.ChildExpr(seg.Nodes[0]), p))
	}
	return out
}

// branches describes a structural conditional. Ternaries branch on
// true/false, `&&` on truthy/falsy with an explicit Null for the latter.
func (s shaper) branches(e ast.Expr, path []int) *Shape {
	switch x := e.(type) {
	case *ast.Conditional:
		return &Shape{
			Type:      ShapeConditional,
			Condition: s.condition(x.Test),
			Branches: map[string]*Shape{
				"true":  s.shape(x.Then, path),
				"false": s.shape(x.Else, path),
			},
		}
	case *ast.Logical:
		return &Shape{
			Type:      ShapeConditional,
			Condition: s.condition(x.Left),
			Branches: map[string]*Shape{
				"truthy": s.shape(x.Right, path),
				"falsy":  {Type: ShapeNull},
			},
		}
	}
	return s.shape(e, path)
}

// staticAttr returns the rendered value of a literal attribute.
func staticAttr(v ast.Expr) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "true", true
	case *ast.StringLit:
		return x.Value, true
	case *ast.NumberLit:
		return ast.FormatNumber(x), true
	case *ast.BoolLit:
		if x.Value {
			return "true", true
		}
		return "false", true
	case *ast.TemplateLit:
		if len(x.Exprs) == 0 {
			return x.Quasis[0], true
		}
	}
	return "", false
}

func complexText(path []int) *Template {
	var tb textBuilder
	tb.hole(binding{path: Complex, kind: ComplexType})
	t := tb.build()
	t.Path = path
	return t
}
