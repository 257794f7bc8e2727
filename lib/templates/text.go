package templates

import (
	"strings"

	"github.com/minimact/swig-sub001/lib/ast"
	"github.com/minimact/swig-sub001/lib/zone"
)

// ExtractText returns a template for every text run and every dynamic
// attribute value in the element tree. Loop bodies and structural branches
// are described by their own extractors.
func ExtractText(root ast.Expr, state zone.Map) []*Template {
	b := newBinder(state)
	var out []*Template
	for _, s := range sites(root) {
		if el, ok := s.node.(*ast.JSXElement); ok {
			out = append(out, b.attributes(el, s.key, s.path)...)
		}
		for _, seg := range ast.Segments(s.children()) {
			if !seg.Text {
				continue
			}
			t := b.text(seg.Nodes)
			t.Key = join(s.key, segment(segText, seg.Index))
			t.Path = extend(s.path, seg.Index)
			out = append(out, t)
		}
	}
	return out
}

// text builds the template for one run of adjacent text children.
func (b *binder) text(nodes []ast.Expr) *Template {
	var tb textBuilder
	for _, n := range nodes {
		switch x := n.(type) {
		case *ast.JSXText:
			tb.literal(ast.CleanJSXText(x.Value))
		case *ast.JSXExprContainer:
			if s, ok := literalText(x.X); ok {
				tb.literal(s)
				continue
			}
			tb.hole(b.bind(x.X))
		}
	}
	return tb.build()
}

func (b *binder) attributes(el *ast.JSXElement, key string, path []int) []*Template {
	var out []*Template
	for _, a := range el.Attrs {
		if a.Spread != nil || a.Name == "key" || ast.IsEventAttr(a.Name) {
			continue
		}
		t := b.attribute(a.Expr())
		if t == nil {
			continue
		}
		name := ast.DOMAttr(a.Name)
		t.Key = attrKey(key, name)
		t.Path = append([]int(nil), path...)
		t.Attribute = name
		out = append(out, t)
	}
	return out
}

// attribute returns nil for static values.
func (b *binder) attribute(v ast.Expr) *Template {
	var tb textBuilder
	switch x := v.(type) {
	case nil, *ast.StringLit, *ast.NumberLit, *ast.BoolLit, *ast.NullLit:
		return nil
	case *ast.TemplateLit:
		if len(x.Exprs) == 0 {
			return nil
		}
		for i, q := range x.Quasis {
			tb.literal(q)
			if i < len(x.Exprs) {
				tb.hole(b.bind(x.Exprs[i]))
			}
		}
	default:
		tb.hole(b.bind(v))
	}
	t := tb.build()
	t.Type = Attribute
	return t
}

// textBuilder assembles a template string and tracks placeholder offsets in
// UTF-16 code units.
type textBuilder struct {
	sb    strings.Builder
	units int
	holes []binding
	slots []int
}

func (t *textBuilder) literal(s string) {
	t.write(EscapeBraces(s))
}

func (t *textBuilder) hole(b binding) {
	t.slots = append(t.slots, t.units)
	t.write(Placeholder(len(t.holes)))
	t.holes = append(t.holes, b)
}

func (t *textBuilder) write(s string) {
	t.sb.WriteString(s)
	t.units += utf16Len(s)
}

func (t *textBuilder) build() *Template {
	out := &Template{
		Template: t.sb.String(),
		Bindings: make([]string, 0, len(t.holes)),
		Slots:    append([]int{}, t.slots...),
		Type:     Static,
	}
	for _, h := range t.holes {
		out.Bindings = append(out.Bindings, h.path)
	}

	switch len(t.holes) {
	case 0:
		return out
	case 1:
		h := t.holes[0]
		out.Type = h.kind
		out.ConditionalTemplates = h.conditional
		out.Transform = h.transform
		out.Nullable = h.nullable
		return out
	}

	// Per-template conditional and transform metadata cannot say which
	// placeholder it belongs to, so those bindings fall back to complex.
	out.Type = Dynamic
	for i, h := range t.holes {
		switch h.kind {
		case Conditional, Transformed:
			out.Bindings[i] = Complex
		case Nullable:
			out.Nullable = true
		}
	}
	for _, b := range out.Bindings {
		if b == Complex {
			out.Type = ComplexType
		}
	}
	return out
}
