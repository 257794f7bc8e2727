package jsx

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/minimact/swig-sub001/lib/ast"
)

func (c *converter) pattern(n *sitter.Node) ast.Pattern {
	if n == nil {
		return nil
	}
	loc := c.loc(n)
	switch n.Type() {
	case "identifier", "shorthand_property_identifier_pattern", "undefined":
		return &ast.Ident{Loc: loc, Name: c.text(n)}
	case "array_pattern":
		p := &ast.ArrayPattern{Loc: loc}
		for _, e := range c.named(n) {
			p.Elements = append(p.Elements, c.pattern(e))
		}
		return p
	case "object_pattern":
		return c.objectPattern(n)
	case "assignment_pattern":
		return &ast.AssignPattern{Loc: loc, Target: c.pattern(field(n, "left")), Default: c.expr(field(n, "right"))}
	case "rest_pattern":
		return &ast.RestPattern{Loc: loc, Target: c.pattern(c.first(n))}
	case "required_parameter", "optional_parameter":
		return c.param(n).Target
	}
	c.fail(n, "pattern")
	return &ast.Ident{Loc: loc, Name: "_"}
}

func (c *converter) objectPattern(n *sitter.Node) *ast.ObjectPattern {
	p := &ast.ObjectPattern{Loc: c.loc(n)}
	for _, prop := range c.named(n) {
		loc := c.loc(prop)
		switch prop.Type() {
		case "shorthand_property_identifier_pattern", "shorthand_property_identifier":
			name := c.text(prop)
			p.Props = append(p.Props, &ast.PatternProp{Loc: loc, Key: name, Value: &ast.Ident{Loc: loc, Name: name}})
		case "object_assignment_pattern":
			// {a = 1}
			left := field(prop, "left")
			name := c.text(left)
			p.Props = append(p.Props, &ast.PatternProp{
				Loc:     loc,
				Key:     name,
				Value:   &ast.Ident{Loc: c.loc(left), Name: name},
				Default: c.expr(field(prop, "right")),
			})
		case "pair_pattern":
			pp := &ast.PatternProp{Loc: loc, Key: c.propertyName(field(prop, "key"))}
			value := field(prop, "value")
			if value != nil && value.Type() == "assignment_pattern" {
				pp.Value = c.pattern(field(value, "left"))
				pp.Default = c.expr(field(value, "right"))
			} else {
				pp.Value = c.pattern(value)
			}
			p.Props = append(p.Props, pp)
		case "rest_pattern":
			if id := c.first(prop); id != nil {
				p.Rest = &ast.Ident{Loc: loc, Name: c.text(id)}
			}
		default:
			c.fail(prop, "object pattern property")
		}
	}
	return p
}

// typeRef simplifies a TypeScript annotation to the names the compiler
// understands.
func (c *converter) typeRef(n *sitter.Node) *ast.TypeRef {
	if n == nil {
		return &ast.TypeRef{Name: "any"}
	}
	if n.Type() == "type_annotation" {
		n = c.first(n)
		if n == nil {
			return &ast.TypeRef{Name: "any"}
		}
	}
	switch n.Type() {
	case "predefined_type":
		switch name := c.text(n); name {
		case "string", "number", "boolean", "any":
			return &ast.TypeRef{Name: name}
		}
		return &ast.TypeRef{Name: "any"}
	case "array_type":
		return &ast.TypeRef{Name: "array", Elem: c.typeRef(c.first(n))}
	case "generic_type":
		if c.text(field(n, "name")) == "Array" {
			if args := c.named(field(n, "type_arguments")); len(args) == 1 {
				return &ast.TypeRef{Name: "array", Elem: c.typeRef(args[0])}
			}
			return &ast.TypeRef{Name: "array", Elem: &ast.TypeRef{Name: "any"}}
		}
		return &ast.TypeRef{Name: c.text(field(n, "name"))}
	case "type_identifier":
		return &ast.TypeRef{Name: c.text(n)}
	case "object_type":
		t := &ast.TypeRef{Name: "object"}
		for _, m := range c.named(n) {
			if m.Type() != "property_signature" {
				continue
			}
			t.Members = append(t.Members, &ast.TypeMember{
				Name:     c.propertyName(field(m, "name")),
				Type:     c.typeRef(field(m, "type")),
				Optional: hasToken(m, "?"),
			})
		}
		return t
	case "function_type":
		return &ast.TypeRef{Name: "function"}
	case "parenthesized_type":
		return c.typeRef(c.first(n))
	}
	return &ast.TypeRef{Name: "any"}
}
