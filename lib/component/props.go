package component

import (
	"github.com/minimact/swig-sub001/lib/ast"
	"github.com/minimact/swig-sub001/lib/zone"
)

// Prop types.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeArray   = "array"
	TypeObject  = "object"
	TypeAny     = "any"
)

var arrayMethods = map[string]bool{
	"map": true, "filter": true, "forEach": true, "reduce": true, "find": true,
	"findIndex": true, "some": true, "every": true, "length": true, "push": true,
}

var numericOps = map[string]bool{
	"-": true, "*": true, "/": true, "%": true,
	"<": true, ">": true, "<=": true, ">=": true,
}

// collectProps reads the first parameter: a destructured object pattern
// names the props directly, a bare identifier is a props bag whose member
// accesses name them.
func (c *Component) collectProps(params []*ast.Param) {
	if len(params) == 0 {
		return
	}
	p := params[0]
	target := p.Target
	if a, ok := target.(*ast.AssignPattern); ok {
		target = a.Target
	}

	switch t := target.(type) {
	case *ast.ObjectPattern:
		for _, pp := range t.Props {
			c.addProp(pp.Key, pp.Default, p.Type)
		}
	case *ast.Ident:
		c.PropsBag = t.Name
		if p.Type != nil {
			for _, m := range p.Type.Members {
				c.addProp(m.Name, nil, p.Type)
			}
		}
		ast.Inspect(c.Func, func(n ast.Node) bool {
			if m, ok := n.(*ast.Member); ok && !m.Computed() {
				if id, ok := m.Object.(*ast.Ident); ok && id.Name == t.Name && c.Prop(m.Property) == nil {
					c.addProp(m.Property, nil, nil)
				}
			}
			return true
		})
	}
}

func (c *Component) addProp(name string, def ast.Expr, annotation *ast.TypeRef) {
	prop := &Prop{Name: name, Type: TypeAny, Default: def}
	if m := annotation.Member(name); m != nil {
		prop.Type, prop.Explicit = typeName(m.Type), true
	} else if t := LiteralType(def); t != "" {
		prop.Type, prop.Explicit = t, true
	}
	c.Props = append(c.Props, prop)
	c.StateTypes[name] = zone.Server
}

// inferPropTypes fills in props without an explicit type from how the body
// uses them. Boolean evidence beats numeric evidence, which beats array
// evidence, which beats plain property access.
func (c *Component) inferPropTypes() {
	pending := make(map[string]*Prop)
	for _, p := range c.Props {
		if !p.Explicit {
			pending[p.Name] = p
		}
	}
	if len(pending) > 0 {
		evidence := make(map[string]map[string]bool)
		c.usages(c.Func, nil, func(name string, ref, parent ast.Node) {
			if _, ok := pending[name]; !ok {
				return
			}
			if t := usageType(ref, parent); t != "" {
				if evidence[name] == nil {
					evidence[name] = make(map[string]bool)
				}
				evidence[name][t] = true
			}
		})
		for name, p := range pending {
			for _, t := range []string{TypeBoolean, TypeNumber, TypeArray, TypeObject} {
				if evidence[name][t] {
					p.Type = t
					break
				}
			}
		}
	}
	for _, p := range c.Props {
		if p.Type == TypeString {
			c.strings[p.Name] = true
		}
	}
}

// usages calls fn for every reference to a prop together with its parent.
func (c *Component) usages(n, parent ast.Node, fn func(name string, ref, parent ast.Node)) {
	if n == nil {
		return
	}
	if name, ok := c.propRef(n); ok {
		fn(name, n, parent)
	}
	for _, child := range ast.Children(n) {
		c.usages(child, n, fn)
	}
}

func (c *Component) propRef(n ast.Node) (string, bool) {
	switch x := n.(type) {
	case *ast.Ident:
		if c.PropsBag == "" {
			return x.Name, true
		}
	case *ast.Member:
		if id, ok := x.Object.(*ast.Ident); ok && c.PropsBag != "" && id.Name == c.PropsBag && !x.Computed() {
			return x.Property, true
		}
	}
	return "", false
}

func usageType(ref, parent ast.Node) string {
	switch p := parent.(type) {
	case *ast.If:
		if p.Test == ref {
			return TypeBoolean
		}
	case *ast.While:
		if p.Test == ref {
			return TypeBoolean
		}
	case *ast.Conditional:
		if p.Test == ref {
			return TypeBoolean
		}
	case *ast.Unary:
		if p.Op == "!" {
			return TypeBoolean
		}
		if p.Op == "-" {
			return TypeNumber
		}
	case *ast.Logical:
		if p.Op == "&&" && p.Left == ref {
			return TypeBoolean
		}
	case *ast.Binary:
		if numericOps[p.Op] {
			return TypeNumber
		}
		if p.Op == "+" {
			if _, ok := p.Left.(*ast.NumberLit); ok {
				return TypeNumber
			}
			if _, ok := p.Right.(*ast.NumberLit); ok {
				return TypeNumber
			}
		}
	case *ast.Update:
		return TypeNumber
	case *ast.Member:
		if p.Object == ref && !p.Computed() {
			if arrayMethods[p.Property] {
				return TypeArray
			}
			return TypeObject
		}
	}
	return ""
}

func typeName(t *ast.TypeRef) string {
	if t == nil {
		return TypeAny
	}
	switch {
	case t.Elem != nil || t.Name == TypeArray:
		return TypeArray
	case len(t.Members) > 0:
		return TypeObject
	}
	switch t.Name {
	case TypeString, TypeNumber, TypeBoolean, TypeObject:
		return t.Name
	}
	return TypeAny
}

// LiteralType returns the prop type of a literal expression, or "".
func LiteralType(e ast.Expr) string {
	switch e.(type) {
	case *ast.StringLit, *ast.TemplateLit:
		return TypeString
	case *ast.NumberLit:
		return TypeNumber
	case *ast.BoolLit:
		return TypeBoolean
	case *ast.ArrayLit:
		return TypeArray
	case *ast.ObjectLit:
		return TypeObject
	}
	if v, ok := ast.LiteralValue(e); ok {
		if _, ok := v.(float64); ok {
			return TypeNumber
		}
	}
	return ""
}
