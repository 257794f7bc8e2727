package component

import (
	"github.com/minimact/swig-sub001/lib/ast"
	"github.com/minimact/swig-sub001/lib/hooks"
	"github.com/minimact/swig-sub001/lib/zone"
)

// walk dispatches the top-level statements of the component body. The last
// top-level return supplies the render expression.
func (c *Component) walk(stmts []ast.Stmt) {
	last := -1
	for i, s := range stmts {
		if _, ok := s.(*ast.Return); ok {
			last = i
		}
	}
	for i, s := range stmts {
		switch x := s.(type) {
		case *ast.Return:
			if i == last {
				c.Render = x.X
				continue
			}
		case *ast.VarDecl:
			if kept := c.declare(x); len(kept) > 0 {
				c.Body = append(c.Body, &ast.VarDecl{Loc: x.Loc, Kind: x.Kind, Decls: kept})
			}
			continue
		case *ast.ExprStmt:
			if call, ok := x.X.(*ast.Call); ok {
				if h, recognized := hooks.Decompose(call, nil, c.Diags); recognized {
					c.addHook(h)
					continue
				}
			}
		case *ast.FuncDecl:
			c.Methods = append(c.Methods, &Method{Name: x.Func.Name, Func: x.Func})
			continue
		}
		c.Body = append(c.Body, s)
	}
}

// declare records the declarators of one declaration and returns those that
// stay in the render prologue.
func (c *Component) declare(d *ast.VarDecl) []*ast.Declarator {
	var kept []*ast.Declarator
	for _, decl := range d.Decls {
		if call, ok := decl.Init.(*ast.Call); ok {
			if h, recognized := hooks.Decompose(call, decl.Target, c.Diags); recognized {
				c.addHook(h)
				continue
			}
		}
		id, isIdent := decl.Target.(*ast.Ident)
		if fn, ok := decl.Init.(*ast.Func); ok && isIdent {
			c.Methods = append(c.Methods, &Method{Name: id.Name, Func: fn})
			continue
		}
		if !isIdent {
			kept = append(kept, decl)
			continue
		}
		local := &Local{Name: id.Name, Init: decl.Init, Type: LiteralType(decl.Init)}
		if c.dependsOnExternal(decl.Init) {
			local.ClientComputed = true
			c.StateTypes[id.Name] = zone.Client
		} else {
			if local.Type == TypeString {
				c.strings[id.Name] = true
			}
			kept = append(kept, decl)
		}
		c.Locals = append(c.Locals, local)
	}
	return kept
}

func (c *Component) addHook(h *hooks.Hook) {
	if h == nil {
		return
	}
	c.Hooks = append(c.Hooks, h)
	if h.Name == "" {
		return
	}
	if z := h.Zone(); z != "" {
		c.StateTypes[h.Name] = z
	}
	if _, ok := h.Init.(*ast.StringLit); ok {
		c.strings[h.Name] = true
	}
}

// dependsOnExternal reports whether e refers to an identifier imported from
// an external library or to a local already computed on the client.
func (c *Component) dependsOnExternal(e ast.Expr) bool {
	found := false
	ast.Inspect(e, func(n ast.Node) bool {
		if found {
			return false
		}
		if id, ok := n.(*ast.Ident); ok {
			if _, ext := c.External[id.Name]; ext || c.isClientLocal(id.Name) {
				found = true
			}
		}
		return true
	})
	return found
}

func (c *Component) isClientLocal(name string) bool {
	for _, l := range c.Locals {
		if l.Name == name {
			return l.ClientComputed
		}
	}
	return false
}
