package ast

import "reflect"

// Inspect traverses the tree rooted at n in depth-first order, calling f for
// every node. If f returns false the children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if isNil(n) || !f(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, f)
	}
}

// Children returns the direct child nodes of n in source order.
func Children(n Node) []Node {
	var out []Node
	add := func(cs ...Node) {
		for _, c := range cs {
			if !isNil(c) {
				out = append(out, c)
			}
		}
	}

	switch n := n.(type) {
	case *Program:
		for _, s := range n.Body {
			add(s)
		}
	case *TemplateLit:
		for _, e := range n.Exprs {
			add(e)
		}
	case *ArrayLit:
		for _, e := range n.Elements {
			add(e)
		}
	case *ObjectLit:
		for _, p := range n.Props {
			add(p)
		}
	case *Property:
		add(n.Computed, n.Value, n.Spread)
	case *Member:
		add(n.Object, n.Index)
	case *Call:
		add(n.Callee)
		for _, a := range n.Args {
			add(a)
		}
	case *New:
		add(n.Callee)
		for _, a := range n.Args {
			add(a)
		}
	case *Unary:
		add(n.X)
	case *Update:
		add(n.X)
	case *Binary:
		add(n.Left, n.Right)
	case *Logical:
		add(n.Left, n.Right)
	case *Conditional:
		add(n.Test, n.Then, n.Else)
	case *Assign:
		add(n.Target, n.Value)
	case *Func:
		for _, p := range n.Params {
			add(p)
		}
		add(n.Body, n.ExprBody)
	case *Param:
		add(n.Target)
	case *Spread:
		add(n.X)
	case *Await:
		add(n.X)
	case *JSXElement:
		for _, a := range n.Attrs {
			add(a)
		}
		for _, c := range n.Children {
			add(c)
		}
	case *JSXFragment:
		for _, c := range n.Children {
			add(c)
		}
	case *JSXExprContainer:
		add(n.X)
	case *JSXAttr:
		add(n.Value, n.Spread)
	case *ArrayPattern:
		for _, e := range n.Elements {
			add(e)
		}
	case *ObjectPattern:
		for _, p := range n.Props {
			add(p)
		}
		add(n.Rest)
	case *PatternProp:
		add(n.Value, n.Default)
	case *AssignPattern:
		add(n.Target, n.Default)
	case *RestPattern:
		add(n.Target)
	case *VarDecl:
		for _, d := range n.Decls {
			add(d)
		}
	case *Declarator:
		add(n.Target, n.Init)
	case *ExprStmt:
		add(n.X)
	case *Return:
		add(n.X)
	case *If:
		add(n.Test, n.Then, n.Else)
	case *Block:
		for _, s := range n.Body {
			add(s)
		}
	case *For:
		add(n.Init, n.Test, n.Update, n.Body)
	case *ForOf:
		add(n.Target, n.Iter, n.Body)
	case *While:
		add(n.Test, n.Body)
	case *Try:
		add(n.Block, n.Param, n.Handler, n.Finalizer)
	case *Throw:
		add(n.X)
	case *FuncDecl:
		add(n.Func)
	case *Export:
		add(n.Decl, n.X)
	}
	return out
}

// isNil reports whether n is nil or a typed nil pointer, which is what an
// absent *Block or *Ident field becomes once stored in a Node.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Identifiers returns the names bound by a pattern, in source order.
func Identifiers(p Pattern) []string {
	var names []string
	var visit func(Pattern)
	visit = func(p Pattern) {
		switch p := p.(type) {
		case *Ident:
			if p != nil {
				names = append(names, p.Name)
			}
		case *ArrayPattern:
			for _, e := range p.Elements {
				if e != nil {
					visit(e)
				}
			}
		case *ObjectPattern:
			for _, pp := range p.Props {
				visit(pp.Value)
			}
			if p.Rest != nil {
				names = append(names, p.Rest.Name)
			}
		case *AssignPattern:
			visit(p.Target)
		case *RestPattern:
			visit(p.Target)
		}
	}
	visit(p)
	return names
}
