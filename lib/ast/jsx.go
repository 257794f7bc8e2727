package ast

import "unicode"

// Attr returns the named attribute of el, or nil.
func (el *JSXElement) Attr(name string) *JSXAttr {
	for _, a := range el.Attrs {
		if a.Spread == nil && a.Name == name {
			return a
		}
	}
	return nil
}

var domAttrs = map[string]string{
	"className": "class",
	"htmlFor":   "for",
}

// DOMAttr returns the DOM name of a JSX attribute.
func DOMAttr(name string) string {
	if r, ok := domAttrs[name]; ok {
		return r
	}
	return name
}

// IsComponentTag reports whether a tag names a component rather than an
// intrinsic element.
func IsComponentTag(name string) bool {
	for _, r := range name {
		return unicode.IsUpper(r)
	}
	return false
}

// IsEventAttr reports whether an attribute name follows the onX convention.
func IsEventAttr(name string) bool {
	if len(name) < 3 || name[:2] != "on" {
		return false
	}
	return unicode.IsUpper(rune(name[2]))
}

// IsMapCall reports whether e is `recv.map(callback)` with a function
// callback.
func IsMapCall(e Expr) bool {
	_, method, args, ok := MethodCall(e)
	if !ok || method != "map" || len(args) == 0 {
		return false
	}
	_, isFunc := args[0].(*Func)
	return isFunc
}

// IsStructural reports whether e selects between rendered shapes: a
// ternary with a JSX branch or `cond && <jsx/>`.
func IsStructural(e Expr) bool {
	switch x := e.(type) {
	case *Conditional:
		return IsJSX(x.Then) || IsJSX(x.Else) || IsStructural(x.Then) || IsStructural(x.Else)
	case *Logical:
		return x.Op == "&&" && (IsJSX(x.Right) || IsStructural(x.Right))
	}
	return false
}

// IsTextChild reports whether a JSX child renders as text.
func IsTextChild(c Expr) bool {
	switch x := c.(type) {
	case *JSXText:
		return true
	case *JSXExprContainer:
		if x.X == nil || IsJSX(x.X) || IsMapCall(x.X) || IsStructural(x.X) {
			return false
		}
		return true
	}
	return false
}

// Segment is a run of adjacent text-producing children or a single other
// child. Index is the position of the first node among the meaningful
// children.
type Segment struct {
	Index int
	Nodes []Expr
	Text  bool
}

// Segments groups the meaningful children of an element.
func Segments(children []Expr) []Segment {
	var out []Segment
	for i, c := range MeaningfulChildren(children) {
		if IsTextChild(c) {
			if n := len(out); n > 0 && out[n-1].Text {
				out[n-1].Nodes = append(out[n-1].Nodes, c)
				continue
			}
			out = append(out, Segment{Index: i, Nodes: []Expr{c}, Text: true})
			continue
		}
		out = append(out, Segment{Index: i, Nodes: []Expr{c}})
	}
	return out
}

// ChildExpr unwraps an expression container.
func ChildExpr(c Expr) Expr {
	if x, ok := c.(*JSXExprContainer); ok {
		return x.X
	}
	return c
}
