package templates

import (
	"strconv"

	"github.com/minimact/swig-sub001/lib/ast"
)

// Key segment kinds.
const (
	segFragment = "fragment"
	segText     = "text"
	segLoop     = "loop"
	segCond     = "cond"
	segExpr     = "expr"
)

func segment(kind string, i int) string {
	return kind + "[" + strconv.Itoa(i) + "]"
}

func join(parent, seg string) string {
	if parent == "" {
		return seg
	}
	return parent + "." + seg
}

func attrKey(element, name string) string {
	return element + ".@" + name
}

func extend(path []int, i int) []int {
	out := make([]int, len(path), len(path)+1)
	copy(out, path)
	return append(out, i)
}

// site is an element or fragment reached from the root without crossing a
// loop body or a structural branch.
type site struct {
	node ast.Expr
	key  string
	path []int
}

func (s site) children() []ast.Expr {
	switch x := s.node.(type) {
	case *ast.JSXElement:
		return x.Children
	case *ast.JSXFragment:
		return x.Children
	}
	return nil
}

// elementSegment names an element or fragment at child index i.
func elementSegment(e ast.Expr, i int) (string, bool) {
	switch x := e.(type) {
	case *ast.JSXElement:
		return segment(x.Name, i), true
	case *ast.JSXFragment:
		return segment(segFragment, i), true
	}
	return "", false
}

// sites lists the element tree under root in document order.
func sites(root ast.Expr) []site {
	var out []site
	var visit func(e ast.Expr, key string, path []int)
	visit = func(e ast.Expr, key string, path []int) {
		s := site{node: e, key: key, path: path}
		out = append(out, s)
		for i, c := range ast.MeaningfulChildren(s.children()) {
			x := ast.ChildExpr(c)
			if seg, ok := elementSegment(x, i); ok {
				visit(x, join(key, seg), extend(path, i))
			}
		}
	}
	if seg, ok := elementSegment(root, 0); ok {
		visit(root, seg, []int{0})
	}
	return out
}
