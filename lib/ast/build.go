package ast

import (
	"strconv"
	"strings"
)

// Constructors for hand-built trees. Tests across the module use them to
// describe components without going through the JSON decoder.

// Id returns an identifier.
func Id(name string) *Ident { return &Ident{Name: name} }

// Str returns a string literal.
func Str(s string) *StringLit { return &StringLit{Value: s} }

// Num returns a numeric literal.
func Num(v float64) *NumberLit {
	return &NumberLit{Value: v, Raw: strconv.FormatFloat(v, 'f', -1, 64)}
}

// Bool returns a boolean literal.
func Bool(v bool) *BoolLit { return &BoolLit{Value: v} }

// Null returns the null literal.
func Null() *NullLit { return &NullLit{} }

// Path builds a member chain from a dotted path such as "user.name".
// A "?." separator produces an optional link.
func Path(path string) Expr {
	parts := strings.Split(strings.ReplaceAll(path, "?.", ".?"), ".")
	var e Expr = Id(parts[0])
	for _, p := range parts[1:] {
		optional := strings.HasPrefix(p, "?")
		e = &Member{Object: e, Property: strings.TrimPrefix(p, "?"), Optional: optional}
	}
	return e
}

// Index returns obj[idx].
func Index(obj, idx Expr) *Member { return &Member{Object: obj, Index: idx} }

// CallOf returns callee(args...).
func CallOf(callee Expr, args ...Expr) *Call { return &Call{Callee: callee, Args: args} }

// MethodOf returns recv.method(args...).
func MethodOf(recv Expr, method string, args ...Expr) *Call {
	return &Call{Callee: &Member{Object: recv, Property: method}, Args: args}
}

// Bin returns a binary expression.
func Bin(op string, l, r Expr) *Binary { return &Binary{Op: op, Left: l, Right: r} }

// And returns l && r.
func And(l, r Expr) *Logical { return &Logical{Op: "&&", Left: l, Right: r} }

// Not returns !x.
func Not(x Expr) *Unary { return &Unary{Op: "!", X: x} }

// Cond returns test ? then : els.
func Cond(test, then, els Expr) *Conditional {
	return &Conditional{Test: test, Then: then, Else: els}
}

// Arrow returns an expression-bodied arrow function with identifier params.
func Arrow(params []string, body Expr) *Func {
	return &Func{Params: Params(params...), ExprBody: body, Arrow: true}
}

// ArrowBlock returns a block-bodied arrow function with identifier params.
func ArrowBlock(params []string, body ...Stmt) *Func {
	return &Func{Params: Params(params...), Body: &Block{Body: body}, Arrow: true}
}

// Params returns identifier parameters.
func Params(names ...string) []*Param {
	ps := make([]*Param, len(names))
	for i, n := range names {
		ps[i] = &Param{Target: Id(n)}
	}
	return ps
}

// Arr returns an array literal.
func Arr(elems ...Expr) *ArrayLit { return &ArrayLit{Elements: elems} }

// Obj returns an object literal from alternating key/value pairs.
func Obj(kv ...any) *ObjectLit {
	o := &ObjectLit{}
	for i := 0; i+1 < len(kv); i += 2 {
		o.Props = append(o.Props, &Property{Key: kv[i].(string), Value: kv[i+1].(Expr)})
	}
	return o
}

// Tpl returns a template literal from alternating quasi/expression parts.
func Tpl(parts ...any) *TemplateLit {
	t := &TemplateLit{}
	for i, p := range parts {
		if i%2 == 0 {
			t.Quasis = append(t.Quasis, p.(string))
		} else {
			t.Exprs = append(t.Exprs, p.(Expr))
		}
	}
	if len(t.Quasis) == len(t.Exprs) {
		t.Quasis = append(t.Quasis, "")
	}
	return t
}

// El returns a JSX element. Children that are plain strings become JSXText;
// non-JSX expressions are wrapped in containers.
func El(tag string, attrs []*JSXAttr, children ...any) *JSXElement {
	return &JSXElement{Name: tag, Attrs: attrs, Children: jsxChildren(children), SelfClosing: len(children) == 0}
}

// Frag returns a JSX fragment.
func Frag(children ...any) *JSXFragment {
	return &JSXFragment{Children: jsxChildren(children)}
}

// Attrs collects attributes for El.
func Attrs(attrs ...*JSXAttr) []*JSXAttr { return attrs }

// A returns an attribute. Strings become string literals, nil a bare
// boolean attribute and other expressions are wrapped in a container.
func A(name string, value any) *JSXAttr {
	switch v := value.(type) {
	case nil:
		return &JSXAttr{Name: name}
	case string:
		return &JSXAttr{Name: name, Value: Str(v)}
	case Expr:
		return &JSXAttr{Name: name, Value: &JSXExprContainer{X: v}}
	}
	return &JSXAttr{Name: name}
}

// SpreadAttr returns `{...x}`.
func SpreadAttr(x Expr) *JSXAttr { return &JSXAttr{Spread: x} }

// X wraps an expression in a JSX container.
func X(e Expr) *JSXExprContainer { return &JSXExprContainer{X: e} }

func jsxChildren(children []any) []Expr {
	var out []Expr
	for _, c := range children {
		switch v := c.(type) {
		case string:
			out = append(out, &JSXText{Value: v})
		case *JSXElement, *JSXFragment, *JSXText, *JSXExprContainer:
			out = append(out, v.(Expr))
		case Expr:
			out = append(out, &JSXExprContainer{X: v})
		}
	}
	return out
}

// Const returns `const target = init`.
func Const(target Pattern, init Expr) *VarDecl {
	return &VarDecl{Kind: "const", Decls: []*Declarator{{Target: target, Init: init}}}
}

// Destructure returns an array pattern over identifier names.
func Destructure(names ...string) *ArrayPattern {
	p := &ArrayPattern{}
	for _, n := range names {
		p.Elements = append(p.Elements, Id(n))
	}
	return p
}

// ObjPattern returns `{a, b, c}`.
func ObjPattern(names ...string) *ObjectPattern {
	p := &ObjectPattern{}
	for _, n := range names {
		p.Props = append(p.Props, &PatternProp{Key: n, Value: Id(n)})
	}
	return p
}

// Do returns an expression statement.
func Do(e Expr) *ExprStmt { return &ExprStmt{X: e} }

// Ret returns a return statement.
func Ret(e Expr) *Return { return &Return{X: e} }

// Component returns `function name(params) { body }`.
func Component(name string, params []*Param, body ...Stmt) *FuncDecl {
	return &FuncDecl{Func: &Func{Name: name, Params: params, Body: &Block{Body: body}}}
}

// PropsParam returns a destructured props parameter `{a, b}`.
func PropsParam(names ...string) []*Param {
	return []*Param{{Target: ObjPattern(names...)}}
}
