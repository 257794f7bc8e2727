package templates

import (
	"github.com/minimact/swig-sub001/lib/ast"
	"github.com/minimact/swig-sub001/lib/zone"
)

// transformMethods maps whitelisted methods to their transform family.
var transformMethods = map[string]string{
	"toFixed":        "numberFormat",
	"toLocaleString": "numberFormat",
	"toUpperCase":    "stringTransform",
	"toLowerCase":    "stringTransform",
	"trim":           "stringTransform",
	"trimStart":      "stringTransform",
	"trimEnd":        "stringTransform",
	"toString":       "stringTransform",
	"padStart":       "stringTransform",
	"padEnd":         "stringTransform",
	"slice":          "stringTransform",
	"substring":      "stringTransform",
	"join":           "arrayTransform",
}

// IsWhitelisted reports whether method may appear in a transform.
func IsWhitelisted(method string) bool {
	_, ok := transformMethods[method]
	return ok
}

// binder resolves expressions to bindings. Inside a loop body the item and
// index variables are rewritten to item and index.
type binder struct {
	state zone.Map
	item  string
	index string
}

func newBinder(state zone.Map) *binder {
	return &binder{state: state}
}

func (b *binder) loop(item, index string) *binder {
	return &binder{state: b.state, item: item, index: index}
}

// path resolves e to a binding path rooted in scope.
func (b *binder) path(e ast.Expr) (string, bool, bool) {
	info, ok := ast.PathOf(e)
	if !ok {
		return "", false, false
	}
	switch {
	case b.item != "" && info.Root == b.item:
		return "item" + info.Path[len(info.Root):], info.Optional, true
	case b.index != "" && info.Root == b.index:
		return "index" + info.Path[len(info.Root):], info.Optional, true
	case b.state.Has(info.Root):
		return info.Path, info.Optional, true
	}
	return "", false, false
}

// binding is one resolved placeholder value.
type binding struct {
	path        string
	kind        Type
	conditional map[string]string
	transform   *Transform
	nullable    bool
}

func (b *binder) bind(e ast.Expr) binding {
	if p, optional, ok := b.path(e); ok {
		if optional {
			return binding{path: p, kind: Nullable, nullable: true}
		}
		return binding{path: p, kind: Dynamic}
	}
	if c, ok := e.(*ast.Conditional); ok {
		if out, ok := b.conditional(c); ok {
			return out
		}
	}
	if p, t, ok := b.transform(e); ok {
		return binding{path: p, kind: Transformed, transform: t}
	}
	return binding{path: Complex, kind: ComplexType}
}

// conditional handles `path ? "a" : "b"` with literal branches.
func (b *binder) conditional(c *ast.Conditional) (binding, bool) {
	then, ok1 := literalText(c.Then)
	els, ok2 := literalText(c.Else)
	if !ok1 || !ok2 {
		return binding{}, false
	}
	test := c.Test
	if u, ok := test.(*ast.Unary); ok && u.Op == "!" {
		test = u.X
		then, els = els, then
	}
	p, _, ok := b.path(test)
	if !ok {
		return binding{}, false
	}
	return binding{
		path:        p,
		kind:        Conditional,
		conditional: map[string]string{"true": then, "false": els},
	}, true
}

// transform handles `path.method(literals...)` for whitelisted methods.
func (b *binder) transform(e ast.Expr) (string, *Transform, bool) {
	recv, method, args, ok := ast.MethodCall(e)
	if !ok {
		return "", nil, false
	}
	family, ok := transformMethods[method]
	if !ok {
		return "", nil, false
	}
	p, _, ok := b.path(recv)
	if !ok {
		return "", nil, false
	}
	t := &Transform{Type: family, Method: method}
	for _, a := range args {
		v, ok := ast.LiteralValue(a)
		if !ok {
			return "", nil, false
		}
		t.Args = append(t.Args, v)
	}
	return p, t, true
}

// condition resolves a structural test to path, !path or the complex
// marker.
func (b *binder) condition(e ast.Expr) string {
	if u, ok := e.(*ast.Unary); ok && u.Op == "!" {
		if p, _, ok := b.path(u.X); ok {
			return "!" + p
		}
		return Complex
	}
	if p, _, ok := b.path(e); ok {
		return p
	}
	return Complex
}

// literalText renders a literal the way it appears in rendered text.
// Booleans and null render nothing.
func literalText(e ast.Expr) (string, bool) {
	switch x := e.(type) {
	case *ast.StringLit:
		return x.Value, true
	case *ast.NumberLit:
		return ast.FormatNumber(x), true
	case *ast.BoolLit, *ast.NullLit:
		return "", true
	case *ast.Ident:
		if x.Name == "undefined" {
			return "", true
		}
	}
	return "", false
}
