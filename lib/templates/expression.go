package templates

import (
	"github.com/minimact/swig-sub001/lib/ast"
	"github.com/minimact/swig-sub001/lib/diag"
	"github.com/minimact/swig-sub001/lib/zone"
)

var arithmeticOps = map[string]bool{"+": true, "-": true, "*": true, "/": true, "%": true}

// ExtractExpressions returns a template for every computed value in a text
// run that a runtime can recompute without evaluating code: whitelisted
// method calls, `.length`, sign flips and arithmetic over state paths.
// Other expressions produce nothing.
func ExtractExpressions(root ast.Expr, state zone.Map, diags *diag.List) []*ExpressionTemplate {
	b := newBinder(state)
	var out []*ExpressionTemplate
	for _, site := range sites(root) {
		for _, seg := range ast.Segments(site.children()) {
			if !seg.Text {
				continue
			}
			for j, n := range seg.Nodes {
				c, ok := n.(*ast.JSXExprContainer)
				if !ok || ast.IsLiteral(c.X) {
					continue
				}
				et := b.expression(c.X)
				if et == nil {
					if _, method, _, ok := ast.MethodCall(c.X); ok && !IsWhitelisted(method) {
						diags.Note(diag.TemplateSkipped, c, "method %s is not whitelisted; no expression template", method)
					}
					continue
				}
				i := seg.Index + j
				et.Key = join(site.key, segment(segExpr, i))
				et.Path = extend(site.path, i)
				out = append(out, et)
			}
		}
	}
	return out
}

func (b *binder) expression(e ast.Expr) *ExpressionTemplate {
	if m, ok := e.(*ast.Member); ok && !m.Computed() && m.Property == "length" {
		if p, _, ok := b.path(m.Object); ok {
			return single(ExprProperty, p, &Transform{Type: "property", Method: "length"})
		}
	}
	if _, _, ok := b.path(e); ok {
		return nil
	}
	if p, t, ok := b.transform(e); ok {
		return single(ExprMethodCall, p, t)
	}
	if u, ok := e.(*ast.Unary); ok {
		if p, _, ok := b.path(u.X); ok {
			switch u.Op {
			case "-":
				return single(ExprUnary, p, &Transform{Type: "negate"})
			case "!":
				return single(ExprUnary, p, &Transform{Type: "not"})
			}
		}
	}
	if b.arithmeticOnly(e) {
		return b.arithmetic(e)
	}
	return nil
}

func single(typ, binding string, t *Transform) *ExpressionTemplate {
	return &ExpressionTemplate{
		Type:      typ,
		Template:  Placeholder(0),
		Binding:   binding,
		Bindings:  []string{binding},
		Transform: t,
	}
}

// arithmetic describes e as a chain of literal steps applied to one path,
// or failing that as a formula over every path occurrence.
func (b *binder) arithmetic(e ast.Expr) *ExpressionTemplate {
	if p, steps, ok := b.steps(e); ok && len(steps) > 0 {
		return single(ExprArithmetic, p, &Transform{Type: "arithmetic", Steps: steps})
	}
	var bindings []string
	rewritten := b.substitute(e, &bindings)
	if len(bindings) == 0 {
		return nil
	}
	return &ExpressionTemplate{
		Type:     ExprFormula,
		Template: ast.Source(rewritten),
		Bindings: bindings,
		Formula:  ast.Source(e),
	}
}

func (b *binder) arithmeticOnly(e ast.Expr) bool {
	if _, _, ok := b.path(e); ok {
		return true
	}
	switch x := e.(type) {
	case *ast.NumberLit:
		return true
	case *ast.Unary:
		return (x.Op == "-" || x.Op == "+") && b.arithmeticOnly(x.X)
	case *ast.Binary:
		return arithmeticOps[x.Op] && b.arithmeticOnly(x.Left) && b.arithmeticOnly(x.Right)
	}
	return false
}

// steps flattens `((x op n) op m)` into ordered steps. Commutative steps
// with the literal on the left are normalized; a sign flip is `* -1`.
func (b *binder) steps(e ast.Expr) (string, []Step, bool) {
	if p, _, ok := b.path(e); ok {
		return p, nil, true
	}
	if u, ok := e.(*ast.Unary); ok {
		p, steps, ok := b.steps(u.X)
		switch u.Op {
		case "-":
			return p, append(steps, Step{Op: "*", Operand: -1}), ok
		case "+":
			return p, steps, ok
		}
		return "", nil, false
	}
	bin, ok := e.(*ast.Binary)
	if !ok {
		return "", nil, false
	}
	if n, ok := number(bin.Right); ok {
		p, steps, ok := b.steps(bin.Left)
		return p, append(steps, Step{Op: bin.Op, Operand: n}), ok
	}
	if n, ok := number(bin.Left); ok {
		p, steps, ok := b.steps(bin.Right)
		reverse := bin.Op != "+" && bin.Op != "*"
		return p, append(steps, Step{Op: bin.Op, Operand: n, Reverse: reverse}), ok
	}
	return "", nil, false
}

// substitute returns a copy of e with every path replaced by the next
// placeholder, appending the path to bindings.
func (b *binder) substitute(e ast.Expr, bindings *[]string) ast.Expr {
	if p, _, ok := b.path(e); ok {
		id := &ast.Ident{Name: Placeholder(len(*bindings))}
		*bindings = append(*bindings, p)
		return id
	}
	switch x := e.(type) {
	case *ast.Binary:
		left := b.substitute(x.Left, bindings)
		right := b.substitute(x.Right, bindings)
		return &ast.Binary{Loc: x.Loc, Op: x.Op, Left: left, Right: right}
	case *ast.Unary:
		return &ast.Unary{Loc: x.Loc, Op: x.Op, X: b.substitute(x.X, bindings)}
	}
	return e
}

func number(e ast.Expr) (float64, bool) {
	v, ok := ast.LiteralValue(e)
	if !ok {
		return 0, false
	}
	n, ok := v.(float64)
	return n, ok
}
