package ast

import "strings"

// PathInfo describes a dotted member chain such as `user.profile.name`.
type PathInfo struct {
	Path     string // dotted path without optional markers
	Root     string // leftmost identifier
	Optional bool   // any link in the chain used ?.
}

// PathOf resolves identifiers and non-computed member chains to a dotted
// path. Computed access, calls and every other shape return ok == false.
func PathOf(e Expr) (PathInfo, bool) {
	var parts []string
	optional := false
	for {
		switch x := e.(type) {
		case *Ident:
			if x == nil {
				return PathInfo{}, false
			}
			parts = append(parts, x.Name)
			for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
				parts[i], parts[j] = parts[j], parts[i]
			}
			return PathInfo{
				Path:     strings.Join(parts, "."),
				Root:     x.Name,
				Optional: optional,
			}, true
		case *Member:
			if x.Computed() || x.Property == "" {
				return PathInfo{}, false
			}
			if x.Optional {
				optional = true
			}
			parts = append(parts, x.Property)
			e = x.Object
		default:
			return PathInfo{}, false
		}
	}
}

// RootIdent returns the leftmost identifier of a member/call chain, or "".
func RootIdent(e Expr) string {
	for {
		switch x := e.(type) {
		case *Ident:
			return x.Name
		case *Member:
			e = x.Object
		case *Call:
			e = x.Callee
		default:
			return ""
		}
	}
}

// CalleeName returns the name of a bare identifier callee, or "".
func CalleeName(c *Call) string {
	if id, ok := c.Callee.(*Ident); ok {
		return id.Name
	}
	return ""
}

// MethodCall splits `obj.method(args)` into its receiver and method name.
func MethodCall(e Expr) (recv Expr, method string, args []Expr, ok bool) {
	c, isCall := e.(*Call)
	if !isCall {
		return nil, "", nil, false
	}
	m, isMember := c.Callee.(*Member)
	if !isMember || m.Computed() {
		return nil, "", nil, false
	}
	return m.Object, m.Property, c.Args, true
}

// IsJSX reports whether e is a JSX element or fragment.
func IsJSX(e Expr) bool {
	switch e.(type) {
	case *JSXElement, *JSXFragment:
		return true
	}
	return false
}

// IsNullish reports whether e is null or the identifier undefined.
func IsNullish(e Expr) bool {
	switch x := e.(type) {
	case *NullLit:
		return true
	case *Ident:
		return x.Name == "undefined"
	}
	return false
}

// IsLiteral reports whether e is a string, number, boolean or null literal.
func IsLiteral(e Expr) bool {
	switch e.(type) {
	case *StringLit, *NumberLit, *BoolLit, *NullLit:
		return true
	}
	return false
}

// LiteralValue returns the Go value of a literal expression.
func LiteralValue(e Expr) (any, bool) {
	switch x := e.(type) {
	case *StringLit:
		return x.Value, true
	case *NumberLit:
		return x.Value, true
	case *BoolLit:
		return x.Value, true
	case *NullLit:
		return nil, true
	case *Unary:
		if n, ok := x.X.(*NumberLit); ok && x.Op == "-" {
			return -n.Value, true
		}
	}
	return nil, false
}

// FuncBody returns the statements of a function body. Expression-bodied
// arrows yield a single synthetic return.
func FuncBody(f *Func) []Stmt {
	if f.Body != nil {
		return f.Body.Body
	}
	if f.ExprBody != nil {
		return []Stmt{&Return{Loc: Loc{At: f.ExprBody.Position()}, X: f.ExprBody}}
	}
	return nil
}

// ReturnedExpr returns the expression a function yields: the arrow's
// expression body or the argument of the last top-level return statement.
func ReturnedExpr(f *Func) Expr {
	if f.ExprBody != nil {
		return f.ExprBody
	}
	if f.Body == nil {
		return nil
	}
	for i := len(f.Body.Body) - 1; i >= 0; i-- {
		if r, ok := f.Body.Body[i].(*Return); ok {
			return r.X
		}
	}
	return nil
}
