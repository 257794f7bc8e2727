package jsx

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/minimact/swig-sub001/lib/ast"
)

var logicalOps = map[string]bool{"&&": true, "||": true, "??": true}

func (c *converter) optExpr(n *sitter.Node) ast.Expr {
	if n == nil {
		return nil
	}
	return c.expr(n)
}

func (c *converter) exprs(ns []*sitter.Node) []ast.Expr {
	out := make([]ast.Expr, 0, len(ns))
	for _, n := range ns {
		out = append(out, c.expr(n))
	}
	return out
}

func (c *converter) expr(n *sitter.Node) ast.Expr {
	if n == nil {
		return nil
	}
	loc := c.loc(n)
	switch n.Type() {
	case "identifier", "property_identifier", "shorthand_property_identifier", "this", "super", "undefined":
		return &ast.Ident{Loc: loc, Name: c.text(n)}
	case "string":
		return &ast.StringLit{Loc: loc, Value: c.stringValue(n)}
	case "number":
		return c.number(n)
	case "true", "false":
		return &ast.BoolLit{Loc: loc, Value: n.Type() == "true"}
	case "null":
		return &ast.NullLit{Loc: loc}
	case "template_string":
		return c.template(n)
	case "array":
		return &ast.ArrayLit{Loc: loc, Elements: c.exprs(c.named(n))}
	case "object":
		o := &ast.ObjectLit{Loc: loc}
		for _, p := range c.named(n) {
			if prop := c.property(p); prop != nil {
				o.Props = append(o.Props, prop)
			}
		}
		return o
	case "member_expression":
		return &ast.Member{
			Loc:      loc,
			Object:   c.expr(field(n, "object")),
			Property: c.text(field(n, "property")),
			Optional: optionalChain(n),
		}
	case "subscript_expression":
		return &ast.Member{
			Loc:      loc,
			Object:   c.expr(field(n, "object")),
			Index:    c.expr(field(n, "index")),
			Optional: optionalChain(n),
		}
	case "call_expression":
		args := field(n, "arguments")
		if args == nil || args.Type() != "arguments" {
			return &ast.Unsupported{Loc: loc, Kind: "tagged_template"}
		}
		return &ast.Call{Loc: loc, Callee: c.expr(field(n, "function")), Args: c.exprs(c.named(args)), Optional: optionalChain(n)}
	case "new_expression":
		return &ast.New{Loc: loc, Callee: c.expr(field(n, "constructor")), Args: c.exprs(c.named(field(n, "arguments")))}
	case "unary_expression":
		return &ast.Unary{Loc: loc, Op: c.text(field(n, "operator")), X: c.expr(field(n, "argument"))}
	case "update_expression":
		op := field(n, "operator")
		return &ast.Update{
			Loc:    loc,
			Op:     c.text(op),
			X:      c.expr(field(n, "argument")),
			Prefix: op != nil && op.StartByte() == n.StartByte(),
		}
	case "binary_expression":
		op := c.text(field(n, "operator"))
		left, right := c.expr(field(n, "left")), c.expr(field(n, "right"))
		if logicalOps[op] {
			return &ast.Logical{Loc: loc, Op: op, Left: left, Right: right}
		}
		return &ast.Binary{Loc: loc, Op: op, Left: left, Right: right}
	case "ternary_expression":
		return &ast.Conditional{
			Loc:  loc,
			Test: c.expr(field(n, "condition")),
			Then: c.expr(field(n, "consequence")),
			Else: c.expr(field(n, "alternative")),
		}
	case "assignment_expression":
		return &ast.Assign{Loc: loc, Op: "=", Target: c.expr(field(n, "left")), Value: c.expr(field(n, "right"))}
	case "augmented_assignment_expression":
		return &ast.Assign{Loc: loc, Op: c.text(field(n, "operator")), Target: c.expr(field(n, "left")), Value: c.expr(field(n, "right"))}
	case "arrow_function", "function", "function_expression", "generator_function":
		return c.function(n)
	case "spread_element":
		return &ast.Spread{Loc: loc, X: c.expr(c.first(n))}
	case "await_expression":
		return &ast.Await{Loc: loc, X: c.expr(c.first(n))}
	case "parenthesized_expression", "non_null_expression":
		return c.expr(c.first(n))
	case "as_expression", "satisfies_expression", "type_assertion":
		return c.expr(c.first(n))
	case "sequence_expression":
		// Only the value of the last operand survives.
		kids := c.named(n)
		if len(kids) == 0 {
			return nil
		}
		return c.expr(kids[len(kids)-1])
	case "jsx_element", "jsx_self_closing_element", "jsx_fragment":
		return c.jsx(n)
	case "jsx_expression":
		inner := c.first(n)
		if inner == nil {
			return &ast.JSXExprContainer{Loc: loc}
		}
		return &ast.JSXExprContainer{Loc: loc, X: c.expr(inner)}
	}
	return &ast.Unsupported{Loc: loc, Kind: n.Type()}
}

func optionalChain(n *sitter.Node) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		if t := n.Child(i).Type(); t == "optional_chain" || t == "?." {
			return true
		}
	}
	return false
}

func (c *converter) number(n *sitter.Node) ast.Expr {
	raw := c.text(n)
	clean := strings.ReplaceAll(raw, "_", "")
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		// Hex, octal and binary literals.
		if i, ierr := strconv.ParseInt(clean, 0, 64); ierr == nil {
			v = float64(i)
		}
	}
	return &ast.NumberLit{Loc: c.loc(n), Value: v, Raw: raw}
}

// stringValue returns the cooked value of a string literal.
func (c *converter) stringValue(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	raw := c.text(n)
	if len(raw) < 2 {
		return raw
	}
	return unescape(raw[1:len(raw)-1], raw[0])
}

// unescape cooks the escape sequences of a string body quoted by quote.
func unescape(s string, quote byte) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var sb strings.Builder
	for len(s) > 0 {
		if strings.HasPrefix(s, "\\\n") {
			s = s[2:]
			continue
		}
		r, _, tail, err := strconv.UnquoteChar(s, quote)
		if err != nil {
			if s[0] != '\\' || len(s) < 2 {
				sb.WriteByte(s[0])
				s = s[1:]
				continue
			}
			if r, n, ok := codePointEscape(s); ok {
				sb.WriteRune(r)
				s = s[n:]
				continue
			}
			// \$, \` and the like stand for their character.
			sb.WriteByte(s[1])
			s = s[2:]
			continue
		}
		sb.WriteRune(r)
		s = tail
	}
	return sb.String()
}

// codePointEscape decodes a leading \u{XXXX} escape.
func codePointEscape(s string) (rune, int, bool) {
	if !strings.HasPrefix(s, `\u{`) {
		return 0, 0, false
	}
	end := strings.IndexByte(s, '}')
	if end < 0 {
		return 0, 0, false
	}
	v, err := strconv.ParseUint(s[3:end], 16, 32)
	if err != nil {
		return 0, 0, false
	}
	return rune(v), end + 1, true
}

// template splits a template string into quasis and substitutions using
// byte ranges, so it does not depend on how the grammar tokenizes the
// literal text.
func (c *converter) template(n *sitter.Node) *ast.TemplateLit {
	t := &ast.TemplateLit{Loc: c.loc(n)}
	start := n.StartByte() + 1
	for _, sub := range c.named(n) {
		if sub.Type() != "template_substitution" {
			continue
		}
		t.Quasis = append(t.Quasis, unescape(string(c.src[start:sub.StartByte()]), '`'))
		t.Exprs = append(t.Exprs, c.expr(c.first(sub)))
		start = sub.EndByte()
	}
	t.Quasis = append(t.Quasis, unescape(string(c.src[start:n.EndByte()-1]), '`'))
	return t
}

func (c *converter) property(n *sitter.Node) *ast.Property {
	loc := c.loc(n)
	switch n.Type() {
	case "spread_element":
		return &ast.Property{Loc: loc, Spread: c.expr(c.first(n))}
	case "shorthand_property_identifier":
		name := c.text(n)
		return &ast.Property{Loc: loc, Key: name, Value: &ast.Ident{Loc: loc, Name: name}, Shorthand: true}
	case "pair":
		p := &ast.Property{Loc: loc, Value: c.expr(field(n, "value"))}
		c.setKey(p, field(n, "key"))
		return p
	case "method_definition":
		p := &ast.Property{Loc: loc, Value: c.function(n)}
		c.setKey(p, field(n, "name"))
		return p
	}
	return nil
}

func (c *converter) setKey(p *ast.Property, key *sitter.Node) {
	if key != nil && key.Type() == "computed_property_name" {
		p.Computed = c.expr(c.first(key))
		return
	}
	p.Key = c.propertyName(key)
}

// propertyName returns the name of a property key.
func (c *converter) propertyName(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	switch n.Type() {
	case "string":
		return c.stringValue(n)
	case "number":
		return ast.FormatNumber(c.number(n).(*ast.NumberLit))
	}
	return c.text(n)
}

func (c *converter) function(n *sitter.Node) *ast.Func {
	f := &ast.Func{
		Loc:   c.loc(n),
		Async: hasToken(n, "async"),
		Arrow: n.Type() == "arrow_function",
	}
	if name := field(n, "name"); name != nil {
		f.Name = c.text(name)
	}
	if p := field(n, "parameter"); p != nil {
		f.Params = []*ast.Param{c.param(p)}
	}
	for _, p := range c.named(field(n, "parameters")) {
		f.Params = append(f.Params, c.param(p))
	}
	body := field(n, "body")
	if body != nil && body.Type() == "statement_block" {
		f.Body = c.block(body)
	} else {
		f.ExprBody = c.optExpr(body)
	}
	return f
}

func (c *converter) param(n *sitter.Node) *ast.Param {
	switch n.Type() {
	case "required_parameter", "optional_parameter":
		p := &ast.Param{Loc: c.loc(n), Target: c.pattern(field(n, "pattern"))}
		if t := field(n, "type"); t != nil {
			p.Type = c.typeRef(t)
		}
		if v := field(n, "value"); v != nil {
			p.Target = &ast.AssignPattern{Loc: p.Loc, Target: p.Target, Default: c.expr(v)}
		}
		return p
	}
	return &ast.Param{Loc: c.loc(n), Target: c.pattern(n)}
}
