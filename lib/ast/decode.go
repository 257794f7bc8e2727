package ast

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnsupportedNode is wrapped by decode errors for node types outside the
// vocabulary the compiler understands.
var ErrUnsupportedNode = errors.New("ast: unsupported node type")

// DecodeProgram decodes a Babel/ESTree JSON document (either a File or a
// Program node) into a Program.
//
// Expressions and statements of unknown types decode to Unsupported and
// UnsupportedStmt, so the code generator can degrade them and report them
// per component. Unknown pattern types are errors because they change what
// a component declares.
func DecodeProgram(data []byte) (*Program, error) {
	var root rawNode
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("ast: decode: %w", err)
	}
	d := &decoder{}
	if root.typ() == "File" {
		root = root.child("program")
	}
	if root.typ() != "Program" {
		return nil, fmt.Errorf("ast: expected Program, got %q", root.typ())
	}
	prog := &Program{Loc: root.loc()}
	for _, s := range root.list("body") {
		if st := d.stmt(s); st != nil {
			prog.Body = append(prog.Body, st)
		}
	}
	if d.err != nil {
		return nil, d.err
	}
	return prog, nil
}

// DecodeExpr decodes a single expression node. It is used for fixtures and
// tooling that hold expression snippets.
func DecodeExpr(data []byte) (Expr, error) {
	var root rawNode
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("ast: decode: %w", err)
	}
	d := &decoder{}
	e := d.expr(root)
	return e, d.err
}

type rawNode map[string]json.RawMessage

func (r rawNode) typ() string { return r.str("type") }

func (r rawNode) str(key string) string {
	var s string
	if raw, ok := r[key]; ok {
		_ = json.Unmarshal(raw, &s)
	}
	return s
}

func (r rawNode) boolean(key string) bool {
	var b bool
	if raw, ok := r[key]; ok {
		_ = json.Unmarshal(raw, &b)
	}
	return b
}

func (r rawNode) has(key string) bool {
	raw, ok := r[key]
	return ok && string(raw) != "null"
}

func (r rawNode) child(key string) rawNode {
	var c rawNode
	if raw, ok := r[key]; ok {
		_ = json.Unmarshal(raw, &c)
	}
	return c
}

func (r rawNode) list(key string) []rawNode {
	var cs []rawNode
	if raw, ok := r[key]; ok {
		_ = json.Unmarshal(raw, &cs)
	}
	return cs
}

func (r rawNode) loc() Loc {
	var l struct {
		Start struct {
			Line   int `json:"line"`
			Column int `json:"column"`
		} `json:"start"`
	}
	if raw, ok := r["loc"]; ok {
		_ = json.Unmarshal(raw, &l)
	}
	var offset int
	if raw, ok := r["start"]; ok {
		_ = json.Unmarshal(raw, &offset)
	}
	return Loc{At: Pos{Line: l.Start.Line, Column: l.Start.Column, Offset: offset}}
}

type decoder struct {
	err error
}

func (d *decoder) fail(r rawNode, what string) {
	if d.err == nil {
		at := r.loc().At
		d.err = fmt.Errorf("%w: %s %q at %d:%d", ErrUnsupportedNode, what, r.typ(), at.Line, at.Column)
	}
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

func (d *decoder) stmt(r rawNode) Stmt {
	if r == nil {
		return nil
	}
	loc := r.loc()
	switch r.typ() {
	case "VariableDeclaration":
		return d.varDecl(r)
	case "ExpressionStatement":
		return &ExprStmt{Loc: loc, X: d.expr(r.child("expression"))}
	case "ReturnStatement":
		return &Return{Loc: loc, X: d.optExpr(r, "argument")}
	case "IfStatement":
		return &If{Loc: loc, Test: d.expr(r.child("test")), Then: d.stmt(r.child("consequent")), Else: d.optStmt(r, "alternate")}
	case "BlockStatement":
		return d.block(r)
	case "ForStatement":
		f := &For{Loc: loc, Test: d.optExpr(r, "test"), Update: d.optExpr(r, "update"), Body: d.stmt(r.child("body"))}
		if r.has("init") {
			init := r.child("init")
			if init.typ() == "VariableDeclaration" {
				f.Init = d.varDecl(init)
			} else {
				f.Init = &ExprStmt{Loc: init.loc(), X: d.expr(init)}
			}
		}
		return f
	case "ForOfStatement", "ForInStatement":
		f := &ForOf{Loc: loc, Iter: d.expr(r.child("right")), Body: d.stmt(r.child("body")), In: r.typ() == "ForInStatement"}
		left := r.child("left")
		if left.typ() == "VariableDeclaration" {
			f.Kind = left.str("kind")
			if decls := left.list("declarations"); len(decls) > 0 {
				f.Target = d.pattern(decls[0].child("id"))
			}
		} else {
			f.Target = d.pattern(left)
		}
		return f
	case "WhileStatement":
		return &While{Loc: loc, Test: d.expr(r.child("test")), Body: d.stmt(r.child("body"))}
	case "DoWhileStatement":
		return &While{Loc: loc, Test: d.expr(r.child("test")), Body: d.stmt(r.child("body")), Do: true}
	case "TryStatement":
		t := &Try{Loc: loc, Block: d.block(r.child("block"))}
		if r.has("handler") {
			h := r.child("handler")
			if h.has("param") {
				t.Param = d.pattern(h.child("param"))
			}
			t.Handler = d.block(h.child("body"))
		}
		if r.has("finalizer") {
			t.Finalizer = d.block(r.child("finalizer"))
		}
		return t
	case "ThrowStatement":
		return &Throw{Loc: loc, X: d.expr(r.child("argument"))}
	case "BreakStatement":
		return &Break{Loc: loc}
	case "ContinueStatement":
		return &Continue{Loc: loc}
	case "EmptyStatement":
		return &Empty{Loc: loc}
	case "FunctionDeclaration":
		return &FuncDecl{Loc: loc, Func: d.function(r)}
	case "ImportDeclaration":
		imp := &Import{Loc: loc, Source: r.child("source").str("value")}
		for _, s := range r.list("specifiers") {
			spec := &ImportSpec{Local: s.child("local").str("name")}
			switch s.typ() {
			case "ImportDefaultSpecifier":
				spec.Default = true
				spec.Imported = "default"
			case "ImportNamespaceSpecifier":
				spec.Namespace = true
				spec.Imported = "*"
			default:
				spec.Imported = s.child("imported").str("name")
				if spec.Imported == "" {
					spec.Imported = s.child("imported").str("value")
				}
			}
			imp.Specifiers = append(imp.Specifiers, spec)
		}
		return imp
	case "ExportNamedDeclaration":
		if !r.has("declaration") {
			return &Empty{Loc: loc}
		}
		return &Export{Loc: loc, Decl: d.stmt(r.child("declaration"))}
	case "ExportDefaultDeclaration":
		decl := r.child("declaration")
		switch decl.typ() {
		case "FunctionDeclaration", "VariableDeclaration", "ClassDeclaration":
			return &Export{Loc: loc, Decl: d.stmt(decl), Default: true}
		}
		return &Export{Loc: loc, X: d.expr(decl), Default: true}
	case "TSInterfaceDeclaration", "TSTypeAliasDeclaration", "ClassDeclaration", "ExportAllDeclaration":
		return &Empty{Loc: loc}
	}
	return &UnsupportedStmt{Loc: loc, Kind: r.typ()}
}

func (d *decoder) optStmt(r rawNode, key string) Stmt {
	if !r.has(key) {
		return nil
	}
	return d.stmt(r.child(key))
}

func (d *decoder) block(r rawNode) *Block {
	if r == nil {
		return nil
	}
	b := &Block{Loc: r.loc()}
	for _, s := range r.list("body") {
		if st := d.stmt(s); st != nil {
			b.Body = append(b.Body, st)
		}
	}
	return b
}

func (d *decoder) varDecl(r rawNode) *VarDecl {
	v := &VarDecl{Loc: r.loc(), Kind: r.str("kind")}
	for _, decl := range r.list("declarations") {
		v.Decls = append(v.Decls, &Declarator{
			Loc:    decl.loc(),
			Target: d.pattern(decl.child("id")),
			Init:   d.optExpr(decl, "init"),
		})
	}
	return v
}

func (d *decoder) function(r rawNode) *Func {
	f := &Func{
		Loc:   r.loc(),
		Name:  r.child("id").str("name"),
		Async: r.boolean("async"),
		Arrow: r.typ() == "ArrowFunctionExpression",
	}
	for _, p := range r.list("params") {
		f.Params = append(f.Params, d.param(p))
	}
	body := r.child("body")
	if body.typ() == "BlockStatement" {
		f.Body = d.block(body)
	} else {
		f.ExprBody = d.expr(body)
	}
	return f
}

func (d *decoder) param(r rawNode) *Param {
	p := &Param{Loc: r.loc(), Target: d.pattern(r)}
	target := r
	if r.typ() == "AssignmentPattern" {
		target = r.child("left")
	}
	if target.has("typeAnnotation") {
		p.Type = decodeType(target.child("typeAnnotation"))
	}
	return p
}

// ---------------------------------------------------------------------------
// Patterns
// ---------------------------------------------------------------------------

func (d *decoder) pattern(r rawNode) Pattern {
	loc := r.loc()
	switch r.typ() {
	case "Identifier":
		return &Ident{Loc: loc, Name: r.str("name")}
	case "ArrayPattern":
		p := &ArrayPattern{Loc: loc}
		for _, e := range r.list("elements") {
			if e == nil {
				p.Elements = append(p.Elements, nil)
				continue
			}
			p.Elements = append(p.Elements, d.pattern(e))
		}
		return p
	case "ObjectPattern":
		p := &ObjectPattern{Loc: loc}
		for _, prop := range r.list("properties") {
			if prop.typ() == "RestElement" {
				p.Rest = &Ident{Loc: prop.loc(), Name: prop.child("argument").str("name")}
				continue
			}
			pp := &PatternProp{Loc: prop.loc(), Key: propertyKey(prop.child("key"))}
			value := prop.child("value")
			if value.typ() == "AssignmentPattern" {
				pp.Value = d.pattern(value.child("left"))
				pp.Default = d.expr(value.child("right"))
			} else {
				pp.Value = d.pattern(value)
			}
			p.Props = append(p.Props, pp)
		}
		return p
	case "AssignmentPattern":
		return &AssignPattern{Loc: loc, Target: d.pattern(r.child("left")), Default: d.expr(r.child("right"))}
	case "RestElement":
		return &RestPattern{Loc: loc, Target: d.pattern(r.child("argument"))}
	}
	d.fail(r, "pattern")
	return &Ident{Loc: loc, Name: "_"}
}

func propertyKey(k rawNode) string {
	switch k.typ() {
	case "Identifier":
		return k.str("name")
	case "StringLiteral", "Literal":
		if s := k.str("value"); s != "" {
			return s
		}
	case "NumericLiteral":
		var n float64
		_ = json.Unmarshal(k["value"], &n)
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return k.str("name")
}

// ---------------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------------

func decodeType(r rawNode) *TypeRef {
	if r.typ() == "TSTypeAnnotation" || r.typ() == "TypeAnnotation" {
		r = r.child("typeAnnotation")
	}
	switch r.typ() {
	case "TSStringKeyword", "StringTypeAnnotation":
		return &TypeRef{Name: "string"}
	case "TSNumberKeyword", "NumberTypeAnnotation":
		return &TypeRef{Name: "number"}
	case "TSBooleanKeyword", "BooleanTypeAnnotation":
		return &TypeRef{Name: "boolean"}
	case "TSAnyKeyword", "TSUnknownKeyword", "AnyTypeAnnotation":
		return &TypeRef{Name: "any"}
	case "TSArrayType":
		return &TypeRef{Name: "array", Elem: decodeType(r.child("elementType"))}
	case "TSTypeReference":
		name := r.child("typeName").str("name")
		if name == "Array" {
			params := r.child("typeParameters").list("params")
			if len(params) == 1 {
				return &TypeRef{Name: "array", Elem: decodeType(params[0])}
			}
			return &TypeRef{Name: "array", Elem: &TypeRef{Name: "any"}}
		}
		return &TypeRef{Name: name}
	case "TSTypeLiteral":
		t := &TypeRef{Name: "object"}
		for _, m := range r.list("members") {
			if m.typ() != "TSPropertySignature" {
				continue
			}
			t.Members = append(t.Members, &TypeMember{
				Name:     propertyKey(m.child("key")),
				Type:     decodeType(m.child("typeAnnotation")),
				Optional: m.boolean("optional"),
			})
		}
		return t
	case "TSFunctionType":
		return &TypeRef{Name: "function"}
	}
	return &TypeRef{Name: "any"}
}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

func (d *decoder) optExpr(r rawNode, key string) Expr {
	if !r.has(key) {
		return nil
	}
	return d.expr(r.child(key))
}

func (d *decoder) exprs(rs []rawNode) []Expr {
	out := make([]Expr, 0, len(rs))
	for _, r := range rs {
		if r == nil {
			out = append(out, nil)
			continue
		}
		out = append(out, d.expr(r))
	}
	return out
}

func (d *decoder) expr(r rawNode) Expr {
	if r == nil {
		return nil
	}
	loc := r.loc()
	switch r.typ() {
	case "Identifier":
		return &Ident{Loc: loc, Name: r.str("name")}
	case "StringLiteral":
		return &StringLit{Loc: loc, Value: r.str("value")}
	case "NumericLiteral":
		return d.number(r)
	case "BooleanLiteral":
		return &BoolLit{Loc: loc, Value: r.boolean("value")}
	case "NullLiteral":
		return &NullLit{Loc: loc}
	case "Literal":
		return d.literal(r)
	case "TemplateLiteral":
		t := &TemplateLit{Loc: loc, Exprs: d.exprs(r.list("expressions"))}
		for _, q := range r.list("quasis") {
			v := q.child("value")
			cooked := v.str("cooked")
			if cooked == "" {
				cooked = v.str("raw")
			}
			t.Quasis = append(t.Quasis, cooked)
		}
		return t
	case "ArrayExpression":
		return &ArrayLit{Loc: loc, Elements: d.exprs(r.list("elements"))}
	case "ObjectExpression":
		o := &ObjectLit{Loc: loc}
		for _, p := range r.list("properties") {
			o.Props = append(o.Props, d.property(p))
		}
		return o
	case "MemberExpression", "OptionalMemberExpression":
		m := &Member{Loc: loc, Object: d.expr(r.child("object")), Optional: r.boolean("optional")}
		if r.boolean("computed") {
			m.Index = d.expr(r.child("property"))
		} else {
			m.Property = propertyKey(r.child("property"))
		}
		return m
	case "CallExpression", "OptionalCallExpression":
		return &Call{Loc: loc, Callee: d.expr(r.child("callee")), Args: d.exprs(r.list("arguments")), Optional: r.boolean("optional")}
	case "NewExpression":
		return &New{Loc: loc, Callee: d.expr(r.child("callee")), Args: d.exprs(r.list("arguments"))}
	case "UnaryExpression":
		return &Unary{Loc: loc, Op: r.str("operator"), X: d.expr(r.child("argument"))}
	case "UpdateExpression":
		return &Update{Loc: loc, Op: r.str("operator"), X: d.expr(r.child("argument")), Prefix: r.boolean("prefix")}
	case "BinaryExpression":
		return &Binary{Loc: loc, Op: r.str("operator"), Left: d.expr(r.child("left")), Right: d.expr(r.child("right"))}
	case "LogicalExpression":
		return &Logical{Loc: loc, Op: r.str("operator"), Left: d.expr(r.child("left")), Right: d.expr(r.child("right"))}
	case "ConditionalExpression":
		return &Conditional{Loc: loc, Test: d.expr(r.child("test")), Then: d.expr(r.child("consequent")), Else: d.expr(r.child("alternate"))}
	case "AssignmentExpression":
		return &Assign{Loc: loc, Op: r.str("operator"), Target: d.expr(r.child("left")), Value: d.expr(r.child("right"))}
	case "ArrowFunctionExpression", "FunctionExpression":
		return d.function(r)
	case "SpreadElement":
		return &Spread{Loc: loc, X: d.expr(r.child("argument"))}
	case "AwaitExpression":
		return &Await{Loc: loc, X: d.expr(r.child("argument"))}
	case "ParenthesizedExpression", "TSAsExpression", "TSNonNullExpression", "TSSatisfiesExpression", "TypeCastExpression":
		return d.expr(r.child("expression"))
	case "JSXElement":
		return d.jsxElement(r)
	case "JSXFragment":
		return &JSXFragment{Loc: loc, Children: d.jsxChildren(r.list("children"))}
	case "JSXText":
		return &JSXText{Loc: loc, Value: r.str("value")}
	case "JSXExpressionContainer":
		inner := r.child("expression")
		if inner.typ() == "JSXEmptyExpression" {
			return &JSXExprContainer{Loc: loc}
		}
		return &JSXExprContainer{Loc: loc, X: d.expr(inner)}
	}
	return &Unsupported{Loc: loc, Kind: r.typ()}
}

func (d *decoder) number(r rawNode) Expr {
	var n float64
	_ = json.Unmarshal(r["value"], &n)
	raw := r.child("extra").str("raw")
	if raw == "" {
		raw = r.str("raw")
	}
	return &NumberLit{Loc: r.loc(), Value: n, Raw: raw}
}

// literal decodes the ESTree catch-all Literal node.
func (d *decoder) literal(r rawNode) Expr {
	loc := r.loc()
	raw := r["value"]
	switch {
	case string(raw) == "null" || raw == nil:
		return &NullLit{Loc: loc}
	case string(raw) == "true" || string(raw) == "false":
		return &BoolLit{Loc: loc, Value: string(raw) == "true"}
	case strings.HasPrefix(string(raw), `"`):
		return &StringLit{Loc: loc, Value: r.str("value")}
	}
	return d.number(r)
}

func (d *decoder) property(r rawNode) *Property {
	loc := r.loc()
	if r.typ() == "SpreadElement" || r.typ() == "SpreadProperty" {
		return &Property{Loc: loc, Spread: d.expr(r.child("argument"))}
	}
	p := &Property{Loc: loc, Shorthand: r.boolean("shorthand")}
	if r.boolean("computed") {
		p.Computed = d.expr(r.child("key"))
	} else {
		p.Key = propertyKey(r.child("key"))
	}
	if r.typ() == "ObjectMethod" {
		p.Value = d.function(r)
	} else {
		p.Value = d.expr(r.child("value"))
	}
	return p
}

func (d *decoder) jsxElement(r rawNode) *JSXElement {
	open := r.child("openingElement")
	el := &JSXElement{
		Loc:         r.loc(),
		Name:        jsxName(open.child("name")),
		SelfClosing: open.boolean("selfClosing"),
		Children:    d.jsxChildren(r.list("children")),
	}
	for _, a := range open.list("attributes") {
		if a.typ() == "JSXSpreadAttribute" {
			el.Attrs = append(el.Attrs, &JSXAttr{Loc: a.loc(), Spread: d.expr(a.child("argument"))})
			continue
		}
		attr := &JSXAttr{Loc: a.loc(), Name: jsxName(a.child("name"))}
		if a.has("value") {
			attr.Value = d.expr(a.child("value"))
		}
		el.Attrs = append(el.Attrs, attr)
	}
	return el
}

func (d *decoder) jsxChildren(rs []rawNode) []Expr {
	var out []Expr
	for _, r := range rs {
		if e := d.expr(r); e != nil {
			out = append(out, e)
		}
	}
	return out
}

func jsxName(r rawNode) string {
	switch r.typ() {
	case "JSXIdentifier":
		return r.str("name")
	case "JSXMemberExpression":
		return jsxName(r.child("object")) + "." + jsxName(r.child("property"))
	case "JSXNamespacedName":
		return jsxName(r.child("namespace")) + ":" + jsxName(r.child("name"))
	}
	return r.str("name")
}
