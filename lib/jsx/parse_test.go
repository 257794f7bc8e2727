package jsx

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/minimact/swig-sub001/lib/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var astOpts = []cmp.Option{
	cmpopts.IgnoreTypes(ast.Loc{}),
	cmpopts.EquateEmpty(),
}

func parse(t *testing.T, src string, d Dialect) *ast.Program {
	t.Helper()
	prog, err := Parse(context.Background(), []byte(src), d)
	require.NoError(t, err)
	return prog
}

// initOf parses `const v = <src>;` and returns the initializer.
func initOf(t *testing.T, src string, d Dialect) ast.Expr {
	t.Helper()
	prog := parse(t, "const v = "+src+";", d)
	require.Len(t, prog.Body, 1)
	decl, ok := prog.Body[0].(*ast.VarDecl)
	require.True(t, ok, "got %T", prog.Body[0])
	require.Len(t, decl.Decls, 1)
	return decl.Decls[0].Init
}

func TestParseMatchesBabel(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("testdata", "Counter.jsx"))
	require.NoError(t, err)
	got, err := Parse(context.Background(), src, JavaScript)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", "Counter.ast.json"))
	require.NoError(t, err)
	want, err := ast.DecodeProgram(data)
	require.NoError(t, err)

	dropBlankText(want)
	dropBlankText(got)
	if diff := cmp.Diff(want, got, astOpts...); diff != "" {
		t.Errorf("tree-sitter and Babel trees differ (-babel +jsx):\n%s", diff)
	}
}

// dropBlankText removes whitespace-only text children, which render nothing
// and which the two parsers report differently.
func dropBlankText(root ast.Node) {
	blank := func(children []ast.Expr) []ast.Expr {
		out := children[:0]
		for _, c := range children {
			if t, ok := c.(*ast.JSXText); ok && ast.CleanJSXText(t.Value) == "" {
				continue
			}
			out = append(out, c)
		}
		return out
	}
	ast.Inspect(root, func(n ast.Node) bool {
		switch x := n.(type) {
		case *ast.JSXElement:
			x.Children = blank(x.Children)
		case *ast.JSXFragment:
			x.Children = blank(x.Children)
		}
		return true
	})
}

func TestParseExpressions(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want ast.Expr
	}{
		{"optional member", "user?.name", ast.Path("user?.name")},
		{"index", "items[i]", ast.Index(ast.Id("items"), ast.Id("i"))},
		{"nullish", "a ?? b", &ast.Logical{Op: "??", Left: ast.Id("a"), Right: ast.Id("b")}},
		{"and", "ok && done", ast.And(ast.Id("ok"), ast.Id("done"))},
		{"not", "!done", ast.Not(ast.Id("done"))},
		{"postfix", "i++", &ast.Update{Op: "++", X: ast.Id("i")}},
		{"prefix", "--i", &ast.Update{Op: "--", X: ast.Id("i"), Prefix: true}},
		{"compound assign", "x += y", &ast.Assign{Op: "+=", Target: ast.Id("x"), Value: ast.Id("y")}},
		{"ternary", "a ? b : c", ast.Cond(ast.Id("a"), ast.Id("b"), ast.Id("c"))},
		{"template", "`Hi ${name}!`", ast.Tpl("Hi ", ast.Id("name"), "!")},
		{"template escapes", "`a\\`b\\${c}`", ast.Tpl("a`b${c}")},
		{"double quoted", `"say \"hi\"\n"`, ast.Str("say \"hi\"\n")},
		{"single quoted", `'it\'s'`, ast.Str("it's")},
		{"code point", `"\u{1F600}"`, ast.Str("\U0001F600")},
		{"hex", "0x1F", &ast.NumberLit{Value: 31, Raw: "0x1F"}},
		{"float", "1.5", &ast.NumberLit{Value: 1.5, Raw: "1.5"}},
		{"null", "null", ast.Null()},
		{"true", "true", ast.Bool(true)},
		{"array", "[a, ...rest]", ast.Arr(ast.Id("a"), &ast.Spread{X: ast.Id("rest")})},
		{"object", "{a, b: 1, ...rest, [k]: v}", &ast.ObjectLit{Props: []*ast.Property{
			{Key: "a", Value: ast.Id("a"), Shorthand: true},
			{Key: "b", Value: &ast.NumberLit{Value: 1, Raw: "1"}},
			{Spread: ast.Id("rest")},
			{Computed: ast.Id("k"), Value: ast.Id("v")},
		}}},
		{"new", "new Date(ts)", &ast.New{Callee: ast.Id("Date"), Args: []ast.Expr{ast.Id("ts")}}},
		{"method call", "items.filter(f)", ast.MethodOf(ast.Id("items"), "filter", ast.Id("f"))},
		{"optional call", "cb?.()", &ast.Call{Callee: ast.Id("cb"), Optional: true}},
		{"sequence", "(a, b)", ast.Id("b")},
		{"arrow single param", "x => x * 2", &ast.Func{
			Arrow:    true,
			Params:   ast.Params("x"),
			ExprBody: ast.Bin("*", ast.Id("x"), &ast.NumberLit{Value: 2, Raw: "2"}),
		}},
		{"async arrow", "async () => { await load(); }", &ast.Func{
			Arrow: true,
			Async: true,
			Body:  &ast.Block{Body: []ast.Stmt{ast.Do(&ast.Await{X: ast.CallOf(ast.Id("load"))})}},
		}},
		{"typeof", "typeof x", &ast.Unary{Op: "typeof", X: ast.Id("x")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := initOf(t, tt.src, JavaScript)
			if diff := cmp.Diff(tt.want, got, astOpts...); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.src, diff)
			}
		})
	}
}

func TestParseJSX(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want ast.Expr
	}{
		{
			"self closing with attributes",
			`<input disabled value={v} {...rest} />`,
			&ast.JSXElement{Name: "input", SelfClosing: true, Attrs: []*ast.JSXAttr{
				{Name: "disabled"},
				{Name: "value", Value: ast.X(ast.Id("v"))},
				{Spread: ast.Id("rest")},
			}},
		},
		{
			"fragment",
			`<>a{b}</>`,
			ast.Frag("a", ast.Id("b")),
		},
		{
			"entities and spacing",
			`<p>Total: {n} &amp; more</p>`,
			&ast.JSXElement{Name: "p", Children: []ast.Expr{
				&ast.JSXText{Value: "Total: "},
				ast.X(ast.Id("n")),
				&ast.JSXText{Value: " & more"},
			}},
		},
		{
			"member tag",
			`<Layout.Header title="Home" />`,
			&ast.JSXElement{Name: "Layout.Header", SelfClosing: true, Attrs: []*ast.JSXAttr{
				{Name: "title", Value: ast.Str("Home")},
			}},
		},
		{
			"comment child",
			`<div>{/* note */}</div>`,
			&ast.JSXElement{Name: "div", Children: []ast.Expr{&ast.JSXExprContainer{}}},
		},
		{
			"map",
			`<ul>{items.map(i => <li key={i.id}>{i.text}</li>)}</ul>`,
			&ast.JSXElement{Name: "ul", Children: []ast.Expr{
				ast.X(ast.MethodOf(ast.Id("items"), "map", ast.Arrow([]string{"i"},
					&ast.JSXElement{Name: "li",
						Attrs:    []*ast.JSXAttr{ast.A("key", ast.Path("i.id"))},
						Children: []ast.Expr{ast.X(ast.Path("i.text"))},
					}))),
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := initOf(t, tt.src, JavaScript)
			if diff := cmp.Diff(tt.want, got, astOpts...); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.src, diff)
			}
		})
	}
}

func TestParseStatements(t *testing.T) {
	prog := parse(t, `
import React, { useState as useLocal } from "react";
import * as fmt from "date-fns";

export default function App() {
  let total = 0;
  for (const item of items) {
    if (item.done) continue;
    total += item.cost;
  }
  try {
    risky();
  } catch (err) {
    throw err;
  } finally {
    done();
  }
  return <main />;
}
`, JavaScript)
	require.Len(t, prog.Body, 3)

	imp := prog.Body[0].(*ast.Import)
	assert.Equal(t, "react", imp.Source)
	assert.Equal(t, []*ast.ImportSpec{
		{Local: "React", Imported: "default", Default: true},
		{Local: "useLocal", Imported: "useState"},
	}, imp.Specifiers)

	ns := prog.Body[1].(*ast.Import)
	assert.Equal(t, []*ast.ImportSpec{{Local: "fmt", Imported: "*", Namespace: true}}, ns.Specifiers)

	exp := prog.Body[2].(*ast.Export)
	assert.True(t, exp.Default)
	var fn *ast.Func
	if exp.Decl != nil {
		fn = exp.Decl.(*ast.FuncDecl).Func
	} else {
		fn = exp.X.(*ast.Func)
	}
	assert.Equal(t, "App", fn.Name)
	require.Len(t, fn.Body.Body, 4)

	assert.Equal(t, "let", fn.Body.Body[0].(*ast.VarDecl).Kind)

	loop := fn.Body.Body[1].(*ast.ForOf)
	assert.False(t, loop.In)
	assert.Equal(t, "const", loop.Kind)
	assert.Equal(t, ast.Id("item").Name, loop.Target.(*ast.Ident).Name)

	try := fn.Body.Body[2].(*ast.Try)
	assert.Equal(t, "err", try.Param.(*ast.Ident).Name)
	assert.NotNil(t, try.Handler)
	assert.NotNil(t, try.Finalizer)

	ret := fn.Body.Body[3].(*ast.Return)
	assert.Equal(t, "main", ret.X.(*ast.JSXElement).Name)
}

func TestParseTSX(t *testing.T) {
	prog := parse(t, `
interface Props { title: string }

export function Card({ title, count = 0 }: { title: string; count?: number; tags: string[] }) {
  const label = title as string;
  return <h1>{label}</h1>;
}
`, TypeScript)
	require.Len(t, prog.Body, 2)
	assert.IsType(t, &ast.Empty{}, prog.Body[0])

	fn := prog.Body[1].(*ast.Export).Decl.(*ast.FuncDecl).Func
	require.Len(t, fn.Params, 1)
	param := fn.Params[0]

	want := &ast.TypeRef{Name: "object", Members: []*ast.TypeMember{
		{Name: "title", Type: &ast.TypeRef{Name: "string"}},
		{Name: "count", Type: &ast.TypeRef{Name: "number"}, Optional: true},
		{Name: "tags", Type: &ast.TypeRef{Name: "array", Elem: &ast.TypeRef{Name: "string"}}},
	}}
	if diff := cmp.Diff(want, param.Type); diff != "" {
		t.Errorf("param type mismatch (-want +got):\n%s", diff)
	}

	pattern := param.Target.(*ast.ObjectPattern)
	require.Len(t, pattern.Props, 2)
	assert.Equal(t, "count", pattern.Props[1].Key)
	assert.NotNil(t, pattern.Props[1].Default)

	decl := fn.Body.Body[0].(*ast.VarDecl)
	assert.Equal(t, ast.Id("title").Name, decl.Decls[0].Init.(*ast.Ident).Name)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(context.Background(), []byte("const = ;"), JavaScript)
	assert.ErrorIs(t, err, ErrSyntax)

	_, err = Parse(context.Background(), []byte("const [a.b] = x;"), JavaScript)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ast.ErrUnsupportedNode) || errors.Is(err, ErrSyntax), "got %v", err)
}

func TestParseUnsupported(t *testing.T) {
	prog := parse(t, `
switch (x) { case 1: break; }
do { step(); } while (more);
const re = /ab+/;
const tagged = css`+"`a`"+`;
`, JavaScript)
	require.Len(t, prog.Body, 4)

	sw := prog.Body[0].(*ast.UnsupportedStmt)
	assert.Equal(t, "switch_statement", sw.Kind)
	assert.Equal(t, 2, sw.Position().Line)

	loop := prog.Body[1].(*ast.While)
	assert.True(t, loop.Do)

	re := prog.Body[2].(*ast.VarDecl).Decls[0].Init
	assert.Equal(t, "regex", re.(*ast.Unsupported).Kind)

	tagged := prog.Body[3].(*ast.VarDecl).Decls[0].Init
	assert.IsType(t, &ast.Unsupported{}, tagged)
}

func TestDialectFor(t *testing.T) {
	for path, want := range map[string]Dialect{
		"src/App.jsx": JavaScript,
		"src/App.js":  JavaScript,
		"src/App.tsx": TypeScript,
		"src/util.TS": TypeScript,
	} {
		got, ok := DialectFor(path)
		assert.True(t, ok, path)
		assert.Equal(t, want, got, path)
	}
	_, ok := DialectFor("App.ast.json")
	assert.False(t, ok)
}
