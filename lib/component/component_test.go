package component

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/minimact/swig-sub001/lib/ast"
	"github.com/minimact/swig-sub001/lib/codegen"
	"github.com/minimact/swig-sub001/lib/diag"
	"github.com/minimact/swig-sub001/lib/hooks"
	"github.com/minimact/swig-sub001/lib/zone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counter() *ast.FuncDecl {
	params := []*ast.Param{{Target: &ast.ObjectPattern{Props: []*ast.PatternProp{
		{Key: "initial", Value: ast.Id("initial"), Default: ast.Num(0)},
		{Key: "label", Value: ast.Id("label")},
	}}}}
	return ast.Component("Counter", params,
		ast.Const(ast.Destructure("count", "setCount"), ast.CallOf(ast.Id("useState"), ast.Id("initial"))),
		ast.Const(ast.Id("doubled"), ast.Bin("*", ast.Id("count"), ast.Num(2))),
		ast.Const(ast.Id("reset"), ast.Arrow(nil, ast.CallOf(ast.Id("setCount"), ast.Num(0)))),
		ast.Do(ast.CallOf(ast.Id("useEffect"), ast.ArrowBlock(nil), ast.Arr(ast.Id("count")))),
		ast.Ret(ast.El("div", nil,
			ast.El("span", nil, ast.Id("label")),
			ast.El("p", nil, "Count: ", ast.Id("count")),
			ast.El("button", ast.Attrs(ast.A("onClick", ast.Arrow(nil,
				ast.CallOf(ast.Id("setCount"), ast.Bin("+", ast.Id("count"), ast.Num(1)))))), "+"),
		)),
	)
}

func assemble(t *testing.T, decl *ast.FuncDecl, imports []*ast.Import, opts Options) *Component {
	t.Helper()
	c, err := Assemble(context.Background(), "", decl.Func, imports, opts)
	require.NoError(t, err)
	return c
}

func TestAssemble(t *testing.T) {
	c := assemble(t, counter(), nil, Options{})

	assert.Equal(t, "Counter", c.Name)
	assert.Empty(t, c.PropsBag)
	require.Len(t, c.Props, 2)
	assert.Equal(t, &Prop{Name: "initial", Type: TypeNumber, Explicit: true, Default: ast.Num(0)}, c.Props[0])
	assert.Equal(t, &Prop{Name: "label", Type: TypeAny}, c.Props[1])

	require.Len(t, c.Hooks, 2)
	assert.Equal(t, hooks.State, c.Hooks[0].Kind)
	assert.Equal(t, hooks.Effect, c.Hooks[1].Kind)

	require.Len(t, c.Locals, 1)
	assert.Equal(t, "doubled", c.Locals[0].Name)
	assert.False(t, c.Locals[0].ClientComputed)

	require.Len(t, c.Methods, 2)
	assert.Equal(t, "reset", c.Methods[0].Name)
	assert.False(t, c.Methods[0].Inline)
	assert.Equal(t, "Handle0", c.Methods[1].Name)
	assert.True(t, c.Methods[1].Inline)
	assert.Len(t, c.Handlers(), 1)

	require.Len(t, c.Body, 1)
	decl, ok := c.Body[0].(*ast.VarDecl)
	require.True(t, ok)
	assert.Equal(t, "doubled", decl.Decls[0].Target.(*ast.Ident).Name)

	_, ok = c.Render.(*ast.JSXElement)
	assert.True(t, ok)

	want := zone.Map{"initial": zone.Server, "label": zone.Server, "count": zone.Server}
	if diff := cmp.Diff(want, c.StateTypes); diff != "" {
		t.Errorf("StateTypes mismatch (-want +got):\n%s", diff)
	}

	var keys []string
	for _, tpl := range c.Templates.Text {
		keys = append(keys, tpl.Key)
	}
	assert.Contains(t, keys, "div[0].span[0].text[0]")
	assert.Contains(t, keys, "div[0].p[1].text[0]")
	assert.False(t, c.Failed())
}

func TestContext(t *testing.T) {
	c := assemble(t, counter(), nil, Options{EventParams: []string{"ev"}})
	ctx := c.Context()

	assert.Equal(t, codegen.Setter{State: "count"}, ctx.Setters["setCount"])
	assert.Equal(t, zone.Server, ctx.Zones["count"])
	assert.True(t, ctx.IsEventParam("ev"))
	assert.False(t, ctx.IsEventParam("e"))

	w := codegen.NewWriter(0)
	codegen.Handler(w, ctx, "public", c.Methods[1].Name, c.Methods[1].Func)
	assert.Equal(t, "public void Handle0()\n{\n    SetState(nameof(count), count + 1);\n}\n", w.String())
}

func TestToggleSetter(t *testing.T) {
	decl := ast.Component("Panel", nil,
		ast.Const(ast.Destructure("open", "toggle"), ast.CallOf(ast.Id("useToggle"))),
		ast.Ret(ast.El("div", nil)),
	)
	c := assemble(t, decl, nil, Options{})
	assert.Equal(t, codegen.Setter{State: "open", Toggle: true}, c.Context().Setters["toggle"])
}

func TestPropsBag(t *testing.T) {
	bag := ast.Id("props")
	decl := ast.Component("Card", []*ast.Param{{Target: bag}},
		ast.Ret(ast.El("div", ast.Attrs(
			ast.A("className", ast.Cond(ast.Path("props.active"), ast.Str("on"), ast.Str("off"))),
		),
			ast.MethodOf(ast.Path("props.items"), "map", ast.Arrow([]string{"i"}, ast.El("li", nil, ast.Id("i")))),
			ast.Path("props.title.name"),
		)),
	)
	c := assemble(t, decl, nil, Options{})

	assert.Equal(t, "props", c.PropsBag)
	want := []*Prop{
		{Name: "active", Type: TypeBoolean},
		{Name: "items", Type: TypeArray},
		{Name: "title", Type: TypeObject},
	}
	if diff := cmp.Diff(want, c.Props); diff != "" {
		t.Errorf("props mismatch (-want +got):\n%s", diff)
	}

	w := codegen.NewWriter(0)
	codegen.Stmts(w, c.Context(), []ast.Stmt{ast.Do(ast.Path("props.title"))})
	assert.Equal(t, "this.title;\n", w.String())
}

func TestPropTypeInference(t *testing.T) {
	tests := []struct {
		name string
		body ast.Stmt
		want string
	}{
		{"if test", &ast.If{Test: ast.Id("p"), Then: &ast.Block{}}, TypeBoolean},
		{"negation", ast.Do(ast.Not(ast.Id("p"))), TypeBoolean},
		{"logical and", ast.Do(ast.And(ast.Id("p"), ast.Str("x"))), TypeBoolean},
		{"arithmetic", ast.Do(ast.Bin("*", ast.Id("p"), ast.Num(2))), TypeNumber},
		{"comparison", ast.Do(ast.Bin(">", ast.Id("p"), ast.Id("q"))), TypeNumber},
		{"plus number", ast.Do(ast.Bin("+", ast.Id("p"), ast.Num(1))), TypeNumber},
		{"plus string", ast.Do(ast.Bin("+", ast.Id("p"), ast.Str("!"))), TypeAny},
		{"increment", ast.Do(&ast.Update{Op: "++", X: ast.Id("p")}), TypeNumber},
		{"array method", ast.Do(ast.MethodOf(ast.Id("p"), "filter", ast.Id("f"))), TypeArray},
		{"length", ast.Do(ast.Path("p.length")), TypeArray},
		{"property", ast.Do(ast.Path("p.name")), TypeObject},
		{"unused", ast.Do(ast.Id("q")), TypeAny},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decl := ast.Component("X", ast.PropsParam("p"), tt.body, ast.Ret(ast.El("div", nil)))
			c := assemble(t, decl, nil, Options{})
			require.Len(t, c.Props, 1)
			assert.Equal(t, tt.want, c.Props[0].Type)
		})
	}
}

func TestPropTypeFirstDecisiveWins(t *testing.T) {
	decl := ast.Component("X", ast.PropsParam("p"),
		ast.Do(ast.Path("p.name")),
		&ast.If{Test: ast.Id("p"), Then: &ast.Block{}},
		ast.Ret(ast.El("div", nil)),
	)
	c := assemble(t, decl, nil, Options{})
	assert.Equal(t, TypeBoolean, c.Props[0].Type)
}

func TestExplicitAnnotation(t *testing.T) {
	params := ast.PropsParam("title", "count")
	params[0].Type = &ast.TypeRef{Members: []*ast.TypeMember{
		{Name: "title", Type: &ast.TypeRef{Name: "string"}},
		{Name: "count", Type: &ast.TypeRef{Name: "number"}},
	}}
	decl := ast.Component("X", params,
		&ast.If{Test: ast.Id("count"), Then: &ast.Block{}},
		ast.Ret(ast.El("h1", nil, ast.Path("title.length"))),
	)
	c := assemble(t, decl, nil, Options{})
	assert.Equal(t, &Prop{Name: "title", Type: TypeString, Explicit: true}, c.Props[0])
	assert.Equal(t, &Prop{Name: "count", Type: TypeNumber, Explicit: true}, c.Props[1])
	assert.True(t, c.Context().Strings["title"])
}

func TestClientComputed(t *testing.T) {
	imports := []*ast.Import{
		{Source: "react", Specifiers: []*ast.ImportSpec{{Local: "useMemo", Imported: "useMemo"}}},
		{Source: "date-fns", Specifiers: []*ast.ImportSpec{{Local: "format", Imported: "format"}}},
	}
	decl := ast.Component("Clock", ast.PropsParam("date"),
		ast.Const(ast.Id("when"), ast.CallOf(ast.Id("format"), ast.Id("date"), ast.Str("yyyy"))),
		ast.Const(ast.Id("label"), ast.Bin("+", ast.Str("Year "), ast.Id("when"))),
		ast.Const(ast.Id("plain"), ast.Str("x")),
		ast.Ret(ast.El("p", nil, ast.Id("label"))),
	)
	c := assemble(t, decl, imports, Options{})

	assert.Equal(t, map[string]string{"format": "date-fns"}, c.External)
	require.Len(t, c.Locals, 3)
	assert.True(t, c.Locals[0].ClientComputed)
	assert.True(t, c.Locals[1].ClientComputed)
	assert.False(t, c.Locals[2].ClientComputed)
	assert.Equal(t, zone.Client, c.StateTypes["when"])
	assert.Equal(t, zone.Client, c.StateTypes["label"])
	require.Len(t, c.Body, 1)
	assert.True(t, c.Context().Strings["plain"])
}

func TestMalformedHook(t *testing.T) {
	decl := ast.Component("Broken", nil,
		ast.Const(ast.Id("count"), ast.CallOf(ast.Id("useState"), ast.Num(0))),
		ast.Ret(ast.El("div", nil)),
	)

	c := assemble(t, decl, nil, Options{})
	assert.Empty(t, c.Hooks)
	assert.Empty(t, c.Locals)
	assert.Equal(t, 1, c.Diags.Count(diag.Warning))
	assert.False(t, c.Failed())

	c = assemble(t, decl, nil, Options{StrictHooks: true})
	assert.True(t, c.Failed())
}

func TestTemplateBase(t *testing.T) {
	decl := ast.Component("Page", nil,
		ast.Do(ast.CallOf(ast.Id("useTemplate"), ast.Str("SidebarLayout"))),
		ast.Ret(ast.El("main", nil)),
	)
	c := assemble(t, decl, nil, Options{})
	assert.Equal(t, "SidebarLayout", c.TemplateBase())
	assert.Len(t, c.HooksOf(hooks.Template, hooks.State), 1)
}

func TestAssembleDoesNotMutate(t *testing.T) {
	decl := counter()
	before := ast.Source(ast.ReturnedExpr(decl.Func))
	assemble(t, decl, nil, Options{})
	assert.Equal(t, before, ast.Source(ast.ReturnedExpr(decl.Func)))
	assert.Len(t, decl.Func.Body.Body, 5)
}

func TestAssembleCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Assemble(ctx, "", counter().Func, nil, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFind(t *testing.T) {
	counterDecl := counter()
	card := ast.Arrow(nil, ast.El("div", nil))
	app := &ast.Func{Name: "App", Body: &ast.Block{}}
	prog := &ast.Program{Body: []ast.Stmt{
		&ast.Import{Source: "react"},
		counterDecl,
		ast.Const(ast.Id("helper"), ast.Arrow(nil, ast.Num(1))),
		&ast.Export{Decl: ast.Const(ast.Id("Card"), card)},
		&ast.Export{X: app, Default: true},
		ast.Const(ast.Id("Value"), ast.Num(3)),
	}}

	found := Find(prog)
	require.Len(t, found, 3)
	assert.Equal(t, "Counter", found[0].Name)
	assert.Same(t, counterDecl.Func, found[0].Func)
	assert.Equal(t, "Card", found[1].Name)
	assert.Same(t, card, found[1].Func)
	assert.Equal(t, "App", found[2].Name)
	assert.Len(t, Imports(prog), 1)
}
