package render

import (
	"errors"
	"testing"

	"github.com/minimact/swig-sub001/lib/ast"
	"github.com/minimact/swig-sub001/lib/codegen"
	"github.com/minimact/swig-sub001/lib/diag"
	"github.com/minimact/swig-sub001/lib/zone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGenerator(root ast.Expr, handlers map[*ast.JSXAttr]string) *Generator {
	ctx := codegen.NewContext("Demo", diag.NewList("Demo", "swig.render"))
	ctx.Zones["count"] = zone.Server
	ctx.Zones["content"] = zone.Markdown
	return New(ctx, handlers, AnalyzePlugins(root))
}

func TestNode(t *testing.T) {
	tests := []struct {
		name string
		root ast.Expr
		want string
	}{
		{
			name: "text with expression",
			root: ast.El("h1", nil, "Count: ", ast.Id("count")),
			want: `new VElement("h1", new Dictionary<string, string>(), new VNode[] { new VText($"Count: {count}") })`,
		},
		{
			name: "attributes and nesting",
			root: ast.El("div", ast.Attrs(
				ast.A("className", "box"),
				ast.A("data-id", "1"),
				ast.A("aria-label", "x"),
			), "\n  ", ast.El("p", nil, "hi"), "\n"),
			want: `new VElement("div", new Dictionary<string, string> { ["class"] = "box", ["data-id"] = "1", ["aria-label"] = "x" }, ` +
				`new VNode[] { new VElement("p", new Dictionary<string, string>(), new VNode[] { new VText("hi") }) })`,
		},
		{
			name: "label for",
			root: ast.El("label", ast.Attrs(ast.A("htmlFor", "email"))),
			want: `new VElement("label", new Dictionary<string, string> { ["for"] = "email" })`,
		},
		{
			name: "event handler reference",
			root: ast.El("button", ast.Attrs(ast.A("onClick", ast.Id("increment"))), "+"),
			want: `new VElement("button", new Dictionary<string, string> { ["onclick"] = "increment" }, new VNode[] { new VText("+") })`,
		},
		{
			name: "numeric attribute",
			root: ast.El("input", ast.Attrs(ast.A("maxLength", ast.Num(10)))),
			want: `new VElement("input", new Dictionary<string, string> { ["maxLength"] = "10" })`,
		},
		{
			name: "expression attribute",
			root: ast.El("input", ast.Attrs(ast.A("value", ast.Id("count")))),
			want: `new VElement("input", new Dictionary<string, string> { ["value"] = Convert.ToString(count) })`,
		},
		{
			name: "spread attribute",
			root: ast.El("input", ast.Attrs(ast.SpreadAttr(ast.Id("rest")), ast.A("disabled", nil))),
			want: `MinimactHelpers.createElement("input", MinimactHelpers.Merge(rest, new Dictionary<string, object> { ["disabled"] = "true" }))`,
		},
		{
			name: "conditional attribute",
			root: ast.El("div", ast.Attrs(ast.A("className", ast.Cond(ast.Id("active"), ast.Str("on"), ast.Str("off"))))),
			want: `MinimactHelpers.createElement("div", new Dictionary<string, object> { ["class"] = active ? "on" : "off" })`,
		},
		{
			name: "mapped children",
			root: ast.El("ul", nil, ast.MethodOf(ast.Id("todos"), "map", ast.Arrow([]string{"todo"},
				ast.El("li", ast.Attrs(ast.A("key", ast.Path("todo.id"))), ast.Path("todo.text"))))),
			want: `MinimactHelpers.createElement("ul", null, todos.Select(todo => new VElement("li", new Dictionary<string, string>(), ` +
				`new VNode[] { new VText($"{todo.text}") }) { Key = Convert.ToString(todo.id) }).ToList())`,
		},
		{
			name: "ternary branches",
			root: ast.El("div", nil, ast.Cond(ast.Id("isLoggedIn"), ast.El("Dashboard", nil), ast.El("LoginForm", nil))),
			want: `MinimactHelpers.createElement("div", null, MinimactHelpers.ToBool(isLoggedIn) ? (VNode)new VElement("Dashboard", new Dictionary<string, string>()) : ` +
				`new VElement("LoginForm", new Dictionary<string, string>()))`,
		},
		{
			name: "logical and",
			root: ast.El("div", nil, ast.And(ast.Id("show"), ast.El("p", nil, "x"))),
			want: `MinimactHelpers.createElement("div", null, MinimactHelpers.ToBool(show) ? (VNode)new VElement("p", new Dictionary<string, string>(), ` +
				`new VNode[] { new VText("x") }) : null)`,
		},
		{
			name: "ternary with null branch at root",
			root: ast.Cond(ast.Bin(">", ast.Id("count"), ast.Num(0)), ast.El("p", nil, "yes"), ast.Null()),
			want: `count > 0 ? (VNode)new VElement("p", new Dictionary<string, string>(), new VNode[] { new VText("yes") }) : null`,
		},
		{
			name: "fragment",
			root: ast.Frag(ast.El("a", nil), "text"),
			want: `new Fragment(new VElement("a", new Dictionary<string, string>()), new VText("text"))`,
		},
		{
			name: "markdown",
			root: ast.El("div", ast.Attrs(ast.A("markdown", nil)), ast.Id("content")),
			want: `new DivRawHtml(MarkdownHelper.ToHtml(content))`,
		},
		{
			name: "markdown attribute on a non-markdown value",
			root: ast.El("div", ast.Attrs(ast.A("markdown", nil)), ast.Id("count")),
			want: `new VElement("div", new Dictionary<string, string> { ["markdown"] = "true" }, new VNode[] { new VText($"{count}") })`,
		},
		{
			name: "plugin",
			root: ast.El("Plugin", ast.Attrs(ast.A("name", "Clock"), ast.A("state", ast.Id("clock")), ast.A("version", "1.0"))),
			want: `new PluginNode("Clock", clock, "1.0")`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newGenerator(tt.root, nil).Node(tt.root)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInlineHandlerNames(t *testing.T) {
	attr := ast.A("onClick", ast.Arrow(nil, ast.CallOf(ast.Id("setCount"), ast.Num(0))))
	root := ast.El("button", ast.Attrs(attr), "reset")

	got, err := newGenerator(root, map[*ast.JSXAttr]string{attr: "Handle0"}).Node(root)
	require.NoError(t, err)
	assert.Equal(t, `new VElement("button", new Dictionary<string, string> { ["onclick"] = "Handle0" }, new VNode[] { new VText("reset") })`, got)
}

func TestPluginMissingMetadata(t *testing.T) {
	root := ast.El("div", nil, ast.El("Plugin", ast.Attrs(ast.A("state", ast.Id("clock")))))

	_, err := newGenerator(root, nil).Node(root)
	require.Error(t, err)
	assert.True(t, errors.Is(err, diag.ErrStructural))

	var derr *diag.Error
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, "Demo", derr.Component)
}

func TestAnalyzePlugins(t *testing.T) {
	good := ast.El("Plugin", ast.Attrs(ast.A("name", "Chart"), ast.A("state", ast.Id("data"))))
	bad := ast.El("Plugin", ast.Attrs(ast.A("name", ast.Id("dynamicName")), ast.A("state", ast.Id("data"))))
	root := ast.Frag(good, bad)

	usages := AnalyzePlugins(root)
	require.Len(t, usages, 1)
	assert.Equal(t, "Chart", usages[0].Name)
	assert.Same(t, good, usages[0].Element)
	assert.Empty(t, usages[0].Version)
}

func TestNeedsDynamic(t *testing.T) {
	assert.False(t, NeedsDynamic(ast.El("p", nil, ast.Id("x"))))
	assert.True(t, NeedsDynamic(ast.El("p", ast.Attrs(ast.SpreadAttr(ast.Id("p"))))))
	assert.True(t, NeedsDynamic(ast.El("p", ast.Attrs(ast.A("title", ast.And(ast.Id("a"), ast.Str("b")))))))
	assert.False(t, NeedsDynamic(ast.El("p", nil, ast.Cond(ast.Id("a"), ast.Str("x"), ast.Str("y")))))
}
