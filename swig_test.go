package swig

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/minimact/swig-sub001/lib/ast"
	"github.com/minimact/swig-sub001/lib/diag"
	"github.com/minimact/swig-sub001/lib/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/Counter.ast.json")
	require.NoError(t, err)
	return data
}

func TestCompileJSON(t *testing.T) {
	results, err := CompileJSON(context.Background(), loadFixture(t), Options{
		Namespace:   "App.Components",
		GeneratedAt: time.UnixMilli(1700000000000),
		Source:      "testdata/Counter.ast.json",
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	counter := results[0]
	require.NoError(t, counter.Err)
	assert.Equal(t, "Counter", counter.Name)
	assert.Contains(t, counter.Code, "namespace App.Components")
	assert.Contains(t, counter.Code, "public partial class Counter : MinimactComponent")
	assert.Contains(t, counter.Code, "public string label { get; set; } = \"Count\";")
	assert.Contains(t, counter.Code, "private int count = 0;")
	assert.Contains(t, counter.Code, "SetState(nameof(count), count + 1);")

	tpl := counter.Manifest.Templates["div[0].p[0].text[0]"]
	require.NotNil(t, tpl)
	assert.Equal(t, "{0}: {1}", tpl.Template)
	assert.Equal(t, []string{"label", "count"}, tpl.Bindings)
	assert.Equal(t, []int{0, 0, 0}, tpl.Path)
	assert.Contains(t, counter.Manifest.Templates, "div[0].button[1].text[0]")
	assert.Equal(t, int64(1700000000000), counter.Manifest.GeneratedAt)

	decoded, err := manifest.Decode(counter.Encoded, manifest.JSON)
	require.NoError(t, err)
	assert.Equal(t, counter.Manifest.Len(), decoded.Len())

	badge := results[1]
	require.NoError(t, badge.Err)
	assert.Equal(t, "Badge", badge.Name)
	assert.Contains(t, badge.Manifest.Templates, "span[0].text[0]")
	assert.Equal(t, []string{"text"}, badge.Manifest.Templates["span[0].text[0]"].Bindings)
}

func TestCompileIsIdempotent(t *testing.T) {
	opts := Options{GeneratedAt: time.UnixMilli(1700000000000)}
	for _, f := range manifest.Formats {
		opts.Format = f
		first, err := CompileJSON(context.Background(), loadFixture(t), opts)
		require.NoError(t, err)
		second, err := CompileJSON(context.Background(), loadFixture(t), opts)
		require.NoError(t, err)

		for i := range first {
			assert.Equal(t, first[i].Code, second[i].Code)
			assert.Equal(t, first[i].Encoded, second[i].Encoded, "format %s", f)
		}
	}
}

func TestCompileIsolatesStructuralErrors(t *testing.T) {
	prog := &ast.Program{Body: []ast.Stmt{
		ast.Component("Broken", nil,
			ast.Ret(ast.El("div", nil, ast.El("Plugin", ast.Attrs(ast.A("name", "Clock"))))),
		),
		ast.Component("Fine", nil, ast.Ret(ast.El("p", nil, "ok"))),
	}}

	results, err := Compile(context.Background(), prog, Options{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.True(t, IsStructural(results[0].Err))
	assert.True(t, results[0].Failed())
	assert.Empty(t, results[0].Code)
	assert.Nil(t, results[0].Manifest)

	assert.NoError(t, results[1].Err)
	assert.Contains(t, results[1].Code, "class Fine")
}

func TestCompileStrictHooks(t *testing.T) {
	prog := &ast.Program{Body: []ast.Stmt{
		ast.Component("Loose", nil,
			ast.Const(ast.Id("count"), ast.CallOf(ast.Id("useState"), ast.Num(0))),
			ast.Ret(ast.El("div", nil)),
		),
	}}

	results, err := Compile(context.Background(), prog, Options{})
	require.NoError(t, err)
	require.NoError(t, results[0].Err)
	malformed := find(results[0].Diagnostics, diag.RecognizedButMalformed)
	require.NotNil(t, malformed)
	assert.Equal(t, diag.Warning, malformed.Severity)

	results, err = Compile(context.Background(), prog, Options{StrictHooks: true})
	require.NoError(t, err)
	assert.ErrorIs(t, results[0].Err, ErrMalformedHooks)
	assert.Equal(t, diag.Fatal, find(results[0].Diagnostics, diag.RecognizedButMalformed).Severity)
}

func find(diags []diag.Diagnostic, code diag.Code) *diag.Diagnostic {
	for i := range diags {
		if diags[i].Code == code {
			return &diags[i]
		}
	}
	return nil
}

func TestCompileErrors(t *testing.T) {
	ctx := context.Background()

	_, err := CompileJSON(ctx, []byte(`{"type":`), Options{})
	assert.ErrorIs(t, err, ErrInvalidAST)
	assert.True(t, IsInputError(err))

	_, err = CompileJSON(ctx, []byte(`{"type":"Program","body":[]}`), Options{})
	assert.ErrorIs(t, err, ErrNoComponents)

	_, err = Compile(ctx, nil, Options{})
	assert.ErrorIs(t, err, ErrInvalidAST)

	_, err = CompileJSON(ctx, loadFixture(t), Options{Format: "yaml"})
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.False(t, IsInputError(err))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = CompileJSON(cancelled, loadFixture(t), Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompileProgramMatchesJSON(t *testing.T) {
	prog, err := ast.DecodeProgram(loadFixture(t))
	require.NoError(t, err)

	fromAST, err := Compile(context.Background(), prog, Options{})
	require.NoError(t, err)
	fromJSON, err := CompileJSON(context.Background(), loadFixture(t), Options{})
	require.NoError(t, err)

	names := func(rs []Result) []string {
		var out []string
		for _, r := range rs {
			out = append(out, r.Name)
		}
		return out
	}
	if diff := cmp.Diff(names(fromJSON), names(fromAST)); diff != "" {
		t.Errorf("component names mismatch (-json +ast):\n%s", diff)
	}
}

func TestCompileFileFrontendsAgree(t *testing.T) {
	src, err := os.ReadFile("lib/jsx/testdata/Counter.jsx")
	require.NoError(t, err)
	opts := Options{GeneratedAt: time.UnixMilli(1700000000000)}

	fromJSX, err := CompileFile(context.Background(), "Counter.jsx", src, opts)
	require.NoError(t, err)
	fromJSON, err := CompileFile(context.Background(), "Counter.ast.json", loadFixture(t), opts)
	require.NoError(t, err)

	require.Len(t, fromJSX, len(fromJSON))
	for i := range fromJSON {
		assert.Equal(t, fromJSON[i].Code, fromJSX[i].Code)
		assert.Equal(t, string(fromJSON[i].Encoded), string(fromJSX[i].Encoded))
	}
}

func TestCompileFileErrors(t *testing.T) {
	ctx := context.Background()
	_, err := CompileFile(ctx, "App.tsx", []byte("const = ;"), Options{})
	assert.ErrorIs(t, err, ErrSyntax)
	assert.True(t, IsInputError(err))

	_, err = CompileFile(ctx, "App.jsx", []byte("switch (x) {}"), Options{})
	assert.ErrorIs(t, err, ErrNoComponents)

	_, err = CompileFile(ctx, "App.vue", nil, Options{})
	assert.ErrorIs(t, err, ErrInvalidAST)

	assert.True(t, IsSource("src/App.jsx"))
	assert.True(t, IsSource("src/App.ast.json"))
	assert.False(t, IsSource("src/util.js"))
}

func TestCompileFileUnsupportedSyntaxStaysLocal(t *testing.T) {
	src := `
function Good() {
  return <p>ok</p>;
}

function Bad({ mode }) {
  switch (mode) { default: break; }
  return <p>{/ab+/.source} &#123;0&#125;</p>;
}
`
	results, err := CompileFile(context.Background(), "App.jsx", []byte(src), Options{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	good, bad := results[0], results[1]
	require.NoError(t, good.Err)
	assert.Contains(t, good.Code, "class Good")

	require.NoError(t, bad.Err)
	assert.Contains(t, bad.Code, "class Bad")
	assert.Contains(t, bad.Code, "// unsupported: switch_statement")

	var unsupported []string
	for _, d := range bad.Diagnostics {
		if d.Code == diag.UnsupportedExpression {
			unsupported = append(unsupported, d.Message)
		}
	}
	assert.Contains(t, unsupported, "unsupported switch_statement; omitted")
	assert.Contains(t, unsupported, "unsupported regex; emitting null")

	tpl := bad.Manifest.Templates["p[0].text[0]"]
	require.NotNil(t, tpl)
	assert.Equal(t, "{0} {{0}}", tpl.Template)
	assert.Equal(t, []string{"__complex__"}, tpl.Bindings)
}
