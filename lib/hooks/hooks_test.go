package hooks

import (
	"testing"

	"github.com/minimact/swig-sub001/lib/ast"
	"github.com/minimact/swig-sub001/lib/diag"
	"github.com/minimact/swig-sub001/lib/zone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableSize(t *testing.T) {
	assert.Len(t, Names(), 19)
	assert.True(t, IsHook("useState"))
	assert.False(t, IsHook("useCallback"))
}

func TestDecompose(t *testing.T) {
	effectFn := ast.ArrowBlock(nil)
	compute := ast.Arrow(nil, ast.Bin("*", ast.Id("count"), ast.Num(2)))
	task := &ast.Func{Arrow: true, Async: true, Body: &ast.Block{}}

	tests := []struct {
		name   string
		call   *ast.Call
		target ast.Pattern
		check  func(t *testing.T, h *Hook)
	}{
		{
			name:   "useState",
			call:   ast.CallOf(ast.Id("useState"), ast.Num(0)),
			target: ast.Destructure("count", "setCount"),
			check: func(t *testing.T, h *Hook) {
				assert.Equal(t, State, h.Kind)
				assert.Equal(t, "count", h.Name)
				assert.Equal(t, "setCount", h.Setter)
				assert.Equal(t, ast.Num(0), h.Init)
				assert.Equal(t, zone.Server, h.Zone())
			},
		},
		{
			name:   "useClientState",
			call:   ast.CallOf(ast.Id("useClientState"), ast.Str("")),
			target: ast.Destructure("query", "setQuery"),
			check: func(t *testing.T, h *Hook) {
				assert.Equal(t, zone.Client, h.Zone())
				assert.True(t, h.HasSetter())
			},
		},
		{
			name:   "useMarkdown",
			call:   ast.CallOf(ast.Id("useMarkdown"), ast.Str("# hi")),
			target: ast.Destructure("content", "setContent"),
			check: func(t *testing.T, h *Hook) {
				assert.Equal(t, zone.Markdown, h.Zone())
			},
		},
		{
			name:   "useToggle defaults to false",
			call:   ast.CallOf(ast.Id("useToggle")),
			target: ast.Destructure("open", "toggle"),
			check: func(t *testing.T, h *Hook) {
				assert.Equal(t, ast.Bool(false), h.Init)
				assert.Equal(t, "toggle", h.Setter)
			},
		},
		{
			name:   "useMvcState",
			call:   ast.CallOf(ast.Id("useMvcState"), ast.Str("UserName")),
			target: ast.Destructure("userName", "setUserName"),
			check: func(t *testing.T, h *Hook) {
				assert.Equal(t, "UserName", h.Key)
			},
		},
		{
			name:   "useComputed",
			call:   ast.CallOf(ast.Id("useComputed"), compute, ast.Arr(ast.Id("count"))),
			target: ast.Id("doubled"),
			check: func(t *testing.T, h *Hook) {
				assert.Same(t, compute, h.Callback)
				assert.True(t, h.HasDeps)
				assert.Len(t, h.Deps, 1)
			},
		},
		{
			name: "useEffect without deps",
			call: ast.CallOf(ast.Id("useEffect"), effectFn),
			check: func(t *testing.T, h *Hook) {
				assert.Same(t, effectFn, h.Callback)
				assert.False(t, h.HasDeps)
				assert.Equal(t, zone.Zone(""), h.Zone())
			},
		},
		{
			name: "useEffect with empty deps",
			call: ast.CallOf(ast.Id("useEffect"), effectFn, ast.Arr()),
			check: func(t *testing.T, h *Hook) {
				assert.True(t, h.HasDeps)
				assert.Empty(t, h.Deps)
			},
		},
		{
			name:   "useRef",
			call:   ast.CallOf(ast.Id("useRef"), ast.Null()),
			target: ast.Id("inputRef"),
			check: func(t *testing.T, h *Hook) {
				assert.Equal(t, "inputRef", h.Name)
			},
		},
		{
			name: "useTemplate",
			call: ast.CallOf(ast.Id("useTemplate"), ast.Str("SidebarLayout"), ast.Obj("title", ast.Str("Home"))),
			check: func(t *testing.T, h *Hook) {
				assert.Equal(t, "SidebarLayout", h.Key)
				assert.NotNil(t, h.Options)
			},
		},
		{
			name:   "useValidation",
			call:   ast.CallOf(ast.Id("useValidation"), ast.Str("email"), ast.Obj("required", ast.Bool(true))),
			target: ast.Id("emailField"),
			check: func(t *testing.T, h *Hook) {
				assert.Equal(t, "email", h.Key)
			},
		},
		{
			name:   "useDropdown",
			call:   ast.CallOf(ast.Id("useDropdown"), ast.Str("/api/units")),
			target: ast.Id("unit"),
			check: func(t *testing.T, h *Hook) {
				assert.Equal(t, ast.Str("/api/units"), h.Init)
			},
		},
		{
			name:   "useModal",
			call:   ast.CallOf(ast.Id("useModal")),
			target: ast.Id("modal"),
			check: func(t *testing.T, h *Hook) {
				assert.Equal(t, "modal", h.Name)
			},
		},
		{
			name:   "usePub",
			call:   ast.CallOf(ast.Id("usePub"), ast.Str("cart")),
			target: ast.Id("publish"),
			check: func(t *testing.T, h *Hook) {
				assert.Equal(t, "cart", h.Key)
				assert.Equal(t, zone.Zone(""), h.Zone())
			},
		},
		{
			name:   "useSub",
			call:   ast.CallOf(ast.Id("useSub"), ast.Str("cart"), ast.Arrow([]string{"msg"}, ast.Id("msg"))),
			target: ast.Id("cart"),
			check: func(t *testing.T, h *Hook) {
				assert.NotNil(t, h.Callback)
			},
		},
		{
			name: "useMicroTask",
			call: ast.CallOf(ast.Id("useMicroTask"), effectFn),
			check: func(t *testing.T, h *Hook) {
				assert.Same(t, effectFn, h.Callback)
			},
		},
		{
			name: "useMacroTask",
			call: ast.CallOf(ast.Id("useMacroTask"), effectFn, ast.Num(500)),
			check: func(t *testing.T, h *Hook) {
				assert.Equal(t, ast.Num(500), h.Delay)
			},
		},
		{
			name:   "useServerTask",
			call:   ast.CallOf(ast.Id("useServerTask"), task),
			target: ast.Id("report"),
			check: func(t *testing.T, h *Hook) {
				assert.Same(t, task, h.Callback)
			},
		},
		{
			name:   "usePaginatedServerTask",
			call:   ast.CallOf(ast.Id("usePaginatedServerTask"), task, ast.Obj("pageSize", ast.Num(20))),
			target: ast.Id("users"),
			check: func(t *testing.T, h *Hook) {
				assert.NotNil(t, h.Options)
			},
		},
		{
			name:   "useMvcViewModel",
			call:   ast.CallOf(ast.Id("useMvcViewModel")),
			target: ast.Id("vm"),
			check: func(t *testing.T, h *Hook) {
				assert.Equal(t, zone.Server, h.Zone())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := diag.NewList("Test", "swig.hooks")
			h, recognized := Decompose(tt.call, tt.target, diags)
			require.True(t, recognized)
			require.NotNil(t, h)
			assert.Empty(t, diags.Items())
			tt.check(t, h)
		})
	}
}

func TestDecomposeMalformed(t *testing.T) {
	tests := []struct {
		name   string
		call   *ast.Call
		target ast.Pattern
	}{
		{"state bound to identifier", ast.CallOf(ast.Id("useState"), ast.Num(0)), ast.Id("state")},
		{"state with three elements", ast.CallOf(ast.Id("useState")), ast.Destructure("a", "b", "c")},
		{"effect without function", ast.CallOf(ast.Id("useEffect"), ast.Id("fn")), nil},
		{"effect deps not array", ast.CallOf(ast.Id("useEffect"), ast.ArrowBlock(nil), ast.Id("deps")), nil},
		{"pub without channel", ast.CallOf(ast.Id("usePub")), ast.Id("p")},
		{"template name not literal", ast.CallOf(ast.Id("useTemplate"), ast.Id("name")), nil},
		{"server task options not object", ast.CallOf(ast.Id("useServerTask"), ast.ArrowBlock(nil), ast.Num(1)), ast.Id("t")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := diag.NewList("Test", "swig.hooks")
			h, recognized := Decompose(tt.call, tt.target, diags)
			assert.True(t, recognized)
			assert.Nil(t, h)

			items := diags.Items()
			require.Len(t, items, 1)
			assert.Equal(t, diag.RecognizedButMalformed, items[0].Code)
			assert.Equal(t, diag.Warning, items[0].Severity)
		})
	}
}

func TestDecomposeIgnoresOtherCalls(t *testing.T) {
	diags := diag.NewList("Test", "swig.hooks")
	h, recognized := Decompose(ast.CallOf(ast.Id("fetchData")), ast.Id("x"), diags)
	assert.False(t, recognized)
	assert.Nil(t, h)
	assert.Empty(t, diags.Items())
}
