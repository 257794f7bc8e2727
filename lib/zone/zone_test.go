package zone

import (
	"testing"

	"github.com/minimact/swig-sub001/lib/ast"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	m := Map{
		"count":      Server,
		"open":       Client,
		"body":       Markdown,
		"user.email": Client,
	}

	tests := []struct {
		name string
		expr ast.Expr
		want Zone
	}{
		{"nil", nil, Static},
		{"literal", ast.Num(1), Static},
		{"unknown identifier", ast.Id("other"), Static},
		{"server", ast.Id("count"), Server},
		{"client", ast.Id("open"), Client},
		{"markdown", ast.Id("body"), Markdown},
		{"same zone twice", ast.Bin("+", ast.Id("count"), ast.Id("count")), Server},
		{"client and server", ast.Bin("+", ast.Id("count"), ast.Path("open.x")), Hybrid},
		{"server and client", ast.Bin("+", ast.Id("open"), ast.Id("count")), Hybrid},
		{"dotted path entry", ast.Path("user.email"), Client},
		{"static mixed with server", ast.Bin("*", ast.Num(2), ast.Id("count")), Server},
		{"inside call", ast.MethodOf(ast.Id("count"), "toFixed", ast.Num(2)), Server},
		{"inside jsx", ast.El("p", nil, ast.Id("open")), Client},
		{"shadowed by arrow param", ast.Arrow([]string{"count"}, ast.Id("count")), Static},
		{"outer name in arrow body", ast.Arrow([]string{"x"}, ast.Bin("+", ast.Id("x"), ast.Id("count"))), Server},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.expr, m))
		})
	}
}

func TestCombineIsOrderIndependent(t *testing.T) {
	assert.Equal(t, Static, Combine())
	assert.Equal(t, Server, Combine(Server))
	assert.Equal(t, Client, Combine(Client))
	assert.Equal(t, Hybrid, Combine(Client, Server))
	assert.Equal(t, Hybrid, Combine(Server, Client))
	assert.Equal(t, Server, Combine(Static, Server, Static))
	assert.Equal(t, Hybrid, Combine(Server, Server, Markdown))
}

func TestMapNames(t *testing.T) {
	m := Map{"b": Server, "a": Client}
	assert.Equal(t, []string{"a", "b"}, m.Names())
	assert.True(t, m.Has("a"))
	assert.False(t, m.Has("c"))
}
