// Package jsx parses JSX and TSX source files into the compiler's AST using
// the tree-sitter JavaScript and TSX grammars.
//
// It is the native alternative to feeding Babel JSON through
// ast.DecodeProgram and produces the same node shapes: unknown expressions
// and statements become ast.Unsupported and ast.UnsupportedStmt, while
// unknown binding patterns are errors.
package jsx

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/tliron/commonlog"

	"github.com/minimact/swig-sub001/lib/ast"
)

var log = commonlog.GetLogger("swig.jsx")

// ErrSyntax is wrapped by errors for source that does not parse.
var ErrSyntax = errors.New("jsx: syntax error")

// Dialect selects the grammar.
type Dialect int

const (
	JavaScript Dialect = iota
	TypeScript
)

func (d Dialect) String() string {
	if d == TypeScript {
		return "tsx"
	}
	return "jsx"
}

// DialectFor returns the dialect for a source path.
func DialectFor(path string) (Dialect, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsx", ".js", ".mjs":
		return JavaScript, true
	case ".tsx", ".ts":
		return TypeScript, true
	}
	return 0, false
}

func (d Dialect) language() *sitter.Language {
	if d == TypeScript {
		return tsx.GetLanguage()
	}
	return javascript.GetLanguage()
}

// Parse parses src into a Program.
func Parse(ctx context.Context, src []byte, dialect Dialect) (*ast.Program, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(dialect.language())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("jsx: parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		bad := firstError(root)
		at := bad.StartPoint()
		return nil, fmt.Errorf("%w at %d:%d near %q", ErrSyntax, at.Row+1, at.Column, excerpt(bad.Content(src)))
	}

	c := &converter{src: src}
	prog := &ast.Program{Loc: c.loc(root)}
	for _, n := range c.named(root) {
		if st := c.stmt(n); st != nil {
			prog.Body = append(prog.Body, st)
		}
	}
	if c.err != nil {
		return nil, c.err
	}
	log.Debugf("parsed %d top-level statements (%s)", len(prog.Body), dialect)
	return prog, nil
}

// firstError returns the first ERROR or missing node in document order.
func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.HasError() || c.IsMissing() {
			return firstError(c)
		}
	}
	return n
}

func excerpt(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 32 {
		s = s[:32]
	}
	return s
}

type converter struct {
	src []byte
	err error
}

func (c *converter) loc(n *sitter.Node) ast.Loc {
	p := n.StartPoint()
	return ast.Loc{At: ast.Pos{Line: int(p.Row) + 1, Column: int(p.Column), Offset: int(n.StartByte())}}
}

func (c *converter) text(n *sitter.Node) string {
	return n.Content(c.src)
}

func (c *converter) fail(n *sitter.Node, what string) {
	if c.err == nil {
		p := n.StartPoint()
		c.err = fmt.Errorf("%w: %s %q at %d:%d", ast.ErrUnsupportedNode, what, n.Type(), p.Row+1, p.Column)
	}
}

// named returns the named children of n without comments.
func (c *converter) named(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, n.NamedChildCount())
	for i := 0; i < int(n.NamedChildCount()); i++ {
		ch := n.NamedChild(i)
		if ch.Type() != "comment" {
			out = append(out, ch)
		}
	}
	return out
}

// first returns the first named non-comment child of n.
func (c *converter) first(n *sitter.Node) *sitter.Node {
	if kids := c.named(n); len(kids) > 0 {
		return kids[0]
	}
	return nil
}

// hasToken reports whether n has an anonymous child spelled tok.
func hasToken(n *sitter.Node, tok string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		ch := n.Child(i)
		if !ch.IsNamed() && ch.Type() == tok {
			return true
		}
	}
	return false
}

func field(n *sitter.Node, name string) *sitter.Node {
	if n == nil {
		return nil
	}
	return n.ChildByFieldName(name)
}
