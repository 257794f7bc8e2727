package jsx

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/minimact/swig-sub001/lib/ast"
)

func (c *converter) stmt(n *sitter.Node) ast.Stmt {
	if n == nil {
		return nil
	}
	loc := c.loc(n)
	switch n.Type() {
	case "lexical_declaration", "variable_declaration":
		return c.varDecl(n)
	case "expression_statement":
		return &ast.ExprStmt{Loc: loc, X: c.expr(c.first(n))}
	case "return_statement":
		return &ast.Return{Loc: loc, X: c.optExpr(c.first(n))}
	case "if_statement":
		s := &ast.If{Loc: loc, Test: c.expr(field(n, "condition")), Then: c.stmt(field(n, "consequence"))}
		if alt := field(n, "alternative"); alt != nil {
			if alt.Type() == "else_clause" {
				alt = c.first(alt)
			}
			s.Else = c.stmt(alt)
		}
		return s
	case "statement_block":
		return c.block(n)
	case "for_statement":
		f := &ast.For{Loc: loc, Body: c.stmt(field(n, "body"))}
		if init := field(n, "initializer"); init != nil && init.Type() != "empty_statement" {
			if init.Type() == "lexical_declaration" || init.Type() == "variable_declaration" {
				f.Init = c.varDecl(init)
			} else {
				f.Init = &ast.ExprStmt{Loc: c.loc(init), X: c.expr(unwrapStatement(c, init))}
			}
		}
		if cond := field(n, "condition"); cond != nil && cond.Type() != "empty_statement" {
			f.Test = c.expr(unwrapStatement(c, cond))
		}
		f.Update = c.optExpr(field(n, "increment"))
		return f
	case "for_in_statement":
		f := &ast.ForOf{
			Loc:  loc,
			Iter: c.expr(field(n, "right")),
			Body: c.stmt(field(n, "body")),
			In:   !hasToken(n, "of"),
		}
		if kind := field(n, "kind"); kind != nil {
			f.Kind = c.text(kind)
		}
		f.Target = c.pattern(field(n, "left"))
		return f
	case "while_statement":
		return &ast.While{Loc: loc, Test: c.expr(field(n, "condition")), Body: c.stmt(field(n, "body"))}
	case "do_statement":
		return &ast.While{Loc: loc, Test: c.expr(field(n, "condition")), Body: c.stmt(field(n, "body")), Do: true}
	case "try_statement":
		t := &ast.Try{Loc: loc, Block: c.block(field(n, "body"))}
		if h := field(n, "handler"); h != nil {
			if p := field(h, "parameter"); p != nil {
				t.Param = c.pattern(p)
			}
			t.Handler = c.block(field(h, "body"))
		}
		if f := field(n, "finalizer"); f != nil {
			t.Finalizer = c.block(field(f, "body"))
		}
		return t
	case "throw_statement":
		return &ast.Throw{Loc: loc, X: c.expr(c.first(n))}
	case "break_statement":
		return &ast.Break{Loc: loc}
	case "continue_statement":
		return &ast.Continue{Loc: loc}
	case "empty_statement":
		return &ast.Empty{Loc: loc}
	case "function_declaration", "generator_function_declaration":
		return &ast.FuncDecl{Loc: loc, Func: c.function(n)}
	case "import_statement":
		return c.importDecl(n)
	case "export_statement":
		return c.export(n)
	case "type_alias_declaration", "interface_declaration", "class_declaration",
		"enum_declaration", "ambient_declaration", "hash_bang_line":
		return &ast.Empty{Loc: loc}
	}
	return &ast.UnsupportedStmt{Loc: loc, Kind: n.Type()}
}

// unwrapStatement returns the expression of an expression statement, which
// older grammars use for the parts of a for header.
func unwrapStatement(c *converter, n *sitter.Node) *sitter.Node {
	if n.Type() == "expression_statement" {
		return c.first(n)
	}
	return n
}

func (c *converter) block(n *sitter.Node) *ast.Block {
	if n == nil {
		return nil
	}
	b := &ast.Block{Loc: c.loc(n)}
	for _, s := range c.named(n) {
		if st := c.stmt(s); st != nil {
			b.Body = append(b.Body, st)
		}
	}
	return b
}

func (c *converter) varDecl(n *sitter.Node) *ast.VarDecl {
	v := &ast.VarDecl{Loc: c.loc(n), Kind: "var"}
	if kind := field(n, "kind"); kind != nil {
		v.Kind = c.text(kind)
	} else if n.ChildCount() > 0 {
		v.Kind = n.Child(0).Type()
	}
	for _, d := range c.named(n) {
		if d.Type() != "variable_declarator" {
			continue
		}
		v.Decls = append(v.Decls, &ast.Declarator{
			Loc:    c.loc(d),
			Target: c.pattern(field(d, "name")),
			Init:   c.optExpr(field(d, "value")),
		})
	}
	return v
}

func (c *converter) importDecl(n *sitter.Node) *ast.Import {
	imp := &ast.Import{Loc: c.loc(n), Source: c.stringValue(field(n, "source"))}
	for _, clause := range c.named(n) {
		if clause.Type() != "import_clause" {
			continue
		}
		for _, part := range c.named(clause) {
			switch part.Type() {
			case "identifier":
				imp.Specifiers = append(imp.Specifiers, &ast.ImportSpec{Local: c.text(part), Imported: "default", Default: true})
			case "namespace_import":
				if id := c.first(part); id != nil {
					imp.Specifiers = append(imp.Specifiers, &ast.ImportSpec{Local: c.text(id), Imported: "*", Namespace: true})
				}
			case "named_imports":
				for _, s := range c.named(part) {
					if s.Type() != "import_specifier" {
						continue
					}
					name := c.propertyName(field(s, "name"))
					spec := &ast.ImportSpec{Local: name, Imported: name}
					if alias := field(s, "alias"); alias != nil {
						spec.Local = c.text(alias)
					}
					imp.Specifiers = append(imp.Specifiers, spec)
				}
			}
		}
	}
	return imp
}

func (c *converter) export(n *sitter.Node) ast.Stmt {
	loc := c.loc(n)
	def := hasToken(n, "default")
	if decl := field(n, "declaration"); decl != nil {
		return &ast.Export{Loc: loc, Decl: c.stmt(decl), Default: def}
	}
	if value := field(n, "value"); value != nil {
		return &ast.Export{Loc: loc, X: c.expr(value), Default: true}
	}
	// export { a, b } and re-exports declare nothing new.
	return &ast.Empty{Loc: loc}
}
