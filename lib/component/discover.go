package component

import (
	"unicode"
	"unicode/utf8"

	"github.com/minimact/swig-sub001/lib/ast"
)

// Found is a component function located in a program.
type Found struct {
	Name string
	Func *ast.Func
}

// Find returns the component functions declared at the top level of prog,
// in source order. A component is a function bound to a name that starts
// with an uppercase letter: a function declaration, a const initialized
// with a function expression, or the exported form of either.
func Find(prog *ast.Program) []Found {
	var out []Found
	seen := make(map[string]bool)
	add := func(name string, fn *ast.Func) {
		if !isComponentName(name) || fn == nil || seen[name] {
			return
		}
		seen[name] = true
		out = append(out, Found{Name: name, Func: fn})
	}

	var visit func(ast.Stmt)
	visit = func(s ast.Stmt) {
		switch x := s.(type) {
		case *ast.FuncDecl:
			add(x.Func.Name, x.Func)
		case *ast.VarDecl:
			for _, d := range x.Decls {
				id, ok := d.Target.(*ast.Ident)
				if !ok {
					continue
				}
				if fn, ok := d.Init.(*ast.Func); ok {
					add(id.Name, fn)
				}
			}
		case *ast.Export:
			if x.Decl != nil {
				visit(x.Decl)
			} else if fn, ok := x.X.(*ast.Func); ok {
				add(fn.Name, fn)
			}
		}
	}
	for _, s := range prog.Body {
		visit(s)
	}
	return out
}

// Imports returns the import declarations of prog.
func Imports(prog *ast.Program) []*ast.Import {
	var out []*ast.Import
	for _, s := range prog.Body {
		if imp, ok := s.(*ast.Import); ok {
			out = append(out, imp)
		}
	}
	return out
}

func isComponentName(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}
