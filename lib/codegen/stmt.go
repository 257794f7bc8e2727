package codegen

import (
	"strconv"
	"strings"

	"github.com/minimact/swig-sub001/lib/ast"
	"github.com/minimact/swig-sub001/lib/diag"
)

// Stmts writes the C# translation of stmts to w.
func Stmts(w *Writer, ctx *Context, stmts []ast.Stmt) {
	g := &gen{ctx: ctx}
	for _, s := range stmts {
		g.stmt(w, s)
	}
}

// Declare writes `var name = value;` for every name bound by target.
func Declare(w *Writer, ctx *Context, target ast.Pattern, init ast.Expr) {
	(&gen{ctx: ctx}).declare(w, target, init)
}

func (g *gen) stmt(w *Writer, s ast.Stmt) {
	switch x := s.(type) {
	case nil, *ast.Empty:
	case *ast.VarDecl:
		for _, d := range x.Decls {
			g.declare(w, d.Target, d.Init)
		}
	case *ast.ExprStmt:
		out := g.expr(x.X)
		if out == "null" {
			w.Line("// unsupported: %s", ast.Source(x.X))
			return
		}
		w.Line("%s;", out)
	case *ast.Return:
		if x.X == nil {
			w.Line("return;")
			return
		}
		w.Line("return %s;", g.expr(x.X))
	case *ast.If:
		g.ifStmt(w, x, "")
	case *ast.Block:
		w.Line("{")
		w.Indent()
		for _, s := range x.Body {
			g.stmt(w, s)
		}
		w.Close("")
	case *ast.For:
		w.Open("for (%s; %s; %s)", g.forInit(x.Init), g.optExpr(x.Test), g.optExpr(x.Update))
		g.body(w, x.Body)
		w.Close("")
	case *ast.ForOf:
		g.forOf(w, x)
	case *ast.While:
		if x.Do {
			w.Open("do")
			g.body(w, x.Body)
			w.Close(" while (" + Condition(g.ctx, x.Test) + ");")
			return
		}
		w.Open("while (%s)", Condition(g.ctx, x.Test))
		g.body(w, x.Body)
		w.Close("")
	case *ast.Try:
		g.try(w, x)
	case *ast.Throw:
		w.Line("throw %s;", g.exception(x.X))
	case *ast.Break:
		w.Line("break;")
	case *ast.Continue:
		w.Line("continue;")
	case *ast.FuncDecl:
		g.localFunc(w, x.Func)
	case *ast.UnsupportedStmt:
		g.ctx.Diags.Note(diag.UnsupportedExpression, x, "unsupported %s; omitted", x.Kind)
		w.Line("// unsupported: %s", x.Kind)
	case *ast.Import, *ast.Export:
		g.ctx.unsupported(s, "module declaration inside a function")
	default:
		g.ctx.unsupported(s, "statement")
	}
}

func (g *gen) body(w *Writer, s ast.Stmt) {
	if b, ok := s.(*ast.Block); ok {
		for _, inner := range b.Body {
			g.stmt(w, inner)
		}
		return
	}
	g.stmt(w, s)
}

func (g *gen) ifStmt(w *Writer, x *ast.If, prefix string) {
	w.Open("%sif (%s)", prefix, Condition(g.ctx, x.Test))
	g.body(w, x.Then)
	w.Dedent()
	w.Line("}")
	switch e := x.Else.(type) {
	case nil:
	case *ast.If:
		g.ifStmt(w, e, "else ")
	default:
		w.Open("else")
		g.body(w, e)
		w.Close("")
	}
}

func (g *gen) forInit(s ast.Stmt) string {
	switch x := s.(type) {
	case nil:
		return ""
	case *ast.VarDecl:
		var parts []string
		for _, d := range x.Decls {
			id, ok := d.Target.(*ast.Ident)
			if !ok {
				g.ctx.unsupported(d, "destructuring in a for initializer")
				continue
			}
			parts = append(parts, id.Name+" = "+g.expr(d.Init))
		}
		if len(parts) == 0 {
			return ""
		}
		return "var " + strings.Join(parts, ", ")
	case *ast.ExprStmt:
		return g.expr(x.X)
	}
	g.ctx.unsupported(s, "for initializer")
	return ""
}

func (g *gen) optExpr(e ast.Expr) string {
	if e == nil {
		return ""
	}
	return g.expr(e)
}

func (g *gen) forOf(w *Writer, x *ast.ForOf) {
	iter := g.expr(x.Iter)
	if x.In {
		iter = "((IDictionary<string, object>)" + iter + ").Keys"
	}
	switch t := x.Target.(type) {
	case *ast.Ident:
		w.Open("foreach (var %s in %s)", t.Name, iter)
	case *ast.ArrayPattern:
		names := make([]string, len(t.Elements))
		for i, el := range t.Elements {
			names[i] = "_"
			if id, ok := el.(*ast.Ident); ok {
				names[i] = id.Name
			}
		}
		w.Open("foreach (var (%s) in %s)", strings.Join(names, ", "), iter)
	default:
		tmp := g.ctx.tempName()
		w.Open("foreach (var %s in %s)", tmp, iter)
		g.bind(w, x.Target, tmp)
	}
	g.body(w, x.Body)
	w.Close("")
}

func (g *gen) try(w *Writer, x *ast.Try) {
	w.Open("try")
	for _, s := range x.Block.Body {
		g.stmt(w, s)
	}
	w.Dedent()
	w.Line("}")
	if x.Handler != nil {
		if id, ok := x.Param.(*ast.Ident); ok && id != nil {
			w.Open("catch (Exception %s)", id.Name)
		} else {
			w.Open("catch (Exception)")
		}
		for _, s := range x.Handler.Body {
			g.stmt(w, s)
		}
		w.Close("")
	}
	if x.Finalizer != nil {
		w.Open("finally")
		for _, s := range x.Finalizer.Body {
			g.stmt(w, s)
		}
		w.Close("")
	}
}

func (g *gen) exception(e ast.Expr) string {
	if n, ok := e.(*ast.New); ok {
		return g.newExpr(n)
	}
	return "new Exception(Convert.ToString(" + g.expr(e) + "))"
}

func (g *gen) localFunc(w *Writer, f *ast.Func) {
	g.method(w, "", f.Name, f, ast.ReturnedExpr(f) != nil)
}

// Handler writes f as a class method named name. Handlers return nothing:
// an expression body is emitted as a statement.
func Handler(w *Writer, ctx *Context, modifiers, name string, f *ast.Func) {
	g := &gen{ctx: ctx}
	if f.ExprBody != nil {
		body := &ast.Func{Loc: f.Loc, Params: f.Params, Async: f.Async, Arrow: f.Arrow,
			Body: &ast.Block{Body: []ast.Stmt{&ast.ExprStmt{X: f.ExprBody}}}}
		g.method(w, modifiers, name, body, false)
		return
	}
	g.method(w, modifiers, name, f, false)
}

// Method writes f as a class method named name returning dynamic, or
// Task<dynamic> when f is async.
func Method(w *Writer, ctx *Context, modifiers, name string, f *ast.Func) {
	g := &gen{ctx: ctx}
	g.method(w, modifiers, name, f, true)
}

func (g *gen) method(w *Writer, modifiers, name string, f *ast.Func, returns bool) {
	ret := "void"
	if returns {
		ret = "dynamic"
	}
	if f.Async {
		ret = "async Task"
		if returns {
			ret = "async Task<dynamic>"
		}
	}
	if modifiers != "" {
		ret = modifiers + " " + ret
	}
	var params []string
	for i, p := range f.Params {
		if id, ok := p.Target.(*ast.Ident); ok {
			params = append(params, "dynamic "+id.Name)
			continue
		}
		params = append(params, "dynamic __arg"+strconv.Itoa(i))
	}
	w.Open("%s %s(%s)", ret, name, strings.Join(params, ", "))
	for i, p := range f.Params {
		if _, ok := p.Target.(*ast.Ident); !ok {
			g.bind(w, p.Target, "__arg"+strconv.Itoa(i))
		}
	}
	for _, s := range ast.FuncBody(f) {
		if r, ok := s.(*ast.Return); ok && !returns && r.X != nil {
			g.stmt(w, &ast.ExprStmt{Loc: r.Loc, X: r.X})
			continue
		}
		g.stmt(w, s)
	}
	w.Close("")
}

// declare writes the declarations for `target = init`.
func (g *gen) declare(w *Writer, target ast.Pattern, init ast.Expr) {
	if id, ok := target.(*ast.Ident); ok {
		switch {
		case init == nil, ast.IsNullish(init):
			w.Line("dynamic %s = null;", id.Name)
		default:
			if fn, isFn := init.(*ast.Func); isFn {
				w.Line("%s %s = %s;", lambdaType(fn), id.Name, g.lambda(fn))
				return
			}
			w.Line("var %s = %s;", id.Name, g.expr(init))
		}
		return
	}

	source := ""
	if id, ok := init.(*ast.Ident); ok {
		source = g.ident(id)
	} else {
		source = g.ctx.tempName()
		w.Line("var %s = %s;", source, g.expr(init))
	}
	g.bind(w, target, source)
}

// bind declares the names of a pattern read from the C# expression source.
func (g *gen) bind(w *Writer, target ast.Pattern, source string) {
	switch t := target.(type) {
	case *ast.Ident:
		w.Line("var %s = %s;", t.Name, source)
	case *ast.ArrayPattern:
		for i, el := range t.Elements {
			if el == nil {
				continue
			}
			idx := strconv.Itoa(i)
			if r, ok := el.(*ast.RestPattern); ok {
				g.bind(w, r.Target, source+".Skip("+idx+").ToList()")
				continue
			}
			g.bind(w, el, source+"["+idx+"]")
		}
	case *ast.ObjectPattern:
		for _, p := range t.Props {
			value := source + "." + p.Key
			if p.Default != nil {
				value = "(" + value + " ?? " + g.expr(p.Default) + ")"
			}
			g.bind(w, p.Value, value)
		}
		if t.Rest != nil {
			g.ctx.unsupported(t.Rest, "object rest pattern")
			w.Line("var %s = %s;", t.Rest.Name, source)
		}
	case *ast.AssignPattern:
		g.bind(w, t.Target, "("+source+" ?? "+g.expr(t.Default)+")")
	case *ast.RestPattern:
		g.bind(w, t.Target, source)
	}
}
